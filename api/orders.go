package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jrsteele09/go-storefront/catalog"
)

// CreateOrder submits a new order built from the cart and checkout draft.
func (c *Client) CreateOrder(ctx context.Context, order catalog.Order) (*catalog.Order, error) {
	body, err := json.Marshal(order)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	respBody, err := c.do(ctx, request{method: http.MethodPost, path: "/orders", body: body})
	if err != nil {
		return nil, err
	}

	var created catalog.Order
	if err := json.Unmarshal(respBody, &created); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	return &created, nil
}

// GetOrder fetches a single order by ID.
func (c *Client) GetOrder(ctx context.Context, id string) (*catalog.Order, error) {
	respBody, err := c.do(ctx, request{method: http.MethodGet, path: "/orders/" + id})
	if err != nil {
		return nil, err
	}

	var order catalog.Order
	if err := json.Unmarshal(respBody, &order); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	return &order, nil
}

// GetOrders lists orders (back-office operation).
func (c *Client) GetOrders(ctx context.Context, params map[string]string) (*catalog.OrderPage, error) {
	respBody, err := c.do(ctx, request{method: http.MethodGet, path: "/orders", params: params})
	if err != nil {
		return nil, err
	}

	var page catalog.OrderPage
	if err := json.Unmarshal(respBody, &page); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	return &page, nil
}

// UpdateOrder replaces an order, typically to change its status
// (back-office operation).
func (c *Client) UpdateOrder(ctx context.Context, id string, order catalog.Order) (*catalog.Order, error) {
	body, err := json.Marshal(order)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	respBody, err := c.do(ctx, request{method: http.MethodPut, path: "/orders/" + id, body: body})
	if err != nil {
		return nil, err
	}

	var updated catalog.Order
	if err := json.Unmarshal(respBody, &updated); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	return &updated, nil
}
