package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/jrsteele09/go-storefront/catalog"
)

// GetProducts lists products. Backends that return a bare array instead of
// the paginated envelope are normalized into a single-page result.
func (c *Client) GetProducts(ctx context.Context, params map[string]string) (*catalog.ProductPage, error) {
	respBody, err := c.do(ctx, request{method: http.MethodGet, path: "/products", params: params})
	if err != nil {
		return nil, err
	}

	if gjson.ParseBytes(respBody).IsArray() {
		var items []catalog.Product
		if err := json.Unmarshal(respBody, &items); err != nil {
			return nil, fmt.Errorf("unmarshal response: %w", err)
		}
		return &catalog.ProductPage{Items: items, Total: len(items), TotalPages: 1, Page: 1}, nil
	}

	var page catalog.ProductPage
	if err := json.Unmarshal(respBody, &page); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	return &page, nil
}

// GetProduct fetches a single product by ID or slug.
func (c *Client) GetProduct(ctx context.Context, idOrSlug string) (*catalog.Product, error) {
	respBody, err := c.do(ctx, request{method: http.MethodGet, path: "/products/" + idOrSlug})
	if err != nil {
		return nil, err
	}

	var product catalog.Product
	if err := json.Unmarshal(respBody, &product); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	return &product, nil
}

// CreateProduct creates a product (back-office operation).
func (c *Client) CreateProduct(ctx context.Context, product catalog.Product) (*catalog.Product, error) {
	body, err := json.Marshal(product)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	respBody, err := c.do(ctx, request{method: http.MethodPost, path: "/products", body: body})
	if err != nil {
		return nil, err
	}

	var created catalog.Product
	if err := json.Unmarshal(respBody, &created); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	return &created, nil
}

// UpdateProduct applies a diff-based partial update built by catalog.Diff.
// An empty patch is a no-op and skips the round trip.
func (c *Client) UpdateProduct(ctx context.Context, idOrSlug string, patch catalog.Patch) (*catalog.Product, error) {
	if len(patch) == 0 {
		return c.GetProduct(ctx, idOrSlug)
	}

	body, err := json.Marshal(patch)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	respBody, err := c.do(ctx, request{method: http.MethodPatch, path: "/products/" + idOrSlug, body: body})
	if err != nil {
		return nil, err
	}

	var updated catalog.Product
	if err := json.Unmarshal(respBody, &updated); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	return &updated, nil
}

// DeleteProduct removes a product (back-office operation).
func (c *Client) DeleteProduct(ctx context.Context, idOrSlug string) error {
	_, err := c.do(ctx, request{method: http.MethodDelete, path: "/products/" + idOrSlug})
	return err
}
