package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jrsteele09/go-storefront/catalog"
)

// GetCategories lists categories.
func (c *Client) GetCategories(ctx context.Context, params map[string]string) ([]catalog.Category, error) {
	respBody, err := c.do(ctx, request{method: http.MethodGet, path: "/categories", params: params})
	if err != nil {
		return nil, err
	}

	var categories []catalog.Category
	if err := json.Unmarshal(respBody, &categories); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	return categories, nil
}

// GetCategory fetches a single category by ID or slug.
func (c *Client) GetCategory(ctx context.Context, idOrSlug string) (*catalog.Category, error) {
	respBody, err := c.do(ctx, request{method: http.MethodGet, path: "/categories/" + idOrSlug})
	if err != nil {
		return nil, err
	}

	var category catalog.Category
	if err := json.Unmarshal(respBody, &category); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	return &category, nil
}

// CreateCategory creates a category (back-office operation).
func (c *Client) CreateCategory(ctx context.Context, category catalog.Category) (*catalog.Category, error) {
	body, err := json.Marshal(category)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	respBody, err := c.do(ctx, request{method: http.MethodPost, path: "/categories", body: body})
	if err != nil {
		return nil, err
	}

	var created catalog.Category
	if err := json.Unmarshal(respBody, &created); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	return &created, nil
}

// UpdateCategory replaces a category (back-office operation).
func (c *Client) UpdateCategory(ctx context.Context, idOrSlug string, category catalog.Category) (*catalog.Category, error) {
	body, err := json.Marshal(category)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	respBody, err := c.do(ctx, request{method: http.MethodPut, path: "/categories/" + idOrSlug, body: body})
	if err != nil {
		return nil, err
	}

	var updated catalog.Category
	if err := json.Unmarshal(respBody, &updated); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	return &updated, nil
}

// DeleteCategory removes a category (back-office operation).
func (c *Client) DeleteCategory(ctx context.Context, idOrSlug string) error {
	_, err := c.do(ctx, request{method: http.MethodDelete, path: "/categories/" + idOrSlug})
	return err
}
