package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"
)

// Download is a fetched binary payload with the filename the server
// suggested via Content-Disposition, or the caller's fallback.
type Download struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportOrdersCSV downloads the orders CSV export.
func (c *Client) ExportOrdersCSV(ctx context.Context, params map[string]string) (*Download, error) {
	return c.download(ctx, "/orders/export.csv", params, "text/csv,application/octet-stream", "orders.csv")
}

// ExportProductsCSV downloads the products CSV export.
func (c *Client) ExportProductsCSV(ctx context.Context, params map[string]string) (*Download, error) {
	return c.download(ctx, "/products/export.csv", params, "text/csv,application/octet-stream", "products.csv")
}

// OrderInvoicePDF downloads the invoice PDF for an order.
func (c *Client) OrderInvoicePDF(ctx context.Context, orderID string) (*Download, error) {
	return c.download(ctx, "/orders/"+orderID+"/invoice.pdf", nil, "application/pdf", "invoice.pdf")
}

// download is the binary sibling of the JSON pipeline: a single GET with
// the same auth header, no refresh retry, and the raw response body as the
// error message on a non-2xx status.
func (c *Client) download(ctx context.Context, path string, params map[string]string, accept, fallbackName string) (*Download, error) {
	resp, err := c.attempt(ctx, request{
		method:  http.MethodGet,
		path:    path,
		params:  params,
		headers: map[string]string{"Accept": accept},
	})
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, rawStatusError(resp)
	}

	return &Download{
		Filename:    dispositionFilename(resp.header.Get("Content-Disposition"), fallbackName),
		ContentType: resp.header.Get("Content-Type"),
		Data:        resp.body,
	}, nil
}

// dispositionFilename extracts the filename parameter from a
// Content-Disposition header, falling back when absent or malformed.
func dispositionFilename(disposition, fallback string) string {
	if disposition == "" {
		return fallback
	}
	_, params, err := mime.ParseMediaType(disposition)
	if err != nil {
		return fallback
	}
	if name := params["filename"]; name != "" {
		return name
	}
	return fallback
}

// ImportOptions control a products CSV import.
type ImportOptions struct {
	UpsertBy string // Match column for upserts, "slug" when empty
	DryRun   bool   // Validate without writing
}

// ImportResult is the backend's import summary.
type ImportResult struct {
	Created int      `json:"created"`
	Updated int      `json:"updated"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors,omitempty"`
	DryRun  bool     `json:"dryRun,omitempty"`
}

// ImportProductsCSV uploads a products CSV as multipart form data.
func (c *Client) ImportProductsCSV(ctx context.Context, file io.Reader, filename string, opts ImportOptions) (*ImportResult, error) {
	if opts.UpsertBy == "" {
		opts.UpsertBy = "slug"
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to build form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("failed to read import file: %w", err)
	}
	if err := writer.WriteField("upsertBy", opts.UpsertBy); err != nil {
		return nil, fmt.Errorf("failed to write form field: %w", err)
	}
	if err := writer.WriteField("dryRun", strconv.FormatBool(opts.DryRun)); err != nil {
		return nil, fmt.Errorf("failed to write form field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize form: %w", err)
	}

	respBody, err := c.do(ctx, request{
		method:  http.MethodPost,
		path:    "/products/import",
		body:    buf.Bytes(),
		headers: map[string]string{"Content-Type": writer.FormDataContentType()},
	})
	if err != nil {
		return nil, err
	}

	var result ImportResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	return &result, nil
}
