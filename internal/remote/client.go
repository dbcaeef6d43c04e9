// Package remote holds the HTTP clients for the engine's external
// collaborators: the inventory/auth backend and the AI scorer. Both speak
// plain JSON; neither owns any engine state.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/farmchainx/trace-engine/internal/model"
	"github.com/farmchainx/trace-engine/internal/remote/dto"
)

// Client talks to the inventory/auth backend.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a backend client for baseURL (e.g. "http://localhost:8080/api").
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// doJSON performs one JSON round trip. A non-2xx response becomes an error
// carrying the response body text; 204 leaves out untouched.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		text, _ := io.ReadAll(res.Body)
		if len(text) > 0 {
			return fmt.Errorf("%s %s: %s", method, path, strings.TrimSpace(string(text)))
		}
		return fmt.Errorf("%s %s: request failed with status %d", method, path, res.StatusCode)
	}

	if res.StatusCode == http.StatusNoContent || out == nil {
		return nil
	}
	return json.NewDecoder(res.Body).Decode(out)
}

// FetchInventory returns every authoritative inventory row.
func (c *Client) FetchInventory(ctx context.Context) ([]dto.InventoryRow, error) {
	var rows []dto.InventoryRow
	if err := c.doJSON(ctx, http.MethodGet, "/inventory", nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// FetchUsers returns every backend user account.
func (c *Client) FetchUsers(ctx context.Context) ([]dto.UserRow, error) {
	var rows []dto.UserRow
	if err := c.doJSON(ctx, http.MethodGet, "/users", nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// Login authenticates against the backend. The caller decides whether the
// response message indicates success; no session is established here.
func (c *Client) Login(ctx context.Context, email, password string, role model.Role) (dto.AuthResponse, error) {
	var res dto.AuthResponse
	req := dto.AuthRequest{Email: email, Password: password, Role: string(role)}
	if err := c.doJSON(ctx, http.MethodPost, "/users/login", req, &res); err != nil {
		return dto.AuthResponse{}, err
	}
	return res, nil
}

// Register creates a backend account.
func (c *Client) Register(ctx context.Context, req dto.AuthRequest) (dto.AuthResponse, error) {
	var res dto.AuthResponse
	if err := c.doJSON(ctx, http.MethodPost, "/users/register", req, &res); err != nil {
		return dto.AuthResponse{}, err
	}
	return res, nil
}

// CreateProduct registers the product half of a crop upload.
func (c *Client) CreateProduct(ctx context.Context, req dto.CreateProductRequest) (dto.ProductRow, error) {
	var res dto.ProductRow
	if err := c.doJSON(ctx, http.MethodPost, "/products", req, &res); err != nil {
		return dto.ProductRow{}, err
	}
	return res, nil
}

// CreateInventory registers the inventory half of a crop upload.
func (c *Client) CreateInventory(ctx context.Context, req dto.CreateInventoryRequest) (dto.InventoryRow, error) {
	var res dto.InventoryRow
	if err := c.doJSON(ctx, http.MethodPost, "/inventory", req, &res); err != nil {
		return dto.InventoryRow{}, err
	}
	return res, nil
}

// UpdateInventoryStage advances the remote stage of one inventory record.
func (c *Client) UpdateInventoryStage(ctx context.Context, inventoryID string, stage model.CropStatus) error {
	path := fmt.Sprintf("/inventory/%s", inventoryID)
	return c.doJSON(ctx, http.MethodPut, path, dto.UpdateInventoryRequest{Stage: string(stage)}, nil)
}
