package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
)

// Food is a sellable catalog item. Type1 is the dish type (PASTA, PICA,
// SALATA), Type2 the dietary type (POSNO, MRSNO).
type Food struct {
	ID        string `json:"id,omitempty"`
	UserID    string `json:"user_id,omitempty"`
	FoodName  string `json:"foodName"`
	Type1     string `json:"type1,omitempty"`
	Type2     string `json:"type2,omitempty"`
	ImagePath string `json:"imagePath,omitempty"`
}

// Foods lists the whole catalog.
func (c *Client) Foods(ctx context.Context) ([]Food, error) {
	var out []Food
	if err := c.do(ctx, http.MethodGet, "/food/food", reqOpts{out: &out}); err != nil {
		return nil, err
	}
	return out, nil
}

// Food fetches a single catalog item.
func (c *Client) Food(ctx context.Context, id string) (Food, error) {
	var out Food
	if err := c.do(ctx, http.MethodGet, "/food/food/"+url.PathEscape(id), reqOpts{out: &out}); err != nil {
		return Food{}, err
	}
	return out, nil
}

// CreateFood creates a catalog item owned by the given cook.
func (c *Client) CreateFood(ctx context.Context, food Food, cookID string) (Food, error) {
	q := url.Values{"cookId": {cookID}}
	var out Food
	if err := c.do(ctx, http.MethodPost, "/food/food", reqOpts{query: q, body: food, out: &out}); err != nil {
		return Food{}, err
	}
	return out, nil
}

// UpdateFood updates the given fields of a catalog item.
func (c *Client) UpdateFood(ctx context.Context, id string, food Food) (Food, error) {
	var out Food
	if err := c.do(ctx, http.MethodPut, "/food/food/"+url.PathEscape(id), reqOpts{body: food, out: &out}); err != nil {
		return Food{}, err
	}
	return out, nil
}

// DeleteFood removes a catalog item.
func (c *Client) DeleteFood(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/food/food/"+url.PathEscape(id), reqOpts{})
}

// UploadFoodImage posts an image for a catalog item as a multipart form with
// field name "image".
func (c *Client) UploadFoodImage(ctx context.Context, id, filename string, image io.Reader) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fw, err := mw.CreateFormFile("image", filename)
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(fw, image); err != nil {
		return fmt.Errorf("copy image: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("finalize form: %w", err)
	}

	u := c.baseURL + "/food/food/" + url.PathEscape(id) + "/image"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, &buf)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("upload image: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// Recommendations lists items the gateway recommends for the user. The
// recommendation computation itself is server-owned.
func (c *Client) Recommendations(ctx context.Context, userID string) ([]Food, error) {
	q := url.Values{"user_id": {userID}}
	var out []Food
	if err := c.do(ctx, http.MethodGet, "/food/recommendations", reqOpts{query: q, out: &out}); err != nil {
		return nil, err
	}
	return out, nil
}
