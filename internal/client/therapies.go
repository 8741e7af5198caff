package client

import (
	"context"
	"net/http"
	"net/url"
)

// Therapy is a healthcare therapy record surfaced through the food gateway.
type Therapy struct {
	ID        string `json:"id,omitempty"`
	Status    string `json:"status"`
	Diagnosis string `json:"diagnosis"`
}

// Therapies lists all therapies.
func (c *Client) Therapies(ctx context.Context) ([]Therapy, error) {
	var out []Therapy
	if err := c.do(ctx, http.MethodGet, "/food/therapies", reqOpts{out: &out}); err != nil {
		return nil, err
	}
	return out, nil
}

// ApproveTherapy marks a therapy approved.
func (c *Client) ApproveTherapy(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPut, "/food/therapy/"+url.PathEscape(id)+"/approve", reqOpts{body: struct{}{}})
}
