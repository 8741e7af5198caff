package client

import (
	"context"
	"net/http"
	"net/url"
)

// Order statuses as the gateway reports them.
const (
	OrderAccepted     = "Prihvacena"
	OrderNotAccepted  = "Neprihvacena"
	OrderCancelled    = "Otkazana"
	OrderNotCancelled = "Neotkazana"
)

// OrderFood is the item reference embedded in an order.
type OrderFood struct {
	ID       string `json:"id"`
	FoodName string `json:"foodName,omitempty"`
	Type1    string `json:"type1,omitempty"`
	Type2    string `json:"type2,omitempty"`
}

// Order is a food order. StatusO tracks acceptance, StatusO2 cancellation.
type Order struct {
	ID       string    `json:"id,omitempty"`
	Food     OrderFood `json:"food"`
	UserID   string    `json:"userId,omitempty"`
	StatusO  string    `json:"statusO,omitempty"`
	StatusO2 string    `json:"statusO2,omitempty"`
}

// CreateOrder places an order for the given item on behalf of the user.
func (c *Client) CreateOrder(ctx context.Context, foodID, userID string) (Order, error) {
	q := url.Values{"userId": {userID}}
	body := Order{Food: OrderFood{ID: foodID}}
	var out Order
	if err := c.do(ctx, http.MethodPost, "/food/order", reqOpts{query: q, body: body, out: &out}); err != nil {
		return Order{}, err
	}
	return out, nil
}

// Orders lists all orders.
func (c *Client) Orders(ctx context.Context) ([]Order, error) {
	var out []Order
	if err := c.do(ctx, http.MethodGet, "/food/order", reqOpts{out: &out}); err != nil {
		return nil, err
	}
	return out, nil
}

// AcceptOrder marks an order accepted.
func (c *Client) AcceptOrder(ctx context.Context, id string) (Order, error) {
	var out Order
	if err := c.do(ctx, http.MethodPut, "/food/order/"+url.PathEscape(id), reqOpts{body: struct{}{}, out: &out}); err != nil {
		return Order{}, err
	}
	return out, nil
}

// CancelOrder marks an order cancelled.
func (c *Client) CancelOrder(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPut, "/food/order/"+url.PathEscape(id)+"/cancel", reqOpts{body: struct{}{}})
}

// MyOrders lists the orders placed by the given user.
func (c *Client) MyOrders(ctx context.Context, userID string) ([]Order, error) {
	q := url.Values{"user_id": {userID}}
	var out []Order
	if err := c.do(ctx, http.MethodGet, "/food/my-orders", reqOpts{query: q, out: &out}); err != nil {
		return nil, err
	}
	return out, nil
}

// AcceptedOrders lists all accepted orders.
func (c *Client) AcceptedOrders(ctx context.Context) ([]Order, error) {
	var out []Order
	if err := c.do(ctx, http.MethodGet, "/food/accepted-orders", reqOpts{out: &out}); err != nil {
		return nil, err
	}
	return out, nil
}
