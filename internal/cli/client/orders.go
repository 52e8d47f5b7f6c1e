package client

import (
	"fmt"
	"net/url"
	"strconv"
)

// OrderItemCreateRequest is one line of a new order.
type OrderItemCreateRequest struct {
	FoodID int64 `json:"foodId" validate:"required"`
	Qty    int   `json:"qty" validate:"required,gt=0"`
}

// OrderCreateRequest represents the order creation body
type OrderCreateRequest struct {
	CustomerID      int64                    `json:"customerId" validate:"required"`
	CanteenID       int64                    `json:"canteenId" validate:"required"`
	DeliveryMethod  DeliveryMethod           `json:"deliveryMethod" validate:"required,oneof=DRONE MANUAL"`
	DeliveryAddress string                   `json:"deliveryAddress" validate:"required,max=200"`
	Remarks         string                   `json:"remarks,omitempty"`
	Items           []OrderItemCreateRequest `json:"items" validate:"required,min=1,dive"`
}

// CreateOrder places a new order.
func (c *Client) CreateOrder(req OrderCreateRequest) (*Order, error) {
	var order Order
	if err := c.post("/api/orders", nil, req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrder returns an order with items and timeline.
func (c *Client) GetOrder(id int64) (*Order, error) {
	var order Order
	if err := c.get(fmt.Sprintf("/api/orders/%d", id), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// OrderListParams filters order listings.
type OrderListParams struct {
	Page   int
	Size   int
	Status OrderStatus
}

// ListMyOrders returns the calling customer's orders.
func (c *Client) ListMyOrders(params OrderListParams) (*Page[OrderSummary], error) {
	query := pageQuery(params.Page, params.Size)
	if params.Status != "" {
		query.Set("status", string(params.Status))
	}

	var page Page[OrderSummary]
	if err := c.get("/api/orders/self", query, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

type orderCancelRequest struct {
	Reason string `json:"reason,omitempty"`
}

// CancelOrder cancels one of the customer's own orders.
func (c *Client) CancelOrder(id int64, reason string) error {
	return c.post(fmt.Sprintf("/api/orders/%d/cancel", id), nil, orderCancelRequest{Reason: reason}, nil)
}

// ListCanteenOrders returns a canteen's incoming orders (staff view).
func (c *Client) ListCanteenOrders(canteenID int64, params OrderListParams) (*Page[OrderSummary], error) {
	query := pageQuery(params.Page, params.Size)
	if params.Status != "" {
		query.Set("status", string(params.Status))
	}

	var page Page[OrderSummary]
	if err := c.get(fmt.Sprintf("/api/orders/by-canteen/%d", canteenID), query, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// UpdateOrderStatus advances an order through its lifecycle.
func (c *Client) UpdateOrderStatus(id int64, status OrderStatus, note string) error {
	query := url.Values{}
	query.Set("status", string(status))
	if note != "" {
		query.Set("note", note)
	}
	return c.post(fmt.Sprintf("/api/orders/%d/status", id), query, nil, nil)
}

// ChangeDeliveryMethod switches an order between drone and manual delivery.
func (c *Client) ChangeDeliveryMethod(id int64, method DeliveryMethod) error {
	query := url.Values{}
	query.Set("method", string(method))
	return c.patch(fmt.Sprintf("/api/orders/%d/delivery-method", id), query, nil, nil)
}

// AssignDrone attaches a drone to an order awaiting delivery.
func (c *Client) AssignDrone(orderID, droneID int64) error {
	query := url.Values{}
	query.Set("droneId", strconv.FormatInt(droneID, 10))
	return c.post(fmt.Sprintf("/api/orders/%d/assign-drone", orderID), query, nil, nil)
}

// StartDelivery marks the assigned drone as airborne.
func (c *Client) StartDelivery(id int64) error {
	return c.post(fmt.Sprintf("/api/orders/%d/start-delivery", id), nil, nil, nil)
}

// MarkDelivered records that the drone delivered the order.
func (c *Client) MarkDelivered(id int64) error {
	return c.post(fmt.Sprintf("/api/orders/%d/mark-delivered", id), nil, nil, nil)
}

// GetOrderTimeline returns the order's status event history.
func (c *Client) GetOrderTimeline(id int64) (*OrderTimeline, error) {
	var timeline OrderTimeline
	if err := c.get(fmt.Sprintf("/api/orders/%d/timeline", id), nil, &timeline); err != nil {
		return nil, err
	}
	return &timeline, nil
}
