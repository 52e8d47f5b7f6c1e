package client

import (
	"fmt"
	"net/url"
)

// CanteenListParams filters the canteen listing.
type CanteenListParams struct {
	Page   int
	Size   int
	Status CanteenOpenStatus
}

// ListCanteens returns a page of canteens.
func (c *Client) ListCanteens(params CanteenListParams) (*Page[Canteen], error) {
	query := pageQuery(params.Page, params.Size)
	if params.Status != "" {
		query.Set("status", string(params.Status))
	}

	var page Page[Canteen]
	if err := c.get("/api/canteens", query, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetCanteen returns a canteen with its manager list.
func (c *Client) GetCanteen(id int64) (*Canteen, error) {
	var canteen Canteen
	if err := c.get(fmt.Sprintf("/api/canteens/%d", id), nil, &canteen); err != nil {
		return nil, err
	}
	return &canteen, nil
}

// CanteenCreateRequest represents the canteen creation body
type CanteenCreateRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Location string `json:"location" validate:"required,max=200"`
}

// CreateCanteen registers a new canteen (admin only).
func (c *Client) CreateCanteen(req CanteenCreateRequest) (*Canteen, error) {
	var canteen Canteen
	if err := c.post("/api/canteens", nil, req, &canteen); err != nil {
		return nil, err
	}
	return &canteen, nil
}

// CanteenUpdateRequest represents the canteen update body; empty fields are
// left unchanged.
type CanteenUpdateRequest struct {
	Name     string `json:"name,omitempty" validate:"omitempty,max=100"`
	Location string `json:"location,omitempty" validate:"omitempty,max=200"`
}

// UpdateCanteen updates a canteen's basic fields.
func (c *Client) UpdateCanteen(id int64, req CanteenUpdateRequest) (*Canteen, error) {
	var canteen Canteen
	if err := c.patch(fmt.Sprintf("/api/canteens/%d", id), nil, req, &canteen); err != nil {
		return nil, err
	}
	return &canteen, nil
}

// UpdateCanteenStatus opens or closes a canteen.
func (c *Client) UpdateCanteenStatus(id int64, status CanteenOpenStatus) error {
	query := url.Values{}
	query.Set("status", string(status))
	return c.patch(fmt.Sprintf("/api/canteens/%d/status", id), query, nil, nil)
}
