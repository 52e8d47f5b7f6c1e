package client

import (
	"fmt"
	"net/url"
)

// DroneListParams filters the drone fleet listing.
type DroneListParams struct {
	Page   int
	Size   int
	Status DroneStatus
}

// ListDrones returns a page of the drone fleet.
func (c *Client) ListDrones(params DroneListParams) (*Page[Drone], error) {
	query := pageQuery(params.Page, params.Size)
	if params.Status != "" {
		query.Set("status", string(params.Status))
	}

	var page Page[Drone]
	if err := c.get("/api/drones", query, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetDrone returns a single drone.
func (c *Client) GetDrone(id int64) (*Drone, error) {
	var drone Drone
	if err := c.get(fmt.Sprintf("/api/drones/%d", id), nil, &drone); err != nil {
		return nil, err
	}
	return &drone, nil
}

// DroneCreateRequest represents the drone registration body
type DroneCreateRequest struct {
	Code         string      `json:"code" validate:"required,max=64"`
	Model        string      `json:"model,omitempty" validate:"omitempty,max=100"`
	MaxPayloadKg float64     `json:"maxPayloadKg,omitempty" validate:"gte=0"`
	Battery      int         `json:"battery" validate:"gte=0,lte=100"`
	Status       DroneStatus `json:"status,omitempty"`
	Location     string      `json:"location,omitempty" validate:"omitempty,max=200"`
	Note         string      `json:"note,omitempty"`
}

// CreateDrone registers a new drone in the fleet.
func (c *Client) CreateDrone(req DroneCreateRequest) (*Drone, error) {
	var drone Drone
	if err := c.post("/api/drones", nil, req, &drone); err != nil {
		return nil, err
	}
	return &drone, nil
}

// DroneUpdateRequest represents the drone update body
type DroneUpdateRequest struct {
	Code         string  `json:"code,omitempty" validate:"omitempty,max=64"`
	Model        string  `json:"model,omitempty" validate:"omitempty,max=100"`
	MaxPayloadKg float64 `json:"maxPayloadKg,omitempty" validate:"gte=0"`
	Battery      int     `json:"battery,omitempty" validate:"gte=0,lte=100"`
	Note         string  `json:"note,omitempty"`
}

// UpdateDrone updates a drone's basic fields.
func (c *Client) UpdateDrone(id int64, req DroneUpdateRequest) (*Drone, error) {
	var drone Drone
	if err := c.patch(fmt.Sprintf("/api/drones/%d", id), nil, req, &drone); err != nil {
		return nil, err
	}
	return &drone, nil
}

// UpdateDroneStatus moves a drone between IDLE, IN_MISSION and MAINTENANCE.
func (c *Client) UpdateDroneStatus(id int64, status DroneStatus) error {
	query := url.Values{}
	query.Set("status", string(status))
	return c.patch(fmt.Sprintf("/api/drones/%d/status", id), query, nil, nil)
}

// DeleteDrone retires a drone from the fleet.
func (c *Client) DeleteDrone(id int64) error {
	return c.delete(fmt.Sprintf("/api/drones/%d/delete", id), nil)
}
