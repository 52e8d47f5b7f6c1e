package client

import (
	"time"

	"github.com/canteen-dev/canteenctl/internal/cli/session"
)

// UserStatus is the backend's account status enum.
type UserStatus string

const (
	UserActive   UserStatus = "ACTIVE"
	UserLocked   UserStatus = "LOCKED"
	UserDisabled UserStatus = "DISABLED"
)

// CanteenOpenStatus reports whether a canteen is taking orders.
type CanteenOpenStatus string

const (
	CanteenOpen   CanteenOpenStatus = "OPEN"
	CanteenClosed CanteenOpenStatus = "CLOSED"
)

type DroneStatus string

const (
	DroneIdle        DroneStatus = "IDLE"
	DroneInMission   DroneStatus = "IN_MISSION"
	DroneMaintenance DroneStatus = "MAINTENANCE"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderConfirmed OrderStatus = "CONFIRMED"
	OrderPacked    OrderStatus = "PACKED"
	OrderShipped   OrderStatus = "SHIPPED"
	OrderDelivered OrderStatus = "DELIVERED"
	OrderCompleted OrderStatus = "COMPLETED"
	OrderCanceled  OrderStatus = "CANCELED"
)

// DeliveryMethod selects drone or manual delivery for an order.
type DeliveryMethod string

const (
	DeliveryDrone  DeliveryMethod = "DRONE"
	DeliveryManual DeliveryMethod = "MANUAL"
)

// Page is the backend's paged list wrapper.
type Page[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Size  int   `json:"size"`
}

// User represents a user account as returned by the backend.
type User struct {
	ID          int64        `json:"id"`
	Username    string       `json:"username"`
	DisplayName string       `json:"displayName"`
	Role        session.Role `json:"role"`
	Status      UserStatus   `json:"status"`
	Phone       string       `json:"phone,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// CanteenManager is a staff account attached to a canteen.
type CanteenManager struct {
	UserID      int64  `json:"userId"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Phone       string `json:"phone,omitempty"`
}

type Canteen struct {
	ID         int64             `json:"id"`
	Name       string            `json:"name"`
	Location   string            `json:"location"`
	OpenStatus CanteenOpenStatus `json:"openStatus"`
	CreatedAt  time.Time         `json:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`
	Managers   []CanteenManager  `json:"managers,omitempty"`
}

type Category struct {
	ID        int64  `json:"id"`
	CanteenID int64  `json:"canteenId"`
	Name      string `json:"name"`
	Sort      int    `json:"sort"`
}

// CategoryList is the backend's wrapper for a canteen's menu categories.
type CategoryList struct {
	CanteenID  int64      `json:"canteenId"`
	Categories []Category `json:"categories"`
}

type Food struct {
	ID           int64  `json:"id"`
	CanteenID    int64  `json:"canteenId"`
	CategoryID   int64  `json:"categoryId,omitempty"`
	CategoryName string `json:"categoryName,omitempty"`
	Name         string `json:"name"`
	PriceCent    int    `json:"priceCent"`
	Stock        int    `json:"stock"`
	OnShelf      bool   `json:"onShelf"`
	ImageURL     string `json:"imageUrl,omitempty"`
}

type Drone struct {
	ID           int64       `json:"id"`
	Code         string      `json:"code"`
	Model        string      `json:"model,omitempty"`
	MaxPayloadKg float64     `json:"maxPayloadKg,omitempty"`
	Battery      int         `json:"battery"`
	Status       DroneStatus `json:"status"`
	Location     string      `json:"location,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// OrderItem is a single line of an order.
type OrderItem struct {
	ID            int64  `json:"id"`
	OrderID       int64  `json:"orderId"`
	FoodID        int64  `json:"foodId"`
	FoodName      string `json:"foodName"`
	UnitPriceCent int    `json:"unitPriceCent"`
	Qty           int    `json:"qty"`
	SubtotalCent  int    `json:"subtotalCent"`
}

// OrderStatusEvent is one entry of an order's timeline.
type OrderStatusEvent struct {
	ID         int64       `json:"id"`
	OrderID    int64       `json:"orderId"`
	Code       OrderStatus `json:"code"`
	Note       string      `json:"note,omitempty"`
	OccurredAt time.Time   `json:"occurredAt"`
}

type OrderTimeline struct {
	OrderID int64              `json:"orderId"`
	Events  []OrderStatusEvent `json:"events"`
}

// OrderSummary is the list view of an order.
type OrderSummary struct {
	ID              int64          `json:"id"`
	CustomerID      int64          `json:"customerId"`
	CustomerName    string         `json:"customerName,omitempty"`
	CanteenID       int64          `json:"canteenId"`
	CanteenName     string         `json:"canteenName,omitempty"`
	Status          OrderStatus    `json:"status"`
	StatusLabel     string         `json:"statusLabel,omitempty"`
	DeliveryMethod  DeliveryMethod `json:"deliveryMethod"`
	AmountCent      int            `json:"amountCent"`
	DeliveryAddress string         `json:"deliveryAddress"`
	FirstFoodName   string         `json:"firstFoodName,omitempty"`
	TotalItemCount  int            `json:"totalItemCount"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

// Order is the detail view, including items and the status timeline.
type Order struct {
	ID              int64              `json:"id"`
	CustomerID      int64              `json:"customerId"`
	CustomerName    string             `json:"customerName,omitempty"`
	CustomerPhone   string             `json:"customerPhone,omitempty"`
	CanteenID       int64              `json:"canteenId"`
	CanteenName     string             `json:"canteenName,omitempty"`
	Status          OrderStatus        `json:"status"`
	StatusLabel     string             `json:"statusLabel,omitempty"`
	DeliveryMethod  DeliveryMethod     `json:"deliveryMethod"`
	DroneID         int64              `json:"droneId,omitempty"`
	DroneCode       string             `json:"droneCode,omitempty"`
	AmountCent      int                `json:"amountCent"`
	Remarks         string             `json:"remarks,omitempty"`
	DeliveryAddress string             `json:"deliveryAddress"`
	OtpCode         string             `json:"otpCode,omitempty"`
	CreatedAt       time.Time          `json:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt"`
	Items           []OrderItem        `json:"items,omitempty"`
	Timeline        []OrderStatusEvent `json:"timeline,omitempty"`
}
