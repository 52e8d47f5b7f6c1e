package client

import (
	"fmt"
	"net/url"
	"strconv"
)

// ListCategories returns a canteen's menu categories.
func (c *Client) ListCategories(canteenID int64) (*CategoryList, error) {
	var list CategoryList
	if err := c.get(fmt.Sprintf("/api/canteens/%d/menu/categories", canteenID), nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// CategoryCreateRequest represents the category creation body
type CategoryCreateRequest struct {
	Name string `json:"name" validate:"required,max=100"`
	Sort int    `json:"sort,omitempty" validate:"gte=0"`
}

// CreateCategory adds a menu category to a canteen.
func (c *Client) CreateCategory(canteenID int64, req CategoryCreateRequest) (*Category, error) {
	var category Category
	if err := c.post(fmt.Sprintf("/api/canteens/%d/menu/categories", canteenID), nil, req, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// CategoryUpdateRequest represents the category update body
type CategoryUpdateRequest struct {
	Name string `json:"name,omitempty" validate:"omitempty,max=100"`
	Sort int    `json:"sort,omitempty" validate:"gte=0"`
}

// UpdateCategory renames or reorders a category.
func (c *Client) UpdateCategory(canteenID, categoryID int64, req CategoryUpdateRequest) (*Category, error) {
	var category Category
	if err := c.patch(fmt.Sprintf("/api/canteens/%d/menu/categories/%d", canteenID, categoryID), nil, req, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// DeleteCategory removes a category; its foods become uncategorized.
func (c *Client) DeleteCategory(canteenID, categoryID int64) error {
	return c.delete(fmt.Sprintf("/api/canteens/%d/menu/categories/%d", canteenID, categoryID), nil)
}

// FoodListParams filters a canteen's food listing.
type FoodListParams struct {
	Page        int
	Size        int
	CategoryID  int64
	ShelfStatus string // ON or OFF
	Keyword     string
}

// ListFoods returns a page of a canteen's foods.
func (c *Client) ListFoods(canteenID int64, params FoodListParams) (*Page[Food], error) {
	query := pageQuery(params.Page, params.Size)
	if params.CategoryID != 0 {
		query.Set("categoryId", strconv.FormatInt(params.CategoryID, 10))
	}
	if params.ShelfStatus != "" {
		query.Set("shelfStatus", params.ShelfStatus)
	}
	if params.Keyword != "" {
		query.Set("keyword", params.Keyword)
	}

	var page Page[Food]
	if err := c.get(fmt.Sprintf("/api/canteens/%d/menu/foods", canteenID), query, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetFood returns a single food item.
func (c *Client) GetFood(canteenID, foodID int64) (*Food, error) {
	var food Food
	if err := c.get(fmt.Sprintf("/api/canteens/%d/menu/foods/%d", canteenID, foodID), nil, &food); err != nil {
		return nil, err
	}
	return &food, nil
}

// FoodCreateRequest represents the food creation body. CategoryID zero means
// "uncategorized".
type FoodCreateRequest struct {
	CategoryID int64  `json:"categoryId,omitempty"`
	Name       string `json:"name" validate:"required,max=100"`
	PriceCent  int    `json:"priceCent" validate:"gte=0"`
	Stock      int    `json:"stock" validate:"gte=0"`
	ImageURL   string `json:"imageUrl,omitempty" validate:"omitempty,url"`
	OnShelf    bool   `json:"onShelf"`
}

// CreateFood adds a food item to a canteen's menu.
func (c *Client) CreateFood(canteenID int64, req FoodCreateRequest) (*Food, error) {
	var food Food
	if err := c.post(fmt.Sprintf("/api/canteens/%d/menu/foods", canteenID), nil, req, &food); err != nil {
		return nil, err
	}
	return &food, nil
}

// FoodUpdateRequest represents the food update body
type FoodUpdateRequest struct {
	CategoryID int64  `json:"categoryId,omitempty"`
	Name       string `json:"name,omitempty" validate:"omitempty,max=100"`
	PriceCent  int    `json:"priceCent,omitempty" validate:"gte=0"`
	Stock      int    `json:"stock,omitempty" validate:"gte=0"`
	ImageURL   string `json:"imageUrl,omitempty" validate:"omitempty,url"`
}

// UpdateFood updates a food item's basic fields.
func (c *Client) UpdateFood(canteenID, foodID int64, req FoodUpdateRequest) (*Food, error) {
	var food Food
	if err := c.patch(fmt.Sprintf("/api/canteens/%d/menu/foods/%d", canteenID, foodID), nil, req, &food); err != nil {
		return nil, err
	}
	return &food, nil
}

// UpdateFoodShelf puts a food on or off the shelf.
func (c *Client) UpdateFoodShelf(canteenID, foodID int64, onShelf bool) error {
	query := url.Values{}
	query.Set("onShelf", strconv.FormatBool(onShelf))
	return c.patch(fmt.Sprintf("/api/canteens/%d/menu/foods/%d/shelf", canteenID, foodID), query, nil, nil)
}

// UpdateFoodStock sets a food's remaining stock.
func (c *Client) UpdateFoodStock(canteenID, foodID int64, stock int) error {
	query := url.Values{}
	query.Set("stock", strconv.Itoa(stock))
	return c.patch(fmt.Sprintf("/api/canteens/%d/menu/foods/%d/stock", canteenID, foodID), query, nil, nil)
}
