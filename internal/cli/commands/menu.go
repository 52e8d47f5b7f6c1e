package commands

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/canteen-dev/canteenctl/internal/cli/client"
)

// NewMenuCmd creates the menu command group
func NewMenuCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Browse and manage canteen menus",
	}

	cmd.AddCommand(newMenuCategoriesCmd())
	cmd.AddCommand(newMenuAddCategoryCmd())
	cmd.AddCommand(newMenuUpdateCategoryCmd())
	cmd.AddCommand(newMenuRemoveCategoryCmd())
	cmd.AddCommand(newMenuFoodsCmd())
	cmd.AddCommand(newMenuFoodCmd())
	cmd.AddCommand(newMenuAddFoodCmd())
	cmd.AddCommand(newMenuUpdateFoodCmd())
	cmd.AddCommand(newMenuShelfCmd())
	cmd.AddCommand(newMenuStockCmd())

	return cmd
}

func parseID(arg, what string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %s", what, arg)
	}
	return id, nil
}

func newMenuCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories <canteen-id>",
		Short: "List a canteen's menu categories",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			canteenID, err := parseID(args[0], "canteen id")
			if err != nil {
				return err
			}
			e, err := newEnv()
			if err != nil {
				return err
			}
			return runMenuCategories(e, canteenID)
		},
	}
}

func runMenuCategories(e *env, canteenID int64) error {
	if _, err := e.visit("/user/home"); err != nil {
		return err
	}

	list, err := e.api.ListCategories(canteenID)
	if err != nil {
		return e.finish(err)
	}

	if len(list.Categories) == 0 {
		fmt.Println("No categories.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSORT")
	for _, category := range list.Categories {
		fmt.Fprintf(w, "%d\t%s\t%d\n", category.ID, category.Name, category.Sort)
	}
	w.Flush()
	return nil
}

func newMenuAddCategoryCmd() *cobra.Command {
	var name string
	var sort int

	cmd := &cobra.Command{
		Use:   "add-category <canteen-id>",
		Short: "Add a menu category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			canteenID, err := parseID(args[0], "canteen id")
			if err != nil {
				return err
			}
			e, err := newEnv()
			if err != nil {
				return err
			}
			return runMenuAddCategory(e, canteenID, name, sort)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Category name")
	cmd.Flags().IntVar(&sort, "sort", 0, "Sort order")

	return cmd
}

func runMenuAddCategory(e *env, canteenID int64, name string, sort int) error {
	if _, err := e.visit("/admin/canteen"); err != nil {
		return err
	}
	if name == "" {
		return fmt.Errorf("name is required (use --name flag)")
	}

	category, err := e.api.CreateCategory(canteenID, client.CategoryCreateRequest{
		Name: name,
		Sort: sort,
	})
	if err != nil {
		return e.finish(err)
	}

	fmt.Printf("✓ Category #%d created: %s\n", category.ID, category.Name)
	return nil
}

func newMenuUpdateCategoryCmd() *cobra.Command {
	var name string
	var sort int

	cmd := &cobra.Command{
		Use:   "update-category <canteen-id> <category-id>",
		Short: "Rename or reorder a category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			canteenID, err := parseID(args[0], "canteen id")
			if err != nil {
				return err
			}
			categoryID, err := parseID(args[1], "category id")
			if err != nil {
				return err
			}
			e, err := newEnv()
			if err != nil {
				return err
			}
			return runMenuUpdateCategory(e, canteenID, categoryID, name, sort)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().IntVar(&sort, "sort", 0, "New sort order")

	return cmd
}

func runMenuUpdateCategory(e *env, canteenID, categoryID int64, name string, sort int) error {
	if _, err := e.visit("/admin/canteen"); err != nil {
		return err
	}

	category, err := e.api.UpdateCategory(canteenID, categoryID, client.CategoryUpdateRequest{
		Name: name,
		Sort: sort,
	})
	if err != nil {
		return e.finish(err)
	}

	fmt.Printf("✓ Category #%d updated: %s\n", category.ID, category.Name)
	return nil
}

func newMenuRemoveCategoryCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "rm-category <canteen-id> <category-id>",
		Short: "Delete a category (its foods become uncategorized)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			canteenID, err := parseID(args[0], "canteen id")
			if err != nil {
				return err
			}
			categoryID, err := parseID(args[1], "category id")
			if err != nil {
				return err
			}
			e, err := newEnv()
			if err != nil {
				return err
			}
			return runMenuRemoveCategory(e, canteenID, categoryID, yes)
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the confirmation prompt")

	return cmd
}

func runMenuRemoveCategory(e *env, canteenID, categoryID int64, yes bool) error {
	if _, err := e.visit("/admin/canteen"); err != nil {
		return err
	}

	if !yes {
		prompt := promptui.Prompt{
			Label:     fmt.Sprintf("Delete category #%d", categoryID),
			IsConfirm: true,
		}
		if _, err := prompt.Run(); err != nil {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	if err := e.api.DeleteCategory(canteenID, categoryID); err != nil {
		return e.finish(err)
	}
	fmt.Printf("✓ Category #%d deleted\n", categoryID)
	return nil
}

func newMenuFoodsCmd() *cobra.Command {
	var page, size int
	var categoryID int64
	var shelf, keyword string

	cmd := &cobra.Command{
		Use:   "foods <canteen-id>",
		Short: "List a canteen's foods",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			canteenID, err := parseID(args[0], "canteen id")
			if err != nil {
				return err
			}
			e, err := newEnv()
			if err != nil {
				return err
			}
			return runMenuFoods(e, canteenID, client.FoodListParams{
				Page:        page,
				Size:        size,
				CategoryID:  categoryID,
				ShelfStatus: shelf,
				Keyword:     keyword,
			})
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&size, "size", 20, "Page size")
	cmd.Flags().Int64Var(&categoryID, "category", 0, "Filter by category id")
	cmd.Flags().StringVar(&shelf, "shelf", "", "Filter by shelf status (ON, OFF)")
	cmd.Flags().StringVar(&keyword, "keyword", "", "Search by name")

	return cmd
}

func runMenuFoods(e *env, canteenID int64, params client.FoodListParams) error {
	if _, err := e.visit("/user/home"); err != nil {
		return err
	}

	result, err := e.api.ListFoods(canteenID, params)
	if err != nil {
		return e.finish(err)
	}

	if len(result.Items) == 0 {
		fmt.Println("No foods found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPRICE\tSTOCK\tON SHELF")
	for _, food := range result.Items {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%t\n",
			food.ID, food.Name, food.CategoryName, formatCents(food.PriceCent), food.Stock, food.OnShelf)
	}
	w.Flush()

	fmt.Printf("\n%d foods total\n", result.Total)
	return nil
}

func newMenuFoodCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "food <canteen-id> <food-id>",
		Short: "Show one food item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			canteenID, err := parseID(args[0], "canteen id")
			if err != nil {
				return err
			}
			foodID, err := parseID(args[1], "food id")
			if err != nil {
				return err
			}
			e, err := newEnv()
			if err != nil {
				return err
			}
			return runMenuFood(e, canteenID, foodID)
		},
	}
}

func runMenuFood(e *env, canteenID, foodID int64) error {
	if _, err := e.visit("/user/home"); err != nil {
		return err
	}

	food, err := e.api.GetFood(canteenID, foodID)
	if err != nil {
		return e.finish(err)
	}

	fmt.Printf("Food #%d: %s\n", food.ID, food.Name)
	if food.CategoryName != "" {
		fmt.Printf("  Category: %s\n", food.CategoryName)
	}
	fmt.Printf("  Price: %s\n", formatCents(food.PriceCent))
	fmt.Printf("  Stock: %d\n", food.Stock)
	fmt.Printf("  On shelf: %t\n", food.OnShelf)
	return nil
}

func newMenuAddFoodCmd() *cobra.Command {
	var name, imageURL string
	var categoryID int64
	var priceCent, stock int
	var onShelf bool

	cmd := &cobra.Command{
		Use:   "add-food <canteen-id>",
		Short: "Add a food item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			canteenID, err := parseID(args[0], "canteen id")
			if err != nil {
				return err
			}
			e, err := newEnv()
			if err != nil {
				return err
			}
			return runMenuAddFood(e, canteenID, client.FoodCreateRequest{
				CategoryID: categoryID,
				Name:       name,
				PriceCent:  priceCent,
				Stock:      stock,
				ImageURL:   imageURL,
				OnShelf:    onShelf,
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Food name")
	cmd.Flags().Int64Var(&categoryID, "category", 0, "Category id (0 = uncategorized)")
	cmd.Flags().IntVar(&priceCent, "price-cent", 0, "Price in cents")
	cmd.Flags().IntVar(&stock, "stock", 0, "Initial stock")
	cmd.Flags().StringVar(&imageURL, "image", "", "Image URL")
	cmd.Flags().BoolVar(&onShelf, "on-shelf", true, "Put the food on the shelf immediately")

	return cmd
}

func runMenuAddFood(e *env, canteenID int64, req client.FoodCreateRequest) error {
	if _, err := e.visit("/admin/canteen"); err != nil {
		return err
	}
	if req.Name == "" {
		return fmt.Errorf("name is required (use --name flag)")
	}

	food, err := e.api.CreateFood(canteenID, req)
	if err != nil {
		return e.finish(err)
	}

	fmt.Printf("✓ Food #%d created: %s (%s)\n", food.ID, food.Name, formatCents(food.PriceCent))
	return nil
}

func newMenuUpdateFoodCmd() *cobra.Command {
	var name, imageURL string
	var categoryID int64
	var priceCent, stock int

	cmd := &cobra.Command{
		Use:   "update-food <canteen-id> <food-id>",
		Short: "Update a food item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			canteenID, err := parseID(args[0], "canteen id")
			if err != nil {
				return err
			}
			foodID, err := parseID(args[1], "food id")
			if err != nil {
				return err
			}
			e, err := newEnv()
			if err != nil {
				return err
			}
			return runMenuUpdateFood(e, canteenID, foodID, client.FoodUpdateRequest{
				CategoryID: categoryID,
				Name:       name,
				PriceCent:  priceCent,
				Stock:      stock,
				ImageURL:   imageURL,
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().Int64Var(&categoryID, "category", 0, "New category id")
	cmd.Flags().IntVar(&priceCent, "price-cent", 0, "New price in cents")
	cmd.Flags().IntVar(&stock, "stock", 0, "New stock")
	cmd.Flags().StringVar(&imageURL, "image", "", "New image URL")

	return cmd
}

func runMenuUpdateFood(e *env, canteenID, foodID int64, req client.FoodUpdateRequest) error {
	if _, err := e.visit("/admin/canteen"); err != nil {
		return err
	}

	food, err := e.api.UpdateFood(canteenID, foodID, req)
	if err != nil {
		return e.finish(err)
	}

	fmt.Printf("✓ Food #%d updated: %s\n", food.ID, food.Name)
	return nil
}

func newMenuShelfCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shelf <canteen-id> <food-id> <on|off>",
		Short: "Put a food on or off the shelf",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			canteenID, err := parseID(args[0], "canteen id")
			if err != nil {
				return err
			}
			foodID, err := parseID(args[1], "food id")
			if err != nil {
				return err
			}
			var onShelf bool
			switch args[2] {
			case "on":
				onShelf = true
			case "off":
				onShelf = false
			default:
				return fmt.Errorf("shelf state must be 'on' or 'off'")
			}
			e, err := newEnv()
			if err != nil {
				return err
			}
			return runMenuShelf(e, canteenID, foodID, onShelf)
		},
	}
}

func runMenuShelf(e *env, canteenID, foodID int64, onShelf bool) error {
	if _, err := e.visit("/admin/canteen"); err != nil {
		return err
	}

	if err := e.api.UpdateFoodShelf(canteenID, foodID, onShelf); err != nil {
		return e.finish(err)
	}

	state := "off the shelf"
	if onShelf {
		state = "on the shelf"
	}
	fmt.Printf("✓ Food #%d is now %s\n", foodID, state)
	return nil
}

func newMenuStockCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stock <canteen-id> <food-id> <count>",
		Short: "Set a food's remaining stock",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			canteenID, err := parseID(args[0], "canteen id")
			if err != nil {
				return err
			}
			foodID, err := parseID(args[1], "food id")
			if err != nil {
				return err
			}
			stock, err := strconv.Atoi(args[2])
			if err != nil || stock < 0 {
				return fmt.Errorf("invalid stock count: %s", args[2])
			}
			e, err := newEnv()
			if err != nil {
				return err
			}
			return runMenuStock(e, canteenID, foodID, stock)
		},
	}
}

func runMenuStock(e *env, canteenID, foodID int64, stock int) error {
	if _, err := e.visit("/admin/canteen"); err != nil {
		return err
	}

	if err := e.api.UpdateFoodStock(canteenID, foodID, stock); err != nil {
		return e.finish(err)
	}

	fmt.Printf("✓ Food #%d stock set to %d\n", foodID, stock)
	return nil
}
