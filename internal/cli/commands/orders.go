package commands

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/canteen-dev/canteenctl/internal/cli/client"
)

// NewOrdersCmd creates the orders command group
func NewOrdersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Place and manage orders",
	}

	cmd.AddCommand(newOrdersPlaceCmd())
	cmd.AddCommand(newOrdersMyCmd())
	cmd.AddCommand(newOrdersShowCmd())
	cmd.AddCommand(newOrdersCancelCmd())
	cmd.AddCommand(newOrdersTimelineCmd())
	cmd.AddCommand(newOrdersByCanteenCmd())
	cmd.AddCommand(newOrdersSetStatusCmd())
	cmd.AddCommand(newOrdersDeliveryMethodCmd())
	cmd.AddCommand(newOrdersAssignDroneCmd())
	cmd.AddCommand(newOrdersStartDeliveryCmd())
	cmd.AddCommand(newOrdersMarkDeliveredCmd())

	return cmd
}

// parseOrderItems parses repeated "foodId:qty" values.
func parseOrderItems(specs []string) ([]client.OrderItemCreateRequest, error) {
	items := make([]client.OrderItemCreateRequest, 0, len(specs))
	for _, spec := range specs {
		parts := strings.SplitN(spec, ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid item %q, expected foodId:qty", spec)
		}
		foodID, err := strconv.ParseInt(parts[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid food id in %q", spec)
		}
		qty, err := strconv.Atoi(parts[1])
		if err != nil || qty <= 0 {
			return nil, fmt.Errorf("invalid quantity in %q", spec)
		}
		items = append(items, client.OrderItemCreateRequest{FoodID: foodID, Qty: qty})
	}
	return items, nil
}

func newOrdersPlaceCmd() *cobra.Command {
	var canteenID int64
	var address, method, remarks string
	var items []string

	cmd := &cobra.Command{
		Use:   "place",
		Short: "Place a new order",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv()
			if err != nil {
				return err
			}
			return runOrdersPlace(e, canteenID, address, method, remarks, items)
		},
	}

	cmd.Flags().Int64Var(&canteenID, "canteen", 0, "Canteen id")
	cmd.Flags().StringVar(&address, "address", "", "Delivery address")
	cmd.Flags().StringVar(&method, "method", "", "Delivery method (DRONE or MANUAL, will prompt if not provided)")
	cmd.Flags().StringVar(&remarks, "remarks", "", "Remarks for the canteen")
	cmd.Flags().StringArrayVar(&items, "item", nil, "Order line as foodId:qty (repeatable)")

	return cmd
}

func runOrdersPlace(e *env, canteenID int64, address, method, remarks string, itemSpecs []string) error {
	sess, err := e.visit("/user/orders")
	if err != nil {
		return err
	}
	if canteenID == 0 {
		return fmt.Errorf("canteen is required (use --canteen flag)")
	}
	if address == "" {
		return fmt.Errorf("delivery address is required (use --address flag)")
	}
	if len(itemSpecs) == 0 {
		return fmt.Errorf("at least one --item foodId:qty is required")
	}

	items, err := parseOrderItems(itemSpecs)
	if err != nil {
		return err
	}

	if method == "" {
		prompt := promptui.Select{
			Label: "Delivery method",
			Items: []string{string(client.DeliveryDrone), string(client.DeliveryManual)},
		}
		_, method, err = prompt.Run()
		if err != nil {
			return fmt.Errorf("delivery method selection cancelled: %w", err)
		}
	}

	order, err := e.api.CreateOrder(client.OrderCreateRequest{
		CustomerID:      sess.UserID,
		CanteenID:       canteenID,
		DeliveryMethod:  client.DeliveryMethod(method),
		DeliveryAddress: address,
		Remarks:         remarks,
		Items:           items,
	})
	if err != nil {
		return e.finish(err)
	}

	fmt.Printf("✓ Order #%d placed (%s)\n", order.ID, formatCents(order.AmountCent))
	if order.OtpCode != "" {
		fmt.Printf("  Pickup code: %s\n", order.OtpCode)
	}
	return nil
}

func newOrdersMyCmd() *cobra.Command {
	var page, size int
	var status string

	cmd := &cobra.Command{
		Use:   "my",
		Short: "List your own orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv()
			if err != nil {
				return err
			}
			return runOrdersMy(e, page, size, status)
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&size, "size", 20, "Page size")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status")

	return cmd
}

func printOrderTable(orders []client.OrderSummary, total int64) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCANTEEN\tSTATUS\tMETHOD\tAMOUNT\tCREATED")
	for _, order := range orders {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			order.ID, order.CanteenName, order.Status, order.DeliveryMethod,
			formatCents(order.AmountCent), formatTime(order.CreatedAt))
	}
	w.Flush()
	fmt.Printf("\n%d orders total\n", total)
}

func runOrdersMy(e *env, page, size int, status string) error {
	if _, err := e.visit("/user/orders"); err != nil {
		return err
	}

	result, err := e.api.ListMyOrders(client.OrderListParams{
		Page:   page,
		Size:   size,
		Status: client.OrderStatus(status),
	})
	if err != nil {
		return e.finish(err)
	}

	if len(result.Items) == 0 {
		fmt.Println("No orders found.")
		return nil
	}
	printOrderTable(result.Items, result.Total)
	return nil
}

func newOrdersShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show order details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "order id")
			if err != nil {
				return err
			}
			e, err := newEnv()
			if err != nil {
				return err
			}
			return runOrdersShow(e, id)
		},
	}
}

func runOrdersShow(e *env, id int64) error {
	// Any authenticated role may look at an order it is entitled to;
	// the backend enforces ownership.
	if _, err := e.visit(fmt.Sprintf("/orders/%d", id)); err != nil {
		return err
	}

	order, err := e.api.GetOrder(id)
	if err != nil {
		return e.finish(err)
	}

	fmt.Printf("Order #%d: %s", order.ID, order.Status)
	if order.StatusLabel != "" {
		fmt.Printf(" (%s)", order.StatusLabel)
	}
	fmt.Println()
	fmt.Printf("  Canteen: %s\n", order.CanteenName)
	fmt.Printf("  Delivery: %s to %s\n", order.DeliveryMethod, order.DeliveryAddress)
	if order.DroneCode != "" {
		fmt.Printf("  Drone: %s\n", order.DroneCode)
	}
	fmt.Printf("  Amount: %s\n", formatCents(order.AmountCent))
	if order.Remarks != "" {
		fmt.Printf("  Remarks: %s\n", order.Remarks)
	}
	if len(order.Items) > 0 {
		fmt.Println("  Items:")
		for _, item := range order.Items {
			fmt.Printf("    %dx %s (%s)\n", item.Qty, item.FoodName, formatCents(item.SubtotalCent))
		}
	}
	return nil
}

func newOrdersCancelCmd() *cobra.Command {
	var reason string
	var yes bool

	cmd := &cobra.Command{
		Use:   "cancel <id>",
		Short: "Cancel one of your orders",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "order id")
			if err != nil {
				return err
			}
			e, err := newEnv()
			if err != nil {
				return err
			}
			return runOrdersCancel(e, id, reason, yes)
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "Cancellation reason")
	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the confirmation prompt")

	return cmd
}

func runOrdersCancel(e *env, id int64, reason string, yes bool) error {
	if _, err := e.visit("/user/orders"); err != nil {
		return err
	}

	if !yes {
		prompt := promptui.Prompt{
			Label:     fmt.Sprintf("Cancel order #%d", id),
			IsConfirm: true,
		}
		if _, err := prompt.Run(); err != nil {
			fmt.Println("Kept the order.")
			return nil
		}
	}

	if err := e.api.CancelOrder(id, reason); err != nil {
		return e.finish(err)
	}
	fmt.Printf("✓ Order #%d cancelled\n", id)
	return nil
}

func newOrdersTimelineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "timeline <id>",
		Short: "Show an order's status history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "order id")
			if err != nil {
				return err
			}
			e, err := newEnv()
			if err != nil {
				return err
			}
			return runOrdersTimeline(e, id)
		},
	}
}

func runOrdersTimeline(e *env, id int64) error {
	if _, err := e.visit(fmt.Sprintf("/orders/%d", id)); err != nil {
		return err
	}

	timeline, err := e.api.GetOrderTimeline(id)
	if err != nil {
		return e.finish(err)
	}

	if len(timeline.Events) == 0 {
		fmt.Println("No events yet.")
		return nil
	}
	for _, event := range timeline.Events {
		line := fmt.Sprintf("%s  %s", formatTime(event.OccurredAt), event.Code)
		if event.Note != "" {
			line += "  (" + event.Note + ")"
		}
		fmt.Println(line)
	}
	return nil
}

func newOrdersByCanteenCmd() *cobra.Command {
	var page, size int
	var status string

	cmd := &cobra.Command{
		Use:   "by-canteen <canteen-id>",
		Short: "List a canteen's incoming orders",
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
			return runOrdersByCanteen(e, canteenID, page, size, status)
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&size, "size", 20, "Page size")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status")

	return cmd
}

func runOrdersByCanteen(e *env, canteenID int64, page, size int, status string) error {
	if _, err := e.visit("/admin/orders"); err != nil {
		return err
	}

	result, err := e.api.ListCanteenOrders(canteenID, client.OrderListParams{
		Page:   page,
		Size:   size,
		Status: client.OrderStatus(status),
	})
	if err != nil {
		return e.finish(err)
	}

	if len(result.Items) == 0 {
		fmt.Println("No orders found.")
		return nil
	}
	printOrderTable(result.Items, result.Total)
	return nil
}

func newOrdersSetStatusCmd() *cobra.Command {
	var note string

	cmd := &cobra.Command{
		Use:   "set-status <id> <status>",
		Short: "Advance an order's status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "order id")
			if err != nil {
				return err
			}
			e, err := newEnv()
			if err != nil {
				return err
			}
			return runOrdersSetStatus(e, id, client.OrderStatus(strings.ToUpper(args[1])), note)
		},
	}

	cmd.Flags().StringVar(&note, "note", "", "Note for the order's timeline")

	return cmd
}

func runOrdersSetStatus(e *env, id int64, status client.OrderStatus, note string) error {
	if _, err := e.visit("/admin/orders"); err != nil {
		return err
	}

	if err := e.api.UpdateOrderStatus(id, status, note); err != nil {
		return e.finish(err)
	}
	fmt.Printf("✓ Order #%d is now %s\n", id, status)
	return nil
}

func newOrdersDeliveryMethodCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delivery-method <id> <DRONE|MANUAL>",
		Short: "Switch an order between drone and manual delivery",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "order id")
			if err != nil {
				return err
			}
			e, err := newEnv()
			if err != nil {
				return err
			}
			return runOrdersDeliveryMethod(e, id, client.DeliveryMethod(strings.ToUpper(args[1])))
		},
	}
}

func runOrdersDeliveryMethod(e *env, id int64, method client.DeliveryMethod) error {
	if _, err := e.visit("/admin/orders"); err != nil {
		return err
	}
	if method != client.DeliveryDrone && method != client.DeliveryManual {
		return fmt.Errorf("method must be DRONE or MANUAL")
	}

	if err := e.api.ChangeDeliveryMethod(id, method); err != nil {
		return e.finish(err)
	}
	fmt.Printf("✓ Order #%d delivery method set to %s\n", id, method)
	return nil
}

func newOrdersAssignDroneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "assign-drone <order-id> [drone-id]",
		Short: "Assign a drone to an order",
		Long:  "Assign a drone to an order. Without a drone id, pick one interactively from the idle fleet.",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			orderID, err := parseID(args[0], "order id")
			if err != nil {
				return err
			}
			var droneID int64
			if len(args) == 2 {
				droneID, err = parseID(args[1], "drone id")
				if err != nil {
					return err
				}
			}
			e, err := newEnv()
			if err != nil {
				return err
			}
			return runOrdersAssignDrone(e, orderID, droneID)
		},
	}
}

func runOrdersAssignDrone(e *env, orderID, droneID int64) error {
	if _, err := e.visit("/admin/drone-assign"); err != nil {
		return err
	}

	if droneID == 0 {
		idle, err := e.api.ListDrones(client.DroneListParams{Page: 1, Size: 50, Status: client.DroneIdle})
		if err != nil {
			return e.finish(err)
		}
		if len(idle.Items) == 0 {
			return fmt.Errorf("no idle drones available")
		}

		labels := make([]string, len(idle.Items))
		for i, drone := range idle.Items {
			labels[i] = fmt.Sprintf("%s (battery %d%%)", drone.Code, drone.Battery)
		}
		prompt := promptui.Select{
			Label: "Select a drone",
			Items: labels,
			Size:  10,
		}
		index, _, err := prompt.Run()
		if err != nil {
			return fmt.Errorf("drone selection cancelled: %w", err)
		}
		droneID = idle.Items[index].ID
	}

	if err := e.api.AssignDrone(orderID, droneID); err != nil {
		return e.finish(err)
	}
	fmt.Printf("✓ Drone #%d assigned to order #%d\n", droneID, orderID)
	return nil
}

func newOrdersStartDeliveryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start-delivery <id>",
		Short: "Launch the assigned drone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "order id")
			if err != nil {
				return err
			}
			e, err := newEnv()
			if err != nil {
				return err
			}
			return runOrdersStartDelivery(e, id)
		},
	}
}

func runOrdersStartDelivery(e *env, id int64) error {
	if _, err := e.visit("/admin/drone-assign"); err != nil {
		return err
	}

	if err := e.api.StartDelivery(id); err != nil {
		return e.finish(err)
	}
	fmt.Printf("✓ Delivery started for order #%d\n", id)
	return nil
}

func newOrdersMarkDeliveredCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mark-delivered <id>",
		Short: "Record that the order was delivered",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "order id")
			if err != nil {
				return err
			}
			e, err := newEnv()
			if err != nil {
				return err
			}
			return runOrdersMarkDelivered(e, id)
		},
	}
}

func runOrdersMarkDelivered(e *env, id int64) error {
	if _, err := e.visit("/admin/drone-assign"); err != nil {
		return err
	}

	if err := e.api.MarkDelivered(id); err != nil {
		return e.finish(err)
	}
	fmt.Printf("✓ Order #%d marked delivered\n", id)
	return nil
}
