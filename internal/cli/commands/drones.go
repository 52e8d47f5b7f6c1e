package commands

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/canteen-dev/canteenctl/internal/cli/client"
)

// NewDronesCmd creates the drones command group
func NewDronesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drones",
		Short: "Manage the delivery drone fleet",
	}

	cmd.AddCommand(newDronesListCmd())
	cmd.AddCommand(newDronesShowCmd())
	cmd.AddCommand(newDronesAddCmd())
	cmd.AddCommand(newDronesUpdateCmd())
	cmd.AddCommand(newDronesSetStatusCmd())
	cmd.AddCommand(newDronesRemoveCmd())

	return cmd
}

func newDronesListCmd() *cobra.Command {
	var page, size int
	var status string

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List drones",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv()
			if err != nil {
				return err
			}
			return runDronesList(e, page, size, status)
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&size, "size", 20, "Page size")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status (IDLE, IN_MISSION, MAINTENANCE)")

	return cmd
}

func runDronesList(e *env, page, size int, status string) error {
	if _, err := e.visit("/admin/drone-assign"); err != nil {
		return err
	}

	result, err := e.api.ListDrones(client.DroneListParams{
		Page:   page,
		Size:   size,
		Status: client.DroneStatus(status),
	})
	if err != nil {
		return e.finish(err)
	}

	if len(result.Items) == 0 {
		fmt.Println("No drones found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCODE\tSTATUS\tBATTERY\tLOCATION")
	for _, drone := range result.Items {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d%%\t%s\n",
			drone.ID, drone.Code, drone.Status, drone.Battery, drone.Location)
	}
	w.Flush()

	fmt.Printf("\n%d drones total\n", result.Total)
	return nil
}

func newDronesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show drone details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "drone id")
			if err != nil {
				return err
			}
			e, err := newEnv()
			if err != nil {
				return err
			}
			return runDronesShow(e, id)
		},
	}
}

func runDronesShow(e *env, id int64) error {
	if _, err := e.visit("/admin/drone-assign"); err != nil {
		return err
	}

	drone, err := e.api.GetDrone(id)
	if err != nil {
		return e.finish(err)
	}

	fmt.Printf("Drone #%d: %s\n", drone.ID, drone.Code)
	if drone.Model != "" {
		fmt.Printf("  Model: %s\n", drone.Model)
	}
	fmt.Printf("  Status: %s\n", drone.Status)
	fmt.Printf("  Battery: %d%%\n", drone.Battery)
	if drone.MaxPayloadKg > 0 {
		fmt.Printf("  Max payload: %.1f kg\n", drone.MaxPayloadKg)
	}
	if drone.Location != "" {
		fmt.Printf("  Location: %s\n", drone.Location)
	}
	return nil
}

func newDronesAddCmd() *cobra.Command {
	var code, model, location, note string
	var maxPayload float64
	var battery int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a new drone",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv()
			if err != nil {
				return err
			}
			return runDronesAdd(e, client.DroneCreateRequest{
				Code:         code,
				Model:        model,
				MaxPayloadKg: maxPayload,
				Battery:      battery,
				Location:     location,
				Note:         note,
			})
		},
	}

	cmd.Flags().StringVar(&code, "code", "", "Drone code")
	cmd.Flags().StringVar(&model, "model", "", "Drone model")
	cmd.Flags().Float64Var(&maxPayload, "max-payload", 0, "Max payload in kg")
	cmd.Flags().IntVar(&battery, "battery", 100, "Battery percentage")
	cmd.Flags().StringVar(&location, "location", "", "Current location")
	cmd.Flags().StringVar(&note, "note", "", "Free-form note")

	return cmd
}

func runDronesAdd(e *env, req client.DroneCreateRequest) error {
	if _, err := e.visit("/admin/drone-assign"); err != nil {
		return err
	}
	if req.Code == "" {
		return fmt.Errorf("code is required (use --code flag)")
	}

	drone, err := e.api.CreateDrone(req)
	if err != nil {
		return e.finish(err)
	}

	fmt.Printf("✓ Drone #%d registered: %s\n", drone.ID, drone.Code)
	return nil
}

func newDronesUpdateCmd() *cobra.Command {
	var code, model, note string
	var maxPayload float64
	var battery int

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a drone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "drone id")
			if err != nil {
				return err
			}
			e, err := newEnv()
			if err != nil {
				return err
			}
			return runDronesUpdate(e, id, client.DroneUpdateRequest{
				Code:         code,
				Model:        model,
				MaxPayloadKg: maxPayload,
				Battery:      battery,
				Note:         note,
			})
		},
	}

	cmd.Flags().StringVar(&code, "code", "", "New code")
	cmd.Flags().StringVar(&model, "model", "", "New model")
	cmd.Flags().Float64Var(&maxPayload, "max-payload", 0, "New max payload in kg")
	cmd.Flags().IntVar(&battery, "battery", 0, "New battery percentage")
	cmd.Flags().StringVar(&note, "note", "", "New note")

	return cmd
}

func runDronesUpdate(e *env, id int64, req client.DroneUpdateRequest) error {
	if _, err := e.visit("/admin/drone-assign"); err != nil {
		return err
	}

	drone, err := e.api.UpdateDrone(id, req)
	if err != nil {
		return e.finish(err)
	}

	fmt.Printf("✓ Drone #%d updated: %s\n", drone.ID, drone.Code)
	return nil
}

func newDronesSetStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-status <id> <IDLE|IN_MISSION|MAINTENANCE>",
		Short: "Change a drone's status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "drone id")
			if err != nil {
				return err
			}
			e, err := newEnv()
			if err != nil {
				return err
			}
			return runDronesSetStatus(e, id, client.DroneStatus(strings.ToUpper(args[1])))
		},
	}
}

func runDronesSetStatus(e *env, id int64, status client.DroneStatus) error {
	if _, err := e.visit("/admin/drone-assign"); err != nil {
		return err
	}
	switch status {
	case client.DroneIdle, client.DroneInMission, client.DroneMaintenance:
	default:
		return fmt.Errorf("status must be IDLE, IN_MISSION or MAINTENANCE")
	}

	if err := e.api.UpdateDroneStatus(id, status); err != nil {
		return e.finish(err)
	}
	fmt.Printf("✓ Drone #%d is now %s\n", id, status)
	return nil
}

func newDronesRemoveCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Retire a drone from the fleet",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "drone id")
			if err != nil {
				return err
			}
			e, err := newEnv()
			if err != nil {
				return err
			}
			return runDronesRemove(e, id, yes)
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the confirmation prompt")

	return cmd
}

func runDronesRemove(e *env, id int64, yes bool) error {
	if _, err := e.visit("/admin/drone-assign"); err != nil {
		return err
	}

	if !yes {
		prompt := promptui.Prompt{
			Label:     fmt.Sprintf("Retire drone #%d", id),
			IsConfirm: true,
		}
		if _, err := prompt.Run(); err != nil {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	if err := e.api.DeleteDrone(id); err != nil {
		return e.finish(err)
	}
	fmt.Printf("✓ Drone #%d retired\n", id)
	return nil
}
