package commands

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/canteen-dev/canteenctl/internal/cli/client"
)

// NewCanteensCmd creates the canteens command group
func NewCanteensCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "canteens",
		Short: "Browse and manage canteens",
	}

	cmd.AddCommand(newCanteensListCmd())
	cmd.AddCommand(newCanteensShowCmd())
	cmd.AddCommand(newCanteensCreateCmd())
	cmd.AddCommand(newCanteensUpdateCmd())
	cmd.AddCommand(newCanteensStatusCmd())

	return cmd
}

func newCanteensListCmd() *cobra.Command {
	var page, size int
	var status string

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List canteens",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv()
			if err != nil {
				return err
			}
			return runCanteensList(e, page, size, status)
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&size, "size", 20, "Page size")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status (OPEN, CLOSED)")

	return cmd
}

func runCanteensList(e *env, page, size int, status string) error {
	if _, err := e.visit("/user/home"); err != nil {
		return err
	}

	result, err := e.api.ListCanteens(client.CanteenListParams{
		Page:   page,
		Size:   size,
		Status: client.CanteenOpenStatus(status),
	})
	if err != nil {
		return e.finish(err)
	}

	if len(result.Items) == 0 {
		fmt.Println("No canteens found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tLOCATION\tSTATUS")
	for _, canteen := range result.Items {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", canteen.ID, canteen.Name, canteen.Location, canteen.OpenStatus)
	}
	w.Flush()

	fmt.Printf("\n%d canteens total\n", result.Total)
	return nil
}

func newCanteensShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show canteen details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid canteen id: %s", args[0])
			}
			e, err := newEnv()
			if err != nil {
				return err
			}
			return runCanteensShow(e, id)
		},
	}
}

func runCanteensShow(e *env, id int64) error {
	if _, err := e.visit("/user/home"); err != nil {
		return err
	}

	canteen, err := e.api.GetCanteen(id)
	if err != nil {
		return e.finish(err)
	}

	fmt.Printf("Canteen #%d: %s\n", canteen.ID, canteen.Name)
	fmt.Printf("  Location: %s\n", canteen.Location)
	fmt.Printf("  Status: %s\n", canteen.OpenStatus)
	if len(canteen.Managers) > 0 {
		fmt.Println("  Managers:")
		for _, m := range canteen.Managers {
			fmt.Printf("    %s (%s)\n", m.DisplayName, m.Username)
		}
	}
	return nil
}

func newCanteensCreateCmd() *cobra.Command {
	var name, location string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a new canteen",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv()
			if err != nil {
				return err
			}
			return runCanteensCreate(e, name, location)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Canteen name")
	cmd.Flags().StringVar(&location, "location", "", "Canteen location")

	return cmd
}

func runCanteensCreate(e *env, name, location string) error {
	if _, err := e.visit("/admin/canteen"); err != nil {
		return err
	}
	if name == "" {
		return fmt.Errorf("name is required (use --name flag)")
	}
	if location == "" {
		return fmt.Errorf("location is required (use --location flag)")
	}

	canteen, err := e.api.CreateCanteen(client.CanteenCreateRequest{
		Name:     name,
		Location: location,
	})
	if err != nil {
		return e.finish(err)
	}

	fmt.Printf("✓ Canteen #%d created: %s\n", canteen.ID, canteen.Name)
	return nil
}

func newCanteensUpdateCmd() *cobra.Command {
	var name, location string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a canteen",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid canteen id: %s", args[0])
			}
			e, err := newEnv()
			if err != nil {
				return err
			}
			return runCanteensUpdate(e, id, name, location)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&location, "location", "", "New location")

	return cmd
}

func runCanteensUpdate(e *env, id int64, name, location string) error {
	if _, err := e.visit("/admin/canteen"); err != nil {
		return err
	}
	if name == "" && location == "" {
		return fmt.Errorf("nothing to update (use --name or --location)")
	}

	canteen, err := e.api.UpdateCanteen(id, client.CanteenUpdateRequest{
		Name:     name,
		Location: location,
	})
	if err != nil {
		return e.finish(err)
	}

	fmt.Printf("✓ Canteen #%d updated: %s\n", canteen.ID, canteen.Name)
	return nil
}

func newCanteensStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <OPEN|CLOSED>",
		Short: "Open or close a canteen",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid canteen id: %s", args[0])
			}
			e, err := newEnv()
			if err != nil {
				return err
			}
			return runCanteensStatus(e, id, client.CanteenOpenStatus(args[1]))
		},
	}
}

func runCanteensStatus(e *env, id int64, status client.CanteenOpenStatus) error {
	if _, err := e.visit("/admin/canteen"); err != nil {
		return err
	}
	if status != client.CanteenOpen && status != client.CanteenClosed {
		return fmt.Errorf("status must be OPEN or CLOSED")
	}

	if err := e.api.UpdateCanteenStatus(id, status); err != nil {
		return e.finish(err)
	}

	fmt.Printf("✓ Canteen #%d is now %s\n", id, status)
	return nil
}
