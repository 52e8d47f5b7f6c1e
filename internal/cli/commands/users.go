package commands

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/canteen-dev/canteenctl/internal/cli/client"
	"github.com/canteen-dev/canteenctl/internal/cli/session"
)

// NewUsersCmd creates the users command group (staff tooling)
func NewUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage user accounts",
	}

	cmd.AddCommand(newUsersListCmd())
	cmd.AddCommand(newUsersSearchCmd())
	cmd.AddCommand(newUsersShowCmd())
	cmd.AddCommand(newUsersSetStatusCmd())
	cmd.AddCommand(newUsersSetRoleCmd())

	return cmd
}

func printUserTable(users []client.User, total int64) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tUSERNAME\tNAME\tROLE\tSTATUS")
	for _, user := range users {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			user.ID, user.Username, user.DisplayName, user.Role, user.Status)
	}
	w.Flush()
	fmt.Printf("\n%d users total\n", total)
}

func newUsersListCmd() *cobra.Command {
	var page, size int
	var role, status string

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List user accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv()
			if err != nil {
				return err
			}
			return runUsersList(e, client.UserListParams{
				Page:   page,
				Size:   size,
				Role:   session.Role(role),
				Status: client.UserStatus(status),
			})
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&size, "size", 20, "Page size")
	cmd.Flags().StringVar(&role, "role", "", "Filter by role (CUSTOMER, CANTEEN, ADMIN)")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status (ACTIVE, LOCKED, DISABLED)")

	return cmd
}

func runUsersList(e *env, params client.UserListParams) error {
	if _, err := e.visit("/admin/users"); err != nil {
		return err
	}

	result, err := e.api.ListUsers(params)
	if err != nil {
		return e.finish(err)
	}

	if len(result.Items) == 0 {
		fmt.Println("No users found.")
		return nil
	}
	printUserTable(result.Items, result.Total)
	return nil
}

func newUsersSearchCmd() *cobra.Command {
	var page, size int

	cmd := &cobra.Command{
		Use:   "search <keyword>",
		Short: "Search accounts by name, username or phone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv()
			if err != nil {
				return err
			}
			return runUsersSearch(e, args[0], page, size)
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&size, "size", 20, "Page size")

	return cmd
}

func runUsersSearch(e *env, keyword string, page, size int) error {
	if _, err := e.visit("/admin/users"); err != nil {
		return err
	}

	result, err := e.api.SearchUsers(keyword, page, size)
	if err != nil {
		return e.finish(err)
	}

	if len(result.Items) == 0 {
		fmt.Println("No users found.")
		return nil
	}
	printUserTable(result.Items, result.Total)
	return nil
}

func newUsersShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "user id")
			if err != nil {
				return err
			}
			e, err := newEnv()
			if err != nil {
				return err
			}
			return runUsersShow(e, id)
		},
	}
}

func runUsersShow(e *env, id int64) error {
	if _, err := e.visit("/admin/users"); err != nil {
		return err
	}

	user, err := e.api.GetUser(id)
	if err != nil {
		return e.finish(err)
	}

	fmt.Printf("User #%d: %s\n", user.ID, user.DisplayName)
	fmt.Printf("  Username: %s\n", user.Username)
	fmt.Printf("  Role: %s\n", user.Role)
	fmt.Printf("  Status: %s\n", user.Status)
	if user.Phone != "" {
		fmt.Printf("  Phone: %s\n", user.Phone)
	}
	fmt.Printf("  Created: %s\n", formatTime(user.CreatedAt))
	return nil
}

func newUsersSetStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-status <id> <ACTIVE|LOCKED|DISABLED>",
		Short: "Lock, disable or re-activate an account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "user id")
			if err != nil {
				return err
			}
			e, err := newEnv()
			if err != nil {
				return err
			}
			return runUsersSetStatus(e, id, client.UserStatus(strings.ToUpper(args[1])))
		},
	}
}

func runUsersSetStatus(e *env, id int64, status client.UserStatus) error {
	if _, err := e.visit("/admin/users"); err != nil {
		return err
	}
	switch status {
	case client.UserActive, client.UserLocked, client.UserDisabled:
	default:
		return fmt.Errorf("status must be ACTIVE, LOCKED or DISABLED")
	}

	if err := e.api.UpdateUserStatus(id, status); err != nil {
		return e.finish(err)
	}
	fmt.Printf("✓ User #%d is now %s\n", id, status)
	return nil
}

func newUsersSetRoleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-role <id> <CUSTOMER|CANTEEN|ADMIN>",
		Short: "Change an account's role",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "user id")
			if err != nil {
				return err
			}
			e, err := newEnv()
			if err != nil {
				return err
			}
			return runUsersSetRole(e, id, session.Role(strings.ToUpper(args[1])))
		},
	}
}

func runUsersSetRole(e *env, id int64, role session.Role) error {
	if _, err := e.visit("/admin/users"); err != nil {
		return err
	}
	switch role {
	case session.RoleCustomer, session.RoleCanteen, session.RoleAdmin:
	default:
		return fmt.Errorf("role must be CUSTOMER, CANTEEN or ADMIN")
	}

	if err := e.api.UpdateUserRole(id, role); err != nil {
		return e.finish(err)
	}
	fmt.Printf("✓ User #%d role set to %s\n", id, role)
	return nil
}
