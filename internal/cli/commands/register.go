package commands

import (
	"fmt"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/canteen-dev/canteenctl/internal/cli/client"
)

// NewRegisterCmd creates the register command
func NewRegisterCmd() *cobra.Command {
	var username, displayName, password, phone string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new customer account",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv()
			if err != nil {
				return err
			}
			return runRegister(e, username, displayName, password, phone)
		},
	}

	cmd.Flags().StringVar(&username, "user", "", "Username (student or staff number)")
	cmd.Flags().StringVar(&displayName, "name", "", "Display name")
	cmd.Flags().StringVar(&password, "password", "", "Password (will prompt if not provided)")
	cmd.Flags().StringVar(&phone, "phone", "", "Phone number (optional)")

	return cmd
}

func runRegister(e *env, username, displayName, password, phone string) error {
	if username == "" {
		return fmt.Errorf("username is required (use --user flag)")
	}
	if displayName == "" {
		return fmt.Errorf("display name is required (use --name flag)")
	}

	if password == "" {
		if term.IsTerminal(int(syscall.Stdin)) {
			fmt.Print("Password: ")
			bytePassword, err := term.ReadPassword(int(syscall.Stdin))
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
			password = string(bytePassword)
			fmt.Println()
		} else {
			return fmt.Errorf("password is required in non-interactive mode (use --password flag)")
		}
	}

	user, err := e.api.Register(client.RegisterRequest{
		Username:    username,
		DisplayName: displayName,
		Password:    password,
		Phone:       phone,
	})
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	fmt.Println("✓ Account created!")
	fmt.Printf("  User: %s (%s)\n", user.DisplayName, user.Username)
	fmt.Println("\nLog in with: canteenctl login --user " + user.Username)
	return nil
}
