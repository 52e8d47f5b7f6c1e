package commands

import (
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/canteen-dev/canteenctl/internal/cli/client"
	"github.com/canteen-dev/canteenctl/internal/cli/session"
)

// NewLoginCmd creates the login command
func NewLoginCmd() *cobra.Command {
	var user, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the canteen service",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv()
			if err != nil {
				return err
			}
			return runLogin(e, user, password)
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "Username or phone (or set CANTEEN_USERNAME)")
	cmd.Flags().StringVar(&password, "password", "", "Password (or set CANTEEN_PASSWORD, will prompt if not provided)")

	return cmd
}

func runLogin(e *env, usernameOrPhone, password string) error {
	// Check for environment variables (useful for scripting)
	if usernameOrPhone == "" {
		usernameOrPhone = os.Getenv("CANTEEN_USERNAME")
	}
	if password == "" {
		password = os.Getenv("CANTEEN_PASSWORD")
	}

	if usernameOrPhone == "" {
		return fmt.Errorf("username is required (use --user flag or CANTEEN_USERNAME env var)")
	}

	// Prompt for password if not provided via flag or env var
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
			return fmt.Errorf("password is required in non-interactive mode (use --password flag or CANTEEN_PASSWORD env var)")
		}
	}

	result, err := e.api.Login(client.LoginRequest{
		UsernameOrPhone: usernameOrPhone,
		Password:        password,
	})
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	sess := session.Session{
		UserID:      result.UserID,
		Username:    result.Username,
		DisplayName: result.DisplayName,
		Role:        result.Role,
		Token:       result.Token,
	}
	if err := e.store.Set(sess); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	name := result.DisplayName
	if name == "" {
		name = usernameOrPhone
	}
	fmt.Println("✓ Login successful!")
	fmt.Printf("  User: %s\n", name)
	fmt.Printf("  Role: %s\n", result.Role)
	return nil
}
