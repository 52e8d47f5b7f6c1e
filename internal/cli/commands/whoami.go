package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewWhoamiCmd creates the whoami command
func NewWhoamiCmd() *cobra.Command {
	var remote bool

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv()
			if err != nil {
				return err
			}
			return runWhoami(e, remote)
		},
	}

	cmd.Flags().BoolVar(&remote, "remote", false, "Also fetch the server's view of the account")

	return cmd
}

func runWhoami(e *env, remote bool) error {
	sess, err := e.store.Current()
	if err != nil {
		return err
	}
	if sess == nil {
		fmt.Println("Not logged in.")
		return nil
	}

	name := sess.DisplayName
	if name == "" {
		name = sess.Username
	}
	fmt.Printf("User: %s (id %d)\n", name, sess.UserID)
	fmt.Printf("Role: %s\n", sess.Role)

	if !remote {
		return nil
	}

	user, err := e.api.Self()
	if err != nil {
		return e.finish(err)
	}
	fmt.Printf("\nServer record:\n")
	fmt.Printf("  Username: %s\n", user.Username)
	fmt.Printf("  Display name: %s\n", user.DisplayName)
	fmt.Printf("  Status: %s\n", user.Status)
	if user.Phone != "" {
		fmt.Printf("  Phone: %s\n", user.Phone)
	}
	return nil
}
