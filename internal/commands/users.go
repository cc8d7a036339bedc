package commands

import (
	"fmt"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/balkashynov/onboard/internal/api"
	"github.com/balkashynov/onboard/internal/models"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage accounts (HR)",
}

var usersCreateCmd = &cobra.Command{
	Use:   "create <email>",
	Short: "Create an account",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		e, err := newEnv()
		if err != nil {
			fmt.Println("Error:", err)
			return
		}
		if _, err := e.requireManagement(); err != nil {
			fmt.Println(err)
			return
		}

		name, _ := cmd.Flags().GetString("name")
		role, _ := cmd.Flags().GetString("role")
		dept, _ := cmd.Flags().GetString("department")
		if name == "" {
			fmt.Println("--name is required.")
			return
		}

		fmt.Print("Password for the new account: ")
		raw, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			fmt.Println("Error reading password:", err)
			return
		}
		if len(raw) < 8 {
			fmt.Println("Password must be at least 8 characters.")
			return
		}

		ctx, cancel := cmdContext()
		defer cancel()
		user, err := e.client.Users.Create(ctx, api.CreateUserRequest{
			Name:       name,
			Email:      args[0],
			Password:   string(raw),
			Role:       role,
			Department: dept,
		})
		if err != nil {
			fmt.Println("Error:", err)
			return
		}
		fmt.Printf("✅ Account #%d created for %s (%s)\n", user.ID, user.Name, user.Role)
	},
}

func init() {
	usersCreateCmd.Flags().String("name", "", "Full name")
	usersCreateCmd.Flags().String("role", models.RoleEmployee, "Role: employee, intern, hr or admin")
	usersCreateCmd.Flags().String("department", "", "Department")

	usersCmd.AddCommand(usersCreateCmd)
}
