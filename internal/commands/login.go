package commands

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/balkashynov/onboard/internal/api"
)

var loginCmd = &cobra.Command{
	Use:   "login [email]",
	Short: "Sign in and persist the session",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		e, err := newEnv()
		if err != nil {
			fmt.Println("Error:", err)
			return
		}

		email := ""
		if len(args) == 1 {
			email = args[0]
		}
		reader := bufio.NewReader(os.Stdin)
		if email == "" {
			fmt.Print("Email: ")
			line, _ := reader.ReadString('\n')
			email = strings.TrimSpace(line)
		}

		fmt.Print("Password: ")
		raw, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			fmt.Println("Error reading password:", err)
			return
		}

		ctx, cancel := cmdContext()
		defer cancel()
		sess, err := e.client.Auth.Login(ctx, email, string(raw))
		if err != nil {
			if errors.Is(err, api.ErrInvalidCredentials) {
				fmt.Println("Invalid email or password.")
				return
			}
			fmt.Println("Login failed:", err)
			return
		}

		if err := e.store.Set(sess); err != nil {
			fmt.Println("Could not persist session:", err)
			return
		}
		fmt.Printf("✅ Logged in as %s (%s)\n", sess.Name, sess.Role)
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the persisted session",
	Run: func(cmd *cobra.Command, args []string) {
		e, err := newEnv()
		if err != nil {
			fmt.Println("Error:", err)
			return
		}
		e.store.Clear()
		fmt.Println("Logged out.")
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	Run: func(cmd *cobra.Command, args []string) {
		e, err := newEnv()
		if err != nil {
			fmt.Println("Error:", err)
			return
		}
		sess, err := e.requireSession()
		if err != nil {
			fmt.Println(err)
			return
		}
		fmt.Printf("%s <%s>, role %s, id %d\n", sess.Name, sess.Email, sess.Role, sess.ID)
	},
}
