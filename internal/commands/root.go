package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/onboard/internal/api"
	"github.com/balkashynov/onboard/internal/config"
	"github.com/balkashynov/onboard/internal/models"
	"github.com/balkashynov/onboard/internal/session"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "onboard",
	Short: "HR onboarding dashboard for the terminal",
	Long: `onboard is a terminal client for the HR onboarding service.
Employees track their checklist; HR and admins monitor risk, manage
templates and pull reports. Run 'onboard serve' to host the API.`,
}

// env bundles what every authenticated command needs.
type env struct {
	store  *session.Store
	client *api.Client
}

// newEnv restores the durable session and builds the API client.
func newEnv() (*env, error) {
	dir, err := session.DefaultDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data directory: %w", err)
	}
	store := session.NewStore(dir)
	store.Restore()
	client := api.NewClient(config.APIBaseURL(), store)
	return &env{store: store, client: client}, nil
}

// requireSession errors when nobody is logged in.
func (e *env) requireSession() (models.Session, error) {
	sess, ok := e.store.Current()
	if !ok {
		return models.Session{}, errors.New("not logged in, run 'onboard login' first")
	}
	return sess, nil
}

// requireManagement additionally checks for the hr/admin role so a
// disallowed operation is never even attempted.
func (e *env) requireManagement() (models.Session, error) {
	sess, err := e.requireSession()
	if err != nil {
		return models.Session{}, err
	}
	if !models.IsManagement(sess.Role) {
		return models.Session{}, errors.New("this command needs an HR or admin account")
	}
	return sess, nil
}

func cmdContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("onboard %s (commit %s, built %s)\n", version, commit, date)
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(tasksCmd)
	rootCmd.AddCommand(templatesCmd)
	rootCmd.AddCommand(alertsCmd)
	rootCmd.AddCommand(reportsCmd)
	rootCmd.AddCommand(usersCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(versionCmd)
}
