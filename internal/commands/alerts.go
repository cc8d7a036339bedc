package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/onboard/internal/api"
	"github.com/balkashynov/onboard/internal/models"
)

var alertsCmd = &cobra.Command{
	Use:   "alerts",
	Short: "View and raise risk alerts (HR)",
}

var alertsLsCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List recent alerts",
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

		ctx, cancel := cmdContext()
		defer cancel()
		alerts, err := e.client.Alerts.List(ctx)
		if err != nil {
			fmt.Println("Error fetching alerts:", err)
			return
		}
		if len(alerts) == 0 {
			fmt.Println("No alerts.")
			return
		}

		fmt.Printf("%-4s %-10s %-50s %s\n", "ID", "TYPE", "MESSAGE", "WHEN")
		fmt.Println(strings.Repeat("-", 80))
		for _, a := range alerts {
			msg := a.Message
			if len(msg) > 48 {
				msg = msg[:45] + "..."
			}
			fmt.Printf("%-4d %-10s %-50s %s\n", a.ID, a.Type, msg, a.CreatedAt.Format("2006-01-02 15:04"))
		}
	},
}

var alertsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Raise an alert",
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

		message, _ := cmd.Flags().GetString("message")
		alertType, _ := cmd.Flags().GetString("type")
		userID, _ := cmd.Flags().GetUint("user")
		if message == "" {
			fmt.Println("--message is required.")
			return
		}

		req := api.CreateAlertRequest{Type: alertType, Message: message}
		if userID != 0 {
			req.TargetUserID = &userID
		}

		ctx, cancel := cmdContext()
		defer cancel()
		alert, err := e.client.Alerts.Create(ctx, req)
		if err != nil {
			fmt.Println("Error:", err)
			return
		}
		fmt.Printf("🔔 Alert #%d raised\n", alert.ID)
	},
}

func init() {
	alertsCreateCmd.Flags().String("message", "", "Alert message")
	alertsCreateCmd.Flags().String("type", models.AlertInfo, "Alert type: Info, Warning or Critical")
	alertsCreateCmd.Flags().Uint("user", 0, "Employee the alert concerns")

	alertsCmd.AddCommand(alertsLsCmd)
	alertsCmd.AddCommand(alertsCreateCmd)
}
