package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/onboard/internal/query"
	"github.com/balkashynov/onboard/internal/tui"
)

var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"ui"},
	Short:   "Open the interactive dashboard",
	Long:    "Open the interactive dashboard. Shows the login form when no session is persisted; afterwards the view depends on your role.",
	Run: func(cmd *cobra.Command, args []string) {
		e, err := newEnv()
		if err != nil {
			fmt.Println("Error:", err)
			return
		}
		if err := tui.Run(e.client, e.store, query.NewCache()); err != nil {
			fmt.Println("Error:", err)
		}
	},
}
