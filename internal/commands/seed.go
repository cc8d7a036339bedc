package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/balkashynov/onboard/internal/config"
	"github.com/balkashynov/onboard/internal/server/store"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the demo dataset into the server database",
	Long: `Populate the database with demo accounts, an onboarding template,
tasks and alerts. Useful for trying the dashboard locally; all demo
accounts use the password "password123".`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadServer()
		if err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}

		st, err := store.Open(cfg.DatabasePath)
		if err != nil {
			fmt.Println("Error opening database:", err)
			os.Exit(1)
		}
		defer st.Close()

		if err := st.Seed(); err != nil {
			if errors.Is(err, store.ErrAlreadySeeded) {
				fmt.Println("Database already has users, nothing to do.")
				return
			}
			fmt.Println("Error seeding:", err)
			os.Exit(1)
		}

		fmt.Println("✅ Demo data loaded")
		fmt.Println("   admin@onboard.local / password123 (admin)")
		fmt.Println("   hr@onboard.local    / password123 (hr)")
		fmt.Println("   maya@onboard.local  / password123 (employee)")
	},
}
