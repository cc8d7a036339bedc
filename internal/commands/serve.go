package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/balkashynov/onboard/internal/config"
	"github.com/balkashynov/onboard/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the onboarding API server",
	Long: `Start the HTTP API the dashboard talks to. Configuration comes
from the environment (or a .env file): ONBOARD_HTTP_PORT,
ONBOARD_DB_PATH, ONBOARD_JWT_SECRET, ONBOARD_TOKEN_TTL.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadServer()
		if err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
		if err := server.Run(cfg); err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
	},
}
