package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "Onboarding reports and exports (HR)",
}

var reportsSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the onboarding summary report",
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
		summary, err := e.client.Reports.Summary(ctx)
		if err != nil {
			fmt.Println("Error:", err)
			return
		}

		fmt.Printf("Employees: %d   Avg completion: %.0f%%\n", summary.TotalEmployees, summary.AvgCompletion)
		rs := summary.RiskSummary
		fmt.Printf("Risk: %d good / %d neutral / %d warning / %d critical\n",
			rs.Good, rs.Neutral, rs.Warning, rs.Critical)

		if len(summary.TopRisks) > 0 {
			fmt.Println("\nNeeds attention:")
			for _, r := range summary.TopRisks {
				fmt.Printf("  %-24s %-16s %-8s %.0f%%\n", r.Name, r.Department, r.Risk, r.Score)
			}
		}
		if len(summary.DepartmentBreakdown) > 0 {
			fmt.Println("\nBy department:")
			for _, d := range summary.DepartmentBreakdown {
				fmt.Printf("  %-24s %d\n", d.Department, d.Count)
			}
		}
	},
}

var reportsTrendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Print the weekly risk trend",
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
		trend, err := e.client.Reports.WeeklyTrend(ctx)
		if err != nil {
			fmt.Println("Error:", err)
			return
		}

		fmt.Printf("%-12s %-6s %-8s %s\n", "DATE", "GOOD", "WARNING", "CRITICAL")
		fmt.Println(strings.Repeat("-", 36))
		for _, p := range trend {
			fmt.Printf("%-12s %-6d %-8d %d\n", p.Date, p.Good, p.Warning, p.Critical)
		}
	},
}

var reportsDownloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Download the report as CSV or PDF",
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

		format, _ := cmd.Flags().GetString("format")
		out, _ := cmd.Flags().GetString("out")

		ctx, cancel := cmdContext()
		defer cancel()

		var data []byte
		switch format {
		case "csv":
			data, err = e.client.Reports.DownloadCSV(ctx)
		case "pdf":
			data, err = e.client.Reports.DownloadPDF(ctx)
		default:
			fmt.Println("--format must be csv or pdf")
			return
		}
		if err != nil {
			fmt.Println("Error:", err)
			return
		}

		if out == "" {
			out = "onboarding_report." + format
		}
		if err := os.WriteFile(out, data, 0644); err != nil {
			fmt.Println("Error writing file:", err)
			return
		}
		fmt.Printf("📄 Report saved to %s (%d bytes)\n", out, len(data))
	},
}

func init() {
	reportsDownloadCmd.Flags().String("format", "csv", "Export format: csv or pdf")
	reportsDownloadCmd.Flags().String("out", "", "Output path (defaults to onboarding_report.<format>)")

	reportsCmd.AddCommand(reportsSummaryCmd)
	reportsCmd.AddCommand(reportsTrendCmd)
	reportsCmd.AddCommand(reportsDownloadCmd)
}
