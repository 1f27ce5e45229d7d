package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "budgetctl",
		Short:         "Offline budget travel search over a YAML catalog",
		Long:          "Runs the budget travel preview, search and itinerary export against a catalog file, printing JSON.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("catalog", "catalog.yaml", "Path to the YAML catalog")
	root.PersistentFlags().Bool("derive-routes", false, "Price legs missing from the route table by distance")
	root.PersistentFlags().Bool("verbose", false, "Log to stderr")

	root.AddCommand(previewCmd())
	root.AddCommand(searchCmd())
	root.AddCommand(exportCmd())
	return root
}
