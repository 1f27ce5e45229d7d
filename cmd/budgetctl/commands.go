package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"travelagg/internal/budget"
	"travelagg/internal/catalog"
	"travelagg/pkg/cache"
	"travelagg/pkg/logger"
)

func previewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "preview",
		Short: "Summarise destinations, price ranges and popular durations",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(cmd)
			if err != nil {
				return err
			}
			preview, err := svc.Preview(cmd.Context())
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), preview)
		},
	}
}

type searchFlags struct {
	budget  float64
	persons int
	days    int
	place   string
}

func (f *searchFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.budget, "budget", 0, "Total budget in rupees for the whole party")
	cmd.Flags().IntVar(&f.persons, "persons", 1, "Number of travellers")
	cmd.Flags().IntVar(&f.days, "days", 0, "Maximum trip length in days")
	cmd.Flags().StringVar(&f.place, "place", "", "Only use packages at this destination (case-insensitive, word prefixes match)")
	_ = cmd.MarkFlagRequired("budget")
	_ = cmd.MarkFlagRequired("days")
}

func (f *searchFlags) request() budget.Request {
	return budget.Request{
		Budget:     catalog.Rupees(f.budget),
		NumPersons: f.persons,
		NumDays:    f.days,
		Place:      f.place,
	}
}

func searchCmd() *cobra.Command {
	var flags searchFlags

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Find itineraries that fit a budget",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(cmd)
			if err != nil {
				return err
			}
			resp, err := svc.Search(cmd.Context(), flags.request())
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), resp)
		},
	}

	flags.register(cmd)
	return cmd
}

func exportCmd() *cobra.Command {
	var (
		flags searchFlags
		index int
		out   string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write one search result as a PDF itinerary",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(cmd)
			if err != nil {
				return err
			}
			resp, err := svc.Search(cmd.Context(), flags.request())
			if err != nil {
				return err
			}
			if index < 0 || index >= len(resp.Combinations) {
				return fmt.Errorf("--index %d out of range: search returned %d combinations", index, len(resp.Combinations))
			}

			combo := resp.Combinations[index]
			pdf, err := svc.Export(cmd.Context(), combo, flags.persons)
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, pdf, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}

			return writeJSON(cmd.OutOrStdout(), map[string]any{
				"file":      out,
				"bytes":     len(pdf),
				"itinerary": combo.ItinerarySummary,
				"total":     combo.TotalCost,
			})
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVar(&index, "index", 0, "Which combination of the search result to export")
	cmd.Flags().StringVar(&out, "out", "itinerary.pdf", "Output file")
	return cmd
}

// newService builds a budget service over the catalog file named by --catalog.
func newService(cmd *cobra.Command) (*budget.Service, error) {
	path, _ := cmd.Flags().GetString("catalog")
	derive, _ := cmd.Flags().GetBool("derive-routes")
	verbose, _ := cmd.Flags().GetBool("verbose")

	snap, err := catalog.LoadFile(path)
	if err != nil {
		return nil, err
	}

	logOut := io.Discard
	if verbose {
		logOut = cmd.ErrOrStderr()
	}
	log := logger.NewWithWriter("development", logOut)

	return budget.NewService(catalog.NewStaticProvider(snap), cache.NewMemoryCache(), 0, log,
		budget.WithDerivedRoutes(derive)), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
