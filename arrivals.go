package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bus-arrival-server/di"
	"bus-arrival-server/models"
	"bus-arrival-server/render"
	"bus-arrival-server/util"
)

var arrivalsCmd = &cobra.Command{
	Use:   "arrivals <stop_id>",
	Short: "Prints the arrival board for a bus stop",
	Args:  cobra.ExactArgs(1),
	RunE:  arrivals,
}

var (
	filterKind  string
	filterQuery string
	chartPath   string
	verbose     bool
)

func init() {
	arrivalsCmd.Flags().StringVarP(&filterKind, "filter", "f", "", "Filter type: bus-number, bus-operator or destination-bus-stop")
	arrivalsCmd.Flags().StringVarP(&filterQuery, "query", "q", "", "Filter value")
	arrivalsCmd.Flags().StringVar(&chartPath, "chart", "", "Also write an ETA bar chart to this HTML file")
	arrivalsCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print the raw services before the table")
}

func arrivals(cmd *cobra.Command, args []string) error {
	kind, err := models.ParseFilterKind(filterKind)
	if err != nil {
		return err
	}

	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	container, err := di.NewContainer(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer container.Close()

	s := container.ArrivalService.Lookup(cmd.Context(), args[0], models.FilterSpec{Kind: kind, Query: filterQuery})
	out := cmd.OutOrStdout()
	if s.Warning.Visible {
		return errors.New(s.Warning.Text)
	}

	if verbose {
		util.PrintServicesPartially(out, s.Services)
	}
	if s.Info.Visible {
		fmt.Fprintln(out, s.Info.Text)
	}
	render.PrintTable(out, render.RenderRows(s.Rows))

	if chartPath != "" {
		f, err := os.Create(chartPath)
		if err != nil {
			return fmt.Errorf("failed to create chart file: %w", err)
		}
		defer f.Close()
		if err := util.PlotArrivalEtas(f, s.StopID, s.Rows); err != nil {
			return fmt.Errorf("failed to plot arrivals: %w", err)
		}
	}
	return nil
}
