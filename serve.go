package main

import (
	"github.com/spf13/cobra"

	"bus-arrival-server/di"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the arrival board over HTTP",
	Args:  cobra.NoArgs,
	RunE:  serve,
}

func serve(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	container, err := di.NewContainer(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer container.Close()

	return container.BusArrivalHttpServer.Start()
}
