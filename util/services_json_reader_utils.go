package util

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"bus-arrival-server/models"
)

// ReadServicesResponseFromJSON loads an upstream ServicesResponse from JSON on disk.
func ReadServicesResponseFromJSON(filePath string) (*models.ServicesResponse, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var resp models.ServicesResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ServicesResponse: %w", err)
	}
	return &resp, nil
}

// PrintServicesPartially prints key fields of each service.
func PrintServicesPartially(w io.Writer, services []models.BusService) {
	fmt.Fprintf(w, "Services: %d\n", len(services))
	for _, s := range services {
		fmt.Fprintf(w, "  %s (%s) -> %s at %s\n", s.Number, s.Operator, s.Next.DestinationCode, s.Next.Time.Format("15:04:05"))
	}
}
