package arrivelah

import (
	"context"

	"bus-arrival-server/models"
)

// ArrivalsAPI defines the interface for retrieving stop arrivals. Failures
// are reported inside the QueryResult, never as an error.
type ArrivalsAPI interface {
	FetchArrivals(ctx context.Context, stopID string) models.QueryResult
}
