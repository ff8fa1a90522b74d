package arrivelah

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/pkg/errors"

	"bus-arrival-server/api"
	"bus-arrival-server/logging"
	"bus-arrival-server/models"
)

const STOP_ID_QUERY_ARG = "id"

// ArrivelahApiClient embeds the common HTTPClient
type ArrivelahApiClient struct {
	*api.HTTPClient
	logger *slog.Logger
}

// NewArrivelahApiClient creates a new instance of ArrivelahApiClient
func NewArrivelahApiClient(httpClient *api.HTTPClient, logger *slog.Logger) *ArrivelahApiClient {
	if logger == nil {
		logger = slog.Default()
	}
	return &ArrivelahApiClient{
		HTTPClient: httpClient,
		logger:     logger.With(slog.String("component", "arrivelah_client")),
	}
}

// FetchArrivals issues one GET <base>?id=<stopID>. There are no retries.
func (c *ArrivelahApiClient) FetchArrivals(ctx context.Context, stopID string) models.QueryResult {
	var response models.ServicesResponse
	query := url.Values{STOP_ID_QUERY_ARG: {stopID}}

	err := c.Request(ctx, "GET", "/", query, nil, nil, &response)
	switch {
	case errors.Is(err, api.ErrDecodeResponse):
		logging.LogError(c.logger, "arrivals response is not valid JSON", err,
			slog.String("stop_id", stopID))
		return models.MalformedFailure()
	case err != nil:
		logging.LogError(c.logger, "failed to retrieve arrivals", err,
			slog.String("stop_id", stopID))
		return models.TransportFailure()
	case response.Services == nil:
		c.logger.Warn("arrivals response has no services field", slog.String("stop_id", stopID))
		return models.MalformedFailure()
	}

	logging.LogOperation(c.logger, "arrivals_retrieved",
		slog.String("stop_id", stopID),
		slog.Int("services_count", len(*response.Services)))
	return models.SuccessResult(*response.Services)
}
