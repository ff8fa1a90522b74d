package arrivelah

import (
	"context"
	"log/slog"
	"time"

	"bus-arrival-server/logging"
	"bus-arrival-server/models"
	"bus-arrival-server/util"
)

// ArrivelahApiClientMock serves arrivals from a JSON fixture. Every estimate
// is rebased to now plus its duration_ms so the board always looks live.
type ArrivelahApiClientMock struct {
	fixturePath string
	now         func() time.Time
	logger      *slog.Logger
}

// NewArrivelahApiClientMock creates a new instance of ArrivelahApiClientMock
func NewArrivelahApiClientMock(fixturePath string, now func() time.Time, logger *slog.Logger) *ArrivelahApiClientMock {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ArrivelahApiClientMock{
		fixturePath: fixturePath,
		now:         now,
		logger:      logger.With(slog.String("component", "arrivelah_client_mock")),
	}
}

func (c *ArrivelahApiClientMock) FetchArrivals(ctx context.Context, stopID string) models.QueryResult {
	response, err := util.ReadServicesResponseFromJSON(c.fixturePath)
	if err != nil {
		logging.LogError(c.logger, "failed to read services fixture", err,
			slog.String("stop_id", stopID),
			slog.String("fixture", c.fixturePath))
		return models.TransportFailure()
	}
	if response.Services == nil {
		return models.MalformedFailure()
	}

	now := c.now()
	services := *response.Services
	for i := range services {
		rebase(&services[i].Next, now)
		if services[i].Next2 != nil {
			rebase(services[i].Next2, now)
		}
		if services[i].Next3 != nil {
			rebase(services[i].Next3, now)
		}
	}
	return models.SuccessResult(services)
}

func rebase(e *models.ArrivalEstimate, now time.Time) {
	e.Time = now.Add(time.Duration(e.DurationMs) * time.Millisecond)
}
