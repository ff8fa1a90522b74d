package services

import (
	"context"
	"log/slog"
	"time"

	"bus-arrival-server/api/arrivelah"
	"bus-arrival-server/dao/redis"
	"bus-arrival-server/logging"
	"bus-arrival-server/models"
	"bus-arrival-server/pipeline"
)

// ArrivalService drives the board: it validates queries, fetches arrivals and
// keeps each session's regions and rows in step.
type ArrivalService struct {
	sessionDao  *redis.RedisSessionDAO
	arrivalsApi arrivelah.ArrivalsAPI
	location    *time.Location
	now         func() time.Time
	logger      *slog.Logger
}

func NewArrivalService(
	sessionDao *redis.RedisSessionDAO,
	arrivalsApi arrivelah.ArrivalsAPI,
	location *time.Location,
	logger *slog.Logger) *ArrivalService {

	if location == nil {
		location = time.Local
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ArrivalService{
		sessionDao:  sessionDao,
		arrivalsApi: arrivalsApi,
		location:    location,
		now:         time.Now,
		logger:      logger.With(slog.String("component", "arrival_service")),
	}
}

// SetClock replaces the wall clock, used by tests.
func (as *ArrivalService) SetClock(now func() time.Time) {
	as.now = now
}

func (as *ArrivalService) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	return as.sessionDao.Load(ctx, sessionID)
}

// SubmitQuery runs one stop id query for the session. Writes are
// compare-and-set on the stored session, so a filter change racing the fetch
// is kept, and a submission superseded by a newer one is dropped.
func (as *ArrivalService) SubmitQuery(ctx context.Context, sessionID, raw string) (*models.Session, error) {
	generation, err := as.sessionDao.NextGeneration(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	stopID, warning := ValidateStopID(raw)
	s, current, err := as.sessionDao.Update(ctx, sessionID, func(s *models.Session) bool {
		if s.Generation > generation {
			return false
		}
		s.HideAll()
		s.BeginQuery(stopID, generation)
		if warning != "" {
			s.ShowWarning(warning)
		} else {
			s.ShowInfo(LOADING_MESSAGE)
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	if !current {
		return as.discardStale(s, stopID, generation), nil
	}
	if warning != "" {
		as.logUpdated(s, generation)
		return s, nil
	}

	result := as.arrivalsApi.FetchArrivals(ctx, stopID)
	as.logFailure(stopID, result)
	referenceTime := as.now()

	s, current, err = as.sessionDao.Update(ctx, sessionID, func(s *models.Session) bool {
		if s.Generation != generation {
			return false
		}
		as.applyResult(s, stopID, result, referenceTime)
		return true
	})
	if err != nil {
		return nil, err
	}
	if !current {
		return as.discardStale(s, stopID, generation), nil
	}
	as.logUpdated(s, generation)
	return s, nil
}

// SetFilter switches the filter type. Switching to none re-renders the rows
// right away; other kinds wait for ApplyFilterQuery.
func (as *ArrivalService) SetFilter(ctx context.Context, sessionID, rawKind string) (*models.Session, error) {
	kind, err := models.ParseFilterKind(rawKind)
	if err != nil {
		return nil, err
	}
	s, _, err := as.sessionDao.Update(ctx, sessionID, func(s *models.Session) bool {
		s.SetFilterKind(kind)
		if kind == models.FilterNone && s.HasData() {
			as.display(s)
		}
		return true
	})
	return s, err
}

// ApplyFilterQuery sets the filter value and re-renders from stored services.
func (as *ArrivalService) ApplyFilterQuery(ctx context.Context, sessionID, query string) (*models.Session, error) {
	s, _, err := as.sessionDao.Update(ctx, sessionID, func(s *models.Session) bool {
		s.Filter.Query = query
		if s.HasData() {
			as.display(s)
		}
		return true
	})
	return s, err
}

// Lookup runs a query against a throwaway session and persists nothing.
func (as *ArrivalService) Lookup(ctx context.Context, raw string, filter models.FilterSpec) *models.Session {
	s := models.NewSession("")
	s.SetFilterKind(filter.Kind)
	s.Filter.Query = filter.Query

	s.HideAll()
	stopID, warning := ValidateStopID(raw)
	s.BeginQuery(stopID, 0)
	if warning != "" {
		s.ShowWarning(warning)
		return s
	}
	s.ShowInfo(LOADING_MESSAGE)
	result := as.arrivalsApi.FetchArrivals(ctx, stopID)
	as.logFailure(stopID, result)
	as.applyResult(s, stopID, result, as.now())
	return s
}

func (as *ArrivalService) applyResult(s *models.Session, stopID string, result models.QueryResult, referenceTime time.Time) {
	if !result.Success {
		s.ShowWarning(result.Message)
		return
	}
	if len(result.Services) == 0 {
		s.ShowWarning(EmptyServicesMessage(stopID))
		return
	}
	s.Services = result.Services
	s.ReferenceTime = referenceTime
	as.display(s)
}

func (as *ArrivalService) logFailure(stopID string, result models.QueryResult) {
	if result.Success {
		return
	}
	as.logger.Warn("arrivals query failed",
		slog.String("stop_id", stopID),
		slog.String("failure", string(result.Failure)))
}

// display recomputes rows from the stored services without touching the network.
func (as *ArrivalService) display(s *models.Session) {
	now := as.now().In(as.location)
	referenceTime := s.ReferenceTime.In(as.location)
	s.Rows = pipeline.ProcessServices(s.Services, referenceTime, now, s.Filter)
	s.ShowInfo(UpdatedAtMessage(referenceTime))
	s.ShowTable()
	s.ShowFilterGroup()
}

func (as *ArrivalService) logUpdated(s *models.Session, generation int64) {
	logging.LogOperation(as.logger, "session_updated",
		slog.String("session_id", s.ID),
		slog.String("stop_id", s.StopID),
		slog.Int64("generation", generation),
		slog.Int("rows", len(s.Rows)))
}

func (as *ArrivalService) discardStale(latest *models.Session, stopID string, generation int64) *models.Session {
	as.logger.Info("discarding stale arrivals response",
		slog.String("session_id", latest.ID),
		slog.String("stop_id", stopID),
		slog.Int64("generation", generation),
		slog.Int64("latest_generation", latest.Generation))
	return latest
}
