package di

import (
	"context"
	"fmt"
	"log/slog"

	goredis "github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"

	"bus-arrival-server/api"
	"bus-arrival-server/api/arrivelah"
	"bus-arrival-server/config"
	"bus-arrival-server/dao/redis"
	"bus-arrival-server/db"
	services "bus-arrival-server/service"
	"bus-arrival-server/server"
	"bus-arrival-server/server/handlers"
	"bus-arrival-server/server/middleware"
)

// Container holds all application dependencies.
type Container struct {
	RedisClient          db.RedisClient
	RedisSessionDao      *redis.RedisSessionDAO
	ArrivalsAPI          arrivelah.ArrivalsAPI
	ArrivalService       *services.ArrivalService
	ArrivalHandler       *handlers.ArrivalHandler
	DebugHandler         *handlers.DebugHandler
	RateLimiter          *middleware.RateLimiter
	MuxRouter            *mux.Router
	Router               *server.Router
	BusArrivalHttpServer *server.BusArrivalHttpServer

	redisInternalClient *goredis.Client
}

// NewContainer initializes and wires up all dependencies. Non-prod envs get
// the fixture-backed arrivals API; redis is used only when enabled.
func NewContainer(ctx context.Context, cfg config.AppConfig, logger *slog.Logger) (*Container, error) {
	logger.Info("initializing container", slog.String("env", cfg.Env))

	var redisClient db.RedisClient
	var redisInternalClient *goredis.Client
	if cfg.Redis.Enabled {
		redisInternalClient = goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		sessionRedisClient, err := db.NewSessionRedisClient(ctx, redisInternalClient)
		if err != nil {
			redisInternalClient.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		redisClient = sessionRedisClient
		logger.Info("using redis session store", slog.String("address", cfg.Redis.Address))
	} else {
		redisClient = db.NewMockRedisClient()
		logger.Info("using in-memory session store")
	}

	redisSessionDao := redis.NewRedisSessionDAO(redisClient, cfg.SessionTTL())

	var arrivalsApi arrivelah.ArrivalsAPI
	if cfg.Env != "prod" {
		arrivalsApi = arrivelah.NewArrivelahApiClientMock(cfg.Upstream.FixturePath, nil, logger)
		logger.Info("using mock arrivelah api", slog.String("fixture", cfg.Upstream.FixturePath))
	} else {
		httpClient := api.NewHTTPClient(cfg.Upstream.BaseURL, cfg.UpstreamTimeout())
		httpClient.Logger = logger.With(slog.String("component", "http_client"))
		arrivalsApi = arrivelah.NewArrivelahApiClient(httpClient, logger)
		logger.Info("using prod arrivelah api", slog.String("base_url", cfg.Upstream.BaseURL))
	}

	arrivalService := services.NewArrivalService(redisSessionDao, arrivalsApi, cfg.Location(), logger)

	arrivalHandler := handlers.NewArrivalHandler(arrivalService)
	var debugHandler *handlers.DebugHandler
	if cfg.Env != "prod" {
		debugHandler = handlers.NewDebugHandler(arrivalService)
	}
	rateLimiter := middleware.NewRateLimiter(cfg.Server.QueryRateLimit)

	muxRouter := mux.NewRouter()
	router := server.NewRouter(arrivalHandler, debugHandler, rateLimiter, logger, muxRouter)
	busArrivalHttpServer := server.NewBusArrivalHttpServer(router, muxRouter, cfg.Server.Port, cfg.ShutdownTimeout(), logger)

	return &Container{
		RedisClient:          redisClient,
		RedisSessionDao:      redisSessionDao,
		ArrivalsAPI:          arrivalsApi,
		ArrivalService:       arrivalService,
		ArrivalHandler:       arrivalHandler,
		DebugHandler:         debugHandler,
		RateLimiter:          rateLimiter,
		MuxRouter:            muxRouter,
		Router:               router,
		BusArrivalHttpServer: busArrivalHttpServer,
		redisInternalClient:  redisInternalClient,
	}, nil
}

// Close releases the rate limiter and the redis connection.
func (c *Container) Close() error {
	c.RateLimiter.Stop()
	if c.redisInternalClient != nil {
		return c.redisInternalClient.Close()
	}
	return nil
}
