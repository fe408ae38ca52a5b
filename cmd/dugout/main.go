package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "time/tzdata"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"

	"github.com/fortuna/dugout/internal/api/rest"
	"github.com/fortuna/dugout/internal/api/websocket"
	"github.com/fortuna/dugout/internal/cache"
	"github.com/fortuna/dugout/internal/config"
	"github.com/fortuna/dugout/internal/publisher"
	"github.com/fortuna/dugout/internal/schedule"
	"github.com/fortuna/dugout/internal/scheduler"
	"github.com/fortuna/dugout/internal/service"
	"github.com/fortuna/dugout/internal/statsapi"
	"github.com/fortuna/dugout/internal/store"
	"github.com/fortuna/dugout/internal/store/repository"
	"github.com/fortuna/dugout/internal/web"
)

const (
	serviceName    = "dugout"
	serviceVersion = "1.0.0"
)

func main() {
	log.Printf("Starting %s v%s - Team Stats Service", serviceName, serviceVersion)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	loc, err := cfg.Schedule.Location()
	if err != nil {
		log.Printf("⚠️  %v (falling back to UTC)", err)
		loc = time.UTC
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	clientOpts := []statsapi.Option{
		statsapi.WithTimeout(cfg.StatsAPI.RequestTimeout),
		statsapi.WithLogger(log.New(log.Writer(), "[statsapi] ", log.LstdFlags)),
	}

	var (
		redisCache *cache.RedisCache
		streams    *publisher.RedisStreamPublisher
		labels     *repository.LabelRepository
		db         *store.Database
	)

	if cfg.Redis.URL != "" {
		client, err := connectRedis(cfg.Redis.URL)
		if err != nil {
			log.Printf("⚠️  Redis unavailable, running without cache: %v", err)
		} else {
			redisCache = cache.NewRedisCache(client, cfg.Redis.CacheTTL)
			defer redisCache.Close()
			streams = publisher.NewRedisStreamPublisher(client)
			clientOpts = append(clientOpts, statsapi.WithCache(redisCache))
			log.Printf("✓ Connected to Redis (cache TTL %v)", cfg.Redis.CacheTTL)
		}
	}

	if cfg.Archive.DSN != "" {
		db, err = store.NewDatabase(cfg.Archive.DSN)
		if err != nil {
			log.Printf("⚠️  Archive unavailable, running without it: %v", err)
		} else {
			defer db.Close()
			log.Println("✓ Connected to archive database")

			if err := db.RunMigrations(ctx); err != nil {
				log.Fatalf("Failed to run database migrations: %v", err)
			}
			log.Println("✓ Database migrations applied")

			clientOpts = append(clientOpts, statsapi.WithArchive(repository.NewSnapshotRepository(db)))
			labels = repository.NewLabelRepository(db)
		}
	}

	api := statsapi.New(cfg.StatsAPI.BaseURL, clientOpts...)
	correlator := schedule.NewCorrelator(schedule.WithLocation(loc))
	teams := service.NewTeamService(api, correlator, nil)
	log.Printf("✓ Stats API client ready (%s, schedules in %s)", api.BaseURL(), loc)

	wsServer := websocket.NewServer(ctx, nil)

	watcherOpts := []scheduler.Option{scheduler.WithPublishers(wsServer)}
	if streams != nil {
		watcherOpts = append(watcherOpts, scheduler.WithPublishers(streams))
	}
	if labels != nil {
		watcherOpts = append(watcherOpts, scheduler.WithLabelStore(labels))
	}
	if redisCache != nil {
		watcherOpts = append(watcherOpts, scheduler.WithCacheInvalidator(redisCache))
	}
	watcher := scheduler.NewWatcher(teams, &scheduler.Config{
		Interval: cfg.Watch.Interval,
		Teams:    cfg.Watch.Teams,
		Order:    cfg.Schedule.Order,
	}, watcherOpts...)
	go watcher.Start(ctx)

	handler := rest.NewHandler(teams, cfg.Schedule.Order)
	if redisCache != nil {
		handler.AddHealthCheck("cache", redisCache.HealthCheck)
	}
	if db != nil {
		handler.AddHealthCheck("archive", db.HealthCheck)
	}
	handler.AddStatus("watcher", watcher.GetStatus)
	handler.AddStatus("websocket", wsServer.Hub().GetMetrics)

	pages := web.NewPages(teams, cfg.Schedule.Order, nil)
	restServer := rest.NewServer(cfg.Server.Port, handler,
		pages.Register,
		func(router *mux.Router) {
			router.PathPrefix("/ws/").Handler(wsServer.Handler())
		},
	)

	go func() {
		if err := restServer.Start(); err != nil {
			log.Printf("HTTP server error: %v", err)
		}
	}()

	log.Printf("✓ %s v%s started successfully", serviceName, serviceVersion)
	log.Printf("  Pages:     http://0.0.0.0:%s/teams", cfg.Server.Port)
	log.Printf("  REST API:  http://0.0.0.0:%s/api/v1", cfg.Server.Port)
	log.Printf("  WebSocket: ws://0.0.0.0:%s/ws/schedule", cfg.Server.Port)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down gracefully...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := restServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	log.Printf("%s stopped", serviceName)
}

// connectRedis retries for a short while so the service can start
// alongside its Redis container
func connectRedis(url string) (*redis.Client, error) {
	const (
		maxRetries = 5
		retryDelay = 2 * time.Second
	)

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		client, err := cache.Connect(url)
		if err == nil {
			return client, nil
		}
		lastErr = err
		if i < maxRetries-1 {
			log.Printf("Redis connection attempt %d/%d failed: %v (retrying in %v)", i+1, maxRetries, err, retryDelay)
			time.Sleep(retryDelay)
		}
	}
	return nil, lastErr
}
