package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/pitchsim/internal/api"
	"github.com/jstittsworth/pitchsim/internal/cache"
	"github.com/jstittsworth/pitchsim/internal/dataload"
	"github.com/jstittsworth/pitchsim/internal/engine"
	"github.com/jstittsworth/pitchsim/internal/jobs"
	"github.com/jstittsworth/pitchsim/internal/notify"
	"github.com/jstittsworth/pitchsim/internal/rosterfeed"
	"github.com/jstittsworth/pitchsim/internal/runner"
	"github.com/jstittsworth/pitchsim/internal/store"
	"github.com/jstittsworth/pitchsim/internal/tactics"
	"github.com/jstittsworth/pitchsim/internal/ws"
	"github.com/jstittsworth/pitchsim/pkg/config"
	"github.com/jstittsworth/pitchsim/pkg/database"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	if cfg.IsDevelopment() {
		logrus.SetLevel(logrus.DebugLevel)
		gin.SetMode(gin.DebugMode)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
		gin.SetMode(gin.ReleaseMode)
	}
	logger := logrus.StandardLogger()

	databaseURL := cfg.DatabaseURL
	if cfg.IsDevelopment() && cfg.SQLitePath != "" {
		databaseURL = cfg.SQLitePath
	}
	db, err := database.NewConnection(databaseURL, cfg.IsDevelopment())
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.AutoMigrate(&store.SeasonRun{}, &store.SearchRun{}, &store.SearchStep{}); err != nil {
		logrus.Fatalf("Failed to run migrations: %v", err)
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logrus.Fatalf("Failed to parse Redis URL: %v", err)
	}
	redisClient := redis.NewClient(opt)
	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logrus.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	cacheService := cache.NewService(redisClient)

	hub := ws.NewHub(logger)
	go hub.Run()

	var notifier notify.Notifier
	if cfg.SMSProvider == "twilio" {
		notifier = notify.NewTwilioNotifier(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber, cfg.NotifyToNumber)
	} else {
		notifier = notify.NewMockNotifier()
	}

	table, err := loadTacticsTable(cfg.TacticsFile)
	if err != nil {
		logrus.Fatalf("Failed to load tactics table: %v", err)
	}

	teams, err := dataload.LoadTeams(cfg.LeagueFile, cfg.NTeams)
	if err != nil {
		logrus.Fatalf("Failed to load league file: %v", err)
	}
	var rosters []engine.Roster
	if cfg.RosterFeedURL != "" {
		fetcher := rosterfeed.NewFetcher(cfg.RosterFeedURL, cfg.RosterFeedTimeout, cfg.RosterFeedRPS, logger)
		rosters, err = dataload.LoadRostersRemote(ctx, fetcher, cfg.RosterDir, teams)
	} else {
		rosters, err = dataload.LoadRosters(cfg.RosterDir, teams)
	}
	if err != nil {
		logrus.Fatalf("Failed to load rosters: %v", err)
	}

	rn := runner.NewRunner(db, cacheService, hub, notifier, logger)
	rn.LoadData(teams, rosters, table)

	if cfg.EnableScheduledSeasons {
		scheduler := jobs.NewSeasonScheduler(rn, logger, func() int64 { return cfg.RootSeed })
		if err := scheduler.Start(cfg.SeasonCronSpec); err != nil {
			logrus.Errorf("Failed to start season scheduler: %v", err)
		}
		defer scheduler.Stop()
	}

	router := api.NewRouter(rn, hub, api.RouterConfig{
		JWTSecret:     cfg.JWTSecret,
		CorsOrigins:   cfg.CorsOrigins,
		IsDevelopment: cfg.IsDevelopment(),
	}, logger)

	logrus.Info("=== REGISTERED ROUTES ===")
	for _, route := range router.Routes() {
		logrus.Infof("%s %s", route.Method, route.Path)
	}
	logrus.Info("=========================")

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logrus.Infof("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited")
}

func loadTacticsTable(path string) (*tactics.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return tactics.Load(f)
}
