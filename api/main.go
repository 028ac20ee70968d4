package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jimiolaniyan/parlour"
	"github.com/jimiolaniyan/parlour/auth"
	"github.com/jimiolaniyan/parlour/config"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		bootLogger := zerolog.New(os.Stderr)
		bootLogger.Fatal().Err(err).Msg("invalid configuration")
	}

	logger := newLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := connect(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("could not connect to MongoDB")
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(dctx); err != nil {
			logger.Error().Err(err).Msg("error disconnecting from MongoDB")
		}
	}()
	logger.Info().Str("db", cfg.DBName).Msg("connected to MongoDB")

	db := client.Database(cfg.DBName)
	users := db.Collection("users")

	ictx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	err = auth.EnsureIndexes(ictx, users)
	cancel()
	if err != nil {
		logger.Fatal().Err(err).Msg("could not create indexes")
	}

	tokens := auth.NewTokens([]byte(cfg.SigningKey))
	accounts, err := auth.NewService(auth.NewMongoAccountRepository(users), auth.NewBcryptHasher(), tokens)
	if err != nil {
		logger.Fatal().Err(err).Msg("could not create account service")
	}

	svc := parlour.NewService(
		parlour.NewMongoCollection(db.Collection("services")),
		parlour.NewMongoCollection(db.Collection("reviews")),
		parlour.NewMongoCollection(db.Collection("bookings")),
	)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := parlour.NewMetrics(reg)

	router := parlour.NewRouter(svc, accounts, tokens, auth.SessionCookie{Secure: cfg.SecureCookies},
		promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           c.Handler(parlour.LogHandler(logger)(metrics.Instrument(router))),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.Addr).Msg("server started")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	case <-ctx.Done():
		logger.Info().Msg("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			logger.Error().Err(err).Msg("error during shutdown")
		}
	}
}

func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	var l zerolog.Logger
	if cfg.LogFormat == "console" {
		l = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		l = zerolog.New(os.Stderr)
	}
	return l.Level(level).With().Timestamp().Str("service", "parlour").Logger()
}

func connect(ctx context.Context, cfg *config.Config) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.MongoURI).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1).SetStrict(true).SetDeprecationErrors(true))
	if cfg.DBUser != "" {
		opts.SetAuth(options.Credential{Username: cfg.DBUser, Password: cfg.DBPass})
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}

	if err := client.Database("admin").RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return client, nil
}
