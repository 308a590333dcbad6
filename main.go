package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/firetemplate/items-api/handlers"
	"github.com/firetemplate/items-api/internal/app"
	"github.com/firetemplate/items-api/internal/config"
	"github.com/firetemplate/items-api/internal/database"
	"github.com/firetemplate/items-api/internal/firebase"
	"github.com/firetemplate/items-api/internal/items/repository"
	"github.com/firetemplate/items-api/internal/items/service"
	"github.com/firetemplate/items-api/internal/oidc"
	"github.com/firetemplate/items-api/internal/revocation"
	"github.com/firetemplate/items-api/internal/tokens"
	"github.com/firetemplate/items-api/internal/users"
	"github.com/firetemplate/items-api/internal/verify"
	"github.com/firetemplate/items-api/pkg/logger"
	"github.com/firetemplate/items-api/pkg/metrics"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	os.Exit(run())
}

// run wires the API and serves until a signal arrives or the listener fails.
// It returns the process exit code so deferred cleanup always runs.
func run() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.LogLevel)
	defer logger.Sync()
	logger.Debugf("startup: LOG_LEVEL=%s", logger.LevelString())
	logger.Infof("config loaded: env=%s backend=%s mongo=%v redis=%v oidc=%v dev_tokens=%v",
		cfg.Server.Environment, cfg.Store.Backend, cfg.MongoDB.URI != "", cfg.RedisAddr() != "",
		cfg.OIDC.Issuer != "", cfg.DevTokensEnabled())

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	metrics.RegisterCollectors(prometheus.DefaultRegisterer)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fb := firebase.New(ctx, cfg.Firebase)
	defer func() { _ = fb.Close() }()

	var mongoClient *mongo.Client
	if cfg.MongoDB.URI != "" {
		mongoClient, err = database.ConnectMongoWithRetry(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout, database.DefaultRetry)
		if err != nil {
			logger.Warnf("could not connect to MongoDB: %v", err)
			mongoClient = nil
		} else {
			defer func() { _ = mongoClient.Disconnect(context.Background()) }()
		}
	}

	itemRepo := selectItemRepo(ctx, cfg, fb, mongoClient)

	var profiles users.ProfileRepository = users.NewMemoryProfileRepository()
	if mongoClient != nil {
		repo, err := users.NewMongoProfileRepository(ctx, mongoClient.Database(cfg.MongoDB.Database).Collection("users"))
		if err != nil {
			logger.Warnf("profile directory falls back to memory: %v", err)
		} else {
			profiles = repo
		}
	}

	var redisClient *redis.Client
	if addr := cfg.RedisAddr(); addr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s): %v; token revocation disabled", addr, err)
			_ = redisClient.Close()
			redisClient = nil
		} else {
			logger.Infof("Connected to Redis for token revocation: %s", addr)
			defer func() { _ = redisClient.Close() }()
		}
	}
	revoked := revocation.NewStore(redisClient)

	chain := verify.NewChain(revoked, tokenSources(ctx, cfg, fb)...)
	if len(chain.Sources()) == 0 {
		logger.Warnf("no token sources configured: every authenticated request will be rejected")
	}
	logger.Infof("token sources: %v", chain.Sources())

	checks := map[string]handlers.Check{
		"store": func(context.Context) bool { _, down := itemRepo.(repository.Unavailable); return !down },
		"auth":  func(context.Context) bool { return len(chain.Sources()) > 0 },
	}
	if mongoClient != nil {
		checks["mongo"] = func(ctx context.Context) bool { return mongoClient.Ping(ctx, nil) == nil }
	}
	if revoked.Enabled() {
		checks["redis"] = func(ctx context.Context) bool { return revoked.Ping(ctx) == nil }
	}

	engine := app.New(app.Deps{
		AllowedOrigins: cfg.AllowedOrigins(),
		Verifier:       chain,
		Items:          service.NewService(itemRepo),
		Users:          users.NewService(fb, profiles),
		Firebase:       fb,
		Revoker:        revoked,
		Checks:         checks,
		Metrics:        promhttp.Handler(),
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           engine,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
	}
	logger.Infof("Starting items API on %s", cfg.Addr())
	if err := serve(ctx, srv, 10*time.Second); err != nil {
		logger.Errorf("server stopped: %v", err)
		return 1
	}
	return 0
}

// serve runs srv until ctx is done, then shuts it down within grace.
// A listener failure is returned instead of exiting.
func serve(ctx context.Context, srv *http.Server, grace time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	logger.Infof("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}

// selectItemRepo returns the configured backend, or repository.Unavailable when
// it could not be initialised.
func selectItemRepo(ctx context.Context, cfg *config.Config, fb *firebase.Client, mongoClient *mongo.Client) repository.Repository {
	switch cfg.Store.Backend {
	case config.BackendMemory:
		logger.Warnf("using in-memory item store; data is lost on restart")
		return repository.NewMemoryRepo()
	case config.BackendMongo:
		if mongoClient == nil {
			logger.Errorf("STORE_BACKEND=mongo but MongoDB is unavailable")
			return repository.Unavailable{}
		}
		col := mongoClient.Database(cfg.MongoDB.Database).Collection(cfg.Store.Collection)
		return repository.NewMongoRepo(ctx, col)
	default:
		if !fb.Ready() {
			logger.Errorf("STORE_BACKEND=firestore but Firebase is not initialized")
			return repository.Unavailable{}
		}
		return repository.NewFirestoreRepo(fb.Firestore(), cfg.Store.Collection)
	}
}

func tokenSources(ctx context.Context, cfg *config.Config, fb *firebase.Client) []verify.Source {
	var sources []verify.Source
	if fb.Ready() {
		sources = append(sources, fb)
	}
	if cfg.OIDC.Issuer != "" && cfg.OIDC.ClientID != "" {
		ver, err := oidc.NewVerifier(ctx, cfg.OIDC.Issuer, cfg.OIDC.ClientID)
		if err != nil {
			logger.Warnf("failed to initialize OIDC verifier: %v", err)
		} else {
			sources = append(sources, ver)
		}
	}
	if cfg.DevTokensEnabled() {
		logger.Warnf("development tokens enabled; never use DEV_JWT_SECRET in production")
		sources = append(sources, tokens.NewDevVerifier(cfg.DevAuth.Secret))
	} else if cfg.DevAuth.Secret != "" {
		logger.Warnf("DEV_JWT_SECRET ignored in production")
	}
	return sources
}
