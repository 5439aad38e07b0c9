package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/vitafit/backend/internal/assistant"
	"github.com/vitafit/backend/internal/config"
	"github.com/vitafit/backend/internal/db"
	"github.com/vitafit/backend/internal/diet"
	"github.com/vitafit/backend/internal/dishdetect"
	"github.com/vitafit/backend/internal/exercise"
	"github.com/vitafit/backend/internal/middleware"
	"github.com/vitafit/backend/internal/report"
	"github.com/vitafit/backend/internal/sessions"
	"github.com/vitafit/backend/internal/telemetry/metrics"
	"github.com/vitafit/backend/pkg"
)

type Server struct {
	config            *config.Config
	httpServer        *http.Server
	metricsHttpServer *http.Server

	dbPool      *pgxpool.Pool
	redisClient *redis.Client

	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry

	sessionsRepo      *sessions.Repo
	exercisePredictor *exercise.Predictor
	dietPredictor     *diet.Predictor
	fitnessAssistant  *assistant.Assistant
	knowledgeIndex    *assistant.KnowledgeIndex
	dishDetector      *dishdetect.Detector

	versionInfo string
}

type NewServerParams struct {
	Config      *config.Config
	LLMAPIKey   string
	VersionInfo string
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         cfg.PostgresHost,
		DBPort:         cfg.PostgresPort,
		DBName:         cfg.PostgresDBName,
		TracingEnabled: true,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}
	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("ping db pool: %s", err)
	}

	if err := runMigrations(cfg); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	poolCollector := pgxpoolprometheus.NewCollector(dbPool, map[string]string{
		"db_name": cfg.PostgresDBName,
	})
	promRegistry := metrics.SetupPrometheus(poolCollector)
	metricsManager := metrics.NewManager("backend", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	redisClient := redis.NewClient(&redis.Options{
		Addr: net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
	})
	if rdb := redisClient.Ping(ctx); rdb.Err() != nil {
		return nil, fmt.Errorf("ping redis: %w", rdb.Err())
	}

	httpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	// the exercise predictor retries loading its artifacts on demand,
	// the diet one must be usable from the start
	exercisePredictor := exercise.NewPredictor(cfg.ExerciseModelsPath)
	dietPredictor, err := diet.NewPredictor(cfg.DietModelsPath)
	if err != nil {
		return nil, fmt.Errorf("new diet predictor: %w", err)
	}

	fitnessAssistant, knowledgeIndex, err := setupAssistant(ctx, cfg, params.LLMAPIKey, httpClient)
	if err != nil {
		return nil, fmt.Errorf("setup assistant: %w", err)
	}

	var dishDetector *dishdetect.Detector
	if cfg.DishDetectorURL != "" {
		dishDetector = dishdetect.NewDetector(cfg.DishDetectorURL, httpClient)
	} else {
		log.Warnln("dish detector url not set, dish classification disabled")
	}

	metricsManager.GaugeLifeSignal.Set(1)

	return &Server{
		config:            cfg,
		dbPool:            dbPool,
		redisClient:       redisClient,
		metricsManager:    metricsManager,
		promRegistry:      promRegistry,
		sessionsRepo:      sessions.NewRepo(dbPool),
		exercisePredictor: exercisePredictor,
		dietPredictor:     dietPredictor,
		fitnessAssistant:  fitnessAssistant,
		knowledgeIndex:    knowledgeIndex,
		dishDetector:      dishDetector,
		versionInfo:       params.VersionInfo,
	}, nil
}

func runMigrations(cfg *config.Config) error {
	if cfg.MigrationsPath == "" {
		log.Warnln("migrations path not set, skipping migrations")
		return nil
	}

	m, err := migrate.New(
		"file://"+cfg.MigrationsPath,
		fmt.Sprintf(
			"postgres://postgres@%s:%s/%s?sslmode=disable",
			cfg.PostgresHost, cfg.PostgresPort, cfg.PostgresDBName,
		),
	)
	if err != nil {
		return fmt.Errorf("migrate init: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}

	log.Debugln("db migrations applied")
	return nil
}

func setupAssistant(
	ctx context.Context,
	cfg *config.Config,
	llmAPIKey string,
	httpClient *http.Client,
) (*assistant.Assistant, *assistant.KnowledgeIndex, error) {
	chunks, err := assistant.LoadKnowledgeBase(cfg.KnowledgeBasePath)
	if err != nil {
		return nil, nil, fmt.Errorf("load knowledge base: %w", err)
	}

	llmClient := assistant.NewLLMClient(assistant.NewLLMClientParams{
		BaseURL:        cfg.LLMBaseURL,
		APIKey:         llmAPIKey,
		ChatModel:      cfg.LLMModelName,
		EmbeddingModel: cfg.EmbeddingModelName,
		HTTPClient:     httpClient,
	})

	qdrantHost, qdrantPortStr, err := net.SplitHostPort(cfg.QdrantURL)
	if err != nil {
		return nil, nil, fmt.Errorf("parse qdrant url [%s]: %w", cfg.QdrantURL, err)
	}
	qdrantPort, err := strconv.Atoi(qdrantPortStr)
	if err != nil {
		return nil, nil, fmt.Errorf("parse qdrant port [%s]: %w", qdrantPortStr, err)
	}

	knowledgeIndex, err := assistant.NewKnowledgeIndex(qdrantHost, qdrantPort, cfg.QdrantCollection)
	if err != nil {
		return nil, nil, fmt.Errorf("new knowledge index: %w", err)
	}

	if err := knowledgeIndex.EnsureIndexed(ctx, chunks, llmClient.Embed); err != nil {
		return nil, nil, fmt.Errorf("index knowledge base: %w", err)
	}

	fitnessAssistant, err := assistant.NewAssistant(llmClient, knowledgeIndex)
	if err != nil {
		return nil, nil, fmt.Errorf("new assistant: %w", err)
	}

	return fitnessAssistant, knowledgeIndex, nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	exerciseHandler := exercise.NewHandler(s.exercisePredictor, s.sessionsRepo, s.metricsManager)
	dietHandler := diet.NewHandler(s.dietPredictor, s.sessionsRepo, s.metricsManager)
	reportHandler := report.NewHandler(s.sessionsRepo, s.metricsManager)
	dishHandler := dishdetect.NewHandler(s.dishDetector, s.metricsManager)
	assistantHandler := assistant.NewHandler(s.fitnessAssistant, s.sessionsRepo, s.metricsManager)

	r.HandleFunc("/predict_exercise", exerciseHandler.HandlePredict).
		Methods("POST", "OPTIONS").Name("predict-exercise")
	r.HandleFunc("/predict_diet", dietHandler.HandlePredict).
		Methods("POST", "OPTIONS").Name("predict-diet")
	r.HandleFunc("/generate_report", reportHandler.HandleGenerate).
		Methods("POST", "OPTIONS").Name("generate-report")
	r.HandleFunc("/classify_dish", dishHandler.HandleClassify).
		Methods("POST", "OPTIONS").Name("classify-dish")

	aiRouter := r.PathPrefix("/ai").Subrouter()
	aiRouter.Use(middleware.RateLimit(
		redis_rate.NewLimiter(s.redisClient),
		"ai-router",
		s.config.AiRateLimitPerMin,
		s.metricsManager,
	))
	aiRouter.HandleFunc("/overview", assistantHandler.HandleOverview).
		Methods("POST", "OPTIONS").Name("assistant-overview")
	aiRouter.HandleFunc("/chat", assistantHandler.HandleChat).
		Methods("POST", "OPTIONS").Name("assistant-chat")

	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		pkg.WriteTextResponseOK(w, "I'm OK, thanks ;)")
	}).Methods("GET").Name("root")
	r.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		pkg.WriteTextResponseOK(w, s.versionInfo)
	}).Methods("GET").Name("version")

	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors())
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

func (s *Server) Serve(ctx context.Context, host string, port int) {
	if host == "" {
		host = "localhost"
	}

	router := s.routerSetup()
	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))

	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	}))
	metricsAddr := net.JoinHostPort(
		s.config.PrometheusMetricsHost,
		s.config.PrometheusMetricsPort,
	)
	s.metricsHttpServer = &http.Server{
		Handler:      metricsMux,
		Addr:         metricsAddr,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
	}

	go func() {
		log.Infof(" > metrics server listening on: [%s]", metricsAddr)
		if err := s.metricsHttpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics server error: %s", err)
		}
	}()

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server error: %s", err)
		}
	}()
}

func (s *Server) GracefulShutdown() {
	log.Debugln("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	if s.knowledgeIndex != nil {
		if err := s.knowledgeIndex.Close(); err != nil {
			log.Errorf("close knowledge index: %s", err)
		}
	}
	if err := s.redisClient.Close(); err != nil {
		log.Errorf("close redis client: %s", err)
	}
	if s.dbPool != nil {
		s.dbPool.Close()
		log.Debugln("db pool closed")
	}

	// flush buffered sentry events before the program terminates
	sentry.Flush(2 * time.Second)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error("server shutdown failed:", err)
	}
	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error("metrics server shutdown failed:", err)
		}
	}

	log.Warnln("server gracefully shut down")
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Inc()
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Dec()
	}
}
