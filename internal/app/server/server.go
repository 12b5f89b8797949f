package server

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"dayflow/internal/domain/attendance"
	"dayflow/internal/domain/employee"
	"dayflow/internal/domain/payroll"
	"dayflow/internal/domain/profile"
	"dayflow/internal/domain/timeoff"
	"dayflow/internal/platform/config"
	cryptoutil "dayflow/internal/platform/crypto"
	"dayflow/internal/platform/db"
	"dayflow/internal/platform/email"
	"dayflow/internal/platform/metrics"
	"dayflow/internal/transport/http/api"
	attendancehandler "dayflow/internal/transport/http/handlers/attendance"
	authhandler "dayflow/internal/transport/http/handlers/auth"
	employeehandler "dayflow/internal/transport/http/handlers/employees"
	payrollhandler "dayflow/internal/transport/http/handlers/payroll"
	profilehandler "dayflow/internal/transport/http/handlers/profile"
	timeoffhandler "dayflow/internal/transport/http/handlers/timeoff"
	"dayflow/internal/transport/http/middleware"
)

type App struct {
	Config config.Config
	Router http.Handler
	DB     *pgxpool.Pool
}

// New builds the full application: database pool, migrations, seed data and
// the routed handler. Callers own the returned App's shutdown via Close.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrations: %w", err)
		}
	}

	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			pool.Close()
			return nil, fmt.Errorf("seed: %w", err)
		}
	}

	cryptoSvc, err := cryptoutil.New(cfg.DataEncryptionKey)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("crypto: %w", err)
	}

	employeeStore := employee.NewStore(pool)
	employeeSvc := employee.NewService(employeeStore, email.New(cfg), cfg.EmailFrom)
	attendanceStore := attendance.NewStore(pool)
	timeoffStore := timeoff.NewStore(pool)
	profileStore := profile.NewStore(pool, cryptoSvc)
	payrollStore := payroll.NewStore(pool)

	collector := metrics.New()
	isProd := cfg.Environment == "production"

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	if cfg.MetricsEnabled {
		router.Use(middleware.Metrics(collector))
	}
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(isProd))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret, employeeStore))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if cfg.MetricsEnabled {
		router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			api.Success(w, collector.Snapshot(), middleware.GetRequestID(r.Context()))
		})
	}

	router.Route("/api/v1", func(r chi.Router) {
		authHandler := authhandler.NewHandler(employeeStore, cfg.JWTSecret, cfg.TokenTTL)
		r.With(middleware.LoginRateLimit(cfg.RateLimitPerMinute, time.Minute)).Post("/auth/login", authHandler.HandleLogin)
		r.With(middleware.RequireAuth).Get("/me", authHandler.HandleMe)

		employeehandler.NewHandler(employeeSvc, employeeStore).RegisterRoutes(r)
		attendancehandler.NewHandler(attendanceStore).RegisterRoutes(r)
		timeoffhandler.NewHandler(timeoffStore).RegisterRoutes(r)
		profilehandler.NewHandler(profileStore).RegisterRoutes(r)
		payrollhandler.NewHandler(payrollStore).RegisterRoutes(r)
	})

	router.Mount("/", spaHandler{staticPath: cfg.FrontendDir, indexPath: "index.html"})

	return &App{Config: cfg, Router: router, DB: pool}, nil
}

func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
}

func Run() {
	cfg := config.Load()

	ctx := context.Background()
	app, err := New(ctx, cfg)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}
	defer app.Close()

	slog.Info("dayflow server listening", "addr", cfg.Addr, "env", cfg.Environment)
	if err := http.ListenAndServe(cfg.Addr, app.Router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

type spaHandler struct {
	staticPath string
	indexPath  string
}

func (h spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	path := filepath.Join(h.staticPath, r.URL.Path)
	_, err := os.Stat(path)
	if err == nil {
		http.FileServer(http.Dir(h.staticPath)).ServeHTTP(w, r)
		return
	}

	if os.IsNotExist(err) {
		http.ServeFile(w, r, filepath.Join(h.staticPath, h.indexPath))
		return
	}

	http.NotFound(w, r)
}
