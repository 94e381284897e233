package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"gigBoard/internal/config"
	"gigBoard/internal/gigstatus"
	"gigBoard/internal/handlers"
	"gigBoard/internal/logger"
	"gigBoard/internal/metrics"
	"gigBoard/internal/middleware"
	"gigBoard/internal/repository/gig/fixtures"
	"gigBoard/internal/repository/gig/inmemory"
	"gigBoard/internal/repository/gig/postgres"
	"gigBoard/internal/service"
	"gigBoard/internal/worker"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const serviceName = "gigboard"

// коллекторы HTTP регистрируются в DefaultRegisterer один раз на процесс
var httpMetrics = sync.OnceValue(func() *metrics.Middleware {
	m := metrics.NewMiddleware(serviceName)
	m.MustRegisterDefault()
	return m
})

type App struct {
	config     *config.Config
	server     *http.Server
	router     *chi.Mux
	repository service.GigRepository
	service    *service.GigService
	watcher    *worker.StatusWatcher
	shutdowns  []func() // функции для graceful shutdown
}

func New(cfg *config.Config) *App {
	return &App{
		config:    cfg,
		shutdowns: make([]func(), 0),
	}
}

func (a *App) Init(ctx context.Context) error {
	if err := logger.Init(a.config.Logging.Development); err != nil {
		return fmt.Errorf("инициализация логгера: %w", err)
	}
	a.shutdowns = append(a.shutdowns, func() {
		logger.Info("Завершение работы логгирования...")
		logger.Sync()
	})

	loc, err := a.config.Location()
	if err != nil {
		return err
	}
	classifier := gigstatus.NewClassifier(gigstatus.WithLocation(loc))

	if err := a.initRepository(ctx); err != nil {
		return err
	}
	if err := a.seedFixtures(ctx, loc); err != nil {
		return err
	}

	a.service = service.NewGigService(a.repository, classifier)

	if a.config.Worker.Enabled {
		a.watcher = worker.NewStatusWatcher(a.repository, classifier,
			worker.WithInterval(a.config.Worker.Interval))
	}

	a.initRouter()
	a.server = &http.Server{
		Addr:         a.config.GetServerAddr(),
		Handler:      a.router,
		ReadTimeout:  a.config.Server.ReadTimeout,
		WriteTimeout: a.config.Server.WriteTimeout,
	}

	logger.Info("Приложение инициализировано",
		zap.String("repository", a.config.Repository.Type),
		zap.String("timezone", loc.String()),
		zap.Bool("worker", a.config.Worker.Enabled))
	return nil
}

func (a *App) initRepository(ctx context.Context) error {
	switch a.config.Repository.Type {
	case config.RepositoryPostgres:
		storage, err := postgres.New(ctx, a.config.Database.URL, postgres.Options{
			MaxConnections: a.config.Database.MaxConnections,
			MinConnections: a.config.Database.MinConnections,
			IdleTimeout:    a.config.Database.IdleTimeout,
		})
		if err != nil {
			return fmt.Errorf("подключение к postgres: %w", err)
		}
		a.shutdowns = append(a.shutdowns, func() {
			logger.Info("Закрытие пула соединений...")
			storage.Close()
		})

		if a.config.Database.Migrate {
			if err := storage.Migrate(); err != nil {
				return fmt.Errorf("миграции: %w", err)
			}
		}
		a.repository = storage
	default:
		a.repository = inmemory.NewGigStorage()
	}
	return nil
}

func (a *App) seedFixtures(ctx context.Context, loc *time.Location) error {
	path := a.config.Repository.Fixtures
	if path == "" {
		return nil
	}

	gigs, err := fixtures.Load(path, loc)
	if err != nil {
		return fmt.Errorf("загрузка фикстур: %w", err)
	}
	created, err := fixtures.Seed(ctx, a.repository, gigs)
	if err != nil {
		return fmt.Errorf("заполнение хранилища: %w", err)
	}

	logger.Info("Фикстуры загружены",
		zap.String("path", path),
		zap.Int("total", len(gigs)),
		zap.Int("created", created))
	return nil
}

func (a *App) initRouter() {
	h := handlers.NewGigHandler(a.service)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.Recoverer)
	r.Use(httpMetrics().Handler)
	r.Use(middleware.CORS(a.config.HTTP.CORSOrigins))
	r.Use(middleware.RateLimit(a.config.HTTP.RateLimit))
	r.Use(chimiddleware.Timeout(a.config.HTTP.RequestTimeout))
	r.Use(middleware.Tracing(serviceName))

	r.Route("/gigs", func(r chi.Router) {
		r.Get("/", h.ListGigs)             // GET /gigs
		r.Post("/", h.PostGig)             // POST /gigs
		r.Get("/summary", h.Summary)       // GET /gigs/summary
		r.Get("/{id}", h.GetGigByID)       // GET /gigs/{id}
		r.Delete("/{id}", h.DeleteGigByID) // DELETE /gigs/{id}
	})
	r.Get("/notifications", h.Notifications)
	r.Get("/health", h.HealthCheck)
	r.Handle("/metrics", metrics.Handler())

	a.router = r
}

// Handler отдаёт собранный роутер
func (a *App) Handler() http.Handler {
	return a.router
}

// Run блокируется до отмены ctx или падения сервера
func (a *App) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Сервер запущен", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP сервер: %w", err)
		}
		return nil
	})

	if a.watcher != nil {
		g.Go(func() error {
			a.watcher.Start(gctx)
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
		defer cancel()

		logger.Info("Остановка сервера...")
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("остановка сервера: %w", err)
		}
		return nil
	})

	err := g.Wait()
	a.Shutdown()
	return err
}

// Shutdown вызывает функции освобождения ресурсов в обратном порядке
func (a *App) Shutdown() {
	for i := len(a.shutdowns) - 1; i >= 0; i-- {
		a.shutdowns[i]()
	}
	a.shutdowns = a.shutdowns[:0]
}
