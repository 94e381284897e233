package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gigBoard/internal/logger"
	"gigBoard/internal/models/gig"
	repo "gigBoard/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const uniqueViolation = "23505"

const slowQuery = 100 * time.Millisecond

type Options struct {
	MaxConnections int
	MinConnections int
	IdleTimeout    time.Duration
}

type Storage struct {
	pool       *pgxpool.Pool
	connString string
}

func New(ctx context.Context, connString string, opts Options) (*Storage, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		logger.Error("Repository: Ошибка загрузки конфига", err)
		return nil, fmt.Errorf("загрузка конфига: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnIdleTime = time.Minute * 5
	if opts.MaxConnections > 0 {
		config.MaxConns = int32(opts.MaxConnections)
	}
	if opts.MinConnections > 0 {
		config.MinConns = int32(opts.MinConnections)
	}
	if opts.IdleTimeout > 0 {
		config.MaxConnIdleTime = opts.IdleTimeout
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		logger.Error("Repository: Ошибка создания пула", err)
		return nil, fmt.Errorf("создание пула: %w", err)
	}

	err = pool.Ping(ctx)
	if err != nil {
		pool.Close()
		logger.Error("Repository: Неудачная проверка ping", err)
		return nil, fmt.Errorf("проверка соединения ping: %w", err)
	}

	logger.Info("Repository: Успешное создание подключения к PostgreSQL")
	return &Storage{pool: pool, connString: connString}, nil
}

func (s *Storage) Close() {
	s.pool.Close()
	logger.Info("Repository: Закрытие всех соединений PostgreSQL")
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	err := s.pool.Ping(ctx)
	if err != nil {
		logger.Error("Repository: Неудачная проверка ping", err)
		return fmt.Errorf("проверка соединения ping: %w", err)
	}
	logger.Info("Repository: Соединение стабильно")
	return nil
}

func warnIfSlow(start time.Time, operation string) {
	if time.Since(start) > slowQuery {
		logger.Warn("Repository: Медленный запрос",
			zap.String("operation", operation),
			zap.Duration("ms", time.Since(start)))
	}
}

func (s *Storage) Create(ctx context.Context, gigToCreate *gig.Gig) error {
	start := time.Now()
	defer warnIfSlow(start, "create")

	query := `INSERT INTO gigs
				(id, description, pay, location, posted_date, deadline, status)
				VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := s.pool.Exec(ctx, query,
		gigToCreate.ID,
		gigToCreate.Description,
		gigToCreate.Pay,
		gigToCreate.Location,
		gigToCreate.PostedDate,
		gigToCreate.Deadline,
		gigToCreate.Status,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			logger.Warn("Repository: Гиг уже существует", zap.String("gig_id", gigToCreate.ID))
			return repo.ErrAlreadyExists
		}
		logger.Error("Repository: Не удалось добавить гиг", err, zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("добавление гига: %w", err)
	}
	return nil
}

func (s *Storage) GetByID(ctx context.Context, id string) (*gig.Gig, error) {
	start := time.Now()
	defer warnIfSlow(start, "get_by_id")

	query := `SELECT id, description, pay, location, posted_date, deadline, status
				FROM gigs
				WHERE id = $1`

	g := &gig.Gig{}
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&g.ID,
		&g.Description,
		&g.Pay,
		&g.Location,
		&g.PostedDate,
		&g.Deadline,
		&g.Status,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось получить гиг", err, zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("получение гига: %w", err)
	}
	return g, nil
}

// все гиги в порядке добавления
func (s *Storage) List(ctx context.Context) ([]gig.Gig, error) {
	start := time.Now()
	defer warnIfSlow(start, "list")

	query := `SELECT id, description, pay, location, posted_date, deadline, status
				FROM gigs
				ORDER BY seq`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		logger.Error("Repository: Не удалось получить гиги", err, zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("получение гигов: %w", err)
	}

	gigs, err := pgx.CollectRows(rows, pgx.RowToStructByName[gig.Gig])
	if err != nil {
		logger.Error("Repository: Ошибка итерации по строкам", err)
		return nil, fmt.Errorf("итерация по строкам: %w", err)
	}
	return gigs, nil
}

func (s *Storage) Delete(ctx context.Context, id string) error {
	start := time.Now()
	defer warnIfSlow(start, "delete")

	tag, err := s.pool.Exec(ctx, `DELETE FROM gigs WHERE id = $1`, id)
	if err != nil {
		logger.Error("Repository: Не удалось удалить гиг", err, zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("удаление гига: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}
