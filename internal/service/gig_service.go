package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gigBoard/internal/gigstatus"
	"gigBoard/internal/logger"
	"gigBoard/internal/models/gig"
	"gigBoard/internal/notification"
	rep "gigBoard/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// здесь происходит проверка ошибок бизнес-логики

type GigService struct {
	repo       GigRepository
	classifier *gigstatus.Classifier
	clock      func() time.Time
	validate   *validator.Validate
}

type ServiceOption func(*GigService)

// WithClock подменяет источник текущего времени
func WithClock(clock func() time.Time) ServiceOption {
	if clock == nil {
		return nil
	}
	return func(s *GigService) {
		s.clock = clock
	}
}

func NewGigService(repo GigRepository, classifier *gigstatus.Classifier, options ...ServiceOption) *GigService {
	s := &GigService{
		repo:       repo,
		classifier: classifier,
		clock:      time.Now,
		validate:   validator.New(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// Summary - количество гигов по статусам для бейджей дашборда
type Summary struct {
	Total    int                      `json:"total"`
	Active   int                      `json:"active"`
	ByStatus map[gigstatus.Status]int `json:"by_status"`
}

func (s *GigService) HealthCheck(ctx context.Context) error {
	if err := s.repo.HealthCheck(ctx); err != nil {
		return fmt.Errorf("проверка здоровья сервиса: %w", err)
	}
	return nil
}

// Now - момент, на который сервис классифицирует гиги
func (s *GigService) Now() time.Time {
	return s.clock()
}

// ListRanked возвращает гиги в порядке показа. Если передан статус,
// остаются только гиги с этим статусом.
func (s *GigService) ListRanked(ctx context.Context, status *gigstatus.Status) ([]gigstatus.Ranked, error) {
	gigs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("получение гигов: %w", err)
	}

	ranked := s.classifier.Rank(gigs, s.clock())
	if status == nil {
		return ranked, nil
	}

	filtered := make([]gigstatus.Ranked, 0, len(ranked))
	for _, r := range ranked {
		if r.Info.Status == *status {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}

func (s *GigService) SortedGigs(ctx context.Context) ([]gig.Gig, error) {
	gigs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("получение гигов: %w", err)
	}
	return s.classifier.SortByStatusPriority(gigs, s.clock()), nil
}

func (s *GigService) GetGig(ctx context.Context, id string) (gigstatus.Ranked, error) {
	g, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			logger.Info("Service: Гиг не найден", zap.String("target_id", id))
			return gigstatus.Ranked{}, NewNotFound(id, err)
		}
		return gigstatus.Ranked{}, fmt.Errorf("получение гига: %w", err)
	}

	ranked := s.classifier.Rank([]gig.Gig{*g}, s.clock())
	return ranked[0], nil
}

// CreateGig проверяет гиг и сохраняет его. Дата публикации обязана
// разбираться; дедлайн может быть пустым, но не мусорным.
func (s *GigService) CreateGig(ctx context.Context, g gig.Gig) (gigstatus.Ranked, error) {
	g.ID = strings.TrimSpace(g.ID)
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	g.Deadline = strings.TrimSpace(g.Deadline)

	if err := s.validate.Struct(g); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
			return gigstatus.Ranked{}, NewValidationError(validationErrs[0].Field(), validationErrs[0].Tag())
		}
		return gigstatus.Ranked{}, NewValidationError("gig", err.Error())
	}

	if _, err := gigstatus.ParsePostedDate(g.PostedDate, s.classifier.Location()); err != nil {
		return gigstatus.Ranked{}, NewValidationError("posted_date", err.Error())
	}
	if g.HasDeadline() {
		if _, err := gigstatus.ParseDeadline(g.Deadline, s.classifier.Location()); err != nil {
			return gigstatus.Ranked{}, NewValidationError("deadline", err.Error())
		}
	}

	if err := s.repo.Create(ctx, &g); err != nil {
		if errors.Is(err, rep.ErrAlreadyExists) {
			return gigstatus.Ranked{}, NewAlreadyExists(g.ID, err)
		}
		return gigstatus.Ranked{}, fmt.Errorf("создание гига: %w", err)
	}

	logger.Info("Service: Гиг создан", zap.String("gig_id", g.ID))
	return s.classifier.Rank([]gig.Gig{g}, s.clock())[0], nil
}

func (s *GigService) DeleteGig(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			return NewNotFound(id, err)
		}
		return fmt.Errorf("удаление гига: %w", err)
	}
	logger.Info("Service: Гиг удалён", zap.String("gig_id", id))
	return nil
}

func (s *GigService) Summary(ctx context.Context) (Summary, error) {
	ranked, err := s.ListRanked(ctx, nil)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{
		Total:    len(ranked),
		ByStatus: make(map[gigstatus.Status]int, len(gigstatus.All())),
	}
	for _, status := range gigstatus.All() {
		summary.ByStatus[status] = 0
	}
	for _, r := range ranked {
		summary.ByStatus[r.Info.Status]++
		if r.Info.IsActive {
			summary.Active++
		}
	}
	return summary, nil
}

func (s *GigService) Notifications(ctx context.Context) ([]notification.Notification, error) {
	ranked, err := s.ListRanked(ctx, nil)
	if err != nil {
		return nil, err
	}
	return notification.Build(ranked), nil
}
