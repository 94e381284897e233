package worker

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"gigBoard/internal/gigstatus"
	"gigBoard/internal/logger"
	"gigBoard/internal/metrics"
	"gigBoard/internal/models/gig"

	"go.uber.org/zap"
)

const DefaultInterval = time.Minute

// GigLister - всё, что воркеру нужно от хранилища
type GigLister interface {
	List(ctx context.Context) ([]gig.Gig, error)
}

// Transition - смена вычисленного статуса между двумя проходами
type Transition struct {
	GigID string
	From  gigstatus.Status
	To    gigstatus.Status
}

// StatusWatcher периодически пересчитывает статусы и замечает, какие гиги
// перешли в другой статус просто потому, что прошло время.
type StatusWatcher struct {
	repo       GigLister
	classifier *gigstatus.Classifier
	interval   time.Duration
	clock      func() time.Time

	mtx      sync.Mutex
	previous map[string]gigstatus.Status
}

type WatcherOption func(*StatusWatcher)

func WithInterval(interval time.Duration) WatcherOption {
	if interval <= 0 {
		return nil
	}
	return func(w *StatusWatcher) {
		w.interval = interval
	}
}

func WithClock(clock func() time.Time) WatcherOption {
	if clock == nil {
		return nil
	}
	return func(w *StatusWatcher) {
		w.clock = clock
	}
}

func NewStatusWatcher(repo GigLister, classifier *gigstatus.Classifier, options ...WatcherOption) *StatusWatcher {
	w := &StatusWatcher{
		repo:       repo,
		classifier: classifier,
		interval:   DefaultInterval,
		clock:      time.Now,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(w)
	}
	return w
}

func (w *StatusWatcher) Interval() time.Duration {
	return w.interval
}

// Start делает первый проход сразу, затем по тикеру до отмены ctx
func (w *StatusWatcher) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	logger.Info("Worker: Наблюдение за статусами запущено", zap.Duration("interval", w.interval))
	w.runPass(ctx)

	for {
		select {
		case <-ticker.C:
			w.runPass(ctx)
		case <-ctx.Done():
			logger.Info("Worker: Наблюдение за статусами останавливается")
			return
		}
	}
}

func (w *StatusWatcher) runPass(ctx context.Context) {
	if _, err := w.Check(ctx); err != nil {
		logger.Warn("Worker: ошибка проверки статусов", zap.Error(err))
	}
}

// Check - один проход. Первый проход только запоминает статусы,
// переходы появляются со второго.
func (w *StatusWatcher) Check(ctx context.Context) ([]Transition, error) {
	start := time.Now()

	gigs, err := w.repo.List(ctx)
	if err != nil {
		metrics.IncreaseWatcherPassMetric(metrics.PassResultFailed)
		return nil, fmt.Errorf("получение гигов: %w", err)
	}

	ranked := w.classifier.Rank(gigs, w.clock())

	current := make(map[string]gigstatus.Status, len(ranked))
	counts := make(map[gigstatus.Status]int, len(gigstatus.All()))
	for _, r := range ranked {
		current[r.Gig.ID] = r.Info.Status
		counts[r.Info.Status]++
		logger.Debug("Worker: Статус гига",
			zap.String("gig_id", r.Gig.ID),
			zap.String("status", r.Info.Status.String()),
			zap.Stringer("days_since_posted", r.Info.DaysSincePosted),
			zap.Stringer("days_until_deadline", r.Info.DaysUntilDeadline))
	}

	w.mtx.Lock()
	transitions := diff(w.previous, current)
	w.previous = current
	w.mtx.Unlock()

	for _, t := range transitions {
		logger.Info("Worker: Гиг сменил статус",
			zap.String("gig_id", t.GigID),
			zap.String("from", t.From.String()),
			zap.String("to", t.To.String()))
		metrics.IncreaseGigTransitionMetric(t.From, t.To)
	}
	metrics.UpdateGigStatusMetric(counts)
	metrics.IncreaseWatcherPassMetric(metrics.PassResultOK)

	logger.Info(
		"Worker: Завершение проверки статусов",
		zap.Duration("ms", time.Since(start)),
		zap.Int("checked", len(ranked)),
		zap.Int("transitions", len(transitions)),
	)
	return transitions, nil
}

// diff возвращает переходы, упорядоченные по id гига. Новые и удалённые
// гиги переходами не считаются.
func diff(previous, current map[string]gigstatus.Status) []Transition {
	if previous == nil {
		return nil
	}
	transitions := make([]Transition, 0)
	for id, to := range current {
		from, seen := previous[id]
		if !seen || from == to {
			continue
		}
		transitions = append(transitions, Transition{GigID: id, From: from, To: to})
	}
	slices.SortFunc(transitions, func(a, b Transition) int {
		return strings.Compare(a.GigID, b.GigID)
	})
	return transitions
}
