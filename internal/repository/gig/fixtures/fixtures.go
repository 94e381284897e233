package fixtures

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gigBoard/internal/gigstatus"
	"gigBoard/internal/logger"
	"gigBoard/internal/models/gig"
	repo "gigBoard/internal/repository"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type file struct {
	Gigs []gig.Gig `yaml:"gigs"`
}

type Creator interface {
	Create(context.Context, *gig.Gig) error
}

var validate = validator.New()

// Load читает гиги из YAML-файла
func Load(path string, loc *time.Location) ([]gig.Gig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("не могу открыть %s: %w", path, err)
	}
	defer f.Close()

	return Decode(f, loc)
}

// Decode разбирает YAML и проверяет каждый гиг: обязательные поля и
// разбираемую дату публикации. Неразбираемый дедлайн не отклоняется.
func Decode(r io.Reader, loc *time.Location) ([]gig.Gig, error) {
	var data file
	if err := yaml.NewDecoder(r).Decode(&data); err != nil {
		if errors.Is(err, io.EOF) {
			return []gig.Gig{}, nil
		}
		return nil, fmt.Errorf("ошибка парсинга фикстур: %w", err)
	}

	seen := make(map[string]struct{}, len(data.Gigs))
	for i, g := range data.Gigs {
		if err := validate.Struct(g); err != nil {
			return nil, fmt.Errorf("гиг #%d: %w", i, err)
		}
		if _, err := gigstatus.ParsePostedDate(g.PostedDate, loc); err != nil {
			return nil, fmt.Errorf("гиг %s: %w", g.ID, err)
		}
		if _, dup := seen[g.ID]; dup {
			return nil, fmt.Errorf("гиг %s: %w", g.ID, repo.ErrAlreadyExists)
		}
		seen[g.ID] = struct{}{}
	}

	if data.Gigs == nil {
		return []gig.Gig{}, nil
	}
	return data.Gigs, nil
}

// Seed складывает гиги в хранилище, уже существующие пропускаются
func Seed(ctx context.Context, storage Creator, gigs []gig.Gig) (int, error) {
	created := 0
	for i := range gigs {
		err := storage.Create(ctx, &gigs[i])
		if errors.Is(err, repo.ErrAlreadyExists) {
			logger.Warn("Fixtures: Гиг уже существует", zap.String("gig_id", gigs[i].ID))
			continue
		}
		if err != nil {
			return created, fmt.Errorf("добавление гига %s: %w", gigs[i].ID, err)
		}
		created++
	}

	logger.Info("Fixtures: Гиги загружены", zap.Int("created", created), zap.Int("total", len(gigs)))
	return created, nil
}
