package inmemory

import (
	"context"
	"sync"

	"gigBoard/internal/logger"
	"gigBoard/internal/models/gig"
	repo "gigBoard/internal/repository"
)

type GigStorage struct {
	storage map[string]*gig.Gig
	mtx     *sync.RWMutex
	ids     []string
}

func NewGigStorage() *GigStorage {
	return &GigStorage{
		storage: make(map[string]*gig.Gig),
		mtx:     &sync.RWMutex{},
		ids:     []string{},
	}
}

func (s *GigStorage) HealthCheck(ctx context.Context) error {
	logger.Info("Repository: Соединение стабильно")
	return nil
}

func (s *GigStorage) Create(ctx context.Context, gigToCreate *gig.Gig) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.storage[gigToCreate.ID]; ok {
		return repo.ErrAlreadyExists
	}

	stored := *gigToCreate
	s.storage[stored.ID] = &stored
	s.ids = append(s.ids, stored.ID)
	return nil
}

func (s *GigStorage) GetByID(ctx context.Context, id string) (*gig.Gig, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	gigToGet, ok := s.storage[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	res := *gigToGet
	return &res, nil
}

// получение всех гигов в порядке добавления
func (s *GigStorage) List(ctx context.Context) ([]gig.Gig, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := make([]gig.Gig, 0, len(s.ids))
	for _, id := range s.ids {
		res = append(res, *s.storage[id])
	}
	return res, nil
}

func (s *GigStorage) Delete(ctx context.Context, id string) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.storage[id]; !ok {
		return repo.ErrNotFound
	}

	delete(s.storage, id)
	for ind, val := range s.ids {
		if val == id {
			s.ids = append(s.ids[:ind], s.ids[ind+1:]...)
			break
		}
	}
	return nil
}
