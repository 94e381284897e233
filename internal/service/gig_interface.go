package service

import (
	"context"

	"gigBoard/internal/models/gig"
)

type GigRepository interface {
	HealthCheck(context.Context) error
	Create(context.Context, *gig.Gig) error
	GetByID(context.Context, string) (*gig.Gig, error)
	List(context.Context) ([]gig.Gig, error)
	Delete(context.Context, string) error
}
