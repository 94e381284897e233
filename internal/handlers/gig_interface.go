package handlers

import (
	"context"

	"gigBoard/internal/gigstatus"
	"gigBoard/internal/models/gig"
	"gigBoard/internal/notification"
	"gigBoard/internal/service"
)

type GigService interface {
	HealthCheck(context.Context) error
	ListRanked(context.Context, *gigstatus.Status) ([]gigstatus.Ranked, error)
	GetGig(context.Context, string) (gigstatus.Ranked, error)
	CreateGig(context.Context, gig.Gig) (gigstatus.Ranked, error)
	DeleteGig(context.Context, string) error
	Summary(context.Context) (service.Summary, error)
	Notifications(context.Context) ([]notification.Notification, error)
}

var _ GigService = (*service.GigService)(nil)
