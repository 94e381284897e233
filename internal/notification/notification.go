package notification

import (
	"strings"
	"time"

	"gigBoard/internal/gigstatus"
)

type Kind string

const (
	KindNewGig    Kind = "new_gig"
	KindUrgentGig Kind = "urgent_gig"
)

type Notification struct {
	ID       string     `json:"id"`
	GigID    string     `json:"gig_id"`
	Kind     Kind       `json:"kind"`
	Title    string     `json:"title"`
	Message  string     `json:"message"`
	Priority int        `json:"priority"`
	PostedAt *time.Time `json:"posted_at,omitempty"`
}

var titles = map[Kind]string{
	KindNewGig:    "New gig available",
	KindUrgentGig: "Urgent gig",
}

func kindFor(status gigstatus.Status) (Kind, bool) {
	switch status {
	case gigstatus.StatusUrgent:
		return KindUrgentGig, true
	case gigstatus.StatusNew:
		return KindNewGig, true
	}
	return "", false
}

// Build превращает NEW и URGENT гиги в уведомления. Порядок берётся из
// ranked, поэтому срочные идут первыми, а внутри - от свежих к старым.
func Build(ranked []gigstatus.Ranked) []Notification {
	res := []Notification{}
	for _, r := range ranked {
		kind, ok := kindFor(r.Info.Status)
		if !ok {
			continue
		}

		n := Notification{
			ID:       r.Gig.ID + ":" + string(kind),
			GigID:    r.Gig.ID,
			Kind:     kind,
			Title:    titles[kind],
			Message:  message(r),
			Priority: r.Info.Priority,
		}
		if posted, known := r.PostedAt(); known {
			n.PostedAt = &posted
		}
		res = append(res, n)
	}
	return res
}

func message(r gigstatus.Ranked) string {
	parts := make([]string, 0, 3)
	for _, part := range []string{r.Gig.Description, r.Gig.Pay, r.Gig.Location} {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, " · ")
}
