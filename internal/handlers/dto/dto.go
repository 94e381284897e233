package dto

import (
	"gigBoard/internal/gigstatus"
	"gigBoard/internal/models/gig"
)

type CreateGigRequest struct {
	ID          string `json:"id,omitempty"`
	Description string `json:"description"`
	Pay         string `json:"pay"`
	Location    string `json:"location"`
	PostedDate  string `json:"posted_date"`
	Deadline    string `json:"deadline,omitempty"`
	Status      string `json:"status"`
}

func (r CreateGigRequest) ToGig() gig.Gig {
	return gig.New(r.ID, r.Description, r.PostedDate,
		gig.WithPay(r.Pay),
		gig.WithLocation(r.Location),
		gig.WithDeadline(r.Deadline),
		gig.WithStatusLabel(r.Status),
	)
}

// GigResponse - гиг и его вычисленное состояние отдельными полями
type GigResponse struct {
	Gig        gig.Gig              `json:"gig"`
	StatusInfo gigstatus.StatusInfo `json:"status_info"`
}

func FromRanked(r gigstatus.Ranked) GigResponse {
	return GigResponse{
		Gig:        r.Gig,
		StatusInfo: r.Info,
	}
}

func FromRankedList(ranked []gigstatus.Ranked) []GigResponse {
	result := make([]GigResponse, len(ranked))
	for i, r := range ranked {
		result[i] = FromRanked(r)
	}
	return result
}
