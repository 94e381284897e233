package gig

import "strings"

type GigOption func(*Gig)

func New(id, description, postedDate string, options ...GigOption) Gig {
	g := Gig{
		ID:          id,
		Description: description,
		PostedDate:  postedDate,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&g)
	}
	return g
}

func WithPay(pay string) GigOption {
	return func(g *Gig) {
		g.Pay = pay
	}
}

func WithLocation(location string) GigOption {
	return func(g *Gig) {
		g.Location = location
	}
}

// пустой дедлайн означает "без срока", опцию можно не применять
func WithDeadline(deadline string) GigOption {
	deadline = strings.TrimSpace(deadline)
	if deadline == "" {
		return nil
	}
	return func(g *Gig) {
		g.Deadline = deadline
	}
}

func WithStatusLabel(label string) GigOption {
	if label == "" {
		return nil
	}
	return func(g *Gig) {
		g.Status = label
	}
}
