package gigstatus

import (
	"strings"
	"time"
)

const (
	// дедлайн ближе этого числа дней - "закрывается"
	ClosingSoonDays = 3
	// гиг считается новым столько дней после публикации
	NewForDays = 2

	urgentLabel = "urgent"
)

// StatusInfo - вычисленное состояние гига на момент now. Нигде не хранится
// и пересчитывается на каждый вызов.
type StatusInfo struct {
	Status            Status   `json:"status"`
	Priority          int      `json:"priority"`
	DaysSincePosted   DayCount `json:"days_since_posted"`
	DaysUntilDeadline DayCount `json:"days_until_deadline"`
	IsActive          bool     `json:"is_active"`
	StatusColor       string   `json:"status_color"`
	Styling           Styling  `json:"styling"`
}

type Classifier struct {
	location *time.Location
}

type ClassifierOption func(*Classifier)

// WithLocation задаёт зону для дат публикации без явной зоны
func WithLocation(loc *time.Location) ClassifierOption {
	if loc == nil {
		return nil
	}
	return func(c *Classifier) {
		c.location = loc
	}
}

func NewClassifier(options ...ClassifierOption) *Classifier {
	c := &Classifier{location: time.Local}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

func (c *Classifier) Location() *time.Location {
	return c.location
}

// Classify никогда не возвращает ошибку: неразобранная дата публикации даёт
// неизвестный DaysSincePosted (гиг не может быть NEW), а пустой или
// неразобранный дедлайн считается бессрочным.
func (c *Classifier) Classify(postedDate, deadline, originalStatus string, now time.Time) StatusInfo {
	info, _, _ := c.evaluate(postedDate, deadline, originalStatus, now)
	return info
}

func (c *Classifier) evaluate(postedDate, deadline, originalStatus string, now time.Time) (StatusInfo, time.Time, bool) {
	posted, postedErr := ParsePostedDate(postedDate, c.location)
	due, dueErr := ParseDeadline(deadline, c.location)

	sincePosted := UnknownDays()
	if postedErr == nil {
		sincePosted = daysBetween(posted, now)
	}

	untilDeadline := UnknownDays()
	if dueErr == nil {
		untilDeadline = daysBetween(now, due)
	}

	return classify(sincePosted, untilDeadline, originalStatus), posted, postedErr == nil
}

func classify(sincePosted, untilDeadline DayCount, originalStatus string) StatusInfo {
	var status Status

	switch {
	case untilDeadline.Below(0):
		status = StatusClosed
	case untilDeadline.AtMost(ClosingSoonDays):
		status = StatusClosingSoon
	case isUrgentLabel(originalStatus) && untilDeadline.Above(ClosingSoonDays):
		status = StatusUrgent
	case sincePosted.AtMost(NewForDays):
		status = StatusNew
	default:
		status = StatusOpen
	}

	styling := StylingFor(status)
	return StatusInfo{
		Status:            status,
		Priority:          status.Priority(),
		DaysSincePosted:   sincePosted,
		DaysUntilDeadline: untilDeadline,
		IsActive:          !untilDeadline.Known() || untilDeadline.AtLeast(0),
		StatusColor:       styling.Color,
		Styling:           styling,
	}
}

func isUrgentLabel(label string) bool {
	return strings.EqualFold(strings.TrimSpace(label), urgentLabel)
}
