package gigstatus

import (
	"cmp"
	"slices"
	"time"

	"gigBoard/internal/models/gig"
)

// Ranked - гиг вместе с его состоянием. Сам Gig при этом не меняется.
type Ranked struct {
	Gig  gig.Gig
	Info StatusInfo

	postedAt    time.Time
	postedKnown bool
}

// PostedAt возвращает разобранную дату публикации
func (r Ranked) PostedAt() (time.Time, bool) {
	return r.postedAt, r.postedKnown
}

func (c *Classifier) rank(g gig.Gig, now time.Time) Ranked {
	info, posted, known := c.evaluate(g.PostedDate, g.Deadline, g.Status, now)
	return Ranked{
		Gig:         g,
		Info:        info,
		postedAt:    posted,
		postedKnown: known,
	}
}

// Rank классифицирует каждый гиг и упорядочивает по убыванию приоритета,
// затем от свежих к старым. Порядок равных элементов сохраняется.
func (c *Classifier) Rank(gigs []gig.Gig, now time.Time) []Ranked {
	ranked := make([]Ranked, 0, len(gigs))
	for _, g := range gigs {
		ranked = append(ranked, c.rank(g, now))
	}

	slices.SortStableFunc(ranked, compareRanked)
	return ranked
}

// SortByStatusPriority возвращает новый срез гигов в порядке показа.
// Входной срез не меняется.
func (c *Classifier) SortByStatusPriority(gigs []gig.Gig, now time.Time) []gig.Gig {
	ranked := c.Rank(gigs, now)

	sorted := make([]gig.Gig, len(ranked))
	for i, r := range ranked {
		sorted[i] = r.Gig
	}
	return sorted
}

// гиги с неразобранной датой публикации идут последними внутри своего приоритета
func compareRanked(a, b Ranked) int {
	if c := cmp.Compare(b.Info.Priority, a.Info.Priority); c != 0 {
		return c
	}

	switch {
	case a.postedKnown && b.postedKnown:
		return b.postedAt.Compare(a.postedAt)
	case a.postedKnown:
		return -1
	case b.postedKnown:
		return 1
	}
	return 0
}
