package gigstatus

import (
	"strconv"
	"time"
)

const msPerDay = int64(24 * time.Hour / time.Millisecond)

// DayCount - целое число дней, которое может быть неизвестно (дата не
// разобрана или не задана). Любое сравнение с неизвестным значением ложно.
type DayCount struct {
	days  int
	known bool
}

func Days(n int) DayCount {
	return DayCount{days: n, known: true}
}

func UnknownDays() DayCount {
	return DayCount{}
}

// daysBetween считает floor((to - from) / сутки) по миллисекундам
func daysBetween(from, to time.Time) DayCount {
	diff := to.UnixMilli() - from.UnixMilli()
	days := diff / msPerDay
	if diff%msPerDay != 0 && diff < 0 {
		days--
	}
	return Days(int(days))
}

func (d DayCount) Known() bool {
	return d.known
}

func (d DayCount) Value() (int, bool) {
	return d.days, d.known
}

func (d DayCount) Below(n int) bool {
	return d.known && d.days < n
}

func (d DayCount) AtMost(n int) bool {
	return d.known && d.days <= n
}

func (d DayCount) Above(n int) bool {
	return d.known && d.days > n
}

func (d DayCount) AtLeast(n int) bool {
	return d.known && d.days >= n
}

func (d DayCount) String() string {
	if !d.known {
		return "unknown"
	}
	return strconv.Itoa(d.days)
}

func (d DayCount) MarshalJSON() ([]byte, error) {
	if !d.known {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(d.days)), nil
}

func (d *DayCount) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = UnknownDays()
		return nil
	}
	n, err := strconv.Atoi(string(data))
	if err != nil {
		return err
	}
	*d = Days(n)
	return nil
}
