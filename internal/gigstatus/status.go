package gigstatus

import (
	"cmp"
	"fmt"
	"strings"
)

// Status - вычисленная категория гига. Значение константы совпадает с
// приоритетом показа: чем больше, тем выше в списке.
type Status int

const (
	StatusOpen Status = iota + 1
	StatusNew
	StatusUrgent
	StatusClosingSoon
	StatusClosed
)

var statusNames = map[Status]string{
	StatusOpen:        "OPEN",
	StatusNew:         "NEW",
	StatusUrgent:      "URGENT",
	StatusClosingSoon: "CLOSING SOON",
	StatusClosed:      "CLOSED",
}

// All возвращает статусы от самого приоритетного к наименее приоритетному
func All() []Status {
	return []Status{StatusClosed, StatusClosingSoon, StatusUrgent, StatusNew, StatusOpen}
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

func (s Status) Valid() bool {
	_, ok := statusNames[s]
	return ok
}

func (s Status) Priority() int {
	return int(s)
}

// Compare упорядочивает статусы по приоритету
func Compare(a, b Status) int {
	return cmp.Compare(a.Priority(), b.Priority())
}

// ParseStatus принимает имя статуса без учёта регистра; "closing_soon" и
// "closing-soon" тоже подходят, чтобы статус можно было передать в query.
func ParseStatus(s string) (Status, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	normalized = strings.NewReplacer("_", " ", "-", " ").Replace(normalized)
	for status, name := range statusNames {
		if name == normalized {
			return status, nil
		}
	}
	return 0, fmt.Errorf("неизвестный статус %q", s)
}

func (s Status) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("неизвестный статус %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
