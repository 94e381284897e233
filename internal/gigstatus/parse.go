package gigstatus

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	ErrEmptyDate    = errors.New("пустая дата")
	ErrUnknownShape = errors.New("неподдерживаемый формат даты")
)

// ParseError - дата, которую не удалось привести к time.Time
type ParseError struct {
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("разбор поля %s (%q): %s", e.Field, e.Value, e.Err.Error())
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// "1st", "22nd", "23rd", "4th" сразу после числа месяца
var ordinalSuffix = regexp.MustCompile(`(?i)\b(\d{1,2})(?:st|nd|rd|th)\b`)

var postedLayouts = []string{
	"2 January 2006, 15:04",
	"2 January 2006 15:04",
	"2 January 2006",
	"2 Jan 2006, 15:04",
	"2 Jan 2006 15:04",
	"2 Jan 2006",
	"January 2, 2006 15:04",
	"January 2, 2006",
	"January 2 2006",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

var deadlineLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// StripOrdinals убирает английские порядковые суффиксы, оставляя цифры
func StripOrdinals(s string) string {
	return ordinalSuffix.ReplaceAllString(s, "$1")
}

func normalize(s string) string {
	return strings.Join(strings.Fields(StripOrdinals(s)), " ")
}

// ParsePostedDate разбирает дату публикации вида "23rd September 2025, 07:15".
// Даты без зоны трактуются в loc.
func ParsePostedDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}

	value := normalize(s)
	if value == "" {
		return time.Time{}, &ParseError{Field: "posted_date", Value: s, Err: ErrEmptyDate}
	}

	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}

	for _, layout := range postedLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &ParseError{Field: "posted_date", Value: s, Err: ErrUnknownShape}
}

// ParseDeadline разбирает дедлайн. Дата без времени ("2025-09-30") - это
// полночь по UTC, дата со временем без зоны - время в loc. Пустая строка
// возвращает ErrEmptyDate: для дедлайна это "без срока", а не ошибка данных.
func ParseDeadline(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}

	value := strings.TrimSpace(s)
	if value == "" {
		return time.Time{}, &ParseError{Field: "deadline", Value: s, Err: ErrEmptyDate}
	}

	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	for _, layout := range deadlineLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &ParseError{Field: "deadline", Value: s, Err: ErrUnknownShape}
}
