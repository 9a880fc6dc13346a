package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	absoluteDateRe = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	relativeRe     = regexp.MustCompile(`^(\d+)\s+(hour|hours|day|days|week|weeks)$`)
)

// ParseDueDate parses a due date in one of these forms:
//   - "today", "tomorrow"
//   - dd/mm/yyyy (e.g. "15/12/2026")
//   - relative: "3 days", "2 weeks", "24 hours"
//
// An empty input yields a nil date with no error.
func ParseDueDate(input string) (*time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, nil
	}

	switch strings.ToLower(input) {
	case "today":
		due := endOfDay(time.Now())
		return &due, nil
	case "tomorrow":
		due := endOfDay(time.Now().AddDate(0, 0, 1))
		return &due, nil
	}

	if due, err := parseAbsolute(input); err == nil {
		return due, nil
	}
	if due, err := parseRelative(input); err == nil {
		return due, nil
	}

	return nil, fmt.Errorf("invalid date format %q: use dd/mm/yyyy, today, tomorrow, or 'N days/weeks/hours'", input)
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}

func parseAbsolute(input string) (*time.Time, error) {
	matches := absoluteDateRe.FindStringSubmatch(input)
	if matches == nil {
		return nil, fmt.Errorf("not an absolute date")
	}

	day, _ := strconv.Atoi(matches[1])
	month, _ := strconv.Atoi(matches[2])
	year, _ := strconv.Atoi(matches[3])

	if month < 1 || month > 12 {
		return nil, fmt.Errorf("month must be between 1 and 12")
	}
	if day < 1 || day > 31 {
		return nil, fmt.Errorf("day must be between 1 and 31")
	}

	due := time.Date(year, time.Month(month), day, 23, 59, 59, 0, time.Local)
	// time.Date normalizes out-of-range days (e.g. 31/02), so a changed
	// component means the input date does not exist.
	if due.Day() != day || due.Month() != time.Month(month) || due.Year() != year {
		return nil, fmt.Errorf("invalid date")
	}

	return &due, nil
}

func parseRelative(input string) (*time.Time, error) {
	matches := relativeRe.FindStringSubmatch(strings.ToLower(input))
	if matches == nil {
		return nil, fmt.Errorf("not a relative date")
	}

	amount, err := strconv.Atoi(matches[1])
	if err != nil || amount < 1 {
		return nil, fmt.Errorf("invalid amount")
	}

	now := time.Now()
	switch matches[2] {
	case "hour", "hours":
		due := now.Add(time.Duration(amount) * time.Hour)
		return &due, nil
	case "day", "days":
		due := endOfDay(now.AddDate(0, 0, amount))
		return &due, nil
	case "week", "weeks":
		due := endOfDay(now.AddDate(0, 0, amount*7))
		return &due, nil
	}
	return nil, fmt.Errorf("unsupported time unit")
}

// FormatDueDate renders a due date for list output, flagging how close it is
func FormatDueDate(due *time.Time) string {
	if due == nil {
		return ""
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dueDay := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, due.Location())
	daysDiff := int(dueDay.Sub(today).Hours() / 24)

	dateStr := due.Format("02/01/2006")

	switch {
	case daysDiff < 0:
		return fmt.Sprintf("OVERDUE (%s)", dateStr)
	case daysDiff == 0:
		return fmt.Sprintf("due today (%s)", dateStr)
	case daysDiff == 1:
		return fmt.Sprintf("due tomorrow (%s)", dateStr)
	case daysDiff <= 7:
		return fmt.Sprintf("due in %d days (%s)", daysDiff, dateStr)
	default:
		return fmt.Sprintf("due %s", dateStr)
	}
}
