// Package suggest ranks tasks to answer "what should I do now?".
//
// Each candidate gets a weighted score from four signals: due-date urgency
// (40%), priority (30%), whether the task is blocked by incomplete subtasks
// (20%), and estimated effort (10%, quick wins score higher).
package suggest

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/Thaumonaut/cosplans/internal/models"
)

// UrgencyLevel classifies how soon a suggested task is due
type UrgencyLevel string

const (
	UrgencyCritical UrgencyLevel = "critical"
	UrgencyHigh     UrgencyLevel = "high"
	UrgencyMedium   UrgencyLevel = "medium"
	UrgencyLow      UrgencyLevel = "low"
)

// Suggestion is one ranked recommendation
type Suggestion struct {
	Task          models.Task
	Score         float64 // 0..1, rounded to 2 decimals
	Reasoning     string
	Urgency       UrgencyLevel
	UrgencyReason string
}

// Options controls suggestion ranking
type Options struct {
	MaxSuggestions   int
	ExcludeCompleted bool
}

// DefaultOptions returns the standard ranking options
func DefaultOptions() Options {
	return Options{MaxSuggestions: 5, ExcludeCompleted: true}
}

// Scoring weights
const (
	weightDueDate    = 0.4
	weightPriority   = 0.3
	weightDependency = 0.2
	weightEffort     = 0.1
)

// GetSuggestions scores and ranks the given tasks. The result is sorted by
// score descending (ties keep input order) and truncated to MaxSuggestions.
func GetSuggestions(tasks []models.Task, opts Options) []Suggestion {
	return getSuggestionsAt(tasks, opts, time.Now())
}

func getSuggestionsAt(tasks []models.Task, opts Options, now time.Time) []Suggestion {
	if opts.MaxSuggestions <= 0 {
		opts.MaxSuggestions = 5
	}

	suggestions := make([]Suggestion, 0, len(tasks))
	for _, task := range tasks {
		if opts.ExcludeCompleted && task.Completed() {
			continue
		}
		s := scoreTask(task, now)
		if s.Score > 0 {
			suggestions = append(suggestions, s)
		}
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Score > suggestions[j].Score
	})

	if len(suggestions) > opts.MaxSuggestions {
		suggestions = suggestions[:opts.MaxSuggestions]
	}
	return suggestions
}

func scoreTask(task models.Task, now time.Time) Suggestion {
	dueScore := dueDateScore(task.Due, now)
	priorityScore := priorityScore(task.Priority)

	blocked := task.TotalSubtasks > 0 && task.CompletedSubtasks < task.TotalSubtasks
	dependencyScore := 1.0
	if blocked {
		dependencyScore = 0.3
	}

	effortScore := effortScore(task.TotalSubtasks)

	total := dueScore*weightDueDate +
		priorityScore*weightPriority +
		dependencyScore*weightDependency +
		effortScore*weightEffort

	return Suggestion{
		Task:          task,
		Score:         math.Round(total*100) / 100,
		Reasoning:     buildReasoning(dueScore, priorityScore, effortScore, blocked),
		Urgency:       urgencyLevel(task.Due, now),
		UrgencyReason: urgencyReason(task.Due, now),
	}
}

// daysUntil counts whole calendar days between now and the due date, both
// compared at midnight.
func daysUntil(due time.Time, now time.Time) int {
	dueDay := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, due.Location())
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return int(math.Ceil(dueDay.Sub(today).Hours() / 24))
}

func dueDateScore(due *time.Time, now time.Time) float64 {
	if due == nil {
		// No due date: low urgency, but never zero.
		return 0.3
	}

	switch diffDays := daysUntil(*due, now); {
	case diffDays < 0:
		return 1.0
	case diffDays == 0:
		return 0.95
	case diffDays == 1:
		return 0.85
	case diffDays <= 3:
		return 0.7
	case diffDays <= 7:
		return 0.5
	default:
		return 0.3
	}
}

func priorityScore(priority int) float64 {
	switch priority {
	case models.PriorityHigh:
		return 1.0
	case models.PriorityMedium:
		return 0.6
	case models.PriorityLow:
		return 0.3
	default:
		return 0.5
	}
}

func effortScore(subtaskCount int) float64 {
	switch {
	case subtaskCount == 0:
		return 1.0
	case subtaskCount <= 3:
		return 0.8
	case subtaskCount <= 5:
		return 0.6
	default:
		return 0.4
	}
}

func urgencyLevel(due *time.Time, now time.Time) UrgencyLevel {
	if due == nil {
		return UrgencyLow
	}

	switch diffDays := daysUntil(*due, now); {
	case diffDays < 0:
		return UrgencyCritical
	case diffDays <= 1:
		return UrgencyHigh
	case diffDays <= 7:
		return UrgencyMedium
	default:
		return UrgencyLow
	}
}

func urgencyReason(due *time.Time, now time.Time) string {
	if due == nil {
		return "No due date"
	}

	diffDays := daysUntil(*due, now)
	switch {
	case diffDays < 0:
		overdue := -diffDays
		if overdue == 1 {
			return "Overdue by 1 day"
		}
		return fmt.Sprintf("Overdue by %d days", overdue)
	case diffDays == 0:
		return "Due today"
	case diffDays == 1:
		return "Due tomorrow"
	case diffDays <= 7:
		return fmt.Sprintf("Due in %d days", diffDays)
	default:
		return fmt.Sprintf("Due in %d weeks", (diffDays+6)/7)
	}
}

func buildReasoning(dueScore, priorityScore, effortScore float64, blocked bool) string {
	var reasons []string

	if dueScore >= 0.9 {
		reasons = append(reasons, "overdue or due very soon")
	} else if dueScore >= 0.7 {
		reasons = append(reasons, "due in the next few days")
	}
	if priorityScore >= 0.8 {
		reasons = append(reasons, "high priority")
	}
	if blocked {
		reasons = append(reasons, "has incomplete subtasks")
	}
	if effortScore >= 0.8 {
		reasons = append(reasons, "quick task")
	}

	if len(reasons) == 0 {
		return "Good task to work on"
	}
	return strings.Join(reasons, ", ")
}
