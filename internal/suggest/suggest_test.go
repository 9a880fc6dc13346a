package suggest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Thaumonaut/cosplans/internal/models"
)

var testNow = time.Date(2026, 8, 31, 14, 30, 0, 0, time.UTC)

func dueIn(days int) *time.Time {
	d := testNow.AddDate(0, 0, days)
	return &d
}

func TestScoreTask_DueTodayHighPriorityNoSubtasks(t *testing.T) {
	task := models.Task{
		Title:    "finish wig styling",
		Priority: models.PriorityHigh,
		Due:      dueIn(0),
	}

	s := scoreTask(task, testNow)

	// 0.4*0.95 + 0.3*1.0 + 0.2*1.0 + 0.1*1.0
	assert.InDelta(t, 0.98, s.Score, 1e-9)
	assert.Equal(t, UrgencyHigh, s.Urgency)
	assert.Equal(t, "Due today", s.UrgencyReason)
	assert.Equal(t, "overdue or due very soon, high priority, quick task", s.Reasoning)
}

func TestScoreTask_FarOutLowPriorityBlocked(t *testing.T) {
	task := models.Task{
		Title:             "armor build",
		Priority:          models.PriorityLow,
		Due:               dueIn(8),
		TotalSubtasks:     6,
		CompletedSubtasks: 2,
	}

	s := scoreTask(task, testNow)

	// 0.4*0.3 + 0.3*0.3 + 0.2*0.3 + 0.1*0.4
	assert.InDelta(t, 0.31, s.Score, 1e-9)
	assert.Equal(t, UrgencyLow, s.Urgency)
	assert.Equal(t, "has incomplete subtasks", s.Reasoning)
}

func TestDueDateScore_Boundaries(t *testing.T) {
	tests := []struct {
		name string
		due  *time.Time
		want float64
	}{
		{"no due date", nil, 0.3},
		{"overdue", dueIn(-1), 1.0},
		{"today", dueIn(0), 0.95},
		{"tomorrow", dueIn(1), 0.85},
		{"two days", dueIn(2), 0.7},
		{"three days", dueIn(3), 0.7},
		{"four days", dueIn(4), 0.5},
		{"seven days", dueIn(7), 0.5},
		{"eight days", dueIn(8), 0.3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dueDateScore(tt.due, testNow))
		})
	}
}

func TestPriorityScore(t *testing.T) {
	assert.Equal(t, 1.0, priorityScore(models.PriorityHigh))
	assert.Equal(t, 0.6, priorityScore(models.PriorityMedium))
	assert.Equal(t, 0.3, priorityScore(models.PriorityLow))
	assert.Equal(t, 0.5, priorityScore(models.PriorityNone))
}

func TestEffortScore(t *testing.T) {
	assert.Equal(t, 1.0, effortScore(0))
	assert.Equal(t, 0.8, effortScore(1))
	assert.Equal(t, 0.8, effortScore(3))
	assert.Equal(t, 0.6, effortScore(4))
	assert.Equal(t, 0.6, effortScore(5))
	assert.Equal(t, 0.4, effortScore(6))
}

func TestUrgencyLevel_Boundaries(t *testing.T) {
	assert.Equal(t, UrgencyLow, urgencyLevel(nil, testNow))
	assert.Equal(t, UrgencyCritical, urgencyLevel(dueIn(-1), testNow))
	assert.Equal(t, UrgencyHigh, urgencyLevel(dueIn(0), testNow))
	assert.Equal(t, UrgencyHigh, urgencyLevel(dueIn(1), testNow))
	assert.Equal(t, UrgencyMedium, urgencyLevel(dueIn(2), testNow))
	assert.Equal(t, UrgencyMedium, urgencyLevel(dueIn(7), testNow))
	assert.Equal(t, UrgencyLow, urgencyLevel(dueIn(8), testNow))
}

func TestUrgencyReason(t *testing.T) {
	assert.Equal(t, "No due date", urgencyReason(nil, testNow))
	assert.Equal(t, "Overdue by 1 day", urgencyReason(dueIn(-1), testNow))
	assert.Equal(t, "Overdue by 3 days", urgencyReason(dueIn(-3), testNow))
	assert.Equal(t, "Due today", urgencyReason(dueIn(0), testNow))
	assert.Equal(t, "Due tomorrow", urgencyReason(dueIn(1), testNow))
	assert.Equal(t, "Due in 5 days", urgencyReason(dueIn(5), testNow))
	assert.Equal(t, "Due in 2 weeks", urgencyReason(dueIn(14), testNow))
}

func TestGetSuggestions_RankedAndTruncated(t *testing.T) {
	tasks := []models.Task{
		{Title: "someday", Priority: models.PriorityLow},
		{Title: "urgent", Priority: models.PriorityHigh, Due: dueIn(0)},
		{Title: "soon", Priority: models.PriorityMedium, Due: dueIn(2)},
		{Title: "later", Priority: models.PriorityMedium, Due: dueIn(5)},
	}

	suggestions := getSuggestionsAt(tasks, Options{MaxSuggestions: 2, ExcludeCompleted: true}, testNow)
	require.Len(t, suggestions, 2)
	assert.Equal(t, "urgent", suggestions[0].Task.Title)
	assert.Equal(t, "soon", suggestions[1].Task.Title)
}

func TestGetSuggestions_TiesKeepInputOrder(t *testing.T) {
	twin := models.Task{Priority: models.PriorityMedium, Due: dueIn(2)}

	a, b := twin, twin
	a.Title = "first"
	b.Title = "second"

	suggestions := getSuggestionsAt([]models.Task{a, b}, DefaultOptions(), testNow)
	require.Len(t, suggestions, 2)
	assert.Equal(t, "first", suggestions[0].Task.Title)
	assert.Equal(t, "second", suggestions[1].Task.Title)
}

func TestGetSuggestions_ExcludesCompleted(t *testing.T) {
	doneStage := &models.Stage{IsCompletionStage: true}
	openStage := &models.Stage{}

	tasks := []models.Task{
		{Title: "finished", Stage: doneStage},
		{Title: "open", Stage: openStage},
	}

	suggestions := getSuggestionsAt(tasks, DefaultOptions(), testNow)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "open", suggestions[0].Task.Title)

	all := getSuggestionsAt(tasks, Options{MaxSuggestions: 5}, testNow)
	assert.Len(t, all, 2)
}

func TestGetSuggestions_FallbackReasoning(t *testing.T) {
	// Due far out, medium priority, many subtasks all complete: no
	// reasoning phrase applies.
	task := models.Task{
		Title:             "long haul",
		Priority:          models.PriorityMedium,
		Due:               dueIn(30),
		TotalSubtasks:     7,
		CompletedSubtasks: 7,
	}

	suggestions := getSuggestionsAt([]models.Task{task}, DefaultOptions(), testNow)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "Good task to work on", suggestions[0].Reasoning)
}

func TestGetSuggestions_DeterministicScores(t *testing.T) {
	tasks := []models.Task{
		{Title: "a", Priority: models.PriorityHigh, Due: dueIn(0)},
		{Title: "b", Priority: models.PriorityLow, Due: dueIn(8), TotalSubtasks: 6, CompletedSubtasks: 2},
	}

	first := getSuggestionsAt(tasks, DefaultOptions(), testNow)
	second := getSuggestionsAt(tasks, DefaultOptions(), testNow)
	assert.Equal(t, first, second)
}
