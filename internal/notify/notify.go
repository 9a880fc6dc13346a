package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Event kinds emitted by the task service.
const (
	EventTaskAssigned = "task_assigned"
	EventStageChanged = "stage_changed"
)

// Event describes a change a collaborator may want to hear about.
type Event struct {
	Type      string    `json:"type"`
	TaskID    uint      `json:"task_id"`
	TaskTitle string    `json:"task_title"`
	Detail    string    `json:"detail"`
	At        time.Time `json:"at"`
}

// Dispatcher delivers events fire-and-forget. Implementations must never
// block the caller on delivery problems; failures are logged and dropped.
type Dispatcher interface {
	Dispatch(event Event)
}

// LogDispatcher writes events to the structured log. It is the default
// dispatcher when no webhook is configured.
type LogDispatcher struct {
	logger *slog.Logger
}

// NewLogDispatcher creates a LogDispatcher.
func NewLogDispatcher(logger *slog.Logger) *LogDispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogDispatcher{logger: logger}
}

func (d *LogDispatcher) Dispatch(event Event) {
	d.logger.Info("notification",
		slog.String("type", event.Type),
		slog.Uint64("task_id", uint64(event.TaskID)),
		slog.String("title", event.TaskTitle),
		slog.String("detail", event.Detail),
	)
}

// WebhookDispatcher POSTs events as JSON to a fixed URL.
type WebhookDispatcher struct {
	url    string
	client *http.Client
	logger *slog.Logger
}

// NewWebhookDispatcher creates a WebhookDispatcher for the given URL.
func NewWebhookDispatcher(url string, logger *slog.Logger) *WebhookDispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &WebhookDispatcher{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
		logger: logger,
	}
}

func (d *WebhookDispatcher) Dispatch(event Event) {
	body, err := json.Marshal(event)
	if err != nil {
		d.logger.Warn("notification dropped", slog.String("error", err.Error()))
		return
	}

	resp, err := d.client.Post(d.url, "application/json", bytes.NewReader(body))
	if err != nil {
		d.logger.Warn("notification delivery failed",
			slog.String("url", d.url),
			slog.String("error", err.Error()),
		)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		d.logger.Warn("notification delivery failed",
			slog.String("url", d.url),
			slog.String("error", fmt.Sprintf("status %d", resp.StatusCode)),
		)
	}
}
