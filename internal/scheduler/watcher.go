package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/fortuna/dugout/internal/schedule"
	"github.com/fortuna/dugout/internal/service"
	"github.com/fortuna/dugout/internal/statsapi"
	"github.com/fortuna/dugout/internal/store"
)

// ScheduleSource loads a team's correlated schedule
type ScheduleSource interface {
	GetSchedule(ctx context.Context, teamID string, order schedule.Order) (*service.ScheduleView, error)
}

// Publisher receives every changed schedule row
type Publisher interface {
	PublishScheduleUpdate(ctx context.Context, teamID string, update interface{}) error
}

// LabelStore persists the last published labels across restarts
type LabelStore interface {
	Load(ctx context.Context, teamID string) (map[string]string, error)
	Upsert(ctx context.Context, labels []store.ScheduleLabel) error
}

// CacheInvalidator drops cached responses so a poll reaches the stats service
type CacheInvalidator interface {
	Delete(ctx context.Context, keys ...string) error
}

// ScheduleUpdate is published when a schedule row's label changes
type ScheduleUpdate struct {
	TeamID        string       `json:"team_id"`
	ScheduleID    string       `json:"schedule_id"`
	PreviousLabel string       `json:"previous_label,omitempty"`
	Row           schedule.Row `json:"row"`
	DetectedAt    time.Time    `json:"detected_at"`
}

// Config holds watcher configuration
type Config struct {
	Interval time.Duration  // Default: 60s
	Teams    []string       // Team ids to watch
	Order    schedule.Order // Order rows are loaded in
}

// DefaultConfig returns default watcher configuration
func DefaultConfig() *Config {
	return &Config{
		Interval: 60 * time.Second,
		Order:    schedule.Ascending,
	}
}

// Option configures a Watcher
type Option func(*Watcher)

// WithPublishers adds publishers changed rows are sent to
func WithPublishers(publishers ...Publisher) Option {
	return func(w *Watcher) {
		for _, p := range publishers {
			if p != nil {
				w.publishers = append(w.publishers, p)
			}
		}
	}
}

// WithLabelStore makes the watcher remember published labels across restarts
func WithLabelStore(labels LabelStore) Option {
	return func(w *Watcher) {
		w.labels = labels
	}
}

// WithCacheInvalidator clears a team's cached schedule and results before
// each poll
func WithCacheInvalidator(cache CacheInvalidator) Option {
	return func(w *Watcher) {
		w.cache = cache
	}
}

// WithLogger sets the watcher logger
func WithLogger(logger *log.Logger) Option {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// Watcher polls the schedules of a set of teams and publishes rows whose
// result label changed since the previous pass.
type Watcher struct {
	source     ScheduleSource
	publishers []Publisher
	labels     LabelStore
	cache      CacheInvalidator
	config     *Config
	logger     *log.Logger
	now        func() time.Time

	mu       sync.Mutex
	known    map[string]map[string]string
	lastPoll time.Time
	lastErr  error
}

// NewWatcher creates a new schedule watcher
func NewWatcher(source ScheduleSource, config *Config, opts ...Option) *Watcher {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Interval <= 0 {
		config.Interval = DefaultConfig().Interval
	}

	w := &Watcher{
		source: source,
		config: config,
		logger: log.New(log.Writer(), "[watcher] ", log.LstdFlags),
		now:    time.Now,
		known:  make(map[string]map[string]string),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start polls immediately and then on every interval until ctx is cancelled
func (w *Watcher) Start(ctx context.Context) {
	if len(w.config.Teams) == 0 {
		w.logger.Println("No teams to watch, watcher idle")
		return
	}

	w.logger.Printf("→ Watching %d team(s) every %v", len(w.config.Teams), w.config.Interval)

	ticker := time.NewTicker(w.config.Interval)
	defer ticker.Stop()

	w.pollAll(ctx)

	for {
		select {
		case <-ctx.Done():
			w.logger.Println("→ Watcher stopped")
			return
		case <-ticker.C:
			w.pollAll(ctx)
		}
	}
}

func (w *Watcher) pollAll(ctx context.Context) {
	var lastErr error
	for _, teamID := range w.config.Teams {
		updates, err := w.PollTeam(ctx, teamID)
		if err != nil {
			w.logger.Printf("⚠️  Polling %s failed: %v", teamID, err)
			lastErr = err
			continue
		}
		if len(updates) > 0 {
			w.logger.Printf("✓ %s: %d schedule update(s) published", teamID, len(updates))
		}
	}

	w.mu.Lock()
	w.lastPoll = w.now()
	w.lastErr = lastErr
	w.mu.Unlock()
}

// PollTeam reloads one team's schedule, publishes the rows whose label
// changed and returns them. The first pass for a team with no stored labels
// only records a baseline. Incomplete schedules are skipped and leave the
// previous labels in place.
func (w *Watcher) PollTeam(ctx context.Context, teamID string) ([]ScheduleUpdate, error) {
	if w.cache != nil {
		keys := []string{statsapi.TeamPath(teamID, "schedule"), statsapi.TeamPath(teamID, "game-summaries")}
		if err := w.cache.Delete(ctx, keys...); err != nil {
			w.logger.Printf("⚠️  Clearing cached schedule of %s failed: %v", teamID, err)
		}
	}

	view, err := w.source.GetSchedule(ctx, teamID, w.config.Order)
	if err != nil {
		return nil, fmt.Errorf("loading schedule: %w", err)
	}
	if view.Incomplete {
		w.logger.Printf("⚠️  %s: schedule or results unavailable, skipping this pass", teamID)
		return nil, nil
	}

	previous, seen, err := w.previousLabels(ctx, teamID)
	if err != nil {
		return nil, err
	}

	current := make(map[string]string)
	var updates []ScheduleUpdate
	var changed []store.ScheduleLabel

	for _, month := range view.Months {
		for _, day := range month.Days {
			for _, row := range day.Rows {
				if row.ScheduleID == "" {
					continue
				}
				current[row.ScheduleID] = row.Label

				old, ok := previous[row.ScheduleID]
				if ok && old == row.Label {
					continue
				}
				changed = append(changed, store.ScheduleLabel{
					TeamID:     teamID,
					ScheduleID: row.ScheduleID,
					Label:      row.Label,
					Outcome:    string(row.Outcome),
				})
				if !seen {
					continue
				}
				updates = append(updates, ScheduleUpdate{
					TeamID:        teamID,
					ScheduleID:    row.ScheduleID,
					PreviousLabel: old,
					Row:           row,
					DetectedAt:    w.now(),
				})
			}
		}
	}

	for _, update := range updates {
		for _, p := range w.publishers {
			if err := p.PublishScheduleUpdate(ctx, teamID, update); err != nil {
				w.logger.Printf("⚠️  Publishing update for %s/%s failed: %v", teamID, update.ScheduleID, err)
			}
		}
	}

	if w.labels != nil && len(changed) > 0 {
		if err := w.labels.Upsert(ctx, changed); err != nil {
			w.logger.Printf("⚠️  Storing labels for %s failed: %v", teamID, err)
		}
	}

	w.mu.Lock()
	w.known[teamID] = current
	w.mu.Unlock()

	return updates, nil
}

// previousLabels returns the labels of the last pass and whether there was one
func (w *Watcher) previousLabels(ctx context.Context, teamID string) (map[string]string, bool, error) {
	w.mu.Lock()
	known, ok := w.known[teamID]
	w.mu.Unlock()
	if ok {
		return known, true, nil
	}

	if w.labels == nil {
		return nil, false, nil
	}

	stored, err := w.labels.Load(ctx, teamID)
	if err != nil {
		return nil, false, fmt.Errorf("loading stored labels: %w", err)
	}
	return stored, len(stored) > 0, nil
}

// GetStatus returns current watcher status
func (w *Watcher) GetStatus() map[string]interface{} {
	w.mu.Lock()
	defer w.mu.Unlock()

	status := map[string]interface{}{
		"teams":      w.config.Teams,
		"interval":   w.config.Interval.String(),
		"order":      w.config.Order.String(),
		"publishers": len(w.publishers),
	}
	if !w.lastPoll.IsZero() {
		status["last_poll"] = w.lastPoll.Format(time.RFC3339)
	}
	if w.lastErr != nil {
		status["last_error"] = w.lastErr.Error()
	}
	return status
}
