package repository

import (
	"context"
	"fmt"

	"github.com/fortuna/dugout/internal/store"
)

// LabelRepository remembers the schedule labels the watcher published
type LabelRepository struct {
	db *store.Database
}

// NewLabelRepository creates a new label repository
func NewLabelRepository(db *store.Database) *LabelRepository {
	return &LabelRepository{db: db}
}

// Load returns schedule id -> label for a team
func (r *LabelRepository) Load(ctx context.Context, teamID string) (map[string]string, error) {
	query := `
		SELECT schedule_id, label
		FROM schedule_labels
		WHERE team_id = $1
	`

	rows, err := r.db.DB().QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("querying labels: %w", err)
	}
	defer rows.Close()

	labels := make(map[string]string)
	for rows.Next() {
		var scheduleID, label string
		if err := rows.Scan(&scheduleID, &label); err != nil {
			return nil, fmt.Errorf("scanning label: %w", err)
		}
		labels[scheduleID] = label
	}

	return labels, rows.Err()
}

// Upsert stores the labels in one transaction
func (r *LabelRepository) Upsert(ctx context.Context, labels []store.ScheduleLabel) error {
	if len(labels) == 0 {
		return nil
	}

	tx, err := r.db.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO schedule_labels (team_id, schedule_id, label, outcome, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (team_id, schedule_id) DO UPDATE SET
			label = EXCLUDED.label,
			outcome = EXCLUDED.outcome,
			updated_at = EXCLUDED.updated_at
	`

	for _, l := range labels {
		if _, err := tx.ExecContext(ctx, query, l.TeamID, l.ScheduleID, l.Label, l.Outcome); err != nil {
			return fmt.Errorf("upserting label %s/%s: %w", l.TeamID, l.ScheduleID, err)
		}
	}

	return tx.Commit()
}
