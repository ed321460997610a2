package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/examcoach/internal/planner"
)

const planDateLayout = "2006-01-02"

type planRepo struct {
	db *sql.DB
}

// Save replaces any plan already generated for the same (user, day).
func (r *planRepo) Save(ctx context.Context, p *planner.Plan) error {
	tasks, err := json.Marshal(p.Tasks)
	if err != nil {
		return fmt.Errorf("marshal tasks: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO plans (user_id, plan_date, phase, total_minutes, tasks_json)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id, plan_date) DO UPDATE SET
			phase = excluded.phase,
			total_minutes = excluded.total_minutes,
			tasks_json = excluded.tasks_json`,
		p.UserID, p.Date.Format(planDateLayout), string(p.Phase),
		p.TotalMinutes, string(tasks))
	return err
}

func (r *planRepo) Get(ctx context.Context, userID string, date time.Time) (*planner.Plan, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT user_id, plan_date, phase, total_minutes, tasks_json
		FROM plans
		WHERE user_id = ? AND plan_date = ?`,
		userID, date.Format(planDateLayout))

	var p planner.Plan
	var dateStr, phase, tasksJSON string
	err := row.Scan(&p.UserID, &dateStr, &phase, &p.TotalMinutes, &tasksJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	p.Phase = planner.Phase(phase)
	p.Date, err = time.Parse(planDateLayout, dateStr)
	if err != nil {
		return nil, fmt.Errorf("decode plan date %q: %w", dateStr, err)
	}
	if err := json.Unmarshal([]byte(tasksJSON), &p.Tasks); err != nil {
		return nil, fmt.Errorf("decode plan tasks: %w", err)
	}
	return &p, nil
}
