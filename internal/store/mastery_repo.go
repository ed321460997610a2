package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/abhisek/examcoach/internal/mastery"
)

type masteryRepo struct {
	db *sql.DB
}

func (r *masteryRepo) Get(ctx context.Context, userID, skillID string) (*mastery.Record, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT user_id, skill_id, p_mastery, stability,
		       last_practiced_at, next_review_date, reps_count,
		       is_verified, verified_at
		FROM mastery_records
		WHERE user_id = ? AND skill_id = ?`, userID, skillID)

	rec, err := scanMasteryRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return rec, err
}

func (r *masteryRepo) GetAll(ctx context.Context, userID string) (map[string]*mastery.Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT user_id, skill_id, p_mastery, stability,
		       last_practiced_at, next_review_date, reps_count,
		       is_verified, verified_at
		FROM mastery_records
		WHERE user_id = ?`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]*mastery.Record)
	for rows.Next() {
		rec, err := scanMasteryRecord(rows)
		if err != nil {
			return nil, err
		}
		out[rec.SkillID] = rec
	}
	return out, rows.Err()
}

func (r *masteryRepo) Save(ctx context.Context, rec *mastery.Record) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO mastery_records
			(user_id, skill_id, p_mastery, stability,
			 last_practiced_at, next_review_date, reps_count,
			 is_verified, verified_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, skill_id) DO UPDATE SET
			p_mastery = excluded.p_mastery,
			stability = excluded.stability,
			last_practiced_at = excluded.last_practiced_at,
			next_review_date = excluded.next_review_date,
			reps_count = excluded.reps_count,
			is_verified = excluded.is_verified,
			verified_at = excluded.verified_at`,
		rec.UserID, rec.SkillID, rec.PMastery, rec.Stability,
		unixOf(rec.LastPracticedAt), unixOf(rec.NextReviewDate), rec.RepsCount,
		boolToInt(rec.IsVerified), unixOf(rec.VerifiedAt))
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMasteryRecord(row rowScanner) (*mastery.Record, error) {
	var rec mastery.Record
	var practiced, review, verified int64
	var isVerified int
	if err := row.Scan(&rec.UserID, &rec.SkillID, &rec.PMastery, &rec.Stability,
		&practiced, &review, &rec.RepsCount, &isVerified, &verified); err != nil {
		return nil, err
	}
	rec.LastPracticedAt = timeOf(practiced)
	rec.NextReviewDate = timeOf(review)
	rec.IsVerified = isVerified != 0
	rec.VerifiedAt = timeOf(verified)
	return &rec, nil
}

// unixOf maps the zero time to 0 so "never" round-trips.
func unixOf(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}

func timeOf(unix int64) time.Time {
	if unix == 0 {
		return time.Time{}
	}
	return time.Unix(unix, 0).UTC()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
