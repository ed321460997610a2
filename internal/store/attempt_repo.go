package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/examcoach/internal/attempt"
	"github.com/abhisek/examcoach/internal/catalog"
)

type attemptRepo struct {
	db *sql.DB
}

func (r *attemptRepo) Append(ctx context.Context, att attempt.Attempt) error {
	skills, err := json.Marshal(att.Skills)
	if err != nil {
		return fmt.Errorf("marshal skills: %w", err)
	}
	tags := att.ErrorTags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return fmt.Errorf("marshal error tags: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO attempts
			(id, user_id, item_id, skills_json, format, mode,
			 score_norm, difficulty, time_taken_sec, error_tags_json, submitted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		att.ID, att.UserID, att.ItemID, string(skills),
		string(att.Format), string(att.Mode),
		att.ScoreNorm, att.Difficulty, att.TimeTakenSec,
		string(tagsJSON), att.SubmittedAt.Unix())
	return err
}

func (r *attemptRepo) List(ctx context.Context, userID string, q AttemptQuery) ([]attempt.Attempt, error) {
	query := `
		SELECT id, user_id, item_id, skills_json, format, mode,
		       score_norm, difficulty, time_taken_sec, error_tags_json, submitted_at
		FROM attempts
		WHERE user_id = ?`
	args := []any{userID}

	if !q.Since.IsZero() {
		query += " AND submitted_at >= ?"
		args = append(args, q.Since.Unix())
	}
	query += " ORDER BY submitted_at DESC"
	// Skill filtering happens after decoding, so the limit is applied
	// in SQL only when no skill filter can discard rows.
	if q.Limit > 0 && q.SkillID == "" {
		query += " LIMIT ?"
		args = append(args, q.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []attempt.Attempt
	for rows.Next() {
		att, err := scanAttempt(rows)
		if err != nil {
			return nil, err
		}
		// Skill membership lives inside skills_json, so the filter is
		// applied after decoding.
		if q.SkillID != "" && !att.TestsSkill(q.SkillID) {
			continue
		}
		out = append(out, att)
		if q.Limit > 0 && len(out) == q.Limit {
			break
		}
	}
	return out, rows.Err()
}

func (r *attemptRepo) ErrorTagCounts(ctx context.Context, userID, skillID string, since time.Time) (map[string]int, error) {
	attempts, err := r.List(ctx, userID, AttemptQuery{SkillID: skillID, Since: since})
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, att := range attempts {
		for _, tag := range att.ErrorTags {
			if strings.TrimSpace(tag) == "" {
				continue
			}
			counts[tag]++
		}
	}
	return counts, nil
}

func scanAttempt(rows *sql.Rows) (attempt.Attempt, error) {
	var att attempt.Attempt
	var skillsJSON, tagsJSON, format, mode string
	var submitted int64
	if err := rows.Scan(&att.ID, &att.UserID, &att.ItemID, &skillsJSON,
		&format, &mode, &att.ScoreNorm, &att.Difficulty,
		&att.TimeTakenSec, &tagsJSON, &submitted); err != nil {
		return attempt.Attempt{}, err
	}
	att.Format = catalog.Format(format)
	att.Mode = catalog.Mode(mode)
	att.SubmittedAt = time.Unix(submitted, 0).UTC()
	if err := json.Unmarshal([]byte(skillsJSON), &att.Skills); err != nil {
		return attempt.Attempt{}, fmt.Errorf("decode skills for attempt %s: %w", att.ID, err)
	}
	if err := json.Unmarshal([]byte(tagsJSON), &att.ErrorTags); err != nil {
		return attempt.Attempt{}, fmt.Errorf("decode error tags for attempt %s: %w", att.ID, err)
	}
	return att, nil
}
