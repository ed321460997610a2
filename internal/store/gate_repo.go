package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/abhisek/examcoach/internal/gate"
)

type gateRepo struct {
	db *sql.DB
}

func (r *gateRepo) Save(ctx context.Context, v gate.Verification) error {
	var revokedAt int64
	if v.RevokedAt != nil {
		revokedAt = v.RevokedAt.Unix()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO verifications
			(user_id, skill_id, p_mastery, timed_pass_count,
			 hours_between, error_tags_cleared, verified_at,
			 revoked_at, revoked_reason)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, skill_id) DO UPDATE SET
			p_mastery = excluded.p_mastery,
			timed_pass_count = excluded.timed_pass_count,
			hours_between = excluded.hours_between,
			error_tags_cleared = excluded.error_tags_cleared,
			verified_at = excluded.verified_at,
			revoked_at = excluded.revoked_at,
			revoked_reason = excluded.revoked_reason`,
		v.UserID, v.SkillID, v.PMasteryAtVerification, v.TimedPassCount,
		v.HoursBetweenPasses, boolToInt(v.ErrorTagsCleared),
		v.VerifiedAt.Unix(), revokedAt, v.RevokedReason)
	return err
}

func (r *gateRepo) Get(ctx context.Context, userID, skillID string) (*gate.Verification, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT user_id, skill_id, p_mastery, timed_pass_count,
		       hours_between, error_tags_cleared, verified_at,
		       revoked_at, revoked_reason
		FROM verifications
		WHERE user_id = ? AND skill_id = ?`, userID, skillID)

	var v gate.Verification
	var verifiedAt, revokedAt int64
	var tagsCleared int
	err := row.Scan(&v.UserID, &v.SkillID, &v.PMasteryAtVerification,
		&v.TimedPassCount, &v.HoursBetweenPasses, &tagsCleared,
		&verifiedAt, &revokedAt, &v.RevokedReason)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	v.ErrorTagsCleared = tagsCleared != 0
	v.VerifiedAt = time.Unix(verifiedAt, 0).UTC()
	if revokedAt != 0 {
		t := time.Unix(revokedAt, 0).UTC()
		v.RevokedAt = &t
	}
	return &v, nil
}

func (r *gateRepo) Revoke(ctx context.Context, userID, skillID, reason string, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE verifications
		SET revoked_at = ?, revoked_reason = ?
		WHERE user_id = ? AND skill_id = ? AND revoked_at = 0`,
		at.Unix(), reason, userID, skillID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return errors.New("no active verification to revoke")
	}
	return nil
}
