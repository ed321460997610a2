package mastery

import "time"

// Record is the per-(user, skill) mastery state. Zero-value PMastery
// and a default stability describe a skill never practiced.
type Record struct {
	UserID  string
	SkillID string

	PMastery  float64
	Stability float64

	LastPracticedAt time.Time
	NextReviewDate  time.Time
	RepsCount       int

	IsVerified bool
	VerifiedAt time.Time
}

// NewRecord creates the initial record for a skill's first attempt.
func NewRecord(userID, skillID string) *Record {
	return &Record{
		UserID:    userID,
		SkillID:   skillID,
		Stability: DefaultStability,
	}
}

// ReviewIntervalDays derives the spacing interval from stability: one
// week at default stability, stretched or shrunk proportionally, never
// less than one day.
func (r *Record) ReviewIntervalDays() int {
	days := int(r.Stability * 7)
	if days < 1 {
		days = 1
	}
	return days
}

// DaysSincePractice returns fractional days since the last attempt, or
// -1 if the skill was never practiced.
func (r *Record) DaysSincePractice(now time.Time) float64 {
	if r.LastPracticedAt.IsZero() {
		return -1
	}
	return now.Sub(r.LastPracticedAt).Hours() / 24
}

// OverdueDays returns how many fractional days past the scheduled review
// date now is, or zero when the review is not yet due.
func (r *Record) OverdueDays(now time.Time) float64 {
	if r.NextReviewDate.IsZero() || !now.After(r.NextReviewDate) {
		return 0
	}
	return now.Sub(r.NextReviewDate).Hours() / 24
}
