// Package gate implements the verification gate: a skill only counts as
// verified after timed, time-spaced, error-clean proof. The check is a
// pure function over attempt history; an unmet gate is a normal result,
// not an error.
package gate

import (
	"fmt"
	"time"

	"github.com/abhisek/examcoach/internal/attempt"
)

// Gate thresholds.
const (
	// VerifyMasteryThreshold is the minimum pMastery for verification.
	VerifyMasteryThreshold = 0.85

	// RequiredPasses is how many passing timed/exam-sim attempts are needed.
	RequiredPasses = 2

	// MinHoursBetweenPasses forces the first two passes to be spaced out,
	// so a single cramming session cannot verify a skill.
	MinHoursBetweenPasses = 24.0

	// TopErrorTagCount is how many historical error tags must stay clear.
	TopErrorTagCount = 3
)

// CheckInput is a snapshot of the evidence the gate evaluates.
type CheckInput struct {
	UserID  string
	SkillID string

	// Attempts is the skill's timed/exam-sim history in chronological
	// order. Non-proof attempts are ignored if present.
	Attempts []attempt.Attempt

	// PMastery is the skill's current calibrated mastery.
	PMastery float64

	// TopErrorTags is the historical top-3 error tags for the skill.
	TopErrorTags []string
}

// CheckResult reports the gate decision with every unmet condition named.
type CheckResult struct {
	IsVerified bool

	// PassCount is the number of passing proof attempts observed.
	PassCount int

	// HoursBetweenPasses is the gap between the first two passes, or 0
	// when fewer than two passes exist.
	HoursBetweenPasses float64

	// Reasons lists a human-readable line per unmet condition. Empty
	// when verified.
	Reasons []string
}

// Verification is the record created when a gate check succeeds.
// Revocation is a policy action at the persistence layer; nothing in this
// package transitions a skill back to unverified.
type Verification struct {
	UserID  string
	SkillID string

	PMasteryAtVerification float64
	TimedPassCount         int
	HoursBetweenPasses     float64
	ErrorTagsCleared       bool

	VerifiedAt    time.Time
	RevokedAt     *time.Time
	RevokedReason string
}

// Check evaluates all four gate conditions and collects every unmet one.
func Check(in CheckInput) CheckResult {
	res := CheckResult{}

	passes := passingProofAttempts(in.Attempts)
	res.PassCount = len(passes)

	if in.PMastery < VerifyMasteryThreshold {
		res.Reasons = append(res.Reasons, fmt.Sprintf(
			"mastery %.0f%% is below the %.0f%% verification threshold",
			in.PMastery*100, VerifyMasteryThreshold*100))
	}

	if len(passes) < RequiredPasses {
		res.Reasons = append(res.Reasons, fmt.Sprintf(
			"needs %d passing timed attempts, has %d",
			RequiredPasses, len(passes)))
		// Spacing and error-tag conditions are unmeasurable without two
		// passes; the missing-pass reason covers them.
		return res
	}

	first, second := passes[0], passes[1]
	res.HoursBetweenPasses = second.SubmittedAt.Sub(first.SubmittedAt).Hours()

	if res.HoursBetweenPasses < MinHoursBetweenPasses {
		res.Reasons = append(res.Reasons, fmt.Sprintf(
			"first two passes are %.1f hours apart; at least %.0f hours required",
			res.HoursBetweenPasses, MinHoursBetweenPasses))
	}

	if repeated := repeatedTopErrors(in.TopErrorTags, second); len(repeated) > 0 {
		res.Reasons = append(res.Reasons, fmt.Sprintf(
			"recurring error pattern in second pass: %v", repeated))
	}

	res.IsVerified = len(res.Reasons) == 0
	return res
}

// NewVerification builds the record for a successful check.
func NewVerification(in CheckInput, res CheckResult, now time.Time) Verification {
	return Verification{
		UserID:                 in.UserID,
		SkillID:                in.SkillID,
		PMasteryAtVerification: in.PMastery,
		TimedPassCount:         res.PassCount,
		HoursBetweenPasses:     res.HoursBetweenPasses,
		ErrorTagsCleared:       true,
		VerifiedAt:             now,
	}
}

// passingProofAttempts filters to passing timed/exam-sim attempts,
// preserving chronological order.
func passingProofAttempts(attempts []attempt.Attempt) []attempt.Attempt {
	var out []attempt.Attempt
	for _, a := range attempts {
		if a.IsProof() && a.Passed() {
			out = append(out, a)
		}
	}
	return out
}

// repeatedTopErrors returns the top historical error tags that reappear
// in the given attempt.
func repeatedTopErrors(topTags []string, a attempt.Attempt) []string {
	if len(topTags) > TopErrorTagCount {
		topTags = topTags[:TopErrorTagCount]
	}
	var repeated []string
	for _, tag := range topTags {
		if a.HasErrorTag(tag) {
			repeated = append(repeated, tag)
		}
	}
	return repeated
}
