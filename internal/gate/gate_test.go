package gate

import (
	"strings"
	"testing"
	"time"

	"github.com/abhisek/examcoach/internal/attempt"
	"github.com/abhisek/examcoach/internal/catalog"
)

var t0 = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func proofAttempt(score float64, at time.Time, tags ...string) attempt.Attempt {
	return attempt.Attempt{
		ID:          attempt.NewID(),
		UserID:      "u1",
		Mode:        catalog.ModeTimed,
		Format:      catalog.FormatWritten,
		ScoreNorm:   score,
		Difficulty:  3,
		ErrorTags:   tags,
		SubmittedAt: at,
	}
}

func passingInput() CheckInput {
	return CheckInput{
		UserID:  "u1",
		SkillID: "crim-homicide",
		Attempts: []attempt.Attempt{
			proofAttempt(0.7, t0),
			proofAttempt(0.8, t0.Add(30*time.Hour)),
		},
		PMastery:     0.90,
		TopErrorTags: []string{"causation-chain", "intent-grade", "citation-form"},
	}
}

func TestCheck_AllConditionsMet(t *testing.T) {
	res := Check(passingInput())
	if !res.IsVerified {
		t.Fatalf("expected verified, reasons: %v", res.Reasons)
	}
	if res.PassCount != 2 {
		t.Errorf("PassCount = %d, want 2", res.PassCount)
	}
	if res.HoursBetweenPasses != 30 {
		t.Errorf("HoursBetweenPasses = %f, want 30", res.HoursBetweenPasses)
	}
	if len(res.Reasons) != 0 {
		t.Errorf("verified result should carry no reasons, got %v", res.Reasons)
	}
}

func TestCheck_LowMastery(t *testing.T) {
	in := passingInput()
	in.PMastery = 0.84
	res := Check(in)
	if res.IsVerified {
		t.Fatal("mastery below threshold must not verify")
	}
	if len(res.Reasons) != 1 || !strings.Contains(res.Reasons[0], "threshold") {
		t.Errorf("want a single mastery-threshold reason, got %v", res.Reasons)
	}
}

func TestCheck_TooFewPasses(t *testing.T) {
	in := passingInput()
	in.Attempts = []attempt.Attempt{
		proofAttempt(0.7, t0),
		proofAttempt(0.5, t0.Add(48*time.Hour)), // failing
	}
	res := Check(in)
	if res.IsVerified {
		t.Fatal("one pass must not verify")
	}
	if res.PassCount != 1 {
		t.Errorf("PassCount = %d, want 1", res.PassCount)
	}
	if len(res.Reasons) != 1 || !strings.Contains(res.Reasons[0], "passing timed attempts") {
		t.Errorf("want a single pass-count reason, got %v", res.Reasons)
	}
}

func TestCheck_PracticeAttemptsDoNotCount(t *testing.T) {
	in := passingInput()
	for i := range in.Attempts {
		in.Attempts[i].Mode = catalog.ModePractice
	}
	res := Check(in)
	if res.IsVerified || res.PassCount != 0 {
		t.Errorf("practice passes must not count toward the gate, got %d", res.PassCount)
	}
}

func TestCheck_PassesTooClose(t *testing.T) {
	in := passingInput()
	in.Attempts = []attempt.Attempt{
		proofAttempt(0.7, t0),
		proofAttempt(0.8, t0.Add(11*time.Hour)),
	}
	res := Check(in)
	if res.IsVerified {
		t.Fatal("passes 11 hours apart must not verify")
	}
	if len(res.Reasons) != 1 {
		t.Fatalf("want exactly the timing reason, got %v", res.Reasons)
	}
	if !strings.Contains(res.Reasons[0], "hours apart") {
		t.Errorf("reason should be timing-specific, got %q", res.Reasons[0])
	}
	if res.HoursBetweenPasses != 11 {
		t.Errorf("HoursBetweenPasses = %f, want 11", res.HoursBetweenPasses)
	}
}

func TestCheck_RecurringErrorTag(t *testing.T) {
	in := passingInput()
	in.Attempts[1].ErrorTags = []string{"intent-grade"}
	res := Check(in)
	if res.IsVerified {
		t.Fatal("recurring top error tag must not verify")
	}
	if len(res.Reasons) != 1 || !strings.Contains(res.Reasons[0], "intent-grade") {
		t.Errorf("want a recurring-error reason naming the tag, got %v", res.Reasons)
	}
}

func TestCheck_ErrorTagBeyondTopThreeIgnored(t *testing.T) {
	in := passingInput()
	in.TopErrorTags = []string{"a", "b", "c", "fourth-tag"}
	in.Attempts[1].ErrorTags = []string{"fourth-tag"}
	res := Check(in)
	if !res.IsVerified {
		t.Errorf("tags beyond the top 3 must not block verification, reasons: %v", res.Reasons)
	}
}

func TestCheck_AllReasonsEnumerated(t *testing.T) {
	in := passingInput()
	in.PMastery = 0.5
	in.Attempts = []attempt.Attempt{
		proofAttempt(0.7, t0),
		proofAttempt(0.8, t0.Add(2*time.Hour), "intent-grade"),
	}
	res := Check(in)
	if res.IsVerified {
		t.Fatal("must not verify")
	}
	if len(res.Reasons) != 3 {
		t.Fatalf("want all three unmet conditions enumerated, got %v", res.Reasons)
	}
}

func TestNewVerification(t *testing.T) {
	in := passingInput()
	res := Check(in)
	now := t0.Add(31 * time.Hour)
	v := NewVerification(in, res, now)
	if v.SkillID != "crim-homicide" || v.TimedPassCount != 2 || !v.ErrorTagsCleared {
		t.Errorf("verification record not populated: %+v", v)
	}
	if v.PMasteryAtVerification != 0.90 {
		t.Errorf("PMasteryAtVerification = %f, want 0.90", v.PMasteryAtVerification)
	}
	if !v.VerifiedAt.Equal(now) {
		t.Error("VerifiedAt not set")
	}
	if v.RevokedAt != nil {
		t.Error("new verification must not be revoked")
	}
}
