package store

import (
	"context"
	"testing"
	"time"

	"github.com/abhisek/examcoach/internal/attempt"
	"github.com/abhisek/examcoach/internal/catalog"
	"github.com/abhisek/examcoach/internal/gate"
	"github.com/abhisek/examcoach/internal/mastery"
	"github.com/abhisek/examcoach/internal/planner"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is skipped here.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestMasteryRepoRoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.MasteryRepo()
	ctx := context.Background()

	// Missing record reads as nil, not an error.
	rec, err := repo.Get(ctx, "u1", "civ-damages")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rec != nil {
		t.Fatal("expected nil record before any save")
	}

	now := time.Now().Truncate(time.Second).UTC()
	want := &mastery.Record{
		UserID:          "u1",
		SkillID:         "civ-damages",
		PMastery:        0.42,
		Stability:       1.15,
		LastPracticedAt: now,
		NextReviewDate:  now.AddDate(0, 0, 8),
		RepsCount:       3,
	}
	if err := repo.Save(ctx, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.Get(ctx, "u1", "civ-damages")
	if err != nil {
		t.Fatalf("Get after save: %v", err)
	}
	if got == nil {
		t.Fatal("record not found after save")
	}
	if got.PMastery != want.PMastery || got.Stability != want.Stability {
		t.Errorf("mastery state did not round-trip: %+v", got)
	}
	if !got.LastPracticedAt.Equal(want.LastPracticedAt) {
		t.Errorf("LastPracticedAt = %v, want %v", got.LastPracticedAt, want.LastPracticedAt)
	}
	if got.IsVerified {
		t.Error("IsVerified should be false")
	}

	// Upsert overwrites in place.
	want.PMastery = 0.55
	want.RepsCount = 4
	if err := repo.Save(ctx, want); err != nil {
		t.Fatalf("Save (update): %v", err)
	}
	all, err := repo.GetAll(ctx, "u1")
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("GetAll returned %d records, want 1", len(all))
	}
	if all["civ-damages"].PMastery != 0.55 {
		t.Errorf("upsert lost: PMastery = %f", all["civ-damages"].PMastery)
	}
}

func TestMasteryRepo_NeverPracticedTimesRoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.MasteryRepo()
	ctx := context.Background()

	if err := repo.Save(ctx, mastery.NewRecord("u1", "crim-homicide")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := repo.Get(ctx, "u1", "crim-homicide")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !got.LastPracticedAt.IsZero() || !got.NextReviewDate.IsZero() {
		t.Errorf("zero times should round-trip as zero, got %+v", got)
	}
}

func TestAttemptRepoAppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	repo := s.AttemptRepo()
	ctx := context.Background()
	base := time.Now().Add(-48 * time.Hour).Truncate(time.Second).UTC()

	mk := func(skill string, at time.Time, tags ...string) attempt.Attempt {
		return attempt.Attempt{
			ID:          attempt.NewID(),
			UserID:      "u1",
			ItemID:      "item-x",
			Skills:      []catalog.SkillCoverage{{SkillID: skill, Weight: 1.0}},
			Format:      catalog.FormatWritten,
			Mode:        catalog.ModeTimed,
			ScoreNorm:   0.7,
			Difficulty:  3,
			ErrorTags:   tags,
			SubmittedAt: at,
		}
	}

	attempts := []attempt.Attempt{
		mk("civ-damages", base, "misses-issue"),
		mk("civ-damages", base.Add(30*time.Hour), "misses-issue", "weak-authority"),
		mk("crim-homicide", base.Add(40*time.Hour)),
	}
	for _, att := range attempts {
		if err := repo.Append(ctx, att); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	got, err := repo.List(ctx, "u1", AttemptQuery{SkillID: "civ-damages"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("skill filter returned %d attempts, want 2", len(got))
	}
	if !got[0].SubmittedAt.After(got[1].SubmittedAt) {
		t.Error("attempts should come back newest first")
	}
	if got[0].Skills[0].Weight != 1.0 {
		t.Errorf("coverage weight did not round-trip: %+v", got[0].Skills)
	}

	// Since filter excludes the oldest.
	got, err = repo.List(ctx, "u1", AttemptQuery{Since: base.Add(time.Hour)})
	if err != nil {
		t.Fatalf("List since: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("since filter returned %d attempts, want 2", len(got))
	}

	counts, err := repo.ErrorTagCounts(ctx, "u1", "civ-damages", base.Add(-time.Hour))
	if err != nil {
		t.Fatalf("ErrorTagCounts: %v", err)
	}
	if counts["misses-issue"] != 2 || counts["weak-authority"] != 1 {
		t.Errorf("unexpected tag counts: %v", counts)
	}
}

func TestGateRepoSaveGetRevoke(t *testing.T) {
	s := openTestStore(t)
	repo := s.GateRepo()
	ctx := context.Background()
	now := time.Now().Truncate(time.Second).UTC()

	v, err := repo.Get(ctx, "u1", "civ-damages")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if v != nil {
		t.Fatal("expected nil verification before any save")
	}

	saved := gate.Verification{
		UserID:                 "u1",
		SkillID:                "civ-damages",
		PMasteryAtVerification: 0.91,
		TimedPassCount:         2,
		HoursBetweenPasses:     30,
		VerifiedAt:             now,
	}
	if err := repo.Save(ctx, saved); err != nil {
		t.Fatalf("Save: %v", err)
	}

	v, err = repo.Get(ctx, "u1", "civ-damages")
	if err != nil {
		t.Fatalf("Get after save: %v", err)
	}
	if v == nil || v.RevokedAt != nil {
		t.Fatalf("expected active verification, got %+v", v)
	}
	if v.PMasteryAtVerification != 0.91 || v.TimedPassCount != 2 {
		t.Errorf("verification did not round-trip: %+v", v)
	}

	revokedAt := now.Add(72 * time.Hour)
	if err := repo.Revoke(ctx, "u1", "civ-damages", "mastery decayed below threshold", revokedAt); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	v, _ = repo.Get(ctx, "u1", "civ-damages")
	if v.RevokedAt == nil || !v.RevokedAt.Equal(revokedAt) {
		t.Errorf("RevokedAt = %v, want %v", v.RevokedAt, revokedAt)
	}
	if v.RevokedReason == "" {
		t.Error("revoke reason not stored")
	}

	// A second revoke of the same verification fails.
	if err := repo.Revoke(ctx, "u1", "civ-damages", "again", revokedAt); err == nil {
		t.Error("revoking an already-revoked verification should fail")
	}
}

func TestPlanRepoReplacesSameDay(t *testing.T) {
	s := openTestStore(t)
	repo := s.PlanRepo()
	ctx := context.Background()
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	p, err := repo.Get(ctx, "u1", day)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if p != nil {
		t.Fatal("expected nil plan before any save")
	}

	first := &planner.Plan{
		UserID: "u1",
		Date:   day,
		Phase:  planner.PhaseApproaching,
		Tasks: []planner.Task{{
			SkillID:          "civ-damages",
			ItemID:           "item-a",
			TaskType:         "practice",
			Format:           catalog.FormatWritten,
			Mode:             catalog.ModePractice,
			EstimatedMinutes: 30,
		}},
		TotalMinutes: 30,
	}
	if err := repo.Save(ctx, first); err != nil {
		t.Fatalf("Save: %v", err)
	}

	second := &planner.Plan{
		UserID:       "u1",
		Date:         day.Add(9 * time.Hour), // same calendar day
		Phase:        planner.PhaseApproaching,
		Tasks:        first.Tasks[:0:0],
		TotalMinutes: 0,
	}
	second.Tasks = append(second.Tasks,
		planner.Task{SkillID: "crim-homicide", ItemID: "item-b", TaskType: "review",
			Format: catalog.FormatMCQ, Mode: catalog.ModeTimed, EstimatedMinutes: 20})
	second.TotalMinutes = 20
	if err := repo.Save(ctx, second); err != nil {
		t.Fatalf("Save (replace): %v", err)
	}

	got, err := repo.Get(ctx, "u1", day)
	if err != nil {
		t.Fatalf("Get after replace: %v", err)
	}
	if got == nil {
		t.Fatal("plan not found after save")
	}
	if len(got.Tasks) != 1 || got.Tasks[0].ItemID != "item-b" {
		t.Errorf("same-day save should replace the plan, got %+v", got.Tasks)
	}
	if got.TotalMinutes != 20 {
		t.Errorf("TotalMinutes = %d, want 20", got.TotalMinutes)
	}
}
