package mastery

import (
	"errors"
	"math"
	"testing"

	"github.com/abhisek/examcoach/internal/catalog"
)

const epsilon = 0.0001

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func baseFacts() Facts {
	return Facts{
		ScoreNorm:      0.8,
		Format:         catalog.FormatWritten,
		Mode:           catalog.ModePractice,
		Difficulty:     3,
		CoverageWeight: 1.0,
	}
}

func TestUpdateMastery_KnownDelta(t *testing.T) {
	// quality = 0.2, weight = 1.15 * 1.0 * 1.0 * 1.0 = 1.15
	// delta = 0.15 * 0.2 * 1.15 = 0.0345
	upd, err := UpdateMastery(State{PMastery: 0.5, Stability: 1.0}, baseFacts())
	if err != nil {
		t.Fatalf("UpdateMastery error: %v", err)
	}
	if !almostEqual(upd.Delta, 0.0345) {
		t.Errorf("Delta = %f, want 0.0345", upd.Delta)
	}
	if !almostEqual(upd.PMastery, 0.5345) {
		t.Errorf("PMastery = %f, want 0.5345", upd.PMastery)
	}
	if !upd.WasSuccess {
		t.Error("score 0.8 should be a success")
	}
}

func TestUpdateMastery_DeltaClamped(t *testing.T) {
	// Strongest positive case: perfect oral exam-sim at difficulty 5.
	// raw = 0.15 * 0.4 * (1.35*1.25*1.4) = 0.1418 → clamped to 0.10.
	f := Facts{ScoreNorm: 1.0, Format: catalog.FormatOral, Mode: catalog.ModeExamSim, Difficulty: 5, CoverageWeight: 1.0}
	upd, err := UpdateMastery(State{PMastery: 0.5, Stability: 1.0}, f)
	if err != nil {
		t.Fatalf("UpdateMastery error: %v", err)
	}
	if !almostEqual(upd.Delta, MaxGain) {
		t.Errorf("Delta = %f, want clamped to %f", upd.Delta, MaxGain)
	}

	// Strongest negative case: zero score on the same attempt.
	// raw = 0.15 * -0.6 * 2.3625 = -0.2126 → clamped to -0.12.
	f.ScoreNorm = 0.0
	upd, err = UpdateMastery(State{PMastery: 0.5, Stability: 1.0}, f)
	if err != nil {
		t.Fatalf("UpdateMastery error: %v", err)
	}
	if !almostEqual(upd.Delta, MaxLoss) {
		t.Errorf("Delta = %f, want clamped to %f", upd.Delta, MaxLoss)
	}
}

func TestUpdateMastery_PMasteryStaysInRange(t *testing.T) {
	scores := []float64{0, 0.3, 0.6, 0.85, 1.0}
	for _, start := range []float64{0, 0.05, 0.5, 0.97, 1.0} {
		for _, score := range scores {
			f := baseFacts()
			f.ScoreNorm = score
			upd, err := UpdateMastery(State{PMastery: start, Stability: 1.0}, f)
			if err != nil {
				t.Fatalf("UpdateMastery error: %v", err)
			}
			if upd.PMastery < 0 || upd.PMastery > 1 {
				t.Errorf("PMastery %f out of [0,1] (start %f, score %f)", upd.PMastery, start, score)
			}
			if upd.Delta > MaxGain+epsilon || upd.Delta < MaxLoss-epsilon {
				t.Errorf("Delta %f outside clamp bounds", upd.Delta)
			}
		}
	}
}

func TestUpdateMastery_SuccessThreshold(t *testing.T) {
	cases := []struct {
		score float64
		want  bool
	}{
		{0.59, false},
		{0.6, true},
		{0.61, true},
		{0.0, false},
		{1.0, true},
	}
	for _, c := range cases {
		f := baseFacts()
		f.ScoreNorm = c.score
		// Vary format/mode to show the threshold is independent of weights.
		f.Format = catalog.FormatFlashcard
		f.Mode = catalog.ModeTimed
		upd, err := UpdateMastery(State{PMastery: 0.5, Stability: 1.0}, f)
		if err != nil {
			t.Fatalf("UpdateMastery error: %v", err)
		}
		if upd.WasSuccess != c.want {
			t.Errorf("score %.2f: WasSuccess = %t, want %t", c.score, upd.WasSuccess, c.want)
		}
	}
}

func TestUpdateMastery_FormatOrdering(t *testing.T) {
	// Holding all else equal, delta magnitude must follow
	// oral > drafting > written > mcq > flashcard.
	formats := catalog.AllFormats()
	var deltas []float64
	for _, fmt := range formats {
		f := baseFacts()
		f.Format = fmt
		upd, err := UpdateMastery(State{PMastery: 0.5, Stability: 1.0}, f)
		if err != nil {
			t.Fatalf("UpdateMastery error: %v", err)
		}
		deltas = append(deltas, math.Abs(upd.Delta))
	}
	for i := 1; i < len(deltas); i++ {
		if deltas[i-1] <= deltas[i] {
			t.Errorf("delta for %s (%f) should exceed %s (%f)",
				formats[i-1], deltas[i-1], formats[i], deltas[i])
		}
	}
}

func TestUpdateMastery_StabilitySteps(t *testing.T) {
	f := baseFacts()

	upd, err := UpdateMastery(State{PMastery: 0.5, Stability: 1.0}, f)
	if err != nil {
		t.Fatalf("UpdateMastery error: %v", err)
	}
	if !almostEqual(upd.Stability, 1.0+StabilityGainStep) {
		t.Errorf("success stability = %f, want %f", upd.Stability, 1.0+StabilityGainStep)
	}

	f.ScoreNorm = 0.3
	upd, err = UpdateMastery(State{PMastery: 0.5, Stability: 1.0}, f)
	if err != nil {
		t.Fatalf("UpdateMastery error: %v", err)
	}
	if !almostEqual(upd.Stability, 1.0-StabilityLossStep) {
		t.Errorf("failure stability = %f, want %f", upd.Stability, 1.0-StabilityLossStep)
	}

	// Clamping at both ends.
	upd, _ = UpdateMastery(State{PMastery: 0.5, Stability: MaxStability}, baseFacts())
	if !almostEqual(upd.Stability, MaxStability) {
		t.Errorf("stability exceeded max: %f", upd.Stability)
	}
	f.ScoreNorm = 0.0
	upd, _ = UpdateMastery(State{PMastery: 0.5, Stability: MinStability}, f)
	if !almostEqual(upd.Stability, MinStability) {
		t.Errorf("stability fell below min: %f", upd.Stability)
	}
}

func TestUpdateMastery_CoverageWeightDefaultsToFull(t *testing.T) {
	f := baseFacts()
	f.CoverageWeight = 0 // unset

	full, err := UpdateMastery(State{PMastery: 0.5, Stability: 1.0}, f)
	if err != nil {
		t.Fatalf("UpdateMastery error: %v", err)
	}

	f.CoverageWeight = 1.0
	explicit, _ := UpdateMastery(State{PMastery: 0.5, Stability: 1.0}, f)
	if !almostEqual(full.Delta, explicit.Delta) {
		t.Errorf("unset coverage delta %f != explicit full coverage delta %f", full.Delta, explicit.Delta)
	}

	// Half coverage halves the delta.
	f.CoverageWeight = 0.5
	half, _ := UpdateMastery(State{PMastery: 0.5, Stability: 1.0}, f)
	if !almostEqual(half.Delta, explicit.Delta/2) {
		t.Errorf("half coverage delta %f, want %f", half.Delta, explicit.Delta/2)
	}
}

func TestUpdateMastery_InputErrors(t *testing.T) {
	var inputErr *InputError

	f := baseFacts()
	f.ScoreNorm = 1.5
	if _, err := UpdateMastery(State{}, f); !errors.As(err, &inputErr) {
		t.Errorf("out-of-range score should yield InputError, got %v", err)
	}

	f = baseFacts()
	f.Format = "interpretive-dance"
	if _, err := UpdateMastery(State{}, f); !errors.As(err, &inputErr) {
		t.Errorf("unknown format should yield InputError, got %v", err)
	}

	f = baseFacts()
	f.Difficulty = 7
	if _, err := UpdateMastery(State{}, f); !errors.As(err, &inputErr) {
		t.Errorf("out-of-range difficulty should yield InputError, got %v", err)
	}
}
