package catalog

// Format is the practice format an item is attempted in.
type Format string

const (
	FormatWritten   Format = "written"
	FormatOral      Format = "oral"
	FormatDrafting  Format = "drafting"
	FormatMCQ       Format = "mcq"
	FormatFlashcard Format = "flashcard"
)

// AllFormats returns all formats in descending evidence-strength order.
func AllFormats() []Format {
	return []Format{
		FormatOral,
		FormatDrafting,
		FormatWritten,
		FormatMCQ,
		FormatFlashcard,
	}
}

// Valid reports whether f is a known format.
func (f Format) Valid() bool {
	switch f {
	case FormatWritten, FormatOral, FormatDrafting, FormatMCQ, FormatFlashcard:
		return true
	}
	return false
}

// Mode is the assessment mode for an attempt.
type Mode string

const (
	ModePractice Mode = "practice"
	ModeTimed    Mode = "timed"
	ModeExamSim  Mode = "exam_sim"
)

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	switch m {
	case ModePractice, ModeTimed, ModeExamSim:
		return true
	}
	return false
}

// IsProof reports whether attempts in this mode count toward gate
// verification. Only timed and exam-sim attempts do.
func (m Mode) IsProof() bool {
	return m == ModeTimed || m == ModeExamSim
}

// IsMock reports whether the mode is a full exam simulation.
func (m Mode) IsMock() bool {
	return m == ModeExamSim
}

// MinDifficulty and MaxDifficulty bound the 5-point difficulty scale.
const (
	MinDifficulty = 1
	MaxDifficulty = 5
)

// Skill is a single examinable competency.
type Skill struct {
	ID          string
	Name        string
	Description string

	// ExamWeight is the skill's share of the exam, in [0,1].
	ExamWeight float64

	// Difficulty is the intrinsic difficulty on the 1..5 scale.
	Difficulty int

	// Formats lists the practice formats this skill supports.
	Formats []Format

	// IsCore marks skills that are examined every cycle.
	IsCore bool
}

// SupportsFormat reports whether the skill can be practiced in format f.
func (s Skill) SupportsFormat(f Format) bool {
	for _, sf := range s.Formats {
		if sf == f {
			return true
		}
	}
	return false
}

// SkillCoverage attributes a fraction of an item's credit to one skill.
type SkillCoverage struct {
	SkillID string
	// Weight is the fraction of credit in (0,1]. Zero means unset and
	// defaults to full credit at the update layer.
	Weight float64
}

// Item is a concrete practice artifact (question, case, drill deck).
type Item struct {
	ID     string
	Title  string
	Format Format

	// Skills lists the skills this item tests with their coverage weights.
	Skills []SkillCoverage

	// Difficulty is the item difficulty on the 1..5 scale.
	Difficulty int

	// EstimatedMins is the expected working time for one attempt.
	EstimatedMins int
}

// CoverageFor returns the coverage weight for skillID, or 0 if the item
// does not test that skill.
func (it Item) CoverageFor(skillID string) float64 {
	for _, sc := range it.Skills {
		if sc.SkillID == skillID {
			return sc.Weight
		}
	}
	return 0
}
