package catalog

// seedSkills is the starter skill set for the bar-exam track, used by the
// CLI when no external catalog is supplied. Production deployments load
// skills from the catalog collaborator instead.
var seedSkills = []Skill{
	{
		ID:          "civ-contract-formation",
		Name:        "Contract formation",
		Description: "Offer, acceptance, and defects of consent",
		ExamWeight:  0.12,
		Difficulty:  2,
		Formats:     []Format{FormatWritten, FormatOral, FormatMCQ, FormatFlashcard},
		IsCore:      true,
	},
	{
		ID:          "civ-damages",
		Name:        "Damages",
		Description: "Expectation, reliance, and restitution measures",
		ExamWeight:  0.10,
		Difficulty:  3,
		Formats:     []Format{FormatWritten, FormatOral, FormatMCQ},
		IsCore:      true,
	},
	{
		ID:          "civ-property-transfer",
		Name:        "Property transfer",
		Description: "Conveyance, registration, and good-faith acquisition",
		ExamWeight:  0.09,
		Difficulty:  4,
		Formats:     []Format{FormatWritten, FormatDrafting, FormatMCQ},
		IsCore:      false,
	},
	{
		ID:          "crim-homicide",
		Name:        "Homicide offenses",
		Description: "Intent grades, causation, and justification defenses",
		ExamWeight:  0.11,
		Difficulty:  3,
		Formats:     []Format{FormatWritten, FormatOral, FormatMCQ, FormatFlashcard},
		IsCore:      true,
	},
	{
		ID:          "crim-procedure-search",
		Name:        "Search and seizure",
		Description: "Warrant requirements and exclusionary consequences",
		ExamWeight:  0.08,
		Difficulty:  4,
		Formats:     []Format{FormatWritten, FormatMCQ, FormatFlashcard},
		IsCore:      false,
	},
	{
		ID:          "pub-judicial-review",
		Name:        "Judicial review",
		Description: "Standing, scope, and standards of review",
		ExamWeight:  0.10,
		Difficulty:  5,
		Formats:     []Format{FormatWritten, FormatOral, FormatDrafting},
		IsCore:      true,
	},
	{
		ID:          "pub-fundamental-rights",
		Name:        "Fundamental rights",
		Description: "Proportionality analysis and rights balancing",
		ExamWeight:  0.09,
		Difficulty:  4,
		Formats:     []Format{FormatWritten, FormatOral, FormatMCQ},
		IsCore:      true,
	},
	{
		ID:          "proc-civil-pleading",
		Name:        "Civil pleading",
		Description: "Claim drafting, admissibility, and burden allocation",
		ExamWeight:  0.07,
		Difficulty:  3,
		Formats:     []Format{FormatDrafting, FormatWritten, FormatFlashcard},
		IsCore:      false,
	},
}

// seedItems is the starter item bank matching seedSkills.
var seedItems = []Item{
	{
		ID:     "item-cf-case-01",
		Title:  "Late acceptance after counter-offer",
		Format: FormatWritten,
		Skills: []SkillCoverage{
			{SkillID: "civ-contract-formation", Weight: 0.7},
			{SkillID: "civ-damages", Weight: 0.3},
		},
		Difficulty:    3,
		EstimatedMins: 35,
	},
	{
		ID:     "item-cf-mcq-01",
		Title:  "Offer revocation timing",
		Format: FormatMCQ,
		Skills: []SkillCoverage{
			{SkillID: "civ-contract-formation", Weight: 1.0},
		},
		Difficulty:    2,
		EstimatedMins: 5,
	},
	{
		ID:     "item-cf-cards-01",
		Title:  "Formation doctrine deck",
		Format: FormatFlashcard,
		Skills: []SkillCoverage{
			{SkillID: "civ-contract-formation", Weight: 1.0},
		},
		Difficulty:    1,
		EstimatedMins: 10,
	},
	{
		ID:     "item-dmg-case-01",
		Title:  "Lost profits after delivery failure",
		Format: FormatWritten,
		Skills: []SkillCoverage{
			{SkillID: "civ-damages", Weight: 1.0},
		},
		Difficulty:    3,
		EstimatedMins: 30,
	},
	{
		ID:     "item-prop-draft-01",
		Title:  "Draft a conveyance clause",
		Format: FormatDrafting,
		Skills: []SkillCoverage{
			{SkillID: "civ-property-transfer", Weight: 1.0},
		},
		Difficulty:    4,
		EstimatedMins: 45,
	},
	{
		ID:     "item-hom-case-01",
		Title:  "Intervening cause in homicide",
		Format: FormatWritten,
		Skills: []SkillCoverage{
			{SkillID: "crim-homicide", Weight: 1.0},
		},
		Difficulty:    3,
		EstimatedMins: 40,
	},
	{
		ID:     "item-hom-oral-01",
		Title:  "Homicide grading mock examination",
		Format: FormatOral,
		Skills: []SkillCoverage{
			{SkillID: "crim-homicide", Weight: 0.8},
			{SkillID: "crim-procedure-search", Weight: 0.2},
		},
		Difficulty:    4,
		EstimatedMins: 25,
	},
	{
		ID:     "item-search-mcq-01",
		Title:  "Warrant exception drill",
		Format: FormatMCQ,
		Skills: []SkillCoverage{
			{SkillID: "crim-procedure-search", Weight: 1.0},
		},
		Difficulty:    3,
		EstimatedMins: 8,
	},
	{
		ID:     "item-jr-case-01",
		Title:  "Standing for associations",
		Format: FormatWritten,
		Skills: []SkillCoverage{
			{SkillID: "pub-judicial-review", Weight: 0.6},
			{SkillID: "pub-fundamental-rights", Weight: 0.4},
		},
		Difficulty:    5,
		EstimatedMins: 50,
	},
	{
		ID:     "item-fr-oral-01",
		Title:  "Proportionality walkthrough",
		Format: FormatOral,
		Skills: []SkillCoverage{
			{SkillID: "pub-fundamental-rights", Weight: 1.0},
		},
		Difficulty:    4,
		EstimatedMins: 20,
	},
	{
		ID:     "item-plead-draft-01",
		Title:  "Draft a statement of claim",
		Format: FormatDrafting,
		Skills: []SkillCoverage{
			{SkillID: "proc-civil-pleading", Weight: 1.0},
		},
		Difficulty:    3,
		EstimatedMins: 40,
	},
	{
		ID:     "item-plead-cards-01",
		Title:  "Pleading requirements deck",
		Format: FormatFlashcard,
		Skills: []SkillCoverage{
			{SkillID: "proc-civil-pleading", Weight: 1.0},
		},
		Difficulty:    2,
		EstimatedMins: 10,
	},
}

// Default returns the seed catalog. It panics on a validation error since
// the seed tables are compiled in and must be internally consistent.
func Default() *Catalog {
	c, err := New(seedSkills, seedItems)
	if err != nil {
		panic(err)
	}
	return c
}
