package grading

import "fmt"

// gradeMCQ grades a multiple-choice submission by direct comparison,
// bypassing the generation collaborator entirely. The output shape is
// identical to AI grading so downstream consumers never branch on how
// the grade was produced.
func gradeMCQ(sub Submission) *Output {
	correct := sub.SelectedOption == sub.CorrectOption

	score := 0.0
	feedback := fmt.Sprintf("Incorrect. The correct option is: %s", sub.CorrectOption)
	missed := []string{sub.CorrectOption}
	if correct {
		score = 1.0
		feedback = "Correct."
		missed = []string{}
	}

	var tags []string
	if !correct {
		tags = []string{"mcq-wrong-option"}
	} else {
		tags = []string{}
	}

	return &Output{
		ScoreNorm: score,
		ScoreRaw:  score,
		MaxScore:  1,
		RubricBreakdown: []RubricLine{
			{
				Category: "Option selection",
				Score:    score,
				MaxScore: 1,
				Feedback: feedback,
			},
		},
		Feedback:         feedback,
		ErrorTags:        tags,
		MissedPoints:     missed,
		NextDrills:       []string{},
		EvidenceRequests: []string{},
		ModelOutline:     "",
	}
}
