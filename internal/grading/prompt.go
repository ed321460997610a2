package grading

import (
	"encoding/json"
	"fmt"
	"strings"
)

const systemPrompt = `You are a strict but fair examiner grading exam-preparation answers.

Rules:
- Grade only against the question, the rubric dimensions, and any reference material provided. Do not invent rubric categories.
- Score each rubric dimension independently; the raw score must be the sum of the dimension scores.
- scoreNorm is the raw score divided by the maximum score, between 0 and 1.
- Error tags are short kebab-case labels for recurring mistake patterns (e.g. "causation-chain", "citation-form"), not sentences.
- Feedback must be concrete and actionable, referencing the candidate's own wording.
- nextDrills names specific practice the candidate should do next; leave it empty rather than padding it.
- Respond with a single JSON object and nothing else.`

// buildUserPrompt renders the grading request. Every optional section is
// appended only when its backing data exists; no empty placeholders are
// ever sent to the collaborator.
func buildUserPrompt(sub Submission) string {
	var b strings.Builder

	if sub.SkillName != "" {
		fmt.Fprintf(&b, "Skill under assessment: %s\n\n", sub.SkillName)
	}

	b.WriteString("Question:\n")
	b.WriteString(sub.QuestionText)
	b.WriteString("\n\nCandidate answer:\n")
	b.WriteString(sub.AnswerText)

	appendSection(&b, "Context", sub.Context)
	appendSection(&b, "Model answer", sub.ModelAnswer)
	appendListSection(&b, "Key points expected", sub.KeyPoints)
	appendListSection(&b, "Authority excerpts", sub.AuthorityExcerpts)
	appendListSection(&b, "Lecture excerpts", sub.LectureExcerpts)

	if len(sub.RubricDimensions) > 0 {
		b.WriteString("\n\nRubric dimensions:\n")
		for _, d := range sub.RubricDimensions {
			fmt.Fprintf(&b, "- %s (max %.1f points)\n", d.Category, d.MaxScore)
		}
	}

	return b.String()
}

func appendSection(b *strings.Builder, title, body string) {
	if body == "" {
		return
	}
	fmt.Fprintf(b, "\n\n%s:\n%s", title, body)
}

func appendListSection(b *strings.Builder, title string, entries []string) {
	if len(entries) == 0 {
		return
	}
	fmt.Fprintf(b, "\n\n%s:\n", title)
	for i, e := range entries {
		fmt.Fprintf(b, "%d. %s\n", i+1, e)
	}
}

// jsonReinforcement is appended to the prompt on retries after an invalid
// response, restating the contract and embedding the expected schema.
func jsonReinforcement() string {
	def, err := json.Marshal(GradingSchema.Definition)
	if err != nil {
		// The schema definition is a compile-time constant map; this
		// cannot fail in practice.
		return "\n\nIMPORTANT: respond with valid JSON only. No prose, no markdown fences."
	}
	return fmt.Sprintf(
		"\n\nIMPORTANT: your previous response was not valid JSON matching the required schema. Respond with valid JSON only — no prose, no markdown fences. The JSON must match this schema exactly:\n%s",
		def)
}
