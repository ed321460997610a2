package grading

import "github.com/abhisek/examcoach/internal/llm"

// GradingSchema defines the JSON shape of a grading response. It rides
// on every grading request so providers with native structured output
// enforce it, and it is embedded in retry reinforcement prompts.
var GradingSchema = &llm.Schema{
	Name:        "grading-result",
	Description: "Structured grade for one exam-practice answer",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"scoreNorm": map[string]any{
				"type":        "number",
				"minimum":     0.0,
				"maximum":     1.0,
				"description": "Normalized score: scoreRaw / maxScore",
			},
			"scoreRaw": map[string]any{
				"type":    "number",
				"minimum": 0.0,
			},
			"maxScore": map[string]any{
				"type":    "number",
				"minimum": 0.0,
			},
			"rubricBreakdown": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"category": map[string]any{"type": "string"},
						"score":    map[string]any{"type": "number"},
						"maxScore": map[string]any{"type": "number"},
						"feedback": map[string]any{"type": "string"},
					},
					"required": []any{"category", "score", "maxScore", "feedback"},
				},
			},
			"feedback": map[string]any{
				"type":        "string",
				"description": "Overall feedback on the answer",
			},
			"errorTags": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"missedPoints": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"nextDrills": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"evidenceRequests": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"modelOutline": map[string]any{
				"type":        "string",
				"description": "Outline of a model answer",
			},
		},
		"required": []any{
			"scoreNorm", "scoreRaw", "maxScore", "rubricBreakdown",
			"feedback", "errorTags", "nextDrills", "evidenceRequests",
			"modelOutline",
		},
		"additionalProperties": false,
	},
}
