package subjective

import "github.com/abhisek/soloquiz/internal/llm"

// FeedbackSchema defines the JSON schema for subjective grading feedback.
var FeedbackSchema = &llm.Schema{
	Name:        "grading-feedback",
	Description: "Graded feedback for a free-form student response",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"verdict": map[string]any{
				"type": "string",
				"enum": []any{"correct", "incorrect", "partial"},
			},
			"score": map[string]any{
				"type":        "number",
				"minimum":     0,
				"description": "Points awarded, at most maxScore",
			},
			"maxScore": map[string]any{
				"type":        "number",
				"minimum":     0,
				"description": "Maximum points for this question",
			},
			"feedback": map[string]any{
				"type":        "string",
				"description": "2-4 sentence explanation of the grade",
			},
			"rubricBreakdown": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"rubric": map[string]any{
							"type":        "string",
							"description": "Rubric title, exactly as given in the prompt",
						},
						"comments": map[string]any{
							"type":        "string",
							"description": "How the response measured against this rubric",
						},
						"achievedFraction": map[string]any{
							"type":        "number",
							"minimum":     0,
							"maximum":     1,
							"description": "Fraction of this rubric achieved",
						},
					},
					"required":             []any{"rubric", "comments", "achievedFraction"},
					"additionalProperties": false,
				},
			},
			"improvements": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "1-3 concrete suggestions for a better answer",
			},
		},
		"required":             []any{"verdict", "score", "maxScore", "feedback", "rubricBreakdown", "improvements"},
		"additionalProperties": false,
	},
}
