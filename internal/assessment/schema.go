package assessment

// documentSchema is the JSON Schema every assessment document must satisfy
// before it is decoded. Structural constraints live here; constraints a
// schema cannot express (unique ids, correctOrder being a permutation of
// items, correct referencing a real option) are enforced in parse.go.
var documentSchema = map[string]any{
	"type":     "object",
	"required": []any{"schemaVersion", "meta", "questions"},
	"properties": map[string]any{
		"schemaVersion": map[string]any{
			"type":    "string",
			"pattern": `^1\.`,
		},
		"meta": map[string]any{
			"type":     "object",
			"required": []any{"title"},
			"properties": map[string]any{
				"title":            map[string]any{"type": "string", "minLength": 1},
				"description":      map[string]any{"type": "string"},
				"shuffleQuestions": map[string]any{"type": "boolean"},
				"timeLimitSec":     map[string]any{"type": "integer", "exclusiveMinimum": 0},
			},
		},
		"questions": map[string]any{
			"type": "array",
			"items": map[string]any{
				"oneOf": []any{
					singleQuestionSchema,
					multiQuestionSchema,
					fitbQuestionSchema,
					numericQuestionSchema,
					orderingQuestionSchema,
					subjectiveQuestionSchema,
				},
			},
		},
	},
}

// baseQuestionProperties are shared by every question kind.
var baseQuestionProperties = map[string]any{
	"id":     map[string]any{"type": "string", "minLength": 1},
	"text":   map[string]any{"type": "string", "minLength": 1},
	"weight": map[string]any{"type": "number", "minimum": 0},
	"tags": map[string]any{
		"type":  "array",
		"items": map[string]any{"type": "string", "minLength": 1},
	},
	"feedback": map[string]any{
		"type": "object",
		"properties": map[string]any{
			"correct":   map[string]any{"type": "string"},
			"incorrect": map[string]any{"type": "string"},
		},
	},
}

var optionSchema = map[string]any{
	"type":     "object",
	"required": []any{"id", "label"},
	"properties": map[string]any{
		"id":          map[string]any{"type": "string", "minLength": 1},
		"label":       map[string]any{"type": "string", "minLength": 1},
		"explanation": map[string]any{"type": "string"},
	},
}

// questionSchema builds a per-kind question schema from the shared base.
func questionSchema(kind Kind, required []any, props map[string]any) map[string]any {
	properties := map[string]any{
		"type": map[string]any{"const": string(kind)},
	}
	for k, v := range baseQuestionProperties {
		properties[k] = v
	}
	for k, v := range props {
		properties[k] = v
	}
	return map[string]any{
		"type":       "object",
		"required":   append([]any{"id", "type", "text"}, required...),
		"properties": properties,
	}
}

var singleQuestionSchema = questionSchema(KindSingle,
	[]any{"options", "correct"},
	map[string]any{
		"options": map[string]any{"type": "array", "minItems": 2, "items": optionSchema},
		"correct": map[string]any{"type": "string", "minLength": 1},
	})

var multiQuestionSchema = questionSchema(KindMulti,
	[]any{"options", "correct"},
	map[string]any{
		"options": map[string]any{"type": "array", "minItems": 2, "items": optionSchema},
		"correct": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items":    map[string]any{"type": "string", "minLength": 1},
		},
	})

var fitbQuestionSchema = questionSchema(KindFitb,
	[]any{"accept"},
	map[string]any{
		"accept": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"oneOf": []any{
					map[string]any{"type": "string", "minLength": 1},
					map[string]any{
						"type":     "object",
						"required": []any{"pattern"},
						"properties": map[string]any{
							"pattern": map[string]any{"type": "string"},
							"flags":   map[string]any{"type": "string"},
						},
					},
				},
			},
		},
		"normalize": map[string]any{"enum": []any{"lower", "trim", "none"}},
	})

var numericQuestionSchema = questionSchema(KindNumeric,
	[]any{"correct"},
	map[string]any{
		"correct":   map[string]any{"type": "number"},
		"tolerance": map[string]any{"type": "number", "minimum": 0},
	})

var orderingQuestionSchema = questionSchema(KindOrdering,
	[]any{"items", "correctOrder"},
	map[string]any{
		"items": map[string]any{
			"type":     "array",
			"minItems": 2,
			"items":    map[string]any{"type": "string", "minLength": 1},
		},
		"correctOrder": map[string]any{
			"type":     "array",
			"minItems": 2,
			"items":    map[string]any{"type": "string", "minLength": 1},
		},
		"shuffleItems": map[string]any{"type": "boolean"},
	})

var subjectiveQuestionSchema = questionSchema(KindSubjective,
	[]any{"rubrics"},
	map[string]any{
		"rubrics": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type":     "object",
				"required": []any{"title"},
				"properties": map[string]any{
					"title":       map[string]any{"type": "string", "minLength": 1},
					"description": map[string]any{"type": "string"},
				},
			},
		},
		"llmGrading": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"rubric":            map[string]any{"type": "string"},
				"referenceAnswer":   map[string]any{"type": "string"},
				"additionalContext": map[string]any{"type": "string"},
				"evaluatorModel":    map[string]any{"type": "string"},
			},
		},
	})
