package assessment

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Issue is one validation problem found in an assessment document.
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// compiled returns the compiled assessment document schema, compiling it on
// first use. The schema is a static map literal, so a compile failure is a
// programming error and is surfaced to every caller.
func compiled() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		defBytes, err := json.Marshal(documentSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal document schema: %w", err)
			return
		}
		var defParsed any
		if err := json.Unmarshal(defBytes, &defParsed); err != nil {
			compileErr = fmt.Errorf("parse document schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		const schemaURL = "schema://assessment.json"
		if err := c.AddResource(schemaURL, defParsed); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(schemaURL)
	})
	return compiledSchema, compileErr
}

// Parse validates raw JSON against the assessment schema and decodes it
// into a typed Assessment. A nil issue slice means success. The returned
// assessment is fully normalized: weights default to 1, fitb normalize
// defaults to "trim", tolerance defaults to 0.
func Parse(raw []byte) (*Assessment, []Issue) {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, []Issue{{Message: fmt.Sprintf("invalid JSON: %v", err)}}
	}

	schema, err := compiled()
	if err != nil {
		return nil, []Issue{{Message: err.Error()}}
	}

	if err := schema.Validate(parsed); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			return nil, flattenValidationError(ve)
		}
		return nil, []Issue{{Message: err.Error()}}
	}

	var a Assessment
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, []Issue{{Message: fmt.Sprintf("decode assessment: %v", err)}}
	}

	if issues := semanticIssues(&a); len(issues) > 0 {
		return nil, issues
	}

	return &a, nil
}

// flattenValidationError collects the leaf causes of a validation error
// into path/message issues.
func flattenValidationError(ve *jsonschema.ValidationError) []Issue {
	if len(ve.Causes) == 0 {
		return []Issue{{
			Path:    "/" + strings.Join(ve.InstanceLocation, "/"),
			Message: ve.Error(),
		}}
	}
	var issues []Issue
	for _, cause := range ve.Causes {
		issues = append(issues, flattenValidationError(cause)...)
	}
	return issues
}

// semanticIssues enforces the cross-field invariants the JSON Schema cannot
// express.
func semanticIssues(a *Assessment) []Issue {
	var issues []Issue
	add := func(path, format string, args ...any) {
		issues = append(issues, Issue{Path: path, Message: fmt.Sprintf(format, args...)})
	}

	seenIDs := make(map[string]bool, len(a.Questions))
	for i := range a.Questions {
		q := &a.Questions[i]
		path := fmt.Sprintf("/questions/%d", i)

		if seenIDs[q.ID] {
			add(path+"/id", "duplicate question id %q", q.ID)
		}
		seenIDs[q.ID] = true

		switch q.Kind {
		case KindSingle, KindMulti:
			optionIDs := make(map[string]bool, len(q.Options))
			for j, opt := range q.Options {
				if optionIDs[opt.ID] {
					add(fmt.Sprintf("%s/options/%d/id", path, j), "duplicate option id %q", opt.ID)
				}
				optionIDs[opt.ID] = true
			}
			if q.Kind == KindSingle {
				if !optionIDs[q.CorrectOption] {
					add(path+"/correct", "correct option %q is not an option id", q.CorrectOption)
				}
			} else {
				seenCorrect := make(map[string]bool, len(q.CorrectOptions))
				for _, id := range q.CorrectOptions {
					if !optionIDs[id] {
						add(path+"/correct", "correct option %q is not an option id", id)
					}
					if seenCorrect[id] {
						add(path+"/correct", "duplicate correct option %q", id)
					}
					seenCorrect[id] = true
				}
			}

		case KindOrdering:
			if !isPermutation(q.CorrectOrder, q.Items) {
				add(path+"/correctOrder", "correctOrder must be a permutation of items")
			}
		}
	}

	return issues
}

// isPermutation reports whether a and b contain the same elements with the
// same multiplicity.
func isPermutation(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[string]int, len(a))
	for _, s := range a {
		counts[s]++
	}
	for _, s := range b {
		counts[s]--
		if counts[s] < 0 {
			return false
		}
	}
	return true
}
