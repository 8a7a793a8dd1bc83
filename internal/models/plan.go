package models

import (
	"encoding/json"
	"strings"
)

// PlannedExercise is one entry in a program's per-day breakdown.
type PlannedExercise struct {
	Name string `json:"name"`
	Sets string `json:"sets"`
	Reps string `json:"reps"`
	Rest string `json:"rest"`
}

// DayPlan is the exercise list for one labeled day of a program.
type DayPlan struct {
	Label     string            `json:"label"`
	Exercises []PlannedExercise `json:"exercises"`
}

// ParseDayPlans decodes a program's Exercises JSON into an ordered day list.
// Day order follows the source object's key order, recovered from the raw
// token stream since map unmarshaling discards it.
//
// Malformed JSON returns ok=false and an empty list; callers render the
// program without a plan rather than failing the whole page.
func ParseDayPlans(raw string) (plans []DayPlan, ok bool) {
	if raw == "" {
		return nil, true
	}

	var m map[string][]PlannedExercise
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return nil, false
	}

	// Re-walk the raw text to recover key order.
	order, err := objectKeyOrder(raw)
	if err != nil {
		return nil, false
	}

	for _, label := range order {
		plans = append(plans, DayPlan{Label: label, Exercises: m[label]})
	}
	return plans, true
}

// objectKeyOrder returns the top-level keys of a JSON object in source order.
func objectKeyOrder(raw string) ([]string, error) {
	dec := json.NewDecoder(strings.NewReader(raw))
	if _, err := dec.Token(); err != nil { // opening brace
		return nil, err
	}

	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := tok.(string)
		keys = append(keys, key)

		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
	}
	return keys, nil
}
