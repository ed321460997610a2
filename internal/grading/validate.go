package grading

import (
	"encoding/json"
	"fmt"
)

// validateOutput checks extracted JSON against the grading contract and
// builds the Output. Every violated field is collected before reporting;
// the validator never stops at the first problem.
func validateOutput(raw json.RawMessage) (*Output, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, &ParseError{Msg: "response is not a JSON object: " + err.Error()}
	}

	v := &collector{fields: fields}

	out := &Output{}
	out.ScoreNorm = v.number("scoreNorm", true)
	out.ScoreRaw = v.number("scoreRaw", true)
	out.MaxScore = v.number("maxScore", true)
	out.Feedback = v.str("feedback", true)
	out.ModelOutline = v.str("modelOutline", true)
	out.ErrorTags = v.stringArray("errorTags", true)
	out.NextDrills = v.stringArray("nextDrills", true)
	out.EvidenceRequests = v.stringArray("evidenceRequests", true)
	out.MissedPoints = v.stringArray("missedPoints", false)
	out.RubricBreakdown = v.rubric("rubricBreakdown")

	// Cross-field range checks only make sense on fields that parsed.
	if v.parsed("scoreNorm") && (out.ScoreNorm < 0 || out.ScoreNorm > 1) {
		v.add("scoreNorm: %.3f outside [0,1]", out.ScoreNorm)
	}
	if v.parsed("scoreRaw") && out.ScoreRaw < 0 {
		v.add("scoreRaw: %.3f is negative", out.ScoreRaw)
	}
	if v.parsed("maxScore") && out.MaxScore < 0 {
		v.add("maxScore: %.3f is negative", out.MaxScore)
	}
	if v.parsed("scoreRaw") && v.parsed("maxScore") && out.ScoreRaw > out.MaxScore {
		v.add("scoreRaw %.3f exceeds maxScore %.3f", out.ScoreRaw, out.MaxScore)
	}

	if len(v.violations) > 0 {
		return nil, &ValidationError{Violations: v.violations}
	}
	return out, nil
}

// collector accumulates violations while pulling typed fields out of the
// parsed object.
type collector struct {
	fields     map[string]json.RawMessage
	violations []string
	ok         map[string]bool
}

func (c *collector) add(format string, args ...any) {
	c.violations = append(c.violations, fmt.Sprintf(format, args...))
}

func (c *collector) markParsed(field string) {
	if c.ok == nil {
		c.ok = make(map[string]bool)
	}
	c.ok[field] = true
}

func (c *collector) parsed(field string) bool { return c.ok[field] }

func (c *collector) number(field string, required bool) float64 {
	raw, present := c.fields[field]
	if !present {
		if required {
			c.add("%s: missing", field)
		}
		return 0
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err != nil {
		c.add("%s: not a number", field)
		return 0
	}
	c.markParsed(field)
	return n
}

func (c *collector) str(field string, required bool) string {
	raw, present := c.fields[field]
	if !present {
		if required {
			c.add("%s: missing", field)
		}
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		c.add("%s: not a string", field)
		return ""
	}
	c.markParsed(field)
	return s
}

func (c *collector) stringArray(field string, required bool) []string {
	raw, present := c.fields[field]
	if !present {
		if required {
			c.add("%s: missing", field)
		}
		return nil
	}
	var arr []string
	if err := json.Unmarshal(raw, &arr); err != nil {
		c.add("%s: not a string array", field)
		return nil
	}
	c.markParsed(field)
	return arr
}

func (c *collector) rubric(field string) []RubricLine {
	raw, present := c.fields[field]
	if !present {
		c.add("%s: missing", field)
		return nil
	}

	var entries []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		c.add("%s: not an array of objects", field)
		return nil
	}
	if len(entries) == 0 {
		c.add("%s: must not be empty", field)
		return nil
	}

	lines := make([]RubricLine, 0, len(entries))
	for i, entry := range entries {
		var line RubricLine
		lineOK := true

		if err := unmarshalField(entry, "category", &line.Category); err != nil {
			c.add("%s[%d].category: %v", field, i, err)
			lineOK = false
		}
		if err := unmarshalField(entry, "score", &line.Score); err != nil {
			c.add("%s[%d].score: %v", field, i, err)
			lineOK = false
		}
		if err := unmarshalField(entry, "maxScore", &line.MaxScore); err != nil {
			c.add("%s[%d].maxScore: %v", field, i, err)
			lineOK = false
		}
		if err := unmarshalField(entry, "feedback", &line.Feedback); err != nil {
			c.add("%s[%d].feedback: %v", field, i, err)
			lineOK = false
		}

		if lineOK {
			lines = append(lines, line)
		}
	}

	c.markParsed(field)
	return lines
}

func unmarshalField(entry map[string]json.RawMessage, key string, dst any) error {
	raw, present := entry[key]
	if !present {
		return fmt.Errorf("missing")
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("wrong type")
	}
	return nil
}
