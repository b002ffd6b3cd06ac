package suggest

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// UnmarshalJSON decodes a model reply without rejecting loosely typed
// fields: ids may arrive as numbers or strings, timeEstimate as a float or
// a numeric string, tags as a single string. Values that cannot be coerced
// are left zero. Only malformed JSON is an error.
func (s *TaskSuggestion) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	*s = TaskSuggestion{
		Name:                 looseString(fields["name"]),
		Description:          looseString(fields["description"]),
		Type:                 looseString(fields["type"]),
		Priority:             looseString(fields["priority"]),
		TimeEstimate:         looseInt(fields["timeEstimate"]),
		Tags:                 looseStrings(fields["tags"]),
		SuggestedSpaceID:     looseID(fields["suggestedSpaceId"]),
		SuggestedAssigneeIDs: looseInt64s(fields["suggestedAssigneeIds"]),
		SuggestedSprintID:    looseID(fields["suggestedSprintId"]),
		SuggestedEpicID:      looseID(fields["suggestedEpicId"]),
		SuggestedStatus:      looseID(fields["suggestedStatus"]),
	}
	return nil
}

// scalar decodes raw keeping numbers as json.Number.
func scalar(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil
	}
	return v
}

func toString(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case json.Number:
		return x.String(), true
	case bool:
		return strconv.FormatBool(x), true
	}
	return "", false
}

func toInt64(v any) (int64, bool) {
	var f float64
	switch x := v.(type) {
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i, true
		}
		parsed, err := x.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int64(math.Round(f)), true
}

func looseString(raw json.RawMessage) string {
	s, _ := toString(scalar(raw))
	return s
}

func looseInt(raw json.RawMessage) int {
	n, _ := toInt64(scalar(raw))
	return int(n)
}

// looseID returns nil for null, absent or empty values.
func looseID(raw json.RawMessage) *string {
	s, ok := toString(scalar(raw))
	if !ok || s == "" {
		return nil
	}
	return &s
}

func looseStrings(raw json.RawMessage) []string {
	switch v := scalar(raw).(type) {
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := toString(item); ok {
				out = append(out, s)
			}
		}
		return out
	case nil:
		return nil
	default:
		if s, ok := toString(v); ok && s != "" {
			return []string{s}
		}
		return nil
	}
}

func looseInt64s(raw json.RawMessage) []int64 {
	items, ok := scalar(raw).([]any)
	if !ok {
		if n, ok := toInt64(scalar(raw)); ok {
			return []int64{n}
		}
		return nil
	}
	out := make([]int64, 0, len(items))
	for _, item := range items {
		if n, ok := toInt64(item); ok {
			out = append(out, n)
		}
	}
	return out
}
