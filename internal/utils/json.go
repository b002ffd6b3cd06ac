package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrNoJSONObject is returned when a response holds no {...} substring.
var ErrNoJSONObject = errors.New("no JSON object found in response")

// Pre-compiled regexes (compiled once, used many times)
var (
	// Greedy: first '{' through last '}', across newlines.
	jsonObjectRegex = regexp.MustCompile(`(?s)\{.*\}`)

	// Fix missing comma after value before new key: "value" "key" -> "value", "key"
	missingCommaBeforeKeyRegex = regexp.MustCompile(`(")\s*\n\s*("[\w][^"]*"\s*:)`)

	// Fix missing comma after number/bool/null before quote (new key)
	missingCommaAfterValueRegex = regexp.MustCompile(`(\d|true|false|null)\s*\n\s*("[\w][^"]*"\s*:)`)

	// Fix missing comma after closing brace/bracket before quote
	missingCommaAfterBraceRegex = regexp.MustCompile(`([}\]])\s*\n?\s*("[\w])`)

	// Fix trailing commas before closing brace/bracket
	trailingCommaRegex = regexp.MustCompile(`,\s*([}\]])`)

	// Fix single quotes for object keys: {'key': -> {"key":
	singleQuoteKeyRegex = regexp.MustCompile(`([{,]\s*)'(\w+)'(\s*:)`)
)

// ExtractJSONObject returns the greedy {...} span of response: from the
// first opening brace to the last closing brace. Prose and markdown fences
// around the object are discarded.
func ExtractJSONObject(response string) (string, bool) {
	match := jsonObjectRegex.FindString(response)
	if match == "" {
		return "", false
	}
	return match, true
}

// ParseJSONObject extracts the JSON object embedded in an LLM response and
// decodes it into T. When the raw object does not decode, a repair pass for
// common LLM syntax errors is attempted before giving up.
func ParseJSONObject[T any](response string) (T, error) {
	var result T

	raw, ok := ExtractJSONObject(response)
	if !ok {
		return result, ErrNoJSONObject
	}

	err := json.Unmarshal([]byte(raw), &result)
	if err == nil {
		return result, nil
	}

	repaired := repairJSON(raw)
	if repaired != raw {
		var second T
		if err2 := json.Unmarshal([]byte(repaired), &second); err2 == nil {
			return second, nil
		}
	}
	return result, fmt.Errorf("parse JSON: %w", err)
}

// repairJSON attempts to fix common JSON syntax errors from LLMs.
// Handles: control characters, invalid escapes, missing commas, trailing commas, single-quoted keys.
func repairJSON(input string) string {
	result := sanitizeControlChars(input)

	// "value"\n"key": -> "value",\n"key":
	result = missingCommaBeforeKeyRegex.ReplaceAllString(result, `$1, $2`)

	// 123\n"key": -> 123,\n"key":
	result = missingCommaAfterValueRegex.ReplaceAllString(result, `$1, $2`)

	// } "key" -> }, "key"
	result = missingCommaAfterBraceRegex.ReplaceAllString(result, `$1, $2`)

	// ,} -> }
	result = trailingCommaRegex.ReplaceAllString(result, `$1`)

	// {'key': -> {"key":
	result = singleQuoteKeyRegex.ReplaceAllString(result, `$1"$2"$3`)

	return result
}

// sanitizeControlChars escapes literal control characters and invalid escape
// sequences inside JSON strings. LLMs often emit raw newlines in markdown
// descriptions and stray backslashes (regexes, Windows paths).
func sanitizeControlChars(input string) string {
	var result strings.Builder
	result.Grow(len(input))

	inString := false

	for i := 0; i < len(input); i++ {
		c := input[i]

		if c == '\\' && inString {
			if i+1 < len(input) && isJSONEscape(input[i+1]) {
				result.WriteByte(c)
				result.WriteByte(input[i+1])
				i++
				continue
			}
			result.WriteString(`\\`)
			continue
		}

		if c == '"' {
			inString = !inString
			result.WriteByte(c)
			continue
		}

		if !inString {
			result.WriteByte(c)
			continue
		}

		switch c {
		case '\t':
			result.WriteString(`\t`)
		case '\n':
			result.WriteString(`\n`)
		case '\r':
			result.WriteString(`\r`)
		case '\b':
			result.WriteString(`\b`)
		case '\f':
			result.WriteString(`\f`)
		default:
			if c < 0x20 {
				result.WriteString(fmt.Sprintf(`\u%04x`, c))
			} else {
				result.WriteByte(c)
			}
		}
	}

	return result.String()
}

func isJSONEscape(c byte) bool {
	switch c {
	case '"', '\\', '/', 'b', 'f', 'n', 'r', 't', 'u':
		return true
	}
	return false
}
