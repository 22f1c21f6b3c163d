package normalize

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// keys tried, in order, for the label and value of an object spec entry.
var (
	specLabelKeys = []string{"key", "label", "name", "title"}
	specValueKeys = []string{"value", "val"}
)

// SpecsInput is either a newline-separated string or a list of entries. Entries may be
// strings, label/value objects or arbitrary JSON.
type SpecsInput struct {
	Text    *string
	Entries []json.RawMessage
}

// SpecsText builds a SpecsInput from a newline-separated string.
func SpecsText(s string) SpecsInput {
	return SpecsInput{Text: &s}
}

// SpecsList builds a SpecsInput from arbitrary values. Values that cannot be encoded
// are skipped.
func SpecsList(entries ...any) SpecsInput {
	raw := make([]json.RawMessage, 0, len(entries))
	for _, e := range entries {
		b, err := json.Marshal(e)
		if err != nil {
			continue
		}
		raw = append(raw, b)
	}
	return SpecsInput{Entries: raw}
}

// IsSet reports whether the client sent specs at all.
func (s SpecsInput) IsSet() bool {
	return s.Text != nil || s.Entries != nil
}

// UnmarshalJSON accepts a string, an array or null.
func (s *SpecsInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = SpecsInput{}
		return nil
	}
	switch data[0] {
	case '"':
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*s = SpecsInput{Text: &text}
		return nil
	case '[':
		var entries []json.RawMessage
		if err := json.Unmarshal(data, &entries); err != nil {
			return err
		}
		if entries == nil {
			entries = []json.RawMessage{}
		}
		*s = SpecsInput{Entries: entries}
		return nil
	}
	return fmt.Errorf("specs must be a string or a list")
}

// Specs converts the input into display strings. Text is split on newlines; object
// entries render as "Label: Value"; anything else falls back to its JSON text.
// Empty results are dropped and order is preserved.
func Specs(in SpecsInput) []string {
	if in.Text != nil {
		lines := strings.Split(strings.ReplaceAll(*in.Text, "\r\n", "\n"), "\n")
		out := make([]string, 0, len(lines))
		for _, line := range lines {
			if line = strings.TrimSpace(line); line != "" {
				out = append(out, line)
			}
		}
		return out
	}

	out := make([]string, 0, len(in.Entries))
	for _, entry := range in.Entries {
		if text := specEntry(entry); text != "" {
			out = append(out, text)
		}
	}
	return out
}

func specEntry(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}

	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err == nil {
		label := firstScalar(obj, specLabelKeys)
		value := firstScalar(obj, specValueKeys)
		switch {
		case label != "" && value != "":
			return label + ": " + value
		case value != "":
			return value
		}
	}

	return compactJSON(raw)
}

func firstScalar(obj map[string]any, keys []string) string {
	for _, k := range keys {
		v, ok := obj[k]
		if !ok {
			continue
		}
		var s string
		switch val := v.(type) {
		case string:
			s = val
		case float64:
			s = strconv.FormatFloat(val, 'f', -1, 64)
		case bool:
			s = strconv.FormatBool(val)
		}
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return ""
}
