package normalize

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// TagsInput is either a comma-separated string or a list of strings.
type TagsInput struct {
	Text *string
	List []string
}

// TagsText builds a TagsInput from a comma-separated string.
func TagsText(s string) TagsInput {
	return TagsInput{Text: &s}
}

// TagsList builds a TagsInput from a list.
func TagsList(tags ...string) TagsInput {
	return TagsInput{List: tags}
}

// IsSet reports whether the client sent tags at all.
func (t TagsInput) IsSet() bool {
	return t.Text != nil || t.List != nil
}

// UnmarshalJSON accepts a string, an array or null. Non-string array entries keep their
// JSON text.
func (t *TagsInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = TagsInput{}
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = TagsInput{Text: &s}
		return nil
	case '[':
		var raw []json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		list := make([]string, 0, len(raw))
		for _, item := range raw {
			var s string
			if err := json.Unmarshal(item, &s); err == nil {
				list = append(list, s)
				continue
			}
			if bytes.Equal(bytes.TrimSpace(item), []byte("null")) {
				continue
			}
			list = append(list, compactJSON(item))
		}
		*t = TagsInput{List: list}
		return nil
	}
	return fmt.Errorf("tags must be a string or a list of strings")
}

// Tags trims every tag and drops empty ones. A string input is split on commas.
// Order is preserved and duplicates are kept.
func Tags(in TagsInput) []string {
	var parts []string
	switch {
	case in.Text != nil:
		parts = strings.Split(*in.Text, ",")
	default:
		parts = in.List
	}

	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func compactJSON(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return strings.TrimSpace(string(raw))
	}
	return buf.String()
}
