package normalize

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTags(t *testing.T) {
	tests := []struct {
		name string
		json string
		want []string
	}{
		{name: "comma string", json: `" e30, m3 ,, classic "`, want: []string{"e30", "m3", "classic"}},
		{name: "list", json: `["  track ", "", "s14"]`, want: []string{"track", "s14"}},
		{name: "duplicates kept in order", json: `["m3","e30","m3"]`, want: []string{"m3", "e30", "m3"}},
		{name: "non-string entries", json: `[1988, null, true]`, want: []string{"1988", "true"}},
		{name: "empty string", json: `""`, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var in TagsInput
			require.NoError(t, json.Unmarshal([]byte(tt.json), &in))
			assert.True(t, in.IsSet())
			assert.Equal(t, tt.want, Tags(in))
		})
	}

	var absent TagsInput
	require.NoError(t, json.Unmarshal([]byte(`null`), &absent))
	assert.False(t, absent.IsSet())

	var bad TagsInput
	assert.Error(t, json.Unmarshal([]byte(`{"a":1}`), &bad))
}

func TestSpecs(t *testing.T) {
	tests := []struct {
		name string
		json string
		want []string
	}{
		{name: "newline string", json: `"2.3L S14\r\n\n  5-speed Getrag  "`, want: []string{"2.3L S14", "5-speed Getrag"}},
		{name: "string list", json: `[" 195 hp ", ""]`, want: []string{"195 hp"}},
		{name: "label value objects", json: `[{"label":"Engine","value":"S54"},{"key":"Power","val":333}]`, want: []string{"Engine: S54", "Power: 333"}},
		{name: "value only", json: `[{"value":"LSD"}]`, want: []string{"LSD"}},
		{name: "unknown object keeps json", json: `[{"foo": "bar"}]`, want: []string{`{"foo":"bar"}`}},
		{name: "numbers", json: `[1, null]`, want: []string{"1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var in SpecsInput
			require.NoError(t, json.Unmarshal([]byte(tt.json), &in))
			assert.Equal(t, tt.want, Specs(in))
		})
	}

	assert.Equal(t, []string{"a", "Engine: S14"}, Specs(SpecsList("a", map[string]string{"label": "Engine", "value": "S14"})))
	assert.Equal(t, []string{}, Specs(SpecsList()))
}

func TestBool(t *testing.T) {
	tests := []struct {
		json string
		want Bool
	}{
		{json: `true`, want: Bool{Set: true, Value: true}},
		{json: `"yes"`, want: Bool{Set: true, Value: true}},
		{json: `"1"`, want: Bool{Set: true, Value: true}},
		{json: `1`, want: Bool{Set: true, Value: true}},
		{json: `"false"`, want: Bool{Set: true}},
		{json: `"maybe"`, want: Bool{Set: true}},
		{json: `0`, want: Bool{Set: true}},
		{json: `null`, want: Bool{}},
	}

	for _, tt := range tests {
		t.Run(tt.json, func(t *testing.T) {
			var b Bool
			require.NoError(t, json.Unmarshal([]byte(tt.json), &b))
			assert.Equal(t, tt.want, b)
		})
	}
}

func TestInt(t *testing.T) {
	tests := []struct {
		json string
		want Int
	}{
		{json: `1988`, want: NewInt(1988)},
		{json: `" 2003 "`, want: NewInt(2003)},
		{json: `""`, want: Int{}},
		{json: `null`, want: Int{}},
		{json: `"nineteen"`, want: Int{Set: true}},
		{json: `19.5`, want: Int{Set: true}},
		{json: `true`, want: Int{Set: true}},
	}

	for _, tt := range tests {
		t.Run(tt.json, func(t *testing.T) {
			var i Int
			require.NoError(t, json.Unmarshal([]byte(tt.json), &i))
			assert.Equal(t, tt.want, i)
		})
	}

	assert.Nil(t, Int{Set: true}.Ptr())
	assert.Equal(t, 1990, *NewInt(1990).Ptr())
}

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"My E30 Build!":       "my-e30-build",
		"  José García  ":     "jose-garcia",
		"Ü-Bahn__Straße 5":    "u-bahn-stra-e-5",
		"---":                 "",
		"M3 (E46) / CSL":      "m3-e46-csl",
		"already-a-slug-2024": "already-a-slug-2024",
	}

	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, Slugify(in))
		})
	}
}
