package normalize

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Bool is a boolean that clients may send as a literal, a string or a number.
// Unrecognized values coerce to false.
type Bool struct {
	Value bool
	Set   bool
}

// UnmarshalJSON never fails; it coerces whatever it gets.
func (b *Bool) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*b = Bool{}
		return nil
	}
	*b = Bool{Set: true, Value: coerceBool(data)}
	return nil
}

func coerceBool(data []byte) bool {
	var lit bool
	if err := json.Unmarshal(data, &lit); err == nil {
		return lit
	}
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		return n != 0
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return ParseBool(s)
	}
	return false
}

// ParseBool coerces common truthy strings ("true", "1", "yes", "on") to true.
func ParseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "y", "on":
		return true
	}
	return false
}

// Int is an integer that clients may send as a number or a numeric string.
// Valid is false when something was sent that is not a whole number.
type Int struct {
	Value int
	Set   bool
	Valid bool
}

// NewInt returns a set, valid Int.
func NewInt(v int) Int {
	return Int{Value: v, Set: true, Valid: true}
}

// UnmarshalJSON records invalid input instead of failing, so validators can report it.
func (i *Int) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*i = Int{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		s = strings.TrimSpace(s)
		if s == "" {
			*i = Int{}
			return nil
		}
		v, err := strconv.Atoi(s)
		*i = Int{Value: v, Set: true, Valid: err == nil}
		return nil
	}

	var n float64
	if err := json.Unmarshal(data, &n); err == nil && n == math.Trunc(n) && math.Abs(n) < math.MaxInt32 {
		*i = Int{Value: int(n), Set: true, Valid: true}
		return nil
	}

	*i = Int{Set: true}
	return nil
}

// Ptr returns a pointer to the value, or nil when unset.
func (i Int) Ptr() *int {
	if !i.Set || !i.Valid {
		return nil
	}
	v := i.Value
	return &v
}
