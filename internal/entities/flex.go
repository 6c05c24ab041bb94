package entities

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// The warranty API serialises ids, counters and flags loosely: an id can
// be a number or a string, a SUM() arrives as "12", a flag as 0/1. The
// Flex types accept every such shape.

type FlexString string

func (s *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*s = ""
	case len(b) > 0 && b[0] == '"':
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = FlexString(v)
	default:
		*s = FlexString(b)
	}
	return nil
}

func (s FlexString) String() string { return string(s) }

// FlexNumber reads anything that is not a number as 0.
type FlexNumber float64

func (n *FlexNumber) UnmarshalJSON(b []byte) error {
	raw := strings.Trim(string(bytes.TrimSpace(b)), `"`)
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		v = 0
	}
	*n = FlexNumber(v)
	return nil
}

func (n FlexNumber) String() string {
	return strconv.FormatFloat(float64(n), 'f', -1, 64)
}

func (n FlexNumber) Int() int { return int(n) }

type FlexBool bool

func (f *FlexBool) UnmarshalJSON(b []byte) error {
	switch strings.ToLower(strings.Trim(string(bytes.TrimSpace(b)), `"`)) {
	case "true", "1":
		*f = true
	default:
		*f = false
	}
	return nil
}

// Extra keeps the fields of an upstream record that the console does not
// model, so that they survive caching and reach the client unchanged.
type Extra map[string]json.RawMessage

func unmarshalWithExtra(b []byte, typed any, extra *Extra) error {
	if err := json.Unmarshal(b, typed); err != nil {
		return err
	}
	var all Extra
	if err := json.Unmarshal(b, &all); err != nil {
		return err
	}
	*extra = all
	return nil
}

// marshalWithExtra writes the modelled fields over the original object.
func marshalWithExtra(typed any, extra Extra) ([]byte, error) {
	if len(extra) == 0 {
		return json.Marshal(typed)
	}
	b, err := json.Marshal(typed)
	if err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return nil, err
	}
	merged := make(map[string]json.RawMessage, len(extra)+len(fields))
	for k, v := range extra {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return json.Marshal(merged)
}

// detailsOf decodes a JSON object that may arrive embedded as a string.
func detailsOf(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return s
	}
	return string(raw)
}
