package id

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// List is a slice of ids encoded as JSON strings, matching the `json:",string"`
// encoding of single id fields. Decoding also accepts plain numbers.
type List []int64

func (l List) MarshalJSON() ([]byte, error) {
	out := make([]string, len(l))
	for i, v := range l {
		out[i] = strconv.FormatInt(v, 10)
	}
	return json.Marshal(out)
}

func (l *List) UnmarshalJSON(b []byte) error {
	var raw []json.Number
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	out := make(List, 0, len(raw))
	for _, n := range raw {
		v, err := strconv.ParseInt(n.String(), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid id %q: %w", n.String(), err)
		}
		out = append(out, v)
	}
	*l = out
	return nil
}

// ID is a single id with the same encoding as List.
type ID int64

func (v ID) MarshalJSON() ([]byte, error) {
	return json.Marshal(strconv.FormatInt(int64(v), 10))
}

func (v *ID) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	parsed, err := strconv.ParseInt(n.String(), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q: %w", n.String(), err)
	}
	*v = ID(parsed)
	return nil
}

func (v ID) Int64() int64 {
	return int64(v)
}
