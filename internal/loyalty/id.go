package loyalty

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ID identifies a customer. The admin tool sends ids either as JSON strings
// or as JSON numbers, so both decode to the same canonical decimal string
// and compare with plain equality.
type ID string

// UnmarshalJSON accepts a JSON string, a JSON number or null.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("id must be a string or number, got %s", data)
	}
	*id = ID(strconv.FormatFloat(f, 'f', -1, 64))
	return nil
}

func (id ID) String() string {
	return string(id)
}

// canonicalIndex reports whether id is a canonical non-negative integer
// (no sign, no leading zeros) and returns its value.
func canonicalIndex(id ID) (uint64, bool) {
	s := string(id)
	if s == "" || (len(s) > 1 && s[0] == '0') || strings.ContainsAny(s, "+-") {
		return 0, false
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// CompareIDs orders integer-like ids numerically ahead of all other ids,
// which sort lexically. It is the iteration order used for XP records.
func CompareIDs(a, b ID) int {
	na, aok := canonicalIndex(a)
	nb, bok := canonicalIndex(b)
	switch {
	case aok && bok:
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		}
		return 0
	case aok:
		return -1
	case bok:
		return 1
	}
	return strings.Compare(string(a), string(b))
}
