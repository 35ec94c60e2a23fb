package tasksrepobridge

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/jrazmi/tasktracker/sdk/validation"
)

// Casting follows document store rules: scalars become strings, a small set
// of literals become booleans, and numbers are read as epoch milliseconds.

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(bytes.TrimSpace(raw)) == "null"
}

func scalar(raw json.RawMessage) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// castString returns nil for a missing or null value.
func castString(field string, raw json.RawMessage) (*string, error) {
	if isNull(raw) {
		return nil, nil
	}

	v, err := scalar(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}

	var s string
	switch v := v.(type) {
	case string:
		s = v
	case json.Number:
		s = v.String()
	case bool:
		s = strconv.FormatBool(v)
	default:
		return nil, fmt.Errorf("%s: cast to string failed for value %s", field, raw)
	}
	return &s, nil
}

// castBool accepts true, false, "true", "false", 1, 0, "1", "0", "yes" and "no".
func castBool(field string, raw json.RawMessage) (bool, error) {
	v, err := scalar(raw)
	if err != nil {
		return false, fmt.Errorf("%s: %w", field, err)
	}

	switch v := v.(type) {
	case bool:
		return v, nil
	case string:
		switch v {
		case "true", "1", "yes":
			return true, nil
		case "false", "0", "no":
			return false, nil
		}
	case json.Number:
		switch v.String() {
		case "1":
			return true, nil
		case "0":
			return false, nil
		}
	}
	return false, fmt.Errorf("%s: cast to boolean failed for value %s", field, raw)
}

// castDate treats null and "" as no deadline.
func castDate(field string, raw json.RawMessage) (*time.Time, error) {
	if isNull(raw) {
		return nil, nil
	}

	v, err := scalar(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}

	switch v := v.(type) {
	case string:
		if v == "" {
			return nil, nil
		}
		t, err := validation.ParseFlexibleDate(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", field, err)
		}
		return &t, nil
	case json.Number:
		ms, err := v.Float64()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", field, err)
		}
		t := time.UnixMilli(int64(ms)).UTC()
		return &t, nil
	}
	return nil, fmt.Errorf("%s: cast to date failed for value %s", field, raw)
}
