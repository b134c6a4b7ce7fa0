package pyramid

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Int reads an integer meta entry. Values decoded from JSON arrive as json.Number or
// float64, hand-built ones as int or int64; numeric strings are accepted too.
func (m Meta) Int(key string) (int64, bool, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return 0, false, nil
	}
	n, err := toInt(v)
	if err != nil {
		return 0, true, fmt.Errorf("meta %q: %w", key, err)
	}
	return n, true, nil
}

// Ints reads a list of integers.
func (m Meta) Ints(key string) ([]int, bool, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return nil, false, nil
	}
	switch list := v.(type) {
	case []int:
		return append([]int(nil), list...), true, nil
	case []int64:
		out := make([]int, 0, len(list))
		for _, n := range list {
			out = append(out, int(n))
		}
		return out, true, nil
	case []any:
		out := make([]int, 0, len(list))
		for i, item := range list {
			n, err := toInt(item)
			if err != nil {
				return nil, true, fmt.Errorf("meta %q[%d]: %w", key, i, err)
			}
			out = append(out, int(n))
		}
		return out, true, nil
	default:
		return nil, true, fmt.Errorf("meta %q: expected a list of integers, got %T", key, v)
	}
}

// Strings reads a list of strings.
func (m Meta) Strings(key string) ([]string, bool, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return nil, false, nil
	}
	switch list := v.(type) {
	case []string:
		return append([]string(nil), list...), true, nil
	case []any:
		out := make([]string, 0, len(list))
		for i, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, true, fmt.Errorf("meta %q[%d]: expected a string, got %T", key, i, item)
			}
			out = append(out, s)
		}
		return out, true, nil
	default:
		return nil, true, fmt.Errorf("meta %q: expected a list of strings, got %T", key, v)
	}
}

func toInt(v any) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	case int32:
		return int64(n), nil
	case float64:
		if math.IsInf(n, 0) || math.IsNaN(n) || n != math.Trunc(n) {
			return 0, fmt.Errorf("%v is not an integer", n)
		}
		return int64(n), nil
	case json.Number:
		return parseInt(string(n))
	case string:
		return parseInt(strings.TrimSpace(n))
	default:
		return 0, fmt.Errorf("expected an integer, got %T", v)
	}
}

func parseInt(s string) (int64, error) {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("%q is not an integer", s)
	}
	return int64(f), nil
}
