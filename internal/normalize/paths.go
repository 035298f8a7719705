package normalize

import (
	"strconv"
	"strings"
)

// The upstream list and detail endpoints name the same concept
// differently ("type" vs "eventType" vs "payload.eventType"). Each
// logical field therefore resolves against an ordered list of candidate
// paths; the first present, non-empty value wins. Dotted paths descend
// into nested objects.

func lookup(raw map[string]any, path string) (any, bool) {
	if raw == nil {
		return nil, false
	}
	cur := raw
	parts := strings.Split(path, ".")
	for i, part := range parts {
		v, ok := cur[part]
		if !ok {
			return nil, false
		}
		if i == len(parts)-1 {
			return v, true
		}
		next, ok := v.(map[string]any)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return nil, false
}

// firstString returns the first candidate that resolves to a non-empty
// string (or a number, rendered as its string form).
func firstString(raw map[string]any, paths ...string) string {
	for _, p := range paths {
		v, ok := lookup(raw, p)
		if !ok {
			continue
		}
		switch val := v.(type) {
		case string:
			if s := strings.TrimSpace(val); s != "" {
				return s
			}
		case float64:
			return formatNumber(val)
		case int:
			return strconv.Itoa(val)
		}
	}
	return ""
}

// firstInt accepts JSON numbers and numeric strings.
func firstInt(raw map[string]any, paths ...string) (int, bool) {
	for _, p := range paths {
		v, ok := lookup(raw, p)
		if !ok {
			continue
		}
		switch val := v.(type) {
		case float64:
			return int(val), true
		case int:
			return val, true
		case string:
			if n, err := strconv.Atoi(strings.TrimSpace(val)); err == nil {
				return n, true
			}
		}
	}
	return 0, false
}

// firstBool accepts booleans and their common string/number spellings.
func firstBool(raw map[string]any, paths ...string) (bool, bool) {
	for _, p := range paths {
		v, ok := lookup(raw, p)
		if !ok {
			continue
		}
		switch val := v.(type) {
		case bool:
			return val, true
		case string:
			switch strings.ToLower(strings.TrimSpace(val)) {
			case "true", "1", "yes", "ja":
				return true, true
			case "false", "0", "no", "nej":
				return false, true
			}
		case float64:
			return val != 0, true
		}
	}
	return false, false
}

// firstList returns the first candidate that resolves to a non-empty
// array.
func firstList(raw map[string]any, paths ...string) []any {
	for _, p := range paths {
		v, ok := lookup(raw, p)
		if !ok {
			continue
		}
		if list, ok := v.([]any); ok && len(list) > 0 {
			return list
		}
	}
	return nil
}

// firstMap returns the first candidate that resolves to an object.
func firstMap(raw map[string]any, paths ...string) map[string]any {
	for _, p := range paths {
		v, ok := lookup(raw, p)
		if !ok {
			continue
		}
		if m, ok := v.(map[string]any); ok && len(m) > 0 {
			return m
		}
	}
	return nil
}

func formatNumber(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
