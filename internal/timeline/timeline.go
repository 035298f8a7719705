// Package timeline collapses and orders match events that arrive from
// multiple overlapping upstream sources.
package timeline

import (
	"sort"
	"strconv"
	"strings"
)

// Dedupe removes duplicate events while preserving source order. The
// first occurrence of a key wins, so callers put the higher-fidelity
// source first.
func Dedupe(events []Event) []Event {
	if len(events) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(events))
	out := make([]Event, 0, len(events))
	for _, e := range events {
		key := e.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, e)
	}
	return out
}

// Merge combines two event collections for the same match. The primary
// collection is the higher-fidelity source and wins ties.
func Merge(primary, secondary []Event) []Event {
	combined := make([]Event, 0, len(primary)+len(secondary))
	combined = append(combined, primary...)
	combined = append(combined, secondary...)
	return Dedupe(combined)
}

// SortForDisplay orders events latest-first: period descending, then
// parsed clock time descending. When period and time coincide, goal
// events sort first and period/match-end markers last, otherwise the
// source order is preserved.
func SortForDisplay(events []Event) []Event {
	out := make([]Event, len(events))
	copy(out, events)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Period != b.Period {
			return a.Period > b.Period
		}
		as, aok := ParseClock(a.Time)
		bs, bok := ParseClock(b.Time)
		if aok && bok && as != bs {
			return as > bs
		}
		ar, br := tieRank(a), tieRank(b)
		return ar < br
	})
	return out
}

// tieRank breaks period+time ties: goals first, end markers last.
func tieRank(e Event) int {
	t := strings.ToLower(e.Type)
	switch {
	case strings.Contains(t, "mål") || strings.Contains(t, "goal"):
		return 0
	case strings.Contains(t, "slut") || strings.Contains(t, "end"):
		return 2
	default:
		return 1
	}
}

// ParseClock converts "MM:SS" or "MM:SS+E" into total seconds, with
// stoppage minutes added before comparison.
func ParseClock(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	extra := 0
	if idx := strings.IndexByte(s, '+'); idx >= 0 {
		e, err := strconv.Atoi(strings.TrimSpace(s[idx+1:]))
		if err != nil {
			return 0, false
		}
		extra = e
		s = strings.TrimSpace(s[:idx])
	}
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, false
	}
	min, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, false
	}
	sec, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, false
	}
	return (min+extra)*60 + sec, true
}

// FormatClock renders a second count as "MM:SS". Negative values clamp
// to "00:00".
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	min := seconds / 60
	sec := seconds % 60
	return pad(min) + ":" + pad(sec)
}

func pad(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
