package game

import (
	"fmt"
	"strings"
)

// EventLogEntry is one recorded engine event.
type EventLogEntry struct {
	Tick     int
	Category string  // fishing, reward, player, autofish, clock, particles, notice
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=00042] fishing  state_change  waiting -> bite
func (e EventLogEntry) String() string {
	return fmt.Sprintf("[T=%05d] %-9s %-18s %s", e.Tick, e.Category, e.Key, e.Value)
}

// EventLog collects structured engine events. It is unbounded and
// machine-readable; tests and the headless report consume it directly.
type EventLog struct {
	entries []EventLogEntry
	verbose bool
}

// NewEventLog creates an EventLog. When verbose is true, per-frame entries
// (positions, particle censuses) are recorded as well.
func NewEventLog(verbose bool) *EventLog {
	return &EventLog{verbose: verbose}
}

// SetVerbose toggles verbose recording after construction.
func (el *EventLog) SetVerbose(v bool) {
	el.verbose = v
}

// Add records a new entry.
func (el *EventLog) Add(tick int, category, key, value string, numVal float64) {
	el.entries = append(el.entries, EventLogEntry{
		Tick:     tick,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (el *EventLog) AddVerbose(tick int, category, key, value string, numVal float64) {
	if !el.verbose {
		return
	}
	el.Add(tick, category, key, value, numVal)
}

// Entries returns all recorded entries.
func (el *EventLog) Entries() []EventLogEntry {
	return el.entries
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (el *EventLog) Filter(category, key string) []EventLogEntry {
	var out []EventLogEntry
	for _, e := range el.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// CountOf returns how many entries match the given category and key.
func (el *EventLog) CountOf(category, key string) int {
	return len(el.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (el *EventLog) LastOf(category, key string) (EventLogEntry, bool) {
	entries := el.Filter(category, key)
	if len(entries) == 0 {
		return EventLogEntry{}, false
	}
	return entries[len(entries)-1], true
}

// HasEntry returns true if at least one entry matches category, key, and
// value substring. Empty arguments match anything.
func (el *EventLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range el.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// TailKeys returns the category/key pairs of the last n entries, oldest
// first. Handy for asserting event ordering in tests.
func (el *EventLog) TailKeys(n int) []string {
	start := len(el.entries) - n
	if start < 0 {
		start = 0
	}
	out := make([]string, 0, len(el.entries)-start)
	for _, e := range el.entries[start:] {
		out = append(out, e.Category+"/"+e.Key)
	}
	return out
}

// Format returns the full log as a single string for t.Log output.
func (el *EventLog) Format() string {
	var sb strings.Builder
	for _, e := range el.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
