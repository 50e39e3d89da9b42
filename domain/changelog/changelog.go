// Package changelog renders before/after snapshots of a platform entity into
// human-readable change lines for the audit log.
package changelog

import (
	"fmt"
	"reflect"
	"strings"
)

// Mentioner is implemented by reference values that have a canonical mention form
// (channels, roles, users, emojis).
type Mentioner interface {
	Mention() string
}

// NoneText is rendered for absent references.
const NoneText = "None"

// Field returns "{label}: {before} -> {after}\n" when the values differ, and an
// empty string otherwise.
func Field[T comparable](label string, before, after T) string {
	if before == after {
		return ""
	}
	return fmt.Sprintf("%s: %s -> %s\n", label, Display(before), Display(after))
}

// Set compares two collections by membership. Items only in before are listed on
// a "removed" line, items only in after on an "added" line, each in its original
// order. Equal memberships produce an empty string.
func Set[T comparable](label string, before, after []T) string {
	removed := difference(before, after)
	added := difference(after, before)

	var b strings.Builder
	if len(removed) > 0 {
		fmt.Fprintf(&b, "%s removed: %s\n", label, join(removed))
	}
	if len(added) > 0 {
		fmt.Fprintf(&b, "%s added: %s\n", label, join(added))
	}
	return b.String()
}

// Display renders a value the way it appears in change lines.
func Display(v any) string {
	if v == nil {
		return NoneText
	}
	if m, ok := v.(Mentioner); ok {
		if isZero(v) {
			return NoneText
		}
		return m.Mention()
	}
	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprint(v)
}

func difference[T comparable](from, exclude []T) []T {
	present := make(map[T]struct{}, len(exclude))
	for _, item := range exclude {
		present[item] = struct{}{}
	}

	var out []T
	seen := make(map[T]struct{}, len(from))
	for _, item := range from {
		if _, ok := present[item]; ok {
			continue
		}
		if _, dup := seen[item]; dup {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}

func join[T comparable](items []T) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = Display(item)
	}
	return strings.Join(parts, ", ")
}

func isZero(v any) bool {
	rv := reflect.ValueOf(v)
	return !rv.IsValid() || rv.IsZero()
}
