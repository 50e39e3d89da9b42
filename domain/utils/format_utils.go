package utils

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MessageLimit is the maximum length of a single chat message.
const MessageLimit = 2000

// SplitMessage splits text into chunks of at most limit characters, breaking on
// line boundaries where possible. Lines longer than limit are cut by rune.
func SplitMessage(text string, limit int) []string {
	if limit <= 0 {
		limit = MessageLimit
	}
	if utf8.RuneCountInString(text) <= limit {
		return []string{text}
	}

	var chunks []string
	var current strings.Builder
	currentLen := 0

	flush := func() {
		if currentLen > 0 {
			chunks = append(chunks, current.String())
			current.Reset()
			currentLen = 0
		}
	}

	lines := strings.SplitAfter(text, "\n")
	for _, line := range lines {
		lineLen := utf8.RuneCountInString(line)
		if currentLen+lineLen <= limit {
			current.WriteString(line)
			currentLen += lineLen
			continue
		}

		flush()
		for lineLen > limit {
			head, tail := splitRunes(line, limit)
			chunks = append(chunks, head)
			line = tail
			lineLen -= limit
		}
		current.WriteString(line)
		currentLen = lineLen
	}
	flush()

	return chunks
}

// ReasonSuffix renders the optional reason appended to moderation messages.
func ReasonSuffix(reason string) string {
	if reason == "" {
		return ""
	}
	return fmt.Sprintf(". Reason: **%s**", reason)
}

func splitRunes(s string, n int) (string, string) {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos], s[pos:]
		}
		i++
	}
	return s, ""
}
