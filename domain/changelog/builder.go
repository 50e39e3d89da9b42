package changelog

import "strings"

// Builder accumulates a header line followed by rendered change lines.
type Builder struct {
	sb strings.Builder
}

// NewBuilder starts a change log with the given header. A trailing newline is
// added when missing.
func NewBuilder(header string) *Builder {
	b := &Builder{}
	b.sb.WriteString(header)
	if !strings.HasSuffix(header, "\n") {
		b.sb.WriteByte('\n')
	}
	return b
}

// Add appends pre-rendered lines, usually the output of Field or Set.
func (b *Builder) Add(lines ...string) *Builder {
	for _, line := range lines {
		b.sb.WriteString(line)
	}
	return b
}

// String returns the accumulated text. A header with no changes is returned as is.
func (b *Builder) String() string {
	return b.sb.String()
}
