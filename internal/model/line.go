package model

import (
	"fmt"
	"regexp"
	"strings"
)

const CompletionMarker = "[DONE]"

// The deadline is free text and runs to the last closing parenthesis.
var metadataSuffix = regexp.MustCompile(`^(.*?)\s*\(Priority: ([^,()]*), Category: ([^,()]*), Deadline: (.*)\)$`)

// FormatLine encodes a task as a single task line:
//
//	[DONE] DESCRIPTION (Priority: P, Category: C, Deadline: D)
func FormatLine(t Task) string {
	var b strings.Builder
	if t.Done {
		b.WriteString(CompletionMarker)
		b.WriteString(" ")
	}
	b.WriteString(t.Description)
	if t.HasMetadata() {
		fmt.Fprintf(&b, " (Priority: %s, Category: %s, Deadline: %s)", t.Priority, t.Category, t.Deadline)
	}
	return b.String()
}

// ParseLine decodes a task line. Lines without a well-formed metadata suffix
// become a bare description. The returned task has no ID.
func ParseLine(line string) Task {
	text := strings.TrimSpace(line)
	var out Task
	if IsDoneLine(text) {
		out.Done = true
		text = StripMarker(text)
	}
	if m := metadataSuffix.FindStringSubmatch(text); m != nil && strings.TrimSpace(m[1]) != "" {
		out.Description = strings.TrimSpace(m[1])
		out.Priority = Priority(strings.TrimSpace(m[2]))
		out.Category = Category(strings.TrimSpace(m[3]))
		out.Deadline = strings.TrimSpace(m[4])
		return out
	}
	out.Description = text
	return out
}

// StripMarker returns the line text with the completion marker removed.
func StripMarker(line string) string {
	return strings.TrimSpace(strings.Replace(line, CompletionMarker, "", 1))
}

// IsDoneLine reports whether a raw task line starts with the completion marker.
func IsDoneLine(line string) bool {
	return strings.HasPrefix(line, CompletionMarker)
}

// SanitizeDescription flattens line breaks so a description always fits on
// one task line.
func SanitizeDescription(s string) string {
	s = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
	return strings.TrimSpace(s)
}
