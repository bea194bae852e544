package format

import (
	"regexp"
	"strings"

	"github.com/pseudomuto/sqlpack/pkg/utils"
)

// spanDelimiter separates the spans a long line may be broken between.
var spanDelimiter = regexp.MustCompile(`\s+|,\s*`)

// SplitForHardLimit breaks line into chunks of at most hardLimit characters each.
//
// The trimmed line is cut into alternating content and delimiter spans (whitespace
// runs, or a comma with its trailing whitespace). Spans are accumulated into a chunk
// while it fits; indent counts towards, and is prefixed to, the first chunk only. A
// span that does not fit starts the next chunk. A single span wider than hardLimit is
// emitted as its own oversized chunk rather than being cut.
//
// Concatenating the chunks yields indent followed by the trimmed line. Chunk boundaries
// may separate a field from its trailing comma.
//
// Example:
//
//	format.SplitForHardLimit("alpha, beta, gamma", 12, "  ")
//	// ["  alpha, ", "beta, gamma"]
func SplitForHardLimit(line string, hardLimit int, indent string) []string {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	var (
		chunks  []string
		current string
		first   = true
	)

	flush := func() {
		if first {
			current = indent + current
			first = false
		}

		chunks = append(chunks, current)
	}

	for _, span := range spans(line) {
		candidate := current + span

		width := utils.Width(candidate)
		if first {
			width += utils.Width(indent)
		}

		if current == "" || width <= hardLimit {
			current = candidate
			continue
		}

		flush()
		current = span
	}

	if current != "" {
		flush()
	}

	return chunks
}

// spans cuts line into its content and delimiter spans, dropping empty ones.
func spans(line string) []string {
	var (
		result []string
		last   int
	)

	for _, loc := range spanDelimiter.FindAllStringIndex(line, -1) {
		if loc[0] > last {
			result = append(result, line[last:loc[0]])
		}

		result = append(result, line[loc[0]:loc[1]])
		last = loc[1]
	}

	if last < len(line) {
		result = append(result, line[last:])
	}

	return result
}
