package repair

import "strings"

// StripFence removes a single pair of code-fence markers from text, if
// present. A ```json fence is preferred over an anonymous one; with no
// complete fence pair the text comes back unchanged (trimmed). Only the
// fenced content is returned, so prose around the fence is dropped too.
func StripFence(text string) string {
	trimmed := strings.TrimSpace(text)

	start := strings.Index(trimmed, "```json")
	if start == -1 {
		start = strings.Index(trimmed, "```")
	}
	if start == -1 {
		return trimmed
	}

	// Content begins after the newline that ends the opening fence line.
	nl := strings.Index(trimmed[start:], "\n")
	if nl == -1 {
		return trimmed
	}
	contentStart := start + nl + 1

	end := strings.LastIndex(trimmed, "```")
	if end < contentStart {
		return trimmed
	}

	return strings.TrimSpace(trimmed[contentStart:end])
}

// ExtractPayload slices from the first opening brace or bracket to the last
// closing one of the same kind. Models often sandwich their JSON between
// prose; parse errors on the slice are the caller's to catch, this only
// locates a candidate. The boolean is false when no plausible payload
// exists.
func ExtractPayload(text string) (string, bool) {
	start := strings.IndexAny(text, "{[")
	if start == -1 {
		return "", false
	}

	closer := "}"
	if text[start] == '[' {
		closer = "]"
	}

	end := strings.LastIndex(text, closer)
	if end <= start {
		return "", false
	}

	return text[start : end+1], true
}
