package studio

import "strings"

// trimCodeFence strips a markdown code fence the model sometimes wraps
// around JSON output despite the response MIME type.
func trimCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// extractJSONFragment pulls the outermost JSON object out of mixed
// prose, or returns s unchanged when no braces are found.
func extractJSONFragment(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end < start {
		return s
	}
	return s[start : end+1]
}
