package service

import "strings"

// firstJSONObject returns the first balanced {...} block in model output.
// Models tend to wrap JSON in prose or markdown fences, so the caller gets
// just the object and nothing around it.
func firstJSONObject(raw string) string {
	raw = strings.ReplaceAll(raw, "```json", "")
	raw = strings.ReplaceAll(raw, "```", "")

	start := strings.IndexByte(raw, '{')
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	for i := start; i < len(raw); i++ {
		c := raw[i]
		if inString {
			switch c {
			case '\\':
				i++ // skip the escaped byte
			case '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return raw[start : i+1]
			}
		}
	}
	return ""
}
