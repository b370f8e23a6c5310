package bot

import "strings"

const identifierLen = 32

func isAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// ExtractIdentifier pulls an order or customer identifier out of free
// text. An identifier is a run of exactly 32 alphanumeric characters
// bounded by non-alphanumerics or the string edges. The original case
// is preserved; callers fold before matching against indexes.
func ExtractIdentifier(text string) (string, bool) {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) == identifierLen {
		all := true
		for _, r := range trimmed {
			if !isAlnum(r) {
				all = false
				break
			}
		}
		if all {
			return trimmed, true
		}
	}

	// Scan maximal alphanumeric runs; the first run of exactly 32
	// characters wins.
	runStart := -1
	for i, r := range text {
		if isAlnum(r) {
			if runStart < 0 {
				runStart = i
			}
			continue
		}
		if runStart >= 0 && i-runStart == identifierLen {
			return text[runStart:i], true
		}
		runStart = -1
	}
	if runStart >= 0 && len(text)-runStart == identifierLen {
		return text[runStart:], true
	}
	return "", false
}
