package envconfig

import (
	"strings"
	"unicode"
)

// toScreamingSnake derives a key from a Go identifier: DbHost -> DB_HOST,
// DBHost -> DB_HOST, ApiKey2FA -> API_KEY2FA.
func toScreamingSnake(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		if i > 0 {
			var next rune
			if i+1 < len(runes) {
				next = runes[i+1]
			}
			if isBoundary(runes[i-1], r, next) {
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

func isBoundary(prev, curr, next rune) bool {
	// Split on lower→upper transitions (ApiKey → API_KEY) and before the last
	// upper of an acronym that starts a new word (DBHost → DB_HOST).
	// Letters and digits are never split (ApiKey2FA → API_KEY2FA).
	if unicode.IsLower(prev) && unicode.IsUpper(curr) {
		return true
	}
	return unicode.IsUpper(prev) && unicode.IsUpper(curr) && unicode.IsLower(next)
}
