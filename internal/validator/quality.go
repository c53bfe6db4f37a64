// internal/validator/quality.go
// Heuristic checks for free-text quality and image references. Both are
// stateless value types built once from configuration, so trusted hosts,
// extension lists, and length thresholds can be tuned without touching
// any control flow.
package validator

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Compiled once at startup; shared by every TextQuality value.
var (
	// vowelRX matches any vowel, either case.
	vowelRX = regexp.MustCompile(`[aeiouAEIOU]`)

	// disallowedRX matches any character outside the allow-set of
	// letters, digits, basic punctuation (. , ' " -), and whitespace.
	disallowedRX = regexp.MustCompile(`[^a-zA-Z0-9.,'"\s-]`)

	// authorRX matches every character SanitizeAuthor strips: anything
	// that is not a letter, a period, or whitespace.
	authorRX = regexp.MustCompile(`[^A-Za-z.\s]`)
)

// TextQuality classifies free-text input as gibberish using four cheap,
// independent tests. False positives are acceptable: re-entering a field
// is much cheaper than persisting junk. The heuristic knowingly accepts
// short vowel-only strings like "aaa"; that weakness is documented and
// deliberate, not something to tighten silently.
type TextQuality struct {
	minLength int
	clusterRX *regexp.Regexp
}

// NewTextQuality builds a TextQuality check. minLength is the smallest
// acceptable trimmed length; clusterLength is the number of consecutive
// non-vowel, non-whitespace characters treated as a consonant cluster.
func NewTextQuality(minLength, clusterLength int) TextQuality {
	return TextQuality{
		minLength: minLength,
		clusterRX: regexp.MustCompile(fmt.Sprintf(`(?i)[^aeiou\s]{%d,}`, clusterLength)),
	}
}

// IsGibberish reports whether text fails the quality heuristic. The four
// conditions are independent ORs; order matters only for short-circuiting.
func (q TextQuality) IsGibberish(text string) bool {
	// No vowel anywhere means no pronounceable word.
	if !Matches(text, vowelRX) {
		return true
	}

	// Any character outside the allow-set.
	if Matches(text, disallowedRX) {
		return true
	}

	// Too short to be meaningful once trimmed.
	if utf8.RuneCountInString(strings.TrimSpace(text)) < q.minLength {
		return true
	}

	// A long run of characters with no vowel or space in between.
	return Matches(text, q.clusterRX)
}

// ImageRef validates image references. A reference is accepted when it
// matches the strict URL pattern, the loose URL pattern, or contains one
// of the trusted hosts. The host allow-list exists because real image
// CDNs often serve URLs with no extension at all.
type ImageRef struct {
	strictRX     *regexp.Regexp
	looseRX      *regexp.Regexp
	trustedHosts []string
}

// NewImageRef builds an ImageRef check from the accepted extension list
// and the trusted-host allow-list.
func NewImageRef(extensions, trustedHosts []string) ImageRef {
	alt := strings.Join(extensions, "|")
	hosts := make([]string, len(trustedHosts))
	for i, h := range trustedHosts {
		hosts[i] = strings.ToLower(h)
	}
	return ImageRef{
		// Strict: http(s) scheme, no whitespace, a recognized extension,
		// optionally followed by a query string.
		strictRX: regexp.MustCompile(`(?i)^https?://\S+\.(` + alt + `)(\?.*)?$`),
		// Loose: same shape but the extension itself is optional.
		looseRX:      regexp.MustCompile(`(?i)^https?://\S+\.(` + alt + `)?(\?.*)?$`),
		trustedHosts: hosts,
	}
}

// Valid reports whether ref is an acceptable image reference.
func (ir ImageRef) Valid(ref string) bool {
	trimmed := strings.TrimSpace(ref)
	if Matches(trimmed, ir.strictRX) || Matches(trimmed, ir.looseRX) {
		return true
	}

	// Trusted hosts are accepted regardless of URL shape.
	lower := strings.ToLower(ref)
	for _, host := range ir.trustedHosts {
		if strings.Contains(lower, host) {
			return true
		}
	}
	return false
}

// SanitizeAuthor strips every character that is not a letter, a period,
// or whitespace. It is applied to the author field before validation, so
// the value that gets validated and persisted is the sanitized one.
func SanitizeAuthor(raw string) string {
	return authorRX.ReplaceAllString(raw, "")
}
