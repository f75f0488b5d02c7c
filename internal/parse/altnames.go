package parse

import (
	"regexp"
	"strings"
)

// Alternate names show up as emphasized spans in descriptions, usually
// anchored by a renaming phrase: "first known as **Fort Casimir**".
var altNamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:first |originally |also |formerly |later |previously )?(?:known|called|named|designated) as \*\*([^*]+)\*\*`),
	regexp.MustCompile(`(?i)(?:renamed|changed to) \*\*([^*]+)\*\*`),
	regexp.MustCompile(`\*\*([^*]+)\*\*`),
}

// Candidates opening with these words are descriptive phrases, not names.
var altNameStopwords = []string{"the ", "a ", "an ", "this ", "that "}

var reBoldSpan = regexp.MustCompile(`(?i)<(?:b|strong)>([^<]+)</(?:b|strong)>`)

// Phrases that mark emphasized UI text rather than fort names.
var boldSkipPhrases = []string{"the ", "click", "here", "see "}

// ExtractAltNames mines alternate fort names from plain description text.
// Phrase-anchored patterns run before the bare-emphasis fallback; the result
// preserves first-seen order and contains no duplicates.
func ExtractAltNames(description string) []string {
	var names []string
	for _, pattern := range altNamePatterns {
		for _, m := range pattern.FindAllStringSubmatch(description, -1) {
			name := strings.TrimSpace(m[1])
			if name == "" || contains(names, name) {
				continue
			}
			if hasStopwordPrefix(name) {
				continue
			}
			names = append(names, name)
		}
	}
	return names
}

// ExtractAltNamesHTML mines alternate names from bold spans in description
// markup. Candidates must start with an uppercase letter, be longer than
// three characters, and not read like navigation text.
func ExtractAltNamesHTML(markup string) []string {
	var names []string
	for _, m := range reBoldSpan.FindAllStringSubmatch(markup, -1) {
		name := strings.TrimSpace(m[1])
		if !isAltNameCandidate(name) || contains(names, name) {
			continue
		}
		names = append(names, name)
	}
	return names
}

func isAltNameCandidate(name string) bool {
	if len(name) <= 3 {
		return false
	}
	if name[0] < 'A' || name[0] > 'Z' {
		return false
	}
	lower := strings.ToLower(name)
	for _, phrase := range boldSkipPhrases {
		if strings.Contains(lower, phrase) {
			return false
		}
	}
	return true
}

func hasStopwordPrefix(name string) bool {
	lower := strings.ToLower(name)
	for _, w := range altNameStopwords {
		if strings.HasPrefix(lower, w) {
			return true
		}
	}
	return false
}
