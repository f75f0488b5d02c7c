package parse

import (
	"regexp"
	"strings"
)

// flagNationality maps flag image basenames to nation labels. It is a
// curated allow-list: tokens outside it are ignored rather than guessed at.
var flagNationality = map[string]string{
	"usaflag":         "United States",
	"usaflag1":        "United States (Colonial/Revolutionary)",
	"britishflag":     "Great Britain",
	"frenchflag":      "France",
	"spanishflag":     "Spain",
	"mexicanflag":     "Mexico",
	"confederateflag": "Confederate States",
	"russianflag":     "Russia",
	"dutchflag":       "Netherlands",
	"swedishflag":     "Sweden",
}

// Flag images follow the site's naming convention: britishflag.gif,
// usaflag1.gif and so on.
var reFlagImage = regexp.MustCompile(`(?i)([a-z]+flag\d*)\.gif`)

// ExtractNationalities scans an HTML fragment for flag image references and
// resolves each to a nation label. The result preserves first-seen order and
// contains no duplicates.
func ExtractNationalities(fragment string) []string {
	var nations []string
	for _, m := range reFlagImage.FindAllStringSubmatch(fragment, -1) {
		token := strings.ToLower(m[1])
		nation, ok := flagNationality[token]
		if !ok {
			continue
		}
		if !contains(nations, nation) {
			nations = append(nations, nation)
		}
	}
	return nations
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
