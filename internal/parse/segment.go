package parse

import (
	"regexp"
	"strings"

	"github.com/ajmayo/fortscan/internal/model"
)

// Entry layout cascade, first match wins. The markup spans decades of
// hand-editing, so each later pattern catches what the earlier ones miss.
var (
	// Name (dates), Location - Description
	reEntryFull = regexp.MustCompile(`(?s)^(.+?)\s*\(([^)]+)\)\s*,\s*([^–-]+?)\s*[-–]\s*(.*)$`)
	// Name (dates), Remainder
	reEntryComma = regexp.MustCompile(`(?s)^(.+?)\s*\(([^)]+)\)\s*,\s*(.+)$`)
	// Name (dates) Remainder
	reEntryBare = regexp.MustCompile(`(?s)^(.+?)\s*\(([^)]+)\)\s*(.*)$`)

	reSentenceEnd = regexp.MustCompile(`[.!?]\s`)
	reWhitespace  = regexp.MustCompile(`\s+`)
	reBracketed   = regexp.MustCompile(`\s*\[[^\]]*\]\s*`)
	reEmphasis    = regexp.MustCompile(`\s*\*+\s*`)
)

const rawNameLimit = 100

// ParseEntry builds one record from a single unsegmented entry fragment.
// entryHTML, when available, supplies the surrounding markup for nationality
// extraction; it may be empty. Returns nil only for blank input. No layout
// ever fails: unrecognized text degrades to a raw-text record whose name is
// the truncated input and whose EntryRaw preserves everything.
func ParseEntry(entryText, entryHTML string) *model.FortRecord {
	text := strings.TrimSpace(entryText)
	if text == "" {
		return nil
	}
	text = reWhitespace.ReplaceAllString(text, " ")

	var name, dates, location, description string

	if m := reEntryFull.FindStringSubmatch(text); m != nil {
		name, dates, location = m[1], strings.TrimSpace(m[2]), strings.TrimSpace(m[3])
		description = strings.TrimSpace(m[4])
	} else if m := reEntryComma.FindStringSubmatch(text); m != nil {
		name, dates = m[1], strings.TrimSpace(m[2])
		// Location and description arrived merged: the first sentence is the
		// location context, everything after it the description.
		location, description = splitFirstSentence(strings.TrimSpace(m[3]))
	} else if m := reEntryBare.FindStringSubmatch(text); m != nil {
		name, dates = m[1], strings.TrimSpace(m[2])
		description = strings.TrimSpace(m[3])
	} else {
		return &model.FortRecord{
			NamePrimary:    truncateRunes(text, rawNameLimit),
			EntryRaw:       text,
			DescriptionRaw: text,
		}
	}

	name = CleanName(name)
	periods, earliest, latest := ParseDateRanges(dates)

	var nationalities []string
	if entryHTML != "" {
		nationalities = ExtractNationalities(entryHTML)
	}

	return &model.FortRecord{
		NamePrimary:    name,
		DatesRaw:       "(" + dates + ")",
		LocationText:   location,
		DescriptionRaw: description,
		EntryRaw:       text,
		FortType:       DetectFortType(name, description),
		AltNames:       ExtractAltNames(description),
		Nationalities:  nationalities,
		Periods:        periods,
		EarliestYear:   earliest,
		LatestYear:     latest,
	}
}

// CleanName strips bracketed annotations and emphasis markers left behind
// by the markup.
func CleanName(name string) string {
	name = reBracketed.ReplaceAllString(name, "")
	name = reEmphasis.ReplaceAllString(name, "")
	return strings.TrimSpace(name)
}

// splitFirstSentence splits at the first sentence-ending punctuation that is
// followed by whitespace. Without one, everything is location.
func splitFirstSentence(rest string) (location, description string) {
	if loc := reSentenceEnd.FindStringIndex(rest); loc != nil {
		return strings.TrimSpace(rest[:loc[0]+1]), strings.TrimSpace(rest[loc[0]+1:])
	}
	return rest, ""
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
