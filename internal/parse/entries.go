package parse

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ajmayo/fortscan/internal/model"
)

// The italic block after an entry anchor reads "(dates), Location", though
// the location is frequently missing.
var (
	reDateLocation = regexp.MustCompile(`^\(([^)]+)\)\s*,?\s*(.*)`)
	reDateOnly     = regexp.MustCompile(`\(([^)]+)\)`)
)

// Flattened-text entries start a line with a capitalized phrase followed by
// a parenthesized four-digit year.
var reTextHeading = regexp.MustCompile(`(?m)^([A-Z][^(\n]+?)\s*\((\d{4}[^)]*)\)\s*,?\s*([^\n]*)`)

const (
	fallbackDescLimit = 1000
	fallbackRawLimit  = 500
	flagContextWindow = 100
)

// ExtractEntries turns one raw page into an ordered list of fort records.
// The source URL is context only; nothing is fetched. Two strategies run in
// order: the markup-structured scan, then, only when it finds nothing, a
// flattened plain-text scan. An empty result is a normal outcome.
func ExtractEntries(pageHTML, sourceURL string) []model.FortRecord {
	spans := tokenize(pageHTML)
	entries := extractStructured(spans)
	if len(entries) == 0 {
		entries = extractFlattened(pageHTML, spans)
	}
	return entries
}

// extractStructured scans the span sequence for the repeating entry shape:
// named anchor (fort name), flag images, an italic "(dates), location"
// block, then description content running until the next anchor or divider.
func extractStructured(spans []span) []model.FortRecord {
	var entries []model.FortRecord

	for i := 0; i < len(spans); i++ {
		if spans[i].kind != spanAnchor {
			continue
		}
		name := collapseSpace(spans[i].text)
		if name == "" {
			continue
		}

		// Zero or more flag images, line breaks allowed in between.
		j := i + 1
		var flagSrcs []string
		for j < len(spans) && (spans[j].kind == spanImage || spans[j].kind == spanLineBreak) {
			if spans[j].kind == spanImage {
				flagSrcs = append(flagSrcs, spans[j].attr)
			}
			j++
		}

		// Without the italic date/location block this anchor is a section
		// marker, not an entry.
		if j >= len(spans) || spans[j].kind != spanItalic {
			continue
		}
		dates, location := splitDateLocation(collapseSpace(spans[j].text))
		j++

		var desc strings.Builder
		var boldRuns []string
		for ; j < len(spans); j++ {
			if spans[j].kind == spanAnchor || spans[j].kind == spanDivider {
				break
			}
			switch spans[j].kind {
			case spanText, spanItalic:
				desc.WriteString(spans[j].text)
				desc.WriteString(" ")
			case spanBold:
				boldRuns = append(boldRuns, spans[j].text)
				desc.WriteString(spans[j].text)
				desc.WriteString(" ")
			}
		}
		i = j - 1

		description := collapseSpace(desc.String())
		periods, earliest, latest := ParseDateRanges(dates)

		entries = append(entries, model.FortRecord{
			NamePrimary:    name,
			DatesRaw:       parenthesize(dates),
			LocationText:   location,
			DescriptionRaw: description,
			EntryRaw:       fmt.Sprintf("%s (%s), %s - %s", name, dates, location, description),
			FortType:       DetectFortType(name, description),
			AltNames:       altNamesFromBold(boldRuns),
			Nationalities:  ExtractNationalities(strings.Join(flagSrcs, " ")),
			Periods:        periods,
			EarliestYear:   earliest,
			LatestYear:     latest,
		})
	}

	return entries
}

// extractFlattened is the fallback for pages whose markup never produced a
// structured match. It works over the flattened text, so flag images are
// gone; nationalities are recovered from a fixed character window around
// the fort name's offset in the raw HTML.
func extractFlattened(pageHTML string, spans []span) []model.FortRecord {
	text := flattenText(spans)
	matches := reTextHeading.FindAllStringSubmatchIndex(text, -1)
	var entries []model.FortRecord

	for k, m := range matches {
		name := strings.TrimSpace(text[m[2]:m[3]])
		if name == "" {
			continue
		}
		dates := strings.TrimSpace(text[m[4]:m[5]])
		location := strings.TrimSpace(text[m[6]:m[7]])

		end := len(text)
		if k+1 < len(matches) {
			end = matches[k+1][0]
		}
		description := collapseSpace(text[m[1]:end])

		periods, earliest, latest := ParseDateRanges(dates)

		entries = append(entries, model.FortRecord{
			NamePrimary:    name,
			DatesRaw:       parenthesize(dates),
			LocationText:   location,
			DescriptionRaw: truncateRunes(description, fallbackDescLimit),
			EntryRaw: fmt.Sprintf("%s (%s), %s - %s",
				name, dates, location, truncateRunes(description, fallbackRawLimit)),
			FortType:      DetectFortType(name, description),
			Nationalities: flagsNearName(pageHTML, name),
			Periods:       periods,
			EarliestYear:  earliest,
			LatestYear:    latest,
		})
	}

	return entries
}

func splitDateLocation(dateLoc string) (dates, location string) {
	if m := reDateLocation.FindStringSubmatch(dateLoc); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	}
	if m := reDateOnly.FindStringSubmatch(dateLoc); m != nil {
		return strings.TrimSpace(m[1]), ""
	}
	return "", ""
}

// flagsNearName scans a ±100 character window around the name's position in
// the raw markup for flag tokens.
func flagsNearName(pageHTML, name string) []string {
	idx := strings.Index(pageHTML, name)
	if idx < 0 {
		return nil
	}
	lo := idx - flagContextWindow
	if lo < 0 {
		lo = 0
	}
	hi := idx + flagContextWindow
	if hi > len(pageHTML) {
		hi = len(pageHTML)
	}
	return ExtractNationalities(pageHTML[lo:hi])
}

func altNamesFromBold(runs []string) []string {
	var names []string
	for _, run := range runs {
		name := strings.TrimSpace(run)
		if !isAltNameCandidate(name) || contains(names, name) {
			continue
		}
		names = append(names, name)
	}
	return names
}

func parenthesize(dates string) string {
	if dates == "" {
		return ""
	}
	return "(" + dates + ")"
}

func collapseSpace(s string) string {
	return strings.TrimSpace(reWhitespace.ReplaceAllString(s, " "))
}
