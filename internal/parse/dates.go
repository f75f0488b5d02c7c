package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ajmayo/fortscan/internal/model"
)

// Date segment classifiers, evaluated in order. Later rules exist to catch
// what earlier ones miss, so the order is load-bearing.
var (
	reYearRange = regexp.MustCompile(`^(\d{4})\s*[-–]\s*(\d{4})`)
	reOpenRange = regexp.MustCompile(`(?i)^(\d{4})\s*[-–]\s*unknown`)
	reSlashYear = regexp.MustCompile(`^(\d{4})/(\d{4})`)
	reSingle    = regexp.MustCompile(`^(\d{4})`)
	reCirca     = regexp.MustCompile(`(?i)^c(?:a)?\.?\s*(\d{4})`)
	reCentury   = regexp.MustCompile(`(?i)^(\d+)(?:st|nd|rd|th)\s+century`)
)

// ParseDateRanges converts a free-text date expression into an ordered list
// of periods plus the earliest and latest year seen across all of them.
//
//	"(1675)"                      -> one period starting 1675, end unknown
//	"(1864 - 1871)"               -> one closed period
//	"(1775, 1811 - 1814)"         -> two periods, in source order
//	"(1845/1854)"                 -> ambiguous: start unknown, end 1854, both kept in notes
//	"(18th century)"              -> 1700..1799
//
// Segments that match no rule become note-only periods; they are never
// dropped. Both year bounds are nil when nothing numeric was found.
func ParseDateRanges(raw string) ([]model.Period, *int, *int) {
	cleaned := strings.Trim(raw, "() ")
	if cleaned == "" {
		return nil, nil, nil
	}

	var periods []model.Period
	var years []int

	for _, part := range strings.Split(cleaned, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		p := model.Period{Order: len(periods)}

		if m := reYearRange.FindStringSubmatch(part); m != nil {
			start, end := atoi(m[1]), atoi(m[2])
			p.StartYear = &start
			p.EndYear = &end
			years = append(years, start, end)
			periods = append(periods, p)
			continue
		}

		if m := reOpenRange.FindStringSubmatch(part); m != nil {
			start := atoi(m[1])
			p.StartYear = &start
			// EndYear stays nil: explicitly open-ended
			years = append(years, start)
			periods = append(periods, p)
			continue
		}

		if m := reSlashYear.FindStringSubmatch(part); m != nil {
			// Either year could be the right one. Keep the later year as the
			// end, leave the start unknown, and record both candidates. The
			// source intent is not recoverable, so no guessing here.
			y1, y2 := atoi(m[1]), atoi(m[2])
			p.EndYear = &y2
			p.Notes = fmt.Sprintf("Ambiguous: %d/%d", y1, y2)
			years = append(years, y1, y2)
			periods = append(periods, p)
			continue
		}

		if m := reSingle.FindStringSubmatch(part); m != nil {
			start := atoi(m[1])
			p.StartYear = &start
			years = append(years, start)
			periods = append(periods, p)
			continue
		}

		if m := reCirca.FindStringSubmatch(part); m != nil {
			start := atoi(m[1])
			p.StartYear = &start
			p.Notes = "Approximate date"
			years = append(years, start)
			periods = append(periods, p)
			continue
		}

		if m := reCentury.FindStringSubmatch(part); m != nil {
			century := atoi(m[1])
			start := (century - 1) * 100
			end := century*100 - 1
			p.StartYear = &start
			p.EndYear = &end
			p.Notes = fmt.Sprintf("%dth century", century)
			years = append(years, start, end)
			periods = append(periods, p)
			continue
		}

		p.Notes = "Unparsed: " + part
		periods = append(periods, p)
	}

	if len(years) == 0 {
		return periods, nil, nil
	}
	earliest, latest := years[0], years[0]
	for _, y := range years[1:] {
		if y < earliest {
			earliest = y
		}
		if y > latest {
			latest = y
		}
	}
	return periods, &earliest, &latest
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
