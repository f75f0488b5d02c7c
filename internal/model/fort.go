package model

import "strings"

// Period is one contiguous span of a fortification's occupation or activity.
// A nil EndYear means "unknown/not stated", never "ongoing".
type Period struct {
	StartYear *int   `json:"start_year"`
	EndYear   *int   `json:"end_year"`
	Notes     string `json:"period_notes,omitempty"` // free text for ambiguous/unparsed segments
	Order     int    `json:"period_order"`           // zero-based, matches source left-to-right order
}

// FortRecord is one structured fortification entry extracted from a page.
// Records are built once per entry and not mutated afterwards. Identity and
// deduplication by (name, state, source URL) belong to the store, not here.
type FortRecord struct {
	NamePrimary    string   `json:"name_primary"`
	DatesRaw       string   `json:"dates_raw,omitempty"` // verbatim parenthesized date string
	LocationText   string   `json:"location_text,omitempty"`
	DescriptionRaw string   `json:"description_raw,omitempty"`
	EntryRaw       string   `json:"entry_raw"` // untouched source text, kept for audit
	FortType       string   `json:"fort_type,omitempty"`
	AltNames       []string `json:"alt_names,omitempty"`     // ordered, de-duplicated
	Nationalities  []string `json:"nationalities,omitempty"` // ordered, de-duplicated
	Periods        []Period `json:"periods,omitempty"`
	EarliestYear   *int     `json:"earliest_year"`
	LatestYear     *int     `json:"latest_year"`
}

// FlatRecord is the persistence shape handed to the store: multi-valued
// fields joined into single strings, periods kept as child rows.
type FlatRecord struct {
	NamePrimary    string
	AltNames       string // pipe-joined
	StateTerritory string
	StateFullName  string
	LocationText   string
	FortType       string
	Nationality    string // pipe-joined
	DatesRaw       string
	EarliestYear   *int
	LatestYear     *int
	SourceURL      string
	SourceSection  string
	DescriptionRaw string
	EntryRaw       string
	Periods        []Period
}

// AltDelimiter joins multi-valued fields in the flattened shape.
const AltDelimiter = "|"

// Flatten adapts a record to the store's shape with page-level context.
func (f *FortRecord) Flatten(stateCode, stateName, sourceURL, section string) FlatRecord {
	fortType := f.FortType
	if fortType == "" {
		fortType = "fort"
	}
	return FlatRecord{
		NamePrimary:    f.NamePrimary,
		AltNames:       strings.Join(f.AltNames, AltDelimiter),
		StateTerritory: strings.ToUpper(stateCode),
		StateFullName:  stateName,
		LocationText:   f.LocationText,
		FortType:       fortType,
		Nationality:    strings.Join(f.Nationalities, AltDelimiter),
		DatesRaw:       f.DatesRaw,
		EarliestYear:   f.EarliestYear,
		LatestYear:     f.LatestYear,
		SourceURL:      sourceURL,
		SourceSection:  section,
		DescriptionRaw: f.DescriptionRaw,
		EntryRaw:       f.EntryRaw,
		Periods:        f.Periods,
	}
}
