package model

import "testing"

func TestFlatten(t *testing.T) {
	start, end := 1776, 1783
	rec := FortRecord{
		NamePrimary:   "Fort Independence",
		DatesRaw:      "(1776 - 1783)",
		LocationText:  "Castle Island",
		EntryRaw:      "Fort Independence (1776 - 1783), Castle Island - A star fort.",
		FortType:      "fort",
		AltNames:      []string{"Castle William", "Fort Adams"},
		Nationalities: []string{"Great Britain", "United States"},
		Periods:       []Period{{StartYear: &start, EndYear: &end, Order: 0}},
		EarliestYear:  &start,
		LatestYear:    &end,
	}

	flat := rec.Flatten("ma", "Massachusetts", "https://example.com/east/ma.html", "East")

	if flat.StateTerritory != "MA" {
		t.Errorf("state code should be upper-cased, got %q", flat.StateTerritory)
	}
	if flat.AltNames != "Castle William|Fort Adams" {
		t.Errorf("alt names join: got %q", flat.AltNames)
	}
	if flat.Nationality != "Great Britain|United States" {
		t.Errorf("nationality join: got %q", flat.Nationality)
	}
	if flat.SourceSection != "East" || flat.SourceURL != "https://example.com/east/ma.html" {
		t.Errorf("source context not carried: %+v", flat)
	}
	if len(flat.Periods) != 1 || flat.Periods[0].Order != 0 {
		t.Errorf("periods must ride along for child-row insertion: %+v", flat.Periods)
	}
}

func TestFlatten_DefaultsType(t *testing.T) {
	rec := FortRecord{NamePrimary: "Unknown Site", EntryRaw: "Unknown Site"}
	if flat := rec.Flatten("tx", "Texas", "u", "West"); flat.FortType != "fort" {
		t.Errorf("expected default type fort, got %q", flat.FortType)
	}
}
