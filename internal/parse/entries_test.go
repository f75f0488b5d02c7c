package parse

import (
	"strings"
	"testing"
)

// A page in the site's dominant layout: named anchors, flag images, an
// italic date/location block, then description text. Markup is deliberately
// old-school and unclosed, as on the real pages.
const structuredPage = `<HTML><BODY>
<FONT SIZE="4">Boston Harbor Defenses</FONT>
<P>
<A NAME="fortindependence">Fort Independence</A> <IMG SRC="britishflag.gif"> <IMG SRC="usaflag.gif"><BR>
<I>(1776 - 1783), Castle Island</I><BR>
A star-shaped work guarding the inner harbor. First known as <B>Castle William</B>.
<P>
<A NAME="fortwarren">Fort Warren</A> <IMG SRC="usaflag.gif">
<I>(1833 - 1947), Georges Island</I>
Granite work used as a prison during the Civil War.
</BODY></HTML>`

func TestExtractEntries_Structured(t *testing.T) {
	entries := ExtractEntries(structuredPage, "https://example.com/east/ma.html")

	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	first := entries[0]
	if first.NamePrimary != "Fort Independence" {
		t.Errorf("name: got %q", first.NamePrimary)
	}
	if first.DatesRaw != "(1776 - 1783)" {
		t.Errorf("dates: got %q", first.DatesRaw)
	}
	if first.LocationText != "Castle Island" {
		t.Errorf("location: got %q", first.LocationText)
	}
	if !strings.Contains(first.DescriptionRaw, "guarding the inner harbor") {
		t.Errorf("description: got %q", first.DescriptionRaw)
	}

	// Flag order from the markup is preserved.
	wantNations := []string{"Great Britain", "United States"}
	if len(first.Nationalities) != 2 || first.Nationalities[0] != wantNations[0] || first.Nationalities[1] != wantNations[1] {
		t.Errorf("nationalities: got %v, want %v", first.Nationalities, wantNations)
	}

	if len(first.AltNames) != 1 || first.AltNames[0] != "Castle William" {
		t.Errorf("alt names: got %v", first.AltNames)
	}

	if len(first.Periods) != 1 || *first.Periods[0].StartYear != 1776 || *first.Periods[0].EndYear != 1783 {
		t.Errorf("periods: got %+v", first.Periods)
	}
	if *first.EarliestYear != 1776 || *first.LatestYear != 1783 {
		t.Errorf("bounds: got %v/%v", first.EarliestYear, first.LatestYear)
	}

	second := entries[1]
	if second.NamePrimary != "Fort Warren" {
		t.Errorf("second name: got %q", second.NamePrimary)
	}
	if second.LocationText != "Georges Island" {
		t.Errorf("second location: got %q", second.LocationText)
	}
	if len(second.Nationalities) != 1 || second.Nationalities[0] != "United States" {
		t.Errorf("second nationalities: got %v", second.Nationalities)
	}
}

func TestExtractEntries_AnchorWithoutDates(t *testing.T) {
	// A named anchor with no italic block is a section marker, not an entry.
	page := `<P><A NAME="top">Connecticut Forts</A><P>
<A NAME="fortgriswold">Fort Griswold</A>
<I>(1775 - 1781), Groton</I>
Stormed by British forces in 1781.`

	entries := ExtractEntries(page, "")
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].NamePrimary != "Fort Griswold" {
		t.Errorf("got %q", entries[0].NamePrimary)
	}
}

func TestExtractEntries_FallbackFlattened(t *testing.T) {
	// No named anchors at all: the plain-text strategy takes over.
	page := `<html><body>
Fort Travis (1836), Galveston Island<br>
Built to guard the harbor entrance.<br>
Fort Bend (1822 - 1836), near Richmond?<br>
A blockhouse on the Brazos River.
</body></html>`

	entries := ExtractEntries(page, "")
	if len(entries) != 2 {
		t.Fatalf("expected 2 fallback entries, got %d", len(entries))
	}

	if entries[0].NamePrimary != "Fort Travis" {
		t.Errorf("first name: got %q", entries[0].NamePrimary)
	}
	if entries[0].LocationText != "Galveston Island" {
		t.Errorf("first location: got %q", entries[0].LocationText)
	}
	if !strings.Contains(entries[0].DescriptionRaw, "harbor entrance") {
		t.Errorf("first description: got %q", entries[0].DescriptionRaw)
	}

	// Uncertainty markers in locations pass through untouched: the
	// geocoding collaborator depends on seeing them.
	if entries[1].LocationText != "near Richmond?" {
		t.Errorf("uncertain location must survive verbatim, got %q", entries[1].LocationText)
	}
	if entries[1].FortType != "blockhouse" {
		t.Errorf("expected blockhouse, got %q", entries[1].FortType)
	}
	if *entries[1].EarliestYear != 1822 || *entries[1].LatestYear != 1836 {
		t.Errorf("second bounds: got %v/%v", entries[1].EarliestYear, entries[1].LatestYear)
	}
}

func TestExtractEntries_FallbackFlagWindow(t *testing.T) {
	// Flattening discards images, so fallback nationality comes from the
	// raw-HTML window around the name.
	page := `<html><body>
<img src="spanishflag.gif">Castillo de San Marcos (1672 - 1821), St. Augustine<br>
Coquina fortress, the oldest masonry fort in the country.
</body></html>`

	entries := ExtractEntries(page, "")
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if len(entries[0].Nationalities) != 1 || entries[0].Nationalities[0] != "Spain" {
		t.Errorf("expected Spain from the context window, got %v", entries[0].Nationalities)
	}
}

func TestExtractEntries_EmptyPage(t *testing.T) {
	// Nothing extractable is a normal outcome, not an error.
	for _, page := range []string{"", "<html><body></body></html>", "just some prose, no entries"} {
		if entries := ExtractEntries(page, ""); len(entries) != 0 {
			t.Errorf("expected no entries for %q, got %d", page, len(entries))
		}
	}
}

func TestExtractEntries_InvalidMarkup(t *testing.T) {
	// Broken tags must degrade, never panic or drop the parseable part.
	page := `<A NAME="fortx">Fort X</A><I>(1800), Somewhere</I> Desc <B>unclosed
<A NAME="forty">Fort Y</A><I>(1810)</I> Another.`

	entries := ExtractEntries(page, "")
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries from broken markup, got %d", len(entries))
	}
	if entries[1].NamePrimary != "Fort Y" {
		t.Errorf("got %q", entries[1].NamePrimary)
	}
	if entries[1].LocationText != "" {
		t.Errorf("date-only italic should leave location empty, got %q", entries[1].LocationText)
	}
}
