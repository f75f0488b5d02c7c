package parse

import (
	"reflect"
	"testing"
)

func TestExtractNationalities_OrderAndDedupe(t *testing.T) {
	fragment := `<img src="britishflag.gif"> <img src="usaflag.gif"> <img src="britishflag.gif">`

	got := ExtractNationalities(fragment)
	want := []string{"Great Britain", "United States"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestExtractNationalities_VariantDigit(t *testing.T) {
	got := ExtractNationalities(`<img src="usaflag1.gif">`)
	if len(got) != 1 || got[0] != "United States (Colonial/Revolutionary)" {
		t.Errorf("got %v", got)
	}
}

func TestExtractNationalities_CaseInsensitive(t *testing.T) {
	got := ExtractNationalities(`<IMG SRC="FrenchFlag.GIF">`)
	if len(got) != 1 || got[0] != "France" {
		t.Errorf("got %v", got)
	}
}

func TestExtractNationalities_UnknownTokenIgnored(t *testing.T) {
	// The vocabulary is an allow-list; unknown flags are silently dropped.
	got := ExtractNationalities(`<img src="martianflag.gif"> <img src="dutchflag.gif">`)
	if len(got) != 1 || got[0] != "Netherlands" {
		t.Errorf("got %v", got)
	}
}

func TestExtractNationalities_Empty(t *testing.T) {
	if got := ExtractNationalities(`<img src="rose.gif"> no flags here`); len(got) != 0 {
		t.Errorf("got %v", got)
	}
}
