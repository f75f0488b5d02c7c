package parse

import "testing"

func TestDetectFortType(t *testing.T) {
	cases := []struct {
		name, description, want string
	}{
		{"Battery Wagner", "An earthwork battery on Morris Island.", "battery"},
		{"Fort Blockhouse", "", "blockhouse"}, // specific beats the generic "fort"
		{"Camp Douglas", "Training camp for Union recruits.", "camp"},
		{"Fort Sumter", "Masonry sea fort in Charleston harbor.", "fort"},
		{"Old Stone House", "Fortified trading post on the river.", "trading post"},
		{"San Felipe", "Presidio with a powder magazine.", "powder house"},
		{"Unknown Site", "A place with no classifiable words.", "fort"}, // default
		{"", "", "fort"},
	}

	for _, c := range cases {
		if got := DetectFortType(c.name, c.description); got != c.want {
			t.Errorf("DetectFortType(%q, %q) = %q, want %q", c.name, c.description, got, c.want)
		}
	}
}

func TestDetectFortType_CampaignIsNotCamp(t *testing.T) {
	// The keyword is "camp " with a trailing space precisely so that
	// "campaign" does not classify as a camp.
	if got := DetectFortType("River Post", "Site of an 1814 military campaign."); got == "camp" {
		t.Errorf("campaign misclassified as camp")
	}
}

func TestDetectFortType_OrderIsStable(t *testing.T) {
	// battery outranks every later keyword, including "fort".
	if got := DetectFortType("Fort Moultrie", "Shore battery emplacement."); got != "battery" {
		t.Errorf("expected battery to win, got %q", got)
	}
}
