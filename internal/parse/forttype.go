package parse

import "strings"

// fortTypes is an ordered (label, keywords) table evaluated in sequence:
// the first keyword hit wins. Specific types come before the generic "camp"
// and "fort" catch-alls so that "Fort Blockhouse" classifies as blockhouse.
var fortTypes = []struct {
	label    string
	keywords []string
}{
	{"battery", []string{"battery", "batteries"}},
	{"redoubt", []string{"redoubt"}},
	{"blockhouse", []string{"blockhouse", "block house", "block-house"}},
	{"stockade", []string{"stockade", "palisade"}},
	{"camp", []string{"camp "}}, // trailing space avoids "campaign"
	{"cantonment", []string{"cantonment"}},
	{"barracks", []string{"barracks"}},
	{"arsenal", []string{"arsenal"}},
	{"trading post", []string{"trading post", "fur trading", "trading house"}},
	{"garrison", []string{"garrison house", "garrison"}},
	{"powder house", []string{"powder house", "magazine"}},
	{"fort", []string{"fort "}},
}

// DetectFortType classifies a fortification from its name and description.
// Total and deterministic: always returns exactly one label, "fort" when
// nothing matches.
func DetectFortType(name, description string) string {
	text := strings.ToLower(name + " " + description)
	for _, ft := range fortTypes {
		for _, kw := range ft.keywords {
			if strings.Contains(text, kw) {
				return ft.label
			}
		}
	}
	return "fort"
}
