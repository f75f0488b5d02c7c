package discover

import "strings"

// stateNames maps the two-letter page prefix to the full state or
// territory name. Unknown codes fall back to the upper-cased code.
var stateNames = map[string]string{
	"al": "Alabama",
	"ct": "Connecticut",
	"dc": "District of Columbia",
	"de": "Delaware",
	"fl": "Florida",
	"ga": "Georgia",
	"il": "Illinois",
	"in": "Indiana",
	"ky": "Kentucky",
	"la": "Louisiana",
	"ma": "Massachusetts",
	"md": "Maryland",
	"me": "Maine",
	"mi": "Michigan",
	"ms": "Mississippi",
	"nc": "North Carolina",
	"nh": "New Hampshire",
	"nj": "New Jersey",
	"ny": "New York",
	"oh": "Ohio",
	"pa": "Pennsylvania",
	"pr": "Puerto Rico",
	"ri": "Rhode Island",
	"sc": "South Carolina",
	"tn": "Tennessee",
	"va": "Virginia",
	"vt": "Vermont",
	"wi": "Wisconsin",
	"wv": "West Virginia",
	"ak": "Alaska",
	"ar": "Arkansas",
	"as": "American Samoa",
	"az": "Arizona",
	"ca": "California",
	"co": "Colorado",
	"gu": "Guam",
	"hi": "Hawaii",
	"ia": "Iowa",
	"id": "Idaho",
	"ks": "Kansas",
	"mn": "Minnesota",
	"mo": "Missouri",
	"mt": "Montana",
	"nd": "North Dakota",
	"ne": "Nebraska",
	"nm": "New Mexico",
	"nv": "Nevada",
	"ok": "Oklahoma",
	"or": "Oregon",
	"sd": "South Dakota",
	"tx": "Texas",
	"ut": "Utah",
	"wa": "Washington",
	"wy": "Wyoming",
}

// StateName resolves a two-letter code to its full name.
func StateName(code string) string {
	if name, ok := stateNames[code]; ok {
		return name
	}
	return strings.ToUpper(code)
}
