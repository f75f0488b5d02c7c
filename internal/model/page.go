package model

// PageInfo describes one discovered state page to scrape.
type PageInfo struct {
	URL       string `json:"url"`
	Section   string `json:"section"`  // e.g. "East", "West"
	Filename  string `json:"filename"` // e.g. "ca-central"
	StateCode string `json:"state_code"`
	StateName string `json:"state_name"`
}

// PageResult is the outcome of scraping a single page.
type PageResult struct {
	Page       PageInfo
	FortsFound int
	Skipped    bool
	Err        error
}
