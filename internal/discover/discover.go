package discover

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/net/html"

	"github.com/ajmayo/fortscan/internal/model"
)

// Fetcher is the page-retrieval dependency; satisfied by the pipeline
// fetcher.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (body string, fromCache bool, err error)
}

// Discoverer finds the state pages linked from each section index.
type Discoverer struct {
	fetcher Fetcher
	baseURL string
}

func New(fetcher Fetcher, baseURL string) *Discoverer {
	return &Discoverer{
		fetcher: fetcher,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

var reStateCode = regexp.MustCompile(`^([a-z]{2})`)

// DiscoverSection returns the state pages linked from one section index,
// sorted by URL. State pages are two-letter html files, optionally with
// a region or number suffix (ca-central.html, ak2.html, mosouth.html).
func (d *Discoverer) DiscoverSection(ctx context.Context, section string) ([]model.PageInfo, error) {
	sectionURL := fmt.Sprintf("%s/%s/", d.baseURL, section)
	body, _, err := d.fetcher.Fetch(ctx, sectionURL)
	if err != nil {
		return nil, fmt.Errorf("fetch section index %s: %w", sectionURL, err)
	}

	base, err := url.Parse(sectionURL)
	if err != nil {
		return nil, fmt.Errorf("parse section URL: %w", err)
	}

	rePage := regexp.MustCompile(
		`(?i)^(?:/` + regexp.QuoteMeta(section) + `/)?([a-z]{2}-?[a-z0-9]*)\.html$`)

	seen := map[string]bool{}
	for _, href := range hrefs(body) {
		if !rePage.MatchString(href) {
			continue
		}
		ref, err := url.Parse(href)
		if err != nil {
			continue
		}
		seen[base.ResolveReference(ref).String()] = true
	}

	urls := make([]string, 0, len(seen))
	for u := range seen {
		urls = append(urls, u)
	}
	sort.Strings(urls)

	pages := make([]model.PageInfo, 0, len(urls))
	for _, u := range urls {
		filename := strings.TrimSuffix(u[strings.LastIndex(u, "/")+1:], ".html")
		code := filename
		if m := reStateCode.FindString(strings.ToLower(filename)); m != "" {
			code = m
		}
		pages = append(pages, model.PageInfo{
			URL:       u,
			Section:   section,
			Filename:  filename,
			StateCode: code,
			StateName: StateName(code),
		})
	}
	return pages, nil
}

// DiscoverAll walks every configured section.
func (d *Discoverer) DiscoverAll(ctx context.Context, sections []string) ([]model.PageInfo, error) {
	var all []model.PageInfo
	for _, section := range sections {
		pages, err := d.DiscoverSection(ctx, section)
		if err != nil {
			return nil, err
		}
		all = append(all, pages...)
	}
	return all, nil
}

// hrefs extracts every anchor href from the markup. The site's pages
// predate well-formed HTML, so this tolerates unclosed tags.
func hrefs(src string) []string {
	var out []string
	z := html.NewTokenizer(strings.NewReader(src))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return out
		}
		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			continue
		}
		name, hasAttr := z.TagName()
		if string(name) != "a" || !hasAttr {
			continue
		}
		for {
			key, val, more := z.TagAttr()
			if string(key) == "href" {
				out = append(out, string(val))
			}
			if !more {
				break
			}
		}
	}
}

// WritePages saves discovered pages as JSON for later runs.
func WritePages(pages []model.PageInfo, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	data, err := json.MarshalIndent(pages, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal pages: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write pages file: %w", err)
	}
	return nil
}

// ReadPages loads a previously saved discovery file.
func ReadPages(path string) ([]model.PageInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var pages []model.PageInfo
	if err := json.Unmarshal(data, &pages); err != nil {
		return nil, fmt.Errorf("parse pages file: %w", err)
	}
	return pages, nil
}
