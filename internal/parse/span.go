package parse

import (
	"strings"

	"golang.org/x/net/html"
)

// spanKind tags one flattened slice of page markup.
type spanKind int

const (
	spanText      spanKind = iota
	spanAnchor             // named <a>; text is the inner text, attr the name attribute
	spanImage              // <img>; attr is the src
	spanItalic             // <i>/<em> run
	spanBold               // <b>/<strong> run
	spanLineBreak          // <br>
	spanDivider            // entry boundary: <p>, <hr>, headings, sized <font>
)

type span struct {
	kind spanKind
	text string
	attr string
}

// tokenize flattens raw markup into a sequence of tagged spans. The
// tokenizer never fails on broken markup, which matters here: these pages
// accumulated across authorship eras and frequently do not parse as valid
// HTML. A strict tree parse would lose entries; a flat token scan cannot.
func tokenize(src string) []span {
	z := html.NewTokenizer(strings.NewReader(src))
	var spans []span

	var capture *span // anchor/italic/bold currently accumulating inner text
	var captureTag string
	var skipTag string // inside script/style/noscript

	flushCapture := func() {
		if capture != nil {
			capture.text = strings.TrimSpace(capture.text)
			spans = append(spans, *capture)
			capture = nil
			captureTag = ""
		}
	}

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			// io.EOF or unrecoverable garbage; either way the scan is done
			flushCapture()
			return spans
		}

		switch tt {
		case html.TextToken:
			if skipTag != "" {
				continue
			}
			text := string(z.Text())
			if capture != nil {
				capture.text += text
			} else if strings.TrimSpace(text) != "" {
				spans = append(spans, span{kind: spanText, text: text})
			}

		case html.StartTagToken, html.SelfClosingTagToken:
			name, attrs := tagNameAndAttrs(z)
			if skipTag != "" {
				continue
			}
			switch name {
			case "script", "style", "noscript":
				if tt == html.StartTagToken {
					skipTag = name
				}
			case "a":
				flushCapture()
				if anchor := attrs["name"]; anchor != "" {
					capture = &span{kind: spanAnchor, attr: anchor}
					captureTag = "a"
				}
			case "img":
				flushCapture()
				spans = append(spans, span{kind: spanImage, attr: attrs["src"]})
			case "i", "em":
				flushCapture()
				capture = &span{kind: spanItalic}
				captureTag = name
			case "b", "strong":
				flushCapture()
				capture = &span{kind: spanBold}
				captureTag = name
			case "br":
				if capture == nil {
					spans = append(spans, span{kind: spanLineBreak})
				}
			case "p", "hr", "h1", "h2", "h3", "h4", "h5", "h6":
				flushCapture()
				spans = append(spans, span{kind: spanDivider})
			case "font":
				// A sized <font> opens a new section heading on these pages
				if _, ok := attrs["size"]; ok {
					flushCapture()
					spans = append(spans, span{kind: spanDivider})
				}
			}

		case html.EndTagToken:
			name, _ := tagNameAndAttrs(z)
			if skipTag != "" {
				if name == skipTag {
					skipTag = ""
				}
				continue
			}
			if capture != nil && name == captureTag {
				flushCapture()
			} else if name == "p" {
				flushCapture()
				spans = append(spans, span{kind: spanDivider})
			}
		}
	}
}

func tagNameAndAttrs(z *html.Tokenizer) (string, map[string]string) {
	name, hasAttr := z.TagName()
	attrs := map[string]string{}
	for hasAttr {
		var key, val []byte
		key, val, hasAttr = z.TagAttr()
		attrs[string(key)] = string(val)
	}
	return string(name), attrs
}

// flattenText reduces spans to plain text with one fragment per line,
// mirroring what a text-only rendering of the page would look like.
func flattenText(spans []span) string {
	var b strings.Builder
	for _, s := range spans {
		switch s.kind {
		case spanText, spanAnchor, spanItalic, spanBold:
			t := strings.TrimSpace(s.text)
			if t != "" {
				b.WriteString(t)
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}
