package ingestion

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const noiseSelector = "nav, footer, script, style, noscript, iframe, form, .cookie-banner, .advertisement, .sidebar"

var headingLevels = map[string]int{"h1": 1, "h2": 2, "h3": 3, "h4": 4, "h5": 5, "h6": 6}

var blockElements = map[string]bool{
	"p": true, "div": true, "section": true, "article": true, "main": true,
	"header": true, "ul": true, "ol": true, "table": true, "tr": true,
	"blockquote": true, "pre": true, "dl": true, "dt": true, "dd": true,
}

// HTMLToText converts an HTML document to markdown-flavoured text: headings
// become "#" lines, list items become "- " bullets, and block elements end
// their line.
func HTMLToText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}
	doc.Find(noiseSelector).Remove()

	root := doc.Find("body")
	if root.Length() == 0 {
		root = doc.Selection
	}

	var w textWriter
	root.Contents().Each(func(_ int, s *goquery.Selection) {
		w.walk(s)
	})
	return CleanText(w.String()), nil
}

// textWriter accumulates lines while walking the node tree
type textWriter struct {
	lines []string
	cur   strings.Builder
}

func (w *textWriter) walk(s *goquery.Selection) {
	name := goquery.NodeName(s)
	switch {
	case name == "#text":
		w.cur.WriteString(s.Text())
	case name == "br":
		w.flush()
	case headingLevels[name] > 0:
		w.flush()
		if text := strings.Join(strings.Fields(s.Text()), " "); text != "" {
			w.lines = append(w.lines, "", strings.Repeat("#", headingLevels[name])+" "+text)
		}
	case name == "li":
		w.flush()
		w.cur.WriteString("- ")
		w.children(s)
		w.flush()
	case blockElements[name]:
		w.flush()
		w.children(s)
		w.flush()
	default:
		w.children(s)
	}
}

func (w *textWriter) children(s *goquery.Selection) {
	s.Contents().Each(func(_ int, c *goquery.Selection) {
		w.walk(c)
	})
}

func (w *textWriter) flush() {
	line := strings.Join(strings.Fields(w.cur.String()), " ")
	w.cur.Reset()
	if line != "" && line != "-" {
		w.lines = append(w.lines, line)
	}
}

func (w *textWriter) String() string {
	w.flush()
	return strings.Join(w.lines, "\n")
}
