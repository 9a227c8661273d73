// Package parsing turns raw resume and job description text into structured documents.
package parsing

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/resume-tailor/internal/types"
)

// knownSections lists lower-cased header names recognized without markdown
var knownSections = map[string]bool{
	"summary":                  true,
	"professional summary":     true,
	"profile":                  true,
	"objective":                true,
	"experience":               true,
	"work experience":          true,
	"professional experience":  true,
	"employment":               true,
	"employment history":       true,
	"skills":                   true,
	"technical skills":         true,
	"core competencies":        true,
	"education":                true,
	"certifications":           true,
	"projects":                 true,
	"publications":             true,
	"awards":                   true,
	"contact":                  true,
	"references":               true,
	"requirements":             true,
	"qualifications":           true,
	"minimum qualifications":   true,
	"basic qualifications":     true,
	"preferred qualifications": true,
	"responsibilities":         true,
	"key responsibilities":     true,
	"what you'll do":           true,
	"what we're looking for":   true,
	"about":                    true,
	"about us":                 true,
	"about the role":           true,
	"must have":                true,
	"nice to have":             true,
	"benefits":                 true,
}

var (
	markdownHeader = regexp.MustCompile(`^#{1,6}\s+(.+?)\s*#*$`)
	bulletMarker   = regexp.MustCompile(`^(?:[-*•·▪‣]|\d{1,2}[.)])\s+`)
	terminator     = regexp.MustCompile(`[.!?]+(?:\s+|$)`)
)

// maxHeaderWords bounds the length of a plain-text header line
const maxHeaderWords = 5

// Normalize splits raw text into sections, sentences and tokens.
// A maxLength of zero or less disables the length check.
func Normalize(raw string, maxLength int) (*types.Document, error) {
	if maxLength > 0 {
		if n := utf8.RuneCountInString(raw); n > maxLength {
			return nil, &InputTooLargeError{Length: n, Limit: maxLength}
		}
	}

	b := &builder{}
	text := strings.ReplaceAll(raw, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			b.endSentence()
			continue
		}
		if title, ok := HeaderTitle(trimmed); ok {
			b.startSection(title)
			continue
		}
		if loc := bulletMarker.FindStringIndex(trimmed); loc != nil {
			b.endSentence()
			trimmed = trimmed[loc[1]:]
		}
		b.addLine(trimmed)
	}

	return b.finish(), nil
}

// HeaderTitle reports whether line is a section header and returns its title
func HeaderTitle(line string) (string, bool) {
	line = strings.TrimSpace(line)
	if m := markdownHeader.FindStringSubmatch(line); m != nil {
		title := strings.TrimSpace(strings.TrimSuffix(m[1], ":"))
		if title != "" {
			return title, true
		}
		return "", false
	}

	title := strings.TrimSpace(strings.TrimSuffix(line, ":"))
	title = strings.TrimSpace(strings.Trim(title, "*_"))
	if title == "" || len(strings.Fields(title)) > maxHeaderWords {
		return "", false
	}
	if strings.ContainsAny(title[len(title)-1:], ".!?,;") {
		return "", false
	}
	if knownSections[strings.ToLower(title)] {
		return title, true
	}
	if isAllCaps(title) && (strings.HasSuffix(line, ":") || hasHeaderWord(title)) {
		return title, true
	}
	return "", false
}

// headerWords are words of known section names plus common header nouns.
// Shouted lines without one, like "AWS GCP", are skill lists.
var headerWords = func() map[string]bool {
	m := map[string]bool{
		"history": true, "work": true, "languages": true, "tools": true,
		"volunteer": true, "interests": true, "leadership": true,
		"achievements": true, "courses": true, "training": true,
	}
	for name := range knownSections {
		for _, w := range strings.Fields(name) {
			if len(w) >= 4 {
				m[w] = true
			}
		}
	}
	return m
}()

func hasHeaderWord(title string) bool {
	for _, w := range strings.Fields(strings.ToLower(title)) {
		if headerWords[strings.Trim(w, "&/-")] {
			return true
		}
	}
	return false
}

// isAllCaps matches short shouted headers like "WORK HISTORY" but not
// acronym lists like "AWS, GCP"
func isAllCaps(s string) bool {
	if strings.ContainsAny(s, ",;|") {
		return false
	}
	letters := 0
	for _, r := range s {
		switch {
		case unicode.IsLower(r), unicode.IsDigit(r):
			return false
		case unicode.IsUpper(r):
			letters++
		}
	}
	return letters >= 4
}

// builder accumulates sections while lines are scanned
type builder struct {
	sections []types.Section
	current  []types.Token
	position int
	headers  bool
}

func (b *builder) startSection(title string) {
	b.endSentence()
	heading := Tokenize(title, b.position)
	b.position += len(heading)
	b.sections = append(b.sections, types.Section{Title: title, Heading: heading})
	b.headers = true
}

func (b *builder) addLine(line string) {
	for len(line) > 0 {
		loc := terminator.FindStringIndex(line)
		if loc == nil {
			b.addTokens(line)
			return
		}
		b.addTokens(line[:loc[1]])
		b.endSentence()
		line = line[loc[1]:]
	}
}

func (b *builder) addTokens(fragment string) {
	tokens := Tokenize(fragment, b.position)
	b.position += len(tokens)
	b.current = append(b.current, tokens...)
}

func (b *builder) endSentence() {
	if len(b.current) == 0 {
		return
	}
	if len(b.sections) == 0 {
		b.sections = append(b.sections, types.Section{Title: types.SectionPreamble})
	}
	last := &b.sections[len(b.sections)-1]
	last.Sentences = append(last.Sentences, types.Sentence{Tokens: b.current})
	b.current = nil
}

func (b *builder) finish() *types.Document {
	b.endSentence()
	if !b.headers {
		if len(b.sections) == 0 {
			b.sections = []types.Section{{Title: types.SectionBody}}
		}
		b.sections[0].Title = types.SectionBody
	}
	return &types.Document{Sections: b.sections}
}
