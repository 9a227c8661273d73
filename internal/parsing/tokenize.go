package parsing

import (
	"strings"
	"unicode"

	"github.com/jonathan/resume-tailor/internal/types"
	"github.com/kljensen/snowball/english"
)

// aliases folds common technology name variants to one canonical spelling
var aliases = map[string]string{
	"golang":   "go",
	"js":       "javascript",
	"ts":       "typescript",
	"k8s":      "kubernetes",
	"react.js": "react",
	"reactjs":  "react",
	"vue.js":   "vue",
	"vuejs":    "vue",
	"nodejs":   "node.js",
	"node":     "node.js",
	"postgres": "postgresql",
	"psql":     "postgresql",
	"mongo":    "mongodb",
	"py":       "python",
	"ci":       "ci/cd",
	"cicd":     "ci/cd",
	"nextjs":   "next.js",
	"dotnet":   ".net",
}

// isInner reports whether r may appear inside a token between two word characters
func isInner(r rune) bool {
	switch r {
	case '.', '-', '\'', '/', '’':
		return true
	}
	return false
}

func isWord(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Tokenize splits text into tokens. Positions start at offset.
func Tokenize(text string, offset int) []types.Token {
	runes := []rune(text)
	var tokens []types.Token

	for i := 0; i < len(runes); {
		if !isWord(runes[i]) {
			i++
			continue
		}
		start := i
		for i < len(runes) {
			if isWord(runes[i]) {
				i++
				continue
			}
			if isInner(runes[i]) && i+1 < len(runes) && isWord(runes[i+1]) {
				i++
				continue
			}
			break
		}
		for i < len(runes) && (runes[i] == '+' || runes[i] == '#') {
			i++
		}

		surface := string(runes[start:i])
		norm, stem := Canonicalize(surface)
		tokens = append(tokens, types.Token{
			Text:     surface,
			Norm:     norm,
			Stem:     stem,
			Position: offset + len(tokens),
		})
	}

	return tokens
}

// Canonicalize returns the alias-folded lower-case form of a word and its stem.
// Purely alphabetic words are stemmed with the English Snowball stemmer; words
// carrying digits or symbols (c++, node.js, ci/cd) are kept as-is.
func Canonicalize(word string) (norm, stem string) {
	norm = strings.ToLower(strings.TrimSpace(word))
	norm = strings.ReplaceAll(norm, "’", "'")
	if alias, ok := aliases[norm]; ok {
		norm = alias
	}
	if isAlphabetic(norm) {
		return norm, english.Stem(norm, false)
	}
	return norm, norm
}

// StemPhrase returns the space-joined stems of every token in phrase
func StemPhrase(phrase string) string {
	tokens := Tokenize(phrase, 0)
	stems := make([]string, len(tokens))
	for i, tok := range tokens {
		stems[i] = tok.Stem
	}
	return strings.Join(stems, " ")
}

func isAlphabetic(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
