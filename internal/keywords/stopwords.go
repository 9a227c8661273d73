package keywords

// stopwords are never allowed at either edge of a candidate phrase
var stopwords = func() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for", "to", "of", "in", "on", "at",
		"by", "with", "as", "is", "are", "was", "were", "be", "been", "being", "it", "its", "this", "that",
		"these", "those", "from", "up", "down", "over", "under", "again", "further", "than", "so", "such",
		"into", "about", "between", "through", "during", "before", "after", "above", "below", "out", "off",
		"own", "same", "too", "very", "can", "will", "just", "don", "should", "now", "not", "no", "nor",
		"i", "me", "my", "we", "us", "our", "ours", "you", "your", "yours", "they", "them", "their", "he",
		"she", "his", "her", "who", "whom", "which", "what", "when", "where", "why", "how", "all", "any",
		"both", "each", "few", "more", "most", "other", "some", "only", "also", "has", "have", "had",
		"do", "does", "did", "would", "could", "may", "might", "must", "shall", "etc", "e.g", "i.e",
		"per", "via", "within", "across", "including", "like", "well", "new", "able", "ability", "strong",
		"plus", "preferred", "required", "looking", "join", "work", "role", "job", "team", "get", "set",
		"use", "using", "used", "there", "here", "while", "because", "until", "whether", "one", "every",
		"you'll", "we're", "we'll", "you're", "it's", "don't",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}()

// IsStopword reports whether a lower-cased word is a stopword
func IsStopword(word string) bool {
	_, ok := stopwords[word]
	return ok
}
