package skills

var stopWords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"a", "about", "above", "after", "again", "against", "all", "also", "am", "an", "and", "any",
		"are", "as", "at", "be", "because", "been", "before", "being", "below", "between", "both",
		"but", "by", "can", "could", "did", "do", "does", "doing", "down", "during", "each", "etc",
		"few", "for", "from", "further", "had", "has", "have", "having", "he", "her", "here", "hers",
		"him", "his", "how", "i", "if", "in", "into", "is", "it", "its", "just", "least", "like",
		"may", "me", "more", "most", "must", "my", "no", "nor", "not", "of", "off", "on", "once",
		"only", "or", "other", "our", "ours", "out", "over", "own", "per", "same", "she", "should",
		"so", "some", "such", "than", "that", "the", "their", "them", "then", "there", "these",
		"they", "this", "those", "through", "to", "too", "under", "until", "up", "us", "using",
		"very", "via", "was", "we", "well", "were", "what", "when", "where", "which", "while",
		"who", "whom", "why", "will", "with", "within", "would", "you", "your", "yours",
	} {
		stopWords[w] = struct{}{}
	}
}

func isStopWord(w string) bool {
	_, ok := stopWords[w]
	return ok
}
