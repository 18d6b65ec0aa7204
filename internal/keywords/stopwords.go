// Marquee - Media Keyword Extraction and Categorization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package keywords

import "strings"

var stopWords = makeSet(
	// media domain
	"movie", "film", "show", "series", "episode", "season", "watch", "story",
	"character", "plot", "drama", "comedy", "action", "thriller", "horror",
	"romance", "adventure", "fantasy", "science", "fiction", "documentary",
	"animation", "family", "crime", "war", "western", "musical",
	"biographical", "historical", "based", "true", "events", "follows",
	"tells", "about", "when", "after", "before", "during",

	// english
	"the", "a", "an", "and", "or", "but", "in", "on", "at", "to", "for",
	"of", "with", "by", "from", "up", "into", "through",
	"above", "below", "between", "among", "under", "over",
	"is", "are", "was", "were", "be", "been", "being", "have", "has", "had",
	"do", "does", "did", "will", "would", "could", "should", "may", "might",
	"must", "can", "this", "that", "these", "those", "i", "you", "he", "she",
	"it", "we", "they", "me", "him", "her", "us", "them", "my", "your", "his",
	"its", "our", "their", "what", "which", "who", "where", "why", "how",
	"very", "more", "most", "other", "some", "time", "now", "then", "than",
	"only", "just", "first", "also", "new", "old", "good", "great", "way",
	"make", "get", "go", "come", "take", "see", "know", "think", "look",
	"want", "give", "use", "find", "work", "call", "try", "ask", "need",
	"seem", "feel", "become", "leave", "put", "mean", "keep", "let", "begin",
	"help", "talk", "turn", "start", "hear", "play", "run",
	"move", "live", "believe", "bring", "happen", "write", "provide", "sit",
	"stand", "lose", "pay", "meet", "include", "continue", "set", "learn",
)

func makeSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// InStopList reports whether token is one of the listed stop words.
func InStopList(token string) bool {
	_, ok := stopWords[strings.ToLower(token)]
	return ok
}

// IsStopWord reports whether token delimits phrases: a listed stop word,
// anything of two characters or fewer, or a token made only of digits.
func IsStopWord(token string) bool {
	return len(token) <= 2 || isDigits(token) || InStopList(token)
}

// IsContentWord is the complement of IsStopWord.
func IsContentWord(token string) bool {
	return !IsStopWord(token)
}

// StopWordCount returns the size of the fixed stop list.
func StopWordCount() int {
	return len(stopWords)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
