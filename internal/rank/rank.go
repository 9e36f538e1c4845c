// Package rank - lexical relevance scoring over stored memories.
//
// The ranker is the gate between local memory and online search: a query
// is answered locally only when its best-scoring memory strictly exceeds
// Threshold. Query and memories become TF-IDF weighted vectors over their
// combined vocabulary and are compared by cosine similarity. The query is
// vectorized as one additional document, so query terms that appear in no
// memory still receive defined weights.
package rank

import (
	"math"
	"regexp"
	"strings"
)

// Threshold is the minimum cosine similarity a memory must strictly
// exceed to count as a local answer. It is a fixed design constant:
// changing it changes which queries fall back to online search.
const Threshold = 0.2

// Match is the best-scoring corpus entry for a query.
type Match struct {
	Index   int     `json:"index"` // position in the corpus
	Content string  `json:"content"`
	Score   float64 `json:"score"` // cosine similarity in [0, 1]
}

// termPattern matches runs of two or more word characters.
// Single-character tokens carry no signal and are dropped.
var termPattern = regexp.MustCompile(`\w\w+`)

// Best returns the corpus entry most similar to the query, or ok=false
// when the corpus is empty or no entry clears Threshold. Ties are broken
// by earliest corpus position, and identical inputs always produce the
// identical match and score.
func Best(query string, corpus []string) (Match, bool) {
	if len(corpus) == 0 {
		return Match{}, false
	}

	docs := make([][]string, len(corpus)+1)
	for i, entry := range corpus {
		docs[i] = tokenize(entry)
	}
	docs[len(corpus)] = tokenize(query)

	vocab := vocabulary(docs)
	idf := inverseDocumentFrequencies(docs, vocab)
	queryVec := vectorize(docs[len(corpus)], vocab, idf)

	best := Match{Index: 0, Content: corpus[0], Score: -1}
	for i := range corpus {
		score := dot(queryVec, vectorize(docs[i], vocab, idf))
		if score > best.Score {
			best = Match{Index: i, Content: corpus[i], Score: score}
		}
	}

	if best.Score <= Threshold {
		return Match{}, false
	}
	return best, true
}

// tokenize lowercases text and splits it into word tokens.
func tokenize(text string) []string {
	return termPattern.FindAllString(strings.ToLower(text), -1)
}

// vocabulary assigns a stable index to every term, in first-appearance
// order across all documents.
func vocabulary(docs [][]string) map[string]int {
	vocab := make(map[string]int)
	for _, doc := range docs {
		for _, term := range doc {
			if _, ok := vocab[term]; !ok {
				vocab[term] = len(vocab)
			}
		}
	}
	return vocab
}

// inverseDocumentFrequencies computes smoothed IDF per vocabulary term:
// idf = ln((1+n)/(1+df)) + 1, with the query counted as a document. The
// smoothing keeps every weight positive and defined, even for terms that
// appear in a single document.
func inverseDocumentFrequencies(docs [][]string, vocab map[string]int) []float64 {
	df := make([]float64, len(vocab))
	seen := make([]bool, len(vocab))
	for _, doc := range docs {
		for i := range seen {
			seen[i] = false
		}
		for _, term := range doc {
			idx := vocab[term]
			if !seen[idx] {
				seen[idx] = true
				df[idx]++
			}
		}
	}

	n := float64(len(docs))
	idf := make([]float64, len(df))
	for i, count := range df {
		idf[i] = math.Log((1+n)/(1+count)) + 1
	}
	return idf
}

// vectorize builds the L2-normalized TF-IDF vector for one document.
// A document with no tokens yields the zero vector, which scores 0
// against everything.
func vectorize(tokens []string, vocab map[string]int, idf []float64) []float64 {
	vec := make([]float64, len(idf))
	for _, term := range tokens {
		vec[vocab[term]]++
	}

	var norm float64
	for i, tf := range vec {
		if tf == 0 {
			continue
		}
		w := tf * idf[i]
		vec[i] = w
		norm += w * w
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}

// dot is the cosine similarity of two L2-normalized vectors.
func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
