package rank

import (
	"math"
	"reflect"
	"testing"
)

// ─── Best ───────────────────────────────────────────────────────────────────

func TestBest_IdenticalEntryScoresOne(t *testing.T) {
	corpus := []string{"the cat sat", "the dog ran"}

	m, ok := Best("the cat sat", corpus)
	if !ok {
		t.Fatal("Best() ok = false, want a match")
	}
	if m.Content != "the cat sat" {
		t.Errorf("Content = %q, want %q", m.Content, "the cat sat")
	}
	if m.Index != 0 {
		t.Errorf("Index = %d, want 0", m.Index)
	}
	if math.Abs(m.Score-1.0) > 1e-9 {
		t.Errorf("Score = %v, want 1.0", m.Score)
	}
}

func TestBest_EmptyCorpus(t *testing.T) {
	if _, ok := Best("anything", nil); ok {
		t.Error("Best() ok = true for empty corpus, want false")
	}
	if _, ok := Best("anything", []string{}); ok {
		t.Error("Best() ok = true for empty corpus, want false")
	}
}

func TestBest_NoSharedTerms(t *testing.T) {
	corpus := []string{"completely unrelated text"}

	if m, ok := Best("quantum flux capacitor", corpus); ok {
		t.Errorf("Best() = %+v, want no match for disjoint vocabularies", m)
	}
}

func TestBest_WeakOverlapBelowThreshold(t *testing.T) {
	// One shared term among many distinct ones stays well under 0.2.
	corpus := []string{"alpha beta gamma delta epsilon zeta"}

	if m, ok := Best("alpha omega sigma tau upsilon phi", corpus); ok {
		t.Errorf("Best() = %+v, want no match below threshold", m)
	}
}

func TestBest_TieBreaksToEarliestPosition(t *testing.T) {
	corpus := []string{"paris is in france", "paris is in france", "berlin is in germany"}

	m, ok := Best("paris is in france", corpus)
	if !ok {
		t.Fatal("Best() ok = false, want a match")
	}
	if m.Index != 0 {
		t.Errorf("Index = %d, want 0 (earliest of the tied entries)", m.Index)
	}
}

func TestBest_Deterministic(t *testing.T) {
	corpus := []string{
		"go routines communicate by sharing channels",
		"the scheduler multiplexes goroutines onto threads",
		"channels synchronize concurrent goroutines",
	}
	query := "how do goroutines use channels"

	first, ok1 := Best(query, corpus)
	second, ok2 := Best(query, corpus)
	if ok1 != ok2 || first != second {
		t.Errorf("Best() not deterministic: %+v/%v vs %+v/%v", first, ok1, second, ok2)
	}
}

func TestBest_QueryOnlyTermsAreDefined(t *testing.T) {
	// Terms absent from every memory must still produce defined weights,
	// not NaN scores.
	corpus := []string{"paris is the capital of france"}

	m, ok := Best("unrelated words plus capital of france", corpus)
	if !ok {
		t.Fatalf("Best() ok = false, want a match (shared terms: capital, of, france)")
	}
	if math.IsNaN(m.Score) {
		t.Fatal("Score is NaN")
	}
	if m.Score <= Threshold || m.Score >= 1.0 {
		t.Errorf("Score = %v, want in (%v, 1.0)", m.Score, Threshold)
	}
}

func TestBest_NoTokenQuery(t *testing.T) {
	corpus := []string{"some stored memory"}

	// "a b c" tokenizes to nothing (single-char tokens dropped), which
	// must score 0 everywhere and miss, not panic.
	for _, query := range []string{"", "a b c", "! ? ."} {
		if m, ok := Best(query, corpus); ok {
			t.Errorf("Best(%q) = %+v, want no match", query, m)
		}
	}
}

func TestBest_PrefersStrongerOverlap(t *testing.T) {
	corpus := []string{
		"the eiffel tower is in paris",
		"rust and go are systems languages",
		"paris is the capital of france",
	}

	m, ok := Best("what is the capital of france", corpus)
	if !ok {
		t.Fatal("Best() ok = false, want a match")
	}
	if m.Index != 2 {
		t.Errorf("Index = %d (%q), want 2", m.Index, m.Content)
	}
}

// ─── tokenize ───────────────────────────────────────────────────────────────

func TestTokenize(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"The Cat Sat", []string{"the", "cat", "sat"}},
		{"a b c", nil},
		{"", nil},
		{"don't panic", []string{"don", "panic"}},
		{"HTTP/2 requests", []string{"http", "requests"}},
		{"snake_case stays", []string{"snake_case", "stays"}},
	}
	for _, tt := range tests {
		got := tokenize(tt.in)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("tokenize(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

// ─── TF-IDF internals ───────────────────────────────────────────────────────

func TestInverseDocumentFrequencies_Smoothed(t *testing.T) {
	docs := [][]string{
		{"the", "cat"},
		{"the", "dog"},
	}
	vocab := vocabulary(docs)
	idf := inverseDocumentFrequencies(docs, vocab)

	// "the" appears in both documents: idf = ln(3/3) + 1 = 1.
	if got := idf[vocab["the"]]; math.Abs(got-1.0) > 1e-12 {
		t.Errorf("idf(the) = %v, want 1.0", got)
	}
	// "cat" appears in one: idf = ln(3/2) + 1.
	want := math.Log(1.5) + 1
	if got := idf[vocab["cat"]]; math.Abs(got-want) > 1e-12 {
		t.Errorf("idf(cat) = %v, want %v", got, want)
	}
	// Every weight is positive; the smoothing leaves no zero or
	// undefined entries.
	for term, idx := range vocab {
		if idf[idx] < 1 {
			t.Errorf("idf(%s) = %v, want >= 1", term, idf[idx])
		}
	}
}

func TestVectorize_Normalized(t *testing.T) {
	docs := [][]string{{"cat", "cat", "dog"}}
	vocab := vocabulary(docs)
	idf := inverseDocumentFrequencies(docs, vocab)

	vec := vectorize(docs[0], vocab, idf)
	var norm float64
	for _, w := range vec {
		norm += w * w
	}
	if math.Abs(norm-1.0) > 1e-9 {
		t.Errorf("|vec|^2 = %v, want 1.0", norm)
	}

	// Repeated terms weigh more than single ones at equal IDF.
	if vec[vocab["cat"]] <= vec[vocab["dog"]] {
		t.Errorf("weight(cat) = %v, want > weight(dog) = %v", vec[vocab["cat"]], vec[vocab["dog"]])
	}
}

func TestVectorize_EmptyDocumentIsZeroVector(t *testing.T) {
	docs := [][]string{{"cat"}, nil}
	vocab := vocabulary(docs)
	idf := inverseDocumentFrequencies(docs, vocab)

	vec := vectorize(nil, vocab, idf)
	for i, w := range vec {
		if w != 0 {
			t.Errorf("vec[%d] = %v, want 0", i, w)
		}
	}
}
