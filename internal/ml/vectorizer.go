// Package ml implements the statistical classification tier: a TF-IDF
// vectorizer feeding a multinomial logistic regression model.
package ml

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Vectorizer parameters. These match the calibration the service was
// tuned with and are not meant to be reconfigured per deployment.
const (
	ngramMin    = 1
	ngramMax    = 3
	minDocFreq  = 2
	maxFeatures = 10000
)

// tokenPattern extracts runs of two or more word characters.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// DocVector is a sparse TF-IDF document vector: parallel index/value
// slices with indices in increasing order.
type DocVector struct {
	Idx []int
	Val []float64
}

// Vectorizer converts text into L2-normalized TF-IDF vectors over a
// vocabulary of unigrams through trigrams. Immutable after fitting.
type Vectorizer struct {
	vocab map[string]int
	idf   []float64
}

// NumFeatures returns the fitted vocabulary size.
func (v *Vectorizer) NumFeatures() int {
	return len(v.idf)
}

// FitVectorizer learns a vocabulary from the corpus and returns the
// fitted vectorizer along with the transformed training vectors.
func FitVectorizer(docs []string) (*Vectorizer, []DocVector, error) {
	termsPerDoc := make([][]string, len(docs))
	df := make(map[string]int)
	corpusCount := make(map[string]float64)

	for i, doc := range docs {
		terms := extractTerms(doc)
		termsPerDoc[i] = terms
		inDoc := make(map[string]bool, len(terms))
		for _, t := range terms {
			corpusCount[t]++
			if !inDoc[t] {
				inDoc[t] = true
				df[t]++
			}
		}
	}

	// Prune rare terms first, then cap the vocabulary by corpus frequency.
	kept := make([]string, 0, len(df))
	for term, n := range df {
		if n >= minDocFreq {
			kept = append(kept, term)
		}
	}
	if len(kept) == 0 {
		return nil, nil, fmt.Errorf("vectorizer: empty vocabulary after pruning (corpus too small or uniform)")
	}
	if len(kept) > maxFeatures {
		sort.Slice(kept, func(i, j int) bool {
			if corpusCount[kept[i]] != corpusCount[kept[j]] {
				return corpusCount[kept[i]] > corpusCount[kept[j]]
			}
			return kept[i] < kept[j]
		})
		kept = kept[:maxFeatures]
	}
	sort.Strings(kept)

	v := &Vectorizer{
		vocab: make(map[string]int, len(kept)),
		idf:   make([]float64, len(kept)),
	}
	n := float64(len(docs))
	for i, term := range kept {
		v.vocab[term] = i
		// Smoothed IDF keeps unseen-document terms finite.
		v.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	vectors := make([]DocVector, len(docs))
	for i, terms := range termsPerDoc {
		vectors[i] = v.vectorize(terms)
	}
	return v, vectors, nil
}

// Transform converts a single document into its TF-IDF vector using the
// fitted vocabulary. Unknown terms are ignored; the result may be empty.
func (v *Vectorizer) Transform(doc string) DocVector {
	return v.vectorize(extractTerms(doc))
}

func (v *Vectorizer) vectorize(terms []string) DocVector {
	counts := make(map[int]float64)
	for _, t := range terms {
		if i, ok := v.vocab[t]; ok {
			counts[i]++
		}
	}
	vec := DocVector{
		Idx: make([]int, 0, len(counts)),
		Val: make([]float64, 0, len(counts)),
	}
	for i := range counts {
		vec.Idx = append(vec.Idx, i)
	}
	sort.Ints(vec.Idx)

	var sumSq float64
	for _, i := range vec.Idx {
		w := counts[i] * v.idf[i]
		vec.Val = append(vec.Val, w)
		sumSq += w * w
	}
	if sumSq > 0 {
		norm := math.Sqrt(sumSq)
		for i := range vec.Val {
			vec.Val[i] /= norm
		}
	}
	return vec
}

// extractTerms tokenizes a document and expands tokens into n-grams.
func extractTerms(doc string) []string {
	tokens := tokenize(doc)
	if len(tokens) == 0 {
		return nil
	}
	var terms []string
	for n := ngramMin; n <= ngramMax; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			terms = append(terms, strings.Join(tokens[i:i+n], " "))
		}
	}
	return terms
}

// tokenize case-folds, strips accents, splits into word tokens, and
// removes English stop words.
func tokenize(doc string) []string {
	raw := tokenPattern.FindAllString(stripAccents(strings.ToLower(doc)), -1)
	tokens := raw[:0]
	for _, t := range raw {
		if !stopWords[t] {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// stripAccents decomposes the string and drops combining marks, so that
// "résumé" and "resume" vectorize identically. Transformers are stateful,
// so the chain is built per call.
func stripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
