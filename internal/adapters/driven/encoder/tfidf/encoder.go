// Package tfidf provides a local, deterministic text encoder using
// TF-IDF vectors fitted on the knowledge-base corpus. It needs no
// network access, which makes it the offline mode encoder and the
// encoder used in tests.
package tfidf

import (
	"context"
	"errors"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/custodia-labs/advisor-cli/internal/core/ports/driven"
)

// Ensure Encoder implements the interface.
var _ driven.Encoder = (*Encoder)(nil)

// Encoder is a TF-IDF vectoriser. The vocabulary and IDF weights are
// fitted once at construction; after that the encoder is read-only
// and safe for concurrent use.
type Encoder struct {
	vocabulary   map[string]int
	idf          []float64
	dimension    int
	tokenPattern *regexp.Regexp
	stopwords    map[string]struct{}
}

// New fits a TF-IDF encoder on the given corpus texts.
func New(corpus []string) (*Encoder, error) {
	e := &Encoder{
		tokenPattern: regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`),
		stopwords:    defaultStopwords(),
	}
	if err := e.fit(corpus); err != nil {
		return nil, err
	}
	return e, nil
}

// fit builds the vocabulary and IDF values from the corpus.
func (e *Encoder) fit(corpus []string) error {
	if len(corpus) == 0 {
		return errors.New("tfidf: empty corpus")
	}

	// Document frequencies per term
	df := make(map[string]int)
	for _, text := range corpus {
		seen := make(map[string]struct{})
		for _, tok := range e.tokenize(text) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}

	// Stable ordering for the vocabulary
	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	if len(terms) == 0 {
		return errors.New("tfidf: no tokens found in corpus")
	}

	e.vocabulary = make(map[string]int, len(terms))
	e.idf = make([]float64, len(terms))
	n := float64(len(corpus))
	for i, term := range terms {
		e.vocabulary[term] = i
		// Smoothed IDF
		e.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1.0
	}
	e.dimension = len(terms)
	return nil
}

// Encode computes the L2-normalised TF-IDF embedding for the text.
// Text sharing no vocabulary with the corpus yields a zero vector.
func (e *Encoder) Encode(_ context.Context, text string) ([]float32, error) {
	vec := make([]float64, e.dimension)
	tf := make(map[int]int)
	total := 0
	for _, tok := range e.tokenize(text) {
		if idx, ok := e.vocabulary[tok]; ok {
			tf[idx]++
			total++
		}
	}

	out := make([]float32, e.dimension)
	if total == 0 {
		return out, nil
	}

	for idx, count := range tf {
		vec[idx] = float64(count) / float64(total) * e.idf[idx]
	}

	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i, v := range vec {
			out[i] = float32(v / norm)
		}
	}
	return out, nil
}

// Dimensions returns the vocabulary size.
func (e *Encoder) Dimensions() int {
	return e.dimension
}

// ModelName returns the identifier of this encoder.
func (e *Encoder) ModelName() string {
	return "tfidf"
}

// Ping always succeeds; the encoder is local.
func (e *Encoder) Ping(_ context.Context) error {
	return nil
}

// Close releases resources.
func (e *Encoder) Close() error {
	return nil
}

func (e *Encoder) tokenize(text string) []string {
	raw := e.tokenPattern.FindAllString(strings.ToLower(text), -1)
	out := raw[:0]
	for _, t := range raw {
		if _, isStop := e.stopwords[t]; isStop {
			continue
		}
		out = append(out, t)
	}
	return out
}

func defaultStopwords() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for",
		"to", "of", "in", "on", "at", "by", "with", "as", "is", "are",
		"was", "were", "be", "been", "being", "it", "this", "that",
		"these", "those", "from", "up", "down", "over", "under", "than",
		"so", "such", "into", "about", "between", "through", "during",
		"before", "after", "above", "below", "out", "off", "own", "same",
		"too", "very", "can", "will", "just", "should", "now", "what",
		"how", "do", "does", "my", "i",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
