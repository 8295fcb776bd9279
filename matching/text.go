package matching

import (
	"math"
	"regexp"
	"strings"

	"github.com/dmavani25/teammatch-system/models"
)

// tokenPattern keeps runs of two or more word characters, after lowercasing.
var tokenPattern = regexp.MustCompile(`[a-z0-9_]{2,}`)

// TextScorer compares the free-text profile fields (majors, additional info,
// idea) of two participants by cosine similarity of TF-IDF term vectors.
//
// The vectorizer is fitted once over the full participant corpus at
// construction time, so document frequencies carry real signal and scoring a
// pair is a single sparse dot product. Scores are in [0, 1].
type TextScorer struct {
	vectors map[int]map[string]float64
}

// NewTextScorer builds the term-document statistics for the given corpus.
// Participants scored later must come from this corpus (matched by ID);
// unknown participants score 0 against everything.
func NewTextScorer(participants []*models.Participant) *TextScorer {
	n := len(participants)
	counts := make([]map[string]int, n)
	docFreq := make(map[string]int)

	for i, p := range participants {
		counts[i] = termCounts(textDocument(p))
		for term := range counts[i] {
			docFreq[term]++
		}
	}

	vectors := make(map[int]map[string]float64, n)
	for i, p := range participants {
		vector := make(map[string]float64, len(counts[i]))
		var sumSquares float64
		for term, tf := range counts[i] {
			// Smoothed inverse document frequency: acts as if every term
			// appeared in one extra document, so no term weight is zero.
			idf := math.Log(float64(1+n)/float64(1+docFreq[term])) + 1
			weight := float64(tf) * idf
			vector[term] = weight
			sumSquares += weight * weight
		}
		if sumSquares > 0 {
			norm := math.Sqrt(sumSquares)
			for term := range vector {
				vector[term] /= norm
			}
		}
		vectors[p.ID] = vector
	}

	return &TextScorer{vectors: vectors}
}

func (s *TextScorer) Name() string {
	return "text"
}

func (s *TextScorer) Score(a, b *models.Participant) float64 {
	va := s.vectors[a.ID]
	vb := s.vectors[b.ID]
	if len(va) == 0 || len(vb) == 0 {
		return 0
	}
	if len(vb) < len(va) {
		va, vb = vb, va
	}
	var dot float64
	for term, weight := range va {
		dot += weight * vb[term]
	}
	// Vectors are unit length, so the dot product is the cosine; clamp away
	// floating point drift at the boundaries.
	if dot < 0 {
		return 0
	}
	if dot > 1 {
		return 1
	}
	return dot
}

func textDocument(p *models.Participant) string {
	return strings.Join([]string{p.Majors, p.AddInfo, p.Idea}, " ")
}

func termCounts(text string) map[string]int {
	counts := make(map[string]int)
	for _, token := range tokenPattern.FindAllString(strings.ToLower(text), -1) {
		counts[token]++
	}
	return counts
}
