// Package phonetic implements a phonetic word matcher using Double
// Metaphone encoding combined with Jaro-Winkler string similarity for
// ranked candidate selection — the transcript self-correction pass
// referenced in spec §3's StageOutcome data model, folded into the
// Transcribe stage rather than run as its own pipeline stage.
//
// The algorithm proceeds in two steps:
//
//  1. Phonetic candidate filtering: Double Metaphone codes are computed for
//     the input word and for each vocabulary word. If any code overlaps,
//     the vocabulary word becomes a phonetic candidate.
//
//  2. Jaro-Winkler ranking: among phonetic candidates, the word with the
//     highest Jaro-Winkler similarity is selected, provided its score
//     reaches the configurable phonetic threshold. When no phonetic
//     candidate clears the threshold, a secondary pass tests pure
//     Jaro-Winkler similarity against the whole vocabulary using a higher
//     fuzzy threshold.
package phonetic

import (
	"strings"

	"github.com/antzucaro/matchr"
)

const (
	defaultPhoneticThreshold = 0.70
	defaultFuzzyThreshold    = 0.85
)

// Option configures a Matcher.
type Option func(*Matcher)

// WithPhoneticThreshold sets the minimum Jaro-Winkler score required for a
// phonetically-matched word to be accepted. Default: 0.70.
func WithPhoneticThreshold(threshold float64) Option {
	return func(m *Matcher) { m.phoneticThreshold = threshold }
}

// WithFuzzyThreshold sets the minimum Jaro-Winkler score required when no
// phonetic match is found and the matcher falls back to pure string
// similarity. Default: 0.85.
func WithFuzzyThreshold(threshold float64) Option {
	return func(m *Matcher) { m.fuzzyThreshold = threshold }
}

// Matcher is a phonetic word matcher. Safe for concurrent use: it is
// read-only after construction.
type Matcher struct {
	phoneticThreshold float64
	fuzzyThreshold    float64
}

// New returns a Matcher configured with the supplied options.
func New(opts ...Option) *Matcher {
	m := &Matcher{
		phoneticThreshold: defaultPhoneticThreshold,
		fuzzyThreshold:    defaultFuzzyThreshold,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Match attempts to find the word from vocabulary that is most phonetically
// similar to word. When matched is false, corrected equals word unchanged
// and confidence is 0.
func (m *Matcher) Match(word string, vocabulary []string) (corrected string, confidence float64, matched bool) {
	wordLower := strings.ToLower(strings.TrimSpace(word))
	if len(vocabulary) == 0 || wordLower == "" {
		return word, 0, false
	}

	inputP, inputS := matchr.DoubleMetaphone(wordLower)

	var bestVocab string
	var bestScore float64
	var bestPhonetic bool

	for _, v := range vocabulary {
		vLower := strings.ToLower(strings.TrimSpace(v))
		if vLower == "" {
			continue
		}

		vP, vS := matchr.DoubleMetaphone(vLower)
		phoneticMatch := (inputP != "" && (inputP == vP || inputP == vS)) ||
			(inputS != "" && (inputS == vP || inputS == vS))

		score := matchr.JaroWinkler(wordLower, vLower, false)

		if phoneticMatch {
			if score >= m.phoneticThreshold && (!bestPhonetic || score > bestScore) {
				bestVocab, bestScore, bestPhonetic = v, score, true
			}
		} else if !bestPhonetic && score >= m.fuzzyThreshold && score > bestScore {
			bestVocab, bestScore = v, score
		}
	}

	if bestVocab == "" {
		return word, 0, false
	}
	return bestVocab, bestScore, true
}

// CorrectText runs Match over every whitespace-separated word in text
// against vocabulary and substitutes each matched word with its corrected
// form, leaving unmatched words untouched.
func CorrectText(m *Matcher, text string, vocabulary []string) string {
	if len(vocabulary) == 0 {
		return text
	}
	tokens := strings.Fields(text)
	for i, tok := range tokens {
		if corrected, _, matched := m.Match(tok, vocabulary); matched {
			tokens[i] = corrected
		}
	}
	return strings.Join(tokens, " ")
}
