package phonetic_test

import (
	"testing"

	"github.com/bmehaboob/the-multilingual-mandi-sub000/internal/voicepipeline/phonetic"
)

func TestMatcher_PhoneticMatch(t *testing.T) {
	t.Parallel()

	m := phonetic.New()
	vocabulary := []string{"rice", "wheat", "turmeric", "jaggery"}

	corrected, conf, matched := m.Match("rize", vocabulary)
	if !matched {
		t.Fatalf("Match(%q, vocabulary): matched=false, want true", "rize")
	}
	if corrected != "rice" {
		t.Errorf("Match(%q): corrected=%q, want %q", "rize", corrected, "rice")
	}
	if conf < 0.7 {
		t.Errorf("Match(%q): confidence=%f, want >= 0.7", "rize", conf)
	}
}

func TestMatcher_NoMatch(t *testing.T) {
	t.Parallel()

	m := phonetic.New()
	vocabulary := []string{"rice", "wheat"}

	corrected, conf, matched := m.Match("helicopter", vocabulary)
	if matched {
		t.Fatalf("Match(%q, vocabulary): matched=true, want false", "helicopter")
	}
	if corrected != "helicopter" {
		t.Errorf("Match(%q): corrected=%q, want word unchanged", "helicopter")
	}
	if conf != 0 {
		t.Errorf("Match(%q): confidence=%f, want 0", "helicopter", conf)
	}
}

func TestMatcher_EmptyVocabulary(t *testing.T) {
	t.Parallel()

	m := phonetic.New()
	corrected, _, matched := m.Match("rice", nil)
	if matched || corrected != "rice" {
		t.Fatalf("Match with empty vocabulary: got (%q, matched=%v), want (\"rice\", false)", corrected, matched)
	}
}

func TestCorrectText_SubstitutesOnlyMatchedWords(t *testing.T) {
	t.Parallel()

	m := phonetic.New()
	vocabulary := []string{"rice", "wheat"}

	got := phonetic.CorrectText(m, "I want to buy rize today", vocabulary)
	want := "I want to buy rice today"
	if got != want {
		t.Errorf("CorrectText() = %q, want %q", got, want)
	}
}

func TestCorrectText_EmptyVocabularyIsNoOp(t *testing.T) {
	t.Parallel()

	m := phonetic.New()
	text := "I want to buy rize today"
	if got := phonetic.CorrectText(m, text, nil); got != text {
		t.Errorf("CorrectText() with empty vocabulary = %q, want unchanged %q", got, text)
	}
}
