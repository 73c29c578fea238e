package onboarding

import (
	"errors"
	"strings"
)

// ErrUnknownStep is returned when step has no catalog entry at all — a
// programming error, since every supported language carries every Step.
var ErrUnknownStep = errors.New("onboarding: unknown step")

// defaultLanguage is used when a caller requests a language with no
// catalog entry, matching the original service's "default to Hindi if
// language not supported" rule.
const defaultLanguage = "hin"

// PromptFor returns the prompt text for language and step, substituting
// any {key} placeholders present in vars (e.g. {name}, {location} in
// CreateVoiceprint). Unmatched placeholders are left verbatim rather than
// erroring, matching the original catalog's lenient formatting.
//
// A language absent from the catalog falls back to Hindi. step must be
// one of the constants in this package; an out-of-range step returns
// ErrUnknownStep.
func PromptFor(language string, step Step, vars map[string]string) (string, error) {
	prompts, ok := catalog[language]
	if !ok {
		prompts = catalog[defaultLanguage]
	}

	template, ok := prompts[step]
	if !ok {
		return "", ErrUnknownStep
	}

	if len(vars) == 0 {
		return template, nil
	}

	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(template), nil
}
