package voicepipeline

import (
	"context"
	"time"

	"github.com/bmehaboob/the-multilingual-mandi-sub000/internal/servicehealth"
	"github.com/bmehaboob/the-multilingual-mandi-sub000/internal/voiceretry"
	"github.com/bmehaboob/the-multilingual-mandi-sub000/pkg/provider/stt"
	"github.com/bmehaboob/the-multilingual-mandi-sub000/pkg/provider/translation"
	"github.com/bmehaboob/the-multilingual-mandi-sub000/pkg/provider/tts"
	"github.com/bmehaboob/the-multilingual-mandi-sub000/pkg/vic"
)

// runDetectLanguage resolves the source language, skipping the model call
// entirely when the utterance already carries a source language hint (spec
// §4.C stage-skip rule: synthetic outcome, confidence 1.0).
func (o *Orchestrator) runDetectLanguage(ctx context.Context, u vic.Utterance) (string, vic.StageOutcome) {
	start := time.Now()

	if u.SourceLanguageHint != "" {
		return u.SourceLanguageHint, vic.StageOutcome{
			Stage:      vic.StageDetectLanguage,
			Start:      start,
			End:        start,
			Attempts:   0,
			Confidence: 1.0,
			Source:     vic.STT,
		}
	}

	stageCtx, cancel := withStageTimeout(ctx, vic.StageDetectLanguage)
	defer cancel()

	var attempts int
	result, err := servicehealth.ExecuteWithFallback(stageCtx, o.health, vic.STT, func(ctx context.Context) (stt.Result, error) {
		res, attemptErr := voiceretry.Do(ctx, retryConfig(), func(ctx context.Context) (stt.Result, error) {
			return o.adapters.STT.DetectLanguage(ctx, stt.Request{
				Audio:      u.Audio,
				SampleRate: u.SampleRate,
			})
		})
		attempts = res.Attempts
		return res.Value, attemptErr
	})

	outcome := vic.StageOutcome{
		Stage:      vic.StageDetectLanguage,
		Start:      start,
		End:        time.Now(),
		Attempts:   attempts,
		Confidence: result.Confidence,
		Source:     vic.STT,
		Err:        err,
	}
	if err != nil {
		return "", outcome
	}
	return result.Language, outcome
}

// runTranscribe produces a transcript against sourceLang, then runs the
// optional post-transcribe corrector (the folded-in self-correction
// sub-step; spec.md's distillation did not name it as a fifth stage).
func (o *Orchestrator) runTranscribe(ctx context.Context, u vic.Utterance, sourceLang string) (string, vic.StageOutcome) {
	start := time.Now()

	stageCtx, cancel := withStageTimeout(ctx, vic.StageTranscribe)
	defer cancel()

	var attempts int
	result, err := servicehealth.ExecuteWithFallback(stageCtx, o.health, vic.STT, func(ctx context.Context) (stt.Result, error) {
		res, attemptErr := voiceretry.Do(ctx, retryConfig(), func(ctx context.Context) (stt.Result, error) {
			return o.adapters.STT.Transcribe(ctx, stt.Request{
				Audio:        u.Audio,
				SampleRate:   u.SampleRate,
				LanguageHint: sourceLang,
			})
		})
		attempts = res.Attempts
		return res.Value, attemptErr
	})

	outcome := vic.StageOutcome{
		Stage:      vic.StageTranscribe,
		Start:      start,
		End:        time.Now(),
		Attempts:   attempts,
		Confidence: result.Confidence,
		Source:     vic.STT,
		Err:        err,
	}
	if err != nil {
		return "", outcome
	}

	text := result.Text
	if o.corrector != nil {
		text = o.corrector(text)
	}
	return text, outcome
}

// runTranslate skips the model call when source and target languages match
// (spec §4.C: translation equals transcription, confidence 1.0, latency 0).
func (o *Orchestrator) runTranslate(ctx context.Context, text, sourceLang, targetLang string) (string, vic.StageOutcome) {
	start := time.Now()

	if sourceLang == targetLang {
		return text, vic.StageOutcome{
			Stage:      vic.StageTranslate,
			Start:      start,
			End:        start,
			Attempts:   0,
			Confidence: 1.0,
			Source:     vic.Translation,
		}
	}

	stageCtx, cancel := withStageTimeout(ctx, vic.StageTranslate)
	defer cancel()

	var attempts int
	result, err := servicehealth.ExecuteWithFallback(stageCtx, o.health, vic.Translation, func(ctx context.Context) (translation.Result, error) {
		res, attemptErr := voiceretry.Do(ctx, retryConfig(), func(ctx context.Context) (translation.Result, error) {
			return o.adapters.Translation.Translate(ctx, translation.Request{
				Text:           text,
				SourceLanguage: sourceLang,
				TargetLanguage: targetLang,
			})
		})
		attempts = res.Attempts
		return res.Value, attemptErr
	})

	outcome := vic.StageOutcome{
		Stage:      vic.StageTranslate,
		Start:      start,
		End:        time.Now(),
		Attempts:   attempts,
		Confidence: result.Confidence,
		Source:     vic.Translation,
		Err:        err,
	}
	if err != nil {
		return "", outcome
	}
	return result.Text, outcome
}

// runSynthesize produces the final audio response.
func (o *Orchestrator) runSynthesize(ctx context.Context, text, targetLang string) ([]byte, vic.StageOutcome) {
	start := time.Now()

	stageCtx, cancel := withStageTimeout(ctx, vic.StageSynthesize)
	defer cancel()

	var attempts int
	result, err := servicehealth.ExecuteWithFallback(stageCtx, o.health, vic.TTS, func(ctx context.Context) (tts.Result, error) {
		res, attemptErr := voiceretry.Do(ctx, retryConfig(), func(ctx context.Context) (tts.Result, error) {
			return o.adapters.TTS.Synthesize(ctx, tts.Request{
				Text:     text,
				Language: targetLang,
			})
		})
		attempts = res.Attempts
		return res.Value, attemptErr
	})

	outcome := vic.StageOutcome{
		Stage:      vic.StageSynthesize,
		Start:      start,
		End:        time.Now(),
		Attempts:   attempts,
		Confidence: result.Confidence,
		Source:     vic.TTS,
		Err:        err,
	}
	if err != nil {
		return nil, outcome
	}
	return result.Audio, outcome
}
