package errorcatalog

import (
	"errors"

	"github.com/bmehaboob/the-multilingual-mandi-sub000/pkg/vic"
)

// CategoryForService returns the Category most appropriate for a failure
// in the given ServiceKind, used when the pipeline has no more specific
// Category already in hand.
func CategoryForService(kind vic.ServiceKind) Category {
	switch kind {
	case vic.STT:
		return AudioGeneric
	case vic.Translation:
		return TranslationGeneric
	case vic.TTS:
		return AudioGeneric
	case vic.LLM, vic.PriceOracle:
		return ServiceUnavailable
	case vic.VoiceBiometric:
		return AuthenticationError
	case vic.Database, vic.Cache:
		return DataNotFound
	default:
		return GenericError
	}
}

// CategoryForVICError maps one of the pkg/vic sentinel error categories to
// a user-facing Category.
func CategoryForVICError(err error) Category {
	switch {
	case err == nil:
		return GenericError
	case errors.Is(err,vic.ErrValidation):
		return ValidationError
	case errors.Is(err,vic.ErrTransient):
		return ServiceUnavailable
	case errors.Is(err,vic.ErrCapacityExceeded):
		return ServiceUnavailable
	case errors.Is(err,vic.ErrCritical):
		return ServiceUnavailable
	default:
		return GenericError
	}
}
