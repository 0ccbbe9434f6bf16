package app

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pscheid92/huella/internal/domain"
	apperrors "github.com/pscheid92/huella/internal/platform/errors"
)

const (
	scaleMin = 1
	scaleMax = 5

	textMinLength  = 10
	textMaxLength  = 200
	textMinLetters = 5
)

const (
	RoundPre  = "pre"
	RoundPost = "post"
)

// ValidateRound validates one round and tags a failure with the round it came from,
// "pre" or "post", so clients can tell the two apart.
func ValidateRound(a domain.SurveyAnswers, round string) error {
	err := ValidateAnswers(a)
	if err == nil {
		return nil
	}
	if appErr := apperrors.AsStructuredError(err); appErr != nil {
		return appErr.WithField("round", round)
	}
	return err
}

// ValidateAnswers checks one survey round. The returned error is a validation *apperrors.Error
// wrapping domain.ErrInvalidSurvey, with the offending field attached.
func ValidateAnswers(a domain.SurveyAnswers) error {
	for _, q := range domain.ScaleQuestions {
		if v := a.Scale(q); v < scaleMin || v > scaleMax {
			return invalid("scale answers must be between 1 and 5", q).WithField("value", v)
		}
	}

	if msg := validateText(a.HopeText); msg != "" {
		return invalid(msg, "esperanza_text")
	}
	if msg := validateText(a.WorryText); msg != "" {
		return invalid(msg, "preocupacion_text")
	}

	if !slices.Contains(domain.PredominantEmotions, a.Emotion) {
		return invalid("unknown emotion", "emocion").WithField("value", a.Emotion)
	}
	return nil
}

// validateText returns a message describing what is wrong with a free-text answer, or "".
func validateText(text string) string {
	text = strings.TrimSpace(text)
	n := utf8.RuneCountInString(text)
	switch {
	case n < textMinLength:
		return "text answers need at least 10 characters"
	case n > textMaxLength:
		return "text answers are limited to 200 characters"
	case countLetters(text) < textMinLetters:
		return "text answers must contain words, not only numbers or symbols"
	default:
		return ""
	}
}

func countLetters(text string) int {
	count := 0
	for _, r := range text {
		if unicode.IsLetter(r) {
			count++
		}
	}
	return count
}

func invalid(message, field string) *apperrors.Error {
	return apperrors.ValidationError(message, domain.ErrInvalidSurvey).WithField("field", field)
}
