package domain

import "errors"

var (
	ErrInvalidSurvey     = errors.New("invalid survey answers")
	ErrUnparsableAnalyze = errors.New("unparsable analysis response")
	ErrEmptyResponse     = errors.New("empty analysis response")
)
