package genai

import "errors"

var (
	ErrUnavailable   = errors.New("generation service unavailable")
	ErrUnauthorized  = errors.New("generation service rejected credentials")
	ErrQuotaExceeded = errors.New("generation quota exceeded")
)
