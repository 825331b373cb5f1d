package services

import (
	"errors"

	"github.com/dmitrijs2005/webquiz-admin/internal/client/httpapi"
)

// UserMessage is the text to show for a failed operation: the server's own
// message when it sent one, fallback otherwise.
func UserMessage(err error, fallback string) string {
	if msg, ok := httpapi.ServerMessage(err); ok {
		return msg
	}
	return fallback
}

// IsValidation reports whether err is a form error raised before any request
// was made. Its text is meant for the user as is.
func IsValidation(err error) bool {
	for _, target := range []error{
		ErrMissingFields, ErrNoCategory, ErrTooFewChoices, ErrNoCorrectChoice, ErrTagFieldsRequired,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
