// Package stores holds the client-side domain state: the last-fetched
// collections and detail objects per domain, with per-action loading and
// error tracking. All mutations of held state go through action methods;
// state accessors return copies. Every fetch is tagged with a per-slot
// generation so a stale response that lands after a newer fetch was issued
// is dropped instead of overwriting fresher data.
package stores

import (
	"errors"

	"github.com/oragh/platform-client/api"
)

type fieldLabel struct {
	key   string
	label string
}

// errorMessage derives a user-facing message from a failed action: the
// backend's non_field_errors or detail when present, the fallback otherwise.
func errorMessage(err error, fallback string) string {
	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		return fallback
	}
	if msg := apiErr.Field("non_field_errors"); msg != "" {
		return msg
	}
	if apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}

// fieldErrorMessage is errorMessage plus known-field inspection: the first
// matching field-keyed validation message is prefixed with its form label.
func fieldErrorMessage(err error, fallback string, fields []fieldLabel) string {
	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		return fallback
	}
	for _, f := range fields {
		if msg := apiErr.Field(f.key); msg != "" {
			return f.label + ": " + msg
		}
	}
	return errorMessage(err, fallback)
}

// isNotFound reports whether an action failed with a 404.
func isNotFound(err error) bool {
	var apiErr *api.Error
	return errors.As(err, &apiErr) && apiErr.Kind == api.KindNotFound
}
