package services

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/oragh/platform-client/api"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// checkRequest runs the presence checks declared on a request payload and
// reports failures in the same field-keyed shape the backend uses, so stores
// render them identically to server-side validation errors.
func checkRequest(payload any) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	fields := make(map[string][]string, len(verrs))
	for _, fe := range verrs {
		fields[fieldName(fe)] = append(fields[fieldName(fe)], "This field is required.")
	}
	return &api.Error{Kind: api.KindValidation, Fields: fields}
}

// fieldName approximates the json tag from the Go field name
// (FirstName -> first_name), which is how all request payloads here are
// tagged.
func fieldName(fe validator.FieldError) string {
	name := fe.Field()
	var b strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r - 'A' + 'a')
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
