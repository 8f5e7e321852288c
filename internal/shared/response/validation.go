package response

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// FieldErrors flattens ozzo validation errors into field -> message.
// ok is false when err is not a validation failure.
func FieldErrors(err error) (map[string]string, bool) {
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return nil, false
	}

	out := make(map[string]string, len(verrs))
	for field, ferr := range verrs {
		if ferr != nil {
			out[field] = ferr.Error()
		}
	}
	return out, true
}
