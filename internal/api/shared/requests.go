package shared

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// Global validator instance for reuse
var validate = validator.New()

// Validatable is implemented by request types that carry their own
// validation rules, like bodies that accept alternative key spellings
// the struct-tag validator cannot express.
type Validatable interface {
	Validate() error
}

// DecodeJSON decodes the request body into the given struct.
func DecodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// ValidateRequest validates a request struct, preferring the type's own
// Validate method and falling back to struct-tag validation.
func ValidateRequest(v interface{}) error {
	if validatable, ok := v.(Validatable); ok {
		return validatable.Validate()
	}
	return validate.Struct(v)
}
