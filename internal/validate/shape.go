// Package validate checks request bodies and path parameters at the HTTP boundary.
package validate

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"
)

// ErrShape is returned when a body is not a JSON object with exactly the expected keys,
// or when its values do not fit the target request type.
var ErrShape = errors.New("malformed request body")

var structValidator = validator.New()

// MatchKeys reports whether record carries exactly the expected keys: same count,
// nothing missing, nothing extra. Key order is irrelevant.
func MatchKeys(record map[string]json.RawMessage, expected ...string) bool {
	if len(record) != len(expected) {
		return false
	}
	for _, key := range expected {
		if _, ok := record[key]; !ok {
			return false
		}
	}
	return true
}

// DecodeShape reads a JSON object from body, checks its key set against expected
// and decodes it into dst. dst is then checked against its `validate` struct tags.
func DecodeShape(body io.Reader, dst any, expected ...string) error {
	raw, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrShape, err)
	}

	var record map[string]json.RawMessage
	if err := json.Unmarshal(raw, &record); err != nil {
		return fmt.Errorf("%w: %v", ErrShape, err)
	}
	if !MatchKeys(record, expected...) {
		return fmt.Errorf("%w: expected keys %v", ErrShape, expected)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: %v", ErrShape, err)
	}
	if err := structValidator.Struct(dst); err != nil {
		return fmt.Errorf("%w: %v", ErrShape, err)
	}
	return nil
}
