package validate

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const securityQuestionsProperty = `{
	"type": "array",
	"items": {
		"type": "object",
		"properties": {
			"answer": {"type": "string"}
		},
		"required": ["answer"],
		"additionalProperties": false
	}
}`

// SecurityAnswersSchema describes the body of the security question check.
var SecurityAnswersSchema = jsonschema.MustCompileString("security-answers.json", `{
	"type": "object",
	"properties": {
		"securityQuestions": `+securityQuestionsProperty+`
	},
	"required": ["securityQuestions"],
	"additionalProperties": false
}`)

// ResetPasswordSchema describes the body of a password reset.
var ResetPasswordSchema = jsonschema.MustCompileString("reset-password.json", `{
	"type": "object",
	"properties": {
		"newPassword": {"type": "string", "minLength": 1},
		"securityQuestions": `+securityQuestionsProperty+`
	},
	"required": ["newPassword", "securityQuestions"],
	"additionalProperties": false
}`)

// DecodeSchema validates the JSON document in body against schema and decodes it into dst.
func DecodeSchema(body io.Reader, schema *jsonschema.Schema, dst any) error {
	raw, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrShape, err)
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrShape, err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrShape, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: %v", ErrShape, err)
	}
	return nil
}
