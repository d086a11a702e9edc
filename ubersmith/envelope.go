package ubersmith

import (
	"io"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

// JSON is the codec used for envelopes on both sides of the wire.
var JSON = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	UseNumber:              true,
}.Froze()

// Envelope is the body every API method answers with.
type Envelope struct {
	Status       bool        `json:"status"`
	Data         interface{} `json:"data"`
	ErrorMessage string      `json:"error_message"`
	ErrorCode    *int        `json:"error_code"`
}

// SuccessEnvelope wraps data in a successful envelope.
func SuccessEnvelope(data interface{}) Envelope {
	return Envelope{
		Status: true,
		Data:   data,
	}
}

// ErrorEnvelope builds the envelope of a failed call.
func ErrorEnvelope(message string, code int) Envelope {
	return Envelope{
		Status:       false,
		Data:         "",
		ErrorMessage: message,
		ErrorCode:    &code,
	}
}

// Err returns the *ResponseError described by a failed envelope, or nil.
func (e Envelope) Err() error {
	if e.Status {
		return nil
	}

	code := 0
	if e.ErrorCode != nil {
		code = *e.ErrorCode
	}

	return NewResponseError(e.ErrorMessage, code)
}

// wireEnvelope keeps data undecoded until the caller picks a destination.
type wireEnvelope struct {
	Status       bool                `json:"status"`
	Data         jsoniter.RawMessage `json:"data"`
	ErrorMessage string              `json:"error_message"`
	ErrorCode    *int                `json:"error_code"`
}

// decodeEnvelope reads a response body and decodes its data into dest.
// It returns a *ResponseError for envelopes with status false.
func decodeEnvelope(r io.Reader, dest interface{}) error {
	body, err := io.ReadAll(r)
	if err != nil {
		return errors.Wrap(err, "read response body")
	}

	var env wireEnvelope
	if err := JSON.Unmarshal(body, &env); err != nil {
		return errors.Wrapf(ErrInvalidResponse, "decode envelope: %v", err)
	}

	if !env.Status {
		code := 0
		if env.ErrorCode != nil {
			code = *env.ErrorCode
		}

		return NewResponseError(env.ErrorMessage, code)
	}

	if dest == nil || len(env.Data) == 0 {
		return nil
	}

	if err := JSON.Unmarshal(env.Data, dest); err != nil {
		return errors.Wrapf(ErrInvalidResponse, "decode data: %v", err)
	}

	return nil
}
