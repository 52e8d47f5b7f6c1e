package client

import (
	"encoding/json"
)

// The backend answers with one of three body shapes:
//
//	{code, message, data}     code == 0 means success
//	{success, message, data}  success == true means success
//	anything else             returned to the caller as-is
//
// Each shape is a matcher with a predicate and an extractor; matchers are
// tried in a fixed order and the first match wins.

// envelopeFields is a shallow view of a JSON object body.
type envelopeFields map[string]json.RawMessage

// parseFields returns nil when the body is not a JSON object.
func parseFields(body []byte) *envelopeFields {
	var fields envelopeFields
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		return nil
	}
	return &fields
}

// stringField returns the named field when it holds a non-empty string.
func (f *envelopeFields) stringField(name string) string {
	raw, ok := (*f)[name]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

type envelopeMatcher interface {
	matches(fields *envelopeFields) bool
	// unwrap returns the payload on success, or the failure message
	// reported by the envelope.
	unwrap(fields *envelopeFields) (data json.RawMessage, failure string, ok bool)
}

// codeEnvelope is the {code, message, data} shape; code 0 is success.
type codeEnvelope struct{}

func (codeEnvelope) matches(fields *envelopeFields) bool {
	_, ok := (*fields)["code"]
	return ok
}

func (codeEnvelope) unwrap(fields *envelopeFields) (json.RawMessage, string, bool) {
	var code int64
	if err := json.Unmarshal((*fields)["code"], &code); err != nil || code != 0 {
		return nil, failureMessage(fields), false
	}
	return (*fields)["data"], "", true
}

// successEnvelope is the {success, message, data} shape with a boolean flag.
type successEnvelope struct{}

func (successEnvelope) matches(fields *envelopeFields) bool {
	raw, ok := (*fields)["success"]
	if !ok {
		return false
	}
	var b bool
	return json.Unmarshal(raw, &b) == nil
}

func (successEnvelope) unwrap(fields *envelopeFields) (json.RawMessage, string, bool) {
	var success bool
	_ = json.Unmarshal((*fields)["success"], &success)
	if !success {
		return nil, failureMessage(fields), false
	}
	return (*fields)["data"], "", true
}

func failureMessage(fields *envelopeFields) string {
	if msg := fields.stringField("message"); msg != "" {
		return msg
	}
	return msgRequestFailed
}

// matchers in priority order; the code shape wins over the success shape
// when a body carries both.
var matchers = []envelopeMatcher{
	codeEnvelope{},
	successEnvelope{},
}

// normalize unwraps a 2xx response body into its payload. Bodies that use no
// known envelope pass through unchanged. A failure envelope yields the
// backend's message, or the fixed default when it carries none.
func normalize(body []byte) (json.RawMessage, *APIError) {
	fields := parseFields(body)
	if fields == nil {
		return body, nil
	}
	for _, m := range matchers {
		if !m.matches(fields) {
			continue
		}
		data, failure, ok := m.unwrap(fields)
		if !ok {
			return nil, &APIError{Message: failure}
		}
		return data, nil
	}
	return body, nil
}
