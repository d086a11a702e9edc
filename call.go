package ubermock

import (
	"github.com/stretchr/testify/assert"

	"github.com/hivelocity/ubermock/ubersmith"
)

type tHelper interface {
	Helper()
}

// Call records one intercepted invocation of an API method.
type Call struct {
	Method      string
	Params      ubersmith.Values
	RawResponse ubersmith.Envelope
	Response    interface{} // RawResponse.Data when RawResponse.Status is true
}

func newCall(method string, params ubersmith.Values, env ubersmith.Envelope) Call {
	call := Call{
		Method:      method,
		Params:      params.Clone(),
		RawResponse: env,
	}
	if env.Status {
		call.Response = env.Data
	}

	return call
}

// CheckCalledWith returns an *AssertionError unless every key of params was
// passed with the same normalized value. Extra params are allowed.
func (c Call) CheckCalledWith(params ubersmith.Params) error {
	return c.check(params, false)
}

// CheckCalledWithExactly is like CheckCalledWith but also rejects extra params.
func (c Call) CheckCalledWithExactly(params ubersmith.Params) error {
	return c.check(params, true)
}

func (c Call) AssertCalledWith(t assert.TestingT, params ubersmith.Params, msgAndArgs ...interface{}) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}

	return report(t, c.CheckCalledWith(params), msgAndArgs...)
}

func (c Call) AssertCalledWithExactly(t assert.TestingT, params ubersmith.Params, msgAndArgs ...interface{}) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}

	return report(t, c.CheckCalledWithExactly(params), msgAndArgs...)
}

func (c Call) check(params ubersmith.Params, exact bool) error {
	aerr := &AssertionError{
		Method:   c.Method,
		Expected: -1,
	}

	compareParams(aerr, c.Params, params, exact)
	if aerr.empty() {
		return nil
	}

	return aerr
}

func report(t assert.TestingT, err error, msgAndArgs ...interface{}) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}

	if err == nil {
		return true
	}

	return assert.Fail(t, err.Error(), msgAndArgs...)
}
