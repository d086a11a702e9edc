package ubermock

import (
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/stretchr/testify/assert"

	"github.com/hivelocity/ubermock/ubersmith"
)

const (
	MockDefaultTimes   = 1
	MockUnlimitedTimes = -1
)

// Kind tags the behavior of a Method.
type Kind int

const (
	Unconfigured Kind = iota
	FixedValue
	ErrorResponse
	DynamicHandler
	RawEnvelope
	RawBody
)

func (k Kind) String() string {
	switch k {
	case Unconfigured:
		return "unconfigured"
	case FixedValue:
		return "fixed value"
	case ErrorResponse:
		return "error response"
	case DynamicHandler:
		return "dynamic handler"
	case RawEnvelope:
		return "raw envelope"
	case RawBody:
		return "raw body"
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

// HandlerFunc computes the response of a call. Returning a
// *ubersmith.ResponseError produces the same envelope as Method.ReturnError;
// any other error fails the round trip itself.
type HandlerFunc func(method string, params ubersmith.Values, r *http.Request, ctx *Context) (interface{}, error)

// Context lets a HandlerFunc adjust the HTTP response carrying the envelope.
type Context struct {
	StatusCode int
	Header     http.Header
}

func newContext() *Context {
	return &Context{
		StatusCode: http.StatusOK,
		Header:     http.Header{},
	}
}

// Behavior is the configured response of a Method. Only the field matching
// Kind is meaningful.
type Behavior struct {
	Kind     Kind
	Value    interface{}
	Err      *ubersmith.ResponseError
	Handler  HandlerFunc
	Envelope ubersmith.Envelope
	Body     []byte
}

// Method is the stub of one API method together with its call history.
type Method struct {
	mux sync.Mutex

	name          string // dotted name, e.g. client.get
	behavior      Behavior
	calls         []Call
	expectedTimes int
}

func newMethod(name string) *Method {
	return &Method{
		name:          name,
		expectedTimes: MockUnlimitedTimes,
	}
}

func (m *Method) Name() string {
	return m.name
}

// Behavior returns the current behavior.
func (m *Method) Behavior() Behavior {
	m.mux.Lock()
	defer m.mux.Unlock()

	return m.behavior
}

// Set replaces the behavior.
func (m *Method) Set(behavior Behavior) *Method {
	m.mux.Lock()
	m.behavior = behavior
	m.mux.Unlock()

	return m
}

// Return makes every call succeed with value as data.
func (m *Method) Return(value interface{}) *Method {
	return m.Set(Behavior{Kind: FixedValue, Value: value})
}

// ReturnError makes every call fail with message and code.
func (m *Method) ReturnError(message string, code int) *Method {
	return m.Fail(ubersmith.NewResponseError(message, code))
}

// Fail makes every call fail with err.
func (m *Method) Fail(err *ubersmith.ResponseError) *Method {
	return m.Set(Behavior{Kind: ErrorResponse, Err: err})
}

// HandleFunc computes each response with fn.
func (m *Method) HandleFunc(fn HandlerFunc) *Method {
	return m.Set(Behavior{Kind: DynamicHandler, Handler: fn})
}

// SetRawResponse answers every call with env as is.
func (m *Method) SetRawResponse(env ubersmith.Envelope) *Method {
	return m.Set(Behavior{Kind: RawEnvelope, Envelope: env})
}

// SetRawBody answers every call with body instead of an encoded envelope.
func (m *Method) SetRawBody(body []byte) *Method {
	return m.Set(Behavior{Kind: RawBody, Body: append([]byte(nil), body...)})
}

// Times sets how many calls are expected before the mock is torn down.
func (m *Method) Times(i int) *Method {
	if i < 0 {
		panic("Invalid times. It must be non-negative integer value.")
	}

	m.mux.Lock()
	m.expectedTimes = i
	m.mux.Unlock()

	return m
}

// AnyTimes drops the call count expectation.
func (m *Method) AnyTimes() *Method {
	m.mux.Lock()
	m.expectedTimes = MockUnlimitedTimes
	m.mux.Unlock()

	return m
}

func (m *Method) IsTimesMatched() bool {
	expected, invoked := m.Expectation()

	return expected == MockUnlimitedTimes || expected == invoked
}

// Expectation returns the expected and the recorded number of calls.
func (m *Method) Expectation() (expected, invoked int) {
	m.mux.Lock()
	defer m.mux.Unlock()

	return m.expectedTimes, len(m.calls)
}

func (m *Method) Calls() []Call {
	m.mux.Lock()
	defer m.mux.Unlock()

	return append([]Call{}, m.calls...)
}

func (m *Method) Called() bool {
	return m.CallCount() > 0
}

func (m *Method) CallCount() int {
	m.mux.Lock()
	defer m.mux.Unlock()

	return len(m.calls)
}

// LastCall returns the most recent call, or ErrNoCalls.
func (m *Method) LastCall() (Call, error) {
	m.mux.Lock()
	defer m.mux.Unlock()

	if len(m.calls) == 0 {
		return Call{}, fmt.Errorf("%w: %s", ErrNoCalls, m.name)
	}

	return m.calls[len(m.calls)-1], nil
}

func (m *Method) CheckCalledWith(params ubersmith.Params) error {
	return m.check(MockUnlimitedTimes, params, false)
}

func (m *Method) CheckCalledWithExactly(params ubersmith.Params) error {
	return m.check(MockUnlimitedTimes, params, true)
}

func (m *Method) CheckCalledOnceWith(params ubersmith.Params) error {
	return m.check(MockDefaultTimes, params, false)
}

func (m *Method) CheckCalledOnceWithExactly(params ubersmith.Params) error {
	return m.check(MockDefaultTimes, params, true)
}

// AssertCalledWith checks the last call like Call.AssertCalledWith.
func (m *Method) AssertCalledWith(t assert.TestingT, params ubersmith.Params, msgAndArgs ...interface{}) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}

	return report(t, m.CheckCalledWith(params), msgAndArgs...)
}

func (m *Method) AssertCalledWithExactly(t assert.TestingT, params ubersmith.Params, msgAndArgs ...interface{}) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}

	return report(t, m.CheckCalledWithExactly(params), msgAndArgs...)
}

// AssertCalledOnceWith also requires exactly one recorded call.
func (m *Method) AssertCalledOnceWith(t assert.TestingT, params ubersmith.Params, msgAndArgs ...interface{}) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}

	return report(t, m.CheckCalledOnceWith(params), msgAndArgs...)
}

func (m *Method) AssertCalledOnceWithExactly(t assert.TestingT, params ubersmith.Params, msgAndArgs ...interface{}) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}

	return report(t, m.CheckCalledOnceWithExactly(params), msgAndArgs...)
}

func (m *Method) check(times int, params ubersmith.Params, exact bool) error {
	calls := m.Calls()

	aerr := &AssertionError{
		Method:   m.name,
		Expected: times,
		Invoked:  len(calls),
	}
	if len(calls) == 0 {
		if times == MockUnlimitedTimes {
			return fmt.Errorf("%w: %s", ErrNoCalls, m.name)
		}

		return aerr
	}

	compareParams(aerr, calls[len(calls)-1].Params, params, exact)
	if aerr.empty() {
		return nil
	}

	return aerr
}

// invoke computes the response for one call and records it. Unconfigured
// methods answer with fallback.
func (m *Method) invoke(params ubersmith.Values, r *http.Request, fallback Behavior) (*response, error) {
	behavior := m.Behavior()
	if behavior.Kind == Unconfigured {
		behavior = fallback
	}

	resp := &response{ctx: newContext()}

	switch behavior.Kind {
	case FixedValue:
		resp.env = ubersmith.SuccessEnvelope(behavior.Value)

	case ErrorResponse:
		rerr := behavior.Err
		if rerr == nil {
			rerr = &ubersmith.ResponseError{}
		}
		resp.env = ubersmith.ErrorEnvelope(rerr.Message, rerr.Code)

	case RawEnvelope:
		resp.env = behavior.Envelope

	case RawBody:
		resp.body = behavior.Body
		resp.raw = true

	case DynamicHandler:
		if behavior.Handler == nil {
			resp.env = unconfiguredEnvelope(m.name)
			break
		}

		data, err := behavior.Handler(m.name, params.Clone(), r, resp.ctx)
		if err != nil {
			var rerr *ubersmith.ResponseError
			if !errors.As(err, &rerr) {
				m.record(newCall(m.name, params, ubersmith.Envelope{}))

				return nil, err
			}

			resp.env = ubersmith.ErrorEnvelope(rerr.Message, rerr.Code)
		} else {
			resp.env = ubersmith.SuccessEnvelope(data)
		}

	default:
		resp.env = unconfiguredEnvelope(m.name)
	}

	m.record(newCall(m.name, params, resp.env))

	return resp, nil
}

func (m *Method) record(call Call) {
	m.mux.Lock()
	m.calls = append(m.calls, call)
	m.mux.Unlock()
}

func unconfiguredEnvelope(name string) ubersmith.Envelope {
	return ubersmith.Envelope{
		Data:         "",
		ErrorMessage: fmt.Sprintf("ubermock: %s for %s", ErrNotConfigured, name),
	}
}
