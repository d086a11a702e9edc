package ubermock

import (
	"errors"
	"net/http"
	"testing"

	"github.com/golib/assert"

	"github.com/hivelocity/ubermock/ubersmith"
)

func Test_NewMethod(t *testing.T) {
	it := assert.New(t)

	method := newMethod("client.get")
	it.Equal("client.get", method.Name())
	it.Equal(Unconfigured, method.Behavior().Kind)
	it.False(method.Called())
	it.Equal(0, method.CallCount())
	it.True(method.IsTimesMatched())

	_, err := method.LastCall()
	it.True(errors.Is(err, ErrNoCalls))
}

func Test_MethodUnconfigured(t *testing.T) {
	it := assert.New(t)

	method := newMethod("client.get")

	res, err := method.invoke(ubersmith.Values{"client_id": "1"}, nil, Behavior{})
	it.Nil(err)
	it.False(res.env.Status)
	it.Equal("ubermock: No response configured for client.get", res.env.ErrorMessage)
	it.Nil(res.env.ErrorCode)

	// still recorded
	it.Equal(1, method.CallCount())
}

func Test_MethodBehaviors(t *testing.T) {
	it := assert.New(t)

	method := newMethod("client.get")

	method.Return(map[string]string{"name": "x"})
	it.Equal(FixedValue, method.Behavior().Kind)

	res, err := method.invoke(ubersmith.Values{}, nil, Behavior{})
	it.Nil(err)
	it.Equal(ubersmith.SuccessEnvelope(map[string]string{"name": "x"}), res.env)

	// setting an error clears the value
	method.ReturnError("Invalid client!", 1)
	it.Equal(ErrorResponse, method.Behavior().Kind)
	it.Nil(method.Behavior().Value)

	res, err = method.invoke(ubersmith.Values{}, nil, Behavior{})
	it.Nil(err)
	it.Equal(ubersmith.ErrorEnvelope("Invalid client!", 1), res.env)

	method.SetRawResponse(ubersmith.Envelope{Status: true, Data: 7})
	it.Equal(RawEnvelope, method.Behavior().Kind)
	it.Nil(method.Behavior().Err)

	res, err = method.invoke(ubersmith.Values{}, nil, Behavior{})
	it.Nil(err)
	it.Equal(ubersmith.Envelope{Status: true, Data: 7}, res.env)

	method.SetRawBody([]byte("<html>"))
	it.Equal(RawBody, method.Behavior().Kind)

	res, err = method.invoke(ubersmith.Values{}, nil, Behavior{})
	it.Nil(err)
	it.Equal([]byte("<html>"), res.body)

	it.Equal(4, method.CallCount())

	call, _ := method.LastCall()
	it.Equal(ubersmith.Envelope{}, call.RawResponse)
	it.Nil(call.Response)
}

func Test_MethodHandleFunc(t *testing.T) {
	it := assert.New(t)

	boom := errors.New("boom")
	request, _ := http.NewRequest("POST", testBaseURL, nil)

	method := newMethod("client.get")
	method.HandleFunc(func(name string, params ubersmith.Values, r *http.Request, ctx *Context) (interface{}, error) {
		it.Equal("client.get", name)
		it.Equal(request, r)

		switch params["client_id"] {
		case "1":
			ctx.Header.Set("X-Testing", "testing")
			return "ok", nil
		case "2":
			return nil, ubersmith.NewResponseError("Invalid client!", 1)
		}

		return nil, boom
	})

	res, err := method.invoke(ubersmith.Values{"client_id": "1"}, request, Behavior{})
	it.Nil(err)
	it.Equal(ubersmith.SuccessEnvelope("ok"), res.env)
	it.Equal("testing", res.ctx.Header.Get("X-Testing"))

	// same envelope as ReturnError
	res, err = method.invoke(ubersmith.Values{"client_id": "2"}, request, Behavior{})
	it.Nil(err)
	it.Equal(ubersmith.ErrorEnvelope("Invalid client!", 1), res.env)

	res, err = method.invoke(ubersmith.Values{"client_id": "3"}, request, Behavior{})
	it.Equal(boom, err)
	it.Nil(res)

	it.Equal(3, method.CallCount())
}

func Test_MethodTimes(t *testing.T) {
	it := assert.New(t)

	method := newMethod("client.add").Return(1).Times(2)

	expected, invoked := method.Expectation()
	it.Equal(2, expected)
	it.Equal(0, invoked)
	it.False(method.IsTimesMatched())

	method.invoke(ubersmith.Values{}, nil, Behavior{})
	method.invoke(ubersmith.Values{}, nil, Behavior{})
	it.True(method.IsTimesMatched())

	method.invoke(ubersmith.Values{}, nil, Behavior{})
	it.False(method.IsTimesMatched())

	method.AnyTimes()
	it.True(method.IsTimesMatched())
}

func Test_MethodCheckCalledOnce(t *testing.T) {
	it := assert.New(t)

	method := newMethod("client.get").Return(nil)

	// no calls at all
	it.True(errors.Is(method.CheckCalledWith(ubersmith.Params{}), ErrNoCalls))

	var aerr *AssertionError
	it.True(errors.As(method.CheckCalledOnceWith(ubersmith.Params{}), &aerr))
	it.Equal(1, aerr.Expected)
	it.Equal(0, aerr.Invoked)

	method.invoke(ubersmith.Values{"client_id": "123"}, nil, Behavior{})
	it.Nil(method.CheckCalledOnceWith(ubersmith.Params{"client_id": 123}))
	it.Nil(method.CheckCalledOnceWithExactly(ubersmith.Params{"client_id": "123"}))

	// a second call fails the once variants even when params match
	method.invoke(ubersmith.Values{"client_id": "123"}, nil, Behavior{})
	it.Nil(method.CheckCalledWith(ubersmith.Params{"client_id": 123}))
	it.Nil(method.CheckCalledWithExactly(ubersmith.Params{"client_id": 123}))
	it.NotNil(method.CheckCalledOnceWith(ubersmith.Params{"client_id": 123}))
	it.EqualError(method.CheckCalledOnceWithExactly(ubersmith.Params{"client_id": 123}), "client.get: expected 1 call(s), got 2")

	ft := new(fakeT)
	it.False(method.AssertCalledOnceWith(ft, ubersmith.Params{"client_id": 123}))
	it.False(method.AssertCalledWithExactly(ft, ubersmith.Params{}))
	it.True(method.AssertCalledWith(ft, ubersmith.Params{"client_id": 123}))
	it.Equal(2, len(ft.messages))
}

func Test_KindString(t *testing.T) {
	it := assert.New(t)

	it.Equal("fixed value", FixedValue.String())
	it.Equal("dynamic handler", DynamicHandler.String())
	it.Equal("Kind(42)", Kind(42).String())
}

func Test_MethodFallback(t *testing.T) {
	it := assert.New(t)

	method := newMethod("client.get")

	res, err := method.invoke(ubersmith.Values{}, nil, Behavior{Kind: FixedValue, Value: "default"})
	it.Nil(err)
	it.Equal(ubersmith.SuccessEnvelope("default"), res.env)

	// configured behavior wins over the fallback
	method.Return("own")

	res, err = method.invoke(ubersmith.Values{}, nil, Behavior{Kind: FixedValue, Value: "default"})
	it.Nil(err)
	it.Equal(ubersmith.SuccessEnvelope("own"), res.env)
	it.Equal(2, method.CallCount())
}
