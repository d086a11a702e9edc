package ubermock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hivelocity/ubermock/ubersmith"
)

type activeFlag bool

func Test_NewCall(t *testing.T) {
	params := ubersmith.Values{"client_id": "1"}

	call := newCall("client.get", params, ubersmith.SuccessEnvelope("ok"))
	assert.Equal(t, "client.get", call.Method)
	assert.Equal(t, "ok", call.Response)

	// params are copied
	params["client_id"] = "2"
	assert.Equal(t, "1", call.Params["client_id"])

	call = newCall("client.get", params, ubersmith.ErrorEnvelope("nope", 3))
	assert.Nil(t, call.Response)
	assert.False(t, call.RawResponse.Status)
}

func Test_CallCheckCalledWith(t *testing.T) {
	call := newCall("client.get", ubersmith.Values{
		"client_id": "123",
		"active":    "1",
		"meta[a]":   "b",
	}, ubersmith.SuccessEnvelope(nil))

	tests := []struct {
		name   string
		params ubersmith.Params
		exact  bool
		ok     bool
	}{
		{"subset int", ubersmith.Params{"client_id": 123}, false, true},
		{"subset string", ubersmith.Params{"client_id": "123"}, false, true},
		{"subset bool", ubersmith.Params{"active": true}, false, true},
		{"subset named bool", ubersmith.Params{"active": activeFlag(true)}, false, true},
		{"mismatch named bool", ubersmith.Params{"active": activeFlag(false)}, false, false},
		{"subset nested", ubersmith.Params{"meta": map[string]string{"a": "b"}}, false, true},
		{"empty subset", nil, false, true},
		{"missing", ubersmith.Params{"not_passed": 123}, false, false},
		{"mismatch", ubersmith.Params{"client_id": "shfourteenteen"}, false, false},
		{"exact", ubersmith.Params{"client_id": 123, "active": 1, "meta": map[string]string{"a": "b"}}, true, true},
		{"exact with subset", ubersmith.Params{"client_id": 123}, true, false},
		{"exact empty", nil, true, false},
		{"exact with extra", ubersmith.Params{"client_id": 123, "active": 1, "meta[a]": "b", "x": 1}, true, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var err error
			if tc.exact {
				err = call.CheckCalledWithExactly(tc.params)
			} else {
				err = call.CheckCalledWith(tc.params)
			}

			if tc.ok {
				assert.NoError(t, err)
				return
			}

			var aerr *AssertionError
			require.ErrorAs(t, err, &aerr)
			assert.Equal(t, "client.get", aerr.Method)
		})
	}
}

func Test_CallAssertionMessages(t *testing.T) {
	call := newCall("client.get", ubersmith.Values{"client_id": "123", "other_thing": "456"}, ubersmith.SuccessEnvelope(nil))

	err := call.CheckCalledWithExactly(ubersmith.Params{"client_id": 124, "brand": "x"})
	require.Error(t, err)
	assert.Equal(t, `client.get: missing params: brand; unexpected params: other_thing; mismatched params: client_id="123" (want "124")`, err.Error())

	ft := new(fakeT)
	assert.False(t, call.AssertCalledWith(ft, ubersmith.Params{"brand": "x"}))
	assert.True(t, ft.failed)
	require.Len(t, ft.messages, 1)
	assert.Contains(t, ft.messages[0], "missing params: brand")

	ft = new(fakeT)
	assert.True(t, call.AssertCalledWithExactly(ft, ubersmith.Params{"client_id": 123, "other_thing": 456}))
	assert.False(t, ft.failed)
}
