/*
Package ubermock fakes the Ubersmith API for tests of code built on the
ubersmith client.

A Mock is an http.RoundTripper. Every request it receives is decoded back into
the API method name and its wire-level parameters, answered according to the
stub configured for that method and recorded as a Call.

	func TestAddClient(t *testing.T) {
		mock := ubermock.New(t) // stubs http.DefaultTransport until the test ends
		mock.Method("client.add").Return(1234)

		id, err := client.Client().Add(ctx, ubersmith.Params{"login": "test", "password": "abc"})

		mock.Method("client.add").AssertCalledOnceWith(t, ubersmith.Params{"login": "test"})
	}

Stubs are created on first access, so reading mock.Method("client.get") never
fails. A stub answers with a fixed value (Return), an error (ReturnError), a
handler computing each response (HandleFunc) or a raw envelope
(SetRawResponse). Responses always go through the client's own decoding, so a
stubbed error surfaces as *ubersmith.ResponseError exactly like a real one.

Parameters are compared after the normalization the client applies before
sending them, which makes 123 and "123" equal.
*/
package ubermock
