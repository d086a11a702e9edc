/*
Package ubersmith is a small client for the Ubersmith 2.0 API.

Every API method is addressed by a dotted name such as "client.get". The
client form-encodes the call parameters, posts them with the method name and
decodes the JSON envelope the API answers with:

	{"status": true, "data": ..., "error_message": "", "error_code": null}

An envelope with status false is returned as a *ResponseError carrying the
message and code.

	c, _ := ubersmith.New(ubersmith.Config{BaseURL: "https://billing.example.com/api/2.0/"})
	id, err := c.Client().Add(ctx, ubersmith.Params{"login": "test", "password": "abc"})

Parameter values are normalized to strings before they are sent; see
EncodeParams for the exact rules.
*/
package ubersmith
