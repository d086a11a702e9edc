package ubermock

import (
	"bytes"
	"io"
	"net/http"
	"strconv"

	"github.com/hivelocity/ubermock/ubersmith"
)

// response is the outcome of one intercepted call before it is written.
type response struct {
	env  ubersmith.Envelope
	ctx  *Context
	body []byte
	raw  bool // send body instead of the encoded env
}

// RoundTrip turns the response into the HTTP answer the client decodes.
func (res *response) RoundTrip(req *http.Request) (*http.Response, error) {
	body := res.body
	if !res.raw {
		b, err := ubersmith.JSON.Marshal(res.env)
		if err != nil {
			return nil, err
		}

		body = b
	}

	header := res.ctx.Header.Clone()
	if header == nil {
		header = http.Header{}
	}
	if header.Get("Content-Type") == "" {
		header.Set("Content-Type", "application/json")
	}

	code := res.ctx.StatusCode
	if code == 0 {
		code = http.StatusOK
	}

	// adjust response content length header if unexists
	if _, ok := header["Content-Length"]; !ok {
		header.Set("Content-Length", strconv.Itoa(len(body)))
	}

	return &http.Response{
		Status:        strconv.Itoa(code) + " " + http.StatusText(code),
		StatusCode:    code,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(body)),
		ContentLength: int64(len(body)),
		Request:       req,
	}, nil
}
