package ubermock

import (
	"fmt"
	"net/http"
	"sort"

	"github.com/hivelocity/ubermock/ubersmith"
)

// compareParams checks actual against expected after normalizing expected
// the same way the client serializes parameters. With exact, keys present in
// actual but not in expected are reported too.
func compareParams(aerr *AssertionError, actual ubersmith.Values, expected ubersmith.Params, exact bool) {
	want := ubersmith.EncodeParams(expected)

	for _, key := range want.Keys() {
		got, ok := actual[key]
		if !ok {
			aerr.Missing = append(aerr.Missing, key)
			continue
		}

		if got != want[key] {
			aerr.Mismatch = append(aerr.Mismatch, fmt.Sprintf("%s=%q (want %q)", key, got, want[key]))
		}
	}

	if !exact {
		return
	}

	for _, key := range actual.Keys() {
		if _, ok := want[key]; !ok {
			aerr.Extra = append(aerr.Extra, key)
		}
	}
	sort.Strings(aerr.Extra)
}

// parseForm returns the method name and params of an intercepted request. It
// reads the form body of POST requests and the query string otherwise.
func parseForm(r *http.Request) (string, ubersmith.Values, error) {
	if err := r.ParseForm(); err != nil {
		return "", nil, err
	}

	method, values := ubersmith.ValuesFromForm(r.Form)
	if method == "" {
		return "", nil, ErrMethodEmpty
	}

	return method, values, nil
}
