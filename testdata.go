package ubermock

import (
	"bytes"
	"fmt"
	"io"

	"gopkg.in/yaml.v2"
)

// Fixture is a canned response for one method.
type Fixture struct {
	Data  interface{}   `yaml:"data"`
	Error *FixtureError `yaml:"error"`
	Times *int          `yaml:"times"`
}

type FixtureError struct {
	Message string `yaml:"message"`
	Code    int    `yaml:"code"`
}

// Fixtures maps dotted method names to canned responses. A YAML document
// looks like:
//
//	client.get:
//	  data:
//	    client_id: 1
//	client.update:
//	  error:
//	    message: Invalid client!
//	    code: 1
//	  times: 1
type Fixtures map[string]Fixture

// LoadFixtures decodes a YAML (or JSON) document read from r.
func LoadFixtures(r io.Reader) (Fixtures, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var fixtures Fixtures
	if err := yaml.Unmarshal(data, &fixtures); err != nil {
		return nil, err
	}

	for name, fixture := range fixtures {
		fixture.Data = cleanupYAML(fixture.Data)

		fixtures[name] = fixture
	}

	return fixtures, nil
}

// NewFixturesFromIface accepts Fixtures, a YAML document as string or []byte,
// or an io.Reader.
func NewFixturesFromIface(v interface{}) (Fixtures, error) {
	switch t := v.(type) {
	case Fixtures:
		return t, nil

	case string:
		return LoadFixtures(bytes.NewBufferString(t))

	case []byte:
		return LoadFixtures(bytes.NewBuffer(t))

	case io.Reader:
		return LoadFixtures(t)
	}

	return nil, ErrUnsupported
}

// Load configures the stubs named by fixtures.
func (m *Mock) Load(fixtures Fixtures) {
	for name, fixture := range fixtures {
		method := m.Method(name)

		if fixture.Error != nil {
			method.ReturnError(fixture.Error.Message, fixture.Error.Code)
		} else {
			method.Return(fixture.Data)
		}

		if fixture.Times != nil {
			method.Times(*fixture.Times)
		}
	}
}

// cleanupYAML converts the map[interface{}]interface{} values produced by
// yaml.v2 into map[string]interface{} so they encode as JSON objects.
func cleanupYAML(v interface{}) interface{} {
	switch t := v.(type) {
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(t))
		for key, value := range t {
			out[fmt.Sprint(key)] = cleanupYAML(value)
		}

		return out

	case []interface{}:
		out := make([]interface{}, len(t))
		for i, value := range t {
			out[i] = cleanupYAML(value)
		}

		return out
	}

	return v
}
