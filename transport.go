package ubermock

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/hivelocity/ubermock/ubersmith"
)

var (
	httpDefaultTransport = http.DefaultTransport // internal
)

// TestingT is the subset of *testing.T used by New.
type TestingT interface {
	assert.TestingT
	Helper()
	Cleanup(func())
}

// Option configures a Mock.
type Option func(m *Mock)

// WithLogger sets the logger intercepted calls are reported to.
func WithLogger(logger *zap.Logger) Option {
	return func(m *Mock) {
		m.logger = logger
	}
}

// Mock implements http.RoundTripper. It answers Ubersmith API requests with the
// behavior configured on its method stubs instead of making a real request,
// recording every call.
type Mock struct {
	mux sync.Mutex

	namespaces map[string]*Namespace
	fallback   Behavior // answer of unconfigured methods
	logger     *zap.Logger
	stubbed    bool
	testing    assert.TestingT
}

func NewMock(opts ...Option) *Mock {
	m := &Mock{
		namespaces: make(map[string]*Namespace),
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = zap.NewNop()
	}

	return m
}

// New returns a fresh Mock for one test. It stubs http.DefaultTransport and
// registers a cleanup which restores it, verifies Times expectations and
// resets the mock.
func New(t TestingT, opts ...Option) *Mock {
	t.Helper()

	m := NewMock(opts...)
	m.StubDefaultTransport(t)

	t.Cleanup(func() {
		m.UnstubDefaultTransport()
		m.Reset()
	})

	return m
}

// Namespace returns the namespace of name, creating it on first use.
func (m *Mock) Namespace(name string) *Namespace {
	m.mux.Lock()
	defer m.mux.Unlock()

	ns, ok := m.namespaces[name]
	if !ok {
		ns = newNamespace(name)

		m.namespaces[name] = ns
	}

	return ns
}

// Method resolves a dotted path such as "client.get". The first segment
// selects the namespace and the rest the method within it; a path without a
// dot lives in the unnamed namespace.
func (m *Mock) Method(path string) *Method {
	namespace, name := "", path
	if i := strings.Index(path, "."); i >= 0 {
		namespace, name = path[:i], path[i+1:]
	}

	return m.Namespace(namespace).Method(name)
}

// Methods returns every stub known to the mock sorted by dotted name.
func (m *Mock) Methods() []*Method {
	m.mux.Lock()
	namespaces := make([]*Namespace, 0, len(m.namespaces))
	for _, ns := range m.namespaces {
		namespaces = append(namespaces, ns)
	}
	m.mux.Unlock()

	var methods []*Method
	for _, ns := range namespaces {
		methods = append(methods, ns.Methods()...)
	}
	sort.Slice(methods, func(i, j int) bool {
		return methods[i].name < methods[j].name
	})

	return methods
}

// Invoke runs method against its stub and returns the envelope the client
// would receive together with the status code and headers of the response.
// Call records are appended exactly as for RoundTrip. For RawBody stubs the
// envelope is the zero value; use RoundTrip to see the body.
func (m *Mock) Invoke(method string, params ubersmith.Values, r *http.Request) (ubersmith.Envelope, *Context, error) {
	res, err := m.invoke(method, params, r)
	if err != nil {
		return ubersmith.Envelope{}, nil, err
	}

	return res.env, res.ctx, nil
}

func (m *Mock) invoke(method string, params ubersmith.Values, r *http.Request) (*response, error) {
	if method == "" {
		return nil, ErrMethodEmpty
	}
	if params == nil {
		params = ubersmith.Values{}
	}

	m.mux.Lock()
	fallback := m.fallback
	m.mux.Unlock()

	res, err := m.Method(method).invoke(params, r, fallback)
	if err != nil {
		m.logger.Debug("handler failed",
			zap.String("method", method),
			zap.Any("params", params),
			zap.Error(err),
		)

		return nil, err
	}

	m.logger.Debug("intercepted call",
		zap.String("method", method),
		zap.Any("params", params),
		zap.Bool("status", res.env.Status),
	)

	return res, nil
}

// RoundTrip implements http.RoundTripper.
func (m *Mock) RoundTrip(req *http.Request) (*http.Response, error) {
	method, params, err := parseForm(req)
	if err != nil {
		return nil, err
	}

	res, err := m.invoke(method, params, req)
	if err != nil {
		return nil, err
	}

	return res.RoundTrip(req)
}

// SetDefaultBehavior sets the behavior of every method which has none
// configured. The zero Behavior restores the "no response configured" error.
func (m *Mock) SetDefaultBehavior(behavior Behavior) {
	m.mux.Lock()
	m.fallback = behavior
	m.mux.Unlock()
}

// SetDefaultHandleFunc answers every unconfigured method with fn.
func (m *Mock) SetDefaultHandleFunc(fn HandlerFunc) {
	m.SetDefaultBehavior(Behavior{Kind: DynamicHandler, Handler: fn})
}

// HTTPClient returns an *http.Client whose requests are served by the mock.
func (m *Mock) HTTPClient() *http.Client {
	return &http.Client{Transport: m}
}

// StubDefaultTransport stubs http.DefaultTransport with the mock.
func (m *Mock) StubDefaultTransport(t assert.TestingT) {
	m.mux.Lock()
	defer m.mux.Unlock()

	if !m.stubbed {
		m.stubbed = true

		http.DefaultTransport = m
	}

	m.testing = t
}

// UnstubDefaultTransport restores http.DefaultTransport and fails the test
// bound by StubDefaultTransport when a Times expectation was not met.
func (m *Mock) UnstubDefaultTransport() {
	m.mux.Lock()
	if m.stubbed {
		m.stubbed = false

		http.DefaultTransport = httpDefaultTransport
	}

	t := m.testing
	m.testing = nil
	m.mux.Unlock()

	if t != nil {
		m.Verify(t)
	}
}

// Verify fails t for every method whose Times expectation was not met.
func (m *Mock) Verify(t assert.TestingT) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}

	var errlogs []string
	for _, method := range m.Methods() {
		if !method.IsTimesMatched() {
			expected, invoked := method.Expectation()

			errlogs = append(errlogs, fmt.Sprintf("Expected method %s with %d times, but got %d times", method.name, expected, invoked))
		}
	}

	if len(errlogs) == 0 {
		return true
	}

	return assert.Fail(t, strings.Join(errlogs, "\n"))
}

// Reset discards every namespace and stub. Previously returned stubs are
// detached from the mock.
func (m *Mock) Reset() {
	m.mux.Lock()
	defer m.mux.Unlock()

	m.namespaces = make(map[string]*Namespace)
	m.fallback = Behavior{}
}
