package ubermock

import (
	"context"
	"fmt"
	"testing"

	"github.com/hivelocity/ubermock/ubersmith"
)

const (
	testBaseURL = "https://billing.example.com/api/2.0/"
)

// fakeT records failures instead of failing the running test.
type fakeT struct {
	failed   bool
	messages []string
	cleanups []func()
}

func (ft *fakeT) Errorf(format string, args ...interface{}) {
	ft.failed = true
	ft.messages = append(ft.messages, fmt.Sprintf(format, args...))
}

func (ft *fakeT) Helper() {}

func (ft *fakeT) Cleanup(fn func()) {
	ft.cleanups = append(ft.cleanups, fn)
}

func (ft *fakeT) runCleanups() {
	for i := len(ft.cleanups) - 1; i >= 0; i-- {
		ft.cleanups[i]()
	}
	ft.cleanups = nil
}

func newTestClient(t *testing.T) *ubersmith.Client {
	t.Helper()

	client, err := ubersmith.New(ubersmith.Config{BaseURL: testBaseURL})
	if err != nil {
		t.Fatalf("ubersmith.New: %v", err)
	}

	return client
}

func intPtr(i int) *int {
	return &i
}

var ctx = context.Background()
