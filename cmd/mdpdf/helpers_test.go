package main

// Notes:
// - Test helpers and mocks shared by the CLI tests.
// No coverage gaps: this is test infrastructure, not production code.

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/alnah/go-mdpdf"
)

// ---------------------------------------------------------------------------
// Mock Implementations
// ---------------------------------------------------------------------------

// mockConverter records the request and returns a fixed result.
type mockConverter struct {
	result  *mdpdf.Result
	err     error
	gotReq  mdpdf.Request
	calls   int
	closed  bool
	numOpts int
}

func (m *mockConverter) ConvertFile(_ context.Context, req mdpdf.Request) (*mdpdf.Result, error) {
	m.calls++
	m.gotReq = req
	if m.err != nil {
		return nil, m.err
	}
	if m.result != nil {
		return m.result, nil
	}
	return &mdpdf.Result{
		HTML:  []byte("<!DOCTYPE html><html><body>ok</body></html>"),
		PDF:   []byte("%PDF-1.7"),
		Title: "Report",
		Pages: 1,
	}, nil
}

func (m *mockConverter) Close() error {
	m.closed = true
	return nil
}

// testEnv bundles an Environment with its captured output.
type testEnv struct {
	*Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	conv   *mockConverter
}

// newTestEnv returns an Environment with captured output, the given process
// environment and a mock converter. A nil conv uses a successful mock.
func newTestEnv(t *testing.T, vars map[string]string, conv *mockConverter) *testEnv {
	t.Helper()

	if conv == nil {
		conv = &mockConverter{}
	}
	var stdout, stderr bytes.Buffer
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	env := &Environment{
		Now:    func() time.Time { return now },
		Stdout: &stdout,
		Stderr: &stderr,
		Getenv: func(k string) string { return vars[k] },
		Environ: func() []string {
			out := make([]string, 0, len(vars))
			for k, v := range vars {
				out = append(out, k+"="+v)
			}
			return out
		},
		NewConverter: func(opts ...mdpdf.Option) (Converter, error) {
			conv.numOpts = len(opts)
			return conv, nil
		},
	}
	return &testEnv{Environment: env, stdout: &stdout, stderr: &stderr, conv: conv}
}
