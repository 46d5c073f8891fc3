package audience

import (
	"context"
	"testing"

	"github.com/igbuch/fbRads/graph"
	"github.com/igbuch/fbRads/log"
)

type requestRecord struct {
	Method string
	Path   string
	Params graph.Params
}

// fakeClient records requests and answers them through a configurable
// responder.
type fakeClient struct {
	requests []requestRecord
	respond  func(method, path string, params graph.Params) ([]byte, error)
}

var _ graph.Client = (*fakeClient)(nil)

func (f *fakeClient) do(method, path string, params graph.Params) ([]byte, error) {
	f.requests = append(f.requests, requestRecord{Method: method, Path: path, Params: params})
	return f.respond(method, path, params)
}

func (f *fakeClient) Get(_ context.Context, path string, params graph.Params) ([]byte, error) {
	return f.do("GET", path, params)
}

func (f *fakeClient) Post(_ context.Context, path string, params graph.Params) ([]byte, error) {
	return f.do("POST", path, params)
}

func (f *fakeClient) Delete(_ context.Context, path string, params graph.Params) ([]byte, error) {
	return f.do("DELETE", path, params)
}

func newTestAccount(t *testing.T, client graph.Client) *Account {
	t.Helper()

	account, err := NewAccount("act_1010", client, log.NewLogger("error"))
	if err != nil {
		t.Fatalf("NewAccount failed: %v", err)
	}
	return account
}
