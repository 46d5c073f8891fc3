package graph

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/igbuch/fbRads/log"
)

func newTestClient(t *testing.T, serverURL string) Client {
	t.Helper()

	client, err := NewClient("test-token", ClientOptions{
		BaseURL:           serverURL,
		Version:           "v19.0",
		RetryAttempts:     3,
		RetryDelay:        1 * time.Millisecond,
		RequestsPerSecond: 1000,
	}, log.NewLogger("error"))
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	return client
}

func TestGetInjectsAccessToken(t *testing.T) {
	var gotToken, gotField, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotToken = r.URL.Query().Get("access_token")
		gotField = r.URL.Query().Get("fields")
		w.Write([]byte(`{"id":"123"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	body, err := client.Get(context.Background(), "123", Params{"fields": "id,name"})
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	if gotPath != "/v19.0/123" {
		t.Errorf("path = %q, want /v19.0/123", gotPath)
	}
	if gotToken != "test-token" {
		t.Errorf("access_token = %q, want test-token", gotToken)
	}
	if gotField != "id,name" {
		t.Errorf("fields = %q, want id,name", gotField)
	}
	if string(body) != `{"id":"123"}` {
		t.Errorf("body = %q", body)
	}
}

func TestPostSendsFormBody(t *testing.T) {
	var gotToken, gotName, gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("ParseForm failed: %v", err)
		}
		gotContentType = r.Header.Get("Content-Type")
		gotToken = r.PostFormValue("access_token")
		gotName = r.PostFormValue("name")
		w.Write([]byte(`{"id":"456"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.Post(context.Background(), "act_1/customaudiences", Params{"name": "my audience"})
	if err != nil {
		t.Fatalf("Post failed: %v", err)
	}

	if gotContentType != "application/x-www-form-urlencoded" {
		t.Errorf("content type = %q", gotContentType)
	}
	if gotToken != "test-token" {
		t.Errorf("access_token = %q, want test-token", gotToken)
	}
	if gotName != "my audience" {
		t.Errorf("name = %q, want 'my audience'", gotName)
	}
}

func TestErrorEnvelopeParsing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"Invalid parameter","type":"OAuthException","code":100,"error_subcode":2018001,"fbtrace_id":"AbCdEf"}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.Get(context.Background(), "bogus", nil)
	if err == nil {
		t.Fatal("expected an error")
	}

	var apiError *Error
	if !errors.As(err, &apiError) {
		t.Fatalf("error is %T, want *Error", err)
	}
	if apiError.HTTPStatus != http.StatusBadRequest {
		t.Errorf("HTTPStatus = %d, want 400", apiError.HTTPStatus)
	}
	if apiError.Code != 100 || apiError.Subcode != 2018001 {
		t.Errorf("code = %d subcode = %d", apiError.Code, apiError.Subcode)
	}
	if apiError.TraceID != "AbCdEf" {
		t.Errorf("trace id = %q", apiError.TraceID)
	}
}

func TestClientErrorsAreNotRetried(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"Invalid parameter","type":"OAuthException","code":100}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.Get(context.Background(), "bogus", nil)
	if err == nil {
		t.Fatal("expected an error")
	}
	if requests != 1 {
		t.Errorf("requests = %d, want 1", requests)
	}
}

func TestServerErrorsAreRetried(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if requests < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error":{"message":"transient","code":1}}`))
			return
		}
		w.Write([]byte(`{"id":"123"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	body, err := client.Get(context.Background(), "123", nil)
	if err != nil {
		t.Fatalf("Get failed after retries: %v", err)
	}
	if requests != 3 {
		t.Errorf("requests = %d, want 3", requests)
	}
	if string(body) != `{"id":"123"}` {
		t.Errorf("body = %q", body)
	}
}

func TestFetchAllFollowsCursors(t *testing.T) {
	type entry struct {
		ID string `json:"id"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("after") == "" {
			w.Write([]byte(`{"data":[{"id":"1"},{"id":"2"}],"paging":{"cursors":{"after":"cursor-a"},"next":"more"}}`))
			return
		}
		if r.URL.Query().Get("after") != "cursor-a" {
			t.Errorf("after = %q, want cursor-a", r.URL.Query().Get("after"))
		}
		w.Write([]byte(`{"data":[{"id":"3"}],"paging":{"cursors":{"after":"cursor-b"}}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	entries, err := FetchAll[entry](context.Background(), client, "act_1/customaudiences", Params{"limit": "2"})
	if err != nil {
		t.Fatalf("FetchAll failed: %v", err)
	}

	if len(entries) != 3 {
		t.Fatalf("len(entries) = %d, want 3", len(entries))
	}
	for i, want := range []string{"1", "2", "3"} {
		if entries[i].ID != want {
			t.Errorf("entries[%d].ID = %q, want %q", i, entries[i].ID, want)
		}
	}
}
