package wiki

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient()
	c.httpClient = srv.Client()
	c.searchEndpoint = srv.URL + "/w/api.php"
	c.summaryEndpoint = srv.URL + "/api/rest_v1/page/summary/%s"
	return c
}

func TestSearchTitle(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		status    int
		wantTitle string
		wantErr   error
	}{
		{
			name:      "first title wins",
			body:      `["go language",["Go (programming language)","Go (game)"],["",""],["https://en.wikipedia.org/wiki/Go_(programming_language)",""]]`,
			status:    http.StatusOK,
			wantTitle: "Go (programming language)",
		},
		{
			name:    "empty result list",
			body:    `["zzzzqqq",[],[],[]]`,
			status:  http.StatusOK,
			wantErr: ErrNoMatch,
		},
		{
			name:   "malformed response",
			body:   `{"error":"bad request"}`,
			status: http.StatusOK,
		},
		{
			name:   "server error",
			body:   `upstream exploded`,
			status: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotQuery string
			c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
				gotQuery = r.URL.Query().Get("search")
				if got := r.URL.Query().Get("action"); got != "opensearch" {
					t.Errorf("action = %q, want opensearch", got)
				}
				if got := r.URL.Query().Get("limit"); got != "1" {
					t.Errorf("limit = %q, want 1", got)
				}
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			title, err := c.SearchTitle(context.Background(), "go language")

			if tt.wantTitle != "" {
				if err != nil {
					t.Fatalf("SearchTitle() error = %v", err)
				}
				if title != tt.wantTitle {
					t.Errorf("title = %q, want %q", title, tt.wantTitle)
				}
				if gotQuery != "go language" {
					t.Errorf("search param = %q, want %q", gotQuery, "go language")
				}
				return
			}

			if err == nil {
				t.Fatal("SearchTitle() expected error, got nil")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSummary(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"title":"Go (programming language)","extract":"Go is a statically typed language. It was designed at Google."}`))
	})

	got, err := c.Summary(context.Background(), "Go (programming language)")
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}
	want := "Go is a statically typed language. It was designed at Google."
	if got != want {
		t.Errorf("extract = %q, want %q", got, want)
	}
}

func TestSummaryMissingExtract(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"title":"Some disambiguation page","type":"disambiguation"}`))
	})

	_, err := c.Summary(context.Background(), "Some disambiguation page")
	if !errors.Is(err, ErrNoExtract) {
		t.Errorf("error = %v, want ErrNoExtract", err)
	}
}

func TestSummaryEscapesTitle(t *testing.T) {
	var gotPath string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Write([]byte(`{"extract":"ok"}`))
	})

	if _, err := c.Summary(context.Background(), "Go (programming language)"); err != nil {
		t.Fatalf("Summary() error = %v", err)
	}

	want := "/api/rest_v1/page/summary/" + url.PathEscape("Go (programming language)")
	if gotPath != want {
		t.Errorf("request path = %q, want %q", gotPath, want)
	}
	if strings.Contains(gotPath, " ") {
		t.Errorf("request path %q contains an unescaped space", gotPath)
	}
}

func TestUserAgentHeader(t *testing.T) {
	var gotUA string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte(`["q",["T"],[""],[""]]`))
	})

	if _, err := c.SearchTitle(context.Background(), "q"); err != nil {
		t.Fatalf("SearchTitle() error = %v", err)
	}
	if !strings.HasPrefix(gotUA, "sidekick/") {
		t.Errorf("User-Agent = %q, want sidekick prefix", gotUA)
	}
}
