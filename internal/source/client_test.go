package source

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	goerrors "github.com/goliatone/go-errors"
)

func TestNewClientNormalizesEndpoint(t *testing.T) {
	cases := []struct {
		name     string
		endpoint string
		want     string
	}{
		{"site root", "https://motify.gr", "https://motify.gr/graphql"},
		{"trailing slash", "https://motify.gr/", "https://motify.gr/graphql"},
		{"already graphql", "https://motify.gr/graphql", "https://motify.gr/graphql"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client, err := NewClient(tc.endpoint)
			if err != nil {
				t.Fatalf("new client: %v", err)
			}
			if client.endpoint != tc.want {
				t.Fatalf("endpoint = %q, want %q", client.endpoint, tc.want)
			}
		})
	}

	if _, err := NewClient("   "); !errors.Is(err, ErrEndpointRequired) {
		t.Fatalf("expected ErrEndpointRequired, got %v", err)
	}
}

func TestClientDo(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"value":"ok"}}`))
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, WithAuthToken("secret-token"))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	var out struct {
		Value string `json:"value"`
	}
	vars := map[string]any{"language": "EL"}
	if err := client.Do(context.Background(), "Probe", "query Probe { value }", vars, &out); err != nil {
		t.Fatalf("do: %v", err)
	}

	if out.Value != "ok" {
		t.Fatalf("decoded %q, want ok", out.Value)
	}
	if gotAuth != "Bearer secret-token" {
		t.Fatalf("authorization = %q", gotAuth)
	}
	if gotBody["operationName"] != "Probe" {
		t.Fatalf("operationName = %v", gotBody["operationName"])
	}
	variables, _ := gotBody["variables"].(map[string]any)
	if variables["language"] != "EL" {
		t.Fatalf("variables = %v", gotBody["variables"])
	}
}

func TestClientDoQueryErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":null,"errors":[{"message":"Cannot query field"}]}`))
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	err = client.Do(context.Background(), "Probe", "query Probe { value }", nil, nil)
	if err == nil {
		t.Fatal("expected error for null data")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryExternal) {
		t.Fatalf("expected external category, got %v", err)
	}
	if !strings.Contains(err.Error(), "Cannot query field") {
		t.Fatalf("error must carry the upstream message: %v", err)
	}
}

func TestClientDoPartialData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"value":"partial"},"errors":[{"message":"optional plugin missing"}]}`))
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	var out struct {
		Value string `json:"value"`
	}
	if err := client.Do(context.Background(), "Probe", "query Probe { value }", nil, &out); err != nil {
		t.Fatalf("partial data must be kept: %v", err)
	}
	if out.Value != "partial" {
		t.Fatalf("decoded %q", out.Value)
	}
}

func TestClientDoBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	err = client.Do(context.Background(), "Probe", "query Probe { value }", nil, nil)
	if err == nil {
		t.Fatal("expected error for non-200 status")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryExternal) {
		t.Fatalf("expected external category, got %v", err)
	}
}
