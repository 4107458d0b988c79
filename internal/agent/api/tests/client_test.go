package tests

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aaronsummercloud/recipe-api-project/internal/agent/api"
)

func TestClient_PostJSON_SetsHeaders_AndDecodesResponse(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/x", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected method POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Fatalf("expected Content-Type application/json, got %q", ct)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer token-1" {
			t.Fatalf("expected Authorization Bearer token-1, got %q", auth)
		}

		var got map[string]any
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if got["a"] != float64(1) { // json numbers decode as float64 into map
			t.Fatalf("expected a=1, got %#v", got["a"])
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"ok": true})
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := api.NewClient(srv.URL)

	var resp map[string]any
	if err := c.PostJSON("/x", map[string]any{"a": 1}, &resp, "token-1"); err != nil {
		t.Fatalf("PostJSON returned error: %v", err)
	}
	if resp["ok"] != true {
		t.Fatalf("expected ok=true, got %#v", resp["ok"])
	}
}

func TestClient_GetJSON_WithoutAuth_NoAuthorizationNoContentType(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/x", func(w http.ResponseWriter, r *http.Request) {
		if auth := r.Header.Get("Authorization"); auth != "" {
			t.Fatalf("expected empty Authorization, got %q", auth)
		}
		if ct := r.Header.Get("Content-Type"); ct != "" {
			t.Fatalf("expected empty Content-Type for GET, got %q", ct)
		}
		if a := r.Header.Get("Accept"); a != "application/json" {
			t.Fatalf("expected Accept application/json, got %q", a)
		}
		w.Write([]byte(`{"ok":true}`))
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	var resp map[string]any
	if err := api.NewClient(srv.URL+"/").GetJSON("/x", &resp, ""); err != nil {
		t.Fatalf("GetJSON returned error: %v", err)
	}
}

// Ошибка валидации разбирается в APIError с полями
func TestClient_Non2xx_ParsesErrorResponse(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/x", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"error":"invalid input","fields":{"password":["Ensure this field has at least 5 characters."],"email":["Enter a valid email address."]}}`)
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	err := api.NewClient(srv.URL).PostJSON("/x", map[string]string{}, nil, "")
	if err == nil {
		t.Fatalf("expected error, got nil")
	}

	var apiErr *api.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *api.APIError, got %T", err)
	}
	if apiErr.Status != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", apiErr.Status)
	}
	want := "invalid input: email: Enter a valid email address.; password: Ensure this field has at least 5 characters."
	if err.Error() != want {
		t.Fatalf("unexpected error text:\n got %q\nwant %q", err.Error(), want)
	}
}

func TestClient_Non2xx_PlainBodyOrStatus(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/text", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	})
	mux.HandleFunc("/empty", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := api.NewClient(srv.URL)

	if err := c.GetJSON("/text", nil, ""); err == nil || err.Error() != "boom" {
		t.Fatalf("expected error boom, got %v", err)
	}

	err := c.GetJSON("/empty", nil, "")
	if err == nil || !strings.Contains(err.Error(), "401") {
		t.Fatalf("expected status text, got %v", err)
	}
	if !api.IsUnauthorized(err) {
		t.Fatalf("expected IsUnauthorized")
	}
}

func TestClient_204_NoDecode(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/x", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Fatalf("expected DELETE, got %s", r.Method)
		}
		w.WriteHeader(http.StatusNoContent)
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	var resp map[string]any
	if err := api.NewClient(srv.URL).DeleteJSON("/x", &resp, "t"); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if resp != nil {
		t.Fatalf("expected resp untouched, got %#v", resp)
	}
}

// Самоподписанный сертификат: без WithInsecure запрос падает
func TestClient_TLS_Insecure(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	if err := api.NewClient(srv.URL).GetJSON("/", nil, ""); err == nil {
		t.Fatalf("expected certificate error, got nil")
	}
	if err := api.NewClient(srv.URL, api.WithInsecure()).GetJSON("/", nil, ""); err != nil {
		t.Fatalf("expected nil with WithInsecure, got %v", err)
	}
	if err := api.NewClient(srv.URL, api.WithHTTPClient(srv.Client())).GetJSON("/", nil, ""); err != nil {
		t.Fatalf("expected nil with server client, got %v", err)
	}
}

func TestClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	if err := api.NewClient(srv.URL, api.WithTimeout(20*time.Millisecond)).GetJSON("/", nil, ""); err == nil {
		t.Fatalf("expected timeout error, got nil")
	}
}
