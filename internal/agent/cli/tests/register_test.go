package tests

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aaronsummercloud/recipe-api-project/internal/agent/cli"
	serr "github.com/aaronsummercloud/recipe-api-project/internal/shared/errors"
	"github.com/aaronsummercloud/recipe-api-project/internal/shared/models"
)

func TestNewRegisterCmd_Success(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/user/create/", func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Email != "test@example.com" || req.Name != "Test name" || req.Password != "testpass123" {
			t.Fatalf("unexpected request: %+v", req)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.UserResponse{Email: req.Email, Name: req.Name})
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	out, err := run(cli.NewRegisterCmd(newApp(t, srv.URL, "")),
		"--email", "test@example.com",
		"--name", "Test name",
		"--password", "testpass123",
	)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !strings.Contains(out, "registration successful: test@example.com (Test name)") {
		t.Fatalf("unexpected output: %q", out)
	}
}

// Ошибки валидации сервера выводятся с именами полей
func TestNewRegisterCmd_ServerValidationError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/user/create/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"invalid input","fields":{"password":["Ensure this field has at least 5 characters."]}}`))
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	_, err := run(cli.NewRegisterCmd(newApp(t, srv.URL, "")),
		"--email", "test@example.com",
		"--name", "Test name",
		"--password", "pw",
	)
	if err == nil {
		t.Fatalf("%s, got nil", serr.ErrExpectedError.Error())
	}
	if !strings.Contains(err.Error(), "password: Ensure this field has at least 5 characters.") {
		t.Fatalf("%s: %v", serr.ErrUnexpectedError.Error(), err)
	}
}

func TestNewRegisterCmd_MissingName(t *testing.T) {
	_, err := run(cli.NewRegisterCmd(newApp(t, "http://127.0.0.1:1", "")),
		"--email", "test@example.com",
		"--password", "testpass123",
	)
	if err == nil || !strings.Contains(err.Error(), "required") {
		t.Fatalf("expected required flag error, got %v", err)
	}
}
