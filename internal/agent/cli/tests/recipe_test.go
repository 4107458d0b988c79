package tests

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aaronsummercloud/recipe-api-project/internal/agent/cli"
	"github.com/aaronsummercloud/recipe-api-project/internal/shared/models"
)

type recorded struct {
	method string
	path   string
	body   map[string]any
}

// recipeServer отвечает фиксированными рецептами и запоминает последний запрос
func recipeServer(t *testing.T, last *recorded) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*last = recorded{method: r.Method, path: r.URL.Path}
		json.NewDecoder(r.Body).Decode(&last.body)

		if r.Header.Get("Authorization") != "Bearer tok-1" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"unauthorized"}`))
			return
		}

		switch {
		case r.URL.Path == "/api/recipe/recipes/" && r.Method == http.MethodGet:
			json.NewEncoder(w).Encode([]models.Recipe{
				{ID: 2, Title: "Soup", TimeMinutes: 30, Price: "7.50"},
				{ID: 1, Title: "Salad", TimeMinutes: 10, Price: "5.00", Link: "https://example.com"},
			})
		case r.Method == http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		default:
			if r.Method == http.MethodPost {
				w.WriteHeader(http.StatusCreated)
			}
			json.NewEncoder(w).Encode(models.RecipeDetail{
				Recipe:      models.Recipe{ID: 2, Title: "Soup", TimeMinutes: 30, Price: "7.50"},
				Description: "Hot",
			})
		}
	}))
}

func TestRecipeCmd_List(t *testing.T) {
	var last recorded
	srv := recipeServer(t, &last)
	defer srv.Close()

	out, err := run(cli.NewRecipeCmd(newApp(t, srv.URL, "tok-1")), "list")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", out)
	}
	if !strings.HasPrefix(lines[0], "2\tSoup\t30 min\t7.50") {
		t.Fatalf("unexpected first line %q", lines[0])
	}
}

func TestRecipeCmd_ListJSON(t *testing.T) {
	var last recorded
	srv := recipeServer(t, &last)
	defer srv.Close()

	out, err := run(cli.NewRecipeCmd(newApp(t, srv.URL, "tok-1")), "list", "--json")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	var items []models.Recipe
	if err := json.Unmarshal([]byte(out), &items); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
}

func TestRecipeCmd_Create(t *testing.T) {
	var last recorded
	srv := recipeServer(t, &last)
	defer srv.Close()

	out, err := run(cli.NewRecipeCmd(newApp(t, srv.URL, "tok-1")),
		"create", "--title", "Soup", "--time", "30", "--price", "7.5")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if last.method != http.MethodPost || last.path != "/api/recipe/recipes/" {
		t.Fatalf("unexpected request %s %s", last.method, last.path)
	}
	if last.body["title"] != "Soup" || last.body["time_minutes"] != float64(30) || last.body["price"] != "7.5" {
		t.Fatalf("unexpected body %#v", last.body)
	}
	if _, ok := last.body["link"]; ok {
		t.Fatalf("link must not be sent when flag is not set")
	}
	if !strings.Contains(out, "description=Hot") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestRecipeCmd_Create_BadPrice(t *testing.T) {
	var last recorded
	srv := recipeServer(t, &last)
	defer srv.Close()

	_, err := run(cli.NewRecipeCmd(newApp(t, srv.URL, "tok-1")),
		"create", "--title", "Soup", "--time", "30", "--price", "abc")
	if err == nil || !strings.Contains(err.Error(), "invalid --price") {
		t.Fatalf("expected price error, got %v", err)
	}
	if last.method != "" {
		t.Fatalf("expected no request, got %s", last.method)
	}
}

func TestRecipeCmd_UpdateAndReplace(t *testing.T) {
	var last recorded
	srv := recipeServer(t, &last)
	defer srv.Close()

	app := newApp(t, srv.URL, "tok-1")

	if _, err := run(cli.NewRecipeCmd(app), "update", "2", "--title", "Borsch"); err != nil {
		t.Fatalf("update: %v", err)
	}
	if last.method != http.MethodPatch || last.path != "/api/recipe/recipes/2/" {
		t.Fatalf("unexpected request %s %s", last.method, last.path)
	}
	if len(last.body) != 1 {
		t.Fatalf("expected only title in body, got %#v", last.body)
	}

	if _, err := run(cli.NewRecipeCmd(app), "update", "2", "--replace", "--title", "Borsch", "--time", "5", "--price", "1"); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if last.method != http.MethodPut {
		t.Fatalf("expected PUT, got %s", last.method)
	}
}

func TestRecipeCmd_GetAndDelete(t *testing.T) {
	var last recorded
	srv := recipeServer(t, &last)
	defer srv.Close()

	app := newApp(t, srv.URL, "tok-1")

	out, err := run(cli.NewRecipeCmd(app), "get", "2")
	if err != nil || !strings.Contains(out, "title=Soup") {
		t.Fatalf("get: %q, %v", out, err)
	}

	out, err = run(cli.NewRecipeCmd(app), "delete", "2")
	if err != nil || !strings.Contains(out, "recipe 2 deleted") {
		t.Fatalf("delete: %q, %v", out, err)
	}
	if last.method != http.MethodDelete {
		t.Fatalf("expected DELETE, got %s", last.method)
	}
}

func TestRecipeCmd_BadID(t *testing.T) {
	_, err := run(cli.NewRecipeCmd(newApp(t, "http://127.0.0.1:1", "tok-1")), "get", "abc")
	if err == nil || !strings.Contains(err.Error(), "invalid recipe id") {
		t.Fatalf("expected id error, got %v", err)
	}
}

func TestRecipeCmd_NotLoggedIn(t *testing.T) {
	_, err := run(cli.NewRecipeCmd(newApp(t, "http://127.0.0.1:1", "")), "list")
	if err != cli.ErrNotLoggedIn {
		t.Fatalf("expected ErrNotLoggedIn, got %v", err)
	}
}
