package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"creai_edu_backend/internal/config"
	"creai_edu_backend/internal/seed"

	"github.com/gin-gonic/gin"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Server:   config.ServerConfig{Port: "0", Mode: gin.DebugMode},
		Database: config.DatabaseConfig{Driver: "memory"},
		Cache:    config.CacheConfig{TTLMinutes: 1},
		JWT:      config.JWTConfig{Secret: "router-test-secret", ExpireTime: time.Hour},
		Storage:  config.StorageConfig{Type: "local", LocalPath: t.TempDir()},
		Sandbox:  config.SandboxConfig{TimeoutMs: 1000, Denylist: []string{"fetch"}},
		Sessions: config.SessionConfig{TTLMinutes: 5},
		Network:  config.NetworkConfig{TimeoutSeconds: 1},
	}
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	app, err := newApp(context.Background(), testConfig(t), nil, nil)
	if err != nil {
		t.Fatalf("newApp: %v", err)
	}
	return app
}

func do(t *testing.T, app *App, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, req)

	var env envelope
	json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func TestContentRoutes(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		name    string
		path    string
		status  int
		success bool
	}{
		{"modules", "/api/modules", http.StatusOK, true},
		{"module by slug", "/api/modules/" + seed.InternetModuleSlug, http.StatusOK, true},
		{"module by id is not a slug", "/api/modules/" + seed.InternetModuleID, http.StatusNotFound, false},
		{"draft module", "/api/modules/" + seed.DraftModuleID, http.StatusNotFound, false},
		{"lesson", "/api/modules/" + seed.InternetModuleSlug + "/lessons/dns-detallado", http.StatusOK, true},
		{"rendered lesson", "/api/modules/" + seed.InternetModuleSlug + "/lessons/dns-detallado/rendered", http.StatusOK, true},
		{"archived lesson", "/api/modules/" + seed.InternetModuleSlug + "/lessons/" + seed.ArchivedLessonSlug, http.StatusNotFound, false},
		{"unknown lesson", "/api/modules/" + seed.InternetModuleSlug + "/lessons/no-existe", http.StatusNotFound, false},
		{"lesson by id", "/api/lessons/protocolos-internet", http.StatusOK, true},
		{"unknown lesson id", "/api/lessons/lesson-1", http.StatusNotFound, false},
		{"paged lessons", "/api/lessons?page=1&limit=2", http.StatusOK, true},
		{"huge lesson page", "/api/lessons?page=1000000000000000000", http.StatusOK, true},
		{"huge module page", "/api/modules?page=1000000000000000000&limit=100", http.StatusOK, true},
	}
	for _, tt := range tests {
		w, env := do(t, app, http.MethodGet, tt.path, nil)
		if w.Code != tt.status || env.Success != tt.success {
			t.Fatalf("%s: got=%d/%v want=%d/%v body=%s", tt.name, w.Code, env.Success, tt.status, tt.success, w.Body.String())
		}
	}
}

func TestModuleLessonsRoute(t *testing.T) {
	app := newTestApp(t)

	w, env := do(t, app, http.MethodGet, "/api/modules/"+seed.InternetModuleID+"/lessons", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: got=%d want=%d", w.Code, http.StatusOK)
	}
	var lessons []struct {
		ID    string `json:"id"`
		Order int    `json:"order"`
	}
	if err := json.Unmarshal(env.Data, &lessons); err != nil {
		t.Fatalf("decode lessons: %v", err)
	}
	if len(lessons) != 5 {
		t.Fatalf("unexpected lesson count: got=%d want=5", len(lessons))
	}
	for i := 1; i < len(lessons); i++ {
		if lessons[i-1].Order > lessons[i].Order {
			t.Fatalf("lessons not ordered: %+v", lessons)
		}
	}
}

func TestCompleteLessonEchoesScore(t *testing.T) {
	app := newTestApp(t)

	w, _ := do(t, app, http.MethodPost, "/api/lessons/lesson-1/complete", map[string]int{"score": 50, "totalPoints": 75})
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: got=%d want=%d", w.Code, http.StatusOK)
	}
	if got, want := w.Body.String(), `{"success":true,"score":50,"totalPoints":75}`; got != want {
		t.Fatalf("unexpected body: got=%s want=%s", got, want)
	}

	w, env := do(t, app, http.MethodPost, "/api/lessons/lesson-1/complete", map[string]int{"score": -1})
	if w.Code != http.StatusBadRequest || env.Success {
		t.Fatalf("negative score: got=%d body=%s", w.Code, w.Body.String())
	}
}

func TestUserRoutes(t *testing.T) {
	app := newTestApp(t)
	valid := map[string]string{
		"email":     "ana@example.com",
		"password":  "Secreto123",
		"firstName": "Ana",
		"lastName":  "López",
	}

	w, env := do(t, app, http.MethodPost, "/api/users", valid)
	if w.Code != http.StatusCreated || !env.Success {
		t.Fatalf("create: got=%d body=%s", w.Code, w.Body.String())
	}
	w, _ = do(t, app, http.MethodPost, "/api/users", valid)
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate: got=%d want=%d", w.Code, http.StatusConflict)
	}
	w, _ = do(t, app, http.MethodPost, "/api/users", map[string]string{"email": "nope"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("invalid: got=%d want=%d", w.Code, http.StatusBadRequest)
	}

	w, env = do(t, app, http.MethodPost, "/api/auth/login", map[string]string{"email": "ana@example.com", "password": "Secreto123"})
	if w.Code != http.StatusOK || !env.Success {
		t.Fatalf("login: got=%d body=%s", w.Code, w.Body.String())
	}
}

func TestExerciseRoutes(t *testing.T) {
	app := newTestApp(t)

	w, env := do(t, app, http.MethodGet, "/api/exercises/"+seed.URLParserExerciseID, nil)
	if w.Code != http.StatusOK || !env.Success {
		t.Fatalf("get exercise: got=%d body=%s", w.Code, w.Body.String())
	}
	w, _ = do(t, app, http.MethodGet, "/api/exercises/no-existe", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("missing exercise: got=%d want=%d", w.Code, http.StatusNotFound)
	}
	w, env = do(t, app, http.MethodPost, "/api/exercises/"+seed.URLParserExerciseID+"/run", map[string]string{"code": "fetch('https://example.com')"})
	if w.Code != http.StatusBadRequest || env.Success {
		t.Fatalf("unsafe code: got=%d body=%s", w.Code, w.Body.String())
	}

	w, _ = do(t, app, http.MethodPost, "/api/exercise-sessions", map[string]string{"exerciseId": seed.URLParserExerciseID})
	if w.Code != http.StatusCreated {
		t.Fatalf("start session: got=%d body=%s", w.Code, w.Body.String())
	}
	w, _ = do(t, app, http.MethodGet, "/api/exercise-sessions/missing", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("missing session: got=%d want=%d", w.Code, http.StatusNotFound)
	}
}

func TestDebugRoutes(t *testing.T) {
	app := newTestApp(t)

	w, env := do(t, app, http.MethodGet, "/api/debug/lessons", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("debug lessons: got=%d want=%d", w.Code, http.StatusOK)
	}
	var debug struct {
		TotalLessons int `json:"totalLessons"`
	}
	if err := json.Unmarshal(env.Data, &debug); err != nil || debug.TotalLessons != 6 {
		t.Fatalf("unexpected debug payload: %+v err=%v", debug, err)
	}

	w, _ = do(t, app, http.MethodPost, "/api/debug/modules/"+seed.DraftModuleID+"/publish", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("publish: got=%d body=%s", w.Code, w.Body.String())
	}
	w, _ = do(t, app, http.MethodGet, "/api/modules/"+seed.DraftModuleID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("published module: got=%d want=%d", w.Code, http.StatusOK)
	}
}

func TestHealthAndNoRoute(t *testing.T) {
	app := newTestApp(t)

	w, env := do(t, app, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK || !env.Success {
		t.Fatalf("health: got=%d body=%s", w.Code, w.Body.String())
	}

	w, env = do(t, app, http.MethodGet, "/x", nil)
	if w.Code != http.StatusNotFound || env.Success || env.Message != "Route /x not found" {
		t.Fatalf("no route: got=%d body=%s", w.Code, w.Body.String())
	}
}

func TestCORSPreflight(t *testing.T) {
	cfg := testConfig(t)
	cfg.CORS.AllowedOrigins = []string{"http://localhost:5173"}
	app, err := newApp(context.Background(), cfg, nil, nil)
	if err != nil {
		t.Fatalf("newApp: %v", err)
	}

	req := httptest.NewRequest(http.MethodOptions, "/api/modules", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("unexpected status: got=%d want=%d", w.Code, http.StatusNoContent)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Fatalf("unexpected origin: %q", got)
	}
}
