package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"manufacturing-backend/internal/api"
	"manufacturing-backend/internal/mw"
	"manufacturing-backend/internal/store"
	"manufacturing-backend/internal/store/storetest"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const base = "/api/v1"

func newRouter(t *testing.T, opts api.Options) *gin.Engine {
	t.Helper()
	s := store.NewGormStore(storetest.Open(t), store.Options{})
	r, err := api.NewRouter(s, zap.NewNop(), opts)
	require.NoError(t, err)
	return r
}

func do(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var payload []byte
	if body != nil {
		payload, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func errorOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[map[string]string](t, w)["error"]
}

func create(t *testing.T, r http.Handler, path string, body map[string]any) int64 {
	t.Helper()
	w := do(r, http.MethodPost, base+path, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return int64(decode[map[string]any](t, w)["id"].(float64))
}

func TestContacts_Lifecycle(t *testing.T) {
	r := newRouter(t, api.Options{})

	w := do(r, http.MethodGet, base+"/contacts", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	id := create(t, r, "/contacts", storetest.ContactFields("C-100"))

	w = do(r, http.MethodGet, fmt.Sprintf("%s/contacts/%d", base, id), nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[map[string]any](t, w)
	assert.Equal(t, "C-100", got["Name"])
	assert.Equal(t, "ZF-C-100", got["ZF_ContNumb"])

	w = do(r, http.MethodPut, fmt.Sprintf("%s/contacts/%d", base, id), map[string]any{"Diameter": "2.0"})
	require.Equal(t, http.StatusOK, w.Code)
	got = decode[map[string]any](t, w)
	assert.Equal(t, "2.0", got["Diameter"])
	assert.Equal(t, "C-100", got["Name"])

	w = do(r, http.MethodDelete, fmt.Sprintf("%s/contacts/%d", base, id), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Contact deleted successfully"}`, w.Body.String())

	w = do(r, http.MethodGet, fmt.Sprintf("%s/contacts/%d", base, id), nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Contact not found", errorOf(t, w))
}

func TestCreate_NumbersKeepTheirDigits(t *testing.T) {
	r := newRouter(t, api.Options{})

	req := httptest.NewRequest(http.MethodPost, base+"/wires",
		strings.NewReader(`{"name":"W1","description":"d","cross_section":0.50,"isolation_diameter":1.9,"wire_diameter":1,"color":"red"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	got := decode[map[string]any](t, w)
	assert.Equal(t, "0.50", got["cross_section"])
	assert.Equal(t, "1", got["wire_diameter"])
}

func TestRequestErrors(t *testing.T) {
	r := newRouter(t, api.Options{})

	tests := []struct {
		name        string
		method      string
		path        string
		contentType string
		body        string
		wantStatus  int
		wantError   string
	}{
		{"missing content type", http.MethodPost, "/contacts", "", `{}`, http.StatusBadRequest, "Request must be JSON"},
		{"form content type", http.MethodPut, "/wires/1", "application/x-www-form-urlencoded", `name=x`, http.StatusBadRequest, "Request must be JSON"},
		{"malformed body", http.MethodPost, "/contacts", "application/json", `{"Name":`, http.StatusBadRequest, "Invalid JSON body"},
		{"array body", http.MethodPost, "/jobs", "application/json", `[1,2]`, http.StatusBadRequest, "Invalid JSON body"},
		{"trailing garbage", http.MethodPost, "/jobs", "application/json", `{"name":"x"} not json`, http.StatusBadRequest, "Invalid JSON body"},
		{"two objects", http.MethodPost, "/jobs", "application/json", `{"name":"x"}{"name":"y"}`, http.StatusBadRequest, "Invalid JSON body"},
		{"missing field", http.MethodPost, "/jobs", "application/json; charset=utf-8", `{}`, http.StatusBadRequest, "Missing required field: name"},
		{"non-scalar field", http.MethodPost, "/setups", "application/json", `{"name":"s","description":{"a":1}}`, http.StatusBadRequest, "Invalid value for field: description"},
		{"non-integer id", http.MethodGet, "/processes/abc", "", ``, http.StatusNotFound, "Process not found"},
		{"unknown id", http.MethodDelete, "/commands/999", "", ``, http.StatusNotFound, "Command not found"},
		{"update unknown id", http.MethodPut, "/jobs/999", "application/json", `{"status":"done"}`, http.StatusNotFound, "Job not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, base+tt.path, strings.NewReader(tt.body))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantError, errorOf(t, w))
		})
	}
}

func TestContacts_DuplicateName(t *testing.T) {
	r := newRouter(t, api.Options{})
	create(t, r, "/contacts", storetest.ContactFields("dup"))

	w := do(r, http.MethodPost, base+"/contacts", storetest.ContactFields("dup"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Contact with this name already exists", errorOf(t, w))

	w = do(r, http.MethodGet, base+"/contacts", nil)
	require.Equal(t, http.StatusOK, w.Code)
	contacts := decode[[]map[string]any](t, w)
	require.Len(t, contacts, 1)
	assert.Equal(t, "dup", contacts[0]["Name"])
}

func TestJobs_Defaults(t *testing.T) {
	r := newRouter(t, api.Options{})

	w := do(r, http.MethodPost, base+"/jobs", map[string]any{"name": "batch"})

	require.Equal(t, http.StatusCreated, w.Code)
	got := decode[map[string]any](t, w)
	assert.Equal(t, "pending", got["status"])
	assert.NotEmpty(t, got["created_at"])
}

func TestRecipes_NestedAndCascade(t *testing.T) {
	r := newRouter(t, api.Options{})
	contactID := create(t, r, "/contacts", storetest.ContactFields("C1"))
	wireID := create(t, r, "/wires", storetest.WireFields("W1"))
	processID := create(t, r, "/processes", storetest.ProcessFields("P1"))

	w := do(r, http.MethodPost, base+"/recipes", storetest.RecipeFields("R1", contactID, wireID, processID+100))
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Referenced process not found", errorOf(t, w))

	recipeID := create(t, r, "/recipes", storetest.RecipeFields("R1", contactID, wireID, processID))

	w = do(r, http.MethodGet, fmt.Sprintf("%s/recipes/%d", base, recipeID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[map[string]any](t, w)
	assert.Equal(t, "C1", got["contact"].(map[string]any)["Name"])
	assert.Equal(t, "W1", got["wire"].(map[string]any)["name"])
	assert.Equal(t, "P1", got["process"].(map[string]any)["name"])

	w = do(r, http.MethodPut, fmt.Sprintf("%s/recipes/%d", base, recipeID), map[string]any{"contact_id": contactID + 100})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Referenced contact not found", errorOf(t, w))

	w = do(r, http.MethodDelete, fmt.Sprintf("%s/wires/%d", base, wireID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Wire deleted successfully"}`, w.Body.String())

	w = do(r, http.MethodGet, fmt.Sprintf("%s/recipes/%d", base, recipeID), nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Recipe not found", errorOf(t, w))

	// The other parents survive.
	w = do(r, http.MethodGet, fmt.Sprintf("%s/contacts/%d", base, contactID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDeviceCommands(t *testing.T) {
	r := newRouter(t, api.Options{})
	recipeID := create(t, r, "/recipes", storetest.RecipeFields("Main",
		create(t, r, "/contacts", storetest.ContactFields("C1")),
		create(t, r, "/wires", storetest.WireFields("W1")),
		create(t, r, "/processes", storetest.ProcessFields("P1")),
	))

	w := do(r, http.MethodPost, base+"/device/commands", map[string]any{
		"command":    "start_recipe",
		"parameters": map[string]any{"recipe_id": recipeID},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	got := decode[map[string]any](t, w)
	assert.Equal(t, "ok", got["status"])
	executed := got["executed_command"].(map[string]any)
	assert.Equal(t, "start_recipe", executed["name"])
	assert.Equal(t, "executing", executed["status"])
	assert.Equal(t, fmt.Sprintf("Start recipe %d: Main", recipeID), executed["description"])
	assert.Equal(t, "C1", got["recipe_detail"].(map[string]any)["contact"].(map[string]any)["Name"])

	w = do(r, http.MethodPost, base+"/device/commands", map[string]any{"command": "reset"})
	require.Equal(t, http.StatusCreated, w.Code)
	got = decode[map[string]any](t, w)
	assert.NotContains(t, got, "recipe_detail")
	assert.Equal(t, "Reset machine", got["executed_command"].(map[string]any)["description"])

	failures := []struct {
		name       string
		body       map[string]any
		wantStatus int
		wantError  string
	}{
		{"unsupported", map[string]any{"command": "explode"}, http.StatusBadRequest, "Unsupported command"},
		{"no command", map[string]any{}, http.StatusBadRequest, "Unsupported command"},
		{"missing recipe id", map[string]any{"command": "start_recipe", "parameters": map[string]any{}}, http.StatusBadRequest, "Missing 'recipe_id' in parameters"},
		{"unknown recipe", map[string]any{"command": "start_recipe", "parameters": map[string]any{"recipe_id": 999}}, http.StatusNotFound, "Recipe id 999 not found"},
		{"recipe id beyond int64", map[string]any{"command": "start_recipe", "parameters": map[string]any{"recipe_id": json.Number("1e300")}}, http.StatusNotFound, "Recipe id 1e300 not found"},
	}
	for _, tt := range failures {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, http.MethodPost, base+"/device/commands", tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantError, errorOf(t, w))
		})
	}

	// Two executed commands were logged; the rejected ones were not.
	w = do(r, http.MethodGet, base+"/commands", nil)
	assert.Len(t, decode[[]map[string]any](t, w), 2)
}

func TestDocsAndDemo(t *testing.T) {
	r := newRouter(t, api.Options{Version: "2.3"})
	create(t, r, "/contacts", storetest.ContactFields("C1"))

	w := do(r, http.MethodGet, base+"/docs", nil)
	require.Equal(t, http.StatusOK, w.Code)
	want, err := json.Marshal(api.NewDocs(base))
	require.NoError(t, err)
	assert.JSONEq(t, string(want), w.Body.String())

	w = do(r, http.MethodGet, "/api/demo", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var demo struct {
		ServerInfo struct {
			Name    string `json:"name"`
			Version string `json:"version"`
		} `json:"server_info"`
		DatabaseStats map[string]int `json:"database_stats"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &demo))
	assert.Equal(t, "Manufacturing REST API Server", demo.ServerInfo.Name)
	assert.Equal(t, "2.3", demo.ServerInfo.Version)
	assert.Equal(t, 1, demo.DatabaseStats["contacts"])
	assert.Equal(t, 0, demo.DatabaseStats["recipes"])
}

func TestOperationalRoutes(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := newRouter(t, api.Options{Registry: reg})

	w := do(r, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(mw.RequestIDHeader))

	w = do(r, http.MethodGet, "/nowhere", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Not found", errorOf(t, w))

	w = do(r, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}

func TestRouter_DuplicateRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := store.NewGormStore(storetest.Open(t), store.Options{})
	_, err := api.NewRouter(s, nil, api.Options{Registry: reg})
	require.NoError(t, err)

	_, err = api.NewRouter(s, nil, api.Options{Registry: reg})
	assert.Error(t, err)
}

func TestCache_FlushedByWrites(t *testing.T) {
	r := newRouter(t, api.Options{CacheTTL: time.Minute})

	w := do(r, http.MethodGet, base+"/wires", nil)
	assert.Equal(t, "MISS", w.Header().Get(mw.CacheHeader))
	w = do(r, http.MethodGet, base+"/wires", nil)
	assert.Equal(t, "HIT", w.Header().Get(mw.CacheHeader))
	assert.JSONEq(t, `[]`, w.Body.String())

	create(t, r, "/wires", storetest.WireFields("W1"))

	w = do(r, http.MethodGet, base+"/wires", nil)
	assert.Equal(t, "MISS", w.Header().Get(mw.CacheHeader))
	assert.Len(t, decode[[]map[string]any](t, w), 1)
}

func TestRateLimit(t *testing.T) {
	r := newRouter(t, api.Options{RateLimit: 1, RateBurst: 2})

	codes := make([]int, 0, 3)
	for range 3 {
		codes = append(codes, do(r, http.MethodGet, base+"/setups", nil).Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// Operational routes are not limited.
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/healthz", nil).Code)
}

func TestCORS_Preflight(t *testing.T) {
	r := newRouter(t, api.Options{CORSOrigins: []string{"http://hmi.local"}})

	req := httptest.NewRequest(http.MethodOptions, base+"/contacts", nil)
	req.Header.Set("Origin", "http://hmi.local")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://hmi.local", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestWire_RoundTrip(t *testing.T) {
	r := newRouter(t, api.Options{})
	fields := storetest.WireFields("W-RT")

	w := do(r, http.MethodPost, base+"/wires", fields)
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[map[string]any](t, w)

	w = do(r, http.MethodGet, fmt.Sprintf("%s/wires/%v", base, created["id"]), nil)
	require.Equal(t, http.StatusOK, w.Code)
	fetched := decode[map[string]any](t, w)

	assert.Equal(t, created, fetched)
	for k, v := range fields {
		assert.Equal(t, v, fetched[k], k)
	}
}

func TestJob_PartialUpdate(t *testing.T) {
	r := newRouter(t, api.Options{})
	w := do(r, http.MethodPost, base+"/jobs", map[string]any{"name": "batch", "created_at": "2024-01-15 10:00:00"})
	require.Equal(t, http.StatusCreated, w.Code)
	id := decode[map[string]any](t, w)["id"]

	w = do(r, http.MethodPut, fmt.Sprintf("%s/jobs/%v", base, id), map[string]any{"status": "completed", "unknown": "ignored"})
	require.Equal(t, http.StatusOK, w.Code)

	got := decode[map[string]any](t, w)
	assert.Equal(t, "completed", got["status"])
	assert.Equal(t, "batch", got["name"])
	assert.Equal(t, "2024-01-15 10:00:00", got["created_at"])
	assert.NotContains(t, got, "unknown")
}
