package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"manufacturing-backend/internal/api"
	"manufacturing-backend/internal/record"
	"manufacturing-backend/internal/seed"
	"manufacturing-backend/internal/store"
	"manufacturing-backend/internal/store/storetest"
)

type client struct {
	t    *testing.T
	base string
}

func (c client) call(method, path string, body any, out any) int {
	c.t.Helper()
	var payload bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&payload).Encode(body))
	}
	req, err := http.NewRequest(method, c.base+path, &payload)
	require.NoError(c.t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(c.t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

// TestRecipeLifecycle seeds the demonstration data, runs a recipe on the
// simulated machine and removes one of its parents, checking the API at each step.
func TestRecipeLifecycle(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// --- Test Setup ---
	loc := time.FixedZone("CET", 3600)
	appStore := store.NewGormStore(storetest.Open(t), store.Options{Location: loc})

	fx, err := seed.ParseFile("../config/fixtures.yaml")
	require.NoError(t, err)
	_, err = seed.NewLoader(appStore, nil).Load(context.Background(), fx, true)
	require.NoError(t, err)

	router, err := api.NewRouter(appStore, nil, api.Options{CacheTTL: time.Minute, Location: loc})
	require.NoError(t, err)
	server := httptest.NewServer(router)
	defer server.Close()

	c := client{t: t, base: server.URL}

	var first record.Recipe
	t.Run("Seeded recipes carry their parents", func(t *testing.T) {
		var recipes []record.Recipe
		require.Equal(t, http.StatusOK, c.call(http.MethodGet, "/api/v1/recipes", nil, &recipes))
		require.Len(t, recipes, 5)

		for _, r := range recipes {
			if r.Description == "First assembly" {
				first = r
			}
		}
		require.NotZero(t, first.ID)
		require.NotNil(t, first.Contact)
		assert.Equal(t, "ZF001", first.Contact.Name)
		assert.Equal(t, "0.5 mm²", first.Wire.CrossSection)
		assert.Equal(t, "60Hz", first.Process.SFFrequenceD)
	})

	t.Run("Start recipe is logged as executing", func(t *testing.T) {
		var res map[string]any
		status := c.call(http.MethodPost, "/api/v1/device/commands", map[string]any{
			"command":    "start_recipe",
			"parameters": map[string]any{"recipe_id": first.ID},
		}, &res)
		require.Equal(t, http.StatusCreated, status)
		assert.Equal(t, fmt.Sprintf("Start recipe %d: First assembly", first.ID),
			res["executed_command"].(map[string]any)["description"])

		var commands []map[string]any
		require.Equal(t, http.StatusOK, c.call(http.MethodGet, "/api/v1/commands", nil, &commands))
		require.Len(t, commands, 2)
		assert.Equal(t, "executing", commands[1]["status"])
	})

	t.Run("Deleting a process removes its recipes only", func(t *testing.T) {
		// Warm the cache so the delete has something to invalidate.
		var before []record.Recipe
		require.Equal(t, http.StatusOK, c.call(http.MethodGet, "/api/v1/recipes", nil, &before))

		var msg record.Message
		require.Equal(t, http.StatusOK, c.call(http.MethodDelete, fmt.Sprintf("/api/v1/processes/%d", first.ProcessID), nil, &msg))
		assert.Equal(t, "Process deleted successfully", msg.Message)

		var after []record.Recipe
		require.Equal(t, http.StatusOK, c.call(http.MethodGet, "/api/v1/recipes", nil, &after))
		assert.Len(t, after, 4)

		var body map[string]string
		assert.Equal(t, http.StatusNotFound, c.call(http.MethodGet, fmt.Sprintf("/api/v1/recipes/%d", first.ID), nil, &body))
		assert.Equal(t, "Recipe not found", body["error"])

		assert.Equal(t, http.StatusOK, c.call(http.MethodGet, fmt.Sprintf("/api/v1/contacts/%d", first.ContactID), nil, nil))
		assert.Equal(t, http.StatusOK, c.call(http.MethodGet, fmt.Sprintf("/api/v1/wires/%d", first.WireID), nil, nil))

		// The command log still names the deleted recipe.
		var commands []map[string]any
		require.Equal(t, http.StatusOK, c.call(http.MethodGet, "/api/v1/commands", nil, &commands))
		assert.Len(t, commands, 2)
	})

	t.Run("Demo snapshot reflects the changes", func(t *testing.T) {
		var demo record.Summary
		require.Equal(t, http.StatusOK, c.call(http.MethodGet, "/api/demo", nil, &demo))
		assert.Equal(t, 5, demo.DatabaseStats["contacts"])
		assert.Equal(t, 4, demo.DatabaseStats["processes"])
		assert.Equal(t, 4, demo.DatabaseStats["recipes"])
		assert.Equal(t, 2, demo.DatabaseStats["commands"])

		ts, err := time.Parse(time.RFC3339Nano, demo.ServerInfo.Timestamp)
		require.NoError(t, err)
		_, offset := ts.Zone()
		assert.Equal(t, 3600, offset)
	})
}
