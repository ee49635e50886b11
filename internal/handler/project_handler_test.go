package handler

import (
	"net/http"
	"testing"

	"github.com/sureshnaloor/projprocurement/internal/config"
	"github.com/sureshnaloor/projprocurement/internal/repository"
	"github.com/sureshnaloor/projprocurement/internal/service"
	"github.com/sureshnaloor/projprocurement/internal/testutil"
)

func setupProjectTest(t *testing.T) *testutil.TestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)
	router := testutil.SetupRouter()

	cfg := &config.Config{}
	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, nil, cfg)
	h := NewProjectHandler(services.Project)

	api := testutil.AuthGroup(router, "/api/v1")
	api.GET("/projects", h.List)
	api.POST("/projects", h.Create)
	api.GET("/projects/search", h.Search)
	api.GET("/projects/:id", h.Get)
	api.PUT("/projects/:id", h.Update)
	api.DELETE("/projects/:id", h.Delete)

	return &testutil.TestEnv{DB: db, Router: router, T: t}
}

func TestProjectCreateAndGet(t *testing.T) {
	env := setupProjectTest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/projects", map[string]interface{}{
		"project_name": "Jubail Tank Farm",
		"project_wbs":  "SA-2024-JTF-001",
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	id := data["id"].(string)

	w2 := testutil.DoRequest(env.Router, "GET", "/api/v1/projects/"+id, nil, token)
	if w2.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w2.Code, w2.Body.String())
	}
	resp2 := testutil.ParseResponse(w2)
	data2 := resp2["data"].(map[string]interface{})
	if data2["project_wbs"] != "SA-2024-JTF-001" {
		t.Errorf("Expected WBS SA-2024-JTF-001, got %v", data2["project_wbs"])
	}
}

func TestProjectDuplicateWBS(t *testing.T) {
	env := setupProjectTest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/projects", map[string]interface{}{
		"project_name": "Ras Tanura Upgrade",
		"project_wbs":  "SA-2024-RTU-001",
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	firstID := testutil.ParseResponse(w)["data"].(map[string]interface{})["id"].(string)

	// second project with the same WBS must fail with a specific conflict
	w2 := testutil.DoRequest(env.Router, "POST", "/api/v1/projects", map[string]interface{}{
		"project_name": "Another Project",
		"project_wbs":  "SA-2024-RTU-001",
	}, token)
	if w2.Code != http.StatusConflict {
		t.Fatalf("Expected 409, got %d: %s", w2.Code, w2.Body.String())
	}

	// the first project is unaffected
	w3 := testutil.DoRequest(env.Router, "GET", "/api/v1/projects/"+firstID, nil, token)
	if w3.Code != http.StatusOK {
		t.Fatalf("Expected 200 for first project, got %d", w3.Code)
	}
	name := testutil.ParseResponse(w3)["data"].(map[string]interface{})["project_name"]
	if name != "Ras Tanura Upgrade" {
		t.Errorf("First project changed: %v", name)
	}
}

func TestProjectSearch(t *testing.T) {
	env := setupProjectTest(t)
	token := testutil.DefaultTestToken()

	for _, p := range []map[string]interface{}{
		{"project_name": "Yanbu Refinery Expansion", "project_wbs": "SA-2024-YRE-001"},
		{"project_name": "Yanbu Port Extension", "project_wbs": "SA-2024-YPE-001"},
		{"project_name": "Jazan Power Plant", "project_wbs": "SA-2024-JPP-001"},
	} {
		w := testutil.DoRequest(env.Router, "POST", "/api/v1/projects", p, token)
		if w.Code != http.StatusCreated {
			t.Fatalf("Seed failed: %d %s", w.Code, w.Body.String())
		}
	}

	// too short
	w := testutil.DoRequest(env.Router, "GET", "/api/v1/projects/search?q=Ya", nil, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for short query, got %d", w.Code)
	}

	// name match
	w2 := testutil.DoRequest(env.Router, "GET", "/api/v1/projects/search?q=Yanbu&type=project", nil, token)
	if w2.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w2.Code, w2.Body.String())
	}
	results := testutil.ParseResponse(w2)["data"].([]interface{})
	if len(results) != 2 {
		t.Errorf("Expected 2 Yanbu projects, got %d", len(results))
	}

	// wbs match
	w3 := testutil.DoRequest(env.Router, "GET", "/api/v1/projects/search?q=JPP&type=wbs", nil, token)
	results3 := testutil.ParseResponse(w3)["data"].([]interface{})
	if len(results3) != 1 {
		t.Errorf("Expected 1 JPP project, got %d", len(results3))
	}
}

func TestProjectDelete(t *testing.T) {
	env := setupProjectTest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/projects", map[string]interface{}{
		"project_name": "Temp Project",
		"project_wbs":  "SA-2024-TMP-001",
	}, token)
	id := testutil.ParseResponse(w)["data"].(map[string]interface{})["id"].(string)

	w2 := testutil.DoRequest(env.Router, "DELETE", "/api/v1/projects/"+id, nil, token)
	if w2.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w2.Code)
	}

	w3 := testutil.DoRequest(env.Router, "GET", "/api/v1/projects/"+id, nil, token)
	if w3.Code != http.StatusNotFound {
		t.Fatalf("Expected 404 after delete, got %d", w3.Code)
	}

	w4 := testutil.DoRequest(env.Router, "DELETE", "/api/v1/projects/"+id, nil, token)
	if w4.Code != http.StatusNotFound {
		t.Fatalf("Expected 404 deleting twice, got %d", w4.Code)
	}
}

func TestProjectRequiresAuth(t *testing.T) {
	env := setupProjectTest(t)

	w := testutil.DoRequest(env.Router, "GET", "/api/v1/projects", nil, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("Expected 401 without token, got %d", w.Code)
	}
}
