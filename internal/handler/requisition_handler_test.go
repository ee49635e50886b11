package handler

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/sureshnaloor/projprocurement/internal/config"
	"github.com/sureshnaloor/projprocurement/internal/repository"
	"github.com/sureshnaloor/projprocurement/internal/service"
	"github.com/sureshnaloor/projprocurement/internal/testutil"
)

func setupRequisitionTest(t *testing.T, cfg *config.Config) *testutil.TestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)
	router := testutil.SetupRouter()

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, nil, cfg)
	rh := NewRequisitionHandler(services.Requisition)

	api := testutil.AuthGroup(router, "/api/v1")
	api.GET("/purchase-requisitions", rh.List)
	api.POST("/purchase-requisitions", rh.Create)
	api.GET("/purchase-requisitions/:id", rh.Get)
	api.PUT("/purchase-requisitions/:id", rh.Update)
	api.DELETE("/purchase-requisitions/:id", rh.Delete)
	api.POST("/purchase-requisitions/:id/communication", rh.AddCommunication)

	return &testutil.TestEnv{DB: db, Router: router, T: t}
}

func requisitionBody(prNumber string, prValue float64) map[string]interface{} {
	return map[string]interface{}{
		"project_name":         "Jubail Tank Farm",
		"project_wbs":          "SA-2024-JTF-002",
		"material_service_wbs": "SA-2024-JTF-CIV",
		"budget":               20000,
		"pr_number":            prNumber,
		"line_item_number":     "10",
		"pr_date":              "2024-02-15",
		"pr_value":             prValue,
		"quantity":             5,
		"unit_of_measure":      "ea",
	}
}

func TestRequisitionIncompletePOGroupRejected(t *testing.T) {
	env := setupRequisitionTest(t, &config.Config{})
	token := testutil.DefaultTestToken()

	body := requisitionBody("PR-5001", 500)
	body["po_number"] = "PO-1"
	body["po_value"] = 500
	// po_date deliberately absent

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/purchase-requisitions", body, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	if resp["kind"] != service.KindIncompletePOGroup {
		t.Errorf("kind = %v, want %s", resp["kind"], service.KindIncompletePOGroup)
	}
	if resp["field"] != "po_date" {
		t.Errorf("field = %v, want po_date", resp["field"])
	}

	// all-or-nothing: nothing was persisted
	wl := testutil.DoRequest(env.Router, "GET", "/api/v1/purchase-requisitions", nil, token)
	data := testutil.ParseResponse(wl)["data"].(map[string]interface{})
	if total := data["pagination"].(map[string]interface{})["total"].(float64); total != 0 {
		t.Errorf("total = %v, want 0 after rejected write", total)
	}
}

func TestRequisitionCompletePOGroupNormalizesPRValue(t *testing.T) {
	env := setupRequisitionTest(t, &config.Config{})
	token := testutil.DefaultTestToken()

	body := requisitionBody("PR-5002", 4800)
	body["po_number"] = "PO-9"
	body["po_date"] = "2024-01-01"
	body["po_value"] = 5000

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/purchase-requisitions", body, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if got := data["pr_value"].(float64); got != 5000 {
		t.Errorf("pr_value = %v, want 5000 (aligned to po_value)", got)
	}
	if !data["po_created"].(bool) {
		t.Error("po_created should be derived true for a complete PO group")
	}
}

func TestRequisitionStrictPOMatchRejectsMismatch(t *testing.T) {
	cfg := &config.Config{}
	cfg.Procurement.StrictPOMatch = true
	env := setupRequisitionTest(t, cfg)
	token := testutil.DefaultTestToken()

	body := requisitionBody("PR-5003", 4800)
	body["po_number"] = "PO-10"
	body["po_date"] = "2024-01-05"
	body["po_value"] = 5000

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/purchase-requisitions", body, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 in strict mode, got %d: %s", w.Code, w.Body.String())
	}
	if resp := testutil.ParseResponse(w); resp["kind"] != service.KindPRValueMismatch {
		t.Errorf("kind = %v, want %s", resp["kind"], service.KindPRValueMismatch)
	}

	body["pr_value"] = 5000
	w2 := testutil.DoRequest(env.Router, "POST", "/api/v1/purchase-requisitions", body, token)
	if w2.Code != http.StatusCreated {
		t.Fatalf("Expected 201 on matching values, got %d: %s", w2.Code, w2.Body.String())
	}
}

func TestRequisitionClientPOCreatedFlagIgnored(t *testing.T) {
	env := setupRequisitionTest(t, &config.Config{})
	token := testutil.DefaultTestToken()

	body := requisitionBody("PR-5004", 900)
	body["po_created"] = true // no PO fields: must be forced back to false

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/purchase-requisitions", body, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if data["po_created"].(bool) {
		t.Error("po_created should be false without a complete PO group")
	}
}

func TestRequisitionCommunicationLog(t *testing.T) {
	env := setupRequisitionTest(t, &config.Config{})
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/purchase-requisitions",
		requisitionBody("PR-6001", 1500), token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Seed PR failed: %d %s", w.Code, w.Body.String())
	}
	prID := testutil.ParseResponse(w)["data"].(map[string]interface{})["id"].(string)

	path := "/api/v1/purchase-requisitions/" + prID + "/communication"
	w1 := testutil.DoRequest(env.Router, "POST", path, map[string]interface{}{
		"user": "buyer1", "log": "Sent RFQ to three vendors",
	}, token)
	if w1.Code != http.StatusOK {
		t.Fatalf("First append failed: %d %s", w1.Code, w1.Body.String())
	}
	time.Sleep(10 * time.Millisecond)
	w2 := testutil.DoRequest(env.Router, "POST", path, map[string]interface{}{
		"user": "buyer2", "log": "Vendor B quote accepted",
	}, token)
	if w2.Code != http.StatusOK {
		t.Fatalf("Second append failed: %d %s", w2.Code, w2.Body.String())
	}

	wg := testutil.DoRequest(env.Router, "GET", "/api/v1/purchase-requisitions/"+prID, nil, token)
	data := testutil.ParseResponse(wg)["data"].(map[string]interface{})
	comm, okCast := data["communication"].([]interface{})
	if !okCast || len(comm) != 2 {
		t.Fatalf("Expected 2 communication entries, got %v", data["communication"])
	}
	first := comm[0].(map[string]interface{})
	if first["log"] != "Vendor B quote accepted" {
		t.Errorf("Expected most recent entry first, got %v", first["log"])
	}

	// missing log text is rejected
	wb := testutil.DoRequest(env.Router, "POST", path, map[string]interface{}{"user": "buyer1"}, token)
	if wb.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for missing log, got %d", wb.Code)
	}
}

func TestRequisitionListFilterAndPagination(t *testing.T) {
	env := setupRequisitionTest(t, &config.Config{})
	token := testutil.DefaultTestToken()

	for i := 0; i < 3; i++ {
		body := requisitionBody(fmt.Sprintf("PR-70%d", i+1), 100)
		w := testutil.DoRequest(env.Router, "POST", "/api/v1/purchase-requisitions", body, token)
		if w.Code != http.StatusCreated {
			t.Fatalf("Seed PR %d failed: %d %s", i, w.Code, w.Body.String())
		}
	}

	w := testutil.DoRequest(env.Router, "GET", "/api/v1/purchase-requisitions?page=1&limit=2", nil, token)
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	items := data["items"].([]interface{})
	if len(items) != 2 {
		t.Errorf("Expected 2 items on first page, got %d", len(items))
	}
	pg := data["pagination"].(map[string]interface{})
	if pg["total"].(float64) != 3 || pg["totalPages"].(float64) != 2 {
		t.Errorf("pagination = %v, want total 3 totalPages 2", pg)
	}

	wf := testutil.DoRequest(env.Router, "GET", "/api/v1/purchase-requisitions?prNumber=PR-701", nil, token)
	dataf := testutil.ParseResponse(wf)["data"].(map[string]interface{})
	if itemsf := dataf["items"].([]interface{}); len(itemsf) != 1 {
		t.Errorf("Expected 1 match for prNumber filter, got %d", len(itemsf))
	}
}

func TestRequisitionListBadPaginationParams(t *testing.T) {
	env := setupRequisitionTest(t, &config.Config{})
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/purchase-requisitions",
		requisitionBody("PR-9001", 100), token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Seed PR failed: %d %s", w.Code, w.Body.String())
	}

	for _, query := range []string{"limit=0", "limit=abc", "limit=-5", "page=0&limit=0"} {
		wl := testutil.DoRequest(env.Router, "GET", "/api/v1/purchase-requisitions?"+query, nil, token)
		if wl.Code != http.StatusOK {
			t.Fatalf("Expected 200 for ?%s, got %d: %s", query, wl.Code, wl.Body.String())
		}
		data := testutil.ParseResponse(wl)["data"].(map[string]interface{})
		pg := data["pagination"].(map[string]interface{})
		if pg["limit"].(float64) != 10 || pg["page"].(float64) != 1 {
			t.Errorf("?%s: pagination = %v, want page 1 limit 10", query, pg)
		}
		if len(data["items"].([]interface{})) != 1 {
			t.Errorf("?%s: expected the seeded requisition to be served", query)
		}
	}

	wc := testutil.DoRequest(env.Router, "GET", "/api/v1/purchase-requisitions?limit=500", nil, token)
	pg := testutil.ParseResponse(wc)["data"].(map[string]interface{})["pagination"].(map[string]interface{})
	if pg["limit"].(float64) != 100 {
		t.Errorf("limit = %v, want oversized limit capped at 100", pg["limit"])
	}
}

func TestRequisitionUpdateReappliesRules(t *testing.T) {
	env := setupRequisitionTest(t, &config.Config{})
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/purchase-requisitions",
		requisitionBody("PR-8001", 1200), token)
	prID := testutil.ParseResponse(w)["data"].(map[string]interface{})["id"].(string)

	body := requisitionBody("PR-8001", 1200)
	body["po_number"] = "PO-42"
	body["po_value"] = 1200
	// still no po_date: update must be rejected just like create

	wu := testutil.DoRequest(env.Router, "PUT", "/api/v1/purchase-requisitions/"+prID, body, token)
	if wu.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d: %s", wu.Code, wu.Body.String())
	}
	if resp := testutil.ParseResponse(wu); resp["kind"] != service.KindIncompletePOGroup {
		t.Errorf("kind = %v, want %s", resp["kind"], service.KindIncompletePOGroup)
	}
}
