package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gymstore/storefront/internal/core/domain"
)

var adminSession = domain.Session{Token: "tok", Role: domain.RoleAdmin, UserID: 1, Username: "root"}

func TestStoreHandler_CreatePlan(t *testing.T) {
	catalog := &stubCatalogBackend{}
	h := NewStoreHandler(catalog)

	c, rec := newTestContext(t, http.MethodPost, "/v1/planes",
		`{"nombre":"Plan Anual","precio":240000,"duracion_meses":12,"descripcion":"Acceso full"}`,
		adminSession)

	if err := h.CreatePlan(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if catalog.lastPlanInput.Name != "Plan Anual" || catalog.lastPlanInput.Price != 240000 || catalog.lastPlanInput.DurationMonths != 12 {
		t.Fatalf("plan fields lost: %+v", catalog.lastPlanInput)
	}
}

func TestStoreHandler_CreatePlan_RejectsInvalid(t *testing.T) {
	catalog := &stubCatalogBackend{}
	h := NewStoreHandler(catalog)

	c, _ := newTestContext(t, http.MethodPost, "/v1/planes",
		`{"nombre":"Plan Anual","precio":0,"duracion_meses":12}`, adminSession)

	if err := h.CreatePlan(c); err == nil {
		t.Fatalf("expected validation error for zero price")
	}
	if catalog.lastPlanInput.Name != "" {
		t.Fatalf("backend must not be called on an invalid payload")
	}
}

func TestStoreHandler_UpdatePlan(t *testing.T) {
	catalog := &stubCatalogBackend{}
	h := NewStoreHandler(catalog)

	c, rec := newTestContext(t, http.MethodPatch, "/v1/planes/3",
		`{"nombre":"Plan Mensual","precio":30000,"duracion_meses":1}`, adminSession)
	c.SetParamNames("id")
	c.SetParamValues("3")

	if err := h.UpdatePlan(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp domain.Plan
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.ID != 3 || resp.Name != "Plan Mensual" {
		t.Fatalf("unexpected plan payload: %+v", resp)
	}
}

func TestStoreHandler_DeletePlan(t *testing.T) {
	catalog := &stubCatalogBackend{}
	h := NewStoreHandler(catalog)

	c, rec := newTestContext(t, http.MethodDelete, "/v1/planes/5", "", adminSession)
	c.SetParamNames("id")
	c.SetParamValues("5")

	if err := h.DeletePlan(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if catalog.deletedPlanID != 5 {
		t.Fatalf("expected plan 5 deleted, got %d", catalog.deletedPlanID)
	}
}

func TestStoreHandler_UpdateUser(t *testing.T) {
	catalog := &stubCatalogBackend{}
	h := NewStoreHandler(catalog)

	c, rec := newTestContext(t, http.MethodPatch, "/v1/usuarios/7",
		`{"nombre":"Ana","apellidos":"Pérez","email":"ana@example.com","numero_personal":"+56911111111","is_active":false}`,
		adminSession)
	c.SetParamNames("id")
	c.SetParamValues("7")

	if err := h.UpdateUser(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if catalog.lastUserID != 7 {
		t.Fatalf("expected user 7, got %d", catalog.lastUserID)
	}
	if catalog.lastUserInput.FirstName != "Ana" || catalog.lastUserInput.Active {
		t.Fatalf("user fields lost: %+v", catalog.lastUserInput)
	}
}
