package mealplans

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/frankiefreesbie/glucko-server/internal/storage"
	"github.com/frankiefreesbie/glucko-server/internal/storage/memory"
	"github.com/google/uuid"
)

const testDate = "2026-03-02"

func newTestHandler(t *testing.T, recipeCount int) (*Handler, []uuid.UUID) {
	t.Helper()

	store := memory.New()
	ids := make([]uuid.UUID, recipeCount)
	for i := range ids {
		recipe := storage.Recipe{ID: uuid.New(), Name: fmt.Sprintf("Recipe %d", i)}
		if err := store.CreateRecipe(context.Background(), "default", &recipe, nil, nil); err != nil {
			t.Fatalf("failed to seed recipe: %v", err)
		}
		ids[i] = recipe.ID
	}

	service := NewService(store, store, NewGenerator(rand.New(rand.NewSource(1))))
	return NewHandler(service), ids
}

func TestHandleGetPlanEmpty(t *testing.T) {
	handler, _ := newTestHandler(t, 0)

	req := httptest.NewRequest(http.MethodGet, "/v1/plan?date="+testDate, nil)
	w := httptest.NewRecorder()
	handler.HandleGetPlan(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var plan DailyMealPlan
	if err := json.NewDecoder(w.Body).Decode(&plan); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if plan.Date != testDate {
		t.Errorf("expected date %s, got %s", testDate, plan.Date)
	}
	if plan.Breakfast != nil || plan.Lunch != nil || plan.Dinner != nil {
		t.Errorf("expected empty plan, got %+v", plan)
	}
}

func TestHandleGetPlanBadDate(t *testing.T) {
	handler, _ := newTestHandler(t, 0)

	req := httptest.NewRequest(http.MethodGet, "/v1/plan?date=03-02-2026", nil)
	w := httptest.NewRecorder()
	handler.HandleGetPlan(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestHandleSetMeal(t *testing.T) {
	handler, ids := newTestHandler(t, 1)

	body := strings.NewReader(fmt.Sprintf(`{"recipe_id":%q}`, ids[0]))
	req := httptest.NewRequest(http.MethodPut, "/v1/plan/"+testDate+"/lunch", body)
	req.SetPathValue("date", testDate)
	req.SetPathValue("slot", "lunch")
	w := httptest.NewRecorder()
	handler.HandleSetMeal(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var plan DailyMealPlan
	if err := json.NewDecoder(w.Body).Decode(&plan); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if plan.Lunch == nil || plan.Lunch.ID != ids[0] {
		t.Errorf("expected lunch assigned to %s, got %+v", ids[0], plan.Lunch)
	}
	if plan.Breakfast != nil || plan.Dinner != nil {
		t.Errorf("other slots should stay empty, got %+v", plan)
	}
}

func TestHandleSetMealBadSlot(t *testing.T) {
	handler, ids := newTestHandler(t, 1)

	body := strings.NewReader(fmt.Sprintf(`{"recipe_id":%q}`, ids[0]))
	req := httptest.NewRequest(http.MethodPut, "/v1/plan/"+testDate+"/brunch", body)
	req.SetPathValue("date", testDate)
	req.SetPathValue("slot", "brunch")
	w := httptest.NewRecorder()
	handler.HandleSetMeal(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestHandleSetMealUnknownRecipe(t *testing.T) {
	handler, _ := newTestHandler(t, 1)

	body := strings.NewReader(fmt.Sprintf(`{"recipe_id":%q}`, uuid.New()))
	req := httptest.NewRequest(http.MethodPut, "/v1/plan/"+testDate+"/dinner", body)
	req.SetPathValue("date", testDate)
	req.SetPathValue("slot", "dinner")
	w := httptest.NewRecorder()
	handler.HandleSetMeal(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestHandleRemoveMeal(t *testing.T) {
	handler, ids := newTestHandler(t, 1)

	setBody := strings.NewReader(fmt.Sprintf(`{"recipe_id":%q}`, ids[0]))
	setReq := httptest.NewRequest(http.MethodPut, "/v1/plan/"+testDate+"/breakfast", setBody)
	setReq.SetPathValue("date", testDate)
	setReq.SetPathValue("slot", "breakfast")
	setW := httptest.NewRecorder()
	handler.HandleSetMeal(setW, setReq)
	if setW.Code != http.StatusOK {
		t.Fatalf("set: expected 200, got %d", setW.Code)
	}

	req := httptest.NewRequest(http.MethodDelete, "/v1/plan/"+testDate+"/breakfast", nil)
	req.SetPathValue("date", testDate)
	req.SetPathValue("slot", "breakfast")
	w := httptest.NewRecorder()
	handler.HandleRemoveMeal(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var plan DailyMealPlan
	if err := json.NewDecoder(w.Body).Decode(&plan); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if plan.Breakfast != nil {
		t.Errorf("expected breakfast cleared, got %+v", plan.Breakfast)
	}
}

func TestHandleClearDay(t *testing.T) {
	handler, ids := newTestHandler(t, 1)

	setBody := strings.NewReader(fmt.Sprintf(`{"recipe_id":%q}`, ids[0]))
	setReq := httptest.NewRequest(http.MethodPut, "/v1/plan/"+testDate+"/lunch", setBody)
	setReq.SetPathValue("date", testDate)
	setReq.SetPathValue("slot", "lunch")
	handler.HandleSetMeal(httptest.NewRecorder(), setReq)

	req := httptest.NewRequest(http.MethodDelete, "/v1/plan/"+testDate, nil)
	req.SetPathValue("date", testDate)
	w := httptest.NewRecorder()
	handler.HandleClearDay(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}

	getReq := httptest.NewRequest(http.MethodGet, "/v1/plan?date="+testDate, nil)
	getW := httptest.NewRecorder()
	handler.HandleGetPlan(getW, getReq)

	var plan DailyMealPlan
	if err := json.NewDecoder(getW.Body).Decode(&plan); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if plan.Lunch != nil {
		t.Errorf("expected cleared day, got %+v", plan)
	}
}

func TestHandleGenerateDay(t *testing.T) {
	handler, _ := newTestHandler(t, 5)

	req := httptest.NewRequest(http.MethodPost, "/v1/plan/"+testDate+"/generate", nil)
	req.SetPathValue("date", testDate)
	w := httptest.NewRecorder()
	handler.HandleGenerateDay(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var plan DailyMealPlan
	if err := json.NewDecoder(w.Body).Decode(&plan); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(plan.Meals()) != 3 {
		t.Errorf("expected a fully assigned day, got %+v", plan)
	}
}

func TestHandleGenerateDayNotEnoughRecipes(t *testing.T) {
	handler, _ := newTestHandler(t, 2)

	req := httptest.NewRequest(http.MethodPost, "/v1/plan/"+testDate+"/generate", nil)
	req.SetPathValue("date", testDate)
	w := httptest.NewRecorder()
	handler.HandleGenerateDay(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}

	var body map[string]map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body["error"]["code"] != "not_enough_recipes" {
		t.Errorf("expected code=not_enough_recipes, got %q", body["error"]["code"])
	}
}

func TestHandleGenerateWeek(t *testing.T) {
	handler, _ := newTestHandler(t, 5)

	// Anchor mid-week; the response snaps to Monday.
	req := httptest.NewRequest(http.MethodPost, "/v1/plan/generate-week?date=2026-03-04", nil)
	w := httptest.NewRecorder()
	handler.HandleGenerateWeek(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp GenerateWeekResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.WeekStart != "2026-03-02" {
		t.Errorf("expected week_start 2026-03-02, got %s", resp.WeekStart)
	}
	if len(resp.Days) != 7 {
		t.Fatalf("expected 7 days, got %d", len(resp.Days))
	}
	for i := 1; i < len(resp.Days); i++ {
		if resp.Days[i-1].Date >= resp.Days[i].Date {
			t.Errorf("days out of order: %s before %s", resp.Days[i-1].Date, resp.Days[i].Date)
		}
	}
}

func TestHandleSwapMeal(t *testing.T) {
	handler, ids := newTestHandler(t, 2)

	setBody := strings.NewReader(fmt.Sprintf(`{"recipe_id":%q}`, ids[0]))
	setReq := httptest.NewRequest(http.MethodPut, "/v1/plan/"+testDate+"/dinner", setBody)
	setReq.SetPathValue("date", testDate)
	setReq.SetPathValue("slot", "dinner")
	handler.HandleSetMeal(httptest.NewRecorder(), setReq)

	req := httptest.NewRequest(http.MethodPost, "/v1/plan/"+testDate+"/dinner/swap", nil)
	req.SetPathValue("date", testDate)
	req.SetPathValue("slot", "dinner")
	w := httptest.NewRecorder()
	handler.HandleSwapMeal(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp SwapResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Swapped || resp.Recipe == nil {
		t.Fatalf("expected a swap, got %+v", resp)
	}
	if resp.Recipe.ID != ids[1] {
		t.Errorf("swap must pick the only alternative, got %+v", resp.Recipe)
	}
}

func TestHandleSwapMealNoAlternative(t *testing.T) {
	handler, ids := newTestHandler(t, 1)

	setBody := strings.NewReader(fmt.Sprintf(`{"recipe_id":%q}`, ids[0]))
	setReq := httptest.NewRequest(http.MethodPut, "/v1/plan/"+testDate+"/dinner", setBody)
	setReq.SetPathValue("date", testDate)
	setReq.SetPathValue("slot", "dinner")
	handler.HandleSetMeal(httptest.NewRecorder(), setReq)

	req := httptest.NewRequest(http.MethodPost, "/v1/plan/"+testDate+"/dinner/swap", nil)
	req.SetPathValue("date", testDate)
	req.SetPathValue("slot", "dinner")
	w := httptest.NewRecorder()
	handler.HandleSwapMeal(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp SwapResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Swapped || resp.Recipe != nil {
		t.Errorf("expected no swap, got %+v", resp)
	}
}
