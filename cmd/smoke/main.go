package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"
)

const (
	defaultAPIBase = "http://localhost:8080"
)

var (
	apiBase   string
	token     string
	client    = &http.Client{Timeout: 30 * time.Second}
	testDate  string
	recipeIDs []string
	exportID  string
)

func main() {
	fmt.Println("=== Glucko E2E Smoke Test ===")
	fmt.Println()

	apiBase = getEnv("API_BASE_URL", defaultAPIBase)
	token = getEnv("SMOKE_TOKEN", "")

	fmt.Printf("API Base: %s\n", apiBase)
	fmt.Printf("Token: %s\n", maskString(token))
	fmt.Println()

	testDate = time.Now().Format("2006-01-02")

	steps := []struct {
		name string
		fn   func() error
	}{
		{"Healthz", testHealthz},
		{"Create Recipes", testCreateRecipes},
		{"List Recipes", testListRecipes},
		{"Generate Week", testGenerateWeek},
		{"Get Plan", testGetPlan},
		{"Grocery List", testGroceryList},
		{"Toggle Completion", testToggleCompletion},
		{"Share Message", testShare},
		{"Create Export (TXT)", testCreateExport},
		{"Download Export", testDownloadExport},
		{"Log Meal", testLogMeal},
		{"Points Total", testPoints},
	}

	failed := false
	for i, step := range steps {
		fmt.Printf("[%d/%d] %s... ", i+1, len(steps), step.name)
		if err := step.fn(); err != nil {
			fmt.Printf("❌ FAILED\n")
			fmt.Printf("  Error: %v\n\n", err)
			failed = true
			break
		}
		fmt.Printf("✅ OK\n")
	}

	fmt.Println()
	if failed {
		fmt.Println("❌ SMOKE TEST FAILED")
		os.Exit(1)
	}

	fmt.Println("✅ ALL SMOKE TESTS PASSED")
}

func testHealthz() error {
	resp, err := doGet("/healthz")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return expectStatus(resp, http.StatusOK)
}

func testCreateRecipes() error {
	seeds := []map[string]any{
		{
			"name":         "Overnight Oats",
			"prep_minutes": 10,
			"calories":     380,
			"ingredients": []map[string]any{
				{"name": "Oats", "amount": "200g"},
				{"name": "Milk", "amount": "1/2 l"},
				{"name": "Honey", "amount": "to taste"},
			},
		},
		{
			"name":         "Lentil Soup",
			"prep_minutes": 35,
			"calories":     420,
			"ingredients": []map[string]any{
				{"name": "Lentils", "amount": "400 g"},
				{"name": "Garlic", "amount": "2 cloves"},
			},
		},
		{
			"name":         "Avocado Toast",
			"prep_minutes": 5,
			"calories":     310,
			"ingredients": []map[string]any{
				{"name": "Avocado", "amount": "1"},
				{"name": "Bread", "amount": "2 slices"},
			},
		},
	}

	for _, seed := range seeds {
		resp, err := doPost("/v1/recipes", seed)
		if err != nil {
			return err
		}
		var created struct {
			ID string `json:"id"`
		}
		err = decodeAndClose(resp, http.StatusCreated, &created)
		if err != nil {
			return err
		}
		recipeIDs = append(recipeIDs, created.ID)
	}
	return nil
}

func testListRecipes() error {
	resp, err := doGet("/v1/recipes")
	if err != nil {
		return err
	}
	var list struct {
		Recipes []json.RawMessage `json:"recipes"`
	}
	if err := decodeAndClose(resp, http.StatusOK, &list); err != nil {
		return err
	}
	if len(list.Recipes) < 3 {
		return fmt.Errorf("expected at least 3 recipes, got %d", len(list.Recipes))
	}
	return nil
}

func testGenerateWeek() error {
	resp, err := doPost("/v1/plan/generate-week?date="+testDate, nil)
	if err != nil {
		return err
	}
	var week struct {
		WeekStart string            `json:"week_start"`
		Days      []json.RawMessage `json:"days"`
	}
	if err := decodeAndClose(resp, http.StatusOK, &week); err != nil {
		return err
	}
	if len(week.Days) != 7 {
		return fmt.Errorf("expected 7 days, got %d", len(week.Days))
	}
	return nil
}

func testGetPlan() error {
	resp, err := doGet("/v1/plan?date=" + testDate)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return expectStatus(resp, http.StatusOK)
}

func testGroceryList() error {
	resp, err := doGet("/v1/grocery?date=" + testDate)
	if err != nil {
		return err
	}
	var list struct {
		Items []struct {
			Name   string `json:"name"`
			Amount string `json:"amount"`
		} `json:"items"`
	}
	if err := decodeAndClose(resp, http.StatusOK, &list); err != nil {
		return err
	}
	fmt.Printf("(%d items) ", len(list.Items))
	return nil
}

func testToggleCompletion() error {
	resp, err := doPut("/v1/grocery/completion", map[string]any{
		"name":      "Garlic",
		"completed": true,
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return expectStatus(resp, http.StatusOK)
}

func testShare() error {
	resp, err := doGet("/v1/grocery/share?date=" + testDate + "&week=1")
	if err != nil {
		return err
	}
	var share struct {
		Message string `json:"message"`
	}
	if err := decodeAndClose(resp, http.StatusOK, &share); err != nil {
		return err
	}
	if share.Message == "" {
		return fmt.Errorf("empty share message")
	}
	return nil
}

func testCreateExport() error {
	resp, err := doPost("/v1/grocery/exports", map[string]any{
		"date":   testDate,
		"week":   true,
		"format": "txt",
	})
	if err != nil {
		return err
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := decodeAndClose(resp, http.StatusCreated, &created); err != nil {
		return err
	}
	exportID = created.ID
	return nil
}

func testDownloadExport() error {
	resp, err := doGet("/v1/grocery/exports/" + exportID + "/download")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusFound {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("status=%d body=%s", resp.StatusCode, string(body))
	}
	return nil
}

func testLogMeal() error {
	if len(recipeIDs) == 0 {
		return fmt.Errorf("no recipes created")
	}
	resp, err := doPost("/v1/meallog", map[string]any{
		"recipe_id": recipeIDs[0],
		"meal_type": "lunch",
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return expectStatus(resp, http.StatusCreated)
}

func testPoints() error {
	resp, err := doGet("/v1/meallog/points")
	if err != nil {
		return err
	}
	var points struct {
		TotalPoints int `json:"total_points"`
	}
	if err := decodeAndClose(resp, http.StatusOK, &points); err != nil {
		return err
	}
	if points.TotalPoints < 120 {
		return fmt.Errorf("expected at least 120 points, got %d", points.TotalPoints)
	}
	return nil
}

// ---- HTTP helpers ----

func doGet(path string) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodGet, apiBase+path, nil)
	if err != nil {
		return nil, err
	}
	addAuth(req)
	return client.Do(req)
}

func doPost(path string, body any) (*http.Response, error) {
	return doJSON(http.MethodPost, path, body)
}

func doPut(path string, body any) (*http.Response, error) {
	return doJSON(http.MethodPut, path, body)
}

func doJSON(method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, apiBase+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	addAuth(req)
	return client.Do(req)
}

func decodeAndClose(resp *http.Response, wantStatus int, v any) error {
	defer resp.Body.Close()
	if err := expectStatus(resp, wantStatus); err != nil {
		return err
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

func expectStatus(resp *http.Response, want int) error {
	if resp.StatusCode != want {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("status=%d want=%d body=%s", resp.StatusCode, want, string(body))
	}
	return nil
}

func addAuth(req *http.Request) {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func maskString(s string) string {
	if s == "" {
		return "(not set)"
	}
	if len(s) <= 8 {
		return "****"
	}
	return s[:4] + "..." + s[len(s)-4:]
}
