package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"regexp"
	"testing"
	"time"

	"dayflow/internal/app/server"
	"dayflow/internal/platform/config"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func testConfig(dbURL string) config.Config {
	return config.Config{
		DatabaseURL:        dbURL,
		JWTSecret:          "test-secret",
		TokenTTL:           time.Hour,
		DataEncryptionKey:  "0123456789abcdef0123456789abcdef",
		FrontendDir:        "frontend/dist",
		Environment:        "test",
		SeedCompanyCode:    "AB",
		SeedAdminEmail:     "admin@test.local",
		SeedAdminPassword:  "ChangeMe123!",
		EmailFrom:          "no-reply@test.local",
		RunMigrations:      true,
		MigrationsDir:      "../../../../migrations",
		RunSeed:            true,
		MaxBodyBytes:       1048576,
		RateLimitPerMinute: 1000,
	}
}

func TestOnboardingJourney(t *testing.T) {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	cfg := testConfig(dbURL)
	app, err := server.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	defer app.Close()

	ts := httptest.NewServer(app.Router)
	defer ts.Close()
	client := ts.Client()

	adminToken := login(t, client, ts.URL, cfg.SeedAdminEmail, cfg.SeedAdminPassword)

	employeeEmail := fmt.Sprintf("journey-%d@example.com", time.Now().UnixNano())
	empID, tempPassword := registerEmployee(t, client, ts.URL, adminToken, "John", "Doe", employeeEmail)

	idPattern := regexp.MustCompile(fmt.Sprintf(`^ABJODO%d\d{4}$`, time.Now().Year()))
	if !idPattern.MatchString(empID) {
		t.Fatalf("unexpected employee id format: %s", empID)
	}

	// The new hire can sign in with the issued temporary credential.
	empToken := login(t, client, ts.URL, employeeEmail, tempPassword)

	// Onboarding created the dependent records.
	balance := getJSON(t, client, ts.URL+"/api/v1/timeoff/balance", empToken, http.StatusOK)
	var bal struct {
		PaidTimeOffAvailable float64 `json:"paidTimeOffAvailable"`
		SickLeaveAvailable   float64 `json:"sickLeaveAvailable"`
	}
	if err := json.Unmarshal(balance, &bal); err != nil {
		t.Fatalf("decode balance: %v", err)
	}
	if bal.PaidTimeOffAvailable != 12 || bal.SickLeaveAvailable != 7 {
		t.Fatalf("unexpected default balances: %+v", bal)
	}

	// Duplicate email rejected.
	status, env := postJSON(t, client, ts.URL+"/api/v1/employees/register", adminToken, map[string]any{
		"companyCode":   "AB",
		"firstName":     "Johnny",
		"lastName":      "Doe",
		"email":         employeeEmail,
		"dateOfJoining": "2024-01-15",
	})
	if status != http.StatusBadRequest || env.Error == nil || env.Error.Code != "duplicate_email" {
		t.Fatalf("expected duplicate_email 400, got %d %+v", status, env.Error)
	}

	// Same name and year gets the next serial.
	secondEmail := fmt.Sprintf("journey2-%d@example.com", time.Now().UnixNano())
	secondID, _ := registerEmployee(t, client, ts.URL, adminToken, "John", "Doe", secondEmail)
	if secondID == empID {
		t.Fatalf("expected distinct ids, got %s twice", empID)
	}
	if secondID[:len(secondID)-4] != empID[:len(empID)-4] {
		t.Fatalf("expected shared prefix, got %s and %s", empID, secondID)
	}
}

func TestEmployeeCannotRegisterOrReadOthers(t *testing.T) {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	cfg := testConfig(dbURL)
	app, err := server.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	defer app.Close()

	ts := httptest.NewServer(app.Router)
	defer ts.Close()
	client := ts.Client()

	adminToken := login(t, client, ts.URL, cfg.SeedAdminEmail, cfg.SeedAdminPassword)

	aliceEmail := fmt.Sprintf("alice-%d@example.com", time.Now().UnixNano())
	_, alicePassword := registerEmployee(t, client, ts.URL, adminToken, "Alice", "Smith", aliceEmail)
	bobEmail := fmt.Sprintf("bob-%d@example.com", time.Now().UnixNano())
	bobID, _ := registerEmployee(t, client, ts.URL, adminToken, "Bob", "Jones", bobEmail)

	aliceToken := login(t, client, ts.URL, aliceEmail, alicePassword)

	// Plain employee cannot register.
	status, _ := postJSON(t, client, ts.URL+"/api/v1/employees/register", aliceToken, map[string]any{
		"companyCode":   "AB",
		"firstName":     "Eve",
		"lastName":      "Adams",
		"email":         fmt.Sprintf("eve-%d@example.com", time.Now().UnixNano()),
		"dateOfJoining": "2024-01-15",
	})
	if status != http.StatusForbidden {
		t.Fatalf("expected 403 for employee register, got %d", status)
	}

	// Plain employee cannot read another employee's record.
	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/api/v1/employees/"+bobID, nil)
	req.Header.Set("Authorization", "Bearer "+aliceToken)
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for cross-employee read, got %d", resp.StatusCode)
	}

	// Admin can.
	_ = getJSON(t, client, ts.URL+"/api/v1/employees/"+bobID, adminToken, http.StatusOK)
}

func login(t *testing.T, client *http.Client, baseURL, email, password string) string {
	t.Helper()
	status, env := postJSON(t, client, baseURL+"/api/v1/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	if status != http.StatusOK {
		t.Fatalf("login failed with status %d", status)
	}
	var data struct {
		AccessToken string `json:"accessToken"`
		TokenType   string `json:"tokenType"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if data.TokenType != "bearer" || data.AccessToken == "" {
		t.Fatalf("unexpected login response: %+v", data)
	}
	return data.AccessToken
}

func registerEmployee(t *testing.T, client *http.Client, baseURL, token, firstName, lastName, email string) (string, string) {
	t.Helper()
	status, env := postJSON(t, client, baseURL+"/api/v1/employees/register", token, map[string]any{
		"companyCode":   "AB",
		"firstName":     firstName,
		"lastName":      lastName,
		"email":         email,
		"dateOfJoining": "2024-01-15",
	})
	if status != http.StatusCreated {
		t.Fatalf("register failed with status %d: %+v", status, env.Error)
	}
	var data struct {
		Employee struct {
			EmpID string `json:"empId"`
		} `json:"employee"`
		TemporaryPassword string `json:"temporaryPassword"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode register response: %v", err)
	}
	if data.Employee.EmpID == "" || data.TemporaryPassword == "" {
		t.Fatal("expected employee id and temporary password")
	}
	return data.Employee.EmpID, data.TemporaryPassword
}

func postJSON(t *testing.T, client *http.Client, url, token string, payload any) (int, envelope) {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var env envelope
	raw, _ := io.ReadAll(resp.Body)
	_ = json.Unmarshal(raw, &env)
	return resp.StatusCode, env
}

func getJSON(t *testing.T, client *http.Client, url, token string, wantStatus int) json.RawMessage {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != wantStatus {
		raw, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected status %d, got %d: %s", wantStatus, resp.StatusCode, raw)
	}
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return env.Data
}
