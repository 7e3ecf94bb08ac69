package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"fintrack/internal/logger"
	"fintrack/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
}

type apiClient struct {
	t      *testing.T
	engine *gin.Engine
}

func (a *apiClient) do(method, path, token, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	a.t.Helper()
	req := httptest.NewRequest(method, "/api/v1"+path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.engine.ServeHTTP(rec, req)

	var result map[string]interface{}
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
			a.t.Fatalf("failed to parse %s %s response: %v\nbody: %s", method, path, err, rec.Body.String())
		}
	}
	return rec, result
}

func (a *apiClient) expect(method, path, token, body string, status int) map[string]interface{} {
	a.t.Helper()
	rec, result := a.do(method, path, token, body)
	if rec.Code != status {
		a.t.Fatalf("%s %s: expected %d, got %d: %s", method, path, status, rec.Code, rec.Body.String())
	}
	return result
}

func (a *apiClient) login(email, password string) string {
	a.t.Helper()
	result := a.expect("POST", "/auth/login", "", `{"email":"`+email+`","password":"`+password+`"}`, http.StatusOK)
	return result["access_token"].(string)
}

func (a *apiClient) aggregate(token, column string) decimal.Decimal {
	a.t.Helper()
	result := a.expect("GET", "/financial-status", token, "", http.StatusOK)
	status := result["financial_status"].(map[string]interface{})
	return decimal.RequireFromString(status[column].(string))
}

func assertAmount(t *testing.T, name string, got decimal.Decimal, want string) {
	t.Helper()
	testutil.AssertDecimal(t, name, got, want)
}

func errorCode(result map[string]interface{}) (string, string) {
	errObj, _ := result["error"].(map[string]interface{})
	code, _ := errObj["code"].(string)
	field, _ := errObj["field"].(string)
	return code, field
}

func TestHealth(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	r := New(db)

	req := httptest.NewRequest(http.MethodGet, "/api/health", http.NoBody)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestFinancialFlow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	api := &apiClient{t: t, engine: New(db)}

	admin := testutil.CreateTestAdmin(t, db)
	adminToken := api.login(admin.Email, testutil.TestPassword)

	// Registration leaves the account inactive until an admin activates it.
	registered := api.expect("POST", "/auth/register", "",
		`{"email":"Jane@Example.COM","password":"password123","first_name":"Jane"}`, http.StatusCreated)
	user := registered["user"].(map[string]interface{})
	userID := user["id"].(string)
	if user["email"] != "Jane@example.com" {
		t.Errorf("expected normalized email, got %v", user["email"])
	}

	_, result := api.do("POST", "/auth/login", "", `{"email":"Jane@example.com","password":"password123"}`)
	if code, _ := errorCode(result); code != "ACCOUNT_INACTIVE" {
		t.Fatalf("expected ACCOUNT_INACTIVE, got %v", result)
	}

	api.expect("PUT", "/admin/users/"+userID+"/active", adminToken, `{"is_active":true}`, http.StatusOK)
	token := api.login("Jane@example.com", "password123")

	t.Run("entries require a financial status", func(t *testing.T) {
		_, result := api.do("POST", "/income-sources", token, `{"income_source":"Salary","income_amount":"1000"}`)
		if code, _ := errorCode(result); code != "FINANCIAL_STATUS_NOT_FOUND" {
			t.Errorf("expected FINANCIAL_STATUS_NOT_FOUND, got %v", result)
		}
	})

	api.expect("POST", "/financial-status", token, `{"gross_salary":"5000"}`, http.StatusCreated)

	t.Run("second financial status is rejected", func(t *testing.T) {
		api.expect("POST", "/financial-status", token, `{"gross_salary":"6000"}`, http.StatusConflict)
	})

	t.Run("income scenario", func(t *testing.T) {
		salary := api.expect("POST", "/income-sources", token,
			`{"income_source":"Salary","income_amount":"1000","frequency":"monthly"}`, http.StatusCreated)
		api.expect("POST", "/income-sources", token,
			`{"income_source":"Side job","income_amount":"250"}`, http.StatusCreated)
		assertAmount(t, "net_earnings", api.aggregate(token, "net_earnings"), "1250")

		salaryID := salary["income_source"].(map[string]interface{})["id"].(string)
		api.expect("DELETE", "/income-sources/"+salaryID, token, "", http.StatusOK)
		assertAmount(t, "net_earnings", api.aggregate(token, "net_earnings"), "250")
		assertAmount(t, "gross_salary", api.aggregate(token, "gross_salary"), "5000")
	})

	t.Run("investments roll up", func(t *testing.T) {
		api.expect("POST", "/investments", token,
			`{"investment_type":"three_years","amount_invested":"1000","currently_invested":"1200.75","return_rate":"6.5"}`,
			http.StatusCreated)
		assertAmount(t, "total_investments", api.aggregate(token, "total_investments"), "1200.75")
		assertAmount(t, "total_debt", api.aggregate(token, "total_debt"), "0")
	})

	t.Run("negative amounts are rejected", func(t *testing.T) {
		rec, result := api.do("POST", "/debts", token, `{"debt_name":"Card","debt_amount":"-5","debt_due_date":"2025-03-01"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if code, field := errorCode(result); code != "INVALID_INPUT" || field != "debt_amount" {
			t.Errorf("expected INVALID_INPUT on debt_amount, got %v", result)
		}
		assertAmount(t, "total_debt", api.aggregate(token, "total_debt"), "0")
	})

	t.Run("debts update and summary", func(t *testing.T) {
		created := api.expect("POST", "/debts", token,
			`{"debt_name":"Car","debt_amount":"400","debt_due_date":"2025-03-01"}`, http.StatusCreated)
		debtID := created["debt"].(map[string]interface{})["id"].(string)
		api.expect("PUT", "/debts/"+debtID, token,
			`{"debt_name":"Car","debt_amount":"350.25","debt_due_date":"2025-04-01"}`, http.StatusOK)
		assertAmount(t, "total_debt", api.aggregate(token, "total_debt"), "350.25")

		summary := api.expect("GET", "/financial-status/summary", token, "", http.StatusOK)["summary"].(map[string]interface{})
		assertAmount(t, "net_worth", decimal.RequireFromString(summary["net_worth"].(string)), "850.5")
		assertAmount(t, "disposable_income", decimal.RequireFromString(summary["disposable_income"].(string)), "250")
	})

	t.Run("entries of other users stay hidden", func(t *testing.T) {
		other := testutil.CreateTestUser(t, db)
		otherToken := api.login(other.Email, testutil.TestPassword)
		api.expect("POST", "/financial-status", otherToken, `{"gross_salary":"0"}`, http.StatusCreated)

		list := api.expect("GET", "/income-sources", token, "", http.StatusOK)
		entryID := list["data"].([]interface{})[0].(map[string]interface{})["id"].(string)

		api.expect("GET", "/income-sources/"+entryID, otherToken, "", http.StatusNotFound)
		api.expect("DELETE", "/income-sources/"+entryID, otherToken, "", http.StatusNotFound)
		assertAmount(t, "net_earnings", api.aggregate(token, "net_earnings"), "250")
	})

	t.Run("tips are admin writable", func(t *testing.T) {
		tip := `{"advice_title":"Build an emergency fund","advice_content":"Three months of expenses.","category":"Savings"}`
		api.expect("POST", "/tips", token, tip, http.StatusForbidden)
		api.expect("POST", "/tips", adminToken, tip, http.StatusCreated)

		list := api.expect("GET", "/tips?category=Savings", token, "", http.StatusOK)
		if list["total_items"] != float64(1) {
			t.Errorf("expected 1 tip, got %v", list["total_items"])
		}
	})

	t.Run("admin routes are guarded", func(t *testing.T) {
		api.expect("GET", "/admin/users", token, "", http.StatusForbidden)
		api.expect("GET", "/admin/users", "", "", http.StatusUnauthorized)
	})

	t.Run("deleting the user removes everything", func(t *testing.T) {
		api.expect("DELETE", "/admin/users/"+userID, adminToken, "", http.StatusOK)
		api.expect("GET", "/profile", token, "", http.StatusNotFound)
		api.expect("GET", "/financial-status", token, "", http.StatusNotFound)
	})
}
