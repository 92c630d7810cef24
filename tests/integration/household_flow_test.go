package integration

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"

	"socialregistry/internal/models"
)

// total extracts the decimal total monthly income from a household JSON object.
func total(t *testing.T, household map[string]interface{}) decimal.Decimal {
	t.Helper()
	raw, ok := household["total_monthly_income"].(string)
	if !ok {
		t.Fatalf("expected total_monthly_income as string, got %T", household["total_monthly_income"])
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		t.Fatalf("invalid total %q: %v", raw, err)
	}
	return d
}

func registerBody(nationalID string, members string) string {
	return fmt.Sprintf(`{
		"household_national_id": %q,
		"address": "1 Registry Road",
		"primary_phone": "0712345678",
		"members": [%s]
	}`, nationalID, members)
}

func TestHouseholdRegistrationFlow(t *testing.T) {
	t.Run("registers a household and computes the total", func(t *testing.T) {
		app := setupApp(t)
		workerID, token := app.userWithToken(t, "worker1", "case_worker")

		members := `
			{"national_id":"M-1","first_name":"Anna","last_name":"Okoro","date_of_birth":"1985-06-15","monthly_income":"100"},
			{"national_id":"M-2","first_name":"Ben","last_name":"Okoro","date_of_birth":"1990-01-01"},
			{"national_id":"M-3","first_name":"Cara","last_name":"Okoro","date_of_birth":"2010-03-20","monthly_income":"50.50"}`
		rec := app.request("POST", "/api/v1/households/", registerBody("HH-100", members), token)
		if rec.Code != http.StatusCreated {
			t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
		}

		result := parseJSON(t, rec)
		household := result["household"].(map[string]interface{})
		if !total(t, household).Equal(decimal.RequireFromString("150.50")) {
			t.Errorf("expected total 150.50, got %s", total(t, household))
		}
		if household["registered_by"].(float64) != workerID {
			t.Errorf("expected registered_by %v, got %v", workerID, household["registered_by"])
		}
		if len(household["members"].([]interface{})) != 3 {
			t.Errorf("expected 3 members, got %v", household["members"])
		}
		if household["status"].(string) != "active" {
			t.Errorf("expected active status, got %v", household["status"])
		}
	})

	t.Run("empty household has zero total", func(t *testing.T) {
		app := setupApp(t)
		_, token := app.userWithToken(t, "worker1", "case_worker")

		rec := app.request("POST", "/api/v1/households/", registerBody("HH-EMPTY", ""), token)
		if rec.Code != http.StatusCreated {
			t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
		}
		household := parseJSON(t, rec)["household"].(map[string]interface{})
		if !total(t, household).IsZero() {
			t.Errorf("expected zero total, got %s", total(t, household))
		}
	})

	t.Run("duplicate household national id", func(t *testing.T) {
		app := setupApp(t)
		_, token := app.userWithToken(t, "worker1", "case_worker")

		rec := app.request("POST", "/api/v1/households/", registerBody("HH-DUP", ""), token)
		if rec.Code != http.StatusCreated {
			t.Fatalf("first register failed: %d", rec.Code)
		}

		rec = app.request("POST", "/api/v1/households/", registerBody("HH-DUP", ""), token)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if code := errorCode(t, rec); code != "DUPLICATE_HOUSEHOLD_ID" {
			t.Errorf("expected DUPLICATE_HOUSEHOLD_ID, got %s", code)
		}
	})

	t.Run("duplicate member id rolls back the whole registration", func(t *testing.T) {
		app := setupApp(t)
		_, token := app.userWithToken(t, "worker1", "case_worker")

		first := `{"national_id":"M-TAKEN","first_name":"Dan","last_name":"Abara","date_of_birth":"1980-01-01"}`
		rec := app.request("POST", "/api/v1/households/", registerBody("HH-A", first), token)
		if rec.Code != http.StatusCreated {
			t.Fatalf("first register failed: %d %s", rec.Code, rec.Body.String())
		}

		colliding := `
			{"national_id":"M-NEW","first_name":"Eve","last_name":"Njoku","date_of_birth":"1982-02-02","monthly_income":"100"},
			{"national_id":"M-TAKEN","first_name":"Finn","last_name":"Njoku","date_of_birth":"1984-04-04"}`
		rec = app.request("POST", "/api/v1/households/", registerBody("HH-B", colliding), token)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d %s", rec.Code, rec.Body.String())
		}
		if code := errorCode(t, rec); code != "DUPLICATE_MEMBER_ID" {
			t.Errorf("expected DUPLICATE_MEMBER_ID, got %s", code)
		}

		var households int64
		app.DB.Model(&models.Household{}).Count(&households)
		if households != 1 {
			t.Errorf("expected 1 household after rollback, got %d", households)
		}
		var members int64
		app.DB.Model(&models.HouseholdMember{}).Count(&members)
		if members != 1 {
			t.Errorf("expected 1 member after rollback, got %d", members)
		}
	})

	t.Run("viewer cannot register", func(t *testing.T) {
		app := setupApp(t)
		_, token := app.userWithToken(t, "viewer1", "viewer")

		rec := app.request("POST", "/api/v1/households/", registerBody("HH-V", ""), token)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d %s", rec.Code, rec.Body.String())
		}
	})
}

func TestHouseholdUpdateFlow(t *testing.T) {
	t.Run("partial household update leaves other fields alone", func(t *testing.T) {
		app := setupApp(t)
		_, token := app.userWithToken(t, "worker1", "case_worker")

		member := `{"national_id":"M-10","first_name":"Gina","last_name":"Asante","date_of_birth":"1975-05-05","monthly_income":"800"}`
		rec := app.request("POST", "/api/v1/households/", registerBody("HH-UPD", member), token)
		household := parseJSON(t, rec)["household"].(map[string]interface{})
		id := household["household_id"].(float64)

		rec = app.request("PUT", fmt.Sprintf("/api/v1/households/%.0f", id),
			`{"address":"2 Moved Lane"}`, token)
		if rec.Code != http.StatusOK {
			t.Fatalf("update failed: %d %s", rec.Code, rec.Body.String())
		}
		updated := parseJSON(t, rec)["household"].(map[string]interface{})
		if updated["address"].(string) != "2 Moved Lane" {
			t.Errorf("expected new address, got %v", updated["address"])
		}
		if updated["primary_phone"].(string) != "0712345678" {
			t.Errorf("expected untouched phone, got %v", updated["primary_phone"])
		}
		if !total(t, updated).Equal(decimal.RequireFromString("800")) {
			t.Errorf("expected untouched total, got %s", total(t, updated))
		}
	})

	t.Run("member income update recomputes the total", func(t *testing.T) {
		app := setupApp(t)
		_, token := app.userWithToken(t, "worker1", "case_worker")

		members := `
			{"national_id":"M-20","first_name":"Hana","last_name":"Diallo","date_of_birth":"1988-08-08","monthly_income":"100"},
			{"national_id":"M-21","first_name":"Idris","last_name":"Diallo","date_of_birth":"1986-06-06","monthly_income":"250.25"}`
		rec := app.request("POST", "/api/v1/households/", registerBody("HH-MEM", members), token)
		household := parseJSON(t, rec)["household"].(map[string]interface{})
		householdID := household["household_id"].(float64)
		memberList := household["members"].([]interface{})
		memberID := memberList[0].(map[string]interface{})["member_id"].(float64)

		rec = app.request("PUT",
			fmt.Sprintf("/api/v1/households/%.0f/members/%.0f", householdID, memberID),
			`{"monthly_income":"500"}`, token)
		if rec.Code != http.StatusOK {
			t.Fatalf("member update failed: %d %s", rec.Code, rec.Body.String())
		}

		rec = app.request("GET", fmt.Sprintf("/api/v1/households/%.0f", householdID), "", token)
		reloaded := parseJSON(t, rec)["household"].(map[string]interface{})
		if !total(t, reloaded).Equal(decimal.RequireFromString("750.25")) {
			t.Errorf("expected recomputed total 750.25, got %s", total(t, reloaded))
		}
	})

	t.Run("member of another household is not found", func(t *testing.T) {
		app := setupApp(t)
		_, token := app.userWithToken(t, "worker1", "case_worker")

		member := `{"national_id":"M-30","first_name":"Jude","last_name":"Banda","date_of_birth":"1992-02-02"}`
		rec := app.request("POST", "/api/v1/households/", registerBody("HH-ONE", member), token)
		one := parseJSON(t, rec)["household"].(map[string]interface{})
		memberID := one["members"].([]interface{})[0].(map[string]interface{})["member_id"].(float64)

		rec = app.request("POST", "/api/v1/households/", registerBody("HH-TWO", ""), token)
		two := parseJSON(t, rec)["household"].(map[string]interface{})

		rec = app.request("PUT",
			fmt.Sprintf("/api/v1/households/%.0f/members/%.0f", two["household_id"].(float64), memberID),
			`{"first_name":"Kofi"}`, token)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d %s", rec.Code, rec.Body.String())
		}
		if code := errorCode(t, rec); code != "MEMBER_NOT_FOUND" {
			t.Errorf("expected MEMBER_NOT_FOUND, got %s", code)
		}
	})
}

func TestHouseholdSearchFlow(t *testing.T) {
	seed := func(t *testing.T, app *testApp, token string) {
		t.Helper()
		bodies := []string{
			registerBody("HH-100", `{"national_id":"S-1","first_name":"Anna","last_name":"Okoro","date_of_birth":"1985-06-15"}`),
			registerBody("HH-200", `{"national_id":"S-2","first_name":"Brian","last_name":"Hannington","date_of_birth":"1983-03-03"}`),
			registerBody("ALT-300", `{"national_id":"S-3","first_name":"Clara","last_name":"Otieno","date_of_birth":"1987-07-07"}`),
		}
		for _, body := range bodies {
			rec := app.request("POST", "/api/v1/households/", body, token)
			if rec.Code != http.StatusCreated {
				t.Fatalf("seed register failed: %d %s", rec.Code, rec.Body.String())
			}
		}
	}

	search := func(t *testing.T, app *testApp, token, query string) []interface{} {
		t.Helper()
		rec := app.request("GET", "/api/v1/households/search/"+query, "", token)
		if rec.Code != http.StatusOK {
			t.Fatalf("search failed: %d %s", rec.Code, rec.Body.String())
		}
		return parseJSON(t, rec)["households"].([]interface{})
	}

	t.Run("member name matches first or last name across cases", func(t *testing.T) {
		app := setupApp(t)
		_, token := app.userWithToken(t, "viewer1", "viewer")
		_, workerToken := app.userWithToken(t, "worker1", "case_worker")
		seed(t, app, workerToken)

		results := search(t, app, token, "?member_name=ANN")
		if len(results) != 2 {
			t.Fatalf("expected 2 matches for ANN, got %d", len(results))
		}
	})

	t.Run("filters combine with AND", func(t *testing.T) {
		app := setupApp(t)
		_, token := app.userWithToken(t, "worker1", "case_worker")
		seed(t, app, token)

		results := search(t, app, token, "?member_name=ann&national_id=hh-1")
		if len(results) != 1 {
			t.Fatalf("expected 1 match, got %d", len(results))
		}
		h := results[0].(map[string]interface{})
		if h["household_national_id"].(string) != "HH-100" {
			t.Errorf("expected HH-100, got %v", h["household_national_id"])
		}
	})

	t.Run("phone matches primary or secondary", func(t *testing.T) {
		app := setupApp(t)
		_, token := app.userWithToken(t, "worker1", "case_worker")

		body := `{
			"household_national_id": "HH-PH",
			"address": "3 Phone Street",
			"secondary_phone": "0798765432",
			"members": []
		}`
		rec := app.request("POST", "/api/v1/households/", body, token)
		if rec.Code != http.StatusCreated {
			t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
		}

		results := search(t, app, token, "?phone=876543")
		if len(results) != 1 {
			t.Fatalf("expected 1 match via secondary phone, got %d", len(results))
		}
	})

	t.Run("no filters returns the full register", func(t *testing.T) {
		app := setupApp(t)
		_, token := app.userWithToken(t, "worker1", "case_worker")
		seed(t, app, token)

		results := search(t, app, token, "")
		if len(results) != 3 {
			t.Fatalf("expected all 3 households, got %d", len(results))
		}
	})
}
