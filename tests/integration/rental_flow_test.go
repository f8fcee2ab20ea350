package integration

import (
	"fmt"
	"net/http"
	"testing"
)

func TestRentalFlow_BookingsExpensesAndKPIs(t *testing.T) {
	app := setupApp(t)

	propertyID := app.createProperty(t, "JBR Shams 2105")

	// Two bookings inside June, one cancelled booking which must be ignored.
	rec := app.request("POST", fmt.Sprintf("/api/v1/properties/%.0f/bookings", propertyID),
		`{"guest_name":"Lena Fischer","check_in":"2024-06-01T00:00:00Z","check_out":"2024-06-06T00:00:00Z","nightly_rate":500,"channel":"airbnb"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create booking failed: %d %s", rec.Code, rec.Body.String())
	}
	booking := parseJSON(t, rec)["booking"].(map[string]interface{})
	if booking["total_amount"].(float64) != 2500 {
		t.Errorf("expected total 2500 for 5 nights at 500, got %v", booking["total_amount"])
	}

	rec = app.request("POST", fmt.Sprintf("/api/v1/properties/%.0f/bookings", propertyID),
		`{"guest_name":"Omar Haddad","check_in":"2024-06-10T00:00:00Z","check_out":"2024-06-15T00:00:00Z","nightly_rate":400,"channel":"direct"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create booking failed: %d %s", rec.Code, rec.Body.String())
	}
	cancelledID := parseJSON(t, rec)["booking"].(map[string]interface{})["id"].(float64)

	rec = app.request("PUT", fmt.Sprintf("/api/v1/bookings/%.0f/status", cancelledID),
		`{"status":"cancelled"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("cancel booking failed: %d %s", rec.Code, rec.Body.String())
	}

	// An expense inside the period and one outside it.
	rec = app.request("POST", fmt.Sprintf("/api/v1/properties/%.0f/expenses", propertyID),
		`{"category":"cleaning","description":"Post-checkout deep clean","amount":300,"date":"2024-06-07T00:00:00Z"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create expense failed: %d %s", rec.Code, rec.Body.String())
	}
	rec = app.request("POST", fmt.Sprintf("/api/v1/properties/%.0f/expenses", propertyID),
		`{"category":"maintenance","description":"AC service","amount":900,"date":"2024-07-20T00:00:00Z"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create expense failed: %d %s", rec.Code, rec.Body.String())
	}

	// June KPIs count only the confirmed booking and June expenses.
	rec = app.request("GET", fmt.Sprintf("/api/v1/properties/%.0f/kpis?from=2024-06-01&to=2024-07-01", propertyID), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("kpis failed: %d %s", rec.Code, rec.Body.String())
	}
	kpis := parseJSON(t, rec)["kpis"].(map[string]interface{})
	if kpis["revenue"].(float64) != 2500 {
		t.Errorf("expected revenue 2500, got %v", kpis["revenue"])
	}
	if kpis["expenses"].(float64) != 300 {
		t.Errorf("expected expenses 300, got %v", kpis["expenses"])
	}
	if kpis["noi"].(float64) != 2200 {
		t.Errorf("expected NOI 2200, got %v", kpis["noi"])
	}
	if kpis["nights_booked"].(float64) != 5 {
		t.Errorf("expected 5 nights booked, got %v", kpis["nights_booked"])
	}

	// Booking list filtered by status.
	rec = app.request("GET", fmt.Sprintf("/api/v1/properties/%.0f/bookings?status=cancelled", propertyID), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list bookings failed: %d %s", rec.Code, rec.Body.String())
	}
	bookings := parseJSON(t, rec)["data"].([]interface{})
	if len(bookings) != 1 {
		t.Fatalf("expected 1 cancelled booking, got %d", len(bookings))
	}
}

func TestRentalFlow_ContractChequesAndRemittance(t *testing.T) {
	app := setupApp(t)

	propertyID := app.createProperty(t, "Mirdif Villa 14")

	rec := app.request("POST", "/api/v1/contracts",
		fmt.Sprintf(`{"property_id":%.0f,"tenant_name":"Khalid Rahman","annual_rent":100000,"start_date":"2024-09-01T00:00:00Z","end_date":"2025-08-31T00:00:00Z","cheque_count":4}`, propertyID))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create contract failed: %d %s", rec.Code, rec.Body.String())
	}
	contract := parseJSON(t, rec)["contract"].(map[string]interface{})
	contractID := contract["id"].(float64)
	cheques := contract["cheques"].([]interface{})
	if len(cheques) != 4 {
		t.Fatalf("expected 4 cheques, got %d", len(cheques))
	}
	var total float64
	for _, raw := range cheques {
		total += raw.(map[string]interface{})["amount"].(float64)
	}
	if total != 100000 {
		t.Errorf("expected cheque amounts to sum to the annual rent, got %.0f", total)
	}

	firstChequeID := cheques[0].(map[string]interface{})["id"].(float64)
	rec = app.request("PUT", fmt.Sprintf("/api/v1/contracts/%.0f/cheques/%.0f", contractID, firstChequeID),
		`{"status":"cleared"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update cheque failed: %d %s", rec.Code, rec.Body.String())
	}
	cheque := parseJSON(t, rec)["cheque"].(map[string]interface{})
	if cheque["status"].(string) != "cleared" {
		t.Errorf("expected cheque cleared, got %v", cheque["status"])
	}

	// Tourism tax cycle: record the period, then mark it remitted.
	rec = app.request("POST", "/api/v1/remittances",
		`{"period_label":"2024-09","tax_collected":1450}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create remittance failed: %d %s", rec.Code, rec.Body.String())
	}
	remittanceID := parseJSON(t, rec)["remittance"].(map[string]interface{})["id"].(float64)

	rec = app.request("POST", fmt.Sprintf("/api/v1/remittances/%.0f/remit", remittanceID),
		`{"amount":1450,"date":"2024-10-05T00:00:00Z","reference":"DTCM-88412"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("mark remitted failed: %d %s", rec.Code, rec.Body.String())
	}
	remittance := parseJSON(t, rec)["remittance"].(map[string]interface{})
	if remittance["remitted"].(float64) != 1450 {
		t.Errorf("expected remitted amount 1450, got %v", remittance["remitted"])
	}
	if remittance["remitted_date"] == nil {
		t.Error("expected remitted_date to be set")
	}
}
