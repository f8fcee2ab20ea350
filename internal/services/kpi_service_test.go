package services

import (
	"testing"
	"time"

	"tharwa/internal/testutil"
)

func setupKPIService(t *testing.T) (KPIServicer, *testContext) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	propertyService := NewPropertyService(db)
	return NewKPIService(db, propertyService), &testContext{db: db}
}

func TestGetPropertyKPIs(t *testing.T) {
	from := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 30)

	t.Run("computes revenue occupancy and rates", func(t *testing.T) {
		svc, tc := setupKPIService(t)
		property := testutil.CreateTestProperty(t, tc.db)

		// 10 booked nights at 500 and 5 at 300, plus 2000 of expenses.
		testutil.CreateTestBooking(t, tc.db, property.ID, from.AddDate(0, 0, 1), 10, 500)
		testutil.CreateTestBooking(t, tc.db, property.ID, from.AddDate(0, 0, 15), 5, 300)
		testutil.CreateTestExpense(t, tc.db, property.ID, 2_000, from.AddDate(0, 0, 10))

		kpis, err := svc.GetPropertyKPIs(property.ID, from, to)
		testutil.AssertNoError(t, err)

		if kpis.Revenue != 6_500 {
			t.Errorf("expected revenue 6500, got %d", kpis.Revenue)
		}
		if kpis.Expenses != 2_000 || kpis.NOI != 4_500 {
			t.Errorf("expected expenses 2000 and NOI 4500, got %d and %d", kpis.Expenses, kpis.NOI)
		}
		if kpis.NightsBooked != 15 || kpis.NightsAvailable != 30 {
			t.Errorf("expected 15/30 nights, got %d/%d", kpis.NightsBooked, kpis.NightsAvailable)
		}
		if kpis.OccupancyRate != 50 {
			t.Errorf("expected 50%% occupancy, got %g", kpis.OccupancyRate)
		}
		// 6500 / 15 nights booked, 6500 / 30 nights available.
		if kpis.ADR != 433 || kpis.RevPAR != 216 {
			t.Errorf("expected ADR 433 and RevPAR 216, got %d and %d", kpis.ADR, kpis.RevPAR)
		}
	})

	t.Run("booking straddling the period counts only inside nights", func(t *testing.T) {
		svc, tc := setupKPIService(t)
		property := testutil.CreateTestProperty(t, tc.db)

		// 6 nights total, 3 before the period starts.
		testutil.CreateTestBooking(t, tc.db, property.ID, from.AddDate(0, 0, -3), 6, 400)

		kpis, err := svc.GetPropertyKPIs(property.ID, from, to)
		testutil.AssertNoError(t, err)

		if kpis.NightsBooked != 3 || kpis.Revenue != 1_200 {
			t.Errorf("expected 3 nights / 1200 revenue inside period, got %d / %d", kpis.NightsBooked, kpis.Revenue)
		}
	})

	t.Run("no bookings yields zero rates", func(t *testing.T) {
		svc, tc := setupKPIService(t)
		property := testutil.CreateTestProperty(t, tc.db)

		kpis, err := svc.GetPropertyKPIs(property.ID, from, to)
		testutil.AssertNoError(t, err)

		if kpis.Revenue != 0 || kpis.ADR != 0 || kpis.OccupancyRate != 0 {
			t.Errorf("expected zero metrics, got %+v", kpis)
		}
	})

	t.Run("rejects inverted period", func(t *testing.T) {
		svc, tc := setupKPIService(t)
		property := testutil.CreateTestProperty(t, tc.db)

		_, err := svc.GetPropertyKPIs(property.ID, to, from)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGetPortfolioKPIs(t *testing.T) {
	t.Run("returns one entry per property", func(t *testing.T) {
		svc, tc := setupKPIService(t)
		first := testutil.CreateTestProperty(t, tc.db)
		testutil.CreateTestProperty(t, tc.db)

		from := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
		to := from.AddDate(0, 0, 30)
		testutil.CreateTestBooking(t, tc.db, first.ID, from, 4, 500)

		results, err := svc.GetPortfolioKPIs(from, to)
		testutil.AssertNoError(t, err)

		if len(results) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(results))
		}
		if results[0].Revenue != 2_000 {
			t.Errorf("expected first property revenue 2000, got %d", results[0].Revenue)
		}
		if results[1].Revenue != 0 {
			t.Errorf("expected second property revenue 0, got %d", results[1].Revenue)
		}
	})
}
