package services

import (
	"testing"
	"time"

	"tharwa/internal/models"
	"tharwa/internal/schedule"
	"tharwa/internal/testutil"
)

func setupInstallmentService(t *testing.T) (InstallmentServicer, InvestmentServicer, *testContext) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	propertyService := NewPropertyService(db)
	investmentService := NewInvestmentService(db, propertyService)
	installmentService := NewInstallmentService(db, investmentService)
	return installmentService, investmentService, &testContext{db: db}
}

func seedInvestmentWithSchedule(t *testing.T, tc *testContext, invSvc InvestmentServicer, tmpl schedule.Template) *models.Investment {
	t.Helper()

	property := testutil.CreateTestProperty(t, tc.db)
	inv := testutil.CreateTestInvestment(t, tc.db, property.ID)
	_, _, err := invSvc.GenerateSchedule(inv.ID, tmpl)
	testutil.AssertNoError(t, err)
	return inv
}

func TestAddInstallment(t *testing.T) {
	t.Run("appends with next sequence number", func(t *testing.T) {
		svc, invSvc, tc := setupInstallmentService(t)
		inv := seedInvestmentWithSchedule(t, tc, invSvc, schedule.TwoPart(60, 40))

		added, err := svc.AddInstallment(inv.ID, "Snagging", 5, nil, nil)
		testutil.AssertNoError(t, err)

		if added.SequenceNumber != 3 {
			t.Errorf("expected sequence 3, got %d", added.SequenceNumber)
		}
		if added.Amount != 50_000 {
			t.Errorf("expected amount 50000 (5%% of base), got %d", added.Amount)
		}
	})

	t.Run("override amount wins over percentage", func(t *testing.T) {
		svc, invSvc, tc := setupInstallmentService(t)
		inv := seedInvestmentWithSchedule(t, tc, invSvc, schedule.TwoPart(60, 40))

		override := int64(12_345)
		added, err := svc.AddInstallment(inv.ID, "Fees", 5, nil, &override)
		testutil.AssertNoError(t, err)

		if added.Amount != 12_345 {
			t.Errorf("expected override amount 12345, got %d", added.Amount)
		}
	})

	t.Run("fails for missing investment", func(t *testing.T) {
		svc, _, _ := setupInstallmentService(t)

		_, err := svc.AddInstallment(9999, "Snagging", 5, nil, nil)
		testutil.AssertAppError(t, err, "INVESTMENT_NOT_FOUND")
	})
}

func TestRemoveInstallment(t *testing.T) {
	t.Run("renumbers remaining installments", func(t *testing.T) {
		svc, invSvc, tc := setupInstallmentService(t)
		inv := seedInvestmentWithSchedule(t, tc, invSvc, schedule.ConstructionLinked(10, 20, 30, 40))

		err := svc.RemoveInstallment(inv.ID, 2)
		testutil.AssertNoError(t, err)

		got, err := invSvc.GetInvestmentByID(inv.ID)
		testutil.AssertNoError(t, err)

		if len(got.Installments) != 3 {
			t.Fatalf("expected 3 installments, got %d", len(got.Installments))
		}
		for i, inst := range got.Installments {
			if inst.SequenceNumber != i+1 {
				t.Errorf("expected contiguous sequence at index %d, got %d", i, inst.SequenceNumber)
			}
		}
		// The removed 20% entry is gone; the old 30% entry is now second.
		if got.Installments[1].Percentage != 30 {
			t.Errorf("expected second installment at 30%%, got %g", got.Installments[1].Percentage)
		}
	})

	t.Run("fails for missing sequence", func(t *testing.T) {
		svc, invSvc, tc := setupInstallmentService(t)
		inv := seedInvestmentWithSchedule(t, tc, invSvc, schedule.TwoPart(60, 40))

		err := svc.RemoveInstallment(inv.ID, 7)
		testutil.AssertAppError(t, err, "INSTALLMENT_NOT_FOUND")
	})
}

func TestUpdatePercentage(t *testing.T) {
	t.Run("recomputes amount without touching siblings", func(t *testing.T) {
		svc, invSvc, tc := setupInstallmentService(t)
		inv := seedInvestmentWithSchedule(t, tc, invSvc, schedule.TwoPart(60, 40))

		updated, err := svc.UpdatePercentage(inv.ID, 1, 50)
		testutil.AssertNoError(t, err)

		if updated.Percentage != 50 || updated.Amount != 500_000 {
			t.Errorf("expected 50%% / 500000, got %g / %d", updated.Percentage, updated.Amount)
		}

		got, err := invSvc.GetInvestmentByID(inv.ID)
		testutil.AssertNoError(t, err)
		if got.Installments[1].Amount != 400_000 {
			t.Errorf("expected sibling untouched at 400000, got %d", got.Installments[1].Amount)
		}
	})

	t.Run("rejects out-of-range percentage", func(t *testing.T) {
		svc, invSvc, tc := setupInstallmentService(t)
		inv := seedInvestmentWithSchedule(t, tc, invSvc, schedule.TwoPart(60, 40))

		_, err := svc.UpdatePercentage(inv.ID, 1, 101)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestMarkPaid(t *testing.T) {
	paidDate := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	t.Run("records payment details", func(t *testing.T) {
		svc, _, tc := setupInstallmentService(t)
		property := testutil.CreateTestProperty(t, tc.db)
		inv := testutil.CreateTestInvestment(t, tc.db, property.ID)
		testutil.CreateTestInstallment(t, tc.db, inv.ID, 1, 600_000, nil)

		paid, err := svc.MarkPaid(inv.ID, 1, paidDate, 600_000, models.PaymentMethodBankTransfer, "TRX-1001")
		testutil.AssertNoError(t, err)

		if paid.Status != models.InstallmentStatusPaid {
			t.Errorf("expected status paid, got %s", paid.Status)
		}
		if paid.PaidAmount == nil || *paid.PaidAmount != 600_000 {
			t.Errorf("expected paid amount 600000, got %v", paid.PaidAmount)
		}
		if paid.PaymentReference != "TRX-1001" {
			t.Errorf("expected reference TRX-1001, got %q", paid.PaymentReference)
		}
	})

	t.Run("accepts partial payment without reconciliation", func(t *testing.T) {
		svc, _, tc := setupInstallmentService(t)
		property := testutil.CreateTestProperty(t, tc.db)
		inv := testutil.CreateTestInvestment(t, tc.db, property.ID)
		testutil.CreateTestInstallment(t, tc.db, inv.ID, 1, 600_000, nil)

		paid, err := svc.MarkPaid(inv.ID, 1, paidDate, 100_000, models.PaymentMethodCash, "")
		testutil.AssertNoError(t, err)

		if paid.Status != models.InstallmentStatusPaid {
			t.Errorf("expected partial payment to settle the installment, got %s", paid.Status)
		}
		if *paid.PaidAmount != 100_000 || paid.Amount != 600_000 {
			t.Errorf("expected paid 100000 against nominal 600000, got %d / %d", *paid.PaidAmount, paid.Amount)
		}
	})

	t.Run("paying twice conflicts", func(t *testing.T) {
		svc, _, tc := setupInstallmentService(t)
		property := testutil.CreateTestProperty(t, tc.db)
		inv := testutil.CreateTestInvestment(t, tc.db, property.ID)
		testutil.CreateTestInstallment(t, tc.db, inv.ID, 1, 600_000, nil)

		_, err := svc.MarkPaid(inv.ID, 1, paidDate, 600_000, models.PaymentMethodCheque, "CHQ-1")
		testutil.AssertNoError(t, err)

		_, err = svc.MarkPaid(inv.ID, 1, paidDate, 600_000, models.PaymentMethodCheque, "CHQ-2")
		testutil.AssertAppError(t, err, "INSTALLMENT_ALREADY_PAID")
	})

	t.Run("fails for missing installment", func(t *testing.T) {
		svc, _, tc := setupInstallmentService(t)
		property := testutil.CreateTestProperty(t, tc.db)
		inv := testutil.CreateTestInvestment(t, tc.db, property.ID)

		_, err := svc.MarkPaid(inv.ID, 1, paidDate, 600_000, models.PaymentMethodCash, "")
		testutil.AssertAppError(t, err, "INSTALLMENT_NOT_FOUND")
	})
}

func TestNextPaymentService(t *testing.T) {
	t.Run("returns earliest dated pending installment", func(t *testing.T) {
		svc, _, tc := setupInstallmentService(t)
		property := testutil.CreateTestProperty(t, tc.db)
		inv := testutil.CreateTestInvestment(t, tc.db, property.ID)

		later := time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)
		sooner := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
		testutil.CreateTestInstallment(t, tc.db, inv.ID, 1, 600_000, &later)
		testutil.CreateTestInstallment(t, tc.db, inv.ID, 2, 400_000, &sooner)

		next, err := svc.NextPayment(inv.ID)
		testutil.AssertNoError(t, err)

		if next == nil || next.SequenceNumber != 2 {
			t.Fatalf("expected installment 2 as next payment, got %+v", next)
		}
	})

	t.Run("returns nil when everything is paid", func(t *testing.T) {
		svc, _, tc := setupInstallmentService(t)
		property := testutil.CreateTestProperty(t, tc.db)
		inv := testutil.CreateTestInvestment(t, tc.db, property.ID)
		due := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
		testutil.CreateTestInstallment(t, tc.db, inv.ID, 1, 600_000, &due)

		_, err := svc.MarkPaid(inv.ID, 1, due, 600_000, models.PaymentMethodCash, "")
		testutil.AssertNoError(t, err)

		next, err := svc.NextPayment(inv.ID)
		testutil.AssertNoError(t, err)
		if next != nil {
			t.Errorf("expected no next payment, got %+v", next)
		}
	})
}
