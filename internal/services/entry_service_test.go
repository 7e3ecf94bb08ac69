package services

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/testutil"
)

func reloadStatus(t *testing.T, db *gorm.DB, userID string) *models.FinancialStatus {
	t.Helper()
	var status models.FinancialStatus
	if err := db.Where("user_id = ?", userID).First(&status).Error; err != nil {
		t.Fatalf("failed to reload financial status: %v", err)
	}
	return &status
}

// assertOnlyAggregate checks that target holds want and that every other
// aggregate is still zero.
func assertOnlyAggregate(t *testing.T, status *models.FinancialStatus, target, want string) {
	t.Helper()
	for _, rule := range models.Aggregates {
		got, _ := status.AggregateValue(rule.Target)
		expected := "0"
		if rule.Target == target {
			expected = want
		}
		testutil.AssertDecimal(t, rule.Target, got, expected)
	}
}

// checkAggregateRule drives one entry type through creates, an update and
// deletes, checking after every write that the parent aggregate equals the
// sum of the contributing field over the remaining entries.
func checkAggregateRule[T any, P entryModel[T]](t *testing.T, newEntry func(amount string) *T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewEntryService[T, P](db)
	user := testutil.CreateTestUser(t, db)
	testutil.CreateTestFinancialStatus(t, db, user.ID, 5000)
	target := P(new(T)).Aggregate().Target

	assertOnlyAggregate(t, reloadStatus(t, db, user.ID), target, "0")

	first, err := svc.Create(user.ID, newEntry("100"))
	testutil.AssertNoError(t, err)
	assertOnlyAggregate(t, reloadStatus(t, db, user.ID), target, "100")

	second, err := svc.Create(user.ID, newEntry("250.50"))
	testutil.AssertNoError(t, err)
	assertOnlyAggregate(t, reloadStatus(t, db, user.ID), target, "350.50")

	_, err = svc.Create(user.ID, newEntry("0"))
	testutil.AssertNoError(t, err)
	assertOnlyAggregate(t, reloadStatus(t, db, user.ID), target, "350.50")

	_, err = svc.Update(user.ID, P(first).GetID(), newEntry("40.25"))
	testutil.AssertNoError(t, err)
	assertOnlyAggregate(t, reloadStatus(t, db, user.ID), target, "290.75")

	testutil.AssertNoError(t, svc.Delete(user.ID, P(second).GetID()))
	assertOnlyAggregate(t, reloadStatus(t, db, user.ID), target, "40.25")

	testutil.AssertNoError(t, svc.Delete(user.ID, P(first).GetID()))
	status := reloadStatus(t, db, user.ID)
	assertOnlyAggregate(t, status, target, "0")
	testutil.AssertDecimal(t, "gross_salary", status.GrossSalary, "5000")
}

func TestAggregateRule(t *testing.T) {
	t.Run("income_sources_feed_net_earnings", func(t *testing.T) {
		checkAggregateRule[models.IncomeSource](t, testutil.NewIncomeSource)
	})
	t.Run("debts_feed_total_debt", func(t *testing.T) {
		checkAggregateRule[models.Debt](t, testutil.NewDebt)
	})
	t.Run("monthly_expenses_feed_total_monthly_expenses", func(t *testing.T) {
		checkAggregateRule[models.MonthlyExpense](t, testutil.NewMonthlyExpense)
	})
	t.Run("savings_plans_feed_total_savings", func(t *testing.T) {
		checkAggregateRule[models.SavingsPlan](t, testutil.NewSavingsPlan)
	})
	t.Run("financial_goals_feed_total_financial_goal", func(t *testing.T) {
		checkAggregateRule[models.FinancialGoal](t, func(amount string) *models.FinancialGoal {
			return testutil.NewFinancialGoal(amount, "0")
		})
	})
	t.Run("investments_feed_total_investments", func(t *testing.T) {
		checkAggregateRule[models.Investment](t, testutil.NewInvestment)
	})
}

func TestAggregateBound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewEntryService[models.IncomeSource](db)
	user := testutil.CreateTestUser(t, db)
	testutil.CreateTestFinancialStatus(t, db, user.ID, 0)

	first, err := svc.Create(user.ID, testutil.NewIncomeSource("9999999999.99"))
	testutil.AssertNoError(t, err)

	t.Run("create_past_column_bound", func(t *testing.T) {
		_, err := svc.Create(user.ID, testutil.NewIncomeSource("9999999999.99"))
		testutil.AssertAppError(t, err, "INVALID_INPUT")
		testutil.AssertFieldError(t, err, "income_amount")

		var count int64
		db.Model(&models.IncomeSource{}).Count(&count)
		if count != 1 {
			t.Errorf("expected the rejected entry to be rolled back, found %d rows", count)
		}
		testutil.AssertDecimal(t, "net_earnings", reloadStatus(t, db, user.ID).NetEarnings, "9999999999.99")
	})

	t.Run("update_past_column_bound", func(t *testing.T) {
		second, err := svc.Create(user.ID, testutil.NewIncomeSource("0"))
		testutil.AssertNoError(t, err)

		_, err = svc.Update(user.ID, second.ID, testutil.NewIncomeSource("0.01"))
		testutil.AssertFieldError(t, err, "income_amount")
		testutil.AssertDecimal(t, "net_earnings", reloadStatus(t, db, user.ID).NetEarnings, "9999999999.99")

		_, err = svc.Update(user.ID, first.ID, testutil.NewIncomeSource("9999999999.98"))
		testutil.AssertNoError(t, err)
		_, err = svc.Update(user.ID, second.ID, testutil.NewIncomeSource("0.01"))
		testutil.AssertNoError(t, err)
		testutil.AssertDecimal(t, "net_earnings", reloadStatus(t, db, user.ID).NetEarnings, "9999999999.99")
	})
}

func TestConcurrentEntryWriters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewEntryService[models.IncomeSource](db)
	user := testutil.CreateTestUser(t, db)
	testutil.CreateTestFinancialStatus(t, db, user.ID, 0)

	const writers = 20
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Create(user.ID, testutil.NewIncomeSource("10")); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("concurrent create failed: %v", err)
	}

	var rowsSum decimal.Decimal
	if err := db.Model(&models.IncomeSource{}).Select("COALESCE(SUM(income_amount), 0)").Row().Scan(&rowsSum); err != nil {
		t.Fatalf("failed to sum income sources: %v", err)
	}
	testutil.AssertDecimal(t, "sum of income_amount", rowsSum, "200")
	assertOnlyAggregate(t, reloadStatus(t, db, user.ID), models.ColumnNetEarnings, "200")
}

func TestIncomeScenario(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewEntryService[models.IncomeSource](db)
	user := testutil.CreateTestUser(t, db)
	testutil.CreateTestFinancialStatus(t, db, user.ID, 5000)

	salary, err := svc.Create(user.ID, testutil.NewIncomeSource("1000"))
	testutil.AssertNoError(t, err)
	_, err = svc.Create(user.ID, testutil.NewIncomeSource("250"))
	testutil.AssertNoError(t, err)
	testutil.AssertDecimal(t, "net_earnings", reloadStatus(t, db, user.ID).NetEarnings, "1250")

	testutil.AssertNoError(t, svc.Delete(user.ID, salary.ID))
	testutil.AssertDecimal(t, "net_earnings", reloadStatus(t, db, user.ID).NetEarnings, "250")
}

func TestEntryService_Create(t *testing.T) {
	t.Run("investment_write_succeeds", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewEntryService[models.Investment](db)
		user := testutil.CreateTestUser(t, db)
		status := testutil.CreateTestFinancialStatus(t, db, user.ID, 0)

		inv := testutil.NewInvestment("1500")
		inv.Term = models.InvestmentTermThreeYears
		created, err := svc.Create(user.ID, inv)
		testutil.AssertNoError(t, err)

		if created.ID == "" {
			t.Fatal("expected investment ID")
		}
		if created.FinancialStatusID != status.ID {
			t.Errorf("expected status %s, got %s", status.ID, created.FinancialStatusID)
		}
		if created.TermMonths() != 36 {
			t.Errorf("expected 36 months, got %d", created.TermMonths())
		}
		testutil.AssertDecimal(t, "total_investments", reloadStatus(t, db, user.ID).TotalInvestments, "1500")
	})

	t.Run("negative_amount_rejected_before_persistence", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewEntryService[models.Debt](db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestFinancialStatus(t, db, user.ID, 0)

		_, err := svc.Create(user.ID, testutil.NewDebt("-5"))
		testutil.AssertFieldError(t, err, "debt_amount")

		var count int64
		db.Model(&models.Debt{}).Count(&count)
		if count != 0 {
			t.Errorf("expected no debts persisted, got %d", count)
		}
		testutil.AssertDecimal(t, "total_debt", reloadStatus(t, db, user.ID).TotalDebt, "0")
	})

	t.Run("invalid_frequency_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewEntryService[models.IncomeSource](db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestFinancialStatus(t, db, user.ID, 0)

		src := testutil.NewIncomeSource("10")
		src.Frequency = "hourly"
		_, err := svc.Create(user.ID, src)
		testutil.AssertFieldError(t, err, "frequency")
	})

	t.Run("frequency_defaults_to_monthly", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewEntryService[models.MonthlyExpense](db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestFinancialStatus(t, db, user.ID, 0)

		expense := testutil.NewMonthlyExpense("80")
		expense.Frequency = ""
		created, err := svc.Create(user.ID, expense)
		testutil.AssertNoError(t, err)

		if created.Frequency != models.FrequencyMonthly {
			t.Errorf("expected monthly, got %s", created.Frequency)
		}
	})

	t.Run("actual_expense_cost_does_not_count", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewEntryService[models.MonthlyExpense](db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestFinancialStatus(t, db, user.ID, 0)

		expense := testutil.NewMonthlyExpense("300")
		expense.ActualCost = decimal.NewFromInt(450)
		_, err := svc.Create(user.ID, expense)
		testutil.AssertNoError(t, err)

		testutil.AssertDecimal(t, "total_monthly_expenses", reloadStatus(t, db, user.ID).TotalMonthlyExpenses, "300")
	})

	t.Run("no_financial_status", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewEntryService[models.SavingsPlan](db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.Create(user.ID, testutil.NewSavingsPlan("10"))
		testutil.AssertAppError(t, err, "FINANCIAL_STATUS_NOT_FOUND")
	})

	t.Run("ignores_client_supplied_status", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewEntryService[models.IncomeSource](db)
		owner := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		ownStatus := testutil.CreateTestFinancialStatus(t, db, owner.ID, 0)
		otherStatus := testutil.CreateTestFinancialStatus(t, db, other.ID, 0)

		src := testutil.NewIncomeSource("70")
		src.FinancialStatusID = otherStatus.ID
		created, err := svc.Create(owner.ID, src)
		testutil.AssertNoError(t, err)

		if created.FinancialStatusID != ownStatus.ID {
			t.Errorf("expected entry on own status %s, got %s", ownStatus.ID, created.FinancialStatusID)
		}
		testutil.AssertDecimal(t, "other net_earnings", reloadStatus(t, db, other.ID).NetEarnings, "0")
	})
}

func TestEntryService_Update(t *testing.T) {
	t.Run("keeps_identity", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewEntryService[models.FinancialGoal](db)
		user := testutil.CreateTestUser(t, db)
		status := testutil.CreateTestFinancialStatus(t, db, user.ID, 0)

		goal, err := svc.Create(user.ID, testutil.NewFinancialGoal("1000", "0"))
		testutil.AssertNoError(t, err)

		replacement := testutil.NewFinancialGoal("2000", "500")
		replacement.Title = "House deposit"
		updated, err := svc.Update(user.ID, goal.ID, replacement)
		testutil.AssertNoError(t, err)

		if updated.ID != goal.ID {
			t.Errorf("expected id %s, got %s", goal.ID, updated.ID)
		}
		if updated.FinancialStatusID != status.ID {
			t.Errorf("expected status %s, got %s", status.ID, updated.FinancialStatusID)
		}
		if updated.Title != "House deposit" {
			t.Errorf("expected new title, got %s", updated.Title)
		}
		if !updated.CreatedAt.Equal(goal.CreatedAt) {
			t.Errorf("expected created_at preserved, got %v vs %v", updated.CreatedAt, goal.CreatedAt)
		}
		testutil.AssertDecimal(t, "current_amount", updated.CurrentAmount, "500")
		testutil.AssertDecimal(t, "total_financial_goal", reloadStatus(t, db, user.ID).TotalFinancialGoal, "2000")
	})

	t.Run("zero_amount_is_written", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewEntryService[models.IncomeSource](db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestFinancialStatus(t, db, user.ID, 0)

		src, err := svc.Create(user.ID, testutil.NewIncomeSource("900"))
		testutil.AssertNoError(t, err)

		updated, err := svc.Update(user.ID, src.ID, testutil.NewIncomeSource("0"))
		testutil.AssertNoError(t, err)

		testutil.AssertDecimal(t, "income_amount", updated.Amount, "0")
		testutil.AssertDecimal(t, "net_earnings", reloadStatus(t, db, user.ID).NetEarnings, "0")
	})

	t.Run("negative_amount_leaves_entry_untouched", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewEntryService[models.SavingsPlan](db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestFinancialStatus(t, db, user.ID, 0)

		plan, err := svc.Create(user.ID, testutil.NewSavingsPlan("120"))
		testutil.AssertNoError(t, err)

		_, err = svc.Update(user.ID, plan.ID, testutil.NewSavingsPlan("-1"))
		testutil.AssertFieldError(t, err, "planned_amount")

		got, err := svc.Get(user.ID, plan.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimal(t, "actual_amount", got.ActualAmount, "120")
	})

	t.Run("other_users_entry", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewEntryService[models.Debt](db)
		owner := testutil.CreateTestUser(t, db)
		intruder := testutil.CreateTestUser(t, db)
		testutil.CreateTestFinancialStatus(t, db, owner.ID, 0)
		testutil.CreateTestFinancialStatus(t, db, intruder.ID, 0)

		debt, err := svc.Create(owner.ID, testutil.NewDebt("300"))
		testutil.AssertNoError(t, err)

		_, err = svc.Update(intruder.ID, debt.ID, testutil.NewDebt("1"))
		testutil.AssertAppError(t, err, "ENTRY_NOT_FOUND")
		testutil.AssertDecimal(t, "owner total_debt", reloadStatus(t, db, owner.ID).TotalDebt, "300")
	})
}

func TestEntryService_Delete(t *testing.T) {
	t.Run("unknown_entry", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewEntryService[models.Investment](db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestFinancialStatus(t, db, user.ID, 0)

		err := svc.Delete(user.ID, "0190b1e2-3c4d-7e5f-8a9b-0c1d2e3f4a5b")
		testutil.AssertAppError(t, err, "ENTRY_NOT_FOUND")
	})

	t.Run("other_users_entry", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewEntryService[models.IncomeSource](db)
		owner := testutil.CreateTestUser(t, db)
		intruder := testutil.CreateTestUser(t, db)
		testutil.CreateTestFinancialStatus(t, db, owner.ID, 0)
		testutil.CreateTestFinancialStatus(t, db, intruder.ID, 0)

		src, err := svc.Create(owner.ID, testutil.NewIncomeSource("10"))
		testutil.AssertNoError(t, err)

		testutil.AssertAppError(t, svc.Delete(intruder.ID, src.ID), "ENTRY_NOT_FOUND")

		_, err = svc.Get(owner.ID, src.ID)
		testutil.AssertNoError(t, err)
	})
}

func TestEntryService_List(t *testing.T) {
	t.Run("paginates_own_entries", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewEntryService[models.IncomeSource](db)
		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		testutil.CreateTestFinancialStatus(t, db, user.ID, 0)
		testutil.CreateTestFinancialStatus(t, db, other.ID, 0)

		for _, amount := range []string{"1", "2", "3"} {
			_, err := svc.Create(user.ID, testutil.NewIncomeSource(amount))
			testutil.AssertNoError(t, err)
		}
		_, err := svc.Create(other.ID, testutil.NewIncomeSource("99"))
		testutil.AssertNoError(t, err)

		result, err := svc.List(user.ID, pagination.PageRequest{Page: 1, PageSize: 2})
		testutil.AssertNoError(t, err)

		if result.TotalItems != 3 {
			t.Errorf("expected 3 entries, got %d", result.TotalItems)
		}
		if len(result.Data) != 2 {
			t.Errorf("expected 2 entries on the page, got %d", len(result.Data))
		}
		if result.TotalPages != 2 {
			t.Errorf("expected 2 pages, got %d", result.TotalPages)
		}
	})

	t.Run("no_financial_status", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewEntryService[models.Debt](db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.List(user.ID, pagination.PageRequest{})
		testutil.AssertAppError(t, err, "FINANCIAL_STATUS_NOT_FOUND")
	})
}
