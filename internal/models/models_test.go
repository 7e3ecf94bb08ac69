package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"alice@EXAMPLE.com", "alice@example.com"},
		{"  Bob@Example.COM ", "Bob@example.com"},
		{"no-at-sign", "no-at-sign"},
		{"a@b@Host.IO", "a@b@host.io"},
	}
	for _, tt := range tests {
		if got := NormalizeEmail(tt.in); got != tt.want {
			t.Errorf("NormalizeEmail(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEnums(t *testing.T) {
	if !RoleAdmin.IsValid() || Role("root").IsValid() {
		t.Error("unexpected role validity")
	}
	if !FrequencyWeekly.IsValid() || Frequency("hourly").IsValid() {
		t.Error("unexpected frequency validity")
	}
	if !TipCategoryDebtReduction.IsValid() || TipCategory("debt_reduction").IsValid() {
		t.Error("unexpected tip category validity")
	}

	months := map[InvestmentTerm]int{
		InvestmentTermYear:       12,
		InvestmentTermTwoYears:   24,
		InvestmentTermThreeYears: 36,
		InvestmentTerm("decade"): 0,
	}
	for term, want := range months {
		if got := term.Months(); got != want {
			t.Errorf("%s.Months() = %d, want %d", term, got, want)
		}
		if term.IsValid() != (want > 0) {
			t.Errorf("%s.IsValid() = %v", term, term.IsValid())
		}
	}
}

func TestAggregates(t *testing.T) {
	seen := make(map[string]bool)
	status := &FinancialStatus{}
	for _, agg := range Aggregates {
		if seen[agg.Target] {
			t.Errorf("target %s fed by more than one entry type", agg.Target)
		}
		seen[agg.Target] = true

		if _, ok := status.AggregateValue(agg.Target); !ok {
			t.Errorf("target %s is not an aggregate column", agg.Target)
		}
	}
	if len(seen) != 6 {
		t.Errorf("expected 6 distinct aggregates, got %d", len(seen))
	}
	if _, ok := status.AggregateValue("gross_salary"); ok {
		t.Error("gross_salary must not be an aggregate")
	}
}

func TestFinancialStatus_SetAggregate(t *testing.T) {
	status := &FinancialStatus{}
	status.SetAggregate(ColumnTotalDebt, decimal.NewFromInt(42))

	if !status.TotalDebt.Equal(decimal.NewFromInt(42)) {
		t.Errorf("expected total debt 42, got %s", status.TotalDebt)
	}
	if !status.NetEarnings.IsZero() {
		t.Errorf("expected net earnings untouched, got %s", status.NetEarnings)
	}
}

func TestFinancialGoal_Progress(t *testing.T) {
	goal := &FinancialGoal{TargetAmount: decimal.NewFromInt(400), CurrentAmount: decimal.NewFromInt(100)}
	if got := goal.Progress(); !got.Equal(decimal.NewFromInt(25)) {
		t.Errorf("expected 25, got %s", got)
	}

	empty := &FinancialGoal{CurrentAmount: decimal.NewFromInt(10)}
	if got := empty.Progress(); !got.IsZero() {
		t.Errorf("expected 0 for zero target, got %s", got)
	}
}

func TestApplyDefaults(t *testing.T) {
	src := &IncomeSource{}
	src.ApplyDefaults()
	if src.Frequency != FrequencyMonthly {
		t.Errorf("expected monthly, got %s", src.Frequency)
	}

	plan := &SavingsPlan{Frequency: FrequencyYearly}
	plan.ApplyDefaults()
	if plan.Frequency != FrequencyYearly {
		t.Errorf("expected explicit frequency kept, got %s", plan.Frequency)
	}
}
