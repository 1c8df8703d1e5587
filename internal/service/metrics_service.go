package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/dafibh/economize/economize-backend/internal/domain"
	"github.com/dafibh/economize/economize-backend/internal/util"
	"github.com/shopspring/decimal"
)

// LedgerReader provides a snapshot of the ledger
type LedgerReader interface {
	State() domain.LedgerState
}

var hundred = decimal.NewFromInt(100)

// MetricsService derives read-side figures from a ledger snapshot.
// Nothing is cached; every call recomputes from the current state.
type MetricsService struct {
	ledger              LedgerReader
	monthlyContribution decimal.Decimal
	now                 func() time.Time
}

// NewMetricsService creates a new MetricsService
func NewMetricsService(ledger LedgerReader, monthlyContribution decimal.Decimal) *MetricsService {
	return &MetricsService{
		ledger:              ledger,
		monthlyContribution: monthlyContribution,
		now:                 time.Now,
	}
}

// SetClock overrides the time source
func (s *MetricsService) SetClock(now func() time.Time) {
	s.now = now
}

// Overview returns the main dashboard figures
func (s *MetricsService) Overview() domain.Overview {
	return ComputeOverview(s.ledger.State(), s.now())
}

// EmergencyPlan returns the emergency-fund target and projections
func (s *MetricsService) EmergencyPlan() domain.EmergencyPlan {
	return ComputeEmergencyPlan(s.ledger.State(), s.monthlyContribution)
}

// Strategy returns the short-term savings guidance
func (s *MetricsService) Strategy() domain.Strategy {
	return ComputeStrategy(s.ledger.State(), s.now())
}

// Report returns the aggregate report with insights
func (s *MetricsService) Report() domain.Report {
	return ComputeReport(s.ledger.State(), s.now())
}

// Breakdown returns category aggregates
func (s *MetricsService) Breakdown() domain.Breakdown {
	return ComputeBreakdown(s.ledger.State(), s.now())
}

// DailyExpenses returns daily expenses newest first
func (s *MetricsService) DailyExpenses() []domain.DailyExpense {
	return SortDailyExpenses(s.ledger.State().DailyExpenses)
}

// MonthlyIncome sums the entries that recur monthly
func MonthlyIncome(state domain.LedgerState) decimal.Decimal {
	total := decimal.Zero
	for _, e := range state.Entries {
		if e.IsMonthly() {
			total = total.Add(e.Amount)
		}
	}
	return total
}

// MonthlyFixedExpenses sums every fixed expense regardless of status
func MonthlyFixedExpenses(state domain.LedgerState) decimal.Decimal {
	total := decimal.Zero
	for _, e := range state.FixedExpenses {
		total = total.Add(e.Amount)
	}
	return total
}

// DailyExpensesInMonth sums daily expenses dated in now's calendar month
func DailyExpensesInMonth(state domain.LedgerState, now time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, e := range state.DailyExpenses {
		if e.Date.SameMonth(now) {
			total = total.Add(e.Amount)
		}
	}
	return total
}

// percentOf returns part / whole * 100 rounded to two places, or zero when whole is zero
func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred).Round(2)
}

func clamp(v, lo, hi decimal.Decimal) decimal.Decimal {
	return decimal.Max(lo, decimal.Min(v, hi))
}

// ComputeOverview derives the dashboard overview
func ComputeOverview(state domain.LedgerState, now time.Time) domain.Overview {
	income := MonthlyIncome(state)
	fixed := MonthlyFixedExpenses(state)
	daily := DailyExpensesInMonth(state, now)
	totalExpenses := fixed.Add(daily)
	savings := income.Sub(totalExpenses)
	rate := percentOf(savings, income)
	goal := decimal.NewFromInt(domain.SavingsGoalPercent)

	return domain.Overview{
		CurrentBalance:         state.CurrentBalance,
		EmergencyFund:          state.EmergencyFund,
		MonthlyIncome:          income,
		MonthlyFixedExpenses:   fixed,
		DailyExpensesThisMonth: daily,
		TotalMonthlyExpenses:   totalExpenses,
		SavingsAmount:          savings,
		SavingsRate:            rate,
		SavingsGoal:            goal,
		SavingsGoalProgress:    clamp(percentOf(rate, goal), decimal.Zero, hundred),
	}
}

// ComputeEmergencyPlan derives the emergency-fund plan
func ComputeEmergencyPlan(state domain.LedgerState, contribution decimal.Decimal) domain.EmergencyPlan {
	fixed := MonthlyFixedExpenses(state)
	target := fixed.Mul(decimal.NewFromInt(domain.EmergencyTargetMonths))
	remaining := decimal.Max(decimal.Zero, target.Sub(state.EmergencyFund))

	var monthsToTarget int64
	if contribution.IsPositive() {
		monthsToTarget = remaining.Div(contribution).Ceil().IntPart()
	}

	coverage := decimal.Zero
	if !fixed.IsZero() {
		coverage = state.EmergencyFund.Div(fixed).Round(1)
	}

	withdrawals := append([]domain.EmergencyWithdrawal{}, state.EmergencyWithdrawals...)
	sort.SliceStable(withdrawals, func(i, j int) bool {
		return withdrawals[i].Date.After(withdrawals[j].Date)
	})

	return domain.EmergencyPlan{
		Fund:                  state.EmergencyFund,
		Target:                target,
		TargetMonths:          domain.EmergencyTargetMonths,
		Progress:              percentOf(state.EmergencyFund, target),
		Remaining:             remaining,
		MonthlyContribution:   contribution,
		MonthsToTarget:        monthsToTarget,
		CoverageMonths:        coverage,
		ThreeMonthProjection:  projectFund(state.EmergencyFund, contribution, 3),
		SixMonthProjection:    projectFund(state.EmergencyFund, contribution, 6),
		TwelveMonthProjection: projectFund(state.EmergencyFund, contribution, 12),
		Withdrawals:           withdrawals,
	}
}

// projectFund is the fund after contributing monthly for the given months
func projectFund(fund, contribution decimal.Decimal, months int64) decimal.Decimal {
	return fund.Add(contribution.Mul(decimal.NewFromInt(months)))
}

// ComputeStrategy derives the savings strategy for now's month
func ComputeStrategy(state domain.LedgerState, now time.Time) domain.Strategy {
	income := MonthlyIncome(state)
	fixed := MonthlyFixedExpenses(state)
	goal := income.Mul(decimal.NewFromInt(domain.SavingsGoalPercent)).Div(hundred)
	daysRemaining := util.DaysRemainingInMonth(now)
	daysPassed := now.Day()
	daily := DailyExpensesInMonth(state, now)

	dailyNeeded := decimal.Zero
	if goal.IsPositive() {
		dailyNeeded = goal.Div(decimal.NewFromInt(int64(daysRemaining))).Round(2)
	}

	projectionMonths := decimal.NewFromInt(domain.ProjectionMonths)

	return domain.Strategy{
		MonthlySavingsGoal:     goal,
		DaysRemaining:          daysRemaining,
		DailySavingsNeeded:     dailyNeeded,
		DaysPassed:             daysPassed,
		AverageDailySpending:   daily.Div(decimal.NewFromInt(int64(daysPassed))).Round(2),
		ProjectedBalance:       state.CurrentBalance.Add(income.Sub(fixed).Mul(projectionMonths)),
		ProjectionMonths:       domain.ProjectionMonths,
		DailyExpensesThisMonth: daily,
	}
}

// ComputeReport derives the report figures and insights
func ComputeReport(state domain.LedgerState, now time.Time) domain.Report {
	income := MonthlyIncome(state)
	fixed := MonthlyFixedExpenses(state)
	structural := percentOf(income.Sub(fixed), income)

	report := domain.Report{
		MonthlyIncome:        income,
		MonthlyFixedExpenses: fixed,
		StructuralSavings:    structural,
		FinancialScore:       FinancialScore(income, structural),
		TotalEntries:         decimal.Zero,
		DailyExpensesTotal:   decimal.Zero,
		TodayTotal:           decimal.Zero,
		PendingFixedTotal:    decimal.Zero,
	}

	for _, e := range state.Entries {
		report.TotalEntries = report.TotalEntries.Add(e.Amount)
		if e.IsMonthly() {
			if report.MonthlyEntryCount == 0 {
				report.MainRecurringSource = e.Description
			}
			report.MonthlyEntryCount++
		}
	}

	for _, e := range state.DailyExpenses {
		report.DailyExpensesTotal = report.DailyExpensesTotal.Add(e.Amount)
		if e.Date.SameDay(now) {
			report.TodayTotal = report.TodayTotal.Add(e.Amount)
			report.TodayCount++
		}
	}
	report.AverageDailySpend = report.DailyExpensesTotal.Div(decimal.NewFromInt(domain.SpendingWindowDays)).Round(2)

	for _, e := range state.FixedExpenses {
		if !e.IsPending() {
			continue
		}
		report.PendingFixedTotal = report.PendingFixedTotal.Add(e.Amount)
		report.PendingFixedCount++

		due := util.NextDueDate(now, e.DueDay)
		if report.NextDue == nil || due.Before(report.NextDue.DueDate) {
			report.NextDue = &domain.DueExpense{
				ExpenseID:   e.ID,
				Description: e.Description,
				Amount:      e.Amount,
				DueDate:     due,
			}
		}
	}

	report.Insights = Insights(income, structural)
	return report
}

// FinancialScore grades the structural savings rate: 8.5 above 25%,
// 7.0 above 15%, 5.5 otherwise. It is invalid (null) without monthly income.
func FinancialScore(income, structuralRate decimal.Decimal) decimal.NullDecimal {
	if !income.IsPositive() {
		return decimal.NullDecimal{}
	}
	switch {
	case structuralRate.GreaterThan(decimal.NewFromInt(25)):
		return decimal.NewNullDecimal(domain.ScoreHigh)
	case structuralRate.GreaterThan(decimal.NewFromInt(15)):
		return decimal.NewNullDecimal(domain.ScoreMedium)
	default:
		return decimal.NewNullDecimal(domain.ScoreLow)
	}
}

// Insights returns the onboarding tips, plus a success note when the
// structural savings rate is above 25%
func Insights(income, structuralRate decimal.Decimal) []domain.Insight {
	insights := []domain.Insight{
		{
			ID:          1,
			Type:        domain.InsightTypeInfo,
			Title:       "Welcome to Economize!",
			Description: "Start by adding your income and expenses to receive personalized insights.",
			Impact:      "Getting started",
			Suggestion:  "Go to Entries and register your sources of income.",
		},
		{
			ID:          2,
			Type:        domain.InsightTypeInfo,
			Title:       "Set up your fixed expenses",
			Description: "Add rent, financing and monthly bills to be fully in control.",
			Impact:      "Setup",
			Suggestion:  "Open Fixed Expenses and register your recurring costs.",
		},
		{
			ID:          3,
			Type:        domain.InsightTypeInfo,
			Title:       "Record daily expenses",
			Description: "Track your variable spending to spot saving opportunities.",
			Impact:      "Control",
			Suggestion:  "Use Daily Expenses to log purchases and everyday costs.",
		},
	}

	if income.IsPositive() && structuralRate.GreaterThan(decimal.NewFromInt(25)) {
		insights = append(insights, domain.Insight{
			ID:          4,
			Type:        domain.InsightTypeSuccess,
			Title:       "Excellent savings rate!",
			Description: fmt.Sprintf("You are saving %s%% of your monthly income.", structuralRate.StringFixed(1)),
			Impact:      "Positive",
			Suggestion:  "Keep it up! Consider investing the surplus.",
		})
	}
	return insights
}

// ComputeBreakdown aggregates this month's daily expenses and all fixed expenses by category
func ComputeBreakdown(state domain.LedgerState, now time.Time) domain.Breakdown {
	daily := newCategoryTotals()
	for _, e := range state.DailyExpenses {
		if e.Date.SameMonth(now) {
			daily.add(e.Category, e.Amount)
		}
	}

	fixed := newCategoryTotals()
	for _, e := range state.FixedExpenses {
		fixed.add(e.Category, e.Amount)
	}

	return domain.Breakdown{
		DailyThisMonth: daily.sorted(),
		Fixed:          fixed.sorted(),
	}
}

// SortDailyExpenses returns a copy of expenses ordered newest first
func SortDailyExpenses(expenses []domain.DailyExpense) []domain.DailyExpense {
	sorted := append([]domain.DailyExpense{}, expenses...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date.Time)
	})
	return sorted
}

type categoryTotals map[string]*domain.CategoryAmount

func newCategoryTotals() categoryTotals {
	return make(categoryTotals)
}

func (c categoryTotals) add(category string, amount decimal.Decimal) {
	if category == "" {
		category = "Other"
	}
	agg, ok := c[category]
	if !ok {
		agg = &domain.CategoryAmount{Category: category, Amount: decimal.Zero}
		c[category] = agg
	}
	agg.Amount = agg.Amount.Add(amount)
	agg.Count++
}

// sorted orders by amount descending, then by category name
func (c categoryTotals) sorted() []domain.CategoryAmount {
	out := make([]domain.CategoryAmount, 0, len(c))
	for _, agg := range c {
		out = append(out, *agg)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Amount.Equal(out[j].Amount) {
			return out[i].Amount.GreaterThan(out[j].Amount)
		}
		return out[i].Category < out[j].Category
	})
	return out
}
