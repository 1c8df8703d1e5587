package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Planning constants
const (
	// SavingsGoalPercent is the share of monthly income the user aims to keep
	SavingsGoalPercent = 30
	// EmergencyTargetMonths is how many months of fixed expenses the fund should cover
	EmergencyTargetMonths = 6
	// ProjectionMonths is the horizon of the balance projection
	ProjectionMonths = 2
	// SpendingWindowDays is the averaging window for all-time daily spend
	SpendingWindowDays = 30
)

// Financial score bands, keyed on the structural savings rate
var (
	ScoreHigh   = decimal.RequireFromString("8.5")
	ScoreMedium = decimal.RequireFromString("7.0")
	ScoreLow    = decimal.RequireFromString("5.5")
)

// Overview contains the main dashboard metrics
type Overview struct {
	CurrentBalance         decimal.Decimal `json:"currentBalance"`
	EmergencyFund          decimal.Decimal `json:"emergencyFund"`
	MonthlyIncome          decimal.Decimal `json:"monthlyIncome"`
	MonthlyFixedExpenses   decimal.Decimal `json:"monthlyFixedExpenses"`
	DailyExpensesThisMonth decimal.Decimal `json:"dailyExpensesThisMonth"`
	TotalMonthlyExpenses   decimal.Decimal `json:"totalMonthlyExpenses"`
	SavingsAmount          decimal.Decimal `json:"savingsAmount"`
	SavingsRate            decimal.Decimal `json:"savingsRate"`
	SavingsGoal            decimal.Decimal `json:"savingsGoal"`
	SavingsGoalProgress    decimal.Decimal `json:"savingsGoalProgress"`
}

// EmergencyPlan contains the emergency-fund target and projections
type EmergencyPlan struct {
	Fund                  decimal.Decimal       `json:"fund"`
	Target                decimal.Decimal       `json:"target"`
	TargetMonths          int                   `json:"targetMonths"`
	Progress              decimal.Decimal       `json:"progress"`
	Remaining             decimal.Decimal       `json:"remaining"`
	MonthlyContribution   decimal.Decimal       `json:"monthlyContribution"`
	MonthsToTarget        int64                 `json:"monthsToTarget"`
	CoverageMonths        decimal.Decimal       `json:"coverageMonths"`
	ThreeMonthProjection  decimal.Decimal       `json:"threeMonthProjection"`
	SixMonthProjection    decimal.Decimal       `json:"sixMonthProjection"`
	TwelveMonthProjection decimal.Decimal       `json:"twelveMonthProjection"`
	Withdrawals           []EmergencyWithdrawal `json:"withdrawals"`
}

// Strategy contains short-term savings guidance
type Strategy struct {
	MonthlySavingsGoal     decimal.Decimal `json:"monthlySavingsGoal"`
	DaysRemaining          int             `json:"daysRemaining"`
	DailySavingsNeeded     decimal.Decimal `json:"dailySavingsNeeded"`
	DaysPassed             int             `json:"daysPassed"`
	AverageDailySpending   decimal.Decimal `json:"averageDailySpending"`
	ProjectedBalance       decimal.Decimal `json:"projectedBalance"`
	ProjectionMonths       int             `json:"projectionMonths"`
	DailyExpensesThisMonth decimal.Decimal `json:"dailyExpensesThisMonth"`
}

// InsightType classifies a report insight
type InsightType string

const (
	InsightTypeInfo    InsightType = "info"
	InsightTypeSuccess InsightType = "success"
)

// Insight is a single piece of advice shown in reports
type Insight struct {
	ID          int         `json:"id"`
	Type        InsightType `json:"type"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Impact      string      `json:"impact"`
	Suggestion  string      `json:"suggestion"`
}

// Report contains aggregate figures and insights
type Report struct {
	MonthlyIncome        decimal.Decimal `json:"monthlyIncome"`
	MonthlyFixedExpenses decimal.Decimal `json:"monthlyFixedExpenses"`
	StructuralSavings    decimal.Decimal `json:"structuralSavingsRate"`
	// FinancialScore is null until there is monthly income
	FinancialScore      decimal.NullDecimal `json:"financialScore"`
	TotalEntries        decimal.Decimal     `json:"totalEntries"`
	MonthlyEntryCount   int                 `json:"monthlyEntryCount"`
	MainRecurringSource string              `json:"mainRecurringSource,omitempty"`
	DailyExpensesTotal  decimal.Decimal     `json:"dailyExpensesTotal"`
	AverageDailySpend   decimal.Decimal     `json:"averageDailySpend"`
	TodayTotal          decimal.Decimal     `json:"todayTotal"`
	TodayCount          int                 `json:"todayCount"`
	PendingFixedTotal   decimal.Decimal     `json:"pendingFixedTotal"`
	PendingFixedCount   int                 `json:"pendingFixedCount"`
	NextDue             *DueExpense         `json:"nextDue,omitempty"`
	Insights            []Insight           `json:"insights"`
}

// DueExpense is the next pending fixed expense with its concrete due date
type DueExpense struct {
	ExpenseID   string          `json:"expenseId"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     time.Time       `json:"dueDate"`
}

// CategoryAmount represents an amount aggregated by category
type CategoryAmount struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Count    int             `json:"count"`
}

// Breakdown contains category aggregates for charts
type Breakdown struct {
	DailyThisMonth []CategoryAmount `json:"dailyThisMonth"`
	Fixed          []CategoryAmount `json:"fixed"`
}
