package payroll

import (
	"sort"

	"github.com/shopspring/decimal"
)

// PayrollFilter is a conjunction of optional constraints; nil fields match everything.
type PayrollFilter struct {
	PeriodMonth *int           `json:"period_month,omitempty"`
	PeriodYear  *int           `json:"period_year,omitempty"`
	Status      *PayrollStatus `json:"status,omitempty"`
	EmployeeID  *string        `json:"employee_id,omitempty"`
}

// Matches reports whether r satisfies every constraint of f.
func (f PayrollFilter) Matches(r PayrollRecord) bool {
	if f.PeriodMonth != nil && r.PeriodMonth != *f.PeriodMonth {
		return false
	}
	if f.PeriodYear != nil && r.PeriodYear != *f.PeriodYear {
		return false
	}
	if f.Status != nil && r.Status != *f.Status {
		return false
	}
	if f.EmployeeID != nil && r.EmployeeID != *f.EmployeeID {
		return false
	}
	return true
}

type Summary struct {
	RecordCount     int                   `json:"record_count"`
	EmployeeCount   int                   `json:"employee_count"`
	TotalGross      decimal.Decimal       `json:"total_gross"`
	TotalDeductions decimal.Decimal       `json:"total_deductions"`
	TotalNetPay     decimal.Decimal       `json:"total_net_pay"`
	StatusCounts    map[PayrollStatus]int `json:"status_counts"`
}

// Summarize aggregates exactly the given records.
func Summarize(records []PayrollRecord) Summary {
	summary := Summary{
		TotalGross:      decimal.Zero,
		TotalDeductions: decimal.Zero,
		TotalNetPay:     decimal.Zero,
		StatusCounts:    make(map[PayrollStatus]int),
	}
	employees := make(map[string]struct{})

	for _, r := range records {
		summary.RecordCount++
		summary.TotalGross = summary.TotalGross.Add(r.GrossSalary)
		summary.TotalDeductions = summary.TotalDeductions.Add(r.TotalDeductions)
		summary.TotalNetPay = summary.TotalNetPay.Add(r.NetSalary)
		summary.StatusCounts[r.Status]++
		employees[r.EmployeeID] = struct{}{}
	}
	summary.EmployeeCount = len(employees)

	return summary
}

// SortNewestFirst orders by period year desc, period month desc, then created_at desc.
func SortNewestFirst(records []PayrollRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.PeriodYear != b.PeriodYear {
			return a.PeriodYear > b.PeriodYear
		}
		if a.PeriodMonth != b.PeriodMonth {
			return a.PeriodMonth > b.PeriodMonth
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
}
