package payroll

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Totals is the evaluated money breakdown of a basic salary and its components.
type Totals struct {
	Earnings    decimal.Decimal
	GrossSalary decimal.Decimal
	Deductions  decimal.Decimal
	NetSalary   decimal.Decimal
}

func (c SalaryComponent) valueOn(base decimal.Decimal) decimal.Decimal {
	if c.IsPercentage {
		return base.Mul(c.Amount).Div(hundred)
	}
	return c.Amount
}

// Evaluate computes earnings on basic salary first, then deductions on the
// resulting gross salary. Net salary is not clamped and may be negative.
func Evaluate(basicSalary decimal.Decimal, components []SalaryComponent) Totals {
	earnings := decimal.Zero
	for _, c := range components {
		if c.Kind == ComponentKindEarning {
			earnings = earnings.Add(c.valueOn(basicSalary))
		}
	}
	gross := basicSalary.Add(earnings)

	deductions := decimal.Zero
	for _, c := range components {
		if c.Kind == ComponentKindDeduction {
			deductions = deductions.Add(c.valueOn(gross))
		}
	}

	return Totals{
		Earnings:    earnings,
		GrossSalary: gross,
		Deductions:  deductions,
		NetSalary:   gross.Sub(deductions),
	}
}

// Rebuild recomputes the derived totals from BasicSalary and Components.
func (r *PayrollRecord) Rebuild() {
	totals := Evaluate(r.BasicSalary, r.Components)
	r.TotalEarnings = totals.Earnings
	r.GrossSalary = totals.GrossSalary
	r.TotalDeductions = totals.Deductions
	r.NetSalary = totals.NetSalary
}
