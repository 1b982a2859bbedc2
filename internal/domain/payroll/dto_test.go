package payroll

import (
	"testing"

	"github.com/cmlabs-hris/hrms-payroll-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validationFields(t *testing.T, err error) map[string]string {
	t.Helper()
	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	return errs.ToMap()
}

func TestCreatePayrollRequest_Validate(t *testing.T) {
	basic := dec("5000")
	valid := CreatePayrollRequest{
		EmployeeID:  "0190a1b2-7c3d-7e4f-8a5b-6c7d8e9f0a1b",
		PeriodMonth: 3,
		PeriodYear:  2024,
		BasicSalary: &basic,
		Components:  []SalaryComponent{earning("HRA", "40", true)},
	}
	require.NoError(t, valid.Validate())

	missingBasic := valid
	missingBasic.BasicSalary = nil
	assert.Contains(t, validationFields(t, missingBasic.Validate()), "basic_salary")

	missingEmployee := valid
	missingEmployee.EmployeeID = "  "
	assert.Contains(t, validationFields(t, missingEmployee.Validate()), "employee_id")

	badPeriod := valid
	badPeriod.PeriodMonth = 13
	assert.Contains(t, validationFields(t, badPeriod.Validate()), "period")

	negative := decimal.NewFromInt(-1)
	negativeBasic := valid
	negativeBasic.BasicSalary = &negative
	assert.Contains(t, validationFields(t, negativeBasic.Validate()), "basic_salary")

	badComponents := valid
	badComponents.Components = []SalaryComponent{
		{Name: "", Kind: "bonus", Amount: dec("-5")},
	}
	fields := validationFields(t, badComponents.Validate())
	assert.Contains(t, fields, "components[0].name")
	assert.Contains(t, fields, "components[0].kind")
	assert.Contains(t, fields, "components[0].amount")

	method := "crypto"
	badMethod := valid
	badMethod.PaymentMethod = &method
	assert.Contains(t, validationFields(t, badMethod.Validate()), "payment_method")
}

func TestUpdatePayrollRequest_Validate(t *testing.T) {
	empty := UpdatePayrollRequest{ID: "x"}
	assert.Contains(t, validationFields(t, empty.Validate()), "body")

	status := "archived"
	badStatus := UpdatePayrollRequest{Status: &status}
	assert.Contains(t, validationFields(t, badStatus.Validate()), "status")

	date := "31-03-2024"
	badDate := UpdatePayrollRequest{PaymentDate: &date}
	assert.Contains(t, validationFields(t, badDate.Validate()), "payment_date")

	remarks := "ok"
	onlyRemarks := UpdatePayrollRequest{Remarks: &remarks}
	require.NoError(t, onlyRemarks.Validate())
	assert.False(t, onlyRemarks.ChangesAmounts())

	emptyComponents := []SalaryComponent{}
	clearComponents := UpdatePayrollRequest{Components: &emptyComponents}
	require.NoError(t, clearComponents.Validate())
	assert.True(t, clearComponents.ChangesAmounts())

	goodDate := "2024-03-31"
	withDate := UpdatePayrollRequest{PaymentDate: &goodDate}
	require.NoError(t, withDate.Validate())
	require.NotNil(t, withDate.ParsedPaymentDate())
	assert.Equal(t, 31, withDate.ParsedPaymentDate().Day())
}

func TestPayrollFilter_Validate(t *testing.T) {
	month, year := 0, 1999
	status := PayrollStatus("archived")
	fields := validationFields(t, PayrollFilter{PeriodMonth: &month, PeriodYear: &year, Status: &status}.Validate())
	assert.Contains(t, fields, "period_month")
	assert.Contains(t, fields, "period_year")
	assert.Contains(t, fields, "status")

	assert.NoError(t, PayrollFilter{}.Validate())
}
