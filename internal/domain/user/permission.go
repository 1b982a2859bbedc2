package user

type Permission string

const (
	// Payroll
	PermissionPayrollViewOwn Permission = "payroll.view_own"
	PermissionPayrollViewAll Permission = "payroll.view_all"
	PermissionPayrollCreate  Permission = "payroll.create"
	PermissionPayrollEdit    Permission = "payroll.edit"
	PermissionPayrollSubmit  Permission = "payroll.submit"
	PermissionPayrollApprove Permission = "payroll.approve"
	PermissionPayrollPay     Permission = "payroll.pay"
	PermissionPayrollDelete  Permission = "payroll.delete"
	PermissionPayrollExport  Permission = "payroll.export"

	// Employee Management
	PermissionEmployeeViewAll Permission = "employee.view_all"
	PermissionEmployeeManage  Permission = "employee.manage"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionPayrollViewOwn,
		PermissionPayrollViewAll,
		PermissionPayrollCreate,
		PermissionPayrollEdit,
		PermissionPayrollSubmit,
		PermissionPayrollApprove,
		PermissionPayrollPay,
		PermissionPayrollDelete,
		PermissionPayrollExport,
		PermissionEmployeeViewAll,
		PermissionEmployeeManage,
	},
	RoleHR: {
		// HR prepares and pays payroll but cannot approve, reject or delete it
		PermissionPayrollViewOwn,
		PermissionPayrollViewAll,
		PermissionPayrollCreate,
		PermissionPayrollEdit,
		PermissionPayrollSubmit,
		PermissionPayrollPay,
		PermissionPayrollExport,
		PermissionEmployeeViewAll,
		PermissionEmployeeManage,
	},
	RoleEmployee: {
		PermissionPayrollViewOwn,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}

func CanCreatePayroll(role Role) bool  { return HasPermission(role, PermissionPayrollCreate) }
func CanEditPayroll(role Role) bool    { return HasPermission(role, PermissionPayrollEdit) }
func CanSubmitPayroll(role Role) bool  { return HasPermission(role, PermissionPayrollSubmit) }
func CanApprovePayroll(role Role) bool { return HasPermission(role, PermissionPayrollApprove) }
func CanPayPayroll(role Role) bool     { return HasPermission(role, PermissionPayrollPay) }
func CanDeletePayroll(role Role) bool  { return HasPermission(role, PermissionPayrollDelete) }
func CanViewAllPayroll(role Role) bool { return HasPermission(role, PermissionPayrollViewAll) }
func CanViewOwnPayroll(role Role) bool { return HasPermission(role, PermissionPayrollViewOwn) }
func CanExportPayroll(role Role) bool  { return HasPermission(role, PermissionPayrollExport) }

func CanViewEmployees(role Role) bool   { return HasPermission(role, PermissionEmployeeViewAll) }
func CanManageEmployees(role Role) bool { return HasPermission(role, PermissionEmployeeManage) }
