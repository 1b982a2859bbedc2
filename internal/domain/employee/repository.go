package employee

import "context"

// Directory resolves employee identities for other domains.
type Directory interface {
	Lookup(ctx context.Context, id string) (Profile, error)
}

type EmployeeRepository interface {
	Directory
	GetByID(ctx context.Context, id string) (Employee, error)
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, error)
	AttachUser(ctx context.Context, employeeID, userID string) error
}
