package user

import "context"

type actorCtxKey struct{}

// Actor is the authenticated identity performing an operation.
type Actor struct {
	UserID     string
	EmployeeID *string
	Role       Role
}

// Owns reports whether the actor is the employee identified by employeeID.
func (a Actor) Owns(employeeID string) bool {
	return a.EmployeeID != nil && *a.EmployeeID == employeeID
}

func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorCtxKey{}, actor)
}

func ActorFromContext(ctx context.Context) (Actor, error) {
	actor, ok := ctx.Value(actorCtxKey{}).(Actor)
	if !ok || actor.UserID == "" {
		return Actor{}, ErrActorMissing
	}
	return actor, nil
}
