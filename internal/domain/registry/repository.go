package registry

import "context"

// WorkstationRepository is the read-mostly workstation registry. The
// session engine resolves authenticated identities against it and flips
// occupancy state around session start and end.
type WorkstationRepository interface {
	Save(ctx context.Context, w *Workstation) error
	Update(ctx context.Context, w *Workstation) error
	FindByID(ctx context.Context, id uint) (*Workstation, error)
	FindByName(ctx context.Context, name string) (*Workstation, error)
	List(ctx context.Context) ([]*Workstation, error)
}

// UserRepository is the read-mostly user registry.
type UserRepository interface {
	Save(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id uint) (*User, error)
	List(ctx context.Context) ([]*User, error)
}
