package domain

import "context"

type Repository interface {
	UpsertRegistration(ctx context.Context, reg *Registration) error
	ListRegistrations(ctx context.Context) ([]Registration, error)
	ResolveTenant(ctx context.Context, transactionRef string) (string, error)
	AppendMapping(ctx context.Context, mapping *Mapping) error
}
