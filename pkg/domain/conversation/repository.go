package conversation

import "context"

//go:generate mockery --name=Repository --dir=. --output=./mocks --filename=repository_mock.go --case=underscore --with-expecter

type Repository interface {
	// Create allocates a fresh session with an empty history.
	Create(ctx context.Context) (*Session, error)
	// Get returns a snapshot of the session. The returned value is a copy;
	// mutating it does not affect the stored session.
	Get(ctx context.Context, id string) (*Session, error)
	// Append atomically appends a user/assistant pair and truncates the
	// history to the store's bound.
	Append(ctx context.Context, id string, user, assistant Message) error
}
