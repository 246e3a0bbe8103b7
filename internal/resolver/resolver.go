package resolver

import "context"

//go:generate go run go.uber.org/mock/mockgen -source=resolver.go -destination=mocks/mock.go -package=mocks

// Client resolves a username to Instagram's numeric account id.
type Client interface {
	Resolve(ctx context.Context, username string) (string, error)
}

// Strategy is one independent lookup mechanism in the resolution chain.
// Lookup returns an empty id with a nil error when the strategy completed
// but found no match; errors are reserved for transport-level failures.
type Strategy interface {
	Name() string
	Lookup(ctx context.Context, username string) (string, error)
}
