package prompt

import "context"

// FetchOptions selects a prompt version or label. Version takes precedence
// over label when both are supplied; neither selects the latest revision.
type FetchOptions struct {
	Version int
	Label   string
}

// Fetcher retrieves a prompt definition from a backing store. The Manager is
// the only caller; implementations should return a typed *Error for
// not-found and transport failures so policy layers can branch on the code.
type Fetcher interface {
	Fetch(ctx context.Context, name string, opts FetchOptions) (*Record, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, name string, opts FetchOptions) (*Record, error)

func (f FetcherFunc) Fetch(ctx context.Context, name string, opts FetchOptions) (*Record, error) {
	return f(ctx, name, opts)
}
