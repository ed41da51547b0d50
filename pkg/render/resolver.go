package render

import "context"

// Entity is an externally stored item referenced by a component, such as a
// portfolio project shown in a gallery block.
type Entity struct {
	ID       string
	Kind     string
	Title    string
	Summary  string
	ImageURL string
	LinkURL  string
}

// Resolver turns opaque referenced ids into full entity data at render
// time. Implementations return resolved entities in unspecified order and
// simply omit ids they cannot resolve; the interpreter re-orders the result
// to match the id list. Resolve must be a pure lookup with no caching or
// fetch side effects observable by the caller.
type Resolver interface {
	Resolve(ctx context.Context, kind string, ids []string) ([]Entity, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(ctx context.Context, kind string, ids []string) ([]Entity, error)

func (f ResolverFunc) Resolve(ctx context.Context, kind string, ids []string) ([]Entity, error) {
	return f(ctx, kind, ids)
}

// NopResolver resolves nothing. Reference-bearing blocks render their
// empty state.
type NopResolver struct{}

func (NopResolver) Resolve(context.Context, string, []string) ([]Entity, error) {
	return nil, nil
}

// resolveOrdered resolves ids and re-orders the result to match the id
// list, dropping ids that did not resolve. A resolver failure degrades to
// the empty list — a public page never hard-fails on a lookup error.
func resolveOrdered(ctx context.Context, r Resolver, kind string, ids []string) []Entity {
	if r == nil || len(ids) == 0 {
		return nil
	}
	found, err := r.Resolve(ctx, kind, ids)
	if err != nil {
		return nil
	}
	byID := make(map[string]Entity, len(found))
	for _, e := range found {
		byID[e.ID] = e
	}
	out := make([]Entity, 0, len(ids))
	for _, id := range ids {
		if e, ok := byID[id]; ok {
			out = append(out, e)
		}
	}
	return out
}
