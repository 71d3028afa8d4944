package engine

import "context"

// QueryExpander substitutes a user query with a list of expanded terms
// (spec §2 step 7's external collaborator). Implementations backed by an
// LLM or a synonym table live outside this module; PassthroughExpander is
// the no-op default.
type QueryExpander interface {
	Expand(ctx context.Context, query string) ([]string, error)
}

// PassthroughExpander returns the query unchanged as a single-term list,
// so SearchExpanded degrades to an ordinary single-query search when no
// real expander is configured.
type PassthroughExpander struct{}

// Expand returns []string{query}.
func (PassthroughExpander) Expand(_ context.Context, query string) ([]string, error) {
	return []string{query}, nil
}
