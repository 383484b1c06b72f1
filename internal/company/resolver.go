package company

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sniftern/internguard/internal/normalize"
)

// MatchKind reports how a resolution succeeded.
type MatchKind string

const (
	MatchExact MatchKind = "exact"
	MatchFuzzy MatchKind = "fuzzy"
	MatchNone  MatchKind = "none"
)

// Resolver maps a standardized company name to at most one existing
// record.
type Resolver struct {
	store Store
}

// NewResolver creates a company resolver.
func NewResolver(store Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve runs a two-pass cascade:
//  1. Exact: case-insensitive whole-string match on the display name.
//  2. Fuzzy: match-key equality (lowercased, non-alphanumerics
//     stripped) against every stored display name, first match wins.
//
// The fuzzy pass is deliberately weak — stripped-string equality only,
// no edit distance. Names standardized to "unknown" never resolve.
func (r *Resolver) Resolve(ctx context.Context, name string) (*CompanyRecord, MatchKind, error) {
	if name == "" || name == normalize.Unknown {
		return nil, MatchNone, nil
	}

	// Pass 1: exact case-insensitive match.
	rec, err := r.store.FindByNameExact(ctx, name)
	if err != nil {
		return nil, MatchNone, eris.Wrap(err, "company: resolve exact")
	}
	if rec != nil {
		zap.L().Debug("resolve: matched exact",
			zap.String("name", name),
			zap.String("company_id", rec.ID),
		)
		return rec, MatchExact, nil
	}

	// Pass 2: fuzzy match on stripped keys.
	key := normalize.MatchKey(name)
	if key == "" {
		return nil, MatchNone, nil
	}

	names, err := r.store.ListNames(ctx)
	if err != nil {
		return nil, MatchNone, eris.Wrap(err, "company: list names")
	}
	for _, existing := range names {
		if normalize.MatchKey(existing) != key {
			continue
		}
		rec, err := r.store.FindByName(ctx, existing)
		if err != nil {
			return nil, MatchNone, eris.Wrap(err, "company: resolve fuzzy")
		}
		if rec != nil {
			zap.L().Debug("resolve: matched fuzzy",
				zap.String("name", name),
				zap.String("existing", existing),
				zap.String("company_id", rec.ID),
			)
			return rec, MatchFuzzy, nil
		}
	}

	return nil, MatchNone, nil
}
