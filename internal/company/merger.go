package company

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sniftern/internguard/internal/model"
	"github.com/sniftern/internguard/internal/normalize"
)

// Merger folds classified observations into the deduplicated record
// set. Merges for the same resolved identity are serialized on a
// per-match-key mutex; resolution and the create-or-update decision
// run under the same lock so two concurrent first observations of one
// company cannot create two records.
type Merger struct {
	store    Store
	resolver *Resolver
	locks    sync.Map // match key -> *sync.Mutex
}

// NewMerger creates a merger over the given store.
func NewMerger(store Store) *Merger {
	return &Merger{
		store:    store,
		resolver: NewResolver(store),
	}
}

// Merge applies one observation. A name that standardizes to
// "unknown" is skipped: the call succeeds, returns a nil record, and
// persists nothing. Otherwise the observation is resolved, merged per
// the record algorithm, and the record is inserted or fully replaced
// as a single write; a store failure leaves the record set untouched.
func (m *Merger) Merge(ctx context.Context, obs model.Observation) (*CompanyRecord, error) {
	name := normalize.Standardize(obs.CompanyName)
	if name == normalize.Unknown {
		zap.L().Info("merge: skipping observation, company name unknown",
			zap.String("raw_name", obs.CompanyName),
		)
		return nil, nil
	}

	mu := m.lockFor(normalize.MatchKey(name))
	mu.Lock()
	defer mu.Unlock()

	rec, kind, err := m.resolver.Resolve(ctx, name)
	if err != nil {
		return nil, err
	}

	created := rec == nil
	if created {
		rec = NewRecord(name)
	} else {
		// First-seen spelling wins: the existing display name is
		// never renamed by later observations.
		zap.L().Debug("merge: found existing company",
			zap.String("match", string(kind)),
			zap.String("company_name", rec.CompanyName),
		)
	}

	entry := Entry{
		Website:         cleanWebsite(obs.Website),
		Location:        normalize.ClassifyLocation(obs.Location),
		Timestamp:       time.Now().UTC(),
		ConfidenceScore: obs.Confidence,
	}

	if obs.IsReal() {
		rec.Real.Entries = append(rec.Real.Entries, entry)
		rec.RealCount++
		rec.Real.AddPatterns(obs.Patterns)
	} else {
		rec.Fake.Entries = append(rec.Fake.Entries, entry)
		rec.FakeCount++
		rec.Fake.AddPatterns(obs.Patterns)
	}

	rec.Recompute()

	if created {
		if err := m.store.Insert(ctx, rec); err != nil {
			return nil, eris.Wrap(err, "company: insert record")
		}
	} else {
		if err := m.store.Replace(ctx, rec.ID, rec); err != nil {
			return nil, eris.Wrapf(err, "company: replace record %s", rec.ID)
		}
	}

	zap.L().Info("merge: company stats updated",
		zap.String("company_name", rec.CompanyName),
		zap.Bool("created", created),
		zap.Int("total", rec.TotalCount),
		zap.Float64("fraud_pct", rec.FraudPercentage),
	)

	return rec, nil
}

func (m *Merger) lockFor(key string) *sync.Mutex {
	v, _ := m.locks.LoadOrStore(key, &sync.Mutex{})
	return v.(*sync.Mutex)
}

func cleanWebsite(raw string) string {
	w := strings.TrimSpace(raw)
	if w == "" {
		return normalize.Unknown
	}
	return w
}
