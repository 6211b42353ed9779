package loaders

import (
	"context"
	"fmt"

	"github.com/graph-gophers/dataloader/v7"

	"github.com/beautrip/backend/internal/domain/entities"
	"github.com/beautrip/backend/internal/domain/repositories"
)

type ctxKey string

const loadersKey ctxKey = "dataloaders"

// Loaders contains all the dataloaders for the application
type Loaders struct {
	HospitalLoader  *dataloader.Loader[string, *entities.Hospital]
	TreatmentLoader *dataloader.Loader[string, *entities.Treatment]
}

// NewLoaders creates a new instance of Loaders
func NewLoaders(hospitalRepo repositories.HospitalRepository, treatmentRepo repositories.TreatmentRepository) *Loaders {
	return &Loaders{
		HospitalLoader: dataloader.NewBatchedLoader(func(ctx context.Context, keys []string) []*dataloader.Result[*entities.Hospital] {
			results := make([]*dataloader.Result[*entities.Hospital], len(keys))
			hospitals, err := hospitalRepo.GetByIDs(ctx, keys)

			hospitalMap := make(map[string]*entities.Hospital)
			if err == nil {
				for _, h := range hospitals {
					hospitalMap[h.ID] = h
				}
			}

			for i, key := range keys {
				if err != nil {
					results[i] = &dataloader.Result[*entities.Hospital]{Error: err}
				} else if h, ok := hospitalMap[key]; ok {
					results[i] = &dataloader.Result[*entities.Hospital]{Data: h}
				} else {
					results[i] = &dataloader.Result[*entities.Hospital]{Error: fmt.Errorf("hospital %s not found", key)}
				}
			}
			return results
		}),
		TreatmentLoader: dataloader.NewBatchedLoader(func(ctx context.Context, keys []string) []*dataloader.Result[*entities.Treatment] {
			results := make([]*dataloader.Result[*entities.Treatment], len(keys))
			treatments, err := treatmentRepo.GetByIDs(ctx, keys)

			treatmentMap := make(map[string]*entities.Treatment)
			if err == nil {
				for _, t := range treatments {
					treatmentMap[t.ID] = t
				}
			}

			for i, key := range keys {
				if err != nil {
					results[i] = &dataloader.Result[*entities.Treatment]{Error: err}
				} else if t, ok := treatmentMap[key]; ok {
					results[i] = &dataloader.Result[*entities.Treatment]{Data: t}
				} else {
					results[i] = &dataloader.Result[*entities.Treatment]{Error: fmt.Errorf("treatment %s not found", key)}
				}
			}
			return results
		}),
	}
}

// LoadHospitals resolves a batch of hospital IDs through the loader,
// skipping IDs that cannot be resolved.
func (l *Loaders) LoadHospitals(ctx context.Context, ids []string) map[string]*entities.Hospital {
	thunks := make([]func() (*entities.Hospital, error), len(ids))
	for i, id := range ids {
		thunks[i] = l.HospitalLoader.Load(ctx, id)
	}

	hospitals := make(map[string]*entities.Hospital, len(ids))
	for i, thunk := range thunks {
		if hospital, err := thunk(); err == nil && hospital != nil {
			hospitals[ids[i]] = hospital
		}
	}
	return hospitals
}

// For returns the loaders for a given context
func For(ctx context.Context) *Loaders {
	return ctx.Value(loadersKey).(*Loaders)
}

// WithLoaders returns a new context with the loaders attached
func WithLoaders(ctx context.Context, loaders *Loaders) context.Context {
	return context.WithValue(ctx, loadersKey, loaders)
}
