package services

import (
	"context"

	"github.com/localnerve/basetrack/internal/progress"
)

// SeriesResolver aggregates levels across a named building series
type SeriesResolver struct {
	levels  *SettingsStore
	aliases progress.Aliases
}

// NewSeriesResolver resolves series against the building levels store
func NewSeriesResolver(levels *SettingsStore, aliases progress.Aliases) *SeriesResolver {
	return &SeriesResolver{levels: levels, aliases: aliases}
}

// Resolve applies the alias table to a base name
func (r *SeriesResolver) Resolve(base string) string {
	return r.aliases.Resolve(base)
}

// Levels reads "<base> <suffix>" for each suffix in one round trip.
// Missing or non-numeric levels are 0.
func (r *SeriesResolver) Levels(ctx context.Context, ownerID, base string, suffixes []int) ([]int, error) {
	keys := progress.SeriesKeys(r.Resolve(base), suffixes)
	snap, err := r.levels.BulkRead(ctx, ownerID, keys)
	if err != nil {
		return nil, err
	}
	levels := make([]int, len(keys))
	for i, k := range keys {
		v, _ := snap.Lookup(k)
		levels[i] = progress.ParseLevel(v.Value)
	}
	return levels, nil
}

// MaxOfSeries returns the highest level in the series, 0 for no suffixes
func (r *SeriesResolver) MaxOfSeries(ctx context.Context, ownerID, base string, suffixes []int) (int, error) {
	levels, err := r.Levels(ctx, ownerID, base, suffixes)
	if err != nil {
		return 0, err
	}
	return progress.Max(levels), nil
}

// SumOfSeries returns the total level of the series
func (r *SeriesResolver) SumOfSeries(ctx context.Context, ownerID, base string, suffixes []int) (int, error) {
	levels, err := r.Levels(ctx, ownerID, base, suffixes)
	if err != nil {
		return 0, err
	}
	return progress.Sum(levels), nil
}
