package geo

import (
	"github.com/deg-labs/resilience-agent/internal/model"
)

// Correlate builds the asset_id -> risk lookup used by the map and the risk
// list. Later entries overwrite earlier ones for the same asset (last write
// wins); risks whose asset_id matches no asset are kept in the map but simply
// go unrendered. Pure: neither argument is mutated.
func Correlate(assets []model.Asset, risks []model.Risk) map[string]model.Risk {
	byAsset := make(map[string]model.Risk, len(risks))
	for _, r := range risks {
		byAsset[r.AssetID] = r
	}
	return byAsset
}
