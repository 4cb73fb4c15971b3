package simulation

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/deg-labs/resilience-agent/internal/model"
)

//go:embed assets.json
var assetData []byte

// LoadAssets returns the DEG asset registry for a location. The registry is
// currently a static London set; the location parameter is kept for when the
// registry grows beyond one city.
func LoadAssets(location string) ([]model.Asset, error) {
	var assets []model.Asset
	if err := json.Unmarshal(assetData, &assets); err != nil {
		return nil, fmt.Errorf("failed to parse asset registry: %w", err)
	}
	return assets, nil
}
