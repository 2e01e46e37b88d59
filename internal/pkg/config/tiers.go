package config

import (
	"fmt"

	"github.com/piresc/fleetwatch/internal/pkg/models"
	"github.com/spf13/viper"
)

// DefaultPenaltyTiers returns the built-in tier table: [60,80) -> 2, [80,+inf) -> 5
func DefaultPenaltyTiers() []models.PenaltyTier {
	upper := 80.0
	return []models.PenaltyTier{
		{Name: "SPEEDING", LowerKmh: 60, UpperKmh: &upper, PointsPerKm: 2},
		{Name: "EXCESSIVE_SPEEDING", LowerKmh: 80, PointsPerKm: 5},
	}
}

// LoadPenaltyTiers reads a tier table from a YAML/JSON/TOML file. An empty path yields the defaults.
//
//	tiers:
//	  - name: SPEEDING
//	    lower_kmh: 60
//	    upper_kmh: 80
//	    points_per_km: 2
func LoadPenaltyTiers(path string) ([]models.PenaltyTier, error) {
	if path == "" {
		return DefaultPenaltyTiers(), nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read penalty tiers file %s: %w", path, err)
	}

	var file struct {
		Tiers []models.PenaltyTier `mapstructure:"tiers"`
	}
	if err := v.Unmarshal(&file); err != nil {
		return nil, fmt.Errorf("failed to decode penalty tiers file %s: %w", path, err)
	}
	if err := ValidatePenaltyTiers(file.Tiers); err != nil {
		return nil, err
	}
	return file.Tiers, nil
}

// ValidatePenaltyTiers checks the table is non-empty, ascending and non-overlapping,
// and that only the last tier may be unbounded.
func ValidatePenaltyTiers(tiers []models.PenaltyTier) error {
	if len(tiers) == 0 {
		return fmt.Errorf("penalty tiers: table is empty")
	}
	for i, t := range tiers {
		if t.Name == "" {
			return fmt.Errorf("penalty tiers: tier %d has no name", i)
		}
		if t.PointsPerKm < 0 {
			return fmt.Errorf("penalty tiers: tier %s has negative points", t.Name)
		}
		if t.UpperKmh == nil {
			if i != len(tiers)-1 {
				return fmt.Errorf("penalty tiers: only the last tier may be unbounded, %s is not last", t.Name)
			}
			continue
		}
		if *t.UpperKmh <= t.LowerKmh {
			return fmt.Errorf("penalty tiers: tier %s has upper bound %v not above lower bound %v", t.Name, *t.UpperKmh, t.LowerKmh)
		}
		if i+1 < len(tiers) && tiers[i+1].LowerKmh < *t.UpperKmh {
			return fmt.Errorf("penalty tiers: tier %s overlaps %s", t.Name, tiers[i+1].Name)
		}
	}
	return nil
}
