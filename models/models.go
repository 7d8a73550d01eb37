package models

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Asset is a single investment position: a starting capital that compounds
// at a fixed yearly interest rate.
type Asset struct {
	Name     string  `json:"name" yaml:"name"`
	Capital  float64 `json:"capital" yaml:"capital"`
	Interest float64 `json:"interest" yaml:"interest"`
}

// ParseAsset builds an Asset from whitespace-separated text of the form
// "name capital interest".
func ParseAsset(raw string) (Asset, error) {
	fields := strings.Fields(raw)
	if len(fields) != 3 {
		return Asset{}, fmt.Errorf("expected 3 fields in %q, got %d", strings.TrimSpace(raw), len(fields))
	}
	capital, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return Asset{}, fmt.Errorf("parse capital: %w", err)
	}
	interest, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return Asset{}, fmt.Errorf("parse interest: %w", err)
	}
	return Asset{Name: fields[0], Capital: capital, Interest: interest}, nil
}

// Revenue reports the compound gain over the given number of years,
// excluding the initial capital.
func (a Asset) Revenue(years float64) float64 {
	return a.Capital * (math.Pow(1.0+a.Interest, years) - 1.0)
}

func (a Asset) String() string {
	return fmt.Sprintf("Asset(%v, %v, %v)", a.Name, a.Capital, a.Interest)
}

// Profile binds an asset to the currency its capital is denominated in.
type Profile struct {
	CharCode string `json:"char_code" yaml:"char_code"`
	Asset    Asset  `json:"asset" yaml:"asset"`
}

// Row returns the wire shape used by the asset listing API:
// [char_code, name, capital, interest].
func (p Profile) Row() []any {
	return []any{p.CharCode, p.Asset.Name, p.Asset.Capital, p.Asset.Interest}
}

func (p Profile) String() string {
	return p.Asset.String() + " char_code: " + p.CharCode
}
