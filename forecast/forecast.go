// Package forecast computes and prints asset revenue projections.
package forecast

import (
	"fmt"
	"io"

	"github.com/finwatch/asset/logger"
	"github.com/finwatch/asset/models"
)

// WarnPeriodThreshold is the number of requested periods at which the
// projection is considered excessive and a warning is logged.
const WarnPeriodThreshold = 5

// LoadAsset reads a whole asset description from r and parses it.
func LoadAsset(r io.Reader, log logger.Logger) (models.Asset, error) {
	log.InfoW("reading asset file...")
	raw, err := io.ReadAll(r)
	if err != nil {
		return models.Asset{}, fmt.Errorf("read asset input: %w", err)
	}
	log.DebugW("building asset object...")
	asset, err := models.ParseAsset(string(raw))
	if err != nil {
		return models.Asset{}, err
	}
	return asset, nil
}

// PrintRevenue writes one "period: revenue" line per requested period.
func PrintRevenue(w io.Writer, log logger.Logger, asset models.Asset, periods []int) error {
	if len(periods) >= WarnPeriodThreshold {
		log.WarnW("too many periods were provided", "count", len(periods))
	}

	for _, period := range periods {
		revenue := asset.Revenue(float64(period))
		log.DebugW("calculated revenue",
			"asset", asset.String(),
			"period", period,
			"revenue", revenue,
		)
		if _, err := fmt.Fprintf(w, "%5d: %10.3f\n", period, revenue); err != nil {
			return err
		}
	}
	return nil
}
