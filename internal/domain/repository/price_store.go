package repository

import (
	"context"
	"fmt"

	"github.com/abhinavomanakuttan/leaf-net/internal/domain/models"
)

// PriceStore reads regional mandi price datasets.
type PriceStore interface {
	// Latest returns the most recent record for the commodity in the
	// region, plus the record from the preceding arrival date when one
	// exists.
	Latest(ctx context.Context, region, commodity string) (latest models.MarketRecord, prev *models.MarketRecord, err error)

	// Series returns up to days of per-date observations, oldest first.
	// Rows sharing an arrival date collapse to the median modal price
	// and summed arrivals.
	Series(ctx context.Context, region, commodity string, days int) ([]models.PriceObservation, error)

	// Records returns one page of raw rows, newest first.
	Records(ctx context.Context, region, commodity string, page, pageSize int) (models.RecordsPage, error)

	// Filters reports the states, districts and commodities the
	// datasets on disk cover.
	Filters(ctx context.Context) (models.MarketFilters, error)
}

// EmptyDataError reports that a dataset exists but holds no usable rows
// for the requested commodity, or the dataset is missing entirely.
type EmptyDataError struct {
	Region    string
	Commodity string
	Reason    string
}

func (e *EmptyDataError) Error() string {
	return fmt.Sprintf("no market data for %s/%s: %s", e.Region, e.Commodity, e.Reason)
}
