package agents

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhinavomanakuttan/leaf-net/internal/domain/models"
	domrepo "github.com/abhinavomanakuttan/leaf-net/internal/domain/repository"
	"github.com/abhinavomanakuttan/leaf-net/pkg/logger"
)

type noopMetrics struct{}

func (noopMetrics) RecordAgentCall(string, string)          {}
func (noopMetrics) RecordError(string)                      {}
func (noopMetrics) RecordLastPrice(string, string, float64) {}
func (noopMetrics) RecordLatency(string, float64)           {}

type stubPriceStore struct {
	latest models.MarketRecord
	prev   *models.MarketRecord
	err    error
}

func (s *stubPriceStore) Latest(context.Context, string, string) (models.MarketRecord, *models.MarketRecord, error) {
	return s.latest, s.prev, s.err
}

func (s *stubPriceStore) Series(context.Context, string, string, int) ([]models.PriceObservation, error) {
	return nil, s.err
}

func (s *stubPriceStore) Records(context.Context, string, string, int, int) (models.RecordsPage, error) {
	return models.RecordsPage{}, s.err
}

func (s *stubPriceStore) Filters(context.Context) (models.MarketFilters, error) {
	return models.MarketFilters{}, s.err
}

func newMarketService(store domrepo.PriceStore) *MarketService {
	svc := NewMarketService(store, noopMetrics{}, logger.NewNop())
	svc.now = func() time.Time { return time.Date(2025, 1, 20, 9, 30, 0, 0, time.UTC) }
	return svc
}

func TestMarketDataTrendUp(t *testing.T) {
	prev := models.MarketRecord{ModalPrice: 4200, ArrivalDate: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)}
	svc := newMarketService(&stubPriceStore{
		latest: models.MarketRecord{
			Commodity:   "Banana",
			Variety:     "Nendran",
			MarketName:  "Kottayam",
			StateName:   "Kerala",
			ModalPrice:  4400,
			MinPrice:    4100,
			MaxPrice:    4700,
			ArrivalDate: time.Date(2025, 1, 16, 0, 0, 0, 0, time.UTC),
		},
		prev: &prev,
	})

	got, err := svc.Data(context.Background(), "Kerala_Kottayam", "Banana")
	require.NoError(t, err)
	assert.Equal(t, "success", got.Status)
	assert.Equal(t, "up", got.Trend)
	assert.Equal(t, 200.0, got.PriceChange)
	assert.Equal(t, 4200.0, got.PrevPrice)
	assert.Equal(t, "16 Jan 2025", got.ArrivalDate)
	assert.Equal(t, "Kerala_Kottayam.csv", got.DataSource)
	assert.Equal(t, "2025-01-20 09:30 AM", got.LastUpdated)
}

func TestMarketDataSingleRecord(t *testing.T) {
	svc := newMarketService(&stubPriceStore{
		latest: models.MarketRecord{Commodity: "Banana", ModalPrice: 4400},
	})

	got, err := svc.Data(context.Background(), "Kerala_Kottayam", "Banana")
	require.NoError(t, err)
	assert.Equal(t, "stable", got.Trend)
	assert.Equal(t, 4400.0, got.PrevPrice)
	assert.Equal(t, 0.0, got.PriceChange)
	// min/max fall back to modal when the export omits them
	assert.Equal(t, 4400.0, got.MinPrice)
	assert.Equal(t, 4400.0, got.MaxPrice)
	assert.Equal(t, "Unknown", got.ArrivalDate)
}

func TestMarketDataUnavailable(t *testing.T) {
	svc := newMarketService(&stubPriceStore{
		err: &domrepo.EmptyDataError{Region: "Kerala_Kottayam", Commodity: "Mango", Reason: "No data for this commodity"},
	})

	got, err := svc.Data(context.Background(), "Kerala_Kottayam", "Mango")
	require.NoError(t, err, "data failures must stay in the payload")
	assert.Equal(t, "error", got.Status)
	assert.Equal(t, "unknown", got.Trend)
	assert.Equal(t, "Error", got.DataSource)
	assert.Equal(t, "Kerala_Kottayam", got.StateName)
	assert.NotEmpty(t, got.Error)
}
