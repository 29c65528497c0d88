package repository

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhinavomanakuttan/leaf-net/internal/domain/models"
	domrepo "github.com/abhinavomanakuttan/leaf-net/internal/domain/repository"
)

const fixtureCSV = `State,District,Market,Commodity,Variety,Grade,Arrival_Date,Min_Price,Max_Price,Modal_Price,Commodity_Code
Kerala,Kottayam,Kottayam,Banana,Nendran,FAQ,14-01-2025,4000,4600,4300,19
Kerala,Kottayam,Kottayam,Banana,Nendran,FAQ,15-01-2025,4100,4700,4400,19
Kerala,Kottayam,Kottayam,Banana,Robusta,FAQ,15-01-2025,4000,4500,4200,19
Kerala,Kottayam,Kottayam,Banana,Nendran,FAQ,16-01-2025,4200,4800,4500,19
Kerala,Kottayam,Kottayam,Pineapple,Kew,FAQ,16-01-2025,3000,3400,3200,22
`

func newTestStore(t *testing.T, files map[string]string) *CSVPriceStore {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write fixture: %v", err)
		}
	}
	return NewCSVPriceStore(dir, time.Minute, nil)
}

func TestLatest(t *testing.T) {
	store := newTestStore(t, map[string]string{"Kerala_Kottayam.csv": fixtureCSV})

	latest, prev, err := store.Latest(context.Background(), "Kerala_Kottayam", "Banana")
	require.NoError(t, err)
	require.NotNil(t, prev)
	assert.Equal(t, 4500.0, latest.ModalPrice)
	assert.Equal(t, "Nendran", latest.Variety)
	// Two rows share 15-01; stable sort keeps the first of them next.
	assert.Equal(t, 4400.0, prev.ModalPrice)
}

func TestLatestCommodityCaseInsensitive(t *testing.T) {
	store := newTestStore(t, map[string]string{"Kerala_Kottayam.csv": fixtureCSV})

	latest, _, err := store.Latest(context.Background(), "Kerala_Kottayam", "banana")
	require.NoError(t, err)
	assert.Equal(t, "Banana", latest.Commodity)
}

func TestLatestUnknownCommodity(t *testing.T) {
	store := newTestStore(t, map[string]string{"Kerala_Kottayam.csv": fixtureCSV})

	_, _, err := store.Latest(context.Background(), "Kerala_Kottayam", "Mango")
	var empty *domrepo.EmptyDataError
	require.ErrorAs(t, err, &empty)
	assert.Equal(t, "No data for this commodity", empty.Reason)
}

func TestLatestMissingRegionFile(t *testing.T) {
	store := newTestStore(t, nil)

	_, _, err := store.Latest(context.Background(), "Punjab_Ludhiana", "Wheat")
	var empty *domrepo.EmptyDataError
	require.ErrorAs(t, err, &empty)
	assert.Equal(t, "Region file Punjab_Ludhiana.csv not found", empty.Reason)
}

func TestSeriesMedianCollapsesDuplicateDates(t *testing.T) {
	store := newTestStore(t, map[string]string{"Kerala_Kottayam.csv": fixtureCSV})

	series, err := store.Series(context.Background(), "Kerala_Kottayam", "Banana", 30)
	require.NoError(t, err)
	require.Len(t, series, 3)

	// Oldest first.
	assert.True(t, series[0].Date.Before(series[1].Date))
	assert.Equal(t, 4300.0, series[0].Price)
	// 15-01 has two rows, 4400 and 4200: even count averages the middle pair.
	assert.Equal(t, 4300.0, series[1].Price)
	assert.Equal(t, 2, series[1].SampleCount)
	assert.Equal(t, 4500.0, series[2].Price)
}

func TestSeriesWindowKeepsNewest(t *testing.T) {
	store := newTestStore(t, map[string]string{"Kerala_Kottayam.csv": fixtureCSV})

	series, err := store.Series(context.Background(), "Kerala_Kottayam", "Banana", 2)
	require.NoError(t, err)
	require.Len(t, series, 2)
	assert.Equal(t, 4500.0, series[1].Price)
}

func TestRecordsPagination(t *testing.T) {
	store := newTestStore(t, map[string]string{"Kerala_Kottayam.csv": fixtureCSV})

	page, err := store.Records(context.Background(), "Kerala_Kottayam", "Banana", 1, 3)
	require.NoError(t, err)
	assert.Equal(t, 4, page.Total)
	require.Len(t, page.Records, 3)
	assert.Equal(t, "16/01/2025", page.Records[0].ArrivalDate)

	page2, err := store.Records(context.Background(), "Kerala_Kottayam", "Banana", 2, 3)
	require.NoError(t, err)
	require.Len(t, page2.Records, 1)
	assert.Equal(t, "14/01/2025", page2.Records[0].ArrivalDate)

	// Past the end: empty page, total preserved.
	page3, err := store.Records(context.Background(), "Kerala_Kottayam", "Banana", 3, 3)
	require.NoError(t, err)
	assert.Empty(t, page3.Records)
	assert.Equal(t, 4, page3.Total)
}

func TestRecordsFillsMissingFields(t *testing.T) {
	csv := "State,District,Market,Commodity,Variety,Grade,Arrival_Date,Modal_Price\n" +
		"Kerala,Kottayam,Kottayam,Banana,,,17-01-2025,4600\n"
	store := newTestStore(t, map[string]string{"Kerala_Kottayam.csv": csv})

	page, err := store.Records(context.Background(), "Kerala_Kottayam", "Banana", 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Records, 1)
	assert.Equal(t, "Other", page.Records[0].Variety)
	assert.Equal(t, "—", page.Records[0].Grade)
}

func TestRecordsTolerantHeaders(t *testing.T) {
	// Truncated headers from exported sheets still map to canonical columns.
	csv := "state,district,market,Commodi,variety,grade,arrival_date,min_price,max_price,Modal_Pri\n" +
		"Kerala,Kottayam,Kottayam,Banana,Nendran,FAQ,18/01/2025,4000,4600,4350\n"
	store := newTestStore(t, map[string]string{"Kerala_Kottayam.csv": csv})

	latest, _, err := store.Latest(context.Background(), "Kerala_Kottayam", "Banana")
	require.NoError(t, err)
	assert.Equal(t, 4350.0, latest.ModalPrice)
	assert.Equal(t, time.Date(2025, 1, 18, 0, 0, 0, 0, time.UTC), latest.ArrivalDate)
}

func TestFilters(t *testing.T) {
	store := newTestStore(t, map[string]string{
		"Kerala_Kottayam.csv": fixtureCSV,
		"Kerala_Idukki.csv":   fixtureCSV,
		sampleFile:            fixtureCSV,
	})

	filters, err := store.Filters(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Idukki", "Kottayam"}, filters.Topology["Kerala"])
	assert.Equal(t, []string{"Banana", "Pineapple"}, filters.Commodities["Kerala_Kottayam"])
	// The scratch dataset is not a region.
	_, ok := filters.Commodities["market_prices"]
	assert.False(t, ok)
}

func TestLoadMemoized(t *testing.T) {
	store := newTestStore(t, map[string]string{"Kerala_Kottayam.csv": fixtureCSV})

	_, _, err := store.Latest(context.Background(), "Kerala_Kottayam", "Banana")
	require.NoError(t, err)

	// Remove the backing file; the memoized rows keep serving.
	require.NoError(t, os.Remove(filepath.Join(store.dataDir, "Kerala_Kottayam.csv")))
	_, _, err = store.Latest(context.Background(), "Kerala_Kottayam", "Banana")
	assert.NoError(t, err)
}

func TestLoadUsesOneDateLayoutPerFile(t *testing.T) {
	// The 13th forces month-first for the file; the ambiguous 01/05
	// row must then also parse month-first, not as 1 May.
	csv := "State,District,Market,Commodity,Variety,Grade,Arrival_Date,Min_Price,Max_Price,Modal_Price\n" +
		"Kerala,Kottayam,Kottayam,Banana,Nendran,FAQ,01/13/2025,4100,4700,4400\n" +
		"Kerala,Kottayam,Kottayam,Banana,Nendran,FAQ,01/05/2025,4000,4600,4300\n"
	store := newTestStore(t, map[string]string{"Kerala_Kottayam.csv": csv})

	latest, prev, err := store.Latest(context.Background(), "Kerala_Kottayam", "Banana")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC), latest.ArrivalDate)
	require.NotNil(t, prev)
	assert.Equal(t, time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC), prev.ArrivalDate)
}

func TestRecordsLeavesCachedOrderIntact(t *testing.T) {
	store := newTestStore(t, map[string]string{"Kerala_Kottayam.csv": fixtureCSV})

	// No commodity filter: pagination sorts newest-first, but the
	// memoized rows must keep their file order.
	page, err := store.Records(context.Background(), "Kerala_Kottayam", "", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, "16/01/2025", page.Records[0].ArrivalDate)

	v, ok := store.cache.Get("Kerala_Kottayam.csv")
	require.True(t, ok)
	cached := v.([]models.MarketRecord)
	assert.Equal(t, time.Date(2025, 1, 14, 0, 0, 0, 0, time.UTC), cached[0].ArrivalDate)
}

func TestRecordsConcurrentUnfiltered(t *testing.T) {
	store := newTestStore(t, map[string]string{"Kerala_Kottayam.csv": fixtureCSV})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			page, err := store.Records(context.Background(), "Kerala_Kottayam", "", 1, 3)
			if err != nil {
				t.Errorf("Records: %v", err)
				return
			}
			if page.Total != 5 || page.Records[0].ArrivalDate != "16/01/2025" {
				t.Errorf("inconsistent page: total=%d first=%s", page.Total, page.Records[0].ArrivalDate)
			}
		}()
	}
	wg.Wait()
}

func TestMedian(t *testing.T) {
	assert.Equal(t, 110.0, median([]float64{100, 120}))
	assert.Equal(t, 120.0, median([]float64{130, 100, 120}))
	assert.Equal(t, 0.0, median(nil))
}
