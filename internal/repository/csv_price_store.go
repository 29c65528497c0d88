// Package repository holds the data-access implementations backing the
// domain interfaces: the CSV price store and the assessment publisher.
package repository

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/abhinavomanakuttan/leaf-net/internal/domain/models"
	domrepo "github.com/abhinavomanakuttan/leaf-net/internal/domain/repository"
	memo "github.com/abhinavomanakuttan/leaf-net/internal/service/cache"
	"github.com/abhinavomanakuttan/leaf-net/pkg/logger"
	"github.com/abhinavomanakuttan/leaf-net/pkg/util"
)

// recordDateFormat renders arrival dates on paginated record rows.
const recordDateFormat = "02/01/2006"

// sampleFile is a scratch dataset excluded from filter discovery.
const sampleFile = "market_prices.csv"

// columnAliases normalizes the header variants seen across uploaded
// Agmarknet exports, including truncated headers.
var columnAliases = map[string]string{
	"state":          "State",
	"district":       "District",
	"market":         "Market",
	"commodity":      "Commodity",
	"commodi":        "Commodity",
	"variety":        "Variety",
	"grade":          "Grade",
	"arrival_date":   "Arrival_Date",
	"arrivaldate":    "Arrival_Date",
	"min_price":      "Min_Price",
	"minprice":       "Min_Price",
	"max_price":      "Max_Price",
	"maxprice":       "Max_Price",
	"modal_price":    "Modal_Price",
	"modalprice":     "Modal_Price",
	"modal_pri":      "Modal_Price",
	"commodity_code": "Commodity_Code",
}

// CSVPriceStore reads regional mandi datasets named State_District.csv
// from a data directory. Parsed files are memoized with a TTL so
// repeated requests within a session do not re-read the file.
type CSVPriceStore struct {
	dataDir string
	cache   *memo.TTLCache
	ttl     time.Duration
	log     *logger.Logger
}

func NewCSVPriceStore(dataDir string, ttl time.Duration, log *logger.Logger) *CSVPriceStore {
	return &CSVPriceStore{
		dataDir: dataDir,
		cache:   memo.NewTTLCache(10),
		ttl:     ttl,
		log:     log,
	}
}

var _ domrepo.PriceStore = (*CSVPriceStore)(nil)

// Latest returns the most recent record for the commodity, plus the
// preceding one when the dataset has more than one row.
func (s *CSVPriceStore) Latest(ctx context.Context, region, commodity string) (models.MarketRecord, *models.MarketRecord, error) {
	rows, err := s.commodityRows(ctx, region, commodity)
	if err != nil {
		return models.MarketRecord{}, nil, err
	}

	// Newest first.
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].ArrivalDate.After(rows[j].ArrivalDate) })

	latest := rows[0]
	var prev *models.MarketRecord
	if len(rows) > 1 {
		p := rows[1]
		prev = &p
	}
	return latest, prev, nil
}

// Series returns up to days of per-date observations, oldest first.
// Rows sharing an arrival date collapse to the median modal price with
// the contributing row count.
func (s *CSVPriceStore) Series(ctx context.Context, region, commodity string, days int) ([]models.PriceObservation, error) {
	rows, err := s.commodityRows(ctx, region, commodity)
	if err != nil {
		return nil, err
	}

	byDate := make(map[time.Time][]float64)
	for _, r := range rows {
		if r.ArrivalDate.IsZero() || r.ModalPrice == 0 {
			continue
		}
		byDate[r.ArrivalDate] = append(byDate[r.ArrivalDate], r.ModalPrice)
	}

	series := make([]models.PriceObservation, 0, len(byDate))
	for date, prices := range byDate {
		series = append(series, models.PriceObservation{
			Date:        date,
			Price:       util.Round2(median(prices)),
			SampleCount: len(prices),
		})
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Date.Before(series[j].Date) })

	if days > 0 && len(series) > days {
		series = series[len(series)-days:]
	}
	return series, nil
}

// Records returns one page of raw rows, newest first.
func (s *CSVPriceStore) Records(ctx context.Context, region, commodity string, page, pageSize int) (models.RecordsPage, error) {
	empty := models.RecordsPage{Records: []models.RecordRow{}, Total: 0, Page: page, PageSize: pageSize}

	rows, err := s.commodityRows(ctx, region, commodity)
	if err != nil {
		return empty, err
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].ArrivalDate.After(rows[j].ArrivalDate) })

	total := len(rows)
	start := (page - 1) * pageSize
	if start >= total {
		empty.Total = total
		return empty, nil
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	out := make([]models.RecordRow, 0, end-start)
	for _, r := range rows[start:end] {
		date := "—"
		if !r.ArrivalDate.IsZero() {
			date = r.ArrivalDate.Format(recordDateFormat)
		}
		variety := r.Variety
		if variety == "" {
			variety = "Other"
		}
		out = append(out, models.RecordRow{
			State:         dash(r.StateName),
			District:      dash(r.District),
			Market:        dash(r.MarketName),
			Commodity:     dash(r.Commodity),
			Variety:       variety,
			Grade:         dash(r.Grade),
			ArrivalDate:   date,
			MinPrice:      r.MinPrice,
			MaxPrice:      r.MaxPrice,
			ModalPrice:    r.ModalPrice,
			CommodityCode: dash(r.CommodityCode),
		})
	}

	return models.RecordsPage{Records: out, Total: total, Page: page, PageSize: pageSize}, nil
}

// Filters scans the data directory and reports which states, districts
// and commodities the datasets cover.
func (s *CSVPriceStore) Filters(ctx context.Context) (models.MarketFilters, error) {
	paths, err := filepath.Glob(filepath.Join(s.dataDir, "*.csv"))
	if err != nil {
		return models.MarketFilters{}, fmt.Errorf("scan data dir: %w", err)
	}

	topology := make(map[string][]string)
	commodities := make(map[string][]string)

	for _, path := range paths {
		name := filepath.Base(path)
		if name == sampleFile {
			continue
		}
		regionID := strings.TrimSuffix(name, ".csv")

		state, district := "Unknown", regionID
		if parts := strings.SplitN(regionID, "_", 2); len(parts) == 2 {
			state, district = parts[0], parts[1]
		}
		if !contains(topology[state], district) {
			topology[state] = append(topology[state], district)
		}

		rows, err := s.load(ctx, name)
		if err != nil {
			commodities[regionID] = []string{}
			continue
		}
		seen := make(map[string]bool)
		var names []string
		for _, r := range rows {
			if r.Commodity != "" && !seen[r.Commodity] {
				seen[r.Commodity] = true
				names = append(names, r.Commodity)
			}
		}
		sort.Strings(names)
		commodities[regionID] = names
	}

	for state := range topology {
		sort.Strings(topology[state])
	}

	return models.MarketFilters{Topology: topology, Commodities: commodities}, nil
}

// commodityRows loads the region file and keeps rows matching the
// commodity case-insensitively.
func (s *CSVPriceStore) commodityRows(ctx context.Context, region, commodity string) ([]models.MarketRecord, error) {
	rows, err := s.load(ctx, region+".csv")
	if err != nil {
		return nil, err
	}

	if commodity != "" {
		want := strings.ToLower(commodity)
		filtered := rows[:0:0]
		for _, r := range rows {
			if strings.ToLower(r.Commodity) == want {
				filtered = append(filtered, r)
			}
		}
		rows = filtered
	} else {
		// Callers sort in place; never hand out the cached slice itself.
		rows = append([]models.MarketRecord(nil), rows...)
	}

	if len(rows) == 0 {
		return nil, &domrepo.EmptyDataError{Region: region, Commodity: commodity, Reason: "No data for this commodity"}
	}
	return rows, nil
}

// load reads and parses one region file, memoized by filename.
func (s *CSVPriceStore) load(ctx context.Context, filename string) ([]models.MarketRecord, error) {
	if v, ok := s.cache.Get(filename); ok {
		return v.([]models.MarketRecord), nil
	}

	path := filepath.Join(s.dataDir, filename)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &domrepo.EmptyDataError{
				Region: strings.TrimSuffix(filename, ".csv"),
				Reason: fmt.Sprintf("Region file %s not found", filename),
			}
		}
		return nil, fmt.Errorf("open %s: %w", filename, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	raw, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}
	if len(raw) < 2 {
		return nil, &domrepo.EmptyDataError{
			Region: strings.TrimSuffix(filename, ".csv"),
			Reason: "dataset has no rows",
		}
	}

	cols := indexColumns(raw[0])

	// One date layout per file, so ambiguous day/month values cannot
	// flip between rows of the same export.
	dates := make([]string, 0, len(raw)-1)
	for _, row := range raw[1:] {
		dates = append(dates, cols.str(row, "Arrival_Date"))
	}
	layout := util.DetectArrivalLayout(dates)

	records := make([]models.MarketRecord, 0, len(raw)-1)
	for _, row := range raw[1:] {
		rec := models.MarketRecord{
			StateName:     cols.str(row, "State"),
			District:      cols.str(row, "District"),
			MarketName:    cols.str(row, "Market"),
			Commodity:     cols.str(row, "Commodity"),
			Variety:       cols.str(row, "Variety"),
			Grade:         cols.str(row, "Grade"),
			MinPrice:      util.ParseFloat(cols.str(row, "Min_Price")),
			MaxPrice:      util.ParseFloat(cols.str(row, "Max_Price")),
			ModalPrice:    util.ParseFloat(cols.str(row, "Modal_Price")),
			CommodityCode: cols.str(row, "Commodity_Code"),
		}
		if t, ok := util.ParseArrivalDateIn(layout, cols.str(row, "Arrival_Date")); ok {
			rec.ArrivalDate = t
		}
		records = append(records, rec)
	}

	s.cache.Set(filename, records, s.ttl)
	if s.log != nil {
		s.log.Debug("region dataset loaded",
			logger.String("file", filename),
			logger.Int("rows", len(records)))
	}
	return records, nil
}

// columnIndex maps canonical column names to positions in the header.
type columnIndex map[string]int

func indexColumns(header []string) columnIndex {
	idx := make(columnIndex, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if canonical, ok := columnAliases[key]; ok {
			idx[canonical] = i
		}
	}
	return idx
}

func (c columnIndex) str(row []string, name string) string {
	i, ok := c[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func median(vals []float64) float64 {
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func dash(v string) string {
	if v == "" {
		return "—"
	}
	return v
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
