package olap

import (
	"database/sql"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/Memily89/smart-sales-memily89/file"
	"github.com/Memily89/smart-sales-memily89/logger"
	"github.com/Memily89/smart-sales-memily89/rdbms"
	"github.com/Memily89/smart-sales-memily89/stats"
)

// cubeQuery denormalizes the star schema in one pass. Sales rows keep their
// place even when the customer or product lookup misses.
const cubeQuery = `select s.sale_date, s.sale_amount, s.units,
	c.region, p.category, p.product_name, p.unit_price
from sales s
left join products p on p.product_id = s.product_id
left join customers c on c.customer_id = s.customer_id`

type CubeConfig struct {
	Log         logger.Logger
	Name        string
	Conn        rdbms.Connector
	StepWatcher *stats.StepWatcher
}

// CubeRow is one cell of the cube: a (region, category, item, quarter)
// dimension tuple and its aggregated measures.
type CubeRow struct {
	Region              string
	ProductCategory     string
	ProductItem         string
	SaleQuarter         Quarter
	UnitsSold           int64
	TotalCogs           decimal.Decimal
	TotalSalesRevenue   decimal.Decimal
	AverageGrossProfit  decimal.Decimal
	AverageSellingPrice decimal.Decimal
	SaleGrowthPct       decimal.Decimal
}

// CubeHeader is the fixed output column order.
func CubeHeader() []string {
	return []string{"region", "product_category", "product_item", "sale_quarter",
		"units_sold", "total_cogs", "total_sales_revenue",
		"average_gross_profit", "average_selling_price", "sale_growth_pct"}
}

// CSVRecord renders the row in CubeHeader order. Money measures are fixed to
// two decimal places so the output is reproducible byte for byte.
func (r CubeRow) CSVRecord() []string {
	return []string{
		r.Region,
		r.ProductCategory,
		r.ProductItem,
		r.SaleQuarter.String(),
		decimal.NewFromInt(r.UnitsSold).String(),
		r.TotalCogs.StringFixed(2),
		r.TotalSalesRevenue.StringFixed(2),
		r.AverageGrossProfit.StringFixed(2),
		r.AverageSellingPrice.StringFixed(2),
		r.SaleGrowthPct.StringFixed(2),
	}
}

// normalizeRegion canonicalises a source region value: surrounding space is
// trimmed, anything from the first '_' or '-' onwards is cut (so "west_coast"
// and "west-2" both mean "west") and the remainder is title-cased word by
// word. Returns "" when nothing usable remains.
func normalizeRegion(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.IndexAny(s, "_-"); idx >= 0 {
		s = s[:idx]
	}
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

type cubeKey struct {
	region   string
	category string
	item     string
	quarter  Quarter
}

type cubeAgg struct {
	units   int64
	cogs    decimal.Decimal
	revenue decimal.Decimal
}

// BuildCube aggregates the warehouse into cube rows sorted by region,
// product_category, product_item and sale_quarter.
// Sales without a units value contribute zero units and zero cost of goods.
// Region values are normalised before grouping so source variants of the
// same region land in one cube row. Sales whose product or customer lookup
// misses carry null dimension values and are excluded from the cube, the way
// a group-by drops null keys; the exclusion count is logged. Growth is the
// revenue % change against the group's prior observed quarter, 0 for the
// first observed quarter and when the prior revenue is 0.
func BuildCube(cfg *CubeConfig) ([]CubeRow, error) {
	rowCount := int64(0)
	if cfg.StepWatcher != nil {
		cfg.StepWatcher.StartWatching(&rowCount)
		defer cfg.StepWatcher.StopWatching()
	}
	cfg.Log.Info(cfg.Name, " is running")
	rows, err := cfg.Conn.Queryx(cubeQuery)
	if err != nil {
		return nil, errors.Wrap(err, "cube query")
	}
	defer rows.Close()
	aggs := make(map[cubeKey]*cubeAgg)
	excluded := 0
	for rows.Next() {
		var (
			saleDate   string
			saleAmount sql.NullFloat64
			units      sql.NullInt64
			region     sql.NullString
			category   sql.NullString
			item       sql.NullString
			unitPrice  sql.NullFloat64
		)
		if err = rows.Scan(&saleDate, &saleAmount, &units, &region, &category, &item, &unitPrice); err != nil {
			return nil, errors.Wrap(err, "cube scan")
		}
		atomic.AddInt64(&rowCount, 1)
		if !region.Valid || !category.Valid || !item.Valid {
			excluded++
			continue
		}
		regionName := normalizeRegion(region.String)
		if regionName == "" {
			excluded++
			continue
		}
		quarter, err := QuarterOfISODate(saleDate)
		if err != nil {
			return nil, errors.Wrap(err, "cube quarter")
		}
		key := cubeKey{region: regionName, category: category.String, item: item.String, quarter: quarter}
		agg, ok := aggs[key]
		if !ok {
			agg = &cubeAgg{}
			aggs[key] = agg
		}
		n := int64(0) // a sale with no units recorded moved no countable stock.
		if units.Valid {
			n = units.Int64
		}
		agg.units += n
		if unitPrice.Valid {
			agg.cogs = agg.cogs.Add(decimal.NewFromFloat(unitPrice.Float64).Mul(decimal.NewFromInt(n)))
		}
		if saleAmount.Valid {
			agg.revenue = agg.revenue.Add(decimal.NewFromFloat(saleAmount.Float64))
		}
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "cube rows")
	}
	if excluded > 0 {
		cfg.Log.Warn(cfg.Name, " excluded ", excluded, " sales with missing dimension values")
	}
	keys := make([]cubeKey, 0, len(aggs))
	for k := range aggs {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.region != b.region {
			return a.region < b.region
		}
		if a.category != b.category {
			return a.category < b.category
		}
		if a.item != b.item {
			return a.item < b.item
		}
		return a.quarter.Before(b.quarter)
	})
	hundred := decimal.NewFromInt(100)
	out := make([]CubeRow, 0, len(keys))
	var prevGroup cubeKey
	var prevRevenue decimal.Decimal
	havePrev := false
	for _, k := range keys {
		agg := aggs[k]
		row := CubeRow{
			Region:            k.region,
			ProductCategory:   k.category,
			ProductItem:       k.item,
			SaleQuarter:       k.quarter,
			UnitsSold:         agg.units,
			TotalCogs:         agg.cogs.Round(2),
			TotalSalesRevenue: agg.revenue.Round(2),
		}
		if agg.units > 0 {
			unitCount := decimal.NewFromInt(agg.units)
			row.AverageGrossProfit = agg.revenue.Sub(agg.cogs).Div(unitCount).Round(2)
			row.AverageSellingPrice = agg.revenue.Div(unitCount).Round(2)
		}
		sameGroup := havePrev &&
			prevGroup.region == k.region && prevGroup.category == k.category && prevGroup.item == k.item
		if sameGroup && prevRevenue.IsPositive() {
			row.SaleGrowthPct = agg.revenue.Sub(prevRevenue).Div(prevRevenue).Mul(hundred).Round(2)
		}
		prevGroup, prevRevenue, havePrev = k, agg.revenue, true
		out = append(out, row)
	}
	cfg.Log.Info(cfg.Name, " aggregated ", len(out), " cube rows from ", rowCount, " sales")
	return out, nil
}

// WriteCubeCSV writes the cube to fileName and returns the resolved name
// (gzip appends '.gz').
func WriteCubeCSV(log logger.Logger, rows []CubeRow, fileName string, useGzip bool) (string, error) {
	out, err := file.NewCSVFileOutput(log, fileName, useGzip)
	if err != nil {
		return "", errors.Wrap(err, "create cube CSV")
	}
	defer out.Cleanup()
	out.SetHeader(CubeHeader())
	for _, row := range rows {
		out.MustWriteToCSV(row.CSVRecord())
	}
	return out.FileName(), nil
}

// WriteCubeXLSX writes the cube as a spreadsheet for direct BI consumption.
func WriteCubeXLSX(rows []CubeRow, fileName string) error {
	if dir := filepath.Dir(fileName); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrap(err, "create cube XLSX dir")
		}
	}
	f := excelize.NewFile()
	defer f.Close()
	const sheet = "Sheet1"
	for i, h := range CubeHeader() {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	for i, row := range rows {
		values := []interface{}{
			row.Region, row.ProductCategory, row.ProductItem, row.SaleQuarter.String(),
			row.UnitsSold,
			row.TotalCogs.InexactFloat64(),
			row.TotalSalesRevenue.InexactFloat64(),
			row.AverageGrossProfit.InexactFloat64(),
			row.AverageSellingPrice.InexactFloat64(),
			row.SaleGrowthPct.InexactFloat64(),
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			f.SetCellValue(sheet, cell, v)
		}
	}
	return errors.Wrap(f.SaveAs(fileName), "save cube XLSX")
}
