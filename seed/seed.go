package seed

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/jszwec/csvutil"
	"github.com/pkg/errors"

	"github.com/Memily89/smart-sales-memily89/constants"
	"github.com/Memily89/smart-sales-memily89/logger"
)

// Config controls demo data generation. A non-zero Seed makes the output
// reproducible draw for draw.
type Config struct {
	Log       logger.Logger
	Dir       string
	Seed      uint64
	Customers int
	Products  int
	Sales     int
}

var regions = []string{"North", "South", "East", "West"}
var categories = []string{"Widgets", "Gadgets", "Gizmos", "Doohickeys"}
var paymentTypes = []string{"card", "cash", "transfer", "voucher"}

type customerRow struct {
	CustomerID    int    `csv:"CustomerID"`
	Name          string `csv:"Name"`
	Region        string `csv:"Region"`
	JoinDate      string `csv:"JoinDate"`
	LoyaltyPoints string `csv:"LoyaltyPoints"`
}

type productRow struct {
	ProductID     int    `csv:"ProductID"`
	ProductName   string `csv:"ProductName"`
	Category      string `csv:"Category"`
	UnitPrice     string `csv:"UnitPrice"`
	StockQuantity int    `csv:"StockQuantity"`
}

type saleRow struct {
	TransactionID   int    `csv:"TransactionID"`
	SaleDate        string `csv:"SaleDate"`
	CustomerID      int    `csv:"CustomerID"`
	ProductID       int    `csv:"ProductID"`
	StoreID         int    `csv:"StoreID"`
	CampaignID      string `csv:"CampaignID"`
	SaleAmount      string `csv:"SaleAmount"`
	DiscountPercent string `csv:"DiscountPercent"`
	PaymentType     string `csv:"PaymentType"`
	Units           string `csv:"Units"`
}

// Generate writes customers.csv, products.csv and sales.csv into cfg.Dir and
// returns the file names. The data is deliberately imperfect in the ways the
// pipeline is built to clean: a few duplicate transactions, blank units and
// out-of-range discounts.
func Generate(cfg *Config) ([]string, error) {
	if cfg.Customers <= 0 {
		cfg.Customers = 50
	}
	if cfg.Products <= 0 {
		cfg.Products = 20
	}
	if cfg.Sales <= 0 {
		cfg.Sales = 500
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	faker := gofakeit.New(seed)
	if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
		return nil, errors.Wrap(err, "create seed directory")
	}
	cfg.Log.Info("Seeding demo data into ", cfg.Dir,
		" (seed=", seed, ", customers=", cfg.Customers, ", products=", cfg.Products, ", sales=", cfg.Sales, ")")

	prices := make([]float64, cfg.Products)
	for i := range prices {
		prices[i] = faker.Price(1, 200)
	}

	customers := make([]interface{}, 0, cfg.Customers)
	for i := 1; i <= cfg.Customers; i++ {
		row := customerRow{
			CustomerID: i,
			Name:       faker.Name(),
			Region:     faker.RandomString(regions),
			JoinDate:   faker.DateRange(date(2020, 1, 1), date(2024, 12, 31)).Format(constants.DateFormatISO),
		}
		if faker.Number(0, 9) > 0 { // the odd customer has no loyalty balance.
			row.LoyaltyPoints = strconv.Itoa(faker.Number(0, 5000))
		}
		customers = append(customers, row)
	}

	products := make([]interface{}, 0, cfg.Products)
	for i := 1; i <= cfg.Products; i++ {
		products = append(products, productRow{
			ProductID:     i,
			ProductName:   faker.ProductName(),
			Category:      faker.RandomString(categories),
			UnitPrice:     money(prices[i-1]),
			StockQuantity: faker.Number(0, 1000),
		})
	}

	sales := make([]interface{}, 0, cfg.Sales)
	for i := 1; i <= cfg.Sales; i++ {
		productID := faker.Number(1, cfg.Products)
		units := faker.Number(1, 10)
		amount := prices[productID-1] * float64(units)
		row := saleRow{
			TransactionID: i,
			SaleDate:      faker.DateRange(date(2024, 1, 1), date(2025, 12, 31)).Format(constants.DateFormatISO),
			CustomerID:    faker.Number(1, cfg.Customers),
			ProductID:     productID,
			StoreID:       faker.Number(1, 12),
			SaleAmount:    money(amount),
			PaymentType:   faker.RandomString(paymentTypes),
			Units:         strconv.Itoa(units),
		}
		if faker.Number(0, 4) == 0 { // some sales belong to a campaign.
			row.CampaignID = fmt.Sprintf("CMP-%03d", faker.Number(1, 30))
		}
		switch faker.Number(0, 49) {
		case 0: // duplicate transaction id for the dedupe stage to drop.
			row.TransactionID = maxInt(1, i-1)
		case 1: // blank units for the null-coercion path.
			row.Units = ""
		case 2: // out-of-range discount for the filter rules to drop.
			row.DiscountPercent = "150"
		default:
			if faker.Number(0, 2) == 0 {
				row.DiscountPercent = strconv.Itoa(faker.Number(0, 60))
			}
		}
		sales = append(sales, row)
	}

	var files []string
	for _, set := range []struct {
		table string
		rows  []interface{}
	}{
		{constants.TableCustomers, customers},
		{constants.TableProducts, products},
		{constants.TableSales, sales},
	} {
		name := filepath.Join(cfg.Dir, set.table+constants.RawFileSuffix)
		if err := writeCsv(name, set.rows); err != nil {
			return nil, errors.Wrapf(err, "seed %v", set.table)
		}
		cfg.Log.Info("Wrote ", len(set.rows), " rows to ", name)
		files = append(files, name)
	}
	return files, nil
}

func writeCsv(fileName string, rows []interface{}) error {
	f, err := os.Create(fileName)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	enc := csvutil.NewEncoder(w)
	for _, row := range rows {
		if err = enc.Encode(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
