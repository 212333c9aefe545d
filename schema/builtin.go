package schema

import (
	"github.com/shopspring/decimal"

	"github.com/Memily89/smart-sales-memily89/constants"
)

// Built-in warehouse schemas. Column sets and rename tables follow the raw
// extracts produced by the store systems (TransactionID, SaleDate, ... in
// CamelCase) and normalise them to snake_case warehouse names.

func Customers() *Schema {
	return NewSchema(constants.TableCustomers,
		[]Column{
			{Name: "customer_id", Type: TypeInteger, Required: true, OnBadValue: PolicyReject},
			{Name: "name", Type: TypeString, Required: false, OnBadValue: PolicyNull},
			{Name: "region", Type: TypeString, Required: true, OnBadValue: PolicyReject},
			{Name: "join_date", Type: TypeDate, Required: false, OnBadValue: PolicyNull},
			{Name: "loyalty_points", Type: TypeInteger, Required: false, OnBadValue: PolicyNull},
		},
		map[string]string{
			"CustomerID":     "customer_id",
			"CustomerName":   "name",
			"Name":           "name",
			"Region":         "region",
			"CustomerRegion": "region",
			"JoinDate":       "join_date",
			"LoyaltyPoints":  "loyalty_points",
		})
}

func Products() *Schema {
	return NewSchema(constants.TableProducts,
		[]Column{
			{Name: "product_id", Type: TypeInteger, Required: true, OnBadValue: PolicyReject},
			{Name: "product_name", Type: TypeString, Required: true, OnBadValue: PolicyReject},
			{Name: "category", Type: TypeString, Required: true, OnBadValue: PolicyReject},
			{Name: "unit_price", Type: TypeDecimal, Required: true, OnBadValue: PolicyReject},
			{Name: "stock_quantity", Type: TypeInteger, Required: false, OnBadValue: PolicyNull},
		},
		map[string]string{
			"ProductID":     "product_id",
			"ProductName":   "product_name",
			"Category":      "category",
			"UnitPrice":     "unit_price",
			"unitprice":     "unit_price",
			"StockQuantity": "stock_quantity",
		})
}

func Sales() *Schema {
	return NewSchema(constants.TableSales,
		[]Column{
			{Name: "transaction_id", Type: TypeInteger, Required: true, OnBadValue: PolicyReject},
			{Name: "sale_date", Type: TypeDate, Required: true, OnBadValue: PolicyReject},
			{Name: "customer_id", Type: TypeInteger, Required: true, OnBadValue: PolicyReject},
			{Name: "product_id", Type: TypeInteger, Required: true, OnBadValue: PolicyReject},
			{Name: "store_id", Type: TypeInteger, Required: false, OnBadValue: PolicyNull},
			{Name: "campaign_id", Type: TypeInteger, Required: false, OnBadValue: PolicyNull},
			{Name: "sale_amount", Type: TypeDecimal, Required: true, OnBadValue: PolicyReject},
			{Name: "units", Type: TypeInteger, Required: false, OnBadValue: PolicyNull},
			// Missing discounts mean no discount and missing payment types are
			// bucketed, matching the data-prep conventions.
			{Name: "discount_percent", Type: TypeDecimal, Required: false, OnBadValue: PolicyNull, Fill: decimal.Zero},
			{Name: "payment_type", Type: TypeString, Required: false, OnBadValue: PolicyNull, Fill: "Unknown"},
		},
		map[string]string{
			"TransactionID":   "transaction_id",
			"SaleDate":        "sale_date",
			"CustomerID":      "customer_id",
			"ProductID":       "product_id",
			"StoreID":         "store_id",
			"CampaignID":      "campaign_id",
			"SaleAmount":      "sale_amount",
			"Units":           "units",
			"Quantity":        "units",
			"UnitsSold":       "units",
			"DiscountPercent": "discount_percent",
			"PaymentType":     "payment_type",
		})
}

// DedupeKeys maps each table onto the column used for duplicate suppression
// during transform (first record wins). Mirrors the dedupe rules applied by
// the data-prep step.
var DedupeKeys = map[string]string{
	constants.TableCustomers: "customer_id",
	constants.TableProducts:  "product_id",
	constants.TableSales:     "transaction_id",
}

// All returns the built-in schemas in load order. Customers and products load
// before sales so the warehouse never carries sales rows that reference
// tables from an older run.
func All() []*Schema {
	return []*Schema{Customers(), Products(), Sales()}
}

// ByTable looks up a built-in schema by table name.
func ByTable(table string) (*Schema, bool) {
	for _, s := range All() {
		if s.Table == table {
			return s, true
		}
	}
	return nil, false
}

// Definition is the serialisable form of a Schema used by `smart-sales
// schema --output yaml|json`.
type Definition struct {
	Table   string   `json:"table" yaml:"table"`
	Columns []Column `json:"columns" yaml:"columns"`
}

func (s *Schema) Definition() Definition {
	return Definition{Table: s.Table, Columns: s.Columns()}
}
