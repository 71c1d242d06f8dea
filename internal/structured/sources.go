package structured

import "github.com/susumOyaji/quotelens/internal/model"

// SchemaSource describes one known shape of the embedded data block: the
// key path to the price-board object and the physical key for each logical
// field. The table is read-only, process-lifetime configuration; ordering
// is significant, the first structural and value match wins.
type SchemaSource struct {
	Name        string
	Path        []string
	Keys        map[model.Field]string
	StripSuffix bool
}

// DefaultSources returns the schema table for the page layouts currently
// in production: equities, currency pairs, and domestic indices.
func DefaultSources() []SchemaSource {
	return []SchemaSource{
		{
			Name: "stocks-price-board",
			Path: []string{"mainStocksPriceBoard", "priceBoard"},
			Keys: map[model.Field]string{
				model.FieldCode:            "code",
				model.FieldName:            "name",
				model.FieldPrice:           "price",
				model.FieldPriceChange:     "priceChange",
				model.FieldPriceChangeRate: "priceChangeRate",
				model.FieldUpdateTime:      "priceDateTime",
			},
			StripSuffix: true,
		},
		{
			Name: "currency-price-board",
			Path: []string{"mainCurrencyPriceBoard", "currencyPrices"},
			Keys: map[model.Field]string{
				model.FieldCode:            "currencyPairCode",
				model.FieldName:            "currencyPairName",
				model.FieldPrice:           "bid",
				model.FieldPriceChange:     "priceChange",
				model.FieldPriceChangeRate: "priceChangeRate",
				model.FieldUpdateTime:      "priceUpdateTime",
			},
			StripSuffix: false,
		},
		{
			Name: "domestic-index-price-board",
			Path: []string{"mainDomesticIndexPriceBoard", "indexPrices"},
			Keys: map[model.Field]string{
				model.FieldCode:            "code",
				model.FieldName:            "name",
				model.FieldPrice:           "price",
				model.FieldPriceChange:     "changePrice",
				model.FieldPriceChangeRate: "changePriceRate",
				model.FieldUpdateTime:      "japanUpdateTime",
			},
			StripSuffix: false,
		},
	}
}
