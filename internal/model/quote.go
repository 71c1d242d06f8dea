// Package model defines the value objects shared across the extraction
// pipeline. Everything here is created, consumed, and discarded within a
// single extraction request.
package model

// Field identifies one logical quote field.
type Field string

const (
	FieldCode            Field = "code"
	FieldName            Field = "name"
	FieldPrice           Field = "price"
	FieldPriceChange     Field = "price_change"
	FieldPriceChangeRate Field = "price_change_rate"
	FieldUpdateTime      Field = "update_time"
)

// AllFields lists every logical field in canonical order. Iteration over
// field sets always follows this order so output is deterministic.
var AllFields = []Field{
	FieldCode,
	FieldName,
	FieldPrice,
	FieldPriceChange,
	FieldPriceChangeRate,
	FieldUpdateTime,
}

// Status reports how complete an extraction attempt was.
type Status string

const (
	StatusOK      Status = "ok"
	StatusPartial Status = "partial"
	StatusFailed  Status = "failed"
)

// Source tags which strategy produced a record.
type Source string

const (
	SourceSchema  Source = "schema"
	SourceGeneric Source = "generic"
	SourceDOM     Source = "dom"
)

// NotAvailable is substituted for any field the winning strategy could not
// resolve. Source formatting of resolved fields is preserved verbatim.
const NotAvailable = "N/A"

// QuoteRecord is the normalized result of one extraction request.
// Records are immutable after construction; a failed attempt is replaced
// by a new record, never mutated in place.
type QuoteRecord struct {
	Code            string `json:"code"`
	Name            string `json:"name"`
	Price           string `json:"price"`
	PriceChange     string `json:"price_change"`
	PriceChangeRate string `json:"price_change_rate"`
	UpdateTime      string `json:"update_time"`
	Status          Status `json:"status"`
	Source          Source `json:"source"`
}

// FieldValue returns the value of the named logical field.
func (q QuoteRecord) FieldValue(f Field) string {
	switch f {
	case FieldCode:
		return q.Code
	case FieldName:
		return q.Name
	case FieldPrice:
		return q.Price
	case FieldPriceChange:
		return q.PriceChange
	case FieldPriceChangeRate:
		return q.PriceChangeRate
	case FieldUpdateTime:
		return q.UpdateTime
	}
	return ""
}

// Select returns a copy of the record with every field not in keep
// blanked out. An empty keep list returns the record unchanged.
func (q QuoteRecord) Select(keep []Field) QuoteRecord {
	if len(keep) == 0 {
		return q
	}
	kept := make(map[Field]bool, len(keep))
	for _, f := range keep {
		kept[f] = true
	}
	out := q
	if !kept[FieldCode] {
		out.Code = ""
	}
	if !kept[FieldName] {
		out.Name = ""
	}
	if !kept[FieldPrice] {
		out.Price = ""
	}
	if !kept[FieldPriceChange] {
		out.PriceChange = ""
	}
	if !kept[FieldPriceChangeRate] {
		out.PriceChangeRate = ""
	}
	if !kept[FieldUpdateTime] {
		out.UpdateTime = ""
	}
	return out
}
