package structured

import (
	"strings"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/susumOyaji/quotelens/internal/model"
)

// Locate tries each schema source in priority order against the parsed
// tree. On the first source whose code field matches the (normalized)
// requested code it extracts every mapped field from that object and
// returns a record tagged SourceSchema. ok=false means "no match", which
// is a fallback signal rather than an error.
func Locate(tree gjson.Result, code string, sources []SchemaSource) (model.QuoteRecord, bool) {
	for _, src := range sources {
		obj, found := descend(tree, src.Path)
		if !found || !obj.IsObject() {
			continue
		}
		foundCode := strings.TrimSpace(obj.Get(src.Keys[model.FieldCode]).String())
		if foundCode == "" || foundCode != NormalizeCode(code, src.StripSuffix) {
			continue
		}
		zap.L().Debug("structured: schema source matched",
			zap.String("source", src.Name),
			zap.String("code", code),
		)
		return recordFrom(obj, code, src.Keys, model.SourceSchema), true
	}
	return model.QuoteRecord{}, false
}

// descend follows a fixed key path from the tree root.
func descend(tree gjson.Result, path []string) (gjson.Result, bool) {
	cur := tree
	for _, key := range path {
		cur = cur.Get(key)
		if !cur.Exists() {
			return gjson.Result{}, false
		}
	}
	return cur, true
}

// recordFrom extracts all mapped fields from obj, substituting
// NotAvailable for absent keys. The requested code is kept verbatim as
// the record identity.
func recordFrom(obj gjson.Result, code string, keys map[model.Field]string, source model.Source) model.QuoteRecord {
	get := func(f model.Field) string {
		v := obj.Get(keys[f])
		if !v.Exists() {
			return model.NotAvailable
		}
		return fieldText(v)
	}
	return model.QuoteRecord{
		Code:            code,
		Name:            get(model.FieldName),
		Price:           get(model.FieldPrice),
		PriceChange:     get(model.FieldPriceChange),
		PriceChangeRate: get(model.FieldPriceChangeRate),
		UpdateTime:      get(model.FieldUpdateTime),
		Status:          model.StatusOK,
		Source:          source,
	}
}
