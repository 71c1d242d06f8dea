package structured

import (
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/susumOyaji/quotelens/internal/model"
)

// FoundObject is one hit of the key-set search: the object itself plus the
// path of keys and array indices that reaches it from the root. Paths are
// copied, never borrowed from traversal state.
type FoundObject struct {
	Path []string
	Obj  gjson.Result
}

// genericKeys is the key set a candidate object must contain for the
// generic fallback search.
var genericKeys = []string{"code", "name"}

// genericFieldKeys maps logical fields to the common physical key names
// used when no predefined schema matched.
var genericFieldKeys = map[model.Field]string{
	model.FieldCode:            "code",
	model.FieldName:            "name",
	model.FieldPrice:           "price",
	model.FieldPriceChange:     "priceChange",
	model.FieldPriceChangeRate: "priceChangeRate",
	model.FieldUpdateTime:      "priceDateTime",
}

// FindObjectPaths walks the whole tree, objects and arrays alike, and
// collects every object that contains all required keys. Traversal is
// depth-first in document order and uses an explicit work list so
// adversarially deep payloads cannot exhaust the call stack. Results
// preserve discovery order and are not filtered by value.
func FindObjectPaths(tree gjson.Result, requiredKeys []string) []FoundObject {
	type frame struct {
		node gjson.Result
		path []string
	}

	var found []FoundObject
	stack := []frame{{node: tree}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.node.IsObject() {
			if hasAllKeys(f.node, requiredKeys) {
				found = append(found, FoundObject{Path: f.path, Obj: f.node})
			}
		} else if !f.node.IsArray() {
			continue
		}

		// Children are pushed in reverse so the LIFO pop order matches
		// document order.
		var children []frame
		idx := 0
		f.node.ForEach(func(key, value gjson.Result) bool {
			step := key.Str
			if f.node.IsArray() {
				step = strconv.Itoa(idx)
			}
			idx++
			if !value.IsObject() && !value.IsArray() {
				return true
			}
			child := make([]string, len(f.path), len(f.path)+1)
			copy(child, f.path)
			children = append(children, frame{node: value, path: append(child, step)})
			return true
		})
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}

	return found
}

func hasAllKeys(obj gjson.Result, keys []string) bool {
	for _, k := range keys {
		if !obj.Get(k).Exists() {
			return false
		}
	}
	return true
}

// LocateGeneric runs the key-set search and picks the first found object
// whose code value matches the suffix-stripped requested code, extracting
// fields through the generic mapping. ok=false means no object matched.
func LocateGeneric(tree gjson.Result, code string) (model.QuoteRecord, bool) {
	want := NormalizeCode(code, true)
	for _, hit := range FindObjectPaths(tree, genericKeys) {
		foundCode := strings.TrimSpace(hit.Obj.Get("code").String())
		if foundCode != want {
			continue
		}
		zap.L().Debug("structured: generic key-set search matched",
			zap.String("code", code),
			zap.Strings("path", hit.Path),
		)
		return recordFrom(hit.Obj, code, genericFieldKeys, model.SourceGeneric), true
	}
	return model.QuoteRecord{}, false
}
