package record

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Leaf is one scalar reached by flattening, addressed by its synthetic path.
type Leaf struct {
	Path  string
	Value string
}

// Flatten reduces a record to its scalar leaves in depth-first order: object
// members in document order, array elements by index. Path segments are
// joined with underscores, array elements contribute their index as a
// segment. Every leaf is reachable and no two leaves share a path.
func Flatten(v Record) []Leaf {
	var leaves []Leaf
	flattenInto(&leaves, v, "")
	return leaves
}

func flattenInto(leaves *[]Leaf, v any, prefix string) {
	switch val := v.(type) {
	case Object:
		for _, m := range val {
			flattenInto(leaves, m.Value, prefix+m.Key+"_")
		}
	case []any:
		for i, elem := range val {
			flattenInto(leaves, elem, prefix+strconv.Itoa(i)+"_")
		}
	default:
		*leaves = append(*leaves, Leaf{
			Path:  strings.TrimSuffix(prefix, "_"),
			Value: Stringify(val),
		})
	}
}

// EntryToString joins the leaf values of a record with single spaces, in
// flattening order, discarding paths. Any record yields a valid, possibly
// empty, string.
func EntryToString(v Record) string {
	leaves := Flatten(v)
	parts := make([]string, 0, len(leaves))
	for _, leaf := range leaves {
		parts = append(parts, leaf.Value)
	}
	return strings.Join(parts, " ")
}

// Stringify converts a scalar to its canonical text form: numbers keep their
// decimal representation, booleans become "true"/"false", nil becomes the
// empty string.
func Stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
