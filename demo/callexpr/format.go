package callexpr

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
)

func literal(v any) string {
	if s, ok := v.(string); ok {
		return strconv.Quote(s)
	}
	return fmt.Sprint(v)
}

func sortedNames(named map[string]any) []string {
	return slices.Sorted(maps.Keys(named))
}
