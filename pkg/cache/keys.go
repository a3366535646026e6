package cache

import (
	"fmt"
	"regexp"
	"time"
)

// DataType namespaces cache entries by the kind of value they hold.
type DataType string

const (
	DataTypeTransaction DataType = "transaction"
	DataTypePair        DataType = "pair"
	DataTypeToken       DataType = "token"
	DataTypeMap         DataType = "map"
)

// DefaultTTL is used by Store implementations when Set is called with a zero TTL.
const DefaultTTL = 600 * time.Second

var keySeparatorRegex = regexp.MustCompile(`[_|:,. ]`)

// UniversalKeyPrefix builds the "entity:chain:network:type:" prefix shared by
// every cache key. Separator characters inside the components are collapsed
// to "." so the prefix always has exactly four segments.
func UniversalKeyPrefix(entity, chain, network string, dataType DataType) string {
	return fmt.Sprintf("%s:%s:%s:%s:",
		normalizeKeyComponent(entity),
		normalizeKeyComponent(chain),
		normalizeKeyComponent(network),
		dataType,
	)
}

func normalizeKeyComponent(component string) string {
	return keySeparatorRegex.ReplaceAllString(component, ".")
}
