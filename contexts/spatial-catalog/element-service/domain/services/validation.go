package services

import (
	"math"
	"strings"

	"smartspace/contexts/spatial-catalog/element-service/domain/entities"
)

// ElementIsValid reports whether an import candidate is well formed.
func ElementIsValid(element entities.Element) bool {
	if element.Key.IsZero() {
		return false
	}
	if strings.TrimSpace(element.Name) == "" || strings.TrimSpace(element.Type) == "" {
		return false
	}
	if !coordinateIsFinite(element.Location.Lat) || !coordinateIsFinite(element.Location.Lng) {
		return false
	}
	return AttributesAreValid(element.Attributes)
}

// AttributesAreValid keeps the open attribute map inside a closed
// variant set so equality and serialization stay well defined.
func AttributesAreValid(attributes map[string]any) bool {
	for _, value := range attributes {
		switch v := value.(type) {
		case nil, string, bool, int, int32, int64:
		case float64:
			if !coordinateIsFinite(v) {
				return false
			}
		case float32:
			if !coordinateIsFinite(float64(v)) {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func coordinateIsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
