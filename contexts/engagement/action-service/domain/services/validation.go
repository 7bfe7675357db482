package services

import (
	"math"
	"strings"

	"smartspace/contexts/engagement/action-service/domain/entities"
)

// ActionIsValid reports whether an import candidate is syntactically
// sound. Whether the referenced element and player actually exist is
// the application layer's referential check, not a concern here.
func ActionIsValid(action entities.Action) bool {
	if action.Key.IsZero() {
		return false
	}
	if strings.TrimSpace(action.Type) == "" {
		return false
	}
	if action.Element.IsZero() || action.Player.IsZero() {
		return false
	}
	return AttributesAreValid(action.Attributes)
}

// AttributesAreValid keeps attribute values inside the closed variant
// set string | number | bool | null.
func AttributesAreValid(attributes map[string]any) bool {
	for _, value := range attributes {
		switch v := value.(type) {
		case nil, string, bool, int, int32, int64:
		case float64:
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		case float32:
			if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
				return false
			}
		default:
			return false
		}
	}
	return true
}
