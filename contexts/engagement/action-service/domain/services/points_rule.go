package services

// PointsRule maps a committed action type to the points its player
// earns. The exact formula lives outside the entity core; deployments
// inject their own rule.
type PointsRule func(actionType string) int64

// DefaultPointsRule is a flat per-type award.
func DefaultPointsRule(actionType string) int64 {
	switch actionType {
	case "checkin":
		return 5
	case "message":
		return 2
	default:
		return 1
	}
}
