package services

import (
	"strings"

	"smartspace/contexts/identity-access/user-service/domain/entities"
)

// UserIsValid reports whether an import candidate is well formed.
//
// The homeSmartspace check is a federation boundary, not a typo: an
// admin may only import users that belong to a foreign smartspace.
// Candidates from the hosting deployment's own smartspace are rejected.
func UserIsValid(user entities.User, homeSmartspace string) bool {
	if user.Key.IsZero() {
		return false
	}
	if strings.TrimSpace(user.Smartspace) == "" || strings.TrimSpace(user.Email) == "" {
		return false
	}
	if user.Smartspace != user.Key.Smartspace || user.Email != user.Key.Email {
		return false
	}
	if user.Smartspace == strings.TrimSpace(homeSmartspace) {
		return false
	}
	if strings.TrimSpace(user.Username) == "" || strings.TrimSpace(user.Avatar) == "" {
		return false
	}
	if _, ok := entities.ParseRole(string(user.Role)); !ok {
		return false
	}
	return user.Points >= 0
}
