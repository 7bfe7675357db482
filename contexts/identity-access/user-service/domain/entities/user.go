package entities

import (
	"errors"
	"strings"
)

// Role is the permission level a smartspace user acts with.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleManager Role = "MANAGER"
	RolePlayer  Role = "PLAYER"
)

// ParseRole normalizes a wire value into a known role.
func ParseRole(v string) (Role, bool) {
	switch Role(strings.ToUpper(strings.TrimSpace(v))) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleManager:
		return RoleManager, true
	case RolePlayer:
		return RolePlayer, true
	default:
		return "", false
	}
}

var ErrInvalidKeyComponent = errors.New("user key requires smartspace and email")

// UserKey identifies a user inside one smartspace namespace.
type UserKey struct {
	Smartspace string
	Email      string
}

func NewUserKey(smartspace string, email string) (UserKey, error) {
	smartspace = strings.TrimSpace(smartspace)
	email = strings.TrimSpace(email)
	if smartspace == "" || email == "" {
		return UserKey{}, ErrInvalidKeyComponent
	}
	return UserKey{Smartspace: smartspace, Email: email}, nil
}

func (k UserKey) IsZero() bool {
	return k.Smartspace == "" || k.Email == ""
}

func (k UserKey) Equal(other UserKey) bool {
	return k.Smartspace == other.Smartspace && k.Email == other.Email
}

// Less orders keys by smartspace, then email. This is the default
// pagination sort order.
func (k UserKey) Less(other UserKey) bool {
	if k.Smartspace != other.Smartspace {
		return k.Smartspace < other.Smartspace
	}
	return k.Email < other.Email
}

// String renders the canonical lookup form used as map and row keys.
func (k UserKey) String() string {
	return k.Smartspace + "#" + k.Email
}

// User is a smartspace member. Smartspace and Email repeat the key
// components and must stay consistent with them.
type User struct {
	Key        UserKey
	Smartspace string
	Email      string
	Username   string
	Avatar     string
	Role       Role
	Points     int64
}

// UserPatch carries a partial profile update. Nil fields are left
// untouched by the merge. Points is deliberately absent: the only way
// to gain points is through committed actions.
type UserPatch struct {
	Username *string
	Avatar   *string
	Role     *Role
}
