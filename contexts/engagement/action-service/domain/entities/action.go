package entities

import (
	"errors"
	"strings"
	"time"
)

var ErrInvalidKeyComponent = errors.New("action key requires smartspace and id")

// ActionKey identifies an action event inside one smartspace.
type ActionKey struct {
	Smartspace string
	ID         string
}

func NewActionKey(smartspace string, id string) (ActionKey, error) {
	smartspace = strings.TrimSpace(smartspace)
	id = strings.TrimSpace(id)
	if smartspace == "" || id == "" {
		return ActionKey{}, ErrInvalidKeyComponent
	}
	return ActionKey{Smartspace: smartspace, ID: id}, nil
}

func (k ActionKey) IsZero() bool {
	return k.Smartspace == "" || k.ID == ""
}

func (k ActionKey) Equal(other ActionKey) bool {
	return k.Smartspace == other.Smartspace && k.ID == other.ID
}

func (k ActionKey) Less(other ActionKey) bool {
	if k.Smartspace != other.Smartspace {
		return k.Smartspace < other.Smartspace
	}
	return k.ID < other.ID
}

func (k ActionKey) String() string {
	return k.Smartspace + "#" + k.ID
}

// ElementRef points at an element by key; the element itself is
// resolved on demand, never held as a live reference.
type ElementRef struct {
	Smartspace string
	ID         string
}

func (r ElementRef) IsZero() bool {
	return r.Smartspace == "" || r.ID == ""
}

// PlayerRef points at the acting user by key.
type PlayerRef struct {
	Smartspace string
	Email      string
}

func (r PlayerRef) IsZero() bool {
	return r.Smartspace == "" || r.Email == ""
}

// Action links a player to an element at a point in time. Actions are
// immutable once committed; there is no update path.
type Action struct {
	Key        ActionKey
	Type       string
	Created    time.Time
	Element    ElementRef
	Player     PlayerRef
	Attributes map[string]any
}
