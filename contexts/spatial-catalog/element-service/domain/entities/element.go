package entities

import (
	"errors"
	"strings"
	"time"
)

var ErrInvalidKeyComponent = errors.New("element key requires smartspace and id")

// ElementKey identifies a point of interest inside one smartspace.
type ElementKey struct {
	Smartspace string
	ID         string
}

func NewElementKey(smartspace string, id string) (ElementKey, error) {
	smartspace = strings.TrimSpace(smartspace)
	id = strings.TrimSpace(id)
	if smartspace == "" || id == "" {
		return ElementKey{}, ErrInvalidKeyComponent
	}
	return ElementKey{Smartspace: smartspace, ID: id}, nil
}

func (k ElementKey) IsZero() bool {
	return k.Smartspace == "" || k.ID == ""
}

func (k ElementKey) Equal(other ElementKey) bool {
	return k.Smartspace == other.Smartspace && k.ID == other.ID
}

func (k ElementKey) Less(other ElementKey) bool {
	if k.Smartspace != other.Smartspace {
		return k.Smartspace < other.Smartspace
	}
	return k.ID < other.ID
}

func (k ElementKey) String() string {
	return k.Smartspace + "#" + k.ID
}

// Location is a latitude/longitude pair.
type Location struct {
	Lat float64
	Lng float64
}

// Element is a physical or virtual point of interest. Created is
// server-assigned on first import and immutable afterwards. Attribute
// values are restricted to string, number, bool or nil.
type Element struct {
	Key               ElementKey
	Name              string
	Type              string
	Location          Location
	Created           time.Time
	Expired           bool
	CreatorSmartspace string
	CreatorEmail      string
	Attributes        map[string]any
}

// ElementPatch carries a partial element update; nil fields are left
// untouched. There is deliberately no Created or creator field here.
type ElementPatch struct {
	Name       *string
	Type       *string
	Location   *Location
	Expired    *bool
	Attributes map[string]any
}
