package http

import "time"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ElementBoundary is the wire shape of a catalog element; key and
// creator travel as small maps, mirroring the historical smartspace
// JSON contract.
type ElementBoundary struct {
	Key               map[string]string `json:"key"`
	ElementType       string            `json:"elementType"`
	Name              string            `json:"name"`
	Expired           bool              `json:"expired"`
	Created           time.Time         `json:"created"`
	Creator           map[string]string `json:"creator"`
	LatLng            LatLng            `json:"latlng"`
	ElementProperties map[string]any    `json:"elementProperties"`
}

type UpdateElementRequest struct {
	Name              *string        `json:"name,omitempty"`
	ElementType       *string        `json:"elementType,omitempty"`
	LatLng            *LatLng        `json:"latlng,omitempty"`
	Expired           *bool          `json:"expired,omitempty"`
	ElementProperties map[string]any `json:"elementProperties,omitempty"`
}
