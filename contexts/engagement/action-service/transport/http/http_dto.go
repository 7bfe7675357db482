package http

import "time"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ActionBoundary is the wire shape of a committed action; the action
// key and the referenced element and player travel as small maps,
// mirroring the historical smartspace JSON contract.
type ActionBoundary struct {
	ActionKey        map[string]string `json:"actionKey"`
	Type             string            `json:"type"`
	Created          time.Time         `json:"created"`
	Element          map[string]string `json:"element"`
	Player           map[string]string `json:"player"`
	ActionProperties map[string]any    `json:"actionProperties"`
}
