package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// UserBoundary is the wire shape of a smartspace user. The key travels
// as a small map, mirroring the historical smartspace JSON contract.
type UserBoundary struct {
	Key      map[string]string `json:"key"`
	Username string            `json:"username"`
	Avatar   string            `json:"avatar"`
	Role     string            `json:"role"`
	Points   int64             `json:"points"`
}

type UpdateUserRequest struct {
	Username *string `json:"username,omitempty"`
	Avatar   *string `json:"avatar,omitempty"`
	Role     *string `json:"role,omitempty"`
}
