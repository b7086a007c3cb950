package types

// ErrorBody is the JSON shape of every failed response.
type ErrorBody struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// ItemsEnvelope wraps list endpoint results.
type ItemsEnvelope[T any] struct {
	Items []T `json:"items"`
}
