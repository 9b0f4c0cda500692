package types

type SuccessEnvelope struct {
	Data any `json:"data"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// List wraps collection payloads with their size.
type List[T any] struct {
	Count int `json:"count"`
	Items []T `json:"items"`
}

// NewList never returns a nil Items slice so clients always see an array.
func NewList[T any](items []T) List[T] {
	if items == nil {
		items = []T{}
	}
	return List[T]{Count: len(items), Items: items}
}
