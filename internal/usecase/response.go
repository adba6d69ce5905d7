package usecase

// Response is the uniform envelope every use case returns. Exactly one
// of Data and Error is meaningful depending on Success; internal failure
// types never cross this boundary.
type Response[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func ok[T any](data T) Response[T] {
	return Response[T]{Success: true, Data: data}
}

func fail[T any](message string) Response[T] {
	return Response[T]{Success: false, Error: message}
}
