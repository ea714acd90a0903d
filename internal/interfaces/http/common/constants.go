package common

import "time"

const (
	// MaxEvaluationRequestBody limits JSON request bodies for the evaluate endpoint.
	MaxEvaluationRequestBody = 10 << 10
	// RequestTimeout bounds the store work done for a single request.
	RequestTimeout = 5 * time.Second
)
