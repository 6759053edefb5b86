package domain

type CtxKey string

const (
	KeyRequestID      CtxKey = "RequestID"
	KeyIdempotencyKey CtxKey = "IdempotencyKey"
)
