package mongo

import "errors"

var (
	// ErrFailedToConnectToMongo is returned when all retry attempts are
	// exhausted without a usable connection.
	ErrFailedToConnectToMongo = errors.New("failed to connect to mongodb")

	// ErrHealthcheckFailed is returned when the health check ping fails.
	ErrHealthcheckFailed = errors.New("mongodb healthcheck failed")
)
