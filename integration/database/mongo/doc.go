// Package mongo provides MongoDB client initialization and health checking.
//
// It wraps the official MongoDB Go driver with application-level connection
// retry optimized for cloud deployments, particularly MongoDB Atlas, where
// cold starts and brief network interruptions could otherwise fail
// application startup.
//
// Configuration is handled through environment variables via the Config
// struct; defaults are tuned for Atlas:
//
//	MONGODB_URL                 (required)
//	MONGODB_CONNECT_TIMEOUT     (default: 10s)
//	MONGODB_MAX_POOL_SIZE       (default: 100)
//	MONGODB_MIN_POOL_SIZE       (default: 1)
//	MONGODB_MAX_CONN_IDLE_TIME  (default: 300s)
//	MONGODB_RETRY_WRITES        (default: true)
//	MONGODB_RETRY_READS         (default: true)
//	MONGODB_RETRY_ATTEMPTS      (default: 3)
//	MONGODB_RETRY_INTERVAL      (default: 5s)
//
// New verifies the connection with a ping before returning, so a returned
// client is known usable. Healthcheck produces a closure suitable for
// HTTP health endpoints or Kubernetes probes.
package mongo
