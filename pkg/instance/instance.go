package instance

import (
	"os"

	"github.com/angelmondragon/shopbalance-backend/pkg/env"
)

// GetID identifies the running process in logs and lock ownership. It prefers
// WORKER_ID, then the platform dyno name, then the hostname.
func GetID() string {
	if id := env.Get("WORKER_ID", env.Get("DYNO", "")); id != "" {
		return id
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return "worker-0"
}
