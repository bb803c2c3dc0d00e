package health

import (
	"context"
	"time"

	"stock-backend/internal/cache"
)

// Pinger is satisfied by both the pgx pool and the in-memory store.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthChecker struct {
	store Pinger
}

type HealthStatus struct {
	Status string      `json:"status"`
	Store  StoreHealth `json:"store"`
	Cache  string      `json:"cache"`
}

type StoreHealth struct {
	Status       string `json:"status"`
	ResponseTime int64  `json:"response_time_ms"`
}

func NewHealthChecker(store Pinger) *HealthChecker {
	return &HealthChecker{store: store}
}

// CheckBasic reports liveness. Redis being down is reported but does not
// make the service unhealthy, since every cache path degrades to the store.
func (h *HealthChecker) CheckBasic() HealthStatus {
	storeHealth := h.checkStore()

	status := "healthy"
	if storeHealth.Status != "healthy" {
		status = "unhealthy"
	}

	cacheStatus := "healthy"
	if !cache.IsHealthy() {
		cacheStatus = "unavailable"
	}

	return HealthStatus{
		Status: status,
		Store:  storeHealth,
		Cache:  cacheStatus,
	}
}

// Ready reports whether the backing store answers.
func (h *HealthChecker) Ready() bool {
	return h.checkStore().Status == "healthy"
}

func (h *HealthChecker) checkStore() StoreHealth {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	start := time.Now()
	err := h.store.Ping(ctx)
	responseTime := time.Since(start).Milliseconds()

	status := "healthy"
	if err != nil {
		status = "unhealthy"
	}

	return StoreHealth{
		Status:       status,
		ResponseTime: responseTime,
	}
}
