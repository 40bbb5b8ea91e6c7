package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// Check probes a single dependency.
type Check func(ctx context.Context) error

// HealthHandler reports whether backing services are reachable.
type HealthHandler struct {
	checks  map[string]Check
	timeout time.Duration
}

// NewHealthHandler creates a health handler running checks concurrently.
func NewHealthHandler(checks map[string]Check, timeout time.Duration) *HealthHandler {
	return &HealthHandler{checks: checks, timeout: timeout}
}

// Healthz runs every check and responds 200 when all pass, 503 otherwise.
func (h *HealthHandler) Healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}

	g, gctx := errgroup.WithContext(ctx)
	out := make([]error, len(names))
	for i, name := range names {
		i := i
		check := h.checks[name]
		g.Go(func() error {
			out[i] = check(gctx)
			return nil
		})
	}
	_ = g.Wait()

	status := http.StatusOK
	results := make(map[string]string, len(names))
	for i, name := range names {
		if out[i] != nil {
			status = http.StatusServiceUnavailable
			results[name] = out[i].Error()
			continue
		}
		results[name] = "ok"
	}
	c.JSON(status, gin.H{"status": http.StatusText(status), "checks": results})
}
