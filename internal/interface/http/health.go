package http

import "context"

// probeChecker aggregates named dependency probes into one HealthStatus.
type probeChecker struct {
	probes map[string]func(ctx context.Context) error

	// critical marks probes that must pass for readiness. Non-critical
	// probes (the cache) degrade the status message only.
	critical map[string]bool
}

// NewProbeChecker builds a HealthChecker from named probe functions.
// Probes listed in criticalNames gate readiness; the rest are advisory.
func NewProbeChecker(probes map[string]func(ctx context.Context) error, criticalNames ...string) HealthChecker {
	critical := make(map[string]bool, len(criticalNames))
	for _, name := range criticalNames {
		critical[name] = true
	}
	return &probeChecker{probes: probes, critical: critical}
}

// Check runs every probe and aggregates the results.
func (c *probeChecker) Check(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Healthy:    true,
		Ready:      true,
		Components: make(map[string]string, len(c.probes)),
	}

	for name, probe := range c.probes {
		if err := probe(ctx); err != nil {
			status.Components[name] = err.Error()
			if c.critical[name] {
				status.Healthy = false
				status.Ready = false
				status.Message = name + " unavailable"
			} else if status.Message == "" {
				status.Message = name + " degraded"
			}
			continue
		}
		status.Components[name] = "ok"
	}

	return status
}
