package tui

import (
	"net"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// maxTrackedHosts bounds the limiter map; past it the map starts over.
const maxTrackedHosts = 4096

// hostLimiter hands out one token bucket per remote host.
type hostLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	every    rate.Limit
	burst    int
}

// newHostLimiter allows perSecond new sessions per host with the given burst.
// It returns nil when perSecond is not positive, which disables limiting.
func newHostLimiter(perSecond, burst int) *hostLimiter {
	if perSecond <= 0 {
		return nil
	}
	if burst <= 0 {
		burst = 1
	}
	return &hostLimiter{
		limiters: make(map[string]*rate.Limiter),
		every:    rate.Every(time.Second / time.Duration(perSecond)),
		burst:    burst,
	}
}

// limiter returns the bucket for host, creating it on first use.
func (h *hostLimiter) limiter(host string) *rate.Limiter {
	h.mu.Lock()
	defer h.mu.Unlock()

	if lim, ok := h.limiters[host]; ok {
		return lim
	}
	if len(h.limiters) >= maxTrackedHosts {
		h.limiters = make(map[string]*rate.Limiter)
	}
	lim := rate.NewLimiter(h.every, h.burst)
	h.limiters[host] = lim
	return lim
}

// allow reports whether host may open another session now. A nil limiter
// allows everything.
func (h *hostLimiter) allow(host string) bool {
	if h == nil {
		return true
	}
	return h.limiter(host).Allow()
}

// remoteHost strips the port from a remote address.
func remoteHost(addr net.Addr) string {
	if addr == nil {
		return ""
	}
	host, _, err := net.SplitHostPort(addr.String())
	if err != nil {
		return addr.String()
	}
	return host
}
