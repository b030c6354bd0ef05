package netstatus

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"storefront-orders/internal/interfaces"
	"storefront-orders/internal/logger"
	"storefront-orders/internal/metrics"
)

var _ interfaces.NetworkStatus = (*Monitor)(nil)

// Monitor tracks whether the order log host is reachable. It starts online
// and flips only after a probe completes.
type Monitor struct {
	probeURL string
	interval time.Duration
	client   *http.Client
	log      *logger.Logger

	online atomic.Bool

	mu   sync.Mutex
	subs map[int]chan bool
	next int
}

func NewMonitor(probeURL string, interval time.Duration, log *logger.Logger) *Monitor {
	m := &Monitor{
		probeURL: probeURL,
		interval: interval,
		client:   &http.Client{Timeout: 5 * time.Second},
		log:      log.WithComponent("netstatus"),
		subs:     make(map[int]chan bool),
	}
	m.online.Store(true)
	metrics.NetworkOnline.Set(1)
	return m
}

func (m *Monitor) Online() bool {
	return m.online.Load()
}

// Subscribe returns a channel receiving every online/offline transition and a
// function that cancels the subscription. Slow subscribers miss transitions.
func (m *Monitor) Subscribe() (<-chan bool, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.next
	m.next++
	ch := make(chan bool, 1)
	m.subs[id] = ch

	return ch, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if c, ok := m.subs[id]; ok {
			delete(m.subs, id)
			close(c)
		}
	}
}

// Set records the reachability and notifies subscribers on a transition.
func (m *Monitor) Set(online bool) {
	if m.online.Swap(online) == online {
		return
	}
	if online {
		metrics.NetworkOnline.Set(1)
		m.log.Info("network is back online")
	} else {
		metrics.NetworkOnline.Set(0)
		m.log.Warn("network went offline", "probe_url", m.probeURL)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ch := range m.subs {
		select {
		case ch <- online:
		default:
		}
	}
}

// Check probes once. Any HTTP response counts as reachable.
func (m *Monitor) Check(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, m.probeURL, nil)
	if err != nil {
		m.Set(false)
		return false
	}
	resp, err := m.client.Do(req)
	if err != nil {
		// отмена контекста не означает, что сеть пропала
		if ctx.Err() != nil {
			return m.Online()
		}
		m.Set(false)
		return false
	}
	_ = resp.Body.Close()
	m.Set(true)
	return true
}

func (m *Monitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.Check(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Check(ctx)
		}
	}
}
