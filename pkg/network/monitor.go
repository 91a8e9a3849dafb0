package network

import (
	"context"
	"net"
	"time"

	"github.com/go-pkgz/lgr"
)

// Checker reports whether the network is usable right now
type Checker func(ctx context.Context) bool

// Monitor polls a Checker and keeps State up to date
type Monitor struct {
	*State
	checker  Checker
	interval time.Duration
}

// NewMonitor makes a monitor with the state already set from the first check,
// so readers never see a false offline before polling starts
func NewMonitor(ctx context.Context, checker Checker, interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	online := checker(ctx)
	lgr.Printf("[INFO] network monitor started, online=%v", online)
	return &Monitor{State: NewState(online), checker: checker, interval: interval}
}

// Run polls the checker until ctx is done
func (m *Monitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Check(ctx)
		}
	}
}

// Check runs the checker once and publishes the result
func (m *Monitor) Check(ctx context.Context) bool {
	online := m.checker(ctx)
	if m.Set(online) {
		if online {
			lgr.Printf("[INFO] network is online")
		} else {
			lgr.Printf("[INFO] network is offline")
		}
	}
	return online
}

// DefaultChecker treats the network as up if any non-loopback interface is up with a global address.
// With probeAddr set it also requires a tcp connection to it to succeed.
func DefaultChecker(probeAddr string, timeout time.Duration) Checker {
	return func(ctx context.Context) bool {
		if !hasActiveInterface() {
			return false
		}
		if probeAddr == "" {
			return true
		}
		dialer := net.Dialer{Timeout: timeout}
		conn, err := dialer.DialContext(ctx, "tcp", probeAddr)
		if err != nil {
			lgr.Printf("[DEBUG] probe %s failed: %v", probeAddr, err)
			return false
		}
		_ = conn.Close()
		return true
	}
}

func hasActiveInterface() bool {
	ifaces, err := net.Interfaces()
	if err != nil {
		lgr.Printf("[WARN] can't list network interfaces: %v", err)
		return false
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, addr := range addrs {
			if ipNet, ok := addr.(*net.IPNet); ok && ipNet.IP.IsGlobalUnicast() {
				return true
			}
		}
	}
	return false
}
