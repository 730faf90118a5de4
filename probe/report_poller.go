package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	oclp "github.com/jbinder6342/OpenCore-Legacy-Patcher"
)

// ReportPoller polls the helper's HTTP report endpoint and caches the last
// good report. It is the transport of choice when the helper runs without a
// websocket gateway, and emits synthetic attach/detach events when the
// controller's presence changes between polls.
type ReportPoller struct {
	baseURL string
	client  *http.Client

	mu        sync.RWMutex
	last      *Report
	lastPoll  time.Time
	listeners []chan Event
}

func NewReportPoller(baseURL string) *ReportPoller {
	return &ReportPoller{
		baseURL: trimRightSlash(baseURL),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func trimRightSlash(s string) string {
	for len(s) > 0 && s[len(s)-1] == '/' {
		s = s[:len(s)-1]
	}
	return s
}

// PollOnce fetches the current report and emits presence events.
func (p *ReportPoller) PollOnce(ctx context.Context) (*Report, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/api/v1/report", nil)
	if err != nil {
		return nil, err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", oclp.ErrProbeUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode >= 500 {
			return nil, oclp.ErrBackendUnavailable
		}
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}
	var report Report
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return nil, err
	}
	p.update(&report)
	return &report, nil
}

func (p *ReportPoller) update(report *Report) {
	p.mu.Lock()
	defer p.mu.Unlock()
	prev := p.last
	p.last = report
	p.lastPoll = time.Now()

	had := prev != nil && prev.BluetoothChipset != ""
	has := report.BluetoothChipset != ""
	switch {
	case has && !had:
		p.broadcast(Event{Kind: EventControllerAttached, OccurredAt: time.Now(), Source: "report-poll", Payload: report.BluetoothChipset})
	case !has && had:
		p.broadcast(Event{Kind: EventControllerDetached, OccurredAt: time.Now(), Source: "report-poll", Payload: prev.BluetoothChipset})
	}
}

func (p *ReportPoller) broadcast(e Event) {
	for _, ch := range p.listeners {
		select {
		case ch <- e:
		default: /* drop if slow */
		}
	}
}

// Snapshot returns the last good report (nil before the first poll) and the
// time it was taken.
func (p *ReportPoller) Snapshot() (*Report, time.Time) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.last, p.lastPoll
}

// Subscribe returns an event subscription channel.
func (p *ReportPoller) Subscribe(buffer int) EventSubscription {
	ch := make(chan Event, buffer)
	p.mu.Lock()
	p.listeners = append(p.listeners, ch)
	p.mu.Unlock()
	return &pollerEventSub{ch: ch, closeFn: func() { close(ch) }}
}

type pollerEventSub struct {
	ch      <-chan Event
	closeFn func()
}

func (e *pollerEventSub) C() <-chan Event { return e.ch }
func (e *pollerEventSub) Close() error {
	if e.closeFn != nil {
		e.closeFn()
		e.closeFn = nil
	}
	return nil
}
