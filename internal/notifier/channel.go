// Package notifier formats availability changes and pushes them through the
// configured notification channels.
package notifier

import (
	"context"
)

// Channel is one configured notification transport.
type Channel interface {
	// Name identifies the channel in logs and dispatch summaries.
	Name() string
	// Send delivers a notification. Implementations convert the body's
	// lightweight markup themselves when their transport needs plain text.
	Send(ctx context.Context, title, body string) error
}

// ChannelResult is the outcome of one channel's send attempt.
type ChannelResult struct {
	Channel string
	Err     error
}

// Succeeded reports whether the attempt delivered.
func (r ChannelResult) Succeeded() bool {
	return r.Err == nil
}

// DispatchSummary aggregates the per-channel outcomes of one dispatch.
type DispatchSummary struct {
	Results []ChannelResult
}

// Delivered reports whether at least one channel succeeded.
func (s DispatchSummary) Delivered() bool {
	for _, r := range s.Results {
		if r.Succeeded() {
			return true
		}
	}
	return false
}

// DeliveredChannels returns the names of the channels that succeeded, in
// attempt order.
func (s DispatchSummary) DeliveredChannels() []string {
	var names []string
	for _, r := range s.Results {
		if r.Succeeded() {
			names = append(names, r.Channel)
		}
	}
	return names
}
