package notifier

import (
	"context"

	"github.com/rs/zerolog"
)

// Dispatcher fans a formatted notification out to every configured channel.
// Channels are independent: a failing channel is recorded in the summary and
// never prevents the remaining channels from being attempted.
type Dispatcher struct {
	channels []Channel
	logger   zerolog.Logger
}

// NewDispatcher creates a new Dispatcher.
func NewDispatcher(channels []Channel, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		channels: channels,
		logger:   logger.With().Str("component", "Dispatcher").Logger(),
	}
}

// HasChannels reports whether any channel is configured.
func (d *Dispatcher) HasChannels() bool {
	return len(d.channels) > 0
}

// Dispatch attempts every channel in order and returns the per-channel
// outcomes. Transport failures are converted into results, never returned as
// errors.
func (d *Dispatcher) Dispatch(ctx context.Context, title, body string) DispatchSummary {
	summary := DispatchSummary{Results: make([]ChannelResult, 0, len(d.channels))}

	for _, channel := range d.channels {
		err := d.sendOne(ctx, channel, title, body)
		if err != nil {
			d.logger.Error().Err(err).Str("channel", channel.Name()).Msg("Notification send failed")
		} else {
			d.logger.Info().Str("channel", channel.Name()).Msg("Notification sent")
		}
		summary.Results = append(summary.Results, ChannelResult{Channel: channel.Name(), Err: err})
	}

	return summary
}

// sendOne isolates a single channel attempt, turning a panicking
// implementation into an error result.
func (d *Dispatcher) sendOne(ctx context.Context, channel Channel, title, body string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &panicError{channel: channel.Name(), value: r}
		}
	}()
	return channel.Send(ctx, title, body)
}

type panicError struct {
	channel string
	value   interface{}
}

func (e *panicError) Error() string {
	return "channel " + e.channel + " panicked during send"
}
