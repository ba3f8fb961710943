// Package lifecycle bridges editor events into the aretw0/lifecycle
// supervision model so host applications can consume them as a Source.
package lifecycle

import (
	"context"

	"github.com/aretw0/lifecycle"

	"github.com/svcedit/svcedit/pkg/core"
)

type editorSource struct {
	events <-chan core.Event
	out    chan lifecycle.Event
}

// NewSource creates a lifecycle.Source that emits document change events.
// It bridges the typed editor event channel to the generic lifecycle Event
// interface.
func NewSource(events <-chan core.Event) lifecycle.Source {
	return &editorSource{
		events: events,
		out:    make(chan lifecycle.Event),
	}
}

func (s *editorSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *editorSource) Start(ctx context.Context) error {
	// lifecycle.Go tracks the bridge goroutine itself, so a panic here is
	// handled by the supervisor instead of taking down the process.
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-s.events:
				if !ok {
					return nil
				}
				// core.Event implements lifecycle.Event (has String())
				select {
				case s.out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}
