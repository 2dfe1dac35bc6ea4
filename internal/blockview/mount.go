package blockview

import (
	"context"
	"sync"

	"github.com/gabapcia/blockview/internal/blockfeed"
	"github.com/gabapcia/blockview/internal/pkg/logger"
	"github.com/gabapcia/blockview/internal/pkg/x/chflow"
)

// UnmountFunc stops the feed started by Mount and waits for the view to stop
// consuming it. Calling it more than once is a no-op.
type UnmountFunc func()

// Mount starts feed and replaces the held list with every delivery, calling
// onChange (if not nil) after each replacement. onChange runs on the
// consumer goroutine.
//
// The returned UnmountFunc must always be called; it is the only thing that
// stops the feed's timer.
func (v *View) Mount(ctx context.Context, feed blockfeed.Service, onChange func()) (UnmountFunc, error) {
	ctx, cancel := context.WithCancel(ctx)

	deliveryCh, err := feed.Start(ctx)
	if err != nil {
		cancel()
		return nil, err
	}

	done := make(chan struct{})
	go func() {
		defer close(done)

		for {
			blocks, ok := chflow.Receive(ctx, deliveryCh)
			if !ok {
				return
			}

			v.Replace(blocks)
			logger.Debug(ctx, "view refreshed", "blocks.count", len(blocks))

			if onChange != nil {
				onChange()
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			feed.Close()
			<-done
		})
	}, nil
}
