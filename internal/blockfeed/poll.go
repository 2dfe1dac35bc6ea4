package blockfeed

import (
	"context"
	"time"

	"github.com/gabapcia/blockview/internal/pkg/logger"
	"github.com/gabapcia/blockview/internal/pkg/types"
	"github.com/gabapcia/blockview/internal/pkg/x/chflow"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// poll runs the fetch loop until ctx is canceled. It fetches once right away
// and then once per tick. Fetches never overlap: a slow fetch delays the next
// one instead of running alongside it.
//
// deliveryCh and done are owned by poll and closed on return.
func (s *service) poll(ctx context.Context, deliveryCh chan<- []Block, done chan<- struct{}) {
	defer close(done)
	defer close(deliveryCh)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		if ok := s.refresh(ctx, deliveryCh); !ok {
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// refresh performs a single fetch cycle. A failed fetch is handed to the
// failure handler and nothing is delivered. It returns false only when ctx
// ended while waiting for the consumer.
func (s *service) refresh(ctx context.Context, deliveryCh chan<- []Block) bool {
	id := uuid.NewString()

	ctx, span := s.instruments.tracer.Start(ctx, fetchSpanName)
	defer span.End()
	span.SetAttributes(attribute.String("fetch.id", id))

	blocks, err := s.fetch(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return false
		}

		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch failed")
		s.instruments.recordFetch(ctx, outcomeFailure, 0)

		s.fetchFailureHandler(ctx, FetchFailure{ID: id, Err: err})
		return true
	}

	s.instruments.recordFetch(ctx, outcomeSuccess, len(blocks))
	logger.Debug(ctx, "block list fetched",
		"fetch.id", id,
		"blocks.count", len(blocks),
		"blocks.new", s.markSeen(blocks),
	)

	return chflow.Send(ctx, deliveryCh, blocks)
}

// fetch calls the source once, or through s.retry when one is configured.
func (s *service) fetch(ctx context.Context) ([]Block, error) {
	if s.retry == nil {
		return s.source.FetchBlocks(ctx)
	}

	var blocks []Block
	err := s.retry.Execute(ctx, func() error {
		var err error
		blocks, err = s.source.FetchBlocks(ctx)
		return err
	})

	return blocks, err
}

// markSeen replaces the remembered hashes with those of blocks and returns
// how many of them were not part of the previous delivery.
func (s *service) markSeen(blocks []Block) int {
	current := types.NewSet[string]()
	for _, b := range blocks {
		current.Add(b.Hash)
	}

	fresh := current.Difference(s.seen).Len()
	s.seen = current
	return fresh
}
