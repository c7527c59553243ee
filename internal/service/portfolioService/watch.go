package portfolioService

import (
	"context"

	"github.com/evpopov/bucket_tracker/internal/model"
)

// SubscribeSummary returns a channel that receives a fresh PortfolioSummary
// after every committed mutation. The channel is closed when ctx is
// cancelled. A slow consumer never blocks the writer: stale frames are
// replaced by the latest one.
func (s *PortfolioService) SubscribeSummary(ctx context.Context) <-chan model.PortfolioSummary {
	ch := make(chan model.PortfolioSummary, 1)

	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = ch
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.subscribers, id)
		close(ch)
		s.mu.Unlock()
	}()

	return ch
}

func (s *PortfolioService) broadcastSummary(summary model.PortfolioSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ch := range s.subscribers {
		select {
		case ch <- summary:
		default:
			// drop the undelivered frame, keep the latest
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- summary:
			default:
			}
		}
	}
}
