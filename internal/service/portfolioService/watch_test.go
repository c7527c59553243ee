package portfolioService

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribeSummaryReceivesAfterMutation(t *testing.T) {
	srv, _ := newTestService(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := srv.SubscribeSummary(ctx)

	mustCreateBucket(t, srv, "ETF", 100)

	select {
	case summary := <-ch:
		require.Len(t, summary.Buckets, 1)
		assert.Equal(t, "ETF", summary.Buckets[0].Bucket.Name)
	case <-time.After(time.Second):
		t.Fatal("no summary received after mutation")
	}
}

func TestSubscribeSummaryKeepsLatestFrame(t *testing.T) {
	srv, _ := newTestService(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := srv.SubscribeSummary(ctx)

	// a consumer that never reads must not block mutations, and the buffered
	// frame is always the freshest one
	mustCreateBucket(t, srv, "ETF", 40)
	mustCreateBucket(t, srv, "Bonds", 40)

	deadline := time.After(time.Second)
	for {
		select {
		case summary := <-ch:
			if len(summary.Buckets) == 2 {
				assert.True(t, decimal.NewFromInt(80).Equal(
					summary.Buckets[0].Bucket.TargetPercentage.Add(summary.Buckets[1].Bucket.TargetPercentage),
				))
				return
			}
		case <-deadline:
			t.Fatal("never observed the latest summary")
		}
	}
}

func TestSubscribeSummaryClosedOnCancel(t *testing.T) {
	srv, _ := newTestService(t)

	ctx, cancel := context.WithCancel(context.Background())
	ch := srv.SubscribeSummary(ctx)

	cancel()

	select {
	case _, ok := <-ch:
		assert.False(t, ok, "channel must be closed after cancel")
	case <-time.After(time.Second):
		t.Fatal("channel not closed after cancel")
	}
}
