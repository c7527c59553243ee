package portfolioService

import (
	"context"
	"log/slog"
	"time"

	"github.com/evpopov/bucket_tracker/internal/model"
	"github.com/evpopov/bucket_tracker/utils"
	"github.com/shopspring/decimal"
)

// CreateSnapshot captures the current allocation state as one portfolio
// snapshot plus one bucket snapshot per bucket, written atomically. Target
// percentages are copied at write time so later edits don't rewrite history.
func (s *PortfolioService) CreateSnapshot(ctx context.Context, note *string) (err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "PortfolioService.CreateSnapshot"

	slog.Debug("CreateSnapshot start", slog.String("rqID", rqID), slog.String("op", op))
	defer func() {
		slog.Debug("CreateSnapshot finished", slog.String("rqID", rqID), slog.String("op", op))
	}()

	now := time.Now()

	err = s.repo.WithinTransaction(ctx, func(ctx context.Context) error {
		totalValue, err := s.repo.GetTotalPortfolioValue(ctx)
		if err != nil {
			slog.Error("got error from repo.GetTotalPortfolioValue", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
			return err
		}

		snapshotID, err := s.repo.InsertSnapshot(ctx, model.PortfolioSnapshot{
			TotalValue: totalValue,
			Notes:      note,
			DtCreate:   now,
		})
		if err != nil {
			slog.Error("got error from repo.InsertSnapshot", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
			return err
		}

		buckets, err := s.repo.GetBuckets(ctx)
		if err != nil {
			slog.Error("got error from repo.GetBuckets", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
			return err
		}

		bucketSnapshots := make([]model.BucketSnapshot, 0, len(buckets))
		for _, bucket := range buckets {
			bucketValue, err := s.repo.GetBucketValue(ctx, bucket.BucketID)
			if err != nil {
				slog.Error("got error from repo.GetBucketValue", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
				return err
			}

			bucketSnapshots = append(bucketSnapshots, model.BucketSnapshot{
				SnapshotID:       snapshotID,
				BucketID:         bucket.BucketID,
				TotalValue:       bucketValue,
				ActualPercentage: percentOf(bucketValue, totalValue),
				TargetPercentage: bucket.TargetPercentage,
			})
		}

		err = s.repo.InsertBucketSnapshots(ctx, bucketSnapshots)
		if err != nil {
			slog.Error("got error from repo.InsertBucketSnapshots", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
			return err
		}

		return nil
	})
	if err != nil {
		return err
	}

	return nil
}

// GetHistoricalData returns one data point per snapshot event within the
// window, ordered ascending. Rows sharing a snapshot timestamp are grouped
// into a single point.
func (s *PortfolioService) GetHistoricalData(ctx context.Context, daysBack int) (points []model.HistoricalDataPoint, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "PortfolioService.GetHistoricalData"

	slog.Debug("GetHistoricalData start", slog.String("rqID", rqID), slog.String("op", op), slog.Int("daysBack", daysBack))
	defer func() {
		slog.Debug("GetHistoricalData finished", slog.String("rqID", rqID), slog.String("op", op))
	}()

	since := time.Now().AddDate(0, 0, -daysBack)

	allocations, err := s.repo.GetHistoricalAllocations(ctx, since)
	if err != nil {
		slog.Error("got error from repo.GetHistoricalAllocations", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, err
	}

	// rows arrive ordered ascending, so grouping preserves the order
	pointByTimestamp := make(map[time.Time]int)
	for _, allocation := range allocations {
		i, ok := pointByTimestamp[allocation.Timestamp]
		if !ok {
			points = append(points, model.HistoricalDataPoint{
				Timestamp:         allocation.Timestamp,
				BucketAllocations: make(map[int64]decimal.Decimal),
			})
			i = len(points) - 1
			pointByTimestamp[allocation.Timestamp] = i
		}
		points[i].BucketAllocations[allocation.BucketID] = allocation.ActualPercentage
	}

	return points, nil
}

// PurgeSnapshotsBefore deletes snapshots strictly older than the cutoff;
// their bucket snapshots go with them.
func (s *PortfolioService) PurgeSnapshotsBefore(ctx context.Context, cutoff time.Time) (err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "PortfolioService.PurgeSnapshotsBefore"

	slog.Debug("PurgeSnapshotsBefore start", slog.String("rqID", rqID), slog.String("op", op), slog.Time("cutoff", cutoff))
	defer func() {
		slog.Debug("PurgeSnapshotsBefore finished", slog.String("rqID", rqID), slog.String("op", op))
	}()

	err = s.repo.DeleteSnapshotsBefore(ctx, cutoff)
	if err != nil {
		slog.Error("got error from repo.DeleteSnapshotsBefore", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return err
	}

	return nil
}
