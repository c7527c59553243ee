package postgres

import (
	"context"
	"log/slog"
	"time"

	"github.com/evpopov/bucket_tracker/internal/converter/dbConverter"
	"github.com/evpopov/bucket_tracker/internal/model"
	"github.com/evpopov/bucket_tracker/internal/model/dbModel"
	"github.com/evpopov/bucket_tracker/utils"
	"github.com/shopspring/decimal"
)

func (r *Postgres) InsertSnapshot(ctx context.Context, snapshot model.PortfolioSnapshot) (snapshotID int64, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "Postgres.InsertSnapshot"
	query := `
		INSERT INTO portfolio_snapshots(total_value, notes, dt_create)
		VALUES($1, $2, $3)
		RETURNING snapshot_id
		`

	slog.Debug("InsertSnapshot start", slog.String("rqID", rqID), slog.String("op", op), slog.String("query", query))
	defer func() {
		if err != nil {
			slog.Error("InsertSnapshot failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		} else {
			slog.Debug("InsertSnapshot completed", slog.String("rqID", rqID), slog.String("op", op))
		}
	}()

	err = r.txOrDb(ctx).QueryRowContext(ctx, query, snapshot.TotalValue, snapshot.Notes, snapshot.DtCreate).Scan(&snapshotID)
	if err != nil {
		return 0, err
	}

	return snapshotID, nil
}

func (r *Postgres) InsertBucketSnapshots(ctx context.Context, snapshots []model.BucketSnapshot) (err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "Postgres.InsertBucketSnapshots"
	params := map[string]any{
		"snapshots": snapshots,
	}
	query := `
		INSERT INTO bucket_snapshots(
			snapshot_id, bucket_id, total_value, actual_percentage, target_percentage
		)
		SELECT
			$1, -- snapshot_id
			u.bucket_id,
			u.total_value,
			u.actual_percentage,
			u.target_percentage
		FROM UNNEST(
			$2::bigint[],
			$3::decimal[],
			$4::decimal[],
			$5::decimal[]
		) AS u(bucket_id, total_value, actual_percentage, target_percentage)`

	if len(snapshots) == 0 {
		return nil
	}

	bucketIDs := make([]int64, 0, len(snapshots))
	totalValues := make([]decimal.Decimal, 0, len(snapshots))
	actualPercentages := make([]decimal.Decimal, 0, len(snapshots))
	targetPercentages := make([]decimal.Decimal, 0, len(snapshots))

	for _, snapshot := range snapshots {
		bucketIDs = append(bucketIDs, snapshot.BucketID)
		totalValues = append(totalValues, snapshot.TotalValue)
		actualPercentages = append(actualPercentages, snapshot.ActualPercentage)
		targetPercentages = append(targetPercentages, snapshot.TargetPercentage)
	}

	slog.Debug(
		"InsertBucketSnapshots start",
		slog.String("rqID", rqID),
		slog.String("op", op),
		slog.String("query", query),
		slog.Any("params", params),
	)
	defer func() {
		if err != nil {
			slog.Error("InsertBucketSnapshots failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		} else {
			slog.Debug("InsertBucketSnapshots completed", slog.String("rqID", rqID), slog.String("op", op))
		}
	}()

	_, err = r.txOrDb(ctx).ExecContext(
		ctx,
		query,
		snapshots[0].SnapshotID,
		bucketIDs,
		totalValues,
		actualPercentages,
		targetPercentages,
	)
	if err != nil {
		return err
	}

	return nil
}

func (r *Postgres) GetHistoricalAllocations(ctx context.Context, since time.Time) (allocations []model.HistoricalAllocation, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "Postgres.GetHistoricalAllocations"
	params := map[string]any{
		"since": since,
	}
	query := `
		SELECT ps.dt_create, bs.bucket_id, bs.actual_percentage
		FROM portfolio_snapshots ps
		JOIN bucket_snapshots bs ON ps.snapshot_id = bs.snapshot_id
		WHERE ps.dt_create >= $1
		ORDER BY ps.dt_create
		`

	slog.Debug("GetHistoricalAllocations start", slog.String("rqID", rqID), slog.String("op", op), slog.String("query", query), slog.Any("params", params))
	defer func() {
		if err != nil {
			slog.Error("GetHistoricalAllocations failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		} else {
			slog.Debug("GetHistoricalAllocations completed", slog.String("rqID", rqID), slog.String("op", op))
		}
	}()

	rows, err := r.txOrDb(ctx).QueryxContext(ctx, query, since)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	for rows.Next() {
		var allocation dbModel.HistoricalAllocation
		err = rows.StructScan(&allocation)
		if err != nil {
			return nil, err
		}
		allocations = append(allocations, dbConverter.ConvertHistoricalAllocation(allocation))
	}

	return allocations, nil
}

func (r *Postgres) DeleteSnapshotsBefore(ctx context.Context, cutoff time.Time) (err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "Postgres.DeleteSnapshotsBefore"
	params := map[string]any{
		"cutoff": cutoff,
	}

	// bucket snapshots are removed by the FK cascade
	query := `
		DELETE FROM portfolio_snapshots
		WHERE dt_create < $1
		`

	slog.Debug("DeleteSnapshotsBefore start", slog.String("rqID", rqID), slog.String("op", op), slog.String("query", query), slog.Any("params", params))
	defer func() {
		if err != nil {
			slog.Error("DeleteSnapshotsBefore failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		} else {
			slog.Debug("DeleteSnapshotsBefore completed", slog.String("rqID", rqID), slog.String("op", op))
		}
	}()

	_, err = r.txOrDb(ctx).ExecContext(ctx, query, cutoff)
	if err != nil {
		return err
	}

	return nil
}
