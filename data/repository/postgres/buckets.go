package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/evpopov/bucket_tracker/data/repository"
	"github.com/evpopov/bucket_tracker/internal/converter/dbConverter"
	"github.com/evpopov/bucket_tracker/internal/model"
	"github.com/evpopov/bucket_tracker/internal/model/dbModel"
	"github.com/evpopov/bucket_tracker/utils"
	"github.com/shopspring/decimal"
)

func (r *Postgres) GetBuckets(ctx context.Context) (buckets []model.Bucket, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "Postgres.GetBuckets"
	query := `
		SELECT bucket_id, name, target_percentage, color, display_order, created_at, updated_at
		FROM buckets
		ORDER BY display_order
		`

	slog.Debug("GetBuckets start", slog.String("rqID", rqID), slog.String("op", op), slog.String("query", query))
	defer func() {
		if err != nil {
			slog.Error("GetBuckets failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		} else {
			slog.Debug("GetBuckets completed", slog.String("rqID", rqID), slog.String("op", op))
		}
	}()

	rows, err := r.txOrDb(ctx).QueryxContext(ctx, query)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	for rows.Next() {
		var bucket dbModel.Bucket
		err = rows.StructScan(&bucket)
		if err != nil {
			return nil, err
		}
		buckets = append(buckets, dbConverter.ConvertBucket(bucket))
	}

	return buckets, nil
}

func (r *Postgres) GetBucket(ctx context.Context, bucketID int64) (bucket model.Bucket, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "Postgres.GetBucket"
	query := `
		SELECT bucket_id, name, target_percentage, color, display_order, created_at, updated_at
		FROM buckets
		WHERE bucket_id = $1
		`

	slog.Debug("GetBucket start", slog.String("rqID", rqID), slog.String("op", op), slog.String("query", query))
	defer func() {
		if err != nil {
			slog.Error("GetBucket failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		} else {
			slog.Debug("GetBucket completed", slog.String("rqID", rqID), slog.String("op", op))
		}
	}()

	dbBucket := dbModel.Bucket{}
	err = r.txOrDb(ctx).QueryRowxContext(ctx, query, bucketID).StructScan(&dbBucket)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Bucket{}, repository.ErrNotFound
		}
		return model.Bucket{}, err
	}

	return dbConverter.ConvertBucket(dbBucket), nil
}

func (r *Postgres) InsertBucket(ctx context.Context, bucket model.Bucket) (bucketID int64, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "Postgres.InsertBucket"
	query := `
		INSERT INTO buckets(name, target_percentage, color, display_order)
		VALUES($1, $2, $3, $4)
		RETURNING bucket_id
		`

	slog.Debug("InsertBucket start", slog.String("rqID", rqID), slog.String("op", op), slog.String("query", query))
	defer func() {
		if err != nil {
			slog.Error("InsertBucket failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		} else {
			slog.Debug("InsertBucket completed", slog.String("rqID", rqID), slog.String("op", op))
		}
	}()

	err = r.txOrDb(ctx).QueryRowContext(ctx, query, bucket.Name, bucket.TargetPercentage, bucket.Color, bucket.DisplayOrder).Scan(&bucketID)
	if err != nil {
		return 0, err
	}

	return bucketID, nil
}

func (r *Postgres) UpdateBucket(ctx context.Context, bucket model.Bucket) (err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "Postgres.UpdateBucket"
	params := map[string]any{
		"bucketID": bucket.BucketID,
	}
	query := `
		UPDATE buckets
		SET
			name = $1,
			target_percentage = $2,
			color = $3,
			display_order = $4,
			updated_at = now()
		WHERE bucket_id = $5
		`

	slog.Debug("UpdateBucket start", slog.String("rqID", rqID), slog.String("op", op), slog.String("query", query), slog.Any("params", params))
	defer func() {
		if err != nil {
			slog.Error("UpdateBucket failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		} else {
			slog.Debug("UpdateBucket completed", slog.String("rqID", rqID), slog.String("op", op))
		}
	}()

	res, err := r.txOrDb(ctx).ExecContext(ctx, query, bucket.Name, bucket.TargetPercentage, bucket.Color, bucket.DisplayOrder, bucket.BucketID)
	if err != nil {
		return err
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *Postgres) DeleteBucket(ctx context.Context, bucketID int64) (err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "Postgres.DeleteBucket"
	params := map[string]any{
		"bucketID": bucketID,
	}

	// stocks are removed by the FK cascade
	query := `
		DELETE FROM buckets
		WHERE bucket_id = $1
		`

	slog.Debug("DeleteBucket start", slog.String("rqID", rqID), slog.String("op", op), slog.String("query", query), slog.Any("params", params))
	defer func() {
		if err != nil {
			slog.Error("DeleteBucket failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		} else {
			slog.Debug("DeleteBucket completed", slog.String("rqID", rqID), slog.String("op", op))
		}
	}()

	_, err = r.txOrDb(ctx).ExecContext(ctx, query, bucketID)
	if err != nil {
		return err
	}

	return nil
}

func (r *Postgres) GetTotalTargetPercentage(ctx context.Context) (total decimal.Decimal, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "Postgres.GetTotalTargetPercentage"
	query := `SELECT COALESCE(SUM(target_percentage), 0) FROM buckets`

	slog.Debug("GetTotalTargetPercentage start", slog.String("rqID", rqID), slog.String("op", op), slog.String("query", query))
	defer func() {
		if err != nil {
			slog.Error("GetTotalTargetPercentage failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		} else {
			slog.Debug("GetTotalTargetPercentage completed", slog.String("rqID", rqID), slog.String("op", op))
		}
	}()

	err = r.txOrDb(ctx).QueryRowxContext(ctx, query).Scan(&total)
	if err != nil {
		return decimal.Decimal{}, err
	}

	return total, nil
}

func (r *Postgres) GetBucketsCount(ctx context.Context) (count int, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "Postgres.GetBucketsCount"
	query := `SELECT COUNT(*) FROM buckets`

	slog.Debug("GetBucketsCount start", slog.String("rqID", rqID), slog.String("op", op), slog.String("query", query))
	defer func() {
		if err != nil {
			slog.Error("GetBucketsCount failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		} else {
			slog.Debug("GetBucketsCount completed", slog.String("rqID", rqID), slog.String("op", op))
		}
	}()

	err = r.txOrDb(ctx).QueryRowxContext(ctx, query).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}
