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
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

func (r *Postgres) getStocks(ctx context.Context, query string, args ...any) (stocks []model.Stock, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	slog.Debug("getStocks start", slog.String("rqID", rqID), slog.String("query", query))
	defer func() {
		if err != nil {
			slog.Error("getStocks failed", slog.String("rqID", rqID), slog.String("err", err.Error()))
		} else {
			slog.Debug("getStocks completed", slog.String("rqID", rqID))
		}
	}()

	rows, err := r.txOrDb(ctx).QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	for rows.Next() {
		var stock dbModel.Stock
		err = rows.StructScan(&stock)
		if err != nil {
			return nil, err
		}
		stocks = append(stocks, dbConverter.ConvertStock(stock))
	}

	return stocks, nil
}

func (r *Postgres) GetStocksByBucket(ctx context.Context, bucketID int64) (stocks []model.Stock, err error) {
	query := `
		SELECT stock_id, bucket_id, symbol, name, current_value, target_percentage, shares, notes, created_at, updated_at
		FROM stocks
		WHERE bucket_id = $1
		ORDER BY symbol
		`

	return r.getStocks(ctx, query, bucketID)
}

func (r *Postgres) GetAllStocks(ctx context.Context) (stocks []model.Stock, err error) {
	query := `
		SELECT stock_id, bucket_id, symbol, name, current_value, target_percentage, shares, notes, created_at, updated_at
		FROM stocks
		ORDER BY symbol
		`

	return r.getStocks(ctx, query)
}

func (r *Postgres) GetStock(ctx context.Context, stockID int64) (stock model.Stock, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "Postgres.GetStock"
	query := `
		SELECT stock_id, bucket_id, symbol, name, current_value, target_percentage, shares, notes, created_at, updated_at
		FROM stocks
		WHERE stock_id = $1
		`

	slog.Debug("GetStock start", slog.String("rqID", rqID), slog.String("op", op), slog.String("query", query))
	defer func() {
		if err != nil {
			slog.Error("GetStock failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		} else {
			slog.Debug("GetStock completed", slog.String("rqID", rqID), slog.String("op", op))
		}
	}()

	dbStock := dbModel.Stock{}
	err = r.txOrDb(ctx).QueryRowxContext(ctx, query, stockID).StructScan(&dbStock)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Stock{}, repository.ErrNotFound
		}
		return model.Stock{}, err
	}

	return dbConverter.ConvertStock(dbStock), nil
}

func (r *Postgres) InsertStock(ctx context.Context, stock model.Stock) (stockID int64, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "Postgres.InsertStock"
	query := `
		INSERT INTO stocks(bucket_id, symbol, name, current_value, target_percentage, shares, notes)
		VALUES($1, $2, $3, $4, $5, $6, $7)
		RETURNING stock_id
		`

	slog.Debug("InsertStock start", slog.String("rqID", rqID), slog.String("op", op), slog.String("query", query))
	defer func() {
		if err != nil {
			slog.Error("InsertStock failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		} else {
			slog.Debug("InsertStock completed", slog.String("rqID", rqID), slog.String("op", op))
		}
	}()

	err = r.txOrDb(ctx).QueryRowContext(
		ctx,
		query,
		stock.BucketID,
		stock.Symbol,
		stock.Name,
		stock.CurrentValue,
		stock.TargetPercentage,
		stock.Shares,
		stock.Notes,
	).Scan(&stockID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23503" { // foreign_key_violation
				return 0, repository.ErrNotFound
			}
		}
		return 0, err
	}

	return stockID, nil
}

func (r *Postgres) UpdateStock(ctx context.Context, stock model.Stock) (err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "Postgres.UpdateStock"
	params := map[string]any{
		"stockID": stock.StockID,
	}
	query := `
		UPDATE stocks
		SET
			symbol = $1,
			name = $2,
			current_value = $3,
			target_percentage = $4,
			shares = $5,
			notes = $6,
			updated_at = now()
		WHERE stock_id = $7
		`

	slog.Debug("UpdateStock start", slog.String("rqID", rqID), slog.String("op", op), slog.String("query", query), slog.Any("params", params))
	defer func() {
		if err != nil {
			slog.Error("UpdateStock failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		} else {
			slog.Debug("UpdateStock completed", slog.String("rqID", rqID), slog.String("op", op))
		}
	}()

	res, err := r.txOrDb(ctx).ExecContext(
		ctx,
		query,
		stock.Symbol,
		stock.Name,
		stock.CurrentValue,
		stock.TargetPercentage,
		stock.Shares,
		stock.Notes,
		stock.StockID,
	)
	if err != nil {
		return err
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *Postgres) DeleteStock(ctx context.Context, stockID int64) (err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "Postgres.DeleteStock"
	params := map[string]any{
		"stockID": stockID,
	}

	// transactions are removed by the FK cascade
	query := `
		DELETE FROM stocks
		WHERE stock_id = $1
		`

	slog.Debug("DeleteStock start", slog.String("rqID", rqID), slog.String("op", op), slog.String("query", query), slog.Any("params", params))
	defer func() {
		if err != nil {
			slog.Error("DeleteStock failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		} else {
			slog.Debug("DeleteStock completed", slog.String("rqID", rqID), slog.String("op", op))
		}
	}()

	_, err = r.txOrDb(ctx).ExecContext(ctx, query, stockID)
	if err != nil {
		return err
	}

	return nil
}

func (r *Postgres) GetBucketValue(ctx context.Context, bucketID int64) (total decimal.Decimal, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "Postgres.GetBucketValue"
	params := map[string]any{
		"bucketID": bucketID,
	}
	query := `SELECT COALESCE(SUM(current_value), 0) FROM stocks WHERE bucket_id = $1`

	slog.Debug("GetBucketValue start", slog.String("rqID", rqID), slog.String("op", op), slog.String("query", query), slog.Any("params", params))
	defer func() {
		if err != nil {
			slog.Error("GetBucketValue failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		} else {
			slog.Debug("GetBucketValue completed", slog.String("rqID", rqID), slog.String("op", op))
		}
	}()

	err = r.txOrDb(ctx).QueryRowxContext(ctx, query, bucketID).Scan(&total)
	if err != nil {
		return decimal.Decimal{}, err
	}

	return total, nil
}

func (r *Postgres) GetTotalPortfolioValue(ctx context.Context) (total decimal.Decimal, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "Postgres.GetTotalPortfolioValue"
	query := `SELECT COALESCE(SUM(current_value), 0) FROM stocks`

	slog.Debug("GetTotalPortfolioValue start", slog.String("rqID", rqID), slog.String("op", op), slog.String("query", query))
	defer func() {
		if err != nil {
			slog.Error("GetTotalPortfolioValue failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		} else {
			slog.Debug("GetTotalPortfolioValue completed", slog.String("rqID", rqID), slog.String("op", op))
		}
	}()

	err = r.txOrDb(ctx).QueryRowxContext(ctx, query).Scan(&total)
	if err != nil {
		return decimal.Decimal{}, err
	}

	return total, nil
}
