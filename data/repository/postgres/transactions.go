package postgres

import (
	"context"
	"log/slog"

	"github.com/evpopov/bucket_tracker/internal/converter/dbConverter"
	"github.com/evpopov/bucket_tracker/internal/model"
	"github.com/evpopov/bucket_tracker/internal/model/dbModel"
	"github.com/evpopov/bucket_tracker/utils"
)

func (r *Postgres) InsertTransaction(ctx context.Context, transaction model.Transaction) (err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "Postgres.InsertTransaction"
	params := map[string]any{
		"stockID": transaction.StockID,
		"symbol":  transaction.Symbol,
		"kind":    transaction.Kind,
	}
	query := `
		INSERT INTO stock_transactions(stock_id, symbol, amount, kind, dt_create)
		VALUES($1, $2, $3, $4, $5)
		`

	slog.Debug("InsertTransaction start", slog.String("rqID", rqID), slog.String("op", op), slog.String("query", query), slog.Any("params", params))
	defer func() {
		if err != nil {
			slog.Error("InsertTransaction failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		} else {
			slog.Debug("InsertTransaction completed", slog.String("rqID", rqID), slog.String("op", op))
		}
	}()

	_, err = r.txOrDb(ctx).ExecContext(
		ctx,
		query,
		transaction.StockID,
		transaction.Symbol,
		transaction.Amount,
		string(transaction.Kind),
		transaction.DtCreate,
	)
	if err != nil {
		return err
	}

	return nil
}

func (r *Postgres) GetTransactionsBySymbol(ctx context.Context, symbol string) (transactions []model.Transaction, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "Postgres.GetTransactionsBySymbol"
	params := map[string]any{
		"symbol": symbol,
	}
	query := `
		SELECT transaction_id, stock_id, symbol, amount, kind, dt_create
		FROM stock_transactions
		WHERE symbol = $1
		ORDER BY dt_create DESC
		`

	slog.Debug("GetTransactionsBySymbol start", slog.String("rqID", rqID), slog.String("op", op), slog.String("query", query), slog.Any("params", params))
	defer func() {
		if err != nil {
			slog.Error("GetTransactionsBySymbol failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		} else {
			slog.Debug("GetTransactionsBySymbol completed", slog.String("rqID", rqID), slog.String("op", op))
		}
	}()

	rows, err := r.txOrDb(ctx).QueryxContext(ctx, query, symbol)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	for rows.Next() {
		var transaction dbModel.Transaction
		err = rows.StructScan(&transaction)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, dbConverter.ConvertTransaction(transaction))
	}

	return transactions, nil
}
