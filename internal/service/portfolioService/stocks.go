package portfolioService

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/evpopov/bucket_tracker/data/repository"
	"github.com/evpopov/bucket_tracker/internal/model"
	"github.com/evpopov/bucket_tracker/internal/service"
	"github.com/evpopov/bucket_tracker/utils"
	"github.com/shopspring/decimal"
)

// BuyStock opens a brand-new position: the stock is created and a BUY
// transaction for the full initial value is recorded in the same store
// transaction.
func (s *PortfolioService) BuyStock(ctx context.Context, stock model.Stock) (stockID int64, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "PortfolioService.BuyStock"

	slog.Debug("BuyStock start", slog.String("rqID", rqID), slog.String("op", op), slog.String("symbol", stock.Symbol))
	defer func() {
		slog.Debug("BuyStock finished", slog.String("rqID", rqID), slog.String("op", op), slog.String("symbol", stock.Symbol))
	}()

	stock.Symbol = strings.ToUpper(stock.Symbol)
	if stock.Name == "" {
		stock.Name = stock.Symbol
	}

	err = s.repo.WithinTransaction(ctx, func(ctx context.Context) error {
		stockID, err = s.repo.InsertStock(ctx, stock)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return service.ErrNotFound
			}
			slog.Error("got error from repo.InsertStock", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
			return err
		}

		err = s.repo.InsertTransaction(ctx, model.Transaction{
			StockID:  stockID,
			Symbol:   stock.Symbol,
			Amount:   stock.CurrentValue,
			Kind:     model.TransactionBuy,
			DtCreate: time.Now(),
		})
		if err != nil {
			slog.Error("got error from repo.InsertTransaction", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
			return err
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	s.afterMutation(ctx)

	return stockID, nil
}

// TradeBySymbol buys or sells an existing position matched by symbol
// (case-insensitive) within a bucket. The new value is clamped at zero and a
// position driven to zero is removed. Buying an unknown symbol opens the
// position; selling an unknown symbol is a no-op.
func (s *PortfolioService) TradeBySymbol(ctx context.Context, bucketID int64, symbol string, delta decimal.Decimal, isBuy bool) (err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "PortfolioService.TradeBySymbol"

	slog.Debug("TradeBySymbol start", slog.String("rqID", rqID), slog.String("op", op), slog.String("symbol", symbol), slog.Bool("isBuy", isBuy))
	defer func() {
		slog.Debug("TradeBySymbol finished", slog.String("rqID", rqID), slog.String("op", op), slog.String("symbol", symbol))
	}()

	err = s.repo.WithinTransaction(ctx, func(ctx context.Context) error {
		stocks, err := s.repo.GetStocksByBucket(ctx, bucketID)
		if err != nil {
			slog.Error("got error from repo.GetStocksByBucket", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
			return err
		}

		var existing *model.Stock
		for i := range stocks {
			if strings.EqualFold(stocks[i].Symbol, symbol) {
				existing = &stocks[i]
				break
			}
		}

		if existing == nil {
			if !isBuy {
				slog.Warn("sell requested for unknown symbol, skipping", slog.String("rqID", rqID), slog.String("op", op), slog.String("symbol", symbol))
				return nil
			}

			stockID, err := s.repo.InsertStock(ctx, model.Stock{
				BucketID:     bucketID,
				Symbol:       strings.ToUpper(symbol),
				Name:         strings.ToUpper(symbol),
				CurrentValue: delta,
			})
			if err != nil {
				slog.Error("got error from repo.InsertStock", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
				return err
			}

			return s.repo.InsertTransaction(ctx, model.Transaction{
				StockID:  stockID,
				Symbol:   strings.ToUpper(symbol),
				Amount:   delta,
				Kind:     model.TransactionBuy,
				DtCreate: time.Now(),
			})
		}

		amount := delta
		kind := model.TransactionBuy
		newValue := existing.CurrentValue.Add(delta)
		if !isBuy {
			amount = delta.Neg()
			kind = model.TransactionSell
			newValue = existing.CurrentValue.Sub(delta)
		}
		if newValue.IsNegative() {
			newValue = decimal.Zero
		}

		err = s.repo.InsertTransaction(ctx, model.Transaction{
			StockID:  existing.StockID,
			Symbol:   existing.Symbol,
			Amount:   amount,
			Kind:     kind,
			DtCreate: time.Now(),
		})
		if err != nil {
			slog.Error("got error from repo.InsertTransaction", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
			return err
		}

		if !newValue.IsPositive() {
			// a position at zero is removed, not persisted
			return s.repo.DeleteStock(ctx, existing.StockID)
		}

		existing.CurrentValue = newValue
		return s.repo.UpdateStock(ctx, *existing)
	})
	if err != nil {
		return err
	}

	s.afterMutation(ctx)

	return nil
}

// AddRemoveFunds adjusts a position's value by a signed amount. A missing
// stock id degrades to a no-op.
func (s *PortfolioService) AddRemoveFunds(ctx context.Context, stockID int64, amount decimal.Decimal) (err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "PortfolioService.AddRemoveFunds"

	slog.Debug("AddRemoveFunds start", slog.String("rqID", rqID), slog.String("op", op), slog.Int64("stockID", stockID))
	defer func() {
		slog.Debug("AddRemoveFunds finished", slog.String("rqID", rqID), slog.String("op", op), slog.Int64("stockID", stockID))
	}()

	err = s.repo.WithinTransaction(ctx, func(ctx context.Context) error {
		stock, err := s.repo.GetStock(ctx, stockID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				slog.Warn("stock not found, skipping", slog.String("rqID", rqID), slog.String("op", op), slog.Int64("stockID", stockID))
				return nil
			}
			slog.Error("got error from repo.GetStock", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
			return err
		}

		kind := model.TransactionBuy
		if amount.IsNegative() {
			kind = model.TransactionSell
		}

		newValue := stock.CurrentValue.Add(amount)
		if newValue.IsNegative() {
			newValue = decimal.Zero
		}

		err = s.repo.InsertTransaction(ctx, model.Transaction{
			StockID:  stock.StockID,
			Symbol:   stock.Symbol,
			Amount:   amount,
			Kind:     kind,
			DtCreate: time.Now(),
		})
		if err != nil {
			slog.Error("got error from repo.InsertTransaction", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
			return err
		}

		if !newValue.IsPositive() {
			return s.repo.DeleteStock(ctx, stock.StockID)
		}

		stock.CurrentValue = newValue
		return s.repo.UpdateStock(ctx, stock)
	})
	if err != nil {
		return err
	}

	s.afterMutation(ctx)

	return nil
}

// UpdateStockTarget changes only the target percentage. No transaction is
// recorded since the position value is untouched.
func (s *PortfolioService) UpdateStockTarget(ctx context.Context, stockID int64, targetPercentage decimal.Decimal) (err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "PortfolioService.UpdateStockTarget"

	slog.Debug("UpdateStockTarget start", slog.String("rqID", rqID), slog.String("op", op), slog.Int64("stockID", stockID))
	defer func() {
		slog.Debug("UpdateStockTarget finished", slog.String("rqID", rqID), slog.String("op", op), slog.Int64("stockID", stockID))
	}()

	stock, err := s.repo.GetStock(ctx, stockID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			slog.Warn("stock not found, skipping", slog.String("rqID", rqID), slog.String("op", op), slog.Int64("stockID", stockID))
			return nil
		}
		slog.Error("got error from repo.GetStock", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return err
	}

	stock.TargetPercentage = targetPercentage
	err = s.repo.UpdateStock(ctx, stock)
	if err != nil {
		slog.Error("got error from repo.UpdateStock", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return err
	}

	s.afterMutation(ctx)

	return nil
}

func (s *PortfolioService) DeleteStock(ctx context.Context, stockID int64) (err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "PortfolioService.DeleteStock"

	slog.Debug("DeleteStock start", slog.String("rqID", rqID), slog.String("op", op), slog.Int64("stockID", stockID))
	defer func() {
		slog.Debug("DeleteStock finished", slog.String("rqID", rqID), slog.String("op", op), slog.Int64("stockID", stockID))
	}()

	err = s.repo.DeleteStock(ctx, stockID)
	if err != nil {
		slog.Error("got error from repo.DeleteStock", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return err
	}

	s.afterMutation(ctx)

	return nil
}

func (s *PortfolioService) GetTransactionsBySymbol(ctx context.Context, symbol string) (transactions []model.Transaction, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "PortfolioService.GetTransactionsBySymbol"

	slog.Debug("GetTransactionsBySymbol start", slog.String("rqID", rqID), slog.String("op", op), slog.String("symbol", symbol))
	defer func() {
		slog.Debug("GetTransactionsBySymbol finished", slog.String("rqID", rqID), slog.String("op", op), slog.String("symbol", symbol))
	}()

	transactions, err = s.repo.GetTransactionsBySymbol(ctx, strings.ToUpper(symbol))
	if err != nil {
		slog.Error("got error from repo.GetTransactionsBySymbol", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, err
	}

	return transactions, nil
}
