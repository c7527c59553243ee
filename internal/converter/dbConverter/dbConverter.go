package dbConverter

import (
	"github.com/evpopov/bucket_tracker/internal/model"
	"github.com/evpopov/bucket_tracker/internal/model/dbModel"
)

func ConvertBucket(dbBucket dbModel.Bucket) model.Bucket {
	return model.Bucket{
		BucketID:         dbBucket.BucketID,
		Name:             dbBucket.Name,
		TargetPercentage: dbBucket.TargetPercentage,
		Color:            dbBucket.Color,
		DisplayOrder:     dbBucket.DisplayOrder,
		CreatedAt:        dbBucket.CreatedAt,
		UpdatedAt:        dbBucket.UpdatedAt,
	}
}

func ConvertStock(dbStock dbModel.Stock) model.Stock {
	return model.Stock{
		StockID:          dbStock.StockID,
		BucketID:         dbStock.BucketID,
		Symbol:           dbStock.Symbol,
		Name:             dbStock.Name,
		CurrentValue:     dbStock.CurrentValue,
		TargetPercentage: dbStock.TargetPercentage,
		Shares:           dbStock.Shares,
		Notes:            dbStock.Notes,
		CreatedAt:        dbStock.CreatedAt,
		UpdatedAt:        dbStock.UpdatedAt,
	}
}

func ConvertTransaction(dbTransaction dbModel.Transaction) model.Transaction {
	return model.Transaction{
		TransactionID: dbTransaction.TransactionID,
		StockID:       dbTransaction.StockID,
		Symbol:        dbTransaction.Symbol,
		Amount:        dbTransaction.Amount,
		Kind:          model.TransactionKind(dbTransaction.Kind),
		DtCreate:      dbTransaction.DtCreate,
	}
}

func ConvertHistoricalAllocation(dbAllocation dbModel.HistoricalAllocation) model.HistoricalAllocation {
	return model.HistoricalAllocation{
		Timestamp:        dbAllocation.Timestamp,
		BucketID:         dbAllocation.BucketID,
		ActualPercentage: dbAllocation.ActualPercentage,
	}
}
