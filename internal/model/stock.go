package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Stock struct {
	StockID          int64
	BucketID         int64
	Symbol           string
	Name             string
	CurrentValue     decimal.Decimal
	TargetPercentage decimal.Decimal
	Shares           *decimal.Decimal
	Notes            *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type StockDetail struct {
	Stock
	CurrentPercentage decimal.Decimal
	OverAllocated     bool
}

type BucketDetailSummary struct {
	Bucket     Bucket
	Stocks     []StockDetail
	TotalValue decimal.Decimal
}
