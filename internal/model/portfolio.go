package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type PortfolioSummary struct {
	TotalValue  decimal.Decimal
	Buckets     []BucketAllocation
	LastUpdated time.Time
}

type BucketAllocation struct {
	Bucket            Bucket
	CurrentValue      decimal.Decimal
	CurrentPercentage decimal.Decimal
	Difference        decimal.Decimal
	StockCount        int
}
