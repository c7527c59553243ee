package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type PortfolioSnapshot struct {
	SnapshotID int64
	TotalValue decimal.Decimal
	Notes      *string
	DtCreate   time.Time
}

type BucketSnapshot struct {
	BucketSnapshotID int64
	SnapshotID       int64
	BucketID         int64
	TotalValue       decimal.Decimal
	ActualPercentage decimal.Decimal
	TargetPercentage decimal.Decimal
}

// HistoricalAllocation is a single bucket-snapshot row joined to its
// portfolio snapshot timestamp.
type HistoricalAllocation struct {
	Timestamp        time.Time
	BucketID         int64
	ActualPercentage decimal.Decimal
}

type HistoricalDataPoint struct {
	Timestamp         time.Time
	BucketAllocations map[int64]decimal.Decimal
}
