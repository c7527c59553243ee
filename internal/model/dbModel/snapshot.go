package dbModel

import (
	"time"

	"github.com/shopspring/decimal"
)

type PortfolioSnapshot struct {
	SnapshotID int64           `db:"snapshot_id"`
	TotalValue decimal.Decimal `db:"total_value"`
	Notes      *string         `db:"notes"`
	DtCreate   time.Time       `db:"dt_create"`
}

type BucketSnapshot struct {
	BucketSnapshotID int64           `db:"bucket_snapshot_id"`
	SnapshotID       int64           `db:"snapshot_id"`
	BucketID         int64           `db:"bucket_id"`
	TotalValue       decimal.Decimal `db:"total_value"`
	ActualPercentage decimal.Decimal `db:"actual_percentage"`
	TargetPercentage decimal.Decimal `db:"target_percentage"`
}

type HistoricalAllocation struct {
	Timestamp        time.Time       `db:"dt_create"`
	BucketID         int64           `db:"bucket_id"`
	ActualPercentage decimal.Decimal `db:"actual_percentage"`
}
