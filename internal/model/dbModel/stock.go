package dbModel

import (
	"time"

	"github.com/shopspring/decimal"
)

type Stock struct {
	StockID          int64            `db:"stock_id"`
	BucketID         int64            `db:"bucket_id"`
	Symbol           string           `db:"symbol"`
	Name             string           `db:"name"`
	CurrentValue     decimal.Decimal  `db:"current_value"`
	TargetPercentage decimal.Decimal  `db:"target_percentage"`
	Shares           *decimal.Decimal `db:"shares"`
	Notes            *string          `db:"notes"`
	CreatedAt        time.Time        `db:"created_at"`
	UpdatedAt        time.Time        `db:"updated_at"`
}
