package dbModel

import (
	"time"

	"github.com/shopspring/decimal"
)

type Bucket struct {
	BucketID         int64           `db:"bucket_id"`
	Name             string          `db:"name"`
	TargetPercentage decimal.Decimal `db:"target_percentage"`
	Color            string          `db:"color"`
	DisplayOrder     int             `db:"display_order"`
	CreatedAt        time.Time       `db:"created_at"`
	UpdatedAt        time.Time       `db:"updated_at"`
}
