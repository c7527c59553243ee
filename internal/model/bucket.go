package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Bucket struct {
	BucketID         int64
	Name             string
	TargetPercentage decimal.Decimal
	Color            string
	DisplayOrder     int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
