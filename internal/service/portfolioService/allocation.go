package portfolioService

import (
	"time"

	"github.com/evpopov/bucket_tracker/internal/model"
	"github.com/shopspring/decimal"
)

var (
	hundredPercent = decimal.NewFromInt(100)
	bulkTolerance  = decimal.NewFromFloat(0.001)
)

// percentOf returns value as a percentage of total. A non-positive total
// yields zero, not an error.
func percentOf(value, total decimal.Decimal) decimal.Decimal {
	if !total.IsPositive() {
		return decimal.Zero
	}
	return value.Div(total).Mul(hundredPercent)
}

func buildPortfolioSummary(buckets []model.Bucket, stocks []model.Stock) model.PortfolioSummary {
	stocksByBucket := make(map[int64][]model.Stock, len(buckets))
	totalValue := decimal.Zero
	var lastUpdated time.Time

	for _, stock := range stocks {
		stocksByBucket[stock.BucketID] = append(stocksByBucket[stock.BucketID], stock)
		totalValue = totalValue.Add(stock.CurrentValue)
		if stock.UpdatedAt.After(lastUpdated) {
			lastUpdated = stock.UpdatedAt
		}
	}

	allocations := make([]model.BucketAllocation, 0, len(buckets))
	for _, bucket := range buckets {
		if bucket.UpdatedAt.After(lastUpdated) {
			lastUpdated = bucket.UpdatedAt
		}

		bucketValue := decimal.Zero
		for _, stock := range stocksByBucket[bucket.BucketID] {
			bucketValue = bucketValue.Add(stock.CurrentValue)
		}

		currentPercentage := percentOf(bucketValue, totalValue)

		allocations = append(allocations, model.BucketAllocation{
			Bucket:            bucket,
			CurrentValue:      bucketValue,
			CurrentPercentage: currentPercentage,
			Difference:        currentPercentage.Sub(bucket.TargetPercentage),
			StockCount:        len(stocksByBucket[bucket.BucketID]),
		})
	}

	return model.PortfolioSummary{
		TotalValue:  totalValue,
		Buckets:     allocations,
		LastUpdated: lastUpdated,
	}
}

// buildBucketDetail computes within-bucket percentages. Stocks with a
// non-positive value are excluded from the live view even if they still
// exist in storage.
func buildBucketDetail(bucket model.Bucket, stocks []model.Stock) model.BucketDetailSummary {
	held := make([]model.Stock, 0, len(stocks))
	totalValue := decimal.Zero
	for _, stock := range stocks {
		if !stock.CurrentValue.IsPositive() {
			continue
		}
		held = append(held, stock)
		totalValue = totalValue.Add(stock.CurrentValue)
	}

	details := make([]model.StockDetail, 0, len(held))
	for _, stock := range held {
		currentPercentage := percentOf(stock.CurrentValue, totalValue)
		details = append(details, model.StockDetail{
			Stock:             stock,
			CurrentPercentage: currentPercentage,
			OverAllocated:     currentPercentage.GreaterThan(stock.TargetPercentage),
		})
	}

	return model.BucketDetailSummary{
		Bucket:     bucket,
		Stocks:     details,
		TotalValue: totalValue,
	}
}
