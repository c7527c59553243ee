package portfolioService

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/evpopov/bucket_tracker/config"
	"github.com/evpopov/bucket_tracker/data/repository"
	"github.com/evpopov/bucket_tracker/internal/model"
	"github.com/evpopov/bucket_tracker/internal/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errCacheMiss = errors.New("cache miss")

// fakeRepo is an in-memory Repository with the same cascade semantics as the
// real schema: deleting a stock removes its transactions, deleting a bucket
// removes its stocks, deleting a snapshot removes its bucket snapshots.
type fakeRepo struct {
	mu sync.Mutex

	buckets         map[int64]model.Bucket
	stocks          map[int64]model.Stock
	transactions    []model.Transaction
	snapshots       map[int64]model.PortfolioSnapshot
	bucketSnapshots []model.BucketSnapshot

	nextBucketID      int64
	nextStockID       int64
	nextTransactionID int64
	nextSnapshotID    int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		buckets:   make(map[int64]model.Bucket),
		stocks:    make(map[int64]model.Stock),
		snapshots: make(map[int64]model.PortfolioSnapshot),
	}
}

func (r *fakeRepo) WithinTransaction(ctx context.Context, tFunc func(ctx context.Context) error) error {
	return tFunc(ctx)
}

func (r *fakeRepo) GetBuckets(_ context.Context) ([]model.Bucket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	buckets := make([]model.Bucket, 0, len(r.buckets))
	for id := int64(1); id <= r.nextBucketID; id++ {
		if bucket, ok := r.buckets[id]; ok {
			buckets = append(buckets, bucket)
		}
	}
	return buckets, nil
}

func (r *fakeRepo) GetBucket(_ context.Context, bucketID int64) (model.Bucket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	bucket, ok := r.buckets[bucketID]
	if !ok {
		return model.Bucket{}, repository.ErrNotFound
	}
	return bucket, nil
}

func (r *fakeRepo) InsertBucket(_ context.Context, bucket model.Bucket) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextBucketID++
	bucket.BucketID = r.nextBucketID
	bucket.CreatedAt = time.Now()
	bucket.UpdatedAt = bucket.CreatedAt
	r.buckets[bucket.BucketID] = bucket
	return bucket.BucketID, nil
}

func (r *fakeRepo) UpdateBucket(_ context.Context, bucket model.Bucket) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.buckets[bucket.BucketID]
	if !ok {
		return repository.ErrNotFound
	}
	bucket.CreatedAt = stored.CreatedAt
	bucket.UpdatedAt = time.Now()
	r.buckets[bucket.BucketID] = bucket
	return nil
}

func (r *fakeRepo) DeleteBucket(_ context.Context, bucketID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.buckets, bucketID)
	for stockID, stock := range r.stocks {
		if stock.BucketID == bucketID {
			r.deleteStockLocked(stockID)
		}
	}
	return nil
}

func (r *fakeRepo) GetTotalTargetPercentage(_ context.Context) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	total := decimal.Zero
	for _, bucket := range r.buckets {
		total = total.Add(bucket.TargetPercentage)
	}
	return total, nil
}

func (r *fakeRepo) GetBucketsCount(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.buckets), nil
}

func (r *fakeRepo) GetStocksByBucket(_ context.Context, bucketID int64) ([]model.Stock, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stocks := make([]model.Stock, 0)
	for id := int64(1); id <= r.nextStockID; id++ {
		if stock, ok := r.stocks[id]; ok && stock.BucketID == bucketID {
			stocks = append(stocks, stock)
		}
	}
	return stocks, nil
}

func (r *fakeRepo) GetAllStocks(_ context.Context) ([]model.Stock, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stocks := make([]model.Stock, 0, len(r.stocks))
	for id := int64(1); id <= r.nextStockID; id++ {
		if stock, ok := r.stocks[id]; ok {
			stocks = append(stocks, stock)
		}
	}
	return stocks, nil
}

func (r *fakeRepo) GetStock(_ context.Context, stockID int64) (model.Stock, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stock, ok := r.stocks[stockID]
	if !ok {
		return model.Stock{}, repository.ErrNotFound
	}
	return stock, nil
}

func (r *fakeRepo) InsertStock(_ context.Context, stock model.Stock) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.buckets[stock.BucketID]; !ok {
		return 0, repository.ErrNotFound
	}

	r.nextStockID++
	stock.StockID = r.nextStockID
	stock.CreatedAt = time.Now()
	stock.UpdatedAt = stock.CreatedAt
	r.stocks[stock.StockID] = stock
	return stock.StockID, nil
}

func (r *fakeRepo) UpdateStock(_ context.Context, stock model.Stock) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.stocks[stock.StockID]
	if !ok {
		return repository.ErrNotFound
	}
	stock.CreatedAt = stored.CreatedAt
	stock.UpdatedAt = time.Now()
	r.stocks[stock.StockID] = stock
	return nil
}

func (r *fakeRepo) DeleteStock(_ context.Context, stockID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.deleteStockLocked(stockID)
	return nil
}

func (r *fakeRepo) deleteStockLocked(stockID int64) {
	delete(r.stocks, stockID)
	kept := r.transactions[:0]
	for _, transaction := range r.transactions {
		if transaction.StockID != stockID {
			kept = append(kept, transaction)
		}
	}
	r.transactions = kept
}

func (r *fakeRepo) GetBucketValue(_ context.Context, bucketID int64) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	value := decimal.Zero
	for _, stock := range r.stocks {
		if stock.BucketID == bucketID {
			value = value.Add(stock.CurrentValue)
		}
	}
	return value, nil
}

func (r *fakeRepo) GetTotalPortfolioValue(_ context.Context) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	value := decimal.Zero
	for _, stock := range r.stocks {
		value = value.Add(stock.CurrentValue)
	}
	return value, nil
}

func (r *fakeRepo) InsertTransaction(_ context.Context, transaction model.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.stocks[transaction.StockID]; !ok {
		return repository.ErrNotFound
	}

	r.nextTransactionID++
	transaction.TransactionID = r.nextTransactionID
	r.transactions = append(r.transactions, transaction)
	return nil
}

func (r *fakeRepo) GetTransactionsBySymbol(_ context.Context, symbol string) ([]model.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	transactions := make([]model.Transaction, 0)
	for i := len(r.transactions) - 1; i >= 0; i-- {
		if strings.EqualFold(r.transactions[i].Symbol, symbol) {
			transactions = append(transactions, r.transactions[i])
		}
	}
	return transactions, nil
}

func (r *fakeRepo) InsertSnapshot(_ context.Context, snapshot model.PortfolioSnapshot) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextSnapshotID++
	snapshot.SnapshotID = r.nextSnapshotID
	r.snapshots[snapshot.SnapshotID] = snapshot
	return snapshot.SnapshotID, nil
}

func (r *fakeRepo) InsertBucketSnapshots(_ context.Context, snapshots []model.BucketSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.bucketSnapshots = append(r.bucketSnapshots, snapshots...)
	return nil
}

func (r *fakeRepo) GetHistoricalAllocations(_ context.Context, since time.Time) ([]model.HistoricalAllocation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	allocations := make([]model.HistoricalAllocation, 0)
	for snapshotID := int64(1); snapshotID <= r.nextSnapshotID; snapshotID++ {
		snapshot, ok := r.snapshots[snapshotID]
		if !ok || snapshot.DtCreate.Before(since) {
			continue
		}
		for _, bucketSnapshot := range r.bucketSnapshots {
			if bucketSnapshot.SnapshotID == snapshotID {
				allocations = append(allocations, model.HistoricalAllocation{
					Timestamp:        snapshot.DtCreate,
					BucketID:         bucketSnapshot.BucketID,
					ActualPercentage: bucketSnapshot.ActualPercentage,
				})
			}
		}
	}
	return allocations, nil
}

func (r *fakeRepo) DeleteSnapshotsBefore(_ context.Context, cutoff time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for snapshotID, snapshot := range r.snapshots {
		if snapshot.DtCreate.Before(cutoff) {
			delete(r.snapshots, snapshotID)
			kept := r.bucketSnapshots[:0]
			for _, bucketSnapshot := range r.bucketSnapshots {
				if bucketSnapshot.SnapshotID != snapshotID {
					kept = append(kept, bucketSnapshot)
				}
			}
			r.bucketSnapshots = kept
		}
	}
	return nil
}

// fakeCache always misses so reads hit the repo.
type fakeCache struct{}

func (c *fakeCache) GetPortfolioSummary(_ context.Context) (model.PortfolioSummary, error) {
	return model.PortfolioSummary{}, errCacheMiss
}

func (c *fakeCache) SetPortfolioSummary(_ context.Context, _ model.PortfolioSummary) error {
	return nil
}

func (c *fakeCache) GetBucketDetail(_ context.Context, _ int64) (model.BucketDetailSummary, error) {
	return model.BucketDetailSummary{}, errCacheMiss
}

func (c *fakeCache) SetBucketDetail(_ context.Context, _ int64, _ model.BucketDetailSummary) error {
	return nil
}

func (c *fakeCache) FlushPortfolio(_ context.Context) error {
	return nil
}

type fakeReportGenerator struct{}

func (g *fakeReportGenerator) Generate(_ context.Context, _ model.PortfolioSummary, _ []model.BucketDetailSummary) ([]byte, string, error) {
	return []byte("report"), ".xlsx", nil
}

func newTestService(t *testing.T) (*PortfolioService, *fakeRepo) {
	t.Helper()
	repo := newFakeRepo()
	srv := New(&config.Config{}, repo, &fakeCache{}, &fakeReportGenerator{})
	return srv, repo
}

func mustCreateBucket(t *testing.T, srv *PortfolioService, name string, target int64) int64 {
	t.Helper()
	bucketID, err := srv.CreateBucket(context.Background(), name, decimal.NewFromInt(target), "#2196F3", 0)
	require.NoError(t, err)
	return bucketID
}

func TestCreateBucketAllocationSum(t *testing.T) {
	srv, repo := newTestService(t)
	ctx := context.Background()

	mustCreateBucket(t, srv, "ETF", 30)
	mustCreateBucket(t, srv, "Growth", 30)
	mustCreateBucket(t, srv, "Speculative", 10)
	mustCreateBucket(t, srv, "Bonds", 30)

	// the sum is exactly 100 now, one more percent must be rejected
	_, err := srv.CreateBucket(ctx, "Extra", decimal.NewFromInt(5), "#FF0000", 4)
	require.Error(t, err)

	var validationErr *service.ValidationError
	require.ErrorAs(t, err, &validationErr)

	count, err := repo.GetBucketsCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestCreateBucketZeroTargetAlwaysFits(t *testing.T) {
	srv, _ := newTestService(t)

	mustCreateBucket(t, srv, "Everything", 100)
	mustCreateBucket(t, srv, "Watchlist", 0)
}

func TestUpdateBucketSkipsSumCheck(t *testing.T) {
	srv, repo := newTestService(t)
	ctx := context.Background()

	first := mustCreateBucket(t, srv, "ETF", 60)
	mustCreateBucket(t, srv, "Bonds", 40)

	// a single edit may push the total past 100, only the bulk path validates
	err := srv.UpdateBucket(ctx, model.Bucket{
		BucketID:         first,
		Name:             "ETF",
		TargetPercentage: decimal.NewFromInt(90),
		Color:            "#2196F3",
	})
	require.NoError(t, err)

	total, err := repo.GetTotalTargetPercentage(ctx)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(130).Equal(total))
}

func TestUpdateBucketNotFound(t *testing.T) {
	srv, _ := newTestService(t)

	err := srv.UpdateBucket(context.Background(), model.Bucket{BucketID: 42, Name: "ghost"})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestUpdateAllBuckets(t *testing.T) {
	srv, repo := newTestService(t)
	ctx := context.Background()

	first := mustCreateBucket(t, srv, "ETF", 50)
	second := mustCreateBucket(t, srv, "Bonds", 50)

	t.Run("rejects sum away from 100", func(t *testing.T) {
		err := srv.UpdateAllBuckets(ctx, []model.Bucket{
			{BucketID: first, Name: "ETF", TargetPercentage: decimal.NewFromInt(50)},
			{BucketID: second, Name: "Bonds", TargetPercentage: decimal.NewFromInt(49)},
		})
		require.Error(t, err)

		var validationErr *service.ValidationError
		require.ErrorAs(t, err, &validationErr)

		bucket, err := repo.GetBucket(ctx, first)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(50).Equal(bucket.TargetPercentage))
	})

	t.Run("accepts sum within tolerance", func(t *testing.T) {
		err := srv.UpdateAllBuckets(ctx, []model.Bucket{
			{BucketID: first, Name: "ETF", TargetPercentage: decimal.NewFromFloat(66.6667)},
			{BucketID: second, Name: "Bonds", TargetPercentage: decimal.NewFromFloat(33.3333)},
		})
		require.NoError(t, err)

		bucket, err := repo.GetBucket(ctx, first)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromFloat(66.6667).Equal(bucket.TargetPercentage))
	})
}

func TestTradeBySymbolBuyUnknownOpensPosition(t *testing.T) {
	srv, repo := newTestService(t)
	ctx := context.Background()

	bucketID := mustCreateBucket(t, srv, "ETF", 100)

	err := srv.TradeBySymbol(ctx, bucketID, "vti", decimal.NewFromInt(500), true)
	require.NoError(t, err)

	stocks, err := repo.GetStocksByBucket(ctx, bucketID)
	require.NoError(t, err)
	require.Len(t, stocks, 1)
	assert.Equal(t, "VTI", stocks[0].Symbol)
	assert.True(t, decimal.NewFromInt(500).Equal(stocks[0].CurrentValue))

	transactions, err := srv.GetTransactionsBySymbol(ctx, "VTI")
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, model.TransactionBuy, transactions[0].Kind)
	assert.True(t, decimal.NewFromInt(500).Equal(transactions[0].Amount))
}

func TestTradeBySymbolSellUnknownIsNoOp(t *testing.T) {
	srv, repo := newTestService(t)
	ctx := context.Background()

	bucketID := mustCreateBucket(t, srv, "ETF", 100)

	err := srv.TradeBySymbol(ctx, bucketID, "VTI", decimal.NewFromInt(500), false)
	require.NoError(t, err)

	stocks, err := repo.GetStocksByBucket(ctx, bucketID)
	require.NoError(t, err)
	assert.Empty(t, stocks)

	transactions, err := srv.GetTransactionsBySymbol(ctx, "VTI")
	require.NoError(t, err)
	assert.Empty(t, transactions)
}

func TestTradeBySymbolSellReducesValue(t *testing.T) {
	srv, repo := newTestService(t)
	ctx := context.Background()

	bucketID := mustCreateBucket(t, srv, "ETF", 100)

	err := srv.TradeBySymbol(ctx, bucketID, "VTI", decimal.NewFromInt(1000), true)
	require.NoError(t, err)

	err = srv.TradeBySymbol(ctx, bucketID, "VTI", decimal.NewFromInt(300), false)
	require.NoError(t, err)

	stocks, err := repo.GetStocksByBucket(ctx, bucketID)
	require.NoError(t, err)
	require.Len(t, stocks, 1)
	assert.True(t, decimal.NewFromInt(700).Equal(stocks[0].CurrentValue))

	transactions, err := srv.GetTransactionsBySymbol(ctx, "VTI")
	require.NoError(t, err)
	require.Len(t, transactions, 2)
	// newest first
	assert.Equal(t, model.TransactionSell, transactions[0].Kind)
	assert.True(t, decimal.NewFromInt(-300).Equal(transactions[0].Amount))
}

func TestTradeBySymbolOversellRemovesPosition(t *testing.T) {
	srv, repo := newTestService(t)
	ctx := context.Background()

	bucketID := mustCreateBucket(t, srv, "ETF", 100)

	err := srv.TradeBySymbol(ctx, bucketID, "VTI", decimal.NewFromInt(100), true)
	require.NoError(t, err)

	// selling more than the position holds clamps at zero and removes it
	err = srv.TradeBySymbol(ctx, bucketID, "VTI", decimal.NewFromInt(150), false)
	require.NoError(t, err)

	stocks, err := repo.GetStocksByBucket(ctx, bucketID)
	require.NoError(t, err)
	assert.Empty(t, stocks)

	// transactions ride along with the deleted position
	transactions, err := srv.GetTransactionsBySymbol(ctx, "VTI")
	require.NoError(t, err)
	assert.Empty(t, transactions)
}

func TestAddRemoveFunds(t *testing.T) {
	srv, repo := newTestService(t)
	ctx := context.Background()

	bucketID := mustCreateBucket(t, srv, "ETF", 100)

	stockID, err := srv.BuyStock(ctx, model.Stock{
		BucketID:     bucketID,
		Symbol:       "VTI",
		CurrentValue: decimal.NewFromInt(1000),
	})
	require.NoError(t, err)

	err = srv.AddRemoveFunds(ctx, stockID, decimal.NewFromInt(-250))
	require.NoError(t, err)

	stock, err := repo.GetStock(ctx, stockID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(750).Equal(stock.CurrentValue))

	transactions, err := srv.GetTransactionsBySymbol(ctx, "VTI")
	require.NoError(t, err)
	require.Len(t, transactions, 2)
	assert.Equal(t, model.TransactionSell, transactions[0].Kind)
	assert.True(t, decimal.NewFromInt(-250).Equal(transactions[0].Amount))
}

func TestAddRemoveFundsMissingStockIsNoOp(t *testing.T) {
	srv, _ := newTestService(t)

	err := srv.AddRemoveFunds(context.Background(), 42, decimal.NewFromInt(100))
	assert.NoError(t, err)
}

func TestUpdateStockTarget(t *testing.T) {
	srv, repo := newTestService(t)
	ctx := context.Background()

	bucketID := mustCreateBucket(t, srv, "ETF", 100)

	stockID, err := srv.BuyStock(ctx, model.Stock{
		BucketID:     bucketID,
		Symbol:       "VTI",
		CurrentValue: decimal.NewFromInt(1000),
	})
	require.NoError(t, err)

	err = srv.UpdateStockTarget(ctx, stockID, decimal.NewFromInt(60))
	require.NoError(t, err)

	stock, err := repo.GetStock(ctx, stockID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(60).Equal(stock.TargetPercentage))

	// a target change is not a trade
	transactions, err := srv.GetTransactionsBySymbol(ctx, "VTI")
	require.NoError(t, err)
	assert.Len(t, transactions, 1)
}

func TestGetBucketDetailNotFound(t *testing.T) {
	srv, _ := newTestService(t)

	_, err := srv.GetBucketDetail(context.Background(), 42)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestGetPortfolioSummary(t *testing.T) {
	srv, _ := newTestService(t)
	ctx := context.Background()

	etf := mustCreateBucket(t, srv, "ETF", 70)
	bonds := mustCreateBucket(t, srv, "Bonds", 30)

	err := srv.TradeBySymbol(ctx, etf, "VTI", decimal.NewFromInt(1000), true)
	require.NoError(t, err)
	err = srv.TradeBySymbol(ctx, bonds, "BND", decimal.NewFromInt(500), true)
	require.NoError(t, err)

	summary, err := srv.GetPortfolioSummary(ctx)
	require.NoError(t, err)

	require.Len(t, summary.Buckets, 2)
	assert.True(t, decimal.NewFromInt(1500).Equal(summary.TotalValue))
	assert.Equal(t, "66.7", summary.Buckets[0].CurrentPercentage.Round(1).String())
	assert.Equal(t, "33.3", summary.Buckets[1].CurrentPercentage.Round(1).String())
	assert.False(t, summary.LastUpdated.IsZero())
}

func TestSnapshotAndHistory(t *testing.T) {
	srv, _ := newTestService(t)
	ctx := context.Background()

	etf := mustCreateBucket(t, srv, "ETF", 70)
	bonds := mustCreateBucket(t, srv, "Bonds", 30)

	err := srv.TradeBySymbol(ctx, etf, "VTI", decimal.NewFromInt(750), true)
	require.NoError(t, err)
	err = srv.TradeBySymbol(ctx, bonds, "BND", decimal.NewFromInt(250), true)
	require.NoError(t, err)

	err = srv.CreateSnapshot(ctx, nil)
	require.NoError(t, err)

	points, err := srv.GetHistoricalData(ctx, 1)
	require.NoError(t, err)
	require.Len(t, points, 1)

	point := points[0]
	require.Len(t, point.BucketAllocations, 2)
	assert.True(t, decimal.NewFromInt(75).Equal(point.BucketAllocations[etf]))
	assert.True(t, decimal.NewFromInt(25).Equal(point.BucketAllocations[bonds]))

	// snapshotted percentages survive later trades untouched
	err = srv.TradeBySymbol(ctx, etf, "VTI", decimal.NewFromInt(750), false)
	require.NoError(t, err)

	points, err = srv.GetHistoricalData(ctx, 1)
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.True(t, decimal.NewFromInt(75).Equal(points[0].BucketAllocations[etf]))
}

func TestSnapshotGroupingAndPurge(t *testing.T) {
	srv, _ := newTestService(t)
	ctx := context.Background()

	etf := mustCreateBucket(t, srv, "ETF", 100)
	err := srv.TradeBySymbol(ctx, etf, "VTI", decimal.NewFromInt(1000), true)
	require.NoError(t, err)

	require.NoError(t, srv.CreateSnapshot(ctx, nil))
	require.NoError(t, srv.CreateSnapshot(ctx, nil))

	points, err := srv.GetHistoricalData(ctx, 1)
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.False(t, points[0].Timestamp.After(points[1].Timestamp))

	err = srv.PurgeSnapshotsBefore(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)

	points, err = srv.GetHistoricalData(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, points)
}

func TestDeleteBucketCascades(t *testing.T) {
	srv, repo := newTestService(t)
	ctx := context.Background()

	bucketID := mustCreateBucket(t, srv, "ETF", 100)
	err := srv.TradeBySymbol(ctx, bucketID, "VTI", decimal.NewFromInt(1000), true)
	require.NoError(t, err)

	err = srv.DeleteBucket(ctx, bucketID)
	require.NoError(t, err)

	stocks, err := repo.GetAllStocks(ctx)
	require.NoError(t, err)
	assert.Empty(t, stocks)

	transactions, err := srv.GetTransactionsBySymbol(ctx, "VTI")
	require.NoError(t, err)
	assert.Empty(t, transactions)
}
