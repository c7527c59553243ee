package portfolioService

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/evpopov/bucket_tracker/config"
	"github.com/evpopov/bucket_tracker/data/repository"
	"github.com/evpopov/bucket_tracker/internal/model"
	"github.com/evpopov/bucket_tracker/internal/service"
	"github.com/evpopov/bucket_tracker/utils"
	"github.com/shopspring/decimal"
)

type Repository interface {
	WithinTransaction(ctx context.Context, tFunc func(ctx context.Context) error) error
	GetBuckets(ctx context.Context) ([]model.Bucket, error)
	GetBucket(ctx context.Context, bucketID int64) (model.Bucket, error)
	InsertBucket(ctx context.Context, bucket model.Bucket) (bucketID int64, err error)
	UpdateBucket(ctx context.Context, bucket model.Bucket) error
	DeleteBucket(ctx context.Context, bucketID int64) error
	GetTotalTargetPercentage(ctx context.Context) (decimal.Decimal, error)
	GetBucketsCount(ctx context.Context) (int, error)
	GetStocksByBucket(ctx context.Context, bucketID int64) ([]model.Stock, error)
	GetAllStocks(ctx context.Context) ([]model.Stock, error)
	GetStock(ctx context.Context, stockID int64) (model.Stock, error)
	InsertStock(ctx context.Context, stock model.Stock) (stockID int64, err error)
	UpdateStock(ctx context.Context, stock model.Stock) error
	DeleteStock(ctx context.Context, stockID int64) error
	GetBucketValue(ctx context.Context, bucketID int64) (decimal.Decimal, error)
	GetTotalPortfolioValue(ctx context.Context) (decimal.Decimal, error)
	InsertTransaction(ctx context.Context, transaction model.Transaction) error
	GetTransactionsBySymbol(ctx context.Context, symbol string) ([]model.Transaction, error)
	InsertSnapshot(ctx context.Context, snapshot model.PortfolioSnapshot) (snapshotID int64, err error)
	InsertBucketSnapshots(ctx context.Context, snapshots []model.BucketSnapshot) error
	GetHistoricalAllocations(ctx context.Context, since time.Time) ([]model.HistoricalAllocation, error)
	DeleteSnapshotsBefore(ctx context.Context, cutoff time.Time) error
}

type Cache interface {
	GetPortfolioSummary(ctx context.Context) (model.PortfolioSummary, error)
	SetPortfolioSummary(ctx context.Context, summary model.PortfolioSummary) error
	GetBucketDetail(ctx context.Context, bucketID int64) (model.BucketDetailSummary, error)
	SetBucketDetail(ctx context.Context, bucketID int64, detail model.BucketDetailSummary) error
	FlushPortfolio(ctx context.Context) error
}

type ReportGenerator interface {
	Generate(ctx context.Context, summary model.PortfolioSummary, details []model.BucketDetailSummary) (fileBytes []byte, fileExtension string, err error)
}

type PortfolioService struct {
	cfg             *config.Config
	repo            Repository
	cache           Cache
	reportGenerator ReportGenerator

	mu          sync.Mutex
	subscribers map[int64]chan model.PortfolioSummary
	nextSubID   int64
}

func New(cfg *config.Config, repo Repository, cache Cache, reportGenerator ReportGenerator) *PortfolioService {
	return &PortfolioService{
		cfg:             cfg,
		repo:            repo,
		cache:           cache,
		reportGenerator: reportGenerator,
		subscribers:     make(map[int64]chan model.PortfolioSummary),
	}
}

func (s *PortfolioService) GetPortfolioSummary(ctx context.Context) (summary model.PortfolioSummary, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "PortfolioService.GetPortfolioSummary"

	slog.Debug("GetPortfolioSummary start", slog.String("rqID", rqID), slog.String("op", op))
	defer func() {
		slog.Debug("GetPortfolioSummary finished", slog.String("rqID", rqID), slog.String("op", op))
	}()

	summary, err = s.cache.GetPortfolioSummary(ctx)
	if err == nil {
		return summary, nil
	}

	slog.Warn("can't get portfolio summary from cache", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))

	buckets, err := s.repo.GetBuckets(ctx)
	if err != nil {
		slog.Error("got error from repo.GetBuckets", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return model.PortfolioSummary{}, err
	}

	stocks, err := s.repo.GetAllStocks(ctx)
	if err != nil {
		slog.Error("got error from repo.GetAllStocks", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return model.PortfolioSummary{}, err
	}

	summary = buildPortfolioSummary(buckets, stocks)

	go s.cache.SetPortfolioSummary(context.WithoutCancel(ctx), summary)

	return summary, nil
}

func (s *PortfolioService) GetBucketDetail(ctx context.Context, bucketID int64) (detail model.BucketDetailSummary, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "PortfolioService.GetBucketDetail"

	slog.Debug("GetBucketDetail start", slog.String("rqID", rqID), slog.String("op", op), slog.Int64("bucketID", bucketID))
	defer func() {
		slog.Debug("GetBucketDetail finished", slog.String("rqID", rqID), slog.String("op", op), slog.Int64("bucketID", bucketID))
	}()

	detail, err = s.cache.GetBucketDetail(ctx, bucketID)
	if err == nil {
		return detail, nil
	}

	slog.Warn("can't get bucket detail from cache", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))

	bucket, err := s.repo.GetBucket(ctx, bucketID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.BucketDetailSummary{}, service.ErrNotFound
		}
		slog.Error("got error from repo.GetBucket", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return model.BucketDetailSummary{}, err
	}

	stocks, err := s.repo.GetStocksByBucket(ctx, bucketID)
	if err != nil {
		slog.Error("got error from repo.GetStocksByBucket", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return model.BucketDetailSummary{}, err
	}

	detail = buildBucketDetail(bucket, stocks)

	go s.cache.SetBucketDetail(context.WithoutCancel(ctx), bucketID, detail)

	return detail, nil
}

func (s *PortfolioService) CreateBucket(ctx context.Context, name string, targetPercentage decimal.Decimal, color string, displayOrder int) (bucketID int64, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "PortfolioService.CreateBucket"

	slog.Debug("CreateBucket start", slog.String("rqID", rqID), slog.String("op", op), slog.String("name", name))
	defer func() {
		slog.Debug("CreateBucket finished", slog.String("rqID", rqID), slog.String("op", op), slog.String("name", name))
	}()

	err = s.repo.WithinTransaction(ctx, func(ctx context.Context) error {
		total, err := s.repo.GetTotalTargetPercentage(ctx)
		if err != nil {
			slog.Error("got error from repo.GetTotalTargetPercentage", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
			return err
		}

		if total.Add(targetPercentage).GreaterThan(hundredPercent) {
			return service.NewValidationError("total target percentage exceeds 100%")
		}

		bucketID, err = s.repo.InsertBucket(ctx, model.Bucket{
			Name:             name,
			TargetPercentage: targetPercentage,
			Color:            color,
			DisplayOrder:     displayOrder,
		})
		if err != nil {
			slog.Error("got error from repo.InsertBucket", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
			return err
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	s.afterMutation(ctx)

	return bucketID, nil
}

// UpdateBucket performs no allocation-sum check: a single edit may
// temporarily push the total past 100%, only the bulk path enforces
// exactness.
func (s *PortfolioService) UpdateBucket(ctx context.Context, bucket model.Bucket) (err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "PortfolioService.UpdateBucket"

	slog.Debug("UpdateBucket start", slog.String("rqID", rqID), slog.String("op", op), slog.Int64("bucketID", bucket.BucketID))
	defer func() {
		slog.Debug("UpdateBucket finished", slog.String("rqID", rqID), slog.String("op", op), slog.Int64("bucketID", bucket.BucketID))
	}()

	err = s.repo.UpdateBucket(ctx, bucket)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return service.ErrNotFound
		}
		slog.Error("got error from repo.UpdateBucket", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return err
	}

	s.afterMutation(ctx)

	return nil
}

// UpdateAllBuckets replaces the target allocation of every passed bucket as
// one atomic unit. The proposed targets must sum to exactly 100%.
func (s *PortfolioService) UpdateAllBuckets(ctx context.Context, buckets []model.Bucket) (err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "PortfolioService.UpdateAllBuckets"

	slog.Debug("UpdateAllBuckets start", slog.String("rqID", rqID), slog.String("op", op), slog.Int("count", len(buckets)))
	defer func() {
		slog.Debug("UpdateAllBuckets finished", slog.String("rqID", rqID), slog.String("op", op))
	}()

	total := decimal.Zero
	for _, bucket := range buckets {
		total = total.Add(bucket.TargetPercentage)
	}

	if total.Sub(hundredPercent).Abs().GreaterThan(bulkTolerance) {
		return service.NewValidationError("total target percentage must equal 100%")
	}

	err = s.repo.WithinTransaction(ctx, func(ctx context.Context) error {
		for _, bucket := range buckets {
			if err := s.repo.UpdateBucket(ctx, bucket); err != nil {
				slog.Error("got error from repo.UpdateBucket", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return service.ErrNotFound
		}
		return err
	}

	s.afterMutation(ctx)

	return nil
}

func (s *PortfolioService) DeleteBucket(ctx context.Context, bucketID int64) (err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "PortfolioService.DeleteBucket"

	slog.Debug("DeleteBucket start", slog.String("rqID", rqID), slog.String("op", op), slog.Int64("bucketID", bucketID))
	defer func() {
		slog.Debug("DeleteBucket finished", slog.String("rqID", rqID), slog.String("op", op), slog.Int64("bucketID", bucketID))
	}()

	err = s.repo.DeleteBucket(ctx, bucketID)
	if err != nil {
		slog.Error("got error from repo.DeleteBucket", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return err
	}

	s.afterMutation(ctx)

	return nil
}

// afterMutation flushes cached views and pushes a fresh summary to
// subscribers. The flush is synchronous so a concurrent read can't see the
// stale summary after the mutation commits.
func (s *PortfolioService) afterMutation(ctx context.Context) {
	rqID := utils.GetRequestIDFromCtx(ctx)

	if err := s.cache.FlushPortfolio(ctx); err != nil {
		slog.Error("got error from cache.FlushPortfolio", slog.String("rqID", rqID), slog.String("err", err.Error()))
	}

	summary, err := s.GetPortfolioSummary(ctx)
	if err != nil {
		slog.Error("can't recompute summary after mutation", slog.String("rqID", rqID), slog.String("err", err.Error()))
		return
	}

	s.broadcastSummary(summary)
}
