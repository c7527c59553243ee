package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/evpopov/bucket_tracker/config"
	"github.com/evpopov/bucket_tracker/internal/model"
	"github.com/evpopov/bucket_tracker/utils"
	"github.com/redis/go-redis/v9"
)

const (
	summaryKey         = "portfolio:summary"
	bucketDetailPrefix = "bucket:detail:"
)

type RedisCache struct {
	redis *redis.Client
	cfg   *config.Config
}

func NewRedisCache(redisClient *redis.Client, cfg *config.Config) *RedisCache {
	return &RedisCache{redis: redisClient, cfg: cfg}
}

func (r *RedisCache) GetPortfolioSummary(ctx context.Context) (model.PortfolioSummary, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	slog.Debug("GetPortfolioSummary start", slog.String("rqID", rqID))

	res, err := r.redis.Get(ctx, summaryKey).Result()
	if err != nil {
		return model.PortfolioSummary{}, err
	}

	summary := model.PortfolioSummary{}
	err = json.Unmarshal([]byte(res), &summary)
	if err != nil {
		slog.Error(
			"can't unmarshall summary in GetPortfolioSummary",
			slog.String("rqID", rqID),
			slog.String("err", err.Error()),
			slog.String("resultFromRedis", res),
		)
		return model.PortfolioSummary{}, errors.New("can't unmarshall summary")
	}

	slog.Debug("GetPortfolioSummary finished", slog.String("rqID", rqID))

	return summary, nil
}

func (r *RedisCache) SetPortfolioSummary(ctx context.Context, summary model.PortfolioSummary) error {
	rqID := utils.GetRequestIDFromCtx(ctx)
	slog.Debug("SetPortfolioSummary start", slog.String("rqID", rqID))

	summaryJson, err := json.Marshal(summary)
	if err != nil {
		slog.Error("can't marshall summary in SetPortfolioSummary", slog.String("rqID", rqID), slog.String("err", err.Error()))
		return errors.New("can't marshall summary")
	}

	_, err = r.redis.Set(ctx, summaryKey, summaryJson, r.cfg.Cache.SummaryExpiration).Result()
	if err != nil {
		slog.Error("failed on redis.Set", slog.String("rqID", rqID), slog.String("err", err.Error()), slog.String("key", summaryKey))
		return err
	}

	slog.Debug("SetPortfolioSummary completed", slog.String("rqID", rqID))

	return nil
}

func (r *RedisCache) GetBucketDetail(ctx context.Context, bucketID int64) (model.BucketDetailSummary, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	slog.Debug("GetBucketDetail start", slog.String("rqID", rqID), slog.Int64("bucketID", bucketID))

	key := fmt.Sprintf("%s%d", bucketDetailPrefix, bucketID)
	res, err := r.redis.Get(ctx, key).Result()
	if err != nil {
		return model.BucketDetailSummary{}, err
	}

	detail := model.BucketDetailSummary{}
	err = json.Unmarshal([]byte(res), &detail)
	if err != nil {
		slog.Error(
			"can't unmarshall detail in GetBucketDetail",
			slog.String("rqID", rqID),
			slog.String("err", err.Error()),
			slog.String("resultFromRedis", res),
		)
		return model.BucketDetailSummary{}, errors.New("can't unmarshall detail")
	}

	slog.Debug("GetBucketDetail finished", slog.String("rqID", rqID))

	return detail, nil
}

func (r *RedisCache) SetBucketDetail(ctx context.Context, bucketID int64, detail model.BucketDetailSummary) error {
	rqID := utils.GetRequestIDFromCtx(ctx)
	slog.Debug("SetBucketDetail start", slog.String("rqID", rqID), slog.Int64("bucketID", bucketID))

	detailJson, err := json.Marshal(detail)
	if err != nil {
		slog.Error("can't marshall detail in SetBucketDetail", slog.String("rqID", rqID), slog.String("err", err.Error()))
		return errors.New("can't marshall detail")
	}

	key := fmt.Sprintf("%s%d", bucketDetailPrefix, bucketID)
	_, err = r.redis.Set(ctx, key, detailJson, r.cfg.Cache.BucketDetailExpiration).Result()
	if err != nil {
		slog.Error("failed on redis.Set", slog.String("rqID", rqID), slog.String("err", err.Error()), slog.String("key", key))
		return err
	}

	slog.Debug("SetBucketDetail completed", slog.String("rqID", rqID))

	return nil
}

func (r *RedisCache) FlushPortfolio(ctx context.Context) error {
	rqID := utils.GetRequestIDFromCtx(ctx)
	slog.Debug("FlushPortfolio start", slog.String("rqID", rqID))

	keys := []string{summaryKey}

	iter := r.redis.Scan(ctx, 0, bucketDetailPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		slog.Error("failed on redis.Scan", slog.String("rqID", rqID), slog.String("err", err.Error()))
		return err
	}

	_, err := r.redis.Del(ctx, keys...).Result()
	if err != nil {
		slog.Error("failed on redis.Del", slog.String("rqID", rqID), slog.String("err", err.Error()))
		return err
	}

	slog.Debug("FlushPortfolio completed", slog.String("rqID", rqID))

	return nil
}
