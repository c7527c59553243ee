package portfolioService

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/evpopov/bucket_tracker/internal/model"
	"github.com/evpopov/bucket_tracker/utils"
)

// GenerateAllocationReport writes an allocation workbook into the configured
// reports directory and returns its path.
func (s *PortfolioService) GenerateAllocationReport(ctx context.Context) (path string, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "PortfolioService.GenerateAllocationReport"

	slog.Debug("GenerateAllocationReport start", slog.String("rqID", rqID), slog.String("op", op))
	defer func() {
		slog.Debug("GenerateAllocationReport finished", slog.String("rqID", rqID), slog.String("op", op))
	}()

	summary, err := s.GetPortfolioSummary(ctx)
	if err != nil {
		return "", err
	}

	details := make([]model.BucketDetailSummary, 0, len(summary.Buckets))
	for _, allocation := range summary.Buckets {
		detail, err := s.GetBucketDetail(ctx, allocation.Bucket.BucketID)
		if err != nil {
			slog.Error("got error from GetBucketDetail", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
			return "", err
		}
		details = append(details, detail)
	}

	fileBytes, fileExtension, err := s.reportGenerator.Generate(ctx, summary, details)
	if err != nil {
		slog.Error("got error from reportGenerator.Generate", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return "", err
	}

	if err := os.MkdirAll(s.cfg.Reports.Dir, 0o755); err != nil {
		slog.Error("can't create reports dir", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return "", err
	}

	fileName := fmt.Sprintf("allocation_%s%s", time.Now().Format("2006-01-02_150405"), fileExtension)
	path = filepath.Join(s.cfg.Reports.Dir, fileName)

	if err := os.WriteFile(path, fileBytes, 0o644); err != nil {
		slog.Error("can't write report file", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return "", err
	}

	return path, nil
}
