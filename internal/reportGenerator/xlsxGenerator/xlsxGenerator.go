package xlsxGenerator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/evpopov/bucket_tracker/internal/model"
	"github.com/evpopov/bucket_tracker/utils"
	"github.com/xuri/excelize/v2"
)

const allocationSheet = "Allocation"

type XLSXGenerator struct{}

func New() *XLSXGenerator {
	return &XLSXGenerator{}
}

func (g *XLSXGenerator) Generate(ctx context.Context, summary model.PortfolioSummary, details []model.BucketDetailSummary) (fileBytes []byte, fileExtension string, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "XLSXGenerator.Generate"

	slog.Debug("Generate start", slog.String("rqID", rqID), slog.String("op", op))

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			slog.Error("got error while closing file", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		}
	}()

	if err := g.fillAllocationSheet(f, summary); err != nil {
		return nil, "", err
	}

	for i, detail := range details {
		if err := g.fillBucketSheet(f, detail, i+1); err != nil {
			return nil, "", err
		}
	}

	// drop the default "Sheet1"
	if err := f.DeleteSheet("Sheet1"); err != nil {
		slog.Error("got error while deleting Sheet1", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		slog.Error("got error while saving file to bytes buffer", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, "", err
	}

	slog.Debug("Generate completed", slog.String("rqID", rqID), slog.String("op", op))

	return buf.Bytes(), ".xlsx", nil
}

func (g *XLSXGenerator) headerStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Font: &excelize.Font{
			Bold: true,
			Size: 11,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Pattern: 1,
			Color:   []string{"#cfe2f3"},
		},
	})
}

func (g *XLSXGenerator) fillAllocationSheet(f *excelize.File, summary model.PortfolioSummary) error {
	_, err := f.NewSheet(allocationSheet)
	if err != nil {
		return err
	}

	if err := f.MergeCell(allocationSheet, "A1", "F1"); err != nil {
		return err
	}
	f.SetCellValue(allocationSheet, "A1", "Buckets")

	styleID, err := g.headerStyle(f)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(allocationSheet, "A1", "A1", styleID); err != nil {
		return err
	}

	_ = f.SetCellStr(allocationSheet, "A2", "bucket")
	_ = f.SetCellStr(allocationSheet, "B2", "target %")
	_ = f.SetCellStr(allocationSheet, "C2", "current %")
	_ = f.SetCellStr(allocationSheet, "D2", "difference")
	_ = f.SetCellStr(allocationSheet, "E2", "value")
	_ = f.SetCellStr(allocationSheet, "F2", "stocks")

	row := 3
	for _, allocation := range summary.Buckets {
		_ = f.SetCellStr(allocationSheet, fmt.Sprintf("A%d", row), allocation.Bucket.Name)
		_ = f.SetCellValue(allocationSheet, fmt.Sprintf("B%d", row), allocation.Bucket.TargetPercentage.InexactFloat64())
		_ = f.SetCellValue(allocationSheet, fmt.Sprintf("C%d", row), allocation.CurrentPercentage.InexactFloat64())
		_ = f.SetCellValue(allocationSheet, fmt.Sprintf("D%d", row), allocation.Difference.InexactFloat64())
		_ = f.SetCellValue(allocationSheet, fmt.Sprintf("E%d", row), allocation.CurrentValue.InexactFloat64())
		_ = f.SetCellValue(allocationSheet, fmt.Sprintf("F%d", row), allocation.StockCount)
		row++
	}

	_ = f.SetCellStr(allocationSheet, fmt.Sprintf("A%d", row), "total")
	_ = f.SetCellValue(allocationSheet, fmt.Sprintf("E%d", row), summary.TotalValue.InexactFloat64())

	return nil
}

func (g *XLSXGenerator) fillBucketSheet(f *excelize.File, detail model.BucketDetailSummary, ordinal int) error {
	sheetName := fmt.Sprintf("%d. %s", ordinal, detail.Bucket.Name)
	_, err := f.NewSheet(sheetName)
	if err != nil {
		return err
	}

	if err := f.MergeCell(sheetName, "A1", "F1"); err != nil {
		return err
	}
	f.SetCellValue(sheetName, "A1", detail.Bucket.Name)

	styleID, err := g.headerStyle(f)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetName, "A1", "A1", styleID); err != nil {
		return err
	}

	_ = f.SetCellStr(sheetName, "A2", "symbol")
	_ = f.SetCellStr(sheetName, "B2", "name")
	_ = f.SetCellStr(sheetName, "C2", "value")
	_ = f.SetCellStr(sheetName, "D2", "current %")
	_ = f.SetCellStr(sheetName, "E2", "target %")
	_ = f.SetCellStr(sheetName, "F2", "over target")

	row := 3
	for _, stock := range detail.Stocks {
		_ = f.SetCellStr(sheetName, fmt.Sprintf("A%d", row), stock.Symbol)
		_ = f.SetCellStr(sheetName, fmt.Sprintf("B%d", row), stock.Name)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), stock.CurrentValue.InexactFloat64())
		_ = f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), stock.CurrentPercentage.InexactFloat64())
		_ = f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), stock.TargetPercentage.InexactFloat64())
		_ = f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), stock.OverAllocated)
		row++
	}

	_ = f.SetCellStr(sheetName, fmt.Sprintf("A%d", row), "total")
	_ = f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), detail.TotalValue.InexactFloat64())

	return nil
}
