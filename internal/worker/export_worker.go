// Package worker consumes dataset-loaded events and materializes .xlsx
// exports of the persisted snapshot.
package worker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/alfaizmac/kcc-budget-performance/internal/amqp"
	"github.com/alfaizmac/kcc-budget-performance/internal/log"
	"github.com/alfaizmac/kcc-budget-performance/internal/storage"
)

const exportSheet = "Budget"

// ExportWorker re-reads the snapshot on every dataset event and writes
// it out as a workbook named after the dataset version. Re-delivered
// events are no-ops once the file exists.
type ExportWorker struct {
	snapshots storage.SnapshotRepository
	exportDir string
	logger    *log.Logger
}

func NewExportWorker(snapshots storage.SnapshotRepository, exportDir string) *ExportWorker {
	return &ExportWorker{
		snapshots: snapshots,
		exportDir: exportDir,
		logger:    log.ForComponent(log.ComponentWorker),
	}
}

// HandleDatasetLoaded processes one dataset-loaded event.
func (w *ExportWorker) HandleDatasetLoaded(ctx context.Context, msg *amqp.DatasetLoadedMessage) error {
	path := w.exportPath(msg.Version)
	if _, err := os.Stat(path); err == nil {
		w.logger.InfoContext(ctx, "Export already written, skipping",
			log.FieldDatasetVersion, msg.Version, log.FieldExportPath, path)
		return nil
	}

	headers, rows, err := w.snapshots.LoadSnapshot(ctx)
	if errors.Is(err, storage.ErrNoSnapshot) {
		w.logger.WarnContext(ctx, "Dataset event without a stored snapshot, nothing to export",
			log.FieldDatasetVersion, msg.Version)
		return nil
	}
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}

	if err := w.writeWorkbook(path, headers, rows); err != nil {
		return fmt.Errorf("write export: %w", err)
	}

	w.logger.InfoContext(ctx, "Export written",
		log.FieldDatasetVersion, msg.Version,
		log.FieldExportPath, path,
		log.FieldRowCount, len(rows),
		log.FieldColumnCount, len(headers))
	return nil
}

func (w *ExportWorker) exportPath(version uint64) string {
	return filepath.Join(w.exportDir, fmt.Sprintf("budget_v%d.xlsx", version))
}

func (w *ExportWorker) writeWorkbook(path string, headers []string, rows [][]string) error {
	if err := os.MkdirAll(w.exportDir, 0755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := f.SetSheetName(sheet, exportSheet); err != nil {
		return err
	}

	if err := setRow(f, 1, headers); err != nil {
		return err
	}
	for i, row := range rows {
		if err := setRow(f, i+2, row); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}

func setRow(f *excelize.File, rowNum int, cells []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	values := make([]interface{}, len(cells))
	for i, c := range cells {
		values[i] = c
	}
	return f.SetSheetRow(exportSheet, cell, &values)
}
