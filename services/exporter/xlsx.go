package exporter

import (
	"github.com/tealeg/xlsx/v2"

	"github.com/HolyKasra/NezamPezeshki-Crawler/internal/scraper"
	"github.com/HolyKasra/NezamPezeshki-Crawler/logger"
	errs "github.com/HolyKasra/NezamPezeshki-Crawler/pkg/errors"
)

// XLSXExporter implements Exporter by writing a single-sheet workbook with a
// header row followed by one row per record
type XLSXExporter struct {
	path      string
	sheetName string
}

var _ Exporter = (*XLSXExporter)(nil)

// NewXLSXExporter creates an exporter writing to the given file path
func NewXLSXExporter(path string) *XLSXExporter {
	return &XLSXExporter{
		path:      path,
		sheetName: "Doctors",
	}
}

// Export writes the records to the workbook. The column order is fixed so
// repeated runs produce comparable files.
func (e *XLSXExporter) Export(records []scraper.DoctorRecord) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet(e.sheetName)
	if err != nil {
		return errs.NewExport("export", "failed to create sheet", err)
	}

	header := sheet.AddRow()
	for _, column := range scraper.RecordColumns {
		header.AddCell().SetString(column)
	}

	for _, record := range records {
		row := sheet.AddRow()
		for _, column := range scraper.RecordColumns {
			row.AddCell().SetString(record[column])
		}
	}

	if err := file.Save(e.path); err != nil {
		return errs.NewExport("export", "failed to save workbook to "+e.path, err)
	}

	logger.ForExporter().Info().
		Int("records", len(records)).
		Str("path", e.path).
		Msg("Export written")
	return nil
}
