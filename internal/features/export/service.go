package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"go-assetreport/internal/features/catalog"
	"go-assetreport/internal/features/columns"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Format of an export payload.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// Row is one export-ready record: a display name plus enriched cell values
// keyed by field id.
type Row struct {
	Name   string
	Fields map[string]string
}

// Exporter renders a completed run into a downloadable document. The column
// set and order come straight from the selected entries of the column
// model; the row data is already stringified, so export never recomputes
// anything.
type Exporter interface {
	Export(rows []Row, model *columns.Model, format, name string) ([]byte, string, error)
}

type ExporterImpl struct {
	Logger *zap.Logger
}

func NewExporter(logger *zap.Logger) Exporter {
	return &ExporterImpl{Logger: logger}
}

func (e *ExporterImpl) Export(rows []Row, model *columns.Model, format, name string) ([]byte, string, error) {
	selected := model.SelectedOrdered()
	if len(selected) == 0 {
		return nil, "", fmt.Errorf("no columns selected for export")
	}

	switch format {
	case FormatCSV:
		return e.exportCSV(rows, selected, name)
	case FormatXLSX:
		return e.exportExcel(rows, selected, name)
	default:
		return nil, "", fmt.Errorf("unsupported format: %s", format)
	}
}

func (e *ExporterImpl) exportCSV(rows []Row, selected []columns.ColumnEntry, name string) ([]byte, string, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Name"}
	for _, entry := range selected {
		headers = append(headers, entry.Field.Label)
	}
	if err := writer.Write(headers); err != nil {
		return nil, "", err
	}

	for _, r := range rows {
		row := []string{r.Name}
		for _, entry := range selected {
			row = append(row, cellValue(r, entry))
		}
		if err := writer.Write(row); err != nil {
			return nil, "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("%s_%s.csv", name, time.Now().Format("20060102_150405"))
	return buf.Bytes(), filename, nil
}

func (e *ExporterImpl) exportExcel(rows []Row, selected []columns.ColumnEntry, name string) ([]byte, string, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Report"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	cell, _ := excelize.CoordinatesToCellName(1, 1)
	f.SetCellValue(sheetName, cell, "Name")
	f.SetCellStyle(sheetName, cell, cell, headerStyle)
	for i, entry := range selected {
		cell, _ := excelize.CoordinatesToCellName(i+2, 1)
		f.SetCellValue(sheetName, cell, entry.Field.Label)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	colorStyles := map[string]int{}

	for rowIdx, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, rowIdx+2)
		f.SetCellValue(sheetName, cell, r.Name)

		for colIdx, entry := range selected {
			cell, _ := excelize.CoordinatesToCellName(colIdx+2, rowIdx+2)
			f.SetCellValue(sheetName, cell, cellValue(r, entry))
			if entry.Field.Origin != catalog.OriginColor || entry.Color == "" {
				continue
			}
			styleID, ok := colorStyles[entry.Color]
			if !ok {
				styleID, err = f.NewStyle(&excelize.Style{
					Fill: excelize.Fill{Type: "pattern", Color: []string{entry.Color}, Pattern: 1},
				})
				if err != nil {
					e.Logger.Warn("failed to build fill style", zap.String("color", entry.Color), zap.Error(err))
					continue
				}
				colorStyles[entry.Color] = styleID
			}
			f.SetCellStyle(sheetName, cell, cell, styleID)
		}
	}

	col, _ := excelize.ColumnNumberToName(1)
	f.SetColWidth(sheetName, col, col, 25)
	for i, entry := range selected {
		col, _ := excelize.ColumnNumberToName(i + 2)
		f.SetColWidth(sheetName, col, col, widthFor(entry))
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("%s_%s.xlsx", name, time.Now().Format("20060102_150405"))
	return buffer.Bytes(), filename, nil
}

// cellValue reads one cell from an enriched row. Color columns carry their
// label as a textual placeholder instead of data, in every format.
func cellValue(r Row, entry columns.ColumnEntry) string {
	if entry.Field.Origin == catalog.OriginColor {
		return entry.Field.Label
	}
	return r.Fields[entry.Field.ID]
}

func widthFor(entry columns.ColumnEntry) float64 {
	switch entry.Field.ValueType {
	case catalog.ValueTypeNumber, catalog.ValueTypeBoolean:
		return 12
	case catalog.ValueTypeDate:
		return 18
	case catalog.ValueTypeColor:
		return 8
	default:
		return 20
	}
}
