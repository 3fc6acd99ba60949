package export

import (
	"encoding/csv"
	"strings"
	"testing"

	"go-assetreport/internal/features/catalog"
	"go-assetreport/internal/features/columns"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func order(n int) *int { return &n }

func testModel() *columns.Model {
	return &columns.Model{Entries: []columns.ColumnEntry{
		{
			Field:    catalog.FieldDescriptor{ID: "color_fill.1", Label: "Color Fill", ValueType: catalog.ValueTypeColor, Origin: catalog.OriginColor},
			Selected: true,
			Order:    order(1),
			Color:    "#FFCC00",
		},
		{
			Field:    catalog.FieldDescriptor{ID: catalog.FieldAssetType, Label: "Asset Type", ValueType: catalog.ValueTypeText, Origin: catalog.OriginStatic},
			Selected: true,
			Order:    order(2),
		},
		{
			Field:    catalog.FieldDescriptor{ID: catalog.FieldPrice, Label: "Price", ValueType: catalog.ValueTypeNumber, Origin: catalog.OriginStatic},
			Selected: true,
			Order:    order(3),
		},
		{
			Field: catalog.FieldDescriptor{ID: "serial_number", Label: "Serial Number", ValueType: catalog.ValueTypeText, Origin: catalog.OriginStatic},
		},
	}}
}

func testRows() []Row {
	return []Row{
		{
			Name: "Pump A",
			Fields: map[string]string{
				catalog.FieldAssetType: "Pump",
				catalog.FieldPrice:     "2.50",
				"serial_number":        "SN-1",
			},
		},
		{
			Name: "Valve, \"B\"",
			Fields: map[string]string{
				catalog.FieldAssetType: "Valve",
				catalog.FieldPrice:     "0.00",
			},
		},
	}
}

func TestExportCSV(t *testing.T) {
	exp := NewExporter(zap.NewNop())

	data, filename, err := exp.Export(testRows(), testModel(), FormatCSV, "assets")
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !strings.HasPrefix(filename, "assets_") || !strings.HasSuffix(filename, ".csv") {
		t.Errorf("filename = %q", filename)
	}

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("rows = %d, want header + 2", len(records))
	}

	wantHeader := []string{"Name", "Color Fill", "Asset Type", "Price"}
	for i, h := range wantHeader {
		if records[0][i] != h {
			t.Errorf("header[%d] = %q, want %q", i, records[0][i], h)
		}
	}

	// Color columns export their label as a placeholder in every row;
	// unselected fields never appear.
	wantRow := []string{"Pump A", "Color Fill", "Pump", "2.50"}
	for i, v := range wantRow {
		if records[1][i] != v {
			t.Errorf("row[%d] = %q, want %q", i, records[1][i], v)
		}
	}
	if records[2][0] != "Valve, \"B\"" {
		t.Errorf("quoted name round-trip = %q", records[2][0])
	}
}

func TestExportCSVNoSelectedColumns(t *testing.T) {
	exp := NewExporter(zap.NewNop())
	model := &columns.Model{Entries: []columns.ColumnEntry{
		{Field: catalog.FieldDescriptor{ID: "serial_number", Label: "Serial Number"}},
	}}

	if _, _, err := exp.Export(testRows(), model, FormatCSV, "assets"); err == nil {
		t.Fatal("want error when nothing is selected")
	}
}

func TestExportUnsupportedFormat(t *testing.T) {
	exp := NewExporter(zap.NewNop())
	if _, _, err := exp.Export(testRows(), testModel(), "pdf", "assets"); err == nil {
		t.Fatal("want error for unsupported format")
	}
}

func TestExportExcel(t *testing.T) {
	exp := NewExporter(zap.NewNop())

	data, filename, err := exp.Export(testRows(), testModel(), FormatXLSX, "assets")
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !strings.HasSuffix(filename, ".xlsx") {
		t.Errorf("filename = %q", filename)
	}

	f, err := excelize.OpenReader(strings.NewReader(string(data)))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	got, err := f.GetCellValue("Report", "A1")
	if err != nil || got != "Name" {
		t.Errorf("A1 = %q, %v, want Name", got, err)
	}
	got, _ = f.GetCellValue("Report", "C1")
	if got != "Asset Type" {
		t.Errorf("C1 = %q, want Asset Type", got)
	}
	got, _ = f.GetCellValue("Report", "D2")
	if got != "2.50" {
		t.Errorf("D2 = %q, want 2.50", got)
	}
	got, _ = f.GetCellValue("Report", "B2")
	if got != "Color Fill" {
		t.Errorf("color cell B2 = %q, want the label placeholder", got)
	}
}
