package output

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/viant/afs/file"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
	"github.com/xuri/excelize/v2"

	"github.com/spigell/resume-analyzer/internal/table"
	"github.com/spigell/resume-analyzer/internal/utils"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"

	SheetName = "Resumes"

	// maxAttempts bounds the search for a free file name.
	maxAttempts = 10000
)

// ParseFormat accepts csv or xlsx in any case.
func ParseFormat(raw string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(raw))) {
	case FormatCSV, "":
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("unsupported output format %q: use csv or xlsx", raw)
	}
}

func (f Format) Ext() string {
	return "." + string(f)
}

// Storage checks for and uploads objects. afs.Service satisfies it.
type Storage interface {
	Exists(ctx context.Context, URL string, options ...storage.Option) (bool, error)
	Upload(ctx context.Context, URL string, mode os.FileMode, reader io.Reader, options ...storage.Option) error
}

type Writer struct {
	fs     Storage
	format Format
}

func New(fs Storage, format Format) *Writer {
	if format == "" {
		format = FormatCSV
	}
	return &Writer{fs: fs, format: format}
}

// Write encodes result and stores it as the first free <dir>/<baseName><N><ext>,
// counting N from 1. Existing files are never overwritten. It returns the URL written.
func (w *Writer) Write(ctx context.Context, dir, baseName string, result table.Result) (string, error) {
	if strings.TrimSpace(baseName) == "" {
		return "", fmt.Errorf("output base name is required")
	}

	base, err := utils.NormalizeLocation(dir)
	if err != nil {
		return "", err
	}

	data, err := w.encode(result)
	if err != nil {
		return "", err
	}

	target, err := w.nextFree(ctx, base, baseName)
	if err != nil {
		return "", err
	}

	if err := w.fs.Upload(ctx, target, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("upload %s: %w", target, err)
	}

	return target, nil
}

func (w *Writer) nextFree(ctx context.Context, base, baseName string) (string, error) {
	for n := 1; n <= maxAttempts; n++ {
		candidate := url.Join(base, fmt.Sprintf("%s%d%s", baseName, n, w.format.Ext()))

		exists, err := w.fs.Exists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("check %s: %w", candidate, err)
		}
		if !exists {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("no free file name for %s in %s", baseName, base)
}

func (w *Writer) encode(result table.Result) ([]byte, error) {
	switch w.format {
	case FormatCSV:
		return encodeCSV(result)
	case FormatXLSX:
		return encodeXLSX(result)
	default:
		return nil, fmt.Errorf("unsupported output format %q", w.format)
	}
}

func encodeCSV(result table.Result) ([]byte, error) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	if err := cw.Write(result.Header); err != nil {
		return nil, fmt.Errorf("csv write: %w", err)
	}
	if err := cw.WriteAll(result.Rows); err != nil {
		return nil, fmt.Errorf("csv write: %w", err)
	}

	return buf.Bytes(), nil
}

func encodeXLSX(result table.Result) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, fmt.Errorf("xlsx sheet: %w", err)
	}
	activeIndex, _ := f.GetSheetIndex(SheetName)
	f.SetActiveSheet(activeIndex)

	write := func(col, row int, v string) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		return f.SetCellValue(SheetName, cell, v)
	}

	for i, h := range result.Header {
		if err := write(i+1, 1, h); err != nil {
			return nil, fmt.Errorf("xlsx header: %w", err)
		}
	}

	for r, row := range result.Rows {
		for c, v := range row {
			if err := write(c+1, r+2, v); err != nil {
				return nil, fmt.Errorf("xlsx row %d: %w", r+1, err)
			}
		}
	}

	if len(result.Header) > 0 {
		last, _ := excelize.ColumnNumberToName(len(result.Header))
		_ = f.SetColWidth(SheetName, "A", "A", 8)
		_ = f.SetColWidth(SheetName, "B", last, 24)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	return buf.Bytes(), nil
}
