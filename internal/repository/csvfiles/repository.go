package csvfiles

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/mamadbah2/velocitymart/internal/dataset"
	"github.com/mamadbah2/velocitymart/internal/domain/models"
)

// FileNames maps dataset names to the cleaned export files.
var FileNames = map[string]string{
	dataset.PickerMovement:       "cleaned_picker_movement.csv",
	dataset.OrderTransactions:    "cleaned_order_transactions.csv",
	dataset.WarehouseConstraints: "cleaned_warehouse_constraints.csv",
	dataset.SKUMaster:            "cleaned_sku_master.csv",
	dataset.FinalSlottingPlan:    "final_slotting_plan.csv",
}

// Repository reads the datasets from CSV files in a single directory.
type Repository struct {
	dir    string
	logger *zap.Logger
}

// NewRepository builds a CSV backed source rooted at dir.
func NewRepository(dir string, logger *zap.Logger) *Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repository{dir: dir, logger: logger}
}

// Dir returns the directory the files are read from.
func (r *Repository) Dir() string { return r.dir }

// Kind implements dataset.Source.
func (r *Repository) Kind() string { return "csv" }

// Path returns the file path backing a dataset.
func (r *Repository) Path(name string) (string, error) {
	file, ok := FileNames[name]
	if !ok {
		return "", fmt.Errorf("%s: %w", name, dataset.ErrDatasetNotFound)
	}
	return filepath.Join(r.dir, file), nil
}

// Fetch reads the whole file for a dataset. The header row is mandatory.
func (r *Repository) Fetch(ctx context.Context, name string) (models.Table, error) {
	if err := ctx.Err(); err != nil {
		return models.Table{}, err
	}

	path, err := r.Path(name)
	if err != nil {
		return models.Table{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return models.Table{}, fmt.Errorf("%s: %w", path, dataset.ErrDatasetNotFound)
		}
		return models.Table{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	table, err := ReadTable(f)
	if err != nil {
		return models.Table{}, fmt.Errorf("read %s: %w", path, err)
	}

	r.logger.Debug("csv dataset read", zap.String("path", path), zap.Int("rows", len(table.Rows)))
	return table, nil
}

// Fingerprint combines path, size and modification time of every file.
func (r *Repository) Fingerprint(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var b strings.Builder
	for _, name := range dataset.Names {
		path, err := r.Path(name)
		if err != nil {
			return "", err
		}
		info, err := os.Stat(path)
		if err != nil {
			return "", fmt.Errorf("stat %s: %w", path, err)
		}
		fmt.Fprintf(&b, "%s:%d:%d;", path, info.Size(), info.ModTime().UnixNano())
	}
	return b.String(), nil
}

// ReadTable parses delimited text with a header row. Every record must have
// as many fields as the header.
func ReadTable(r io.Reader) (models.Table, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return models.Table{}, errors.New("empty file: header row required")
		}
		return models.Table{}, err
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return models.Table{}, err
	}
	if rows == nil {
		rows = [][]string{}
	}

	return models.Table{Header: header, Rows: rows}, nil
}
