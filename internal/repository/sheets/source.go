package sheets

import (
	"context"
	"fmt"

	"github.com/mamadbah2/velocitymart/internal/dataset"
	"github.com/mamadbah2/velocitymart/internal/domain/models"
)

// Source exposes one spreadsheet tab per dataset, named after the dataset
// (for example "sku_master"). The first row of each tab is the header.
type Source struct {
	repo Repository
}

// NewSource adapts a sheet repository to dataset.Source.
func NewSource(repo Repository) *Source {
	return &Source{repo: repo}
}

// Kind implements dataset.Source.
func (s *Source) Kind() string { return "sheets" }

// Fingerprint always reports an untracked version; the cache refreshes on Clear only.
func (s *Source) Fingerprint(context.Context) (string, error) { return "", nil }

// Fetch reads the tab for a dataset and pads rows the API returns trimmed.
func (s *Source) Fetch(ctx context.Context, name string) (models.Table, error) {
	values, err := s.repo.ReadRange(ctx, name)
	if err != nil {
		return models.Table{}, fmt.Errorf("load %s tab: %w", name, err)
	}
	if len(values) == 0 {
		return models.Table{}, fmt.Errorf("tab %s is empty: %w", name, dataset.ErrDatasetNotFound)
	}

	header := toStrings(values[0], 0)
	rows := make([][]string, 0, len(values)-1)
	for _, raw := range values[1:] {
		if len(raw) > len(header) {
			return models.Table{}, fmt.Errorf("tab %s row %d has %d cells, header has %d", name, len(rows)+2, len(raw), len(header))
		}
		rows = append(rows, toStrings(raw, len(header)))
	}

	return models.Table{Header: header, Rows: rows}, nil
}

func toStrings(raw []interface{}, width int) []string {
	if width < len(raw) {
		width = len(raw)
	}
	out := make([]string, width)
	for i, v := range raw {
		if v == nil {
			continue
		}
		out[i] = fmt.Sprint(v)
	}
	return out
}
