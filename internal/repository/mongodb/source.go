package mongodb

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mamadbah2/velocitymart/internal/dataset"
	"github.com/mamadbah2/velocitymart/internal/domain/models"
)

const timestampLayout = "2006-01-02 15:04:05"

// Source reads each dataset from the collection of the same name.
type Source struct {
	repo Repository
}

// NewSource adapts a MongoDB repository to dataset.Source.
func NewSource(repo Repository) *Source {
	return &Source{repo: repo}
}

// Kind implements dataset.Source.
func (s *Source) Kind() string { return "mongodb" }

// Fingerprint always reports an untracked version; the cache refreshes on Clear only.
func (s *Source) Fingerprint(context.Context) (string, error) { return "", nil }

// Fetch loads a collection as a table.
func (s *Source) Fetch(ctx context.Context, name string) (models.Table, error) {
	docs, err := s.repo.ReadCollection(ctx, name)
	if err != nil {
		return models.Table{}, err
	}
	if len(docs) == 0 {
		return models.Table{}, fmt.Errorf("collection %s is empty: %w", name, dataset.ErrDatasetNotFound)
	}
	return DocumentsToTable(docs), nil
}

// DocumentsToTable flattens documents into a table. Columns follow the order
// in which keys first appear; "_id" is dropped and absent keys become empty cells.
func DocumentsToTable(docs []bson.D) models.Table {
	var header []string
	positions := make(map[string]int)
	for _, doc := range docs {
		for _, elem := range doc {
			if elem.Key == "_id" {
				continue
			}
			if _, ok := positions[elem.Key]; !ok {
				positions[elem.Key] = len(header)
				header = append(header, elem.Key)
			}
		}
	}

	rows := make([][]string, 0, len(docs))
	for _, doc := range docs {
		row := make([]string, len(header))
		for _, elem := range doc {
			pos, ok := positions[elem.Key]
			if !ok {
				continue
			}
			row[pos] = formatValue(elem.Value)
		}
		rows = append(rows, row)
	}

	return models.Table{Header: header, Rows: rows}
}

func formatValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case primitive.DateTime:
		return val.Time().UTC().Format(timestampLayout)
	case time.Time:
		return val.UTC().Format(timestampLayout)
	case primitive.ObjectID:
		return val.Hex()
	case primitive.Decimal128:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
