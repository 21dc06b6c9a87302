package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// areaCollections maps each dashboard area to the collections whose document
// counts make up its headline numbers.
var areaCollections = map[string][]string{
	"admin":      {"users", "audit_log"},
	"sales":      {"orders", "leads"},
	"finance":    {"invoices", "payments"},
	"operations": {"tasks", "incidents"},
}

// MongoStatsRepository aggregates per-area counts for the dashboards.
type MongoStatsRepository struct {
	db *mongo.Database
}

func NewStatsRepository(db *mongo.Database) *MongoStatsRepository {
	return &MongoStatsRepository{db: db}
}

func (r *MongoStatsRepository) Collect(ctx context.Context, area string) (map[string]int64, error) {
	collections, ok := areaCollections[area]
	if !ok {
		return nil, fmt.Errorf("no collections mapped for area %q", area)
	}

	totals := make(map[string]int64, len(collections))
	for _, name := range collections {
		n, err := r.db.Collection(name).CountDocuments(ctx, bson.M{})
		if err != nil {
			return nil, fmt.Errorf("count %s: %w", name, err)
		}
		totals[name] = n
	}
	return totals, nil
}
