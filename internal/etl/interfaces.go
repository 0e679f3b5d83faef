package etl

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
)

// Extractor pulls raw records from the GreyNoise Community API.
// A nil result signals an absent record, never an error.
type Extractor interface {
	ExtractSingleIP(ctx context.Context, ip string) bson.M
	ExtractBatchIPs(ctx context.Context, ips []string) []bson.M
	ExtractPing(ctx context.Context) bson.M
}

// Loader persists transformed records into their destination collections
// and reports success as a boolean.
type Loader interface {
	LoadSingleIP(ctx context.Context, doc bson.M) bool
	LoadBatchIPs(ctx context.Context, docs []bson.M) bool
	LoadPing(ctx context.Context, doc bson.M) bool
}
