package etl

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sm310/greynoise-etl/pkg/logger"
	"github.com/sm310/greynoise-etl/pkg/models"
)

const writeTimeout = 30 * time.Second

// inserter is the slice of *mongo.Collection the loader uses. Persistence
// here is append-only, so inserts are the whole surface.
type inserter interface {
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
	InsertMany(ctx context.Context, documents []interface{}, opts ...*options.InsertManyOptions) (*mongo.InsertManyResult, error)
}

// MongoLoader writes transformed records into the three raw collections.
type MongoLoader struct {
	singleIP inserter
	batchIP  inserter
	ping     inserter
}

func NewMongoLoader(client *mongo.Client, dbName string) *MongoLoader {
	db := client.Database(dbName)
	return &MongoLoader{
		singleIP: db.Collection(models.CollectionSingleIP),
		batchIP:  db.Collection(models.CollectionBatchIP),
		ping:     db.Collection(models.CollectionPing),
	}
}

func (m *MongoLoader) LoadSingleIP(ctx context.Context, doc bson.M) bool {
	if len(doc) == 0 {
		logger.Warnf("No single IP data to load.")
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	res, err := m.singleIP.InsertOne(ctx, doc)
	if err != nil {
		logger.Errorf("Error loading single IP data: %v", err)
		return false
	}
	logger.Infof("Loaded single IP record with id: %v", res.InsertedID)
	return true
}

func (m *MongoLoader) LoadBatchIPs(ctx context.Context, docs []bson.M) bool {
	if len(docs) == 0 {
		logger.Warnf("No batch IP data to load.")
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	batch := make([]interface{}, 0, len(docs))
	for _, doc := range docs {
		batch = append(batch, doc)
	}

	res, err := m.batchIP.InsertMany(ctx, batch)
	if err != nil {
		logger.Errorf("Error loading batch IP data: %v", err)
		return false
	}
	logger.Infof("Loaded %d batch IP records.", len(res.InsertedIDs))
	return true
}

func (m *MongoLoader) LoadPing(ctx context.Context, doc bson.M) bool {
	if len(doc) == 0 {
		logger.Warnf("No health check data to load.")
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	res, err := m.ping.InsertOne(ctx, doc)
	if err != nil {
		logger.Errorf("Error loading health check data: %v", err)
		return false
	}
	logger.Infof("Loaded health check record with id: %v", res.InsertedID)
	return true
}
