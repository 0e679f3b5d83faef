package etl

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mockInserter struct {
	insertErr error

	oneDocs  []interface{}
	manyDocs [][]interface{}
}

func (m *mockInserter) InsertOne(_ context.Context, document interface{}, _ ...*options.InsertOneOptions) (*mongo.InsertOneResult, error) {
	if m.insertErr != nil {
		return nil, m.insertErr
	}
	m.oneDocs = append(m.oneDocs, document)
	return &mongo.InsertOneResult{InsertedID: primitive.NewObjectID()}, nil
}

func (m *mockInserter) InsertMany(_ context.Context, documents []interface{}, _ ...*options.InsertManyOptions) (*mongo.InsertManyResult, error) {
	if m.insertErr != nil {
		return nil, m.insertErr
	}
	m.manyDocs = append(m.manyDocs, documents)
	ids := make([]interface{}, len(documents))
	for i := range documents {
		ids[i] = primitive.NewObjectID()
	}
	return &mongo.InsertManyResult{InsertedIDs: ids}, nil
}

func newTestLoader() (*MongoLoader, *mockInserter, *mockInserter, *mockInserter) {
	single := &mockInserter{}
	batch := &mockInserter{}
	ping := &mockInserter{}
	return &MongoLoader{singleIP: single, batchIP: batch, ping: ping}, single, batch, ping
}

func TestLoadSingleIP(t *testing.T) {
	t.Parallel()

	t.Run("inserts into the single IP collection", func(t *testing.T) {
		t.Parallel()

		loader, single, batch, ping := newTestLoader()
		doc := bson.M{"ip_address": "8.8.8.8"}

		ok := loader.LoadSingleIP(context.Background(), doc)

		assert.True(t, ok)
		require.Len(t, single.oneDocs, 1)
		assert.Equal(t, doc, single.oneDocs[0])
		assert.Empty(t, batch.manyDocs)
		assert.Empty(t, ping.oneDocs)
	})

	t.Run("absent record is a no-op reporting false", func(t *testing.T) {
		t.Parallel()

		loader, single, _, _ := newTestLoader()

		assert.False(t, loader.LoadSingleIP(context.Background(), nil))
		assert.Empty(t, single.oneDocs)
	})

	t.Run("insert failure reports false", func(t *testing.T) {
		t.Parallel()

		loader, single, _, _ := newTestLoader()
		single.insertErr = errors.New("connection reset")

		assert.False(t, loader.LoadSingleIP(context.Background(), bson.M{"ip_address": "8.8.8.8"}))
	})
}

func TestLoadBatchIPs(t *testing.T) {
	t.Parallel()

	t.Run("inserts all records into the batch collection", func(t *testing.T) {
		t.Parallel()

		loader, single, batch, _ := newTestLoader()
		docs := []bson.M{{"ip_address": "1.1.1.1"}, {"ip_address": "9.9.9.9"}}

		ok := loader.LoadBatchIPs(context.Background(), docs)

		assert.True(t, ok)
		require.Len(t, batch.manyDocs, 1)
		assert.Equal(t, []interface{}{docs[0], docs[1]}, batch.manyDocs[0])
		assert.Empty(t, single.oneDocs)
	})

	t.Run("empty sequence is a no-op reporting false", func(t *testing.T) {
		t.Parallel()

		loader, _, batch, _ := newTestLoader()

		assert.False(t, loader.LoadBatchIPs(context.Background(), nil))
		assert.False(t, loader.LoadBatchIPs(context.Background(), []bson.M{}))
		assert.Empty(t, batch.manyDocs)
	})

	t.Run("insert failure reports false", func(t *testing.T) {
		t.Parallel()

		loader, _, batch, _ := newTestLoader()
		batch.insertErr = errors.New("write concern timeout")

		assert.False(t, loader.LoadBatchIPs(context.Background(), []bson.M{{"ip_address": "1.1.1.1"}}))
	})
}

func TestLoadPing(t *testing.T) {
	t.Parallel()

	t.Run("inserts into the health check collection", func(t *testing.T) {
		t.Parallel()

		loader, single, _, ping := newTestLoader()
		doc := bson.M{"status": "healthy"}

		ok := loader.LoadPing(context.Background(), doc)

		assert.True(t, ok)
		require.Len(t, ping.oneDocs, 1)
		assert.Equal(t, doc, ping.oneDocs[0])
		assert.Empty(t, single.oneDocs)
	})

	t.Run("absent record is a no-op reporting false", func(t *testing.T) {
		t.Parallel()

		loader, _, _, ping := newTestLoader()

		assert.False(t, loader.LoadPing(context.Background(), nil))
		assert.Empty(t, ping.oneDocs)
	})

	t.Run("insert failure reports false", func(t *testing.T) {
		t.Parallel()

		loader, _, _, ping := newTestLoader()
		ping.insertErr = errors.New("server selection timeout")

		assert.False(t, loader.LoadPing(context.Background(), bson.M{"status": "healthy"}))
	})
}
