package etl

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/sm310/greynoise-etl/pkg/models"
	"github.com/sm310/greynoise-etl/pkg/utils"
)

// Transformer normalizes raw API responses into the flat record shape
// stored per endpoint. Aside from reading the clock it is pure: absent
// or empty input yields no record, never a zeroed one.
type Transformer struct {
	now func() time.Time
}

func NewTransformer() *Transformer {
	return &Transformer{now: time.Now}
}

func (t *Transformer) TransformSingleIP(raw bson.M) bson.M {
	if len(raw) == 0 {
		return nil
	}

	doc := bson.M{
		"is_noise":            utils.ValueOr(raw, "noise", false),
		"is_riot":             utils.ValueOr(raw, "riot", false),
		"ingestion_timestamp": t.now().UTC(),
		"data_source":         models.DataSource,
		"endpoint_type":       models.EndpointSingleIP,
	}
	utils.CopyField(doc, raw, "ip", "ip_address")
	utils.CopyField(doc, raw, "classification", "classification")
	utils.CopyField(doc, raw, "name", "name")
	utils.CopyField(doc, raw, "link", "link")
	utils.CopyField(doc, raw, "last_seen", "last_seen")
	utils.CopyField(doc, raw, "message", "message")
	return doc
}

func (t *Transformer) TransformBatchIPs(raws []bson.M) []bson.M {
	if len(raws) == 0 {
		return nil
	}

	docs := make([]bson.M, 0, len(raws))
	for _, raw := range raws {
		if len(raw) == 0 {
			continue
		}
		doc := bson.M{
			"is_noise":            utils.ValueOr(raw, "noise", false),
			"is_riot":             utils.ValueOr(raw, "riot", false),
			"ingestion_timestamp": t.now().UTC(),
			"data_source":         models.DataSource,
			"endpoint_type":       models.EndpointBatchIP,
		}
		utils.CopyField(doc, raw, "ip", "ip_address")
		utils.CopyField(doc, raw, "classification", "classification")
		utils.CopyField(doc, raw, "name", "name")
		utils.CopyField(doc, raw, "last_seen", "last_seen")
		docs = append(docs, doc)
	}
	return docs
}

// TransformPing wraps the health object verbatim. The API reported in,
// so the stored status is healthy; an unreachable API produces no raw
// record and therefore no stored record at all.
func (t *Transformer) TransformPing(raw bson.M) bson.M {
	if raw == nil {
		return nil
	}

	return bson.M{
		"status":          models.StatusHealthy,
		"response_data":   raw,
		"check_timestamp": t.now().UTC(),
		"data_source":     models.DataSource,
		"endpoint_type":   models.EndpointPing,
	}
}
