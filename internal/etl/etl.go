package etl

import (
	"context"
	"time"

	"github.com/sm310/greynoise-etl/internal/metrics"
	"github.com/sm310/greynoise-etl/pkg/logger"
	"github.com/sm310/greynoise-etl/pkg/models"
)

// Inputs used by RunAll. The run is a fixed sample sweep, only the
// credentials and destinations come from configuration.
const defaultLookupIP = "8.8.8.8"

var sampleBatchIPs = []string{"1.1.1.1", "8.8.4.4", "9.9.9.9"}

// ETL sequences Extract, Transform and Load per endpoint. Each pipeline
// runs to completion on its own; a failed stage empties the stages behind
// it instead of aborting the run.
type ETL struct {
	Extractor   Extractor
	Transformer *Transformer
	Loader      Loader
	Metrics     *metrics.Recorder
}

func NewETL(extractor Extractor, transformer *Transformer, loader Loader, recorder *metrics.Recorder) *ETL {
	return &ETL{
		Extractor:   extractor,
		Transformer: transformer,
		Loader:      loader,
		Metrics:     recorder,
	}
}

// RunSingleIPPipeline looks up one address and stores the normalized record.
func (e *ETL) RunSingleIPPipeline(ctx context.Context, ip string) bool {
	start := time.Now()
	logger.Infof("Starting single IP pipeline for %s.", ip)

	raw := e.Extractor.ExtractSingleIP(ctx, ip)
	if len(raw) > 0 {
		e.Metrics.RecordExtracted(models.EndpointSingleIP, 1)
	} else {
		e.Metrics.RecordStageFailure(models.EndpointSingleIP, metrics.StageExtract, 1)
	}

	doc := e.Transformer.TransformSingleIP(raw)

	ok := e.Loader.LoadSingleIP(ctx, doc)
	if ok {
		e.Metrics.RecordLoaded(models.EndpointSingleIP, 1)
	} else if len(doc) > 0 {
		e.Metrics.RecordStageFailure(models.EndpointSingleIP, metrics.StageLoad, 1)
	}

	e.Metrics.ObservePipelineDuration(models.EndpointSingleIP, time.Since(start))
	logger.Infof("Single IP pipeline finished in %s. Loaded: %v", time.Since(start).Round(time.Millisecond), ok)
	return ok
}

// RunBatchIPPipeline looks up a list of addresses and stores the records
// that survived extraction, preserving their relative order.
func (e *ETL) RunBatchIPPipeline(ctx context.Context, ips []string) bool {
	start := time.Now()
	logger.Infof("Starting batch IP pipeline for %d addresses.", len(ips))

	raws := e.Extractor.ExtractBatchIPs(ctx, ips)
	if len(raws) > 0 {
		e.Metrics.RecordExtracted(models.EndpointBatchIP, len(raws))
	}
	if dropped := len(ips) - len(raws); dropped > 0 {
		e.Metrics.RecordStageFailure(models.EndpointBatchIP, metrics.StageExtract, dropped)
	}

	docs := e.Transformer.TransformBatchIPs(raws)

	ok := e.Loader.LoadBatchIPs(ctx, docs)
	if ok {
		e.Metrics.RecordLoaded(models.EndpointBatchIP, len(docs))
	} else if len(docs) > 0 {
		e.Metrics.RecordStageFailure(models.EndpointBatchIP, metrics.StageLoad, 1)
	}

	e.Metrics.ObservePipelineDuration(models.EndpointBatchIP, time.Since(start))
	logger.Infof("Batch IP pipeline finished in %s. Loaded: %v", time.Since(start).Round(time.Millisecond), ok)
	return ok
}

// RunPingPipeline checks API health and stores the health record.
func (e *ETL) RunPingPipeline(ctx context.Context) bool {
	start := time.Now()
	logger.Infof("Starting health check pipeline.")

	raw := e.Extractor.ExtractPing(ctx)
	if raw != nil {
		e.Metrics.RecordExtracted(models.EndpointPing, 1)
	} else {
		e.Metrics.RecordStageFailure(models.EndpointPing, metrics.StageExtract, 1)
	}

	doc := e.Transformer.TransformPing(raw)

	ok := e.Loader.LoadPing(ctx, doc)
	if ok {
		e.Metrics.RecordLoaded(models.EndpointPing, 1)
	} else if len(doc) > 0 {
		e.Metrics.RecordStageFailure(models.EndpointPing, metrics.StageLoad, 1)
	}

	e.Metrics.ObservePipelineDuration(models.EndpointPing, time.Since(start))
	logger.Infof("Health check pipeline finished in %s. Loaded: %v", time.Since(start).Round(time.Millisecond), ok)
	return ok
}

// RunAll runs the three pipelines in fixed order with the sample inputs.
// Pipeline failures do not abort the run; the returned error is non-nil
// only when the context was cancelled mid-run.
func (e *ETL) RunAll(ctx context.Context) error {
	logger.Infof("Starting GreyNoise ETL run.")

	e.RunSingleIPPipeline(ctx, defaultLookupIP)
	if err := ctx.Err(); err != nil {
		return err
	}

	e.RunBatchIPPipeline(ctx, sampleBatchIPs)
	if err := ctx.Err(); err != nil {
		return err
	}

	e.RunPingPipeline(ctx)
	if err := ctx.Err(); err != nil {
		return err
	}

	logger.Infof("GreyNoise ETL run complete.")
	return nil
}
