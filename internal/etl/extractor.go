package etl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/sm310/greynoise-etl/pkg/logger"
)

const (
	requestTimeout    = 10 * time.Second
	rateLimitCooldown = 60 * time.Second
	courtesyDelay     = 500 * time.Millisecond
)

var errRateLimited = errors.New("rate limited (HTTP 429)")

// APIExtractor extracts raw records from the GreyNoise Community API.
type APIExtractor struct {
	baseURL string
	apiKey  string
	client  *http.Client
	sleep   func(ctx context.Context, d time.Duration)
}

func NewAPIExtractor(baseURL, apiKey string) *APIExtractor {
	return &APIExtractor{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: requestTimeout},
		sleep:   sleepContext,
	}
}

// ExtractSingleIP fetches the community record for one IP address.
// A 429 response triggers the fixed cooldown before signaling absence;
// the caller must re-invoke to retry.
func (e *APIExtractor) ExtractSingleIP(ctx context.Context, ip string) bson.M {
	logger.Infof("Extracting data for IP: %s", ip)

	data, err := e.get(ctx, fmt.Sprintf("%s/v3/community/%s", e.baseURL, ip))
	if err != nil {
		if errors.Is(err, errRateLimited) {
			logger.Warnf("Rate limit hit for %s. Waiting %s before continuing.", ip, rateLimitCooldown)
			e.sleep(ctx, rateLimitCooldown)
		} else {
			logger.Errorf("Error extracting data for %s: %v", ip, err)
		}
		return nil
	}
	return data
}

// ExtractBatchIPs looks up each address in turn with the single-lookup
// primitive. Failed lookups are omitted from the result, successful ones
// are followed by a short courtesy delay.
func (e *APIExtractor) ExtractBatchIPs(ctx context.Context, ips []string) []bson.M {
	logger.Infof("Extracting batch data for %d IP addresses.", len(ips))

	results := make([]bson.M, 0, len(ips))
	for _, ip := range ips {
		if ctx.Err() != nil {
			break
		}
		data := e.ExtractSingleIP(ctx, ip)
		if len(data) > 0 {
			results = append(results, data)
			e.sleep(ctx, courtesyDelay)
		}
	}
	return results
}

// ExtractPing fetches the API health object.
func (e *APIExtractor) ExtractPing(ctx context.Context) bson.M {
	logger.Infof("Checking GreyNoise API health.")

	data, err := e.get(ctx, fmt.Sprintf("%s/ping", e.baseURL))
	if err != nil {
		if errors.Is(err, errRateLimited) {
			logger.Warnf("Rate limit hit on health check. Waiting %s before continuing.", rateLimitCooldown)
			e.sleep(ctx, rateLimitCooldown)
		} else {
			logger.Errorf("Error checking API health: %v", err)
		}
		return nil
	}
	return data
}

// get issues one GET request and parses the JSON body. All endpoints share
// this primitive so rate-limit handling stays in one place.
func (e *APIExtractor) get(ctx context.Context, url string) (bson.M, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("key", e.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, errRateLimited
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		var data bson.M
		if err := json.Unmarshal(body, &data); err != nil {
			return nil, fmt.Errorf("parsing response body: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}
}

func sleepContext(ctx context.Context, d time.Duration) {
	select {
	case <-time.After(d):
	case <-ctx.Done():
	}
}
