package models

// DataSource tags every stored record with the upstream system it came from.
const DataSource = "greynoise_community_api"

// Endpoint types distinguish which API operation produced a record.
const (
	EndpointSingleIP = "single_ip_lookup"
	EndpointBatchIP  = "batch_ip_lookup"
	EndpointPing     = "health_check"
)

// Destination collections, one per endpoint type.
const (
	CollectionSingleIP = "greynoise_single_ip_raw"
	CollectionBatchIP  = "greynoise_batch_ip_raw"
	CollectionPing     = "greynoise_ping_raw"
)

// Health states derived from the ping endpoint.
const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)
