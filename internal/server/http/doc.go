// Package httpserver serves the inspection API for a running tap: captured
// entries (flat, grouped, CEL-filtered, or tailed over SSE), the current
// options, partial option updates, and the interception toggle.
//
// Endpoints:
//
//	GET   /v1/healthz
//	GET   /v1/logs?source=&filter=&limit=
//	GET   /v1/logs/grouped
//	GET   /v1/logs/tail?since=&filter=   (SSE)
//	GET   /v1/options
//	PATCH /v1/options
//	POST  /v1/toggle
package httpserver
