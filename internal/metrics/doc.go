// Package metrics registers Prometheus instruments for the analysis pipeline.
//
// Collectors are registered via promauto at package init; the embedding
// application decides whether and where to expose them.
package metrics
