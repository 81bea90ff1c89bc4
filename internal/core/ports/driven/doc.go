// Package driven defines the outbound ports of the core: the contracts
// the ingestion and answering services depend on, implemented by
// adapters under internal/adapters/driven and internal/extractors.
package driven
