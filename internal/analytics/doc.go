// Package analytics holds the pure computations behind the operations
// dashboard: aisle enrichment, the three data-forensics detectors, the
// operational metrics and the executive summary. Every function takes the
// loaded records explicitly and never mutates them.
package analytics
