// Package ingestion provides the pipeline that turns documents into
// embedded, searchable chunks.
//
// The Pipeline type manages the ingestion workflow for documents, including:
//   - Splitting document text into overlapping chunks
//   - Generating embeddings in batches
//   - Replacing each source's chunk set in the vector store
//
// Batch ingestion is performed concurrently using a worker pool. A failure
// on one document never aborts the rest of the batch; each document reports
// its own Result.
package ingestion
