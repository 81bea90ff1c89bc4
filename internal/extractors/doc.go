// Package extractors converts source files into plain text for
// chunking. Each extractor handles specific file extensions; ForFile
// selects one by extension at the ingestion entry point.
package extractors
