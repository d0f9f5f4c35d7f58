// Package sink provides io.Writer wrappers placed between the export
// pipeline and the destination.
//
// CountingWriter tracks bytes written, DigestWriter maintains a running
// xxHash64 of the stream for integrity reporting, and NewWriter wraps a
// destination in one of the supported compression encoders (gzip, zstd,
// s2, lz4). Wrappers compose:
//
//	f, _ := os.Create("out.csv.zst")
//	digest := sink.NewDigestWriter(f)
//	zw, _ := sink.NewWriter(sink.CompressionZstd, digest)
//	// ... run the export into zw, then Close it before reading the digest
//
// Compression writers buffer; Close flushes the tail frame and must run
// before the output or digest is consumed.
package sink
