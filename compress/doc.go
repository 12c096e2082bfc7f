// Package compress implements ClickHouse's Native block compression
// envelope.
//
// # Wire format
//
// Each frame is:
//
//	[16 bytes CityHash128 of the following framed bytes, wire-reordered]
//	[ 1 byte  method code]
//	[ 4 bytes LE u32 compressed_size = payload_len + 9]
//	[ 4 bytes LE u32 uncompressed_size]
//	[ compressed_size - 9 bytes payload]
//
// The hash covers the 9-byte method+sizes header concatenated with the
// payload, not the hash bytes themselves. CityHash128's 128-bit big-endian
// output is reordered per ClickHouse's wire convention: each 8-byte half is
// independently byte-swapped (see WireHash128).
//
// # Supported methods
//
// NONE, LZ4 (block mode, no LZ4 frame header), and ZSTD (pure Go, via
// klauspost/compress) are fully supported. Every other method code in the
// ClickHouse codec enumeration (Multiple, Delta, T64, DoubleDelta, Gorilla,
// AES-GCM-SIV, FPC, DeflateQpl, GCD, ZSTD_QPL, SZ3) is recognized so a frame
// header can still be parsed and skipped, but Compress/Decompress on those
// methods fails with ErrMethodNotSupported.
//
// # Validation and repair
//
// A frame whose recomputed hash does not match its stored hash is not
// rejected outright: Frame.Valid carries the mismatch, and Recode/Repair
// let a caller recompute a correct hash for a frame whose bytes are
// otherwise intact (e.g. one produced by a tool that used a different
// CityHash128 byte order).
package compress
