// Package archive stores experiment runs in a compact, checksummed binary
// snapshot.
//
// Layout:
//
//	+--------+---------+-------------+-------+-------+-------------+
//	| "CLAR" | version | compression | flags | count | payload len |
//	| 4 B    | 1 B     | 1 B         | 2 B   | 4 B   | 4 B         |
//	+--------+---------+-------------+-------+-------+-------------+
//	| compressed payload ...                                       |
//	+--------------------------------------------------------------+
//	| xxHash64 of the uncompressed payload (8 B)                   |
//	+--------------------------------------------------------------+
//
// The header and checksum are little-endian. The payload holds count
// records in the byte order selected by the FlagBigEndian flag. Each record
// is a kind byte, four length-prefixed strings (id, date, week tag, notes),
// a presence mask over the kind's numeric fields and one float64 per
// present field.
package archive
