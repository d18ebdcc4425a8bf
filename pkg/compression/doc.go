// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package compression provides the zlib compression used for EBICS order data.

EBICS compresses order data and signature data before encryption, and
banks compress download data the same way.

	compressor := compression.NewCompressor()
	compressed, err := compressor.Compress(orderData)

	orderData, err = compressor.Decompress(compressed)

# References

  - ZLIB RFC 1950: https://datatracker.ietf.org/doc/html/rfc1950
*/
package compression
