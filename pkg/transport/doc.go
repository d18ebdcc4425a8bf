// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package transport implements the HTTPS transport for EBICS.

EBICS requests are XML documents posted to the bank's EBICS URL; the
response body is the bank's XML answer. Non-2xx answers are reported as
*StatusError; an empty body or one larger than MaxResponseSize is an
error as well. Retries are left to the caller.

	client := transport.NewHTTPSClient(&transport.HTTPSConfig{
	    MinTLSVersion: transport.TLS12,
	    RootCAs:       certPool,
	    Timeout:       30 * time.Second,
	})

	response, err := client.Send(ctx, "https://ebics.bank.example/ebicsweb", request)

# References

  - EBICS 2.5 specification, chapter 2 (transport protocol)
  - TLS 1.3 RFC 8446: https://datatracker.ietf.org/doc/html/rfc8446
*/
package transport
