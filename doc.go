// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package goebics implements the client side of EBICS (Electronic Banking
Internet Communication Standard) version 2.5, protocol H004.

# Overview

go-ebics lets a subscriber register its keys with a bank, fetch the bank's
keys, and exchange order data (payment files, statements, order type
lists) over HTTPS. All documents are signed, encrypted and segmented the
way the H004 schema requires.

# Specifications Implemented

  - EBICS 2.5 / H004: https://www.ebics.org/en/technical-information/ebics-specification
  - Signature process A005 (RSASSA-PKCS1-v1_5) and A006 (RSASSA-PSS)
  - Authentication X002 (XML signature over the authenticated elements)
  - Encryption E002 (AES-128-CBC transaction keys wrapped with RSA)
  - Exclusive XML Canonicalization: https://www.w3.org/TR/xml-exc-c14n/

# Package Structure

	github.com/sirosfoundation/go-ebics/pkg/ebics       - Client, data model and operations
	github.com/sirosfoundation/go-ebics/pkg/message     - EBICS document builders and parsers
	github.com/sirosfoundation/go-ebics/pkg/security    - Order signatures, X002, E002 envelopes
	github.com/sirosfoundation/go-ebics/pkg/keys        - RSA key versions, digests, sealing
	github.com/sirosfoundation/go-ebics/pkg/ordertype   - Order type catalog
	github.com/sirosfoundation/go-ebics/pkg/transfer    - Segmentation and transaction state
	github.com/sirosfoundation/go-ebics/pkg/compression - zlib compression of order data
	github.com/sirosfoundation/go-ebics/pkg/transport   - HTTPS transport with TLS 1.2/1.3
	github.com/sirosfoundation/go-ebics/pkg/trace       - Document tracing
	github.com/sirosfoundation/go-ebics/cmd/ebicsctl    - Command line client

# Quick Start

	bank := ebics.Bank{HostID: "EBIXHOST", URL: "https://bank.example/ebicsweb"}
	user, _ := ebics.NewUser(bank, "PARTNER1", "USER1", "Jane Doe", keys.A006)

	client, _ := ebics.NewClient(&ebics.ClientConfig{})
	session := ebics.NewSession(user)

	user, _ = client.SendINI(ctx, session)
	user, _ = client.SendHIA(ctx, ebics.NewSession(user))
	// send the initialisation letters, wait for the bank to activate the user
	user, _ = client.SendHPB(ctx, ebics.NewSession(user))

	result, err := client.Download(ctx, ebics.NewSession(user), ordertype.STA, nil)

# References

  - EBICS: https://www.ebics.org/
  - EBICS schema H004: https://www.ebics.org/en/technical-information/ebics-schema

# License

BSD-2-Clause License
*/
package goebics
