// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package security implements the EBICS cryptographic envelope and the X002
authentication signature.

# Transaction Envelope

Every upload and download is protected by a fresh 128-bit AES transaction
key. Order data is compressed with zlib and encrypted with AES-128-CBC
(zero IV, ISO 10126 padding). The transaction key travels once, wrapped
with the recipient's E002 key (RSAES-PKCS1-v1_5):

	env, err := security.NewEnvelope()
	ciphertext, err := env.Seal(orderData)
	wrappedKey, err := env.WrappedKey(bankEncryptionKey)

On the receiving side:

	env, err := security.OpenEnvelope(userEncryptionKey, wrappedKey)
	orderData, err := env.Open(ciphertext)

# Electronic Signature

Order data is signed with the subscriber's A005 (RSASSA-PKCS1-v1_5) or
A006 (RSASSA-PSS) key over its SHA-256 digest:

	sig, err := security.SignOrderData(signatureKey, orderData)

# Authentication Signature

Authenticated requests carry an AuthSignature element after the header.
It references every element marked authenticate="true" through an
XPointer expression and is signed with the X002 key (RSA-SHA256):

	err := security.SignAuth(doc, authenticationKey)
	err = security.VerifyAuth(responseDoc, bankAuthenticationKey)

# References

  - EBICS 2.5 specification, chapter 15 (security mechanisms)
  - XML-Signature Syntax and Processing: https://www.w3.org/TR/xmldsig-core/
*/
package security
