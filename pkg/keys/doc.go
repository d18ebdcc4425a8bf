// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package keys models the RSA key material exchanged in EBICS.

Every EBICS subscriber owns three key pairs, each identified by a version
tag that also fixes its usage:

  - A005 / A006: electronic signature (bank-technical signature of orders)
  - X002: authentication (XML-DSig signature of every request)
  - E002: encryption (wrapping of transaction keys)

A Key is a single record carrying the usage and version tag, the public key,
an optional private key, the creation time and the canonical digest:

	k, err := keys.Generate(keys.X002, keys.DefaultBits)
	fmt.Printf("%x\n", k.Digest())

# Digests

Public keys are pinned by their canonical digest: the lowercase hex
exponent and modulus without leading zeros, joined by a single blank,
encoded as US-ASCII and hashed with SHA-256. The digest is derived from the
public key and recomputed whenever the public key is replaced:

	pinned := keys.Digest(pub)
	fmt.Print(keys.FormatDigest(pinned)) // for INI/HIA letters

# Private Key Protection

Private keys at rest are sealed with a secret obtained from a
SecretProvider (scrypt key derivation, ChaCha20-Poly1305 AEAD):

	blob, err := keys.Seal(ctx, provider, userID, k)
	k, err = keys.Open(ctx, provider, userID, blob)

# References

  - EBICS 2.5 specification, chapter 11 (key management)
  - RFC 7914 (scrypt), RFC 8439 (ChaCha20-Poly1305)
*/
package keys
