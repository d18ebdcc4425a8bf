// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package ebics is an EBICS H004 (EBICS 2.5) client.

The package holds the subscriber data model (Bank, Partner, User), the
per-operation Session and the Client that runs the protocol operations:

  - SendINI, SendHIA: register the subscriber's keys with the bank
  - SendHPB: fetch and pin the bank's authentication and encryption keys
  - Revoke: suspend the subscriber (SPR)
  - Upload, Download: segmented, encrypted file transfer
  - FetchVersions (HEV), FetchOrderTypes (HAA): bank capabilities

# Getting Started

	client, err := ebics.NewClient(&ebics.ClientConfig{Logger: logger})
	if err != nil {
	    return err
	}

	user, err := ebics.NewUser(bank, "PARTNER1", "USER1", "Jane Doe", keys.A005)
	session := ebics.NewSession(user, ebics.WithProduct("go-ebics", "en"))

	user, err = client.SendINI(ctx, session)
	user, err = client.SendHIA(ctx, ebics.NewSession(user))
	// print the initialisation letters, wait for the bank to activate the user
	user, err = client.SendHPB(ctx, ebics.NewSession(user))

Registration operations never mutate their input: they return a new *User
that the caller persists.

# Transfers

	result, err := client.Upload(ctx, session, ordertype.CCT, painXML, nil)

	file, err := client.Download(ctx, session, ordertype.STA, &message.OrderParams{
	    DateRange: &message.DateRange{Start: from, End: to},
	})
	if errors.Is(err, ebics.ErrNoDownloadData) {
	    // nothing to fetch
	}

Each transaction owns its transaction key and transfer state, so a Client
may be shared by concurrent transactions.

# Errors

Every operation failure is an *Error whose Kind is one of ErrTransport,
ErrValidation, ErrCrypto, ErrProtocol or ErrSequence. Return codes reported
by the bank are available in Error.ReturnCode.

# References

  - EBICS 2.5 specification (H004 schema)
  - EBICS Annex 1 (return codes), Annex 2 (order types)
*/
package ebics
