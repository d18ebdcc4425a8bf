// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package message builds and parses EBICS H004 protocol documents.

Builders are plain functions taking every value they need; they return
etree documents that the caller may still sign before serializing:

	doc := message.UploadInitRequest(message.StaticHeader{
	    HostID:         "EBIXHOST",
	    PartnerID:      "PARTNER1",
	    UserID:         "USER1",
	    OrderType:      ordertype.CCT,
	    OrderAttribute: message.OZHNN,
	    BankDigests:    digests,
	    NumSegments:    3,
	    Nonce:          nonce,
	    Timestamp:      time.Now(),
	}, message.UploadInit{...})

	err := security.SignAuth(doc, authKey)
	data, err := message.Marshal(doc)

# Request Documents

  - UnsecuredRequest: INI and HIA
  - NoPubKeyDigestsRequest: HPB
  - UploadInitRequest, UploadTransferRequest: upload transactions
  - DownloadInitRequest, DownloadTransferRequest, ReceiptRequest: download transactions
  - HEVRequest: supported protocol versions

# Order Data

SignaturePubKeyOrderData, HIARequestOrderData and UserSignatureData are
the documents sent inside requests; HPBResponseOrderData and
HAAResponseOrderData are parsed from download order data.

# Responses

ParseResponse reads ebicsResponse and ebicsKeyManagementResponse
documents. Response.Err reports the first non-success return code, header
codes before body codes.

# Validation

StructuralValidator performs the structural checks applied to every
outgoing document. Schema validation is left to callers that need it.
*/
package message
