package message

// XML namespaces of the EBICS schemas.
const (
	NamespaceH004 = "urn:org:ebics:H004"
	NamespaceS001 = "http://www.ebics.org/S001"
	NamespaceH000 = "http://www.ebics.org/H000"
	NamespaceDS   = "http://www.w3.org/2000/09/xmldsig#"
)

// Protocol identification carried on every H004 root element.
const (
	ProtocolVersion  = "H004"
	ProtocolRevision = "1"
)

// Root element names.
const (
	RootRequest                  = "ebicsRequest"
	RootResponse                 = "ebicsResponse"
	RootUnsecuredRequest         = "ebicsUnsecuredRequest"
	RootNoPubKeyDigestsRequest   = "ebicsNoPubKeyDigestsRequest"
	RootKeyManagementResponse    = "ebicsKeyManagementResponse"
	RootHEVRequest               = "ebicsHEVRequest"
	RootHEVResponse              = "ebicsHEVResponse"
	RootSignaturePubKeyOrderData = "SignaturePubKeyOrderData"
	RootHIARequestOrderData      = "HIARequestOrderData"
	RootHPBResponseOrderData     = "HPBResponseOrderData"
	RootUserSignatureData        = "UserSignatureData"
	RootHAAResponseOrderData     = "HAAResponseOrderData"
)

// Algorithm identifiers for key digests and transaction keys.
const (
	AlgorithmSHA256 = "http://www.w3.org/2001/04/xmlenc#sha256"
)

// SecurityMedium codes.
const (
	SecurityMediumUnknown = "0000"
	SecurityMediumDefault = "0100"
)
