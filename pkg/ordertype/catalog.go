package ordertype

// catalog lists every order type known for H004, in publication order.
var catalog = []entry{
	{"INI", Upload, Mandatory, "Send password initialisation"},
	{"HIA", Upload, Mandatory, "Transmission of the subscriber key for identification and authentication and encryption within the framework of subscriber initialisation"},
	{"HPB", Download, Mandatory, "Transfer the public bank key"},
	{"HPD", Download, Mandatory, "Return bank parameters"},
	{"HSA", Upload, Optional, "Transmission of the subscriber key for identification and authentication and encryption within the framework of subscriber initialisation for subscribers that have remote access data transmission via FTAM"},
	{"HAA", Download, Optional, "Download retrievable order types"},
	{"HKD", Download, Optional, "Download customer's customer and subscriber data"},
	{"HTD", Download, Optional, "Download subscriber's customer and subscriber data"},
	{"HAC", Download, Mandatory, "Download customer acknowledgement (XML-format)"},
	{"HCA", Upload, Mandatory, "Send amendment of the subscriber key for identification and authentication and encryption"},
	{"HCS", Upload, Mandatory, "Transmission of the subscriber key for ES, identification and authentication and encryption"},
	{"HEV", Download, Mandatory, "Download supported EBICS versions"},
	{"SPR", Upload, Mandatory, "Suspension of access authorisation"},
	{"FUL", Upload, Optional, "Upload file with any format"},
	{"FDL", Download, Optional, "Download file with any format"},
	{"HVU", Download, Conditional, "Download VEU overview"},
	{"HVZ", Download, Conditional, "Download VEU overview with additional information"},
	{"HVD", Download, Conditional, "Retrieve VEU state"},
	{"HVT", Download, Conditional, "Retrieve VEU transaction details"},
	{"HVE", Upload, Conditional, "Add VEU signature"},
	{"HVS", Upload, Conditional, "VEU cancellation"},
	{"AEA", Upload, Optional, "Upload free text message (export letters of credit)"},
	{"AIA", Upload, Optional, "Upload import letters of credit"},
	{"AID", Upload, Optional, "Upload import letters of credit documentation recording"},
	{"AKA", Download, Optional, "Download import letters of credit"},
	{"AKD", Download, Optional, "Download import letters of credit, invoicing"},
	{"AZM", Upload, Optional, "Upload foreign payment transaction in magnetic tape format (variable record length)"},
	{"AZV", Upload, Optional, "Upload foreign payment transaction in diskette format"},
	{"AZ2", Upload, Optional, "Upload foreign payment transaction in magnetic tape format (record length field 2 bytes)"},
	{"AZ4", Upload, Optional, "Upload foreign payment transaction in magnetic tape format (record length field 4 bytes)"},
	{"B1H", Upload, Optional, "Presentation of a debit transfer at the merchant's bank"},
	{"B1K", Upload, Optional, "Presentation of a debit transfer at the buyer's bank"},
	{"BCH", Upload, Optional, "Presentation of a credit transfer at the merchant's bank"},
	{"BCK", Upload, Optional, "Presentation of a credit transfer at the buyer's bank"},
	{"BDH", Upload, Optional, "Presentation of dispute initiated credit transfer at the merchant's bank"},
	{"BDK", Upload, Optional, "Presentation of dispute initiated credit transfer at the buyer's bank"},
	{"CBC", Download, Optional, "Download payment status report for direct debit via XML container"},
	{"CCC", Upload, Optional, "Upload credit transfer initiation via XML container"},
	{"CCS", Upload, Optional, "Upload SEPA credit transfers from Service Data Processing Centre"},
	{"CCT", Upload, Optional, "Upload Credit Transfer Initiation (DK/EPC specification of the SEPA credit transfer)"},
	{"CCU", Upload, Optional, "Upload Credit Transfer Initiation with urgent payments (non-SEPA)"},
	{"CCX", Upload, Optional, "Order type for the identification of SEPA credit transfers submitted by CCS if the VEU is used in the SRZ process (only for internal use on the EBICS server)VEU = Distributed Electronic Signature SRZ = Service Data Processing Centre"},
	{"CDB", Upload, Optional, "Upload direct debit initiation (SEPA business to business (B2B) direct debit)"},
	{"CDC", Upload, Optional, "Upload direct debit initiation via XML container (SEPA core direct debit)"},
	{"CDD", Upload, Optional, "Upload direct debit initiation (SEPA core direct debit)"},
	{"CDS", Upload, Optional, "Upload SEPA core direct debits from Service Data Processing Centre"},
	{"CDX", Upload, Optional, "Order type for the identification of SEPA core direct debits submitted by CDS if the VEU is used in the SRZ process (only for internal use on the EBICS server)VEU = Distributed Electronic Signature SRZ = Service Data Processing Centre"},
	{"CDZ", Download, Optional, "Download payment status report for direct debit"},
	{"CK7", Upload, Optional, "Upload SEPA Cards Clearing Reversal via XML- container"},
	{"CK8", Upload, Optional, "Upload SEPA Cards Clearing direct debit initiation via XML-Container"},
	{"CRC", Download, Optional, "Download payment status report for credit transfer via XML container"},
	{"CRZ", Download, Optional, "Download payment status report for credit transfer"},
	{"CXN", Upload, Optional, "Forward SEPA Cards Clearing (SCC) transactions initiated by a Service Data Processing Centre via order types CK7 and CK8 to the account servicing institution"},
	{"CXS", Upload, Optional, "Forward SEPA Credit Transfers and Direct Debits initiated by a Service Data Processing Centre via order types CCS, CDS resp. C2S to the account servicing institution"},
	{"CX7", Upload, Optional, "Upload SEPA Cards Clearing reversal"},
	{"CX8", Upload, Optional, "Upload SEPA Cards Clearing direct debit initiation"},
	{"C2C", Upload, Optional, "Upload direct debit initiation via XML container (SEPA business to business (B2B) direct debit)"},
	{"C2S", Upload, Optional, "Upload SEPA direct debits (B2B) from Service Data Processing Centre"},
	{"C2X", Upload, Optional, "Order type for the identification of SEPA direct debits (B2B) submitted by C2S if the VEU is used in the SRZ process (only for internal use on the EBICS server)VEU = Distributed Electronic Signature SRZ = Service Data Processing Centre"},
	{"C52", Download, Optional, "Download bank to customer account report"},
	{"C53", Download, Optional, "Download bank to customer statement report"},
	{"C54", Download, Optional, "Download bank to customer debit credit notification"},
	{"C7X", Upload, Optional, "Order type for the identification of SEPA Card Clearing (SCC) reversal submitted by CK7 or CX7 if the VEU is used in the SRZ process (only for internal use on the EBICS server)VEU = Distributed Electronic Signature SRZ = Service Data Processing Centre"},
	{"C8X", Upload, Optional, "Order type for the identification of SEPA Card Clearing direct debit initiation submitted by CK8 or CX8 if the VEU is used in the SRZ process (only for internal use on the EBICS server)VEU = Distributed Electronic Signature SRZ = Service Data Processing Centre"},
	{"DDG", Download, Optional, "Download foreign exchange confirmation"},
	{"DHB", Upload, Optional, "Upload foreign exchange confirmation"},
	{"DTI", Download, Optional, "Download IZV file"},
	{"EAB", Download, Optional, "Download export letters of credit"},
	{"EAD", Download, Optional, "Download export letters of credit, invoicing"},
	{"FTB", Both, Optional, "Upload or download any file"},
	{"FTD", Both, Optional, "Upload or download free text file"},
	{"GBZ", Upload, Optional, "Submitting of BZAHL files (Cash card transaction data)"},
	{"GFB", Download, Optional, "Download guarantee consecutive messages (Query to extend or pay, claim for payment information, settlement of claim for payment and/or charges)"},
	{"GFK", Upload, Optional, "Upload guarantee consecutive messages (Response to extend or pay query, request for reduction or release)"},
	{"GUB", Download, Optional, "Download guarantee messages (Issuance, amendment, free format, advice of reduction or release)"},
	{"GUK", Upload, Optional, "Upload guarantee messages (Issuance, amendment, free format)"},
	{"IDD", Upload, Optional, "Upload international debit entries"},
	{"IIB", Download, Optional, "Download import collections"},
	{"IIK", Upload, Optional, "Upload import collections"},
	{"INT", Upload, Optional, "Upload international payment transaction"},
	{"RFT", Upload, Optional, "Upload request for transfer"},
	{"STA", Download, Optional, "Download SWIFT daily accounts"},
	{"TST", Both, Optional, "Upload or download ASCII test file"},
	{"VMK", Download, Optional, "Download short-term acknowledgement slips"},
	{"WPA", Download, Optional, "Download bought/sold notes"},
	{"WPC", Download, Optional, "Download bond confirmation slips"},
	{"BKA", Download, Optional, "Order type for electronic account statements"},
	{"CD1", Upload, Optional, "Upload direct debit initiation (SEPA core direct debit with local instrument = COR1)"},
	{"CZ3", Upload, Optional, "Request credit transfers by sending an xml- container with pain.013 messages"},
	{"CZ4", Upload, Optional, "Reject requested credit transfers by sending an xml-container with pain.014 messages"},
	{"C07", Upload, Optional, "Customer Payment Reversal with Direct Debit BusinessTransaction"},
	{"C1C", Upload, Optional, "Upload direct debit initiation via XML container (SEPA core direct debit with local instrument = COR1)"},
	{"C1S", Upload, Optional, "Upload direct debit initiation (SEPA core direct debit with local instrument = COR1) from Service Data Processing Centre"},
	{"C1X", Upload, Optional, "Order type for the identification of SEPA core direct debits (with with local instrument = COR1) submitted by C1S if the VEU is used in the SRZ process (only for internal use on the EBICS server)VEU = Distributed Electronic Signature SRZ = Service Data Processing Centre"},
	{"C29", Download, Optional, "Resolution of Investigation"},
	{"C55", Upload, Optional, "Customer Payment Cancellation Request"},
	{"C86", Download, Optional, "Bank Services Billing Statement"},
	{"DKI", Download, Optional, "Download foreign exchange rate information (Euro)"},
	{"DMI", Download, Optional, "Download foreign exchange market information"},
	{"DSW", Download, Optional, "Download foreign exchange swap information"},
	{"DTE", Upload, Optional, "Upload rush order (IZV in DTAUS0 format)"},
	{"EEA", Download, Optional, "Download EDIFACT ASCII"},
	{"EEZ", Download, Optional, "Download EDIFACT EBCDIC"},
	{"EIB", Download, Optional, "Download implementation display (export collection) bank to customer"},
	{"EIK", Upload, Optional, "Upload export collections"},
	{"ESA", Upload, Optional, "Upload EDIFACT ASCII"},
	{"ESG", Download, Optional, "Download ESG file for electronic second signature"},
	{"ESP", Upload, Optional, "Upload ESP file for electronic second signature"},
	{"ESR", Upload, Optional, "Submission of EDIFACT debit entries"},
	{"EUE", Upload, Optional, "Upload same-day cross-border Euro express payment"},
	{"GRC", Download, Optional, "Download of response files (Processing result of cash card transaction data)"},
	{"IBI", Download, Optional, "Download response to information request"},
	{"IBK", Download, Optional, "Download institution acknowledgement file complete file"},
	{"IBU", Download, Optional, "Download institution acknowledgement file daily update"},
	{"IBW", Download, Optional, "Download institution acknowledgement file complete file, other file"},
	{"IKI", Upload, Optional, "Upload information request"},
	{"IKK", Upload, Optional, "Upload institution accounts. Complete file limited to 170 MB"},
	{"IKU", Upload, Optional, "Upload institution accounts daily update"},
	{"IKW", Upload, Optional, "Upload institution accounts complete file other file"},
	{"KTH", Upload, Optional, "KTOHIN. Automated process for changing account numbers and bank sort codes"},
	{"KTR", Download, Optional, "KTORUECK. Automated process for changing account numbers and bank sort codes"},
	{"UPD", Download, Optional, "Download updates"},
	{"FIN", Upload, Optional, "Upload EDIFACT-FINPAY"},
	{"IZS", Download, Optional, "Information from central offices"},
	{"SSP", Download, Optional, "EC card suspension file"},
	{"QC1", Upload, Optional, "INPUT CREDIT FILE (ICF)"},
	{"QB1", Upload, Optional, "BILATERAL INPUT CREDIT FILE (BCF)"},
	{"QD5", Upload, Optional, "INPUT CORE DEBIT FILE (CORE IDF)"},
	{"QD6", Upload, Optional, "INPUT B2B DEBIT FILE (B2B IDF)"},
	{"QK1", Upload, Optional, "SCC INPUT DEBIT FILE (SCC IDF)"},
	{"QB2", Download, Optional, "BILATERAL SETTLED CREDIT FILE (BCF)"},
	{"QC2", Download, Optional, "CREDIT VALIDATION FILE (CVF)"},
	{"QC3", Download, Optional, "SETTLED CREDIT FILE (SCF)"},
	{"QK2", Download, Optional, "SCC DEBIT VALIDATION FILE (SCC DVF)"},
	{"QK3", Download, Optional, "SCC DEBIT NOTIFICATION FILE (SCC DNF)"},
	{"QK4", Download, Optional, "SCC SETTLED DEBIT FILE (SCC SDF)"},
	{"QR1", Download, Optional, "DAILY RECONCILIATION REPORT FOR CREDIT Transfers (DRC)"},
	{"QR5", Download, Optional, "DAILY RECONCILIATION REPORT FOR SCC (DRR SCC)"},
	{"QD7", Download, Optional, "CORE DEBIT VALIDATION FILE (DVF)"},
	{"QD8", Download, Optional, "CORE DEBIT NOTIFICATION FILE (DNF)"},
	{"QD9", Download, Optional, "SETTLED CORE DEBIT FILE (SDF)"},
	{"QDA", Download, Optional, "B2B DEBIT VALIDATION FILE (DVF)"},
	{"QDB", Download, Optional, "B2B DEBIT NOTIFICATION FILE (DNF)"},
	{"QDC", Download, Optional, "SETTLED B2B DEBIT FILE (SDF)"},
	{"QR3", Download, Optional, "DAILY RECONCILIATION REPORT FOR CORE DIRECT DEBITS (DRD CORE)"},
	{"QR4", Download, Optional, "DAILY RECONCILIATION REPORT FOR B2B DIRECT DEBITS (DRD B2B)"},
	{"QSD", Download, Optional, "SEPA-Clearer Directory"},
	{"QS1", Upload, Optional, "SVV BSE INPUT DEBIT FILE"},
	{"QS2", Upload, Optional, "SVV ISE INPUT DEBIT FILE"},
	{"QS3", Upload, Optional, "SVV ISR INPUT DEBIT FILE"},
	{"QS4", Download, Optional, "SVV BSE DEBIT VALIDATION FILE"},
	{"QS5", Download, Optional, "SVV BSE DEBIT NOTIFICATION FILE"},
	{"QS6", Download, Optional, "SVV BSE SETTLED DEBIT FILE"},
	{"QS7", Download, Optional, "SVV ISE DEBIT VALIDATION FILE"},
	{"QS8", Download, Optional, "SVV ISE DEBIT NOTIFICATION FILE"},
	{"QS9", Download, Optional, "SVV ISR SETTLED DEBIT FILE"},
	{"QSA", Download, Optional, "SVV ISR DEBIT VALIDATION FILE"},
	{"QR6", Download, Optional, "DAILY RECONCILIATION REPORT FOR SVV BSE (DRD BSE)"},
	{"QR7", Download, Optional, "DAILY RECONCILIATION REPORT FOR SVV ISE (DRD ISE)"},
	{"QR8", Download, Optional, "DAILY RECONCILIATION REPORT FOR SVV ISE (DRD ISR)"},
	{"QEA", Upload, Optional, "LB file, direct debits and payments from credit institutions arising from the paperless cheque collection procedure"},
	{"QI3", Upload, Optional, "IB file; cost rates ISE, from credit institutions"},
	{"QE4", Download, Optional, "LB file; direct debits and payments out of the paperless cheque collection procedure to credit institutions"},
	{"QI2", Download, Optional, "IB file; ISE clearing data records, to credit institutions"},
	{"QM3", Download, Optional, "M3 message: Notification of a non-processable file or submission outside of the time frame (IB file)"},
	{"QM6", Download, Optional, "M6 message: List of files processed in the morning windows or additional notification of ISE clearing data records without a corresponding image"},
	{"QM7", Download, Optional, "M7 message: Notification of payments which have not been executed or have been cancelled"},
	{"QM8", Download, Optional, "M8 message: Notification of non-processable data records"},
	{"QM9", Download, Optional, "M9 message: Notification of processed payments and delivered files; simultaneously serves as final notification that RPS has been completed"},
	{"QE3", Both, Optional, "LB file; direct debits and payments arising from the paperless cheque collection procedure, bank file"},
	{"QI1", Both, Optional, "IB file; ISE clearing data records, bank file"},
	{"QG1", Upload, Optional, "GT file; Prior1 credit transfers from banks"},
	{"QG2", Upload, Optional, "GT file; Prior1 credit transfers from banks"},
	{"QDT", Upload, Optional, "DT file; Prior1 international credit transfers (in euro) from banks"},
	{"QWT", Upload, Optional, "WT file; Prior1 international credit transfers (in foreign currency) from banks"},
	{"QG3", Download, Optional, "GT file, Prior1 credit transfers to banks"},
	{"QG4", Download, Optional, "GT file; Prior1 credit transfers to banks"},
	{"QWA", Download, Optional, "Settlement of foreign currency payments (WA files)"},
	{"QMH", Download, Optional, "M6 message: free text message or information file to banks"},
	{"QMA", Upload, Optional, "MA file; request for transaction volume and account balance during the day"},
	{"QMU", Download, Optional, "Information on transaction volume and account balance during the day"},
	{"QMK", Download, Optional, "MK file, customer statement message"},
	{"QMN", Download, Optional, "M3 file, notification on a not processible MA file"},
	{"JAA", Upload, Optional, "Single ICF"},
	{"JBA", Upload, Optional, "Batch ICF"},
	{"JCA", Upload, Optional, "Single IDF"},
	{"JDA", Upload, Optional, "Batch IDF"},
	{"JEA", Upload, Optional, "Single IDF B2B"},
	{"JFA", Upload, Optional, "Batch IDF B2B"},
	{"JAB", Download, Optional, "Single CVF"},
	{"JBB", Download, Optional, "Batch CVF"},
	{"JAC", Download, Optional, "Single SCF"},
	{"JBC", Download, Optional, "Batch SCF"},
	{"JAD", Download, Optional, "Single CCF"},
	{"JBD", Download, Optional, "Batch CCF"},
	{"JAG", Download, Optional, "Single PCF"},
	{"JBG", Download, Optional, "Batch PCF"},
	{"JA1", Download, Optional, "Daily Reconciliation Report (DRR)"},
	{"JA2", Download, Optional, "Monthly Statistical Report (MSR)"},
	{"JA3", Download, Optional, "Routing Table File (RTF)"},
	{"JA4", Download, Optional, "Cycle Reconciliation Report (CRR)"},
	{"JA5", Download, Optional, "Pre settlement Report"},
	{"JA6", Download, Optional, "Related to a Monthly Advice Report"},
	{"JCB", Download, Optional, "Single DVF"},
	{"JDB", Download, Optional, "Batch DVF"},
	{"JCC", Download, Optional, "Single SDF"},
	{"JDC", Download, Optional, "Batch SDF"},
	{"JCD", Download, Optional, "Single CDF"},
	{"JDD", Download, Optional, "Batch CDF"},
	{"JCE", Download, Optional, "Single DNF"},
	{"JDE", Download, Optional, "Batch DNF"},
	{"JCF", Download, Optional, "Single RSF"},
	{"JDF", Download, Optional, "Batch RSF"},
	{"JC1", Download, Optional, "Daily Reconciliation Report (DRR)"},
	{"JC2", Download, Optional, "Monthly Statistical Report (MSR)"},
	{"JC3", Download, Optional, "Routing Table File (RTF)"},
	{"JC5", Download, Optional, "Pre Settlement Report (PSR)"},
	{"JC6", Download, Optional, "Related to a Monthly Advice Report"},
	{"JGB", Download, Optional, "Single DVF SCC"},
	{"JHB", Download, Optional, "Batch DVF SCC"},
	{"JGC", Download, Optional, "Single SDF SCC"},
	{"JHC", Download, Optional, "Batch SDF SCC"},
	{"JGD", Download, Optional, "Single CDF SCC"},
	{"JHD", Download, Optional, "Batch CDF SCC"},
	{"JGE", Download, Optional, "Single DNF SCC"},
	{"JHE", Download, Optional, "Batch DNF SCC"},
	{"JGF", Download, Optional, "Single RSF SCC"},
	{"JHF", Download, Optional, "Batch RSF SCC"},
	{"JG1", Download, Optional, "Daily Reconciliation Report (DRR)"},
	{"JG2", Download, Optional, "Monthly Statistical Report (MSR)"},
	{"JG3", Download, Optional, "Routing Table File (RTF)"},
	{"JG5", Download, Optional, "Pre Settlement Report (PSR)"},
	{"JEB", Download, Optional, "Single DVF B2B"},
	{"JFB", Download, Optional, "Batch DVF B2B"},
	{"JEC", Download, Optional, "Single SDF B2B"},
	{"JFC", Download, Optional, "Batch SDF B2B"},
	{"JED", Download, Optional, "Single CDF B2B"},
	{"JFD", Download, Optional, "Batch CDF B2B"},
	{"JEE", Download, Optional, "Single DNF B2B"},
	{"JFE", Download, Optional, "Batch DNF B2B"},
	{"JEF", Download, Optional, "Single RSF B2B"},
	{"JFF", Download, Optional, "Batch RSF B2B"},
	{"JE1", Download, Optional, "Daily Reconciliation Report (DRR)"},
	{"JE2", Download, Optional, "Monthly Statistical Report (MSR)"},
	{"JE3", Download, Optional, "Routing Table File (RTF)"},
	{"JE5", Download, Optional, "Pre Settlement Report (PSR)"},
	{"JE6", Download, Optional, "Related to a Monthly Advice Report"},
}
