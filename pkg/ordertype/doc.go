// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package ordertype provides the catalog of EBICS order types.

Order types are three-character codes naming a business transaction
(INI, HPB, CCT, STA, ...). Each known code carries its transmission
direction, a presence policy and a description:

	ot := ordertype.Parse("CCT")
	ot.Transmission()     // ordertype.Upload
	ot.IsMandatory(false) // false

Codes a bank reports that are not in the catalog are kept as raw values
rather than rejected:

	ot := ordertype.Parse("ZZZ")
	ot.Known() // false
	ot.Code()  // "ZZZ"
*/
package ordertype
