package calculator

import (
	"github.com/mmynk/taxwiser/internal/formgraph"
)

// Form 1040 income lines.
const (
	Line1a  formgraph.FieldID = "line1a" // W-2 wages
	Line1b  formgraph.FieldID = "line1b" // household employee wages
	Line1c  formgraph.FieldID = "line1c" // tip income
	Line1d  formgraph.FieldID = "line1d" // Medicaid waiver payments
	Line1e  formgraph.FieldID = "line1e" // dependent care benefits
	Line1f  formgraph.FieldID = "line1f" // adoption benefits
	Line1g  formgraph.FieldID = "line1g" // Form 8919 wages
	Line1h  formgraph.FieldID = "line1h" // other earned income
	Line1i  formgraph.FieldID = "line1i" // nontaxable combat pay election
	Line1z  formgraph.FieldID = "line1z"
	Line2a  formgraph.FieldID = "line2a" // tax-exempt interest
	Line2b  formgraph.FieldID = "line2b"
	Line3a  formgraph.FieldID = "line3a" // qualified dividends
	Line3b  formgraph.FieldID = "line3b"
	Line4a  formgraph.FieldID = "line4a"
	Line4b  formgraph.FieldID = "line4b"
	Line5a  formgraph.FieldID = "line5a"
	Line5b  formgraph.FieldID = "line5b"
	Line6a  formgraph.FieldID = "line6a"
	Line6b  formgraph.FieldID = "line6b"
	Line7   formgraph.FieldID = "line7"
	Line8   formgraph.FieldID = "line8"
	Line9   formgraph.FieldID = "line9"
	Line10  formgraph.FieldID = "line10"
	Line11a formgraph.FieldID = "line11a"
)

// Form 1040 deduction, tax and credit lines.
const (
	Line11b            formgraph.FieldID = "line11b"
	Line12d1           formgraph.FieldID = "line12d1"       // born before January 2, 1961
	Line12d2           formgraph.FieldID = "line12d2"       // blind
	Line12dSpouse1     formgraph.FieldID = "line12dSpouse1" // spouse born before January 2, 1961
	Line12dSpouse2     formgraph.FieldID = "line12dSpouse2" // spouse blind
	Line12e            formgraph.FieldID = "line12e"
	Itemize            formgraph.FieldID = "itemize"
	ItemizedMedical    formgraph.FieldID = "itemizedMedical"
	ItemizedStateTaxes formgraph.FieldID = "itemizedStateTaxes"
	ItemizedMortgage   formgraph.FieldID = "itemizedMortgage"
	ItemizedCharitable formgraph.FieldID = "itemizedCharitable"
	ScheduleA          formgraph.FieldID = "scheduleA"
	Line12             formgraph.FieldID = "line12"
	Line13a            formgraph.FieldID = "line13a" // qualified business income deduction
	Line13b            formgraph.FieldID = "line13b"
	Line14             formgraph.FieldID = "line14"
	Line15             formgraph.FieldID = "line15"
	Line16             formgraph.FieldID = "line16"
	Line17             formgraph.FieldID = "line17"
	Line18             formgraph.FieldID = "line18"
	Line19             formgraph.FieldID = "line19"
	Line20             formgraph.FieldID = "line20"
	Line21             formgraph.FieldID = "line21"
	Line22             formgraph.FieldID = "line22"
	Line23             formgraph.FieldID = "line23"
	Line24             formgraph.FieldID = "line24"
)

// Form 1040 payment lines.
const (
	Line25a formgraph.FieldID = "line25a"
	Line25b formgraph.FieldID = "line25b"
	Line25c formgraph.FieldID = "line25c"
	Line25d formgraph.FieldID = "line25d"
	Line26  formgraph.FieldID = "line26"
	Line27  formgraph.FieldID = "line27"
	Line28  formgraph.FieldID = "line28"
	Line29  formgraph.FieldID = "line29"
	Line30  formgraph.FieldID = "line30"
	Line31  formgraph.FieldID = "line31"
	Line32  formgraph.FieldID = "line32"
	Line33  formgraph.FieldID = "line33"
	Line34  formgraph.FieldID = "line34" // overpaid; carries the refund/owed signal
	Line35a formgraph.FieldID = "line35a"
	Line36  formgraph.FieldID = "line36" // applied to next year's estimated tax
	Line37  formgraph.FieldID = "line37"
)

// Indiana IT-40 lines.
const (
	IndianaLine1  formgraph.FieldID = "indianaLine1"
	IndianaLine2  formgraph.FieldID = "indianaLine2"
	IndianaLine3  formgraph.FieldID = "indianaLine3"
	IndianaLine4  formgraph.FieldID = "indianaLine4"
	IndianaLine5  formgraph.FieldID = "indianaLine5"
	IndianaLine6  formgraph.FieldID = "indianaLine6"
	IndianaLine7  formgraph.FieldID = "indianaLine7"
	IndianaLine8  formgraph.FieldID = "indianaLine8"
	IndianaLine9  formgraph.FieldID = "indianaLine9"
	IndianaLine10 formgraph.FieldID = "indianaLine10"
	IndianaLine11 formgraph.FieldID = "indianaLine11"
	IndianaLine12 formgraph.FieldID = "indianaLine12"
	IndianaLine13 formgraph.FieldID = "indianaLine13"
	IndianaLine14 formgraph.FieldID = "indianaLine14"
	IndianaLine15 formgraph.FieldID = "indianaLine15"
	IndianaLine16 formgraph.FieldID = "indianaLine16" // signed; carries the refund/owed signal
	IndianaLine17 formgraph.FieldID = "indianaLine17"
	IndianaLine18 formgraph.FieldID = "indianaLine18"
	IndianaLine19 formgraph.FieldID = "indianaLine19"
	IndianaLine20 formgraph.FieldID = "indianaLine20"
	IndianaLine21 formgraph.FieldID = "indianaLine21"
	IndianaLine23 formgraph.FieldID = "indianaLine23"
	IndianaLine24 formgraph.FieldID = "indianaLine24"
	IndianaLine25 formgraph.FieldID = "indianaLine25"
	IndianaLine26 formgraph.FieldID = "indianaLine26"
)

// checkboxes hold 0 or 1.
var checkboxes = map[formgraph.FieldID]bool{
	Line12d1:       true,
	Line12d2:       true,
	Line12dSpouse1: true,
	Line12dSpouse2: true,
	Itemize:        true,
}

// IsCheckbox reports whether a field is a 0/1 box rather than an amount.
func IsCheckbox(id formgraph.FieldID) bool {
	return checkboxes[id]
}
