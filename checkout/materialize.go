package checkout

import (
	"fmt"
	"strings"
)

// DebugRow is one annotated parameter row of the debug table.
type DebugRow struct {
	Name        string      `json:"name"`
	Value       string      `json:"value"`
	Requirement Requirement `json:"requirement"`
}

// DebugInfo is the human-readable breakdown of one attempt: every request
// parameter with its requirement class, plus the hash calculation details
// with the salt masked.
type DebugInfo struct {
	Flow             Flow       `json:"flow"`
	SubType          SubType    `json:"paymentType,omitempty"`
	Endpoint         string     `json:"endpoint"`
	Rows             []DebugRow `json:"parameters"`
	MaskedSalt       string     `json:"maskedSalt"`
	Formula          string     `json:"hashFormula"`
	MaskedHashString string     `json:"hashString"`
	Hash             string     `json:"hash"`
	HashLength       int        `json:"hashLength"`
}

// jsonValuedFields get single-quoted / urlencoded treatment in the curl
// rendering because their values embed JSON.
var jsonValuedFields = map[string]bool{
	"si_details":        true,
	"beneficiarydetail": true,
	"splitRequest":      true,
	"cart_details":      true,
}

// urlencodedFields are passed through --data-urlencode rather than -d.
var urlencodedFields = map[string]bool{
	"splitRequest": true,
	"cart_details": true,
}

// FormFields returns the ordered field list for a browser-submitted POST to
// the gateway. Presence and values matter to the gateway; order is kept for
// readability only.
func (a *Attempt) FormFields() []Param {
	return a.Params
}

// DebugTable renders the attempt into the annotated debug structure. The
// hash value is shown in full; the salt never appears unmasked.
func (a *Attempt) DebugTable() DebugInfo {
	rows := make([]DebugRow, 0, len(a.Params))
	for _, p := range a.Params {
		value := p.Value
		if p.Name == "hash" && len(value) > 20 {
			value = value[:20] + "... (truncated)"
		}
		rows = append(rows, DebugRow{
			Name:        p.Name,
			Value:       value,
			Requirement: FieldRequirement(p.Name, a.Flow, a.SubType),
		})
	}

	masked := a.Credentials.MaskedSalt()
	return DebugInfo{
		Flow:             a.Flow,
		SubType:          a.SubType,
		Endpoint:         a.Endpoint,
		Rows:             rows,
		MaskedSalt:       masked,
		Formula:          a.Formula,
		MaskedHashString: strings.Replace(a.HashString, a.Credentials.Salt, masked, 1),
		Hash:             a.Hash,
		HashLength:       len(a.Hash),
	}
}

// CurlCommand renders the attempt as a runnable curl invocation against the
// gateway endpoint: one -d per plain field, --data-urlencode for the JSON
// blob fields whose values would otherwise mangle the form encoding.
func (a *Attempt) CurlCommand() string {
	var b strings.Builder
	fmt.Fprintf(&b, "curl -X POST %q \\\n", a.Endpoint)
	b.WriteString("  -H \"Content-Type: application/x-www-form-urlencoded\" \\\n")

	for i, p := range a.Params {
		last := i == len(a.Params)-1
		switch {
		case urlencodedFields[p.Name]:
			fmt.Fprintf(&b, "  --data-urlencode '%s=%s'", p.Name, p.Value)
		case jsonValuedFields[p.Name]:
			fmt.Fprintf(&b, "  -d '%s=%s'", p.Name, p.Value)
		default:
			fmt.Fprintf(&b, "  -d \"%s=%s\"", p.Name, p.Value)
		}
		if !last {
			b.WriteString(" \\")
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}
