// Package extract implements static extraction of localizable message
// declarations from parsed JS/TS source trees.
//
// Two declaration shapes are recognized: react-intl message components in
// JSX (<FormattedMessage id=... defaultMessage=... />) and calls to the
// formatIntlMessage runtime helper. Each file yields an ordered, validated
// catalog of message descriptors; the emitter serializes catalogs to JSON
// files mirroring the source layout.
package extract

// Position is a 1-based line/column pair in a source file.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Descriptor is one extracted message declaration.
//
// ID is required and unique within a file's catalog. DefaultMessage is
// required for component declarations and validated against the ICU
// MessageFormat grammar; helper-call declarations carry only an ID.
// Description is optional context for translators and may itself be a
// structured value. File/Start/End are present only when source-location
// extraction is enabled.
type Descriptor struct {
	ID             string      `json:"id"`
	Description    interface{} `json:"description,omitempty"`
	DefaultMessage string      `json:"defaultMessage,omitempty"`
	File           string      `json:"file,omitempty"`
	Start          *Position   `json:"start,omitempty"`
	End            *Position   `json:"end,omitempty"`
}

// sameContent reports whether two descriptors agree on the fields that
// must be consistent across duplicate declarations of one id.
func (d *Descriptor) sameContent(other *Descriptor) bool {
	return d.DefaultMessage == other.DefaultMessage &&
		descriptionsEqual(d.Description, other.Description)
}

func descriptionsEqual(a, b interface{}) bool {
	as, aIsStr := a.(string)
	bs, bIsStr := b.(string)
	if aIsStr && bIsStr {
		return as == bs
	}
	if a == nil && b == nil {
		return true
	}

	am, aIsMap := a.(map[string]interface{})
	bm, bIsMap := b.(map[string]interface{})
	if aIsMap && bIsMap {
		if len(am) != len(bm) {
			return false
		}
		for k, av := range am {
			bv, ok := bm[k]
			if !ok || !descriptionsEqual(av, bv) {
				return false
			}
		}
		return true
	}

	return false
}
