package sheet

import (
	"fmt"
	"strings"
)

// Row kinds. Exe forces manual fee entry.
const (
	KindExe   = "Exe"
	KindBlank = "Blank"
)

// Custom fee flags. Yes forces manual fee entry.
const (
	CustomFeeNo  = "No"
	CustomFeeYes = "Yes"
)

// Edition labels as shown in the grid.
const (
	EditionOld = "Old"
	EditionNew = "New"
)

// Row is one line item. Text fields hold exactly what the grid displays.
type Row struct {
	No        int    `json:"no"`
	Kind      string `json:"kind"`
	CustomFee string `json:"custom_fee"`
	Edition   string `json:"edition"`
	Name      string `json:"name"`
	Lines     string `json:"lines"`
	Fees      string `json:"fees"`
	Selected  bool   `json:"selected"`
}

// NewRow returns a row with the default flags and empty text.
func NewRow(no int) Row {
	return Row{
		No:        no,
		Kind:      KindBlank,
		CustomFee: CustomFeeNo,
		Edition:   EditionOld,
	}
}

// IsAutoCalculated reports whether the fee is derived from the rule table.
// It is the only test for fee editability: a fee is editable exactly when
// this returns false.
func IsAutoCalculated(row Row) bool {
	if strings.EqualFold(strings.TrimSpace(row.Kind), "exe") {
		return false
	}
	if strings.EqualFold(strings.TrimSpace(row.CustomFee), "yes") {
		return false
	}
	return true
}

// Field names an editable column.
type Field string

const (
	FieldKind      Field = "kind"
	FieldCustomFee Field = "custom_fee"
	FieldEdition   Field = "edition"
	FieldName      Field = "name"
	FieldLines     Field = "lines"
	FieldFees      Field = "fees"
)

var fieldOptions = map[Field][]string{
	FieldKind:      {KindExe, KindBlank},
	FieldCustomFee: {CustomFeeNo, CustomFeeYes},
	FieldEdition:   {EditionOld, EditionNew},
}

// Fields lists the editable columns in display order.
func Fields() []Field {
	return []Field{FieldKind, FieldCustomFee, FieldEdition, FieldName, FieldLines, FieldFees}
}

// ParseField resolves a column name.
func ParseField(value string) (Field, error) {
	f := Field(strings.ToLower(strings.TrimSpace(value)))
	for _, known := range Fields() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, value)
}

// Options returns the choices offered by a list column, or nil for free text.
func (f Field) Options() []string {
	opts := fieldOptions[f]
	if len(opts) == 0 {
		return nil
	}
	out := make([]string, len(opts))
	copy(out, opts)
	return out
}

// canonical maps a list value onto its display label. Free text and
// unrecognized choices pass through unchanged.
func (f Field) canonical(value string) string {
	for _, opt := range fieldOptions[f] {
		if strings.EqualFold(strings.TrimSpace(value), opt) {
			return opt
		}
	}
	return value
}

// Value reads the text of a column.
func (r Row) Value(f Field) string {
	switch f {
	case FieldKind:
		return r.Kind
	case FieldCustomFee:
		return r.CustomFee
	case FieldEdition:
		return r.Edition
	case FieldName:
		return r.Name
	case FieldLines:
		return r.Lines
	case FieldFees:
		return r.Fees
	default:
		return ""
	}
}

func (r *Row) set(f Field, value string) {
	switch f {
	case FieldKind:
		r.Kind = f.canonical(value)
	case FieldCustomFee:
		r.CustomFee = f.canonical(value)
	case FieldEdition:
		r.Edition = f.canonical(value)
	case FieldName:
		r.Name = value
	case FieldLines:
		r.Lines = value
	case FieldFees:
		r.Fees = value
	}
}

// Editable reports whether the column accepts an edit in the row's current state.
func (r Row) Editable(f Field) bool {
	if f == FieldFees {
		return !IsAutoCalculated(r)
	}
	return true
}
