package domain

// Field types the upstream form builder uses purely for visual layout.
// They carry no data and are excluded from schema fingerprints.
const (
	FieldTypeSectionBreak = "Section Break"
	FieldTypeColumnBreak  = "Column Break"
	FieldTypeHTML         = "HTML"

	// FieldTypeSelect is a dropdown whose options are a newline-delimited
	// choice list.
	FieldTypeSelect = "Select"

	// FieldTypeLink references records of another doctype; its options
	// value names the target doctype.
	FieldTypeLink = "Link"
)

// FieldDefinition is one field within a doctype as defined upstream.
type FieldDefinition struct {
	// Fieldname is the machine name of the field. Upstream does not
	// guarantee uniqueness across trailing-digit variants (the form
	// builder appends digits to avoid collisions).
	Fieldname string `json:"fieldname"`

	// Fieldtype is the upstream field type, e.g. "Data", "Select",
	// "Link", or one of the layout-only markers.
	Fieldtype string `json:"fieldtype"`

	// Options carries type-dependent semantics: a newline-delimited
	// choice list for Select, the target doctype name for Link, and
	// free-form or empty text otherwise.
	Options string `json:"options"`

	// Label is the human-readable field label. Cosmetic only; it does
	// not participate in the fingerprint.
	Label string `json:"label,omitempty"`

	// Reqd marks the field as mandatory upstream.
	Reqd int `json:"reqd,omitempty"`
}

// IsLayout reports whether the field is a layout-only marker that
// affects visual arrangement but not data semantics.
func (f FieldDefinition) IsLayout() bool {
	switch f.Fieldtype {
	case FieldTypeSectionBreak, FieldTypeColumnBreak, FieldTypeHTML:
		return true
	}
	return false
}

// DoctypeSchema is the canonical shape of a form as currently defined
// by the upstream ERP. It is fetched fresh for every fingerprint
// computation and never cached beyond a single request.
type DoctypeSchema struct {
	// Name is the doctype identifier, e.g. "Sales Invoice".
	Name string `json:"name"`

	// Fields is the ordered field list as upstream serves it.
	Fields []FieldDefinition `json:"fields"`

	// IsSubmittable reports whether records of this doctype support a
	// post-creation submit transition that finalises them.
	IsSubmittable int `json:"is_submittable,omitempty"`

	// Module is the upstream module the doctype belongs to.
	Module string `json:"module,omitempty"`
}

// HasLinkField reports whether any data-bearing field references
// another doctype.
func (s DoctypeSchema) HasLinkField() bool {
	for _, f := range s.Fields {
		if f.Fieldtype == FieldTypeLink {
			return true
		}
	}
	return false
}

// DoctypeName is one entry in an upstream doctype listing.
type DoctypeName struct {
	Name string `json:"name"`
}
