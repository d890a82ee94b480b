package models

// Section groups pre-finalize validation errors.
type Section string

const (
	SectionDocuments         Section = "documents"
	SectionCase              Section = "behandling"
	SectionQualityAssessment Section = "kvalitetsvurdering"
)

// sectionOrder is the order sections are reported in.
var sectionOrder = []Section{SectionDocuments, SectionCase, SectionQualityAssessment}

// FieldError is one (field, reason) pair inside a section.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationItem is the flattened (section, field, reason) triple.
type ValidationItem struct {
	Section Section `json:"section"`
	Field   string  `json:"field"`
	Reason  string  `json:"reason"`
}

// ValidationReport collects every applicable error before finalization instead
// of failing on the first one. The zero value is an empty report.
type ValidationReport struct {
	sections map[Section][]FieldError
}

// Add records a field error under section.
func (r *ValidationReport) Add(section Section, field, reason string) {
	if r.sections == nil {
		r.sections = make(map[Section][]FieldError)
	}
	r.sections[section] = append(r.sections[section], FieldError{Field: field, Reason: reason})
}

// HasErrors reports whether any section is non-empty.
func (r ValidationReport) HasErrors() bool {
	for _, errs := range r.sections {
		if len(errs) > 0 {
			return true
		}
	}
	return false
}

// Section returns the errors recorded under s.
func (r ValidationReport) Section(s Section) []FieldError {
	return r.sections[s]
}

// Items flattens the report into triples, ordered by section then insertion.
func (r ValidationReport) Items() []ValidationItem {
	var items []ValidationItem
	for _, s := range sectionOrder {
		for _, fe := range r.sections[s] {
			items = append(items, ValidationItem{Section: s, Field: fe.Field, Reason: fe.Reason})
		}
	}
	return items
}
