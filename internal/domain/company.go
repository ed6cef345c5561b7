package domain

type ATSKind string

const (
	ATSGreenhouse      ATSKind = "structured-greenhouse"
	ATSLever           ATSKind = "structured-lever"
	ATSSmartRecruiters ATSKind = "structured-smartrecruiters"
	ATSHTMLCustom      ATSKind = "html-custom"
	ATSUnsupported     ATSKind = "unsupported"
)

// SourceKind maps an ATS family to the provenance tag stamped on postings.
func (k ATSKind) SourceKind() SourceKind {
	switch k {
	case ATSHTMLCustom:
		return SourceHTMLATS
	default:
		return SourceStructuredATS
	}
}

func (k ATSKind) Valid() bool {
	switch k {
	case ATSGreenhouse, ATSLever, ATSSmartRecruiters, ATSHTMLCustom, ATSUnsupported:
		return true
	}
	return false
}

// SourceDefinition is one employer career page. Static config, read-only at runtime.
type SourceDefinition struct {
	ID            string  `yaml:"id" json:"id"`
	DisplayName   string  `yaml:"name" json:"name"`
	CareerPageURL string  `yaml:"url" json:"url"`
	ATSKind       ATSKind `yaml:"ats" json:"ats_kind"`
	Category      string  `yaml:"category" json:"category"`
}
