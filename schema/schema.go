package schema

// FieldKind describes how a field's value is shaped on the wire.
type FieldKind string

const (
	KindText     FieldKind = "text"
	KindLongText FieldKind = "longtext"
	KindEmail    FieldKind = "email"
	KindDate     FieldKind = "date"
	KindEnum     FieldKind = "enum"
)

// ExtractMode selects the extraction heuristic applied to a field.
type ExtractMode string

const (
	// ModeVocabulary matches the utterance against canonical terms and
	// their synonyms; a miss asks the user to narrow down.
	ModeVocabulary ExtractMode = "vocabulary"
	// ModeNumeric pulls the first integer (or Korean numeral) out of the
	// utterance and formats it with Unit.
	ModeNumeric ExtractMode = "numeric"
	// ModeKeyword canonicalizes the utterance when a trigger keyword is
	// present, otherwise passes the raw text through.
	ModeKeyword ExtractMode = "keyword"
	// ModePassthrough stores the raw utterance unchanged.
	ModePassthrough ExtractMode = "passthrough"
)

// Term is one canonical value of a vocabulary field together with the
// synonyms that resolve to it.
type Term struct {
	Canonical string   `json:"canonical"`
	Synonyms  []string `json:"synonyms,omitempty"`
}

// KeywordRule maps trigger substrings to a canonical label.
type KeywordRule struct {
	Triggers  []string `json:"triggers"`
	Canonical string   `json:"canonical"`
}

// ExtractorConfig is the data-driven heuristic table for one field. All
// field-specific extraction behaviour lives here rather than in branched
// code; the extraction engine consumes it uniformly.
type ExtractorConfig struct {
	Mode ExtractMode `json:"mode"`

	// Vocabulary mode.
	Terms []Term `json:"terms,omitempty"`
	// ClarifyPrompt is asked when no canonical term matched.
	ClarifyPrompt string `json:"clarify_prompt,omitempty"`

	// Numeric mode. Unit is appended to the extracted number ("명").
	Unit string `json:"unit,omitempty"`

	// Keyword mode.
	Keywords []KeywordRule `json:"keywords,omitempty"`
}

// FieldSpec describes one field to collect. Immutable once registered.
type FieldSpec struct {
	Key       string            `json:"key"`
	Label     string            `json:"label"`
	Kind      FieldKind         `json:"kind"`
	Choices   []string          `json:"choices,omitempty"`
	Required  bool              `json:"required"`
	Prompt    string            `json:"prompt,omitempty"`
	Extractor ExtractorConfig   `json:"extractor"`
	Validator func(string) bool `json:"-"`
}

// Valid reports whether value passes the field's validator. Fields
// without a validator accept anything; email format is deliberately not
// checked here, that stays a UI concern.
func (f FieldSpec) Valid(value string) bool {
	if f.Validator == nil {
		return true
	}
	return f.Validator(value)
}
