package extract

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/hirekit/slotflow/schema"
)

// LocalExtractor is the deterministic table-driven extractor. It is a
// pure function of the request: no session mutation, no network.
type LocalExtractor struct{}

func NewLocalExtractor() *LocalExtractor {
	return &LocalExtractor{}
}

var digitPattern = regexp.MustCompile(`\d+`)

// koreanNumerals maps native Korean numerals to digits. Longer tokens
// first so 하나 is not shadowed by 한.
var koreanNumerals = []struct {
	Token string
	Value int
}{
	{"하나", 1},
	{"다섯", 5},
	{"여섯", 6},
	{"일곱", 7},
	{"여덟", 8},
	{"아홉", 9},
	{"한", 1},
	{"두", 2},
	{"둘", 2},
	{"세", 3},
	{"셋", 3},
	{"네", 4},
	{"넷", 4},
	{"열", 10},
}

func (e *LocalExtractor) Extract(ctx context.Context, req *Request) (*Result, error) {
	utterance := strings.TrimSpace(req.Utterance)
	if utterance == "" {
		return clarify(req, ""), nil
	}

	cfg := req.Field.Extractor
	switch cfg.Mode {
	case schema.ModeVocabulary:
		return extractVocabulary(req, utterance), nil
	case schema.ModeNumeric:
		return extractNumeric(cfg, utterance), nil
	case schema.ModeKeyword:
		return extractKeyword(cfg, utterance), nil
	default:
		return &Result{Value: utterance}, nil
	}
}

// extractVocabulary matches the lower-cased utterance against the
// field's canonical terms and synonyms. The stored value on a hit is
// the raw utterance, not the canonical term.
func extractVocabulary(req *Request, utterance string) *Result {
	lowered := strings.ToLower(utterance)
	for _, term := range req.Field.Extractor.Terms {
		if strings.Contains(lowered, strings.ToLower(term.Canonical)) {
			return &Result{Value: utterance}
		}
		for _, syn := range term.Synonyms {
			if strings.Contains(lowered, strings.ToLower(syn)) {
				return &Result{Value: utterance}
			}
		}
	}
	return clarify(req, utterance)
}

func extractNumeric(cfg schema.ExtractorConfig, utterance string) *Result {
	if m := digitPattern.FindString(utterance); m != "" {
		return &Result{Value: m + cfg.Unit}
	}
	for _, numeral := range koreanNumerals {
		if strings.Contains(utterance, numeral.Token) {
			return &Result{Value: fmt.Sprintf("%d%s", numeral.Value, cfg.Unit)}
		}
	}
	// No number found; keep the raw answer rather than blocking.
	return &Result{Value: utterance}
}

func extractKeyword(cfg schema.ExtractorConfig, utterance string) *Result {
	lowered := strings.ToLower(utterance)
	for _, rule := range cfg.Keywords {
		for _, trigger := range rule.Triggers {
			if strings.Contains(lowered, strings.ToLower(trigger)) {
				return &Result{Value: rule.Canonical}
			}
		}
	}
	return &Result{Value: utterance}
}

// clarify builds the needs-more-detail result: the value keeps every
// buffered utterance in arrival order so nothing the user typed is lost.
func clarify(req *Request, utterance string) *Result {
	parts := make([]string, 0, len(req.PriorBuffer)+1)
	parts = append(parts, req.PriorBuffer...)
	if utterance != "" {
		parts = append(parts, utterance)
	}

	message := req.Field.Extractor.ClarifyPrompt
	if message == "" {
		message = fmt.Sprintf("%s 정보를 조금 더 구체적으로 알려주세요.", req.Field.Label)
	}

	return &Result{
		Value:           strings.Join(parts, " "),
		NeedsMoreDetail: true,
		FollowUpMessage: message,
		Suggestions:     candidateSuggestions(req.Field),
	}
}

// candidateSuggestions picks up to four canonical terms as quick
// replies for a vocabulary field that failed to match.
func candidateSuggestions(field schema.FieldSpec) []string {
	terms := field.Extractor.Terms
	if len(terms) == 0 {
		return nil
	}
	n := len(terms)
	if n > 4 {
		n = 4
	}
	out := make([]string, 0, n)
	for _, term := range terms[:n] {
		out = append(out, term.Canonical)
	}
	return out
}
