package domain

import (
	"strings"
	"unicode"
)

// DependencyRule links descriptions: a description containing an Effect
// keyword depends on a description containing a Cause keyword when both
// share a scope token.
type DependencyRule struct {
	Name   string   `toml:"name" yaml:"name" json:"name"`
	Effect []string `toml:"effect" yaml:"effect" json:"effect"`
	Cause  []string `toml:"cause" yaml:"cause" json:"cause"`
}

// DefaultDependencyRules returns the built-in bilingual rule table.
func DefaultDependencyRules() []DependencyRule {
	return []DependencyRule{
		{Name: "test-after-impl", Effect: []string{"test", "테스트"}, Cause: []string{"impl", "build", "구현", "빌드"}},
		{Name: "deploy-after-build", Effect: []string{"deploy", "배포"}, Cause: []string{"build", "test", "빌드", "테스트"}},
		{Name: "integration-after-unit", Effect: []string{"integration", "통합"}, Cause: []string{"impl", "unit", "구현", "단위"}},
		{Name: "docs-after-impl", Effect: []string{"docs", "document", "문서화"}, Cause: []string{"impl", "구현"}},
	}
}

// Applies reports whether dependent should depend on prerequisite under this rule.
func (r DependencyRule) Applies(dependent, prerequisite string) bool {
	return containsKeyword(dependent, r.Effect) && containsKeyword(prerequisite, r.Cause)
}

// containsKeyword matches ASCII keywords against word prefixes ("impl" matches
// "implementation") and other keywords as substrings ("구현" matches "구현하기").
func containsKeyword(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	words := strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		if !isASCII(kw) {
			if strings.Contains(lower, kw) {
				return true
			}
			continue
		}
		for _, w := range words {
			if strings.HasPrefix(w, kw) {
				return true
			}
		}
	}
	return false
}
