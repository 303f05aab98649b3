package domain

import (
	"fmt"
	"path"
	"regexp"
	"slices"
	"strings"
	"unicode"
)

// ScopeRules is the keyword data driving scope extraction.
// Fields are ordered to minimize memory padding.
type ScopeRules struct {
	Modules       map[string][]string `toml:"modules" yaml:"modules"` // canonical name -> synonyms
	Extensions    []string            `toml:"extensions" yaml:"extensions"`
	Actions       []string            `toml:"actions" yaml:"actions"`
	ModuleMarkers []string            `toml:"module_markers" yaml:"module_markers"`
	DirMarkers    []string            `toml:"dir_markers" yaml:"dir_markers"`
	Stopwords     []string            `toml:"stopwords" yaml:"stopwords"`
}

// DefaultScopeRules returns the built-in bilingual keyword tables.
func DefaultScopeRules() ScopeRules {
	return ScopeRules{
		Modules: map[string][]string{
			"auth":         {"authentication", "authorization", "login", "logout", "signup", "인증", "로그인", "회원가입"},
			"user":         {"users", "사용자", "유저"},
			"profile":      {"profiles", "프로필"},
			"admin":        {"관리자"},
			"payment":      {"payments", "결제"},
			"cart":         {"장바구니"},
			"checkout":     {"주문결제"},
			"order":        {"orders", "주문"},
			"product":      {"products", "상품"},
			"notification": {"notifications", "알림"},
			"email":        {"mail", "이메일"},
			"api":          {},
			"database":     {"db", "데이터베이스"},
			"cache":        {"캐시"},
			"session":      {"sessions", "세션"},
			"search":       {"검색"},
			"config":       {"configuration", "설정"},
		},
		Extensions: []string{
			"go", "ts", "tsx", "js", "jsx", "mjs", "py", "rb", "rs", "java", "kt", "swift",
			"c", "h", "cpp", "hpp", "cs", "php", "vue", "svelte", "css", "scss", "html",
			"json", "yaml", "yml", "toml", "md", "sql", "sh", "txt",
		},
		Actions: []string{
			"migrate", "update", "refactor", "fix", "add", "create", "implement", "delete",
			"remove", "test", "analyze", "build", "improve", "enable", "disable", "edit",
			"modify", "optimize", "design", "cleanup", "troubleshoot", "document", "review",
			"deploy", "write",
			"마이그레이션", "마이그레이트", "이관", "업데이트", "수정", "변경", "갱신", "추가",
			"생성", "만들기", "신규", "버그수정", "고치기", "수리", "패치", "구현", "개발",
			"작성", "삭제", "제거", "테스트", "검증", "분석", "검토", "빌드", "컴파일",
			"리팩터링", "리팩토링", "최적화", "개선", "강화", "활성화", "비활성화", "배포", "정리",
		},
		ModuleMarkers: []string{
			"module", "component", "service", "feature", "package",
			"모듈", "컴포넌트", "서비스", "기능", "패키지",
		},
		DirMarkers: []string{
			"directory", "folder", "dir", "폴더", "디렉토리", "디렉터리", "안에", "내부",
		},
		Stopwords: []string{
			"the", "a", "an", "in", "at", "on", "for", "to", "of", "under", "with", "and",
			"tests", "file", "files", "all", "this", "that", "please", "help", "need",
			"want", "should", "must", "middleware", "integration", "unit", "e2e", "bug",
			"issue", "error", "problem", "code",
		},
	}
}

// Merge returns rules extended with the entries of extra.
// Synonyms of a known module are appended to the existing list.
func (r ScopeRules) Merge(extra ScopeRules) ScopeRules {
	out := ScopeRules{
		Modules:       make(map[string][]string, len(r.Modules)+len(extra.Modules)),
		Extensions:    append(slices.Clone(r.Extensions), extra.Extensions...),
		Actions:       append(slices.Clone(r.Actions), extra.Actions...),
		ModuleMarkers: append(slices.Clone(r.ModuleMarkers), extra.ModuleMarkers...),
		DirMarkers:    append(slices.Clone(r.DirMarkers), extra.DirMarkers...),
		Stopwords:     append(slices.Clone(r.Stopwords), extra.Stopwords...),
	}
	for name, syn := range r.Modules {
		out.Modules[name] = slices.Clone(syn)
	}
	for name, syn := range extra.Modules {
		out.Modules[name] = append(out.Modules[name], syn...)
	}
	return out
}

// koreanParticles are stripped from the end of a token, longest first.
var koreanParticles = []string{"에서", "으로", "에게", "을", "를", "이", "가", "은", "는", "의", "에", "로", "와", "과", "도"}

var (
	skillPattern     = regexp.MustCompile(`^/[a-z][a-z0-9_-]*(:[a-z0-9_-]+)?$`)
	extensionPattern = regexp.MustCompile(`^[a-z0-9]+$`)
)

type tokenKind int

const (
	tokenOther tokenKind = iota
	tokenWord
	tokenFile
	tokenDir
	tokenPath
	tokenSkill
	tokenAction
	tokenModuleMarker
	tokenDirMarker
	tokenStop
)

type token struct {
	text   string
	kind   tokenKind
	hangul bool
}

// ScopeExtractor derives a Scope from free command text.
// Extraction never fails; unrecognized text yields an empty Scope.
type ScopeExtractor struct {
	extensions map[string]struct{}
	synonyms   map[string]string
	actions    map[string]struct{}
	markers    map[string]struct{}
	dirMarkers map[string]struct{}
	stopwords  map[string]struct{}
}

// NewScopeExtractor compiles the rule tables.
// Invalid entries are skipped and reported as warnings wrapping ErrScopeExtraction.
func NewScopeExtractor(rules ScopeRules) (*ScopeExtractor, []error) {
	var warnings []error
	e := &ScopeExtractor{
		extensions: make(map[string]struct{}),
		synonyms:   make(map[string]string),
		actions:    toSet(rules.Actions),
		markers:    toSet(rules.ModuleMarkers),
		dirMarkers: toSet(rules.DirMarkers),
		stopwords:  toSet(rules.Stopwords),
	}

	for _, ext := range rules.Extensions {
		ext = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(ext)), ".")
		if !extensionPattern.MatchString(ext) {
			warnings = append(warnings, fmt.Errorf("%w: invalid extension %q", ErrScopeExtraction, ext))
			continue
		}
		e.extensions[ext] = struct{}{}
	}

	names := make([]string, 0, len(rules.Modules))
	for name := range rules.Modules {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		canonical := strings.ToLower(strings.TrimSpace(name))
		if !isPlainWord(canonical) {
			warnings = append(warnings, fmt.Errorf("%w: invalid module name %q", ErrScopeExtraction, name))
			continue
		}
		e.synonyms[canonical] = canonical
		for _, syn := range rules.Modules[name] {
			s := strings.ToLower(strings.TrimSpace(syn))
			if !isPlainWord(s) {
				warnings = append(warnings, fmt.Errorf("%w: invalid synonym %q for module %q", ErrScopeExtraction, syn, name))
				continue
			}
			e.synonyms[s] = canonical
		}
	}

	return e, warnings
}

// Extract returns the scope of a command.
func (e *ScopeExtractor) Extract(command string) Scope {
	toks := e.tokenize(command)

	var files, modules, dirs []string
	for i, tok := range toks {
		switch tok.kind {
		case tokenFile:
			files = append(files, tok.text)
		case tokenDir:
			dirs = append(dirs, tok.text)
		case tokenWord:
			if canonical, ok := e.synonyms[tok.text]; ok {
				modules = append(modules, canonical)
			}
		case tokenSkill:
			if w, ok := wordAfter(toks, i); ok {
				modules = append(modules, e.canonical(w))
			}
		case tokenAction:
			if w, ok := wordAfter(toks, i); ok {
				modules = append(modules, e.canonical(w))
			}
			if tok.hangul && i > 0 && toks[i-1].kind == tokenWord {
				modules = append(modules, e.canonical(toks[i-1].text))
			}
		case tokenModuleMarker:
			if i > 0 && toks[i-1].kind == tokenWord {
				modules = append(modules, e.canonical(toks[i-1].text))
			}
			if i+1 < len(toks) && toks[i+1].kind == tokenWord {
				modules = append(modules, e.canonical(toks[i+1].text))
			}
		}
	}

	if len(modules) == 0 {
		for _, tok := range toks {
			if tok.kind == tokenWord && tok.hangul {
				modules = append(modules, tok.text)
				break
			}
		}
	}

	return NewScope(files, modules, dirs)
}

func (e *ScopeExtractor) canonical(word string) string {
	if c, ok := e.synonyms[word]; ok {
		return c
	}
	return word
}

// wordAfter returns the first plain word following position i, skipping stopwords.
func wordAfter(toks []token, i int) (string, bool) {
	for j := i + 1; j < len(toks) && j <= i+3; j++ {
		switch toks[j].kind {
		case tokenStop:
			continue
		case tokenWord:
			return toks[j].text, true
		default:
			return "", false
		}
	}
	return "", false
}

func (e *ScopeExtractor) tokenize(command string) []token {
	fields := strings.Fields(command)
	toks := make([]token, 0, len(fields))
	for _, raw := range fields {
		text := strings.Trim(raw, "\"'`()[]{},;!?")
		text = strings.TrimRight(text, ".:")
		if text == "" {
			continue
		}
		toks = append(toks, e.classify(text))
	}

	// "<dir> directory", "<dir> 안에", "in <path>"
	for i := range toks {
		if toks[i].kind == tokenDirMarker && i > 0 &&
			(toks[i-1].kind == tokenWord || toks[i-1].kind == tokenPath) {
			toks[i-1] = asDir(toks[i-1])
		}
		if toks[i].kind == tokenPath && i > 0 && toks[i-1].kind == tokenStop &&
			(toks[i-1].text == "in" || toks[i-1].text == "under") {
			toks[i] = asDir(toks[i])
		}
	}
	return toks
}

func asDir(t token) token {
	return token{text: strings.TrimSuffix(t.text, "/") + "/", kind: tokenDir}
}

func (e *ScopeExtractor) classify(text string) token {
	lower := strings.ToLower(text)
	// Paths keep their case; keywords match case-insensitively.
	switch {
	case strings.HasPrefix(text, "@") && len(text) > 1:
		return token{text: text[1:], kind: tokenFile}
	case strings.Contains(lower, "://"):
		return token{text: lower, kind: tokenOther}
	case len(text) > 1 && strings.HasSuffix(text, "/"):
		return token{text: text, kind: tokenDir}
	case skillPattern.MatchString(lower):
		return token{text: lower, kind: tokenSkill}
	case e.hasKnownExtension(lower):
		return token{text: text, kind: tokenFile}
	case strings.Contains(text, "/"):
		return token{text: text, kind: tokenPath}
	}

	word := e.stripParticle(lower)
	tok := token{text: word, hangul: isHangul(word)}
	switch {
	case has(e.actions, word):
		tok.kind = tokenAction
	case has(e.markers, word):
		tok.kind = tokenModuleMarker
	case has(e.dirMarkers, word):
		tok.kind = tokenDirMarker
	case has(e.stopwords, word):
		tok.kind = tokenStop
	case isPlainWord(word):
		tok.kind = tokenWord
	}
	return tok
}

func (e *ScopeExtractor) hasKnownExtension(s string) bool {
	ext := path.Ext(s)
	if len(ext) < 2 || len(ext) == len(s) {
		return false
	}
	_, ok := e.extensions[ext[1:]]
	return ok
}

// stripParticle removes a trailing Korean particle when what remains is
// recognizable: ASCII text ("auth를") or a known keyword ("인증을").
func (e *ScopeExtractor) stripParticle(word string) string {
	for _, p := range koreanParticles {
		base, ok := strings.CutSuffix(word, p)
		if !ok || base == "" {
			continue
		}
		if isASCII(base) || e.isKeyword(base) {
			return base
		}
	}
	return word
}

func (e *ScopeExtractor) isKeyword(word string) bool {
	if _, ok := e.synonyms[word]; ok {
		return true
	}
	return has(e.actions, word) || has(e.markers, word) || has(e.dirMarkers, word)
}

func isPlainWord(s string) bool {
	if len([]rune(s)) < 2 {
		return false
	}
	letter := false
	for _, r := range s {
		switch {
		case unicode.IsLetter(r):
			letter = true
		case unicode.IsDigit(r), r == '_', r == '-':
		default:
			return false
		}
	}
	return letter
}

func isHangul(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.Is(unicode.Hangul, r) {
			return false
		}
	}
	return true
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, it := range items {
		it = strings.ToLower(strings.TrimSpace(it))
		if it != "" {
			set[it] = struct{}{}
		}
	}
	return set
}

func has(set map[string]struct{}, key string) bool {
	_, ok := set[key]
	return ok
}
