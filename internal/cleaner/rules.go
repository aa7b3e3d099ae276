package cleaner

import (
	"regexp"
	"strings"
)

// Class groups rules by the decision they drive.
type Class int

const (
	// ClassReferenceHeading opens a references block.
	ClassReferenceHeading Class = iota
	// ClassTopicCue closes a references block.
	ClassTopicCue
	// ClassReferenceItem marks a bibliography entry.
	ClassReferenceItem
	// ClassHeader marks institutional or short noise lines.
	ClassHeader
)

func (c Class) String() string {
	switch c {
	case ClassReferenceHeading:
		return "reference-heading"
	case ClassTopicCue:
		return "topic-cue"
	case ClassReferenceItem:
		return "reference-item"
	case ClassHeader:
		return "header"
	default:
		return "unknown"
	}
}

// Line is a normalized line together with its content tokens.
type Line struct {
	Text    string
	Content []string
}

// Rule is a named predicate over a line.
type Rule struct {
	Name  string
	Class Class
	Match func(Line) bool
}

// RuleSet is an ordered, read-only rule table.
type RuleSet struct {
	rules []Rule
	tail  *regexp.Regexp
}

var (
	reDigitOrQuestion = regexp.MustCompile(`[0-9?]`)
	reCapsRun         = regexp.MustCompile(`[A-Z]{2,}`)
	reTitleWord       = regexp.MustCompile(`^[A-Z][A-Za-z0-9-]*$`)
)

// alternation builds `a|b|c` from plain words. Spaces and hyphens inside an
// entry match each other.
func alternation(words []string, sep string) string {
	parts := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		q := regexp.QuoteMeta(strings.ToLower(w))
		q = strings.NewReplacer("-", sep, " ", sep).Replace(q)
		parts = append(parts, q)
	}
	return strings.Join(parts, "|")
}

// wordsRegexp compiles a case-insensitive whole-word matcher. An empty list
// compiles to a matcher that never matches.
func wordsRegexp(words []string, sep string) *regexp.Regexp {
	alt := alternation(words, sep)
	if alt == "" {
		return regexp.MustCompile(`[^\x00-\x{10FFFF}]`)
	}
	return regexp.MustCompile(`(?i)\b(` + alt + `)\b`)
}

func matches(re *regexp.Regexp) func(Line) bool {
	return func(l Line) bool { return re.MatchString(l.Text) }
}

// NewRuleSet compiles the rule table from a vocabulary and thresholds.
func NewRuleSet(vocab Vocabulary, opts Options) *RuleSet {
	institutions := wordsRegexp(vocab.Institutions, "[- ]")
	headerWords := wordsRegexp(vocab.HeaderKeywords, "[- ]")
	publishers := wordsRegexp(vocab.Publishers, "[- ]")
	topicCues := wordsRegexp(vocab.TopicCues, `[-\s]?`)

	domain := make(map[string]struct{}, len(vocab.DomainTerms))
	for _, w := range vocab.DomainTerms {
		domain[strings.ToLower(strings.TrimSpace(w))] = struct{}{}
	}

	instAlt := alternation(vocab.Institutions, "[- ]")
	deptTail := `department|faculty`
	if instAlt != "" {
		deptTail = instAlt + "|" + deptTail
	}
	electricalDept := regexp.MustCompile(
		`(?i)^\s*(of\s+)?electrical( and)? (electronic|electronics)\b.*\b(` + deptTail + `)\b`)

	tailAlt := `dept\.?|department|faculty`
	if instAlt != "" {
		tailAlt += "|" + instAlt
	}

	rules := []Rule{
		{
			Name:  "reference-heading",
			Class: ClassReferenceHeading,
			Match: matches(regexp.MustCompile(`(?i)^\s*(references?|bibliography)\b`)),
		},
		{
			Name:  "topic-cue",
			Class: ClassTopicCue,
			Match: matches(topicCues),
		},
		{
			Name:  "by-author",
			Class: ClassReferenceItem,
			Match: matches(regexp.MustCompile(`\bby\s+[A-Z][a-z]+`)),
		},
		{
			Name:  "publisher",
			Class: ClassReferenceItem,
			Match: matches(publishers),
		},
		{
			Name:  "year",
			Class: ClassReferenceItem,
			Match: matches(regexp.MustCompile(`\b(19|20)\d{2}\b`)),
		},
		{
			Name:  "edition",
			Class: ClassReferenceItem,
			Match: matches(regexp.MustCompile(`(?i)\bedition\b`)),
		},
		{
			Name:  "title-case",
			Class: ClassReferenceItem,
			Match: func(l Line) bool {
				caps := 0
				for _, w := range strings.Fields(l.Text) {
					if reTitleWord.MatchString(w) {
						caps++
					}
				}
				return caps >= 3 && len(l.Content) < opts.ResidualTokens
			},
		},
		{
			Name:  "header-keyword",
			Class: ClassHeader,
			Match: matches(headerWords),
		},
		{
			Name:  "institution",
			Class: ClassHeader,
			Match: matches(institutions),
		},
		{
			Name:  "electrical-department",
			Class: ClassHeader,
			Match: matches(electricalDept),
		},
		{
			Name:  "electrical-tail",
			Class: ClassHeader,
			Match: matches(regexp.MustCompile(`(?i)^\s*of\s+electrical\b`)),
		},
		{
			Name:  "short-line",
			Class: ClassHeader,
			Match: func(l Line) bool {
				if len(l.Content) >= opts.ShortLineTokens || reDigitOrQuestion.MatchString(l.Text) {
					return false
				}
				for _, tok := range l.Content {
					if _, ok := domain[tok]; ok {
						return false
					}
				}
				return true
			},
		},
		{
			Name:  "caps-institution",
			Class: ClassHeader,
			Match: func(l Line) bool {
				return reCapsRun.MatchString(l.Text) && institutions.MatchString(l.Text)
			},
		},
	}

	return &RuleSet{
		rules: rules,
		tail:  regexp.MustCompile(`(?i)\b(` + tailAlt + `)\b.*$`),
	}
}

// Classify returns the name of the first rule of the given class matching
// the line, and whether one matched.
func (rs *RuleSet) Classify(l Line, class Class) (string, bool) {
	for _, r := range rs.rules {
		if r.Class == class && r.Match(l) {
			return r.Name, true
		}
	}
	return "", false
}

// Rules returns a copy of the table in evaluation order.
func (rs *RuleSet) Rules() []Rule {
	out := make([]Rule, len(rs.rules))
	copy(out, rs.rules)
	return out
}

// StripTail cuts an institutional tail such as "Dept. of EEE, KUET 14" from
// the end of a line.
func (rs *RuleSet) StripTail(text string) string {
	return strings.TrimSpace(rs.tail.ReplaceAllString(text, ""))
}
