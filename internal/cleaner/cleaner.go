// Package cleaner strips institutional headers, bibliography blocks and
// near-duplicate lines from OCR text.
//
// Lines are processed in order with a single piece of state: whether the
// scan is currently inside a references block. Header and reference
// detection is delegated to a RuleSet so every heuristic is named and can be
// tested on its own. The result is a heuristic; short domain headings may be
// lost and some noise may survive.
package cleaner

import (
	"regexp"
	"strings"

	"github.com/wgomg/notesift/internal/similarity"
	"github.com/wgomg/notesift/internal/tokenize"
)

const (
	DefaultDuplicateThreshold = 0.92
	DefaultShortLineTokens    = 4
	DefaultResidualTokens     = 6
)

// Options are the numeric thresholds of the cleaner.
type Options struct {
	// DuplicateThreshold is the Jaccard similarity at or above which a line
	// is dropped as a near-duplicate of an earlier kept line.
	DuplicateThreshold float64
	// ShortLineTokens: lines with fewer content tokens are header noise
	// unless they carry a digit, a question mark or a domain term.
	ShortLineTokens int
	// ResidualTokens: inside a references block, lines with fewer content
	// tokens are skipped.
	ResidualTokens int
}

func DefaultOptions() Options {
	return Options{
		DuplicateThreshold: DefaultDuplicateThreshold,
		ShortLineTokens:    DefaultShortLineTokens,
		ResidualTokens:     DefaultResidualTokens,
	}
}

// Decision records what happened to one input line.
type Decision struct {
	Input string
	// Output is the kept text, possibly with its institutional tail removed.
	Output string
	Kept   bool
	// Rule names the reason a line was dropped. Empty for kept lines.
	Rule string
}

// Reasons a line is dropped that do not come from the rule table.
const (
	ReasonBlank          = "blank"
	ReasonInReferences   = "reference-residual"
	ReasonEmptyAfterTail = "empty-after-tail"
	ReasonNearDuplicate  = "near-duplicate"
)

type Cleaner struct {
	tok   *tokenize.Tokenizer
	rules *RuleSet
	opts  Options
}

// New builds a cleaner. A nil tokenizer uses tokenize.Default.
func New(tok *tokenize.Tokenizer, vocab Vocabulary, opts Options) *Cleaner {
	if tok == nil {
		tok = tokenize.Default()
	}
	return &Cleaner{
		tok:   tok,
		rules: NewRuleSet(vocab, opts),
		opts:  opts,
	}
}

// Default builds a cleaner with the default vocabulary and thresholds.
func Default() *Cleaner {
	return New(nil, DefaultVocabulary(), DefaultOptions())
}

func (c *Cleaner) Rules() *RuleSet {
	return c.rules
}

var (
	reBullets    = regexp.MustCompile(`[•●▪■◦‣∙·➤▶❖]`)
	reDashes     = regexp.MustCompile(`[–—]`)
	reWhitespace = regexp.MustCompile(`\s+`)
)

// NormalizeLine maps bullet glyphs and long dashes to "-", collapses
// whitespace and trims.
func NormalizeLine(line string) string {
	s := reBullets.ReplaceAllString(line, "-")
	s = reDashes.ReplaceAllString(s, "-")
	s = reWhitespace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Clean returns the kept lines of raw joined by "\n".
func (c *Cleaner) Clean(raw string) string {
	if raw == "" {
		return ""
	}

	decisions := c.Trace(raw)
	kept := make([]string, 0, len(decisions))
	for _, d := range decisions {
		if d.Kept {
			kept = append(kept, d.Output)
		}
	}
	return strings.Join(kept, "\n")
}

// Trace runs the cleaner and reports a decision for every input line.
func (c *Cleaner) Trace(raw string) []Decision {
	if raw == "" {
		return nil
	}

	lines := strings.Split(raw, "\n")
	decisions := make([]Decision, 0, len(lines))

	inReferences := false
	for _, input := range lines {
		d := Decision{Input: input}
		s := NormalizeLine(input)
		if s == "" {
			d.Rule = ReasonBlank
			decisions = append(decisions, d)
			continue
		}

		line := Line{Text: s, Content: c.tok.ContentTokens(s)}

		if name, ok := c.rules.Classify(line, ClassReferenceHeading); ok {
			inReferences = true
			d.Rule = name
			decisions = append(decisions, d)
			continue
		}

		if inReferences {
			if _, ok := c.rules.Classify(line, ClassTopicCue); ok {
				inReferences = false
			} else if name, ok := c.rules.Classify(line, ClassReferenceItem); ok {
				d.Rule = name
				decisions = append(decisions, d)
				continue
			} else if len(line.Content) < c.opts.ResidualTokens {
				d.Rule = ReasonInReferences
				decisions = append(decisions, d)
				continue
			} else {
				inReferences = false
			}
		}

		if name, ok := c.rules.Classify(line, ClassHeader); ok {
			d.Rule = name
			decisions = append(decisions, d)
			continue
		}

		s = c.rules.StripTail(s)
		if s == "" {
			d.Rule = ReasonEmptyAfterTail
			decisions = append(decisions, d)
			continue
		}

		d.Output = s
		d.Kept = true
		decisions = append(decisions, d)
	}

	c.dropNearDuplicates(decisions)
	return decisions
}

// dropNearDuplicates compares each kept line with every earlier kept line.
func (c *Cleaner) dropNearDuplicates(decisions []Decision) {
	seen := make([]similarity.Set, 0, len(decisions))
	for i := range decisions {
		d := &decisions[i]
		if !d.Kept {
			continue
		}

		set := c.tok.Set(d.Output)
		duplicate := false
		for _, prev := range seen {
			if similarity.Jaccard(set, prev) >= c.opts.DuplicateThreshold {
				duplicate = true
				break
			}
		}

		if duplicate {
			d.Kept = false
			d.Output = ""
			d.Rule = ReasonNearDuplicate
			continue
		}
		seen = append(seen, set)
	}
}
