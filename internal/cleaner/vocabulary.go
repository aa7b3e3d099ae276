package cleaner

import (
	"os"
	"strings"

	"github.com/Laisky/errors/v2"
	"gopkg.in/yaml.v3"
)

// Vocabulary holds the word lists the cleaning rules are compiled from.
// Multi-word entries match with either a space or a hyphen between words.
type Vocabulary struct {
	Institutions   []string `yaml:"institutions"`
	HeaderKeywords []string `yaml:"header_keywords"`
	Publishers     []string `yaml:"publishers"`
	TopicCues      []string `yaml:"topic_cues"`
	DomainTerms    []string `yaml:"domain_terms"`
}

// DefaultVocabulary returns the lists tuned for lecture-slide OCR.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Institutions: []string{"kuet"},
		HeaderKeywords: []string{
			"department", "dept", "faculty", "institute", "university",
			"course", "code", "roll", "student", "id", "name", "section",
			"semester", "session", "page", "exam",
		},
		Publishers: []string{
			"wiley", "mcgraw-hill", "pearson", "prentice", "elsevier", "springer",
			"addison-wesley", "academic press", "cambridge", "oxford", "artech", "crc press",
		},
		TopicCues: []string{
			"definition", "frequency reuse", "interference", "types of", "co-channel",
			"adjacent channel", "capacity", "distance", "method", "approach", "concept",
			"cell splitting", "sectoring", "microcell", "femtocell", "advantages",
			"improving coverage", "signal to interference", "umbrella cell", "problem", "solution",
		},
		DomainTerms: []string{
			"cell", "cells", "hexagonal", "frequency", "reuse", "capacity", "interference", "co",
			"channel", "co-channel", "adjacent", "sectoring", "splitting", "umbrella", "microcell",
			"femtocell", "qos", "sinr", "ratio", "distance", "path", "loss", "neighbor", "cluster",
			"assignment", "method", "definition", "concept", "coverage", "power", "antenna", "base",
			"station", "problem", "solution", "zone",
		},
	}
}

// LoadVocabulary reads a YAML vocabulary file. Lists missing from the file
// keep their default values.
func LoadVocabulary(path string) (Vocabulary, error) {
	vocab := DefaultVocabulary()

	data, err := os.ReadFile(path)
	if err != nil {
		return vocab, errors.Wrapf(err, "read vocabulary file %q", path)
	}

	var override Vocabulary
	if err := yaml.Unmarshal(data, &override); err != nil {
		return vocab, errors.Wrapf(err, "parse vocabulary file %q", path)
	}

	vocab.merge(override)
	if err := vocab.validate(); err != nil {
		return vocab, errors.Wrapf(err, "vocabulary file %q", path)
	}

	return vocab, nil
}

func (v *Vocabulary) merge(o Vocabulary) {
	if len(o.Institutions) > 0 {
		v.Institutions = o.Institutions
	}
	if len(o.HeaderKeywords) > 0 {
		v.HeaderKeywords = o.HeaderKeywords
	}
	if len(o.Publishers) > 0 {
		v.Publishers = o.Publishers
	}
	if len(o.TopicCues) > 0 {
		v.TopicCues = o.TopicCues
	}
	if len(o.DomainTerms) > 0 {
		v.DomainTerms = o.DomainTerms
	}
}

func (v Vocabulary) validate() error {
	lists := map[string][]string{
		"institutions":    v.Institutions,
		"header_keywords": v.HeaderKeywords,
		"publishers":      v.Publishers,
		"topic_cues":      v.TopicCues,
	}
	for name, list := range lists {
		for _, w := range list {
			if strings.TrimSpace(w) == "" {
				return errors.Errorf("%s contains an empty entry", name)
			}
		}
	}
	return nil
}
