// Package classify assigns a product or service category to a contract notice
// by whole-word keyword scanning. It is the deterministic counterpart to the
// LLM scoring step: grouping in the report never needs a second model call.
package classify

import (
	"fmt"
	"regexp"
	"strings"
)

// Category pairs a label with the keywords that identify it. The order of
// categories in a Vocabulary is their priority order.
type Category struct {
	Name     string
	Keywords []string
}

// Preference resolves near-synonymous categories: when both Keep and Drop
// matched the same text, Drop is removed from the matched set.
type Preference struct {
	Keep string
	Drop string
}

// Vocabulary is the injected classification table for one business track.
type Vocabulary struct {
	Categories []Category
	Prefer     []Preference
	// CatchAll is returned when three or more distinct categories match.
	CatchAll string
	// Default is returned when nothing matches.
	Default string
}

type Classifier struct {
	vocab    Vocabulary
	patterns [][]*regexp.Regexp
}

// New compiles the vocabulary's keywords into word-boundary patterns.
// Keywords are matched case-insensitively and only as whole words, so "cane"
// never matches inside "canemark".
func New(vocab Vocabulary) (*Classifier, error) {
	patterns := make([][]*regexp.Regexp, len(vocab.Categories))
	for i, category := range vocab.Categories {
		compiled := make([]*regexp.Regexp, 0, len(category.Keywords))
		for _, kw := range category.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw == "" {
				continue
			}
			re, err := regexp.Compile(`\b` + regexp.QuoteMeta(kw) + `\b`)
			if err != nil {
				return nil, fmt.Errorf("compiling keyword %q for category %q: %w", kw, category.Name, err)
			}
			compiled = append(compiled, re)
		}
		patterns[i] = compiled
	}

	return &Classifier{vocab: vocab, patterns: patterns}, nil
}

// Classify returns exactly one category label for the given notice text.
//
// Title keywords take priority: if the title matches any category, only title
// matches are used. Otherwise the combined title and description text is
// scanned. Three or more distinct matches collapse into the catch-all; for
// fewer, the first category in table order wins regardless of where its
// keyword appeared in the text.
func (c *Classifier) Classify(title, description string) string {
	titleLower := strings.ToLower(title)

	matched := c.scan(titleLower)
	if len(matched) == 0 {
		matched = c.scan(titleLower + " " + strings.ToLower(description))
	}

	if len(matched) >= 3 {
		return c.vocab.CatchAll
	}

	for _, category := range c.vocab.Categories {
		if _, ok := matched[category.Name]; ok {
			return category.Name
		}
	}

	return c.vocab.Default
}

// scan returns the set of categories with at least one whole-word keyword hit
// in text. A category is counted once no matter how many of its keywords match.
func (c *Classifier) scan(text string) map[string]struct{} {
	found := make(map[string]struct{})
	for i, category := range c.vocab.Categories {
		for _, re := range c.patterns[i] {
			if re.MatchString(text) {
				found[category.Name] = struct{}{}
				break
			}
		}
	}

	for _, pref := range c.vocab.Prefer {
		if _, keep := found[pref.Keep]; !keep {
			continue
		}
		delete(found, pref.Drop)
	}

	return found
}
