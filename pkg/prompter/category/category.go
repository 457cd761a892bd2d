package category

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
)

var (
	ErrUnknownLabel = errors.New("unknown label")
	ErrInvalidList  = errors.New("invalid category list")
)

// Registry holds the three ordered label lists. It is immutable once built.
type Registry struct {
	themes     []string
	techniques []string
	styles     []string
}

type Categories struct {
	Themes     []string `json:"themes"`
	Techniques []string `json:"techniques"`
	Styles     []string `json:"styles"`
}

type Selection struct {
	Theme     string `json:"theme"`
	Technique string `json:"technique"`
	Style     string `json:"style"`
}

func Default() *Registry {
	return &Registry{
		themes:     []string{"Nature", "Surrealism", "Historical", "Abstract", "Futuristic"},
		techniques: []string{"Watercolor", "Charcoal", "Oil Painting", "Digital", "Mixed Media"},
		styles:     []string{"Impressionism", "Cubism", "Realism", "Pop Art", "Minimalism"},
	}
}

func New(themes, techniques, styles []string) (*Registry, error) {
	if err := validateList("themes", themes); err != nil {
		return nil, err
	}
	if err := validateList("techniques", techniques); err != nil {
		return nil, err
	}
	if err := validateList("styles", styles); err != nil {
		return nil, err
	}

	return &Registry{
		themes:     slices.Clone(themes),
		techniques: slices.Clone(techniques),
		styles:     slices.Clone(styles),
	}, nil
}

func validateList(name string, labels []string) error {
	if len(labels) == 0 {
		return fmt.Errorf("%w: %s is empty", ErrInvalidList, name)
	}

	seen := make(map[string]struct{}, len(labels))
	for _, label := range labels {
		if strings.TrimSpace(label) == "" {
			return fmt.Errorf("%w: %s contains a blank label", ErrInvalidList, name)
		}
		if _, ok := seen[label]; ok {
			return fmt.Errorf("%w: %s contains duplicate label %q", ErrInvalidList, name, label)
		}
		seen[label] = struct{}{}
	}

	return nil
}

func (r *Registry) Themes() []string {
	return slices.Clone(r.themes)
}

func (r *Registry) Techniques() []string {
	return slices.Clone(r.techniques)
}

func (r *Registry) Styles() []string {
	return slices.Clone(r.styles)
}

func (r *Registry) Categories() Categories {
	return Categories{
		Themes:     r.Themes(),
		Techniques: r.Techniques(),
		Styles:     r.Styles(),
	}
}

// Validate checks that every component of sel is a member of its category.
// Matching is case-sensitive.
func (r *Registry) Validate(sel Selection) error {
	if !slices.Contains(r.themes, sel.Theme) {
		return fmt.Errorf("%w: theme %q", ErrUnknownLabel, sel.Theme)
	}
	if !slices.Contains(r.techniques, sel.Technique) {
		return fmt.Errorf("%w: technique %q", ErrUnknownLabel, sel.Technique)
	}
	if !slices.Contains(r.styles, sel.Style) {
		return fmt.Errorf("%w: style %q", ErrUnknownLabel, sel.Style)
	}

	return nil
}

// Random draws each component independently and uniformly, with replacement.
func (r *Registry) Random(rng *rand.Rand) Selection {
	return Selection{
		Theme:     r.themes[rng.IntN(len(r.themes))],
		Technique: r.techniques[rng.IntN(len(r.techniques))],
		Style:     r.styles[rng.IntN(len(r.styles))],
	}
}

// First returns the selection made of the first label of each category.
func (r *Registry) First() Selection {
	return Selection{
		Theme:     r.themes[0],
		Technique: r.techniques[0],
		Style:     r.styles[0],
	}
}
