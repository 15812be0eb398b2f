// Package catalog holds the challenges offered on the explore tab. The list is
// embedded so every install offers the same challenge ids.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"slices"

	"github.com/aussiebroadwan/glowup/internal/glowup/domain"
	"gopkg.in/yaml.v3"
)

//go:embed challenges.yaml
var defaultCatalog []byte

var ErrUnknownChallenge = errors.New("catalog: unknown challenge")

type Category struct {
	ID    string `yaml:"id" json:"id"`
	Title string `yaml:"title" json:"title"`
	Icon  string `yaml:"icon" json:"icon"`
}

// Template is a challenge before it is started.
type Template struct {
	ID           string   `yaml:"id" json:"id"`
	Title        string   `yaml:"title" json:"title"`
	Description  string   `yaml:"description" json:"description"`
	Category     string   `yaml:"category" json:"category"`
	DurationDays int      `yaml:"duration" json:"duration"`
	Tasks        []string `yaml:"tasks" json:"tasks"`
}

type Catalog struct {
	Categories []Category `yaml:"categories" json:"categories"`
	Challenges []Template `yaml:"challenges" json:"challenges"`
}

// Default parses the embedded catalog.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

func Parse(raw []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	seen := make(map[string]struct{}, len(c.Challenges))
	for _, t := range c.Challenges {
		if t.ID == "" || t.Title == "" || t.DurationDays <= 0 {
			return fmt.Errorf("catalog: challenge %q is incomplete", t.ID)
		}
		if _, ok := seen[t.ID]; ok {
			return fmt.Errorf("catalog: challenge %q listed twice", t.ID)
		}
		seen[t.ID] = struct{}{}

		if !slices.ContainsFunc(c.Categories, func(cat Category) bool { return cat.ID == t.Category }) {
			return fmt.Errorf("catalog: challenge %q has unknown category %q", t.ID, t.Category)
		}
	}
	return nil
}

func (c *Catalog) Lookup(id string) (Template, error) {
	i := slices.IndexFunc(c.Challenges, func(t Template) bool { return t.ID == id })
	if i < 0 {
		return Template{}, ErrUnknownChallenge
	}
	return c.Challenges[i], nil
}

// InCategory lists the templates of one category, or all when category is "".
func (c *Catalog) InCategory(category string) []Template {
	if category == "" {
		return slices.Clone(c.Challenges)
	}
	var out []Template
	for _, t := range c.Challenges {
		if t.Category == category {
			out = append(out, t)
		}
	}
	return out
}

// Instantiate turns the template into a challenge with the given id. newTaskID
// is called once per task.
func (t Template) Instantiate(id string, newTaskID func() string) domain.Challenge {
	tasks := make([]domain.Task, 0, len(t.Tasks))
	for _, title := range t.Tasks {
		tasks = append(tasks, domain.Task{ID: newTaskID(), Title: title})
	}

	return domain.Challenge{
		ID:           id,
		Title:        t.Title,
		Description:  t.Description,
		DurationDays: t.DurationDays,
		Category:     t.Category,
		Tasks:        tasks,
	}
}
