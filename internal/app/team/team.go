package team

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed members.yaml
var membersYAML []byte

// Member is one entry of the about page.
type Member struct {
	Slug     string   `yaml:"slug"`
	Name     string   `yaml:"name"`
	Role     string   `yaml:"role"`
	Bio      string   `yaml:"bio"`
	Photo    string   `yaml:"photo"`
	Github   string   `yaml:"github"`
	Linkedin string   `yaml:"linkedin"`
	Email    string   `yaml:"email"`
	Skills   []string `yaml:"skills"`
}

// Registry is a read-only table of members keyed by slug.
type Registry struct {
	members []Member
	bySlug  map[string]Member
}

// Load parses a members document.
func Load(data []byte) (*Registry, error) {
	var doc struct {
		Members []Member `yaml:"members"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse team members: %w", err)
	}

	reg := &Registry{bySlug: make(map[string]Member, len(doc.Members))}
	for _, m := range doc.Members {
		m.Slug = strings.TrimSpace(m.Slug)
		if m.Slug == "" {
			return nil, fmt.Errorf("team member %q has no slug", m.Name)
		}
		if _, dup := reg.bySlug[m.Slug]; dup {
			return nil, fmt.Errorf("duplicate team member slug %q", m.Slug)
		}
		reg.bySlug[m.Slug] = m
		reg.members = append(reg.members, m)
	}
	return reg, nil
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Default returns the registry built from the embedded members file.
// It panics if the embedded file is invalid.
func Default() *Registry {
	defaultOnce.Do(func() {
		reg, err := Load(membersYAML)
		if err != nil {
			panic(err)
		}
		defaultReg = reg
	})
	return defaultReg
}

// Lookup finds a member by slug.
func (r *Registry) Lookup(slug string) (Member, bool) {
	m, ok := r.bySlug[slug]
	return m, ok
}

// All returns the members in file order.
func (r *Registry) All() []Member {
	out := make([]Member, len(r.members))
	copy(out, r.members)
	return out
}
