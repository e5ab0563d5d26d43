// Package report renders the outcome of a projection resolution pass: the
// three locator tables and the alias set, in a deterministic order.
package report

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/specialistvlad/projector/internal/registry"
	"gopkg.in/yaml.v3"
)

// Entry is one row of a locator table.
type Entry struct {
	Name   string `yaml:"name"`
	Target string `yaml:"target"`
}

// Report is a snapshot of the registry state the resolver produces.
type Report struct {
	Projections        []Entry `yaml:"projections"`
	ProjectionManagers []Entry `yaml:"projection_managers"`
	ReadModels         []Entry `yaml:"read_models"`
	Aliases            []Entry `yaml:"aliases"`
}

// Build snapshots the three anchors and the aliases of reg. An undeclared
// anchor yields an empty section.
func Build(reg *registry.Memory) (*Report, error) {
	r := &Report{}
	for _, anchor := range []struct {
		name string
		into *[]Entry
	}{
		{registry.AnchorProjections, &r.Projections},
		{registry.AnchorProjectionManagers, &r.ProjectionManagers},
		{registry.AnchorReadModels, &r.ReadModels},
	} {
		if !reg.HasAnchor(anchor.name) {
			*anchor.into = []Entry{}
			continue
		}
		tbl, err := reg.AnchorTable(anchor.name)
		if err != nil {
			return nil, fmt.Errorf("building report: %w", err)
		}
		entries := make([]Entry, 0, len(tbl))
		for _, name := range tbl.Names() {
			entries = append(entries, Entry{Name: name, Target: tbl[name].ID})
		}
		*anchor.into = entries
	}

	aliases := reg.Aliases()
	r.Aliases = make([]Entry, 0, len(aliases))
	for name, target := range aliases {
		r.Aliases = append(r.Aliases, Entry{Name: name, Target: target})
	}
	sort.Slice(r.Aliases, func(i, j int) bool { return r.Aliases[i].Name < r.Aliases[j].Name })
	return r, nil
}

// WriteYAML encodes the report as YAML.
func (r *Report) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return enc.Close()
}

// WriteText renders the report as aligned sections.
func (r *Report) WriteText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	sections := []struct {
		title   string
		entries []Entry
	}{
		{"PROJECTIONS", r.Projections},
		{"PROJECTION MANAGERS", r.ProjectionManagers},
		{"READ MODELS", r.ReadModels},
		{"ALIASES", r.Aliases},
	}
	for i, s := range sections {
		if i > 0 {
			fmt.Fprintln(tw)
		}
		fmt.Fprintf(tw, "%s (%d)\n", s.title, len(s.entries))
		for _, e := range s.entries {
			fmt.Fprintf(tw, "  %s\t-> %s\n", e.Name, e.Target)
		}
	}
	return tw.Flush()
}
