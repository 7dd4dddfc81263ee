// Package phenotype resolves phenotype names or ontology accessions to the
// marker genes that define them.
package phenotype

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnknownPhenotype is returned when neither name nor accession is known.
var ErrUnknownPhenotype = errors.New("phenotype: unknown phenotype")

// MarkerSource returns the marker genes of a phenotype. Either name or
// accession may be empty.
type MarkerSource interface {
	Markers(ctx context.Context, name, accession string) ([]string, error)
}

// Entry is one phenotype in a static marker file.
type Entry struct {
	Name      string   `yaml:"name"`
	Accession string   `yaml:"accession"`
	Markers   []string `yaml:"markers"`
}

// StaticSource serves markers from an in-memory table, typically loaded from
// a YAML file.
type StaticSource struct {
	byName      map[string]Entry
	byAccession map[string]Entry
}

// NewStaticSource indexes entries by lower-cased name and by accession.
func NewStaticSource(entries []Entry) *StaticSource {
	s := &StaticSource{
		byName:      make(map[string]Entry, len(entries)),
		byAccession: make(map[string]Entry, len(entries)),
	}
	for _, e := range entries {
		if e.Name != "" {
			s.byName[strings.ToLower(e.Name)] = e
		}
		if e.Accession != "" {
			s.byAccession[e.Accession] = e
		}
	}
	return s
}

// LoadYAML reads a list of entries:
//
//	- name: apoptosis
//	  accession: GO:0006915
//	  markers: [TP53, BAX]
func LoadYAML(r io.Reader) (*StaticSource, error) {
	var entries []Entry
	if err := yaml.NewDecoder(r).Decode(&entries); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode phenotype markers: %w", err)
	}
	return NewStaticSource(entries), nil
}

// LoadFile reads a YAML marker file from disk.
func LoadFile(path string) (*StaticSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadYAML(f)
}

// Markers implements MarkerSource. Accession takes precedence over name.
func (s *StaticSource) Markers(_ context.Context, name, accession string) ([]string, error) {
	e, ok := s.byAccession[accession]
	if !ok {
		e, ok = s.byName[strings.ToLower(name)]
	}
	if !ok {
		return nil, fmt.Errorf("%w: %q %q", ErrUnknownPhenotype, name, accession)
	}
	out := append([]string(nil), e.Markers...)
	sort.Strings(out)
	return out, nil
}

// Name returns the phenotype name registered for accession.
func (s *StaticSource) Name(accession string) (string, bool) {
	e, ok := s.byAccession[accession]
	return e.Name, ok && e.Name != ""
}
