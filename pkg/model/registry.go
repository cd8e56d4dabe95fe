package model

import (
	"errors"
	"fmt"
)

// ErrUnknown signals a model name absent from the catalog.
var ErrUnknown = errors.New("unknown model")

// Info describes a catalog entry. It is constructed at startup and read-only.
type Info struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Strategies  []string `json:"strategies"`
}

type entry struct {
	info     Info
	pipeline []Strategy
}

// Registry is the static catalog of named preprocessing models.
type Registry struct {
	entries []entry
	byName  map[string]int
}

// DefaultRegistry builds the standard catalog.
func DefaultRegistry() *Registry {
	r := &Registry{byName: make(map[string]int)}

	r.register(
		"comprehensive",
		"Full pipeline: strips filler phrases, attaches the top 5 keywords by frequency "+
			"(first-occurrence tie-break) plus a word count to metadata, appends repeated "+
			"normalized tokens as tags, and lists detected URLs under metadata.links.",
		clarifyStrategy{}, analyzeStrategy{}, searchStrategy{}, fetchStrategy{},
	)
	r.register(
		"search_optimized",
		"Keyword and tag enrichment: attaches the top 5 keywords by frequency "+
			"(first-occurrence tie-break) to metadata and appends repeated normalized "+
			"tokens as tags. Content is left untouched.",
		analyzeStrategy{}, searchStrategy{},
	)
	r.register(
		"clarify",
		"Removes filler and hedge phrases and normalizes spacing. No side outputs.",
		clarifyStrategy{},
	)

	return r
}

func (r *Registry) register(name, description string, pipeline ...Strategy) {
	names := make([]string, len(pipeline))
	for i, s := range pipeline {
		names[i] = s.Name()
	}
	r.byName[name] = len(r.entries)
	r.entries = append(r.entries, entry{
		info:     Info{Name: name, Description: description, Strategies: names},
		pipeline: pipeline,
	})
}

// List returns the catalog in registration order.
func (r *Registry) List() []Info {
	infos := make([]Info, len(r.entries))
	for i, e := range r.entries {
		infos[i] = e.info
	}
	return infos
}

// Info returns the descriptor for name.
func (r *Registry) Info(name string) (Info, error) {
	i, ok := r.byName[name]
	if !ok {
		return Info{}, fmt.Errorf("%w: %s", ErrUnknown, name)
	}
	return r.entries[i].info, nil
}

// Pipeline returns the ordered strategies for name.
func (r *Registry) Pipeline(name string) ([]Strategy, error) {
	i, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknown, name)
	}
	return r.entries[i].pipeline, nil
}
