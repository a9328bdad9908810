// Package assets resolves symbolic image placeholders in generated markup
// into concrete asset URLs.
package assets

import (
	"strings"

	"foliogen/internal/types"
)

// Catalog is the read-only per-request index of a user's project images and
// metadata. Built once before resolution; never mutated during it.
type Catalog struct {
	entries []CatalogEntry
}

// CatalogEntry is one project's assets in caller order.
type CatalogEntry struct {
	ProjectID     string
	Overview      string
	Tags          []string
	FinalImages   []types.ProjectImage
	ProcessImages []types.ProjectImage
}

// BuildCatalog indexes the caller's projects. Order is preserved: token
// families are generated per position, so position is part of the contract.
func BuildCatalog(projects []types.Project) *Catalog {
	c := &Catalog{entries: make([]CatalogEntry, 0, len(projects))}
	for _, p := range projects {
		c.entries = append(c.entries, CatalogEntry{
			ProjectID:     strings.TrimSpace(p.ID),
			Overview:      p.Overview,
			Tags:          append([]string(nil), p.Tags...),
			FinalImages:   append([]types.ProjectImage(nil), p.FinalImages...),
			ProcessImages: append([]types.ProjectImage(nil), p.ProcessImages...),
		})
	}
	return c
}

// Len returns the number of indexed projects.
func (c *Catalog) Len() int { return len(c.entries) }
