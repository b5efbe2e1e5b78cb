// Package catalog holds the reference-profile and transfer-mapping
// catalogs. Both are curated configuration artifacts: seeded with
// built-in defaults and replaceable from versioned YAML files.
package catalog

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/okian/mentorpath/internal/domain/dedupe"
	"github.com/okian/mentorpath/internal/domain/model"
)

// Option applies a configuration option to the Catalog.
type Option func(*Catalog)

// WithProfiles replaces the seed profiles.
func WithProfiles(profiles []model.ReferenceProfile) Option {
	return func(c *Catalog) {
		c.profiles = profiles
	}
}

// WithMappings replaces the seed transfer mappings.
func WithMappings(mappings []model.TransferMapping) Option {
	return func(c *Catalog) {
		c.mappings = mappings
	}
}

// Catalog serves read-mostly catalog data. Lookups return copies so a
// scoring pass sees immutable profiles even across a reload.
type Catalog struct {
	mu       sync.RWMutex
	profiles []model.ReferenceProfile
	mappings []model.TransferMapping
}

// New creates a Catalog seeded with the built-in defaults unless
// options replace them.
func New(opts ...Option) *Catalog {
	c := &Catalog{
		profiles: seedProfiles(),
		mappings: seedMappings(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// profilesFile mirrors the YAML catalog artifact layout.
type profilesFile struct {
	Profiles []model.ReferenceProfile `koanf:"profiles"`
}

// mappingsFile mirrors the YAML mapping artifact layout.
type mappingsFile struct {
	Mappings []model.TransferMapping `koanf:"mappings"`
}

// LoadProfilesFile replaces the profile catalog from a YAML artifact.
func (c *Catalog) LoadProfilesFile(ctx context.Context, path string) error {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrCatalogLoad, path, err)
	}
	var pf profilesFile
	if err := k.UnmarshalWithConf("", &pf, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrCatalogLoad, path, err)
	}
	if len(pf.Profiles) == 0 {
		return fmt.Errorf("%w: %s: no profiles", ErrCatalogLoad, path)
	}

	profiles := dedupeProfiles(ctx, pf.Profiles)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.profiles = profiles
	return nil
}

// dedupeProfiles drops repeated profile ids; first occurrence wins.
func dedupeProfiles(ctx context.Context, in []model.ReferenceProfile) []model.ReferenceProfile {
	seen := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(0))
	out := make([]model.ReferenceProfile, 0, len(in))
	for _, p := range in {
		if seen.SeenAndRecord(ctx, p.ID) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// LoadMappingsFile replaces the transfer-mapping catalog from a YAML
// artifact.
func (c *Catalog) LoadMappingsFile(ctx context.Context, path string) error {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrCatalogLoad, path, err)
	}
	var mf mappingsFile
	if err := k.UnmarshalWithConf("", &mf, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrCatalogLoad, path, err)
	}
	if len(mf.Mappings) == 0 {
		return fmt.Errorf("%w: %s: no mappings", ErrCatalogLoad, path)
	}

	mappings := dedupeMappings(ctx, mf.Mappings)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.mappings = mappings
	return nil
}

// dedupeMappings drops repeated (source, target) pairs; first
// occurrence wins. Pair identity is case-insensitive, matching lookup.
func dedupeMappings(ctx context.Context, in []model.TransferMapping) []model.TransferMapping {
	seen := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(0))
	out := make([]model.TransferMapping, 0, len(in))
	for _, m := range in {
		key := strings.ToLower(m.SourceSkill) + "\x00" + strings.ToLower(m.TargetSkill)
		if seen.SeenAndRecord(ctx, key) {
			continue
		}
		out = append(out, m)
	}
	return out
}

// ProfilesByDomain returns the profiles whose skill domain matches,
// case-insensitively. The returned slice is a copy.
func (c *Catalog) ProfilesByDomain(ctx context.Context, domain string) []model.ReferenceProfile {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]model.ReferenceProfile, 0, len(c.profiles))
	for _, p := range c.profiles {
		if strings.EqualFold(p.Domain, domain) {
			cp := p
			cp.Benchmark = make(model.MetricVector, len(p.Benchmark))
			for k, v := range p.Benchmark {
				cp.Benchmark[k] = v
			}
			out = append(out, cp)
		}
	}
	return out
}

// Mappings returns a copy of the transfer-mapping catalog.
func (c *Catalog) Mappings(ctx context.Context) []model.TransferMapping {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]model.TransferMapping, len(c.mappings))
	copy(out, c.mappings)
	return out
}

// ProfileCount returns the total number of profiles across domains.
func (c *Catalog) ProfileCount(ctx context.Context) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.profiles)
}

// MappingCount returns the number of curated transfer mappings.
func (c *Catalog) MappingCount(ctx context.Context) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.mappings)
}
