package out

import (
	"sort"
	"strings"

	"readtrack/internal/modules/reader/domain"
	readerout "readtrack/internal/modules/reader/port/out"
)

// ConfigCatalog serves the named books from the config file. Names match
// case-insensitively.
type ConfigCatalog struct {
	entries []domain.CatalogEntry
	byName  map[string]domain.CatalogEntry
}

func NewConfigCatalog(books map[string]string) readerout.Catalog {
	c := &ConfigCatalog{byName: make(map[string]domain.CatalogEntry, len(books))}
	for name, location := range books {
		name = strings.TrimSpace(name)
		location = strings.TrimSpace(location)
		if name == "" || location == "" {
			continue
		}
		entry := domain.CatalogEntry{Name: name, Location: location}
		c.entries = append(c.entries, entry)
		c.byName[strings.ToLower(name)] = entry
	}
	sort.Slice(c.entries, func(i, j int) bool { return c.entries[i].Name < c.entries[j].Name })
	return c
}

func (c *ConfigCatalog) List() []domain.CatalogEntry {
	return append([]domain.CatalogEntry(nil), c.entries...)
}

func (c *ConfigCatalog) Resolve(ref string) domain.CatalogEntry {
	ref = strings.TrimSpace(ref)
	if entry, ok := c.byName[strings.ToLower(ref)]; ok {
		return entry
	}
	return domain.CatalogEntry{Location: ref}
}
