// SPDX-License-Identifier: Apache-2.0
package catalog

import "slices"

// Item is one tagged entry of the catalog
type Item struct {
	ID            string
	Category      string   // "type" in the document
	Subcategories []string // "time" in the document
	Features      []string // "feature" in the document
}

// HasSubcategory reports whether the item lists the given subcategory
func (i Item) HasSubcategory(subcategory string) bool {
	return slices.Contains(i.Subcategories, subcategory)
}

// HasFeatures reports whether every given feature is present on the item.
// An empty feature list matches every item.
func (i Item) HasFeatures(features []string) bool {
	for _, f := range features {
		if !slices.Contains(i.Features, f) {
			return false
		}
	}
	return true
}

// Catalog is the read-only lookup table of items, kept in document order.
// It is never mutated after construction.
type Catalog struct {
	items []Item
	index map[string]int
}

// New builds a catalog from items. A repeated id keeps its first position and
// takes the attributes of the last occurrence.
func New(items []Item) *Catalog {
	c := &Catalog{
		items: make([]Item, 0, len(items)),
		index: make(map[string]int, len(items)),
	}
	for _, it := range items {
		if pos, ok := c.index[it.ID]; ok {
			c.items[pos] = it
			continue
		}
		c.index[it.ID] = len(c.items)
		c.items = append(c.items, it)
	}
	return c
}

// Len returns the number of items
func (c *Catalog) Len() int {
	return len(c.items)
}

// Items returns a copy of all items in document order
func (c *Catalog) Items() []Item {
	return slices.Clone(c.items)
}

// Item looks up an item by id
func (c *Catalog) Item(id string) (Item, bool) {
	pos, ok := c.index[id]
	if !ok {
		return Item{}, false
	}
	return c.items[pos], true
}

// Categories returns every non-blank category in first-seen order
func (c *Catalog) Categories() []string {
	var seen orderedSet
	for _, it := range c.items {
		seen.add(it.Category)
	}
	return seen.values
}

// Subcategories returns the union of subcategories over all items of a category
func (c *Catalog) Subcategories(category string) []string {
	var seen orderedSet
	for _, it := range c.items {
		if it.Category != category {
			continue
		}
		seen.add(it.Subcategories...)
	}
	return seen.values
}

// Features returns the union of features over items matching both the
// category and the subcategory
func (c *Catalog) Features(category, subcategory string) []string {
	var seen orderedSet
	for _, it := range c.items {
		if it.Category != category || !it.HasSubcategory(subcategory) {
			continue
		}
		seen.add(it.Features...)
	}
	return seen.values
}

// AllFeatures returns every feature in the catalog in first-seen order
func (c *Catalog) AllFeatures() []string {
	var seen orderedSet
	for _, it := range c.items {
		seen.add(it.Features...)
	}
	return seen.values
}

// Match returns the ids of items whose category matches, whose subcategories
// contain subcategory, and whose features are a superset of features.
func (c *Catalog) Match(category, subcategory string, features []string) []string {
	var ids []string
	for _, it := range c.items {
		if it.Category == category && it.HasSubcategory(subcategory) && it.HasFeatures(features) {
			ids = append(ids, it.ID)
		}
	}
	return ids
}

// ItemsInCategory returns the ids of every item of a category
func (c *Catalog) ItemsInCategory(category string) []string {
	var ids []string
	for _, it := range c.items {
		if it.Category == category {
			ids = append(ids, it.ID)
		}
	}
	return ids
}

// orderedSet collects non-blank strings once, keeping first-seen order
type orderedSet struct {
	values []string
	seen   map[string]struct{}
}

func (s *orderedSet) add(values ...string) {
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := s.seen[v]; ok {
			continue
		}
		s.seen[v] = struct{}{}
		s.values = append(s.values, v)
	}
}
