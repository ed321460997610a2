package catalog

import (
	"fmt"
	"sort"
)

// NotFoundError indicates a lookup for an id the catalog does not hold.
type NotFoundError struct {
	Kind string // "skill" or "item"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found in catalog", e.Kind, e.ID)
}

// Catalog holds the skill and item registries with precomputed indices.
// It is immutable after construction and safe for concurrent reads.
type Catalog struct {
	skills      []Skill
	items       []Item
	skillByID   map[string]*Skill
	itemByID    map[string]*Item
	itemsBySkil map[string][]*Item
}

// New builds a Catalog from the given skills and items.
// It validates the set and returns a combined error describing every
// problem found, or nil if valid.
func New(skills []Skill, items []Item) (*Catalog, error) {
	if err := validate(skills, items); err != nil {
		return nil, err
	}

	c := &Catalog{
		skills:      skills,
		items:       items,
		skillByID:   make(map[string]*Skill, len(skills)),
		itemByID:    make(map[string]*Item, len(items)),
		itemsBySkil: make(map[string][]*Item),
	}

	for i := range c.skills {
		c.skillByID[c.skills[i].ID] = &c.skills[i]
	}
	for i := range c.items {
		it := &c.items[i]
		c.itemByID[it.ID] = it
		for _, sc := range it.Skills {
			c.itemsBySkil[sc.SkillID] = append(c.itemsBySkil[sc.SkillID], it)
		}
	}

	return c, nil
}

// Skill returns the skill with the given id.
func (c *Catalog) Skill(id string) (Skill, error) {
	if s, ok := c.skillByID[id]; ok {
		return *s, nil
	}
	return Skill{}, &NotFoundError{Kind: "skill", ID: id}
}

// HasSkill reports whether the catalog holds a skill with the given id.
func (c *Catalog) HasSkill(id string) bool {
	_, ok := c.skillByID[id]
	return ok
}

// Item returns the item with the given id.
func (c *Catalog) Item(id string) (Item, error) {
	if it, ok := c.itemByID[id]; ok {
		return *it, nil
	}
	return Item{}, &NotFoundError{Kind: "item", ID: id}
}

// Skills returns all skills sorted by id.
func (c *Catalog) Skills() []Skill {
	out := make([]Skill, len(c.skills))
	copy(out, c.skills)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ItemsForSkill returns all items that test the given skill, sorted by id.
func (c *Catalog) ItemsForSkill(skillID string) []Item {
	ptrs := c.itemsBySkil[skillID]
	out := make([]Item, 0, len(ptrs))
	for _, p := range ptrs {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
