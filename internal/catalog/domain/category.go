package domain

import "time"

// Category represents a product category with optional hierarchical nesting.
type Category struct {
	ID        int64       `json:"id"`
	Name      string      `json:"name"`
	Slug      string      `json:"slug"`
	ParentID  *int64      `json:"parent_id,omitempty"`
	Image     string      `json:"image,omitempty"`
	SortOrder int         `json:"sort_order"`
	IsActive  bool        `json:"is_active"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
	Children  []*Category `json:"children,omitempty"`
}

// BuildTree assembles a flat category list into a nested tree ordered the way
// the input is ordered. Categories whose parent is missing from the list are
// treated as roots rather than dropped.
func BuildTree(flat []Category) []*Category {
	nodes := make(map[int64]*Category, len(flat))
	ordered := make([]*Category, 0, len(flat))

	for i := range flat {
		c := flat[i]
		c.Children = []*Category{}
		nodes[c.ID] = &c
		ordered = append(ordered, &c)
	}

	var roots []*Category
	for _, c := range ordered {
		if c.ParentID != nil {
			if parent, ok := nodes[*c.ParentID]; ok {
				parent.Children = append(parent.Children, c)
				continue
			}
		}
		roots = append(roots, c)
	}

	if roots == nil {
		roots = []*Category{}
	}
	return roots
}
