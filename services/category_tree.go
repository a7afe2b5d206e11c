package services

import (
	"sort"

	"storefront/models"
)

// BuildTree nests a flat category list. Siblings are ordered by sort order,
// then name. Categories whose parent is missing from the list become roots.
func BuildTree(categories []models.Category) []*models.Category {
	nodes := make(map[int64]*models.Category, len(categories))
	for i := range categories {
		c := categories[i]
		c.Children = nil
		nodes[c.ID] = &c
	}

	roots := []*models.Category{}
	for i := range categories {
		node := nodes[categories[i].ID]
		if node.ParentID != nil {
			if parent, ok := nodes[*node.ParentID]; ok {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}

	sortCategories(roots)
	return roots
}

func sortCategories(list []*models.Category) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].SortOrder != list[j].SortOrder {
			return list[i].SortOrder < list[j].SortOrder
		}
		return list[i].Name < list[j].Name
	})
	for _, c := range list {
		sortCategories(c.Children)
	}
}

// FindInTree returns the node with id, searching depth first.
func FindInTree(roots []*models.Category, id int64) *models.Category {
	for _, c := range roots {
		if c.ID == id {
			return c
		}
		if found := FindInTree(c.Children, id); found != nil {
			return found
		}
	}
	return nil
}

// Breadcrumbs returns the path from the root down to id, inclusive.
func Breadcrumbs(categories []models.Category, id int64) []models.Category {
	byID := make(map[int64]models.Category, len(categories))
	for _, c := range categories {
		c.Children = nil
		byID[c.ID] = c
	}

	path := []models.Category{}
	seen := map[int64]bool{}
	for cur, ok := byID[id]; ok && !seen[cur.ID]; cur, ok = parentOf(byID, cur) {
		seen[cur.ID] = true
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func parentOf(byID map[int64]models.Category, c models.Category) (models.Category, bool) {
	if c.ParentID == nil {
		return models.Category{}, false
	}
	p, ok := byID[*c.ParentID]
	return p, ok
}

// IsDescendant reports whether candidate lies in the subtree under ancestor.
// A category is its own descendant.
func IsDescendant(categories []models.Category, ancestor, candidate int64) bool {
	for _, c := range Breadcrumbs(categories, candidate) {
		if c.ID == ancestor {
			return true
		}
	}
	return false
}

// DirectChildren returns the immediate children of id in display order.
func DirectChildren(categories []models.Category, id int64) []models.Category {
	children := []models.Category{}
	for _, c := range categories {
		if c.ParentID != nil && *c.ParentID == id {
			c.Children = nil
			children = append(children, c)
		}
	}
	sort.SliceStable(children, func(i, j int) bool {
		if children[i].SortOrder != children[j].SortOrder {
			return children[i].SortOrder < children[j].SortOrder
		}
		return children[i].Name < children[j].Name
	})
	return children
}
