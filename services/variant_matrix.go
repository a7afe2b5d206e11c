package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"storefront/models"
)

// MaxVariantMatrix caps how many combinations one generate call may expand to.
const MaxVariantMatrix = 250

func combinationKey(valueIDs []int64) string {
	ids := append([]int64(nil), valueIDs...)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}

func selectedValue(a models.Attribute, v models.AttributeValue) models.SelectedValue {
	return models.SelectedValue{
		AttributeID:   a.ID,
		AttributeName: a.Name,
		AttributeSlug: a.Slug,
		ValueID:       v.ID,
		ValueName:     v.Name,
		ValueSlug:     v.Slug,
		Value:         v.Value,
	}
}

// ResolveVariantValues checks that valueIDs pick exactly one value of every
// variant attribute and returns them in attribute order.
func ResolveVariantValues(attrs []models.Attribute, valueIDs []int64) ([]models.SelectedValue, error) {
	picked := make(map[int64]models.SelectedValue, len(attrs))
	for _, id := range valueIDs {
		found := false
		for _, a := range attrs {
			v, ok := a.Value(id)
			if !ok {
				continue
			}
			if _, dup := picked[a.ID]; dup {
				return nil, fmt.Errorf("more than one value given for %s: %w", a.Name, models.ErrInvalidInput)
			}
			picked[a.ID] = selectedValue(a, v)
			found = true
			break
		}
		if !found {
			return nil, fmt.Errorf("value %d is not a variant attribute value of this product type: %w", id, models.ErrInvalidInput)
		}
	}

	out := make([]models.SelectedValue, 0, len(attrs))
	for _, a := range attrs {
		sv, ok := picked[a.ID]
		if !ok {
			return nil, fmt.Errorf("missing value for %s: %w", a.Name, models.ErrInvalidInput)
		}
		out = append(out, sv)
	}
	return out, nil
}

func variantLabel(productSlug string, values []models.SelectedValue) (sku, name string) {
	slugs := []string{productSlug}
	names := make([]string, 0, len(values))
	for _, v := range values {
		slugs = append(slugs, v.ValueSlug)
		names = append(names, v.ValueName)
	}
	return strings.ToUpper(strings.Join(slugs, "-")), strings.Join(names, " / ")
}

// BuildVariantMatrix expands selections into one variant per combination of
// the selected values, walking attrs in order. Combinations already present
// in existing are skipped and counted.
func BuildVariantMatrix(product *models.Product, attrs []models.Attribute, selections []models.AttributeSelection, existing []models.Variant, price int64, stock int) ([]models.Variant, int, error) {
	if len(attrs) == 0 {
		return nil, 0, fmt.Errorf("product type has no variant attributes: %w", models.ErrInvalidInput)
	}

	selected := make(map[int64]map[int64]bool, len(selections))
	for _, s := range selections {
		known := false
		for _, a := range attrs {
			if a.ID == s.AttributeID {
				known = true
				break
			}
		}
		if !known {
			return nil, 0, fmt.Errorf("attribute %d is not a variant attribute of this product type: %w", s.AttributeID, models.ErrInvalidInput)
		}
		if selected[s.AttributeID] == nil {
			selected[s.AttributeID] = map[int64]bool{}
		}
		for _, id := range s.ValueIDs {
			selected[s.AttributeID][id] = true
		}
	}

	axes := make([][]models.SelectedValue, 0, len(attrs))
	total := 1
	for _, a := range attrs {
		ids := selected[a.ID]
		if len(ids) == 0 {
			return nil, 0, fmt.Errorf("select at least one value for %s: %w", a.Name, models.ErrInvalidInput)
		}
		for id := range ids {
			if !a.HasValue(id) {
				return nil, 0, fmt.Errorf("value %d does not belong to %s: %w", id, a.Name, models.ErrInvalidInput)
			}
		}
		axis := make([]models.SelectedValue, 0, len(ids))
		for _, v := range a.Values {
			if ids[v.ID] {
				axis = append(axis, selectedValue(a, v))
			}
		}
		axes = append(axes, axis)
		total *= len(axis)
		if total > MaxVariantMatrix {
			return nil, 0, fmt.Errorf("selection expands to more than %d variants: %w", MaxVariantMatrix, models.ErrInvalidInput)
		}
	}

	taken := make(map[string]bool, len(existing))
	for _, v := range existing {
		taken[combinationKey(v.ValueIDs())] = true
	}

	created := []models.Variant{}
	skipped := 0
	for _, combo := range cartesian(axes) {
		ids := make([]int64, len(combo))
		for i, sv := range combo {
			ids[i] = sv.ValueID
		}
		if taken[combinationKey(ids)] {
			skipped++
			continue
		}
		sku, name := variantLabel(product.Slug, combo)
		created = append(created, models.Variant{
			ProductID:       product.ID,
			SKU:             sku,
			Name:            name,
			Price:           price,
			Stock:           stock,
			IsActive:        true,
			AttributeValues: combo,
		})
	}
	return created, skipped, nil
}

// cartesian returns every combination taking one element per axis; the last
// axis varies fastest.
func cartesian(axes [][]models.SelectedValue) [][]models.SelectedValue {
	out := [][]models.SelectedValue{{}}
	for _, axis := range axes {
		next := make([][]models.SelectedValue, 0, len(out)*len(axis))
		for _, prefix := range out {
			for _, v := range axis {
				combo := make([]models.SelectedValue, len(prefix), len(prefix)+1)
				copy(combo, prefix)
				next = append(next, append(combo, v))
			}
		}
		out = next
	}
	return out
}
