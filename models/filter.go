package models

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

const (
	SortNewest    = "newest"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortNameAsc   = "name_asc"
	SortNameDesc  = "name_desc"

	DefaultPageSize = 12
	MaxPageSize     = 100
)

// ProductFilter holds the storefront listing parameters. Attributes maps an
// attribute slug to the accepted value slugs.
type ProductFilter struct {
	Query          string
	CategorySlug   string
	CollectionSlug string
	MinPrice       *int64
	MaxPrice       *int64
	InStock        bool
	Attributes     map[string][]string
	Sort           string
	Page           int
	Limit          int
}

// Normalize clamps paging, drops empty attribute selections and dedupes and
// sorts values so equal filters compare and cache equally.
func (f *ProductFilter) Normalize() {
	f.Query = strings.TrimSpace(f.Query)
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = DefaultPageSize
	}
	if f.Limit > MaxPageSize {
		f.Limit = MaxPageSize
	}
	switch f.Sort {
	case SortNewest, SortPriceAsc, SortPriceDesc, SortNameAsc, SortNameDesc:
	default:
		f.Sort = SortNewest
	}

	for slug, values := range f.Attributes {
		seen := make(map[string]struct{}, len(values))
		cleaned := values[:0]
		for _, v := range values {
			v = strings.TrimSpace(v)
			if v == "" {
				continue
			}
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			cleaned = append(cleaned, v)
		}
		if len(cleaned) == 0 {
			delete(f.Attributes, slug)
			continue
		}
		sort.Strings(cleaned)
		f.Attributes[slug] = cleaned
	}
}

func (f ProductFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// AttributeSlugs returns the filtered attribute slugs in sorted order.
func (f ProductFilter) AttributeSlugs() []string {
	slugs := make([]string, 0, len(f.Attributes))
	for slug := range f.Attributes {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	return slugs
}

// Scope keeps only the parameters that decide which products are in view,
// the part facets are computed over.
func (f ProductFilter) Scope() ProductFilter {
	return ProductFilter{
		Query:          f.Query,
		CategorySlug:   f.CategorySlug,
		CollectionSlug: f.CollectionSlug,
		Sort:           SortNewest,
		Page:           1,
		Limit:          DefaultPageSize,
	}
}

// CacheKey is a canonical encoding of the filter; call Normalize first.
func (f ProductFilter) CacheKey() string {
	v := url.Values{}
	if f.Query != "" {
		v.Set("q", strings.ToLower(f.Query))
	}
	if f.CategorySlug != "" {
		v.Set("category", f.CategorySlug)
	}
	if f.CollectionSlug != "" {
		v.Set("collection", f.CollectionSlug)
	}
	if f.MinPrice != nil {
		v.Set("min", fmt.Sprint(*f.MinPrice))
	}
	if f.MaxPrice != nil {
		v.Set("max", fmt.Sprint(*f.MaxPrice))
	}
	if f.InStock {
		v.Set("in_stock", "1")
	}
	for _, slug := range f.AttributeSlugs() {
		v.Set("attr."+slug, strings.Join(f.Attributes[slug], ","))
	}
	v.Set("sort", f.Sort)
	v.Set("page", fmt.Sprint(f.Page))
	v.Set("limit", fmt.Sprint(f.Limit))
	return v.Encode()
}

type FacetValue struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Value string `json:"value,omitempty"`
	Count int    `json:"count"`
}

type AttributeFacet struct {
	ID     int64        `json:"id"`
	Name   string       `json:"name"`
	Slug   string       `json:"slug"`
	Values []FacetValue `json:"values"`
}

type PriceRangeFacet struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

type AvailabilityFacet struct {
	InStock    int `json:"in_stock"`
	OutOfStock int `json:"out_of_stock"`
}

type Facets struct {
	Attributes   []AttributeFacet  `json:"attributes"`
	PriceRange   PriceRangeFacet   `json:"price_range"`
	Availability AvailabilityFacet `json:"availability"`
	Categories   []*Category       `json:"categories"`
}
