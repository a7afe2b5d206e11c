package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"storefront/middleware"
	"storefront/models"
	"storefront/services"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrConflict),
		errors.Is(err, models.ErrOutOfStock),
		errors.Is(err, models.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, models.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error envelope. Internal errors are recorded on the
// context for the request logger and not echoed to the client.
func respondError(c *gin.Context, message string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		c.JSON(status, models.ErrorResponse{Success: false, Message: message})
		return
	}
	c.JSON(status, models.ErrorResponse{Success: false, Message: message, Error: err.Error()})
}

func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Success: false,
		Message: "Invalid request body",
		Error:   err.Error(),
	})
}

func respondOK(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, models.Response{Success: true, Message: message, Data: data})
}

func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: fmt.Sprintf("Invalid %s", strings.ReplaceAll(name, "_", " ")),
		})
		return 0, false
	}
	return id, true
}

func getPaginationParams(c *gin.Context, defaultLimit int) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > models.MaxPageSize {
		limit = models.MaxPageSize
	}
	return page, limit
}

func generateLinks(c *gin.Context, page, limit, totalPages int) models.PaginationLinks {
	scheme := "https"
	if c.Request.TLS == nil {
		scheme = "http"
	}

	host := c.Request.Host
	path := c.Request.URL.Path
	queryParams := c.Request.URL.Query()

	makeURL := func(pageNum int) string {
		newParams := url.Values{}
		for key, values := range queryParams {
			if key != "page" {
				for _, value := range values {
					newParams.Add(key, value)
				}
			}
		}
		newParams.Set("page", strconv.Itoa(pageNum))
		newParams.Set("limit", strconv.Itoa(limit))
		return fmt.Sprintf("%s://%s%s?%s", scheme, host, path, newParams.Encode())
	}

	links := models.PaginationLinks{
		Self: makeURL(page),
	}
	if page > 1 {
		links.Prev = makeURL(page - 1)
	}
	if page < totalPages {
		links.Next = makeURL(page + 1)
	}
	return links
}

func buildHATEOASResponse(c *gin.Context, message string, data interface{}, meta models.PaginationMeta) models.HATEOASResponse {
	return models.HATEOASResponse{
		Success: true,
		Message: message,
		Data:    data,
		Meta:    meta,
		Links:   generateLinks(c, meta.Page, meta.Limit, meta.TotalPages),
	}
}

// parseProductFilter reads the listing query: q, category, collection,
// min_price, max_price, in_stock, sort, page, limit and any number of
// attr.<slug>=v1,v2 selections.
func parseProductFilter(c *gin.Context) (models.ProductFilter, error) {
	query := c.Request.URL.Query()
	f := models.ProductFilter{
		Query:          query.Get("q"),
		CategorySlug:   strings.TrimSpace(query.Get("category")),
		CollectionSlug: strings.TrimSpace(query.Get("collection")),
		Sort:           query.Get("sort"),
		Attributes:     map[string][]string{},
	}
	f.Page, _ = strconv.Atoi(query.Get("page"))
	f.Limit, _ = strconv.Atoi(query.Get("limit"))

	var err error
	if f.MinPrice, err = priceParam(query, "min_price"); err != nil {
		return f, err
	}
	if f.MaxPrice, err = priceParam(query, "max_price"); err != nil {
		return f, err
	}
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		return f, fmt.Errorf("min_price is above max_price: %w", models.ErrInvalidInput)
	}

	if raw := query.Get("in_stock"); raw != "" {
		if f.InStock, err = strconv.ParseBool(raw); err != nil {
			return f, fmt.Errorf("in_stock must be a boolean: %w", models.ErrInvalidInput)
		}
	}

	for key, values := range query {
		slug, ok := strings.CutPrefix(key, "attr.")
		if !ok || slug == "" {
			continue
		}
		for _, v := range values {
			f.Attributes[slug] = append(f.Attributes[slug], strings.Split(v, ",")...)
		}
	}
	return f, nil
}

func priceParam(query url.Values, key string) (*int64, error) {
	raw := query.Get(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		return nil, fmt.Errorf("%s must be a non-negative integer amount: %w", key, models.ErrInvalidInput)
	}
	return &v, nil
}

func currentUserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(middleware.ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

func guestToken(c *gin.Context) string {
	return c.GetString(middleware.ContextGuestToken)
}

func cartOwner(c *gin.Context) services.CartOwner {
	owner := services.CartOwner{SessionToken: guestToken(c)}
	if id, ok := currentUserID(c); ok {
		owner.UserID = &id
	}
	return owner
}
