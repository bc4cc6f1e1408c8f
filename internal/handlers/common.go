package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	apierrors "github.com/yukikurage/lynxview-api/internal/errors"
	"github.com/yukikurage/lynxview-api/internal/services"
	"github.com/yukikurage/lynxview-api/internal/utils"
)

// respondError translates a service error into an API error response
func respondError(c *gin.Context, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrValidation):
		apierrors.BadRequest(c, err.Error())
	default:
		log.Error("request failed",
			slog.String("method", c.Request.Method),
			slog.String("path", c.FullPath()),
			slog.Any("error", err),
		)
		_ = c.Error(err)
		apierrors.InternalError(c, "")
	}
}

// bindJSON decodes the request body, responding 400 on failure
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", bindingDetails(err))
		return false
	}
	return true
}

// bindingDetails maps each failing field to the rule it broke
func bindingDetails(err error) any {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			rule := fe.Tag()
			if fe.Param() != "" {
				rule += "=" + fe.Param()
			}
			details[fe.Field()] = rule
		}
		return details
	}
	return err.Error()
}

// pathID parses a positive integer path parameter
func pathID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		apierrors.BadRequest(c, fmt.Sprintf("Invalid %s", name))
		return 0, false
	}
	return id, true
}

// pagination reads skip/limit, responding 400 when out of range
func pagination(c *gin.Context, limits utils.PageLimits) (utils.PaginationParams, bool) {
	params, err := utils.GetPaginationParams(c, limits)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return params, false
	}
	return params, true
}

// queryFilters collects optional query parameters, remembering the first
// malformed one
type queryFilters struct {
	c   *gin.Context
	err error
}

func newQueryFilters(c *gin.Context) *queryFilters {
	return &queryFilters{c: c}
}

func (q *queryFilters) String(name string) *string {
	v, ok := q.c.GetQuery(name)
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}
	return &v
}

func (q *queryFilters) Uint(name string) *uint64 {
	v := q.String(name)
	if v == nil {
		return nil
	}
	n, err := strconv.ParseUint(*v, 10, 64)
	if err != nil {
		q.fail(name)
		return nil
	}
	return &n
}

func (q *queryFilters) Bool(name string) *bool {
	v := q.String(name)
	if v == nil {
		return nil
	}
	b, err := strconv.ParseBool(*v)
	if err != nil {
		q.fail(name)
		return nil
	}
	return &b
}

// Date accepts a calendar date or an RFC 3339 timestamp
func (q *queryFilters) Date(name string) *time.Time {
	v := q.String(name)
	if v == nil {
		return nil
	}
	for _, layout := range []string{time.DateOnly, time.RFC3339} {
		if t, err := time.Parse(layout, *v); err == nil {
			return &t
		}
	}
	q.fail(name)
	return nil
}

// Enum reads a string value and checks it with valid
func (q *queryFilters) Enum(name string, valid func(string) bool) *string {
	v := q.String(name)
	if v != nil && !valid(*v) {
		q.fail(name)
		return nil
	}
	return v
}

func (q *queryFilters) fail(name string) {
	if q.err == nil {
		q.err = fmt.Errorf("invalid %s", name)
	}
}

// ok responds 400 if any parameter was malformed
func (q *queryFilters) ok() bool {
	if q.err != nil {
		apierrors.BadRequest(q.c, q.err.Error())
		return false
	}
	return true
}

var fieldValidator = validator.New()

func validEmail(email string) bool {
	return fieldValidator.Var(email, "email") == nil
}

// badField responds 400 naming a single failing field
func badField(c *gin.Context, field, rule string) {
	apierrors.BadRequestWithDetails(c, "Invalid request body", map[string]string{field: rule})
}
