package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"culture-passport/internal/auth"
	"culture-passport/internal/query"
	"culture-passport/internal/store"
)

// CRUD serves list/get/create/update/delete for one resource. P is the
// partial-update body; only fields present in it are written.
type CRUD[T any, P store.Patch] struct {
	h      *Handler
	svc    Resource[T]
	entity string

	// Filter builds the list filter from the query string.
	Filter func(c *gin.Context) (query.Spec, error)
	// Present adjusts a row for the caller before it is written out.
	Present func(p auth.Principal, v T) T
}

func NewCRUD[T any, P store.Patch](h *Handler, svc Resource[T], entity string) *CRUD[T, P] {
	return &CRUD[T, P]{h: h, svc: svc, entity: entity}
}

func (r *CRUD[T, P]) List(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	filter := query.Spec{}
	if r.Filter != nil {
		f, err := r.Filter(c)
		if err != nil {
			badRequest(c, "invalid query parameters")
			return
		}
		filter = f
	}

	items, err := r.svc.List(c.Request.Context(), filter)
	if err != nil {
		r.h.respondError(c, err)
		return
	}
	if r.Present != nil {
		for i := range items {
			items[i] = r.Present(p, items[i])
		}
	}
	c.JSON(http.StatusOK, items)
}

func (r *CRUD[T, P]) Get(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	item, err := r.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		r.h.respondError(c, err)
		return
	}
	if r.Present != nil {
		*item = r.Present(p, *item)
	}
	c.JSON(http.StatusOK, item)
}

func (r *CRUD[T, P]) Create(c *gin.Context) {
	var item T
	if !bindJSON(c, &item) {
		return
	}
	if err := r.svc.Create(c.Request.Context(), &item); err != nil {
		r.h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (r *CRUD[T, P]) Update(c *gin.Context) {
	var patch P
	if !bindJSON(c, &patch) {
		return
	}
	item, err := r.svc.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		r.h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (r *CRUD[T, P]) Delete(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	if err := r.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		r.h.respondError(c, err)
		return
	}
	r.h.audit(c, p, r.entity, c.Param("id"), "delete", "")
	c.JSON(http.StatusOK, gin.H{"message": r.entity + " deleted"})
}

// queryFilter turns the named query parameters into equality filters.
func queryFilter(params ...string) func(c *gin.Context) (query.Spec, error) {
	return func(c *gin.Context) (query.Spec, error) {
		s := query.Spec{}
		for _, name := range params {
			s = s.EqIfSet(name, c.Query(name))
		}
		return s, nil
	}
}
