package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"manufacturing-backend/internal/record"
	"manufacturing-backend/internal/store"
)

// crud serves the five REST operations for one simple entity kind.
type crud[T any] struct {
	repo store.Repository[T]
	// remove replaces repo.Delete, e.g. for parents that cascade.
	remove func(ctx context.Context, id int64) error
}

func (r crud[T]) register(g *gin.RouterGroup, path string) {
	g.GET(path, r.list)
	g.GET(path+"/:id", r.get)
	g.POST(path, r.create)
	g.PUT(path+"/:id", r.update)
	g.DELETE(path+"/:id", r.delete)
}

func (r crud[T]) list(c *gin.Context) {
	items, err := r.repo.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (r crud[T]) get(c *gin.Context) {
	id, err := pathID(c, r.repo.Name())
	if err != nil {
		_ = c.Error(err)
		return
	}
	item, err := r.repo.Get(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (r crud[T]) create(c *gin.Context) {
	fields, err := bindFields(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	item, err := r.repo.Create(c.Request.Context(), fields)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (r crud[T]) update(c *gin.Context) {
	id, err := pathID(c, r.repo.Name())
	if err != nil {
		_ = c.Error(err)
		return
	}
	fields, err := bindFields(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	item, err := r.repo.Update(c.Request.Context(), id, fields)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (r crud[T]) delete(c *gin.Context) {
	id, err := pathID(c, r.repo.Name())
	if err != nil {
		_ = c.Error(err)
		return
	}
	remove := r.remove
	if remove == nil {
		remove = r.repo.Delete
	}
	if err := remove(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, record.Deleted(r.repo.Name()))
}
