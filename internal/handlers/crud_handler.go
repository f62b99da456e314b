package handlers

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/table-booking/internal/httperr"
	"github.com/BruksfildServices01/table-booking/internal/httpresp"
)

// EntityStore is the record management a CrudHandler needs.
type EntityStore[T any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id uint) (*T, error)
	Create(ctx context.Context, entity *T) error
	Update(ctx context.Context, id uint, entity *T) error
	Delete(ctx context.Context, id uint) error
}

// Hooks customize one entity. Both are optional.
type Hooks[T any] struct {
	// Sanitize runs on every decoded body, e.g. to drop client-sent ids.
	Sanitize func(entity *T)
	// Validate returns an httperr.InvalidInput error to refuse the body.
	Validate func(entity *T) error
}

type CrudHandler[T any] struct {
	store  EntityStore[T]
	entity string
	hooks  Hooks[T]
}

func NewCrudHandler[T any](store EntityStore[T], entity string, hooks Hooks[T]) *CrudHandler[T] {
	return &CrudHandler[T]{store: store, entity: entity, hooks: hooks}
}

func (h *CrudHandler[T]) Register(g *gin.RouterGroup) {
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

func (h *CrudHandler[T]) id(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return 0, false
	}
	return uint(id), true
}

func (h *CrudHandler[T]) prepare(c *gin.Context, entity *T) bool {
	if err := c.ShouldBindJSON(entity); err != nil {
		httperr.BadRequest(c, "invalid_request", messageFor("invalid_request", ""))
		return false
	}
	if h.hooks.Sanitize != nil {
		h.hooks.Sanitize(entity)
	}
	if h.hooks.Validate != nil {
		if err := h.hooks.Validate(entity); err != nil {
			respondError(c, err, "invalid_"+h.entity, "Dados inválidos.")
			return false
		}
	}
	return true
}

func (h *CrudHandler[T]) List(c *gin.Context) {
	list, err := h.store.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed_to_list_"+h.entity, "Erro ao listar registros.")
		return
	}
	httpresp.List(c, list)
}

func (h *CrudHandler[T]) Get(c *gin.Context) {
	id, ok := h.id(c)
	if !ok {
		return
	}

	entity, err := h.store.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "failed_to_get_"+h.entity, "Erro ao carregar registro.")
		return
	}
	httpresp.OK(c, entity)
}

func (h *CrudHandler[T]) Create(c *gin.Context) {
	entity := new(T)
	if !h.prepare(c, entity) {
		return
	}

	if err := h.store.Create(c.Request.Context(), entity); err != nil {
		respondError(c, err, "failed_to_create_"+h.entity, "Erro ao criar registro.")
		return
	}
	httpresp.Created(c, entity)
}

// Update overlays the body on the stored record, so omitted fields keep
// their value.
func (h *CrudHandler[T]) Update(c *gin.Context) {
	id, ok := h.id(c)
	if !ok {
		return
	}

	entity, err := h.store.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "failed_to_update_"+h.entity, "Erro ao atualizar registro.")
		return
	}
	if !h.prepare(c, entity) {
		return
	}

	if err := h.store.Update(c.Request.Context(), id, entity); err != nil {
		respondError(c, err, "failed_to_update_"+h.entity, "Erro ao atualizar registro.")
		return
	}

	updated, err := h.store.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "failed_to_update_"+h.entity, "Erro ao atualizar registro.")
		return
	}
	httpresp.OK(c, updated)
}

func (h *CrudHandler[T]) Delete(c *gin.Context) {
	id, ok := h.id(c)
	if !ok {
		return
	}

	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "failed_to_delete_"+h.entity, "Erro ao excluir registro.")
		return
	}
	httpresp.NoContent(c)
}
