package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/table-booking/internal/httperr"
	"github.com/BruksfildServices01/table-booking/internal/httpresp"
	"github.com/BruksfildServices01/table-booking/internal/models"
	"github.com/BruksfildServices01/table-booking/internal/timezone"
)

const (
	auditDefaultLimit = 50
	auditMaxLimit     = 200
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	db  *gorm.DB
	loc *time.Location
}

func NewAuditLogsHandler(db *gorm.DB, loc *time.Location) *AuditLogsHandler {
	return &AuditLogsHandler{db: db, loc: loc}
}

// auditQuery holds the parsed filters of GET /api/audit-logs.
type auditQuery struct {
	Action   string
	Entity   string
	EntityID string
	From     *time.Time
	To       *time.Time
	Page     int
	Limit    int
}

func (h *AuditLogsHandler) parseQuery(c *gin.Context) (auditQuery, bool) {
	q := auditQuery{
		Action:   c.Query("action"),
		Entity:   c.Query("entity"),
		EntityID: c.Query("entity_id"),
		Page:     1,
		Limit:    auditDefaultLimit,
	}

	if p, err := strconv.Atoi(c.Query("page")); err == nil && p > 0 {
		q.Page = p
	}
	if l, err := strconv.Atoi(c.Query("limit")); err == nil && l > 0 && l <= auditMaxLimit {
		q.Limit = l
	}

	// from/to are calendar days in the restaurant timezone, both inclusive
	if s := c.Query("from"); s != "" {
		start, _, err := timezone.DayBounds(s, h.loc)
		if err != nil {
			httperr.BadRequest(c, "invalid_from", "Data inicial inválida.")
			return q, false
		}
		q.From = &start
	}
	if s := c.Query("to"); s != "" {
		_, end, err := timezone.DayBounds(s, h.loc)
		if err != nil {
			httperr.BadRequest(c, "invalid_to", "Data final inválida.")
			return q, false
		}
		q.To = &end
	}

	return q, true
}

func (q auditQuery) apply(tx *gorm.DB) *gorm.DB {
	if q.Action != "" {
		tx = tx.Where("action = ?", q.Action)
	}
	if q.Entity != "" {
		tx = tx.Where("entity = ?", q.Entity)
	}
	if q.EntityID != "" {
		tx = tx.Where("entity_id = ?", q.EntityID)
	}
	if q.From != nil {
		tx = tx.Where("created_at >= ?", *q.From)
	}
	if q.To != nil {
		tx = tx.Where("created_at < ?", *q.To)
	}
	return tx
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	q, ok := h.parseQuery(c)
	if !ok {
		return
	}

	base := q.apply(h.db.WithContext(c.Request.Context()).Model(&models.AuditLog{}))

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		respondError(c, err, "audit_count_failed", "Erro ao contar logs.")
		return
	}

	var logs []models.AuditLog
	if err := base.
		Order("created_at DESC, id DESC").
		Limit(q.Limit).
		Offset((q.Page - 1) * q.Limit).
		Find(&logs).Error; err != nil {
		respondError(c, err, "audit_list_failed", "Erro ao listar logs.")
		return
	}

	httpresp.Page(c, logs, q.Page, q.Limit, total)
}
