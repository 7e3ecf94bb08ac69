package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"fintrack/internal/models"
	"fintrack/internal/services"
)

// entryRequest is a request payload that converts into an entry model.
type entryRequest[T any] interface {
	toModel() (*T, error)
}

// EntryHandler serves the CRUD routes of one entry type. Every write goes
// through the entry service, which keeps the parent aggregate in step.
type EntryHandler[T any, R entryRequest[T]] struct {
	entryService services.EntryServicer[T]
	auditService services.AuditServicer
	resource     string
}

// NewEntryHandler creates an EntryHandler. resource names the entry in
// responses and audit records, for example "income_source".
func NewEntryHandler[T any, R entryRequest[T]](entryService services.EntryServicer[T], auditService services.AuditServicer, resource string) *EntryHandler[T, R] {
	return &EntryHandler[T, R]{entryService: entryService, auditService: auditService, resource: resource}
}

// Create handles adding an entry to the user's financial status.
func (h *EntryHandler[T, R]) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	entry, err := h.bind(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	created, err := h.entryService.Create(userID, entry)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.audit(c, userID, "CREATE", created)
	c.JSON(http.StatusCreated, gin.H{h.resource: created})
}

// List handles listing the user's entries.
func (h *EntryHandler[T, R]) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	page, err := bindPage(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.entryService.List(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Get handles fetching a single entry.
func (h *EntryHandler[T, R]) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	entry, err := h.entryService.Get(userID, id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{h.resource: entry})
}

// Update handles replacing an entry.
func (h *EntryHandler[T, R]) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	entry, err := h.bind(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	updated, err := h.entryService.Update(userID, id, entry)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.audit(c, userID, "UPDATE", updated)
	c.JSON(http.StatusOK, gin.H{h.resource: updated})
}

// Delete handles removing an entry.
func (h *EntryHandler[T, R]) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.entryService.Delete(userID, id); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, h.action("DELETE"), h.resource, id, c.ClientIP(), nil)
	c.JSON(http.StatusOK, gin.H{"message": "Entry deleted successfully"})
}

func (h *EntryHandler[T, R]) bind(c *gin.Context) (*T, error) {
	var req R
	if err := bindJSON(c, &req); err != nil {
		return nil, err
	}
	return req.toModel()
}

func (h *EntryHandler[T, R]) action(verb string) string {
	return verb + "_" + strings.ToUpper(h.resource)
}

func (h *EntryHandler[T, R]) audit(c *gin.Context, userID, verb string, entry *T) {
	var id string
	if e, ok := any(entry).(models.Entry); ok {
		id = e.GetID()
	}
	h.auditService.Log(userID, h.action(verb), h.resource, id, c.ClientIP(), nil)
}
