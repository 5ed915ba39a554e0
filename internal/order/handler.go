package order

import (
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/erickweyunga/foodie-collective/internal/menu"
	"github.com/erickweyunga/foodie-collective/internal/session"
)

const sessionCookie = "fc_session"

type Handler struct {
	service  *Service
	sessions *session.Store
	board    *Board
	hub      *Hub
}

func NewHandler(service *Service, sessions *session.Store, board *Board, hub *Hub) *Handler {
	return &Handler{
		service:  service,
		sessions: sessions,
		board:    board,
		hub:      hub,
	}
}

// session resolves the device session from the cookie, minting a new
// one on first contact.
func (h *Handler) session(c *gin.Context) session.Session {
	id, _ := c.Cookie(sessionCookie)
	sess := h.sessions.Ensure(id)
	if id == "" {
		c.SetCookie(sessionCookie, sess.ID, int((365 * 24 * time.Hour).Seconds()), "/", "", false, true)
	}
	return sess
}

// --------------------------------------------------
// Today board: orders, counts, revenue
// --------------------------------------------------
func (h *Handler) GetBoard(c *gin.Context) {
	view := h.board.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"orders":       view.Orders,
		"counts":       view.Counts,
		"revenue":      view.Revenue,
		"delivery_fee": menu.DeliveryFeePerOrder,
	})
}

// --------------------------------------------------
// Submit order (insert or same-day update)
// --------------------------------------------------
func (h *Handler) Submit(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
		Main string `json:"main"`
		Side string `json:"side"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	sel, err := menu.Selection{}.WithMain(req.Main)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Side != "" {
		sel, err = sel.WithSide(req.Side)
		if errors.Is(err, menu.ErrInvalidCombination) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "invalid combination",
				"main":  req.Main,
				"side":  req.Side,
			})
			return
		}
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	items, err := sel.Items()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess := h.session(c)
	existingID := sess.OrderID
	if sess.Name != "" && sess.Name != req.Name {
		// Different person on the same device: never update their row.
		existingID = ""
	}

	order, inserted, err := h.service.Submit(c.Request.Context(), req.Name, items, existingID)
	switch {
	case errors.Is(err, ErrEmptyName), errors.Is(err, ErrEmptyItems):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		log.Printf("submit failed for %q: %v", req.Name, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "order could not be saved, please retry"})
		return
	}

	h.sessions.Remember(sess.ID, order.Name, order.ID, &session.Legacy{
		Name:      order.Name,
		Items:     order.Items,
		Timestamp: order.Timestamp,
	})

	status := http.StatusOK
	if inserted {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{
		"order":    order,
		"price":    Revenue([]Order{order}, menu.DefaultPricing) - menu.DeliveryFeePerOrder,
		"inserted": inserted,
	})
}

// --------------------------------------------------
// Reset: forget the existing-order reference
// --------------------------------------------------
// Local only: the remote row stays until overwritten or deleted.
func (h *Handler) Reset(c *gin.Context) {
	sess := h.session(c)
	h.sessions.ClearOrder(sess.ID)
	c.JSON(http.StatusOK, gin.H{"status": "reset"})
}

// --------------------------------------------------
// My order for today
// --------------------------------------------------
// The view-load lookup: finds today's row for the name and remembers it
// as the existing-order reference for the next submission.
func (h *Handler) Mine(c *gin.Context) {
	sess := h.session(c)

	name := c.Query("name")
	if name == "" {
		name = sess.Name
	}
	if name == "" {
		c.JSON(http.StatusOK, gin.H{"order": nil})
		return
	}

	order, err := h.service.FindToday(c.Request.Context(), name)
	if err != nil {
		log.Printf("lookup failed for %q: %v", name, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not check existing order"})
		return
	}

	if order == nil {
		c.JSON(http.StatusOK, gin.H{"order": nil})
		return
	}

	h.sessions.Remember(sess.ID, name, order.ID, nil)
	c.JSON(http.StatusOK, gin.H{"order": order})
}

// --------------------------------------------------
// Device session (remembered name + legacy snapshot)
// --------------------------------------------------
func (h *Handler) GetSession(c *gin.Context) {
	c.JSON(http.StatusOK, h.session(c))
}

// --------------------------------------------------
// SSE stream of board changes
// --------------------------------------------------
func (h *Handler) Stream(c *gin.Context) {
	ch, cancel := h.hub.Subscribe()
	defer cancel()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case ev, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent(string(ev.Type), ev)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

// --------------------------------------------------
// ADMIN: delete one order
// --------------------------------------------------
func (h *Handler) DeleteOrder(c *gin.Context) {
	id := c.Param("id")

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		log.Printf("delete failed for %s: %v", id, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "order could not be deleted"})
		return
	}

	// A deleted row must not be resurrected by a later update.
	h.sessions.ForgetOrderEverywhere(id)

	c.JSON(http.StatusOK, gin.H{"status": "deleted", "id": id})
}

// --------------------------------------------------
// ADMIN: bulk delete by phrase
// --------------------------------------------------
func (h *Handler) Purge(c *gin.Context) {
	var req struct {
		Phrase string `json:"phrase"`
	}

	if err := c.ShouldBindJSON(&req); err != nil || req.Phrase == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "phrase is required"})
		return
	}

	deleted, err := h.service.DeleteByPhrase(c.Request.Context(), req.Phrase)
	if err != nil {
		log.Printf("purge %q failed: %v", req.Phrase, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "purge failed"})
		return
	}

	// Rows may be half-gone after a partial failure; refetch to get the
	// board back in step with the store.
	if err := h.service.Resync(c.Request.Context(), h.board); err != nil {
		log.Printf("resync after purge failed: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

// --------------------------------------------------
// ADMIN: export today's orders to object storage
// --------------------------------------------------
func (h *Handler) Export(c *gin.Context) {
	url, err := h.service.ExportToday(c.Request.Context())
	if errors.Is(err, ErrNoStorage) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "object storage not configured"})
		return
	}
	if err != nil {
		log.Printf("export failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "export failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}
