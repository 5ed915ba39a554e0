package admin

import (
	"crypto/subtle"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// --------------------------------------------------
// Login: passphrase → capability token
// --------------------------------------------------
// There are no user accounts. Anyone with the shared passphrase gets a
// token for the delete/purge/export routes.
func (h *Handler) Login(c *gin.Context) {
	var req struct {
		Passphrase string `json:"passphrase"`
	}

	if err := c.ShouldBindJSON(&req); err != nil || req.Passphrase == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "passphrase is required"})
		return
	}

	expected := os.Getenv("ADMIN_PASSPHRASE")
	if expected == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "admin access not configured"})
		return
	}

	if subtle.ConstantTimeCompare([]byte(req.Passphrase), []byte(expected)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "wrong passphrase"})
		return
	}

	token, err := GenerateToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
