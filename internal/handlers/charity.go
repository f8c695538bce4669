package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"fundraise-platform/internal/storage"
)

type CharityHandler struct {
	Store storage.Storage
}

func NewCharityHandler(store storage.Storage) *CharityHandler {
	return &CharityHandler{Store: store}
}

// List returns the seeded charities in creation order.
func (h *CharityHandler) List(c *gin.Context) {
	charities, err := h.Store.GetAllCharities(c.Request.Context())
	if err != nil {
		log.Println("Failed to list charities:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error."})
		return
	}

	c.JSON(http.StatusOK, charities)
}
