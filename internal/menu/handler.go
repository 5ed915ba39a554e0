package menu

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	now func() time.Time
}

func NewHandler(now func() time.Time) *Handler {
	if now == nil {
		now = time.Now
	}
	return &Handler{now: now}
}

// --------------------------------------------------
// Full menu with legality and prices
// --------------------------------------------------
func (h *Handler) GetMenu(c *gin.Context) {
	type mainView struct {
		Name       string   `json:"name"`
		Kind       DishKind `json:"kind"`
		LegalSides []string `json:"legal_sides"`
	}

	mains := make([]mainView, 0, len(Mains))
	for _, m := range Mains {
		mains = append(mains, mainView{
			Name:       m.Name,
			Kind:       m.Kind,
			LegalSides: LegalSides(m),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"mains":        mains,
		"sides":        Sides,
		"delivery_fee": DeliveryFeePerOrder,
	})
}

// --------------------------------------------------
// Item of the day
// --------------------------------------------------
func (h *Handler) GetSpecial(c *gin.Context) {
	label := SpecialOfTheDay(h.now())
	c.JSON(http.StatusOK, gin.H{
		"label": label,
		"price": Price(label),
		"date":  h.now().Format("2006-01-02"),
	})
}
