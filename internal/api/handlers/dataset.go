package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/irfndi/stockpulse-go/internal/logging"
	"github.com/irfndi/stockpulse-go/internal/middleware"
	"github.com/irfndi/stockpulse-go/internal/models"
)

// DatasetRefresher drops the loaded table and loads it again
type DatasetRefresher interface {
	Refresh(ctx context.Context) (*models.Dataset, error)
}

type DatasetHandler struct {
	refresher DatasetRefresher
	logger    *logging.StandardLogger
}

type RefreshResponse struct {
	Source   string    `json:"source"`
	Rows     int       `json:"rows"`
	Symbols  int       `json:"symbols"`
	LoadedAt time.Time `json:"loaded_at"`
}

func NewDatasetHandler(refresher DatasetRefresher, logger *logging.StandardLogger) *DatasetHandler {
	return &DatasetHandler{refresher: refresher, logger: logger}
}

// Refresh reloads the price table from its source
func (h *DatasetHandler) Refresh(c *gin.Context) {
	ds, err := h.refresher.Refresh(c.Request.Context())
	if err != nil {
		h.logger.WithComponent("api").WithError(err).Error("Dataset refresh failed")
		middleware.RecordError(c, err, "dataset refresh failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "dataset refresh failed"})
		return
	}

	c.JSON(http.StatusOK, RefreshResponse{
		Source:   ds.Source,
		Rows:     ds.Len(),
		Symbols:  len(ds.Symbols()),
		LoadedAt: ds.LoadedAt,
	})
}
