package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/piresc/fleetwatch/internal/pkg/middleware"
	nrpkg "github.com/piresc/fleetwatch/internal/pkg/newrelic"
	"github.com/piresc/fleetwatch/internal/utils"
	"github.com/piresc/fleetwatch/services/penalty"
)

// PenaltyHandler serves driver penalty totals
type PenaltyHandler struct {
	penaltyUC penalty.PenaltyUC
}

func NewPenaltyHandler(penaltyUC penalty.PenaltyUC) *PenaltyHandler {
	return &PenaltyHandler{penaltyUC: penaltyUC}
}

// GetDriverPoints returns the driver's current penalty total
func (h *PenaltyHandler) GetDriverPoints(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Penalty.GetDriverPoints")

	driverID := c.Param("driverID")
	if driverID == "" {
		return utils.BadRequestResponse(c, "Driver ID is required")
	}
	middleware.SetDriverID(c, driverID)

	total, err := h.penaltyUC.GetTotal(c.Request().Context(), driverID)
	if err != nil {
		nrpkg.NoticeTransactionError(txn, err)
		return utils.DomainErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "", total)
}
