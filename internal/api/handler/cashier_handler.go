package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/luxpos/cashier-admin/internal/core/ports"
)

// CashierHandler handles HTTP requests for cashier account provisioning.
type CashierHandler struct {
	service ports.CashierService
}

func NewCashierHandler(service ports.CashierService) *CashierHandler {
	return &CashierHandler{service: service}
}

// Create provisions a new cashier account.
//
// @Summary      Provision a cashier account
// @Tags         cashiers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCashierRequest  true  "Cashier details"
// @Success      200   {object}  createCashierResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Failure      500   {object}  messageResponse
// @Router       /v1/cashiers [post]
func (h *CashierHandler) Create(c echo.Context) error {
	var req createCashierRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	profile, err := h.service.CreateCashier(c.Request().Context(), ports.CreateCashierInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, createCashierResponse{
		Profile: profileResponse{
			ID:        profile.ID,
			Name:      profile.Name,
			Email:     profile.Email,
			Role:      string(profile.Role),
			CreatedAt: profile.CreatedAt,
		},
	})
}

// Delete deprovisions the cashier account with the given identity id.
//
// @Summary      Deprovision a cashier account
// @Tags         cashiers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      deleteCashierRequest  true  "Identity id of the cashier"
// @Success      200   {object}  deleteCashierResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Failure      500   {object}  messageResponse
// @Router       /v1/cashiers/delete [post]
func (h *CashierHandler) Delete(c echo.Context) error {
	var req deleteCashierRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if strings.TrimSpace(req.ID) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.service.DeleteCashier(c.Request().Context(), req.ID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, deleteCashierResponse{OK: true})
}

// bindJSON decodes the request body into dst. A JSON value of the wrong shape
// is the caller's fault (400); a body that is not parseable JSON at all is
// treated as an unanticipated failure and surfaces as 500, matching the
// contract where parsing sits outside the validation stage.
func bindJSON(c echo.Context, dst any) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return fmt.Errorf("read request body: %w", err)
	}
	if err := json.Unmarshal(body, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
		}
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}
