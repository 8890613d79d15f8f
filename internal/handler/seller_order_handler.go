package handler

import (
	"net/http"
	"strconv"

	"bambu/internal/config"
	"bambu/internal/middleware"
	"bambu/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 出品者向けの受注API
type SellerOrderHandler struct {
	uc *usecase.OrderUsecase
}

func NewSellerOrderHandler(uc *usecase.OrderUsecase) *SellerOrderHandler {
	return &SellerOrderHandler{uc: uc}
}

func (h *SellerOrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/seller/orders")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.SellerGuard())

	g.GET("", h.list)
	g.POST("/:id/delivered", h.markDelivered)
}

func (h *SellerOrderHandler) list(c echo.Context) error {
	sellerID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.ListSellerQueue(c.Request().Context(), sellerID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *SellerOrderHandler) markDelivered(c echo.Context) error {
	sellerID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.MarkDelivered(c.Request().Context(), sellerID, id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "order marked as delivered"})
}
