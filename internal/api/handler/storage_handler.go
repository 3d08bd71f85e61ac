package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/talentboard/jobboard/internal/core/ports"
)

// StorageHandler serves stored avatar images.
type StorageHandler struct {
	storage ports.AvatarStorage
}

func NewStorageHandler(storage ports.AvatarStorage) *StorageHandler {
	return &StorageHandler{storage: storage}
}

// Avatar streams an avatar image.
//
// @Summary      Download avatar
// @Tags         storage
// @Produce      image/*
// @Param        name  path  string  true  "Stored file name"
// @Success      200
// @Failure      404   {object}  errorResponse
// @Router       /storage/avatars/{name} [get]
func (h *StorageHandler) Avatar(c echo.Context) error {
	name := c.Param("name")
	if name == "" || strings.ContainsAny(name, `/\`) {
		return echo.NewHTTPError(http.StatusNotFound, "avatar not found")
	}

	rc, contentType, err := h.storage.Open(c.Request().Context(), name)
	if err != nil {
		return err
	}
	defer rc.Close()

	c.Response().Header().Set("Cache-Control", "public, max-age=86400")
	return c.Stream(http.StatusOK, contentType, rc)
}
