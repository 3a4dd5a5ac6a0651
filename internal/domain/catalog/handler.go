package catalog

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/hospital/hms/internal/platform/apperr"
	"github.com/hospital/hms/internal/platform/auth"
	"github.com/hospital/hms/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	// Read endpoints – any hospital staff
	readGroup := api.Group("", auth.RequireRole("admin", "staff"))
	readGroup.GET("/treatment-packages", h.ListPackages)
	readGroup.GET("/treatment-packages/:id", h.GetPackage)
	readGroup.GET("/specialists", h.ListSpecialists)
	readGroup.GET("/specialists/:id", h.GetSpecialist)

	// Catalog administration – admin only
	adminGroup := api.Group("", auth.RequireRole("admin"))
	adminGroup.POST("/treatment-packages", h.CreatePackage)
	adminGroup.PUT("/treatment-packages/:id", h.UpdatePackage)
	adminGroup.POST("/specialists", h.CreateSpecialist)
	adminGroup.PUT("/specialists/:id", h.UpdateSpecialist)
	adminGroup.PUT("/specialists/:id/availability", h.SetAvailability)
}

func httpError(err error) *echo.HTTPError {
	switch {
	case apperr.IsNotFound(err):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case apperr.IsInvalidArgument(err):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case apperr.IsConflict(err):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

// -- Package Handlers --

func (h *Handler) CreatePackage(c echo.Context) error {
	var pkg TreatmentPackage
	if err := c.Bind(&pkg); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	created, err := h.svc.CreatePackage(c.Request().Context(), &pkg)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *Handler) GetPackage(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	pkg, err := h.svc.GetPackage(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, pkg)
}

func (h *Handler) ListPackages(c echo.Context) error {
	if spec := c.QueryParam("specialization"); spec != "" {
		items, err := h.svc.ListPackagesBySpecialization(c.Request().Context(), spec)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, items)
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListPackages(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) UpdatePackage(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var patch PackagePatch
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	pkg, err := h.svc.UpdatePackage(c.Request().Context(), id, patch)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, pkg)
}

// -- Specialist Handlers --

func (h *Handler) CreateSpecialist(c echo.Context) error {
	var sp Specialist
	if err := c.Bind(&sp); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	created, err := h.svc.CreateSpecialist(c.Request().Context(), &sp)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *Handler) GetSpecialist(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	sp, err := h.svc.GetSpecialist(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, sp)
}

func (h *Handler) ListSpecialists(c echo.Context) error {
	if spec := c.QueryParam("specialization"); spec != "" {
		items, err := h.svc.ListSpecialistsBySpecialization(c.Request().Context(), spec)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, items)
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListSpecialists(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) UpdateSpecialist(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var patch SpecialistPatch
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	sp, err := h.svc.UpdateSpecialist(c.Request().Context(), id, patch)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, sp)
}

type availabilityRequest struct {
	Available bool `json:"available"`
}

func (h *Handler) SetAvailability(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req availabilityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	sp, err := h.svc.SetAvailability(c.Request().Context(), id, req.Available)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, sp)
}
