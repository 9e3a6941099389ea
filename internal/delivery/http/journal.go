package http

import (
	"net/http"
	"strconv"
	"trading-journal/internal/dto"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupJournal(journal *echo.Group) {
	entries := journal.Group("/entries")
	entries.GET("", h.listEntries)
	entries.POST("", h.createEntry)
	entries.GET("/:id", h.getEntry)
	entries.PUT("/:id", h.updateEntry)
	entries.PATCH("/:id", h.updateEntry)
	entries.DELETE("/:id", h.deleteEntry)
}

func (h *HttpAPIHandler) listEntries(c echo.Context) error {
	query := dto.ListEntriesQuery{
		PeriodQuery: periodQuery(c),
		Bias:        optionalQueryParam(c, "bias"),
		Array:       optionalQueryParam(c, "array"),
		Emotions:    optionalQueryParam(c, "emotions"),
	}

	entries, err := h.service.JournalService.ListEntries(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}

func (h *HttpAPIHandler) createEntry(c echo.Context) error {
	req, err := h.bindEntryRequest(c)
	if err != nil {
		return err
	}

	entry, err := h.service.JournalService.CreateEntry(c.Request().Context(), *req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, entry)
}

func (h *HttpAPIHandler) getEntry(c echo.Context) error {
	id, err := entryID(c)
	if err != nil {
		return err
	}

	entry, err := h.service.JournalService.GetEntry(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entry)
}

func (h *HttpAPIHandler) updateEntry(c echo.Context) error {
	id, err := entryID(c)
	if err != nil {
		return err
	}

	req, err := h.bindEntryRequest(c)
	if err != nil {
		return err
	}

	entry, err := h.service.JournalService.UpdateEntry(c.Request().Context(), id, *req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entry)
}

func (h *HttpAPIHandler) deleteEntry(c echo.Context) error {
	id, err := entryID(c)
	if err != nil {
		return err
	}

	if err := h.service.JournalService.DeleteEntry(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *HttpAPIHandler) bindEntryRequest(c echo.Context) (*dto.JournalEntryRequest, error) {
	req := new(dto.JournalEntryRequest)
	if err := c.Bind(req); err != nil {
		return nil, err
	}
	if err := req.Validate(h.validator); err != nil {
		return nil, err
	}
	return req, nil
}

// entryID parses the :id path parameter. Anything that is not a positive
// integer cannot name an entry, so it is reported as not found.
func entryID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, dto.ErrEntryNotFound
	}
	return uint(id), nil
}

func periodQuery(c echo.Context) dto.PeriodQuery {
	return dto.PeriodQuery{
		Month: c.QueryParam("month"),
		Year:  c.QueryParam("year"),
		All:   c.QueryParam("all"),
	}
}

func optionalQueryParam(c echo.Context, name string) *string {
	values := c.QueryParams()
	if !values.Has(name) {
		return nil
	}
	v := values.Get(name)
	return &v
}
