package bills

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// BillHandler handles HTTP requests for bill listings.
type BillHandler struct {
	repo *BillRepository
}

// NewBillHandler creates a new BillHandler.
func NewBillHandler(repo *BillRepository) *BillHandler {
	return &BillHandler{repo: repo}
}

// listResponse is one page of a bill listing plus the token that resumes it.
type listResponse struct {
	Items         []Bill `json:"items"`
	NextPageToken string `json:"next_page_token,omitempty"`
}

// List serves one page of bills. Query parameters: sort, filter_field,
// filter_value, page_size, page_token. The returned next_page_token is empty
// on the last page.
func (h *BillHandler) List(c echo.Context) error {
	sort := ParseSort(c.QueryParam("sort"))

	var filter *Filter
	if fieldParam := c.QueryParam("filter_field"); fieldParam != "" {
		field, ok := ParseFilterField(fieldParam)
		if !ok {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Unknown filter_field"})
		}
		value := c.QueryParam("filter_value")
		if value == "" {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "filter_value is required with filter_field"})
		}
		filter = &Filter{Field: field, Value: value}
	}

	pageSize := DefaultPageSize
	if sizeParam := c.QueryParam("page_size"); sizeParam != "" {
		parsed, err := strconv.Atoi(sizeParam)
		if err != nil || parsed < 1 || parsed > 100 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "page_size must be between 1 and 100"})
		}
		pageSize = parsed
	}

	var after *Cursor
	if token := c.QueryParam("page_token"); token != "" {
		decoded, err := Decode(token, sort)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid page_token"})
		}
		after = decoded
	}

	items, err := h.repo.FetchPage(c.Request().Context(), sort, filter, pageSize, after)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to list bills"})
	}

	resp := listResponse{Items: items}
	if len(items) >= pageSize {
		token, err := Encode(ExtractCursor(items[len(items)-1], sort))
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to build page token"})
		}
		resp.NextPageToken = token
	}
	return c.JSON(http.StatusOK, resp)
}

// Get serves a single bill by court and number.
func (h *BillHandler) Get(c echo.Context) error {
	bill, err := h.repo.FindByCourtAndNumber(c.Request().Context(), c.Param("court"), c.Param("number"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch bill"})
	}
	if bill == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Bill not found"})
	}
	return c.JSON(http.StatusOK, bill)
}

// Upsert allows admins to create or update a bill.
func (h *BillHandler) Upsert(c echo.Context) error {
	var b Bill
	if err := c.Bind(&b); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	if err := h.repo.UpsertBill(c.Request().Context(), &b); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to upsert bill"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Bill saved successfully"})
}
