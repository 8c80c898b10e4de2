package interfaces

import (
	"encoding/json"
	"net/http"

	"github.com/pfinance/WalletManager/internal/finance/domain"
	financeErrors "github.com/pfinance/WalletManager/internal/finance/errors"
)

type CategoryServiceInterface interface {
	GetAllCategories() ([]domain.Category, error)
	GetCategoryByID(id string) (*domain.Category, error)
	GetCategoriesByName(name string) ([]domain.Category, error)
	CreateCategory(category *domain.Category) (*domain.Category, error)
	UpdateCategory(id, userID, name, transactionType string) (*domain.Category, error)
	DeleteCategory(id string) error
}

type CategoryHandler struct {
	service      CategoryServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string)
}

func NewCategoryHandler(
	service CategoryServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
) *CategoryHandler {
	if service == nil || respondJSON == nil || respondError == nil {
		panic("Service and response functions must not be nil")
	}
	return &CategoryHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

func (h *CategoryHandler) respondServiceError(w http.ResponseWriter, err error) {
	status := financeErrors.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		h.respondError(w, status, "Internal server error")
		return
	}
	h.respondError(w, status, err.Error())
}

func (h *CategoryHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.GetAllCategories()
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve categories")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":     "success",
		"categories": categories,
	})
}

func (h *CategoryHandler) SearchCategories(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		h.respondError(w, http.StatusBadRequest, "Query parameter 'name' is required")
		return
	}

	categories, err := h.service.GetCategoriesByName(name)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to search categories")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":     "success",
		"categories": categories,
	})
}

func (h *CategoryHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	category, err := h.service.GetCategoryByID(r.PathValue("categoryID"))
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve category")
		return
	}
	if category == nil {
		h.respondError(w, http.StatusNotFound, "Category not found")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "success",
		"category": category,
	})
}

func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name            string `json:"name"`
		TransactionType string `json:"transaction_type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	category, err := h.service.CreateCategory(&domain.Category{
		Name:            req.Name,
		TransactionType: req.TransactionType,
		UserID:          userID,
	})
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":   "success",
		"category": category,
	})
}

func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name            string `json:"name"`
		TransactionType string `json:"transaction_type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	category, err := h.service.UpdateCategory(r.PathValue("categoryID"), userID, req.Name, req.TransactionType)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "success",
		"category": category,
	})
}

func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteCategory(r.PathValue("categoryID")); err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": "Category deleted successfully",
	})
}
