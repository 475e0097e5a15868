// Package handler provides HTTP handlers for product-related operations.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"mime"
	"net/http"
	"strconv"

	"github.com/chetanpal14/web-application-assignment/internal/platform/web"
	perrors "github.com/chetanpal14/web-application-assignment/internal/product/errors"
	"github.com/chetanpal14/web-application-assignment/internal/product/service"
	"github.com/go-chi/chi/v5"
)

// Response messages.
const (
	msgWelcome         = "Welcome to DressStore application."
	msgList            = "List of products"
	msgFound           = "Product found"
	msgAdded           = "Product added."
	msgUpdated         = "Product updated."
	msgDeleted         = "Product deleted successfully."
	msgDeletedAll      = "%d products deleted successfully"
	msgHealthy         = "OK"
	errInternal        = "Internal Server Error"
	errInvalidID       = "Invalid product ID"
	errNotFound        = "Product not found"
	errInvalidBody     = "Invalid request body"
	errAddFailed       = "Failed to add product"
	errUpdateFailed    = "Failed to update product"
	errNothingToDelete = "No products found to delete."
	errUnavailable     = "Service Unavailable"
)

// maxBodyBytes caps POST and PUT bodies.
const maxBodyBytes = 1 << 20

// Pinger reports whether the product store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	service service.ProductService
	pinger  Pinger
	logger  *slog.Logger
}

// NewHandler creates a new Handler with the provided service.
// A nil pinger makes /healthz always report healthy.
func NewHandler(service service.ProductService, pinger Pinger, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		pinger:  pinger,
		logger:  logger.With("component", "rest"),
	}
}

// RegisterRoutes registers the HTTP routes for the product service.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Welcome)
	r.Get("/healthz", h.HealthCheck)

	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Delete("/", h.DeleteAll)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.FindByID)
			r.Put("/", h.Update)
			r.Delete("/", h.DeleteByID)
		})
	})
}

// Welcome greets the caller.
func (h *Handler) Welcome(w http.ResponseWriter, _ *http.Request) {
	web.RespondMessage(w, h.logger, http.StatusOK, msgWelcome, nil)
}

// HealthCheck reports 200 while the store answers a ping and 503 otherwise.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if h.pinger != nil {
		if err := h.pinger.Ping(r.Context()); err != nil {
			h.logger.WarnContext(r.Context(), "Store ping failed", "error", err)
			web.RespondError(w, h.logger, http.StatusServiceUnavailable, errUnavailable)
			return
		}
	}
	web.RespondMessage(w, h.logger, http.StatusOK, msgHealthy, nil)
}

// List retrieves the products, optionally filtered by the name query parameter.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	h.logger.DebugContext(r.Context(), "Received request to list products", "name", name)
	list, err := h.service.List(r.Context(), name)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Error retrieving product list", "error", err)
		web.RespondError(w, h.logger, http.StatusInternalServerError, errInternal)
		return
	}
	h.logger.DebugContext(r.Context(), "Successfully retrieved product list", "count", len(list))
	web.RespondMessage(w, h.logger, http.StatusOK, msgList, list)
}

// FindByID retrieves a product by its ID.
func (h *Handler) FindByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.logger.DebugContext(r.Context(), "Received request to find product by ID", "ID", id)
	found, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, perrors.ErrInvalidID):
			h.logger.WarnContext(r.Context(), "Invalid product ID", "ID", id)
			web.RespondError(w, h.logger, http.StatusBadRequest, errInvalidID)
		case errors.Is(err, perrors.ErrProductNotFound):
			h.logger.WarnContext(r.Context(), "Product not found", "ID", id)
			web.RespondError(w, h.logger, http.StatusNotFound, errNotFound)
		default:
			h.logger.ErrorContext(r.Context(), "Error retrieving product", "ID", id, "error", err)
			web.RespondError(w, h.logger, http.StatusInternalServerError, errInternal)
		}
		return
	}
	h.logger.DebugContext(r.Context(), "Successfully retrieved product", "ID", found.ID, "Name", found.Name)
	web.RespondMessage(w, h.logger, http.StatusOK, msgFound, found)
}

// Create handles the creation of a new product and responds with the whole collection.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	fields, err := decodeFields(w, r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, h.logger, http.StatusBadRequest, errInvalidBody)
		return
	}
	h.logger.DebugContext(r.Context(), "Received request to create product", "fields", len(fields))

	list, err := h.service.Create(r.Context(), fields)
	if err != nil {
		if msg, ok := badInput(err); ok {
			h.logger.WarnContext(r.Context(), "Rejected product", "reason", msg)
			web.RespondError(w, h.logger, http.StatusBadRequest, msg)
			return
		}
		if errors.Is(err, perrors.ErrNotAcknowledged) {
			h.logger.ErrorContext(r.Context(), "Product insert was not acknowledged", "error", err)
			web.RespondError(w, h.logger, http.StatusInternalServerError, errAddFailed)
			return
		}
		h.logger.ErrorContext(r.Context(), "Error creating product", "error", err)
		web.RespondError(w, h.logger, http.StatusInternalServerError, errInternal)
		return
	}
	h.logger.InfoContext(r.Context(), "Product created successfully", "count", len(list))
	web.RespondMessage(w, h.logger, http.StatusOK, msgAdded, list)
}

// Update merges the supplied fields into a product.
// An unknown id is reported as a failed update, not as not found.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	fields, err := decodeFields(w, r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Error decoding request body", "ID", id, "error", err)
		web.RespondError(w, h.logger, http.StatusBadRequest, errInvalidBody)
		return
	}
	h.logger.DebugContext(r.Context(), "Received request to update product", "ID", id)

	updated, err := h.service.Update(r.Context(), id, fields)
	if err != nil {
		if msg, ok := badInput(err); ok {
			h.logger.WarnContext(r.Context(), "Rejected product update", "ID", id, "reason", msg)
			web.RespondError(w, h.logger, http.StatusBadRequest, msg)
			return
		}
		if errors.Is(err, perrors.ErrNotUpdated) {
			h.logger.ErrorContext(r.Context(), "No product matched the update", "ID", id, "error", err)
			web.RespondError(w, h.logger, http.StatusInternalServerError, errUpdateFailed)
			return
		}
		h.logger.ErrorContext(r.Context(), "Error updating product", "ID", id, "error", err)
		web.RespondError(w, h.logger, http.StatusInternalServerError, errInternal)
		return
	}
	h.logger.InfoContext(r.Context(), "Product updated successfully", "ID", updated.ID, "Name", updated.Name)
	web.RespondMessage(w, h.logger, http.StatusOK, msgUpdated, updated)
}

// DeleteByID deletes a product by its ID.
func (h *Handler) DeleteByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.logger.DebugContext(r.Context(), "Received request to delete product", "ID", id)
	if err := h.service.DeleteByID(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, perrors.ErrInvalidID):
			h.logger.WarnContext(r.Context(), "Invalid product ID", "ID", id)
			web.RespondError(w, h.logger, http.StatusBadRequest, errInvalidID)
		case errors.Is(err, perrors.ErrProductNotFound):
			h.logger.WarnContext(r.Context(), "Product not found for deletion", "ID", id)
			web.RespondError(w, h.logger, http.StatusNotFound, errNotFound)
		default:
			h.logger.ErrorContext(r.Context(), "Error deleting product", "ID", id, "error", err)
			web.RespondError(w, h.logger, http.StatusInternalServerError, errInternal)
		}
		return
	}
	h.logger.InfoContext(r.Context(), "Product deleted successfully", "ID", id)
	web.RespondMessage(w, h.logger, http.StatusOK, msgDeleted, nil)
}

// DeleteAll removes every product.
func (h *Handler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Received request to delete all products")
	count, err := h.service.DeleteAll(r.Context())
	if err != nil {
		if errors.Is(err, perrors.ErrNothingToDelete) {
			h.logger.WarnContext(r.Context(), "No products to delete")
			web.RespondError(w, h.logger, http.StatusNotFound, errNothingToDelete)
			return
		}
		h.logger.ErrorContext(r.Context(), "Error deleting products", "error", err)
		web.RespondError(w, h.logger, http.StatusInternalServerError, errInternal)
		return
	}
	h.logger.InfoContext(r.Context(), "Products deleted successfully", "count", count)
	web.RespondMessage(w, h.logger, http.StatusOK, fmt.Sprintf(msgDeletedAll, count), nil)
}

// badInput returns the client-facing message for validation and field type errors.
func badInput(err error) (string, bool) {
	var validationErr *perrors.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Error(), true
	}
	var typeErr *perrors.FieldTypeError
	if errors.As(err, &typeErr) {
		return typeErr.Error(), true
	}
	return "", false
}

// decodeFields reads a flat JSON object, or an urlencoded form, into a field map.
// An empty body yields an empty map.
func decodeFields(w http.ResponseWriter, r *http.Request) (map[string]any, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/x-www-form-urlencoded" {
		if err := r.ParseForm(); err != nil {
			return nil, err
		}
		fields := make(map[string]any, len(r.PostForm))
		for key, values := range r.PostForm {
			fields[key] = formValue(key, values[0])
		}
		return fields, nil
	}

	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]any{}, nil
		}
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

// formValue keeps form values as strings except numeric price and quantity.
func formValue(key, value string) any {
	if key != service.FieldPrice && key != service.FieldQuantity {
		return value
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return value
	}
	return json.Number(value)
}
