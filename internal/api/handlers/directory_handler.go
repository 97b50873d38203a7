package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/log"

	"github.com/zdziszkee/bank-directory/internal/directory"
	models "github.com/zdziszkee/bank-directory/internal/models"
	service "github.com/zdziszkee/bank-directory/internal/services"
)

// DirectoryHandler handles API requests for the partner bank directory
type DirectoryHandler struct {
	service          service.DirectoryService
	snapshot         []byte
	defaultCountries []string
}

// SelectionResponse is the body returned for a valid bank selection
type SelectionResponse struct {
	Bank                    models.BankRecord `json:"bank"`
	RequiresExtraIdentifier bool              `json:"requires_extra_identifier"`
}

// NewDirectoryHandler creates a new handler serving the directory snapshot.
// defaultCountries applies when a request names no country.
func NewDirectoryHandler(svc service.DirectoryService, snapshot []byte, defaultCountries []string) *DirectoryHandler {
	return &DirectoryHandler{service: svc, snapshot: snapshot, defaultCountries: defaultCountries}
}

// ListBanks handles requests for the resolved directory snapshot
func (h *DirectoryHandler) ListBanks(c fiber.Ctx) error {
	countries, product := h.query(c)

	banks, err := h.service.ResolveDirectory(c.Context(), h.snapshot, countries, product)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(banks)
}

// Resolve handles resolution of a directory document sent in the request body
func (h *DirectoryHandler) Resolve(c fiber.Ctx) error {
	countries, product := h.query(c)

	banks, err := h.service.ResolveDirectory(c.Context(), c.Body(), countries, product)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(banks)
}

// Options handles requests for the bank selection list
func (h *DirectoryHandler) Options(c fiber.Ctx) error {
	countries, product := h.query(c)

	options, err := h.service.SelectOptions(c.Context(), h.snapshot, countries, product)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(options)
}

// ValidateSelection handles validation of a selected bank, by ASPSP id or BIC,
// and of the payer IBAN when one is given
func (h *DirectoryHandler) ValidateSelection(c fiber.Ctx) error {
	bankID := c.Params("aspspId")
	countries, product := h.query(c)
	log.Debugf("ValidateSelection called with bank %s (product=%s)", bankID, product)

	bank, err := h.service.ValidateSelection(c.Context(), h.snapshot, bankID, product, countries)
	if err != nil {
		return handleError(c, err)
	}
	if iban := c.Query("iban"); iban != "" {
		if err := h.service.ValidateAccount(*bank, iban, countries); err != nil {
			return handleError(c, err)
		}
	}

	return c.Status(fiber.StatusOK).JSON(SelectionResponse{
		Bank:                    *bank,
		RequiresExtraIdentifier: h.service.RequiresExtraIdentifier(*bank),
	})
}

// Affiliations lists the configured mother banks
func (h *DirectoryHandler) Affiliations(c fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(h.service.Affiliations())
}

// Products lists the known payment products and their default support
func (h *DirectoryHandler) Products(c fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(h.service.Products())
}

func (h *DirectoryHandler) query(c fiber.Ctx) ([]string, string) {
	countries := directory.ParseCountryCodes(c.Query("countries"))
	if len(countries) == 0 {
		countries = h.defaultCountries
	}
	return countries, c.Query("product")
}

// Helper function for error handling
func handleError(c fiber.Ctx, err error) error {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		status := fiber.StatusUnprocessableEntity
		if verr.Reason == service.ReasonUnknownBank {
			status = fiber.StatusNotFound
		}
		return c.Status(status).JSON(fiber.Map{
			"message": verr.Error(),
			"reason":  string(verr.Reason),
		})
	case errors.Is(err, service.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid input provided",
		})
	case errors.Is(err, service.ErrInvalidDirectory):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid bank directory",
		})
	default:
		log.Errorf("Request %s %s failed: %v", c.Method(), c.Path(), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Internal server error",
		})
	}
}
