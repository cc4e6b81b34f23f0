package certificates

import (
	"brickvest-backend/internal/middleware"
	"brickvest-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *Service
}

// GET /api/v1/certificates/my-certificates
func (h *Handlers) MyCertificates(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	certs, err := h.Service.MyCertificates(c.Context(), userID)
	if err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Certificates fetched successfully", certs, nil)
}

// POST /api/v1/certificates/view-one
func (h *Handlers) ViewOne(c *fiber.Ctx) error {
	var body struct {
		CertificateID string `json:"certificate_id"`
	}
	if err := c.BodyParser(&body); err != nil || body.CertificateID == "" {
		return response.Error(c, "certificate_id is required", 400, nil)
	}
	certID, err := uuid.Parse(body.CertificateID)
	if err != nil {
		return response.Error(c, "Invalid certificate_id format", 400, nil)
	}
	actorID := middleware.GetUserID(c)
	if actorID == uuid.Nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	cert, err := h.Service.ViewOne(c.Context(), actorID, certID)
	if err != nil {
		return response.DomainError(c, err)
	}
	return response.Success(c, "Certificate fetched successfully", cert, nil)
}

// POST /api/v1/certificates/mark-rendered
func (h *Handlers) MarkRendered(c *fiber.Ctx) error {
	var body struct {
		CertificateID string `json:"certificate_id"`
		DocumentURL   string `json:"document_url"`
	}
	if err := c.BodyParser(&body); err != nil || body.CertificateID == "" || body.DocumentURL == "" {
		return response.Error(c, "certificate_id and document_url are required", 400, nil)
	}
	certID, err := uuid.Parse(body.CertificateID)
	if err != nil {
		return response.Error(c, "Invalid certificate_id format", 400, nil)
	}

	if err := h.Service.MarkRendered(c.Context(), certID, body.DocumentURL); err != nil {
		return response.DomainError(c, err)
	}
	return response.Success(c, "Certificate marked as rendered", fiber.Map{
		"certificate_id": certID,
	}, nil)
}
