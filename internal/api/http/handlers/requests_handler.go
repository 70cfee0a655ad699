package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/asset-service/internal/api/dto"
	"github.com/spec-kit/asset-service/internal/domain"
	"github.com/spec-kit/asset-service/internal/service"
)

// RequestsHandler exposes maintenance (request-m) and equipment (request-e) requests.
type RequestsHandler struct {
	requests *service.RequestService
}

// NewRequestsHandler constructs handler.
func NewRequestsHandler(requests *service.RequestService) *RequestsHandler {
	return &RequestsHandler{requests: requests}
}

func (h *RequestsHandler) CreateMaintenance(c *fiber.Ctx) error {
	var req dto.MaintenanceRequestBody
	if err := parseBody(c, &req); err != nil {
		return err
	}
	created, err := h.requests.CreateMaintenance(c.UserContext(), maintenanceInput(req))
	if err != nil {
		return err
	}
	return success(c, fiber.StatusCreated, fiber.Map{"message": "Maintenance request created", "data": dto.NewMaintenanceResponse(created)})
}

func (h *RequestsHandler) ListMaintenance(c *fiber.Ctx) error {
	list, err := h.requests.ListMaintenance(c.UserContext())
	if err != nil {
		return err
	}
	return success(c, fiber.StatusOK, fiber.Map{"count": len(list), "data": dto.MapList(list, dto.NewMaintenanceResponse)})
}

func (h *RequestsHandler) GetMaintenance(c *fiber.Ctx) error {
	req, err := h.requests.GetMaintenance(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return success(c, fiber.StatusOK, fiber.Map{"data": dto.NewMaintenanceResponse(req)})
}

func (h *RequestsHandler) UpdateMaintenance(c *fiber.Ctx) error {
	var body dto.MaintenanceRequestBody
	if err := parseBody(c, &body); err != nil {
		return err
	}
	req, err := h.requests.UpdateMaintenance(c.UserContext(), c.Params("id"), maintenanceInput(body))
	if err != nil {
		return err
	}
	return success(c, fiber.StatusOK, fiber.Map{"message": "Maintenance request updated", "data": dto.NewMaintenanceResponse(req)})
}

func (h *RequestsHandler) DeleteMaintenance(c *fiber.Ctx) error {
	if err := h.requests.DeleteMaintenance(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return success(c, fiber.StatusOK, fiber.Map{"message": "Maintenance request deleted"})
}

// CancelMaintenance handles PATCH /request-m/:id/cancel.
func (h *RequestsHandler) CancelMaintenance(c *fiber.Ctx) error {
	return h.setMaintenanceStatus(c, domain.RequestStatusCancelled, "Maintenance request cancelled")
}

// ApproveMaintenance handles PUT /approve-request-m/:id.
func (h *RequestsHandler) ApproveMaintenance(c *fiber.Ctx) error {
	return h.setMaintenanceStatus(c, domain.RequestStatusApproved, "Maintenance request approved")
}

func (h *RequestsHandler) setMaintenanceStatus(c *fiber.Ctx, status domain.RequestStatus, message string) error {
	req, err := h.requests.SetMaintenanceStatus(c.UserContext(), c.Params("id"), status)
	if err != nil {
		return err
	}
	return success(c, fiber.StatusOK, fiber.Map{"message": message, "data": dto.NewMaintenanceResponse(req)})
}

func (h *RequestsHandler) CreateEquipment(c *fiber.Ctx) error {
	var req dto.EquipmentRequestBody
	if err := parseBody(c, &req); err != nil {
		return err
	}
	created, err := h.requests.CreateEquipment(c.UserContext(), equipmentInput(req))
	if err != nil {
		return err
	}
	return success(c, fiber.StatusCreated, fiber.Map{"message": "Equipment request created", "data": dto.NewEquipmentResponse(created)})
}

func (h *RequestsHandler) ListEquipment(c *fiber.Ctx) error {
	list, err := h.requests.ListEquipment(c.UserContext())
	if err != nil {
		return err
	}
	return success(c, fiber.StatusOK, fiber.Map{"count": len(list), "data": dto.MapList(list, dto.NewEquipmentResponse)})
}

func (h *RequestsHandler) GetEquipment(c *fiber.Ctx) error {
	req, err := h.requests.GetEquipment(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return success(c, fiber.StatusOK, fiber.Map{"data": dto.NewEquipmentResponse(req)})
}

func (h *RequestsHandler) UpdateEquipment(c *fiber.Ctx) error {
	var body dto.EquipmentRequestBody
	if err := parseBody(c, &body); err != nil {
		return err
	}
	req, err := h.requests.UpdateEquipment(c.UserContext(), c.Params("id"), equipmentInput(body))
	if err != nil {
		return err
	}
	return success(c, fiber.StatusOK, fiber.Map{"message": "Equipment request updated", "data": dto.NewEquipmentResponse(req)})
}

func (h *RequestsHandler) DeleteEquipment(c *fiber.Ctx) error {
	if err := h.requests.DeleteEquipment(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return success(c, fiber.StatusOK, fiber.Map{"message": "Equipment request deleted"})
}

// CancelEquipment handles PATCH /request-e/:id/cancel.
func (h *RequestsHandler) CancelEquipment(c *fiber.Ctx) error {
	return h.setEquipmentStatus(c, domain.RequestStatusCancelled, "Equipment request cancelled")
}

// ApproveEquipment handles PUT /approve-request-e/:id.
func (h *RequestsHandler) ApproveEquipment(c *fiber.Ctx) error {
	return h.setEquipmentStatus(c, domain.RequestStatusApproved, "Equipment request approved")
}

func (h *RequestsHandler) setEquipmentStatus(c *fiber.Ctx, status domain.RequestStatus, message string) error {
	req, err := h.requests.SetEquipmentStatus(c.UserContext(), c.Params("id"), status)
	if err != nil {
		return err
	}
	return success(c, fiber.StatusOK, fiber.Map{"message": message, "data": dto.NewEquipmentResponse(req)})
}

func maintenanceInput(body dto.MaintenanceRequestBody) service.MaintenanceInput {
	return service.MaintenanceInput{
		ServiceName:  body.ServiceName,
		IssueDetails: body.IssueDetails,
		RequestDate:  body.RequestDate,
		PropertyID:   body.PropertyID,
		UserID:       body.UserID,
		Status:       body.Status,
	}
}

func equipmentInput(body dto.EquipmentRequestBody) service.EquipmentInput {
	return service.EquipmentInput{
		ItemName:     body.ItemName,
		IssueDetails: body.IssueDetails,
		RequestDate:  body.RequestDate,
		PropertyID:   body.PropertyID,
		UserID:       body.UserID,
		Status:       body.Status,
	}
}
