package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/resume-analyzer/internal/logger"
	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/services"
)

type UploadHandler struct {
	orchestrator  services.Orchestrator
	uploadService services.UploadService
	logger        *zap.Logger
}

func NewUploadHandler(
	orchestrator services.Orchestrator,
	uploadService services.UploadService,
	log *zap.Logger,
) *UploadHandler {
	return &UploadHandler{
		orchestrator:  orchestrator,
		uploadService: uploadService,
		logger:        logger.OrNop(log),
	}
}

// HandleUpload handles POST /upload
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	file, err := c.FormFile("resume")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "No resume uploaded. Please upload 'resume' as a PDF or Word (.docx) file.",
			Code:  fiber.StatusBadRequest,
		})
	}

	doc, err := h.uploadService.ReadDocument(file)
	if err != nil {
		h.logger.Warn("upload rejected", zap.String("file", file.Filename), zap.Error(err))
		return errorResponse(c, err)
	}

	req := services.SubmitRequest{
		Document:       doc,
		Mode:           models.Mode(c.FormValue("mode", string(models.ModeAnalyzer))),
		JobDescription: c.FormValue("job_description"),
	}

	snapshot, err := h.orchestrator.Submit(c.UserContext(), req)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(snapshot)
}
