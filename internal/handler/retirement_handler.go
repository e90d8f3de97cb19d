package handler

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"

	"pensiondoc/internal/domain"
	"pensiondoc/internal/port"
	"pensiondoc/internal/service"
)

// multipartOverhead is the allowance for form boundaries and part headers on
// top of the configured file size limit.
const multipartOverhead = 1 << 20

// AnticipatedRetirementResponse is the result of analyzing an anticipated voluntary retirement document.
type AnticipatedRetirementResponse struct {
	Modality                       domain.RetirementModality `json:"modalidad" example:"jubilacion_anticipada_voluntaria"`
	AnticipatedRetirementDate      *domain.Date              `json:"f_jubilacion_anticipada_voluntaria" swaggertype:"string" example:"2026-03-01"`
	MonthsInAdvance                *int                      `json:"meses_anticipacion" example:"24"`
	ReductionCoefficientPercent    *float64                  `json:"coeficiente_reductor_porcentaje" example:"17.6"`
	MonthlyPensionAmount14Payments *float64                  `json:"importe_pension_14_pagas" example:"2480.55"`
}

// PartialRetirementResponse is the result of analyzing a partial retirement document.
type PartialRetirementResponse struct {
	Modality                       domain.RetirementModality `json:"modalidad" example:"jubilacion_parcial"`
	MonthlyPensionAmount14Payments *float64                  `json:"importe_pension_14_pagas" example:"2748.26"`
	PartialRetirementDate          *domain.Date              `json:"f_jubilacion_parcial" swaggertype:"string" example:"2025-11-15"`
	WorkdayReductionPercent        *float64                  `json:"porcentaje_reduccion_jornada" example:"75"`
}

// NewAnticipatedRetirementResponse projects a summary onto the anticipated retirement DTO.
func NewAnticipatedRetirementResponse(s *domain.RetirementSummary) AnticipatedRetirementResponse {
	return AnticipatedRetirementResponse{
		Modality:                       domain.ModalityAnticipatedVoluntary,
		AnticipatedRetirementDate:      s.AnticipatedRetirementDate,
		MonthsInAdvance:                s.MonthsInAdvance,
		ReductionCoefficientPercent:    s.ReductionCoefficientPercent,
		MonthlyPensionAmount14Payments: s.MonthlyPensionAmount14Payments,
	}
}

// NewPartialRetirementResponse projects a summary onto the partial retirement DTO.
func NewPartialRetirementResponse(s *domain.RetirementSummary) PartialRetirementResponse {
	return PartialRetirementResponse{
		Modality:                       domain.ModalityPartial,
		MonthlyPensionAmount14Payments: s.MonthlyPensionAmount14Payments,
		PartialRetirementDate:          s.PartialRetirementDate,
		WorkdayReductionPercent:        s.WorkdayReductionPercent,
	}
}

// RetirementHandler handles pension document analysis endpoints.
type RetirementHandler struct {
	retirementService service.RetirementService
	maxFileSize       int64
}

// NewRetirementHandler creates a new RetirementHandler. maxFileSize is in bytes.
func NewRetirementHandler(retirementService service.RetirementService, maxFileSize int64) *RetirementHandler {
	return &RetirementHandler{
		retirementService: retirementService,
		maxFileSize:       maxFileSize,
	}
}

// AnalyzeAnticipated handles POST /api/jubilacion/anticipada
// @Summary Analyze an anticipated voluntary retirement document
// @Description Extracts retirement date, months in advance, reduction coefficient and monthly pension (14 payments) from a Social Security pension calculation PDF
// @Tags jubilacion
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Pension calculation document (PDF)"
// @Success 200 {object} AnticipatedRetirementResponse
// @Failure 400 {object} ErrorResponseBody "Missing file or not a PDF"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Failure 429 {object} ErrorResponseBody "Provider rate limit"
// @Failure 500 {object} ErrorResponseBody "Analysis failed"
// @Router /api/jubilacion/anticipada [post]
func (h *RetirementHandler) AnalyzeAnticipated(c *gin.Context) {
	doc, closeFn, err := h.readDocument(c)
	if err != nil {
		HandleError(c, err)
		return
	}
	defer closeFn()

	summary, err := h.retirementService.AnalyzeAnticipatedRetirement(c.Request.Context(), doc)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewAnticipatedRetirementResponse(summary))
}

// AnalyzePartial handles POST /api/jubilacion/parcial
// @Summary Analyze a partial retirement document
// @Description Extracts retirement date, workday reduction and monthly pension (14 payments) from a Social Security pension calculation PDF
// @Tags jubilacion
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Pension calculation document (PDF)"
// @Success 200 {object} PartialRetirementResponse
// @Failure 400 {object} ErrorResponseBody "Missing file or not a PDF"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Failure 429 {object} ErrorResponseBody "Provider rate limit"
// @Failure 500 {object} ErrorResponseBody "Analysis failed"
// @Router /api/jubilacion/parcial [post]
func (h *RetirementHandler) AnalyzePartial(c *gin.Context) {
	doc, closeFn, err := h.readDocument(c)
	if err != nil {
		HandleError(c, err)
		return
	}
	defer closeFn()

	summary, err := h.retirementService.AnalyzePartialRetirement(c.Request.Context(), doc)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewPartialRetirementResponse(summary))
}

// readDocument validates the uploaded "file" part and returns it positioned at
// its first byte. The declared content type must be exactly application/pdf
// and the content itself must sniff as PDF.
func (h *RetirementHandler) readDocument(c *gin.Context) (port.Document, func(), error) {
	if h.maxFileSize > 0 && c.Request.Body != nil {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxFileSize+multipartOverhead)
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return port.Document{}, nil, domain.ErrFileTooLarge
		}
		return port.Document{}, nil, fmt.Errorf("%w: %v", domain.ErrMissingFile, err)
	}
	closeFn := func() { _ = file.Close() }

	doc, err := h.validateFile(file, header)
	if err != nil {
		closeFn()
		return port.Document{}, nil, err
	}
	return doc, closeFn, nil
}

func (h *RetirementHandler) validateFile(file multipart.File, header *multipart.FileHeader) (port.Document, error) {
	if header.Header.Get("Content-Type") != domain.ContentTypePDF {
		return port.Document{}, domain.ErrUnsupportedFileType
	}
	if h.maxFileSize > 0 && header.Size > h.maxFileSize {
		return port.Document{}, domain.ErrFileTooLarge
	}

	detected, err := mimetype.DetectReader(file)
	if err != nil {
		return port.Document{}, fmt.Errorf("reading file header: %w", err)
	}
	if !detected.Is(domain.ContentTypePDF) {
		return port.Document{}, domain.ErrUnsupportedFileType
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return port.Document{}, fmt.Errorf("rewinding file: %w", err)
	}

	return port.Document{
		FileName: header.Filename,
		Content:  file,
		Size:     header.Size,
	}, nil
}
