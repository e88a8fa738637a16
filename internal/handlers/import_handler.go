package handlers

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"fintrack/internal/dto"
	"fintrack/internal/errors"
	"fintrack/internal/importers"
	"fintrack/internal/services"

	"github.com/labstack/echo/v4"
)

// ImportHandler handles statement import HTTP requests
type ImportHandler struct {
	importService  services.ImportServiceInterface
	maxUploadBytes int64
}

// NewImportHandler creates a new import handler. maxUploadBytes <= 0 reads uploads unbounded.
func NewImportHandler(importService services.ImportServiceInterface, maxUploadBytes int64) *ImportHandler {
	return &ImportHandler{
		importService:  importService,
		maxUploadBytes: maxUploadBytes,
	}
}

// PreviewImport parses an uploaded statement without persisting anything
// @Summary Preview a statement import
// @Description Parse a CSV, OFX or QFX file and return the normalized rows, parse errors, duplicate candidates and rule suggestions
// @Tags Imports
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param accountId path string true "Account ID (UUID)"
// @Param file formData file true "Statement file"
// @Param format formData string false "csv, ofx or qfx; detected when omitted"
// @Success 200 {object} services.ImportPreview "Parsed preview"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Missing file or invalid mapping"
// @Failure 401 {object} errors.ErrorResponse "AUTH_002 - Missing or invalid authentication"
// @Failure 404 {object} errors.ErrorResponse "ACCOUNT_001 - Account not found"
// @Failure 413 {object} errors.ErrorResponse "IMPORT_005 - File too large"
// @Failure 422 {object} errors.ErrorResponse "IMPORT_001 - File could not be parsed"
// @Router /accounts/{accountId}/imports/preview [post]
func (h *ImportHandler) PreviewImport(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	accountID, err := getUUIDParam(c, "accountId")
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid account ID"))
	}

	fileName, data, err := h.readUpload(c)
	if err != nil {
		return SendError(c, errors.ValidationRequiredField, errors.WithDetails(err.Error()))
	}

	form, mapping, err := h.bindUploadForm(c)
	if err != nil {
		return sendValidationError(c, err)
	}

	preview, err := h.importService.Preview(c.Request().Context(), userID, accountID, fileName, data, form.Format, mapping)
	if err != nil {
		return sendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, preview)
}

// UploadImport parses and commits an uploaded statement in one step
// @Summary Import a statement file
// @Description Parse and persist a statement file as one import batch
// @Tags Imports
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param accountId path string true "Account ID (UUID)"
// @Param file formData file true "Statement file"
// @Param format formData string false "csv, ofx or qfx; detected when omitted"
// @Param skip_duplicates formData bool false "Leave out rows flagged as duplicates"
// @Success 201 {object} models.ImportBatch "Committed import"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Missing file or invalid mapping"
// @Failure 404 {object} errors.ErrorResponse "ACCOUNT_001 - Account not found"
// @Failure 413 {object} errors.ErrorResponse "IMPORT_005 - File too large"
// @Failure 422 {object} errors.ErrorResponse "IMPORT_001 - File could not be parsed"
// @Router /accounts/{accountId}/imports/upload [post]
func (h *ImportHandler) UploadImport(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	accountID, err := getUUIDParam(c, "accountId")
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid account ID"))
	}

	fileName, data, err := h.readUpload(c)
	if err != nil {
		return SendError(c, errors.ValidationRequiredField, errors.WithDetails(err.Error()))
	}

	form, mapping, err := h.bindUploadForm(c)
	if err != nil {
		return sendValidationError(c, err)
	}

	batch, err := h.importService.ImportFile(c.Request().Context(), services.ImportFileRequest{
		UserID:         userID,
		AccountID:      accountID,
		FileName:       fileName,
		Data:           data,
		Format:         form.Format,
		Mapping:        mapping,
		SkipDuplicates: form.SkipDuplicates,
	})
	if err != nil {
		return sendServiceError(c, err)
	}

	return c.JSON(http.StatusCreated, batch)
}

// CommitImport persists previewed rows as an import batch
// @Summary Commit previewed rows
// @Description Persist the rows returned by a preview, leaving out skip_rows
// @Tags Imports
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param accountId path string true "Account ID (UUID)"
// @Param request body dto.CommitImportRequest true "Rows to import"
// @Success 201 {object} models.ImportBatch "Committed import"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid request body"
// @Failure 404 {object} errors.ErrorResponse "ACCOUNT_001 - Account not found"
// @Router /accounts/{accountId}/imports [post]
func (h *ImportHandler) CommitImport(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	accountID, err := getUUIDParam(c, "accountId")
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid account ID"))
	}

	var req dto.CommitImportRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return sendValidationError(c, err)
	}

	rows, err := req.Canonical()
	if err != nil {
		return sendServiceError(c, err)
	}

	batch, err := h.importService.Commit(c.Request().Context(), services.CommitRequest{
		UserID:       userID,
		AccountID:    accountID,
		SourceType:   strings.ToLower(req.SourceType),
		FileName:     req.FileName,
		FileFormat:   req.FileFormat,
		Transactions: rows,
		SkipRows:     req.SkipRows,
		ErrorCount:   req.ErrorCount,
		SkippedCount: req.SkippedCount,
	})
	if err != nil {
		return sendServiceError(c, err)
	}

	return c.JSON(http.StatusCreated, batch)
}

// ListImports returns a page of import batches for an account, newest first
// @Summary List imports for an account
// @Tags Imports
// @Security BearerAuth
// @Produce json
// @Param accountId path string true "Account ID (UUID)"
// @Param offset query int false "Offset" default(0)
// @Param limit query int false "Page size (max 100)" default(20)
// @Success 200 {object} dto.ImportBatchListResponse
// @Failure 404 {object} errors.ErrorResponse "ACCOUNT_001 - Account not found"
// @Router /accounts/{accountId}/imports [get]
func (h *ImportHandler) ListImports(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	accountID, err := getUUIDParam(c, "accountId")
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid account ID"))
	}

	offset, limit := getPagination(c)
	batches, total, err := h.importService.ListBatches(c.Request().Context(), userID, accountID, offset, limit)
	if err != nil {
		return sendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dto.ImportBatchListResponse{
		Imports: batches,
		Total:   total,
		Offset:  offset,
		Limit:   limit,
	})
}

// GetImport returns a single import batch
// @Summary Get an import
// @Tags Imports
// @Security BearerAuth
// @Produce json
// @Param importId path string true "Import ID (UUID)"
// @Success 200 {object} models.ImportBatch
// @Failure 404 {object} errors.ErrorResponse "IMPORT_003 - Import not found"
// @Router /imports/{importId} [get]
func (h *ImportHandler) GetImport(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	importID, err := getUUIDParam(c, "importId")
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid import ID"))
	}

	batch, err := h.importService.GetBatch(c.Request().Context(), userID, importID)
	if err != nil {
		return sendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, batch)
}

// DownloadOriginal streams the retained upload back to the caller
// @Summary Download the original statement file
// @Tags Imports
// @Security BearerAuth
// @Produce octet-stream
// @Param importId path string true "Import ID (UUID)"
// @Success 200 {file} file
// @Failure 404 {object} errors.ErrorResponse "IMPORT_006 - Original file was not retained"
// @Router /imports/{importId}/file [get]
func (h *ImportHandler) DownloadOriginal(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	importID, err := getUUIDParam(c, "importId")
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid import ID"))
	}

	data, fileName, err := h.importService.OriginalFile(c.Request().Context(), userID, importID)
	if err != nil {
		return sendServiceError(c, err)
	}

	if fileName == "" {
		fileName = importID.String()
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, mime.FormatMediaType("attachment", map[string]string{"filename": fileName}))
	c.Response().Header().Set(echo.HeaderContentLength, strconv.Itoa(len(data)))
	return c.Blob(http.StatusOK, echo.MIMEOctetStream, data)
}

// RollbackImport deletes every transaction an import created
// @Summary Roll back an import
// @Tags Imports
// @Security BearerAuth
// @Produce json
// @Param importId path string true "Import ID (UUID)"
// @Success 200 {object} dto.RollbackResponse
// @Failure 404 {object} errors.ErrorResponse "IMPORT_003 - Import not found"
// @Failure 409 {object} errors.ErrorResponse "IMPORT_004 - Import already rolled back"
// @Router /imports/{importId} [delete]
func (h *ImportHandler) RollbackImport(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	importID, err := getUUIDParam(c, "importId")
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid import ID"))
	}

	result, err := h.importService.Rollback(c.Request().Context(), userID, importID)
	if err != nil {
		return sendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dto.RollbackResponse{
		Import:       result.Batch,
		DeletedCount: result.DeletedCount,
		Message:      fmt.Sprintf("Rolled back %d transactions", result.DeletedCount),
	})
}

// readUpload reads the "file" form part. Reading stops one byte past the
// upload limit so the service can reject the file without buffering all of it.
func (h *ImportHandler) readUpload(c echo.Context) (string, []byte, error) {
	header, err := c.FormFile("file")
	if err != nil {
		return "", nil, fmt.Errorf("file is required")
	}

	file, err := header.Open()
	if err != nil {
		return "", nil, fmt.Errorf("file could not be read")
	}
	defer file.Close()

	var reader io.Reader = file
	if h.maxUploadBytes > 0 {
		reader = io.LimitReader(file, h.maxUploadBytes+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", nil, fmt.Errorf("file could not be read")
	}
	return header.Filename, data, nil
}

// bindUploadForm reads the format flags and an optional CSV column mapping
func (h *ImportHandler) bindUploadForm(c echo.Context) (dto.UploadImportForm, *importers.ColumnMapping, error) {
	form := dto.UploadImportForm{
		Format: strings.ToLower(strings.TrimSpace(c.FormValue("format"))),
	}
	if v := c.FormValue("skip_duplicates"); v != "" {
		skip, err := strconv.ParseBool(v)
		if err != nil {
			return form, nil, fmt.Errorf("skip_duplicates: must be a boolean")
		}
		form.SkipDuplicates = skip
	}
	if err := c.Validate(form); err != nil {
		return form, nil, err
	}

	mappingReq := dto.ColumnMappingRequest{
		Date:        c.FormValue("date_column"),
		Amount:      c.FormValue("amount_column"),
		Description: c.FormValue("description_column"),
		Payee:       c.FormValue("payee_column"),
		Notes:       c.FormValue("notes_column"),
		ExternalID:  c.FormValue("external_id_column"),
	}
	if mappingReq == (dto.ColumnMappingRequest{}) {
		return form, nil, nil
	}
	if err := c.Validate(mappingReq); err != nil {
		return form, nil, err
	}
	return form, mappingReq.ToMapping(), nil
}
