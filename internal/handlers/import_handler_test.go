package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fintrack/internal/dto"
	"fintrack/internal/errors"
	"fintrack/internal/importers"
	"fintrack/internal/models"
	"fintrack/internal/repositories"
	"fintrack/internal/services"
	"fintrack/internal/services/service_mocks"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

const testCSV = "Date,Amount,Description\n2024-01-15,-4.50,STARBUCKS STORE 1234\n"

type ImportHandlerSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockService *service_mocks.MockImportServiceInterface
	handler     *ImportHandler
	echo        *echo.Echo
	userID      uuid.UUID
	accountID   uuid.UUID
}

func TestImportHandlerSuite(t *testing.T) {
	suite.Run(t, new(ImportHandlerSuite))
}

func (s *ImportHandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockService = service_mocks.NewMockImportServiceInterface(s.ctrl)
	s.handler = NewImportHandler(s.mockService, 1024)

	s.echo = echo.New()
	s.echo.Validator = NewValidator()

	s.userID = uuid.New()
	s.accountID = uuid.New()
}

func (s *ImportHandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ImportHandlerSuite) multipartContext(path, fileName string, data []byte, fields map[string]string) (echo.Context, *httptest.ResponseRecorder) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if fileName != "" {
		part, err := writer.CreateFormFile("file", fileName)
		s.Require().NoError(err)
		_, err = part.Write(data)
		s.Require().NoError(err)
	}
	for k, v := range fields {
		s.Require().NoError(writer.WriteField(k, v))
	}
	s.Require().NoError(writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.Set("user_id", s.userID)
	c.SetParamNames("accountId")
	c.SetParamValues(s.accountID.String())
	return c, rec
}

func (s *ImportHandlerSuite) jsonContext(method, path string, body interface{}) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != nil {
		raw, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewBuffer(raw))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.Set("user_id", s.userID)
	return c, rec
}

func (s *ImportHandlerSuite) errorCode(rec *httptest.ResponseRecorder) string {
	var resp errors.ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Error.Code
}

func (s *ImportHandlerSuite) batch() *models.ImportBatch {
	return &models.ImportBatch{
		ID:            uuid.New(),
		UserID:        s.userID,
		AccountID:     s.accountID,
		SourceType:    models.SourceTypeCSV,
		FileName:      "statement.csv",
		TotalRows:     1,
		ImportedCount: 1,
		Status:        models.ImportStatusCompleted,
		CreatedAt:     time.Now(),
	}
}

func (s *ImportHandlerSuite) TestPreviewImport_Success() {
	preview := &services.ImportPreview{
		SourceType: models.SourceTypeCSV,
		FileName:   "statement.csv",
		Transactions: []models.CanonicalTransaction{{
			Date:        time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			Amount:      decimal.RequireFromString("4.50"),
			Direction:   models.TransactionTypeDebit,
			Description: "STARBUCKS STORE 1234",
			SourceRow:   2,
		}},
		Errors:     []services.PreviewRowError{},
		Duplicates: []models.DuplicateCandidate{},
	}
	s.mockService.EXPECT().
		Preview(gomock.Any(), s.userID, s.accountID, "statement.csv", []byte(testCSV), "", nil).
		Return(preview, nil)

	c, rec := s.multipartContext("/accounts/x/imports/preview", "statement.csv", []byte(testCSV), nil)
	s.NoError(s.handler.PreviewImport(c))
	s.Equal(http.StatusOK, rec.Code)

	var resp map[string]interface{}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal("csv", resp["source_type"])
	s.Len(resp["transactions"], 1)
}

func (s *ImportHandlerSuite) TestPreviewImport_WithMapping() {
	s.mockService.EXPECT().
		Preview(gomock.Any(), s.userID, s.accountID, "export.csv", gomock.Any(), "csv", gomock.Any()).
		DoAndReturn(func(_ interface{}, _, _ uuid.UUID, _ string, _ []byte, _ string, mapping *importers.ColumnMapping) (*services.ImportPreview, error) {
			s.Require().NotNil(mapping)
			s.Equal("Posted", mapping.Date)
			s.Equal("Debit|Credit", mapping.Amount)
			s.Equal("Memo", mapping.Description)
			return &services.ImportPreview{SourceType: models.SourceTypeCSV}, nil
		})

	fields := map[string]string{
		"format":             "CSV",
		"date_column":        "Posted",
		"amount_column":      "Debit|Credit",
		"description_column": "Memo",
	}
	c, rec := s.multipartContext("/", "export.csv", []byte(testCSV), fields)
	s.NoError(s.handler.PreviewImport(c))
	s.Equal(http.StatusOK, rec.Code)
}

func (s *ImportHandlerSuite) TestPreviewImport_IncompleteMapping() {
	c, rec := s.multipartContext("/", "export.csv", []byte(testCSV), map[string]string{"date_column": "Posted"})
	s.NoError(s.handler.PreviewImport(c))
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("VALIDATION_001", s.errorCode(rec))
}

func (s *ImportHandlerSuite) TestPreviewImport_UnknownFormat() {
	c, rec := s.multipartContext("/", "export.pdf", []byte("%PDF"), map[string]string{"format": "pdf"})
	s.NoError(s.handler.PreviewImport(c))
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), "Format")
}

func (s *ImportHandlerSuite) TestPreviewImport_MissingFile() {
	c, rec := s.multipartContext("/", "", nil, map[string]string{"format": "csv"})
	s.NoError(s.handler.PreviewImport(c))
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("VALIDATION_002", s.errorCode(rec))
}

func (s *ImportHandlerSuite) TestPreviewImport_ServiceErrors() {
	testCases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"malformed file", fmt.Errorf("%w: no header row", importers.ErrMalformedFile), http.StatusUnprocessableEntity, "IMPORT_001"},
		{"unsupported format", services.ErrUnsupportedFormat, http.StatusBadRequest, "IMPORT_002"},
		{"too large", services.ErrFileTooLarge, http.StatusRequestEntityTooLarge, "IMPORT_005"},
		{"foreign account", repositories.ErrAccountNotFound, http.StatusNotFound, "ACCOUNT_001"},
		{"database failure", fmt.Errorf("connection reset"), http.StatusInternalServerError, "SYSTEM_001"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.mockService.EXPECT().
				Preview(gomock.Any(), s.userID, s.accountID, gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
				Return(nil, tc.err)

			c, rec := s.multipartContext("/", "statement.csv", []byte(testCSV), nil)
			s.NoError(s.handler.PreviewImport(c))
			s.Equal(tc.wantStatus, rec.Code)
			s.Equal(tc.wantCode, s.errorCode(rec))
			s.NotContains(rec.Body.String(), "connection reset")
		})
	}
}

func (s *ImportHandlerSuite) TestPreviewImport_Unauthenticated() {
	c, rec := s.multipartContext("/", "statement.csv", []byte(testCSV), nil)
	c.Set("user_id", nil)

	s.NoError(s.handler.PreviewImport(c))
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal("AUTH_002", s.errorCode(rec))
}

func (s *ImportHandlerSuite) TestPreviewImport_InvalidAccountID() {
	c, rec := s.multipartContext("/", "statement.csv", []byte(testCSV), nil)
	c.SetParamValues("not-a-uuid")

	s.NoError(s.handler.PreviewImport(c))
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("VALIDATION_003", s.errorCode(rec))
}

func (s *ImportHandlerSuite) TestUploadImport_SkipDuplicates() {
	batch := s.batch()
	s.mockService.EXPECT().
		ImportFile(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, req services.ImportFileRequest) (*models.ImportBatch, error) {
			s.Equal(s.userID, req.UserID)
			s.Equal(s.accountID, req.AccountID)
			s.Equal("statement.csv", req.FileName)
			s.True(req.SkipDuplicates)
			s.Nil(req.Mapping)
			return batch, nil
		})

	c, rec := s.multipartContext("/", "statement.csv", []byte(testCSV), map[string]string{"skip_duplicates": "true"})
	s.NoError(s.handler.UploadImport(c))
	s.Equal(http.StatusCreated, rec.Code)

	var resp models.ImportBatch
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal(batch.ID, resp.ID)
}

func (s *ImportHandlerSuite) TestUploadImport_BadSkipFlag() {
	c, rec := s.multipartContext("/", "statement.csv", []byte(testCSV), map[string]string{"skip_duplicates": "sometimes"})
	s.NoError(s.handler.UploadImport(c))
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *ImportHandlerSuite) TestUploadImport_ReadStopsPastLimit() {
	s.handler = NewImportHandler(s.mockService, 16)
	data := []byte(strings.Repeat("x", 64))

	s.mockService.EXPECT().
		ImportFile(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, req services.ImportFileRequest) (*models.ImportBatch, error) {
			s.Len(req.Data, 17)
			return nil, services.ErrFileTooLarge
		})

	c, rec := s.multipartContext("/", "big.csv", data, nil)
	s.NoError(s.handler.UploadImport(c))
	s.Equal(http.StatusRequestEntityTooLarge, rec.Code)
	s.Equal("IMPORT_005", s.errorCode(rec))
}

func (s *ImportHandlerSuite) TestCommitImport_Success() {
	payee := gofakeit.Company()
	body := dto.CommitImportRequest{
		SourceType: "csv",
		FileName:   "statement.csv",
		Transactions: []dto.ImportTransactionInput{
			{Date: "2024-01-15", Amount: "-4.50", Direction: "debit", Description: "STARBUCKS", Payee: payee, SourceRow: 2},
			{Date: "01/16/2024", Amount: "1200.00", Direction: "credit", Description: "PAYROLL", SourceRow: 3},
		},
		SkipRows:   []int{1},
		ErrorCount: 2,
	}

	batch := s.batch()
	s.mockService.EXPECT().
		Commit(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, req services.CommitRequest) (*models.ImportBatch, error) {
			s.Equal(s.userID, req.UserID)
			s.Equal(s.accountID, req.AccountID)
			s.Equal(models.SourceTypeCSV, req.SourceType)
			s.Require().Len(req.Transactions, 2)
			s.True(req.Transactions[0].Amount.Equal(decimal.RequireFromString("4.50")))
			s.Equal(payee, req.Transactions[0].PayeeText)
			s.Equal(time.January, req.Transactions[1].Date.Month())
			s.Equal(16, req.Transactions[1].Date.Day())
			s.Equal([]int{1}, req.SkipRows)
			s.Equal(2, req.ErrorCount)
			s.Nil(req.OriginalFile)
			return batch, nil
		})

	c, rec := s.jsonContext(http.MethodPost, "/", body)
	c.SetParamNames("accountId")
	c.SetParamValues(s.accountID.String())

	s.NoError(s.handler.CommitImport(c))
	s.Equal(http.StatusCreated, rec.Code)
}

func (s *ImportHandlerSuite) TestCommitImport_ValidationFailures() {
	testCases := []struct {
		name     string
		body     dto.CommitImportRequest
		wantCode string
	}{
		{
			name:     "no transactions",
			body:     dto.CommitImportRequest{SourceType: "csv"},
			wantCode: "VALIDATION_001",
		},
		{
			name: "bad direction",
			body: dto.CommitImportRequest{SourceType: "csv", Transactions: []dto.ImportTransactionInput{
				{Date: "2024-01-15", Amount: "1.00", Direction: "sideways"},
			}},
			wantCode: "VALIDATION_001",
		},
		{
			name: "unparseable date",
			body: dto.CommitImportRequest{SourceType: "ofx", Transactions: []dto.ImportTransactionInput{
				{Date: "yesterday", Amount: "1.00", Direction: "credit"},
			}},
			wantCode: "VALIDATION_007",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			c, rec := s.jsonContext(http.MethodPost, "/", tc.body)
			c.SetParamNames("accountId")
			c.SetParamValues(s.accountID.String())

			s.NoError(s.handler.CommitImport(c))
			s.Equal(http.StatusBadRequest, rec.Code)
			s.Equal(tc.wantCode, s.errorCode(rec))
		})
	}
}

func (s *ImportHandlerSuite) TestListImports_ClampsLimit() {
	batches := []models.ImportBatch{*s.batch(), *s.batch()}
	s.mockService.EXPECT().
		ListBatches(gomock.Any(), s.userID, s.accountID, 5, maxPageLimit).
		Return(batches, int64(7), nil)

	c, rec := s.jsonContext(http.MethodGet, "/?offset=5&limit=5000", nil)
	c.SetParamNames("accountId")
	c.SetParamValues(s.accountID.String())

	s.NoError(s.handler.ListImports(c))
	s.Equal(http.StatusOK, rec.Code)

	var resp dto.ImportBatchListResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Len(resp.Imports, 2)
	s.Equal(int64(7), resp.Total)
	s.Equal(5, resp.Offset)
	s.Equal(maxPageLimit, resp.Limit)
}

func (s *ImportHandlerSuite) TestGetImport_NotFound() {
	importID := uuid.New()
	s.mockService.EXPECT().GetBatch(gomock.Any(), s.userID, importID).Return(nil, repositories.ErrImportBatchNotFound)

	c, rec := s.jsonContext(http.MethodGet, "/", nil)
	c.SetParamNames("importId")
	c.SetParamValues(importID.String())

	s.NoError(s.handler.GetImport(c))
	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal("IMPORT_003", s.errorCode(rec))
}

func (s *ImportHandlerSuite) TestDownloadOriginal() {
	importID := uuid.New()
	s.mockService.EXPECT().OriginalFile(gomock.Any(), s.userID, importID).Return([]byte(testCSV), "statement.csv", nil)

	c, rec := s.jsonContext(http.MethodGet, "/", nil)
	c.SetParamNames("importId")
	c.SetParamValues(importID.String())

	s.NoError(s.handler.DownloadOriginal(c))
	s.Equal(http.StatusOK, rec.Code)
	s.Equal(`attachment; filename=statement.csv`, rec.Header().Get(echo.HeaderContentDisposition))
	s.Equal(testCSV, rec.Body.String())
}

func (s *ImportHandlerSuite) TestDownloadOriginal_NotRetained() {
	importID := uuid.New()
	s.mockService.EXPECT().OriginalFile(gomock.Any(), s.userID, importID).Return(nil, "", services.ErrOriginalFileNotRetained)

	c, rec := s.jsonContext(http.MethodGet, "/", nil)
	c.SetParamNames("importId")
	c.SetParamValues(importID.String())

	s.NoError(s.handler.DownloadOriginal(c))
	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal("IMPORT_006", s.errorCode(rec))
}

func (s *ImportHandlerSuite) TestRollbackImport() {
	batch := s.batch()
	batch.Status = models.ImportStatusRolledBack
	s.mockService.EXPECT().Rollback(gomock.Any(), s.userID, batch.ID).Return(&services.RollbackResult{Batch: batch, DeletedCount: 12}, nil)

	c, rec := s.jsonContext(http.MethodDelete, "/", nil)
	c.SetParamNames("importId")
	c.SetParamValues(batch.ID.String())

	s.NoError(s.handler.RollbackImport(c))
	s.Equal(http.StatusOK, rec.Code)

	var resp dto.RollbackResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal(int64(12), resp.DeletedCount)
	s.Equal(models.ImportStatusRolledBack, resp.Import.Status)
	s.Equal("Rolled back 12 transactions", resp.Message)
}

func (s *ImportHandlerSuite) TestRollbackImport_Twice() {
	importID := uuid.New()
	s.mockService.EXPECT().Rollback(gomock.Any(), s.userID, importID).Return(nil, services.ErrImportAlreadyRolledBack)

	c, rec := s.jsonContext(http.MethodDelete, "/", nil)
	c.SetParamNames("importId")
	c.SetParamValues(importID.String())

	s.NoError(s.handler.RollbackImport(c))
	s.Equal(http.StatusConflict, rec.Code)
	s.Equal("IMPORT_004", s.errorCode(rec))
}
