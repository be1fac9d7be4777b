package handlers_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/hr_memo_app/internal/apperrors"
	"github.com/SscSPs/hr_memo_app/internal/core/domain"
	"github.com/SscSPs/hr_memo_app/internal/dto"
	"github.com/SscSPs/hr_memo_app/internal/handlers"
	"github.com/SscSPs/hr_memo_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type MemorandumHandlerTestSuite struct {
	suite.Suite
	router                *gin.Engine
	mockMemorandumService *MockMemorandumService
	mockEmployeeService   *MockEmployeeService
	jwtSecret             string

	reviewer domain.Employee
}

// generateTestToken creates a signed access token for employeeID.
func (suite *MemorandumHandlerTestSuite) generateTestToken(employeeID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "hr-memo-test",
		Subject:   employeeID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *MemorandumHandlerTestSuite) SetupSuite() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	suite.Require().True(ok)
	suite.Require().NoError(dto.RegisterValidators(v))
}

func (suite *MemorandumHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockMemorandumService = new(MockMemorandumService)
	suite.mockEmployeeService = new(MockEmployeeService)

	suite.reviewer = domain.Employee{EmployeeID: uuid.NewString(), Name: "Paul Gestionnaire", Role: domain.RoleGestionnaire}

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterMemorandumRoutes(v1, suite.mockMemorandumService, suite.mockEmployeeService)
}

func (suite *MemorandumHandlerTestSuite) expectReviewer() {
	reviewer := suite.reviewer
	suite.mockEmployeeService.On("GetEmployeeByID", mock.Anything, reviewer.EmployeeID).Return(&reviewer, nil)
}

func (suite *MemorandumHandlerTestSuite) do(method, url, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req, _ = http.NewRequest(method, url, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, url, nil)
	}
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(suite.reviewer.EmployeeID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *MemorandumHandlerTestSuite) decodeError(w *httptest.ResponseRecorder) handlers.ErrorResponse {
	var body handlers.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// --- Test Cases ---

func (suite *MemorandumHandlerTestSuite) TestValidate_Success() {
	suite.expectReviewer()
	memoID := uuid.NewString()
	updated := &domain.Memorandum{
		MemorandumID: memoID,
		Title:        "Budget 2026",
		Status:       domain.StatusLevel3Pending,
		ValidationHistory: []domain.ValidationStep{
			{StepID: "s1", Level: domain.Level1, Action: domain.ActionApproved},
			{StepID: "s2", Level: domain.Level2, Action: domain.ActionApproved, ValidatorID: suite.reviewer.EmployeeID},
		},
	}
	suite.mockMemorandumService.On("Validate", mock.Anything, memoID, domain.Level2, domain.ActionApproved, suite.reviewer.Actor(), "ok").
		Return(updated, nil).Once()

	w := suite.do(http.MethodPost, fmt.Sprintf("/api/v1/memorandums/%s/validations", memoID), `{"level":2,"action":"approved","comment":"ok"}`)

	suite.Equal(http.StatusOK, w.Code)
	var res dto.MemorandumResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &res))
	suite.Equal(domain.StatusLevel3Pending, res.Status)
	suite.Require().NotNil(res.NextExpectedLevel)
	suite.Equal(3, *res.NextExpectedLevel)
	suite.Len(res.ValidationHistory, 2)
	suite.mockMemorandumService.AssertExpectations(suite.T())
}

func (suite *MemorandumHandlerTestSuite) TestValidate_ErrorMapping() {
	memoID := uuid.NewString()
	cases := []struct {
		name   string
		err    error
		status int
		kind   string
	}{
		{"level mismatch", fmt.Errorf("%w: memorandum awaits level 1, not level 2", apperrors.ErrLevelMismatch), http.StatusConflict, "business_rule"},
		{"already decided", fmt.Errorf("%w: memorandum is approved", apperrors.ErrInvalidStateTransition), http.StatusConflict, "business_rule"},
		{"role not allowed", apperrors.NewForbiddenError("role gestionnaire may not validate at level 3"), http.StatusForbidden, "business_rule"},
		{"missing memorandum", apperrors.NewNotFoundError("memorandum not found"), http.StatusNotFound, "business_rule"},
		{"rejection without comment", fmt.Errorf("%w: a rejection needs a comment", apperrors.ErrValidation), http.StatusBadRequest, "business_rule"},
		{"store down", apperrors.NewPersistenceError("failed to record validation", errors.New("dial tcp: connection refused")), http.StatusServiceUnavailable, "system"},
	}

	for _, tc := range cases {
		suite.Run(tc.name, func() {
			suite.SetupTest()
			suite.expectReviewer()
			suite.mockMemorandumService.On("Validate", mock.Anything, memoID, domain.Level2, domain.ActionApproved, suite.reviewer.Actor(), "").
				Return(nil, tc.err).Once()

			w := suite.do(http.MethodPost, "/api/v1/memorandums/"+memoID+"/validations", `{"level":2,"action":"approved"}`)

			suite.Equal(tc.status, w.Code)
			body := suite.decodeError(w)
			suite.Equal(tc.kind, body.Kind)
			if tc.kind == "system" {
				suite.NotContains(body.Error, "connection refused")
				suite.Equal("failed to record validation", body.Error)
			}
		})
	}
}

func (suite *MemorandumHandlerTestSuite) TestValidate_InvalidBody() {
	memoID := uuid.NewString()

	for _, body := range []string{
		`{"level":4,"action":"approved"}`,
		`{"level":1,"action":"maybe"}`,
		`{"action":"approved"}`,
		`not json`,
	} {
		w := suite.do(http.MethodPost, "/api/v1/memorandums/"+memoID+"/validations", body)
		suite.Equal(http.StatusBadRequest, w.Code, body)
	}
	suite.mockMemorandumService.AssertNotCalled(suite.T(), "Validate")
}

func (suite *MemorandumHandlerTestSuite) TestValidate_DeletedEmployee() {
	suite.mockEmployeeService.On("GetEmployeeByID", mock.Anything, suite.reviewer.EmployeeID).
		Return(nil, apperrors.NewNotFoundError("employee not found")).Once()

	w := suite.do(http.MethodPost, "/api/v1/memorandums/"+uuid.NewString()+"/validations", `{"level":1,"action":"approved"}`)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockMemorandumService.AssertNotCalled(suite.T(), "Validate")
}

func (suite *MemorandumHandlerTestSuite) TestMissingToken() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/memorandums", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockMemorandumService.AssertNotCalled(suite.T(), "ListMemoranda")
}

func (suite *MemorandumHandlerTestSuite) TestCreate_UsesCallerAsAuthor() {
	suite.expectReviewer()
	req := dto.CreateMemorandumRequest{
		Title:    "Fermeture exceptionnelle",
		Content:  "Les bureaux seront fermés vendredi.",
		Category: domain.CategoryInformation,
	}
	created := &domain.Memorandum{
		MemorandumID:   uuid.NewString(),
		Title:          req.Title,
		Content:        req.Content,
		Category:       req.Category,
		Priority:       domain.PriorityMedium,
		AuthorID:       suite.reviewer.EmployeeID,
		AuthorName:     suite.reviewer.Name,
		TargetAudience: []string{domain.AudienceEveryone},
		Status:         domain.StatusLevel1Pending,
	}
	suite.mockMemorandumService.On("CreateMemorandum", mock.Anything, req, suite.reviewer.Actor()).Return(created, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/memorandums",
		`{"title":"Fermeture exceptionnelle","content":"Les bureaux seront fermés vendredi.","category":"information"}`)

	suite.Equal(http.StatusCreated, w.Code)
	var res dto.MemorandumResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &res))
	suite.Equal(domain.StatusLevel1Pending, res.Status)
	suite.Equal(suite.reviewer.Name, res.AuthorName)
	suite.Require().NotNil(res.NextExpectedLevel)
	suite.Equal(1, *res.NextExpectedLevel)
	suite.mockMemorandumService.AssertExpectations(suite.T())
}

func (suite *MemorandumHandlerTestSuite) TestList_PassesFilterAndToken() {
	next := "opaque-token"
	memos := []domain.Memorandum{{MemorandumID: "m2", Status: domain.StatusApproved}, {MemorandumID: "m1", Status: domain.StatusApproved}}
	suite.mockMemorandumService.On("ListMemoranda", mock.Anything, mock.MatchedBy(func(p dto.ListMemorandaParams) bool {
		return p.Status == "approved" && p.Limit == 2 && p.NextToken == nil
	})).Return(memos, &next, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/memorandums?status=approved&limit=2", "")

	suite.Equal(http.StatusOK, w.Code)
	var res dto.ListMemorandaResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &res))
	suite.Len(res.Memoranda, 2)
	suite.Require().NotNil(res.NextToken)
	suite.Equal(next, *res.NextToken)
}

func (suite *MemorandumHandlerTestSuite) TestList_UnknownStatus() {
	suite.mockMemorandumService.On("ListMemoranda", mock.Anything, mock.Anything).
		Return(nil, nil, fmt.Errorf("%w: unknown status \"archived\"", apperrors.ErrValidation)).Once()

	w := suite.do(http.MethodGet, "/api/v1/memorandums?status=archived", "")

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("business_rule", suite.decodeError(w).Kind)
}

func (suite *MemorandumHandlerTestSuite) TestReviewQueue() {
	suite.mockMemorandumService.On("ListReviewQueue", mock.Anything, domain.Level2).
		Return([]domain.Memorandum{{MemorandumID: "m1", Status: domain.StatusLevel2Pending}}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/memorandums/review-queue/2", "")

	suite.Equal(http.StatusOK, w.Code)
	var res dto.ListMemorandaResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &res))
	suite.Len(res.Memoranda, 1)
	suite.Nil(res.NextToken)

	w = suite.do(http.MethodGet, "/api/v1/memorandums/review-queue/two", "")
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *MemorandumHandlerTestSuite) TestHistory_EmptyIsArray() {
	memoID := uuid.NewString()
	suite.mockMemorandumService.On("GetValidationHistory", mock.Anything, memoID).Return([]domain.ValidationStep{}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/memorandums/"+memoID+"/validations", "")

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`[]`, w.Body.String())
}

func (suite *MemorandumHandlerTestSuite) TestDelete() {
	suite.expectReviewer()
	memoID := uuid.NewString()
	suite.mockMemorandumService.On("DeleteMemorandum", mock.Anything, memoID, suite.reviewer.Actor()).Return(nil).Once()

	w := suite.do(http.MethodDelete, "/api/v1/memorandums/"+memoID, "")

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockMemorandumService.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestMemorandumHandler(t *testing.T) {
	suite.Run(t, new(MemorandumHandlerTestSuite))
}
