package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/hr_memo_app/internal/apperrors"
	"github.com/SscSPs/hr_memo_app/internal/core/domain"
	portsrepo "github.com/SscSPs/hr_memo_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/hr_memo_app/internal/core/ports/services"
	"github.com/SscSPs/hr_memo_app/internal/core/services"
	"github.com/SscSPs/hr_memo_app/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

var fixedNow = time.Date(2026, 5, 4, 10, 30, 0, 0, time.UTC)

var (
	adminActor   = domain.Actor{ID: "emp-admin", Name: "Awa Admin", Role: domain.RoleAdmin}
	rhActor      = domain.Actor{ID: "emp-rh", Name: "Rita RH", Role: domain.RoleRH}
	managerActor = domain.Actor{ID: "emp-gest", Name: "Guy Gestionnaire", Role: domain.RoleGestionnaire}
	agentActor   = domain.Actor{ID: "emp-agent", Name: "Ali Agent", Role: domain.RoleAgent}
)

func pendingMemo(status domain.MemorandumStatus, history ...domain.ValidationStep) *domain.Memorandum {
	if history == nil {
		history = []domain.ValidationStep{}
	}
	return &domain.Memorandum{
		MemorandumID:      uuid.NewString(),
		Title:             "Budget Q3",
		Content:           "Spending freeze until further notice.",
		Category:          domain.CategoryDirective,
		Priority:          domain.PriorityHigh,
		AuthorID:          agentActor.ID,
		AuthorName:        agentActor.Name,
		TargetAudience:    []string{domain.AudienceEveryone},
		Status:            status,
		ValidationHistory: history,
		AuditFields:       domain.NewAuditFields(agentActor.ID, fixedNow.Add(-time.Hour)),
	}
}

// --- Test Suite ---
type MemorandumServiceTestSuite struct {
	suite.Suite
	mockRepo   *MockMemorandumRepository
	mockEvents *MockEventTracker
	service    portssvc.MemorandumSvcFacade
}

func (suite *MemorandumServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockMemorandumRepository)
	suite.mockEvents = new(MockEventTracker)
	suite.service = services.NewMemorandumService(suite.mockRepo,
		services.WithClock(func() time.Time { return fixedNow }),
		services.WithEventTracker(suite.mockEvents),
	)
}

func TestMemorandumServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MemorandumServiceTestSuite))
}

// --- CreateMemorandum Tests ---
func (suite *MemorandumServiceTestSuite) TestCreateMemorandum_Success() {
	ctx := context.Background()
	req := dto.CreateMemorandumRequest{
		Title:    "  Budget Q3 ",
		Content:  "Spending freeze.",
		Category: domain.CategoryDirective,
	}

	suite.mockRepo.On("SaveMemorandum", ctx, mock.MatchedBy(func(m domain.Memorandum) bool {
		return m.Status == domain.StatusLevel1Pending && m.Title == "Budget Q3" && len(m.ValidationHistory) == 0
	})).Return(nil).Once()
	suite.mockEvents.On("Enqueue", agentActor.ID, "memorandum_created", mock.Anything).Once()

	memo, err := suite.service.CreateMemorandum(ctx, req, agentActor)

	suite.Require().NoError(err)
	suite.Require().NotNil(memo)
	suite.NotEmpty(memo.MemorandumID)
	suite.Equal(domain.StatusLevel1Pending, memo.Status)
	suite.Empty(memo.ValidationHistory)
	suite.Equal(domain.PriorityMedium, memo.Priority)
	suite.Equal([]string{domain.AudienceEveryone}, memo.TargetAudience)
	suite.Equal(agentActor.ID, memo.AuthorID)
	suite.Equal(agentActor.Name, memo.AuthorName)
	suite.Equal(fixedNow, memo.CreatedAt)

	lvl, ok := memo.NextExpectedLevel()
	suite.True(ok)
	suite.Equal(domain.Level1, lvl)

	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockEvents.AssertExpectations(suite.T())
}

func (suite *MemorandumServiceTestSuite) TestCreateMemorandum_InvalidCategory() {
	req := dto.CreateMemorandumRequest{Title: "t", Content: "c", Category: "memo"}

	memo, err := suite.service.CreateMemorandum(context.Background(), req, agentActor)

	suite.Nil(memo)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveMemorandum", mock.Anything, mock.Anything)
}

func (suite *MemorandumServiceTestSuite) TestCreateMemorandum_SaveErrorIsPersistenceFailure() {
	ctx := context.Background()
	req := dto.CreateMemorandumRequest{Title: "t", Content: "c", Category: domain.CategoryRappel}
	suite.mockRepo.On("SaveMemorandum", ctx, mock.AnythingOfType("domain.Memorandum")).Return(assert.AnError).Once()

	memo, err := suite.service.CreateMemorandum(ctx, req, agentActor)

	suite.Nil(memo)
	suite.ErrorIs(err, apperrors.ErrPersistence)
	suite.ErrorIs(err, assert.AnError)
	suite.False(apperrors.IsBusinessRule(err))
	suite.mockEvents.AssertNotCalled(suite.T(), "Enqueue", mock.Anything, mock.Anything, mock.Anything)
}

// --- Validate Tests ---
func (suite *MemorandumServiceTestSuite) TestValidate_ApproveLevel1() {
	memo := pendingMemo(domain.StatusLevel1Pending)
	updated := *memo
	updated.Status = domain.StatusLevel2Pending
	updated.ValidationHistory = []domain.ValidationStep{{Level: domain.Level1, Action: domain.ActionApproved, ValidatorID: rhActor.ID}}

	suite.mockRepo.On("FindMemorandumByID", mock.Anything, memo.MemorandumID).Return(memo, nil).Once()
	suite.mockRepo.On("RecordValidation", mock.Anything, memo.MemorandumID, domain.StatusLevel1Pending, domain.StatusLevel2Pending,
		mock.MatchedBy(func(step domain.ValidationStep) bool {
			return step.Level == domain.Level1 &&
				step.ValidatorID == rhActor.ID &&
				step.ValidatorName == rhActor.Name &&
				step.ValidatorRole == domain.RoleRH &&
				step.Action == domain.ActionApproved &&
				step.Timestamp.Equal(fixedNow) &&
				step.StepID != ""
		}), fixedNow).Return(nil).Once()
	suite.mockRepo.On("FindMemorandumByID", mock.Anything, memo.MemorandumID).Return(&updated, nil).Once()
	suite.mockEvents.On("Enqueue", rhActor.ID, "memorandum_validated", mock.Anything).Once()

	result, err := suite.service.Validate(context.Background(), memo.MemorandumID, domain.Level1, domain.ActionApproved, rhActor, "")

	suite.Require().NoError(err)
	suite.Equal(domain.StatusLevel2Pending, result.Status)
	suite.Len(result.ValidationHistory, 1)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockEvents.AssertExpectations(suite.T())
}

func (suite *MemorandumServiceTestSuite) TestValidate_NotFound() {
	suite.mockRepo.On("FindMemorandumByID", mock.Anything, "missing").Return(nil, apperrors.ErrNotFound).Once()

	result, err := suite.service.Validate(context.Background(), "missing", domain.Level1, domain.ActionApproved, rhActor, "")

	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "RecordValidation", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// The check order is: existence, terminal state, level, role, comment.
func (suite *MemorandumServiceTestSuite) TestValidate_CheckOrder() {
	tests := []struct {
		name      string
		status    domain.MemorandumStatus
		level     domain.ValidationLevel
		action    domain.ValidationAction
		validator domain.Actor
		comment   string
		wantErr   error
	}{
		{"terminal before role", domain.StatusApproved, domain.Level3, domain.ActionApproved, agentActor, "", apperrors.ErrInvalidStateTransition},
		{"terminal before level", domain.StatusRejected, domain.Level1, domain.ActionApproved, adminActor, "", apperrors.ErrInvalidStateTransition},
		{"level before role", domain.StatusLevel1Pending, domain.Level2, domain.ActionApproved, agentActor, "", apperrors.ErrLevelMismatch},
		{"repeat level", domain.StatusLevel2Pending, domain.Level1, domain.ActionApproved, adminActor, "", apperrors.ErrLevelMismatch},
		{"draft has no pending level", domain.StatusDraft, domain.Level1, domain.ActionApproved, adminActor, "", apperrors.ErrLevelMismatch},
		{"role before comment", domain.StatusLevel1Pending, domain.Level1, domain.ActionRejected, agentActor, "", apperrors.ErrUnauthorized},
		{"rh cannot decide level 2", domain.StatusLevel2Pending, domain.Level2, domain.ActionApproved, rhActor, "", apperrors.ErrUnauthorized},
		{"gestionnaire cannot decide level 3", domain.StatusLevel3Pending, domain.Level3, domain.ActionApproved, managerActor, "", apperrors.ErrUnauthorized},
		{"rejection needs comment", domain.StatusLevel1Pending, domain.Level1, domain.ActionRejected, rhActor, "   ", apperrors.ErrValidation},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.SetupTest()
			memo := pendingMemo(tt.status)
			suite.mockRepo.On("FindMemorandumByID", mock.Anything, memo.MemorandumID).Return(memo, nil).Once()

			result, err := suite.service.Validate(context.Background(), memo.MemorandumID, tt.level, tt.action, tt.validator, tt.comment)

			suite.Nil(result)
			suite.ErrorIs(err, tt.wantErr)
			suite.True(apperrors.IsBusinessRule(err))
			suite.mockRepo.AssertNotCalled(suite.T(), "RecordValidation", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func (suite *MemorandumServiceTestSuite) TestValidate_RejectionCommentOptional() {
	service := services.NewMemorandumService(suite.mockRepo,
		services.WithClock(func() time.Time { return fixedNow }),
		services.WithRejectionCommentRequired(false),
	)
	memo := pendingMemo(domain.StatusLevel1Pending)
	rejected := *memo
	rejected.Status = domain.StatusRejected

	suite.mockRepo.On("FindMemorandumByID", mock.Anything, memo.MemorandumID).Return(memo, nil).Once()
	suite.mockRepo.On("RecordValidation", mock.Anything, memo.MemorandumID, domain.StatusLevel1Pending, domain.StatusRejected, mock.Anything, fixedNow).Return(nil).Once()
	suite.mockRepo.On("FindMemorandumByID", mock.Anything, memo.MemorandumID).Return(&rejected, nil).Once()

	result, err := service.Validate(context.Background(), memo.MemorandumID, domain.Level1, domain.ActionRejected, rhActor, "")

	suite.Require().NoError(err)
	suite.Equal(domain.StatusRejected, result.Status)
}

func (suite *MemorandumServiceTestSuite) TestValidate_CustomPermissions() {
	perms := domain.LevelPermissions{
		domain.Level1: {domain.RoleAgent},
		domain.Level2: {domain.RoleAdmin},
		domain.Level3: {domain.RoleAdmin},
	}
	service := services.NewMemorandumService(suite.mockRepo, services.WithLevelPermissions(perms))
	memo := pendingMemo(domain.StatusLevel1Pending)
	suite.mockRepo.On("FindMemorandumByID", mock.Anything, memo.MemorandumID).Return(memo, nil).Once()

	_, err := service.Validate(context.Background(), memo.MemorandumID, domain.Level1, domain.ActionApproved, rhActor, "")

	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.Equal([]domain.ValidationLevel{domain.Level1}, service.AllowedLevels(domain.RoleAgent))
}

func (suite *MemorandumServiceTestSuite) TestValidate_LostRaceIsClassified() {
	tests := []struct {
		name        string
		afterStatus domain.MemorandumStatus
		wantErr     error
	}{
		{"other reviewer approved", domain.StatusLevel2Pending, apperrors.ErrLevelMismatch},
		{"other reviewer rejected", domain.StatusRejected, apperrors.ErrInvalidStateTransition},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.SetupTest()
			memo := pendingMemo(domain.StatusLevel1Pending)
			moved := *memo
			moved.Status = tt.afterStatus

			suite.mockRepo.On("FindMemorandumByID", mock.Anything, memo.MemorandumID).Return(memo, nil).Once()
			suite.mockRepo.On("RecordValidation", mock.Anything, memo.MemorandumID, domain.StatusLevel1Pending, domain.StatusLevel2Pending, mock.Anything, fixedNow).
				Return(apperrors.ErrStatusChanged).Once()
			suite.mockRepo.On("FindMemorandumByID", mock.Anything, memo.MemorandumID).Return(&moved, nil).Once()

			result, err := suite.service.Validate(context.Background(), memo.MemorandumID, domain.Level1, domain.ActionApproved, managerActor, "")

			suite.Nil(result)
			suite.ErrorIs(err, tt.wantErr)
			suite.NotErrorIs(err, apperrors.ErrStatusChanged)
			suite.mockEvents.AssertNotCalled(suite.T(), "Enqueue", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func (suite *MemorandumServiceTestSuite) TestValidate_StoreFailureIsPersistenceFailure() {
	memo := pendingMemo(domain.StatusLevel3Pending)
	suite.mockRepo.On("FindMemorandumByID", mock.Anything, memo.MemorandumID).Return(memo, nil).Once()
	suite.mockRepo.On("RecordValidation", mock.Anything, memo.MemorandumID, domain.StatusLevel3Pending, domain.StatusApproved, mock.Anything, fixedNow).
		Return(assert.AnError).Once()

	result, err := suite.service.Validate(context.Background(), memo.MemorandumID, domain.Level3, domain.ActionApproved, adminActor, "")

	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrPersistence)
	suite.False(apperrors.IsBusinessRule(err))
}

func (suite *MemorandumServiceTestSuite) TestValidate_ReloadFailureReturnsAppliedState() {
	memo := pendingMemo(domain.StatusLevel3Pending)
	suite.mockRepo.On("FindMemorandumByID", mock.Anything, memo.MemorandumID).Return(memo, nil).Once()
	suite.mockRepo.On("RecordValidation", mock.Anything, memo.MemorandumID, domain.StatusLevel3Pending, domain.StatusApproved, mock.Anything, fixedNow).Return(nil).Once()
	suite.mockRepo.On("FindMemorandumByID", mock.Anything, memo.MemorandumID).Return(nil, assert.AnError).Once()
	suite.mockEvents.On("Enqueue", adminActor.ID, "memorandum_validated", mock.Anything).Once()

	result, err := suite.service.Validate(context.Background(), memo.MemorandumID, domain.Level3, domain.ActionApproved, adminActor, "ok")

	suite.Require().NoError(err)
	suite.Equal(domain.StatusApproved, result.Status)
	suite.Require().Len(result.ValidationHistory, 1)
	suite.Equal("ok", result.ValidationHistory[0].Comment)
	suite.Empty(memo.ValidationHistory, "the loaded memorandum must not be mutated")
}

func (suite *MemorandumServiceTestSuite) TestValidate_RecordsSpanAndDecisionMetric() {
	reader := sdkmetric.NewManualReader()
	meterProvider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	recorder := tracetest.NewSpanRecorder()
	tracerProvider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	service := services.NewMemorandumService(suite.mockRepo,
		services.WithClock(func() time.Time { return fixedNow }),
		services.WithTelemetry(tracerProvider.Tracer("test"), meterProvider.Meter("test")),
	)
	memo := pendingMemo(domain.StatusLevel1Pending)
	suite.mockRepo.On("FindMemorandumByID", mock.Anything, memo.MemorandumID).Return(memo, nil)

	_, err := service.Validate(context.Background(), memo.MemorandumID, domain.Level1, domain.ActionApproved, agentActor, "")
	suite.Require().ErrorIs(err, apperrors.ErrUnauthorized)

	spans := recorder.Ended()
	suite.Require().Len(spans, 1)
	suite.Equal("memorandum.validate", spans[0].Name())
	suite.Equal(codes.Error, spans[0].Status().Code)

	var rm metricdata.ResourceMetrics
	suite.Require().NoError(reader.Collect(context.Background(), &rm))
	suite.Require().Len(rm.ScopeMetrics, 1)
	suite.Require().Len(rm.ScopeMetrics[0].Metrics, 1)
	metric := rm.ScopeMetrics[0].Metrics[0]
	suite.Equal("memo.validation.decisions", metric.Name)
	sum, ok := metric.Data.(metricdata.Sum[int64])
	suite.Require().True(ok)
	suite.Require().Len(sum.DataPoints, 1)
	suite.EqualValues(1, sum.DataPoints[0].Value)
	outcome, _ := sum.DataPoints[0].Attributes.Value(attribute.Key("outcome"))
	suite.Equal("rejected_rule", outcome.AsString())
}

// --- Update / Delete Tests ---
func (suite *MemorandumServiceTestSuite) TestUpdateMemorandum_Success() {
	ctx := context.Background()
	memo := pendingMemo(domain.StatusLevel2Pending)
	title := "Budget Q4"
	priority := domain.PriorityLow

	suite.mockRepo.On("FindMemorandumByID", ctx, memo.MemorandumID).Return(memo, nil).Once()
	suite.mockRepo.On("UpdateMemorandumContent", ctx, mock.MatchedBy(func(m domain.Memorandum) bool {
		return m.Title == title && m.Priority == priority && m.Status == domain.StatusLevel2Pending && m.LastUpdatedBy == agentActor.ID
	})).Return(nil).Once()

	updated, err := suite.service.UpdateMemorandum(ctx, memo.MemorandumID, dto.UpdateMemorandumRequest{Title: &title, Priority: &priority}, agentActor)

	suite.Require().NoError(err)
	suite.Equal(title, updated.Title)
	suite.Equal(memo.Content, updated.Content)
	suite.Equal("Budget Q3", memo.Title, "the loaded memorandum must not be mutated")
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *MemorandumServiceTestSuite) TestUpdateMemorandum_Refusals() {
	title := "new"
	tests := []struct {
		name    string
		status  domain.MemorandumStatus
		actor   domain.Actor
		wantErr error
	}{
		{"terminal approved", domain.StatusApproved, agentActor, apperrors.ErrInvalidStateTransition},
		{"terminal rejected", domain.StatusRejected, adminActor, apperrors.ErrInvalidStateTransition},
		{"not the author", domain.StatusLevel1Pending, managerActor, apperrors.ErrUnauthorized},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.SetupTest()
			memo := pendingMemo(tt.status)
			suite.mockRepo.On("FindMemorandumByID", mock.Anything, memo.MemorandumID).Return(memo, nil).Once()

			updated, err := suite.service.UpdateMemorandum(context.Background(), memo.MemorandumID, dto.UpdateMemorandumRequest{Title: &title}, tt.actor)

			suite.Nil(updated)
			suite.ErrorIs(err, tt.wantErr)
			suite.mockRepo.AssertNotCalled(suite.T(), "UpdateMemorandumContent", mock.Anything, mock.Anything)
		})
	}
}

func (suite *MemorandumServiceTestSuite) TestUpdateMemorandum_DecidedConcurrently() {
	memo := pendingMemo(domain.StatusLevel3Pending)
	content := "edited"
	suite.mockRepo.On("FindMemorandumByID", mock.Anything, memo.MemorandumID).Return(memo, nil).Once()
	suite.mockRepo.On("UpdateMemorandumContent", mock.Anything, mock.Anything).Return(apperrors.ErrStatusChanged).Once()

	_, err := suite.service.UpdateMemorandum(context.Background(), memo.MemorandumID, dto.UpdateMemorandumRequest{Content: &content}, adminActor)

	suite.ErrorIs(err, apperrors.ErrInvalidStateTransition)
}

func (suite *MemorandumServiceTestSuite) TestUpdateMemorandum_EmptyPatch() {
	_, err := suite.service.UpdateMemorandum(context.Background(), "any", dto.UpdateMemorandumRequest{}, adminActor)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *MemorandumServiceTestSuite) TestDeleteMemorandum() {
	memo := pendingMemo(domain.StatusApproved)
	suite.mockRepo.On("FindMemorandumByID", mock.Anything, memo.MemorandumID).Return(memo, nil)
	suite.mockRepo.On("DeleteMemorandum", mock.Anything, memo.MemorandumID).Return(nil).Once()

	suite.ErrorIs(suite.service.DeleteMemorandum(context.Background(), memo.MemorandumID, rhActor), apperrors.ErrUnauthorized)
	suite.NoError(suite.service.DeleteMemorandum(context.Background(), memo.MemorandumID, agentActor))
	suite.mockRepo.AssertNumberOfCalls(suite.T(), "DeleteMemorandum", 1)
}

// --- Query Tests ---
func (suite *MemorandumServiceTestSuite) TestListReviewQueue() {
	ctx := context.Background()
	status := domain.StatusLevel2Pending
	expected := []domain.Memorandum{*pendingMemo(status)}
	suite.mockRepo.On("ListMemoranda", ctx, portsrepo.MemorandumFilter{Status: &status}).Return(expected, nil, nil).Once()

	memos, err := suite.service.ListReviewQueue(ctx, domain.Level2)

	suite.Require().NoError(err)
	suite.Equal(expected, memos)

	_, err = suite.service.ListReviewQueue(ctx, 4)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *MemorandumServiceTestSuite) TestListMemoranda_InvalidStatus() {
	_, _, err := suite.service.ListMemoranda(context.Background(), dto.ListMemorandaParams{Status: "pending"})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *MemorandumServiceTestSuite) TestListAll_NilBecomesEmpty() {
	ctx := context.Background()
	suite.mockRepo.On("ListMemoranda", ctx, portsrepo.MemorandumFilter{}).Return(nil, nil, nil).Once()

	memos, err := suite.service.ListAll(ctx)

	suite.Require().NoError(err)
	suite.NotNil(memos)
	suite.Empty(memos)
}

func (suite *MemorandumServiceTestSuite) TestGetValidationHistory_UnknownMemorandum() {
	ctx := context.Background()
	suite.mockRepo.On("FindValidationSteps", ctx, "missing").Return([]domain.ValidationStep{}, nil).Once()
	suite.mockRepo.On("FindMemorandumByID", ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	steps, err := suite.service.GetValidationHistory(ctx, "missing")

	suite.Nil(steps)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}
