package dto_test

import (
	"testing"

	"github.com/SscSPs/hr_memo_app/internal/core/domain"
	"github.com/SscSPs/hr_memo_app/internal/dto"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBindingValidator(t *testing.T) *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	require.NoError(t, dto.RegisterValidators(v))
	return v
}

func TestCreateMemorandumRequestValidation(t *testing.T) {
	v := newBindingValidator(t)

	valid := dto.CreateMemorandumRequest{Title: "Budget Q3", Content: "...", Category: domain.CategoryDirective}
	assert.NoError(t, v.Struct(valid))

	badCategory := valid
	badCategory.Category = "gossip"
	assert.Error(t, v.Struct(badCategory))

	badPriority := valid
	badPriority.Priority = "critical"
	assert.Error(t, v.Struct(badPriority))
}

func TestValidateMemorandumRequestValidation(t *testing.T) {
	v := newBindingValidator(t)

	assert.NoError(t, v.Struct(dto.ValidateMemorandumRequest{Level: 2, Action: domain.ActionRejected, Comment: "no"}))
	assert.Error(t, v.Struct(dto.ValidateMemorandumRequest{Level: 4, Action: domain.ActionApproved}))
	assert.Error(t, v.Struct(dto.ValidateMemorandumRequest{Level: 1, Action: "maybe"}))
}

func TestUpdateEmployeeRequestValidation(t *testing.T) {
	v := newBindingValidator(t)

	role := domain.RoleGestionnaire
	assert.NoError(t, v.Struct(dto.UpdateEmployeeRequest{Role: &role}))

	bad := domain.Role("director")
	assert.Error(t, v.Struct(dto.UpdateEmployeeRequest{Role: &bad}))
	assert.NoError(t, v.Struct(dto.UpdateEmployeeRequest{}))
}

func TestToMemorandumResponse_NextExpectedLevel(t *testing.T) {
	memo := domain.Memorandum{
		MemorandumID: "m-1",
		Status:       domain.StatusLevel2Pending,
		ValidationHistory: []domain.ValidationStep{
			{StepID: "s-1", Level: domain.Level1, Action: domain.ActionApproved},
		},
	}

	res := dto.ToMemorandumResponse(&memo)
	require.NotNil(t, res.NextExpectedLevel)
	assert.Equal(t, 2, *res.NextExpectedLevel)
	assert.Len(t, res.ValidationHistory, 1)

	memo.Status = domain.StatusApproved
	assert.Nil(t, dto.ToMemorandumResponse(&memo).NextExpectedLevel)
}
