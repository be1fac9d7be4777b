package domain_test

import (
	"testing"

	"github.com/SscSPs/hr_memo_app/internal/apperrors"
	"github.com/SscSPs/hr_memo_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextStatus_TransitionTable(t *testing.T) {
	tests := []struct {
		name    string
		current domain.MemorandumStatus
		level   domain.ValidationLevel
		action  domain.ValidationAction
		want    domain.MemorandumStatus
	}{
		{"level 1 approved", domain.StatusLevel1Pending, domain.Level1, domain.ActionApproved, domain.StatusLevel2Pending},
		{"level 1 rejected", domain.StatusLevel1Pending, domain.Level1, domain.ActionRejected, domain.StatusRejected},
		{"level 2 approved", domain.StatusLevel2Pending, domain.Level2, domain.ActionApproved, domain.StatusLevel3Pending},
		{"level 2 rejected", domain.StatusLevel2Pending, domain.Level2, domain.ActionRejected, domain.StatusRejected},
		{"level 3 approved", domain.StatusLevel3Pending, domain.Level3, domain.ActionApproved, domain.StatusApproved},
		{"level 3 rejected", domain.StatusLevel3Pending, domain.Level3, domain.ActionRejected, domain.StatusRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.NextStatus(tt.current, tt.level, tt.action)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNextStatus_LevelMismatch(t *testing.T) {
	statuses := []domain.MemorandumStatus{
		domain.StatusDraft, domain.StatusLevel1Pending, domain.StatusLevel2Pending, domain.StatusLevel3Pending,
	}
	for _, status := range statuses {
		for level := domain.Level1; level <= domain.Level3; level++ {
			pending, ok := status.PendingLevel()
			if ok && pending == level {
				continue
			}
			_, err := domain.NextStatus(status, level, domain.ActionApproved)
			assert.ErrorIs(t, err, apperrors.ErrLevelMismatch, "status %s level %d", status, level)
		}
	}
}

func TestNextStatus_TerminalStates(t *testing.T) {
	for _, status := range []domain.MemorandumStatus{domain.StatusApproved, domain.StatusRejected} {
		for level := domain.Level1; level <= domain.Level3; level++ {
			_, err := domain.NextStatus(status, level, domain.ActionApproved)
			assert.ErrorIs(t, err, apperrors.ErrInvalidStateTransition)
		}
	}
}

func TestNextStatus_InvalidInput(t *testing.T) {
	_, err := domain.NextStatus(domain.StatusLevel1Pending, 4, domain.ActionApproved)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = domain.NextStatus(domain.StatusLevel1Pending, domain.Level1, "maybe")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

// Walking the approval chain only ever moves forward.
func TestNextStatus_MonotonicProgression(t *testing.T) {
	order := map[domain.MemorandumStatus]int{
		domain.StatusLevel1Pending: 1,
		domain.StatusLevel2Pending: 2,
		domain.StatusLevel3Pending: 3,
		domain.StatusApproved:      4,
	}

	status := domain.StatusLevel1Pending
	for level := domain.Level1; level <= domain.Level3; level++ {
		next, err := domain.NextStatus(status, level, domain.ActionApproved)
		require.NoError(t, err)
		assert.Greater(t, order[next], order[status])
		status = next
	}
	assert.Equal(t, domain.StatusApproved, status)
}

func TestMemorandum_NextExpectedLevel(t *testing.T) {
	memo := domain.Memorandum{Status: domain.StatusLevel1Pending}
	level, ok := memo.NextExpectedLevel()
	assert.True(t, ok)
	assert.Equal(t, domain.Level1, level)

	memo.Status = domain.StatusLevel3Pending
	memo.ValidationHistory = make([]domain.ValidationStep, 2)
	level, ok = memo.NextExpectedLevel()
	assert.True(t, ok)
	assert.Equal(t, domain.Level3, level)

	memo.Status = domain.StatusRejected
	_, ok = memo.NextExpectedLevel()
	assert.False(t, ok)
}

func TestLevelPermissions_Default(t *testing.T) {
	perms := domain.DefaultLevelPermissions()
	require.NoError(t, perms.Validate())

	assert.True(t, perms.Allows(domain.Level1, domain.RoleRH))
	assert.True(t, perms.Allows(domain.Level1, domain.RoleGestionnaire))
	assert.True(t, perms.Allows(domain.Level1, domain.RoleAdmin))
	assert.False(t, perms.Allows(domain.Level1, domain.RoleAgent))

	assert.False(t, perms.Allows(domain.Level2, domain.RoleRH))
	assert.True(t, perms.Allows(domain.Level2, domain.RoleGestionnaire))

	assert.False(t, perms.Allows(domain.Level3, domain.RoleGestionnaire))
	assert.True(t, perms.Allows(domain.Level3, domain.RoleAdmin))

	assert.Equal(t, []domain.ValidationLevel{domain.Level1, domain.Level2}, perms.LevelsFor(domain.RoleGestionnaire))
	assert.Empty(t, perms.LevelsFor(domain.RoleAgent))
}

func TestLevelPermissions_Validate(t *testing.T) {
	missing := domain.LevelPermissions{domain.Level1: {domain.RoleAdmin}}
	assert.ErrorIs(t, missing.Validate(), apperrors.ErrValidation)

	badRole := domain.DefaultLevelPermissions()
	badRole[domain.Level2] = []domain.Role{"director"}
	assert.ErrorIs(t, badRole.Validate(), apperrors.ErrValidation)

	badLevel := domain.DefaultLevelPermissions()
	badLevel[7] = []domain.Role{domain.RoleAdmin}
	assert.ErrorIs(t, badLevel.Validate(), apperrors.ErrValidation)
}
