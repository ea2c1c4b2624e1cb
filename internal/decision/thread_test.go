package decision

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/expensewire/report-actions/internal/models"
)

func threadFixture() (*models.Report, *models.Report, *models.Transaction) {
	parent := &models.Report{
		ID:             "r1",
		Type:           models.ReportTypeExpense,
		State:          models.ReportStateProcessing,
		OwnerAccountID: currentUser,
	}
	thread := &models.Report{
		ID:             "thread1",
		Type:           models.ReportTypeChat,
		ParentReportID: "r1",
	}
	tx := &models.Transaction{
		ID:             "t1",
		ReportID:       "r1",
		Amount:         1200,
		ThreadReportID: "thread1",
	}
	return thread, parent, tx
}

func TestThreadActionRemoveHold(t *testing.T) {
	thread, parent, tx := threadFixture()
	tx.OnHold = true
	tx.HoldActorAccountID = currentUser

	action := GetTransactionThreadPrimaryAction(thread, parent, tx, nil, nil, currentUser)
	assert.Equal(t, ThreadActionRemoveHold, action)
}

func TestThreadActionRemoveHoldRequiresCreator(t *testing.T) {
	thread, parent, tx := threadFixture()
	tx.OnHold = true
	tx.HoldActorAccountID = 99

	action := GetTransactionThreadPrimaryAction(thread, parent, tx, nil, nil, currentUser)
	assert.Equal(t, ThreadActionNone, action)
}

func TestThreadActionRemoveHoldScopedToThread(t *testing.T) {
	thread, parent, tx := threadFixture()
	tx.OnHold = true
	tx.HoldActorAccountID = currentUser
	tx.ThreadReportID = "otherThread"

	action := GetTransactionThreadPrimaryAction(thread, parent, tx, nil, nil, currentUser)
	assert.Equal(t, ThreadActionNone, action)
}

func TestThreadActionReviewDuplicates(t *testing.T) {
	thread, parent, tx := threadFixture()
	tx.DuplicateSuspect = true

	action := GetTransactionThreadPrimaryAction(thread, parent, tx, nil, nil, currentUser)
	assert.Equal(t, ThreadActionReviewDuplicates, action)

	// a terminal parent no longer offers the review
	parent.State = models.ReportStateApproved
	action = GetTransactionThreadPrimaryAction(thread, parent, tx, nil, nil, currentUser)
	assert.Equal(t, ThreadActionNone, action)
}

func TestThreadActionHoldBeatsDuplicate(t *testing.T) {
	thread, parent, tx := threadFixture()
	tx.OnHold = true
	tx.HoldActorAccountID = currentUser
	tx.DuplicateSuspect = true

	action := GetTransactionThreadPrimaryAction(thread, parent, tx, nil, nil, currentUser)
	assert.Equal(t, ThreadActionRemoveHold, action)
}

func TestThreadActionMarkAsCash(t *testing.T) {
	thread, parent, tx := threadFixture()
	violations := models.ViolationMap{
		"t1": {{Name: models.ViolationRTER, Pending: true}},
	}

	action := GetTransactionThreadPrimaryAction(thread, parent, tx, violations, nil, currentUser)
	assert.Equal(t, ThreadActionMarkAsCash, action)
}

func TestThreadActionMarkAsCashBrokenConnection(t *testing.T) {
	thread, parent, tx := threadFixture()
	violations := models.ViolationMap{
		"t1": {{Name: models.ViolationBrokenConnection}},
	}
	policy := &models.Policy{ID: "p1", Role: models.PolicyRoleAdmin}

	action := GetTransactionThreadPrimaryAction(thread, parent, tx, violations, policy, currentUser)
	assert.Equal(t, ThreadActionMarkAsCash, action)
}

func TestThreadActionNilInputs(t *testing.T) {
	thread, parent, tx := threadFixture()

	assert.Equal(t, ThreadActionNone, GetTransactionThreadPrimaryAction(nil, parent, tx, nil, nil, currentUser))
	assert.Equal(t, ThreadActionNone, GetTransactionThreadPrimaryAction(thread, parent, nil, nil, nil, currentUser))
	assert.Equal(t, ThreadActionNone, GetTransactionThreadPrimaryAction(thread, nil, tx, nil, nil, currentUser))
}
