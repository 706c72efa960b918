package services

import (
	"errors"
	"testing"

	"applicant-review-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopMailer struct{}

func (nopMailer) Send([]string, string, string) error { return nil }

type recordingMailer struct {
	recipients []string
	subjects   []string
	err        error
}

func (m *recordingMailer) Send(to []string, subject, _ string) error {
	m.recipients = append(m.recipients, to...)
	m.subjects = append(m.subjects, subject)
	return m.err
}

func TestSetAdminDecisionLifecycle(t *testing.T) {
	db := newTestDB(t)
	applicant := createApplicant(t, db, "ext-1", "Applicant One", models.CategoryRegular)

	svc := NewSelectionServiceWithMailer(db, nopMailer{})

	// Finalizing sets decided_at
	selection, err := svc.SetAdminDecision(applicant.ApplicantID, models.AdminDecisionSelected, strPtr("excellent scores"))
	require.NoError(t, err)
	assert.Equal(t, models.AdminDecisionSelected, selection.AdminDecision)
	require.NotNil(t, selection.DecidedAt)
	require.NotNil(t, selection.SelectionReason)
	assert.Equal(t, "excellent scores", *selection.SelectionReason)

	// Resetting to Pending clears it
	selection, err = svc.SetAdminDecision(applicant.ApplicantID, models.AdminDecisionPending, nil)
	require.NoError(t, err)
	assert.Nil(t, selection.DecidedAt)
	assert.False(t, selection.IsFinalized())

	// Only one row ever exists per applicant
	var count int64
	require.NoError(t, db.Model(&models.FinalSelection{}).
		Where("applicant_id = ?", applicant.ApplicantID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSetAdminDecisionValidation(t *testing.T) {
	db := newTestDB(t)
	applicant := createApplicant(t, db, "ext-1", "Applicant One", models.CategoryRegular)

	svc := NewSelectionServiceWithMailer(db, nopMailer{})

	_, err := svc.SetAdminDecision(applicant.ApplicantID, "Waitlisted", nil)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.SetAdminDecision(999, models.AdminDecisionSelected, nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetAdminDecisionNotifiesReviewers(t *testing.T) {
	db := newTestDB(t)
	applicant := createApplicant(t, db, "ext-1", "Applicant One", models.CategoryRegular)
	createReviewer(t, db, "A", "a@example.com", false)
	createReviewer(t, db, "B", "", false) // no email, never a recipient

	reviewSvc := NewReviewService(db)
	_, err := reviewSvc.UpsertReview(applicant.ApplicantID, "A", ReviewPatch{
		Decision: strPtr(models.DecisionDefinitelyInterview),
	})
	require.NoError(t, err)
	_, err = reviewSvc.UpsertReview(applicant.ApplicantID, "B", ReviewPatch{
		Decision: strPtr(models.DecisionMaybe),
	})
	require.NoError(t, err)

	mailer := &recordingMailer{}
	svc := NewSelectionServiceWithMailer(db, mailer)

	_, err = svc.SetAdminDecision(applicant.ApplicantID, models.AdminDecisionSelected, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"a@example.com"}, mailer.recipients)
	require.Len(t, mailer.subjects, 1)
	assert.Contains(t, mailer.subjects[0], "Applicant One")

	// Back to Pending sends nothing
	mailer.recipients = nil
	_, err = svc.SetAdminDecision(applicant.ApplicantID, models.AdminDecisionPending, nil)
	require.NoError(t, err)
	assert.Empty(t, mailer.recipients)
}

func TestSetAdminDecisionSurvivesMailFailure(t *testing.T) {
	db := newTestDB(t)
	applicant := createApplicant(t, db, "ext-1", "Applicant One", models.CategoryRegular)
	createReviewer(t, db, "A", "a@example.com", false)

	reviewSvc := NewReviewService(db)
	_, err := reviewSvc.UpsertReview(applicant.ApplicantID, "A", ReviewPatch{
		Decision: strPtr(models.DecisionMaybe),
	})
	require.NoError(t, err)

	mailer := &recordingMailer{err: errors.New("smtp down")}
	svc := NewSelectionServiceWithMailer(db, mailer)

	// Notification failure never fails the decision write
	selection, err := svc.SetAdminDecision(applicant.ApplicantID, models.AdminDecisionNotSelected, nil)
	require.NoError(t, err)
	assert.Equal(t, models.AdminDecisionNotSelected, selection.AdminDecision)
}

func TestGetSelection(t *testing.T) {
	db := newTestDB(t)
	applicant := createApplicant(t, db, "ext-1", "Applicant One", models.CategoryRegular)

	svc := NewSelectionServiceWithMailer(db, nopMailer{})

	_, err := svc.GetSelection(applicant.ApplicantID)
	assert.ErrorIs(t, err, ErrNotFound)

	// A review write creates the selection as Pending
	_, err = NewReviewService(db).UpsertReview(applicant.ApplicantID, "A", ReviewPatch{
		PreferenceScore: intPtr(5),
	})
	require.NoError(t, err)

	selection, err := svc.GetSelection(applicant.ApplicantID)
	require.NoError(t, err)
	assert.Equal(t, models.AdminDecisionPending, selection.AdminDecision)
	assert.Equal(t, 1, selection.ReviewerCount)
	require.NotNil(t, selection.Applicant)
	assert.Equal(t, "ext-1", selection.Applicant.ExternalID)

	selections, err := svc.ListSelections()
	require.NoError(t, err)
	assert.Len(t, selections, 1)
}
