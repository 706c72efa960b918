package services

import (
	"testing"

	"applicant-review-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullPatch(p, pr, u, l, a, r, pe int) ReviewPatch {
	return ReviewPatch{
		PreferenceScore:  intPtr(p),
		PressureScore:    intPtr(pr),
		UnderservedScore: intPtr(u),
		LeadershipScore:  intPtr(l),
		AcademicScore:    intPtr(a),
		ResearchScore:    intPtr(r),
		PersonalScore:    intPtr(pe),
	}
}

func TestUpsertReviewComputesTotalScore(t *testing.T) {
	db := newTestDB(t)
	applicant := createApplicant(t, db, "ext-1", "Applicant One", models.CategoryRegular)

	svc := NewReviewService(db)
	review, err := svc.UpsertReview(applicant.ApplicantID, "A", fullPatch(4, 3, 5, 4, 5, 3, 4))
	require.NoError(t, err)

	assert.Equal(t, 28, review.TotalScore)
	assert.Equal(t, review.ComputeTotalScore(), review.TotalScore)
}

func TestUpsertReviewPartialScoresCountNilAsZero(t *testing.T) {
	db := newTestDB(t)
	applicant := createApplicant(t, db, "ext-1", "Applicant One", models.CategoryRegular)

	svc := NewReviewService(db)
	review, err := svc.UpsertReview(applicant.ApplicantID, "A", ReviewPatch{
		PreferenceScore: intPtr(4),
		AcademicScore:   intPtr(5),
	})
	require.NoError(t, err)

	assert.Equal(t, 9, review.TotalScore)
	assert.Nil(t, review.PressureScore)
	assert.False(t, review.IsComplete())
}

func TestUpsertReviewFindsThenPatches(t *testing.T) {
	db := newTestDB(t)
	applicant := createApplicant(t, db, "ext-1", "Applicant One", models.CategoryRegular)

	svc := NewReviewService(db)

	first, err := svc.UpsertReview(applicant.ApplicantID, "A", ReviewPatch{
		PreferenceScore: intPtr(3),
		Notes:           strPtr("strong essay"),
	})
	require.NoError(t, err)

	second, err := svc.UpsertReview(applicant.ApplicantID, "A", ReviewPatch{
		Decision: strPtr(models.DecisionMaybe),
	})
	require.NoError(t, err)

	// Same row, merged fields
	assert.Equal(t, first.ReviewID, second.ReviewID)
	require.NotNil(t, second.PreferenceScore)
	assert.Equal(t, 3, *second.PreferenceScore)
	require.NotNil(t, second.Notes)
	assert.Equal(t, "strong essay", *second.Notes)
	assert.True(t, second.IsComplete())

	var count int64
	require.NoError(t, db.Model(&models.Review{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestUpsertReviewIdempotent(t *testing.T) {
	db := newTestDB(t)
	applicant := createApplicant(t, db, "ext-1", "Applicant One", models.CategoryRegular)

	svc := NewReviewService(db)
	patch := fullPatch(4, 3, 5, 4, 5, 3, 4)
	patch.Decision = strPtr(models.DecisionDefinitelyInterview)

	first, err := svc.UpsertReview(applicant.ApplicantID, "A", patch)
	require.NoError(t, err)
	second, err := svc.UpsertReview(applicant.ApplicantID, "A", patch)
	require.NoError(t, err)

	assert.Equal(t, first.ReviewID, second.ReviewID)
	assert.Equal(t, first.TotalScore, second.TotalScore)
	assert.Equal(t, *first.Decision, *second.Decision)
}

func TestUpsertReviewRejectsOutOfRangeScore(t *testing.T) {
	db := newTestDB(t)
	applicant := createApplicant(t, db, "ext-1", "Applicant One", models.CategoryRegular)

	svc := NewReviewService(db)

	_, err := svc.UpsertReview(applicant.ApplicantID, "A", ReviewPatch{PressureScore: intPtr(6)})
	assert.ErrorIs(t, err, ErrInvalidScore)

	_, err = svc.UpsertReview(applicant.ApplicantID, "A", ReviewPatch{LeadershipScore: intPtr(0)})
	assert.ErrorIs(t, err, ErrInvalidScore)

	// No row was created or modified
	var count int64
	require.NoError(t, db.Model(&models.Review{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUpsertReviewRejectsUnknownDecision(t *testing.T) {
	db := newTestDB(t)
	applicant := createApplicant(t, db, "ext-1", "Applicant One", models.CategoryRegular)

	svc := NewReviewService(db)
	_, err := svc.UpsertReview(applicant.ApplicantID, "A", ReviewPatch{Decision: strPtr("Strong Hire")})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpsertReviewUnknownApplicant(t *testing.T) {
	db := newTestDB(t)

	svc := NewReviewService(db)
	_, err := svc.UpsertReview(999, "A", ReviewPatch{PreferenceScore: intPtr(3)})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpsertReviewRoundTrip(t *testing.T) {
	db := newTestDB(t)
	applicant := createApplicant(t, db, "ext-1", "Applicant One", models.CategoryRegular)

	svc := NewReviewService(db)
	patch := fullPatch(4, 3, 5, 4, 5, 3, 4)
	patch.Notes = strPtr("solid interview")
	patch.Decision = strPtr(models.DecisionDefinitelyInterview)

	_, err := svc.UpsertReview(applicant.ApplicantID, "A", patch)
	require.NoError(t, err)

	fetched, err := svc.GetReview(applicant.ApplicantID, "A")
	require.NoError(t, err)
	assert.Equal(t, 4, *fetched.PreferenceScore)
	assert.Equal(t, 3, *fetched.PressureScore)
	assert.Equal(t, 5, *fetched.UnderservedScore)
	assert.Equal(t, "solid interview", *fetched.Notes)
	assert.Equal(t, models.DecisionDefinitelyInterview, *fetched.Decision)
}

func TestFinalSelectionAggregatesFollowReviews(t *testing.T) {
	db := newTestDB(t)
	applicant := createApplicant(t, db, "ext-1", "Applicant One", models.CategoryRegular)

	svc := NewReviewService(db)

	// First review totals 28
	_, err := svc.UpsertReview(applicant.ApplicantID, "A", fullPatch(4, 3, 5, 4, 5, 3, 4))
	require.NoError(t, err)

	var selection models.FinalSelection
	require.NoError(t, db.Where("applicant_id = ?", applicant.ApplicantID).First(&selection).Error)
	assert.Equal(t, models.AdminDecisionPending, selection.AdminDecision)
	assert.Equal(t, 1, selection.ReviewerCount)
	assert.Equal(t, 28.0, selection.AverageScore)

	// Second review totals 20
	_, err = svc.UpsertReview(applicant.ApplicantID, "B", fullPatch(3, 3, 3, 3, 3, 3, 2))
	require.NoError(t, err)

	require.NoError(t, db.Where("applicant_id = ?", applicant.ApplicantID).First(&selection).Error)
	assert.Equal(t, 2, selection.ReviewerCount)
	assert.Equal(t, 24.0, selection.AverageScore)
}

func TestDeleteReviewRecomputesAggregates(t *testing.T) {
	db := newTestDB(t)
	applicant := createApplicant(t, db, "ext-1", "Applicant One", models.CategoryRegular)

	svc := NewReviewService(db)

	_, err := svc.UpsertReview(applicant.ApplicantID, "A", fullPatch(4, 3, 5, 4, 5, 3, 4)) // 28
	require.NoError(t, err)
	second, err := svc.UpsertReview(applicant.ApplicantID, "B", fullPatch(3, 3, 3, 3, 3, 3, 2)) // 20
	require.NoError(t, err)

	// Dropping the 28 leaves an average of 20
	first, err := svc.GetReview(applicant.ApplicantID, "A")
	require.NoError(t, err)
	require.NoError(t, svc.DeleteReview(first.ReviewID))

	var selection models.FinalSelection
	require.NoError(t, db.Where("applicant_id = ?", applicant.ApplicantID).First(&selection).Error)
	assert.Equal(t, 1, selection.ReviewerCount)
	assert.Equal(t, 20.0, selection.AverageScore)

	// Deleting the last review resets the aggregates but keeps the row
	require.NoError(t, svc.DeleteReview(second.ReviewID))
	require.NoError(t, db.Where("applicant_id = ?", applicant.ApplicantID).First(&selection).Error)
	assert.Zero(t, selection.ReviewerCount)
	assert.Zero(t, selection.AverageScore)
}

func TestDeleteReviewUnknownID(t *testing.T) {
	db := newTestDB(t)

	svc := NewReviewService(db)
	assert.ErrorIs(t, svc.DeleteReview(42), ErrNotFound)
}

func TestListReviewsFilters(t *testing.T) {
	db := newTestDB(t)
	first := createApplicant(t, db, "ext-1", "Applicant One", models.CategoryRegular)
	second := createApplicant(t, db, "ext-2", "Applicant Two", models.CategoryRegular)

	svc := NewReviewService(db)
	_, err := svc.UpsertReview(first.ApplicantID, "A", ReviewPatch{PreferenceScore: intPtr(3)})
	require.NoError(t, err)
	_, err = svc.UpsertReview(first.ApplicantID, "B", ReviewPatch{PreferenceScore: intPtr(4)})
	require.NoError(t, err)
	_, err = svc.UpsertReview(second.ApplicantID, "A", ReviewPatch{PreferenceScore: intPtr(5)})
	require.NoError(t, err)

	all, err := svc.ListReviews(nil, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byApplicant, err := svc.ListReviews(&first.ApplicantID, nil)
	require.NoError(t, err)
	assert.Len(t, byApplicant, 2)

	reviewer := "A"
	byReviewer, err := svc.ListReviews(nil, &reviewer)
	require.NoError(t, err)
	assert.Len(t, byReviewer, 2)

	both, err := svc.ListReviews(&second.ApplicantID, &reviewer)
	require.NoError(t, err)
	require.Len(t, both, 1)
	assert.Equal(t, second.ApplicantID, both[0].ApplicantID)
}
