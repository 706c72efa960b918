package services

import (
	"fmt"
	"testing"

	"applicant-review-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func regularApplicants(n int) []models.Applicant {
	applicants := make([]models.Applicant, n)
	for i := range applicants {
		applicants[i] = models.Applicant{
			ApplicantID: i + 1,
			ExternalID:  fmt.Sprintf("app-%d", i),
			Name:        fmt.Sprintf("Applicant %d", i),
			Category:    models.CategoryRegular,
		}
	}
	return applicants
}

func namedReviewers(names ...string) []models.Reviewer {
	reviewers := make([]models.Reviewer, len(names))
	for i, name := range names {
		reviewers[i] = models.Reviewer{ReviewerID: i + 1, Name: name}
	}
	return reviewers
}

func TestComputeDistributionRoundRobin(t *testing.T) {
	applicants := regularApplicants(7)
	reviewers := namedReviewers("A", "B", "C")

	distribution := ComputeDistribution(applicants, reviewers)

	require.Len(t, distribution, 3)
	assert.Equal(t, []string{"app-0", "app-3", "app-6"}, externalIDs(distribution["A"]))
	assert.Equal(t, []string{"app-1", "app-4"}, externalIDs(distribution["B"]))
	assert.Equal(t, []string{"app-2", "app-5"}, externalIDs(distribution["C"]))
}

func TestComputeDistributionExcludesISub(t *testing.T) {
	applicants := regularApplicants(4)
	applicants[1].Category = models.CategoryISub
	applicants[3].Category = models.CategoryISub
	reviewers := namedReviewers("A", "B")

	distribution := ComputeDistribution(applicants, reviewers)

	assert.Equal(t, []string{"app-0"}, externalIDs(distribution["A"]))
	assert.Equal(t, []string{"app-2"}, externalIDs(distribution["B"]))
	for _, assigned := range distribution {
		for _, applicant := range assigned {
			assert.Equal(t, models.CategoryRegular, applicant.Category)
		}
	}
}

func TestComputeDistributionEmptyReviewers(t *testing.T) {
	distribution := ComputeDistribution(regularApplicants(5), nil)
	assert.Empty(t, distribution)
}

func TestComputeDistributionMoreReviewersThanApplicants(t *testing.T) {
	distribution := ComputeDistribution(regularApplicants(2), namedReviewers("A", "B", "C", "D"))

	require.Len(t, distribution, 4)
	assert.Len(t, distribution["A"], 1)
	assert.Len(t, distribution["B"], 1)
	assert.Empty(t, distribution["C"])
	assert.Empty(t, distribution["D"])
}

func TestComputeDistributionDeterministic(t *testing.T) {
	applicants := regularApplicants(9)
	reviewers := namedReviewers("A", "B")

	first := ComputeDistribution(applicants, reviewers)
	second := ComputeDistribution(applicants, reviewers)

	assert.Equal(t, first, second)
}

func TestRedistributePersistsAssignments(t *testing.T) {
	db := newTestDB(t)

	for i := 0; i < 5; i++ {
		createApplicant(t, db, fmt.Sprintf("ext-%d", i), fmt.Sprintf("Applicant %d", i), models.CategoryRegular)
	}
	isub := createApplicant(t, db, "ext-isub", "I-Sub Applicant", models.CategoryISub)
	createReviewer(t, db, "A", "a@example.com", false)
	createReviewer(t, db, "B", "b@example.com", false)

	svc := NewDistributionService(db)

	distribution, err := svc.Redistribute()
	require.NoError(t, err)
	assert.Len(t, distribution["A"], 3)
	assert.Len(t, distribution["B"], 2)

	var count int64
	require.NoError(t, db.Model(&models.ApplicantAssignment{}).Count(&count).Error)
	assert.EqualValues(t, 5, count)

	// i-sub applicants never get an assignment row
	var isubCount int64
	require.NoError(t, db.Model(&models.ApplicantAssignment{}).
		Where("applicant_id = ?", isub.ApplicantID).Count(&isubCount).Error)
	assert.Zero(t, isubCount)

	// Running it again replaces rather than duplicates
	_, err = svc.Redistribute()
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.ApplicantAssignment{}).Count(&count).Error)
	assert.EqualValues(t, 5, count)

	// Reads return the persisted partition
	listed, err := svc.ListAssignments()
	require.NoError(t, err)
	assert.Len(t, listed["A"], 3)
	assert.Len(t, listed["B"], 2)

	assigned, err := svc.AssignedTo("A")
	require.NoError(t, err)
	assert.Len(t, assigned, 3)

	pool, err := svc.UnassignedPool()
	require.NoError(t, err)
	require.Len(t, pool, 1)
	assert.Equal(t, "ext-isub", pool[0].ExternalID)
}

func TestListAssignmentsIncludesIdleReviewers(t *testing.T) {
	db := newTestDB(t)

	createReviewer(t, db, "A", "", false)
	createReviewer(t, db, "B", "", false)

	svc := NewDistributionService(db)
	listed, err := svc.ListAssignments()
	require.NoError(t, err)

	require.Len(t, listed, 2)
	assert.Empty(t, listed["A"])
	assert.Empty(t, listed["B"])
}

func externalIDs(applicants []models.Applicant) []string {
	ids := make([]string, len(applicants))
	for i, a := range applicants {
		ids[i] = a.ExternalID
	}
	return ids
}
