package intake_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiranshivaraju/jobtrail/internal/intake"
	"github.com/kiranshivaraju/jobtrail/pkg/models"
)

func TestNormalize_Nil(t *testing.T) {
	e := intake.Normalize(nil)

	assert.Nil(t, e.JobTitle)
	assert.Nil(t, e.Company)
	assert.Nil(t, e.ExperienceRequired)
	assert.Nil(t, e.SalaryRange)
	assert.Nil(t, e.Remote)
	assert.Nil(t, e.JobDesc)
	assert.NotNil(t, e.SkillsRequired)
	assert.Empty(t, e.SkillsRequired)
	assert.NotNil(t, e.SkillsPreferred)
	assert.Empty(t, e.SkillsPreferred)
}

func TestNormalize_EmptyStringsBecomeNil(t *testing.T) {
	e := intake.Normalize(&models.Extraction{
		JobTitle: "Data Engineer",
		Remote:   models.RemoteOptionRemote,
	})

	require.NotNil(t, e.JobTitle)
	assert.Equal(t, "Data Engineer", *e.JobTitle)
	assert.Nil(t, e.Company)
	assert.Nil(t, e.ExperienceRequired)
	assert.Nil(t, e.SalaryRange)
	assert.Nil(t, e.JobDesc)
	require.NotNil(t, e.Remote)
	assert.Equal(t, "remote", *e.Remote)
	assert.Equal(t, []string{}, e.SkillsRequired)
	assert.Equal(t, []string{}, e.SkillsPreferred)
}

func TestNormalize_Full(t *testing.T) {
	e := intake.Normalize(&models.Extraction{
		JobTitle:           "SRE",
		Company:            "Globex",
		SkillsRequired:     []string{"Linux"},
		SkillsPreferred:    []string{"Terraform"},
		ExperienceRequired: "3+ years",
		SalaryRange:        "120k-140k",
		Remote:             models.RemoteOptionOnsite,
		JobDesc:            "Keep things up.",
	})

	assert.Equal(t, "Globex", *e.Company)
	assert.Equal(t, []string{"Linux"}, e.SkillsRequired)
	assert.Equal(t, []string{"Terraform"}, e.SkillsPreferred)
	assert.Equal(t, "3+ years", *e.ExperienceRequired)
	assert.Equal(t, "120k-140k", *e.SalaryRange)
	assert.Equal(t, "onsite", *e.Remote)
	assert.Equal(t, "Keep things up.", *e.JobDesc)
}

func TestMerge(t *testing.T) {
	applied := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	sub := models.JobSubmission{Description: "desc", URL: str("https://x.test/1"), CreatedAt: applied}
	e := intake.Normalize(&models.Extraction{
		JobTitle:           "SRE",
		Company:            "Globex",
		SkillsRequired:     []string{"Linux"},
		ExperienceRequired: "3+ years",
		SalaryRange:        "120k-140k",
		Remote:             models.RemoteOptionHybrid,
		JobDesc:            "Keep things up.",
	})

	row := intake.Merge(sub, e)

	assert.Equal(t, "desc", row.Description)
	assert.Equal(t, "https://x.test/1", *row.JobURL)
	assert.Equal(t, applied, row.AppliedAt)
	assert.Equal(t, "SRE", *row.JobTitle)
	assert.Equal(t, "Globex", *row.Company)
	assert.Equal(t, []string{"Linux"}, row.RequiredSkills)
	assert.Equal(t, []string{}, row.PreferredSkills)
	assert.Equal(t, "3+ years", *row.ExperienceLevel)
	assert.Equal(t, "120k-140k", *row.SalaryRange)
	assert.Equal(t, "hybrid", *row.RemoteOption)
	assert.Equal(t, "Keep things up.", *row.AISummary)
	assert.Equal(t, models.StatusApplied, row.Status)
}

func TestMerge_NoEnrichment(t *testing.T) {
	row := intake.Merge(models.JobSubmission{Description: "desc"}, intake.Normalize(nil))

	assert.Nil(t, row.JobURL)
	assert.Nil(t, row.JobTitle)
	assert.Nil(t, row.Company)
	assert.Nil(t, row.ExperienceLevel)
	assert.Nil(t, row.SalaryRange)
	assert.Nil(t, row.RemoteOption)
	assert.Nil(t, row.AISummary)
	assert.Equal(t, []string{}, row.RequiredSkills)
	assert.Equal(t, []string{}, row.PreferredSkills)
	assert.Equal(t, models.StatusApplied, row.Status)
}
