package intake

import "github.com/kiranshivaraju/jobtrail/pkg/models"

// Normalize converts a validated extraction into its persisted shape. Empty
// strings become nil and missing skill lists become empty. A nil extraction
// yields an Enrichment with every field absent.
func Normalize(x *models.Extraction) models.Enrichment {
	if x == nil {
		return models.Enrichment{
			SkillsRequired:  []string{},
			SkillsPreferred: []string{},
		}
	}
	return models.Enrichment{
		JobTitle:           nilIfEmpty(x.JobTitle),
		Company:            nilIfEmpty(x.Company),
		SkillsRequired:     orEmpty(x.SkillsRequired),
		SkillsPreferred:    orEmpty(x.SkillsPreferred),
		ExperienceRequired: nilIfEmpty(x.ExperienceRequired),
		SalaryRange:        nilIfEmpty(x.SalaryRange),
		Remote:             nilIfEmpty(x.Remote),
		JobDesc:            nilIfEmpty(x.JobDesc),
	}
}

// Merge builds the row to insert from a submission and its enrichment.
func Merge(sub models.JobSubmission, e models.Enrichment) models.JobApplication {
	return models.JobApplication{
		Description:     sub.Description,
		JobURL:          sub.URL,
		AppliedAt:       sub.CreatedAt,
		JobTitle:        e.JobTitle,
		Company:         e.Company,
		RequiredSkills:  orEmpty(e.SkillsRequired),
		PreferredSkills: orEmpty(e.SkillsPreferred),
		ExperienceLevel: e.ExperienceRequired,
		SalaryRange:     e.SalaryRange,
		RemoteOption:    e.Remote,
		AISummary:       e.JobDesc,
		Status:          models.StatusApplied,
	}
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
