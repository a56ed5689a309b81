package domain

import "time"

type JobStatus string

const (
	JobStatusOpen   JobStatus = "open"
	JobStatusClosed JobStatus = "closed"
	JobStatusOnHold JobStatus = "on_hold"
	JobStatusFilled JobStatus = "filled"
)

func (s JobStatus) Valid() bool {
	switch s {
	case JobStatusOpen, JobStatusClosed, JobStatusOnHold, JobStatusFilled:
		return true
	}
	return false
}

type JobType string

const (
	JobTypeFullTime   JobType = "full_time"
	JobTypePartTime   JobType = "part_time"
	JobTypeContract   JobType = "contract"
	JobTypeInternship JobType = "internship"
)

type ExperienceLevel string

const (
	ExperienceEntry     ExperienceLevel = "entry"
	ExperienceMid       ExperienceLevel = "mid"
	ExperienceSenior    ExperienceLevel = "senior"
	ExperienceLead      ExperienceLevel = "lead"
	ExperienceExecutive ExperienceLevel = "executive"
)

type JobOpening struct {
	ID               string          `json:"id"`
	Title            string          `json:"title"`
	Description      string          `json:"description"`
	Requirements     string          `json:"requirements"`
	Responsibilities string          `json:"responsibilities,omitempty"`
	Department       string          `json:"department,omitempty"`
	Location         string          `json:"location"`
	JobType          JobType         `json:"job_type"`
	ExperienceLevel  ExperienceLevel `json:"experience_level"`
	SalaryMin        *int64          `json:"salary_min,omitempty"`
	SalaryMax        *int64          `json:"salary_max,omitempty"`
	Openings         int32           `json:"openings"`
	ReferralBonus    *int64          `json:"referral_bonus,omitempty"`
	ClosingDate      *time.Time      `json:"closing_date,omitempty"`
	Status           JobStatus       `json:"status"`
	PostedByID       string          `json:"posted_by_id"`
	ReferralCount    int32           `json:"referral_count,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// JobOpeningUpdate carries a partial update; nil fields are left unchanged.
type JobOpeningUpdate struct {
	Title            *string
	Description      *string
	Requirements     *string
	Responsibilities *string
	Department       *string
	Location         *string
	JobType          *JobType
	ExperienceLevel  *ExperienceLevel
	SalaryMin        *int64
	SalaryMax        *int64
	Openings         *int32
	ReferralBonus    *int64
	ClosingDate      *time.Time
	Status           *JobStatus
}
