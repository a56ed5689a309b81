package http

import (
	"net/http"
	"time"

	"talentdesk-backend/internal/domain"
	"talentdesk-backend/internal/service"

	"github.com/gorilla/mux"
)

type createJobRequest struct {
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	Requirements     string     `json:"requirements"`
	Responsibilities string     `json:"responsibilities"`
	Department       string     `json:"department"`
	Location         string     `json:"location"`
	JobType          string     `json:"job_type"`
	ExperienceLevel  string     `json:"experience_level"`
	SalaryMin        *int64     `json:"salary_min"`
	SalaryMax        *int64     `json:"salary_max"`
	Openings         int32      `json:"openings"`
	ReferralBonus    *int64     `json:"referral_bonus"`
	ClosingDate      *time.Time `json:"closing_date"`
}

func (h *Handlers) CreateJob(w http.ResponseWriter, r *http.Request) {
	var req createJobRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	job, err := h.jobs.CreateJob(r.Context(), service.CreateJobInput{
		Title:            req.Title,
		Description:      req.Description,
		Requirements:     req.Requirements,
		Responsibilities: req.Responsibilities,
		Department:       req.Department,
		Location:         req.Location,
		JobType:          domain.JobType(req.JobType),
		ExperienceLevel:  domain.ExperienceLevel(req.ExperienceLevel),
		SalaryMin:        req.SalaryMin,
		SalaryMax:        req.SalaryMax,
		Openings:         req.Openings,
		ReferralBonus:    req.ReferralBonus,
		ClosingDate:      req.ClosingDate,
		PostedByID:       actorID(r),
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, job)
}

func (h *Handlers) GetJob(w http.ResponseWriter, r *http.Request) {
	job, err := h.jobs.GetJob(r.Context(), mux.Vars(r)["jobID"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, job)
}

func (h *Handlers) ListJobs(w http.ResponseWriter, r *http.Request) {
	status := domain.JobStatus(r.URL.Query().Get("status"))
	jobs, err := h.jobs.ListJobs(r.Context(), status)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, jobs)
}

// GetPublicJob serves the careers detail page. Only open postings are
// visible; anything else reads as not found.
func (h *Handlers) GetPublicJob(w http.ResponseWriter, r *http.Request) {
	jobID := mux.Vars(r)["jobID"]
	job, err := h.jobs.GetJob(r.Context(), jobID)
	if err != nil {
		respondError(w, err)
		return
	}
	if job.Status != domain.JobStatusOpen {
		respondError(w, domain.NewNotFound("job opening", jobID))
		return
	}
	respondJSON(w, http.StatusOK, job)
}

func (h *Handlers) ListOpenJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.jobs.ListOpenJobs(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, jobs)
}

type updateJobRequest struct {
	Title            *string    `json:"title"`
	Description      *string    `json:"description"`
	Requirements     *string    `json:"requirements"`
	Responsibilities *string    `json:"responsibilities"`
	Department       *string    `json:"department"`
	Location         *string    `json:"location"`
	JobType          *string    `json:"job_type"`
	ExperienceLevel  *string    `json:"experience_level"`
	SalaryMin        *int64     `json:"salary_min"`
	SalaryMax        *int64     `json:"salary_max"`
	Openings         *int32     `json:"openings"`
	ReferralBonus    *int64     `json:"referral_bonus"`
	ClosingDate      *time.Time `json:"closing_date"`
	Status           *string    `json:"status"`
}

func (h *Handlers) UpdateJob(w http.ResponseWriter, r *http.Request) {
	var req updateJobRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	upd := domain.JobOpeningUpdate{
		Title:            req.Title,
		Description:      req.Description,
		Requirements:     req.Requirements,
		Responsibilities: req.Responsibilities,
		Department:       req.Department,
		Location:         req.Location,
		SalaryMin:        req.SalaryMin,
		SalaryMax:        req.SalaryMax,
		Openings:         req.Openings,
		ReferralBonus:    req.ReferralBonus,
		ClosingDate:      req.ClosingDate,
	}
	if req.JobType != nil {
		jt := domain.JobType(*req.JobType)
		upd.JobType = &jt
	}
	if req.ExperienceLevel != nil {
		el := domain.ExperienceLevel(*req.ExperienceLevel)
		upd.ExperienceLevel = &el
	}
	if req.Status != nil {
		st := domain.JobStatus(*req.Status)
		upd.Status = &st
	}

	job, err := h.jobs.UpdateJob(r.Context(), mux.Vars(r)["jobID"], upd)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, job)
}

func (h *Handlers) DeleteJob(w http.ResponseWriter, r *http.Request) {
	if err := h.jobs.DeleteJob(r.Context(), mux.Vars(r)["jobID"]); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
