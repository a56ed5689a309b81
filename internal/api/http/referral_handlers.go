package http

import (
	"net/http"

	"talentdesk-backend/internal/service"

	"github.com/gorilla/mux"
)

// CreateReferral accepts a multipart form so the resume can ride along
// with the referral fields in one request.
func (h *Handlers) CreateReferral(w http.ResponseWriter, r *http.Request) {
	if err := h.parseMultipart(r); err != nil {
		respondError(w, err)
		return
	}
	resume, err := h.formUpload(r, "resume")
	if err != nil {
		respondError(w, err)
		return
	}
	years, err := formInt32(r, "experience_years")
	if err != nil {
		respondError(w, err)
		return
	}

	referral, err := h.referrals.CreateReferral(r.Context(), service.CreateReferralInput{
		JobOpeningID:    mux.Vars(r)["jobID"],
		ReferredByID:    actorID(r),
		CandidateName:   r.FormValue("candidate_name"),
		CandidateEmail:  r.FormValue("candidate_email"),
		CandidatePhone:  r.FormValue("candidate_phone"),
		ExperienceYears: years,
		Notes:           r.FormValue("notes"),
		Resume:          resume,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, referral)
}

// ApplyForJob is the unauthenticated direct-application path on the
// careers surface.
func (h *Handlers) ApplyForJob(w http.ResponseWriter, r *http.Request) {
	if err := h.parseMultipart(r); err != nil {
		respondError(w, err)
		return
	}
	resume, err := h.formUpload(r, "resume")
	if err != nil {
		respondError(w, err)
		return
	}
	years, err := formInt32(r, "experience_years")
	if err != nil {
		respondError(w, err)
		return
	}

	referral, err := h.referrals.ApplyForJob(r.Context(), service.ApplicationInput{
		JobOpeningID:    mux.Vars(r)["jobID"],
		CandidateName:   r.FormValue("candidate_name"),
		CandidateEmail:  r.FormValue("candidate_email"),
		CandidatePhone:  r.FormValue("candidate_phone"),
		ExperienceYears: years,
		Notes:           r.FormValue("notes"),
		Resume:          resume,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, referral)
}

func (h *Handlers) GetReferral(w http.ResponseWriter, r *http.Request) {
	referral, err := h.referrals.GetReferral(r.Context(), mux.Vars(r)["referralID"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, referral)
}

func (h *Handlers) ListReferralsByJob(w http.ResponseWriter, r *http.Request) {
	referrals, err := h.referrals.ListByJob(r.Context(), mux.Vars(r)["jobID"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, referrals)
}

func (h *Handlers) ListMyReferrals(w http.ResponseWriter, r *http.Request) {
	referrals, err := h.referrals.ListByReferrer(r.Context(), actorID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, referrals)
}

func (h *Handlers) ListAllReferrals(w http.ResponseWriter, r *http.Request) {
	referrals, err := h.referrals.ListAll(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, referrals)
}

func (h *Handlers) GetResume(w http.ResponseWriter, r *http.Request) {
	doc, err := h.referrals.GetResume(r.Context(), mux.Vars(r)["referralID"])
	if err != nil {
		respondError(w, err)
		return
	}
	serveDocument(w, doc)
}
