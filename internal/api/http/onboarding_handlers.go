package http

import (
	"net/http"
	"time"

	"talentdesk-backend/internal/domain"
	"talentdesk-backend/internal/service"

	"github.com/gorilla/mux"
)

type onboardRequest struct {
	OfficeEmail      string  `json:"office_email"`
	EmployeeCode     string  `json:"employee_code"`
	JoiningDate      string  `json:"joining_date"`
	ReportingManager string  `json:"reporting_manager"`
	DesignationID    *string `json:"designation_id"`
}

func (h *Handlers) Onboard(w http.ResponseWriter, r *http.Request) {
	var req onboardRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	var joiningDate time.Time
	if req.JoiningDate != "" {
		var err error
		joiningDate, err = time.Parse("2006-01-02", req.JoiningDate)
		if err != nil {
			respondError(w, domain.NewInvalidState("joining_date must be a YYYY-MM-DD date"))
			return
		}
	}

	result, err := h.onboarding.Onboard(r.Context(), service.OnboardInput{
		ReferralID:       mux.Vars(r)["referralID"],
		OfficeEmail:      req.OfficeEmail,
		EmployeeCode:     req.EmployeeCode,
		JoiningDate:      joiningDate,
		ReportingManager: req.ReportingManager,
		DesignationID:    req.DesignationID,
		ActorID:          actorID(r),
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, result)
}
