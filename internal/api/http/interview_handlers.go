package http

import (
	"net/http"
	"time"

	"talentdesk-backend/internal/domain"
	"talentdesk-backend/internal/service"

	"github.com/gorilla/mux"
)

type defineRoundsRequest struct {
	Rounds []struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		RoundNumber int32  `json:"round_number"`
		IsRequired  bool   `json:"is_required"`
	} `json:"rounds"`
}

func (h *Handlers) DefineRounds(w http.ResponseWriter, r *http.Request) {
	var req defineRoundsRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	inputs := make([]service.RoundInput, 0, len(req.Rounds))
	for _, round := range req.Rounds {
		inputs = append(inputs, service.RoundInput{
			Name:        round.Name,
			Description: round.Description,
			RoundNumber: round.RoundNumber,
			IsRequired:  round.IsRequired,
		})
	}
	rounds, err := h.interviews.DefineRounds(r.Context(), mux.Vars(r)["jobID"], inputs)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, rounds)
}

func (h *Handlers) ListRounds(w http.ResponseWriter, r *http.Request) {
	rounds, err := h.interviews.ListRounds(r.Context(), mux.Vars(r)["jobID"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rounds)
}

func (h *Handlers) StartProcess(w http.ResponseWriter, r *http.Request) {
	referral, err := h.interviews.StartProcess(r.Context(), mux.Vars(r)["referralID"], actorID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, referral)
}

func (h *Handlers) ShortlistReferral(w http.ResponseWriter, r *http.Request) {
	referral, err := h.interviews.Shortlist(r.Context(), mux.Vars(r)["referralID"], actorID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, referral)
}

type withdrawReferralRequest struct {
	Reason string `json:"reason"`
}

func (h *Handlers) WithdrawReferral(w http.ResponseWriter, r *http.Request) {
	var req withdrawReferralRequest
	if r.ContentLength > 0 {
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, err)
			return
		}
	}
	referral, err := h.interviews.Withdraw(r.Context(), mux.Vars(r)["referralID"], actorID(r), req.Reason)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, referral)
}

type assignInterviewerRequest struct {
	InterviewerID string     `json:"interviewer_id"`
	ScheduledAt   *time.Time `json:"scheduled_at"`
}

func (h *Handlers) AssignInterviewer(w http.ResponseWriter, r *http.Request) {
	var req assignInterviewerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.InterviewerID == "" {
		respondError(w, domain.NewInvalidState("interviewer_id is required"))
		return
	}
	vars := mux.Vars(r)
	iv, err := h.interviews.AssignInterviewer(r.Context(),
		vars["referralID"], vars["roundID"], req.InterviewerID, actorID(r), req.ScheduledAt)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, iv)
}

type updateRoundStatusRequest struct {
	Status   string `json:"status"`
	Feedback string `json:"feedback"`
	Rating   *int32 `json:"rating"`
}

func (h *Handlers) UpdateRoundStatus(w http.ResponseWriter, r *http.Request) {
	var req updateRoundStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	vars := mux.Vars(r)
	progress, err := h.interviews.UpdateRoundStatus(r.Context(), service.UpdateRoundStatusInput{
		ReferralID: vars["referralID"],
		RoundID:    vars["roundID"],
		Status:     domain.RoundStatus(req.Status),
		Feedback:   req.Feedback,
		Rating:     req.Rating,
		ActorID:    actorID(r),
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, progress)
}

func (h *Handlers) GetProgress(w http.ResponseWriter, r *http.Request) {
	progress, err := h.interviews.GetProgress(r.Context(), mux.Vars(r)["referralID"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, progress)
}

func (h *Handlers) GetHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.interviews.GetHistory(r.Context(), mux.Vars(r)["referralID"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, history)
}
