package http

import (
	"net/http"

	"talentdesk-backend/internal/security"

	"github.com/gorilla/mux"
)

// NewRouter wires every endpoint. Staff routes live under /api/v1 behind
// bearer auth; the careers and offer-response surfaces under /public are
// reachable without credentials.
func NewRouter(h *Handlers, tm security.TokenManager) *mux.Router {
	r := mux.NewRouter()
	r.Use(LoggingMiddleware)

	public := r.PathPrefix("/public").Subrouter()
	public.HandleFunc("/jobs", h.ListOpenJobs).Methods(http.MethodGet)
	public.HandleFunc("/jobs/{jobID}", h.GetPublicJob).Methods(http.MethodGet)
	public.HandleFunc("/jobs/{jobID}/apply", h.ApplyForJob).Methods(http.MethodPost)
	public.HandleFunc("/offers/{token}", h.GetPublicOffer).Methods(http.MethodGet)
	public.HandleFunc("/offers/{token}/accept", h.AcceptPublicOffer).Methods(http.MethodPost)
	public.HandleFunc("/offers/{token}/decline", h.DeclinePublicOffer).Methods(http.MethodPost)
	public.HandleFunc("/offers/{token}/letter", h.GetPublicOfferLetter).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(AuthMiddleware(tm))

	// Job catalog
	api.HandleFunc("/jobs", h.CreateJob).Methods(http.MethodPost)
	api.HandleFunc("/jobs", h.ListJobs).Methods(http.MethodGet)
	api.HandleFunc("/jobs/{jobID}", h.GetJob).Methods(http.MethodGet)
	api.HandleFunc("/jobs/{jobID}", h.UpdateJob).Methods(http.MethodPatch)
	api.HandleFunc("/jobs/{jobID}", h.DeleteJob).Methods(http.MethodDelete)

	// Interview round templates
	api.HandleFunc("/jobs/{jobID}/rounds", h.DefineRounds).Methods(http.MethodPost)
	api.HandleFunc("/jobs/{jobID}/rounds", h.ListRounds).Methods(http.MethodGet)

	// Referral intake
	api.HandleFunc("/jobs/{jobID}/referrals", h.CreateReferral).Methods(http.MethodPost)
	api.HandleFunc("/jobs/{jobID}/referrals", h.ListReferralsByJob).Methods(http.MethodGet)
	api.HandleFunc("/referrals", h.ListAllReferrals).Methods(http.MethodGet)
	api.HandleFunc("/referrals/my", h.ListMyReferrals).Methods(http.MethodGet)
	api.HandleFunc("/referrals/{referralID}", h.GetReferral).Methods(http.MethodGet)
	api.HandleFunc("/referrals/{referralID}/resume", h.GetResume).Methods(http.MethodGet)

	// Interview pipeline
	api.HandleFunc("/referrals/{referralID}/process", h.StartProcess).Methods(http.MethodPost)
	api.HandleFunc("/referrals/{referralID}/shortlist", h.ShortlistReferral).Methods(http.MethodPost)
	api.HandleFunc("/referrals/{referralID}/withdraw", h.WithdrawReferral).Methods(http.MethodPost)
	api.HandleFunc("/referrals/{referralID}/rounds/{roundID}/interviewer", h.AssignInterviewer).Methods(http.MethodPut)
	api.HandleFunc("/referrals/{referralID}/rounds/{roundID}/status", h.UpdateRoundStatus).Methods(http.MethodPut)
	api.HandleFunc("/referrals/{referralID}/progress", h.GetProgress).Methods(http.MethodGet)
	api.HandleFunc("/referrals/{referralID}/history", h.GetHistory).Methods(http.MethodGet)

	// Offers
	api.HandleFunc("/referrals/{referralID}/offers", h.MakeOffer).Methods(http.MethodPost)
	api.HandleFunc("/referrals/{referralID}/offers", h.GetCandidateOffers).Methods(http.MethodGet)
	api.HandleFunc("/offers/{offerID}/revoke", h.RevokeOffer).Methods(http.MethodPost)
	api.HandleFunc("/offers/{offerID}/letter", h.GetOfferLetter).Methods(http.MethodGet)

	// Onboarding
	api.HandleFunc("/referrals/{referralID}/onboard", h.Onboard).Methods(http.MethodPost)

	return r
}
