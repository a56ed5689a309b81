package http

import (
	"net/http"
	"time"

	"talentdesk-backend/internal/domain"
	"talentdesk-backend/internal/service"

	"github.com/gorilla/mux"
)

// MakeOffer accepts a multipart form so the offer letter can ride along
// with the offer fields.
func (h *Handlers) MakeOffer(w http.ResponseWriter, r *http.Request) {
	if err := h.parseMultipart(r); err != nil {
		respondError(w, err)
		return
	}
	letter, err := h.formUpload(r, "letter")
	if err != nil {
		respondError(w, err)
		return
	}
	validUntil, err := time.Parse(time.RFC3339, r.FormValue("valid_until"))
	if err != nil {
		respondError(w, domain.NewInvalidState("valid_until must be an RFC 3339 timestamp"))
		return
	}

	offer, err := h.offers.MakeOffer(r.Context(), service.MakeOfferInput{
		ReferralID: mux.Vars(r)["referralID"],
		ValidUntil: validUntil,
		ActorID:    actorID(r),
		Letter:     letter,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, offer)
}

func (h *Handlers) GetCandidateOffers(w http.ResponseWriter, r *http.Request) {
	overview, err := h.offers.GetCandidateOffers(r.Context(), mux.Vars(r)["referralID"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, overview)
}

type revokeOfferRequest struct {
	Reason string `json:"reason"`
}

func (h *Handlers) RevokeOffer(w http.ResponseWriter, r *http.Request) {
	var req revokeOfferRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	offer, err := h.offers.RevokeOffer(r.Context(), mux.Vars(r)["offerID"], actorID(r), req.Reason)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, offer)
}

func (h *Handlers) GetOfferLetter(w http.ResponseWriter, r *http.Request) {
	doc, err := h.offers.GetOfferLetter(r.Context(), mux.Vars(r)["offerID"])
	if err != nil {
		respondError(w, err)
		return
	}
	serveDocument(w, doc)
}

// Public, token-addressed candidate surface.

func (h *Handlers) GetPublicOffer(w http.ResponseWriter, r *http.Request) {
	offer, err := h.offers.GetByPublicToken(r.Context(), mux.Vars(r)["token"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, offer)
}

func (h *Handlers) AcceptPublicOffer(w http.ResponseWriter, r *http.Request) {
	offer, err := h.offers.AcceptByPublicToken(r.Context(), mux.Vars(r)["token"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, offer)
}

func (h *Handlers) DeclinePublicOffer(w http.ResponseWriter, r *http.Request) {
	offer, err := h.offers.DeclineByPublicToken(r.Context(), mux.Vars(r)["token"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, offer)
}

func (h *Handlers) GetPublicOfferLetter(w http.ResponseWriter, r *http.Request) {
	doc, err := h.offers.GetOfferLetterByPublicToken(r.Context(), mux.Vars(r)["token"])
	if err != nil {
		respondError(w, err)
		return
	}
	serveDocument(w, doc)
}
