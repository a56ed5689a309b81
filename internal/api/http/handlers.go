package http

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"talentdesk-backend/internal/domain"
	"talentdesk-backend/internal/service"
	"talentdesk-backend/internal/storage"
)

// Handlers holds the service dependencies for every HTTP endpoint.
type Handlers struct {
	jobs           service.JobCatalogService
	referrals      service.ReferralService
	interviews     service.InterviewService
	offers         service.OfferService
	onboarding     service.OnboardingService
	maxUploadBytes int64
}

func NewHandlers(
	jobs service.JobCatalogService,
	referrals service.ReferralService,
	interviews service.InterviewService,
	offers service.OfferService,
	onboarding service.OnboardingService,
	maxUploadMB int64,
) *Handlers {
	return &Handlers{
		jobs:           jobs,
		referrals:      referrals,
		interviews:     interviews,
		offers:         offers,
		onboarding:     onboarding,
		maxUploadBytes: maxUploadMB << 20,
	}
}

// formUpload extracts an optional file field from a multipart request.
// Returns nil when the field is absent.
func (h *Handlers) formUpload(r *http.Request, field string) (*service.Upload, error) {
	file, header, err := r.FormFile(field)
	if err == http.ErrMissingFile {
		return nil, nil
	}
	if err != nil {
		return nil, domain.NewInvalidState("invalid %s upload: %v", field, err)
	}
	defer file.Close()

	if header.Size > h.maxUploadBytes {
		return nil, domain.NewInvalidState("%s exceeds the %d MB upload limit", field, h.maxUploadBytes>>20)
	}
	data, err := io.ReadAll(io.LimitReader(file, h.maxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s upload: %w", field, err)
	}
	if int64(len(data)) > h.maxUploadBytes {
		return nil, domain.NewInvalidState("%s exceeds the %d MB upload limit", field, h.maxUploadBytes>>20)
	}
	return &service.Upload{
		Data:        data,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
	}, nil
}

func (h *Handlers) parseMultipart(r *http.Request) error {
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		return domain.NewInvalidState("invalid multipart request: %v", err)
	}
	return nil
}

func formInt32(r *http.Request, field string) (int32, error) {
	val := r.FormValue(field)
	if val == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(val, 10, 32)
	if err != nil {
		return 0, domain.NewInvalidState("%s must be an integer", field)
	}
	return int32(n), nil
}

// serveDocument streams a stored document back with its original filename
// and content type.
func serveDocument(w http.ResponseWriter, doc *storage.Document) {
	contentType := doc.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	if doc.Filename != "" {
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	}
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.Data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc.Data)
}
