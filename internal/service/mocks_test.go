package service_test

import (
	"context"
	"time"

	"talentdesk-backend/internal/domain"
	"talentdesk-backend/internal/repository"
	"talentdesk-backend/internal/storage"

	"github.com/stretchr/testify/mock"
)

type MockJobRepo struct{ mock.Mock }

func (m *MockJobRepo) Create(ctx context.Context, job *domain.JobOpening) error {
	return m.Called(ctx, job).Error(0)
}
func (m *MockJobRepo) GetByID(ctx context.Context, id string) (*domain.JobOpening, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobOpening), args.Error(1)
}
func (m *MockJobRepo) List(ctx context.Context, status domain.JobStatus) ([]domain.JobOpening, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JobOpening), args.Error(1)
}
func (m *MockJobRepo) Update(ctx context.Context, job *domain.JobOpening) error {
	return m.Called(ctx, job).Error(0)
}
func (m *MockJobRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockJobRepo) CountReferrals(ctx context.Context, jobID string) (int32, error) {
	args := m.Called(ctx, jobID)
	return args.Get(0).(int32), args.Error(1)
}

type MockReferralRepo struct{ mock.Mock }

func (m *MockReferralRepo) Create(ctx context.Context, r *domain.JobReferral) error {
	return m.Called(ctx, r).Error(0)
}
func (m *MockReferralRepo) GetByID(ctx context.Context, id string) (*domain.JobReferral, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobReferral), args.Error(1)
}
func (m *MockReferralRepo) GetForUpdate(ctx context.Context, id string) (*domain.JobReferral, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobReferral), args.Error(1)
}
func (m *MockReferralRepo) GetByJobAndEmail(ctx context.Context, jobID, email string) (*domain.JobReferral, error) {
	args := m.Called(ctx, jobID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobReferral), args.Error(1)
}
func (m *MockReferralRepo) ListByJob(ctx context.Context, jobID string) ([]domain.JobReferral, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JobReferral), args.Error(1)
}
func (m *MockReferralRepo) ListByReferrer(ctx context.Context, employeeID string) ([]domain.JobReferral, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JobReferral), args.Error(1)
}
func (m *MockReferralRepo) ListAll(ctx context.Context) ([]domain.JobReferral, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JobReferral), args.Error(1)
}
func (m *MockReferralRepo) UpdateStatus(ctx context.Context, id string, status domain.ReferralStatus) error {
	return m.Called(ctx, id, status).Error(0)
}
func (m *MockReferralRepo) SetResume(ctx context.Context, id, ref string, state domain.ResumeState) error {
	return m.Called(ctx, id, ref, state).Error(0)
}

type MockRoundRepo struct{ mock.Mock }

func (m *MockRoundRepo) CreateBatch(ctx context.Context, rounds []domain.InterviewRound) error {
	return m.Called(ctx, rounds).Error(0)
}
func (m *MockRoundRepo) GetByID(ctx context.Context, id string) (*domain.InterviewRound, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InterviewRound), args.Error(1)
}
func (m *MockRoundRepo) ListByJob(ctx context.Context, jobID string) ([]domain.InterviewRound, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InterviewRound), args.Error(1)
}

type MockInterviewRepo struct{ mock.Mock }

func (m *MockInterviewRepo) CreateBatch(ctx context.Context, interviews []domain.CandidateInterview) error {
	return m.Called(ctx, interviews).Error(0)
}
func (m *MockInterviewRepo) GetByReferralAndRound(ctx context.Context, referralID, roundID string) (*domain.CandidateInterview, error) {
	args := m.Called(ctx, referralID, roundID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CandidateInterview), args.Error(1)
}
func (m *MockInterviewRepo) ListByReferral(ctx context.Context, referralID string) ([]domain.CandidateInterview, error) {
	args := m.Called(ctx, referralID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CandidateInterview), args.Error(1)
}
func (m *MockInterviewRepo) Update(ctx context.Context, iv *domain.CandidateInterview) error {
	return m.Called(ctx, iv).Error(0)
}

type MockOfferRepo struct{ mock.Mock }

func (m *MockOfferRepo) Create(ctx context.Context, o *domain.CandidateOffer) error {
	return m.Called(ctx, o).Error(0)
}
func (m *MockOfferRepo) GetByID(ctx context.Context, id string) (*domain.CandidateOffer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CandidateOffer), args.Error(1)
}
func (m *MockOfferRepo) GetByPublicToken(ctx context.Context, token string) (*domain.CandidateOffer, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CandidateOffer), args.Error(1)
}
func (m *MockOfferRepo) GetPending(ctx context.Context, referralID string) (*domain.CandidateOffer, error) {
	args := m.Called(ctx, referralID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CandidateOffer), args.Error(1)
}
func (m *MockOfferRepo) ListByReferral(ctx context.Context, referralID string) ([]domain.CandidateOffer, error) {
	args := m.Called(ctx, referralID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CandidateOffer), args.Error(1)
}
func (m *MockOfferRepo) MaxVersion(ctx context.Context, referralID string) (int32, error) {
	args := m.Called(ctx, referralID)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockOfferRepo) Update(ctx context.Context, o *domain.CandidateOffer) error {
	return m.Called(ctx, o).Error(0)
}
func (m *MockOfferRepo) SetLetter(ctx context.Context, id, ref string, state domain.LetterState) error {
	return m.Called(ctx, id, ref, state).Error(0)
}
func (m *MockOfferRepo) ListExpiredPending(ctx context.Context, now time.Time) ([]domain.CandidateOffer, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CandidateOffer), args.Error(1)
}
func (m *MockOfferRepo) ListStalledLetters(ctx context.Context, olderThan time.Time) ([]domain.CandidateOffer, error) {
	args := m.Called(ctx, olderThan)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CandidateOffer), args.Error(1)
}

type MockHistoryRepo struct{ mock.Mock }

func (m *MockHistoryRepo) Append(ctx context.Context, h *domain.InterviewHistory) error {
	return m.Called(ctx, h).Error(0)
}
func (m *MockHistoryRepo) ListByReferral(ctx context.Context, referralID string) ([]domain.InterviewHistory, error) {
	args := m.Called(ctx, referralID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InterviewHistory), args.Error(1)
}

type MockDirectoryRepo struct{ mock.Mock }

func (m *MockDirectoryRepo) GetEmployee(ctx context.Context, id string) (*domain.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}
func (m *MockDirectoryRepo) FindDepartmentByName(ctx context.Context, name string) (*domain.Department, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Department), args.Error(1)
}
func (m *MockDirectoryRepo) EmployeeCodeExists(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}
func (m *MockDirectoryRepo) OfficeEmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}
func (m *MockDirectoryRepo) CreateEmployee(ctx context.Context, e *domain.Employee) error {
	return m.Called(ctx, e).Error(0)
}
func (m *MockDirectoryRepo) AssignRole(ctx context.Context, employeeID, roleName string) error {
	return m.Called(ctx, employeeID, roleName).Error(0)
}

type MockDocStore struct{ mock.Mock }

func (m *MockDocStore) Put(ctx context.Context, data []byte, meta storage.Metadata) (string, error) {
	args := m.Called(ctx, data, meta)
	return args.String(0), args.Error(1)
}
func (m *MockDocStore) Get(ctx context.Context, handle string) (*storage.Document, error) {
	args := m.Called(ctx, handle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.Document), args.Error(1)
}
func (m *MockDocStore) Delete(ctx context.Context, handle string) error {
	return m.Called(ctx, handle).Error(0)
}

type MockEventSink struct{ mock.Mock }

func (m *MockEventSink) OfferMade(ctx context.Context, candidateEmail, candidateName, jobTitle, offerURL string, validUntil time.Time) error {
	return m.Called(ctx, candidateEmail, candidateName, jobTitle, offerURL, validUntil).Error(0)
}
func (m *MockEventSink) OfferAccepted(ctx context.Context, candidateName, jobTitle string) error {
	return m.Called(ctx, candidateName, jobTitle).Error(0)
}
func (m *MockEventSink) OfferDeclined(ctx context.Context, candidateName, jobTitle string) error {
	return m.Called(ctx, candidateName, jobTitle).Error(0)
}
func (m *MockEventSink) OfferRevoked(ctx context.Context, candidateEmail, candidateName, jobTitle, reason string) error {
	return m.Called(ctx, candidateEmail, candidateName, jobTitle, reason).Error(0)
}
func (m *MockEventSink) CandidateOnboarded(ctx context.Context, candidateName, officeEmail, jobTitle string) error {
	return m.Called(ctx, candidateName, officeEmail, jobTitle).Error(0)
}

// mockStore bundles every mock behind a TxRunner whose ExecTx simply runs
// the closure against the same mocks.
type mockStore struct {
	jobs       *MockJobRepo
	referrals  *MockReferralRepo
	rounds     *MockRoundRepo
	interviews *MockInterviewRepo
	offers     *MockOfferRepo
	history    *MockHistoryRepo
	directory  *MockDirectoryRepo
}

func newMockStore() *mockStore {
	return &mockStore{
		jobs:       new(MockJobRepo),
		referrals:  new(MockReferralRepo),
		rounds:     new(MockRoundRepo),
		interviews: new(MockInterviewRepo),
		offers:     new(MockOfferRepo),
		history:    new(MockHistoryRepo),
		directory:  new(MockDirectoryRepo),
	}
}

func (s *mockStore) repositories() repository.Repositories {
	return repository.Repositories{
		Jobs:       s.jobs,
		Referrals:  s.referrals,
		Rounds:     s.rounds,
		Interviews: s.interviews,
		Offers:     s.offers,
		History:    s.history,
		Directory:  s.directory,
	}
}

func (s *mockStore) ExecTx(ctx context.Context, fn func(repository.Repositories) error) error {
	return fn(s.repositories())
}
