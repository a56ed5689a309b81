package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"talentdesk-backend/internal/domain"
	"talentdesk-backend/internal/logger"
	"talentdesk-backend/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

type onboardingService struct {
	tx      repository.TxRunner
	jobRepo repository.JobOpeningRepository
	sink    EventSink
}

func NewOnboardingService(
	tx repository.TxRunner,
	jobRepo repository.JobOpeningRepository,
	sink EventSink,
) OnboardingService {
	return &onboardingService{tx: tx, jobRepo: jobRepo, sink: sink}
}

// Onboard converts a candidate with an accepted offer into an employee
// record and closes the candidacy as joined. Everything commits in one
// transaction; the temporary password is returned once and only its hash
// is stored.
func (s *onboardingService) Onboard(ctx context.Context, input OnboardInput) (*OnboardResult, error) {
	officeEmail := strings.ToLower(strings.TrimSpace(input.OfficeEmail))
	if officeEmail == "" {
		return nil, domain.NewInvalidState("office email is required")
	}
	if strings.TrimSpace(input.EmployeeCode) == "" {
		return nil, domain.NewInvalidState("employee code is required")
	}
	joiningDate := input.JoiningDate
	if joiningDate.IsZero() {
		joiningDate = time.Now()
	}

	tempPassword := fmt.Sprintf("Welcome@%d", time.Now().Year())
	hash, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash temporary password: %w", err)
	}

	var result *OnboardResult
	var jobTitle string
	err = s.tx.ExecTx(ctx, func(r repository.Repositories) error {
		referral, err := r.Referrals.GetForUpdate(ctx, input.ReferralID)
		if err != nil {
			return err
		}
		next, err := domain.Transition(referral.Status, domain.EventOnboarded)
		if err != nil {
			return err
		}

		offers, err := r.Offers.ListByReferral(ctx, referral.ID)
		if err != nil {
			return err
		}
		var accepted *domain.CandidateOffer
		for i := range offers {
			if offers[i].Status == domain.OfferStatusAccepted {
				accepted = &offers[i]
			}
		}
		if accepted == nil {
			return domain.NewInvalidState("candidate has no accepted offer")
		}

		job, err := r.Jobs.GetByID(ctx, referral.JobOpeningID)
		if err != nil {
			return err
		}
		jobTitle = job.Title

		if exists, err := r.Directory.OfficeEmailExists(ctx, officeEmail); err != nil {
			return err
		} else if exists {
			return domain.NewConflict("employee", "office email already in use", "")
		}
		if exists, err := r.Directory.EmployeeCodeExists(ctx, input.EmployeeCode); err != nil {
			return err
		} else if exists {
			return domain.NewConflict("employee", "employee code already in use", "")
		}

		// Department match is best effort; an unknown department name
		// leaves the field unset rather than blocking the conversion.
		var departmentID *string
		if job.Department != "" {
			if dept, err := r.Directory.FindDepartmentByName(ctx, job.Department); err == nil {
				departmentID = &dept.ID
			} else if !domain.IsNotFound(err) {
				return err
			} else {
				logger.Warn("department not found during onboarding",
					"referral_id", referral.ID, "department", job.Department)
			}
		}

		first, last := domain.SplitName(referral.CandidateName)
		employee := &domain.Employee{
			FirstName:        first,
			LastName:         last,
			PersonalEmail:    referral.CandidateEmail,
			OfficeEmail:      officeEmail,
			Phone:            referral.CandidatePhone,
			EmployeeCode:     input.EmployeeCode,
			DepartmentID:     departmentID,
			DesignationID:    input.DesignationID,
			ReportingManager: input.ReportingManager,
			EmploymentType:   domain.EmploymentTypeForJob(job.JobType),
			PasswordHash:     string(hash),
			JoiningDate:      joiningDate,
			IsActive:         true,
		}
		if err := r.Directory.CreateEmployee(ctx, employee); err != nil {
			return err
		}
		if err := r.Directory.AssignRole(ctx, employee.ID, "employee"); err != nil {
			return err
		}

		if err := r.Referrals.UpdateStatus(ctx, referral.ID, next); err != nil {
			return err
		}
		if err := r.History.Append(ctx, &domain.InterviewHistory{
			ReferralID:    referral.ID,
			ChangedByID:   input.ActorID,
			Action:        domain.ActionStatusChange,
			PreviousValue: string(referral.Status),
			NewValue:      string(next),
			Notes:         fmt.Sprintf("onboarded as %s", employee.EmployeeCode),
		}); err != nil {
			return err
		}

		// The signed letter stays in the document store; the employee file
		// references the same handle instead of duplicating the bytes.
		letterRef := ""
		if accepted.LetterState == domain.LetterStateAttached {
			letterRef = accepted.LetterRef
		}

		result = &OnboardResult{
			Employee:       employee,
			TempPassword:   tempPassword,
			OfferLetterRef: letterRef,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.sink.CandidateOnboarded(ctx, result.Employee.FullName(), result.Employee.OfficeEmail, jobTitle); err != nil {
		logger.Warn("onboarding notification failed", "employee_id", result.Employee.ID, "error", err)
	}
	return result, nil
}
