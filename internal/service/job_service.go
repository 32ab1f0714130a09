package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/jobboard-service/internal/domain"
	"github.com/spec-kit/jobboard-service/internal/repository"
	apperrors "github.com/spec-kit/jobboard-service/pkg/util"
)

// JobCreateInput carries a fully validated job posting.
type JobCreateInput struct {
	Title       string
	Type        string
	Location    string
	Description string
	Salary      string
	Company     domain.Company
}

// JobUpdateInput carries a partial update; nil fields keep their stored value.
type JobUpdateInput struct {
	Title              *string
	Type               *string
	Location           *string
	Description        *string
	Salary             *string
	CompanyName        *string
	CompanyDescription *string
	CompanyEmail       *string
	CompanyPhone       *string
}

// JobService coordinates job posting operations.
type JobService struct {
	jobs repository.JobRepository
}

// NewJobService builds the service.
func NewJobService(jobs repository.JobRepository) *JobService {
	return &JobService{jobs: jobs}
}

// CreateJob persists a new posting.
func (s *JobService) CreateJob(ctx context.Context, input JobCreateInput) (*domain.Job, error) {
	job := &domain.Job{
		Title:       input.Title,
		Type:        input.Type,
		Location:    input.Location,
		Description: input.Description,
		Salary:      input.Salary,
		Company:     input.Company,
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// ListJobs returns postings filtered and paginated, newest first.
func (s *JobService) ListJobs(ctx context.Context, filter repository.JobFilter) ([]domain.Job, error) {
	return s.jobs.ListWithFilter(ctx, filter)
}

// GetJob fetches a posting by id.
func (s *JobService) GetJob(ctx context.Context, id string) (*domain.Job, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("job", map[string]any{"id": id})
		}
		return nil, err
	}
	return job, nil
}

// UpdateJob merges the provided fields into the stored posting and returns
// the post-update record.
func (s *JobService) UpdateJob(ctx context.Context, id string, input JobUpdateInput) (*domain.Job, error) {
	job, err := s.GetJob(ctx, id)
	if err != nil {
		return nil, err
	}

	applyIfSet(&job.Title, input.Title)
	applyIfSet(&job.Type, input.Type)
	applyIfSet(&job.Location, input.Location)
	applyIfSet(&job.Description, input.Description)
	applyIfSet(&job.Salary, input.Salary)
	applyIfSet(&job.Company.Name, input.CompanyName)
	applyIfSet(&job.Company.Description, input.CompanyDescription)
	applyIfSet(&job.Company.ContactEmail, input.CompanyEmail)
	applyIfSet(&job.Company.ContactPhone, input.CompanyPhone)

	if err := s.jobs.Update(ctx, job); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("job", map[string]any{"id": id})
		}
		return nil, err
	}
	return job, nil
}

// DeleteJob removes a posting. Deleting an absent posting reports success;
// callers cannot detect a no-op delete.
func (s *JobService) DeleteJob(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	return s.jobs.Delete(ctx, id)
}

func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperrors.NewBadID("malformed job id")
	}
	return nil
}

func applyIfSet(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
