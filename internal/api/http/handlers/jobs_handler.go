package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/jobboard-service/internal/api/dto"
	"github.com/spec-kit/jobboard-service/internal/domain"
	"github.com/spec-kit/jobboard-service/internal/repository"
	"github.com/spec-kit/jobboard-service/internal/service"
	apperrors "github.com/spec-kit/jobboard-service/pkg/util"
)

// JobsHandler manages job posting endpoints.
type JobsHandler struct {
	service *service.JobService
}

// NewJobsHandler constructs handler.
func NewJobsHandler(jobService *service.JobService) *JobsHandler {
	return &JobsHandler{service: jobService}
}

// CreateJob POST /api/jobs.
func (h *JobsHandler) CreateJob(c *fiber.Ctx) error {
	var req dto.CreateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if missing := missingJobFields(&req); len(missing) > 0 {
		return apperrors.NewValidationError("all fields are required", fiber.Map{"missing": missing})
	}

	input := service.JobCreateInput{
		Title:       req.Title,
		Type:        req.Type,
		Location:    req.Location,
		Description: req.Description,
		Salary:      req.Salary,
		Company: domain.Company{
			Name:         req.Company.Name,
			Description:  req.Company.Description,
			ContactEmail: req.Company.ContactEmail,
			ContactPhone: req.Company.ContactPhone,
		},
	}
	job, err := h.service.CreateJob(c.Context(), input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(jobResponse(job))
}

// ListJobs GET /api/jobs.
func (h *JobsHandler) ListJobs(c *fiber.Ctx) error {
	filter := parseJobQuery(c)
	jobs, err := h.service.ListJobs(c.Context(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		items = append(items, jobResponse(&jobs[i]))
	}
	return c.JSON(items)
}

// GetJob GET /api/jobs/:id.
func (h *JobsHandler) GetJob(c *fiber.Ctx) error {
	job, err := h.service.GetJob(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(jobResponse(job))
}

// UpdateJob PUT /api/jobs/:id. Absent fields keep their stored values.
func (h *JobsHandler) UpdateJob(c *fiber.Ctx) error {
	var req dto.UpdateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.JobUpdateInput{
		Title:       req.Title,
		Type:        req.Type,
		Location:    req.Location,
		Description: req.Description,
		Salary:      req.Salary,
	}
	if req.Company != nil {
		input.CompanyName = req.Company.Name
		input.CompanyDescription = req.Company.Description
		input.CompanyEmail = req.Company.ContactEmail
		input.CompanyPhone = req.Company.ContactPhone
	}

	job, err := h.service.UpdateJob(c.Context(), c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(jobResponse(job))
}

// DeleteJob DELETE /api/jobs/:id.
func (h *JobsHandler) DeleteJob(c *fiber.Ctx) error {
	if err := h.service.DeleteJob(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Job deleted successfully"})
}

func missingJobFields(req *dto.CreateJobRequest) []string {
	var missing []string
	appendMissing := func(name, val string) {
		if val == "" {
			missing = append(missing, name)
		}
	}
	appendMissing("title", req.Title)
	appendMissing("type", req.Type)
	appendMissing("location", req.Location)
	appendMissing("description", req.Description)
	appendMissing("salary", req.Salary)
	if req.Company == nil {
		missing = append(missing, "company")
		return missing
	}
	appendMissing("company.name", req.Company.Name)
	appendMissing("company.description", req.Company.Description)
	appendMissing("company.contactEmail", req.Company.ContactEmail)
	appendMissing("company.contactPhone", req.Company.ContactPhone)
	return missing
}

func parseJobQuery(c *fiber.Ctx) repository.JobFilter {
	filter := repository.JobFilter{}
	if search := c.Query("search"); search != "" {
		filter.Search = &search
	}
	if jobType := c.Query("type"); jobType != "" {
		filter.Type = &jobType
	}
	if location := c.Query("location"); location != "" {
		filter.Location = &location
	}
	page := parseInt(c.Query("page"), 1)
	limit := parseInt(c.Query("_limit"), 10)
	filter.Offset = (page - 1) * limit
	filter.Limit = limit
	return filter
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func jobResponse(job *domain.Job) dto.JobResponse {
	return dto.JobResponse{
		ID:          job.ID,
		Title:       job.Title,
		Type:        job.Type,
		Location:    job.Location,
		Description: job.Description,
		Salary:      job.Salary,
		Company: dto.CompanyPayload{
			Name:         job.Company.Name,
			Description:  job.Company.Description,
			ContactEmail: job.Company.ContactEmail,
			ContactPhone: job.Company.ContactPhone,
		},
		CreatedAt: job.CreatedAt,
		UpdatedAt: job.UpdatedAt,
	}
}
