package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/jobboard-service/internal/domain"
)

// JobFilter captures listing parameters. Search matches the title as a
// case-insensitive substring; Type and Location match exactly.
type JobFilter struct {
	Search   *string
	Type     *string
	Location *string
	Limit    int
	Offset   int
}

// JobRepository encapsulates job posting persistence.
type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) error
	Update(ctx context.Context, job *domain.Job) error
	GetByID(ctx context.Context, id string) (*domain.Job, error)
	Delete(ctx context.Context, id string) error
	ListWithFilter(ctx context.Context, filter JobFilter) ([]domain.Job, error)
}

type jobRepository struct {
	pool *pgxpool.Pool
}

// NewJobRepository instantiates repository.
func NewJobRepository(pool *pgxpool.Pool) JobRepository {
	return &jobRepository{pool: pool}
}

func (r *jobRepository) Create(ctx context.Context, job *domain.Job) error {
	const query = `
        INSERT INTO jobs (title, type, location, description, salary,
                          company_name, company_description, company_contact_email, company_contact_phone)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		job.Title,
		job.Type,
		job.Location,
		job.Description,
		job.Salary,
		job.Company.Name,
		job.Company.Description,
		job.Company.ContactEmail,
		job.Company.ContactPhone,
	).Scan(&job.ID, &job.CreatedAt, &job.UpdatedAt)
}

func (r *jobRepository) Update(ctx context.Context, job *domain.Job) error {
	const query = `
        UPDATE jobs SET title=$1, type=$2, location=$3, description=$4, salary=$5,
            company_name=$6, company_description=$7, company_contact_email=$8, company_contact_phone=$9,
            updated_at=NOW()
        WHERE id=$10
        RETURNING updated_at`
	if err := r.pool.QueryRow(ctx, query,
		job.Title,
		job.Type,
		job.Location,
		job.Description,
		job.Salary,
		job.Company.Name,
		job.Company.Description,
		job.Company.ContactEmail,
		job.Company.ContactPhone,
		job.ID,
	).Scan(&job.UpdatedAt); err != nil {
		return err
	}
	return nil
}

func (r *jobRepository) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	const query = `
        SELECT id, title, type, location, description, salary,
               company_name, company_description, company_contact_email, company_contact_phone,
               created_at, updated_at
        FROM jobs WHERE id=$1`
	var job domain.Job
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&job.ID,
		&job.Title,
		&job.Type,
		&job.Location,
		&job.Description,
		&job.Salary,
		&job.Company.Name,
		&job.Company.Description,
		&job.Company.ContactEmail,
		&job.Company.ContactPhone,
		&job.CreatedAt,
		&job.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &job, nil
}

// Delete removes a job by id. Deleting an absent row is not an error;
// callers cannot distinguish a no-op delete.
func (r *jobRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM jobs WHERE id=$1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}

func (r *jobRepository) ListWithFilter(ctx context.Context, filter JobFilter) ([]domain.Job, error) {
	base := `SELECT id, title, type, location, description, salary,
                    company_name, company_description, company_contact_email, company_contact_phone,
                    created_at, updated_at
             FROM jobs`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Search != nil && strings.TrimSpace(*filter.Search) != "" {
		search := "%" + escapeLikePattern(strings.ToLower(strings.TrimSpace(*filter.Search))) + "%"
		args = append(args, search)
		clauses = append(clauses, fmt.Sprintf(`LOWER(title) LIKE $%d ESCAPE '\'`, len(args)))
	}
	if filter.Type != nil {
		args = append(args, *filter.Type)
		clauses = append(clauses, fmt.Sprintf("type=$%d", len(args)))
	}
	if filter.Location != nil {
		args = append(args, *filter.Location)
		clauses = append(clauses, fmt.Sprintf("location=$%d", len(args)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanJobs(rows)
}

// escapeLikePattern neutralizes LIKE metacharacters so a search term such
// as "100%" matches literally instead of matching every title.
func escapeLikePattern(term string) string {
	return likeEscaper.Replace(term)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func scanJobs(rows pgx.Rows) ([]domain.Job, error) {
	var result []domain.Job
	for rows.Next() {
		var job domain.Job
		if err := rows.Scan(
			&job.ID,
			&job.Title,
			&job.Type,
			&job.Location,
			&job.Description,
			&job.Salary,
			&job.Company.Name,
			&job.Company.Description,
			&job.Company.ContactEmail,
			&job.Company.ContactPhone,
			&job.CreatedAt,
			&job.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, job)
	}
	return result, rows.Err()
}
