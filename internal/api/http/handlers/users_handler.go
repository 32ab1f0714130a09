package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/jobboard-service/internal/api/dto"
	"github.com/spec-kit/jobboard-service/internal/auth"
	"github.com/spec-kit/jobboard-service/internal/domain"
	"github.com/spec-kit/jobboard-service/internal/service"
	apperrors "github.com/spec-kit/jobboard-service/pkg/util"
)

const dateOfBirthLayout = "2006-01-02"

// UsersHandler exposes registration, login and token introspection.
type UsersHandler struct {
	auth *service.AuthService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService) *UsersHandler {
	return &UsersHandler{auth: authService}
}

// Register handles POST /api/auth/register.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.UserRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if missing := missingProfileFields(&req); len(missing) > 0 {
		return apperrors.NewValidationError("all fields are required", fiber.Map{"missing": missing})
	}

	dob, err := parseDateOfBirth(req.DateOfBirth)
	if err != nil {
		return apperrors.NewValidationError("date_of_birth must be a valid date", nil)
	}

	user, token, exp, err := h.auth.Register(c.Context(), service.RegisterInput{
		Name:             req.Name,
		Email:            req.Email,
		Password:         req.Password,
		PhoneNumber:      req.PhoneNumber,
		Gender:           req.Gender,
		DateOfBirth:      dob,
		MembershipStatus: req.MembershipStatus,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(dto.AuthResponse{
		User:      userResponse(user),
		Token:     token,
		ExpiresAt: exp,
	})
}

// Login handles POST /api/auth/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.UserLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	user, token, exp, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.AuthResponse{
		User:      userResponse(user),
		Token:     token,
		ExpiresAt: exp,
	})
}

// Verify handles GET /api/auth/verify. The auth middleware has already
// validated the token, so this is pure introspection.
func (h *UsersHandler) Verify(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	return c.JSON(dto.VerifyResponse{
		User:      userResponse(principal.User),
		ExpiresAt: principal.Claims.ExpiresAt.Time,
	})
}

func missingProfileFields(req *dto.UserRegisterRequest) []string {
	var missing []string
	appendMissing := func(name, val string) {
		if val == "" {
			missing = append(missing, name)
		}
	}
	appendMissing("name", req.Name)
	appendMissing("email", req.Email)
	appendMissing("password", req.Password)
	appendMissing("phone_number", req.PhoneNumber)
	appendMissing("gender", req.Gender)
	appendMissing("date_of_birth", req.DateOfBirth)
	appendMissing("membership_status", req.MembershipStatus)
	return missing
}

func parseDateOfBirth(val string) (time.Time, error) {
	if t, err := time.Parse(dateOfBirthLayout, val); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, val)
}

func userResponse(user *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:               user.ID,
		Name:             user.Name,
		Email:            user.Email,
		PhoneNumber:      user.PhoneNumber,
		Gender:           user.Gender,
		DateOfBirth:      user.DateOfBirth.Format(dateOfBirthLayout),
		MembershipStatus: user.MembershipStatus,
		CreatedAt:        user.CreatedAt,
		UpdatedAt:        user.UpdatedAt,
	}
}
