package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bhujal/registry/internal/models"
	"github.com/bhujal/registry/internal/repository"
	"github.com/bhujal/registry/internal/validation"
	appErr "github.com/bhujal/registry/pkg/errors"
	"github.com/bhujal/registry/pkg/logger"
)

// Client-facing messages for the auth flows.
const (
	MsgMissingSignupFields = "Please provide all required fields"
	MsgPasswordMismatch    = "Passwords do not match"
	MsgDuplicateCustomer   = "Customer with this email or phone number already exists"
	MsgMissingLoginFields  = "Please provide email and password"
	MsgInvalidCredentials  = "Invalid credentials"
	MsgCustomerNotFound    = "Customer not found"
)

// CredentialStore hashes and checks customer secrets.
type CredentialStore interface {
	BeforePersist(old, next *models.Customer) error
	VerifySecret(raw, hash string) bool
	BurnCompare(raw string)
}

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	Issue(subjectID string) (string, error)
}

type SignupInput struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	PhoneNumber     string `json:"phoneNumber"`
	Address         string `json:"address"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Session is an authenticated customer and their token.
type Session struct {
	Customer *models.Customer `json:"customer"`
	Token    string           `json:"token"`
}

type AuthService interface {
	Signup(ctx context.Context, in SignupInput) (*Session, error)
	Login(ctx context.Context, in LoginInput) (*Session, error)
	// GetCustomer resolves an identifier to a customer. Unknown or malformed
	// identifiers yield CodeNotFound.
	GetCustomer(ctx context.Context, id string) (*models.Customer, error)
	UpdateProfile(ctx context.Context, id string, in validation.ProfileInput) (*models.Customer, error)
}

type authService struct {
	customers   repository.CustomerRepository
	credentials CredentialStore
	tokens      TokenIssuer
}

var _ AuthService = (*authService)(nil)

func NewAuthService(customers repository.CustomerRepository, credentials CredentialStore, tokens TokenIssuer) AuthService {
	return &authService{customers: customers, credentials: credentials, tokens: tokens}
}

func (s *authService) Signup(ctx context.Context, in SignupInput) (*Session, error) {
	if blank(in.Name, in.Email, in.PhoneNumber, in.Address, in.Password, in.ConfirmPassword) {
		return nil, appErr.New(appErr.CodeInvalid, MsgMissingSignupFields)
	}
	if in.Password != in.ConfirmPassword {
		return nil, appErr.New(appErr.CodeInvalid, MsgPasswordMismatch)
	}

	reg := validation.Registration{
		Name:        in.Name,
		Email:       in.Email,
		PhoneNumber: in.PhoneNumber,
		Address:     in.Address,
		Password:    in.Password,
	}
	if err := validation.ValidateRegistration(&reg); err != nil {
		return nil, invalid(err)
	}

	taken, err := s.customers.ExistsByEmailOrPhone(ctx, reg.Email, reg.PhoneNumber, nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, appErr.New(appErr.CodeInvalid, MsgDuplicateCustomer)
	}

	c := &models.Customer{
		Name:        reg.Name,
		Email:       reg.Email,
		PhoneNumber: reg.PhoneNumber,
		Address:     reg.Address,
		Password:    reg.Password,
	}
	if err := s.credentials.BeforePersist(nil, c); err != nil {
		return nil, invalid(err)
	}
	if err := s.customers.Create(ctx, c); err != nil {
		// Lost a race with a concurrent signup for the same email or phone.
		if appErr.IsCode(err, appErr.CodeAlreadyExists) {
			return nil, appErr.Wrap(err, appErr.CodeInvalid, MsgDuplicateCustomer)
		}
		return nil, err
	}

	token, err := s.tokens.Issue(c.ID.String())
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "issue token failed")
	}

	logger.L().Info("customer registered", zap.String("customer_id", c.ID.String()))
	return &Session{Customer: c, Token: token}, nil
}

func (s *authService) Login(ctx context.Context, in LoginInput) (*Session, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return nil, appErr.New(appErr.CodeInvalid, MsgMissingLoginFields)
	}

	var c models.Customer
	if err := s.customers.GetByEmail(ctx, email, &c); err != nil {
		if appErr.IsCode(err, appErr.CodeNotFound) {
			s.credentials.BurnCompare(in.Password)
			return nil, appErr.New(appErr.CodeUnauthorized, MsgInvalidCredentials)
		}
		return nil, err
	}
	if !s.credentials.VerifySecret(in.Password, c.PasswordHash) {
		return nil, appErr.New(appErr.CodeUnauthorized, MsgInvalidCredentials)
	}

	token, err := s.tokens.Issue(c.ID.String())
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "issue token failed")
	}
	logger.L().Info("customer logged in", zap.String("customer_id", c.ID.String()))
	return &Session{Customer: &c, Token: token}, nil
}

func (s *authService) GetCustomer(ctx context.Context, id string) (*models.Customer, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, appErr.New(appErr.CodeNotFound, MsgCustomerNotFound)
	}
	var c models.Customer
	if err := s.customers.GetByID(ctx, uid, &c); err != nil {
		if appErr.IsCode(err, appErr.CodeNotFound) {
			return nil, appErr.New(appErr.CodeNotFound, MsgCustomerNotFound)
		}
		return nil, err
	}
	return &c, nil
}

func (s *authService) UpdateProfile(ctx context.Context, id string, in validation.ProfileInput) (*models.Customer, error) {
	cur, err := s.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}

	p, err := validation.ValidateProfile(in, validation.Profile{
		Name:        cur.Name,
		PhoneNumber: cur.PhoneNumber,
		Address:     cur.Address,
	})
	if err != nil {
		return nil, invalid(err)
	}

	if p.PhoneNumber != cur.PhoneNumber {
		taken, err := s.customers.ExistsByEmailOrPhone(ctx, "", p.PhoneNumber, cur.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, appErr.New(appErr.CodeInvalid, MsgDuplicateCustomer)
		}
	}

	next := *cur
	next.Name = p.Name
	next.PhoneNumber = p.PhoneNumber
	next.Address = p.Address
	if err := s.credentials.BeforePersist(cur, &next); err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "prepare customer failed")
	}
	if err := s.customers.Update(ctx, &next); err != nil {
		if appErr.IsCode(err, appErr.CodeAlreadyExists) {
			return nil, appErr.Wrap(err, appErr.CodeInvalid, MsgDuplicateCustomer)
		}
		return nil, err
	}

	logger.L().Info("customer profile updated", zap.String("customer_id", next.ID.String()))
	return &next, nil
}

func blank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}

// invalid converts a validation failure into a CodeInvalid AppError that
// still carries the per-field detail.
func invalid(err error) error {
	var ve *validation.ValidationError
	if errors.As(err, &ve) {
		return appErr.Wrap(ve, appErr.CodeInvalid, ve.Error())
	}
	return appErr.Wrap(err, appErr.CodeInternal, "unexpected validation failure")
}
