package services

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/bhujal/registry/internal/auth"
	"github.com/bhujal/registry/internal/models"
	"github.com/bhujal/registry/internal/repository/mocks"
	"github.com/bhujal/registry/internal/validation"
	appErr "github.com/bhujal/registry/pkg/errors"
	"github.com/bhujal/registry/pkg/logger"
)

func TestMain(m *testing.M) {
	if _, err := logger.Init("info", "json"); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	os.Exit(m.Run())
}

func newAuthFixture(t *testing.T) (AuthService, *mocks.CustomerRepository, *auth.Hasher, *auth.TokenService) {
	t.Helper()
	h, err := auth.NewHasher(bcrypt.MinCost)
	require.NoError(t, err)
	tokens, err := auth.NewTokenService(auth.TokenConfig{Secret: []byte("service-test-secret-123"), TTL: time.Hour})
	require.NoError(t, err)
	repo := &mocks.CustomerRepository{}
	return NewAuthService(repo, h, tokens), repo, h, tokens
}

func validSignup() SignupInput {
	return SignupInput{
		Name:            "Asha Rao",
		Email:           "Asha@Example.com",
		PhoneNumber:     "+919876543210",
		Address:         "Hebbal, Bengaluru",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	}
}

func TestSignupSuccess(t *testing.T) {
	svc, repo, h, tokens := newAuthFixture(t)
	id := uuid.New()

	repo.On("ExistsByEmailOrPhone", mock.Anything, "asha@example.com", "+919876543210", nil).Return(false, nil).Once()
	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Customer")).
		Run(func(args mock.Arguments) {
			c := args.Get(1).(*models.Customer)
			require.Empty(t, c.Password, "raw secret cleared before persistence")
			require.True(t, h.VerifySecret("secret1", c.PasswordHash))
			c.ID = id
		}).Return(nil).Once()

	sess, err := svc.Signup(context.Background(), validSignup())
	require.NoError(t, err)
	require.Equal(t, "asha@example.com", sess.Customer.Email)

	sub, err := tokens.Verify(sess.Token)
	require.NoError(t, err)
	require.Equal(t, id.String(), sub)
	repo.AssertExpectations(t)
}

func TestSignupRejectsBeforePersistence(t *testing.T) {
	cases := map[string]struct {
		mutate func(*SignupInput)
		msg    string
	}{
		"missing address": {func(in *SignupInput) { in.Address = "  " }, MsgMissingSignupFields},
		"missing confirm": {func(in *SignupInput) { in.ConfirmPassword = "" }, MsgMissingSignupFields},
		"mismatch":        {func(in *SignupInput) { in.ConfirmPassword = "secret2" }, MsgPasswordMismatch},
		"short password":  {func(in *SignupInput) { in.Password, in.ConfirmPassword = "abc", "abc" }, "Password must be at least 6 characters long"},
		"bad phone":       {func(in *SignupInput) { in.PhoneNumber = "12-34" }, "Please provide a valid phone number"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			svc, repo, _, _ := newAuthFixture(t)
			in := validSignup()
			tc.mutate(&in)

			_, err := svc.Signup(context.Background(), in)
			require.True(t, appErr.IsCode(err, appErr.CodeInvalid), err)
			require.Equal(t, tc.msg, appErr.MessageOf(err))
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestSignupDuplicatePrecheck(t *testing.T) {
	svc, repo, _, _ := newAuthFixture(t)
	repo.On("ExistsByEmailOrPhone", mock.Anything, "asha@example.com", "+919876543210", nil).Return(true, nil).Once()

	_, err := svc.Signup(context.Background(), validSignup())
	require.True(t, appErr.IsCode(err, appErr.CodeInvalid))
	require.Equal(t, MsgDuplicateCustomer, appErr.MessageOf(err))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSignupConcurrentSameEmailOneWins(t *testing.T) {
	svc, repo, _, _ := newAuthFixture(t)

	// Both requests pass the pre-check; the unique index rejects the loser.
	repo.On("ExistsByEmailOrPhone", mock.Anything, mock.Anything, mock.Anything, nil).Return(false, nil)
	repo.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { args.Get(1).(*models.Customer).ID = uuid.New() }).
		Return(nil).Once()
	repo.On("Create", mock.Anything, mock.Anything).
		Return(appErr.New(appErr.CodeAlreadyExists, "entity already exists")).Once()

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Signup(context.Background(), validSignup())
		}(i)
	}
	wg.Wait()

	var ok, dup int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case appErr.IsCode(err, appErr.CodeInvalid) && appErr.MessageOf(err) == MsgDuplicateCustomer:
			dup++
		}
	}
	require.Equal(t, 1, ok)
	require.Equal(t, 1, dup)
}

func TestLoginSuccess(t *testing.T) {
	svc, repo, h, tokens := newAuthFixture(t)
	hash, err := h.RegisterCredential("secret1")
	require.NoError(t, err)
	stored := &models.Customer{ID: uuid.New(), Email: "asha@example.com", PasswordHash: hash}

	repo.On("GetByEmail", mock.Anything, "asha@example.com", mock.Anything).Return(nil, stored).Once()

	sess, err := svc.Login(context.Background(), LoginInput{Email: " ASHA@example.com", Password: "secret1"})
	require.NoError(t, err)
	require.Equal(t, stored.ID, sess.Customer.ID)
	sub, err := tokens.Verify(sess.Token)
	require.NoError(t, err)
	require.Equal(t, stored.ID.String(), sub)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, repo, h, _ := newAuthFixture(t)
	hash, err := h.RegisterCredential("secret1")
	require.NoError(t, err)
	stored := &models.Customer{ID: uuid.New(), Email: "asha@example.com", PasswordHash: hash}

	repo.On("GetByEmail", mock.Anything, "asha@example.com", mock.Anything).Return(nil, stored).Once()
	repo.On("GetByEmail", mock.Anything, "ghost@example.com", mock.Anything).
		Return(appErr.New(appErr.CodeNotFound, "customer not found")).Once()

	_, wrongSecret := svc.Login(context.Background(), LoginInput{Email: "asha@example.com", Password: "nope123"})
	_, unknown := svc.Login(context.Background(), LoginInput{Email: "ghost@example.com", Password: "secret1"})

	for _, err := range []error{wrongSecret, unknown} {
		require.True(t, appErr.IsCode(err, appErr.CodeUnauthorized))
		require.Equal(t, MsgInvalidCredentials, appErr.MessageOf(err))
	}
	require.Equal(t, wrongSecret.Error(), unknown.Error())
}

func TestLoginMissingFieldsAndStoreFault(t *testing.T) {
	svc, repo, _, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), LoginInput{Email: "asha@example.com"})
	require.Equal(t, MsgMissingLoginFields, appErr.MessageOf(err))

	repo.On("GetByEmail", mock.Anything, "asha@example.com", mock.Anything).
		Return(appErr.Wrap(errors.New("dial tcp: refused"), appErr.CodeInternal, "get customer by email failed")).Once()
	_, err = svc.Login(context.Background(), LoginInput{Email: "asha@example.com", Password: "secret1"})
	require.True(t, appErr.IsCode(err, appErr.CodeInternal))
}

func TestGetCustomer(t *testing.T) {
	svc, repo, _, _ := newAuthFixture(t)
	id := uuid.New()
	repo.On("GetByID", mock.Anything, id, mock.Anything).Return(nil, &models.Customer{ID: id, Name: "Asha"}).Once()

	c, err := svc.GetCustomer(context.Background(), id.String())
	require.NoError(t, err)
	require.Equal(t, "Asha", c.Name)

	_, err = svc.GetCustomer(context.Background(), "not-a-uuid")
	require.True(t, appErr.IsCode(err, appErr.CodeNotFound))
}

func TestUpdateProfileKeepsCredential(t *testing.T) {
	svc, repo, _, _ := newAuthFixture(t)
	id := uuid.New()
	cur := &models.Customer{ID: id, Name: "Asha", Email: "asha@example.com", PhoneNumber: "+919876543210", Address: "Hebbal", PasswordHash: "$2a$04$stored"}

	repo.On("GetByID", mock.Anything, id, mock.Anything).Return(nil, cur).Once()
	repo.On("ExistsByEmailOrPhone", mock.Anything, "", "+919800000000", id).Return(false, nil).Once()
	repo.On("Update", mock.Anything, mock.MatchedBy(func(c *models.Customer) bool {
		return c.PasswordHash == "$2a$04$stored" && c.Email == "asha@example.com" &&
			c.PhoneNumber == "+919800000000" && c.Name == "Asha"
	})).Return(nil).Once()

	phone := "+919800000000"
	got, err := svc.UpdateProfile(context.Background(), id.String(), validation.ProfileInput{PhoneNumber: &phone})
	require.NoError(t, err)
	require.Equal(t, "+919800000000", got.PhoneNumber)
	repo.AssertExpectations(t)
}

func TestUpdateProfileDuplicatePhone(t *testing.T) {
	svc, repo, _, _ := newAuthFixture(t)
	id := uuid.New()
	cur := &models.Customer{ID: id, Name: "Asha", PhoneNumber: "+919876543210", Address: "Hebbal", PasswordHash: "h"}

	repo.On("GetByID", mock.Anything, id, mock.Anything).Return(nil, cur).Once()
	repo.On("ExistsByEmailOrPhone", mock.Anything, "", "+919800000000", id).Return(true, nil).Once()

	phone := "+919800000000"
	_, err := svc.UpdateProfile(context.Background(), id.String(), validation.ProfileInput{PhoneNumber: &phone})
	require.Equal(t, MsgDuplicateCustomer, appErr.MessageOf(err))
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
