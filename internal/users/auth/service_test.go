// Copyright (c) 2026 UniPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/taibuivan/uniportal/internal/mocks"
	"github.com/taibuivan/uniportal/internal/platform/apperr"
	"github.com/taibuivan/uniportal/internal/platform/metrics"
	"github.com/taibuivan/uniportal/internal/platform/sec"
	"github.com/taibuivan/uniportal/internal/users/auth"
)

func newService(t *testing.T) (*auth.Service, *mocks.MockPrincipalRepository, *sec.TokenService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockPrincipalRepository(ctrl)

	tokens, err := sec.NewTokenService("auth-service-test-secret", "uniportal.test")
	require.NoError(t, err)

	return auth.NewService(repo, tokens, metrics.New()), repo, tokens
}

/*
TestLogin_IssuesDayToken mints a 24h token carrying the requested role.
*/
func TestLogin_IssuesDayToken(t *testing.T) {
	service, repo, tokens := newService(t)

	repo.EXPECT().
		FindByEmail(gomock.Any(), sec.RoleStudent, "ines.martin@univ.fr").
		Return(storedStudent(), nil)

	result, err := service.Login(context.Background(), auth.LoginInput{
		Email:    "ines.martin@univ.fr",
		Password: testPassword,
		Role:     "etudiant",
	})
	require.NoError(t, err)
	assert.Empty(t, result.Principal.PasswordHash)

	payload := tokens.Verify(result.Token)
	require.NotNil(t, payload)
	assert.Equal(t, int64(11), payload.UserID)
	assert.Equal(t, sec.RoleStudent, payload.Role)
	assert.Equal(t, 24*time.Hour, payload.ExpiresAt.Sub(payload.IssuedAt))
}

/*
TestLogin_PropagatesValidatorErrors keeps the 404 and 401 distinction.
*/
func TestLogin_PropagatesValidatorErrors(t *testing.T) {
	service, repo, _ := newService(t)

	repo.EXPECT().
		FindByEmail(gomock.Any(), sec.RoleStudent, "absent@univ.fr").
		Return(nil, apperr.NotFound("missing"))
	repo.EXPECT().
		FindByEmail(gomock.Any(), sec.RoleStudent, "ines.martin@univ.fr").
		Return(storedStudent(), nil)

	_, err := service.Login(context.Background(), auth.LoginInput{Email: "absent@univ.fr", Password: "x", Role: "etudiant"})
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	_, err = service.Login(context.Background(), auth.LoginInput{Email: "ines.martin@univ.fr", Password: "x", Role: "etudiant"})
	assert.True(t, apperr.HasCode(err, apperr.CodeInvalidSecret))
}

/*
TestRegister_CreatesStudent hashes the password and signs the new student in.
*/
func TestRegister_CreatesStudent(t *testing.T) {
	service, repo, tokens := newService(t)

	repo.EXPECT().
		FindByEmail(gomock.Any(), sec.RoleStudent, "new.student@univ.fr").
		Return(nil, apperr.NotFound("missing"))
	repo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, principal *auth.Principal) error {
			assert.Equal(t, sec.RoleStudent, principal.Role)
			assert.Equal(t, "Léa", principal.FirstName)
			assert.Equal(t, "Dupont Moreau", principal.LastName)
			assert.True(t, sec.CheckPasswordHash("Str0ng!pass", principal.PasswordHash))
			principal.ID = 99
			return nil
		})

	result, err := service.Register(context.Background(), auth.RegisterInput{
		Email:    "New.Student@univ.fr",
		Password: "Str0ng!pass",
		Name:     "  Léa   Dupont Moreau ",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(99), result.Principal.ID)
	assert.Empty(t, result.Principal.PasswordHash)

	payload := tokens.Verify(result.Token)
	require.NotNil(t, payload)
	assert.Equal(t, sec.RoleStudent, payload.Role)
}

/*
TestRegister_Rejections covers input validation and duplicates.
*/
func TestRegister_Rejections(t *testing.T) {
	t.Run("weak password", func(t *testing.T) {
		service, _, _ := newService(t)
		_, err := service.Register(context.Background(), auth.RegisterInput{
			Email: "a@univ.fr", Password: "abc", Name: "Ada",
		})
		assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
	})

	t.Run("password over the bcrypt limit", func(t *testing.T) {
		service, _, _ := newService(t)
		_, err := service.Register(context.Background(), auth.RegisterInput{
			Email: "a@univ.fr", Password: "Abc12345!" + strings.Repeat("x", 80), Name: "Ada",
		})
		require.Error(t, err)
		assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
		assert.Equal(t, http.StatusBadRequest, apperr.As(err).HTTPStatus)
	})

	t.Run("invalid email", func(t *testing.T) {
		service, _, _ := newService(t)
		_, err := service.Register(context.Background(), auth.RegisterInput{
			Email: "not-an-email", Password: "Str0ng!pass", Name: "Ada",
		})
		assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
	})

	t.Run("missing name", func(t *testing.T) {
		service, _, _ := newService(t)
		_, err := service.Register(context.Background(), auth.RegisterInput{
			Email: "a@univ.fr", Password: "Str0ng!pass",
		})
		assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
	})

	t.Run("duplicate", func(t *testing.T) {
		service, repo, _ := newService(t)
		repo.EXPECT().FindByEmail(gomock.Any(), sec.RoleStudent, "ines.martin@univ.fr").Return(storedStudent(), nil)

		_, err := service.Register(context.Background(), auth.RegisterInput{
			Email: "ines.martin@univ.fr", Password: "Str0ng!pass", Name: "Inès",
		})
		assert.True(t, apperr.HasCode(err, apperr.CodeConflict))
	})

	t.Run("duplicate race", func(t *testing.T) {
		service, repo, _ := newService(t)
		repo.EXPECT().FindByEmail(gomock.Any(), sec.RoleStudent, gomock.Any()).Return(nil, apperr.NotFound("missing"))
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(apperr.Conflict("dup"))

		_, err := service.Register(context.Background(), auth.RegisterInput{
			Email: "late@univ.fr", Password: "Str0ng!pass", Name: "Late",
		})
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, 409, ae.HTTPStatus)
		assert.Equal(t, auth.MsgEmailTaken, ae.Message)
	})
}

/*
TestMe resolves the token subject inside its own partition.
*/
func TestMe(t *testing.T) {
	service, repo, _ := newService(t)

	repo.EXPECT().FindByID(gomock.Any(), sec.RoleStudent, int64(11)).Return(storedStudent(), nil)
	repo.EXPECT().FindByID(gomock.Any(), sec.RoleInstructor, int64(5)).Return(nil, apperr.NotFound("missing"))

	principal, err := service.Me(context.Background(), &sec.TokenPayload{UserID: 11, Role: sec.RoleStudent})
	require.NoError(t, err)
	assert.Equal(t, "Inès", principal.FirstName)
	assert.Empty(t, principal.PasswordHash)

	_, err = service.Me(context.Background(), &sec.TokenPayload{UserID: 5, Role: sec.RoleInstructor})
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	_, err = service.Me(context.Background(), nil)
	assert.True(t, apperr.HasCode(err, apperr.CodeUnauthorized))
}

/*
TestOutcome maps the error taxonomy onto metric labels.
*/
func TestOutcome(t *testing.T) {
	assert.Equal(t, metrics.OutcomeSuccess, auth.Outcome(nil))
	assert.Equal(t, metrics.OutcomeInvalidInput, auth.Outcome(apperr.ValidationError("x")))
	assert.Equal(t, metrics.OutcomeNotFound, auth.Outcome(apperr.NotFound("x")))
	assert.Equal(t, metrics.OutcomeInvalidSecret, auth.Outcome(apperr.InvalidSecret("x")))
	assert.Equal(t, metrics.OutcomeConflict, auth.Outcome(apperr.Conflict("x")))
	assert.Equal(t, metrics.OutcomeError, auth.Outcome(apperr.Internal(nil)))

	assert.Equal(t, "invalid", auth.RoleLabel("admin"))
	assert.Equal(t, "enseignant", auth.RoleLabel("enseignant"))
}

/*
TestNormalization folds emails and composes names.
*/
func TestNormalization(t *testing.T) {
	assert.Equal(t, "ines.martin@univ.fr", auth.NormalizeEmail("  INES.Martin@Univ.FR "))

	// "e" followed by a combining acute accent composes to a single rune.
	assert.Equal(t, "Zo\u00e9", auth.NormalizeName("Zoe\u0301"))

	first, last := auth.SplitName("Jean  Pierre Luc")
	assert.Equal(t, "Jean", first)
	assert.Equal(t, "Pierre Luc", last)

	first, last = auth.SplitName("Cher")
	assert.Equal(t, "Cher", first)
	assert.Empty(t, last)
}
