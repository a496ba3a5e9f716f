package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/inkwellhq/inkwell-backend/internal/models"
	"github.com/inkwellhq/inkwell-backend/internal/services"
)

func TestRegister(t *testing.T) {
	app, users, _ := newTestApp(t)

	tests := []struct {
		name       string
		body       map[string]string
		wantStatus int
	}{
		{
			name: "valid registration",
			body: map[string]string{
				"name":     "Alice Doe",
				"email":    "alice@example.com",
				"password": "secret1",
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "missing name",
			body: map[string]string{
				"email":    "bob@example.com",
				"password": "secret1",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "missing email",
			body: map[string]string{
				"name":     "Bob Stone",
				"password": "secret1",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "missing password",
			body: map[string]string{
				"name":  "Bob Stone",
				"email": "bob@example.com",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "short password",
			body: map[string]string{
				"name":     "Bob Stone",
				"email":    "bob@example.com",
				"password": "12345",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "malformed email",
			body: map[string]string{
				"name":     "Bob Stone",
				"email":    "not-an-email",
				"password": "secret1",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "name too short",
			body: map[string]string{
				"name":     "Bob",
				"email":    "bob@example.com",
				"password": "secret1",
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := doJSON(t, app, http.MethodPost, "/api/auth/register", "", tt.body)
			assert.Equal(t, tt.wantStatus, code, "body: %v", body)
			if tt.wantStatus == http.StatusCreated {
				assert.NotEmpty(t, body["token"])
			} else {
				assert.NotEmpty(t, body["error"])
			}
		})
	}

	// Only the valid registration should have persisted.
	assert.Equal(t, 1, users.count())
}

func TestRegister_TokenIdentifiesUser(t *testing.T) {
	app, _, _ := newTestApp(t)

	token, user := registerUser(t, app, "Alice Doe", "alice@example.com", "secret1")

	claims, err := services.VerifyToken(token, testJWTSecret)
	require.NoError(t, err)
	assert.Equal(t, user["id"], claims.UserID)
	assert.Equal(t, "Alice Doe", claims.Name)
	assert.Equal(t, "alice@example.com", claims.Email)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	app, users, _ := newTestApp(t)

	registerUser(t, app, "Alice Doe", "alice@example.com", "secret1")

	code, body := doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "Alice Clone",
		"email":    "alice@example.com",
		"password": "secret2",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Email already registered", body["error"])
	assert.Equal(t, 1, users.count(), "no new record on duplicate email")

	// Case only differs — email is lowercased before the uniqueness check.
	code, _ = doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "Alice Upper",
		"email":    "ALICE@Example.com",
		"password": "secret3",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, 1, users.count())
}

func TestLogin(t *testing.T) {
	app, _, _ := newTestApp(t)
	_, registered := registerUser(t, app, "Alice Doe", "alice@example.com", "secret1")

	code, body := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "secret1",
	})
	require.Equal(t, http.StatusOK, code, "body: %v", body)
	assert.NotEmpty(t, body["token"])

	user, _ := body["user"].(map[string]interface{})
	require.NotNil(t, user)
	assert.Equal(t, registered["id"], user["id"])
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	app, _, _ := newTestApp(t)
	registerUser(t, app, "Alice Doe", "alice@example.com", "secret1")

	code, wrongPass := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusBadRequest, code)

	code, unknownEmail := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "nobody@example.com",
		"password": "secret1",
	})
	assert.Equal(t, http.StatusBadRequest, code)

	assert.Equal(t, wrongPass["error"], unknownEmail["error"],
		"wrong password and unknown email must return identical messages")
}

func TestLogin_MissingFields(t *testing.T) {
	app, _, _ := newTestApp(t)

	code, _ := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "alice@example.com",
	})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"password": "secret1",
	})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestMe(t *testing.T) {
	app, _, _ := newTestApp(t)
	token, registered := registerUser(t, app, "Alice Doe", "alice@example.com", "secret1")

	code, body := doJSON(t, app, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, code)

	user, _ := body["user"].(map[string]interface{})
	require.NotNil(t, user)
	assert.Equal(t, registered["id"], user["id"])
	assert.Equal(t, "alice@example.com", user["email"])
}

func TestMe_Unauthorized(t *testing.T) {
	app, users, _ := newTestApp(t)

	code, body := doJSON(t, app, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Authorization header missing", body["error"])

	// Expired token carries its own message.
	expired, err := services.IssueToken(&models.User{
		ID:    primitive.NewObjectID(),
		Name:  "Ghost",
		Email: "ghost@example.com",
	}, testJWTSecret, -time.Minute)
	require.NoError(t, err)

	code, body = doJSON(t, app, http.MethodGet, "/api/auth/me", expired, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Token expired. Please login again.", body["error"])

	// Valid token whose user id resolves to nothing.
	orphan, err := services.IssueToken(&models.User{
		ID:    primitive.NewObjectID(),
		Name:  "Ghost",
		Email: "ghost@example.com",
	}, testJWTSecret, time.Hour)
	require.NoError(t, err)

	code, body = doJSON(t, app, http.MethodGet, "/api/auth/me", orphan, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Invalid token: user not found", body["error"])

	assert.Equal(t, 0, users.count())
}

func TestMe_WrongScheme(t *testing.T) {
	app, _, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Basic abc123")
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid authorization scheme")
}
