package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pfinance/WalletManager/internal/user"
)

func postJSON(target, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func findSessionCookie(t *testing.T, res *http.Response) *http.Cookie {
	t.Helper()
	for _, c := range res.Cookies() {
		if c.Name == sessionCookieName {
			return c
		}
	}
	t.Fatalf("no %q cookie in response", sessionCookieName)
	return nil
}

func registeredUser(t *testing.T) *stubUserService {
	t.Helper()
	return &stubUserService{users: map[string]*user.User{
		"u1": {ID: "u1", Email: "jan@example.com", Login: "jan", Role: user.RoleRegular, PasswordHash: hashForTest(t, "correct"), IsActive: true},
	}}
}

func TestHandleAuthenticate_SetsHardenedCookie(t *testing.T) {
	service := newTestService(registeredUser(t), newStubTwoFactorRepo(), &stubEmailSender{}, &stubAuthenticator{})
	handler := NewHandler(service)

	w := httptest.NewRecorder()
	handler.HandleAuthenticate(w, postJSON("/api/users/authenticate", `{"email_or_login":"jan@example.com","password":"correct"}`))

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	cookie := findSessionCookie(t, res)
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, int(7*24*time.Hour/time.Second), cookie.MaxAge)
}

func TestHandleAuthenticate_InvalidCredentials(t *testing.T) {
	service := newTestService(registeredUser(t), newStubTwoFactorRepo(), &stubEmailSender{}, &stubAuthenticator{})
	handler := NewHandler(service)

	w := httptest.NewRecorder()
	handler.HandleAuthenticate(w, postJSON("/api/users/authenticate", `{"email_or_login":"jan@example.com","password":"wrong"}`))

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	assert.Empty(t, res.Cookies())
}

func TestHandleAuthenticate_TwoFactorReturnsSessionTokenWithoutCookie(t *testing.T) {
	users := registeredUser(t)
	users.users["u1"].TwoFactorEnabled = true
	service := newTestService(users, newStubTwoFactorRepo(), &stubEmailSender{}, &stubAuthenticator{})
	handler := NewHandler(service)

	w := httptest.NewRecorder()
	handler.HandleAuthenticate(w, postJSON("/api/users/authenticate", `{"email_or_login":"jan@example.com","password":"correct"}`))

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Empty(t, res.Cookies())
	assert.Contains(t, w.Body.String(), "session_token")
}

func TestHandleVerifyTwoFactor_SetsCookie(t *testing.T) {
	users := registeredUser(t)
	users.users["u1"].TwoFactorEnabled = true
	repo := newStubTwoFactorRepo()
	repo.secrets["u1"] = "SECRET"
	service := newTestService(users, repo, &stubEmailSender{}, &stubAuthenticator{validCode: "123456"})
	handler := NewHandler(service)

	_, sessionToken, _, err := service.Login("jan@example.com", "correct")
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	handler.HandleVerifyTwoFactor(w, postJSON("/api/users/verify-2fa", `{"session_token":"`+sessionToken+`","code":"123456"}`))

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	cookie := findSessionCookie(t, res)
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)
}

func TestHandleLogout_OverwritesCookie(t *testing.T) {
	service := newTestService(registeredUser(t), newStubTwoFactorRepo(), &stubEmailSender{}, &stubAuthenticator{})
	handler := NewHandler(service)

	w := httptest.NewRecorder()
	handler.HandleLogout(w, httptest.NewRequest(http.MethodPost, "/api/users/logout", nil))

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	cookie := findSessionCookie(t, res)
	assert.Empty(t, cookie.Value)
	assert.Equal(t, -1, cookie.MaxAge)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
}

func TestCookieAuthMiddleware_InjectsUserIDAndRole(t *testing.T) {
	service := newTestService(registeredUser(t), newStubTwoFactorRepo(), &stubEmailSender{}, &stubAuthenticator{})

	token, err := NewJWTManager("test-secret").GenerateToken("u1", user.RoleRegular, time.Minute)
	assert.NoError(t, err)

	var gotUserID, gotRole string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = r.Context().Value("userID").(string)
		gotRole, _ = r.Context().Value("userRole").(string)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/protected/wallets", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: token})
	w := httptest.NewRecorder()
	service.CookieAuthMiddleware(next).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Result().StatusCode)
	assert.Equal(t, "u1", gotUserID)
	assert.Equal(t, user.RoleRegular, gotRole)
}

func TestCookieAuthMiddleware_MissingCookie(t *testing.T) {
	service := newTestService(registeredUser(t), newStubTwoFactorRepo(), &stubEmailSender{}, &stubAuthenticator{})

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler should not be reached")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/protected/wallets", nil)
	w := httptest.NewRecorder()
	service.CookieAuthMiddleware(next).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Result().StatusCode)
}

func TestCookieAuthMiddleware_DeletedUserRejected(t *testing.T) {
	service := newTestService(&stubUserService{users: map[string]*user.User{}}, newStubTwoFactorRepo(), &stubEmailSender{}, &stubAuthenticator{})

	token, err := NewJWTManager("test-secret").GenerateToken("gone", user.RoleRegular, time.Minute)
	assert.NoError(t, err)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler should not be reached")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/protected/wallets", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: token})
	w := httptest.NewRecorder()
	service.CookieAuthMiddleware(next).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Result().StatusCode)
}
