package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"html"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/anonto42/warbler/internal/handlers"
	"github.com/anonto42/warbler/internal/middleware"
	"github.com/anonto42/warbler/internal/models"
	"github.com/anonto42/warbler/internal/repositories/memory"
	"github.com/anonto42/warbler/internal/router"
	"github.com/anonto42/warbler/internal/services"
	"github.com/anonto42/warbler/internal/session"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const password = "secret1"

type testEnv struct {
	e        *echo.Echo
	store    *memory.Store
	sessions *session.MemoryStore
}

type fakeVerifier struct {
	tokens map[string]*auth.Token
}

func (f *fakeVerifier) VerifyIDToken(_ context.Context, idToken string) (*auth.Token, error) {
	token, ok := f.tokens[idToken]
	if !ok {
		return nil, errors.New("invalid token")
	}
	return token, nil
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := zap.NewNop()
	store := memory.NewStore()
	sessions := session.NewMemoryStore()
	deps := router.Dependencies{
		Logger:   logger,
		Repos:    services.Repositories{Users: store, Messages: store, Follows: store, Likes: store},
		Sessions: session.NewManager(logger, sessions, "test secret", time.Hour, false),
		Verifier: &fakeVerifier{tokens: map[string]*auth.Token{
			"verified":   {Claims: map[string]interface{}{"email": "alice@example.com", "email_verified": true}},
			"unverified": {Claims: map[string]interface{}{"email": "alice@example.com", "email_verified": false}},
			"stranger":   {Claims: map[string]interface{}{"email": "nobody@example.com", "email_verified": true}},
		}},
	}

	e := echo.New()
	router.SetupMiddleware(e, deps)
	require.NoError(t, router.SetupRoutes(e, deps))
	return &testEnv{e: e, store: store, sessions: sessions}
}

// client is a browser stand-in that keeps the session and csrf cookies between
// requests and sends the csrf token with every POST.
type client struct {
	t       *testing.T
	env     *testEnv
	cookie  *http.Cookie
	csrf    *http.Cookie
	headers map[string]string
}

func (env *testEnv) client(t *testing.T) *client {
	return &client{t: t, env: env}
}

func (cl *client) do(method, path, contentType string, body io.Reader) *httptest.ResponseRecorder {
	cl.t.Helper()

	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	for k, v := range cl.headers {
		req.Header.Set(k, v)
	}
	for _, c := range []*http.Cookie{cl.cookie, cl.csrf} {
		if c != nil {
			req.AddCookie(c)
		}
	}
	rec := httptest.NewRecorder()
	cl.env.e.ServeHTTP(rec, req)

	for _, c := range rec.Result().Cookies() {
		switch {
		case c.Name == middleware.CSRFCookieName:
			cl.csrf = &http.Cookie{Name: c.Name, Value: c.Value}
		case c.Name != session.CookieName:
		case c.MaxAge < 0:
			cl.cookie = nil
		default:
			cl.cookie = &http.Cookie{Name: c.Name, Value: c.Value}
		}
	}
	return rec
}

func (cl *client) get(path string) *httptest.ResponseRecorder {
	cl.t.Helper()
	return cl.do(http.MethodGet, path, "", nil)
}

// token returns the csrf token, fetching a page first when the client has none yet.
func (cl *client) token() string {
	cl.t.Helper()
	if cl.csrf == nil {
		require.Equal(cl.t, http.StatusOK, cl.get("/health").Code)
		require.NotNil(cl.t, cl.csrf)
	}
	return cl.csrf.Value
}

func (cl *client) postForm(path string, values url.Values) *httptest.ResponseRecorder {
	cl.t.Helper()
	form := url.Values{middleware.CSRFField: {cl.token()}}
	for k, v := range values {
		form[k] = v
	}
	return cl.do(http.MethodPost, path, echo.MIMEApplicationForm, strings.NewReader(form.Encode()))
}

func (cl *client) postJSON(path string, v interface{}) *httptest.ResponseRecorder {
	cl.t.Helper()
	body, err := json.Marshal(v)
	require.NoError(cl.t, err)

	cl.headers = map[string]string{echo.HeaderXCSRFToken: cl.token()}
	defer func() { cl.headers = nil }()
	return cl.do(http.MethodPost, path, echo.MIMEApplicationJSON, strings.NewReader(string(body)))
}

func signupForm(username, email string) url.Values {
	return url.Values{
		"username":  {username},
		"email":     {email},
		"password":  {password},
		"password2": {password},
	}
}

// signup registers a user through the form and returns the logged-in client.
func (env *testEnv) signup(t *testing.T, username string) (*client, *models.User) {
	t.Helper()

	cl := env.client(t)
	rec := cl.postForm("/signup", signupForm(username, username+"@example.com"))
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))

	user, err := env.store.GetUserByUsername(context.Background(), username)
	require.NoError(t, err)
	return cl, user
}

func (env *testEnv) post(t *testing.T, author *models.User, text string) *models.Message {
	t.Helper()
	msg := &models.Message{Text: text, UserID: author.ID}
	require.NoError(t, env.store.CreateMessage(context.Background(), msg))
	return msg
}

func assertRedirect(t *testing.T, rec *httptest.ResponseRecorder, location string) {
	t.Helper()
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, location, rec.Header().Get(echo.HeaderLocation))
}

func jsonString(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var s string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &s))
	return s
}

func userPath(u *models.User) string {
	return "/users/" + itoa(u.ID)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func TestSignupShowsUserOnHome(t *testing.T) {
	env := newTestEnv(t)

	cl, _ := env.signup(t, "alice")

	rec := cl.get("/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "@alice")
}

func TestSignupValidation(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "alice")

	t.Run("password mismatch", func(t *testing.T) {
		form := signupForm("bob", "bob@example.com")
		form.Set("password2", "different")

		rec := env.client(t).postForm("/signup", form)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Passwords do not match. Please try again")
		_, err := env.store.GetUserByUsername(context.Background(), "bob")
		assert.Error(t, err)
	})

	t.Run("invalid email", func(t *testing.T) {
		rec := env.client(t).postForm("/signup", signupForm("bob", "not-an-email"))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid email address.")
	})

	t.Run("duplicate username", func(t *testing.T) {
		rec := env.client(t).postForm("/signup", signupForm("alice", "other@example.com"))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Username already taken")
	})

	t.Run("both taken reports email", func(t *testing.T) {
		rec := env.client(t).postForm("/signup", signupForm("alice", "alice@example.com"))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Email already taken")
		assert.NotContains(t, rec.Body.String(), "Username already taken")
	})

	users, err := env.store.GetUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestLoginLogout(t *testing.T) {
	env := newTestEnv(t)
	cl, _ := env.signup(t, "alice")

	t.Run("already logged in", func(t *testing.T) {
		assertRedirect(t, cl.get("/login"), "/")
		assertRedirect(t, cl.get("/signup"), "/")
		assert.Contains(t, cl.get("/").Body.String(), "You are already logged in.")
	})

	assertRedirect(t, cl.postForm("/logout", nil), "/login")
	assert.Contains(t, cl.get("/login").Body.String(), "You have logged out.")

	t.Run("logging out twice is harmless", func(t *testing.T) {
		assertRedirect(t, cl.postForm("/logout", nil), "/login")
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := cl.postForm("/login", url.Values{"username": {"alice"}, "password": {"nope123"}})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid credentials.")
	})

	t.Run("unknown user", func(t *testing.T) {
		rec := cl.postForm("/login", url.Values{"username": {"nobody"}, "password": {password}})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid credentials.")
	})

	assertRedirect(t, cl.postForm("/login", url.Values{"username": {"alice"}, "password": {password}}), "/")
	body := cl.get("/").Body.String()
	assert.Contains(t, body, "Hello, alice!")
	assert.Contains(t, body, "@alice")
}

func TestAnonymousIsSentHome(t *testing.T) {
	env := newTestEnv(t)
	_, alice := env.signup(t, "alice")
	cl := env.client(t)

	paths := []string{userPath(alice), "/users", userPath(alice) + "/following", "/users/profile", "/messages/1"}
	for _, path := range paths {
		assertRedirect(t, cl.get(path), "/")
	}
	assertRedirect(t, cl.postJSON("/messages/new", map[string]string{"text": "Hello"}), "/")
	assertRedirect(t, cl.postForm("/users/add_like/1", nil), "/")

	rec := cl.get("/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Access unauthorized.")
	assert.Contains(t, rec.Body.String(), "Sign up now")
}

func TestCreateMessageShowsOnProfile(t *testing.T) {
	env := newTestEnv(t)
	cl, alice := env.signup(t, "alice")

	// Act
	rec := cl.postJSON("/messages/new", map[string]string{"text": "Hello"})

	// Assert
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "message created", jsonString(t, rec))

	page := cl.get(userPath(alice))
	require.Equal(t, http.StatusOK, page.Code)
	assert.Contains(t, page.Body.String(), "Hello")

	t.Run("too long", func(t *testing.T) {
		rec := cl.postJSON("/messages/new", map[string]string{"text": strings.Repeat("x", models.MaxMessageLength+1)})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "request failed", jsonString(t, rec))
	})

	t.Run("blank", func(t *testing.T) {
		rec := cl.postJSON("/messages/new", map[string]string{"text": "   "})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestToggleLike(t *testing.T) {
	env := newTestEnv(t)
	aliceClient, alice := env.signup(t, "alice")
	bobClient, _ := env.signup(t, "bob")
	msg := env.post(t, alice, "like me")
	path := "/users/add_like/" + itoa(msg.ID)

	t.Run("own message", func(t *testing.T) {
		rec := aliceClient.postForm(path, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "request failed", jsonString(t, rec))
		assert.Zero(t, env.store.LikeCount())
	})

	assert.Equal(t, "like added", jsonString(t, bobClient.postForm(path, nil)))
	assert.Equal(t, 1, env.store.LikeCount())
	assert.Equal(t, "like removed", jsonString(t, bobClient.postForm(path, nil)))
	assert.Zero(t, env.store.LikeCount())

	t.Run("missing message", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, bobClient.postForm("/users/add_like/999", nil).Code)
	})
}

func TestDeleteMessage(t *testing.T) {
	env := newTestEnv(t)
	_, alice := env.signup(t, "alice")
	bobClient, bob := env.signup(t, "bob")
	aliceClient := env.client(t)
	assertRedirect(t, aliceClient.postForm("/login", url.Values{"username": {"alice"}, "password": {password}}), "/")
	msg := env.post(t, alice, "mine")
	path := "/messages/" + itoa(msg.ID) + "/delete"

	t.Run("non-author", func(t *testing.T) {
		assertRedirect(t, bobClient.postForm(path, nil), userPath(bob))
		_, err := env.store.GetMessageByID(context.Background(), msg.ID)
		require.NoError(t, err)
		assert.Contains(t, bobClient.get(userPath(bob)).Body.String(), "Access unauthorized.")
	})

	assertRedirect(t, aliceClient.postForm(path, nil), userPath(alice))
	_, err := env.store.GetMessageByID(context.Background(), msg.ID)
	assert.Error(t, err)

	assert.Equal(t, http.StatusNotFound, aliceClient.postForm(path, nil).Code)
}

func TestShowMessage(t *testing.T) {
	env := newTestEnv(t)
	cl, alice := env.signup(t, "alice")
	msg := env.post(t, alice, "a single warble")

	rec := cl.get("/messages/" + itoa(msg.ID))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "a single warble")

	assert.Equal(t, http.StatusNotFound, cl.get("/messages/999").Code)
	assert.Equal(t, http.StatusNotFound, cl.get("/messages/abc").Code)
}

func TestFollow(t *testing.T) {
	env := newTestEnv(t)
	cl, alice := env.signup(t, "alice")
	_, bob := env.signup(t, "bob")
	following := userPath(alice) + "/following"

	assertRedirect(t, cl.postForm("/users/follow/"+itoa(bob.ID), nil), following)
	assertRedirect(t, cl.postForm("/users/follow/"+itoa(bob.ID), nil), following)
	assert.Equal(t, 1, env.store.FollowCount())

	page := cl.get(following)
	require.Equal(t, http.StatusOK, page.Code)
	assert.Contains(t, page.Body.String(), "@bob")

	followers := cl.get(userPath(bob) + "/followers")
	require.Equal(t, http.StatusOK, followers.Code)
	assert.Contains(t, followers.Body.String(), "@alice")
	assert.Contains(t, followers.Body.String(), "Unfollow")

	t.Run("self", func(t *testing.T) {
		assertRedirect(t, cl.postForm("/users/follow/"+itoa(alice.ID), nil), following)
		assert.Contains(t, cl.get(following).Body.String(), "You cannot follow yourself.")
		assert.Equal(t, 1, env.store.FollowCount())
	})

	t.Run("missing target", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, cl.postForm("/users/follow/999", nil).Code)
		assert.Equal(t, http.StatusNotFound, cl.postForm("/users/stop-following/999", nil).Code)
	})

	assertRedirect(t, cl.postForm("/users/stop-following/"+itoa(bob.ID), nil), following)
	assertRedirect(t, cl.postForm("/users/stop-following/"+itoa(bob.ID), nil), following)
	assert.Zero(t, env.store.FollowCount())
}

func TestFeed(t *testing.T) {
	env := newTestEnv(t)
	cl, alice := env.signup(t, "alice")
	_, bob := env.signup(t, "bob")
	_, carol := env.signup(t, "carol")

	env.post(t, alice, "from alice")
	env.post(t, bob, "from bob")
	env.post(t, carol, "from carol")
	require.Equal(t, http.StatusFound, cl.postForm("/users/follow/"+itoa(bob.ID), nil).Code)

	body := cl.get("/").Body.String()
	assert.Contains(t, body, "from alice")
	assert.Contains(t, body, "from bob")
	assert.NotContains(t, body, "from carol")
	assert.Less(t, strings.Index(body, "from bob"), strings.Index(body, "from alice"))
}

func TestListUsers(t *testing.T) {
	env := newTestEnv(t)
	cl, _ := env.signup(t, "alice")
	env.signup(t, "bob")

	body := cl.get("/users").Body.String()
	assert.Contains(t, body, "@alice")
	assert.Contains(t, body, "@bob")

	body = cl.get("/users?q=bo").Body.String()
	assert.NotContains(t, body, "@alice</p>")
	assert.Contains(t, body, "@bob")
}

func TestEditProfile(t *testing.T) {
	env := newTestEnv(t)
	cl, alice := env.signup(t, "alice")
	env.signup(t, "bob")

	form := func(username, pw string) url.Values {
		return url.Values{"username": {username}, "email": {"alice@example.com"}, "bio": {"hi"}, "password": {pw}}
	}

	require.Equal(t, http.StatusOK, cl.get("/users/profile").Code)

	t.Run("wrong password", func(t *testing.T) {
		rec := cl.postForm("/users/profile", form("renamed", "wrong-password"))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid password. Please try again")

		stored, err := env.store.GetUserByID(context.Background(), alice.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice", stored.Username)
	})

	t.Run("taken username", func(t *testing.T) {
		rec := cl.postForm("/users/profile", form("bob", password))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Username already taken")
	})

	assertRedirect(t, cl.postForm("/users/profile", form("renamed", password)), userPath(alice))
	stored, err := env.store.GetUserByID(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "renamed", stored.Username)
	assert.Equal(t, "hi", stored.Bio)
}

var inputValue = regexp.MustCompile(`<input name="([a-z_]+)"[^>]*value="([^"]*)"`)

// formValues collects the named inputs of a rendered form with their values.
func formValues(body string) url.Values {
	values := url.Values{}
	for _, m := range inputValue.FindAllStringSubmatch(body, -1) {
		values.Set(m[1], html.UnescapeString(m[2]))
	}
	return values
}

func TestEditProfileResubmitsRenderedForm(t *testing.T) {
	env := newTestEnv(t)
	cl, alice := env.signup(t, "alice")

	// Arrange
	page := cl.get("/users/profile")
	require.Equal(t, http.StatusOK, page.Code)
	form := formValues(page.Body.String())
	require.Equal(t, models.DefaultImageURL, form.Get("image_url"))
	require.Equal(t, models.DefaultHeaderImageURL, form.Get("header_image_url"))
	form.Set("location", "Lisbon")
	form.Set("password", password)

	// Act
	rec := cl.postForm("/users/profile", form)

	// Assert
	assertRedirect(t, rec, userPath(alice))
	stored, err := env.store.GetUserByID(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lisbon", stored.Location)
	assert.Equal(t, models.DefaultImageURL, stored.ImageURL)
	assert.Equal(t, models.DefaultHeaderImageURL, stored.HeaderImageURL)

	t.Run("relative image url", func(t *testing.T) {
		form.Set("image_url", "images/me.png")
		rec := cl.postForm("/users/profile", form)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid URL.")
	})
}

func TestFormsRequireCSRFToken(t *testing.T) {
	env := newTestEnv(t)
	cl, alice := env.signup(t, "alice")

	page := cl.get(userPath(alice)).Body.String()
	assert.Contains(t, page, `<meta name="csrf-token" content="`+cl.csrf.Value+`">`)
	assert.Contains(t, page, `name="csrf_token" value="`+cl.csrf.Value+`"`)

	t.Run("tokenless post", func(t *testing.T) {
		rec := cl.do(http.MethodPost, "/users/delete", echo.MIMEApplicationForm, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("forged token", func(t *testing.T) {
		body := url.Values{middleware.CSRFField: {"forged"}}.Encode()
		rec := cl.do(http.MethodPost, "/logout", echo.MIMEApplicationForm, strings.NewReader(body))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("cross-site json", func(t *testing.T) {
		cl.headers = map[string]string{echo.HeaderSecFetchSite: "cross-site"}
		defer func() { cl.headers = nil }()
		rec := cl.do(http.MethodPost, "/messages/new", echo.MIMEApplicationJSON, strings.NewReader(`{"text":"hi"}`))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	_, err := env.store.GetUserByID(context.Background(), alice.ID)
	require.NoError(t, err)
	count, err := env.store.GetMessagesCountByUserID(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Contains(t, cl.get("/").Body.String(), "@alice")
}

func TestDeleteAccount(t *testing.T) {
	env := newTestEnv(t)
	cl, alice := env.signup(t, "alice")
	env.post(t, alice, "soon gone")

	assertRedirect(t, cl.postForm("/users/delete", nil), "/signup")

	_, err := env.store.GetUserByID(context.Background(), alice.ID)
	assert.Error(t, err)
	assert.Contains(t, cl.get("/").Body.String(), "Sign up now")
}

// A session whose user has been deleted is treated as anonymous and the user id is
// removed from the session store rather than kept around.
func TestStaleSessionUserIsDropped(t *testing.T) {
	env := newTestEnv(t)
	cl, alice := env.signup(t, "alice")
	require.Equal(t, 1, env.sessions.Len())

	require.NoError(t, env.store.DeleteUser(context.Background(), alice.ID))

	rec := cl.get("/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sign up now")
	assert.Zero(t, env.sessions.Len())
	assert.Nil(t, cl.cookie)

	assertRedirect(t, cl.get(userPath(alice)), "/")
}

func TestFirebaseLogin(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "alice")

	t.Run("verified email", func(t *testing.T) {
		cl := env.client(t)
		assertRedirect(t, cl.postForm("/login/firebase", url.Values{"id_token": {"verified"}}), "/")
		assert.Contains(t, cl.get("/").Body.String(), "Hello, alice!")
	})

	for _, token := range []string{"unverified", "stranger", "forged", ""} {
		t.Run("rejected "+token, func(t *testing.T) {
			cl := env.client(t)
			assertRedirect(t, cl.postForm("/login/firebase", url.Values{"id_token": {token}}), "/login")
			assert.Contains(t, cl.get("/login").Body.String(), "Invalid credentials.")
		})
	}
}

func TestNotFoundAndHeaders(t *testing.T) {
	env := newTestEnv(t)
	cl := env.client(t)

	rec := cl.get("/no/such/page")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sorry, the page you are looking for does not exist.")

	for _, r := range []*httptest.ResponseRecorder{rec, cl.get("/"), cl.get("/login")} {
		assert.Equal(t, "no-cache, no-store, must-revalidate", r.Header().Get("Cache-Control"))
		assert.Equal(t, "no-cache", r.Header().Get("Pragma"))
		assert.Equal(t, "0", r.Header().Get("Expires"))
	}
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	rec := env.client(t).get("/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

type downDB struct{}

func (downDB) Health(context.Context) map[string]string {
	return map[string]string{"status": "down", "error": "connection refused"}
}

func TestHealthDatabaseDown(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)

	require.NoError(t, handlers.NewHealthHandler(downDB{}).HealthCheck(c))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestStaticAssets(t *testing.T) {
	env := newTestEnv(t)

	cl := env.client(t)

	rec := cl.get("/static/js/app.js")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/users/add_like/")
	assert.Contains(t, rec.Body.String(), "X-CSRF-Token")

	for path, contentType := range map[string]string{
		models.DefaultImageURL:       "image/png",
		models.DefaultHeaderImageURL: "image/jpeg",
	} {
		rec := cl.get(path)
		require.Equal(t, http.StatusOK, rec.Code, path)
		assert.Equal(t, contentType, rec.Header().Get(echo.HeaderContentType), path)
	}
}
