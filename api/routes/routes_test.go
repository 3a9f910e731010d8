package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"blogsapi/api/handler"
	"blogsapi/api/middleware"
	"blogsapi/internal/dto"
	"blogsapi/internal/entity"
	"blogsapi/internal/metrics"
	"blogsapi/internal/repository"
	"blogsapi/internal/service"
	"blogsapi/internal/testutil"
	"blogsapi/internal/utils"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const accessTTL = 30 * time.Minute

type testServer struct {
	echo  *echo.Echo
	db    *gorm.DB
	jwt   *utils.JWTManager
	clock *testutil.Clock
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db := testutil.NewDB(t)
	clock := testutil.NewClock(time.Now())
	manager := &utils.JWTManager{
		Secret:         []byte("routes-test-secret"),
		Issuer:         "blogsapi",
		Audience:       "blogs-clients",
		AccessTokenTTL: accessTTL,
	}
	registry := prometheus.NewRegistry()
	appMetrics := metrics.New(registry)
	validate := utils.NewValidator()
	hasher := service.BcryptPasswordHasher{Cost: bcrypt.MinCost}

	users := repository.NewUserRepository(db)
	blogs := repository.NewBlogRepository(db)
	posts := repository.NewPostRepository(db)

	authService := service.NewAuthService(
		users,
		repository.NewSessionRepository(db),
		repository.NewSecurityLogRepository(db),
		hasher,
		service.JWTAccessIssuer{Manager: manager},
		appMetrics,
		clock,
		service.AuthConfig{},
	)

	e := echo.New()
	e.Use(middleware.RequestMetrics(appMetrics))
	router := &Router{
		Echo:           e,
		Auth:           handler.NewAuthHandler(authService, validate),
		Users:          handler.NewUserHandler(service.NewUserService(users, hasher), validate),
		Blogs:          handler.NewBlogHandler(service.NewBlogService(blogs, users), validate),
		Posts:          handler.NewPostHandler(service.NewPostService(posts, blogs, users), service.NewCommentService(repository.NewCommentRepository(db), posts), validate),
		AuthMiddleware: middleware.AuthMiddleware{JWT: manager},
		Gatherer:       registry,
	}
	router.RegisterRoutes()

	return &testServer{echo: e, db: db, jwt: manager, clock: clock}
}

func (s *testServer) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch v := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(v))
	default:
		raw, err := json.Marshal(v)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) login(t *testing.T, user, password string) dto.TokenResponse {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/v1/login", dto.LoginRequest{User: user, Password: password}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decode[dto.TokenResponse](t, rec)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestLogin_ReturnsTokenPair(t *testing.T) {
	s := newTestServer(t)
	testutil.SeedUser(t, s.db, testutil.SeedUserOptions{Email: "alice@example.com", Nickname: "alice", Password: "Passw0rd!"})

	before := s.clock.Now()
	tokens := s.login(t, "alice@example.com", "Passw0rd!")

	assert.NotEmpty(t, tokens.Token)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.WithinDuration(t, before.Add(accessTTL), tokens.Expiration, time.Second)

	claims, err := s.jwt.ParseAccessToken(tokens.Token)
	require.NoError(t, err)
	assert.Equal(t, tokens.Expiration.Unix(), claims.ExpiresAt.Unix())
}

func TestLogin_BadCredentials(t *testing.T) {
	s := newTestServer(t)
	testutil.SeedUser(t, s.db, testutil.SeedUserOptions{Email: "alice@example.com", Nickname: "alice"})

	for _, body := range []dto.LoginRequest{
		{User: "alice@example.com", Password: "Wr0ngPassword"},
		{User: "nobody@example.com", Password: "Passw0rd!"},
	} {
		rec := s.do(t, http.MethodPost, "/api/v1/login", body, "")
		require.Equal(t, http.StatusBadRequest, rec.Code)

		problem := decode[dto.ErrorResponse](t, rec)
		assert.Equal(t, "Login.Handle", problem.Code)
		assert.Equal(t, service.ErrInvalidCredentials.Error(), problem.Message)
	}
}

func TestLogin_EmptyFieldsAreValidationProblem(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/v1/login", dto.LoginRequest{}, "")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	problem := decode[dto.ValidationProblem](t, rec)
	assert.Equal(t, http.StatusUnprocessableEntity, problem.Status)
	assert.NotEmpty(t, problem.Type)
	assert.NotEmpty(t, problem.Title)
	assert.Contains(t, problem.Errors, "user")
	assert.Contains(t, problem.Errors, "password")
}

func TestLogin_BlankUserIsValidationProblem(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/v1/login", dto.LoginRequest{User: "   ", Password: "Passw0rd!"}, "")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	problem := decode[dto.ValidationProblem](t, rec)
	assert.Equal(t, []string{"'user' must not be empty."}, problem.Errors["user"])
	assert.NotContains(t, problem.Errors, "password")

	rec = s.do(t, http.MethodPost, "/api/v1/refresh", dto.RefreshRequest{RefreshToken: "  "}, "")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decode[dto.ValidationProblem](t, rec).Errors, "refreshToken")
}

func TestLogin_MalformedBody(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/v1/login", `{"user":`, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Login.Request", decode[dto.ErrorResponse](t, rec).Code)
}

func TestRefresh_UnknownToken(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/v1/refresh", dto.RefreshRequest{RefreshToken: "ffffffff"}, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "RefreshToken.Handle", decode[dto.ErrorResponse](t, rec).Code)
}

func TestRefresh_EmptyToken(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/v1/refresh", dto.RefreshRequest{}, "")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decode[dto.ValidationProblem](t, rec).Errors, "refreshToken")
}

func TestRefresh_CarriesTokenForwardThenExpires(t *testing.T) {
	s := newTestServer(t)
	testutil.SeedUser(t, s.db, testutil.SeedUserOptions{Email: "alice@example.com", Nickname: "alice", Password: "Passw0rd!"})
	tokens := s.login(t, "alice", "Passw0rd!")

	s.clock.Advance(time.Minute)
	rec := s.do(t, http.MethodPost, "/api/v1/refresh", dto.RefreshRequest{RefreshToken: tokens.RefreshToken}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	refreshed := decode[dto.TokenResponse](t, rec)
	assert.Equal(t, tokens.RefreshToken, refreshed.RefreshToken)
	assert.True(t, refreshed.Expiration.After(tokens.Expiration))

	s.clock.Advance(accessTTL + service.DefaultRefreshWindow + time.Minute)
	rec = s.do(t, http.MethodPost, "/api/v1/refresh", dto.RefreshRequest{RefreshToken: tokens.RefreshToken}, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "RefreshToken.Handle", decode[dto.ErrorResponse](t, rec).Code)
}

func TestProtectedRoutes_RequireTokenAndRole(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/v1/users", nil, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Auth.Unauthorized", decode[dto.ErrorResponse](t, rec).Code)

	guest, _, err := s.jwt.IssueAccessToken(uuid.NewString(), "guest@example.com", "Guest", time.Now())
	require.NoError(t, err)

	rec = s.do(t, http.MethodGet, "/api/v1/users", nil, guest)
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Auth.Forbidden", decode[dto.ErrorResponse](t, rec).Code)

	rec = s.do(t, http.MethodGet, "/api/v1/users/"+uuid.NewString(), nil, guest)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRegister_Validation(t *testing.T) {
	s := newTestServer(t)
	testutil.SeedUser(t, s.db, testutil.SeedUserOptions{Email: "taken@example.com", Nickname: "taken"})

	weak := dto.RegisterRequest{Name: "Weak", Email: "weak@example.com", Password: "password", Nickname: "weak"}
	rec := s.do(t, http.MethodPost, "/api/v1/users", weak, "")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decode[dto.ValidationProblem](t, rec).Errors, "password")

	duplicate := dto.RegisterRequest{Name: "Dup", Email: "taken@example.com", Password: "Passw0rd!", Nickname: "dup"}
	rec = s.do(t, http.MethodPost, "/api/v1/users", duplicate, "")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t,
		[]string{service.ErrEmailTaken.Error()},
		decode[dto.ValidationProblem](t, rec).Errors["email"],
	)
}

func TestBloggingFlow(t *testing.T) {
	s := newTestServer(t)

	email := strings.ToLower(gofakeit.Email())
	rec := s.do(t, http.MethodPost, "/api/v1/users", dto.RegisterRequest{
		Name:     gofakeit.FirstName(),
		LastName: gofakeit.LastName(),
		Email:    email,
		Password: "Passw0rd!",
		Nickname: "writer",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	userID := decode[dto.IDResponse](t, rec).ID

	token := s.login(t, email, "Passw0rd!").Token

	rec = s.do(t, http.MethodPost, "/api/v1/blogs", dto.BlogRequest{Title: "Notes", Description: "Daily notes"}, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	blogID := decode[dto.IDResponse](t, rec).ID

	rec = s.do(t, http.MethodPut, "/api/v1/blogs", dto.EditBlogRequest{
		ID:          blogID,
		BlogRequest: dto.BlogRequest{Title: "Journal", Description: "Daily journal"},
	}, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/api/v1/blogs/"+blogID+"/posts", dto.PostRequest{Title: "Day one", Body: "Hello"}, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	postID := decode[dto.IDResponse](t, rec).ID

	rec = s.do(t, http.MethodPost, "/api/v1/post/"+postID+"/comments", dto.CommentRequest{Title: "Nice", Body: "Keep going"}, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/api/v1/blogs/"+blogID, nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	blog := decode[dto.BlogResponse](t, rec)
	assert.Equal(t, "Journal", blog.Title)
	assert.Equal(t, 1, blog.PostQuantity)
	require.NotNil(t, blog.Author)
	assert.Equal(t, "writer", blog.Author.Nickname)

	rec = s.do(t, http.MethodGet, "/api/v1/users/"+userID+"/posts", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	posts := decode[dto.PostListResponse](t, rec)
	require.Len(t, posts.Posts, 1)
	assert.Equal(t, blogID, posts.Posts[0].BlogID)

	rec = s.do(t, http.MethodGet, "/api/v1/users/"+userID, nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	detail := decode[dto.UserDetailResponse](t, rec)
	assert.Equal(t, 1, detail.BlogsQuantity)
	require.Len(t, detail.Blogs, 1)
	assert.Equal(t, "Journal", detail.Blogs[0].Title)

	rec = s.do(t, http.MethodDelete, "/api/v1/blogs/"+blogID, nil, token)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/users/"+userID+"/blogs", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[dto.BlogListResponse](t, rec).Blogs)

	rec = s.do(t, http.MethodPut, "/api/v1/blogs/"+blogID, nil, token)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/users/"+userID+"/blogs", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[dto.BlogListResponse](t, rec).Blogs, 1)
}

func TestEditBlog_OtherUsersBlogIsNotFound(t *testing.T) {
	s := newTestServer(t)
	owner := testutil.SeedUser(t, s.db, testutil.SeedUserOptions{})
	intruder := testutil.SeedUser(t, s.db, testutil.SeedUserOptions{Password: "Passw0rd!"})

	blog := &entity.Blog{AuthorID: owner.ID, Title: "Private", Description: "Mine"}
	require.NoError(t, s.db.Create(blog).Error)

	token := s.login(t, intruder.Email, "Passw0rd!").Token
	rec := s.do(t, http.MethodPut, "/api/v1/blogs", dto.EditBlogRequest{
		ID:          blog.ID.String(),
		BlogRequest: dto.BlogRequest{Title: "Stolen", Description: "Ours"},
	}, token)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "EditBlog.Handle", decode[dto.ErrorResponse](t, rec).Code)

	rec = s.do(t, http.MethodDelete, "/api/v1/users/"+owner.ID.String(), nil, token)
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "DeleteUser.Handle", decode[dto.ErrorResponse](t, rec).Code)
}

func TestOperationalEndpoints(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/healthz", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	s.do(t, http.MethodPost, "/api/v1/login", dto.LoginRequest{User: "ghost", Password: "Passw0rd!"}, "")

	rec = s.do(t, http.MethodGet, "/metrics", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `blogsapi_auth_logins_total{outcome="invalid_credentials"} 1`)
	assert.Contains(t, rec.Body.String(), "blogsapi_http_request_duration_seconds")
}
