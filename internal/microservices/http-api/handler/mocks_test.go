package handler_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"bookshelf/internal/microservices/http-api/handler"
	"bookshelf/internal/microservices/http-api/models"
	"bookshelf/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
)

// --- MOCK REPOSITORIES ---

type MockBookRepository struct {
	mock.Mock
}

func (m *MockBookRepository) FindAll(ctx context.Context) ([]models.Book, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Book), args.Error(1)
}

func (m *MockBookRepository) FindByID(ctx context.Context, id int64) (*models.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Book), args.Error(1)
}

func (m *MockBookRepository) Create(ctx context.Context, book models.Book) ([]models.Book, error) {
	args := m.Called(ctx, book)
	return args.Get(0).([]models.Book), args.Error(1)
}

func (m *MockBookRepository) Update(ctx context.Context, id int64, changes map[string]any) ([]models.Book, error) {
	args := m.Called(ctx, id, changes)
	return args.Get(0).([]models.Book), args.Error(1)
}

func (m *MockBookRepository) Delete(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindAll(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindUserBooks(ctx context.Context, id int64) ([]models.Book, error) {
	args := m.Called(ctx, id)
	return args.Get(0).([]models.Book), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user models.User) ([]models.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, id int64, changes map[string]any) ([]models.User, error) {
	args := m.Called(ctx, id, changes)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

type MockUserBookRepository struct {
	mock.Mock
}

func (m *MockUserBookRepository) Assign(ctx context.Context, userID, bookID int64) ([]models.UserBook, error) {
	args := m.Called(ctx, userID, bookID)
	return args.Get(0).([]models.UserBook), args.Error(1)
}

func (m *MockUserBookRepository) Reassign(ctx context.Context, oldUserID, newUserID, bookID int64) ([]models.UserBook, error) {
	args := m.Called(ctx, oldUserID, newUserID, bookID)
	return args.Get(0).([]models.UserBook), args.Error(1)
}

func (m *MockUserBookRepository) Unassign(ctx context.Context, userID, bookID int64) (int64, error) {
	args := m.Called(ctx, userID, bookID)
	return args.Get(0).(int64), args.Error(1)
}

type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) Issue(subject string) (string, error) {
	args := m.Called(subject)
	return args.String(0), args.Error(1)
}

func (m *MockTokenService) Validate(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Claims), args.Error(1)
}

// --- SETUP ---

const testToken = "test-token"

// newTestRouter wires groups through the real router, with a token service
// that accepts testToken as user 1.
func newTestRouter(public []handler.Routes, protected ...handler.Routes) *gin.Engine {
	gin.SetMode(gin.TestMode)
	tokens := new(MockTokenService)
	tokens.On("Validate", testToken).Return(&service.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "1"}}, nil)
	tokens.On("Validate", mock.Anything).Return(nil, service.ErrInvalidToken)

	return handler.NewRouter(handler.RouterOptions{
		Logger: discardLogger(),
		Tokens: tokens,
	}, public, protected)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// do sends an authenticated request with an optional JSON body.
func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Authorization", "Bearer "+testToken)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func strPtr(s string) *string { return &s }

func httptestRecorder(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
