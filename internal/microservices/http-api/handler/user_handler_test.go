package handler_test

import (
	"errors"
	"net/http"
	"testing"

	"bookshelf/internal/microservices/http-api/handler"
	"bookshelf/internal/microservices/http-api/models"
	"bookshelf/internal/microservices/http-api/repository"
	"bookshelf/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupUserRouter(repo *MockUserRepository, hasher service.PasswordHasher) *gin.Engine {
	return newTestRouter(nil, handler.NewUserHandler(repo, hasher))
}

// prefixHasher makes hashing visible in assertions.
type prefixHasher struct{}

func (prefixHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (prefixHasher) Compare(stored, candidate string) error {
	if stored != "hashed:"+candidate {
		return service.ErrInvalidCredentials
	}
	return nil
}

func TestUserHandler_List(t *testing.T) {
	repo := new(MockUserRepository)
	r := setupUserRouter(repo, service.PlainHasher{})
	repo.On("FindAll", mock.Anything).Return([]models.User{
		{ID: 1, Username: "MichaelJackson", Email: "michaeljackson@abv.bg", Password: "MJ2001"},
	}, nil).Once()

	w := do(r, http.MethodGet, "/users", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"id":1,"username":"MichaelJackson","email":"michaeljackson@abv.bg","password":"MJ2001"}]`, w.Body.String())
}

func TestUserHandler_Get(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		repo := new(MockUserRepository)
		r := setupUserRouter(repo, service.PlainHasher{})
		repo.On("FindByID", mock.Anything, int64(2)).Return(&models.User{ID: 2, Username: "JohnJackson"}, nil).Once()

		w := do(r, http.MethodGet, "/users/2", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"username":"JohnJackson"`)
	})

	t.Run("Not found", func(t *testing.T) {
		repo := new(MockUserRepository)
		r := setupUserRouter(repo, service.PlainHasher{})
		repo.On("FindByID", mock.Anything, int64(8)).Return(nil, repository.ErrNotFound).Once()

		w := do(r, http.MethodGet, "/users/8", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"User not found"}`, w.Body.String())
	})

	t.Run("Invalid id", func(t *testing.T) {
		repo := new(MockUserRepository)
		r := setupUserRouter(repo, service.PlainHasher{})

		w := do(r, http.MethodGet, "/users/abc", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"id must be a positive integer"}`, w.Body.String())
		repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})
}

func TestUserHandler_Books(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		repo := new(MockUserRepository)
		r := setupUserRouter(repo, service.PlainHasher{})
		repo.On("FindUserBooks", mock.Anything, int64(1)).Return([]models.Book{
			{ID: 1, Name: "The Great Gatsby", Author: "F. Scott Fitzgerald", Date: "1925"},
		}, nil).Once()

		w := do(r, http.MethodGet, "/user-books/1", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[{"id":1,"name":"The Great Gatsby","author":"F. Scott Fitzgerald","date":"1925"}]`, w.Body.String())
	})

	t.Run("Unknown user or no books", func(t *testing.T) {
		repo := new(MockUserRepository)
		r := setupUserRouter(repo, service.PlainHasher{})
		repo.On("FindUserBooks", mock.Anything, int64(5)).Return([]models.Book{}, nil).Once()

		w := do(r, http.MethodGet, "/user-books/5", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"User not found or does not have books"}`, w.Body.String())
	})

	t.Run("Invalid id", func(t *testing.T) {
		repo := new(MockUserRepository)
		r := setupUserRouter(repo, service.PlainHasher{})

		w := do(r, http.MethodGet, "/user-books/zero", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		repo.AssertNotCalled(t, "FindUserBooks", mock.Anything, mock.Anything)
	})
}

func TestUserHandler_Create(t *testing.T) {
	body := `{"username":"GeorgeSmith","email":"george@abv.bg","password":"secret1"}`

	t.Run("Success hashes the password", func(t *testing.T) {
		repo := new(MockUserRepository)
		r := setupUserRouter(repo, prefixHasher{})
		want := models.User{Username: "GeorgeSmith", Email: "george@abv.bg", Password: "hashed:secret1"}
		created := want
		created.ID = 4
		repo.On("Create", mock.Anything, want).Return([]models.User{created}, nil).Once()

		w := do(r, http.MethodPost, "/users", body)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"id":4`)
		repo.AssertExpectations(t)
	})

	t.Run("Duplicate email", func(t *testing.T) {
		repo := new(MockUserRepository)
		r := setupUserRouter(repo, service.PlainHasher{})
		repo.On("Create", mock.Anything, mock.Anything).Return([]models.User(nil), repository.ErrDuplicate).Once()

		w := do(r, http.MethodPost, "/users", body)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.JSONEq(t, `{"error":"User exists!"}`, w.Body.String())
	})

	t.Run("Invalid payload", func(t *testing.T) {
		for _, bad := range []string{
			`{"username":"short","email":"george@abv.bg","password":"secret1"}`,
			`{"username":"GeorgeSmith","email":"not-an-email","password":"secret1"}`,
			`{"username":"GeorgeSmith","email":"george@abv.bg","password":"123"}`,
			`{"username":"GeorgeSmith","email":"george@abv.bg"}`,
		} {
			repo := new(MockUserRepository)
			r := setupUserRouter(repo, service.PlainHasher{})

			w := do(r, http.MethodPost, "/users", bad)

			assert.Equal(t, http.StatusBadRequest, w.Code, bad)
			assert.Contains(t, w.Body.String(), `"error":"Invalid payload"`)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		}
	})
}

func TestUserHandler_Update(t *testing.T) {
	t.Run("Password is hashed", func(t *testing.T) {
		repo := new(MockUserRepository)
		r := setupUserRouter(repo, prefixHasher{})
		repo.On("Update", mock.Anything, int64(3), map[string]any{"password": "hashed:newpass"}).
			Return([]models.User{{ID: 3, Password: "hashed:newpass"}}, nil).Once()

		w := do(r, http.MethodPatch, "/users/3", `{"password":"newpass"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		repo.AssertExpectations(t)
	})

	t.Run("Username only", func(t *testing.T) {
		repo := new(MockUserRepository)
		r := setupUserRouter(repo, prefixHasher{})
		repo.On("Update", mock.Anything, int64(3), map[string]any{"username": "WillSmith"}).
			Return([]models.User{{ID: 3, Username: "WillSmith"}}, nil).Once()

		w := do(r, http.MethodPatch, "/users/3", `{"username":"WillSmith"}`)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("No matching user", func(t *testing.T) {
		repo := new(MockUserRepository)
		r := setupUserRouter(repo, service.PlainHasher{})
		repo.On("Update", mock.Anything, int64(30), mock.Anything).Return([]models.User{}, nil).Once()

		w := do(r, http.MethodPatch, "/users/30", `{"username":"WillSmith"}`)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"User not found"}`, w.Body.String())
	})

	t.Run("Email taken", func(t *testing.T) {
		repo := new(MockUserRepository)
		r := setupUserRouter(repo, service.PlainHasher{})
		repo.On("Update", mock.Anything, int64(3), mock.Anything).Return([]models.User(nil), repository.ErrDuplicate).Once()

		w := do(r, http.MethodPatch, "/users/3", `{"email":"johnjackson@abv.bg"}`)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Invalid payload", func(t *testing.T) {
		repo := new(MockUserRepository)
		r := setupUserRouter(repo, service.PlainHasher{})

		for _, body := range []string{`{"email":"nope"}`, `{"username":null}`, `{"password":null,"email":"john@abv.bg"}`} {
			w := do(r, http.MethodPatch, "/users/3", body)

			assert.Equal(t, http.StatusBadRequest, w.Code, body)
			assert.Contains(t, w.Body.String(), `"error":"Invalid payload"`)
		}
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestUserHandler_Delete(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		repo := new(MockUserRepository)
		r := setupUserRouter(repo, service.PlainHasher{})
		repo.On("Delete", mock.Anything, int64(3)).Return(int64(1), nil).Once()

		w := do(r, http.MethodDelete, "/users/3", "")

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("No matching user", func(t *testing.T) {
		repo := new(MockUserRepository)
		r := setupUserRouter(repo, service.PlainHasher{})
		repo.On("Delete", mock.Anything, int64(3)).Return(int64(0), nil).Once()

		w := do(r, http.MethodDelete, "/users/3", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"User not found"}`, w.Body.String())
	})

	t.Run("Gateway failure", func(t *testing.T) {
		repo := new(MockUserRepository)
		r := setupUserRouter(repo, service.PlainHasher{})
		repo.On("Delete", mock.Anything, int64(3)).Return(int64(0), errors.New("boom")).Once()

		w := do(r, http.MethodDelete, "/users/3", "")

		require.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
	})
}
