package user_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/go-chi/chi"

	"github.com/frahmantamala/user-administration/internal/auth"
	userDatamodel "github.com/frahmantamala/user-administration/internal/core/datamodel/user"
	"github.com/frahmantamala/user-administration/internal/core/events"
	"github.com/frahmantamala/user-administration/internal/project"
	"github.com/frahmantamala/user-administration/internal/user"
)

var _ = Describe("User Handler", func() {
	var (
		mockRepo *mockUserRepository
		router   *chi.Mux
	)

	actorCtx := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor := &auth.User{ID: 1, Username: "andi", Role: user.RoleAdmin}
			next.ServeHTTP(w, r.WithContext(auth.ContextWithUser(r.Context(), actor)))
		})
	}

	BeforeEach(func() {
		mockRepo = newMockUserRepository()
		mockRepo.seed(userDatamodel.User{
			Name: "Andi Wijaya", Username: "andi", EmpID: "EMP001",
			Role: user.RoleAdmin, PasswordHash: "hash-1", IsActive: true,
		}, nil)
		mockRepo.seed(userDatamodel.User{
			Name: "Budi Santoso", Username: "budi", EmpID: "EMP002",
			Role: user.RoleDataEntry, PasswordHash: "hash-2", IsActive: true,
		}, []string{"harbor"})

		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service := user.NewService(
			mockRepo,
			&mockEmployeeReader{roster: sampleRoster()},
			&mockForestLoader{projects: []project.Project{
				{ID: "harbor", Name: "Harbor Expansion"},
				{ID: "tower", Name: "Tower Construction"},
			}},
			&mockHasher{},
			events.NewEventBus(logger),
			logger,
		)
		handler := user.NewHandler(service)

		router = chi.NewRouter()
		router.Use(actorCtx)
		router.Get("/users", handler.GetUsers)
		router.Get("/users/me", handler.GetCurrentUser)
		router.Get("/users/{id}", handler.GetUser)
		router.Post("/users", handler.CreateUser)
		router.Put("/users/{id}", handler.UpdateUser)
		router.Delete("/users/{id}", handler.DeleteUser)
		router.Post("/users/{id}/reset-password", handler.ResetPassword)
	})

	Describe("GET /users", func() {
		It("should list every account with its assigned projects", func() {
			req := httptest.NewRequest(http.MethodGet, "/users", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var resp user.UsersResponse
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.Users).To(HaveLen(2))
			Expect(resp.Users[1].AssignedProjects).To(Equal([]string{"harbor"}))
		})
	})

	Describe("GET /users/me", func() {
		It("should return the authenticated account", func() {
			req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var resp user.User
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.Username).To(Equal("andi"))
		})
	})

	Describe("POST /users", func() {
		It("should create an account from a valid add form", func() {
			body, _ := json.Marshal(user.CreateUserDTO{
				EmpID:           "EMP003",
				Username:        "citra",
				Role:            user.RoleSafety,
				Password:        "secret123",
				PasswordConfirm: "secret123",
			})
			req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader(body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusCreated))

			var resp user.User
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.Name).To(Equal("Citra Lestari"))
		})

		It("should map a claimed employee id to 409", func() {
			body, _ := json.Marshal(user.CreateUserDTO{
				EmpID:           "EMP002",
				Username:        "second-budi",
				Role:            user.RoleSafety,
				Password:        "secret123",
				PasswordConfirm: "secret123",
			})
			req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader(body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusConflict))
		})

		It("should map a validation failure to 400", func() {
			body, _ := json.Marshal(user.CreateUserDTO{
				EmpID:           "EMP003",
				Username:        "citra",
				Role:            user.RoleSafety,
				Password:        "secret123",
				PasswordConfirm: "nope",
			})
			req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader(body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("DELETE /users/{id}", func() {
		It("should delete another account", func() {
			req := httptest.NewRequest(http.MethodDelete, "/users/2", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusNoContent))
		})

		It("should refuse deleting the actor's own account", func() {
			req := httptest.NewRequest(http.MethodDelete, "/users/1", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusForbidden))
		})
	})

	Describe("POST /users/{id}/reset-password", func() {
		It("should set the new password", func() {
			body, _ := json.Marshal(user.ResetPasswordDTO{
				Password:        "resetme12",
				PasswordConfirm: "resetme12",
			})
			req := httptest.NewRequest(http.MethodPost, "/users/2/reset-password", bytes.NewReader(body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusNoContent))
			Expect(mockRepo.users[2].PasswordHash).To(Equal("hashed:resetme12"))
		})

		It("should map a confirmation mismatch to 400", func() {
			body, _ := json.Marshal(user.ResetPasswordDTO{
				Password:        "resetme12",
				PasswordConfirm: "other",
			})
			req := httptest.NewRequest(http.MethodPost, "/users/2/reset-password", bytes.NewReader(body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})
})
