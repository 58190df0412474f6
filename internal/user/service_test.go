package user_test

import (
	"context"
	"errors"
	"log/slog"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	internal "github.com/frahmantamala/user-administration/internal"
	userDatamodel "github.com/frahmantamala/user-administration/internal/core/datamodel/user"
	"github.com/frahmantamala/user-administration/internal/core/events"
	"github.com/frahmantamala/user-administration/internal/employee"
	"github.com/frahmantamala/user-administration/internal/project"
	"github.com/frahmantamala/user-administration/internal/user"
)

// Mock repository for testing
type mockUserRepository struct {
	users       map[int64]*userDatamodel.User
	projects    map[int64][]string
	nextID      int64
	getError    error
	createError error
	updateError error
	deleteError error
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		users:    make(map[int64]*userDatamodel.User),
		projects: make(map[int64][]string),
		nextID:   1,
	}
}

func (m *mockUserRepository) seed(u userDatamodel.User, projectIDs []string) *userDatamodel.User {
	u.ID = m.nextID
	m.nextID++
	stored := u
	m.users[stored.ID] = &stored
	m.projects[stored.ID] = projectIDs
	return &stored
}

func (m *mockUserRepository) GetAll() ([]*userDatamodel.User, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	out := make([]*userDatamodel.User, 0, len(m.users))
	for id := int64(1); id < m.nextID; id++ {
		if u, ok := m.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *mockUserRepository) GetByID(id int64) (*userDatamodel.User, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	u, ok := m.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepository) GetAssignedProjects(userID int64) ([]string, error) {
	return m.projects[userID], nil
}

func (m *mockUserRepository) Create(u *userDatamodel.User, projectIDs []string) error {
	if m.createError != nil {
		return m.createError
	}
	u.ID = m.nextID
	m.nextID++
	m.users[u.ID] = u
	m.projects[u.ID] = projectIDs
	return nil
}

func (m *mockUserRepository) Update(u *userDatamodel.User, projectIDs []string) error {
	if m.updateError != nil {
		return m.updateError
	}
	m.users[u.ID] = u
	m.projects[u.ID] = projectIDs
	return nil
}

func (m *mockUserRepository) Delete(id int64) error {
	if m.deleteError != nil {
		return m.deleteError
	}
	delete(m.users, id)
	delete(m.projects, id)
	return nil
}

func (m *mockUserRepository) UpdatePassword(id int64, passwordHash string) error {
	u, ok := m.users[id]
	if !ok {
		return user.ErrNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

type mockEmployeeReader struct {
	roster []employee.Employee
}

func (m *mockEmployeeReader) GetAllEmployees() ([]employee.Employee, error) {
	return m.roster, nil
}

type mockForestLoader struct {
	projects []project.Project
	loadErr  error
}

func (m *mockForestLoader) LoadForest() (*project.Forest, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return project.BuildForest(m.projects), nil
}

type mockHasher struct {
	hashError error
}

func (m *mockHasher) HashPassword(password string) (string, error) {
	if m.hashError != nil {
		return "", m.hashError
	}
	return "hashed:" + password, nil
}

var _ = Describe("UserService", func() {
	var (
		service  *user.Service
		mockRepo *mockUserRepository
		reader   *mockEmployeeReader
		loader   *mockForestLoader
		hasher   *mockHasher
		ctx      context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		mockRepo = newMockUserRepository()
		mockRepo.seed(userDatamodel.User{
			Name: "Andi Wijaya", Username: "andi", EmpID: "EMP001",
			Role: user.RoleAdmin, PasswordHash: "hash-1", IsActive: true,
		}, nil)
		mockRepo.seed(userDatamodel.User{
			Name: "Budi Santoso", Username: "budi", EmpID: "EMP002",
			Role: user.RoleDataEntry, PasswordHash: "hash-2", IsActive: true,
		}, []string{"harbor"})

		reader = &mockEmployeeReader{roster: sampleRoster()}
		loader = &mockForestLoader{projects: []project.Project{
			{ID: "harbor", Name: "Harbor Expansion"},
			{ID: "tower", Name: "Tower Construction"},
		}}
		hasher = &mockHasher{}

		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		bus := events.NewEventBus(logger)
		service = user.NewService(mockRepo, reader, loader, hasher, bus, logger)
	})

	Describe("CreateUser", func() {
		It("should create an account bound to a roster employee", func() {
			created, err := service.CreateUser(ctx, &user.CreateUserDTO{
				EmpID:            "EMP003",
				Username:         "citra",
				Role:             user.RoleSafety,
				Password:         "secret123",
				PasswordConfirm:  "secret123",
				AssignedProjects: []string{"tower"},
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(created.ID).To(BeNumerically(">", 0))
			Expect(created.Name).To(Equal("Citra Lestari"))
			Expect(created.PasswordHash).To(Equal("hashed:secret123"))
			Expect(created.AssignedProjects).To(Equal([]string{"tower"}))
		})

		It("should reject an employee id already claimed by another account", func() {
			_, err := service.CreateUser(ctx, &user.CreateUserDTO{
				EmpID:           "EMP001",
				Username:        "second-andi",
				Role:            user.RoleSafety,
				Password:        "secret123",
				PasswordConfirm: "secret123",
			})
			Expect(err).To(Equal(internal.ErrEmployeeClaimed))
		})

		It("should reject an employee id missing from the roster", func() {
			_, err := service.CreateUser(ctx, &user.CreateUserDTO{
				EmpID:           "EMP999",
				Username:        "ghost",
				Role:            user.RoleSafety,
				Password:        "secret123",
				PasswordConfirm: "secret123",
			})
			Expect(err).To(Equal(internal.ErrEmployeeNotFound))
		})

		It("should prune assigned project ids that are not live", func() {
			created, err := service.CreateUser(ctx, &user.CreateUserDTO{
				EmpID:            "EMP003",
				Username:         "citra",
				Role:             user.RoleSafety,
				Password:         "secret123",
				PasswordConfirm:  "secret123",
				AssignedProjects: []string{"tower", "demolished", "tower"},
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(created.AssignedProjects).To(Equal([]string{"tower"}))
		})
	})

	Describe("UpdateUser", func() {
		It("should replace editable fields and keep the password when blank", func() {
			updated, err := service.UpdateUser(ctx, 2, &user.UpdateUserDTO{
				Username:         "budi-renamed",
				Role:             user.RoleProjectManager,
				AssignedProjects: []string{"harbor", "tower"},
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(updated.ID).To(Equal(int64(2)))
			Expect(updated.Username).To(Equal("budi-renamed"))
			Expect(updated.PasswordHash).To(Equal("hash-2"))
			Expect(updated.AssignedProjects).To(Equal([]string{"harbor", "tower"}))
		})

		It("should rehash when a new password is supplied", func() {
			updated, err := service.UpdateUser(ctx, 2, &user.UpdateUserDTO{
				Username:        "budi",
				Role:            user.RoleDataEntry,
				Password:        "brandnew1",
				PasswordConfirm: "brandnew1",
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(updated.PasswordHash).To(Equal("hashed:brandnew1"))
		})

		It("should re-validate a changed employee id against the roster", func() {
			_, err := service.UpdateUser(ctx, 2, &user.UpdateUserDTO{
				EmpID:    "EMP001",
				Username: "budi",
				Role:     user.RoleDataEntry,
			})
			Expect(err).To(Equal(internal.ErrEmployeeClaimed))
		})

		It("should skip the roster round trip when the id only changes case", func() {
			updated, err := service.UpdateUser(ctx, 2, &user.UpdateUserDTO{
				EmpID:    "emp002",
				Username: "budi",
				Role:     user.RoleDataEntry,
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(updated.EmpID).To(Equal("EMP002"))
		})

		It("should return not found for a missing account", func() {
			_, err := service.UpdateUser(ctx, 99, &user.UpdateUserDTO{
				Username: "nobody",
				Role:     user.RoleDataEntry,
			})
			Expect(err).To(Equal(internal.ErrUserNotFound))
		})
	})

	Describe("DeleteUser", func() {
		It("should delete another account", func() {
			Expect(service.DeleteUser(ctx, 2, 1)).To(Succeed())
			_, err := service.GetByID(2)
			Expect(err).To(Equal(internal.ErrUserNotFound))
		})

		It("should refuse self-deletion before any lookup", func() {
			mockRepo.getError = errors.New("must not be called")
			err := service.DeleteUser(ctx, 1, 1)
			Expect(err).To(Equal(internal.ErrSelfDeletion))
		})

		It("should return not found for a missing account", func() {
			err := service.DeleteUser(ctx, 99, 1)
			Expect(err).To(Equal(internal.ErrUserNotFound))
		})
	})

	Describe("ResetPassword", func() {
		It("should hash and store the new password", func() {
			err := service.ResetPassword(ctx, 2, &user.ResetPasswordDTO{
				Password:        "resetme12",
				PasswordConfirm: "resetme12",
			}, 1)
			Expect(err).ToNot(HaveOccurred())
			Expect(mockRepo.users[2].PasswordHash).To(Equal("hashed:resetme12"))
		})

		It("should require a password", func() {
			err := service.ResetPassword(ctx, 2, &user.ResetPasswordDTO{}, 1)
			Expect(err).To(Equal(internal.ErrPasswordRequired))
		})

		It("should reject a confirmation mismatch", func() {
			err := service.ResetPassword(ctx, 2, &user.ResetPasswordDTO{
				Password:        "resetme12",
				PasswordConfirm: "other",
			}, 1)
			Expect(err).To(Equal(internal.ErrPasswordMismatch))
		})
	})

	Describe("EmpIDClaimedBy", func() {
		It("should see a claim by any other account, case-insensitively", func() {
			claimed, err := service.EmpIDClaimedBy("emp001", 0)
			Expect(err).ToNot(HaveOccurred())
			Expect(claimed).To(BeTrue())
		})

		It("should ignore the excluded account", func() {
			claimed, err := service.EmpIDClaimedBy("EMP001", 1)
			Expect(err).ToNot(HaveOccurred())
			Expect(claimed).To(BeFalse())
		})

		It("should report an unclaimed id as free", func() {
			claimed, err := service.EmpIDClaimedBy("EMP003", 0)
			Expect(err).ToNot(HaveOccurred())
			Expect(claimed).To(BeFalse())
		})
	})
})
