package project_test

import (
	"errors"
	"log/slog"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	internal "github.com/frahmantamala/user-administration/internal"
	projectDatamodel "github.com/frahmantamala/user-administration/internal/core/datamodel/project"
	"github.com/frahmantamala/user-administration/internal/project"
)

// Mock repository for testing
type mockProjectRepository struct {
	projects []*projectDatamodel.Project
	getError error
}

func newMockProjectRepository() *mockProjectRepository {
	return &mockProjectRepository{
		projects: []*projectDatamodel.Project{
			{ID: "A", Name: "Alpha", Position: 0},
			{ID: "B", Name: "Bravo", ParentID: strPtr("A"), Position: 1},
			{ID: "C", Name: "Charlie", ParentID: strPtr("B"), Position: 2},
			{ID: "D", Name: "Delta", ParentID: strPtr("A"), Position: 3},
		},
	}
}

func (m *mockProjectRepository) GetAll() ([]*projectDatamodel.Project, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	return m.projects, nil
}

func (m *mockProjectRepository) GetByID(id string) (*projectDatamodel.Project, error) {
	for _, p := range m.projects {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, project.ErrNotFound
}

var _ = Describe("ProjectService", func() {
	var (
		service  *project.Service
		mockRepo *mockProjectRepository
	)

	BeforeEach(func() {
		mockRepo = newMockProjectRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = project.NewService(mockRepo, logger)
	})

	Describe("ToggleSelection", func() {
		It("should select the subtree and return a normalized selection", func() {
			resp, err := service.ToggleSelection(project.ToggleSelectionDTO{
				ProjectID: "B",
				Selected:  true,
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(resp.SelectedIDs).To(Equal([]string{"B", "C"}))
			Expect(resp.Summary).To(Equal("Bravo"))
		})

		It("should deselect the subtree starting from the caller's selection", func() {
			resp, err := service.ToggleSelection(project.ToggleSelectionDTO{
				SelectedIDs: []string{"A", "B", "C", "D"},
				ProjectID:   "B",
				Selected:    false,
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(resp.SelectedIDs).To(Equal([]string{"A", "D"}))
		})

		It("should reject an unknown project id", func() {
			_, err := service.ToggleSelection(project.ToggleSelectionDTO{
				ProjectID: "nope",
				Selected:  true,
			})
			Expect(err).To(MatchError(internal.ErrProjectNotFound))
		})

		It("should propagate repository errors", func() {
			mockRepo.getError = errors.New("db down")
			_, err := service.ToggleSelection(project.ToggleSelectionDTO{
				ProjectID: "A",
				Selected:  true,
			})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("SelectAll", func() {
		It("should cover every live project", func() {
			resp, err := service.SelectAll(project.SelectAllDTO{Selected: true})
			Expect(err).ToNot(HaveOccurred())
			Expect(resp.SelectedIDs).To(Equal([]string{"A", "B", "C", "D"}))
			Expect(resp.Summary).To(Equal("All Projects"))
		})

		It("should clear everything when off", func() {
			resp, err := service.SelectAll(project.SelectAllDTO{Selected: false})
			Expect(err).ToNot(HaveOccurred())
			Expect(resp.SelectedIDs).To(BeEmpty())
			Expect(resp.Summary).To(Equal("Select Projects"))
		})
	})

	Describe("Summary", func() {
		It("should label a partial selection by its top-level chains", func() {
			resp, err := service.Summary(project.SummaryDTO{SelectedIDs: []string{"B", "C", "D"}})
			Expect(err).ToNot(HaveOccurred())
			Expect(resp.Summary).To(Equal("2 Projects Selected"))
		})

		It("should keep stale ids in the returned selection", func() {
			resp, err := service.Summary(project.SummaryDTO{SelectedIDs: []string{"B", "C", "gone"}})
			Expect(err).ToNot(HaveOccurred())
			Expect(resp.SelectedIDs).To(Equal([]string{"B", "C", "gone"}))
		})
	})

	Describe("Tree", func() {
		It("should render roots only when nothing is expanded", func() {
			resp, err := service.Tree(nil, nil)
			Expect(err).ToNot(HaveOccurred())
			Expect(resp.Nodes).To(HaveLen(1))
			Expect(resp.Nodes[0].Project.ID).To(Equal("A"))
		})

		It("should honor the caller's expansion state", func() {
			resp, err := service.Tree([]string{"A"}, []string{"D"})
			Expect(err).ToNot(HaveOccurred())
			Expect(resp.Nodes).To(HaveLen(3))
			Expect(resp.Nodes[2].Project.ID).To(Equal("D"))
			Expect(resp.Nodes[2].Selected).To(BeTrue())
		})
	})
})
