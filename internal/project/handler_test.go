package project_test

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

	"github.com/frahmantamala/user-administration/internal/project"
)

var _ = Describe("Project Handler", func() {
	var (
		mockRepo *mockProjectRepository
		router   *chi.Mux
	)

	BeforeEach(func() {
		mockRepo = newMockProjectRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service := project.NewService(mockRepo, logger)
		handler := project.NewHandler(service)

		router = chi.NewRouter()
		router.Get("/projects", handler.GetProjects)
		router.Get("/projects/tree", handler.GetTree)
		router.Post("/projects/selection/toggle", handler.ToggleSelection)
		router.Post("/projects/selection/all", handler.SelectAll)
		router.Post("/projects/selection/summary", handler.Summary)
	})

	postJSON := func(path string, body any) *httptest.ResponseRecorder {
		payload, err := json.Marshal(body)
		Expect(err).NotTo(HaveOccurred())
		req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	Describe("GET /projects", func() {
		It("returns the forest in input order", func() {
			req := httptest.NewRequest(http.MethodGet, "/projects", nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))
			var resp project.ProjectsResponse
			Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.Projects).To(HaveLen(4))
			Expect(resp.Projects[0].ID).To(Equal("A"))
		})
	})

	Describe("GET /projects/tree", func() {
		It("shows only roots when nothing is expanded", func() {
			req := httptest.NewRequest(http.MethodGet, "/projects/tree", nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))
			var resp project.TreeResponse
			Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.Nodes).To(HaveLen(1))
			Expect(resp.Nodes[0].Project.ID).To(Equal("A"))
			Expect(resp.Summary).To(Equal("Select Projects"))
		})

		It("reveals children of expanded branches and marks selections", func() {
			req := httptest.NewRequest(http.MethodGet, "/projects/tree?expanded=A&selected=B,C", nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))
			var resp project.TreeResponse
			Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.Nodes).To(HaveLen(3))
			Expect(resp.Nodes[1].Project.ID).To(Equal("B"))
			Expect(resp.Nodes[1].Selected).To(BeTrue())
			Expect(resp.Nodes[2].Project.ID).To(Equal("D"))
			Expect(resp.Nodes[2].Selected).To(BeFalse())
			Expect(resp.Summary).To(Equal("Bravo"))
		})
	})

	Describe("POST /projects/selection/toggle", func() {
		It("selects a node together with its descendants", func() {
			rec := postJSON("/projects/selection/toggle", project.ToggleSelectionDTO{
				ProjectID: "B",
				Selected:  true,
			})

			Expect(rec.Code).To(Equal(http.StatusOK))
			var resp project.SelectionResponse
			Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.SelectedIDs).To(Equal([]string{"B", "C"}))
			Expect(resp.Summary).To(Equal("Bravo"))
		})

		It("rejects a body without a project id", func() {
			rec := postJSON("/projects/selection/toggle", project.ToggleSelectionDTO{Selected: true})
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("returns not found for an unknown project id", func() {
			rec := postJSON("/projects/selection/toggle", project.ToggleSelectionDTO{
				ProjectID: "nope",
				Selected:  true,
			})
			Expect(rec.Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("POST /projects/selection/all", func() {
		It("selects every live project", func() {
			rec := postJSON("/projects/selection/all", project.SelectAllDTO{Selected: true})

			Expect(rec.Code).To(Equal(http.StatusOK))
			var resp project.SelectionResponse
			Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.SelectedIDs).To(Equal([]string{"A", "B", "C", "D"}))
			Expect(resp.Summary).To(Equal("All Projects"))
		})

		It("clears the selection when off", func() {
			rec := postJSON("/projects/selection/all", project.SelectAllDTO{Selected: false})

			Expect(rec.Code).To(Equal(http.StatusOK))
			var resp project.SelectionResponse
			Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.SelectedIDs).To(BeEmpty())
			Expect(resp.Summary).To(Equal("Select Projects"))
		})
	})

	Describe("POST /projects/selection/summary", func() {
		It("labels a partial selection by count", func() {
			rec := postJSON("/projects/selection/summary", project.SummaryDTO{
				SelectedIDs: []string{"B", "D"},
			})

			Expect(rec.Code).To(Equal(http.StatusOK))
			var resp project.SelectionResponse
			Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.Summary).To(Equal("2 Projects Selected"))
		})
	})
})
