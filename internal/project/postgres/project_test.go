package postgres_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	projectDatamodel "github.com/frahmantamala/user-administration/internal/core/datamodel/project"
	"github.com/frahmantamala/user-administration/internal/project"
	projectPostgres "github.com/frahmantamala/user-administration/internal/project/postgres"
)

func TestProjectPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Project Postgres Suite")
}

func strPtr(s string) *string { return &s }

var _ = Describe("Project Repository", func() {
	var (
		db   *gorm.DB
		repo project.RepositoryAPI
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&projectDatamodel.Project{})
		Expect(err).NotTo(HaveOccurred())

		// insert out of position order on purpose
		seed := []*projectDatamodel.Project{
			{ID: "tower", Name: "Tower Construction", Position: 2},
			{ID: "harbor", Name: "Harbor Expansion", Position: 0},
			{ID: "harbor-quay", Name: "Quay Wall", ParentID: strPtr("harbor"), Position: 1},
		}
		for _, p := range seed {
			Expect(db.Create(p).Error).NotTo(HaveOccurred())
		}

		repo = projectPostgres.NewProjectRepository(db)
	})

	Describe("GetAll", func() {
		It("should return projects in stored render order", func() {
			projects, err := repo.GetAll()
			Expect(err).NotTo(HaveOccurred())
			Expect(projects).To(HaveLen(3))
			Expect(projects[0].ID).To(Equal("harbor"))
			Expect(projects[1].ID).To(Equal("harbor-quay"))
			Expect(projects[2].ID).To(Equal("tower"))
		})

		It("should feed BuildForest directly", func() {
			models, err := repo.GetAll()
			Expect(err).NotTo(HaveOccurred())

			forest := project.BuildForest(project.FromDataModels(models))
			Expect(forest.LiveIDs()).To(Equal([]string{"harbor", "harbor-quay", "tower"}))
		})
	})

	Describe("GetByID", func() {
		It("should load a single project with its parent link", func() {
			p, err := repo.GetByID("harbor-quay")
			Expect(err).NotTo(HaveOccurred())
			Expect(p.Name).To(Equal("Quay Wall"))
			Expect(p.ParentID).NotTo(BeNil())
			Expect(*p.ParentID).To(Equal("harbor"))
		})

		It("should return the domain not-found error", func() {
			_, err := repo.GetByID("missing")
			Expect(err).To(Equal(project.ErrNotFound))
		})
	})
})
