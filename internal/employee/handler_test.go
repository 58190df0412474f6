package employee_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	employeeDatamodel "github.com/frahmantamala/user-administration/internal/core/datamodel/employee"
	"github.com/frahmantamala/user-administration/internal/employee"
	employeePostgres "github.com/frahmantamala/user-administration/internal/employee/postgres"
	"github.com/frahmantamala/user-administration/pkg/logger"
)

type stubChecker struct {
	claimedBy map[string]int64
}

func (s *stubChecker) EmpIDClaimedBy(empID string, excludeUserID int64) (bool, error) {
	owner, ok := s.claimedBy[empID]
	if !ok {
		return false, nil
	}
	return owner != excludeUserID, nil
}

var _ = Describe("Employee Handler Integration", func() {
	var (
		db      *gorm.DB
		service *employee.Service
		checker *stubChecker
		handler *employee.Handler
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&employeeDatamodel.Employee{})
		Expect(err).NotTo(HaveOccurred())

		repo := employeePostgres.NewEmployeeRepository(db)
		service = employee.NewService(repo, logger.LoggerWrapper())

		err = service.SyncRoster([]employee.Employee{
			{EmpID: "EMP001", Name: "Andi Wijaya", Email: "andi@mail.com"},
			{EmpID: "EMP002", Name: "Budi Santoso"},
		})
		Expect(err).NotTo(HaveOccurred())

		checker = &stubChecker{claimedBy: map[string]int64{"EMP001": 7}}
		handler = employee.NewHandler(service, checker)
	})

	Describe("GET /employees", func() {
		It("should list the roster mirror", func() {
			req := httptest.NewRequest(http.MethodGet, "/employees", nil)
			w := httptest.NewRecorder()

			handler.GetEmployees(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var resp employee.EmployeesResponse
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.Employees).To(HaveLen(2))
		})
	})

	Describe("GET /employees/lookup", func() {
		decode := func(w *httptest.ResponseRecorder) employee.LookupResponse {
			var resp employee.LookupResponse
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			return resp
		}

		It("should report idle for a blank id", func() {
			req := httptest.NewRequest(http.MethodGet, "/employees/lookup", nil)
			w := httptest.NewRecorder()

			handler.Lookup(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			resp := decode(w)
			Expect(resp.Status).To(Equal("idle"))
			Expect(resp.Employee).To(BeNil())
		})

		It("should return the roster entry for a free id", func() {
			req := httptest.NewRequest(http.MethodGet, "/employees/lookup?emp_id=emp002", nil)
			w := httptest.NewRecorder()

			handler.Lookup(w, req)

			resp := decode(w)
			Expect(resp.Status).To(Equal("valid"))
			Expect(resp.Employee).NotTo(BeNil())
			Expect(resp.Employee.EmpID).To(Equal("EMP002"))
			Expect(resp.Employee.Name).To(Equal("Budi Santoso"))
		})

		It("should report invalid for an id missing from the roster", func() {
			req := httptest.NewRequest(http.MethodGet, "/employees/lookup?emp_id=EMP999", nil)
			w := httptest.NewRecorder()

			handler.Lookup(w, req)

			resp := decode(w)
			Expect(resp.Status).To(Equal("invalid"))
			Expect(resp.Reason).To(ContainSubstring("valid Employee ID"))
		})

		It("should report invalid for an id claimed by another account", func() {
			req := httptest.NewRequest(http.MethodGet, "/employees/lookup?emp_id=EMP001", nil)
			w := httptest.NewRecorder()

			handler.Lookup(w, req)

			resp := decode(w)
			Expect(resp.Status).To(Equal("invalid"))
			Expect(resp.Reason).To(ContainSubstring("already exists"))
		})

		It("should treat the id as free when the claim is the excluded account's own", func() {
			req := httptest.NewRequest(http.MethodGet, "/employees/lookup?emp_id=EMP001&exclude_user_id=7", nil)
			w := httptest.NewRecorder()

			handler.Lookup(w, req)

			resp := decode(w)
			Expect(resp.Status).To(Equal("valid"))
		})
	})
})
