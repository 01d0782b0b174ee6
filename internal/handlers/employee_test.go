package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/krmayoral/Agenda-WF/internal/database"
	"github.com/krmayoral/Agenda-WF/internal/models"
	"github.com/krmayoral/Agenda-WF/internal/registry"
	"github.com/krmayoral/Agenda-WF/internal/store"
)

// EmployeeHandlerTestSuite defines the test suite for EmployeeHandler
type EmployeeHandlerTestSuite struct {
	suite.Suite
	db       *gorm.DB
	registry *registry.Registry
	handler  *EmployeeHandler
	router   *gin.Engine
	clock    time.Time
}

// SetupTest runs before each test
func (suite *EmployeeHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)
	suite.Require().NoError(suite.db.AutoMigrate(&store.Entry{}))

	// Set the test DB as the default database
	database.SetDB(suite.db)

	suite.clock = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	suite.registry, err = registry.Load(store.NewGormStore(database.GetDB()), registry.WithClock(suite.tick))
	suite.Require().NoError(err)

	suite.handler = NewEmployeeHandler(suite.registry, NewDeleteConfirmations())

	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	employees := suite.router.Group("/api/employees")
	{
		employees.GET("", suite.handler.ListEmployees)
		employees.POST("", suite.handler.CreateEmployee)
		employees.GET("/:id", suite.handler.GetEmployee)
		employees.PUT("/:id", suite.handler.UpdateEmployee)
		employees.POST("/:id/delete-request", suite.handler.RequestDelete)
		employees.POST("/:id/delete-cancel", suite.handler.CancelDelete)
		employees.DELETE("/:id", suite.handler.DeleteEmployee)
	}
	meta := suite.router.Group("/api/meta")
	{
		meta.GET("/degrees", suite.handler.ListDegrees)
		meta.GET("/positions", suite.handler.ListPositions)
	}
}

// TearDownTest runs after each test
func (suite *EmployeeHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *EmployeeHandlerTestSuite) tick() time.Time {
	suite.clock = suite.clock.Add(time.Millisecond)
	return suite.clock
}

func (suite *EmployeeHandlerTestSuite) serve(method, url string, body any) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		req = httptest.NewRequest(method, url, bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *EmployeeHandlerTestSuite) createEmployee(name, position, degree string) models.Employee {
	emp, err := suite.registry.AddEmployee(models.Employee{
		Name:     name,
		Position: position,
		Degree:   degree,
	})
	suite.Require().NoError(err)
	return *emp
}

func (suite *EmployeeHandlerTestSuite) TestCreateEmployee() {
	w := suite.serve("POST", "/api/employees", gin.H{
		"name":       "Ana",
		"position":   "Engineer",
		"degree":     "CS",
		"activities": "Backend work",
	})

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var created models.Employee
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotZero(suite.T(), created.ID)
	assert.Equal(suite.T(), "Ana", created.Name)
}

func (suite *EmployeeHandlerTestSuite) TestCreateEmployeeMissingPosition() {
	w := suite.serve("POST", "/api/employees", gin.H{"name": "Ana"})

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	assert.Empty(suite.T(), suite.registry.ListEmployees(registry.EmployeeFilter{}))
}

func (suite *EmployeeHandlerTestSuite) TestListEmployeesWithFilters() {
	suite.createEmployee("Ana", "Engineer", "CS")
	suite.createEmployee("Luis", "Engineer", "Arts")
	suite.createEmployee("Marta", "Designer", "Arts")

	w := suite.serve("GET", "/api/employees?position=Engineer&degree=Arts", nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response struct {
		Employees []models.Employee `json:"employees"`
		Count     int               `json:"count"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), 1, response.Count)
	suite.Require().Len(response.Employees, 1)
	assert.Equal(suite.T(), "Luis", response.Employees[0].Name)
}

func (suite *EmployeeHandlerTestSuite) TestGetEmployeeNotFound() {
	w := suite.serve("GET", "/api/employees/12345", nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *EmployeeHandlerTestSuite) TestUpdateEmployee() {
	emp := suite.createEmployee("Ana", "Engineer", "CS")

	w := suite.serve("PUT", fmt.Sprintf("/api/employees/%d", emp.ID), gin.H{
		"name":     "Ana Maria",
		"position": "Lead Engineer",
	})

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	updated, ok := suite.registry.FindEmployee(emp.ID)
	suite.Require().True(ok)
	assert.Equal(suite.T(), "Ana Maria", updated.Name)
}

func (suite *EmployeeHandlerTestSuite) TestUpdateUnknownEmployee() {
	w := suite.serve("PUT", "/api/employees/999", gin.H{
		"name":     "Nobody",
		"position": "Nowhere",
	})
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *EmployeeHandlerTestSuite) TestDeleteRequiresConfirmation() {
	emp := suite.createEmployee("Ana", "Engineer", "CS")

	// Deleting without a requested confirmation is refused.
	w := suite.serve("DELETE", fmt.Sprintf("/api/employees/%d", emp.ID), nil)
	assert.Equal(suite.T(), http.StatusConflict, w.Code)
	assert.Len(suite.T(), suite.registry.ListEmployees(registry.EmployeeFilter{}), 1)

	// Request, then confirm with the returned token.
	w = suite.serve("POST", fmt.Sprintf("/api/employees/%d/delete-request", emp.ID), nil)
	assert.Equal(suite.T(), http.StatusAccepted, w.Code)

	var response struct {
		Token string `json:"token"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Require().NotEmpty(response.Token)

	w = suite.serve("DELETE", fmt.Sprintf("/api/employees/%d?token=%s", emp.ID, response.Token), nil)
	assert.Equal(suite.T(), http.StatusNoContent, w.Code)
	assert.Empty(suite.T(), suite.registry.ListEmployees(registry.EmployeeFilter{}))
}

func (suite *EmployeeHandlerTestSuite) TestCancelledDeleteKeepsEmployee() {
	emp := suite.createEmployee("Ana", "Engineer", "CS")

	w := suite.serve("POST", fmt.Sprintf("/api/employees/%d/delete-request", emp.ID), nil)
	assert.Equal(suite.T(), http.StatusAccepted, w.Code)

	var response struct {
		Token string `json:"token"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))

	w = suite.serve("POST", fmt.Sprintf("/api/employees/%d/delete-cancel", emp.ID), nil)
	assert.Equal(suite.T(), http.StatusNoContent, w.Code)

	// The old token no longer confirms anything.
	w = suite.serve("DELETE", fmt.Sprintf("/api/employees/%d?token=%s", emp.ID, response.Token), nil)
	assert.Equal(suite.T(), http.StatusConflict, w.Code)
	assert.Len(suite.T(), suite.registry.ListEmployees(registry.EmployeeFilter{}), 1)
}

func (suite *EmployeeHandlerTestSuite) TestDeleteRequestUnknownEmployee() {
	w := suite.serve("POST", "/api/employees/999/delete-request", nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *EmployeeHandlerTestSuite) TestListDegrees() {
	suite.createEmployee("E1", "P", "A")
	suite.createEmployee("E2", "P", "")
	suite.createEmployee("E3", "P", "A")
	suite.createEmployee("E4", "P", "B")

	w := suite.serve("GET", "/api/meta/degrees", nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response struct {
		Degrees []string `json:"degrees"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), []string{"A", "B"}, response.Degrees)
}

func TestEmployeeHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(EmployeeHandlerTestSuite))
}
