package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/priority-focus-api/internal/constants"
	"github.com/yukikurage/priority-focus-api/internal/dto"
	"github.com/yukikurage/priority-focus-api/internal/logging"
	"github.com/yukikurage/priority-focus-api/internal/models"
	"github.com/yukikurage/priority-focus-api/internal/repository"
	"github.com/yukikurage/priority-focus-api/internal/services"
	"github.com/yukikurage/priority-focus-api/internal/testutil"
	"gorm.io/gorm"
)

// TeamMemberHandlerTestSuite defines the test suite for TeamMemberHandler
type TeamMemberHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *TeamMemberHandler
	manager *models.Manager
}

// SetupTest runs before each test
func (suite *TeamMemberHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	suite.db = testutil.OpenDB(suite.T())
	teamMemberRepo := repository.NewTeamMemberRepository(suite.db)
	suite.handler = NewTeamMemberHandler(services.NewTeamMemberService(teamMemberRepo), logging.Discard())
	suite.manager = testutil.CreateManager(suite.T(), suite.db, "lead@example.com")
}

// Helper function to create authenticated context
func (suite *TeamMemberHandlerTestSuite) createAuthContext(method, url string, body interface{}, managerID uint64) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		req = httptest.NewRequest(method, url, bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(constants.ContextKeyManagerID, managerID)

	return c, w
}

// Helper function to set team member context (simulates RequireTeamMemberAccess middleware)
func (suite *TeamMemberHandlerTestSuite) setTeamMemberContext(c *gin.Context, id uint64) {
	c.Set(constants.ContextKeyTeamMemberID, id)
}

// TestListTeamMembers_Success tests listing in display order
func (suite *TeamMemberHandlerTestSuite) TestListTeamMembers_Success() {
	testutil.CreateTeamMember(suite.T(), suite.db, suite.manager.ID, "Second", 1)
	testutil.CreateTeamMember(suite.T(), suite.db, suite.manager.ID, "First", 0)

	c, w := suite.createAuthContext("GET", "/api/team-members", nil, suite.manager.ID)

	suite.handler.ListTeamMembers(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response []dto.TeamMemberDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Require().Len(response, 2)
	assert.Equal(suite.T(), "First", response[0].Name)
	assert.Equal(suite.T(), "Second", response[1].Name)
}

// TestListTeamMembers_EmptyIsArray tests an empty roster renders as []
func (suite *TeamMemberHandlerTestSuite) TestListTeamMembers_EmptyIsArray() {
	c, w := suite.createAuthContext("GET", "/api/team-members", nil, suite.manager.ID)

	suite.handler.ListTeamMembers(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.JSONEq(suite.T(), "[]", w.Body.String())
}

// TestListTeamMembers_Unauthorized tests listing without authentication
func (suite *TeamMemberHandlerTestSuite) TestListTeamMembers_Unauthorized() {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/team-members", nil)

	suite.handler.ListTeamMembers(c)

	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

// TestCreateTeamMember_Success tests creation trims the name and appends
func (suite *TeamMemberHandlerTestSuite) TestCreateTeamMember_Success() {
	testutil.CreateTeamMember(suite.T(), suite.db, suite.manager.ID, "Existing", 4)

	c, w := suite.createAuthContext("POST", "/api/team-members", gin.H{"name": "  Dana  "}, suite.manager.ID)

	suite.handler.CreateTeamMember(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response dto.TeamMemberDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), "Dana", response.Name)
	assert.Equal(suite.T(), 5, response.DisplayOrder)
	assert.False(suite.T(), response.IsArchived)
}

// TestCreateTeamMember_BlankName tests whitespace-only names are rejected
func (suite *TeamMemberHandlerTestSuite) TestCreateTeamMember_BlankName() {
	c, w := suite.createAuthContext("POST", "/api/team-members", gin.H{"name": "   "}, suite.manager.ID)

	suite.handler.CreateTeamMember(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	var count int64
	suite.db.Model(&models.TeamMember{}).Count(&count)
	assert.Zero(suite.T(), count)
}

// TestUpdateTeamMember_Success tests a partial update
func (suite *TeamMemberHandlerTestSuite) TestUpdateTeamMember_Success() {
	member := testutil.CreateTeamMember(suite.T(), suite.db, suite.manager.ID, "Dana", 2)

	c, w := suite.createAuthContext("PATCH", "/api/team-members/1", gin.H{"display_order": 0}, suite.manager.ID)
	suite.setTeamMemberContext(c, member.ID)

	suite.handler.UpdateTeamMember(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response dto.TeamMemberDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), "Dana", response.Name)
	assert.Equal(suite.T(), 0, response.DisplayOrder)
}

// TestUpdateTeamMember_ForeignManager tests the statement-level ownership check behind the guard
func (suite *TeamMemberHandlerTestSuite) TestUpdateTeamMember_ForeignManager() {
	other := testutil.CreateManager(suite.T(), suite.db, "other@example.com")
	member := testutil.CreateTeamMember(suite.T(), suite.db, other.ID, "Dana", 0)

	c, w := suite.createAuthContext("PATCH", "/api/team-members/1", gin.H{"name": "Mallory"}, suite.manager.ID)
	suite.setTeamMemberContext(c, member.ID)

	suite.handler.UpdateTeamMember(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestArchiveTeamMember_Success tests soft delete
func (suite *TeamMemberHandlerTestSuite) TestArchiveTeamMember_Success() {
	member := testutil.CreateTeamMember(suite.T(), suite.db, suite.manager.ID, "Dana", 0)

	c, w := suite.createAuthContext("DELETE", "/api/team-members/1", nil, suite.manager.ID)
	suite.setTeamMemberContext(c, member.ID)

	suite.handler.ArchiveTeamMember(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var reloaded models.TeamMember
	suite.Require().NoError(suite.db.First(&reloaded, member.ID).Error)
	assert.True(suite.T(), reloaded.IsArchived)
}

// TestReorderTeamMembers_ReportsSkipped tests unknown ids come back as skipped
func (suite *TeamMemberHandlerTestSuite) TestReorderTeamMembers_ReportsSkipped() {
	member := testutil.CreateTeamMember(suite.T(), suite.db, suite.manager.ID, "Dana", 0)

	c, w := suite.createAuthContext("PATCH", "/api/team-members/reorder", gin.H{
		"order_map": map[string]int{"1": 3, "999": 0},
	}, suite.manager.ID)

	suite.handler.ReorderTeamMembers(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response dto.ReorderResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), []uint64{member.ID}, response.Updated)
	assert.Equal(suite.T(), []uint64{999}, response.Skipped)
	assert.Equal(suite.T(), "Team members reordered successfully", response.Message)
}

// TestReorderTeamMembers_DuplicateIDs tests two spellings of one id reject the whole request
func (suite *TeamMemberHandlerTestSuite) TestReorderTeamMembers_DuplicateIDs() {
	member := testutil.CreateTeamMember(suite.T(), suite.db, suite.manager.ID, "Dana", 0)

	c, w := suite.createAuthContext("PATCH", "/api/team-members/reorder", gin.H{
		"order_map": map[string]int{"1": 3, "01": 4},
	}, suite.manager.ID)

	suite.handler.ReorderTeamMembers(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	var reloaded models.TeamMember
	suite.Require().NoError(suite.db.First(&reloaded, member.ID).Error)
	assert.Equal(suite.T(), 0, reloaded.DisplayOrder)
}

// TestTeamMemberHandlerTestSuite runs the test suite
func TestTeamMemberHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TeamMemberHandlerTestSuite))
}
