package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apperrors "teamtrack/internal/errors"
	"teamtrack/internal/models"
	"teamtrack/internal/service/mocks"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNewTeamHandler(t *testing.T) {
	mockService := &mocks.MockTeamService{}
	handler := NewTeamHandler(mockService)

	assert.NotNil(t, handler)
	assert.Equal(t, mockService, handler.service)
}

func TestTeamHandler_CreateTeam(t *testing.T) {
	userID := primitive.NewObjectID()
	teamID := primitive.NewObjectID()
	now := time.Now()

	tests := []struct {
		name           string
		userID         string
		body           interface{}
		mockSetup      func(*mocks.MockTeamService)
		expectedStatus int
		checkResponse  func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name:   "successful create team",
			userID: userID.Hex(),
			body:   models.CreateTeamRequest{Name: "Core", Description: "Core team"},
			mockSetup: func(m *mocks.MockTeamService) {
				m.CreateTeamFunc = func(ctx context.Context, uID primitive.ObjectID, req *models.CreateTeamRequest) (*models.Team, error) {
					return &models.Team{
						ID:          teamID,
						Name:        req.Name,
						Description: req.Description,
						OwnerID:     uID,
						CreatedAt:   now,
						UpdatedAt:   now,
					}, nil
				}
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				data := decodeData(t, w)
				assert.Equal(t, "Core", data["name"])
				assert.Equal(t, userID.Hex(), data["ownerId"])
			},
		},
		{
			name:           "missing user ID in context",
			body:           models.CreateTeamRequest{Name: "Core"},
			mockSetup:      func(m *mocks.MockTeamService) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "invalid user ID format",
			userID:         "invalid-id",
			body:           models.CreateTeamRequest{Name: "Core"},
			mockSetup:      func(m *mocks.MockTeamService) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "invalid JSON body",
			userID:         userID.Hex(),
			body:           "invalid json",
			mockSetup:      func(m *mocks.MockTeamService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "name too short",
			userID:         userID.Hex(),
			body:           models.CreateTeamRequest{Name: "C"},
			mockSetup:      func(m *mocks.MockTeamService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "name already taken",
			userID: userID.Hex(),
			body:   models.CreateTeamRequest{Name: "Core"},
			mockSetup: func(m *mocks.MockTeamService) {
				m.CreateTeamFunc = func(ctx context.Context, uID primitive.ObjectID, req *models.CreateTeamRequest) (*models.Team, error) {
					return nil, apperrors.ErrTeamNameTaken
				}
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:   "internal server error",
			userID: userID.Hex(),
			body:   models.CreateTeamRequest{Name: "Core"},
			mockSetup: func(m *mocks.MockTeamService) {
				m.CreateTeamFunc = func(ctx context.Context, uID primitive.ObjectID, req *models.CreateTeamRequest) (*models.Team, error) {
					return nil, errors.New("database error")
				}
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &mocks.MockTeamService{}
			tt.mockSetup(mockService)

			handler := NewTeamHandler(mockService)

			router := gin.New()
			router.POST("/teams", setUserID(tt.userID), handler.CreateTeam)

			w := serve(router, http.MethodPost, "/teams", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.checkResponse != nil {
				tt.checkResponse(t, w)
			}
		})
	}
}

func TestTeamHandler_ListTeams(t *testing.T) {
	userID := primitive.NewObjectID()

	t.Run("passes pagination", func(t *testing.T) {
		mockService := &mocks.MockTeamService{
			ListTeamsFunc: func(ctx context.Context, uID primitive.ObjectID, page, limit int) (*models.TeamListResponse, error) {
				assert.Equal(t, userID, uID)
				assert.Equal(t, 2, page)
				assert.Equal(t, 5, limit)
				return &models.TeamListResponse{
					Items:      []models.Team{{Name: "Core"}},
					Pagination: models.Pagination{Page: 2, Limit: 5, TotalItems: 6, TotalPages: 2},
				}, nil
			},
		}
		router := gin.New()
		router.GET("/teams", setUserID(userID.Hex()), NewTeamHandler(mockService).ListTeams)

		w := serve(router, http.MethodGet, "/teams?page=2&limit=5", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		data := decodeData(t, w)
		assert.Len(t, data["items"], 1)
	})

	t.Run("defaults apply", func(t *testing.T) {
		mockService := &mocks.MockTeamService{
			ListTeamsFunc: func(ctx context.Context, uID primitive.ObjectID, page, limit int) (*models.TeamListResponse, error) {
				assert.Equal(t, 1, page)
				assert.Equal(t, 10, limit)
				return &models.TeamListResponse{Items: []models.Team{}}, nil
			},
		}
		router := gin.New()
		router.GET("/teams", setUserID(userID.Hex()), NewTeamHandler(mockService).ListTeams)

		w := serve(router, http.MethodGet, "/teams", nil)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("limit above range", func(t *testing.T) {
		router := gin.New()
		router.GET("/teams", setUserID(userID.Hex()), NewTeamHandler(&mocks.MockTeamService{}).ListTeams)

		w := serve(router, http.MethodGet, "/teams?limit=500", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "limit must be at most 50")
	})

	t.Run("missing user ID", func(t *testing.T) {
		router := gin.New()
		router.GET("/teams", NewTeamHandler(&mocks.MockTeamService{}).ListTeams)

		w := serve(router, http.MethodGet, "/teams", nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestTeamHandler_GetTeam(t *testing.T) {
	teamID := primitive.NewObjectID()

	tests := []struct {
		name           string
		setTeam        bool
		err            error
		expectedStatus int
	}{
		{"found", true, nil, http.StatusOK},
		{"not found", true, apperrors.ErrTeamNotFound, http.StatusNotFound},
		{"team id missing from context", false, nil, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &mocks.MockTeamService{
				GetTeamFunc: func(ctx context.Context, id primitive.ObjectID) (*models.Team, error) {
					assert.Equal(t, teamID, id)
					if tt.err != nil {
						return nil, tt.err
					}
					return &models.Team{ID: id, Name: "Core"}, nil
				},
			}
			handlers := []gin.HandlerFunc{}
			if tt.setTeam {
				handlers = append(handlers, setTeamID(teamID))
			}
			handlers = append(handlers, NewTeamHandler(mockService).GetTeam)

			router := gin.New()
			router.GET("/teams/:teamId", handlers...)

			w := serve(router, http.MethodGet, "/teams/"+teamID.Hex(), nil)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestTeamHandler_UpdateTeam(t *testing.T) {
	userID := primitive.NewObjectID()
	teamID := primitive.NewObjectID()
	name := "Renamed"

	var gotActor primitive.ObjectID
	mockService := &mocks.MockTeamService{
		UpdateTeamFunc: func(ctx context.Context, actor, id primitive.ObjectID, req *models.UpdateTeamRequest) (*models.Team, error) {
			gotActor = actor
			if *req.Name == "Taken" {
				return nil, apperrors.ErrTeamNameTaken
			}
			return &models.Team{ID: id, Name: *req.Name}, nil
		},
	}
	router := gin.New()
	router.PUT("/teams/:teamId", setUserID(userID.Hex()), setTeamID(teamID), NewTeamHandler(mockService).UpdateTeam)

	w := serve(router, http.MethodPut, "/teams/"+teamID.Hex(), models.UpdateTeamRequest{Name: &name})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, userID, gotActor)

	taken := "Taken"
	w = serve(router, http.MethodPut, "/teams/"+teamID.Hex(), models.UpdateTeamRequest{Name: &taken})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestTeamHandler_DeleteTeam(t *testing.T) {
	userID := primitive.NewObjectID()
	teamID := primitive.NewObjectID()

	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{"deleted", nil, http.StatusOK},
		{"not found", apperrors.ErrTeamNotFound, http.StatusNotFound},
		{"database error", errors.New("database error"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &mocks.MockTeamService{
				DeleteTeamFunc: func(ctx context.Context, actor, id primitive.ObjectID) error {
					assert.Equal(t, userID, actor)
					assert.Equal(t, teamID, id)
					return tt.err
				},
			}
			router := gin.New()
			router.DELETE("/teams/:teamId", setUserID(userID.Hex()), setTeamID(teamID), NewTeamHandler(mockService).DeleteTeam)

			w := serve(router, http.MethodDelete, "/teams/"+teamID.Hex(), nil)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestTeamHandler_GetTeamDescriptor(t *testing.T) {
	teamID := primitive.NewObjectID()
	leader := primitive.NewObjectID()

	mockService := &mocks.MockTeamService{
		GetTeamDescriptorFunc: func(ctx context.Context, id primitive.ObjectID) (*models.TeamDescriptor, error) {
			if id != teamID {
				return nil, apperrors.ErrTeamNotFound
			}
			return &models.TeamDescriptor{
				Team:    models.Team{ID: id, Name: "Core", OwnerID: leader},
				Members: []models.Membership{{TeamID: id, UserID: leader, Role: models.RoleLeader}},
			}, nil
		},
	}
	router := gin.New()
	router.GET("/internal/teams/:teamId", NewTeamHandler(mockService).GetTeamDescriptor)

	w := serve(router, http.MethodGet, "/internal/teams/"+teamID.Hex(), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Len(t, data["members"], 1)

	w = serve(router, http.MethodGet, "/internal/teams/"+primitive.NewObjectID().Hex(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(router, http.MethodGet, "/internal/teams/not-an-id", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
