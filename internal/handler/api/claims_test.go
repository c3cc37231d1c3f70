//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"parkingbot/internal/domain/claim"
	"parkingbot/internal/handler/api"
	resdto "parkingbot/internal/handler/dto/response"
	"parkingbot/internal/handler/middleware"
	"parkingbot/internal/pkg/config"
	"parkingbot/internal/pkg/errs"
	"parkingbot/internal/usecase"
	"parkingbot/internal/usecase/queries"
	"parkingbot/tests/common/httptest"
	queriesmock "parkingbot/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ClaimsHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockClaimQueries
}

func (s *ClaimsHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockClaimQueries(s.mockCtrl)

	auth := middleware.NewAuthMiddleware(config.NewTestConfig())
	s.router.GET("/api/claims", auth.RequireAuth(), api.NewClaimsHandler(s.mockQueries).List)
}

func (s *ClaimsHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestClaimsHandlerSuite(t *testing.T) {
	suite.Run(t, new(ClaimsHandlerTestSuite))
}

func (s *ClaimsHandlerTestSuite) TestList() {
	url := "/api/claims"
	d1, _ := claim.ParseDate("2016-05-08")
	d2, _ := claim.ParseDate("2016-05-10")

	s.Run("success: returns 200 with claims in order", func() {
		s.mockQueries.EXPECT().Upcoming(gomock.Any()).Return([]queries.ClaimView{
			{Date: d1, ClaimantID: "U1", ClaimantName: "Mike Jones"},
			{Date: d2, ClaimantID: "U2", ClaimantName: "Sean Connery"},
		}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "test-webhook-token")

		var got []resdto.ClaimResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &got)
		s.Equal([]resdto.ClaimResponse{
			{Date: "2016-05-08", ClaimantID: "U1", ClaimantName: "Mike Jones"},
			{Date: "2016-05-10", ClaimantID: "U2", ClaimantName: "Sean Connery"},
		}, got)
	})

	s.Run("success: empty listing is an empty array", func() {
		s.mockQueries.EXPECT().Upcoming(gomock.Any()).Return(nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "test-webhook-token")

		s.Equal(http.StatusOK, rec.Code)
		s.JSONEq(`[]`, rec.Body.String())
	})

	s.Run("failure: missing token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Access token required")
	})

	s.Run("failure: wrong token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "other-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid token")
	})

	s.Run("failure: store unavailable", func() {
		storeErr := errs.Mark(errors.New("dial tcp: connection refused"), usecase.ErrStoreOperationFailed)
		s.mockQueries.EXPECT().Upcoming(gomock.Any()).Return(nil, storeErr).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "test-webhook-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusServiceUnavailable, "Claim store unavailable")
	})

	s.Run("failure: unexpected error", func() {
		s.mockQueries.EXPECT().Upcoming(gomock.Any()).Return(nil, errors.New("boom")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "test-webhook-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}
