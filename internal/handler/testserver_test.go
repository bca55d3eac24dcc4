package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/dafibh/kakeibo/kakeibo-backend/internal/service"
	"github.com/dafibh/kakeibo/kakeibo-backend/internal/testutil"
	"github.com/dafibh/kakeibo/kakeibo-backend/internal/websocket"
	"github.com/labstack/echo/v4"
)

// testServer wires every handler over an in-memory store
type testServer struct {
	echo      *echo.Echo
	repo      *testutil.MockStateRepository
	backups   *testutil.MockBackupRepository
	publisher *testutil.MockEventPublisher
	hub       *websocket.Hub
}

func newTestServer() *testServer {
	repo := testutil.NewMockStateRepository()
	repo.SetState(testutil.ReferenceHousehold())
	backups := testutil.NewMockBackupRepository()
	publisher := testutil.NewMockEventPublisher()
	hub := websocket.NewHub()

	stateService := service.NewStateService(repo)
	stateService.SetEventPublisher(publisher)
	backupService := service.NewBackupService(repo, backups)

	fixedNow := func() time.Time { return time.Date(2026, 4, 10, 9, 30, 0, 0, time.Local) }
	projectionHandler := NewProjectionHandler(service.NewProjectionService(repo))
	projectionHandler.now = fixedNow
	summaryHandler := NewSummaryHandler(service.NewDashboardService(repo))
	summaryHandler.now = fixedNow

	e := echo.New()
	RegisterRoutes(e, Handlers{
		State:      NewStateHandler(stateService),
		Projection: projectionHandler,
		Summary:    summaryHandler,
		Backup:     NewBackupHandler(backupService),
		GAS:        NewGASHandler(stateService),
		WebSocket:  NewWebSocketHandler(hub, stateService, []string{"http://localhost:3000"}),
	})

	return &testServer{echo: e, repo: repo, backups: backups, publisher: publisher, hub: hub}
}

func (s *testServer) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	return rec
}
