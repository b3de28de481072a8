package app

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/shift-swap-service/internal/auth"
	"github.com/spec-kit/shift-swap-service/internal/config"
	"github.com/spec-kit/shift-swap-service/internal/domain"
	"github.com/spec-kit/shift-swap-service/internal/persistence"
)

const scheduleCSV = "employeeId,date,startTime,endTime,position\n" +
	"EMP001,2024-03-04,09:00,17:00,Cook\n" +
	"EMP002,2024-03-07,16:00,22:00,Driver\n"

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

func newTestApp(t *testing.T) (*App, *persistence.MemoryStorage) {
	t.Helper()
	cfg := &config.Config{
		App:     config.AppConfig{Name: "shift-swap-test", Version: "test"},
		Auth:    config.AuthConfig{JWTSecret: "test-secret", AccessTokenTTLMinutes: 60, BcryptCost: 4},
		Session: config.SessionConfig{Storage: config.StorageMemory, KeyPrefix: "dominos_user"},
		Import:  config.ImportConfig{MaxBytes: 1024},
	}
	storage := persistence.NewMemoryStorage()
	a, err := New(cfg, zap.NewNop(), storage)
	require.NoError(t, err)
	t.Cleanup(a.Close)
	return a, storage
}

func do(t *testing.T, a *App, req *http.Request, token string) (int, envelope) {
	t.Helper()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := a.HTTP.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var env envelope
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp.StatusCode, env
}

func doJSON(t *testing.T, a *App, method, path, token string, body any) (int, envelope) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return do(t, a, req, token)
}

func upload(t *testing.T, a *App, token, filename, content string) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/shifts/import", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return do(t, a, req, token)
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}

type sessionBody struct {
	User struct {
		ID         string `json:"id"`
		Role       string `json:"role"`
		EmployeeID string `json:"employeeId"`
	} `json:"user"`
	Auth struct {
		Token string `json:"token"`
	} `json:"auth"`
}

func login(t *testing.T, a *App, email string) string {
	t.Helper()
	status, env := doJSON(t, a, http.MethodPost, "/auth/login", "", map[string]string{"email": email, "password": "anything"})
	require.Equal(t, http.StatusOK, status)
	return decode[sessionBody](t, env).Auth.Token
}

func register(t *testing.T, a *App, name, email, employeeID string) sessionBody {
	t.Helper()
	status, env := doJSON(t, a, http.MethodPost, "/auth/register", "", map[string]string{
		"name": name, "email": email, "password": "secret", "employeeId": employeeID, "storeId": "store1",
	})
	require.Equal(t, http.StatusCreated, status)
	return decode[sessionBody](t, env)
}

func TestHealth(t *testing.T) {
	a, _ := newTestApp(t)

	status, _ := doJSON(t, a, http.MethodGet, "/health/live", "", nil)
	assert.Equal(t, http.StatusOK, status)

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	resp, err := a.HTTP.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	var body struct {
		Status       string            `json:"status"`
		Dependencies map[string]string `json:"dependencies"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ready", body.Status)
	assert.Equal(t, "ok", body.Dependencies["session_storage"])
}

func TestUnknownRoute(t *testing.T) {
	a, _ := newTestApp(t)

	status, env := doJSON(t, a, http.MethodGet, "/nowhere", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestLogin(t *testing.T) {
	a, storage := newTestApp(t)

	t.Run("unknown email", func(t *testing.T) {
		status, env := doJSON(t, a, http.MethodPost, "/auth/login", "", map[string]string{"email": "nobody@dominos.com", "password": "x"})
		assert.Equal(t, http.StatusUnauthorized, status)
		require.NotNil(t, env.Error)
		assert.Equal(t, "INVALID_CREDENTIALS", env.Error.Code)
		assert.Zero(t, storage.Len())
	})

	t.Run("missing password", func(t *testing.T) {
		status, env := doJSON(t, a, http.MethodPost, "/auth/login", "", map[string]string{"email": "employee@dominos.com"})
		assert.Equal(t, http.StatusBadRequest, status)
		require.NotNil(t, env.Error)
		assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
		assert.Equal(t, "required", env.Error.Details["password"])
	})

	t.Run("any password signs in", func(t *testing.T) {
		status, env := doJSON(t, a, http.MethodPost, "/auth/login", "", map[string]string{"email": "manager@dominos.com", "password": "whatever"})
		require.Equal(t, http.StatusOK, status)
		body := decode[sessionBody](t, env)
		assert.Equal(t, "2", body.User.ID)
		assert.Equal(t, "manager", body.User.Role)
		assert.NotEmpty(t, body.Auth.Token)
		assert.Equal(t, 1, storage.Len())
	})
}

func TestRegister(t *testing.T) {
	a, _ := newTestApp(t)

	body := register(t, a, "Jane Employee", "jane@dominos.com", "EMP002")
	assert.Equal(t, "employee", body.User.Role)
	assert.NotEmpty(t, body.User.ID)

	status, env := doJSON(t, a, http.MethodPost, "/auth/register", "", map[string]string{
		"name": "Jane Again", "email": "jane@dominos.com", "password": "secret", "employeeId": "EMP009", "storeId": "store1",
	})
	assert.Equal(t, http.StatusConflict, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "EMAIL_IN_USE", env.Error.Code)

	token := login(t, a, "jane@dominos.com")
	status, env = doJSON(t, a, http.MethodGet, "/auth/me", token, nil)
	require.Equal(t, http.StatusOK, status)
	me := decode[map[string]any](t, env)
	assert.Equal(t, body.User.ID, me["id"])
	assert.Equal(t, "EMP002", me["employeeId"])
	assert.NotContains(t, me, "passwordHash")
}

func TestLogoutInvalidatesToken(t *testing.T) {
	a, storage := newTestApp(t)
	token := login(t, a, "employee@dominos.com")

	status, _ := doJSON(t, a, http.MethodGet, "/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = doJSON(t, a, http.MethodGet, "/auth/me", token, nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = doJSON(t, a, http.MethodPost, "/auth/logout", token, nil)
	assert.Equal(t, http.StatusNoContent, status)
	assert.Zero(t, storage.Len())

	status, env := doJSON(t, a, http.MethodGet, "/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "session expired", env.Error.Message)
}

func TestShiftManagement_ManagerOnly(t *testing.T) {
	a, _ := newTestApp(t)
	employee := login(t, a, "employee@dominos.com")
	manager := login(t, a, "manager@dominos.com")

	shift := map[string]string{"employeeId": "EMP001", "date": "2024-03-04", "startTime": "09:00", "endTime": "17:00", "position": "Cook"}

	status, _ := doJSON(t, a, http.MethodPost, "/shifts", employee, shift)
	assert.Equal(t, http.StatusForbidden, status)

	status, env := doJSON(t, a, http.MethodPost, "/shifts", manager, shift)
	require.Equal(t, http.StatusCreated, status)
	created := decode[map[string]string](t, env)
	assert.Equal(t, "store1", created["storeId"])
	id := created["id"]

	status, env = doJSON(t, a, http.MethodPatch, "/shifts/"+id, manager, map[string]string{"endTime": "18:00"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "18:00", decode[map[string]string](t, env)["endTime"])
	assert.Equal(t, "09:00", decode[map[string]string](t, env)["startTime"])

	shift["position"] = "Driver"
	status, env = doJSON(t, a, http.MethodPut, "/shifts/"+id, manager, shift)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Driver", decode[map[string]string](t, env)["position"])

	status, env = doJSON(t, a, http.MethodGet, "/shifts/mine", employee, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]map[string]string](t, env), 1)

	status, _ = doJSON(t, a, http.MethodDelete, "/shifts/"+id, manager, nil)
	assert.Equal(t, http.StatusNoContent, status)
	status, _ = doJSON(t, a, http.MethodDelete, "/shifts/"+id, manager, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Empty(t, a.Schedule.Shifts())
}

func TestImport(t *testing.T) {
	a, _ := newTestApp(t)
	manager := login(t, a, "manager@dominos.com")
	employee := login(t, a, "employee@dominos.com")

	t.Run("employee forbidden", func(t *testing.T) {
		status, _ := upload(t, a, employee, "schedule.csv", scheduleCSV)
		assert.Equal(t, http.StatusForbidden, status)
	})

	t.Run("wrong type", func(t *testing.T) {
		status, env := upload(t, a, manager, "schedule.txt", scheduleCSV)
		assert.Equal(t, http.StatusBadRequest, status)
		require.NotNil(t, env.Error)
		assert.Equal(t, "Please upload a CSV file", env.Error.Message)
	})

	t.Run("too large", func(t *testing.T) {
		status, env := upload(t, a, manager, "schedule.csv", scheduleCSV+strings.Repeat("EMP003,2024-03-05,09:00,17:00,Cook\n", 40))
		assert.Equal(t, http.StatusRequestEntityTooLarge, status)
		require.NotNil(t, env.Error)
		assert.Equal(t, "PAYLOAD_TOO_LARGE", env.Error.Code)
		assert.Empty(t, a.Schedule.Shifts())
	})

	t.Run("malformed row imports nothing", func(t *testing.T) {
		status, env := upload(t, a, manager, "schedule.csv", scheduleCSV+"EMP003,2024-03-05\n")
		assert.Equal(t, http.StatusUnprocessableEntity, status)
		require.NotNil(t, env.Error)
		assert.Equal(t, "IMPORT_FAILED", env.Error.Code)
		assert.Empty(t, a.Schedule.Shifts())
	})

	t.Run("imports rows into the manager's store", func(t *testing.T) {
		status, env := upload(t, a, manager, "schedule.csv", scheduleCSV)
		require.Equal(t, http.StatusCreated, status)
		body := decode[struct {
			Imported int `json:"imported"`
		}](t, env)
		assert.Equal(t, 2, body.Imported)

		for _, s := range a.Schedule.Shifts() {
			assert.Equal(t, "store1", s.StoreID)
		}

		status, env = doJSON(t, a, http.MethodGet, "/shifts/mine", employee, nil)
		require.Equal(t, http.StatusOK, status)
		mine := decode[[]map[string]string](t, env)
		require.Len(t, mine, 1)
		assert.Equal(t, "EMP001", mine[0]["employeeId"])
	})
}

func TestSwapFlow(t *testing.T) {
	a, _ := newTestApp(t)
	manager := login(t, a, "manager@dominos.com")
	john := login(t, a, "employee@dominos.com")
	jane := register(t, a, "Jane Employee", "jane@dominos.com", "EMP002")

	status, _ := upload(t, a, manager, "schedule.csv", scheduleCSV)
	require.Equal(t, http.StatusCreated, status)
	shifts := a.Schedule.Shifts()
	require.Len(t, shifts, 2)
	johnShift, janeShift := shifts[0].ID, shifts[1].ID

	status, _ = doJSON(t, a, http.MethodPost, "/swaps", john, map[string]any{
		"requesterShiftId": janeShift, "requesteeId": jane.User.ID,
	})
	assert.Equal(t, http.StatusForbidden, status, "cannot offer someone else's shift")

	status, env := doJSON(t, a, http.MethodPost, "/swaps", john, map[string]any{
		"requesterShiftId": johnShift, "requesteeId": jane.User.ID, "requesteeShiftId": janeShift,
	})
	require.Equal(t, http.StatusCreated, status)
	swap := decode[map[string]any](t, env)
	assert.Equal(t, "pending", swap["status"])
	swapID := swap["id"].(string)

	status, env = doJSON(t, a, http.MethodGet, "/notifications", jane.Auth.Token, nil)
	require.Equal(t, http.StatusOK, status)
	inbox := decode[struct {
		Unread        int `json:"unread"`
		Notifications []struct {
			ID      string `json:"id"`
			Title   string `json:"title"`
			Message string `json:"message"`
		} `json:"notifications"`
	}](t, env)
	assert.Equal(t, 1, inbox.Unread)
	require.Len(t, inbox.Notifications, 1)
	assert.Equal(t, "New Shift Swap Request", inbox.Notifications[0].Title)
	assert.Equal(t, "You have a new shift swap request for March 4 in exchange for your shift on March 7.", inbox.Notifications[0].Message)

	status, _ = doJSON(t, a, http.MethodPost, "/notifications/"+inbox.Notifications[0].ID+"/read", john, nil)
	assert.Equal(t, http.StatusNotFound, status, "notification belongs to jane")
	status, _ = doJSON(t, a, http.MethodPost, "/notifications/"+inbox.Notifications[0].ID+"/read", jane.Auth.Token, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Zero(t, a.Schedule.UnreadCount(jane.User.ID))

	status, _ = doJSON(t, a, http.MethodGet, "/swaps/pending", john, nil)
	assert.Equal(t, http.StatusForbidden, status)
	status, env = doJSON(t, a, http.MethodGet, "/swaps/pending", manager, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]map[string]any](t, env), 1)

	status, _ = doJSON(t, a, http.MethodPost, "/swaps/"+swapID+"/approve", john, nil)
	assert.Equal(t, http.StatusForbidden, status)
	status, env = doJSON(t, a, http.MethodPost, "/swaps/"+swapID+"/approve", manager, nil)
	require.Equal(t, http.StatusOK, status)
	approved := decode[map[string]any](t, env)
	assert.Equal(t, "approved", approved["status"])
	assert.Equal(t, "Swap request approved by manager", approved["managerNote"])

	status, _ = doJSON(t, a, http.MethodPost, "/swaps/missing/reject", manager, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, env = doJSON(t, a, http.MethodGet, "/swaps/mine", jane.Auth.Token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]map[string]any](t, env), 1)

	assert.Equal(t, 1, a.Schedule.UnreadCount("1"))
	status, env = doJSON(t, a, http.MethodPost, "/notifications/read-all", john, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, decode[map[string]int](t, env)["marked"])
	assert.Zero(t, a.Schedule.UnreadCount("1"))
}

func TestWeekView(t *testing.T) {
	a, _ := newTestApp(t)
	manager := login(t, a, "manager@dominos.com")
	status, _ := upload(t, a, manager, "schedule.csv", scheduleCSV)
	require.Equal(t, http.StatusCreated, status)
	first := a.Schedule.Shifts()[0].ID

	status, env := doJSON(t, a, http.MethodGet, "/schedule/week?date=2024-03-06&density=compact&highlight="+first, manager, nil)
	require.Equal(t, http.StatusOK, status)
	week := decode[struct {
		Title string `json:"title"`
		Days  []struct {
			Date    string `json:"date"`
			Entries []struct {
				ShiftID     string `json:"shiftId"`
				EmployeeID  string `json:"employeeId"`
				Highlighted bool   `json:"highlighted"`
			} `json:"entries"`
		} `json:"days"`
	}](t, env)
	assert.Equal(t, "March 3 - March 9, 2024", week.Title)
	require.Len(t, week.Days, 7)
	require.Len(t, week.Days[1].Entries, 1)
	assert.True(t, week.Days[1].Entries[0].Highlighted)
	assert.Empty(t, week.Days[1].Entries[0].EmployeeID)
	require.Len(t, week.Days[4].Entries, 1)

	status, _ = doJSON(t, a, http.MethodGet, "/schedule/week?density=huge", manager, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestDashboard(t *testing.T) {
	a, _ := newTestApp(t)
	manager := login(t, a, "manager@dominos.com")
	employee := login(t, a, "employee@dominos.com")
	status, _ := upload(t, a, manager, "schedule.csv", scheduleCSV)
	require.Equal(t, http.StatusCreated, status)

	status, env := doJSON(t, a, http.MethodGet, "/dashboard", manager, nil)
	require.Equal(t, http.StatusOK, status)
	m := decode[struct {
		Role          string `json:"role"`
		ShiftCount    int    `json:"shiftCount"`
		EmployeeCount int    `json:"employeeCount"`
		Store         struct {
			Name string `json:"name"`
		} `json:"store"`
	}](t, env)
	assert.Equal(t, "manager", m.Role)
	assert.Equal(t, 2, m.ShiftCount)
	assert.Equal(t, 2, m.EmployeeCount)
	assert.Equal(t, "Downtown", m.Store.Name)

	status, env = doJSON(t, a, http.MethodGet, "/dashboard", employee, nil)
	require.Equal(t, http.StatusOK, status)
	e := decode[struct {
		Role           string           `json:"role"`
		UpcomingShifts []map[string]any `json:"upcomingShifts"`
	}](t, env)
	assert.Equal(t, "employee", e.Role)
	assert.Len(t, e.UpcomingShifts, 1)
}

func TestEmployeeDashboard_CountsOnlyPendingRequests(t *testing.T) {
	a, _ := newTestApp(t)
	manager := login(t, a, "manager@dominos.com")
	john := login(t, a, "employee@dominos.com")
	jane := register(t, a, "Jane Employee", "jane@dominos.com", "EMP002")

	status, _ := upload(t, a, manager, "schedule.csv", scheduleCSV)
	require.Equal(t, http.StatusCreated, status)
	shifts := a.Schedule.Shifts()
	johnShift, janeShift := shifts[0].ID, shifts[1].ID

	status, env := doJSON(t, a, http.MethodPost, "/swaps", john, map[string]any{
		"requesterShiftId": johnShift, "requesteeId": jane.User.ID, "requesteeShiftId": janeShift,
	})
	require.Equal(t, http.StatusCreated, status)
	withCounterShift := decode[map[string]any](t, env)["id"].(string)

	status, env = doJSON(t, a, http.MethodPost, "/swaps", john, map[string]any{
		"requesterShiftId": johnShift, "requesteeId": jane.User.ID,
	})
	require.Equal(t, http.StatusCreated, status)
	openRequest := decode[map[string]any](t, env)["id"].(string)

	status, _ = doJSON(t, a, http.MethodPost, "/swaps/"+openRequest+"/reject", manager, nil)
	require.Equal(t, http.StatusOK, status)

	status, env = doJSON(t, a, http.MethodGet, "/dashboard", john, nil)
	require.Equal(t, http.StatusOK, status)
	dash := decode[struct {
		PendingCount        int `json:"pendingCount"`
		PendingSwapRequests []struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"pendingSwapRequests"`
	}](t, env)

	assert.Equal(t, 1, dash.PendingCount)
	require.Len(t, dash.PendingSwapRequests, 1)
	assert.Equal(t, withCounterShift, dash.PendingSwapRequests[0].ID)
	assert.Equal(t, "pending", dash.PendingSwapRequests[0].Status)
}

func TestManagerRoutes_IgnoreRoleClaim(t *testing.T) {
	a, _ := newTestApp(t)
	john := login(t, a, "employee@dominos.com")

	tm := auth.NewTokenManager(a.cfg.Auth.JWTSecret, a.cfg.Auth.AccessTokenTTLMinutes)
	claims, err := tm.ParseToken(john)
	require.NoError(t, err)
	forged, _, err := tm.GenerateToken(claims.SessionID, domain.UserRoleManager)
	require.NoError(t, err)

	status, _ := doJSON(t, a, http.MethodGet, "/shifts", forged, nil)
	assert.Equal(t, http.StatusForbidden, status)
	status, _ = doJSON(t, a, http.MethodGet, "/shifts/mine", forged, nil)
	assert.Equal(t, http.StatusOK, status)
}
