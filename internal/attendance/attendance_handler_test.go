package attendance_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-tams/internal/attendance"
	attendanceerrors "go-tams/internal/attendance/errors"
	"go-tams/internal/shared/query"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiMeta struct {
	Page         int   `json:"page"`
	Limit        int   `json:"limit"`
	TotalPages   int   `json:"totalPages"`
	TotalResults int64 `json:"totalResults"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Meta  *apiMeta        `json:"meta"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakeAttendanceService struct {
	checkInFn                 func(ctx context.Context, employeeID string, req attendance.CheckInRequest) (attendance.AttendanceResponse, error)
	checkOutFn                func(ctx context.Context, employeeID string, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error)
	getTodayFn                func(ctx context.Context, employeeID string) (*attendance.AttendanceResponse, error)
	getForRangeFn             func(ctx context.Context, employeeID, startDate, endDate string) ([]attendance.AttendanceResponse, error)
	queryFn                   func(ctx context.Context, req attendance.QueryAttendanceRequest, p query.Params) (query.Page[attendance.AttendanceResponse], error)
	getDepartmentAttendanceFn func(ctx context.Context, req attendance.DepartmentAttendanceRequest, p query.Params) (query.Page[attendance.AttendanceResponse], error)
	updateFn                  func(ctx context.Context, id string, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error)
}

func (f *fakeAttendanceService) CheckIn(ctx context.Context, employeeID string, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	return f.checkInFn(ctx, employeeID, req)
}
func (f *fakeAttendanceService) CheckOut(ctx context.Context, employeeID string, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	return f.checkOutFn(ctx, employeeID, req)
}
func (f *fakeAttendanceService) GetToday(ctx context.Context, employeeID string) (*attendance.AttendanceResponse, error) {
	return f.getTodayFn(ctx, employeeID)
}
func (f *fakeAttendanceService) GetForRange(ctx context.Context, employeeID, startDate, endDate string) ([]attendance.AttendanceResponse, error) {
	return f.getForRangeFn(ctx, employeeID, startDate, endDate)
}
func (f *fakeAttendanceService) Query(ctx context.Context, req attendance.QueryAttendanceRequest, p query.Params) (query.Page[attendance.AttendanceResponse], error) {
	return f.queryFn(ctx, req, p)
}
func (f *fakeAttendanceService) GetDepartmentAttendance(ctx context.Context, req attendance.DepartmentAttendanceRequest, p query.Params) (query.Page[attendance.AttendanceResponse], error) {
	return f.getDepartmentAttendanceFn(ctx, req, p)
}
func (f *fakeAttendanceService) Update(ctx context.Context, id string, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	return f.updateFn(ctx, id, req)
}

func TestAttendanceHandler_CheckIn(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		employeeID := uuid.New().String()

		svc := &fakeAttendanceService{
			checkInFn: func(ctx context.Context, eid string, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
				assert.Equal(t, employeeID, eid)
				assert.Equal(t, -6.2, req.Location.Latitude)
				return attendance.AttendanceResponse{
					ID:         uuid.New().String(),
					EmployeeID: eid,
					Status:     attendance.StatusPresent,
				}, nil
			},
		}

		h := attendance.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"location":{"latitude":-6.2,"longitude":106.8}}`
		c.Request = httptest.NewRequest(http.MethodPost, "/attendances/check-in", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("employee_id", employeeID)

		h.CheckIn(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		var got attendance.AttendanceResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, employeeID, got.EmployeeID)
		assert.Equal(t, attendance.StatusPresent, got.Status)
	})

	t.Run("negative missing location", func(t *testing.T) {
		h := attendance.NewHandler(&fakeAttendanceService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/attendances/check-in", strings.NewReader(`{}`))
		c.Request.Header.Set("Content-Type", "application/json")

		h.CheckIn(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "INVALID_INPUT", env.Error.Code)
	})

	t.Run("negative duplicate maps to conflict", func(t *testing.T) {
		svc := &fakeAttendanceService{
			checkInFn: func(ctx context.Context, eid string, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
				return attendance.AttendanceResponse{}, attendanceerrors.ErrAlreadyCheckedIn
			},
		}

		h := attendance.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"location":{"latitude":-6.2,"longitude":106.8}}`
		c.Request = httptest.NewRequest(http.MethodPost, "/attendances/check-in", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("employee_id", uuid.New().String())

		h.CheckIn(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "CONFLICT", env.Error.Code)
	})
}

func TestAttendanceHandler_CheckOut(t *testing.T) {
	t.Run("negative no active check-in", func(t *testing.T) {
		svc := &fakeAttendanceService{
			checkOutFn: func(ctx context.Context, eid string, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
				return attendance.AttendanceResponse{}, attendanceerrors.ErrNoActiveCheckIn
			},
		}

		h := attendance.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"location":{"latitude":-6.2,"longitude":106.8}}`
		c.Request = httptest.NewRequest(http.MethodPost, "/attendances/check-out", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("employee_id", uuid.New().String())

		h.CheckOut(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "INVALID_STATE", env.Error.Code)
	})
}

func TestAttendanceHandler_GetToday(t *testing.T) {
	t.Run("null data when absent", func(t *testing.T) {
		svc := &fakeAttendanceService{
			getTodayFn: func(ctx context.Context, eid string) (*attendance.AttendanceResponse, error) {
				return nil, nil
			},
		}

		h := attendance.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/attendances/today", nil)
		c.Set("employee_id", uuid.New().String())

		h.GetToday(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		assert.Equal(t, "null", string(env.Data))
	})
}

func TestAttendanceHandler_Query(t *testing.T) {
	t.Run("passes filters and pagination", func(t *testing.T) {
		target := uuid.New().String()

		svc := &fakeAttendanceService{
			queryFn: func(ctx context.Context, req attendance.QueryAttendanceRequest, p query.Params) (query.Page[attendance.AttendanceResponse], error) {
				assert.Equal(t, "week", req.Period)
				assert.Equal(t, target, *req.EmployeeID)
				assert.Equal(t, "present", *req.Status)
				assert.Equal(t, 3, p.Page)
				assert.Equal(t, 20, p.Limit)
				return query.NewPage([]attendance.AttendanceResponse{}, 0, p), nil
			},
		}

		h := attendance.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/attendances?period=week&employee_id="+target+"&status=present&page=3&limit=20", nil)

		h.Query(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("negative invalid page params", func(t *testing.T) {
		svc := &fakeAttendanceService{
			queryFn: func(ctx context.Context, req attendance.QueryAttendanceRequest, p query.Params) (query.Page[attendance.AttendanceResponse], error) {
				return query.Page[attendance.AttendanceResponse]{}, query.ErrInvalidPageParams
			},
		}

		h := attendance.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/attendances?page=0", nil)

		h.Query(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAttendanceHandler_GetDepartmentAttendance(t *testing.T) {
	t.Run("negative missing department_id", func(t *testing.T) {
		h := attendance.NewHandler(&fakeAttendanceService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/attendances/department", nil)

		h.GetDepartmentAttendance(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("success", func(t *testing.T) {
		svc := &fakeAttendanceService{
			getDepartmentAttendanceFn: func(ctx context.Context, req attendance.DepartmentAttendanceRequest, p query.Params) (query.Page[attendance.AttendanceResponse], error) {
				assert.Equal(t, "dept-9", req.DepartmentID)
				assert.Equal(t, "2026-02-03", *req.Date)
				return query.NewPage([]attendance.AttendanceResponse{{ID: uuid.New().String()}}, 1, p), nil
			},
		}

		h := attendance.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/attendances/department?department_id=dept-9&date=2026-02-03", nil)

		h.GetDepartmentAttendance(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		assert.Equal(t, int64(1), env.Meta.TotalResults)
	})
}

func TestAttendanceHandler_Update(t *testing.T) {
	t.Run("negative invalid status rejected by binding", func(t *testing.T) {
		h := attendance.NewHandler(&fakeAttendanceService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPatch, "/attendances/x", strings.NewReader(`{"status":"vacation"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}

		h.Update(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()

		svc := &fakeAttendanceService{
			updateFn: func(ctx context.Context, target string, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
				assert.Equal(t, id, target)
				assert.Equal(t, attendance.StatusLeave, *req.Status)
				return attendance.AttendanceResponse{ID: target, Status: *req.Status}, nil
			},
		}

		h := attendance.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPatch, "/attendances/"+id, strings.NewReader(`{"status":"leave"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: id}}

		h.Update(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
	})
}
