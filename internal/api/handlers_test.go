package api_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/limbo/streak/internal/api"
	errorvalues "github.com/limbo/streak/internal/error_values"
	"github.com/limbo/streak/internal/remote"
	"github.com/limbo/streak/internal/repository"
	"github.com/limbo/streak/internal/service"
	"github.com/limbo/streak/internal/service/mocks"
	"github.com/limbo/streak/internal/store"
	"github.com/limbo/streak/pkg/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	readDraft = entity.HabitDraft{
		Icon:        "book",
		Name:        "Read",
		Description: "Daily reading",
		Date:        "2024-01-01",
	}
	readHabit = readDraft.ToHabit(1)
)

func newMockedServer(t *testing.T) (*api.Server, *mocks.MockHabitsServiceI) {
	ctrl := gomock.NewController(t)
	hService := mocks.NewMockHabitsServiceI(ctrl)
	serv := api.New(&api.ServicesList{
		HabitsService: hService,
	})
	return serv, hService
}

func TestListHabits(t *testing.T) {
	serv, hService := newMockedServer(t)
	t.Run("success", func(t *testing.T) {
		hService.EXPECT().ListHabits(gomock.Any()).Return([]entity.Habit{readHabit}, nil)
		rr := httptest.NewRecorder()
		serv.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/habits", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
		var got []entity.Habit
		require.NoError(t, sonic.ConfigDefault.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, []entity.Habit{readHabit}, got)
	})
	t.Run("empty collection is a list", func(t *testing.T) {
		hService.EXPECT().ListHabits(gomock.Any()).Return(nil, nil)
		rr := httptest.NewRecorder()
		serv.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/habits", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `[]`, rr.Body.String())
	})
	t.Run("service error", func(t *testing.T) {
		hService.EXPECT().ListHabits(gomock.Any()).Return(nil, errors.New("service error"))
		rr := httptest.NewRecorder()
		serv.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/habits", nil))
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestCreateHabit(t *testing.T) {
	serv, hService := newMockedServer(t)
	body, err := sonic.ConfigDefault.Marshal(readDraft)
	require.NoError(t, err)

	testCases := []struct {
		Name         string
		ExpectedCode int
		MockPrepFunc func()
		Body         io.Reader
	}{
		{
			Name:         "created",
			ExpectedCode: http.StatusCreated,
			MockPrepFunc: func() {
				draft := readDraft
				hService.EXPECT().CreateHabit(gomock.Any(), &draft).Return(&readHabit, nil)
			},
			Body: bytes.NewReader(body),
		},
		{
			Name:         "invalid habit",
			ExpectedCode: http.StatusBadRequest,
			MockPrepFunc: func() {
				hService.EXPECT().CreateHabit(gomock.Any(), gomock.Any()).
					Return(nil, errors.Join(errorvalues.ErrInvalidHabit, errorvalues.ErrInvalidDate))
			},
			Body: bytes.NewReader(body),
		},
		{
			Name:         "service error",
			ExpectedCode: http.StatusInternalServerError,
			MockPrepFunc: func() {
				hService.EXPECT().CreateHabit(gomock.Any(), gomock.Any()).Return(nil, errors.New("service error"))
			},
			Body: bytes.NewReader(body),
		},
		{
			Name:         "corrupted body",
			ExpectedCode: http.StatusBadRequest,
			MockPrepFunc: func() {},
			Body:         bytes.NewReader([]byte("corrupted")),
		},
	}
	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			tc.MockPrepFunc()
			rr := httptest.NewRecorder()
			serv.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/habits", tc.Body))
			assert.Equal(t, tc.ExpectedCode, rr.Code)
			if tc.ExpectedCode == http.StatusCreated {
				var got entity.Habit
				require.NoError(t, sonic.ConfigDefault.Unmarshal(rr.Body.Bytes(), &got))
				assert.Equal(t, readHabit, got)
			}
		})
	}
}

func TestGetHabit(t *testing.T) {
	serv, hService := newMockedServer(t)
	t.Run("success", func(t *testing.T) {
		hService.EXPECT().GetHabit(gomock.Any(), 1).Return(&readHabit, nil)
		rr := httptest.NewRecorder()
		serv.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/habits/1", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
	})
	t.Run("not found", func(t *testing.T) {
		hService.EXPECT().GetHabit(gomock.Any(), 2).Return(nil, errorvalues.ErrHabitNotFound)
		rr := httptest.NewRecorder()
		serv.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/habits/2", nil))
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
	t.Run("invalid id", func(t *testing.T) {
		rr := httptest.NewRecorder()
		serv.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/habits/abc", nil))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestDeleteHabit(t *testing.T) {
	serv, hService := newMockedServer(t)
	testCases := []struct {
		Name         string
		Path         string
		ExpectedCode int
		MockPrepFunc func()
	}{
		{
			Name:         "deleted",
			Path:         "/habits/7",
			ExpectedCode: http.StatusNoContent,
			MockPrepFunc: func() {
				hService.EXPECT().DeleteHabit(gomock.Any(), 7).Return(nil)
			},
		},
		{
			Name:         "not found",
			Path:         "/habits/7",
			ExpectedCode: http.StatusNotFound,
			MockPrepFunc: func() {
				hService.EXPECT().DeleteHabit(gomock.Any(), 7).Return(errorvalues.ErrHabitNotFound)
			},
		},
		{
			Name:         "service error",
			Path:         "/habits/7",
			ExpectedCode: http.StatusInternalServerError,
			MockPrepFunc: func() {
				hService.EXPECT().DeleteHabit(gomock.Any(), 7).Return(errors.New("service error"))
			},
		},
		{
			Name:         "non integer id",
			Path:         "/habits/seven",
			ExpectedCode: http.StatusBadRequest,
			MockPrepFunc: func() {},
		},
		{
			Name:         "zero id",
			Path:         "/habits/0",
			ExpectedCode: http.StatusBadRequest,
			MockPrepFunc: func() {},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			tc.MockPrepFunc()
			rr := httptest.NewRecorder()
			serv.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, tc.Path, nil))
			assert.Equal(t, tc.ExpectedCode, rr.Code)
		})
	}
}

func TestMiddlewares(t *testing.T) {
	serv, _ := newMockedServer(t)
	t.Run("request id and health", func(t *testing.T) {
		rr := httptest.NewRecorder()
		serv.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
		_, err := uuid.Parse(rr.Header().Get(api.RequestIDHeader))
		assert.NoError(t, err)
		assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
	})
	t.Run("preflight", func(t *testing.T) {
		rr := httptest.NewRecorder()
		serv.ServeHTTP(rr, httptest.NewRequest(http.MethodOptions, "/habits", nil))
		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Contains(t, rr.Header().Get("Access-Control-Allow-Methods"), http.MethodDelete)
	})
	t.Run("swagger doc", func(t *testing.T) {
		rr := httptest.NewRecorder()
		serv.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "/habits/{id}")
	})
	t.Run("logger falls back to default", func(t *testing.T) {
		assert.Equal(t, slog.Default(), api.GetLoggerFromCtx(context.Background()))
	})
}

// The whole chain: store -> remote client -> api -> service -> sqlite.
func TestCollectionEndToEnd(t *testing.T) {
	ctx := context.Background()
	repo, err := repository.NewSQLiteHabitsRepo(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	serv := api.New(&api.ServicesList{
		HabitsService: service.NewHabitsService(repo),
	})
	ts := httptest.NewServer(serv)
	t.Cleanup(ts.Close)

	now := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
	st := store.New(remote.New(ts.URL), store.WithClock(func() time.Time { return now }))

	habits, err := st.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, habits)

	habits, err = st.Add(ctx, readDraft)
	require.NoError(t, err)
	require.Len(t, habits, 1)
	read := habits[0]
	assert.NotZero(t, read.ID)
	days, err := st.StreakDays(read)
	require.NoError(t, err)
	assert.Equal(t, 182, days)

	_, err = st.Add(ctx, entity.HabitDraft{Name: "Run", Date: "not a date"})
	assert.ErrorIs(t, err, errorvalues.ErrInvalidHabit)
	assert.Len(t, st.Snapshot(), 1)

	habits, err = st.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []entity.Habit{read}, habits)

	habits, err = st.Remove(ctx, read.ID)
	require.NoError(t, err)
	assert.Empty(t, habits)

	// already gone on the server counts as removed
	_, err = st.Remove(ctx, read.ID)
	assert.NoError(t, err)
}

func TestRunStopsOnCancel(t *testing.T) {
	serv, _ := newMockedServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serv.Run(ctx, "127.0.0.1:0") }()
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not stop")
	}
}
