package health

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/xyz-asif/kubertodo/internal/database"
)

func serveHealth(p Pinger) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, p)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, Path, nil))
	return w
}

func TestCheck_Healthy(t *testing.T) {
	w := serveHealth(PingerFunc(func(context.Context) error { return nil }))

	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"status":"OK"}`, w.Body.String())
}

func TestCheck_Unhealthy(t *testing.T) {
	w := serveHealth(PingerFunc(func(context.Context) error { return errors.New("no reachable servers") }))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.JSONEq(t, `{"status":"Unhealthy"}`, w.Body.String())
}

func TestCheck_AgainstMongo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("ok reply", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		w := serveHealth(PingerFunc(func(ctx context.Context) error { return database.Ping(ctx, mt.DB) }))

		require.Equal(mt, http.StatusOK, w.Code)
		require.Equal(mt, "ping", mt.GetStartedEvent().CommandName)
	})

	mt.Run("failing reply", func(mt *mtest.T) {
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 0}, {Key: "errmsg", Value: "ping failed"}})
		w := serveHealth(PingerFunc(func(ctx context.Context) error { return database.Ping(ctx, mt.DB) }))

		require.Equal(mt, http.StatusInternalServerError, w.Code)
	})
}

func TestCheck_UnreachableStore(t *testing.T) {
	db, err := database.Connect(context.Background(), database.Config{
		URI:     "mongodb://127.0.0.1:1/?directConnection=true",
		DBName:  "kuber_todo_db",
		Timeout: 300 * time.Millisecond,
	})
	require.NoError(t, err)
	defer db.Disconnect(context.Background())

	w := serveHealth(db)
	require.Equal(t, http.StatusInternalServerError, w.Code)
}
