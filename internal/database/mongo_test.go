package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestPing(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("acknowledged", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		require.NoError(mt, Ping(context.Background(), mt.DB))
	})

	mt.Run("command error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    13,
			Name:    "Unauthorized",
			Message: "command ping requires authentication",
		}))
		require.Error(mt, Ping(context.Background(), mt.DB))
	})

	mt.Run("not ok", func(mt *mtest.T) {
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 0}, {Key: "errmsg", Value: "ping failed"}})
		require.Error(mt, Ping(context.Background(), mt.DB))
	})
}

func TestConnectIsLazyAndPingFailsWhenUnreachable(t *testing.T) {
	db, err := Connect(context.Background(), Config{
		URI:     "mongodb://127.0.0.1:1/?directConnection=true",
		DBName:  "kuber_todo_db",
		Timeout: 300 * time.Millisecond,
	})
	require.NoError(t, err)
	defer db.Disconnect(context.Background())

	require.Equal(t, "kuber_todo_db", db.Database.Name())
	require.Error(t, db.Ping(context.Background()))
}
