package handler

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/hyeonKii/SocialService/internal/service"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// The socket outlives the gin handler; the stream context must too, or
// every recompute after the initial snapshot dies with context.Canceled.
func TestFollowersSocketStaysLiveAfterHandlerReturns(t *testing.T) {
	gin.SetMode(gin.TestMode)
	viper.Set("client.origin", "http://localhost:3000")

	relationships := new(mockRelationship)
	h := New(&service.Service{Relationship: relationships})
	srv := httptest.NewServer(h.InitRoutes())
	defer srv.Close()

	snapshots := make(chan []string, 1)
	defer close(snapshots)
	snapshots <- []string{"u1"}

	streamCtx := make(chan context.Context, 1)
	relationships.On("WatchFollowers", mock.Anything, "u2").
		Run(func(args mock.Arguments) {
			streamCtx <- args.Get(0).(context.Context)
		}).
		Return(&service.FollowerStream{C: snapshots}, nil)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/followers/u2"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	var first []string
	require.NoError(t, conn.ReadJSON(&first))
	assert.Equal(t, []string{"u1"}, first)

	ctx := <-streamCtx
	time.Sleep(200 * time.Millisecond)
	require.NoError(t, ctx.Err())

	snapshots <- []string{"u1", "u3"}
	var second []string
	require.NoError(t, conn.ReadJSON(&second))
	assert.Equal(t, []string{"u1", "u3"}, second)
}

func TestFollowersSocketCancelsStreamOnDisconnect(t *testing.T) {
	gin.SetMode(gin.TestMode)
	viper.Set("client.origin", "http://localhost:3000")

	relationships := new(mockRelationship)
	h := New(&service.Service{Relationship: relationships})
	srv := httptest.NewServer(h.InitRoutes())
	defer srv.Close()

	snapshots := make(chan []string, 1)
	defer close(snapshots)
	snapshots <- []string{}

	streamCtx := make(chan context.Context, 1)
	relationships.On("WatchFollowers", mock.Anything, "u2").
		Run(func(args mock.Arguments) {
			streamCtx <- args.Get(0).(context.Context)
		}).
		Return(&service.FollowerStream{C: snapshots}, nil)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/followers/u2"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)

	var first []string
	require.NoError(t, conn.ReadJSON(&first))

	ctx := <-streamCtx
	conn.Close()

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("stream context not canceled after disconnect")
	}
}
