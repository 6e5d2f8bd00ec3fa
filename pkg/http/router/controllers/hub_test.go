package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/gobwas/ws/wsutil"
	"github.com/lintang-b-s/roadfinder/pkg/http/usecases"
	"github.com/lintang-b-s/roadfinder/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// blockingService plans until ctx is done and reports whether ctx carried a deadline.
type blockingService struct {
	hasDeadline chan bool
}

func (s *blockingService) Plan(ctx context.Context, req usecases.PlanRequest) (usecases.PlanResponse, error) {
	_, ok := ctx.Deadline()
	s.hasDeadline <- ok
	<-ctx.Done()
	return usecases.PlanResponse{}, util.WrapErrorf(ctx.Err(), util.ErrInternalServerError, "plan")
}

func (s *blockingService) PlanBatch(ctx context.Context, reqs []usecases.PlanRequest) []usecases.BatchResult {
	return nil
}

func (s *blockingService) Maps() []usecases.MapInfo {
	return nil
}

func newPipeUser(t *testing.T, hub *Hub) (*User, net.Conn) {
	t.Helper()
	server, client := net.Pipe()
	t.Cleanup(func() {
		client.Close()
		server.Close()
	})
	return hub.Register(server), client
}

func readError(t *testing.T, client net.Conn) errorBody {
	t.Helper()
	msg, err := wsutil.ReadServerText(client)
	require.NoError(t, err)
	var env struct {
		Error errorBody `json:"error"`
	}
	require.NoError(t, json.Unmarshal(msg, &env), string(msg))
	return env.Error
}

func TestUserPlanAppliesRequestTimeout(t *testing.T) {
	svc := &blockingService{hasDeadline: make(chan bool, 1)}
	hub := NewHub(svc, zap.NewNop(), 50*time.Millisecond)
	user, client := newPipeUser(t, hub)

	errCh := make(chan error, 1)
	go func() {
		errCh <- user.Plan(context.Background())
	}()

	req := `{"map_name":"yard","start":{"row":0,"col":0},"end":{"row":1,"col":1}}`
	require.NoError(t, wsutil.WriteClientText(client, []byte(req)))

	body := readError(t, client)
	assert.Equal(t, "Gateway Timeout", body.Code)
	assert.True(t, <-svc.hasDeadline)
	require.NoError(t, <-errCh)
}

func TestUserPlanRejectsLargeFrame(t *testing.T) {
	svc := &blockingService{hasDeadline: make(chan bool, 1)}
	hub := NewHub(svc, zap.NewNop(), time.Second)
	hub.maxFrameBytes = 16
	user, client := newPipeUser(t, hub)

	for _, frame := range [][]byte{bytes.Repeat([]byte(" "), 64), []byte("not json")} {
		errCh := make(chan error, 1)
		go func() {
			errCh <- user.Plan(context.Background())
		}()
		require.NoError(t, wsutil.WriteClientText(client, frame))

		body := readError(t, client)
		require.NoError(t, <-errCh)
		if len(frame) > 16 {
			assert.Equal(t, "Request Entity Too Large", body.Code)
		} else {
			// the oversized frame was skipped entirely, the next frame parses on its own
			assert.Equal(t, "Bad Request", body.Code)
		}
	}
	assert.Empty(t, svc.hasDeadline)
}
