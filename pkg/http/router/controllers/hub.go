package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
	"go.uber.org/zap"
)

var errFrameTooLarge = errors.New("websocket frame too large")

// User. one websocket connection. every text frame is a planRequest answered by one text frame.
type User struct {
	io   sync.Mutex
	conn io.ReadWriteCloser

	id  uint
	hub *Hub
}

func (u *User) readRequest() (*planRequest, error) {
	h, r, err := wsutil.NextReader(u.conn, ws.StateServerSide)
	if err != nil {
		return nil, err
	}
	if h.OpCode.IsControl() {
		return nil, wsutil.ControlFrameHandler(u.conn, ws.StateServerSide)(h, r)
	}

	data, err := io.ReadAll(io.LimitReader(r, u.hub.maxFrameBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > u.hub.maxFrameBytes {
		// skip the rest of the frame so the next read starts on a frame header
		if _, err := io.Copy(io.Discard, r); err != nil {
			return nil, err
		}
		return nil, errFrameTooLarge
	}
	req := &planRequest{}
	if err := json.Unmarshal(data, req); err != nil {
		return nil, err
	}
	return req, nil
}

// Plan reads one request and writes its answer. a malformed or invalid request is answered with an error
// frame, only connection errors are returned.
func (u *User) Plan(ctx context.Context) error {
	req, err := u.readRequest()
	if err != nil {
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
			return u.writeError(http.StatusBadRequest, err.Error())
		}
		if errors.Is(err, errFrameTooLarge) {
			return u.writeError(http.StatusRequestEntityTooLarge, err.Error())
		}
		return err
	}
	if req == nil {
		// control frame
		return nil
	}

	if err := u.hub.validate.Struct(req); err != nil {
		return u.writeError(http.StatusBadRequest, err.Error())
	}
	planReq, err := req.toPlanRequest()
	if err != nil {
		return u.writeError(http.StatusBadRequest, err.Error())
	}

	if u.hub.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, u.hub.timeout)
		defer cancel()
	}
	resp, err := u.hub.planningService.Plan(ctx, planReq)
	if err != nil {
		return u.write(envelope{"error": errorBodyOf(err)})
	}
	return u.write(envelope{"data": resp})
}

func (u *User) writeError(status int, message string) error {
	return u.write(envelope{"error": errorBody{Code: http.StatusText(status), Message: message}})
}

func (u *User) write(x interface{}) error {
	w := wsutil.NewWriter(u.conn, ws.StateServerSide, ws.OpText)
	encoder := json.NewEncoder(w)

	u.io.Lock()
	defer u.io.Unlock()

	if err := encoder.Encode(x); err != nil {
		return err
	}

	return w.Flush()
}

func (u *User) Close() error {
	return u.conn.Close()
}

// Hub tracks open websocket connections so they can be closed on shutdown.
type Hub struct {
	mu              sync.RWMutex
	seq             uint
	users           map[uint]*User
	planningService PlanningService
	validate        *requestValidator
	log             *zap.Logger

	// per request planning deadline, 0 disables it
	timeout       time.Duration
	maxFrameBytes int64
}

func NewHub(planningService PlanningService, log *zap.Logger, timeout time.Duration) *Hub {
	return &Hub{
		users:           make(map[uint]*User),
		planningService: planningService,
		validate:        newRequestValidator(),
		log:             log,
		timeout:         timeout,
		maxFrameBytes:   maxBodyBytes,
	}
}

func (h *Hub) Register(conn net.Conn) *User {
	user := &User{
		hub:  h,
		conn: conn,
	}

	h.mu.Lock()
	user.id = h.seq
	h.users[user.id] = user
	h.seq++
	h.mu.Unlock()

	return user
}

func (h *Hub) Remove(user *User) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.users[user.id]; !ok {
		return
	}
	delete(h.users, user.id)
	user.Close()
}

func (h *Hub) NumUsers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.users)
}

func (h *Hub) RemoveAllUser() {
	h.mu.Lock()
	users := h.users
	h.users = make(map[uint]*User)
	h.mu.Unlock()

	for _, user := range users {
		user.Close()
	}
}

// Serve upgrades the request to a websocket and answers plan requests until the peer disconnects or ctx is done.
func (h *Hub) Serve(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	conn, _, hs, err := ws.UpgradeHTTP(r, w)
	if err != nil {
		h.log.Info("upgrade error", zap.Error(err))
		return
	}
	// the server's read/write deadlines stay on a hijacked conn
	_ = conn.SetDeadline(time.Time{})
	h.log.Info("established websocket connection", zap.String("remote", conn.RemoteAddr().String()),
		zap.String("protocol", hs.Protocol))

	user := h.Register(conn)
	defer h.Remove(user)

	stop := context.AfterFunc(ctx, func() {
		h.Remove(user)
	})
	defer stop()

	for {
		if err := user.Plan(ctx); err != nil {
			h.log.Info("user disconnected from websocket server", zap.Error(err))
			return
		}
	}
}
