package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/sprite-ai/rebuttal/internal/model"
	"github.com/sprite-ai/rebuttal/internal/session"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024 * 64,
	WriteBufferSize: 1024 * 64,
	CheckOrigin:     sameOrigin,
}

// sameOrigin accepts clients without an Origin header (CLIs, scripts) and
// browsers only when the page was served from this host.
func sameOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, r.Host)
}

// WebSocket message types from client.
const (
	wsMsgLoadCase           = "load_case"
	wsMsgSetProductType     = "set_product_type"
	wsMsgSetRefundStatus    = "set_refund_status"
	wsMsgSetDuplicateStatus = "set_duplicate_status"
	wsMsgSetBankName        = "set_bank_name"
	wsMsgSetEvidence        = "set_evidence"
	wsMsgEditLetter         = "edit_letter"
	wsMsgSave               = "save"
)

// WebSocket message types to client.
const (
	wsMsgState = "state"
	wsMsgSaved = "saved"
	wsMsgError = "error"
)

// wsMessage is the envelope for WebSocket messages in both directions.
type wsMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// wsLoadCase is the payload for "load_case". Exactly one of Case or Path is used;
// Path requires the server to have a store.
type wsLoadCase struct {
	Case          *model.DisputeCase `json:"case,omitempty"`
	Path          string             `json:"path,omitempty"`
	Account       *model.AccountInfo `json:"account,omitempty"`
	MatrixEnabled *bool              `json:"matrix_enabled,omitempty"`
}

type wsValue struct {
	Value string `json:"value"`
}

type wsEvidence struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

type wsText struct {
	Text string `json:"text"`
}

type wsStateResponse struct {
	SessionID string `json:"session_id"`
	session.Snapshot
}

type wsSavedResponse struct {
	SessionID string            `json:"session_id"`
	Path      string            `json:"path,omitempty"`
	Case      model.DisputeCase `json:"case"`
}

// wsSession holds the state for one websocket connection.
type wsSession struct {
	id   string
	path string
	sess *session.Session
	log  *slog.Logger
}

var errNoCase = errors.New("no case loaded")

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade", "error", err)
		return
	}
	defer conn.Close()

	ws := &wsSession{id: uuid.NewString()}
	ws.log = s.log.With("session_id", ws.id)
	ws.log.Info("session opened")
	defer ws.log.Info("session closed")

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				ws.log.Warn("websocket read", "error", err)
			}
			return
		}

		var msg wsMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			sendWSError(conn, "invalid message format")
			continue
		}

		if err := s.dispatch(conn, ws, msg); err != nil {
			sendWSError(conn, err.Error())
		}
	}
}

func (s *Server) dispatch(conn *websocket.Conn, ws *wsSession, msg wsMessage) error {
	if msg.Type == wsMsgLoadCase {
		if err := s.loadCase(ws, msg.Data); err != nil {
			return err
		}
		sendState(conn, ws)
		return nil
	}
	if ws.sess == nil {
		switch msg.Type {
		case wsMsgSetProductType, wsMsgSetRefundStatus, wsMsgSetDuplicateStatus,
			wsMsgSetBankName, wsMsgSetEvidence, wsMsgEditLetter, wsMsgSave:
			return errNoCase
		}
	}

	switch msg.Type {
	case wsMsgSetProductType:
		var v wsValue
		if err := json.Unmarshal(msg.Data, &v); err != nil {
			return errors.New("invalid set_product_type data")
		}
		p, err := model.ParseProductType(v.Value)
		if err != nil {
			return err
		}
		ws.sess.SetProductType(p)
	case wsMsgSetRefundStatus:
		var v wsValue
		if err := json.Unmarshal(msg.Data, &v); err != nil {
			return errors.New("invalid set_refund_status data")
		}
		st, err := model.ParseRefundStatus(v.Value)
		if err != nil {
			return err
		}
		ws.sess.SetRefundStatus(st)
	case wsMsgSetDuplicateStatus:
		var v wsValue
		if err := json.Unmarshal(msg.Data, &v); err != nil {
			return errors.New("invalid set_duplicate_status data")
		}
		st, err := model.ParseDuplicateStatus(v.Value)
		if err != nil {
			return err
		}
		ws.sess.SetDuplicateStatus(st)
	case wsMsgSetBankName:
		var v wsValue
		if err := json.Unmarshal(msg.Data, &v); err != nil {
			return errors.New("invalid set_bank_name data")
		}
		ws.sess.SetBankName(v.Value)
	case wsMsgSetEvidence:
		var v wsEvidence
		if err := json.Unmarshal(msg.Data, &v); err != nil {
			return errors.New("invalid set_evidence data")
		}
		if err := ws.sess.SetEvidence(v.Key, v.Value); err != nil {
			return err
		}
	case wsMsgEditLetter:
		var v wsText
		if err := json.Unmarshal(msg.Data, &v); err != nil {
			return errors.New("invalid edit_letter data")
		}
		ws.sess.EditLetter(v.Text)
	case wsMsgSave:
		return s.save(conn, ws)
	default:
		return errors.New("unknown message type: " + msg.Type)
	}

	sendState(conn, ws)
	return nil
}

func (s *Server) loadCase(ws *wsSession, data json.RawMessage) error {
	var req wsLoadCase
	if err := json.Unmarshal(data, &req); err != nil {
		return errors.New("invalid load_case data")
	}

	var c model.DisputeCase
	switch {
	case req.Case != nil:
		c = *req.Case
		ws.path = ""
	case req.Path != "":
		if s.opts.Store == nil {
			return errors.New("server has no case store")
		}
		loaded, err := s.opts.Store.Load(req.Path)
		if err != nil {
			return err
		}
		c = loaded
		ws.path = req.Path
	default:
		return errors.New("load_case needs case or path")
	}

	opts := session.Options{
		Case:          c,
		Account:       s.opts.Account,
		MatrixEnabled: s.opts.MatrixEnabled,
		Today:         s.opts.Now(),
	}
	if req.Account != nil {
		opts.Account = *req.Account
	}
	if req.MatrixEnabled != nil {
		opts.MatrixEnabled = *req.MatrixEnabled
	}
	ws.sess = session.New(opts)
	ws.log.Info("case loaded", "case_id", c.ID, "reason", c.Reason.Normalize())
	return nil
}

func (s *Server) save(conn *websocket.Conn, ws *wsSession) error {
	c := ws.sess.Save()
	if ws.path != "" {
		if err := s.opts.Store.Save(ws.path, c); err != nil {
			ws.log.Error("saving case", "path", ws.path, "error", err)
			return err
		}
	}
	ws.log.Info("case saved", "case_id", c.ID, "manually_edited", ws.sess.Letter().ManuallyEdited)
	sendWSMessage(conn, wsMsgSaved, wsSavedResponse{SessionID: ws.id, Path: ws.path, Case: c})
	return nil
}

func sendState(conn *websocket.Conn, ws *wsSession) {
	sendWSMessage(conn, wsMsgState, wsStateResponse{SessionID: ws.id, Snapshot: ws.sess.Snapshot()})
}

func sendWSMessage(conn *websocket.Conn, msgType string, data any) {
	raw, err := json.Marshal(data)
	if err != nil {
		slog.Default().Error("ws marshal", "error", err)
		return
	}
	msg := wsMessage{Type: msgType, Data: raw}
	if err := conn.WriteJSON(msg); err != nil {
		slog.Default().Error("ws write", "error", err)
	}
}

func sendWSError(conn *websocket.Conn, errMsg string) {
	sendWSMessage(conn, wsMsgError, map[string]string{"message": errMsg})
}
