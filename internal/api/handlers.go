package api

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mee-pdn/go-mee/internal/protocol/connections"
	"github.com/mee-pdn/go-mee/internal/protocol/inbox"
	"github.com/mee-pdn/go-mee/pkg/types"
)

// maxBodySize 请求体上限
const maxBodySize = 1 << 20

// ============================================================================
//                              请求与响应
// ============================================================================

// TicketResponse GET /demo/ticket 响应
type TicketResponse struct {
	Ticket string `json:"ticket"`
}

// IdentityResponse GET /demo/identity 响应
type IdentityResponse struct {
	DID                 string   `json:"did"`
	NodeID              string   `json:"node_id"`
	Method              string   `json:"method"`
	VerificationMethods []string `json:"verification_methods"`
	ResolveError        string   `json:"resolve_error,omitempty"`
}

// SendPingRequest POST /demo/send/ping 请求
type SendPingRequest struct {
	ToTicket string  `json:"to_ticket"`
	BodyB64  *string `json:"body_b64,omitempty"`
}

// OpenConnectionRequest POST /demo/connections 请求
type OpenConnectionRequest struct {
	ToTicket string `json:"to_ticket"`
}

// OpenConnectionResponse POST /demo/connections 响应
type OpenConnectionResponse struct {
	ConnectionID string `json:"connection_id"`
}

// ConnectionSendRequest POST /demo/connections/{id}/send 请求
type ConnectionSendRequest struct {
	Kind    string  `json:"kind"`
	BodyB64 *string `json:"body_b64,omitempty"`
}

// DeliverRequest POST /profiles/{name}/inbox 请求
//
// 三个字段都必须出现；from 与 kind 不能为空，body_b64 可以为空串。
type DeliverRequest struct {
	From    string  `json:"from"`
	Kind    string  `json:"kind"`
	BodyB64 *string `json:"body_b64"`
}

// item 校验必填字段并转换为收件箱条目
func (req DeliverRequest) item() (types.InboxItem, error) {
	switch {
	case req.From == "":
		return types.InboxItem{}, fmt.Errorf("%w: from", ErrMissingField)
	case req.Kind == "":
		return types.InboxItem{}, fmt.Errorf("%w: kind", ErrMissingField)
	case req.BodyB64 == nil:
		return types.InboxItem{}, fmt.Errorf("%w: body_b64", ErrMissingField)
	}
	return types.InboxItem{From: req.From, Kind: req.Kind, BodyB64: *req.BodyB64}, nil
}

// errorResponse 错误响应
type errorResponse struct {
	Error string `json:"error"`
}

// ============================================================================
//                              HTTP 处理器
// ============================================================================

func (s *Server) handleLive(w http.ResponseWriter, _ *http.Request) {
	writeText(w, http.StatusOK, "ok")
}

// handleTicket 返回本节点票据
func (s *Server) handleTicket(w http.ResponseWriter, r *http.Request) {
	ticket, err := s.node.Transport().Ticket(r.Context(), s.node.Profile())
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, TicketResponse{Ticket: ticket.String()})
}

// handleIdentity 返回本地 DID 及其解析结果
func (s *Server) handleIdentity(w http.ResponseWriter, r *http.Request) {
	resp := IdentityResponse{
		DID:                 s.identity.DID.String(),
		NodeID:              s.node.NodeID().String(),
		Method:              s.identity.DID.Method().String(),
		VerificationMethods: []string{},
	}

	if s.identity.DID != "" {
		doc, err := s.node.DIDManager().Resolve(r.Context(), s.identity.DID)
		if err != nil {
			resp.ResolveError = err.Error()
		} else {
			for _, vm := range doc.VerificationMethodIDs {
				resp.VerificationMethods = append(resp.VerificationMethods, vm.String())
			}
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleInbox 列出收件箱
func (s *Server) handleInbox(w http.ResponseWriter, r *http.Request) {
	items, err := s.inbox.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// handleSendPing 对票据打开会话并发送一次 ping
func (s *Server) handleSendPing(w http.ResponseWriter, r *http.Request) {
	var req SendPingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	body, err := decodeOptionalBody(req.BodyB64)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	ctx := r.Context()
	sess, err := s.node.Transport().OpenSession(ctx, s.node.Profile(), types.Ticket(req.ToTicket))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("open_session error: %w", err))
		return
	}
	defer sess.Close()

	if err := sess.Send(ctx, types.NewMessage(s.node.Profile(), types.KindPing, body)); err != nil {
		writeError(w, http.StatusBadGateway, fmt.Errorf("send error: %w", err))
		return
	}
	writeText(w, http.StatusAccepted, "sent")
}

// handleOpenConnection 打开连接
func (s *Server) handleOpenConnection(w http.ResponseWriter, r *http.Request) {
	var req OpenConnectionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	id, err := s.conns.Open(r.Context(), types.Ticket(req.ToTicket))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("open_session error: %w", err))
		return
	}
	writeJSON(w, http.StatusCreated, OpenConnectionResponse{ConnectionID: id})
}

// handleListConnections 列出连接
func (s *Server) handleListConnections(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.conns.List())
}

// handleConnectionSend 在连接上发送
func (s *Server) handleConnectionSend(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req ConnectionSendRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Kind == "" {
		writeError(w, http.StatusBadRequest, errors.New("kind is required"))
		return
	}
	body, err := decodeOptionalBody(req.BodyB64)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	msg := types.NewMessage(s.node.Profile(), types.ParseMessageKind(req.Kind), body)
	if err := s.conns.Send(r.Context(), id, msg); err != nil {
		if errors.Is(err, connections.ErrNotFound) {
			writeError(w, http.StatusNotFound, err)
			return
		}
		writeError(w, http.StatusBadGateway, fmt.Errorf("send error: %w", err))
		return
	}
	writeText(w, http.StatusAccepted, "sent")
}

// handleCloseConnection 关闭连接
func (s *Server) handleCloseConnection(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := s.conns.Close(id); err != nil {
		if errors.Is(err, connections.ErrNotFound) {
			writeError(w, http.StatusNotFound, err)
			return
		}
		logger.WarnContext(r.Context(), "关闭连接出错", "id", id, "error", err)
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleDeliver 接收 HTTP 传输推送的消息
func (s *Server) handleDeliver(w http.ResponseWriter, r *http.Request) {
	if mux.Vars(r)["name"] != s.node.Profile().String() {
		writeText(w, http.StatusNotFound, "wrong profile")
		return
	}

	var req DeliverRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	item, err := req.item()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	msg, err := item.Message()
	if err != nil {
		writeText(w, http.StatusBadRequest, "invalid body")
		return
	}

	if err := s.inbox.Deliver(r.Context(), msg); err != nil {
		if errors.Is(err, inbox.ErrRateLimited) {
			writeError(w, http.StatusTooManyRequests, err)
			return
		}
		logger.WarnContext(r.Context(), "入站投递失败", "from", msg.From, "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeText(w, http.StatusAccepted, "queued")
}

// handleWebSocket 升级为 WebSocket 入站连接
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if mux.Vars(r)["name"] != s.node.Profile().String() {
		writeText(w, http.StatusNotFound, "wrong profile")
		return
	}
	s.ws.ServeHTTP(w, r)
}

// ============================================================================
//                              辅助函数
// ============================================================================

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	return nil
}

func decodeOptionalBody(b64 *string) ([]byte, error) {
	if b64 == nil {
		return nil, nil
	}
	body, err := base64.StdEncoding.DecodeString(*b64)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrInvalidBody, err)
	}
	return body, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Debug("写响应失败", "error", err)
	}
}

func writeText(w http.ResponseWriter, status int, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, text)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
