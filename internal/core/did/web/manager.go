package web

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mee-pdn/go-mee/pkg/interfaces"
	"github.com/mee-pdn/go-mee/pkg/lib/log"
	"github.com/mee-pdn/go-mee/pkg/types"
)

var logger = log.Logger("core/did/web")

// maxDocumentSize DID 文档大小上限
const maxDocumentSize = 1 << 20

// Manager did:web 管理器
//
// 自身不保存可变状态；并发解析共享同一个 http.Client。
type Manager struct {
	client *http.Client
	scheme string
}

var _ interfaces.DIDManager = (*Manager)(nil)

// Option Manager 选项
type Option func(*Manager)

// WithHTTPClient 设置 HTTP 客户端
func WithHTTPClient(c *http.Client) Option {
	return func(m *Manager) {
		m.client = c
	}
}

// WithScheme 设置解析使用的 URL scheme（测试中使用 http）
func WithScheme(scheme string) Option {
	return func(m *Manager) {
		m.scheme = scheme
	}
}

// WithTimeout 设置默认客户端的超时
func WithTimeout(d time.Duration) Option {
	return func(m *Manager) {
		m.client = &http.Client{Timeout: d}
	}
}

// New 创建 did:web 管理器
func New(opts ...Option) *Manager {
	m := &Manager{
		client: &http.Client{Timeout: 10 * time.Second},
		scheme: "https",
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Method 返回 did:web
func (m *Manager) Method() types.DIDMethod {
	return types.MethodWeb
}

// Create 由域名和路径构造 did:web
//
// 只做本地构造，不发布文档。
func (m *Manager) Create(_ context.Context, params interfaces.DIDCreateParams) (types.DID, error) {
	opts, ok := params.(interfaces.WebCreateOptions)
	if !ok {
		method := "<nil>"
		if params != nil {
			method = params.Method().String()
		}
		return "", interfaces.NewDIDError(interfaces.DIDErrMethod,
			fmt.Sprintf("did:web provider cannot create %s DIDs", method))
	}

	did, err := BuildDID(opts.Domain, opts.Path)
	if err != nil {
		return "", interfaces.WrapDIDError(interfaces.DIDErrInvalid, "build did:web", err)
	}
	return did, nil
}

// document 解析所需的 DID 文档字段
type document struct {
	ID                 string `json:"id"`
	VerificationMethod []struct {
		ID string `json:"id"`
	} `json:"verificationMethod"`
}

// Resolve 获取并解析 did:web 文档
//
// 错误映射：
//   - 404/410 -> DIDErrNotFound
//   - 网络错误与其它非 2xx -> DIDErrResolve
//   - DID 或文档格式错误、id 不一致 -> DIDErrInvalid
func (m *Manager) Resolve(ctx context.Context, did types.DID) (*interfaces.DIDDocument, error) {
	docURL, err := DocumentURL(did, m.scheme)
	if err != nil {
		return nil, interfaces.WrapDIDError(interfaces.DIDErrInvalid, "parse did:web", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, docURL, nil)
	if err != nil {
		return nil, interfaces.WrapDIDError(interfaces.DIDErrInvalid, "build request", err)
	}
	req.Header.Set("Accept", "application/did+json, application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		logger.Debug("did:web 文档获取失败", "url", docURL, "error", err)
		return nil, interfaces.WrapDIDError(interfaces.DIDErrResolve, "fetch "+docURL, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return nil, interfaces.NewDIDError(interfaces.DIDErrNotFound, did.String())
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, interfaces.NewDIDError(interfaces.DIDErrResolve,
			fmt.Sprintf("fetch %s: status %d", docURL, resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize+1))
	if err != nil {
		return nil, interfaces.WrapDIDError(interfaces.DIDErrResolve, "read document", err)
	}
	if len(body) > maxDocumentSize {
		return nil, interfaces.NewDIDError(interfaces.DIDErrInvalid, "document too large")
	}

	var doc document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, interfaces.WrapDIDError(interfaces.DIDErrInvalid, "decode document", err)
	}
	if types.DID(doc.ID) != did {
		return nil, interfaces.WrapDIDError(interfaces.DIDErrInvalid,
			fmt.Sprintf("got %q", doc.ID), ErrIDMismatch)
	}

	vms := make([]types.DIDURL, 0, len(doc.VerificationMethod))
	for _, vm := range doc.VerificationMethod {
		switch {
		case vm.ID == "":
			return nil, interfaces.NewDIDError(interfaces.DIDErrInvalid, "verification method without id")
		case strings.HasPrefix(vm.ID, "#"):
			vms = append(vms, did.URL(vm.ID[1:]))
		default:
			vms = append(vms, types.DIDURL(vm.ID))
		}
	}

	return &interfaces.DIDDocument{
		ID:                    did,
		VerificationMethodIDs: vms,
	}, nil
}
