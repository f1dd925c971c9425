package did

import (
	"context"
	"net/http"

	"go.uber.org/fx"

	"github.com/mee-pdn/go-mee/config"
	"github.com/mee-pdn/go-mee/internal/core/did/key"
	"github.com/mee-pdn/go-mee/internal/core/did/web"
	"github.com/mee-pdn/go-mee/pkg/interfaces"
	"github.com/mee-pdn/go-mee/pkg/lib/log"
	"github.com/mee-pdn/go-mee/pkg/types"
)

var logger = log.Logger("core/did")

// ModuleInput 定义模块输入依赖
type ModuleInput struct {
	fx.In

	UnifiedCfg *config.Config `optional:"true"`
	Store      interfaces.KVStore
	HTTPClient *http.Client `name:"did_http_client" optional:"true"`
}

// ModuleOutput 定义模块输出服务
type ModuleOutput struct {
	fx.Out

	Registry *Registry
	Manager  interfaces.DIDManager
	Local    LocalIdentity
}

// Module 返回 fx 模块配置
func Module() fx.Option {
	return fx.Module("did",
		fx.Provide(ProvideServices),
	)
}

// ProvideServices 创建注册表并确保本地身份存在
func ProvideServices(input ModuleInput) (ModuleOutput, error) {
	cfg := config.DefaultIdentityConfig()
	if input.UnifiedCfg != nil {
		cfg = input.UnifiedCfg.Identity
	}

	webOpts := []web.Option{
		web.WithScheme(cfg.WebScheme),
		web.WithTimeout(cfg.ResolveTimeout.Duration()),
	}
	if input.HTTPClient != nil {
		webOpts = append(webOpts, web.WithHTTPClient(input.HTTPClient))
	}

	params := CreateParams(cfg)
	registry, err := NewRegistry(params.Method(), key.New(), web.New(webOpts...))
	if err != nil {
		return ModuleOutput{}, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ResolveTimeout.Duration())
	defer cancel()

	local, err := EnsureLocalIdentity(ctx, registry, input.Store, params)
	if err != nil {
		return ModuleOutput{}, err
	}

	return ModuleOutput{
		Registry: registry,
		Manager:  registry,
		Local:    local,
	}, nil
}

// CreateParams 由身份配置得到本地 DID 的创建参数
func CreateParams(cfg config.IdentityConfig) interfaces.DIDCreateParams {
	switch types.ParseDIDMethod(cfg.Method) {
	case types.MethodWeb:
		return interfaces.WebCreateOptions{Domain: cfg.WebDomain, Path: cfg.WebPath}
	default:
		return interfaces.KeyCreateOptions{JWK: cfg.KeyJWK, UseJCSPub: cfg.UseJCSPub}
	}
}
