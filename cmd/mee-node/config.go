package main

import (
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/mee-pdn/go-mee/config"
)

// overrides 命令行覆盖项，空字符串表示未设置
type overrides struct {
	configFile string
	profile    string
	addr       string
	baseURL    string
	dataDir    string
	transport  string
	logLevel   string
	logFormat  string
}

func overridesFromContext(c *cli.Context) overrides {
	return overrides{
		configFile: c.String(configFlag.Name),
		profile:    c.String(profileFlag.Name),
		addr:       c.String(addrFlag.Name),
		baseURL:    c.String(baseURLFlag.Name),
		dataDir:    c.String(dataDirFlag.Name),
		transport:  c.String(transportFlag.Name),
		logLevel:   c.String(logLevelFlag.Name),
		logFormat:  c.String(logFormatFlag.Name),
	}
}

// buildConfig 构建节点配置
//
// 优先级（从高到低）：命令行参数 / 环境变量 > 配置文件 > 默认值。
// 未给出 base-url 时，http/ws 传输由监听地址推导。
func buildConfig(o overrides) (*config.Config, error) {
	cfg := config.NewConfig()
	if o.configFile != "" {
		loaded, err := config.LoadFile(o.configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if o.profile != "" {
		cfg.Node = cfg.Node.WithProfile(o.profile)
	}
	if o.addr != "" {
		cfg.API = cfg.API.WithListenAddr(o.addr)
	}
	if o.transport != "" {
		cfg.Transport = cfg.Transport.WithKind(o.transport)
	}
	if o.baseURL != "" {
		cfg.Transport = cfg.Transport.WithBaseURL(o.baseURL)
	} else if cfg.Transport.BaseURL == "" && cfg.API.ListenAddr != "" {
		cfg.Transport = cfg.Transport.WithBaseURL(deriveBaseURL(cfg.Transport.Kind, cfg.API.ListenAddr))
	}
	if o.dataDir != "" {
		cfg.Storage.Backend = config.StorageBadger
		cfg.Storage.DataDir = o.dataDir
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if o.logFormat != "" {
		cfg.Log.Format = o.logFormat
	}

	if err := config.ValidateForStart(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// deriveBaseURL 由监听地址推导基础 URL
//
// 通配地址替换为回环地址；memory 传输不需要基础 URL。
// ws 传输同样使用 http(s) 基础 URL，票据中的 scheme 由传输自行换算。
func deriveBaseURL(kind, addr string) string {
	if kind == config.TransportMemory {
		return ""
	}
	if strings.HasPrefix(addr, ":") {
		addr = "127.0.0.1" + addr
	} else if rest, ok := strings.CutPrefix(addr, "0.0.0.0:"); ok {
		addr = "127.0.0.1:" + rest
	}
	return "http://" + addr
}
