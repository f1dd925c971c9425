// Package config 提供统一的配置管理
//
// 本包采用混合配置模式：
//   - 主 Config 结构体嵌入所有子配置
//   - 每个子配置在独立文件中定义
//   - 支持从 JSON / TOML 加载、保存为 JSON
//
// 使用示例：
//
//	// 创建默认配置
//	cfg := config.NewConfig()
//	cfg.Node.Profile = "alice"
//	cfg.Transport.BaseURL = "http://127.0.0.1:3000"
//
//	// 从文件加载（按扩展名选择 JSON 或 TOML）
//	cfg, err := config.LoadFile("mee.toml")
package config

// Config 是 mee 节点的完整配置结构
//
// 配置按照功能模块组织：
//   - Node: Profile 与用户标识
//   - Identity: DID 方法与创建参数
//   - Transport: 传输类型与可达地址
//   - Storage: 存储后端
//   - API: 控制面 HTTP 服务
//   - Log: 日志
type Config struct {
	// Node 节点配置
	Node NodeConfig `json:"node" toml:"node"`

	// Identity 身份配置
	Identity IdentityConfig `json:"identity" toml:"identity"`

	// Transport 传输层配置
	Transport TransportConfig `json:"transport" toml:"transport"`

	// Storage 存储配置
	Storage StorageConfig `json:"storage" toml:"storage"`

	// API 控制面配置
	API APIConfig `json:"api" toml:"api"`

	// Log 日志配置
	Log LogConfig `json:"log" toml:"log"`
}

// NewConfig 创建默认配置
//
// 返回的配置使用所有组件的默认值；Node.Profile 默认为空，
// 启动节点前必须设置。
func NewConfig() *Config {
	return &Config{
		Node:      DefaultNodeConfig(),
		Identity:  DefaultIdentityConfig(),
		Transport: DefaultTransportConfig(),
		Storage:   DefaultStorageConfig(),
		API:       DefaultAPIConfig(),
		Log:       DefaultLogConfig(),
	}
}

// Validate 验证配置的有效性
//
// 检查所有子配置是否有效，如果发现无效配置则返回错误。
func (c *Config) Validate() error {
	if err := c.Node.Validate(); err != nil {
		return err
	}
	if err := c.Identity.Validate(); err != nil {
		return err
	}
	if err := c.Transport.Validate(); err != nil {
		return err
	}
	if err := c.Storage.Validate(); err != nil {
		return err
	}
	if err := c.API.Validate(); err != nil {
		return err
	}
	if err := c.Log.Validate(); err != nil {
		return err
	}
	return nil
}

// Clone 返回配置的深拷贝
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	cloned := *c
	cloned.API.CORSOrigins = append([]string(nil), c.API.CORSOrigins...)
	return &cloned
}
