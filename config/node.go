package config

import "errors"

// NodeConfig 节点配置
type NodeConfig struct {
	// Profile 节点在传输命名空间内的名字（必需）
	Profile string `json:"profile" toml:"profile"`

	// UserID 拥有该节点的用户标识（可选）
	UserID string `json:"user_id,omitempty" toml:"user_id"`
}

// DefaultNodeConfig 返回默认节点配置
func DefaultNodeConfig() NodeConfig {
	return NodeConfig{}
}

// Validate 验证节点配置
//
// Profile 为空不在此处报错：配置文件常常只写公共部分，
// Profile 由命令行补全，节点构造时再做最终检查。
func (c NodeConfig) Validate() error {
	for _, r := range c.Profile {
		if r == '/' || r == '?' || r == '#' {
			return errors.New("node: profile must not contain '/', '?' or '#'")
		}
	}
	return nil
}

// WithProfile 设置 Profile
func (c NodeConfig) WithProfile(profile string) NodeConfig {
	c.Profile = profile
	return c
}

// WithUserID 设置用户标识
func (c NodeConfig) WithUserID(id string) NodeConfig {
	c.UserID = id
	return c
}
