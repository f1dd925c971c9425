package types

import (
	"encoding/base64"
	"fmt"
)

// InboxItem 消息的 JSON 线格式
//
// HTTP 推送、WebSocket 帧和收件箱持久化共用同一形状；
// 消息体以标准 base64 编码跨越边界。
type InboxItem struct {
	From    string `json:"from"`
	Kind    string `json:"kind"`
	BodyB64 string `json:"body_b64"`
}

// InboxItemFromMessage 把消息编码为线格式
func InboxItemFromMessage(msg Message) InboxItem {
	return InboxItem{
		From:    msg.From.String(),
		Kind:    msg.Kind.String(),
		BodyB64: base64.StdEncoding.EncodeToString(msg.Body),
	}
}

// Message 解码为消息
//
// body_b64 不是合法 base64 时返回错误。
func (it InboxItem) Message() (Message, error) {
	body, err := base64.StdEncoding.DecodeString(it.BodyB64)
	if err != nil {
		return Message{}, fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	return Message{
		From: ProfileName(it.From),
		Kind: ParseMessageKind(it.Kind),
		Body: body,
	}, nil
}
