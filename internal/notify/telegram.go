// Package notify 实现报告的投递边界：Telegram 会话与可选的邮件渠道。
// 投递失败只记录日志，不做重试，也不影响调度器状态。
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultTelegramAPI = "https://api.telegram.org"

// TelegramClient Telegram Bot API 客户端
type TelegramClient struct {
	token   string
	baseURL string
	client  *http.Client
}

// NewTelegramClient 创建 Telegram 客户端；超时需要覆盖 getUpdates 长轮询
func NewTelegramClient(token string) *TelegramClient {
	return &TelegramClient{
		token:   token,
		baseURL: defaultTelegramAPI,
		client: &http.Client{
			Timeout: 40 * time.Second,
		},
	}
}

// apiResponse Bot API 统一响应结构
type apiResponse[T any] struct {
	OK          bool   `json:"ok"`
	Result      T      `json:"result"`
	Description string `json:"description"`
}

// Update 一条入站更新
type Update struct {
	UpdateID int64    `json:"update_id"`
	Message  *Message `json:"message"`
}

// Message 一条会话消息
type Message struct {
	MessageID int    `json:"message_id"`
	Text      string `json:"text"`
	Chat      Chat   `json:"chat"`
	From      *User  `json:"from"`
}

// Chat 会话标识
type Chat struct {
	ID int64 `json:"id"`
}

// User 用户标识
type User struct {
	ID int64 `json:"id"`
}

func (c *TelegramClient) apiURL(method string) string {
	return c.baseURL + "/bot" + c.token + "/" + method
}

func doRequest[T any](ctx context.Context, c *TelegramClient, method string, payload any) (T, error) {
	var zero T

	body, err := json.Marshal(payload)
	if err != nil {
		return zero, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL(method), bytes.NewReader(body))
	if err != nil {
		return zero, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return zero, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return zero, err
	}

	var decoded apiResponse[T]
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return zero, fmt.Errorf("解析响应失败 (HTTP %d): %w", resp.StatusCode, err)
	}
	if !decoded.OK {
		return zero, fmt.Errorf("telegram: %s", decoded.Description)
	}

	return decoded.Result, nil
}

type getUpdatesRequest struct {
	Offset  int64 `json:"offset"`
	Timeout int   `json:"timeout"`
}

// GetUpdates 长轮询拉取入站更新
func (c *TelegramClient) GetUpdates(ctx context.Context, offset int64, timeoutSeconds int) ([]Update, error) {
	return doRequest[[]Update](ctx, c, "getUpdates", getUpdatesRequest{
		Offset:  offset,
		Timeout: timeoutSeconds,
	})
}

type sendMessageRequest struct {
	ChatID    int64  `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
}

type messageResult struct {
	MessageID int `json:"message_id"`
}

// SendMessage 发送 HTML 消息，返回消息 ID
func (c *TelegramClient) SendMessage(ctx context.Context, chatID int64, text string) (int, error) {
	result, err := doRequest[messageResult](ctx, c, "sendMessage", sendMessageRequest{
		ChatID:    chatID,
		Text:      text,
		ParseMode: "HTML",
	})
	if err != nil {
		return 0, err
	}
	return result.MessageID, nil
}

type editMessageRequest struct {
	ChatID    int64  `json:"chat_id"`
	MessageID int    `json:"message_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
}

// EditMessage 就地编辑已发送的消息；内容未变化时视为成功
func (c *TelegramClient) EditMessage(ctx context.Context, chatID int64, messageID int, text string) error {
	_, err := doRequest[json.RawMessage](ctx, c, "editMessageText", editMessageRequest{
		ChatID:    chatID,
		MessageID: messageID,
		Text:      text,
		ParseMode: "HTML",
	})
	if err != nil && strings.Contains(err.Error(), "message is not modified") {
		return nil
	}
	return err
}
