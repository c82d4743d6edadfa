// Package api 封装与 ia-chat 服务端的 HTTP API 交互
package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// 等待 AI 回复可能较久，需大于服务端 write_timeout
const defaultTimeout = 150 * time.Second

// Client API 客户端
// baseURL: 例如 http://localhost:8080
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient 创建 API 客户端
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// APIResponse 通用响应
type APIResponse struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// APIError 服务端返回的业务错误
type APIError struct {
	StatusCode int    // HTTP 状态码
	Code       int    // 业务状态码
	Message    string // 错误信息
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API 错误 (%d/%d): %s", e.StatusCode, e.Code, e.Message)
}

// IsNotFound 判断是否为资源不存在错误
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// Conversation 会话
type Conversation struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// Message 消息
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	Text           string    `json:"text"`
	Sender         string    `json:"sender"`
	Timestamp      time.Time `json:"timestamp"`
}

// --- 会话 ---

// ListConversations 获取全部会话
func (c *Client) ListConversations() ([]Conversation, error) {
	var result struct {
		Conversations []Conversation `json:"conversations"`
	}
	if err := c.call(http.MethodGet, "/api/v1/conversations", nil, &result); err != nil {
		return nil, err
	}
	return result.Conversations, nil
}

// CreateConversation 创建会话，title 为空时使用服务端默认标题
func (c *Client) CreateConversation(title string) (*Conversation, error) {
	var body interface{}
	if title != "" {
		body = map[string]string{"title": title}
	}
	var result Conversation
	if err := c.call(http.MethodPost, "/api/v1/conversations", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// OpenLatest 获取最新会话，没有时服务端会自动创建
func (c *Client) OpenLatest() (*Conversation, error) {
	var result Conversation
	if err := c.call(http.MethodGet, "/api/v1/conversations/latest", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetConversation 获取会话详情
func (c *Client) GetConversation(id string) (*Conversation, error) {
	var result Conversation
	if err := c.call(http.MethodGet, conversationPath(id), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// RenameConversation 修改会话标题
func (c *Client) RenameConversation(id, title string) (*Conversation, error) {
	var result Conversation
	if err := c.call(http.MethodPut, conversationPath(id), map[string]string{"title": title}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteConversation 删除会话
func (c *Client) DeleteConversation(id string) error {
	return c.call(http.MethodDelete, conversationPath(id), nil, nil)
}

// --- 消息 ---

// GetMessages 获取会话全部消息
func (c *Client) GetMessages(conversationID string) ([]Message, error) {
	var result struct {
		Messages []Message `json:"messages"`
	}
	if err := c.call(http.MethodGet, conversationPath(conversationID)+"/messages", nil, &result); err != nil {
		return nil, err
	}
	return result.Messages, nil
}

// SendMessage 以用户身份发送一条消息
func (c *Client) SendMessage(conversationID, text string) (*Message, error) {
	var result Message
	if err := c.call(http.MethodPost, conversationPath(conversationID)+"/messages", map[string]string{"text": text}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// RequestReply 请求 AI 回复，同步等待
func (c *Client) RequestReply(conversationID string) (*Message, error) {
	var result Message
	if err := c.call(http.MethodPost, conversationPath(conversationID)+"/reply", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GenerateTitle 让 AI 生成会话标题
func (c *Client) GenerateTitle(conversationID string) (*Conversation, error) {
	var result Conversation
	if err := c.call(http.MethodPost, conversationPath(conversationID)+"/title", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Health 检查服务端是否可用
func (c *Client) Health() error {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("请求失败: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("服务不可用: HTTP %d", resp.StatusCode)
	}
	return nil
}

func conversationPath(id string) string {
	return "/api/v1/conversations/" + url.PathEscape(id)
}

// --- 通用请求封装 ---

// call 发送请求并把 data 解析到 out，out 为 nil 时忽略 data
func (c *Client) call(method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	apiResp, err := c.do(req)
	if err != nil {
		return err
	}
	if out == nil || len(apiResp.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(apiResp.Data, out); err != nil {
		return fmt.Errorf("解析响应失败: %w", err)
	}
	return nil
}

func (c *Client) do(req *http.Request) (*APIResponse, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("请求失败: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取响应失败: %w", err)
	}

	// 204 没有响应体
	if resp.StatusCode == http.StatusNoContent {
		return &APIResponse{}, nil
	}

	var apiResp APIResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return nil, fmt.Errorf("解析响应失败 (HTTP %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode >= 400 || apiResp.Code != 0 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Code:       apiResp.Code,
			Message:    apiResp.Message,
		}
	}

	return &apiResp, nil
}
