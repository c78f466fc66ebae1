package bot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type Client struct {
	apiURL string
	httpc  *http.Client
}

// NewClient talks to apiBase (normally https://api.telegram.org; tests point
// it at a local fake).
func NewClient(apiBase, token string) *Client {
	return &Client{
		apiURL: apiBase + "/bot" + token,
		httpc:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) call(method string, payload any) (*http.Response, error) {
	b, _ := json.Marshal(payload)
	req, err := http.NewRequest("POST", c.apiURL+"/"+method, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.httpc.Do(req)
}

// SendMessage delivers one HTML-formatted message. Fire-and-forget: callers
// log the error and move on, nothing retries.
func (c *Client) SendMessage(chatID int64, text string) error {
	resp, err := c.call("sendMessage", map[string]any{
		"chat_id":    chatID,
		"text":       text,
		"parse_mode": "HTML",
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("telegram sendMessage: %s", resp.Status)
	}
	return nil
}

// SetWebhook registers url as this bot's webhook target and returns the raw
// transport response for the administrative caller to inspect.
func (c *Client) SetWebhook(url string) ([]byte, error) {
	resp, err := c.call("setWebhook", map[string]any{"url": url})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}
