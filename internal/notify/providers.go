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

type EmailSender interface {
	SendEmail(ctx context.Context, to string, msg Message) error
}

type WhatsAppSender interface {
	SendTemplate(ctx context.Context, to string, params []string) error
}

func postJSON(ctx context.Context, client *http.Client, url, token string, body any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("post %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("post %s: status %d: %s", url, resp.StatusCode, strings.TrimSpace(string(b)))
	}
	return nil
}

// -------- E-mail --------

// HTTPEmail envia pelo endpoint JSON do provedor de e-mail transacional.
type HTTPEmail struct {
	URL    string
	APIKey string
	From   string
	Client *http.Client
}

func NewHTTPEmail(url, apiKey, from string) *HTTPEmail {
	return &HTTPEmail{
		URL:    url,
		APIKey: apiKey,
		From:   from,
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (e *HTTPEmail) SendEmail(ctx context.Context, to string, msg Message) error {
	return postJSON(ctx, e.Client, e.URL, e.APIKey, map[string]any{
		"from":    e.From,
		"to":      []string{to},
		"subject": msg.Subject,
		"text":    msg.Text,
		"html":    msg.HTML,
	})
}

// -------- WhatsApp --------

// CloudWhatsApp usa a WhatsApp Cloud API (Graph API) com mensagens de template.
type CloudWhatsApp struct {
	BaseURL  string
	Token    string
	PhoneID  string
	Template string
	Language string
	Client   *http.Client
}

func NewCloudWhatsApp(baseURL, token, phoneID, template string) *CloudWhatsApp {
	return &CloudWhatsApp{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		Token:    token,
		PhoneID:  phoneID,
		Template: template,
		Language: "pt_BR",
		Client:   &http.Client{Timeout: 10 * time.Second},
	}
}

type waParam struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func (w *CloudWhatsApp) SendTemplate(ctx context.Context, to string, params []string) error {
	values := make([]waParam, 0, len(params))
	for _, p := range params {
		values = append(values, waParam{Type: "text", Text: p})
	}

	body := map[string]any{
		"messaging_product": "whatsapp",
		"to":                to,
		"type":              "template",
		"template": map[string]any{
			"name":     w.Template,
			"language": map[string]string{"code": w.Language},
			"components": []map[string]any{
				{"type": "body", "parameters": values},
			},
		},
	}

	return postJSON(ctx, w.Client, w.BaseURL+"/"+w.PhoneID+"/messages", w.Token, body)
}
