package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
)

const DefaultBaseURL = "https://graph.facebook.com/v18.0"

type Client struct {
	accessToken string
	phoneID     string
	baseURL     string
	httpClient  *http.Client
}

func NewClient(accessToken, phoneID, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		accessToken: accessToken,
		phoneID:     phoneID,
		baseURL:     strings.TrimRight(baseURL, "/"),
		httpClient:  http.DefaultClient,
	}
}

// SendText envia uma mensagem de texto livre. O telefone pode vir em E.164;
// a API espera só os dígitos.
func (c *Client) SendText(ctx context.Context, phone, body string) error {
	if c.accessToken == "" || c.phoneID == "" {
		return fmt.Errorf("whatsapp não configurado")
	}

	payload := map[string]interface{}{
		"messaging_product": "whatsapp",
		"recipient_type":    "individual",
		"to":                strings.TrimPrefix(phone, "+"),
		"type":              "text",
		"text": map[string]interface{}{
			"preview_url": false,
			"body":        body,
		},
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("whatsapp: erro ao serializar payload: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", c.baseURL, c.phoneID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("whatsapp: erro ao enviar mensagem: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("[WHATSAPP] erro ao ler resposta (status %d): %v", resp.StatusCode, err)
	}

	var result SendMessageResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		log.Printf("[WHATSAPP] resposta não é JSON (status %d): %v: %s", resp.StatusCode, err, string(respBody))
	}

	if result.Error != nil {
		return fmt.Errorf("whatsapp: %s (code %d)", result.Error.Message, result.Error.Code)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("whatsapp api error: %d", resp.StatusCode)
	}

	log.Printf("[WHATSAPP] mensagem enviada para %s", phone)
	return nil
}
