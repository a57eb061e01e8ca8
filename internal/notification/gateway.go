package notification

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

// GatewayClient posts messages to a JSON SMS gateway. The payload shape is
// the generic to/from/body contract most transactional SMS providers accept.
type GatewayClient struct {
	endpoint   string
	apiKey     string
	senderID   string
	httpClient *http.Client
}

func NewGatewayClient(endpoint, apiKey, senderID string) *GatewayClient {
	if strings.TrimSpace(endpoint) == "" || strings.TrimSpace(apiKey) == "" {
		return nil
	}
	return &GatewayClient{
		endpoint: endpoint,
		apiKey:   apiKey,
		senderID: senderID,
		httpClient: &http.Client{
			Timeout: 8 * time.Second,
		},
	}
}

type gatewaySendRequest struct {
	To     string `json:"to"`
	Sender string `json:"sender"`
	Body   string `json:"body"`
}

type gatewaySendResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (c *GatewayClient) SendAppointmentConfirmation(
	ctx context.Context,
	phoneNumber string,
	readableID string,
	salonName string,
	whenText string,
) (Result, error) {
	body := fmt.Sprintf(
		"Your appointment %s at %s is booked for %s.",
		readableID, salonName, whenText,
	)
	return c.send(ctx, phoneNumber, body)
}

func (c *GatewayClient) SendStatusUpdate(
	ctx context.Context,
	phoneNumber string,
	readableID string,
	newStatus string,
) (Result, error) {
	body := fmt.Sprintf(
		"Update on appointment %s: status is now %s.",
		readableID, strings.ReplaceAll(newStatus, "_", " "),
	)
	return c.send(ctx, phoneNumber, body)
}

func (c *GatewayClient) send(ctx context.Context, to, body string) (Result, error) {
	if strings.TrimSpace(to) == "" {
		return Result{}, fmt.Errorf("sms: missing recipient")
	}

	// numbers without a country code default to India
	if !strings.HasPrefix(to, "+") {
		to = "+91" + to
	}

	payload := gatewaySendRequest{
		To:     to,
		Sender: c.senderID,
		Body:   body,
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return Result{}, fmt.Errorf("sms: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(raw))
	if err != nil {
		return Result{}, fmt.Errorf("sms: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("sms: send: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Result{Success: false, Message: string(respBody)},
			fmt.Errorf("sms: gateway returned %d", resp.StatusCode)
	}

	var parsed gatewaySendResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		// 2xx with an unparseable body still counts as sent
		return Result{Success: true}, nil
	}

	return Result{Success: true, Message: parsed.Message}, nil
}
