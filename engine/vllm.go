// MODUL: vllm
// ZWECK: HTTP-Adapter zu einem vLLM-artigen Generation-Backend
// INPUT: Kanonische Messages plus Options
// OUTPUT: Generierter Text, blockierend oder als SSE-Delta-Stream
// NEBENEFFEKTE: HTTP-Aufrufe gegen das konfigurierte Backend
// ABHAENGIGKEITEN: message (intern), net/http, bufio (stdlib)
// HINWEISE: Die kanonischen Content-Parts gehen unveraendert auf die Leitung;
// das Backend rendert Modality-Platzhalter und Instruktionstext selbst

package engine

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/visiond/visiond/message"
)

const maxStreamBufferSize = 8 * 1024 * 1024

// VLLM spricht die Chat-Completions-API eines vLLM-Servers.
type VLLM struct {
	base  *url.URL
	model string
	http  *http.Client
}

// NewVLLM erstellt einen Adapter fuer das Backend unter base, das das
// angegebene Modell bedient.
func NewVLLM(base *url.URL, model string, httpClient *http.Client) *VLLM {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &VLLM{base: base, model: model, http: httpClient}
}

// chatRequest ist der Request-Body fuer /v1/chat/completions.
type chatRequest struct {
	Model       string            `json:"model"`
	Messages    []message.Message `json:"messages"`
	MaxTokens   int               `json:"max_tokens"`
	Temperature float64           `json:"temperature"`
	TopP        float64           `json:"top_p"`
	Seed        int               `json:"seed"`
	Stream      bool              `json:"stream,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (v *VLLM) newChatRequest(messages []message.Message, opts Options, stream bool) chatRequest {
	// Ohne expliziten Seed wird deterministisch mit Seed 0 generiert
	seed := 0
	if opts.Seed != nil {
		seed = *opts.Seed
	}

	return chatRequest{
		Model:       v.model,
		Messages:    messages,
		MaxTokens:   opts.MaxTokens,
		Temperature: opts.Temperature,
		TopP:        opts.TopP,
		Seed:        seed,
		Stream:      stream,
	}
}

func (v *VLLM) post(ctx context.Context, body chatRequest, accept string) (*http.Response, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	requestURL := v.base.JoinPath("/v1/chat/completions")
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, requestURL.String(), bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", accept)

	response, err := v.http.Do(request)
	if err != nil {
		return nil, err
	}

	if response.StatusCode >= http.StatusBadRequest {
		defer response.Body.Close()
		respBody, _ := io.ReadAll(response.Body)

		var errResp chatResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error != nil {
			return nil, fmt.Errorf("backend: %s", errResp.Error.Message)
		}
		return nil, fmt.Errorf("backend: %s: %s", response.Status, strings.TrimSpace(string(respBody)))
	}

	return response, nil
}

// Generate implementiert Engine.Generate blockierend.
func (v *VLLM) Generate(ctx context.Context, messages []message.Message, opts Options) (string, error) {
	response, err := v.post(ctx, v.newChatRequest(messages, opts, false), "application/json")
	if err != nil {
		return "", err
	}
	defer response.Body.Close()

	respBody, err := io.ReadAll(response.Body)
	if err != nil {
		return "", err
	}

	var resp chatResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return "", fmt.Errorf("backend: invalid response: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", nil
	}

	return resp.Choices[0].Message.Content, nil
}

// GenerateStream implementiert Engine.GenerateStream ueber SSE.
// Deltas werden in Ankunftsreihenfolge ohne Umordnung weitergereicht.
func (v *VLLM) GenerateStream(ctx context.Context, messages []message.Message, opts Options, fn StreamFunc) error {
	response, err := v.post(ctx, v.newChatRequest(messages, opts, true), "text/event-stream")
	if err != nil {
		return err
	}
	defer response.Body.Close()

	scanner := bufio.NewScanner(response.Body)
	// increase the buffer size to avoid running out of space
	scanBuf := make([]byte, 0, maxStreamBufferSize)
	scanner.Buffer(scanBuf, maxStreamBufferSize)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		data, ok := strings.CutPrefix(line, "data:")
		if !ok {
			continue
		}
		data = strings.TrimSpace(data)

		if data == "[DONE]" {
			break
		}

		var resp chatResponse
		if err := json.Unmarshal([]byte(data), &resp); err != nil {
			return fmt.Errorf("backend: invalid stream chunk: %w", err)
		}

		if resp.Error != nil {
			return fmt.Errorf("backend: %s", resp.Error.Message)
		}

		if len(resp.Choices) == 0 {
			continue
		}

		if delta := resp.Choices[0].Delta.Content; delta != "" {
			if err := fn(delta); err != nil {
				return err
			}
		}
	}

	return scanner.Err()
}

// Ready prueft den Health-Endpoint des Backends.
func (v *VLLM) Ready() bool {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	requestURL := v.base.JoinPath("/health")
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL.String(), nil)
	if err != nil {
		return false
	}

	response, err := v.http.Do(request)
	if err != nil {
		return false
	}
	defer response.Body.Close()

	return response.StatusCode == http.StatusOK
}
