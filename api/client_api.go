// Package api - Task-Methoden des visiond API-Clients.
// Eine Methode pro Task-Endpoint plus Health, Version und Tasks.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"runtime"
	"strconv"

	"github.com/visiond/visiond/version"
)

// Health reports whether the service and its generation backend are ready.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var resp HealthResponse
	if err := c.do(ctx, http.MethodGet, "/api/health", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Version returns the version of the visiond server.
func (c *Client) Version(ctx context.Context) (string, error) {
	var resp struct {
		Version string `json:"version"`
	}

	if err := c.do(ctx, http.MethodGet, "/api/version", nil, &resp); err != nil {
		return "", err
	}
	return resp.Version, nil
}

// Tasks lists the task types supported by the server.
func (c *Client) Tasks(ctx context.Context) (*TaskListResponse, error) {
	var resp TaskListResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/tasks", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Grounding2D detects and localizes objects in an image, returning bounding
// boxes in relative coordinates (0-1000).
func (c *Client) Grounding2D(ctx context.Context, req *Grounding2DRequest) (*TaskResponse, error) {
	var resp TaskResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/grounding/2d", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SpatialUnderstanding answers a spatial reasoning query about an image.
func (c *Client) SpatialUnderstanding(ctx context.Context, req *SpatialUnderstandingRequest) (*TaskResponse, error) {
	var resp TaskResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/spatial/understanding", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// VideoUnderstanding analyzes a video given as URL, base64 payload or an
// ordered list of frames.
func (c *Client) VideoUnderstanding(ctx context.Context, req *VideoUnderstandingRequest) (*TaskResponse, error) {
	var resp TaskResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/video/understanding", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ImageDescription generates a description of an image at the requested
// detail level.
func (c *Client) ImageDescription(ctx context.Context, req *ImageDescriptionRequest) (*TaskResponse, error) {
	var resp TaskResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/image/description", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DocumentParsing converts a document image into a structured format.
func (c *Client) DocumentParsing(ctx context.Context, req *DocumentParsingRequest) (*TaskResponse, error) {
	var resp TaskResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/document/parsing", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DocumentOCR extracts text from a document image.
func (c *Client) DocumentOCR(ctx context.Context, req *OCRRequest) (*TaskResponse, error) {
	var resp TaskResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/ocr/document", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// WildOCR extracts text from a natural scene image (signs, labels, ...).
func (c *Client) WildOCR(ctx context.Context, req *OCRRequest) (*TaskResponse, error) {
	var resp TaskResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/ocr/wild", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ImageComparison compares 2 to 4 images in caller order.
func (c *Client) ImageComparison(ctx context.Context, req *ImageComparisonRequest) (*TaskResponse, error) {
	var resp TaskResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/image/comparison", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// VideoUpload fuehrt Video-Understanding mit einer direkt hochgeladenen
// Videodatei aus. file wird als multipart/form-data uebertragen, die
// Skalar-Parameter des Requests als Formularfelder.
func (c *Client) VideoUpload(ctx context.Context, filename string, file io.Reader, req *VideoUnderstandingRequest) (*TaskResponse, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(fw, file); err != nil {
		return nil, err
	}

	fields := map[string]string{
		"prompt":      req.Prompt,
		"max_tokens":  strconv.Itoa(req.MaxTokens),
		"temperature": strconv.FormatFloat(req.Temperature, 'f', -1, 64),
		"top_p":       strconv.FormatFloat(req.TopP, 'f', -1, 64),
		"max_frames":  strconv.Itoa(req.MaxFrames),
		"sample_fps":  strconv.FormatFloat(req.SampleFPS, 'f', -1, 64),
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	requestURL := c.base.JoinPath("/api/v1/video/understanding/upload")
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, requestURL.String(), &body)
	if err != nil {
		return nil, err
	}

	request.Header.Set("Content-Type", mw.FormDataContentType())
	request.Header.Set("User-Agent", fmt.Sprintf("visiond/%s (%s %s) Go/%s", version.Version, runtime.GOARCH, runtime.GOOS, runtime.Version()))

	response, err := c.http.Do(request)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	respBody, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, err
	}

	if err := checkError(response, respBody); err != nil {
		return nil, err
	}

	var resp TaskResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
