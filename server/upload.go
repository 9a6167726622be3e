// upload.go - Multipart-Upload-Handler fuer Videoanalyse
// Staged die hochgeladene Datei, kodiert sie als Base64 und delegiert an
// die normale Video-Pipeline. Gestagte Dateien werden immer entfernt.
package server

import (
	"encoding/base64"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/visiond/visiond/api"
)

// VideoUploadHandler verarbeitet POST /api/v1/video/understanding/upload.
// Formularfelder: file (Pflicht), prompt, max_tokens, temperature, top_p,
// max_frames, sample_fps. Unparsbare Zahlenfelder sind Transportfehler (400).
func (s *Server) VideoUploadHandler(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "missing upload file"})
		return
	}

	req := api.VideoUnderstandingRequest{
		InferenceOptions: api.InferenceOptions{Prompt: c.PostForm("prompt")},
	}

	if v := c.PostForm("max_tokens"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid max_tokens"})
			return
		}
		req.MaxTokens = n
	}

	if v := c.PostForm("temperature"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid temperature"})
			return
		}
		req.Temperature = f
	}

	if v := c.PostForm("top_p"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid top_p"})
			return
		}
		req.TopP = f
	}

	if v := c.PostForm("max_frames"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid max_frames"})
			return
		}
		req.MaxFrames = n
	}

	if v := c.PostForm("sample_fps"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid sample_fps"})
			return
		}
		req.SampleFPS = f
	}

	if !s.requireEngine(c) {
		return
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusOK, api.TaskResponse{Success: false, Error: err.Error()})
		return
	}
	defer f.Close()

	store := s.dispatcher.Store()
	path, err := store.StageUpload(fh.Filename, f)
	if err != nil {
		c.JSON(http.StatusOK, api.TaskResponse{Success: false, Error: err.Error()})
		return
	}
	defer store.Remove(path)

	data, err := os.ReadFile(path)
	if err != nil {
		c.JSON(http.StatusOK, api.TaskResponse{Success: false, Error: err.Error()})
		return
	}

	req.VideoBase64 = base64.StdEncoding.EncodeToString(data)

	c.JSON(http.StatusOK, s.dispatcher.VideoUnderstanding(c.Request.Context(), &req))
}
