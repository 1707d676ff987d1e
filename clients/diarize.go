package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// --- Diarization (/diarize) ---
type SpkSeg struct {
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Speaker string  `json:"speaker"`
}
type DiarResp struct {
	Segments    []SpkSeg `json:"segments"`
	NumSpeakers int      `json:"num_speakers"`
	Model       string   `json:"model,omitempty"`
	Device      string   `json:"device,omitempty"`
}

// Diarize uploads the wav file and returns the predicted speaker turns.
// session names the recording on the sidecar side; model is optional.
func (h *HTTP) Diarize(ctx context.Context, url, wavPath, session, model string) (*DiarResp, error) {
	var b bytes.Buffer
	w := multipart.NewWriter(&b)

	fw, err := w.CreateFormFile("file", filepath.Base(wavPath))
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	fd, err := os.Open(wavPath)
	if err != nil {
		return nil, err
	}
	defer fd.Close()

	if _, err = io.Copy(fw, fd); err != nil {
		return nil, fmt.Errorf("copy audio: %w", err)
	}
	if err = w.WriteField("session", session); err != nil {
		return nil, err
	}
	if model != "" {
		if err = w.WriteField("model", model); err != nil {
			return nil, err
		}
	}
	if err = w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url+"/diarize", &b)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := h.c.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("diarize %s: %s", resp.Status, errBody(resp.Body))
	}

	var out DiarResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("diarize decode: %w", err)
	}
	return &out, nil
}

func errBody(r io.Reader) string {
	const maxErr = 4096
	body, _ := io.ReadAll(io.LimitReader(r, maxErr))
	return strings.TrimSpace(string(body))
}
