package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// --- DER metric (/der) ---
type DERReq struct {
	URI         string   `json:"uri"`
	Reference   []SpkSeg `json:"reference"`
	Hypothesis  []SpkSeg `json:"hypothesis"`
	Collar      float64  `json:"collar"`
	SkipOverlap bool     `json:"skip_overlap"`
}

// DERResp mirrors the pyannote.metrics component dict; durations in seconds.
type DERResp struct {
	DER             float64 `json:"der"`
	Total           float64 `json:"total"`
	Confusion       float64 `json:"confusion"`
	MissedDetection float64 `json:"missed_detection"`
	FalseAlarm      float64 `json:"false_alarm"`
	Correct         float64 `json:"correct"`
}

func (h *HTTP) Score(ctx context.Context, url string, in DERReq) (*DERResp, error) {
	b, err := json.Marshal(in)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url+"/der", bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.c.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("der %s: %s", resp.Status, errBody(resp.Body))
	}

	var out DERResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("der decode: %w", err)
	}
	return &out, nil
}
