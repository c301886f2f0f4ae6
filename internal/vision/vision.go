// Mood Post - Image Mood Music Recommendation Bot
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodpost

// Package vision is a client for the Google Cloud Vision images:annotate
// endpoint. It requests labels, faces and image properties for one image
// and maps the answer onto mood.VisionResult.
package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/moodpost/internal/bot"
	"github.com/tomtom215/moodpost/internal/breaker"
	"github.com/tomtom215/moodpost/internal/httpclient"
	"github.com/tomtom215/moodpost/internal/metrics"
	"github.com/tomtom215/moodpost/internal/mood"
)

const (
	// DefaultURL is the annotate endpoint; the API key is sent as ?key=.
	DefaultURL = "https://vision.googleapis.com/v1/images:annotate"

	DefaultMaxLabels = 10
	maxFaces         = 5
	maxColors        = 10
)

// ErrEmptyResponse is returned when the API answers without a result.
var ErrEmptyResponse = errors.New("vision: empty response")

// Config configures a Client.
type Config struct {
	APIKey     string
	URL        string
	MaxLabels  int
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client implements bot.Vision.
type Client struct {
	apiKey     string
	endpoint   string
	maxLabels  int
	httpClient *http.Client
	breaker    *breaker.Breaker
}

// NewClient creates a Client. The API key is required.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("vision: API key is required")
	}
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	if cfg.MaxLabels <= 0 {
		cfg.MaxLabels = DefaultMaxLabels
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = httpclient.New(cfg.Timeout)
	}
	return &Client{
		apiKey:     cfg.APIKey,
		endpoint:   cfg.URL,
		maxLabels:  cfg.MaxLabels,
		httpClient: cfg.HTTPClient,
		breaker:    breaker.New(bot.CollaboratorVision, breaker.Settings{IsSuccessful: httpclient.ClientErrorsSucceed}),
	}, nil
}

type feature struct {
	Type       string `json:"type"`
	MaxResults int    `json:"maxResults"`
}

type imageContent struct {
	Content string `json:"content"`
}

type annotateRequest struct {
	Image    imageContent `json:"image"`
	Features []feature    `json:"features"`
}

type batchRequest struct {
	Requests []annotateRequest `json:"requests"`
}

type labelAnnotation struct {
	Description string  `json:"description"`
	Score       float64 `json:"score"`
}

type faceAnnotation struct {
	JoyLikelihood    string `json:"joyLikelihood"`
	SorrowLikelihood string `json:"sorrowLikelihood"`
}

type colorInfo struct {
	Color struct {
		Red   float64 `json:"red"`
		Green float64 `json:"green"`
		Blue  float64 `json:"blue"`
	} `json:"color"`
	Score         float64 `json:"score"`
	PixelFraction float64 `json:"pixelFraction"`
}

type imageProperties struct {
	DominantColors struct {
		Colors []colorInfo `json:"colors"`
	} `json:"dominantColors"`
}

type status struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type annotateResponse struct {
	LabelAnnotations          []labelAnnotation `json:"labelAnnotations"`
	FaceAnnotations           []faceAnnotation  `json:"faceAnnotations"`
	ImagePropertiesAnnotation *imageProperties  `json:"imagePropertiesAnnotation"`
	Error                     *status           `json:"error"`
}

type batchResponse struct {
	Responses []annotateResponse `json:"responses"`
}

// Analyze annotates image and returns the parts the mood scorer reads.
func (c *Client) Analyze(ctx context.Context, image []byte) (mood.VisionResult, error) {
	if len(image) == 0 {
		return mood.VisionResult{}, errors.New("vision: empty image")
	}
	resp, err := breaker.Do(c.breaker, func() (annotateResponse, error) {
		return c.annotate(ctx, image)
	})
	if err != nil {
		return mood.VisionResult{}, err
	}
	return toVisionResult(resp), nil
}

func (c *Client) annotate(ctx context.Context, image []byte) (_ annotateResponse, err error) {
	start := time.Now()
	defer func() { metrics.RecordCollaboratorRequest(bot.CollaboratorVision, time.Since(start), err) }()

	body, err := json.Marshal(batchRequest{Requests: []annotateRequest{{
		Image: imageContent{Content: base64.StdEncoding.EncodeToString(image)},
		Features: []feature{
			{Type: "LABEL_DETECTION", MaxResults: c.maxLabels},
			{Type: "FACE_DETECTION", MaxResults: maxFaces},
			{Type: "IMAGE_PROPERTIES", MaxResults: maxColors},
		},
	}}})
	if err != nil {
		return annotateResponse{}, fmt.Errorf("marshal request: %w", err)
	}

	reqURL := c.endpoint + "?" + url.Values{"key": {c.apiKey}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return annotateResponse{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// The transport error carries the URL, key included.
		var uerr *url.Error
		if errors.As(err, &uerr) {
			uerr.URL = c.endpoint
		}
		return annotateResponse{}, fmt.Errorf("annotate: %w", err)
	}
	defer resp.Body.Close()

	if err := httpclient.CheckStatus(bot.CollaboratorVision, resp); err != nil {
		return annotateResponse{}, err
	}

	var batch batchResponse
	if err := json.NewDecoder(resp.Body).Decode(&batch); err != nil {
		return annotateResponse{}, fmt.Errorf("decode response: %w", err)
	}
	if len(batch.Responses) == 0 {
		return annotateResponse{}, ErrEmptyResponse
	}
	result := batch.Responses[0]
	if result.Error != nil && result.Error.Code != 0 {
		return annotateResponse{}, fmt.Errorf("vision: annotate failed: code %d: %s", result.Error.Code, result.Error.Message)
	}
	return result, nil
}

func toVisionResult(r annotateResponse) mood.VisionResult {
	var out mood.VisionResult

	if len(r.LabelAnnotations) > 0 {
		out.Labels = make([]mood.Label, len(r.LabelAnnotations))
		for i, l := range r.LabelAnnotations {
			out.Labels[i] = mood.Label{Description: l.Description, Score: l.Score}
		}
	}
	if len(r.FaceAnnotations) > 0 {
		out.Faces = make([]mood.Face, len(r.FaceAnnotations))
		for i, f := range r.FaceAnnotations {
			out.Faces[i] = mood.Face{Joy: mood.Likelihood(f.JoyLikelihood), Sorrow: mood.Likelihood(f.SorrowLikelihood)}
		}
	}
	if r.ImagePropertiesAnnotation != nil && len(r.ImagePropertiesAnnotation.DominantColors.Colors) > 0 {
		c := r.ImagePropertiesAnnotation.DominantColors.Colors[0].Color
		out.DominantColor = &mood.Color{Red: c.Red, Green: c.Green, Blue: c.Blue}
	}
	return out
}
