// File: pkg/client/client.go
// Package client is a small Go client for the onboarding endpoint. It prepares
// the multipart submission, including an optional client-side crop of the
// profile picture, and surfaces the server's message and redirect hint.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// MaxImageBytes is the largest profile picture blob the client will submit.
// Larger blobs are rejected locally; no request is sent.
const MaxImageBytes = 1 << 20

// ErrImageTooLarge is returned when the (possibly cropped) image blob exceeds
// MaxImageBytes.
var ErrImageTooLarge = errors.New("client: profile image exceeds 1 MiB after processing")

// OnboardingForm carries the profile fields for a submission.
type OnboardingForm struct {
	FirstName string
	LastName  string
	Bio       string
	DOB       string
	Country   string
}

// Image is a profile picture to attach to the submission. When Crop is
// non-nil the region is extracted into a fresh blob re-encoded in the
// original format before the size gate is applied.
type Image struct {
	Data        []byte
	FileName    string
	ContentType string
	Crop        *image.Rectangle
}

// Result is the server's envelope for an onboarding submission.
type Result struct {
	StatusCode int    `json:"-"`
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	Action     string `json:"action,omitempty"`
	URL        string `json:"url,omitempty"`
}

// Redirect reports whether the server asked the caller to drop its session
// and route to the returned URL.
func (r *Result) Redirect() bool {
	return r.Action == "redirect" && r.URL != ""
}

// Client talks to the onboarding endpoint of a single backend instance.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New creates a client for the given base URL authenticating with the given
// bearer token.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// NewWithHTTPClient is New with a caller-supplied http.Client.
func NewWithHTTPClient(baseURL, token string, hc *http.Client) *Client {
	return &Client{baseURL: baseURL, token: token, httpClient: hc}
}

// SubmitOnboarding posts the form, with img attached when non-nil, to the
// onboarding endpoint. Image processing and the size gate run before any
// request is made. The returned Result is populated for every response the
// server answers with an envelope, including failures; err covers local
// processing and transport problems only.
func (c *Client) SubmitOnboarding(ctx context.Context, form OnboardingForm, img *Image) (*Result, error) {
	var blob []byte
	if img != nil {
		var err error
		blob, err = prepareImage(img)
		if err != nil {
			return nil, err
		}
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fields := map[string]string{
		"firstName": form.FirstName,
		"lastName":  form.LastName,
		"bio":       form.Bio,
		"dob":       form.DOB,
		"country":   form.Country,
	}
	for name, value := range fields {
		if err := mw.WriteField(name, value); err != nil {
			return nil, fmt.Errorf("client: writing form field %s: %w", name, err)
		}
	}
	if img != nil {
		fw, err := mw.CreateFormFile("profileImage", img.FileName)
		if err != nil {
			return nil, fmt.Errorf("client: attaching image: %w", err)
		}
		if _, err := fw.Write(blob); err != nil {
			return nil, fmt.Errorf("client: attaching image: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("client: finalizing multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/account/onboarding-user", &body)
	if err != nil {
		return nil, fmt.Errorf("client: building request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("client: sending request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("client: reading response: %w", err)
	}

	result := &Result{StatusCode: resp.StatusCode}
	if err := json.Unmarshal(raw, result); err != nil {
		return nil, fmt.Errorf("client: unexpected response (status %d): %w", resp.StatusCode, err)
	}
	return result, nil
}

// prepareImage applies the optional crop and enforces the size gate.
func prepareImage(img *Image) ([]byte, error) {
	blob := img.Data
	if img.Crop != nil {
		cropped, err := cropImage(img.Data, *img.Crop)
		if err != nil {
			return nil, err
		}
		blob = cropped
	}
	if len(blob) > MaxImageBytes {
		return nil, ErrImageTooLarge
	}
	return blob, nil
}

// cropImage extracts the pixel region into a new blob re-encoded in the
// source format. Only JPEG and PNG are handled; the server rejects anything
// that is not an image anyway.
func cropImage(data []byte, region image.Rectangle) ([]byte, error) {
	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("client: decoding image: %w", err)
	}
	if !region.In(src.Bounds()) {
		return nil, fmt.Errorf("client: crop region %v outside image bounds %v", region, src.Bounds())
	}

	dst := image.NewRGBA(image.Rect(0, 0, region.Dx(), region.Dy()))
	draw.Draw(dst, dst.Bounds(), src, region.Min, draw.Src)

	var out bytes.Buffer
	switch format {
	case "png":
		err = png.Encode(&out, dst)
	default:
		err = jpeg.Encode(&out, dst, &jpeg.Options{Quality: 90})
	}
	if err != nil {
		return nil, fmt.Errorf("client: re-encoding cropped image: %w", err)
	}
	return out.Bytes(), nil
}
