// File: pkg/client/client_test.go
package client

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeTestPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestSubmitOnboarding_Success(t *testing.T) {
	var gotAuth string
	var gotFields map[string]string
	var gotFile bool

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/account/onboarding-user", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")

		require.NoError(t, r.ParseMultipartForm(32<<20))
		gotFields = map[string]string{}
		for _, name := range []string{"firstName", "lastName", "bio", "dob", "country"} {
			gotFields[name] = r.FormValue(name)
		}
		_, _, err := r.FormFile("profileImage")
		gotFile = err == nil

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"success":true,"message":"User details saved successfully."}`))
	}))
	defer server.Close()

	c := New(server.URL, "token-123")
	result, err := c.SubmitOnboarding(context.Background(), OnboardingForm{
		FirstName: "Ada",
		Bio:       "Engineer.",
		Country:   "UK",
	}, &Image{Data: encodeTestPNG(t, 8, 8), FileName: "me.png", ContentType: "image/png"})

	require.NoError(t, err)
	assert.Equal(t, "Bearer token-123", gotAuth)
	assert.Equal(t, "Ada", gotFields["firstName"])
	assert.Equal(t, "Engineer.", gotFields["bio"])
	assert.Equal(t, "UK", gotFields["country"])
	assert.True(t, gotFile)
	assert.True(t, result.Success)
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Equal(t, "User details saved successfully.", result.Message)
	assert.False(t, result.Redirect())
}

func TestSubmitOnboarding_OversizeImageRejectedLocally(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := New(server.URL, "token-123")
	result, err := c.SubmitOnboarding(context.Background(), OnboardingForm{
		FirstName: "Ada",
		Bio:       "Engineer.",
		Country:   "UK",
	}, &Image{Data: make([]byte, MaxImageBytes+1), FileName: "big.jpg", ContentType: "image/jpeg"})

	require.ErrorIs(t, err, ErrImageTooLarge)
	assert.Nil(t, result)
	assert.Zero(t, requests, "oversize image must be rejected before any request is sent")
}

func TestSubmitOnboarding_RedirectAction(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"success":false,"message":"User not found. Redirecting to signup.","action":"redirect","url":"/sign-up"}`))
	}))
	defer server.Close()

	c := New(server.URL, "token-123")
	result, err := c.SubmitOnboarding(context.Background(), OnboardingForm{
		FirstName: "Ada",
		Bio:       "Engineer.",
		Country:   "UK",
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, result.StatusCode)
	assert.False(t, result.Success)
	assert.True(t, result.Redirect())
	assert.Equal(t, "/sign-up", result.URL)
}

func TestCropImage(t *testing.T) {
	data := encodeTestPNG(t, 32, 32)
	region := image.Rect(4, 4, 20, 28)

	cropped, err := cropImage(data, region)
	require.NoError(t, err)

	decoded, format, err := image.Decode(bytes.NewReader(cropped))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 16, decoded.Bounds().Dx())
	assert.Equal(t, 24, decoded.Bounds().Dy())
}

func TestCropImage_RegionOutsideBounds(t *testing.T) {
	data := encodeTestPNG(t, 16, 16)

	_, err := cropImage(data, image.Rect(0, 0, 64, 64))
	require.Error(t, err)
}
