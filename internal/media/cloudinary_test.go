package media

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"vape-shop/internal/config"

	"go.uber.org/zap"
)

func TestPublicIDFromURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{
			name: "standard delivery url",
			url:  "https://res.cloudinary.com/demo/image/upload/v1699999999/abc123.jpg",
			want: "abc123",
		},
		{
			name: "segment without extension",
			url:  "https://res.cloudinary.com/demo/image/upload/v1699999999/abc123",
			want: "abc123",
		},
		{
			name: "extension with multiple dots keeps only the first part",
			url:  "https://res.cloudinary.com/demo/image/upload/v1/photo.min.png",
			want: "photo",
		},
		{
			name:    "too few segments",
			url:     "https://res.cloudinary.com/demo/image.jpg",
			wantErr: true,
		},
		{
			name:    "empty public id segment",
			url:     "https://res.cloudinary.com/demo/image/upload/v1/.jpg",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PublicIDFromURL(tt.url)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("PublicIDFromURL(%q) = %q, want error", tt.url, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("PublicIDFromURL(%q) returned error: %v", tt.url, err)
			}
			if got != tt.want {
				t.Errorf("PublicIDFromURL(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func newTestDeleter(t *testing.T, handler http.HandlerFunc) *CloudinaryDeleter {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	logger, _ := zap.NewDevelopment()
	d := NewCloudinaryDeleter(config.CloudinaryConfig{
		CloudName: "demo",
		APIKey:    "key",
		APISecret: "secret",
	}, logger)
	d.baseURL = srv.URL
	return d
}

func TestCloudinaryDeleter_DeleteImages(t *testing.T) {
	var gotMethod, gotPath string
	var gotIDs []string
	var gotUser, gotPass string

	d := newTestDeleter(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotUser, gotPass, _ = r.BasicAuth()
		// ParseForm only reads the body for POST/PUT/PATCH, so parse the
		// DELETE body directly.
		body, _ := io.ReadAll(r.Body)
		form, _ := url.ParseQuery(string(body))
		gotIDs = form["public_ids[]"]

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"deleted":{"img1":"deleted","img2":"deleted"}}`))
	})

	result := d.DeleteImages(context.Background(),
		"https://res.cloudinary.com/demo/image/upload/v1/img1.jpg",
		"https://res.cloudinary.com/demo/image/upload/v1/img2.png",
	)

	if !result.Ok() {
		t.Fatalf("deletion should succeed, result %+v", result)
	}
	if gotMethod != http.MethodDelete {
		t.Errorf("method = %s, want DELETE", gotMethod)
	}
	if gotPath != "/demo/resources/image/upload" {
		t.Errorf("path = %s, want /demo/resources/image/upload", gotPath)
	}
	if gotUser != "key" || gotPass != "secret" {
		t.Errorf("basic auth = %s:%s, want key:secret", gotUser, gotPass)
	}
	if len(gotIDs) != 2 || gotIDs[0] != "img1" || gotIDs[1] != "img2" {
		t.Errorf("submitted public ids = %v, want [img1 img2] in one batched call", gotIDs)
	}
	if result.Deleted["img1"] != "deleted" {
		t.Errorf("per-asset outcome missing: %v", result.Deleted)
	}
}

func TestCloudinaryDeleter_RejectedCallIsCapturedNotPropagated(t *testing.T) {
	d := newTestDeleter(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"invalid credentials"}}`))
	})

	result := d.DeleteImages(context.Background(),
		"https://res.cloudinary.com/demo/image/upload/v1/img1.jpg")

	if result.Ok() {
		t.Fatal("rejected call should not report Ok")
	}
	if result.Err == nil {
		t.Fatal("rejected call should carry its cause")
	}
}

func TestCloudinaryDeleter_UndeletableRefsAreReported(t *testing.T) {
	called := false
	d := newTestDeleter(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.Write([]byte(`{"deleted":{"img1":"deleted"}}`))
	})

	result := d.DeleteImages(context.Background(),
		"https://res.cloudinary.com/demo/image/upload/v1/img1.jpg",
		"not-a-delivery-url",
	)

	if len(result.Failed) != 1 || result.Failed[0] != "not-a-delivery-url" {
		t.Errorf("bad reference should be reported in Failed, got %v", result.Failed)
	}
	if !called {
		t.Error("the valid reference should still be deleted")
	}
	if result.Ok() {
		t.Error("a partially failed batch should not report Ok")
	}
}

func TestCloudinaryDeleter_NoValidRefsSkipsTheCall(t *testing.T) {
	d := newTestDeleter(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no deletion call should be issued")
	})

	result := d.DeleteImages(context.Background(), "bad")
	if result.Err != nil {
		t.Errorf("skipped call should not set Err, got %v", result.Err)
	}

	// Unreachable host must surface as a captured error, not a panic
	d.baseURL = "http://127.0.0.1:0"
	d.client = &http.Client{Timeout: time.Second}
	result = d.DeleteImages(context.Background(),
		"https://res.cloudinary.com/demo/image/upload/v1/img1.jpg")
	if result.Err == nil {
		t.Error("unreachable host should be captured in the result")
	}
}
