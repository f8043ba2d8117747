package media

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"vape-shop/internal/config"

	"go.uber.org/zap"
)

const defaultBaseURL = "https://api.cloudinary.com/v1_1"

// DeletionResult reports the outcome of one batched image deletion. A failed
// deletion never aborts the caller's primary mutation; the caller inspects
// the result and decides how to proceed.
type DeletionResult struct {
	// PublicIDs are the asset identifiers submitted for deletion.
	PublicIDs []string
	// Deleted maps each public ID to the store's per-asset outcome.
	Deleted map[string]string
	// Failed lists references whose public ID could not be derived.
	Failed []string
	// Err is set when the batched deletion call itself failed.
	Err error
}

// Ok reports whether every submitted reference was accepted for deletion.
func (r DeletionResult) Ok() bool {
	return r.Err == nil && len(r.Failed) == 0
}

// Deleter removes externally hosted image assets
type Deleter interface {
	DeleteImages(ctx context.Context, refs ...string) DeletionResult
}

// PublicIDFromURL derives the asset's storage identifier from a delivery URL.
//
// Format contract: delivery URLs look like
//
//	https://res.cloudinary.com/<cloud>/image/upload/<version>/<public_id>.<ext>
//
// so the public ID is the 8th slash-delimited segment with its file extension
// stripped. This position-dependent convention is the media host's URL scheme
// and must not change without coordinating with it.
func PublicIDFromURL(rawURL string) (string, error) {
	parts := strings.Split(rawURL, "/")
	if len(parts) < 8 {
		return "", fmt.Errorf("image url %q has no public id segment", rawURL)
	}

	publicID := strings.SplitN(parts[7], ".", 2)[0]
	if publicID == "" {
		return "", fmt.Errorf("image url %q has an empty public id segment", rawURL)
	}

	return publicID, nil
}

// CloudinaryDeleter deletes uploaded image assets through the Cloudinary
// admin API.
type CloudinaryDeleter struct {
	cfg     config.CloudinaryConfig
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewCloudinaryDeleter creates a new CloudinaryDeleter
func NewCloudinaryDeleter(cfg config.CloudinaryConfig, logger *zap.Logger) *CloudinaryDeleter {
	return &CloudinaryDeleter{
		cfg:     cfg,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
		logger:  logger,
	}
}

// DeleteImages derives a public ID for each reference and issues one batched
// deletion call for all of them. Call failures are captured in the result,
// never propagated as errors.
func (d *CloudinaryDeleter) DeleteImages(ctx context.Context, refs ...string) DeletionResult {
	result := DeletionResult{}

	for _, ref := range refs {
		publicID, err := PublicIDFromURL(ref)
		if err != nil {
			d.logger.Warn("Skipping undeletable image reference", zap.String("ref", ref), zap.Error(err))
			result.Failed = append(result.Failed, ref)
			continue
		}
		result.PublicIDs = append(result.PublicIDs, publicID)
	}

	if len(result.PublicIDs) == 0 {
		return result
	}

	deleted, err := d.deleteResources(ctx, result.PublicIDs)
	if err != nil {
		result.Err = err
		return result
	}

	result.Deleted = deleted
	return result
}

func (d *CloudinaryDeleter) deleteResources(ctx context.Context, publicIDs []string) (map[string]string, error) {
	endpoint := fmt.Sprintf("%s/%s/resources/image/upload", d.baseURL, d.cfg.CloudName)

	form := url.Values{}
	for _, id := range publicIDs {
		form.Add("public_ids[]", id)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build deletion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(d.cfg.APIKey, d.cfg.APISecret)

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("image deletion call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("image deletion rejected with status %d: %s", resp.StatusCode, body)
	}

	var payload struct {
		Deleted map[string]string `json:"deleted"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode deletion response: %w", err)
	}

	return payload.Deleted, nil
}
