package service

import (
	"context"

	"vape-shop/internal/media"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// Payload keys that carry replaced-image references on update routes. They
// are consumed by the cleanup cascade and stripped before the write.
var oldImageKeys = []string{"oldImage", "oldImageUrl", "oldImages"}

// extractOldImageRefs pulls replaced-image references out of an update
// payload, normalizing a single reference and a collection to one slice.
// The consumed keys are removed from the payload.
func extractOldImageRefs(fields bson.M) []string {
	refs := []string{}

	for _, key := range oldImageKeys {
		value, ok := fields[key]
		if !ok {
			continue
		}

		switch v := value.(type) {
		case string:
			if v != "" {
				refs = append(refs, v)
			}
		case []interface{}:
			for _, item := range v {
				if s, ok := item.(string); ok && s != "" {
					refs = append(refs, s)
				}
			}
		case []string:
			refs = append(refs, v...)
		}

		delete(fields, key)
	}

	return refs
}

// cleanupImages runs one deletion call and logs the outcome. Cleanup failure
// is non-fatal to the record mutation that follows; the orphaned asset is an
// accepted inconsistency.
func cleanupImages(ctx context.Context, deleter media.Deleter, logger *zap.Logger, refs ...string) {
	if len(refs) == 0 {
		return
	}

	result := deleter.DeleteImages(ctx, refs...)
	if !result.Ok() {
		logger.Warn("Image cleanup did not fully succeed",
			zap.Strings("failed_refs", result.Failed),
			zap.Error(result.Err),
		)
		return
	}

	logger.Debug("Image cleanup completed", zap.Strings("public_ids", result.PublicIDs))
}
