package ai

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sayantan007pal/Customer-Support-app-using-mindsdb/internal/cache"
	"github.com/sayantan007pal/Customer-Support-app-using-mindsdb/internal/models"
)

const classificationTTL = time.Hour

// CachedClassifier memoizes classifications per normalized message text.
// Cache failures fall through to the underlying classifier.
type CachedClassifier struct {
	next Classifier
	c    cache.Cache
	log  *logrus.Logger
}

func NewCachedClassifier(next Classifier, c cache.Cache, log *logrus.Logger) *CachedClassifier {
	return &CachedClassifier{next: next, c: c, log: log}
}

func (cc *CachedClassifier) Classify(ctx context.Context, message string) (models.QueryClassification, error) {
	key := classificationKey(message)

	var cached models.QueryClassification
	hit, err := cc.c.GetJSON(ctx, key, &cached)
	if err != nil {
		cc.log.WithError(err).Warn("classification cache read failed")
	}
	if hit {
		return cached, nil
	}

	out, err := cc.next.Classify(ctx, message)
	if err != nil {
		return models.QueryClassification{}, err
	}

	if err := cc.c.SetJSON(ctx, key, out, classificationTTL); err != nil {
		cc.log.WithError(err).Warn("classification cache write failed")
	}
	return out, nil
}

func classificationKey(message string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(message))))
	return "classify:" + hex.EncodeToString(sum[:16])
}
