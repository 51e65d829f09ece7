package ai

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sayantan007pal/Customer-Support-app-using-mindsdb/internal/models"
)

type fakeClassifier struct {
	calls int
	out   models.QueryClassification
	err   error
}

func (f *fakeClassifier) Classify(ctx context.Context, message string) (models.QueryClassification, error) {
	f.calls++
	return f.out, f.err
}

type mapCache struct {
	data map[string][]byte
	err  error
}

func newMapCache() *mapCache { return &mapCache{data: map[string][]byte{}} }

func (m *mapCache) GetJSON(ctx context.Context, key string, dst any) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	b, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (m *mapCache) SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error {
	if m.err != nil {
		return m.err
	}
	b, err := json.Marshal(val)
	if err != nil {
		return err
	}
	m.data[key] = b
	return nil
}

func (m *mapCache) Del(ctx context.Context, keys ...string) error { return m.err }

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestCachedClassifier_Memoizes(t *testing.T) {
	next := &fakeClassifier{out: models.QueryClassification{Category: "billing", Confidence: 0.9}}
	cc := NewCachedClassifier(next, newMapCache(), quietLogger())

	for i := 0; i < 3; i++ {
		out, err := cc.Classify(context.Background(), "Why was I charged twice?")
		if err != nil {
			t.Fatalf("classify: %v", err)
		}
		if out.Category != "billing" {
			t.Fatalf("category = %q", out.Category)
		}
	}
	if next.calls != 1 {
		t.Errorf("underlying classifier called %d times, want 1", next.calls)
	}
}

func TestCachedClassifier_KeyNormalization(t *testing.T) {
	next := &fakeClassifier{out: models.QueryClassification{Category: "general", Confidence: 0.8}}
	cc := NewCachedClassifier(next, newMapCache(), quietLogger())

	_, _ = cc.Classify(context.Background(), "Hello There")
	_, _ = cc.Classify(context.Background(), "  hello there  ")

	if next.calls != 1 {
		t.Errorf("case/space variants should share a key, got %d calls", next.calls)
	}
}

func TestCachedClassifier_CacheFailureFallsThrough(t *testing.T) {
	next := &fakeClassifier{out: models.QueryClassification{Category: "returns", Confidence: 0.7}}
	broken := newMapCache()
	broken.err = errors.New("redis down")
	cc := NewCachedClassifier(next, broken, quietLogger())

	out, err := cc.Classify(context.Background(), "return my order")
	if err != nil {
		t.Fatalf("cache failure must not fail classification: %v", err)
	}
	if out.Category != "returns" {
		t.Errorf("category = %q", out.Category)
	}
}

func TestCachedClassifier_ErrorNotCached(t *testing.T) {
	next := &fakeClassifier{err: errors.New("model unavailable")}
	cc := NewCachedClassifier(next, newMapCache(), quietLogger())

	if _, err := cc.Classify(context.Background(), "hi"); err == nil {
		t.Fatal("expected error")
	}

	next.err = nil
	next.out = models.QueryClassification{Category: "general", Confidence: 0.9}
	out, err := cc.Classify(context.Background(), "hi")
	if err != nil {
		t.Fatalf("classify after recovery: %v", err)
	}
	if out.Category != "general" {
		t.Errorf("category = %q", out.Category)
	}
}

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"Here you go:\n{\"a\":1}\ndone", `{"a":1}`},
	}
	for _, tc := range cases {
		if got := string(extractJSON(tc.in)); got != tc.want {
			t.Errorf("extractJSON(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
