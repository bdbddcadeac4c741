package tts

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/scenecast/scenecast/internal/mederr"
)

type fakeSynthesizer struct {
	failures int
	calls    int
	err      error
}

func (f *fakeSynthesizer) Synthesize(ctx context.Context, text, language, outPath string) (Result, error) {
	f.calls++
	if f.calls <= f.failures {
		if f.err != nil {
			return Result{}, f.err
		}
		return Result{}, errors.New("transient failure")
	}
	return Result{AudioPath: outPath, DurationSeconds: 2.5}, nil
}

func TestSynthesizeWithRetryRecovers(t *testing.T) {
	fake := &fakeSynthesizer{failures: 2}
	res, err := SynthesizeWithRetry(context.Background(), fake, "hello", "en", "out.mp3")
	if err != nil {
		t.Fatalf("retry should recover from transient failures: %v", err)
	}
	if fake.calls != 3 {
		t.Errorf("got %d attempts, want 3", fake.calls)
	}
	if res.DurationSeconds != 2.5 {
		t.Errorf("unexpected result: %+v", res)
	}
}

func TestSynthesizeWithRetryExhaustion(t *testing.T) {
	fake := &fakeSynthesizer{failures: 100}
	_, err := SynthesizeWithRetry(context.Background(), fake, "hello", "en", "out.mp3")
	if err == nil {
		t.Fatal("exhausted retries should fail")
	}
	var procErr *mederr.ProcessError
	if !errors.As(err, &procErr) || procErr.Kind != mederr.KindSynthesis {
		t.Errorf("error %T (%v), want synthesis ProcessError", err, err)
	}
	if fake.calls != 3 {
		t.Errorf("got %d attempts, want 3", fake.calls)
	}
}

func TestSynthesizeWithRetryDoesNotRetryTimeouts(t *testing.T) {
	fake := &fakeSynthesizer{
		failures: 100,
		err:      mederr.ExternalProcessTimeout("synthesize", errors.New("deadline")),
	}
	_, err := SynthesizeWithRetry(context.Background(), fake, "hello", "en", "out.mp3")
	if err == nil {
		t.Fatal("timeout should surface")
	}
	var procErr *mederr.ProcessError
	if !errors.As(err, &procErr) || procErr.Kind != mederr.KindTimeout {
		t.Errorf("error %T (%v), want timeout ProcessError", err, err)
	}
	if fake.calls != 1 {
		t.Errorf("timeouts must not be retried, got %d attempts", fake.calls)
	}
}
