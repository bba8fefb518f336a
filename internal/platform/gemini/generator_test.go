package gemini

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamyzabawki/descgen-api/internal/generation"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

// stubCaller plays back one result per call, repeating the last entry when
// the calls outnumber the script.
type stubCaller struct {
	calls int
	texts []string
	errs  []error
}

func (s *stubCaller) generate(_ context.Context, _ string) (string, error) {
	i := s.calls
	if i >= len(s.texts) {
		i = len(s.texts) - 1
	}
	s.calls++
	return s.texts[i], s.errs[i]
}

func newStubGenerator(caller modelCaller, retry generation.RetryPolicy) *Generator {
	return &Generator{
		caller: caller,
		retry:  retry.Normalize(),
		logger: testLogger(),
	}
}

func TestNewGeneratorRequiresAPIKey(t *testing.T) {
	_, err := NewGenerator(context.Background(), "", "gemini-2.0-flash", generation.NoDelay(3), testLogger())

	require.Error(t, err)
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)
}

func TestNewGeneratorRequiresModel(t *testing.T) {
	_, err := NewGenerator(context.Background(), "key", "", generation.NoDelay(3), testLogger())

	require.Error(t, err)
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)
}

func TestGenerateStripsCodeFence(t *testing.T) {
	caller := &stubCaller{
		texts: []string{"```html\n<div>opis</div>\n```"},
		errs:  []error{nil},
	}
	g := newStubGenerator(caller, generation.NoDelay(3))

	html, err := g.Generate(context.Background(), "prompt")

	require.NoError(t, err)
	assert.Equal(t, "<div>opis</div>", html)
	assert.Equal(t, 1, caller.calls)
}

func TestGenerateEmptyResponseIsTerminal(t *testing.T) {
	caller := &stubCaller{
		texts: []string{""},
		errs:  []error{nil},
	}
	g := newStubGenerator(caller, generation.NoDelay(3))

	_, err := g.Generate(context.Background(), "prompt")

	require.Error(t, err)
	assert.ErrorIs(t, err, generation.ErrInvalidResponse)
	assert.Equal(t, 1, caller.calls, "an answered-but-empty response must not be retried")
}

func TestGenerateRetriesUntilExhausted(t *testing.T) {
	caller := &stubCaller{
		texts: []string{""},
		errs:  []error{errors.New("upstream unavailable")},
	}
	g := newStubGenerator(caller, generation.NoDelay(3))

	_, err := g.Generate(context.Background(), "prompt")

	require.Error(t, err)
	assert.ErrorIs(t, err, generation.ErrNoResponse)
	assert.Contains(t, err.Error(), "after 3 attempts")
	assert.Equal(t, 3, caller.calls)
}

func TestGenerateRecoversAfterTransientFailure(t *testing.T) {
	caller := &stubCaller{
		texts: []string{"", "", "<p>ok</p>"},
		errs:  []error{errors.New("boom"), errors.New("boom"), nil},
	}
	g := newStubGenerator(caller, generation.NoDelay(3))

	html, err := g.Generate(context.Background(), "prompt")

	require.NoError(t, err)
	assert.Equal(t, "<p>ok</p>", html)
	assert.Equal(t, 3, caller.calls)
}

func TestGenerateHonorsContextDuringDelay(t *testing.T) {
	caller := &stubCaller{
		texts: []string{""},
		errs:  []error{errors.New("boom")},
	}
	g := newStubGenerator(caller, generation.FixedDelay(3, time.Minute))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := g.Generate(ctx, "prompt")

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, caller.calls)
}
