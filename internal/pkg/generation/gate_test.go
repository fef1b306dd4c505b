package generation

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cordial-ai/cordial/internal/pkg/ledger"
)

// fakeGenerator returns canned output or errors without any network calls
type fakeGenerator struct {
	text  string
	err   error
	calls int

	// block, when set, waits for the context to be cancelled
	block bool
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	f.calls++
	if f.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

func testGateConfig() GateConfig {
	return GateConfig{
		Timeout:     50 * time.Millisecond,
		MaxTokens:   300,
		Temperature: 0.7,
	}
}

func newTestGate(gen Generator) (*Gate, *ledger.Ledger) {
	l := ledger.New(ledger.NewMemoryStore(), ledger.Config{
		DailyGrantSize:  5,
		SignupGrantSize: 10,
		ResetHourUTC:    9,
	})
	return NewGate(l, gen, testGateConfig()), l
}

func TestRewriteMessageDebitsOneCredit(t *testing.T) {
	gen := &fakeGenerator{text: "1. Hi there"}
	gate, l := newTestGate(gen)

	out, err := gate.RewriteMessage(context.Background(), "user@example.com", "hi", "default")
	require.NoError(t, err)
	assert.Equal(t, "1. Hi there", out.Text)
	assert.Equal(t, int64(9), out.CreditsRemaining)
	assert.Equal(t, 1, gen.calls)

	balance, err := l.Balance(context.Background(), "user@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(9), balance)
}

func TestGenerateReplyDebitsOneCredit(t *testing.T) {
	gen := &fakeGenerator{text: "Sounds good, see you at 3."}
	gate, l := newTestGate(gen)

	out, err := gate.GenerateReply(context.Background(), "user@example.com", "Can we move it?", "Meeting", "friendly")
	require.NoError(t, err)
	assert.Equal(t, "Sounds good, see you at 3.", out.Text)
	assert.Equal(t, int64(9), out.CreditsRemaining)

	balance, err := l.Balance(context.Background(), "user@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(9), balance)
}

func TestInvalidInputNeverDebits(t *testing.T) {
	gen := &fakeGenerator{text: "unused"}
	gate, l := newTestGate(gen)

	_, err := gate.RewriteMessage(context.Background(), "user@example.com", "   ", "default")
	assert.ErrorIs(t, err, ErrInvalidInput)

	tooLong := strings.Repeat("a", MaxMessageLen+1)
	_, err = gate.RewriteMessage(context.Background(), "user@example.com", tooLong, "default")
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.Equal(t, 0, gen.calls, "generator must not run for invalid input")

	balance, err := l.Balance(context.Background(), "user@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(10), balance, "no credit may be consumed")
}

func TestInsufficientCreditsBlocksGeneration(t *testing.T) {
	gen := &fakeGenerator{text: "unused"}
	l := ledger.New(ledger.NewMemoryStore(), ledger.Config{
		DailyGrantSize:  5,
		SignupGrantSize: 0,
		ResetHourUTC:    9,
	})
	gate := NewGate(l, gen, testGateConfig())

	_, err := gate.RewriteMessage(context.Background(), "user@example.com", "hi", "default")
	assert.ErrorIs(t, err, ledger.ErrInsufficientCredits)
	assert.Equal(t, 0, gen.calls)
}

func TestFailedGenerationRefunds(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("upstream 500")}
	gate, l := newTestGate(gen)

	out, err := gate.RewriteMessage(context.Background(), "user@example.com", "hi", "default")
	assert.ErrorIs(t, err, ErrGenerationFailed)
	assert.Equal(t, int64(10), out.CreditsRemaining, "refunded balance is reported")

	balance, berr := l.Balance(context.Background(), "user@example.com")
	require.NoError(t, berr)
	assert.Equal(t, int64(10), balance, "failed generation must not cost a credit")
}

func TestTimedOutGenerationRefunds(t *testing.T) {
	gen := &fakeGenerator{block: true}
	gate, l := newTestGate(gen)

	out, err := gate.RewriteMessage(context.Background(), "user@example.com", "hi", "default")
	assert.ErrorIs(t, err, ErrGenerationTimeout)
	assert.Equal(t, int64(10), out.CreditsRemaining)

	balance, berr := l.Balance(context.Background(), "user@example.com")
	require.NoError(t, berr)
	assert.Equal(t, int64(10), balance)
}
