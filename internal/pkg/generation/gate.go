package generation

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/cordial-ai/cordial/internal/pkg/env"
	"github.com/cordial-ai/cordial/internal/pkg/ledger"
)

var (
	// ErrInvalidInput rejects malformed requests before any ledger call,
	// so they never consume a credit.
	ErrInvalidInput = errors.New("invalid input")
	// ErrGenerationTimeout is surfaced when the generator exceeds the
	// configured deadline. The debited credit has been refunded.
	ErrGenerationTimeout = errors.New("generation timed out")
	// ErrGenerationFailed is surfaced for other generator failures. The
	// debited credit has been refunded.
	ErrGenerationFailed = errors.New("generation failed")
)

// MaxMessageLen bounds accepted input length in bytes.
const MaxMessageLen = 4000

const generationCost = 1

// GateConfig tunes the metered generation call.
type GateConfig struct {
	Timeout     time.Duration
	MaxTokens   int
	Temperature float64
}

// GateConfigFromEnv reads the generation tunables from the environment.
func GateConfigFromEnv() GateConfig {
	return GateConfig{
		Timeout:     time.Duration(env.GetEnvInt("GENERATION_TIMEOUT_SECONDS", 25)) * time.Second,
		MaxTokens:   env.GetEnvInt("OPENAI_MAX_TOKENS", 300),
		Temperature: 0.7,
	}
}

// Output is the result of a successful metered generation.
type Output struct {
	Text             string
	CreditsRemaining int64
}

// Gate is the single call site that meters generation: it debits one
// credit, invokes the generator under a bounded timeout, and refunds the
// credit when generation fails. Completing the debit is the commit point;
// a client disconnect after that does not roll it back.
type Gate struct {
	ledger    *ledger.Ledger
	generator Generator
	cfg       GateConfig
}

// NewGate creates a generation gate from injected dependencies.
func NewGate(l *ledger.Ledger, g Generator, cfg GateConfig) *Gate {
	return &Gate{ledger: l, generator: g, cfg: cfg}
}

// RewriteMessage runs the metered rewrite flow for the given mode.
func (g *Gate) RewriteMessage(ctx context.Context, email, message, mode string) (Output, error) {
	if err := validateMessage(message); err != nil {
		return Output{}, err
	}
	return g.run(ctx, email, RewritePrompt(mode, strings.TrimSpace(message)))
}

// GenerateReply runs the metered email-reply flow for the given tone.
func (g *Gate) GenerateReply(ctx context.Context, email, message, subject, tone string) (Output, error) {
	if err := validateMessage(message); err != nil {
		return Output{}, err
	}
	return g.run(ctx, email, ReplyPrompt(tone, strings.TrimSpace(subject), strings.TrimSpace(message)))
}

func (g *Gate) run(ctx context.Context, email, prompt string) (Output, error) {
	balance, err := g.ledger.TryDebit(ctx, email, generationCost)
	if err != nil {
		return Output{}, err
	}

	genCtx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
	defer cancel()

	text, err := g.generator.Generate(genCtx, prompt, g.cfg.MaxTokens, g.cfg.Temperature)
	if err != nil {
		refunded := g.refund(ctx, email)
		if errors.Is(err, context.DeadlineExceeded) {
			return Output{CreditsRemaining: refunded}, ErrGenerationTimeout
		}
		return Output{CreditsRemaining: refunded}, errors.Join(ErrGenerationFailed, err)
	}

	return Output{Text: text, CreditsRemaining: balance}, nil
}

// refund returns the debited credit after a failed generation. It runs on
// a detached context so a cancelled request cannot strand the refund.
func (g *Gate) refund(ctx context.Context, email string) int64 {
	refundCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()

	balance, err := g.ledger.Credit(refundCtx, email, generationCost)
	if err != nil {
		log.Printf("failed to refund generation credit for %s: %v", email, err)
		return 0
	}
	return balance
}

func validateMessage(message string) error {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return ErrInvalidInput
	}
	if len(trimmed) > MaxMessageLen {
		return ErrInvalidInput
	}
	return nil
}
