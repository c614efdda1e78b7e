// Package advisor produces free-text commentary on an evaluated scenario by
// querying a generative-text client. Every failure degrades to a fixed
// fallback message.
package advisor

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/iwvelando/equity-unlock/internal/scenario"
	"go.uber.org/zap"
)

const (
	// FallbackEmpty is returned when the client answers with no text.
	FallbackEmpty = "Could not generate insight at this time."

	// FallbackUnavailable is returned when no client is configured or the
	// request fails.
	FallbackUnavailable = "Unable to generate AI insights due to an API configuration issue. Please check your API key."

	cacheKeyPrefix = "equity-unlock:insight:"
)

// Client generates text for a prompt.
type Client interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Advisor turns scenario inputs and results into commentary.
type Advisor struct {
	logger *zap.Logger
	client Client
	cache  Cache
}

// New builds an Advisor. A nil client makes every insight the fallback
// message; a nil cache disables caching.
func New(logger *zap.Logger, client Client, cache Cache) *Advisor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Advisor{logger: logger, client: client, cache: cache}
}

// Available reports whether a client is configured.
func (a *Advisor) Available() bool {
	return a.client != nil
}

// Insight returns commentary for the evaluated scenario.
func (a *Advisor) Insight(ctx context.Context, in scenario.Inputs, result scenario.Result) string {
	if a.client == nil {
		a.logger.Debug("advisor client not configured, returning fallback",
			zap.String("op", "advisor.Insight"),
		)
		return FallbackUnavailable
	}

	key := CacheKey(in)
	useCache := a.cache != nil && key != ""
	if useCache {
		cached, ok, err := a.cache.Get(ctx, key)
		if err != nil {
			a.logger.Warn("failed to read insight cache",
				zap.String("op", "advisor.Insight"),
				zap.Error(err),
			)
		} else if ok {
			a.logger.Debug("insight served from cache",
				zap.String("op", "advisor.Insight"),
				zap.String("key", key),
			)
			return cached
		}
	}

	text, err := a.client.GenerateContent(ctx, BuildPrompt(in, result))
	if err != nil {
		a.logger.Error("failed to generate insight",
			zap.String("op", "advisor.Insight"),
			zap.Error(err),
		)
		return FallbackUnavailable
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return FallbackEmpty
	}

	if useCache {
		if err := a.cache.Set(ctx, key, text); err != nil {
			a.logger.Warn("failed to write insight cache",
				zap.String("op", "advisor.Insight"),
				zap.Error(err),
			)
		}
	}
	return text
}

// CacheKey identifies the inputs of an evaluation. Liability ids are ignored
// since they never reach the prompt. An empty key means the inputs cannot be
// cached.
func CacheKey(in scenario.Inputs) string {
	liabilities := make([]scenario.Liability, len(in.Liabilities))
	for i, l := range in.Liabilities {
		l.ID = ""
		liabilities[i] = l
	}

	data, err := json.Marshal(struct {
		Current     scenario.CurrentHome
		Liabilities []scenario.Liability
		NewHome     scenario.NewHome
	}{in.Current, liabilities, in.NewHome})
	if err != nil {
		// Only non-finite floats fail to marshal; never share their key.
		return ""
	}
	sum := sha256.Sum256(data)
	return cacheKeyPrefix + hex.EncodeToString(sum[:16])
}
