package advisor

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/iwvelando/equity-unlock/internal/scenario"
	"go.uber.org/zap"
)

type fakeClient struct {
	mu      sync.Mutex
	text    string
	err     error
	calls   int
	prompts []string
}

func (f *fakeClient) GenerateContent(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.prompts = append(f.prompts, prompt)
	return f.text, f.err
}

type failingCache struct{}

func (failingCache) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("cache down")
}

func (failingCache) Set(context.Context, string, string) error {
	return errors.New("cache down")
}

func testInputs() scenario.Inputs {
	return scenario.Inputs{
		Current: scenario.CurrentHome{Value: 500000, MortgageBalance: 300000, InterestRate: 3.0, PropertyTaxYearly: 6000, HOAMonthly: 50},
		Liabilities: scenario.Liabilities{
			{ID: "1", Name: "Car Loan", Balance: 25000, MonthlyPayment: 450},
			{ID: "2", Name: "Credit Card", Balance: 12000, MonthlyPayment: 300},
		},
		NewHome: scenario.NewHome{Price: 600000, InterestRate: 6.5, PropertyTaxYearly: 7200, HOAMonthly: 100, ClosingCostsPercent: 2},
	}
}

func TestInsightWithoutClient(t *testing.T) {
	adv := New(zap.NewNop(), nil, nil)
	in := testInputs()

	if adv.Available() {
		t.Error("expected advisor without client to be unavailable")
	}
	if got := adv.Insight(context.Background(), in, in.Evaluate()); got != FallbackUnavailable {
		t.Errorf("expected unavailable fallback, got %q", got)
	}
}

func TestInsightClientError(t *testing.T) {
	client := &fakeClient{err: errors.New("boom")}
	adv := New(zap.NewNop(), client, NewMemoryCache(0))
	in := testInputs()

	if got := adv.Insight(context.Background(), in, in.Evaluate()); got != FallbackUnavailable {
		t.Errorf("expected unavailable fallback, got %q", got)
	}
}

func TestInsightEmptyText(t *testing.T) {
	client := &fakeClient{text: "   \n"}
	adv := New(nil, client, nil)
	in := testInputs()

	if got := adv.Insight(context.Background(), in, in.Evaluate()); got != FallbackEmpty {
		t.Errorf("expected empty fallback, got %q", got)
	}
}

func TestInsightCachesSuccess(t *testing.T) {
	client := &fakeClient{text: "  Moving frees up your debt.  "}
	adv := New(zap.NewNop(), client, NewMemoryCache(0))
	in := testInputs()
	result := in.Evaluate()

	first := adv.Insight(context.Background(), in, result)
	if first != "Moving frees up your debt." {
		t.Fatalf("unexpected insight %q", first)
	}

	// Same figures with new liability ids hit the cache.
	reloaded := in
	reloaded.Liabilities = in.Liabilities.WithFreshIDs()
	second := adv.Insight(context.Background(), reloaded, reloaded.Evaluate())
	if second != first {
		t.Errorf("expected cached insight, got %q", second)
	}
	if client.calls != 1 {
		t.Errorf("expected one client call, got %d", client.calls)
	}

	changed := in
	changed.NewHome.InterestRate = 5.5
	adv.Insight(context.Background(), changed, changed.Evaluate())
	if client.calls != 2 {
		t.Errorf("expected changed inputs to miss the cache, got %d calls", client.calls)
	}
}

func TestInsightCacheFailureIsIgnored(t *testing.T) {
	client := &fakeClient{text: "insight"}
	adv := New(zap.NewNop(), client, failingCache{})
	in := testInputs()

	if got := adv.Insight(context.Background(), in, in.Evaluate()); got != "insight" {
		t.Errorf("expected client text despite cache failure, got %q", got)
	}
}

func TestInsightPromptContents(t *testing.T) {
	client := &fakeClient{text: "ok"}
	adv := New(zap.NewNop(), client, nil)
	in := testInputs()
	adv.Insight(context.Background(), in, in.Evaluate())

	if len(client.prompts) != 1 {
		t.Fatalf("expected one prompt, got %d", len(client.prompts))
	}
	prompt := client.prompts[0]
	for _, want := range []string{
		"- Home Value: $500,000",
		"- Current Rate: 3%",
		"Car Loan: $25,000 balance, $450/mo; Credit Card: $12,000 balance, $300/mo",
		"(Total Payments: $750)",
		"- Total Current Monthly Outflow (Housing + Debt): $2,565",
		"- New Interest Rate: 6.5%",
		"- New Loan Amount: $484,000",
		"- New Monthly Housing Payment: $3,759",
		"- Net Monthly Savings: -$1,194",
		"- Total Debt Eliminated: $37,000",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q\n%s", want, prompt)
		}
	}
}

func TestBuildPromptNoLiabilities(t *testing.T) {
	in := testInputs()
	in.Liabilities = nil
	prompt := BuildPrompt(in, in.Evaluate())
	if !strings.Contains(prompt, "Liabilities to Payoff: none") {
		t.Errorf("expected empty liability summary, got:\n%s", prompt)
	}
}

func TestCacheKey(t *testing.T) {
	in := testInputs()
	key := CacheKey(in)
	if !strings.HasPrefix(key, cacheKeyPrefix) {
		t.Errorf("unexpected key %q", key)
	}

	reordered := in
	reordered.Liabilities = scenario.Liabilities{in.Liabilities[1], in.Liabilities[0]}
	if CacheKey(reordered) == key {
		t.Error("expected liability order to change the key")
	}

	in.Liabilities = in.Liabilities.WithFreshIDs()
	if CacheKey(in) != key {
		t.Error("expected ids to be ignored")
	}
}
