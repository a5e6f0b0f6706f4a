package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/xtding233/arena-odds/internal/arena"
	"github.com/xtding233/arena-odds/internal/card"
)

type staticCards []card.Record

func (s staticCards) Get(string) ([]card.Record, error) { return s, nil }

type staticRules struct {
	rules arena.Rules
	err   error
}

func (s staticRules) Load(string) (arena.Rules, error) { return s.rules, s.err }

// testCards builds per cards of each rarity (all draft rarities by default) for MAGE and neutral.
func testCards(per int, rarities ...card.Rarity) staticCards {
	if len(rarities) == 0 {
		rarities = arena.DraftRarities()
	}
	var out staticCards
	for _, owner := range []card.Class{card.ClassNeutral, card.ClassMage} {
		for _, r := range rarities {
			for i := 0; i < per; i++ {
				cost := i
				out = append(out, card.Record{
					ID:          fmt.Sprintf("%s-%s-%d", owner, r, i),
					Class:       owner,
					Rarity:      r,
					Type:        card.TypeMinion,
					Cost:        &cost,
					Collectible: true,
				})
			}
		}
	}
	return out
}

func newTestServer(t *testing.T, cards CardSource, rules RulesSource, opts Options) *httptest.Server {
	t.Helper()
	opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(cards, rules, card.DefaultLocale, "default", 0)
	ts := httptest.NewServer(NewServer(svc, opts).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, ts *httptest.Server, path string, out any) int {
	t.Helper()
	resp, err := http.Get(ts.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", path, err)
		}
	}
	return resp.StatusCode
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t, testCards(5), staticRules{rules: arena.DefaultRules()}, Options{})
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || string(body) != "OK" {
		t.Fatalf("healthz: %d %q", resp.StatusCode, body)
	}
}

func TestDraftEndpoint(t *testing.T) {
	ts := newTestServer(t, testCards(5), staticRules{rules: arena.DefaultRules()}, Options{})

	var out struct {
		Data arena.Draft `json:"data"`
	}
	if code := get(t, ts, "/v1/draft?class=mage&seed=42", &out); code != http.StatusOK {
		t.Fatalf("status %d", code)
	}
	if out.Data.Class != card.ClassMage || len(out.Data.Picks) != arena.DraftPicks {
		t.Fatalf("unexpected draft: class=%s picks=%d", out.Data.Class, len(out.Data.Picks))
	}
	for _, p := range out.Data.Picks {
		if len(p.Cards) != arena.CardsPerPick {
			t.Fatalf("pick %d offered %d cards", p.Number, len(p.Cards))
		}
		if p.Special != arena.IsSpecialPick(p.Number) {
			t.Fatalf("pick %d special=%v", p.Number, p.Special)
		}
	}

	var again struct {
		Data arena.Draft `json:"data"`
	}
	get(t, ts, "/v1/draft?class=MAGE&seed=42", &again)
	for i := range out.Data.Picks {
		for j := range out.Data.Picks[i].Cards {
			if out.Data.Picks[i].Cards[j].ID != again.Data.Picks[i].Cards[j].ID {
				t.Fatalf("seeded drafts differ at pick %d", i+1)
			}
		}
	}
}

func TestDraftBadParams(t *testing.T) {
	ts := newTestServer(t, testCards(5), staticRules{rules: arena.DefaultRules()}, Options{})
	for _, path := range []string{
		"/v1/draft",
		"/v1/draft?class=NEUTRAL",
		"/v1/draft?class=BARD",
		"/v1/draft?class=MAGE&seed=-3",
	} {
		var out ErrorResponse
		if code := get(t, ts, path, &out); code != http.StatusBadRequest {
			t.Fatalf("%s: status %d, want 400", path, code)
		}
		if out.Code != http.StatusBadRequest || out.Message == "" {
			t.Fatalf("%s: unexpected body %+v", path, out)
		}
	}
}

func TestDraftMissingRarityIsUnprocessable(t *testing.T) {
	// Pick 1 is special and never offers commons.
	ts := newTestServer(t, testCards(5, card.RarityCommon), staticRules{rules: arena.DefaultRules()}, Options{})
	var out ErrorResponse
	if code := get(t, ts, "/v1/draft?class=MAGE&seed=1", &out); code != http.StatusUnprocessableEntity {
		t.Fatalf("status %d, want 422 (%+v)", code, out)
	}
}

func TestOddsEndpoint(t *testing.T) {
	ts := newTestServer(t, testCards(5), staticRules{rules: arena.DefaultRules()}, Options{})

	var out struct {
		Data Odds `json:"data"`
	}
	if code := get(t, ts, "/v1/odds?class=MAGE&rarity=LEGENDARY&owner=class", &out); code != http.StatusOK {
		t.Fatalf("status %d", code)
	}
	o := out.Data
	if o.N != arena.DraftPicks || o.RegularPicks != 26 || o.SpecialPicks != 4 {
		t.Fatalf("unexpected split: %+v", o)
	}
	if len(o.PMF) != arena.DraftPicks+1 {
		t.Fatalf("pmf has %d values", len(o.PMF))
	}
	var sum float64
	for _, v := range o.PMF {
		sum += v
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Fatalf("pmf sums to %v", sum)
	}
	if !(o.SpecialP > o.RegularP) {
		t.Fatalf("legendary odds should be higher on special picks: %v <= %v", o.SpecialP, o.RegularP)
	}
	want := 26*o.RegularP + 4*o.SpecialP
	if math.Abs(o.Expectation-want) > 1e-9 {
		t.Fatalf("expectation %v, want %v", o.Expectation, want)
	}
	leg := o.Counts[card.RarityLegendary]
	if leg.HeroTotal != 5 || leg.HeroMatching != 5 || leg.NeutralMatching != 0 {
		t.Fatalf("legendary counts %+v", leg)
	}
}

func TestOddsErrors(t *testing.T) {
	ts := newTestServer(t, testCards(5), staticRules{rules: arena.DefaultRules()}, Options{})
	cases := []struct {
		path string
		code int
	}{
		{"/v1/odds?class=MAGE&n=31", http.StatusBadRequest},
		{"/v1/odds?class=MAGE&n=-1", http.StatusBadRequest},
		{"/v1/odds?class=MAGE&n=ten", http.StatusBadRequest},
		{"/v1/odds?class=MAGE&rarity=MYTHIC", http.StatusBadRequest},
		{"/v1/odds?class=MAGE&owner=guild", http.StatusBadRequest},
		{"/v1/odds?n=5", http.StatusBadRequest},
	}
	for _, c := range cases {
		if code := get(t, ts, c.path, nil); code != c.code {
			t.Fatalf("%s: status %d, want %d", c.path, code, c.code)
		}
	}
}

func TestRulesFailureIsInternal(t *testing.T) {
	ts := newTestServer(t, testCards(5), staticRules{err: errors.New("boom")}, Options{})
	var out ErrorResponse
	if code := get(t, ts, "/v1/odds?class=MAGE", &out); code != http.StatusInternalServerError {
		t.Fatalf("status %d, want 500", code)
	}
	if out.Message != "internal error" {
		t.Fatalf("internal details leaked: %q", out.Message)
	}
}

func TestCrossvalEndpoint(t *testing.T) {
	ts := newTestServer(t, testCards(5), staticRules{rules: arena.DefaultRules()}, Options{CrossvalMaxTrials: 50})

	var out struct {
		Data CrossVal `json:"data"`
	}
	if code := get(t, ts, "/v1/crossval?class=MAGE&trials=20&seed=9&rarity=RARE", &out); code != http.StatusOK {
		t.Fatalf("status %d", code)
	}
	cv := out.Data
	if cv.Empirical.Trials != 20 {
		t.Fatalf("trials %d", cv.Empirical.Trials)
	}
	if cv.Empirical.RegularPicks != 20*26 || cv.Empirical.SpecialPicks != 20*4 {
		t.Fatalf("pick counts %+v", cv.Empirical)
	}
	if cv.RegularP <= 0 || cv.SpecialP <= cv.RegularP {
		t.Fatalf("analytic rates %v %v", cv.RegularP, cv.SpecialP)
	}

	if code := get(t, ts, "/v1/crossval?class=MAGE&trials=51", nil); code != http.StatusBadRequest {
		t.Fatalf("over cap: status %d, want 400", code)
	}
}

func TestCrossvalRateLimited(t *testing.T) {
	ts := newTestServer(t, testCards(5), staticRules{rules: arena.DefaultRules()},
		Options{CrossvalMaxTrials: 5, CrossvalRate: 0.001, CrossvalBurst: 1})

	if code := get(t, ts, "/v1/crossval?class=MAGE&trials=1", nil); code != http.StatusOK {
		t.Fatalf("first request: status %d", code)
	}
	resp, err := http.Get(ts.URL + "/v1/crossval?class=MAGE&trials=1")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusTooManyRequests || resp.Header.Get("Retry-After") == "" {
		t.Fatalf("second request: status %d, want 429", resp.StatusCode)
	}
	// other endpoints are not limited
	if code := get(t, ts, "/v1/odds?class=MAGE", nil); code != http.StatusOK {
		t.Fatalf("odds: status %d", code)
	}
}
