package scraper

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
)

// fakeQuery serves canned texts per selector and records the order in which
// strategies were tried.
func fakeQuery(results map[string][]string, errs map[string]error, tried *[]string) selectorQuery {
	return func(selector string) ([]string, error) {
		*tried = append(*tried, selector)
		if err, ok := errs[selector]; ok {
			return nil, err
		}
		return results[selector], nil
	}
}

func TestScanWith_FirstNonEmptyStrategyWins(t *testing.T) {
	var tried []string
	query := fakeQuery(map[string][]string{
		`div[class*='result']`:   {"IndiGo 6E-123 06:30 09:10 ₹5,450"},
		`.flight-card`:           {"should never be reached"},
		`[data-testid*='flight']`: {"nor this"},
	}, nil, &tried)

	texts := scanWith(query)

	if len(texts) != 1 || texts[0] != "IndiGo 6E-123 06:30 09:10 ₹5,450" {
		t.Fatalf("texts = %v", texts)
	}
	// The win stops the chain: strategies after div[class*='result'] are
	// never queried.
	want := []string{`div[class*='flight']`, `div[class*='result']`}
	if !reflect.DeepEqual(tried, want) {
		t.Errorf("tried = %v, want %v", tried, want)
	}
}

func TestScanWith_TriesStrategiesInPriorityOrder(t *testing.T) {
	var tried []string
	texts := scanWith(fakeQuery(nil, nil, &tried))

	if texts != nil {
		t.Errorf("texts = %v, want nil when nothing matches", texts)
	}
	if !reflect.DeepEqual(tried, candidateSelectors) {
		t.Errorf("tried = %v, want the full chain %v", tried, candidateSelectors)
	}
}

func TestScanWith_CapsWinningStrategy(t *testing.T) {
	many := make([]string, 40)
	for i := range many {
		many[i] = fmt.Sprintf("IndiGo 6E-%03d 06:30 ₹5,450", 100+i)
	}

	var tried []string
	texts := scanWith(fakeQuery(map[string][]string{
		`div[class*='flight']`: many,
	}, nil, &tried))

	if len(texts) != maxCandidates {
		t.Fatalf("got %d texts, want the %d-element cap", len(texts), maxCandidates)
	}
	// The cap keeps the head of the list in page order.
	if texts[0] != many[0] || texts[maxCandidates-1] != many[maxCandidates-1] {
		t.Errorf("cap reordered or dropped leading elements")
	}
}

func TestScanWith_SkipsFailingStrategy(t *testing.T) {
	var tried []string
	query := fakeQuery(
		map[string][]string{`.flight-card`: {"SpiceJet SG-8256 08:45 ₹4,890"}},
		map[string]error{
			`div[class*='flight']`: errors.New("selector evaluation failed"),
			`div[class*='result']`: errors.New("page detached"),
		},
		&tried,
	)

	texts := scanWith(query)

	if len(texts) != 1 || texts[0] != "SpiceJet SG-8256 08:45 ₹4,890" {
		t.Fatalf("texts = %v, want the post-failure strategy's element", texts)
	}
}

func TestScanWith_NoTextAnalysis(t *testing.T) {
	// The scanner hands back whatever the winning strategy matched, noise
	// included; filtering is the extractors' job.
	noise := []string{"Book now!", "Lowest fares guaranteed"}
	var tried []string
	texts := scanWith(fakeQuery(map[string][]string{
		`div[class*='flight']`: noise,
	}, nil, &tried))

	if !reflect.DeepEqual(texts, noise) {
		t.Errorf("texts = %v, want %v passed through verbatim", texts, noise)
	}
	if len(tried) != 1 {
		t.Errorf("later strategies tried after a win: %v", tried)
	}
}
