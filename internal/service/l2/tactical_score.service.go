package l2_service

import (
	"context"
	"fmt"
	"math"

	"foxvalley/internal/domain"
	"foxvalley/internal/logger"
	"foxvalley/internal/util"

	"github.com/maja42/goval"
)

// TacticalScoreService scores candidates with a user supplied expression
type TacticalScoreService interface {
	ScoreCandidates(ctx context.Context, set domain.CandidateSet) (domain.CandidateSet, []error)
}

type tacticalScoreServiceHandler struct {
	Expression string
}

func NewTacticalScoreService(expression string) TacticalScoreService {
	return tacticalScoreServiceHandler{Expression: expression}
}

// ValidateScoreExpression evaluates the expression against an empty
// candidate so a bad config fails at startup instead of on every row
func ValidateScoreExpression(expression string) error {
	_, err := EvaluateScoreExpression(expression, domain.Candidate{})
	return err
}

func toFloat(arg interface{}) (float64, error) {
	switch v := arg.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	}
	return 0, fmt.Errorf("expected number, got %T", arg)
}

func floatArgs(name string, want int, args []interface{}) ([]float64, error) {
	if len(args) != want {
		return nil, fmt.Errorf("%s needs %d args, got %d", name, want, len(args))
	}
	out := make([]float64, len(args))
	for i, a := range args {
		f, err := toFloat(a)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		out[i] = f
	}
	return out, nil
}

func scoreFunctions() map[string]goval.ExpressionFunction {
	return map[string]goval.ExpressionFunction{
		"min": func(args ...interface{}) (interface{}, error) {
			f, err := floatArgs("min", 2, args)
			if err != nil {
				return 0, err
			}
			return math.Min(f[0], f[1]), nil
		},
		"max": func(args ...interface{}) (interface{}, error) {
			f, err := floatArgs("max", 2, args)
			if err != nil {
				return 0, err
			}
			return math.Max(f[0], f[1]), nil
		},
		// clamp(value, lo, hi)
		"clamp": func(args ...interface{}) (interface{}, error) {
			f, err := floatArgs("clamp", 3, args)
			if err != nil {
				return 0, err
			}
			return math.Max(f[1], math.Min(f[0], f[2])), nil
		},
	}
}

func boolFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func valueOr(f *float64, fallback float64) float64 {
	if f == nil {
		return fallback
	}
	return *f
}

func scoreVariables(c domain.Candidate) map[string]interface{} {
	rank := 0.0
	if c.Rank != nil {
		rank = float64(*c.Rank)
	}
	return map[string]interface{}{
		"rank":           rank,
		"ranked":         boolFloat(c.Rank != nil),
		"topRank":        boolFloat(c.Rank != nil && *c.Rank == 1),
		"held":           boolFloat(c.Held),
		"sourceCount":    float64(len(c.Sources)),
		"compositeScore": util.FloatOrZero(c.Metrics.CompositeScore),
		"priceChange5d":  util.FloatOrZero(c.Metrics.PriceChange5d),
		// unknown volatility is treated as the max penalty
		"volatility30d": valueOr(c.Metrics.Volatility30d, 20),
	}
}

func EvaluateScoreExpression(expression string, c domain.Candidate) (float64, error) {
	eval := goval.NewEvaluator()
	result, err := eval.Evaluate(expression, scoreVariables(c), scoreFunctions())
	if err != nil {
		return 0, fmt.Errorf("failed to evaluate score expression: %w", err)
	}

	r, err := toFloat(result)
	if err != nil {
		return 0, fmt.Errorf("score expression must return a number: %w", err)
	} else if math.IsNaN(r) {
		return 0, fmt.Errorf("calculated NaN as score")
	} else if math.IsInf(r, 0) {
		return 0, fmt.Errorf("calculated infinity as score")
	}

	return r, nil
}

func TacticalTag(score float64) string {
	switch {
	case score >= 85:
		return "Target Buy"
	case score >= 70:
		return "Accumulate"
	case score >= 55:
		return "Hold"
	case score >= 40:
		return "Trim"
	default:
		return "Sell Candidate"
	}
}

// ScoreCandidates sets TacticalScore and TacticalTag on every candidate. a
// candidate whose expression fails keeps a nil score and the error is
// returned alongside, the rest still get scored.
func (h tacticalScoreServiceHandler) ScoreCandidates(ctx context.Context, set domain.CandidateSet) (domain.CandidateSet, []error) {
	log := logger.FromContext(ctx)

	out := domain.CandidateSet{
		Date:       set.Date,
		Candidates: make([]domain.Candidate, len(set.Candidates)),
	}
	errs := []error{}
	for i, c := range set.Candidates {
		c.TacticalScore = nil
		c.TacticalTag = ""
		score, err := EvaluateScoreExpression(h.Expression, c)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", c.Ticker, err))
		} else {
			c.TacticalScore = &score
			c.TacticalTag = TacticalTag(score)
		}
		out.Candidates[i] = c
	}
	if len(errs) > 0 {
		log.Warnw("failed to score some candidates", "numErrors", len(errs), "firstError", errs[0])
	}

	return out, errs
}
