package app

import (
	"context"

	"gopaired/domain/core"
	"gopaired/domain/paired"
	"gopaired/domain/sample"
	"gopaired/internal"
	"gopaired/ports"
)

// iqrFenceMultiplier is the inner-fence factor of the IQR outlier rule
const iqrFenceMultiplier = 1.5

// DecisionProcedure selects and runs the appropriate location test for one
// paired sample: paired t-test when the differences look normal, otherwise
// IQR outlier trimming followed by a re-test, falling back to the Wilcoxon
// signed-rank test when normality still fails.
//
// An instance is synchronous and not reentrant-safe; construct a fresh one
// per evaluation for stateless use.
type DecisionProcedure struct {
	sample    *sample.PairedSample
	normality ports.NormalityPort
	ttest     ports.PairedTTestPort
	wilcoxon  ports.WilcoxonPort
	quantile  ports.QuantilePort
	logger    *internal.Logger

	lastReport *paired.OutlierReport
}

// Evaluation is the complete, immutable result of one Run call
type Evaluation struct {
	ID       core.EvaluationID        `json:"id"`
	Level    paired.SignificanceLevel `json:"level"`
	Outcome  paired.TestOutcome       `json:"outcome"`
	Outliers paired.OutlierReport     `json:"outliers"`
}

// NewDecisionProcedure creates a procedure over an already validated sample
func NewDecisionProcedure(
	s *sample.PairedSample,
	normality ports.NormalityPort,
	ttest ports.PairedTTestPort,
	wilcoxon ports.WilcoxonPort,
	quantile ports.QuantilePort,
) (*DecisionProcedure, error) {
	if s == nil {
		return nil, core.NewValidationError("sample", "nil sample")
	}
	if normality == nil || ttest == nil || wilcoxon == nil || quantile == nil {
		return nil, core.NewValidationError("collaborators", "all statistical ports are required")
	}
	return &DecisionProcedure{
		sample:    s,
		normality: normality,
		ttest:     ttest,
		wilcoxon:  wilcoxon,
		quantile:  quantile,
		logger:    internal.DefaultLogger,
	}, nil
}

// NewDecisionProcedureFromFrame validates the three referenced frame columns
// and builds the procedure over the resulting sample.
func NewDecisionProcedureFromFrame(
	f *sample.Frame,
	before, after, diff sample.Column,
	normality ports.NormalityPort,
	ttest ports.PairedTTestPort,
	wilcoxon ports.WilcoxonPort,
	quantile ports.QuantilePort,
) (*DecisionProcedure, error) {
	s, err := sample.FromFrame(f, before, after, diff)
	if err != nil {
		return nil, err
	}
	return NewDecisionProcedure(s, normality, ttest, wilcoxon, quantile)
}

// Run executes the decision procedure at the given significance level
// (percent, one of 1, 2, 5, 10, 15) and returns the selected test outcome
// together with the outlier report of this evaluation.
func (p *DecisionProcedure) Run(ctx context.Context, level int) (*Evaluation, error) {
	lvl, err := paired.ParseSignificanceLevel(level)
	if err != nil {
		return nil, err
	}
	id := core.NewEvaluationID()

	// Fences are computed up front; they only matter on the non-normal branch.
	bounds, err := p.outlierBounds()
	if err != nil {
		return nil, err
	}

	verdict, err := p.normality.TestNormality(ctx, p.sample.Diff)
	if err != nil {
		return nil, err
	}
	p.logVerdict(id, verdict)

	cv, ok := verdict.CriticalValueAt(lvl)
	if !ok {
		return nil, core.NewNoResultError(level)
	}

	if verdict.Statistic < cv {
		report := paired.NewUntrimmedReport(id, p.sample.Len(), bounds)
		p.lastReport = &report
		outcome, err := p.ttest.PairedTTest(ctx, p.sample.Before, p.sample.After)
		if err != nil {
			return nil, err
		}
		return &Evaluation{ID: id, Level: lvl, Outcome: outcome, Outliers: report}, nil
	}

	clean := p.sample.FilterByDiff(bounds.Contains)
	report := paired.NewTrimmedReport(id, p.sample.Len(), clean.Len(), bounds)
	p.lastReport = &report
	p.logger.Info("removed %d outliers (%.2f%%) [evaluation=%s]",
		report.RemovedCount, report.RemovedPercentage, id)

	retest, err := p.normality.TestNormality(ctx, clean.Diff)
	if err != nil {
		return nil, err
	}
	p.logVerdict(id, retest)

	cv, ok = retest.CriticalValueAt(lvl)
	if !ok {
		return nil, core.NewNoResultError(level)
	}

	var outcome paired.TestOutcome
	if retest.Statistic < cv {
		outcome, err = p.ttest.PairedTTest(ctx, clean.Before, clean.After)
	} else {
		outcome, err = p.wilcoxon.WilcoxonSignedRank(ctx, clean.Before, clean.After)
	}
	if err != nil {
		return nil, err
	}
	return &Evaluation{ID: id, Level: lvl, Outcome: outcome, Outliers: report}, nil
}

// LastOutlierReport returns the report of the most recent run that got far
// enough to produce one. The second return is false before that point.
func (p *DecisionProcedure) LastOutlierReport() (paired.OutlierReport, bool) {
	if p.lastReport == nil {
		return paired.OutlierReport{}, false
	}
	return *p.lastReport, true
}

func (p *DecisionProcedure) outlierBounds() (paired.OutlierBounds, error) {
	q1, err := p.quantile.Quantile(p.sample.Diff, 0.25)
	if err != nil {
		return paired.OutlierBounds{}, err
	}
	q3, err := p.quantile.Quantile(p.sample.Diff, 0.75)
	if err != nil {
		return paired.OutlierBounds{}, err
	}
	iqr := q3 - q1
	return paired.OutlierBounds{
		Q1:    q1,
		Q3:    q3,
		IQR:   iqr,
		Lower: q1 - iqrFenceMultiplier*iqr,
		Upper: q3 + iqrFenceMultiplier*iqr,
	}, nil
}

func (p *DecisionProcedure) logVerdict(id core.EvaluationID, v paired.NormalityVerdict) {
	p.logger.Debug("anderson statistic: %g [evaluation=%s]", v.Statistic, id)
	for _, l := range paired.Levels() {
		decision, ok := v.DecisionAt(l)
		if !ok {
			continue
		}
		cv, _ := v.CriticalValueAt(l)
		p.logger.Debug("probably %s: %.3f critical value at %d%% significance [evaluation=%s]",
			decision, cv, l, id)
	}
}
