package orient

import (
	"github.com/tsawler/factura/classify"
	"github.com/tsawler/factura/model"
)

// Strategy tags carried in a detection Result. The extract package registers
// one extraction strategy per tag.
const (
	StrategyTransposed = "transposed-metric"
	StrategyJunkColumn = "entity-column-junk"
	StrategyNormal     = "normal-metric"
	StrategyMultiHead  = "multi-header"
	StrategyBestEffort = "best-effort"
)

// Result is the structural classification of one table.
type Result struct {
	Orientation model.Orientation
	Confidence  float64
	Strategy    string

	// MetricCol is the column carrying metric names for the normal-metric
	// orientation (-1 when not applicable). EntityCol is the column
	// carrying entity names for the entity-column-junk orientation and for
	// normal-metric tables with a leading entity column.
	MetricCol int
	EntityCol int
}

// Detector classifies a table's structural orientation. Rules are evaluated
// in fixed priority order and the first rule whose thresholds are met wins;
// detection is a pure function of table content and never fails. Tables
// matching no rule degrade to the Unknown orientation.
type Detector struct {
	Config     Config
	classifier *classify.Classifier
}

// NewDetector creates a detector with default thresholds.
func NewDetector(classifier *classify.Classifier) *Detector {
	return NewDetectorWithConfig(classifier, DefaultConfig())
}

// NewDetectorWithConfig creates a detector with custom thresholds.
func NewDetectorWithConfig(classifier *classify.Classifier, cfg Config) *Detector {
	return &Detector{Config: cfg, classifier: classifier}
}

// Detect runs the priority rule list:
//
//  1. Multi-header: more than one header row. Takes precedence over the
//     column-content rules because stacked headers change how every column
//     is interpreted.
//  2. Transposed-metric: metrics down column 0, units down column 1, wide
//     shape.
//  3. Entity-column-junk: pure numeric index in column 0, entities in
//     column 1, tall shape.
//  4. Normal-metric: a metric column among the leading columns followed by
//     a numeric column.
//  5. Unknown: none of the above; best-effort extraction at capped
//     confidence.
func (d *Detector) Detect(t *model.Table) Result {
	cfg := d.Config

	if t == nil || t.RowCount() == 0 || t.ColCount() == 0 {
		return unknownResult(cfg)
	}

	if t.HeaderRowCount() > 1 {
		return Result{
			Orientation: model.OrientationMultiHeaderMetric,
			Confidence:  0.9,
			Strategy:    StrategyMultiHead,
			MetricCol:   -1,
			EntityCol:   -1,
		}
	}

	col0 := d.classifier.AnalyzeColumn(t, 0)
	col1 := d.classifier.AnalyzeColumn(t, 1)
	aspect := t.AspectRatio()

	if col0.MetricRatio >= cfg.TransposedMetricRatio &&
		col1.UnitRatio >= cfg.TransposedUnitRatio &&
		aspect < cfg.WideAspectCutoff {
		return Result{
			Orientation: model.OrientationTransposedMetric,
			Confidence: ruleConfidence(
				margin(col0.MetricRatio, cfg.TransposedMetricRatio),
				margin(col1.UnitRatio, cfg.TransposedUnitRatio),
			),
			Strategy:  StrategyTransposed,
			MetricCol: 0,
			EntityCol: -1,
		}
	}

	if col0.NumericRatio >= cfg.JunkNumericRatio &&
		col1.EntityRatio >= cfg.JunkEntityRatio &&
		aspect > cfg.TallAspectCutoff {
		return Result{
			Orientation: model.OrientationEntityColumnJunk,
			Confidence: ruleConfidence(
				margin(col0.NumericRatio, cfg.JunkNumericRatio),
				margin(col1.EntityRatio, cfg.JunkEntityRatio),
			),
			Strategy:  StrategyJunkColumn,
			MetricCol: -1,
			EntityCol: 1,
		}
	}

	if res, ok := d.detectNormal(t); ok {
		return res
	}

	return unknownResult(cfg)
}

// detectNormal scans the leading columns for a metric column followed by a
// numeric column. The common shape is metrics in column 0, but tables with a
// leading entity column (entity, metric, values...) match at column 1.
func (d *Detector) detectNormal(t *model.Table) (Result, bool) {
	cfg := d.Config

	limit := cfg.MetricScanCols
	if limit > t.ColCount()-1 {
		limit = t.ColCount() - 1
	}
	for col := 0; col < limit; col++ {
		stats := d.classifier.AnalyzeColumn(t, col)
		if stats.MetricRatio < cfg.NormalMetricRatio {
			continue
		}
		next := d.classifier.AnalyzeColumn(t, col+1)
		if next.NumericRatio < cfg.NormalNumericRatio {
			continue
		}

		entityCol := -1
		if col > 0 {
			// A leading column of entity names pairs each row with its
			// entity; anything else stays unresolved.
			lead := d.classifier.AnalyzeColumn(t, 0)
			if lead.EntityRatio >= cfg.JunkEntityRatio {
				entityCol = 0
			}
		}
		return Result{
			Orientation: model.OrientationNormalMetric,
			Confidence: ruleConfidence(
				margin(stats.MetricRatio, cfg.NormalMetricRatio),
				margin(next.NumericRatio, cfg.NormalNumericRatio),
			),
			Strategy:  StrategyNormal,
			MetricCol: col,
			EntityCol: entityCol,
		}, true
	}
	return Result{}, false
}

func unknownResult(cfg Config) Result {
	return Result{
		Orientation: model.OrientationUnknown,
		Confidence:  cfg.UnknownConfidence,
		Strategy:    StrategyBestEffort,
		MetricCol:   -1,
		EntityCol:   -1,
	}
}

// margin normalizes how far a ratio clears its threshold into [0,1].
func margin(ratio, threshold float64) float64 {
	if threshold >= 1 {
		return 0
	}
	m := (ratio - threshold) / (1 - threshold)
	if m < 0 {
		return 0
	}
	if m > 1 {
		return 1
	}
	return m
}

// ruleConfidence maps threshold margins to a confidence in [0.6, 1.0]: a
// rule that barely met its thresholds scores 0.6, a rule met with maximal
// margins scores 1.0.
func ruleConfidence(margins ...float64) float64 {
	if len(margins) == 0 {
		return 0.6
	}
	sum := 0.0
	for _, m := range margins {
		sum += m
	}
	return 0.6 + 0.4*(sum/float64(len(margins)))
}
