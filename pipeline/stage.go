package pipeline

// Stage tracks how far a table progressed through the extraction state
// machine. Every stage is total: internal failures degrade the table's
// output instead of failing the pipeline, so Finalized is always reached.
type Stage int

const (
	StageIngested Stage = iota
	StageHeadersClassified
	StageOrientationDetected
	StageFlattened
	StageExtracted
	StageUnitEnriched
	StageFinalized
)

func (s Stage) String() string {
	switch s {
	case StageIngested:
		return "Ingested"
	case StageHeadersClassified:
		return "HeadersClassified"
	case StageOrientationDetected:
		return "OrientationDetected"
	case StageFlattened:
		return "Flattened"
	case StageExtracted:
		return "Extracted"
	case StageUnitEnriched:
		return "UnitEnriched"
	case StageFinalized:
		return "Finalized"
	default:
		return "Unknown"
	}
}
