package model

// HeaderClass represents the semantic category assigned to a header cell's
// text.
type HeaderClass int

const (
	HeaderUnknown HeaderClass = iota
	HeaderTemporal
	HeaderEntity
	HeaderMetric
	HeaderUnit
)

func (h HeaderClass) String() string {
	switch h {
	case HeaderTemporal:
		return "Temporal"
	case HeaderEntity:
		return "Entity"
	case HeaderMetric:
		return "Metric"
	case HeaderUnit:
		return "Unit"
	default:
		return "Unknown"
	}
}

// Orientation represents the structural layout of a table: which dimension
// carries entities, metrics, and periods.
type Orientation int

const (
	// OrientationUnknown means no structural rule matched; extraction
	// proceeds cell-by-cell with low confidence.
	OrientationUnknown Orientation = iota

	// OrientationTransposedMetric: metrics run down column 0, units down
	// column 1, entities (or periods) across the column headers.
	OrientationTransposedMetric

	// OrientationEntityColumnJunk: column 0 is a non-semantic numeric
	// index, column 1 carries entity names.
	OrientationEntityColumnJunk

	// OrientationNormalMetric: metrics run down column 0 as row headers,
	// entities or periods across the column headers.
	OrientationNormalMetric

	// OrientationMultiHeaderMetric: more than one header row; per-column
	// metric and entity are recovered by flattening the header levels.
	OrientationMultiHeaderMetric
)

func (o Orientation) String() string {
	switch o {
	case OrientationTransposedMetric:
		return "TransposedMetric"
	case OrientationEntityColumnJunk:
		return "EntityColumnJunk"
	case OrientationNormalMetric:
		return "NormalMetric"
	case OrientationMultiHeaderMetric:
		return "MultiHeaderMetric"
	default:
		return "Unknown"
	}
}
