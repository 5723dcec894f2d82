package model

// DocumentContext carries the document-level text surrounding a table. It is
// assembled by the ingestion pipeline from the layout parser's output and
// used as evidence when a unit cannot be recovered from the table itself.
type DocumentContext struct {
	DocumentTitle  string
	PageTitle      string
	SectionHeading string
	TableCaption   string
	NearbyText     string
}
