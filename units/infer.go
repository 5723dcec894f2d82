package units

import (
	"context"

	"github.com/tsawler/factura/model"
)

// Query is the context bundle handed to the inference collaborator for one
// metric. Everything in it is text evidence from around the table; the
// collaborator keeps no state of its own.
type Query struct {
	MetricName     string
	PageTitle      string
	SectionHeading string
	TableCaption   string
	NearbyText     string
}

// Inferrer is the external unit-inference collaborator: a black-box text
// call that suggests a measurement or currency unit for a metric, or ""
// when it cannot tell.
type Inferrer interface {
	InferUnit(ctx context.Context, q Query) (string, error)
}

// InferrerFunc adapts a function to the Inferrer interface.
type InferrerFunc func(ctx context.Context, q Query) (string, error)

func (f InferrerFunc) InferUnit(ctx context.Context, q Query) (string, error) {
	return f(ctx, q)
}

// buildQuery assembles the context bundle for a metric from the document
// context. Built once per distinct metric, not per record.
func buildQuery(metric string, dc model.DocumentContext) Query {
	title := dc.PageTitle
	if title == "" {
		title = dc.DocumentTitle
	}
	return Query{
		MetricName:     metric,
		PageTitle:      title,
		SectionHeading: dc.SectionHeading,
		TableCaption:   dc.TableCaption,
		NearbyText:     dc.NearbyText,
	}
}
