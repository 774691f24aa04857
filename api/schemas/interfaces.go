package schemas

import "context"

// DatasetSink receives a fully generated dataset. The CSV directory writer and the
// graph database loaders all implement it.
type DatasetSink interface {
	// Name identifies the sink in logs and errors.
	Name() string
	Write(ctx context.Context, ds *Dataset) error
}
