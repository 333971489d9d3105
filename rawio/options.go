package rawio

// BandOption configures a [Band] at construction time. Follows
// go-hdf5/hdf5/options.go's functional-option shape (private options
// struct, defaultXOptions constructor, WithY setters).
type BandOption func(*bandOptions)

type bandOptions struct {
	config         *Config
	sparseTolerant bool
}

func defaultBandOptions() *bandOptions {
	return &bandOptions{config: DefaultConfig()}
}

// WithConfig overrides the default heuristic/override Config for this
// band.
func WithConfig(cfg *Config) BandOption {
	return func(o *bandOptions) {
		if cfg != nil {
			o.config = cfg
		}
	}
}

// WithSparseTolerant opts the band into the short-read zero-fill policy
// (equivalent to setting BandConfig.SparseTolerant, provided as an
// option for callers building bands through functional options).
func WithSparseTolerant() BandOption {
	return func(o *bandOptions) {
		o.sparseTolerant = true
	}
}

// DatasetOption configures a [Dataset] at construction time.
type DatasetOption func(*datasetOptions)

type datasetOptions struct {
	config *Config
}

func defaultDatasetOptions() *datasetOptions {
	return &datasetOptions{config: DefaultConfig()}
}

// WithDatasetConfig overrides the default Config for a dataset's
// multi-band routing heuristics.
func WithDatasetConfig(cfg *Config) DatasetOption {
	return func(o *datasetOptions) {
		if cfg != nil {
			o.config = cfg
		}
	}
}
