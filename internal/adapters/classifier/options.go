package classifier

import "github.com/okian/loanapi/internal/domain/model"

// Option applies a configuration option to Load.
type Option func(*loadOptions)

type loadOptions struct {
	features []string
}

func defaultLoadOptions() loadOptions {
	return loadOptions{features: model.FeatureOrder}
}

// WithExpectedFeatures sets the column names an artifact must declare.
func WithExpectedFeatures(names []string) Option {
	return func(o *loadOptions) {
		if len(names) > 0 {
			o.features = names
		}
	}
}
