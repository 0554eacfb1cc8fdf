package reporters

import (
	"fmt"

	"github.com/reaandrew/boostfindings/core"
)

var SupportedFormats = []string{"xlsx", "csv", "json", "http"}

func CreateReporter(reportFormat string, options ReporterOptions) (core.Reporter, error) {
	switch reportFormat {
	case "xlsx":
		return XlsxReporter{
			Queries:        options.Queries,
			ArtifactPrefix: options.ArtifactPrefix,
			OutputDir:      options.OutputDir,
		}, nil
	case "csv":
		return CsvReporter{
			ArtifactPrefix: options.ArtifactPrefix,
			OutputDir:      options.OutputDir,
		}, nil
	case "json":
		return JsonReporter{
			Queries:        options.Queries,
			ArtifactPrefix: options.ArtifactPrefix,
			OutputDir:      options.OutputDir,
		}, nil
	case "http":
		if options.BaseUrl == "" {
			return nil, fmt.Errorf("the http report format needs a base url")
		}
		return NewDefaultHttpReporter(options.BaseUrl), nil
	}

	return nil, fmt.Errorf("unknown report format: %s", reportFormat)
}
