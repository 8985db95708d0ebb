package output

import (
	"encoding/json"

	"github.com/nwgo/networth-projector/internal/calculation"
)

// JSONFormatter emits the full projection result as indented JSON, for
// piping into other tools or the web API.
type JSONFormatter struct{}

func (JSONFormatter) Name() string { return "json" }

func (JSONFormatter) Format(result *calculation.ProjectionResult) ([]byte, error) {
	return json.MarshalIndent(result, "", "  ")
}
