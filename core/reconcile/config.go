package reconcile

// Config holds configuration for comparison runs.
type Config struct {
	// OutputLocation is the schema (or storage prefix) sample datasets are written to.
	OutputLocation string `mapstructure:"output_location" default:"UTIL"`
	// RunIDFormat selects how run identifiers are generated (timestamp, uuid).
	RunIDFormat string `mapstructure:"run_id_format" default:"timestamp"`
	// RuleSource selects where rules are read from (table, file).
	RuleSource string `mapstructure:"rule_source" default:"table"`
	// RulesFile is the YAML file holding rules when RuleSource is "file".
	RulesFile string `mapstructure:"rules_file" default:"rules.yaml"`
	// SampleSink selects where sample datasets are written (sql, storage).
	SampleSink string `mapstructure:"sample_sink" default:"sql"`
	// ReportBucket, when set, receives a JSON report of every run.
	ReportBucket string `mapstructure:"report_bucket" default:""`
}

const (
	RunIDTimestamp = "timestamp"
	RunIDUUID      = "uuid"

	RuleSourceTable = "table"
	RuleSourceFile  = "file"

	SinkSQL     = "sql"
	SinkStorage = "storage"
)

// IsValid checks the enumerated settings.
func (c Config) IsValid() bool {
	switch c.RunIDFormat {
	case RunIDTimestamp, RunIDUUID:
	default:
		return false
	}
	switch c.RuleSource {
	case RuleSourceTable, RuleSourceFile:
	default:
		return false
	}
	switch c.SampleSink {
	case SinkSQL, SinkStorage:
	default:
		return false
	}
	return c.OutputLocation != ""
}
