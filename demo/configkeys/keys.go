package configkeys

const (
	delimiter = "."

	DemoPrefix = "demo"
	DemoExpr   = DemoPrefix + delimiter + "expr"
	DemoRuns   = DemoPrefix + delimiter + "runs"

	MemoPrefix     = "memo"
	MemoConcurrent = MemoPrefix + delimiter + "concurrent"

	LogPrefix = "log"
	LogLevel  = LogPrefix + delimiter + "level"

	MetricsPrefix  = "metrics"
	MetricsEnabled = MetricsPrefix + delimiter + "enabled"
)
