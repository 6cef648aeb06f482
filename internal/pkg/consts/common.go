package consts

const (
	HealthStatusOK = "ok"
)

const (
	HeaderTraceID = "X-Trace-ID"
)
