package represent

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'represent'.
func tracer() tracing.Trace {
	return tracing.Select("represent")
}
