package events

import "github.com/teskalabs/asab-console/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Navigate(path string) {
	logging.Trace("app.navigate", map[string]interface{}{"path": path})
}
