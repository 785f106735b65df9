package events

import "github.com/teskalabs/asab-console/internal/logging"

type APITracer struct{}

var API = APITracer{}

func (APITracer) Request(id, method, url string) {
	logging.Trace("api.request", map[string]interface{}{"id": id, "method": method, "url": url})
}

func (APITracer) Response(id string, status int) {
	logging.Trace("api.response", map[string]interface{}{"id": id, "status": status})
}

func (APITracer) Error(id string, err error) {
	if err == nil {
		return
	}
	logging.Trace("api.error", map[string]interface{}{"id": id, "error": err.Error()})
}
