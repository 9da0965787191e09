package telemetry

import (
	"github.com/go-resty/resty/v2"
)

const (
	report_resty_request = "resty.request"
)

// InstrumentResty attaches request/response reporting hooks to a resty
// client.
func InstrumentResty(client *resty.Client, tel API) {
	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		tel.ReportDebug("http request", req.Method, req.URL)
		return nil
	})
	client.OnAfterResponse(func(_ *resty.Client, res *resty.Response) error {
		tel.ReportDebug(
			"http response",
			res.Request.Method,
			res.Request.URL,
			res.Status(),
			res.Time().String(),
		)
		return nil
	})
	client.OnError(func(req *resty.Request, err error) {
		tel.ReportBroken(report_resty_request, err, req.Method, req.URL)
	})
}
