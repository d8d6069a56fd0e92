package llm

import (
	"net/http"
	"net/url"
)

// proxyFunc builds the transport proxy selector for providers reached over
// plain HTTP clients. Explicit proxy URLs from the configuration win;
// otherwise the standard proxy environment variables apply.
func proxyFunc(httpProxy, httpsProxy string) func(*http.Request) (*url.URL, error) {
	if httpProxy == "" && httpsProxy == "" {
		return http.ProxyFromEnvironment
	}

	return func(req *http.Request) (*url.URL, error) {
		if req.URL.Scheme == "https" && httpsProxy != "" {
			return url.Parse(httpsProxy)
		}
		if httpProxy != "" {
			return url.Parse(httpProxy)
		}
		return http.ProxyFromEnvironment(req)
	}
}
