package httpx

import "net/http"

// Doer is the minimal HTTP client interface used across packages.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// APIVersion pins the Zotero Web API version for all outbound requests.
const APIVersion = "3"

// PrepareAPI sets the JSON accept and API-version headers on the request.
func PrepareAPI(req *http.Request) {
	if req != nil {
		req.Header.Set("Accept", "application/json")
		req.Header.Set("Zotero-API-Version", APIVersion)
	}
}
