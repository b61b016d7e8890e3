package transport

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/agentstation/aadsync/pkg/errors"
	"github.com/agentstation/aadsync/pkg/logging"
)

// errorBody is the OData error envelope returned by Microsoft REST APIs.
type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// DecodeResponse decodes a JSON response into the target structure.
// Any 2xx status is success; target may be nil when no body is expected.
// Other statuses become an *errors.APIError for service.
func DecodeResponse(resp *http.Response, service string, target any) error {
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logging.Default().Warn().Err(err).Msg("Failed to close response body")
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.WrapResource("read", "response body", endpoint(resp), err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp, service, body)
	}

	if target == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, target); err != nil {
		return errors.WrapResource("decode", "response", endpoint(resp), err)
	}
	return nil
}

func newAPIError(resp *http.Response, service string, body []byte) *errors.APIError {
	apiErr := errors.NewAPIError(service, resp.StatusCode, string(body))
	apiErr.Endpoint = endpoint(resp)

	var parsed errorBody
	if json.Unmarshal(body, &parsed) == nil && parsed.Error.Message != "" {
		apiErr.Code = parsed.Error.Code
		apiErr.Message = parsed.Error.Message
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}

func endpoint(resp *http.Response) string {
	if resp.Request == nil || resp.Request.URL == nil {
		return ""
	}
	return resp.Request.Method + " " + resp.Request.URL.Path
}
