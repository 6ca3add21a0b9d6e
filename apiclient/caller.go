package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"orion-console/httpclient"
)

const maxErrorBody = 2048

// caller 는 JSON 요청 한 번을 수행하고 모든 실패를 *Error 로 정규화한다.
type caller struct {
	base *httpclient.BaseClient
}

func (c caller) call(ctx context.Context, op, method, relPath string, q url.Values, header http.Header, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return &Error{Op: op, Message: err.Error(), Err: err}
		}
		reader = bytes.NewReader(buf)
	}

	req, err := c.base.NewRequest(ctx, method, relPath, q, reader)
	if err != nil {
		return transportError(op, err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Set(k, v)
		}
	}

	resp, err := c.base.Do(req)
	if err != nil {
		return transportError(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return statusError(op, resp.StatusCode, b)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if err == io.EOF {
			return nil
		}
		return &Error{Op: op, Status: resp.StatusCode, Message: "invalid response body: " + err.Error(), Err: err}
	}
	return nil
}
