package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/shehryarbajwa/aidolon-browser-go/pkg/models"
)

// Response is the envelope around every API call.
type Response[T any] struct {
	StatusCode int
	Content    []byte
	Headers    http.Header
	Parsed     Result[T]
}

// ResultKind tells which branch of a Result is populated
type ResultKind int

const (
	KindSuccess ResultKind = iota
	KindError
	KindUnexpected
)

func (k ResultKind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindError:
		return "error"
	default:
		return "unexpected"
	}
}

// Result is the decoded body of a response. Exactly one field is non-nil.
type Result[T any] struct {
	Success    *T
	Error      *models.Error
	Unexpected *UnexpectedStatusError
}

// Kind returns the populated branch.
func (r Result[T]) Kind() ResultKind {
	switch {
	case r.Success != nil:
		return KindSuccess
	case r.Error != nil:
		return KindError
	default:
		return KindUnexpected
	}
}

// UnexpectedStatusError reports a status code the API does not document.
type UnexpectedStatusError struct {
	StatusCode int
	Content    []byte
}

func (e *UnexpectedStatusError) Error() string {
	return fmt.Sprintf("unexpected status code: %d\n\nResponse content:\n%s", e.StatusCode, e.Content)
}

// documentedErrors are the statuses whose body decodes into models.Error.
var documentedErrors = map[int]bool{
	http.StatusBadRequest:          true,
	http.StatusUnauthorized:        true,
	http.StatusNotFound:            true,
	http.StatusInternalServerError: true,
}

func parseResult[T any](status int, content []byte) (Result[T], error) {
	switch {
	case status == http.StatusOK:
		v := new(T)
		if err := json.Unmarshal(content, v); err != nil {
			return Result[T]{}, fmt.Errorf("decode %d response: %w", status, err)
		}
		return Result[T]{Success: v}, nil
	case documentedErrors[status]:
		e := new(models.Error)
		if err := json.Unmarshal(content, e); err != nil {
			return Result[T]{}, fmt.Errorf("decode %d response: %w", status, err)
		}
		return Result[T]{Error: e}, nil
	default:
		return Result[T]{Unexpected: &UnexpectedStatusError{StatusCode: status, Content: content}}, nil
	}
}

// send issues one request and builds its envelope.
func send[T any](ctx context.Context, c *Client, method, path string, body any) (*Response[T], error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	out := &Response[T]{
		StatusCode: resp.StatusCode,
		Content:    content,
		Headers:    resp.Header,
	}
	out.Parsed, err = parseResult[T](resp.StatusCode, content)
	if err != nil {
		return out, err
	}
	if out.Parsed.Unexpected != nil && c.raiseOnUnexpected {
		return out, out.Parsed.Unexpected
	}
	return out, nil
}

// payload reduces an envelope to its success value.
func payload[T any](resp *Response[T], err error) (*T, error) {
	if err != nil {
		return nil, err
	}
	switch resp.Parsed.Kind() {
	case KindSuccess:
		return resp.Parsed.Success, nil
	case KindError:
		return nil, resp.Parsed.Error
	default:
		return nil, resp.Parsed.Unexpected
	}
}
