package fetcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/angeloszaimis/log-output/internal/strategy"
)

const maxBodyBytes = 1 << 20

// AttemptRunner performs a single GET against a resolved endpoint and reads
// one integer field from the JSON body.
type AttemptRunner struct {
	dialer *net.Dialer
}

func NewAttemptRunner() *AttemptRunner {
	return &AttemptRunner{
		dialer: &net.Dialer{},
	}
}

// TryFetch returns the integer value of field from GET http://endpoint/path.
// timeout bounds the whole exchange, connect and body included. Every
// failure is an *AttemptError with its Kind set.
func (r *AttemptRunner) TryFetch(ctx context.Context, endpoint strategy.Endpoint, path, field string, timeout time.Duration) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	fail := func(kind Kind, err error) (int, error) {
		return 0, &AttemptError{Endpoint: endpoint, Kind: kind, Err: err}
	}

	// A transport per attempt: nothing is pooled across strategies or chains.
	transport := &http.Transport{
		DialContext:       r.dialer.DialContext,
		DisableKeepAlives: true,
	}
	defer transport.CloseIdleConnections()
	client := &http.Client{Transport: transport}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.URL(path).String(), nil)
	if err != nil {
		return fail(KindConnection, err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := client.Do(req)
	if err != nil {
		return fail(classify(ctx, err), err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return fail(KindStatus, fmt.Errorf("unexpected status %d", res.StatusCode))
	}

	value, err := decodeField(io.LimitReader(res.Body, maxBodyBytes), field)
	if err != nil {
		if ctx.Err() != nil {
			return fail(classify(ctx, err), err)
		}
		return fail(KindDecode, err)
	}

	return value, nil
}

func decodeField(body io.Reader, field string) (int, error) {
	dec := json.NewDecoder(body)
	dec.UseNumber()

	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return 0, fmt.Errorf("decode body: %w", err)
	}

	raw, ok := doc[field]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrMissingField, field)
	}

	num, ok := raw.(json.Number)
	if !ok {
		return 0, fmt.Errorf("field %q is not a number", field)
	}

	n, err := num.Int64()
	if err != nil {
		return 0, fmt.Errorf("field %q is not an integer: %w", field, err)
	}

	return int(n), nil
}

func classify(ctx context.Context, err error) Kind {
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return KindTimeout
	case errors.Is(ctx.Err(), context.Canceled):
		return KindCanceled
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		if dnsErr.IsTimeout {
			return KindTimeout
		}
		return KindDNS
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}

	return KindConnection
}
