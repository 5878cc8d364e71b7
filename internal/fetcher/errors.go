package fetcher

import (
	"errors"
	"fmt"
	"strings"

	"github.com/angeloszaimis/log-output/internal/strategy"
)

// Kind classifies why a strategy failed. The chain logic does not look at
// it; it is kept for logs and metrics.
type Kind string

const (
	KindResolution  Kind = "resolution"
	KindTimeout     Kind = "timeout"
	KindDNS         Kind = "dns"
	KindConnection  Kind = "connection"
	KindStatus      Kind = "status"
	KindDecode      Kind = "decode"
	KindCanceled    Kind = "canceled"
	KindBreakerOpen Kind = "breaker_open"
)

var (
	ErrResolution     = errors.New("no endpoint resolved")
	ErrBreakerOpen    = errors.New("circuit breaker open")
	ErrMissingField   = errors.New("field missing from response")
	ErrChainExhausted = errors.New("all strategies failed")
)

// AttemptError is the failure of one strategy within a chain.
type AttemptError struct {
	Strategy strategy.Strategy
	Endpoint strategy.Endpoint
	Kind     Kind
	Err      error
}

func (e *AttemptError) Error() string {
	var b strings.Builder
	b.WriteString(e.Strategy.String())
	if e.Endpoint.Host != "" {
		fmt.Fprintf(&b, " (%s)", e.Endpoint)
	}
	fmt.Fprintf(&b, ": %s", e.Kind)
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *AttemptError) Unwrap() error {
	return e.Err
}

// ExhaustedError carries the ordered failures of a chain that produced no
// value. It matches ErrChainExhausted.
type ExhaustedError struct {
	Failures []*AttemptError
}

func (e *ExhaustedError) Error() string {
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		parts = append(parts, f.Error())
	}
	return fmt.Sprintf("%s: [%s]", ErrChainExhausted, strings.Join(parts, "; "))
}

func (e *ExhaustedError) Is(target error) bool {
	return target == ErrChainExhausted
}

func (e *ExhaustedError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failures))
	for _, f := range e.Failures {
		errs = append(errs, f)
	}
	return errs
}
