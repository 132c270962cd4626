package mocks

import (
	"context"

	"campusroom/infras/otel"
)

// NewOtel returns an otel.Otel whose scopes record nothing.
func NewOtel() otel.Otel {
	return discard{}
}

// NewScope returns a scope that records nothing.
func NewScope() otel.Scope {
	return discardScope{}
}

type discard struct{}

func (discard) NewScope(ctx context.Context, _, _ string) (context.Context, otel.Scope) {
	return ctx, discardScope{}
}

func (discard) Shutdown(context.Context) error { return nil }

type discardScope struct{}

func (discardScope) End() {}
func (discardScope) TraceError(error) {}
func (discardScope) TraceIfError(*error) {}
func (discardScope) AddEvent(string) {}
func (discardScope) SetAttribute(string, any) {}
func (discardScope) SetAttributes(map[string]any) {}
