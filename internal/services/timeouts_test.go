package services

import (
	"context"
	"testing"
	"time"
)

func TestBoundedAppliesDeadline(t *testing.T) {
	ctx, cancel := bounded(context.Background(), 5*time.Second)
	defer cancel()

	if _, ok := ctx.Deadline(); !ok {
		t.Fatal("expected a deadline on the bounded context")
	}
}

func TestBoundedZeroTimeoutPassesThrough(t *testing.T) {
	parent := context.Background()
	ctx, cancel := bounded(parent, 0)
	defer cancel()

	if ctx != parent {
		t.Fatal("zero timeout must return the parent context unchanged")
	}
	if _, ok := ctx.Deadline(); ok {
		t.Fatal("zero timeout must not impose a deadline")
	}
}
