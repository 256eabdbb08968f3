package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	testhelpers "github.com/khangtran/keygate/internal/test"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestNewExpirySweeperDefaults(t *testing.T) {
	sweeper := NewExpirySweeper(&testhelpers.SweeperFacadeStub{}, 0, 0, testLogger())
	if sweeper.interval != time.Minute {
		t.Fatalf("expected default interval, got %v", sweeper.interval)
	}
	if sweeper.ttl != 24*time.Hour {
		t.Fatalf("expected default ttl, got %v", sweeper.ttl)
	}
}

func TestSweeperExpiresOnTick(t *testing.T) {
	facade := &testhelpers.SweeperFacadeStub{}
	sweeper := NewExpirySweeper(facade, 5*time.Millisecond, time.Hour, testLogger())

	sweeper.Start(context.Background())
	defer sweeper.Stop()

	deadline := time.After(time.Second)
	for facade.SweepCount() == 0 {
		select {
		case <-deadline:
			t.Fatal("expected at least one sweep")
		case <-time.After(time.Millisecond):
		}
	}
}

func TestSweeperPassesConfiguredTTL(t *testing.T) {
	got := make(chan time.Duration, 1)
	facade := &testhelpers.SweeperFacadeStub{
		ExpireFn: func(_ context.Context, ttl time.Duration) (int64, error) {
			select {
			case got <- ttl:
			default:
			}
			return 1, nil
		},
	}
	sweeper := NewExpirySweeper(facade, 5*time.Millisecond, 36*time.Hour, testLogger())

	sweeper.Start(context.Background())
	defer sweeper.Stop()

	select {
	case ttl := <-got:
		if ttl != 36*time.Hour {
			t.Fatalf("expected 36h ttl, got %v", ttl)
		}
	case <-time.After(time.Second):
		t.Fatal("expected sweep to run")
	}
}

func TestSweeperSurvivesFacadeErrors(t *testing.T) {
	facade := &testhelpers.SweeperFacadeStub{
		ExpireFn: func(context.Context, time.Duration) (int64, error) {
			return 0, errors.New("db down")
		},
	}
	sweeper := NewExpirySweeper(facade, 5*time.Millisecond, time.Hour, testLogger())

	sweeper.Start(context.Background())

	deadline := time.After(time.Second)
	for facade.SweepCount() < 2 {
		select {
		case <-deadline:
			t.Fatal("expected sweeps to continue after an error")
		case <-time.After(time.Millisecond):
		}
	}

	sweeper.Stop()
}

func TestSweeperStopIsIdempotent(t *testing.T) {
	sweeper := NewExpirySweeper(&testhelpers.SweeperFacadeStub{}, time.Hour, time.Hour, testLogger())
	sweeper.Start(context.Background())
	sweeper.Stop()
	sweeper.Stop()
}
