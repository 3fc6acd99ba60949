package template

import (
	"context"
	"strings"
	"sync"
	"time"

	"go-assetreport/internal/config"
)

// CheckState is the name-availability machine: Idle -> Checking -> Valid or
// Invalid. The machine is explicit so callers can render intermediate state;
// the debounce delay is a policy parameter, not a structural requirement.
type CheckState string

const (
	CheckIdle     CheckState = "idle"
	CheckChecking CheckState = "checking"
	CheckValid    CheckState = "valid"
	CheckInvalid  CheckState = "invalid"
)

// NameChecker validates template name availability while the operator
// types. Overlapping checks are last-wins: a stale completion never
// overwrites a newer one's state.
type NameChecker struct {
	repo  TemplateRepository
	delay time.Duration

	mu    sync.Mutex
	state CheckState
	seq   int64
}

func NewNameChecker(repo TemplateRepository, cfg *config.Config) *NameChecker {
	return &NameChecker{
		repo:  repo,
		delay: time.Duration(cfg.NameCheckDelayMs) * time.Millisecond,
		state: CheckIdle,
	}
}

func (c *NameChecker) State() CheckState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Check runs one availability check. An empty name is immediately Invalid.
func (c *NameChecker) Check(ctx context.Context, orgID, name string) (CheckState, error) {
	name = strings.TrimSpace(name)

	c.mu.Lock()
	c.seq++
	myTurn := c.seq
	c.state = CheckChecking
	c.mu.Unlock()

	if name == "" {
		return c.settle(myTurn, CheckInvalid), nil
	}

	if c.delay > 0 {
		select {
		case <-time.After(c.delay):
		case <-ctx.Done():
			return CheckIdle, ctx.Err()
		}
	}

	exists, err := c.repo.ExistsByName(ctx, orgID, name)
	if err != nil {
		return c.settle(myTurn, CheckIdle), err
	}

	if exists {
		return c.settle(myTurn, CheckInvalid), nil
	}
	return c.settle(myTurn, CheckValid), nil
}

// settle records the outcome unless a newer check has started.
func (c *NameChecker) settle(turn int64, outcome CheckState) CheckState {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.seq == turn {
		c.state = outcome
	}
	return outcome
}
