package provisionermock

import (
	"context"
	"sync/atomic"

	"motac-hrms/internal/domain/application"
	"motac-hrms/internal/usecase/provisioning"
)

var _ provisioning.Provisioner = (*Provisioner)(nil)

// Provisioner is a function-backed mock counting invocations, so tests can
// assert the collaborator was (not) called.
type Provisioner struct {
	ProvisionAccountFn func(ctx context.Context, app *application.EmailApplication) (provisioning.ProvisionOutcome, error)
	calls              atomic.Int64
}

func (m *Provisioner) ProvisionAccount(ctx context.Context, app *application.EmailApplication) (provisioning.ProvisionOutcome, error) {
	m.calls.Add(1)
	if m.ProvisionAccountFn != nil {
		return m.ProvisionAccountFn(ctx, app)
	}
	return provisioning.ProvisionOutcome{Success: true}, nil
}

func (m *Provisioner) Calls() int { return int(m.calls.Load()) }
