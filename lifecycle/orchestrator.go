// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package lifecycle

import (
	"context"
	"fmt"

	"github.com/netascode/go-netdev/logging"
	"github.com/netascode/go-netdev/restconf"
)

// Step names in report order.
const (
	StepCreate       = "create"
	StepVerifyCreate = "verify-create"
	StepUpdate       = "update"
	StepVerifyUpdate = "verify-update"
	StepDelete       = "delete"
)

// Dispatcher issues authenticated RESTCONF requests. *restconf.Client
// satisfies it.
type Dispatcher interface {
	Do(ctx context.Context, method, path, body string) (restconf.Res, error)
}

// Step records the outcome of one lifecycle operation.
type Step struct {
	// Name identifies the step (create, verify-create, ...)
	Name string

	// OK indicates the step succeeded
	OK bool

	// StatusCode is the HTTP status from the device, zero if no response
	// was received
	StatusCode int

	// Kind classifies a failure, restconf.KindNone on success
	Kind restconf.Kind

	// Err holds the step error, nil on success
	Err error
}

// Report is the outcome of a full lifecycle pass.
type Report struct {
	// Interface is the name of the interface driven through the pass
	Interface string

	// Steps holds one entry per executed step, in execution order.
	// An aborted pass contains fewer than five steps.
	Steps []Step
}

// OK reports whether every executed step succeeded.
func (r Report) OK() bool {
	for _, s := range r.Steps {
		if !s.OK {
			return false
		}
	}
	return len(r.Steps) > 0
}

// Failed returns the failed steps.
func (r Report) Failed() []Step {
	var failed []Step
	for _, s := range r.Steps {
		if !s.OK {
			failed = append(failed, s)
		}
	}
	return failed
}

// Orchestrator drives the create, read, update, read, delete pass.
type Orchestrator struct {
	dispatcher Dispatcher
	logger     logging.Logger
}

// NewOrchestrator creates an Orchestrator running against the given
// dispatcher.
func NewOrchestrator(dispatcher Dispatcher, opts ...func(*Orchestrator)) *Orchestrator {
	o := &Orchestrator{
		dispatcher: dispatcher,
		logger:     &logging.NoOpLogger{},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets a custom logger implementation. Default is the no-op
// logger.
func WithLogger(logger logging.Logger) func(*Orchestrator) {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Run executes the full lifecycle pass for intf, changing its description
// to updatedDescription in the update step.
//
// A failed create aborts the pass and returns a single-step report. After
// a successful create the delete step always runs, regardless of
// intermediate failures, so no configuration is left on the device. The
// returned error is the first step error, nil when every step succeeded.
func (o *Orchestrator) Run(ctx context.Context, intf Interface, updatedDescription string) (report Report, err error) {
	report = Report{Interface: intf.Name}

	if err := intf.Validate(); err != nil {
		return report, err
	}

	o.logger.Info(ctx, "lifecycle pass started", "interface", intf.Name)

	// Create
	step := o.create(ctx, intf)
	report.Steps = append(report.Steps, step)
	if !step.OK {
		o.logger.Error(ctx, "create failed, pass aborted",
			"interface", intf.Name,
			"kind", step.Kind.String())
		return report, step.Err
	}

	// The interface now exists on the device; remove it no matter what
	// the intermediate steps do.
	defer func() {
		del := o.delete(ctx, intf)
		report.Steps = append(report.Steps, del)

		if err == nil {
			for _, s := range report.Steps {
				if !s.OK {
					err = s.Err
					if err == nil {
						err = fmt.Errorf("%s: device rejected request (status %d)", s.Name, s.StatusCode)
					}
					break
				}
			}
		}
	}()

	report.Steps = append(report.Steps, o.verifyCreate(ctx, intf))
	report.Steps = append(report.Steps, o.update(ctx, intf, updatedDescription))
	report.Steps = append(report.Steps, o.verifyUpdate(ctx, intf, updatedDescription))

	return report, nil
}

func (o *Orchestrator) create(ctx context.Context, intf Interface) Step {
	payload, err := intf.CreatePayload()
	if err != nil {
		return Step{Name: StepCreate, Kind: restconf.KindFault, Err: err}
	}

	res, err := o.dispatcher.Do(ctx, "POST", CollectionPath, payload)
	return stepFrom(StepCreate, res, err)
}

func (o *Orchestrator) verifyCreate(ctx context.Context, intf Interface) Step {
	res, err := o.dispatcher.Do(ctx, "GET", intf.Path(), "")
	step := stepFrom(StepVerifyCreate, res, err)
	if !step.OK {
		o.logger.Warn(ctx, "create verification failed, continuing",
			"interface", intf.Name,
			"kind", step.Kind.String())
		return step
	}

	name := res.GetValue("ietf-interfaces:interface.0.name").String()
	if name == "" {
		// Some devices return the object without the list wrapping
		name = res.GetValue("ietf-interfaces:interface.name").String()
	}
	if name != intf.Name {
		step.OK = false
		step.Err = fmt.Errorf("verify-create: device returned interface %q, expected %q", name, intf.Name)
		o.logger.Warn(ctx, "created interface mismatch, continuing",
			"expected", intf.Name,
			"actual", name)
		return step
	}

	description := res.GetValue("ietf-interfaces:interface.0.description")
	if !description.Exists() {
		description = res.GetValue("ietf-interfaces:interface.description")
	}
	if description.String() != intf.Description {
		step.OK = false
		step.Err = fmt.Errorf("verify-create: device returned description %q, expected %q", description.String(), intf.Description)
		o.logger.Warn(ctx, "created interface description mismatch, continuing",
			"expected", intf.Description,
			"actual", description.String())
		return step
	}

	enabled := res.GetValue("ietf-interfaces:interface.0.enabled")
	if !enabled.Exists() {
		enabled = res.GetValue("ietf-interfaces:interface.enabled")
	}
	if enabled.Exists() && enabled.Bool() != intf.Enabled {
		step.OK = false
		step.Err = fmt.Errorf("verify-create: device returned enabled=%v, expected %v", enabled.Bool(), intf.Enabled)
	}
	return step
}

func (o *Orchestrator) update(ctx context.Context, intf Interface, description string) Step {
	payload, err := UpdatePayload(description)
	if err != nil {
		return Step{Name: StepUpdate, Kind: restconf.KindFault, Err: err}
	}

	res, err := o.dispatcher.Do(ctx, "PATCH", intf.Path(), payload)
	step := stepFrom(StepUpdate, res, err)
	if !step.OK {
		o.logger.Warn(ctx, "update failed, continuing",
			"interface", intf.Name,
			"kind", step.Kind.String())
	}
	return step
}

func (o *Orchestrator) verifyUpdate(ctx context.Context, intf Interface, description string) Step {
	res, err := o.dispatcher.Do(ctx, "GET", intf.Path(), "")
	step := stepFrom(StepVerifyUpdate, res, err)
	if !step.OK {
		o.logger.Warn(ctx, "update verification failed, continuing",
			"interface", intf.Name,
			"kind", step.Kind.String())
		return step
	}

	got := res.GetValue("ietf-interfaces:interface.0.description").String()
	if got == "" {
		got = res.GetValue("ietf-interfaces:interface.description").String()
	}
	if got != description {
		step.OK = false
		step.Err = fmt.Errorf("verify-update: device returned description %q, expected %q", got, description)
		o.logger.Warn(ctx, "updated description mismatch, continuing",
			"expected", description,
			"actual", got)
	}
	return step
}

func (o *Orchestrator) delete(ctx context.Context, intf Interface) Step {
	res, err := o.dispatcher.Do(ctx, "DELETE", intf.Path(), "")
	step := stepFrom(StepDelete, res, err)
	if !step.OK {
		o.logger.Error(ctx, "cleanup delete failed, device may hold leftover configuration",
			"interface", intf.Name,
			"kind", step.Kind.String())
	} else {
		o.logger.Info(ctx, "lifecycle pass cleaned up", "interface", intf.Name)
	}
	return step
}

// stepFrom folds a dispatch outcome into a Step.
func stepFrom(name string, res restconf.Res, err error) Step {
	return Step{
		Name:       name,
		OK:         err == nil && res.OK,
		StatusCode: res.StatusCode,
		Kind:       res.Kind,
		Err:        err,
	}
}
