// Copyright (c) Microsoft Corporation.
// Licensed under the MIT license.

// Package vmoperation resolves a virtual machine by name inside the configured
// subscription and dispatches a start or stop request against it.
package vmoperation

import (
	"context"
	"errors"
	"net/http"
	"slices"

	compute "github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/compute/armcompute/v6"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armsubscriptions"
	"github.com/go-logr/logr"
	"sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/kohanyirobert/azure-start-stop-vm-app-function/pkg/utils/to"
)

type Operation string

const (
	OperationStart Operation = "start"
	OperationStop  Operation = "stop"

	// DefaultOperation is used when the request names no operation
	DefaultOperation = OperationStart
)

// ParseOperation maps an operation name to an Operation, an empty name maps to DefaultOperation.
func ParseOperation(name string) (Operation, bool) {
	switch Operation(name) {
	case "":
		return DefaultOperation, true
	case OperationStart, OperationStop:
		return Operation(name), true
	}
	return "", false
}

// CloudClient is the capability the handler needs from the Azure control plane.
type CloudClient interface {
	ListTenants(ctx context.Context) ([]*armsubscriptions.TenantIDDescription, error)
	ListSubscriptions(ctx context.Context) ([]*armsubscriptions.Subscription, error)
	ListVMs(ctx context.Context, subscriptionID string) ([]*compute.VirtualMachine, error)
	PowerOnVM(ctx context.Context, vm *compute.VirtualMachine) error
	PowerOffVM(ctx context.Context, vm *compute.VirtualMachine) error
}

// Request is a validated operation request.
type Request struct {
	VMName         string
	Operation      Operation
	SubscriptionID string
}

// Result is the classified outcome of a request. Operation is empty when the
// request was rejected before the operation name was validated.
type Result struct {
	StatusCode int
	Message    string
	Operation  Operation
}

type Handler struct {
	client CloudClient
}

func NewHandler(client CloudClient) *Handler {
	return &Handler{client: client}
}

// Handle validates the request, resolves the virtual machine and dispatches the
// operation without waiting for it to complete. Classified failures are returned
// as a Result; any other error comes from the cloud client and is returned as is.
func (h *Handler) Handle(ctx context.Context, vmName, operationName, subscriptionID string) (Result, error) {
	logger := log.FromContext(ctx).WithValues("vmName", vmName, "operationName", operationName, "subscriptionID", subscriptionID)
	ctx = log.IntoContext(ctx, logger)
	logger.V(1).Info("Received virtual machine operation request")

	req, err := ValidateRequest(vmName, operationName, subscriptionID)
	if err == nil {
		err = h.dispatch(ctx, req)
	}

	var opErr *Error
	switch {
	case err == nil:
		return Result{StatusCode: http.StatusNoContent, Operation: req.Operation}, nil
	case errors.As(err, &opErr):
		logger.Error(err, "Rejected virtual machine operation request", "kind", opErr.Kind)
		return Result{StatusCode: opErr.StatusCode(), Message: opErr.Message, Operation: req.Operation}, nil
	default:
		return Result{Operation: req.Operation}, err
	}
}

// ValidateRequest checks the request parameters in order; the first failure wins.
func ValidateRequest(vmName, operationName, subscriptionID string) (Request, error) {
	if vmName == "" {
		return Request{}, errVMNameRequired()
	}
	op, ok := ParseOperation(operationName)
	if !ok {
		return Request{}, errInvalidOperation()
	}
	req := Request{VMName: vmName, Operation: op}
	if subscriptionID == "" {
		return req, errSubscriptionNotConfigured()
	}
	req.SubscriptionID = subscriptionID
	return req, nil
}

func (h *Handler) dispatch(ctx context.Context, req Request) error {
	logger := log.FromContext(ctx)

	vm, err := h.resolveVM(ctx, req)
	if err != nil {
		return err
	}
	logger = logger.WithValues("vmID", to.Val(vm.ID))

	switch req.Operation {
	case OperationStop:
		logger.V(1).Info("Stopping virtual machine")
		err = h.client.PowerOffVM(ctx, vm)
	case OperationStart:
		logger.V(1).Info("Starting virtual machine")
		err = h.client.PowerOnVM(ctx, vm)
	default:
		return errInvalidOperation()
	}
	if err != nil {
		return err
	}
	logger.Info("Virtual machine operation accepted", "operation", req.Operation)
	return nil
}

func (h *Handler) resolveVM(ctx context.Context, req Request) (*compute.VirtualMachine, error) {
	logger := log.FromContext(ctx)

	if debug := logger.V(1); debug.Enabled() {
		h.logTenants(ctx, debug)
	}

	subscriptions, err := h.client.ListSubscriptions(ctx)
	if err != nil {
		return nil, err
	}
	logSubscriptions(logger.V(1), subscriptions)

	subscription := findSubscription(subscriptions, req.SubscriptionID)
	if subscription == nil {
		return nil, errSubscriptionNotFound(req.SubscriptionID)
	}
	logger.V(1).Info("Using subscription", "displayName", to.Val(subscription.DisplayName))

	vms, err := h.client.ListVMs(ctx, to.Val(subscription.SubscriptionID))
	if err != nil {
		return nil, err
	}
	logVMs(logger.V(1), vms)

	matches := filter(vms, func(vm *compute.VirtualMachine) bool {
		return vm != nil && to.Equal(vm.Name, req.VMName)
	})
	switch len(matches) {
	case 0:
		return nil, errVMNotFound(req.VMName, req.SubscriptionID)
	case 1:
		return matches[0], nil
	default:
		return nil, errMultipleVMs(req.VMName)
	}
}

// logTenants lists tenants for diagnostics only, a failure is logged and ignored.
func (h *Handler) logTenants(ctx context.Context, logger logr.Logger) {
	tenants, err := h.client.ListTenants(ctx)
	if err != nil {
		logger.Info("Failed to list tenants", "error", err.Error())
		return
	}
	logger.Info("Found tenants", "count", len(tenants))
	for _, t := range tenants {
		if t == nil {
			continue
		}
		logger.Info("Tenant", "displayName", to.Val(t.DisplayName), "tenantID", to.Val(t.TenantID))
	}
}

func logSubscriptions(logger logr.Logger, subscriptions []*armsubscriptions.Subscription) {
	if !logger.Enabled() {
		return
	}
	logger.Info("Found subscriptions", "count", len(subscriptions))
	for _, s := range subscriptions {
		if s == nil {
			continue
		}
		logger.Info("Subscription", "displayName", to.Val(s.DisplayName), "subscriptionID", to.Val(s.SubscriptionID))
	}
}

func logVMs(logger logr.Logger, vms []*compute.VirtualMachine) {
	if !logger.Enabled() {
		return
	}
	logger.Info("Found virtual machines", "count", len(vms))
	for _, vm := range vms {
		if vm == nil {
			continue
		}
		logger.Info("Virtual machine", "name", to.Val(vm.Name), "id", to.Val(vm.ID))
	}
}

func findSubscription(subscriptions []*armsubscriptions.Subscription, subscriptionID string) *armsubscriptions.Subscription {
	i := slices.IndexFunc(subscriptions, func(s *armsubscriptions.Subscription) bool {
		return s != nil && to.Equal(s.SubscriptionID, subscriptionID)
	})
	if i < 0 {
		return nil
	}
	return subscriptions[i]
}

func filter[T any](items []T, keep func(T) bool) []T {
	var kept []T
	for _, item := range items {
		if keep(item) {
			kept = append(kept, item)
		}
	}
	return kept
}
