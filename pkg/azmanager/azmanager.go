/*
MIT License

Copyright (c) Microsoft Corporation.

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE
*/
package azmanager

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	compute "github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/compute/armcompute/v6"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armsubscriptions"
	"sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/kohanyirobert/azure-start-stop-vm-app-function/pkg/azureclients"
	"github.com/kohanyirobert/azure-start-stop-vm-app-function/pkg/azureclients/subscriptionclient"
	"github.com/kohanyirobert/azure-start-stop-vm-app-function/pkg/utils/to"
)

const (
	// VM resource ID template
	VMResourceIDTemplate = "/subscriptions/%s/resourceGroups/%s/providers/Microsoft.Compute/virtualMachines/%s"

	vmResourceType = "Microsoft.Compute/virtualMachines"
)

// wrapCall runs operation exactly once and logs its outcome.
func wrapCall(ctx context.Context, operationName string, operation func(context.Context) error) error {
	logger := log.FromContext(ctx)
	if err := operation(ctx); err != nil {
		var respErr *azcore.ResponseError
		if errors.As(err, &respErr) {
			logger.Info(fmt.Sprintf("%s failed", operationName), "error", err.Error(), "errorCode", respErr.ErrorCode, "statusCode", respErr.StatusCode, "level", "warning")
		} else {
			logger.Info(fmt.Sprintf("%s failed", operationName), "error", err.Error(), "level", "warning")
		}
		return err
	}
	logger.V(1).Info(fmt.Sprintf("%s success", operationName))
	return nil
}

type AzureManager struct {
	factory azureclients.AzureClientsFactory

	SubscriptionClient subscriptionclient.Interface
}

func CreateAzureManager(factory azureclients.AzureClientsFactory) (*AzureManager, error) {
	subscriptionClient, err := factory.GetSubscriptionsClient()
	if err != nil {
		return nil, fmt.Errorf("failed to create subscriptions client: %w", err)
	}
	return &AzureManager{
		factory:            factory,
		SubscriptionClient: subscriptionClient,
	}, nil
}

func (az *AzureManager) ListTenants(ctx context.Context) ([]*armsubscriptions.TenantIDDescription, error) {
	logger := log.FromContext(ctx).WithValues("operation", "ListTenants")
	ctx = log.IntoContext(ctx, logger)

	var tenants []*armsubscriptions.TenantIDDescription
	err := wrapCall(ctx, "ListTenants", func(ctx context.Context) error {
		var err error
		tenants, err = az.SubscriptionClient.ListTenants(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return tenants, nil
}

func (az *AzureManager) ListSubscriptions(ctx context.Context) ([]*armsubscriptions.Subscription, error) {
	logger := log.FromContext(ctx).WithValues("operation", "ListSubscriptions")
	ctx = log.IntoContext(ctx, logger)

	var subscriptions []*armsubscriptions.Subscription
	err := wrapCall(ctx, "ListSubscriptions", func(ctx context.Context) error {
		var err error
		subscriptions, err = az.SubscriptionClient.List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return subscriptions, nil
}

// ListVMs lists all the virtual machines in the subscription, across resource groups.
func (az *AzureManager) ListVMs(ctx context.Context, subscriptionID string) ([]*compute.VirtualMachine, error) {
	if subscriptionID == "" {
		return nil, fmt.Errorf("subscription ID is empty")
	}
	logger := log.FromContext(ctx).WithValues("operation", "ListVMs", "subscriptionID", subscriptionID)
	ctx = log.IntoContext(ctx, logger)

	client, err := az.factory.GetVirtualMachinesClient(subscriptionID)
	if err != nil {
		return nil, fmt.Errorf("failed to create virtual machines client: %w", err)
	}
	var vms []*compute.VirtualMachine
	err = wrapCall(ctx, "ListVMs", func(ctx context.Context) error {
		var err error
		vms, err = client.ListAll(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return vms, nil
}

// PowerOnVM requests the virtual machine to start and returns once Azure accepted the request.
func (az *AzureManager) PowerOnVM(ctx context.Context, vm *compute.VirtualMachine) error {
	id, err := parseVMResourceID(vm)
	if err != nil {
		return err
	}
	logger := log.FromContext(ctx).WithValues("operation", "PowerOnVM", "subscriptionID", id.SubscriptionID, "resourceGroup", id.ResourceGroupName, "resourceName", id.Name)
	ctx = log.IntoContext(ctx, logger)

	client, err := az.factory.GetVirtualMachinesClient(id.SubscriptionID)
	if err != nil {
		return fmt.Errorf("failed to create virtual machines client: %w", err)
	}
	return wrapCall(ctx, "PowerOnVM", func(ctx context.Context) error {
		return client.BeginStart(ctx, id.ResourceGroupName, id.Name)
	})
}

// PowerOffVM requests the virtual machine to power off and returns once Azure accepted the request.
func (az *AzureManager) PowerOffVM(ctx context.Context, vm *compute.VirtualMachine) error {
	id, err := parseVMResourceID(vm)
	if err != nil {
		return err
	}
	logger := log.FromContext(ctx).WithValues("operation", "PowerOffVM", "subscriptionID", id.SubscriptionID, "resourceGroup", id.ResourceGroupName, "resourceName", id.Name)
	ctx = log.IntoContext(ctx, logger)

	client, err := az.factory.GetVirtualMachinesClient(id.SubscriptionID)
	if err != nil {
		return fmt.Errorf("failed to create virtual machines client: %w", err)
	}
	return wrapCall(ctx, "PowerOffVM", func(ctx context.Context) error {
		return client.BeginPowerOff(ctx, id.ResourceGroupName, id.Name)
	})
}

func parseVMResourceID(vm *compute.VirtualMachine) (*arm.ResourceID, error) {
	if vm == nil || to.Val(vm.ID) == "" {
		return nil, fmt.Errorf("vm resource ID is empty")
	}
	id, err := arm.ParseResourceID(*vm.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse vm resource ID %q: %w", *vm.ID, err)
	}
	if !strings.EqualFold(id.ResourceType.String(), vmResourceType) {
		return nil, fmt.Errorf("resource %q is not a virtual machine", *vm.ID)
	}
	return id, nil
}
