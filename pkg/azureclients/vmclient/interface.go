// Copyright (c) Microsoft Corporation.
// Licensed under the MIT license.
package vmclient

import (
	"context"

	compute "github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/compute/armcompute/v6"
)

//go:generate mockgen -destination=./mockvmclient/interface.go -package=mockvmclient -source=interface.go

// Interface is a client interface for virtual machines of a single subscription.
type Interface interface {
	// ListAll() gets all virtual machines in the subscription
	ListAll(ctx context.Context) ([]*compute.VirtualMachine, error)

	// BeginStart() sends the power on request and returns once Azure accepted it
	BeginStart(ctx context.Context, resourceGroupName, vmName string) error

	// BeginPowerOff() sends the power off request and returns once Azure accepted it
	BeginPowerOff(ctx context.Context, resourceGroupName, vmName string) error
}
