// Copyright (c) Microsoft Corporation.
// Licensed under the MIT license.
package vmclient

import (
	"context"
	"errors"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	compute "github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/compute/armcompute/v6"
)

// Client implements the Interface
type Client struct {
	client *compute.VirtualMachinesClient
}

// New creates a new VM client bound to subscriptionID
func New(subscriptionID string, credential azcore.TokenCredential, options *arm.ClientOptions) (*Client, error) {
	if subscriptionID == "" {
		return nil, errors.New("parameter subscriptionID cannot be empty")
	}
	client, err := compute.NewVirtualMachinesClient(subscriptionID, credential, options)
	if err != nil {
		return nil, err
	}

	return &Client{
		client: client,
	}, nil
}

// ListAll lists all the virtual machines in the subscription
func (c *Client) ListAll(ctx context.Context) ([]*compute.VirtualMachine, error) {
	pager := c.client.NewListAllPager(nil)
	var vms []*compute.VirtualMachine
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		vms = append(vms, page.Value...)
	}
	return vms, nil
}

// BeginStart starts a virtual machine without waiting for the long running operation
func (c *Client) BeginStart(ctx context.Context, resourceGroupName, vmName string) error {
	if resourceGroupName == "" {
		return errors.New("parameter resourceGroupName cannot be empty")
	}
	if vmName == "" {
		return errors.New("parameter vmName cannot be empty")
	}

	_, err := c.client.BeginStart(ctx, resourceGroupName, vmName, nil)
	return err
}

// BeginPowerOff powers off a virtual machine without waiting for the long running operation
func (c *Client) BeginPowerOff(ctx context.Context, resourceGroupName, vmName string) error {
	if resourceGroupName == "" {
		return errors.New("parameter resourceGroupName cannot be empty")
	}
	if vmName == "" {
		return errors.New("parameter vmName cannot be empty")
	}

	_, err := c.client.BeginPowerOff(ctx, resourceGroupName, vmName, nil)
	return err
}
