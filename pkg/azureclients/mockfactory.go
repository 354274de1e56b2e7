// Copyright (c) Microsoft Corporation.
// Licensed under the MIT license.
package azureclients

import (
	"fmt"

	"go.uber.org/mock/gomock"

	"github.com/kohanyirobert/azure-start-stop-vm-app-function/pkg/azureclients/subscriptionclient"
	"github.com/kohanyirobert/azure-start-stop-vm-app-function/pkg/azureclients/subscriptionclient/mocksubscriptionclient"
	"github.com/kohanyirobert/azure-start-stop-vm-app-function/pkg/azureclients/vmclient"
	"github.com/kohanyirobert/azure-start-stop-vm-app-function/pkg/azureclients/vmclient/mockvmclient"
)

// MockAzureClientsFactory hands out one mock subscriptions client and one mock
// virtual machines client per subscription ID registered with AddSubscription.
type MockAzureClientsFactory struct {
	ctrl               *gomock.Controller
	SubscriptionClient *mocksubscriptionclient.MockInterface
	VMClients          map[string]*mockvmclient.MockInterface
}

func NewMockAzureClientsFactory(ctrl *gomock.Controller) *MockAzureClientsFactory {
	return &MockAzureClientsFactory{
		ctrl:               ctrl,
		SubscriptionClient: mocksubscriptionclient.NewMockInterface(ctrl),
		VMClients:          make(map[string]*mockvmclient.MockInterface),
	}
}

// AddSubscription registers and returns the mock virtual machines client of subscriptionID.
func (factory *MockAzureClientsFactory) AddSubscription(subscriptionID string) *mockvmclient.MockInterface {
	client := mockvmclient.NewMockInterface(factory.ctrl)
	factory.VMClients[subscriptionID] = client
	return client
}

func (factory *MockAzureClientsFactory) GetSubscriptionsClient() (subscriptionclient.Interface, error) {
	return factory.SubscriptionClient, nil
}

func (factory *MockAzureClientsFactory) GetVirtualMachinesClient(subscriptionID string) (vmclient.Interface, error) {
	client, ok := factory.VMClients[subscriptionID]
	if !ok {
		return nil, fmt.Errorf("no virtual machines client for subscription %q", subscriptionID)
	}
	return client, nil
}
