// Copyright (c) Microsoft Corporation.
// Licensed under the MIT license.
package azureclients

import (
	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"

	"github.com/kohanyirobert/azure-start-stop-vm-app-function/pkg/azureclients/subscriptionclient"
	"github.com/kohanyirobert/azure-start-stop-vm-app-function/pkg/azureclients/vmclient"
	"github.com/kohanyirobert/azure-start-stop-vm-app-function/pkg/config"
)

type AzureClientsFactory interface {
	// get subscriptions client
	GetSubscriptionsClient() (subscriptionclient.Interface, error)

	// get virtual machines client of a subscription
	GetVirtualMachinesClient(subscriptionID string) (vmclient.Interface, error)
}

type azureClientsFactory struct {
	credentials azcore.TokenCredential
	options     *arm.ClientOptions
}

// NewAzureClientsFactory picks the credential from cloud: user assigned identity,
// then AAD client secret, then the ambient DefaultAzureCredential chain.
func NewAzureClientsFactory(cloud *config.CloudConfig) (AzureClientsFactory, error) {
	azCloud, err := cloud.AzureCloud()
	if err != nil {
		return nil, err
	}
	clientOptions := azcore.ClientOptions{
		Cloud: azCloud,
		Telemetry: policy.TelemetryOptions{
			ApplicationID: cloud.UserAgent,
		},
	}

	switch {
	case cloud.UseUserAssignedIdentity:
		return NewAzureClientsFactoryWithManagedIdentity(cloud.UserAssignedIdentityID, clientOptions)
	case cloud.UseClientSecret():
		return NewAzureClientsFactoryWithClientSecret(cloud.TenantID, cloud.AADClientID, cloud.AADClientSecret, clientOptions)
	default:
		return NewAzureClientsFactoryWithDefaultCredential(cloud.TenantID, clientOptions)
	}
}

func NewAzureClientsFactoryWithClientSecret(tenantID, aadClientID, aadClientSecret string, clientOptions azcore.ClientOptions) (AzureClientsFactory, error) {
	credentials, err := azidentity.NewClientSecretCredential(tenantID, aadClientID, aadClientSecret, &azidentity.ClientSecretCredentialOptions{ClientOptions: clientOptions})
	if err != nil {
		return nil, err
	}
	return NewAzureClientsFactoryWithCredential(credentials, clientOptions), nil
}

func NewAzureClientsFactoryWithManagedIdentity(managedIdentityID string, clientOptions azcore.ClientOptions) (AzureClientsFactory, error) {
	credentials, err := azidentity.NewManagedIdentityCredential(&azidentity.ManagedIdentityCredentialOptions{
		ClientOptions: clientOptions,
		ID:            azidentity.ClientID(managedIdentityID),
	})
	if err != nil {
		return nil, err
	}
	return NewAzureClientsFactoryWithCredential(credentials, clientOptions), nil
}

func NewAzureClientsFactoryWithDefaultCredential(tenantID string, clientOptions azcore.ClientOptions) (AzureClientsFactory, error) {
	credentials, err := azidentity.NewDefaultAzureCredential(&azidentity.DefaultAzureCredentialOptions{
		ClientOptions: clientOptions,
		TenantID:      tenantID,
	})
	if err != nil {
		return nil, err
	}
	return NewAzureClientsFactoryWithCredential(credentials, clientOptions), nil
}

func NewAzureClientsFactoryWithCredential(credentials azcore.TokenCredential, clientOptions azcore.ClientOptions) AzureClientsFactory {
	return &azureClientsFactory{
		credentials: credentials,
		options:     &arm.ClientOptions{ClientOptions: clientOptions},
	}
}

func (factory *azureClientsFactory) GetSubscriptionsClient() (subscriptionclient.Interface, error) {
	client, err := subscriptionclient.NewSubscriptionsClient(factory.credentials, factory.options)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func (factory *azureClientsFactory) GetVirtualMachinesClient(subscriptionID string) (vmclient.Interface, error) {
	client, err := vmclient.New(subscriptionID, factory.credentials, factory.options)
	if err != nil {
		return nil, err
	}
	return client, nil
}
