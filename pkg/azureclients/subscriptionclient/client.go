// Copyright (c) Microsoft Corporation.
// Licensed under the MIT license.
package subscriptionclient

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armsubscriptions"
)

type SubscriptionsClient struct {
	subscriptions *armsubscriptions.Client
	tenants       *armsubscriptions.TenantsClient
}

func NewSubscriptionsClient(credential azcore.TokenCredential, options *arm.ClientOptions) (*SubscriptionsClient, error) {
	subscriptions, err := armsubscriptions.NewClient(credential, options)
	if err != nil {
		return nil, err
	}
	tenants, err := armsubscriptions.NewTenantsClient(credential, options)
	if err != nil {
		return nil, err
	}
	return &SubscriptionsClient{
		subscriptions: subscriptions,
		tenants:       tenants,
	}, nil
}

func (client *SubscriptionsClient) List(ctx context.Context) ([]*armsubscriptions.Subscription, error) {
	var subscriptions []*armsubscriptions.Subscription
	pager := client.subscriptions.NewListPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		subscriptions = append(subscriptions, page.Value...)
	}
	return subscriptions, nil
}

func (client *SubscriptionsClient) ListTenants(ctx context.Context) ([]*armsubscriptions.TenantIDDescription, error) {
	var tenants []*armsubscriptions.TenantIDDescription
	pager := client.tenants.NewListPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		tenants = append(tenants, page.Value...)
	}
	return tenants, nil
}
