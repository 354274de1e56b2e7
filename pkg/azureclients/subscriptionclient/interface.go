// Copyright (c) Microsoft Corporation.
// Licensed under the MIT license.
package subscriptionclient

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armsubscriptions"
)

//go:generate mockgen -destination=./mocksubscriptionclient/interface.go -package=mocksubscriptionclient -source=interface.go

type Interface interface {
	// List() gets all subscriptions visible to the credential
	List(ctx context.Context) ([]*armsubscriptions.Subscription, error)

	// ListTenants() gets all tenants visible to the credential
	ListTenants(ctx context.Context) ([]*armsubscriptions.TenantIDDescription, error)
}
