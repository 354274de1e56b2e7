// Copyright (c) Microsoft Corporation.
// Licensed under the MIT license.
package consts

const (
	// Name of the HTTP triggered function, also the last segment of its route
	FunctionName = "StartStopVMHttpTrigger"

	// Route the Functions host forwards trigger requests to
	FunctionRoute = "/api/" + FunctionName

	// Liveness endpoint
	HealthzEndpoint = "/healthz"

	// Prometheus scrape endpoint
	MetricsEndpoint = "/metrics"

	// Query parameter carrying the virtual machine name
	VMNameQueryParam = "name"

	// Query parameter carrying the operation name
	OperationQueryParam = "operation"

	// Default user agent for Azure SDK
	DefaultUserAgent = "start-stop-vm"

	// Default listening port when not running under the Functions host
	DefaultPort = 8080
)

const (
	// environment variable name for the target subscription
	SubscriptionIDEnvKey = "AZURE_SUBSCRIPTION_ID"

	// environment variable name for the azure cloud
	CloudEnvKey = "AZURE_CLOUD"

	// environment variable name for the tenant
	TenantIDEnvKey = "AZURE_TENANT_ID"

	// environment variable name for the aad client ID
	AADClientIDEnvKey = "AZURE_CLIENT_ID"

	// environment variable name for the aad client secret
	AADClientSecretEnvKey = "AZURE_CLIENT_SECRET"

	// environment variable name toggling user assigned identity
	UseUserAssignedIdentityEnvKey = "AZURE_USE_USER_ASSIGNED_IDENTITY"

	// environment variable name for the user assigned identity client ID
	UserAssignedIdentityIDEnvKey = "AZURE_USER_ASSIGNED_IDENTITY_ID"

	// environment variable name for the user agent
	UserAgentEnvKey = "AZURE_USER_AGENT"

	// port assigned by the Functions host to a custom handler
	CustomHandlerPortEnvKey = "FUNCTIONS_CUSTOMHANDLER_PORT"
)

const (
	AzurePublicCloud       = "AzurePublicCloud"
	AzureChinaCloud        = "AzureChinaCloud"
	AzureUSGovernmentCloud = "AzureUSGovernmentCloud"
)
