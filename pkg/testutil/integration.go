// Copyright (c) Microsoft Corporation.
// Licensed under the MIT license.
package testutil

import (
	"os"
	"testing"

	"github.com/kohanyirobert/azure-start-stop-vm-app-function/pkg/consts"
)

// RequireIntegration skips t unless built with the integration tag.
func RequireIntegration(t testing.TB) {
	t.Helper()
	if SkipIntegrationTests {
		t.Skip("integration tests require the integration build tag")
	}
}

// IntegrationSubscriptionID returns the subscription integration tests run
// against, skipping t when none is configured.
func IntegrationSubscriptionID(t testing.TB) string {
	t.Helper()
	RequireIntegration(t)
	subscriptionID := os.Getenv(consts.SubscriptionIDEnvKey)
	if subscriptionID == "" {
		t.Skipf("%s is not set", consts.SubscriptionIDEnvKey)
	}
	return subscriptionID
}
