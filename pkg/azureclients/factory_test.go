package azureclients

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kohanyirobert/azure-start-stop-vm-app-function/pkg/config"
)

func TestNewAzureClientsFactory(t *testing.T) {
	tests := []struct {
		desc      string
		cloud     *config.CloudConfig
		expectErr bool
	}{
		{
			desc:  "ambient identity",
			cloud: &config.CloudConfig{Cloud: "AzurePublicCloud", UserAgent: "test"},
		},
		{
			desc:  "user assigned identity",
			cloud: &config.CloudConfig{Cloud: "AzurePublicCloud", UseUserAssignedIdentity: true, UserAssignedIdentityID: "msi"},
		},
		{
			desc:  "client secret",
			cloud: &config.CloudConfig{Cloud: "AzureChinaCloud", TenantID: "tenant", AADClientID: "id", AADClientSecret: "secret"},
		},
		{
			desc:  "client ID without secret uses the default credential chain",
			cloud: &config.CloudConfig{Cloud: "AzurePublicCloud", AADClientID: "mi-client-id"},
		},
		{
			desc:      "unknown cloud",
			cloud:     &config.CloudConfig{Cloud: "unknown"},
			expectErr: true,
		},
	}
	for i, test := range tests {
		factory, err := NewAzureClientsFactory(test.cloud)
		if test.expectErr {
			assert.Error(t, err, "TestCase[%d]: %s", i, test.desc)
			continue
		}
		assert.NoError(t, err, "TestCase[%d]: %s", i, test.desc)

		subscriptionClient, err := factory.GetSubscriptionsClient()
		assert.NoError(t, err, "TestCase[%d]: %s", i, test.desc)
		assert.NotNil(t, subscriptionClient, "TestCase[%d]: %s", i, test.desc)

		vmClient, err := factory.GetVirtualMachinesClient("subID")
		assert.NoError(t, err, "TestCase[%d]: %s", i, test.desc)
		assert.NotNil(t, vmClient, "TestCase[%d]: %s", i, test.desc)

		_, err = factory.GetVirtualMachinesClient("")
		assert.Error(t, err, "TestCase[%d]: %s", i, test.desc)
	}
}
