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
package config

import (
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/cloud"
	"github.com/spf13/viper"
	"go.uber.org/multierr"

	"github.com/kohanyirobert/azure-start-stop-vm-app-function/pkg/consts"
)

type CloudConfig struct {
	// azure cloud
	Cloud string
	// tenant ID
	TenantID string
	// subscription ID at startup, logged only; requests read it at request time
	SubscriptionID string
	// use user assigned identity or not
	UseUserAssignedIdentity bool
	// user assigned identity ID
	UserAssignedIdentityID string
	// aad client ID
	AADClientID string
	// aad client secret
	AADClientSecret string
	// user agent for Azure customer usage attribution
	UserAgent string
}

// LoadCloudConfig reads the cloud configuration keys from v.
func LoadCloudConfig(v *viper.Viper) *CloudConfig {
	return &CloudConfig{
		Cloud:                   v.GetString(consts.CloudEnvKey),
		TenantID:                v.GetString(consts.TenantIDEnvKey),
		SubscriptionID:          v.GetString(consts.SubscriptionIDEnvKey),
		UseUserAssignedIdentity: v.GetBool(consts.UseUserAssignedIdentityEnvKey),
		UserAssignedIdentityID:  v.GetString(consts.UserAssignedIdentityIDEnvKey),
		AADClientID:             v.GetString(consts.AADClientIDEnvKey),
		AADClientSecret:         v.GetString(consts.AADClientSecretEnvKey),
		UserAgent:               v.GetString(consts.UserAgentEnvKey),
	}
}

func (cfg *CloudConfig) TrimSpace() {
	cfg.Cloud = strings.TrimSpace(cfg.Cloud)
	cfg.TenantID = strings.TrimSpace(cfg.TenantID)
	cfg.SubscriptionID = strings.TrimSpace(cfg.SubscriptionID)
	cfg.UserAssignedIdentityID = strings.TrimSpace(cfg.UserAssignedIdentityID)
	cfg.AADClientID = strings.TrimSpace(cfg.AADClientID)
	cfg.AADClientSecret = strings.TrimSpace(cfg.AADClientSecret)
	cfg.UserAgent = strings.TrimSpace(cfg.UserAgent)
}

// UseClientSecret reports whether an AAD application secret is configured.
func (cfg *CloudConfig) UseClientSecret() bool {
	return cfg.AADClientID != "" && cfg.AADClientSecret != ""
}

// AzureCloud maps the configured cloud name to its azcore configuration.
func (cfg *CloudConfig) AzureCloud() (cloud.Configuration, error) {
	switch {
	case strings.EqualFold(cfg.Cloud, consts.AzurePublicCloud):
		return cloud.AzurePublic, nil
	case strings.EqualFold(cfg.Cloud, consts.AzureChinaCloud):
		return cloud.AzureChina, nil
	case strings.EqualFold(cfg.Cloud, consts.AzureUSGovernmentCloud):
		return cloud.AzureGovernment, nil
	}
	return cloud.Configuration{}, fmt.Errorf("unknown cloud %q", cfg.Cloud)
}

// DefaultAndValidate fills in the cloud and user agent defaults and reports every
// invalid setting at once. The subscription ID is not required here, a missing
// one is rejected per request.
func (cfg *CloudConfig) DefaultAndValidate() error {
	if cfg.Cloud == "" {
		cfg.Cloud = consts.AzurePublicCloud
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = consts.DefaultUserAgent
	}

	var err error
	if _, cloudErr := cfg.AzureCloud(); cloudErr != nil {
		err = multierr.Append(err, cloudErr)
	}

	if cfg.UseUserAssignedIdentity {
		if cfg.UserAssignedIdentityID == "" {
			err = multierr.Append(err, fmt.Errorf("user assigned identity ID is empty"))
		}
		return err
	}

	// a client ID alone selects a managed or workload identity in the default credential chain
	if cfg.AADClientSecret != "" && cfg.AADClientID == "" {
		err = multierr.Append(err, fmt.Errorf("AAD client ID must be set when AAD client secret is set"))
	}
	if cfg.UseClientSecret() && cfg.TenantID == "" {
		err = multierr.Append(err, fmt.Errorf("tenant ID is empty"))
	}
	return err
}
