// Copyright (c) Microsoft Corporation.
// Licensed under the MIT license.

//go:build !integration

// Package testutil provides utilities for testing
package testutil

// SkipIntegrationTests is true unless the integration build tag is set, so tests
// that reach a real Azure subscription stay out of the default test run.
var SkipIntegrationTests = true
