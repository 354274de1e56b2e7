// Copyright (c) Microsoft Corporation.
// Licensed under the MIT license.
package main

import "github.com/kohanyirobert/azure-start-stop-vm-app-function/cmd/start-stop-vm/cmd"

func main() {
	cmd.Execute()
}
