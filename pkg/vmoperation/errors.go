// Copyright (c) Microsoft Corporation.
// Licensed under the MIT license.
package vmoperation

import (
	"fmt"
	"net/http"
)

// ErrorKind classifies request failures that are answered with a client error.
type ErrorKind string

const (
	InputValidationError ErrorKind = "InputValidation"
	ConfigurationError   ErrorKind = "Configuration"
	NotFoundError        ErrorKind = "NotFound"
	AmbiguityError       ErrorKind = "Ambiguity"
)

// Error is a classified failure; Message is returned to the caller verbatim.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// StatusCode maps the error kind to its HTTP status.
func (e *Error) StatusCode() int {
	if e.Kind == NotFoundError {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}

func errVMNameRequired() error {
	return &Error{Kind: InputValidationError, Message: "Virtual machine name is required."}
}

func errInvalidOperation() error {
	return &Error{Kind: InputValidationError, Message: "Invalid operation. Only 'start' and 'stop' are supported."}
}

func errSubscriptionNotConfigured() error {
	return &Error{Kind: ConfigurationError, Message: "Subscription ID is not configured."}
}

func errSubscriptionNotFound(subscriptionID string) error {
	return &Error{Kind: NotFoundError, Message: fmt.Sprintf("Subscription '%s' not found.", subscriptionID)}
}

func errVMNotFound(vmName, subscriptionID string) error {
	return &Error{Kind: NotFoundError, Message: fmt.Sprintf("Virtual machine '%s' not found in subscription '%s'.", vmName, subscriptionID)}
}

func errMultipleVMs(vmName string) error {
	return &Error{Kind: AmbiguityError, Message: fmt.Sprintf("Multiple virtual machines with name '%s' found. Please specify a unique name.", vmName)}
}
