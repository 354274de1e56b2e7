// Copyright (c) Microsoft Corporation.
// Licensed under the MIT license.
package server_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	compute "github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/compute/armcompute/v6"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armsubscriptions"
	"github.com/go-logr/logr"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/mock/gomock"

	"github.com/kohanyirobert/azure-start-stop-vm-app-function/pkg/azmanager"
	"github.com/kohanyirobert/azure-start-stop-vm-app-function/pkg/azureclients"
	"github.com/kohanyirobert/azure-start-stop-vm-app-function/pkg/azureclients/vmclient/mockvmclient"
	"github.com/kohanyirobert/azure-start-stop-vm-app-function/pkg/consts"
	"github.com/kohanyirobert/azure-start-stop-vm-app-function/pkg/metrics"
	"github.com/kohanyirobert/azure-start-stop-vm-app-function/pkg/server"
	"github.com/kohanyirobert/azure-start-stop-vm-app-function/pkg/utils/to"
	"github.com/kohanyirobert/azure-start-stop-vm-app-function/pkg/vmoperation"
)

const testSubscriptionID = "11111111-1111-1111-1111-111111111111"

func vm(resourceGroup, name string) *compute.VirtualMachine {
	return &compute.VirtualMachine{
		ID:   to.Ptr(fmt.Sprintf(azmanager.VMResourceIDTemplate, testSubscriptionID, resourceGroup, name)),
		Name: to.Ptr(name),
	}
}

var _ = Describe("Server", func() {
	var (
		factory        *azureclients.MockAzureClientsFactory
		vmClient       *mockvmclient.MockInterface
		subscriptionID string
		ts             *httptest.Server
	)

	BeforeEach(func() {
		ctrl := gomock.NewController(GinkgoT())
		factory = azureclients.NewMockAzureClientsFactory(ctrl)
		vmClient = factory.AddSubscription(testSubscriptionID)
		subscriptionID = testSubscriptionID

		az, err := azmanager.CreateAzureManager(factory)
		Expect(err).NotTo(HaveOccurred())

		reg := prometheus.NewRegistry()
		metrics.MustRegister(reg)
		srv := server.New(vmoperation.NewHandler(az), server.Options{
			SubscriptionID: func() string { return subscriptionID },
			Gatherer:       reg,
		}, logr.Discard())
		ts = httptest.NewServer(srv.Handler())
		DeferCleanup(ts.Close)
	})

	expectInventory := func(vms ...*compute.VirtualMachine) {
		factory.SubscriptionClient.EXPECT().List(gomock.Any()).Return([]*armsubscriptions.Subscription{
			{SubscriptionID: to.Ptr(testSubscriptionID), DisplayName: to.Ptr("test")},
		}, nil)
		vmClient.EXPECT().ListAll(gomock.Any()).Return(vms, nil)
	}

	call := func(method, path string, query url.Values) (int, string) {
		target := ts.URL + path
		if query != nil {
			target += "?" + query.Encode()
		}
		req, err := http.NewRequest(method, target, nil)
		Expect(err).NotTo(HaveOccurred())
		resp, err := ts.Client().Do(req)
		Expect(err).NotTo(HaveOccurred())
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		Expect(err).NotTo(HaveOccurred())
		return resp.StatusCode, string(body)
	}

	trigger := func(q url.Values) (int, string) {
		return call(http.MethodGet, consts.FunctionRoute, q)
	}

	Context("when the request is valid", func() {
		It("should stop a uniquely named virtual machine", func() {
			expectInventory(vm("rg-a", "web-01"), vm("rg-a", "db-01"))
			vmClient.EXPECT().BeginPowerOff(gomock.Any(), "rg-a", "web-01").Return(nil)

			code, body := trigger(url.Values{"name": {"web-01"}, "operation": {"stop"}})
			Expect(code).To(Equal(http.StatusNoContent))
			Expect(body).To(BeEmpty())
		})

		It("should start the virtual machine when the operation is omitted", func() {
			expectInventory(vm("rg-a", "web-01"))
			vmClient.EXPECT().BeginStart(gomock.Any(), "rg-a", "web-01").Return(nil)

			code, body := trigger(url.Values{"name": {"web-01"}})
			Expect(code).To(Equal(http.StatusNoContent))
			Expect(body).To(BeEmpty())
		})

		It("should accept POST requests", func() {
			expectInventory(vm("rg-a", "web-01"))
			vmClient.EXPECT().BeginStart(gomock.Any(), "rg-a", "web-01").Return(nil)

			code, _ := call(http.MethodPost, consts.FunctionRoute, url.Values{"name": {"web-01"}, "operation": {"start"}})
			Expect(code).To(Equal(http.StatusNoContent))
		})
	})

	Context("when the request is rejected", func() {
		It("should require a virtual machine name", func() {
			code, body := trigger(url.Values{"operation": {"start"}})
			Expect(code).To(Equal(http.StatusBadRequest))
			Expect(body).To(Equal("Virtual machine name is required."))
		})

		It("should reject unknown operations", func() {
			code, body := trigger(url.Values{"name": {"web-01"}, "operation": {"restart"}})
			Expect(code).To(Equal(http.StatusBadRequest))
			Expect(body).To(Equal("Invalid operation. Only 'start' and 'stop' are supported."))
		})

		It("should report a missing subscription without calling the cloud", func() {
			subscriptionID = ""
			code, body := trigger(url.Values{"name": {"web-01"}})
			Expect(code).To(Equal(http.StatusBadRequest))
			Expect(body).To(Equal("Subscription ID is not configured."))
		})

		It("should report a subscription that is not visible", func() {
			subscriptionID = "33333333-3333-3333-3333-333333333333"
			factory.SubscriptionClient.EXPECT().List(gomock.Any()).Return([]*armsubscriptions.Subscription{
				{SubscriptionID: to.Ptr(testSubscriptionID)},
			}, nil)

			code, body := trigger(url.Values{"name": {"web-01"}})
			Expect(code).To(Equal(http.StatusNotFound))
			Expect(body).To(Equal("Subscription '33333333-3333-3333-3333-333333333333' not found."))
		})

		It("should report a missing virtual machine", func() {
			expectInventory(vm("rg-a", "web-01"))

			code, body := trigger(url.Values{"name": {"web-02"}, "operation": {"start"}})
			Expect(code).To(Equal(http.StatusNotFound))
			Expect(body).To(Equal(fmt.Sprintf("Virtual machine 'web-02' not found in subscription '%s'.", testSubscriptionID)))
		})

		It("should reject ambiguous names", func() {
			expectInventory(vm("rg-a", "web-01"), vm("rg-b", "web-01"))

			code, body := trigger(url.Values{"name": {"web-01"}, "operation": {"stop"}})
			Expect(code).To(Equal(http.StatusBadRequest))
			Expect(body).To(Equal("Multiple virtual machines with name 'web-01' found. Please specify a unique name."))
		})

		It("should reject unsupported methods", func() {
			req, err := http.NewRequest(http.MethodDelete, ts.URL+consts.FunctionRoute+"?name=web-01", nil)
			Expect(err).NotTo(HaveOccurred())
			resp, err := ts.Client().Do(req)
			Expect(err).NotTo(HaveOccurred())
			defer resp.Body.Close()
			Expect(resp.StatusCode).To(Equal(http.StatusMethodNotAllowed))
			Expect(resp.Header.Get("Allow")).To(Equal("GET, POST"))
		})
	})

	Context("when the cloud call fails", func() {
		It("should return an internal server error for listing failures", func() {
			factory.SubscriptionClient.EXPECT().List(gomock.Any()).Return(nil, errors.New("connection reset"))

			code, body := trigger(url.Values{"name": {"web-01"}})
			Expect(code).To(Equal(http.StatusInternalServerError))
			Expect(body).To(Equal(http.StatusText(http.StatusInternalServerError)))
		})

		It("should return an internal server error for power failures", func() {
			expectInventory(vm("rg-a", "web-01"))
			vmClient.EXPECT().BeginPowerOff(gomock.Any(), "rg-a", "web-01").Return(runtime.NewResponseError(&http.Response{
				StatusCode: http.StatusForbidden,
				Header:     http.Header{"x-ms-error-code": {"AuthorizationFailed"}},
				Body:       io.NopCloser(strings.NewReader(`{"error":{"code":"AuthorizationFailed"}}`)),
				Request:    httptest.NewRequest(http.MethodPost, "https://management.azure.com/poweroff", nil),
			}))

			code, _ := trigger(url.Values{"name": {"web-01"}, "operation": {"stop"}})
			Expect(code).To(Equal(http.StatusInternalServerError))
		})
	})

	Context("supporting endpoints", func() {
		It("should report healthy", func() {
			code, body := call(http.MethodGet, consts.HealthzEndpoint, nil)
			Expect(code).To(Equal(http.StatusOK))
			Expect(body).To(Equal("ok"))
		})

		It("should expose operation metrics", func() {
			trigger(url.Values{"operation": {"start"}})

			code, body := call(http.MethodGet, consts.MetricsEndpoint, nil)
			Expect(code).To(Equal(http.StatusOK))
			Expect(body).To(ContainSubstring("vm_operation_request_count"))
			Expect(strings.Contains(body, `code="400"`)).To(BeTrue())
		})
	})

	It("should stop serving when the context is cancelled", func() {
		srv := server.New(vmoperation.NewHandler(nil), server.Options{Port: 0}, logr.Discard())
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error)
		go func() { done <- srv.Start(ctx) }()
		cancel()
		Eventually(done).Should(Receive(BeNil()))
	})
})
