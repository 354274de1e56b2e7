// Copyright (c) Microsoft Corporation.
// Licensed under the MIT license.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	VMOperationRequestCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vm_operation_request_count",
			Help: "Number of virtual machine operation requests by result code",
		},
		[]string{"operation", "code"},
	)

	VMOperationFailCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vm_operation_fail_count",
			Help: "Number of failed virtual machine operation requests",
		},
		[]string{"operation", "subscription_id"},
	)

	VMOperationLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vm_operation_latency",
			Help:    "Latency of virtual machine operation requests",
			Buckets: []float64{0.1, 0.2, 0.5, 1, 2, 5, 10, 15, 20, 30, 60, 120}, // seconds
		},
		[]string{"operation", "subscription_id"},
	)
)

// MustRegister registers every collector of this package with reg.
func MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(VMOperationRequestCount, VMOperationFailCount, VMOperationLatency)
}

// MetricsContext labels series with configured values only, never with request input.
type MetricsContext struct {
	start          time.Time
	subscriptionID string
}

func NewMetricsContext(subscriptionID string) *MetricsContext {
	return &MetricsContext{
		start:          time.Now(),
		subscriptionID: subscriptionID,
	}
}

// ObserveVMOperationMetrics records one finished request. The operation is only
// known after validation, so it is passed in here rather than at construction.
func (mc *MetricsContext) ObserveVMOperationMetrics(operation string, statusCode int) {
	if operation == "" {
		operation = "unknown"
	}
	VMOperationRequestCount.WithLabelValues(operation, strconv.Itoa(statusCode)).Inc()

	labels := []string{operation, mc.subscriptionID}
	if statusCode >= 400 {
		VMOperationFailCount.WithLabelValues(labels...).Inc()
	} else {
		// reset FailCount metrics if the operation is accepted
		// DeleteLabelValues does not return error is label values are not found
		_ = VMOperationFailCount.DeleteLabelValues(labels...)
	}
	latency := time.Since(mc.start).Seconds()
	mc.observe(operation, latency)
}

func (mc *MetricsContext) observe(operation string, latency float64) {
	VMOperationLatency.WithLabelValues(operation, mc.subscriptionID).Observe(latency)
}
