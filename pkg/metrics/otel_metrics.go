package metrics

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// OTelMetrics OpenTelemetry 指标集合
type OTelMetrics struct {
	// 通知投递指标
	DeliveryTotal  metric.Int64Counter
	BroadcastTotal metric.Int64Counter

	// HTTP 相关指标
	HTTPServerRequestTotal   metric.Int64Counter
	HTTPServerDuration       metric.Float64Histogram
	HTTPServerActiveRequests metric.Int64UpDownCounter
}

var (
	// 全局指标实例
	metrics *OTelMetrics
	// meter 用于创建指标
	meter = otel.Meter("hershield")
)

// InitMetrics 初始化 OpenTelemetry 指标
func InitMetrics() error {
	var err error

	metrics = &OTelMetrics{}

	metrics.DeliveryTotal, err = meter.Int64Counter(
		"notification_delivery_total",
		metric.WithDescription("Total number of notification delivery attempts by channel and status"),
		metric.WithUnit("{delivery}"),
	)
	if err != nil {
		return err
	}

	metrics.BroadcastTotal, err = meter.Int64Counter(
		"emergency_broadcast_total",
		metric.WithDescription("Total number of emergency broadcasts by overall status"),
		metric.WithUnit("{broadcast}"),
	)
	if err != nil {
		return err
	}

	metrics.HTTPServerRequestTotal, err = meter.Int64Counter(
		"http_server_request_total",
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return err
	}

	metrics.HTTPServerDuration, err = meter.Float64Histogram(
		"http_server_duration_seconds",
		metric.WithDescription("Time spent handling HTTP requests in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return err
	}

	metrics.HTTPServerActiveRequests, err = meter.Int64UpDownCounter(
		"http_server_active_requests",
		metric.WithDescription("Number of in-flight HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return err
	}

	return nil
}

// GetMetrics 获取全局指标实例
func GetMetrics() *OTelMetrics {
	return metrics
}

// RecordDelivery 记录一次渠道投递尝试
// 指标未初始化时直接返回，不影响业务流程
func RecordDelivery(ctx context.Context, channel string, success bool) {
	if metrics == nil {
		return
	}

	status := "failed"
	if success {
		status = "delivered"
	}

	metrics.DeliveryTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("channel", channel),
		attribute.String("status", status),
	))
}

// RecordBroadcast 记录一次广播的整体状态
func RecordBroadcast(ctx context.Context, overall string) {
	if metrics == nil {
		return
	}

	metrics.BroadcastTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("overall", overall),
	))
}

// RecordHTTPRequest 记录一次 HTTP 请求
func RecordHTTPRequest(ctx context.Context, method, path string, statusCode int, durationSeconds float64) {
	if metrics == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("path", path),
		attribute.Int("status_code", statusCode),
	)

	metrics.HTTPServerRequestTotal.Add(ctx, 1, attrs)
	metrics.HTTPServerDuration.Record(ctx, durationSeconds, attrs)
}

// AddActiveRequest 请求进入时 +1，结束时传 -1
func AddActiveRequest(ctx context.Context, delta int64) {
	if metrics == nil {
		return
	}
	metrics.HTTPServerActiveRequests.Add(ctx, delta)
}
