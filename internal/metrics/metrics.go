// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector はメトリクス収集のインターフェース。
// サービス層とミドルウェアから利用する。
type MetricsCollector interface {
	RecordPlaylistMutation(action string)
	RecordActivityAppended()
	RecordLikeCacheHit()
	RecordLikeCacheMiss()
	RecordHTTPStatus(statusCode int)
	RecordRequestLatency(duration time.Duration)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	playlistMutations *prometheus.CounterVec
	activityAppended  prometheus.Counter
	likeCacheHit      prometheus.Counter
	likeCacheMiss     prometheus.Counter
	httpStatus        *prometheus.CounterVec
	requestLatency    prometheus.Histogram
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		playlistMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tunebox_playlist_mutations_total",
			Help: "プレイリスト変更操作のアクション別合計数",
		}, []string{"action"}),
		activityAppended: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tunebox_activity_appended_total",
			Help: "追記されたプレイリストアクティビティの合計数",
		}),
		likeCacheHit: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tunebox_like_cache_hit_total",
			Help: "いいね数キャッシュのヒット合計数",
		}),
		likeCacheMiss: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tunebox_like_cache_miss_total",
			Help: "いいね数キャッシュのミス合計数",
		}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tunebox_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
		requestLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "tunebox_request_latency_seconds",
			Help:    "HTTPリクエストのレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		c.playlistMutations,
		c.activityAppended,
		c.likeCacheHit,
		c.likeCacheMiss,
		c.httpStatus,
		c.requestLatency,
	)

	return c
}

// RecordPlaylistMutation はプレイリスト変更操作をアクション別に記録する。
func (c *Collector) RecordPlaylistMutation(action string) {
	c.playlistMutations.WithLabelValues(action).Inc()
}

// RecordActivityAppended はアクティビティの追記を記録する。
func (c *Collector) RecordActivityAppended() {
	c.activityAppended.Inc()
}

// RecordLikeCacheHit はいいね数キャッシュのヒットを記録する。
func (c *Collector) RecordLikeCacheHit() {
	c.likeCacheHit.Inc()
}

// RecordLikeCacheMiss はいいね数キャッシュのミスを記録する。
func (c *Collector) RecordLikeCacheMiss() {
	c.likeCacheMiss.Inc()
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordRequestLatency はリクエストのレイテンシを記録する。
func (c *Collector) RecordRequestLatency(duration time.Duration) {
	c.requestLatency.Observe(duration.Seconds())
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
