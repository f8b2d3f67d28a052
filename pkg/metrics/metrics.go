package metrics

import (
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Recorder 一次运行的指标，运行结束时推送到 Pushgateway
type Recorder struct {
	registry *prometheus.Registry

	rowsTotal    prometheus.Gauge
	selected     prometheus.Gauge
	publishTotal *prometheus.CounterVec
	publishDur   prometheus.Histogram
}

func NewRecorder() *Recorder {
	r := &Recorder{registry: prometheus.NewRegistry()}

	r.rowsTotal = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "qna_import_rows",
		Help: "Rows read from the Q&A export",
	})
	r.selected = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "qna_import_questions_selected",
		Help: "Rows matching the attendee question filter",
	})
	r.publishTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "qna_import_discussions_total",
		Help: "Discussion publish attempts by result",
	}, []string{"result"})
	r.publishDur = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "qna_import_publish_duration_seconds",
		Help:    "Latency of createDiscussion calls",
		Buckets: prometheus.DefBuckets,
	})

	r.registry.MustRegister(r.rowsTotal, r.selected, r.publishTotal, r.publishDur)
	return r
}

func (r *Recorder) SetRows(total, selected int) {
	r.rowsTotal.Set(float64(total))
	r.selected.Set(float64(selected))
}

// ObservePublish 记录一次发布的结果与耗时
func (r *Recorder) ObservePublish(ok bool, took time.Duration) {
	result := "created"
	if !ok {
		result = "failed"
	}
	r.publishTotal.WithLabelValues(result).Inc()
	r.publishDur.Observe(took.Seconds())
}

func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Push 推送到 Pushgateway，覆盖同一 job 上次的数据。url 为空时不做任何事
func (r *Recorder) Push(url, job string) error {
	if url == "" {
		return nil
	}
	err := push.New(url, job).
		Gatherer(r.registry).
		Push()
	return errors.Wrap(err, "推送指标到 Pushgateway 失败")
}
