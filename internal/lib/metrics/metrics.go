// Package metrics регистрирует метрики prometheus для HTTP-слоя и доменных событий.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "website"

// Metrics набор счетчиков сервиса.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests  *prometheus.CounterVec
	HTTPDuration  *prometheus.HistogramVec
	Logins        *prometheus.CounterVec
	Registrations *prometheus.CounterVec
	ArticleViews  prometheus.Counter
	Searches      prometheus.Counter
	Upgrades      *prometheus.CounterVec
}

// New создает метрики в собственном реестре вместе со стандартными коллекторами процесса.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "code"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		Logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logins_total",
			Help:      "Login attempts by result.",
		}, []string{"result"}),
		Registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registrations_total",
			Help:      "Registration attempts by result.",
		}, []string{"result"}),
		ArticleViews: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "article_views_total",
			Help:      "Full article views by members.",
		}),
		Searches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "Executed article searches.",
		}),
		Upgrades: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "subscription_upgrades_total",
			Help:      "Subscription upgrades by plan.",
		}, []string{"plan"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequests,
		m.HTTPDuration,
		m.Logins,
		m.Registrations,
		m.ArticleViews,
		m.Searches,
		m.Upgrades,
	)
	return m
}

// Handler отдает метрики в формате prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry возвращает реестр метрик.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// LoginResult увеличивает счетчик входов с результатом success или failure.
func (m *Metrics) LoginResult(ok bool) {
	if m == nil {
		return
	}
	m.Logins.WithLabelValues(result(ok)).Inc()
}

// RegistrationResult увеличивает счетчик регистраций.
func (m *Metrics) RegistrationResult(ok bool) {
	if m == nil {
		return
	}
	m.Registrations.WithLabelValues(result(ok)).Inc()
}

// ArticleViewed учитывает просмотр статьи.
func (m *Metrics) ArticleViewed() {
	if m == nil {
		return
	}
	m.ArticleViews.Inc()
}

// SearchExecuted учитывает выполненный поиск.
func (m *Metrics) SearchExecuted() {
	if m == nil {
		return
	}
	m.Searches.Inc()
}

// SubscriptionUpgraded учитывает смену тарифа.
func (m *Metrics) SubscriptionUpgraded(plan string) {
	if m == nil {
		return
	}
	m.Upgrades.WithLabelValues(plan).Inc()
}

func result(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}
